// Copyright 2025-26 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package decoder

import (
	"errors"
)

// Decode failures.  All are fatal for the session; the o5m format has no
// resynchronization marker, so there is no local recovery from any of them.
var (
	// ErrUnexpectedEOF reports a stream that ended in the middle of a
	// record.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrMalformedVarint reports a varint that exceeds the representable
	// range.
	ErrMalformedVarint = errors.New("malformed varint")

	// ErrMalformedRecord reports a structurally inconsistent record
	// payload.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrInvalidBackReference reports a string back-reference distance
	// of zero or one exceeding the current table occupancy.
	ErrInvalidBackReference = errors.New("invalid string back-reference")
)
