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

package o5m

import (
	"m4o.io/o5m/internal/decoder"
)

// Decode failures, matchable with errors.Is.  All are fatal for the
// session.  I/O failures of the byte source are not translated; they are
// wrapped and remain reachable through errors.As.
var (
	ErrUnexpectedEOF        = decoder.ErrUnexpectedEOF
	ErrMalformedVarint      = decoder.ErrMalformedVarint
	ErrMalformedRecord      = decoder.ErrMalformedRecord
	ErrInvalidBackReference = decoder.ErrInvalidBackReference
)
