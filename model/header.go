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

package model

import (
	"time"
)

// Format strings carried by the o5m header dataset.
const (
	FormatO5m = "o5m2" // complete file
	FormatO5c = "o5c2" // change file
)

// Header is the contents of the o5m header dataset.
type Header struct {
	Format string `json:"format,omitempty"`
}

// Timestamp is the o5m file-timestamp dataset, the instant the file's
// contents were current.
type Timestamp struct {
	Time time.Time
}

var _ Entity = Timestamp{}

func (t Timestamp) isEntity() {}
