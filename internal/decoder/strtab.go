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
	"fmt"
)

// TableCapacity is the protocol-mandated size of the string reference
// table.  It is not configurable.
const TableCapacity = 15_000

// Entry is one remembered string or string pair: a key/value tag pair, a
// relation member type-and-role string (V empty), or a uid/user pair
// where K holds the raw uid varint bytes.
type Entry struct {
	K string
	V string
}

// StringTable is a fixed-capacity circular history of entries ordered by
// insertion.  A back-reference is a distance from the most recent
// insertion, 1 meaning "the last one inserted".  The table is a history,
// not a set: identical entries occupy distinct slots.
type StringTable struct {
	entries []Entry
	head    int
	size    int
}

// Insert appends an entry at the logical head, overwriting the oldest
// entry once the table is full.
func (t *StringTable) Insert(e Entry) {
	if t.entries == nil {
		t.entries = make([]Entry, TableCapacity)
	}

	t.head = (t.head + 1) % TableCapacity
	t.entries[t.head] = e

	if t.size < TableCapacity {
		t.size++
	}
}

// Lookup resolves the entry inserted distance insertions ago.
func (t *StringTable) Lookup(distance uint64) (Entry, error) {
	if distance == 0 || distance > uint64(t.size) {
		return Entry{}, fmt.Errorf("%w: distance %d with %d entries held",
			ErrInvalidBackReference, distance, t.size)
	}

	i := (t.head - int(distance) + 1) % TableCapacity
	if i < 0 {
		i += TableCapacity
	}

	return t.entries[i], nil
}

// Len is the number of entries currently held.
func (t *StringTable) Len() int { return t.size }

// Clear empties the table.  Invoked by reset records.
func (t *StringTable) Clear() {
	t.head = 0
	t.size = 0
}
