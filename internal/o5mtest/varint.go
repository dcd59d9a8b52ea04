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

package o5mtest

import (
	"golang.org/x/exp/constraints"
)

// AppendUvarint appends v as an unsigned base-128 varint.
func AppendUvarint[T constraints.Unsigned](dst []byte, v T) []byte {
	u := uint64(v)

	for u >= 0x80 {
		dst = append(dst, byte(u)|0x80)
		u >>= 7
	}

	return append(dst, byte(u))
}

// AppendVarint appends v as a zig-zag transformed signed varint.
func AppendVarint[T constraints.Signed](dst []byte, v T) []byte {
	s := int64(v)

	return AppendUvarint(dst, uint64(s<<1)^uint64(s>>63))
}
