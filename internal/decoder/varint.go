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
	"io"
)

// maxVarintLen is the most bytes a varint may span before exceeding the
// representable 64-bit range.
const maxVarintLen = 10

// ReadUvarint decodes an unsigned base-128 varint: seven payload bits per
// byte, least-significant group first, high bit marking continuation.
func ReadUvarint(r io.ByteReader) (uint64, error) {
	var value uint64

	for i := 0; ; i++ {
		if i == maxVarintLen {
			return 0, fmt.Errorf("%w: exceeds 10 bytes", ErrMalformedVarint)
		}

		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}

		value |= uint64(b&0x7f) << (7 * i)
		if b < 0x80 {
			return value, nil
		}
	}
}

// ReadVarint decodes a zig-zag transformed signed varint: even raw values
// map to raw/2, odd raw values to -(raw+1)/2.
func ReadVarint(r io.ByteReader) (int64, error) {
	raw, err := ReadUvarint(r)
	if err != nil {
		return 0, err
	}

	return unzigzag(raw), nil
}

func unzigzag(raw uint64) int64 {
	if raw&1 == 1 {
		return -int64((raw + 1) >> 1)
	}

	return int64(raw >> 1)
}
