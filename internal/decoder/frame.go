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
	"math"
)

// o5m dataset tags.
const (
	TagNode        = 0x10
	TagWay         = 0x11
	TagRelation    = 0x12
	TagBoundingBox = 0xdb
	TagTimestamp   = 0xdc
	TagHeader      = 0xe0
	TagSync        = 0xee
	TagJump        = 0xef
	TagEnd         = 0xfe
	TagReset       = 0xff
)

// Frame is one framed record: a type tag and, for data records, a payload
// of exactly the declared length.  Reset frames carry no payload.
type Frame struct {
	Tag     byte
	Payload []byte
}

// Framer reads records off the cursor one at a time: a leading tag byte,
// then for data records a varint length and that many payload bytes,
// buffering across source chunk boundaries as needed.
type Framer struct {
	cur        *Cursor
	payload    []byte
	maxPayload uint64
	done       bool
}

// NewFramer returns a framer over cur.  maxPayload guards against absurd
// declared lengths; zero means no limit.
func NewFramer(cur *Cursor, maxPayload uint64) *Framer {
	return &Framer{cur: cur, maxPayload: maxPayload}
}

// Offset is the byte offset of the framer's cursor, for diagnostics.
func (f *Framer) Offset() int64 { return f.cur.Offset() }

// Next frames the next record.  A clean end of stream, through either the
// end-marker byte or source exhaustion at a record boundary, is reported
// as io.EOF.  Truncation inside a record is ErrUnexpectedEOF.  The
// returned payload is reused by the next call.
func (f *Framer) Next() (Frame, error) {
	if f.done {
		return Frame{}, io.EOF
	}

	end, err := f.cur.AtEnd()
	if err != nil {
		return Frame{}, err
	} else if end {
		f.done = true

		return Frame{}, io.EOF
	}

	tag, err := f.cur.ReadByte()
	if err != nil {
		return Frame{}, err
	}

	switch tag {
	case TagReset:
		// control record, no length or payload follow
		return Frame{Tag: TagReset}, nil
	case TagEnd:
		f.done = true

		return Frame{}, io.EOF
	}

	length, err := ReadUvarint(f.cur)
	if err != nil {
		return Frame{}, fmt.Errorf("record 0x%02x at offset %d: %w", tag, f.cur.Offset(), err)
	}

	// Lengths beyond int range would wrap negative in the cursor calls
	// below; they cannot be satisfied by any input.
	if length > math.MaxInt {
		return Frame{}, fmt.Errorf("record 0x%02x at offset %d: payload of %d bytes is not representable: %w",
			tag, f.cur.Offset(), length, ErrMalformedRecord)
	}

	if f.maxPayload != 0 && length > f.maxPayload {
		return Frame{}, fmt.Errorf("record 0x%02x at offset %d: payload of %d bytes exceeds limit %d: %w",
			tag, f.cur.Offset(), length, f.maxPayload, ErrMalformedRecord)
	}

	if err := f.cur.Require(int(length)); err != nil {
		return Frame{}, fmt.Errorf("record 0x%02x: %w", tag, err)
	}

	// Copy out of the cursor so the payload survives the next fill.
	f.payload = append(f.payload[:0], f.cur.Take(int(length))...)

	return Frame{Tag: tag, Payload: f.payload}, nil
}
