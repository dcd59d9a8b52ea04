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

// DefaultChunkSize is the default size of a single read from the byte
// source.
const DefaultChunkSize = 64 * 1024

// Cursor is a resumable, append-only view over the incoming byte stream.
// It buffers bytes not yet consumed, tracks the total number of bytes
// handed out, and pulls from the source only when the buffer cannot
// satisfy the current request.  The source may return any number of bytes
// per read, down to one at a time; decoding output is independent of
// those chunk boundaries.
type Cursor struct {
	src   io.Reader
	buf   []byte
	start int // index of the first unread byte in buf
	off   int64
	eof   bool
	chunk int
}

// NewCursor returns a cursor reading from src in chunks of chunkSize
// bytes.
func NewCursor(src io.Reader, chunkSize int) *Cursor {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &Cursor{src: src, chunk: chunkSize}
}

// Offset is the number of bytes already delivered to consumers, for
// diagnostics.
func (c *Cursor) Offset() int64 { return c.off }

// buffered is the number of unread bytes currently held.
func (c *Cursor) buffered() int { return len(c.buf) - c.start }

// fill performs one read from the source, appending whatever arrives.
// Invalidates slices previously returned by Take.
func (c *Cursor) fill() error {
	if c.eof {
		return io.EOF
	}

	// Drop consumed bytes before growing so memory stays bounded by the
	// largest single record, not the stream length.
	if c.start > 0 {
		n := copy(c.buf, c.buf[c.start:])
		c.buf = c.buf[:n]
		c.start = 0
	}

	free := cap(c.buf) - len(c.buf)
	if free < c.chunk {
		grown := make([]byte, len(c.buf), len(c.buf)+c.chunk)
		copy(grown, c.buf)
		c.buf = grown
	}

	n, err := c.src.Read(c.buf[len(c.buf) : len(c.buf)+c.chunk])
	c.buf = c.buf[:len(c.buf)+n]

	switch {
	case err == io.EOF:
		c.eof = true
		if n == 0 {
			return io.EOF
		}
	case err != nil:
		return fmt.Errorf("error reading byte source: %w", err)
	}

	return nil
}

// Require ensures at least n unread bytes are buffered, blocking on the
// source as needed.  A source that ends first yields ErrUnexpectedEOF;
// source I/O failures are returned as is.
func (c *Cursor) Require(n int) error {
	for c.buffered() < n {
		if err := c.fill(); err != nil {
			if err == io.EOF {
				return fmt.Errorf("%w: need %d bytes at offset %d, have %d",
					ErrUnexpectedEOF, n, c.off, c.buffered())
			}

			return err
		}
	}

	return nil
}

// Take removes and returns exactly n buffered bytes.  It must be preceded
// by a successful Require(n).  The returned slice is valid only until the
// next fill; callers that hold on to it must copy.
func (c *Cursor) Take(n int) []byte {
	b := c.buf[c.start : c.start+n]
	c.start += n
	c.off += int64(n)

	return b
}

// ReadByte consumes and returns the next byte, implementing io.ByteReader
// so varints can be decoded straight off the cursor.
func (c *Cursor) ReadByte() (byte, error) {
	if err := c.Require(1); err != nil {
		return 0, err
	}

	return c.Take(1)[0], nil
}

// AtEnd reports whether the source is exhausted and no unread bytes
// remain.  It may block on the source to distinguish "no bytes yet" from
// genuine end-of-input.
func (c *Cursor) AtEnd() (bool, error) {
	for c.buffered() == 0 {
		if err := c.fill(); err != nil {
			if err == io.EOF {
				return true, nil
			}

			return false, err
		}
	}

	return false, nil
}
