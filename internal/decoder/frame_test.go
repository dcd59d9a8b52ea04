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
	"bytes"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/o5m/internal/o5mtest"
)

func newFramer(data []byte, maxPayload uint64) *Framer {
	return NewFramer(NewCursor(bytes.NewReader(data), 16), maxPayload)
}

func TestFramerDataRecord(t *testing.T) {
	f := newFramer([]byte{TagNode, 0x03, 0xaa, 0xbb, 0xcc}, 0)

	fr, err := f.Next()
	require.NoError(t, err)
	assert.Equal(t, byte(TagNode), fr.Tag)
	assert.Equal(t, []byte{0xaa, 0xbb, 0xcc}, fr.Payload)

	_, err = f.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFramerResetHasNoLength(t *testing.T) {
	f := newFramer([]byte{TagReset, TagNode, 0x01, 0x00}, 0)

	fr, err := f.Next()
	require.NoError(t, err)
	assert.Equal(t, byte(TagReset), fr.Tag)
	assert.Empty(t, fr.Payload)

	fr, err = f.Next()
	require.NoError(t, err)
	assert.Equal(t, byte(TagNode), fr.Tag)
	assert.Equal(t, []byte{0x00}, fr.Payload)
}

func TestFramerEndMarker(t *testing.T) {
	// bytes after the end marker must not be read
	f := newFramer([]byte{TagEnd, 0xde, 0xad}, 0)

	_, err := f.Next()
	assert.ErrorIs(t, err, io.EOF)

	_, err = f.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFramerPayloadAcrossChunks(t *testing.T) {
	data := []byte{TagWay, 0x04, 1, 2, 3, 4}
	f := NewFramer(NewCursor(iotest.OneByteReader(bytes.NewReader(data)), 2), 0)

	fr, err := f.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, fr.Payload)
}

func TestFramerTruncatedPayload(t *testing.T) {
	f := newFramer([]byte{TagNode, 0x05, 0x01}, 0)

	_, err := f.Next()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestFramerTruncatedLength(t *testing.T) {
	f := newFramer([]byte{TagNode, 0x80}, 0)

	_, err := f.Next()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestFramerPayloadLimit(t *testing.T) {
	f := newFramer([]byte{TagNode, 0x7f, 0x00}, 16)

	_, err := f.Next()
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestFramerUnrepresentableLength(t *testing.T) {
	// declared length of 2^63 with the payload guard disabled
	data := append([]byte{TagNode}, o5mtest.AppendUvarint(nil, uint64(1)<<63)...)

	f := newFramer(data, 0)

	_, err := f.Next()
	assert.ErrorIs(t, err, ErrMalformedRecord)
}
