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

const (
	// DefaultBufferSize is the default size of a single read from the
	// byte source.
	DefaultBufferSize = decoder.DefaultChunkSize

	// DefaultMaxPayloadSize caps the declared length of a single
	// record.  Well-formed o5m writers keep records tiny; a declared
	// length anywhere near this limit means a corrupt stream, and
	// failing early beats buffering gigabytes first.
	DefaultMaxPayloadSize = 64 * 1024 * 1024
)

// decoderOptions provides optional configuration parameters for Decoder construction.
type decoderOptions struct {
	bufferSize     int    // read-chunk size for the byte cursor
	maxPayloadSize uint64 // largest acceptable declared record length, 0 for no limit
}

// DecoderOption configures how we set up the decoder.
type DecoderOption func(*decoderOptions)

// WithBufferSize lets you set the size of reads from the byte source.
func WithBufferSize(n int) DecoderOption {
	return func(o *decoderOptions) {
		o.bufferSize = n
	}
}

// WithMaxPayloadSize lets you set the largest acceptable declared record
// length.  Zero disables the guard.
func WithMaxPayloadSize(n uint64) DecoderOption {
	return func(o *decoderOptions) {
		o.maxPayloadSize = n
	}
}

// defaultDecoderConfig provides a default configuration for decoders.
var defaultDecoderConfig = decoderOptions{
	bufferSize:     DefaultBufferSize,
	maxPayloadSize: DefaultMaxPayloadSize,
}
