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

// Package o5m decodes the o5m binary format for OpenStreetMap data.  The
// decoder is a pull-based session over an io.Reader: each Decode call
// consumes only the bytes needed to complete the next entity, so a slow
// consumer naturally throttles reads from the source, and the source may
// deliver bytes at any chunk granularity without affecting the output.
package o5m

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"m4o.io/o5m/internal/decoder"
	"m4o.io/o5m/model"
)

// Decoder reads and decodes o5m entities from an input stream.  A
// Decoder is a single session: once Decode reports a failure the session
// is terminal and no further entities are produced.  It is not safe for
// concurrent use.
type Decoder struct {
	// Header is the o5m header dataset ("o5m2" or "o5c2"), populated
	// once the header record has been consumed.
	Header *model.Header

	ctx    context.Context
	framer *decoder.Framer
	parser *decoder.Parser
	err    error
}

// NewDecoder returns a decoder, configured with options, that reads from
// r.  The context bounds the whole decode session; once it is done,
// Decode reports the context's error.
func NewDecoder(ctx context.Context, r io.Reader, opts ...DecoderOption) *Decoder {
	cfg := defaultDecoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	cur := decoder.NewCursor(r, cfg.bufferSize)

	return &Decoder{
		ctx:    ctx,
		framer: decoder.NewFramer(cur, cfg.maxPayloadSize),
		parser: &decoder.Parser{},
	}
}

// Decode returns the next decoded entity.  The end of the stream is
// reported by io.EOF.  Any other error is fatal for the session and is
// repeated by subsequent calls.
func (d *Decoder) Decode() (model.Entity, error) {
	if d.err != nil {
		return nil, d.err
	}

	e, err := d.next()
	if err != nil {
		d.err = err

		if !errors.Is(err, io.EOF) {
			slog.Error("o5m decode failed", "offset", d.framer.Offset(), "error", err)
		}
	}

	return e, err
}

// Entities returns an iterator over the remaining entities of the
// session.  Iteration ends at end-of-stream or after yielding the first
// failure.
func (d *Decoder) Entities() iter.Seq2[model.Entity, error] {
	return func(yield func(model.Entity, error) bool) {
		for {
			e, err := d.Decode()
			if errors.Is(err, io.EOF) {
				return
			}

			if err != nil {
				yield(nil, err)

				return
			}

			if !yield(e, nil) {
				return
			}
		}
	}
}

// next pulls record-by-record until a concrete entity is produced or the
// stream ends.  Control records and unrecognized datasets never surface
// to the caller.
func (d *Decoder) next() (model.Entity, error) {
	for {
		select {
		case <-d.ctx.Done():
			return nil, d.ctx.Err()
		default:
		}

		fr, err := d.framer.Next()
		if err != nil {
			return nil, err
		}

		switch fr.Tag {
		case decoder.TagReset:
			d.parser.Reset()

		case decoder.TagHeader:
			h, err := decoder.ParseHeader(fr.Payload)
			if err != nil {
				return nil, d.wrap(fr.Tag, err)
			}

			d.Header = &h

		case decoder.TagNode:
			n, err := d.parser.ParseNode(fr.Payload)
			if err != nil {
				return nil, d.wrap(fr.Tag, err)
			}

			return n, nil

		case decoder.TagWay:
			w, err := d.parser.ParseWay(fr.Payload)
			if err != nil {
				return nil, d.wrap(fr.Tag, err)
			}

			return w, nil

		case decoder.TagRelation:
			r, err := d.parser.ParseRelation(fr.Payload)
			if err != nil {
				return nil, d.wrap(fr.Tag, err)
			}

			return r, nil

		case decoder.TagBoundingBox:
			b, err := decoder.ParseBoundingBox(fr.Payload)
			if err != nil {
				return nil, d.wrap(fr.Tag, err)
			}

			return b, nil

		case decoder.TagTimestamp:
			t, err := decoder.ParseTimestamp(fr.Payload)
			if err != nil {
				return nil, d.wrap(fr.Tag, err)
			}

			return t, nil

		default:
			// The framer already isolated the dataset to its exact
			// declared length, so unknown kinds are skipped whole.
		}
	}
}

func (d *Decoder) wrap(tag byte, err error) error {
	return fmt.Errorf("o5m: record 0x%02x near offset %d: %w", tag, d.framer.Offset(), err)
}
