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

// Package o5mtest is a reference o5m encoder used by the decoder's tests.
// It mirrors the delta state and string table of a conforming writer so
// round-trip tests exercise delta chains and back-references for real.
// Encoding o5m is not part of this module's public surface.
package o5mtest

import (
	"m4o.io/o5m/model"
)

// Wire constants, duplicated here so an encoder bug cannot mask a
// matching decoder bug.
const (
	tagNode        = 0x10
	tagWay         = 0x11
	tagRelation    = 0x12
	tagBBox        = 0xdb
	tagTimestamp   = 0xdc
	tagHeader      = 0xe0
	tagEnd         = 0xfe
	tagReset       = 0xff
	tableCapacity  = 15_000
	memberKindBase = '0'
)

// Encoder accumulates an o5m byte stream.
type Encoder struct {
	buf []byte

	nodeID, wayID, relationID int64
	lon, lat                  int64
	timestamp, changeset      int64
	wayRef, memberID          int64

	inserted map[string]int // composite entry -> 1-based insertion ordinal
	count    int
}

// New returns an empty encoder.
func New() *Encoder {
	return &Encoder{inserted: make(map[string]int)}
}

// Bytes returns the stream accumulated so far.
func (e *Encoder) Bytes() []byte { return e.buf }

// Reset writes a reset record and zeroes the encoder's delta and string
// state, mirroring the decoder's reaction to it.
func (e *Encoder) Reset() *Encoder {
	e.buf = append(e.buf, tagReset)

	*e = Encoder{buf: e.buf, inserted: make(map[string]int)}

	return e
}

// End writes the end-of-file marker.
func (e *Encoder) End() *Encoder {
	e.buf = append(e.buf, tagEnd)

	return e
}

// Header writes a header dataset with the given format string.
func (e *Encoder) Header(format string) *Encoder {
	return e.Raw(tagHeader, []byte(format))
}

// FileTimestamp writes a file-timestamp dataset, absolute seconds.
func (e *Encoder) FileTimestamp(secs int64) *Encoder {
	return e.Raw(tagTimestamp, AppendVarint(nil, secs))
}

// BoundingBox writes a bounding box dataset from raw 1e-7 degree
// coordinates, absolute and non-delta.
func (e *Encoder) BoundingBox(minLon, minLat, maxLon, maxLat int64) *Encoder {
	var p []byte
	p = AppendVarint(p, minLon)
	p = AppendVarint(p, minLat)
	p = AppendVarint(p, maxLon)
	p = AppendVarint(p, maxLat)

	return e.Raw(tagBBox, p)
}

// Raw writes an arbitrary dataset: tag, declared length, payload.
func (e *Encoder) Raw(tag byte, payload []byte) *Encoder {
	e.buf = append(e.buf, tag)
	e.buf = AppendUvarint(e.buf, uint64(len(payload)))
	e.buf = append(e.buf, payload...)

	return e
}

// Append writes raw bytes with no framing, for truncation tests.
func (e *Encoder) Append(b ...byte) *Encoder {
	e.buf = append(e.buf, b...)

	return e
}

// Node writes a node record, delta encoded against the stream so far.
// Coordinates are taken in 1e-7 degree units via Degrees.E7.
func (e *Encoder) Node(n model.Node) *Encoder {
	var p []byte

	p = AppendVarint(p, int64(n.ID)-e.nodeID)
	e.nodeID = int64(n.ID)

	p = e.appendInfo(p, n.Info)

	lon, lat := int64(n.Lon.E7()), int64(n.Lat.E7())
	p = AppendVarint(p, lon-e.lon)
	p = AppendVarint(p, lat-e.lat)
	e.lon, e.lat = lon, lat

	p = e.appendTags(p, n.Tags)

	return e.Raw(tagNode, p)
}

// Way writes a way record.
func (e *Encoder) Way(w model.Way) *Encoder {
	var p []byte

	p = AppendVarint(p, int64(w.ID)-e.wayID)
	e.wayID = int64(w.ID)

	p = e.appendInfo(p, w.Info)

	var refs []byte
	for _, id := range w.NodeIDs {
		refs = AppendVarint(refs, int64(id)-e.wayRef)
		e.wayRef = int64(id)
	}

	p = AppendUvarint(p, uint64(len(refs)))
	p = append(p, refs...)

	p = e.appendTags(p, w.Tags)

	return e.Raw(tagWay, p)
}

// Relation writes a relation record.
func (e *Encoder) Relation(r model.Relation) *Encoder {
	var p []byte

	p = AppendVarint(p, int64(r.ID)-e.relationID)
	e.relationID = int64(r.ID)

	p = e.appendInfo(p, r.Info)

	var members []byte
	for _, m := range r.Members {
		members = AppendVarint(members, int64(m.ID)-e.memberID)
		e.memberID = int64(m.ID)

		s := string(rune(memberKindBase+int(m.Type))) + m.Role
		members = e.appendEntry(members, s, "", true)
	}

	p = AppendUvarint(p, uint64(len(members)))
	p = append(p, members...)

	p = e.appendTags(p, r.Tags)

	return e.Raw(tagRelation, p)
}

func (e *Encoder) appendInfo(p []byte, info *model.Info) []byte {
	if info == nil {
		return append(p, 0x00)
	}

	p = AppendUvarint(p, uint64(info.Version))

	var ts int64
	if !info.Timestamp.IsZero() {
		ts = info.Timestamp.Unix()
	}

	p = AppendVarint(p, ts-e.timestamp)
	e.timestamp = ts

	if ts == 0 {
		return p
	}

	p = AppendVarint(p, info.Changeset-e.changeset)
	e.changeset = info.Changeset

	uid := AppendUvarint(nil, uint64(info.UID))

	return e.appendEntry(p, string(uid), info.User, false)
}

func (e *Encoder) appendTags(p []byte, tags model.Tags) []byte {
	for _, t := range tags {
		p = e.appendEntry(p, t.Key, t.Value, false)
	}

	return p
}

// appendEntry writes a string or pair either as a back-reference, when
// still reachable in the 15,000-entry window, or inline followed by a
// table insertion.
func (e *Encoder) appendEntry(p []byte, k, v string, single bool) []byte {
	key := k + "\x00" + v

	if ordinal, ok := e.inserted[key]; ok {
		if d := e.count - ordinal + 1; d <= tableCapacity {
			return AppendUvarint(p, uint64(d))
		}
	}

	p = append(p, 0x00)
	p = append(p, k...)
	p = append(p, 0x00)

	if !single {
		p = append(p, v...)
		p = append(p, 0x00)
	}

	e.count++
	e.inserted[key] = e.count

	return p
}
