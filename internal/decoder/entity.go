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
	"math"
	"time"

	"m4o.io/o5m/model"
)

// Relation member kind characters.
const (
	memberNode     = '0'
	memberWay      = '1'
	memberRelation = '2'
)

// payload is a bounded reader over one framed record body.  Exhaustion
// mid-field is a structural inconsistency, not an end-of-input condition.
type payload struct {
	buf []byte
	pos int
}

func (p *payload) ReadByte() (byte, error) {
	if p.pos >= len(p.buf) {
		return 0, fmt.Errorf("%w: payload exhausted mid-field", ErrMalformedRecord)
	}

	b := p.buf[p.pos]
	p.pos++

	return b, nil
}

func (p *payload) empty() bool { return p.pos >= len(p.buf) }

// readString consumes bytes up to and including a terminating zero byte
// and returns them, terminator excluded.
func (p *payload) readString() (string, error) {
	for i := p.pos; i < len(p.buf); i++ {
		if p.buf[i] == 0x00 {
			s := string(p.buf[p.pos:i])
			p.pos = i + 1

			return s, nil
		}
	}

	return "", fmt.Errorf("%w: unterminated string", ErrMalformedRecord)
}

// Parser interprets framed payloads, driving the varint codec, the string
// table, and the delta state to build entities.  It is owned by a single
// decode session and is not safe for concurrent use.
type Parser struct {
	deltas  DeltaState
	strings StringTable
}

// Reset zeroes the delta state and clears the string table, the effect of
// an o5m reset record.
func (p *Parser) Reset() {
	p.deltas.Reset()
	p.strings.Clear()
}

// ParseNode decodes a node payload.
func (p *Parser) ParseNode(buf []byte) (model.Node, error) {
	pl := &payload{buf: buf}

	delta, err := ReadVarint(pl)
	if err != nil {
		return model.Node{}, err
	}

	id, err := p.deltas.ApplyNodeID(delta)
	if err != nil {
		return model.Node{}, err
	}

	info, err := p.readInfo(pl)
	if err != nil {
		return model.Node{}, err
	}

	n := model.Node{ID: model.ID(id), Info: info}

	// A payload that ends here is a coordinate-less node, as written in
	// o5c change files for deletions.
	if pl.empty() {
		return n, nil
	}

	lonDelta, err := ReadVarint(pl)
	if err != nil {
		return model.Node{}, err
	}

	latDelta, err := ReadVarint(pl)
	if err != nil {
		return model.Node{}, err
	}

	lon, lat, err := p.deltas.ApplyCoordinates(lonDelta, latDelta)
	if err != nil {
		return model.Node{}, err
	}

	n.Lon = model.ToDegrees(lon)
	n.Lat = model.ToDegrees(lat)

	if n.Tags, err = p.readTags(pl); err != nil {
		return model.Node{}, err
	}

	return n, nil
}

// ParseWay decodes a way payload.
func (p *Parser) ParseWay(buf []byte) (model.Way, error) {
	pl := &payload{buf: buf}

	delta, err := ReadVarint(pl)
	if err != nil {
		return model.Way{}, err
	}

	id, err := p.deltas.ApplyWayID(delta)
	if err != nil {
		return model.Way{}, err
	}

	info, err := p.readInfo(pl)
	if err != nil {
		return model.Way{}, err
	}

	w := model.Way{ID: model.ID(id), Info: info}

	if pl.empty() {
		return w, nil
	}

	// The reference sub-block length counts bytes, not references.
	end, err := p.subBlock(pl)
	if err != nil {
		return model.Way{}, err
	}

	for pl.pos < end {
		refDelta, err := ReadVarint(pl)
		if err != nil {
			return model.Way{}, err
		}

		ref, err := p.deltas.ApplyWayRef(refDelta)
		if err != nil {
			return model.Way{}, err
		}

		w.NodeIDs = append(w.NodeIDs, model.ID(ref))
	}

	if pl.pos != end {
		return model.Way{}, fmt.Errorf("%w: reference ran past its sub-block", ErrMalformedRecord)
	}

	if w.Tags, err = p.readTags(pl); err != nil {
		return model.Way{}, err
	}

	return w, nil
}

// ParseRelation decodes a relation payload.
func (p *Parser) ParseRelation(buf []byte) (model.Relation, error) {
	pl := &payload{buf: buf}

	delta, err := ReadVarint(pl)
	if err != nil {
		return model.Relation{}, err
	}

	id, err := p.deltas.ApplyRelationID(delta)
	if err != nil {
		return model.Relation{}, err
	}

	info, err := p.readInfo(pl)
	if err != nil {
		return model.Relation{}, err
	}

	r := model.Relation{ID: model.ID(id), Info: info}

	if pl.empty() {
		return r, nil
	}

	end, err := p.subBlock(pl)
	if err != nil {
		return model.Relation{}, err
	}

	for pl.pos < end {
		m, err := p.readMember(pl)
		if err != nil {
			return model.Relation{}, err
		}

		r.Members = append(r.Members, m)
	}

	if pl.pos != end {
		return model.Relation{}, fmt.Errorf("%w: member ran past its sub-block", ErrMalformedRecord)
	}

	if r.Tags, err = p.readTags(pl); err != nil {
		return model.Relation{}, err
	}

	return r, nil
}

// readMember decodes one relation member: an id delta and a
// type-and-role string subject to back-referencing.
func (p *Parser) readMember(pl *payload) (model.Member, error) {
	idDelta, err := ReadVarint(pl)
	if err != nil {
		return model.Member{}, err
	}

	id, err := p.deltas.ApplyMemberID(idDelta)
	if err != nil {
		return model.Member{}, err
	}

	ref, err := ReadUvarint(pl)
	if err != nil {
		return model.Member{}, err
	}

	var s string

	if ref == 0 {
		if s, err = pl.readString(); err != nil {
			return model.Member{}, err
		}

		p.strings.Insert(Entry{K: s})
	} else {
		e, err := p.strings.Lookup(ref)
		if err != nil {
			return model.Member{}, err
		}

		s = e.K
	}

	if len(s) == 0 {
		return model.Member{}, fmt.Errorf("%w: empty member type-and-role string", ErrMalformedRecord)
	}

	var kind model.EntityType

	switch s[0] {
	case memberNode:
		kind = model.NODE
	case memberWay:
		kind = model.WAY
	case memberRelation:
		kind = model.RELATION
	default:
		return model.Member{}, fmt.Errorf("%w: member kind 0x%02x is not '0', '1', or '2'",
			ErrMalformedRecord, s[0])
	}

	return model.Member{ID: model.ID(id), Type: kind, Role: s[1:]}, nil
}

// ParseBoundingBox decodes a bounding box payload: two absolute,
// non-delta coordinate pairs (min then max).
func ParseBoundingBox(buf []byte) (model.BoundingBox, error) {
	pl := &payload{buf: buf}

	var coords [4]int64

	for i := range coords {
		v, err := ReadVarint(pl)
		if err != nil {
			return model.BoundingBox{}, err
		}

		coords[i] = v
	}

	return model.BoundingBox{
		Left:   model.ToDegrees(coords[0]),
		Bottom: model.ToDegrees(coords[1]),
		Right:  model.ToDegrees(coords[2]),
		Top:    model.ToDegrees(coords[3]),
	}, nil
}

// ParseTimestamp decodes a file-timestamp payload: absolute seconds since
// the epoch.
func ParseTimestamp(buf []byte) (model.Timestamp, error) {
	pl := &payload{buf: buf}

	secs, err := ReadVarint(pl)
	if err != nil {
		return model.Timestamp{}, err
	}

	return model.Timestamp{Time: time.Unix(secs, 0).UTC()}, nil
}

// ParseHeader decodes a header payload, the format identification string.
func ParseHeader(buf []byte) (model.Header, error) {
	if len(buf) == 0 {
		return model.Header{}, fmt.Errorf("%w: empty header dataset", ErrMalformedRecord)
	}

	return model.Header{Format: string(buf)}, nil
}

// readInfo decodes the optional metadata block.  A version of zero means
// the record carries no metadata at all; an absolute timestamp of zero
// means changeset, uid, and user are likewise absent.
func (p *Parser) readInfo(pl *payload) (*model.Info, error) {
	version, err := ReadUvarint(pl)
	if err != nil {
		return nil, err
	}

	if version == 0 {
		return nil, nil
	}

	if version > math.MaxInt32 {
		return nil, fmt.Errorf("%w: version %d out of range", ErrMalformedRecord, version)
	}

	info := &model.Info{Version: int32(version)}

	tsDelta, err := ReadVarint(pl)
	if err != nil {
		return nil, err
	}

	ts, err := p.deltas.ApplyTimestamp(tsDelta)
	if err != nil {
		return nil, err
	}

	if ts == 0 {
		return info, nil
	}

	info.Timestamp = time.Unix(ts, 0).UTC()

	csDelta, err := ReadVarint(pl)
	if err != nil {
		return nil, err
	}

	cs, err := p.deltas.ApplyChangeset(csDelta)
	if err != nil {
		return nil, err
	}

	info.Changeset = cs

	uid, user, err := p.readUser(pl)
	if err != nil {
		return nil, err
	}

	if uid > math.MaxInt32 {
		return nil, fmt.Errorf("%w: uid %d out of range", ErrMalformedRecord, uid)
	}

	info.UID = model.UID(uid)
	info.User = user

	return info, nil
}

// readUser decodes the uid/user pair.  On the wire it is a string pair
// whose first part is the uid's raw varint bytes, so it shares the string
// table with tag pairs.
func (p *Parser) readUser(pl *payload) (uint64, string, error) {
	ref, err := ReadUvarint(pl)
	if err != nil {
		return 0, "", err
	}

	var e Entry

	if ref == 0 {
		if e.K, err = pl.readString(); err != nil {
			return 0, "", err
		}

		if e.V, err = pl.readString(); err != nil {
			return 0, "", err
		}

		p.strings.Insert(e)
	} else {
		if e, err = p.strings.Lookup(ref); err != nil {
			return 0, "", err
		}
	}

	uid, err := uvarintString(e.K)
	if err != nil {
		return 0, "", err
	}

	return uid, e.V, nil
}

// readTags decodes key/value pairs until the payload is exhausted; the
// format carries no tag count.
func (p *Parser) readTags(pl *payload) (model.Tags, error) {
	var tags model.Tags

	for !pl.empty() {
		ref, err := ReadUvarint(pl)
		if err != nil {
			return nil, err
		}

		var e Entry

		if ref == 0 {
			if e.K, err = pl.readString(); err != nil {
				return nil, err
			}

			if e.V, err = pl.readString(); err != nil {
				return nil, err
			}

			// A history, not a set: inserted even when an identical
			// pair is already present.
			p.strings.Insert(e)
		} else {
			if e, err = p.strings.Lookup(ref); err != nil {
				return nil, err
			}
		}

		tags = append(tags, model.Tag{Key: e.K, Value: e.V})
	}

	return tags, nil
}

// subBlock reads a varint byte length and returns the payload position at
// which the sub-block ends.
func (p *Parser) subBlock(pl *payload) (int, error) {
	length, err := ReadUvarint(pl)
	if err != nil {
		return 0, err
	}

	if remaining := uint64(len(pl.buf) - pl.pos); length > remaining {
		return 0, fmt.Errorf("%w: sub-block of %d bytes exceeds remaining payload %d",
			ErrMalformedRecord, length, remaining)
	}

	return pl.pos + int(length), nil
}

// uvarintString decodes an unsigned varint held in a string, as stored
// for the uid half of a uid/user pair.  An empty string is uid zero, the
// anonymous user.
func uvarintString(s string) (uint64, error) {
	var value uint64

	for i := 0; i < len(s); i++ {
		if i == maxVarintLen {
			return 0, fmt.Errorf("%w: exceeds 10 bytes", ErrMalformedVarint)
		}

		b := s[i]

		value |= uint64(b&0x7f) << (7 * i)
		if b < 0x80 {
			return value, nil
		}
	}

	if len(s) == 0 {
		return 0, nil
	}

	return 0, fmt.Errorf("%w: unterminated uid varint", ErrMalformedVarint)
}
