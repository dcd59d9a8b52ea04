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
)

// DeltaState holds the running totals that turn per-record deltas back
// into absolute values.  Each successfully decoded record updates the
// totals for its kind; a reset record zeroes them all.  The way-reference
// and member-id counters persist across records until reset, matching the
// format's continuity rules.
type DeltaState struct {
	nodeID     int64
	wayID      int64
	relationID int64
	lon        int64
	lat        int64
	timestamp  int64
	changeset  int64
	wayRef     int64
	memberID   int64
}

// Reset zeroes all running values.
func (s *DeltaState) Reset() {
	*s = DeltaState{}
}

// addChecked applies a delta with signed 64-bit overflow detection; the
// format does not define wraparound semantics.
func addChecked(prev, delta int64) (int64, error) {
	if delta > 0 && prev > math.MaxInt64-delta ||
		delta < 0 && prev < math.MinInt64-delta {
		return 0, fmt.Errorf("%w: delta %d overflows running value %d",
			ErrMalformedRecord, delta, prev)
	}

	return prev + delta, nil
}

// ApplyNodeID returns the absolute node id for a decoded id delta.
func (s *DeltaState) ApplyNodeID(delta int64) (int64, error) {
	v, err := addChecked(s.nodeID, delta)
	if err == nil {
		s.nodeID = v
	}

	return v, err
}

// ApplyWayID returns the absolute way id for a decoded id delta.
func (s *DeltaState) ApplyWayID(delta int64) (int64, error) {
	v, err := addChecked(s.wayID, delta)
	if err == nil {
		s.wayID = v
	}

	return v, err
}

// ApplyRelationID returns the absolute relation id for a decoded id delta.
func (s *DeltaState) ApplyRelationID(delta int64) (int64, error) {
	v, err := addChecked(s.relationID, delta)
	if err == nil {
		s.relationID = v
	}

	return v, err
}

// ApplyCoordinates returns the absolute longitude and latitude, in 1e-7
// degree units, for a decoded coordinate delta pair.
func (s *DeltaState) ApplyCoordinates(lonDelta, latDelta int64) (lon, lat int64, err error) {
	lon, err = addChecked(s.lon, lonDelta)
	if err != nil {
		return 0, 0, err
	}

	lat, err = addChecked(s.lat, latDelta)
	if err != nil {
		return 0, 0, err
	}

	s.lon, s.lat = lon, lat

	return lon, lat, nil
}

// ApplyTimestamp returns the absolute timestamp, in seconds, for a
// decoded timestamp delta.
func (s *DeltaState) ApplyTimestamp(delta int64) (int64, error) {
	v, err := addChecked(s.timestamp, delta)
	if err == nil {
		s.timestamp = v
	}

	return v, err
}

// ApplyChangeset returns the absolute changeset id for a decoded delta.
func (s *DeltaState) ApplyChangeset(delta int64) (int64, error) {
	v, err := addChecked(s.changeset, delta)
	if err == nil {
		s.changeset = v
	}

	return v, err
}

// ApplyWayRef returns the absolute node reference for a way's decoded
// reference delta.
func (s *DeltaState) ApplyWayRef(delta int64) (int64, error) {
	v, err := addChecked(s.wayRef, delta)
	if err == nil {
		s.wayRef = v
	}

	return v, err
}

// ApplyMemberID returns the absolute member id, of any kind, for a
// relation member's decoded id delta.
func (s *DeltaState) ApplyMemberID(delta int64) (int64, error) {
	v, err := addChecked(s.memberID, delta)
	if err == nil {
		s.memberID = v
	}

	return v, err
}
