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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeltaStateIDs(t *testing.T) {
	var s DeltaState

	var ids []int64
	for _, delta := range []int64{100, 5, -7} {
		id, err := s.ApplyNodeID(delta)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	assert.Equal(t, []int64{100, 105, 98}, ids)
}

func TestDeltaStateKindsAreIndependent(t *testing.T) {
	var s DeltaState

	id, err := s.ApplyNodeID(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	id, err = s.ApplyWayID(7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	id, err = s.ApplyRelationID(-3)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), id)
}

func TestDeltaStateCoordinates(t *testing.T) {
	var s DeltaState

	lon, lat, err := s.ApplyCoordinates(135_000_000, 495_000_000)
	require.NoError(t, err)
	assert.Equal(t, int64(135_000_000), lon)
	assert.Equal(t, int64(495_000_000), lat)

	lon, lat, err = s.ApplyCoordinates(-1_000, 2_000)
	require.NoError(t, err)
	assert.Equal(t, int64(134_999_000), lon)
	assert.Equal(t, int64(495_002_000), lat)
}

func TestDeltaStateReset(t *testing.T) {
	var s DeltaState

	_, err := s.ApplyNodeID(1000)
	require.NoError(t, err)

	s.Reset()

	id, err := s.ApplyNodeID(50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), id)
}

func TestDeltaStateOverflow(t *testing.T) {
	var s DeltaState

	_, err := s.ApplyNodeID(math.MaxInt64)
	require.NoError(t, err)

	_, err = s.ApplyNodeID(1)
	assert.ErrorIs(t, err, ErrMalformedRecord)

	s.Reset()

	_, err = s.ApplyTimestamp(math.MinInt64)
	require.NoError(t, err)

	_, err = s.ApplyTimestamp(-1)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}
