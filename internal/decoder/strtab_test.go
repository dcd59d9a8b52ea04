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
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringTableLookupDistance(t *testing.T) {
	var tbl StringTable

	tbl.Insert(Entry{K: "highway", V: "residential"})
	tbl.Insert(Entry{K: "name", V: "Main Street"})

	e, err := tbl.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, Entry{K: "name", V: "Main Street"}, e)

	e, err = tbl.Lookup(2)
	require.NoError(t, err)
	assert.Equal(t, Entry{K: "highway", V: "residential"}, e)
}

func TestStringTableIsAHistoryNotASet(t *testing.T) {
	var tbl StringTable

	tbl.Insert(Entry{K: "oneway", V: "yes"})
	tbl.Insert(Entry{K: "oneway", V: "yes"})

	assert.Equal(t, 2, tbl.Len())

	for _, d := range []uint64{1, 2} {
		e, err := tbl.Lookup(d)
		require.NoError(t, err)
		assert.Equal(t, Entry{K: "oneway", V: "yes"}, e)
	}
}

func TestStringTableInvalidDistances(t *testing.T) {
	var tbl StringTable

	tbl.Insert(Entry{K: "a"})

	_, err := tbl.Lookup(0)
	assert.ErrorIs(t, err, ErrInvalidBackReference)

	_, err = tbl.Lookup(2)
	assert.ErrorIs(t, err, ErrInvalidBackReference)
}

func TestStringTableEviction(t *testing.T) {
	var tbl StringTable

	for i := 0; i < TableCapacity+10; i++ {
		tbl.Insert(Entry{K: strconv.Itoa(i)})
	}

	assert.Equal(t, TableCapacity, tbl.Len())

	// most recent is still at distance 1
	e, err := tbl.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(TableCapacity+9), e.K)

	// the oldest surviving entry sits at the maximum distance
	e, err = tbl.Lookup(TableCapacity)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(10), e.K)

	_, err = tbl.Lookup(TableCapacity + 1)
	assert.ErrorIs(t, err, ErrInvalidBackReference)
}

func TestStringTableClear(t *testing.T) {
	var tbl StringTable

	tbl.Insert(Entry{K: "a"})
	tbl.Clear()

	assert.Equal(t, 0, tbl.Len())

	_, err := tbl.Lookup(1)
	assert.ErrorIs(t, err, ErrInvalidBackReference)
}
