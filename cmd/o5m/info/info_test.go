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

package info

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/o5m/internal/o5mtest"
	"m4o.io/o5m/model"
)

func sampleStream() []byte {
	return o5mtest.New().
		Reset().
		Header(model.FormatO5m).
		FileTimestamp(1_700_000_000).
		BoundingBox(-5_114_820, 512_855_400, 3_354_370, 516_934_400).
		Node(model.Node{ID: 1}).
		Node(model.Node{ID: 2}).
		Node(model.Node{ID: 3}).
		Way(model.Way{ID: 10, NodeIDs: []model.ID{1, 2}}).
		Relation(model.Relation{ID: 20, Members: []model.Member{{ID: 10, Type: model.WAY}}}).
		End().
		Bytes()
}

func TestRunInfo(t *testing.T) {
	info, err := runInfo(context.Background(), bytes.NewReader(sampleStream()))
	require.NoError(t, err)

	assert.Equal(t, model.FormatO5m, info.Format)
	assert.Equal(t, int64(3), info.NodeCount)
	assert.Equal(t, int64(1), info.WayCount)
	assert.Equal(t, int64(1), info.RelationCount)

	require.NotNil(t, info.FileTimestamp)
	assert.Equal(t, time.Unix(1_700_000_000, 0).UTC(), *info.FileTimestamp)

	require.NotNil(t, info.BoundingBox)
	assert.Equal(t, int32(516_934_400), info.BoundingBox.Top.E7())
	assert.Equal(t, int32(-5_114_820), info.BoundingBox.Left.E7())
}

func TestRenderJSON(t *testing.T) {
	ts := time.Unix(1_700_000_000, 0).UTC()
	info := &summary{
		Format:        model.FormatO5m,
		FileTimestamp: &ts,
		NodeCount:     3,
		WayCount:      1,
		RelationCount: 1,
	}

	old := out
	defer func() { out = old }()

	var buf bytes.Buffer
	out = &buf

	renderJSON(info)

	assert.JSONEq(t,
		`{"format":"o5m2","file_timestamp":"2023-11-14T22:13:20Z","node_count":3,"way_count":1,"relation_count":1}`,
		buf.String())
}

func TestRenderTxt(t *testing.T) {
	info := &summary{
		Format:        model.FormatO5m,
		NodeCount:     1_234_567,
		WayCount:      1,
		RelationCount: 0,
	}

	old := out
	defer func() { out = old }()

	var buf bytes.Buffer
	out = &buf

	renderTxt(info)

	assert.Equal(t,
		"Format: o5m2\nNodeCount: 1,234,567\nWayCount: 1\nRelationCount: 0\n",
		buf.String())
}
