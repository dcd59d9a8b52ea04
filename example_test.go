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

package o5m_test

import (
	"bytes"
	"context"
	"fmt"

	"m4o.io/o5m"
	"m4o.io/o5m/internal/o5mtest"
	"m4o.io/o5m/model"
)

func ExampleDecoder_Entities() {
	stream := o5mtest.New().
		Reset().
		Header(model.FormatO5m).
		Node(model.Node{ID: 100, Lon: 13.5, Lat: 49.5}).
		Node(model.Node{ID: 105, Lon: 13.5, Lat: 49.5}).
		Way(model.Way{ID: 200, NodeIDs: []model.ID{100, 105}}).
		End().
		Bytes()

	d := o5m.NewDecoder(context.Background(), bytes.NewReader(stream))

	for e, err := range d.Entities() {
		if err != nil {
			fmt.Println("decode failed:", err)

			return
		}

		switch v := e.(type) {
		case model.Node:
			fmt.Printf("node %d\n", v.ID)
		case model.Way:
			fmt.Printf("way %d with %d refs\n", v.ID, len(v.NodeIDs))
		}
	}

	// Output:
	// node 100
	// node 105
	// way 200 with 2 refs
}
