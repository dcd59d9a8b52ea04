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

package cat

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"m4o.io/o5m"
	"m4o.io/o5m/cmd/o5m/cli"
	"m4o.io/o5m/model"
)

var out io.Writer = os.Stdout

func init() {
	cli.RootCmd.AddCommand(catCmd)

	flags := catCmd.Flags()
	flags.Int64P("limit", "n", 0, "stop after this many elements, 0 for all")
}

var catCmd = &cobra.Command{
	Use:   "cat [<o5m file>]",
	Short: "Dump the elements of an o5m file as JSON lines",
	Long:  "Dump the elements of an o5m file as JSON lines",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var name string
		if len(args) == 1 {
			name = args[0]
		}

		in, err := cli.OpenInput(name)
		if err != nil {
			log.Fatal(err)
		}

		limit, err := cmd.Flags().GetInt64("limit")
		if err != nil {
			log.Fatal(err)
		}

		if err := runCat(cmd.Context(), in, limit); err != nil {
			log.Fatal(err)
		}

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}
	},
}

// line is the JSON rendering of a single element.
type line struct {
	Kind string   `json:"kind"`
	ID   model.ID `json:"id"`

	Lat *model.Degrees `json:"lat,omitempty"`
	Lon *model.Degrees `json:"lon,omitempty"`

	NodeIDs []model.ID `json:"node_ids,omitempty"`
	Members []member   `json:"members,omitempty"`

	Tags model.Tags `json:"tags,omitempty"`

	Version   int32      `json:"version,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Changeset int64      `json:"changeset,omitempty"`
	UID       model.UID  `json:"uid,omitempty"`
	User      string     `json:"user,omitempty"`
}

type member struct {
	Kind string   `json:"kind"`
	ID   model.ID `json:"id"`
	Role string   `json:"role"`
}

func runCat(ctx context.Context, in io.Reader, limit int64) error {
	d := o5m.NewDecoder(ctx, in)

	w := bufio.NewWriter(out)
	defer w.Flush()

	enc := json.NewEncoder(w)

	var n int64

	for e, err := range d.Entities() {
		if err != nil {
			return err
		}

		el, ok := e.(model.Element)
		if !ok {
			continue
		}

		if err := enc.Encode(render(el)); err != nil {
			return err
		}

		n++
		if limit > 0 && n >= limit {
			return nil
		}
	}

	return nil
}

func render(el model.Element) line {
	l := line{ID: el.GetID(), Tags: el.GetTags()}

	if info := el.GetInfo(); info != nil {
		l.Version = info.Version
		l.Changeset = info.Changeset
		l.UID = info.UID
		l.User = info.User

		if !info.Timestamp.IsZero() {
			ts := info.Timestamp.UTC()
			l.Timestamp = &ts
		}
	}

	switch v := el.(type) {
	case model.Node:
		l.Kind = "node"
		l.Lat, l.Lon = &v.Lat, &v.Lon
	case model.Way:
		l.Kind = "way"
		l.NodeIDs = v.NodeIDs
	case model.Relation:
		l.Kind = "relation"
		for _, m := range v.Members {
			l.Members = append(l.Members, member{Kind: kind(m.Type), ID: m.ID, Role: m.Role})
		}
	}

	return l
}

func kind(t model.EntityType) string {
	switch t {
	case model.NODE:
		return "node"
	case model.WAY:
		return "way"
	case model.RELATION:
		return "relation"
	default:
		return "unknown"
	}
}
