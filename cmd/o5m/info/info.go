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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/destel/rill"
	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/o5m"
	"m4o.io/o5m/cmd/o5m/cli"
	"m4o.io/o5m/model"
)

var out io.Writer = os.Stdout

// summary is what a full scan of an o5m file yields.
type summary struct {
	Format        string             `json:"format"`
	FileTimestamp *time.Time         `json:"file_timestamp,omitempty"`
	BoundingBox   *model.BoundingBox `json:"bounding_box,omitempty"`

	NodeCount     int64 `json:"node_count"`
	WayCount      int64 `json:"way_count"`
	RelationCount int64 `json:"relation_count"`
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
}

var infoCmd = &cobra.Command{
	Use:   "info [<o5m file>]",
	Short: "Print information about an o5m file",
	Long:  "Print information about an o5m file",
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

		info, err := runInfo(cmd.Context(), in)
		if err != nil {
			log.Fatal(err)
		}

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		jsonfmt, err := cmd.Flags().GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(info)
		} else {
			renderTxt(info)
		}
	},
}

// runInfo scans the whole stream, counting elements and collecting the
// header datasets as they pass by.
func runInfo(ctx context.Context, in io.Reader) (*summary, error) {
	d := o5m.NewDecoder(ctx, in)

	entities := make(chan rill.Try[model.Entity])

	go func() {
		defer close(entities)

		for e, err := range d.Entities() {
			entities <- rill.Try[model.Entity]{Value: e, Error: err}
		}
	}()

	info := &summary{}

	err := rill.ForEach(entities, 1, func(e model.Entity) error {
		switch v := e.(type) {
		case model.Node:
			info.NodeCount++
		case model.Way:
			info.WayCount++
		case model.Relation:
			info.RelationCount++
		case model.BoundingBox:
			info.BoundingBox = &v
		case model.Timestamp:
			info.FileTimestamp = &v.Time
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if d.Header != nil {
		info.Format = d.Header.Format
	}

	return info, nil
}

func renderJSON(info *summary) {
	b, err := json.Marshal(info)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprintln(out, string(b))
}

func renderTxt(info *summary) {
	fmt.Fprintf(out, "Format: %s\n", info.Format)

	if info.FileTimestamp != nil {
		fmt.Fprintf(out, "FileTimestamp: %s\n", info.FileTimestamp.UTC().Format(time.RFC3339))
	}

	if info.BoundingBox != nil {
		fmt.Fprintf(out, "BoundingBox: %s\n", info.BoundingBox)
	}

	fmt.Fprintf(out, "NodeCount: %s\n", humanize.Comma(info.NodeCount))
	fmt.Fprintf(out, "WayCount: %s\n", humanize.Comma(info.WayCount))
	fmt.Fprintf(out, "RelationCount: %s\n", humanize.Comma(info.RelationCount))
}
