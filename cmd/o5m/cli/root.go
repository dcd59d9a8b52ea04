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

// Package cli holds the root command and input plumbing shared by the
// o5m subcommands.
package cli

import (
	"log"

	"github.com/spf13/cobra"
)

// RootCmd is the root of the o5m command tree.  Subcommands register
// themselves from their init functions.
var RootCmd = &cobra.Command{
	Use:   "o5m",
	Short: "Inspect and dump o5m files",
	Long:  "Inspect and dump o5m files",
}

func init() {
	RootCmd.PersistentFlags().VarP(&Compression, "compression", "z",
		"input compression: auto, none, gzip, zstd, xz, or lz4")
}

// Execute runs the command tree.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
