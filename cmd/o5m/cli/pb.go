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

package cli

import (
	"fmt"
	"io"
	"os"

	pb "gopkg.in/cheggaaa/pb.v1"
)

// progressReader proxies reads from a file through a ProgressBar and
// cleans the bar off the terminal when closed.
type progressReader struct {
	io.ReadCloser
	bar *pb.ProgressBar
}

// newProgressReader wraps f, whose size is known, with a byte-count
// progress bar on stderr.
func newProgressReader(f *os.File, size int64) io.ReadCloser {
	bar := pb.New64(size).SetUnits(pb.U_BYTES_DEC).SetWidth(79)
	bar.Output = os.Stderr
	bar.Start()

	return &progressReader{ReadCloser: bar.NewProxyReader(f), bar: bar}
}

// Close finishes the bar without its trailing newline, clears the
// terminal line, and closes the underlying file.
func (p *progressReader) Close() error {
	p.bar.Output = nil
	p.bar.NotPrint = true
	p.bar.Finish()

	fmt.Fprint(os.Stderr, "\033[2K\r")

	return p.ReadCloser.Close()
}
