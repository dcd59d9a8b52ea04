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
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/spf13/pflag"
	"github.com/ulikunitz/xz"
)

// Compression is the input compression selected on the command line,
// "auto" unless overridden.
var Compression = CompressionValue("auto")

// CompressionValue is a pflag value restricted to the supported input
// compression schemes.
type CompressionValue string

var _ pflag.Value = (*CompressionValue)(nil)

func (c *CompressionValue) Set(val string) error {
	switch val {
	case "auto", "none", "gzip", "zstd", "xz", "lz4":
		*c = CompressionValue(val)

		return nil
	}

	return fmt.Errorf("unsupported compression %q", val)
}

func (c *CompressionValue) Type() string { return "scheme" }

func (c *CompressionValue) String() string { return string(*c) }

// Magic prefixes of the supported compression containers.
var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicXz   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	magicLz4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// OpenInput opens the named file, or stdin when name is empty, attaches
// a progress bar for regular files, and layers a decompressor per the
// Compression flag.  In auto mode the container is sniffed from the
// stream's magic bytes, so compressed and plain files need no flags.
func OpenInput(name string) (io.ReadCloser, error) {
	var in io.ReadCloser = os.Stdin

	if name != "" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}

		in = f

		// progress needs a known size, which pipes and stdin lack
		if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() {
			in = newProgressReader(f, fi.Size())
		}
	}

	r, err := decompress(in, string(Compression))
	if err != nil {
		in.Close()

		return nil, err
	}

	return struct {
		io.Reader
		io.Closer
	}{r, in}, nil
}

func decompress(in io.Reader, scheme string) (io.Reader, error) {
	br := bufio.NewReader(in)

	if scheme == "auto" {
		magic, err := br.Peek(len(magicXz))
		if err != nil {
			// short or empty input, let the decoder report it
			return br, nil
		}

		switch {
		case bytes.HasPrefix(magic, magicGzip):
			scheme = "gzip"
		case bytes.HasPrefix(magic, magicZstd):
			scheme = "zstd"
		case bytes.HasPrefix(magic, magicXz):
			scheme = "xz"
		case bytes.HasPrefix(magic, magicLz4):
			scheme = "lz4"
		default:
			scheme = "none"
		}
	}

	switch scheme {
	case "gzip":
		return gzip.NewReader(br)
	case "zstd":
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}

		return zr.IOReadCloser(), nil
	case "xz":
		return xz.NewReader(br)
	case "lz4":
		return lz4.NewReader(br), nil
	default:
		return br, nil
	}
}
