// Copyright (c) 2026 rangebar-go Authors
//
// Reader/writer compression helpers, adapted from the teacher's
// dbn.MakeCompressedReader/Writer to zstd-transparent trade logs.

package tradeio

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// OpenReader returns an io.Reader for filename, or os.Stdin if filename is
// "-", plus a closer to defer. If filename ends in ".zst"/".zstd", or
// useZstd is true, the reader transparently zstd-decompresses the input.
func OpenReader(filename string, useZstd bool) (io.Reader, io.Closer, error) {
	var reader io.Reader
	var closer io.Closer

	if filename != "-" {
		file, err := os.Open(filename)
		if err != nil {
			return nil, nil, err
		}
		reader, closer = file, file
	} else {
		reader = os.Stdin
	}

	if useZstd || strings.HasSuffix(filename, ".zst") || strings.HasSuffix(filename, ".zstd") {
		zr, err := zstd.NewReader(reader)
		if err != nil {
			if closer != nil {
				closer.Close()
			}
			return nil, nil, err
		}
		return zr.IOReadCloser(), nopCloserIfNil(closer), nil
	}
	return reader, nopCloserIfNil(closer), nil
}

// OpenWriter returns an io.Writer for filename, or os.Stdout if filename is
// "-", plus a close function to defer. If filename ends in ".zst"/".zstd",
// or useZstd is true, the writer zstd-compresses the output.
func OpenWriter(filename string, useZstd bool) (io.Writer, func() error, error) {
	var writer io.Writer
	var closer io.Closer

	if filename != "-" {
		file, err := os.Create(filename)
		if err != nil {
			return nil, nil, err
		}
		writer, closer = file, file
	} else {
		writer = os.Stdout
	}

	if useZstd || strings.HasSuffix(filename, ".zst") || strings.HasSuffix(filename, ".zstd") {
		zw, err := zstd.NewWriter(writer)
		if err != nil {
			if closer != nil {
				closer.Close()
			}
			return nil, nil, err
		}
		return zw, func() error {
			zw.Close()
			if closer != nil {
				return closer.Close()
			}
			return nil
		}, nil
	}
	return writer, func() error {
		if closer != nil {
			return closer.Close()
		}
		return nil
	}, nil
}

func nopCloserIfNil(c io.Closer) io.Closer {
	if c != nil {
		return c
	}
	return nopCloser{}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
