// Package traceio reads and writes interchange-format trace documents on the
// local filesystem. It is the only package in the repository that performs
// I/O.
package traceio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"

	"stitch/internal/gecko"
)

// ErrWriteFailure wraps any filesystem error encountered while writing the
// merged document.
var ErrWriteFailure = errors.New("write failure")

var (
	gzipMagic = []byte{0x1f, 0x8b}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Read loads, decompresses and validates one document from path.
func Read(path string) (*gecko.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	d, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Decode parses a document from raw bytes, decompressing first when the
// bytes carry a gzip or lz4 frame magic number.
func Decode(b []byte) (*gecko.Document, error) {
	switch {
	case bytes.HasPrefix(b, gzipMagic):
		zr, err := gzip.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", gecko.ErrMalformedDocument, err)
		}
		defer zr.Close()
		raw, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", gecko.ErrMalformedDocument, err)
		}
		b = raw
	case bytes.HasPrefix(b, lz4Magic):
		raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(b)))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", gecko.ErrMalformedDocument, err)
		}
		b = raw
	}
	return gecko.ParseDocument(b)
}

// Write stable-sorts each thread's marker list, then serializes the document
// gzip-compressed to path. The document lands via a temp file and rename so
// a failed write never leaves a partial file at the destination.
func Write(path string, d *gecko.Document) error {
	d.SortMarkersStable()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".stitch-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	zw := gzip.NewWriter(tmp)
	if err := json.NewEncoder(zw).Encode(d); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	tmp = nil
	return nil
}
