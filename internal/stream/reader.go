// Package stream provides the Byte Reader and Primitive Decoder the ELF
// parser is built on: buffered sequential reads, absolute seeks, and
// fixed-width little-endian integer decoding, all surfacing
// loaderr.Error on failure.
package stream

import (
	"bufio"
	"io"
	"os"

	"github.com/xyproto/elfload/internal/loaderr"
)

// Reader wraps a file-backed byte source with buffered sequential reads
// and absolute seeks. It is the sole owner of the underlying *os.File.
type Reader struct {
	f   *os.File
	buf *bufio.Reader
	pos int64
}

// Open opens path for reading and returns a Reader positioned at 0.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loaderr.Open(err)
	}
	return &Reader{f: f, buf: bufio.NewReader(f)}, nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.f.Close()
}

// Position reports the reader's current logical offset.
func (r *Reader) Position() int64 {
	return r.pos
}

// ReadExact reads exactly n bytes or returns loaderr.Error{Kind: KindRead}.
// Partial reads are never treated as success.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.buf, buf); err != nil {
		return nil, loaderr.Read(err)
	}
	r.pos += int64(n)
	return buf, nil
}

// Seek repositions the reader to an absolute offset from the start of
// the file, discarding any buffered lookahead.
func (r *Reader) Seek(offset int64) error {
	if _, err := r.f.Seek(offset, io.SeekStart); err != nil {
		return loaderr.Seek(err)
	}
	r.buf.Reset(r.f)
	r.pos = offset
	return nil
}
