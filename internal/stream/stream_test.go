package stream

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xyproto/elfload/internal/loaderr"
)

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stream.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestReadExact(t *testing.T) {
	path := writeTemp(t, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	first, err := r.ReadExact(3)
	if err != nil {
		t.Fatalf("ReadExact: %v", err)
	}
	if string(first) != "\x01\x02\x03" {
		t.Fatalf("got %v", first)
	}
	if r.Position() != 3 {
		t.Fatalf("Position() = %d, want 3", r.Position())
	}

	second, err := r.ReadExact(5)
	if err != nil {
		t.Fatalf("ReadExact: %v", err)
	}
	if len(second) != 5 {
		t.Fatalf("got %d bytes, want 5", len(second))
	}
}

func TestReadExact_Underrun(t *testing.T) {
	path := writeTemp(t, []byte{1, 2})
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	_, err = r.ReadExact(5)
	if err == nil {
		t.Fatal("ReadExact succeeded past EOF, want an error")
	}
	le, ok := err.(*loaderr.Error)
	if !ok || le.Kind != loaderr.KindRead {
		t.Fatalf("err = %v, want KindRead", err)
	}
}

func TestSeekThenReadExact(t *testing.T) {
	path := writeTemp(t, []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE})
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if _, err := r.ReadExact(2); err != nil {
		t.Fatalf("ReadExact: %v", err)
	}

	// Peek ahead then restore, the exact pattern the Program-Header
	// Parser uses for Dynamic segments.
	saved := r.Position()
	if err := r.Seek(4); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	peeked, err := r.ReadExact(1)
	if err != nil {
		t.Fatalf("ReadExact: %v", err)
	}
	if peeked[0] != 0xEE {
		t.Fatalf("got 0x%x, want 0xEE", peeked[0])
	}

	if err := r.Seek(saved); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if r.Position() != saved {
		t.Fatalf("Position() = %d, want %d", r.Position(), saved)
	}
	next, err := r.ReadExact(1)
	if err != nil {
		t.Fatalf("ReadExact: %v", err)
	}
	if next[0] != 0xCC {
		t.Fatalf("got 0x%x, want 0xCC (the byte after the first ReadExact(2))", next[0])
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("Open succeeded for a missing file")
	}
	le, ok := err.(*loaderr.Error)
	if !ok || le.Kind != loaderr.KindOpen {
		t.Fatalf("err = %v, want KindOpen", err)
	}
}

func TestDecodeLittleEndian(t *testing.T) {
	path := writeTemp(t, []byte{
		0x42,                               // u8
		0x01, 0x02, // u16 -> 0x0201
		0x01, 0x02, 0x03, 0x04, // u32 -> 0x04030201
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, // u64
	})
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	u8, err := r.ReadU8()
	if err != nil || u8 != 0x42 {
		t.Fatalf("ReadU8() = %v, %v, want 0x42, nil", u8, err)
	}

	u16, err := r.ReadU16()
	if err != nil || u16 != 0x0201 {
		t.Fatalf("ReadU16() = 0x%x, %v, want 0x0201, nil", u16, err)
	}

	u32, err := r.ReadU32()
	if err != nil || u32 != 0x04030201 {
		t.Fatalf("ReadU32() = 0x%x, %v, want 0x04030201, nil", u32, err)
	}

	u64, err := r.ReadU64()
	if err != nil || u64 != 0x0807060504030201 {
		t.Fatalf("ReadU64() = 0x%x, %v, want 0x0807060504030201, nil", u64, err)
	}
}
