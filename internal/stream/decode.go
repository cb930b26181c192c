package stream

import "encoding/binary"

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.ReadExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads a little-endian 16-bit integer.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32 reads a little-endian 32-bit integer.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadU64 reads a little-endian 64-bit integer.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.ReadExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadWord reads a word-sized (64-bit, matching the ELF64 ABI this
// loader targets) little-endian integer.
func (r *Reader) ReadWord() (uint64, error) {
	return r.ReadU64()
}

// Skip discards n bytes without returning them, used for the padding
// and unconsumed fields of the ELF file header.
func (r *Reader) Skip(n int) error {
	_, err := r.ReadExact(n)
	return err
}
