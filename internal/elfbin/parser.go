package elfbin

import (
	"github.com/xyproto/elfload/internal/loaderr"
	"github.com/xyproto/elfload/internal/stream"
)

var elfMagic = [4]byte{0x7F, 'E', 'L', 'F'}

// Parse reads path from the start, validating identification bytes and
// the file-header fields of interest, then decodes the full
// program-header table. The returned File retains its Reader open; the
// caller (the Loader) closes it once the transfer step completes.
func Parse(path string) (*File, error) {
	r, err := stream.Open(path)
	if err != nil {
		return nil, err
	}

	if err := validateIdent(r); err != nil {
		r.Close()
		return nil, err
	}

	// Skip OS/ABI(1) + ABI version(1) + padding(7) + e_type(2) +
	// e_machine(2) + e_version(4) = 17 bytes.
	if err := r.Skip(17); err != nil {
		r.Close()
		return nil, err
	}

	entry, err := r.ReadWord()
	if err != nil {
		r.Close()
		return nil, err
	}

	phoff, err := r.ReadWord()
	if err != nil {
		r.Close()
		return nil, err
	}

	// Skip e_shoff(8) + e_flags(4) + e_ehsize(2) + e_phentsize(2) = 16 bytes.
	if err := r.Skip(16); err != nil {
		r.Close()
		return nil, err
	}

	phnum, err := r.ReadU16()
	if err != nil {
		r.Close()
		return nil, err
	}

	if err := r.Seek(int64(phoff)); err != nil {
		r.Close()
		return nil, err
	}

	headers := make([]ProgramHeader, 0, phnum)
	for i := uint16(0); i < phnum; i++ {
		hdr, err := parseProgramHeader(r)
		if err != nil {
			r.Close()
			return nil, err
		}
		headers = append(headers, hdr)
	}

	return &File{
		Entry:          entry,
		ProgramHeaders: headers,
		Reader:         r,
	}, nil
}

// validateIdent checks magic(4) + class(1) + data(1) + version(1), the
// first seven bytes of e_ident, each against the single value this
// loader accepts.
func validateIdent(r *stream.Reader) error {
	magic, err := r.ReadExact(4)
	if err != nil {
		return err
	}
	if magic[0] != elfMagic[0] || magic[1] != elfMagic[1] || magic[2] != elfMagic[2] || magic[3] != elfMagic[3] {
		return loaderr.InvalidMagic()
	}

	class, err := r.ReadU8()
	if err != nil {
		return err
	}
	if class != 2 {
		return loaderr.InvalidBits()
	}

	data, err := r.ReadU8()
	if err != nil {
		return err
	}
	if data != 1 {
		return loaderr.InvalidEndian()
	}

	version, err := r.ReadU8()
	if err != nil {
		return err
	}
	if version != 1 {
		return loaderr.InvalidVersion()
	}

	return nil
}
