package elfbin

import "github.com/xyproto/elfload/internal/stream"

// programHeaderSize is the on-disk size of one Elf64_Phdr record.
const programHeaderSize = 56

// parseProgramHeader reads one 56-byte program-header record from r's
// current position, in file order. If the decoded kind is Dynamic, it
// additionally peeks the segment's payload out-of-band: it records r's
// position, seeks to offset, reads filesz bytes, and seeks back before
// returning, so that a caller looping over phnum headers continues
// reading the *next* header sequentially.
func parseProgramHeader(r *stream.Reader) (ProgramHeader, error) {
	rawType, err := r.ReadU32()
	if err != nil {
		return ProgramHeader{}, err
	}
	flags, err := r.ReadU32()
	if err != nil {
		return ProgramHeader{}, err
	}
	offset, err := r.ReadWord()
	if err != nil {
		return ProgramHeader{}, err
	}
	vaddr, err := r.ReadWord()
	if err != nil {
		return ProgramHeader{}, err
	}
	paddr, err := r.ReadWord()
	if err != nil {
		return ProgramHeader{}, err
	}
	filesz, err := r.ReadWord()
	if err != nil {
		return ProgramHeader{}, err
	}
	memsz, err := r.ReadWord()
	if err != nil {
		return ProgramHeader{}, err
	}
	align, err := r.ReadWord()
	if err != nil {
		return ProgramHeader{}, err
	}

	kind, err := parseSegmentType(rawType)
	if err != nil {
		return ProgramHeader{}, err
	}

	hdr := ProgramHeader{
		Type:   kind,
		Flags:  flags,
		Offset: offset,
		Vaddr:  vaddr,
		Paddr:  paddr,
		Filesz: filesz,
		Memsz:  memsz,
		Align:  align,
	}

	if kind == SegmentTypeDynamic {
		saved := r.Position()

		if err := r.Seek(int64(offset)); err != nil {
			return ProgramHeader{}, err
		}
		payload, err := r.ReadExact(int(filesz))
		if err != nil {
			return ProgramHeader{}, err
		}
		if err := r.Seek(saved); err != nil {
			return ProgramHeader{}, err
		}

		entries, err := parseDynamic(payload)
		if err != nil {
			return ProgramHeader{}, err
		}
		hdr.Dynamic = entries
	}

	return hdr, nil
}
