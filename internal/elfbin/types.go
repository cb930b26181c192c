// Package elfbin implements the ELF Parser, Program-Header Parser, and
// Dynamic-Segment Parser: a streaming, bit-exact decoder for 64-bit
// little-endian ELF executables, built directly on internal/stream.
package elfbin

import (
	"fmt"

	"github.com/xyproto/elfload/internal/loaderr"
	"github.com/xyproto/elfload/internal/stream"
)

// SegmentType is the closed set of program-header kinds this loader
// recognizes.
type SegmentType uint32

const (
	SegmentTypeNull        SegmentType = 0x0
	SegmentTypeLoad        SegmentType = 0x1
	SegmentTypeDynamic     SegmentType = 0x2
	SegmentTypeInterp      SegmentType = 0x3
	SegmentTypeNote        SegmentType = 0x4
	SegmentTypeShlib       SegmentType = 0x5
	SegmentTypePhdrTable   SegmentType = 0x6
	SegmentTypeLoos        SegmentType = 0x6000_0000
	SegmentTypeHios        SegmentType = 0x6FFF_FFFF
	SegmentTypeLoProc      SegmentType = 0x7000_0000
	SegmentTypeHiProc      SegmentType = 0x7FFF_FFFF
	SegmentTypeGnuEhFrame  SegmentType = 0x6474_E550
	SegmentTypeGnuStack    SegmentType = 0x6474_E551
	SegmentTypeGnuRelRo    SegmentType = 0x6474_E552
	SegmentTypeGnuProperty SegmentType = 0x6474_E553
)

func (t SegmentType) String() string {
	switch t {
	case SegmentTypeNull:
		return "NULL"
	case SegmentTypeLoad:
		return "LOAD"
	case SegmentTypeDynamic:
		return "DYNAMIC"
	case SegmentTypeInterp:
		return "INTERP"
	case SegmentTypeNote:
		return "NOTE"
	case SegmentTypeShlib:
		return "SHLIB"
	case SegmentTypePhdrTable:
		return "PHDR"
	case SegmentTypeLoos, SegmentTypeHios:
		return "OS-specific"
	case SegmentTypeLoProc, SegmentTypeHiProc:
		return "processor-specific"
	case SegmentTypeGnuEhFrame:
		return "GNU_EH_FRAME"
	case SegmentTypeGnuStack:
		return "GNU_STACK"
	case SegmentTypeGnuRelRo:
		return "GNU_RELRO"
	case SegmentTypeGnuProperty:
		return "GNU_PROPERTY"
	default:
		return fmt.Sprintf("SegmentType(0x%x)", uint32(t))
	}
}

// parseSegmentType maps a raw program-header type code to SegmentType,
// failing for anything outside the closed set.
func parseSegmentType(raw uint32) (SegmentType, error) {
	switch SegmentType(raw) {
	case SegmentTypeNull, SegmentTypeLoad, SegmentTypeDynamic, SegmentTypeInterp,
		SegmentTypeNote, SegmentTypeShlib, SegmentTypePhdrTable,
		SegmentTypeLoos, SegmentTypeHios, SegmentTypeLoProc, SegmentTypeHiProc,
		SegmentTypeGnuEhFrame, SegmentTypeGnuStack, SegmentTypeGnuRelRo, SegmentTypeGnuProperty:
		return SegmentType(raw), nil
	default:
		return 0, loaderr.InvalidSegmentType(raw)
	}
}

// Segment permission bits, ELF encoding: bit 0 = executable, bit 1 =
// writable, bit 2 = readable.
const (
	FlagExec  uint32 = 1 << 0
	FlagWrite uint32 = 1 << 1
	FlagRead  uint32 = 1 << 2
)

// ProgramHeader is one decoded program-header record.
type ProgramHeader struct {
	Type   SegmentType
	Flags  uint32
	Offset uint64
	Vaddr  uint64
	Paddr  uint64
	Filesz uint64
	Memsz  uint64
	Align  uint64

	// Dynamic holds the parsed tag/value array when Type ==
	// SegmentTypeDynamic; nil otherwise.
	Dynamic []DynamicEntry
}

// DynamicTag is the closed set of tags that can appear in a Dynamic
// segment's entry array.
type DynamicTag uint64

const (
	DynamicTagNull        DynamicTag = 0x0
	DynamicTagNeeded      DynamicTag = 0x1
	DynamicTagPltRelSz    DynamicTag = 0x2
	DynamicTagPltGot      DynamicTag = 0x3
	DynamicTagHash        DynamicTag = 0x4
	DynamicTagStrTab      DynamicTag = 0x5
	DynamicTagSymTab      DynamicTag = 0x6
	DynamicTagRela        DynamicTag = 0x7
	DynamicTagRelaSz      DynamicTag = 0x8
	DynamicTagRelaEnt     DynamicTag = 0x9
	DynamicTagStrSz       DynamicTag = 0xA
	DynamicTagSymEnt      DynamicTag = 0xB
	DynamicTagInit        DynamicTag = 0xC
	DynamicTagFini        DynamicTag = 0xD
	DynamicTagSoName      DynamicTag = 0xE
	DynamicTagRPath       DynamicTag = 0xF
	DynamicTagSymbolic    DynamicTag = 0x10
	DynamicTagRel         DynamicTag = 0x11
	DynamicTagRelSz       DynamicTag = 0x12
	DynamicTagRelEnt      DynamicTag = 0x13
	DynamicTagPltRel      DynamicTag = 0x14
	DynamicTagDebug       DynamicTag = 0x15
	DynamicTagTextRel     DynamicTag = 0x16
	DynamicTagJmpRel      DynamicTag = 0x17
	DynamicTagBindNow     DynamicTag = 0x18
	DynamicTagInitArray   DynamicTag = 0x19
	DynamicTagFiniArray   DynamicTag = 0x1A
	DynamicTagInitArraySz DynamicTag = 0x1B
	DynamicTagFiniArraySz DynamicTag = 0x1C
	DynamicTagFlags       DynamicTag = 0x1E
	DynamicTagLoOs        DynamicTag = 0x6000_0000
	DynamicTagHiOs        DynamicTag = 0x6FFF_FFFF
	DynamicTagLoProc      DynamicTag = 0x7000_0000
	DynamicTagHiProc      DynamicTag = 0x7FFF_FFFF
	DynamicTagGnuHash     DynamicTag = 0x6FFF_FEF5
	DynamicTagFlags1      DynamicTag = 0x6FFF_FFFB
	DynamicTagRelaCount   DynamicTag = 0x6FFF_FFF9
)

func (t DynamicTag) String() string {
	switch t {
	case DynamicTagNull:
		return "NULL"
	case DynamicTagNeeded:
		return "NEEDED"
	case DynamicTagPltRelSz:
		return "PLTRELSZ"
	case DynamicTagPltGot:
		return "PLTGOT"
	case DynamicTagHash:
		return "HASH"
	case DynamicTagStrTab:
		return "STRTAB"
	case DynamicTagSymTab:
		return "SYMTAB"
	case DynamicTagRela:
		return "RELA"
	case DynamicTagRelaSz:
		return "RELASZ"
	case DynamicTagRelaEnt:
		return "RELAENT"
	case DynamicTagStrSz:
		return "STRSZ"
	case DynamicTagSymEnt:
		return "SYMENT"
	case DynamicTagInit:
		return "INIT"
	case DynamicTagFini:
		return "FINI"
	case DynamicTagSoName:
		return "SONAME"
	case DynamicTagRPath:
		return "RPATH"
	case DynamicTagSymbolic:
		return "SYMBOLIC"
	case DynamicTagRel:
		return "REL"
	case DynamicTagRelSz:
		return "RELSZ"
	case DynamicTagRelEnt:
		return "RELENT"
	case DynamicTagPltRel:
		return "PLTREL"
	case DynamicTagDebug:
		return "DEBUG"
	case DynamicTagTextRel:
		return "TEXTREL"
	case DynamicTagJmpRel:
		return "JMPREL"
	case DynamicTagBindNow:
		return "BIND_NOW"
	case DynamicTagInitArray:
		return "INIT_ARRAY"
	case DynamicTagFiniArray:
		return "FINI_ARRAY"
	case DynamicTagInitArraySz:
		return "INIT_ARRAYSZ"
	case DynamicTagFiniArraySz:
		return "FINI_ARRAYSZ"
	case DynamicTagFlags:
		return "FLAGS"
	case DynamicTagLoOs, DynamicTagHiOs:
		return "OS-specific"
	case DynamicTagLoProc, DynamicTagHiProc:
		return "processor-specific"
	case DynamicTagGnuHash:
		return "GNU_HASH"
	case DynamicTagFlags1:
		return "FLAGS_1"
	case DynamicTagRelaCount:
		return "RELACOUNT"
	default:
		return fmt.Sprintf("DynamicTag(0x%x)", uint64(t))
	}
}

func parseDynamicTag(raw uint64) (DynamicTag, error) {
	switch DynamicTag(raw) {
	case DynamicTagNull, DynamicTagNeeded, DynamicTagPltRelSz, DynamicTagPltGot,
		DynamicTagHash, DynamicTagStrTab, DynamicTagSymTab, DynamicTagRela,
		DynamicTagRelaSz, DynamicTagRelaEnt, DynamicTagStrSz, DynamicTagSymEnt,
		DynamicTagInit, DynamicTagFini, DynamicTagSoName, DynamicTagRPath,
		DynamicTagSymbolic, DynamicTagRel, DynamicTagRelSz, DynamicTagRelEnt,
		DynamicTagPltRel, DynamicTagDebug, DynamicTagTextRel, DynamicTagJmpRel,
		DynamicTagBindNow, DynamicTagInitArray, DynamicTagFiniArray,
		DynamicTagInitArraySz, DynamicTagFiniArraySz, DynamicTagFlags,
		DynamicTagLoOs, DynamicTagHiOs, DynamicTagLoProc, DynamicTagHiProc,
		DynamicTagGnuHash, DynamicTagFlags1, DynamicTagRelaCount:
		return DynamicTag(raw), nil
	default:
		return 0, loaderr.InvalidDynamicTag(raw)
	}
}

// DynamicEntry is one (tag, value) pair from a Dynamic segment's payload.
type DynamicEntry struct {
	Tag   DynamicTag
	Value uint64
}

// Rela is a relocation record, defined for completeness but unused by
// the loading path: type and symbol are the low/high 32-bit halves of
// the 64-bit r_info field.
type Rela struct {
	Offset uint64
	Type   uint32
	Symbol uint32
	Addend uint64
}

// ParseRela decodes a 24-byte Elf64_Rela record.
func ParseRela(data []byte) (Rela, error) {
	if len(data) != 24 {
		return Rela{}, loaderr.InvalidDataSize(len(data))
	}
	offset := leU64(data[0:8])
	info := leU64(data[8:16])
	addend := leU64(data[16:24])
	return Rela{
		Offset: offset,
		Type:   uint32(info),
		Symbol: uint32(info >> 32),
		Addend: addend,
	}, nil
}

func leU64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// File is the Parsed ELF value: the entry-point address, the ordered
// program-header list, and the retained reader the Loader streams
// segment payloads from.
type File struct {
	Entry          uint64
	ProgramHeaders []ProgramHeader
	Reader         *stream.Reader
}

// Close releases the retained reader's file handle.
func (f *File) Close() error {
	return f.Reader.Close()
}
