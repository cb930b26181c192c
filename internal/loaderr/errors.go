// Package loaderr defines the single closed error taxonomy used across
// every component of the loader: I/O faults, ELF format violations, and
// loader-stage failures all surface as a *loaderr.Error.
package loaderr

import "fmt"

// Kind identifies which variant of the taxonomy an Error carries.
type Kind int

const (
	// I/O class.
	KindOpen Kind = iota
	KindRead
	KindSeek

	// Format class.
	KindInvalidMagic
	KindInvalidBits
	KindInvalidEndian
	KindInvalidVersion
	KindInvalidSegmentType
	KindInvalidDynamicTag
	KindInvalidDataSize

	// Loader class.
	KindNoExec
	KindMmap
	KindMprotect
	KindInvalidEntry
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindRead:
		return "read"
	case KindSeek:
		return "seek"
	case KindInvalidMagic:
		return "invalid magic"
	case KindInvalidBits:
		return "invalid bits"
	case KindInvalidEndian:
		return "invalid endian"
	case KindInvalidVersion:
		return "invalid version"
	case KindInvalidSegmentType:
		return "invalid segment type"
	case KindInvalidDynamicTag:
		return "invalid dynamic tag"
	case KindInvalidDataSize:
		return "invalid data size"
	case KindNoExec:
		return "no executable segment"
	case KindMmap:
		return "mmap failed"
	case KindMprotect:
		return "mprotect failed"
	case KindInvalidEntry:
		return "invalid entry point"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the single error type every component in internal/ returns;
// the Close methods pass through the file handle's own error instead.
type Error struct {
	Kind Kind

	// Raw carries the offending raw value for InvalidSegmentType,
	// InvalidDynamicTag, and InvalidDataSize.
	Raw uint64

	// Addr, Length, and Prot carry the loader-class failure context for
	// Mmap, Mprotect, and InvalidEntry.
	Addr   uintptr
	Length uintptr
	Prot   uint32

	// Err wraps the underlying host error for the I/O class.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindOpen, KindRead, KindSeek, KindCancelled:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case KindInvalidSegmentType:
		return fmt.Sprintf("%s: 0x%x", e.Kind, e.Raw)
	case KindInvalidDynamicTag:
		return fmt.Sprintf("%s: 0x%x", e.Kind, e.Raw)
	case KindInvalidDataSize:
		return fmt.Sprintf("%s: %d", e.Kind, e.Raw)
	case KindMmap:
		return fmt.Sprintf("%s: addr=0x%x length=0x%x", e.Kind, e.Addr, e.Length)
	case KindMprotect:
		return fmt.Sprintf("%s: addr=0x%x length=0x%x prot=0x%x", e.Kind, e.Addr, e.Length, e.Prot)
	case KindInvalidEntry:
		return fmt.Sprintf("%s: 0x%x", e.Kind, e.Addr)
	default:
		return e.Kind.String()
	}
}

// Unwrap exposes the wrapped host error for the I/O class so callers can
// use errors.Is/errors.As against os.ErrNotExist, io.EOF, etc.
func (e *Error) Unwrap() error { return e.Err }

func Open(err error) *Error  { return &Error{Kind: KindOpen, Err: err} }
func Read(err error) *Error  { return &Error{Kind: KindRead, Err: err} }
func Seek(err error) *Error  { return &Error{Kind: KindSeek, Err: err} }

func InvalidMagic() *Error      { return &Error{Kind: KindInvalidMagic} }
func InvalidBits() *Error       { return &Error{Kind: KindInvalidBits} }
func InvalidEndian() *Error     { return &Error{Kind: KindInvalidEndian} }
func InvalidVersion() *Error    { return &Error{Kind: KindInvalidVersion} }

func InvalidSegmentType(raw uint32) *Error {
	return &Error{Kind: KindInvalidSegmentType, Raw: uint64(raw)}
}

func InvalidDynamicTag(raw uint64) *Error {
	return &Error{Kind: KindInvalidDynamicTag, Raw: raw}
}

func InvalidDataSize(n int) *Error {
	return &Error{Kind: KindInvalidDataSize, Raw: uint64(n)}
}

func NoExec() *Error { return &Error{Kind: KindNoExec} }

func Mmap(addr, length uintptr) *Error {
	return &Error{Kind: KindMmap, Addr: addr, Length: length}
}

func Mprotect(addr, length uintptr, prot uint32) *Error {
	return &Error{Kind: KindMprotect, Addr: addr, Length: length, Prot: prot}
}

func InvalidEntry(addr uintptr) *Error {
	return &Error{Kind: KindInvalidEntry, Addr: addr}
}

func Cancelled(err error) *Error { return &Error{Kind: KindCancelled, Err: err} }
