// Package pagemath provides the page-size query, page-down alignment,
// and ELF-to-host permission-bit transposition the Loader needs to turn
// a program header's vaddr/flags into a mmap-able region.
package pagemath

import "golang.org/x/sys/unix"

// PageSize returns the host's page size, the portable (cgo-free)
// equivalent of sysconf(_SC_PAGESIZE).
func PageSize() uint64 {
	return uint64(unix.Getpagesize())
}

// AlignDown rounds addr down to the nearest page boundary.
func AlignDown(addr uint64) uint64 {
	return addr &^ (PageSize() - 1)
}

// ELF segment permission bits: bit 0 = executable, bit 1 = writable,
// bit 2 = readable.
const (
	ElfExec  uint32 = 1 << 0
	ElfWrite uint32 = 1 << 1
	ElfRead  uint32 = 1 << 2
)

// HostProtExec is the host's PROT_EXEC bit, exported so callers can test
// a transposed flags value for executability without importing
// golang.org/x/sys/unix themselves.
const HostProtExec uint32 = uint32(unix.PROT_EXEC)

// TransposeFlags converts an ELF program-header flags field, encoded as
// (X, W, R) in bits (0, 1, 2), into the host's mmap/mprotect encoding,
// (R, W, X) in bits (0, 1, 2): ELF bit 0 (X) -> host bit 2 (PROT_EXEC),
// ELF bit 1 (W) -> host bit 1 (PROT_WRITE), ELF bit 2 (R) -> host bit 0
// (PROT_READ). It is its own inverse.
func TransposeFlags(elfFlags uint32) uint32 {
	var host uint32
	if elfFlags&ElfExec != 0 {
		host |= uint32(unix.PROT_EXEC)
	}
	if elfFlags&ElfWrite != 0 {
		host |= uint32(unix.PROT_WRITE)
	}
	if elfFlags&ElfRead != 0 {
		host |= uint32(unix.PROT_READ)
	}
	return host
}
