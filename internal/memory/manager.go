// Package memory implements the Memory Manager: creating an anonymous
// mapping at an exactly-requested address and altering its permissions.
// No unmap is exposed — mappings are deliberately leaked for the rest of
// the process's lifetime per the loader's resource model.
package memory

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/xyproto/elfload/internal/loaderr"
)

// Manager creates and reprotects anonymous mappings on behalf of the
// Loader. It holds no state of its own; every mapping it creates is
// tracked by the caller.
type Manager struct{}

// New returns a ready-to-use Manager.
func New() *Manager {
	return &Manager{}
}

// Map creates an anonymous, private, initially readable+writable
// mapping of length bytes. The host is required to honor addr exactly:
// if the kernel returns a different address, the mapping is treated as
// a failure even though memory was technically allocated, because the
// Loader depends on vaddr being realized exactly modulo the chosen
// base.
func (m *Manager) Map(addr, length uintptr) (uintptr, error) {
	got, _, errno := unix.Syscall6(
		unix.SYS_MMAP,
		addr,
		length,
		uintptr(unix.PROT_READ|unix.PROT_WRITE),
		uintptr(unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_FIXED),
		^uintptr(0), // fd = -1
		0,
	)
	if errno != 0 {
		return 0, loaderr.Mmap(addr, length)
	}
	if got != addr {
		return 0, loaderr.Mmap(addr, length)
	}
	return got, nil
}

// Write copies data into an existing mapping at addr, starting offset
// bytes in. The caller must have already mapped at least
// offset+len(data) bytes at addr.
func (m *Manager) Write(addr uintptr, offset int, data []byte) error {
	region := unsafe.Slice((*byte)(unsafe.Pointer(addr)), offset+len(data))
	copy(region[offset:], data)
	return nil
}

// Protect alters the permissions of an existing mapping spanning
// [addr, addr+length) to prot (a PROT_* bitmask).
func (m *Manager) Protect(addr, length uintptr, prot uint32) error {
	region := unsafe.Slice((*byte)(unsafe.Pointer(addr)), length)
	if err := unix.Mprotect(region, int(prot)); err != nil {
		return loaderr.Mprotect(addr, length, prot)
	}
	return nil
}
