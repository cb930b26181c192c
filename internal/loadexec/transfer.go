package loadexec

import (
	"strconv"
	"unsafe"
)

// is64Bit reports whether the host's pointer width is 64 bits, the
// Loader's first runtime check before touching any ELF state.
func is64Bit() bool {
	return strconv.IntSize == 64
}

// entryFunc is the calling convention this loader transfers control
// with: a parameterless, return-less procedure.
type entryFunc func()

// callEntry reinterprets addr as a parameterless procedure and calls
// it. This bypasses every language-level safety guarantee Go normally
// provides: addr must already point at valid, executable, mapped code,
// which Load guarantees by construction before calling this. Control
// never returns here in the ordinary case — the loaded program is
// expected to exit via its own syscall.
func callEntry(addr uintptr) {
	// A Go func value points at a word holding the code address, so the
	// call goes through a pointer to a copy of addr, not addr itself.
	code := addr
	codePtr := unsafe.Pointer(&code)
	fn := *(*entryFunc)(unsafe.Pointer(&codePtr))
	fn()
}
