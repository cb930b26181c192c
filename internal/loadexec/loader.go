// Package loadexec implements the Loader: selecting loadable segments,
// mapping and filling and protecting each in file order, validating the
// entry point, and finally transferring control to it.
package loadexec

import (
	"context"
	"runtime"

	"github.com/xyproto/elfload/internal/elfbin"
	"github.com/xyproto/elfload/internal/loaderr"
	"github.com/xyproto/elfload/internal/memory"
	"github.com/xyproto/elfload/internal/pagemath"
)

// memoryManager is the subset of *memory.Manager the Loader depends on.
// Tests substitute a recording fake to exercise the two-phase
// protection protocol and entry-point validation without touching real
// mappings.
type memoryManager interface {
	Map(addr, length uintptr) (uintptr, error)
	Write(addr uintptr, offset int, data []byte) error
	Protect(addr, length uintptr, prot uint32) error
}

// Loader orchestrates one load-and-transfer invocation.
type Loader struct {
	mm memoryManager

	// transfer performs the final control-transfer step. It defaults to
	// callEntry (an unsafe jump to a raw address) and is only
	// substituted in tests, which must never let it actually run.
	transfer func(uintptr)
}

// New returns a Loader backed by the real Memory Manager.
func New() *Loader {
	return &Loader{mm: memory.New(), transfer: callEntry}
}

// mapping records one segment's ownership: a live, page-aligned region
// that must outlive the transfer-of-control step.
type mapping struct {
	addr   uintptr
	length uintptr
}

// Load parses path, maps and fills and protects every PT_LOAD segment
// with nonzero memsz in file order, validates that the rebased entry
// point lands inside some executable mapping, and transfers control to
// it. base is added to every ELF-relative address (vaddr and entry)
// before it is used.
//
// ctx is honored only between segments — once the entry point has been
// validated and every segment protected, the transfer itself cannot be
// cancelled, matching the single-threaded, no-retry resource model this
// loader implements.
func (l *Loader) Load(ctx context.Context, path string, base uintptr) error {
	if !is64Bit() {
		return nil
	}

	file, err := elfbin.Parse(path)
	if err != nil {
		return err
	}
	defer file.Close()

	rebasedEntry := uintptr(file.Entry) + base

	var mappings []mapping
	validEntry := false

	for _, hdr := range file.ProgramHeaders {
		if hdr.Type != elfbin.SegmentTypeLoad || hdr.Memsz == 0 {
			continue
		}

		if err := ctx.Err(); err != nil {
			return loaderr.Cancelled(err)
		}

		alignedVaddr := pagemath.AlignDown(hdr.Vaddr)
		padding := uintptr(hdr.Vaddr - alignedVaddr)
		length := padding + uintptr(hdr.Memsz)
		target := uintptr(alignedVaddr) + base

		addr, err := l.mm.Map(target, length)
		if err != nil {
			return err
		}

		if hdr.Filesz > 0 {
			if err := file.Reader.Seek(int64(hdr.Offset)); err != nil {
				return err
			}
			payload, err := file.Reader.ReadExact(int(hdr.Memsz))
			if err != nil {
				return err
			}
			if err := l.mm.Write(addr, int(padding), payload); err != nil {
				return err
			}
		}

		hostFlags := pagemath.TransposeFlags(hdr.Flags)

		if hostFlags&pagemath.HostProtExec != 0 && !validEntry {
			validEntry = addr <= rebasedEntry && rebasedEntry < addr+length
		}

		if err := l.mm.Protect(addr, length, hostFlags); err != nil {
			return err
		}

		mappings = append(mappings, mapping{addr: addr, length: length})
	}

	if !validEntry {
		return loaderr.InvalidEntry(rebasedEntry)
	}

	// mappings must stay reachable until after transfer.
	runtime.KeepAlive(mappings)
	l.transfer(rebasedEntry)
	return nil
}
