// Command elfload loads a 64-bit little-endian ELF executable into this
// process's own address space and jumps to its entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/xyproto/env/v2"

	"github.com/xyproto/elfload/internal/elfbin"
	"github.com/xyproto/elfload/internal/loadexec"
)

// base is the fixed load offset. The source this loader is modeled on
// uses 0x400000 by convention, the historic x86-64 text-segment base;
// making it configurable is out of scope.
const base = 0x400000

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <path-to-elf>\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	verbose := env.BoolOr("ELFLOAD_VERBOSE", false)
	if verbose {
		describe(path)
	}

	l := loadexec.New()
	if err := l.Load(context.Background(), path, base); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// describe prints the parsed program-header table before the real
// load-and-transfer runs. Purely diagnostic: it opens and parses the
// file independently and never influences load semantics.
func describe(path string) {
	file, err := elfbin.Parse(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "elfload: parse failed: %v\n", err)
		return
	}
	defer file.Close()

	fmt.Fprintf(os.Stderr, "entry: 0x%x\n", file.Entry)
	fmt.Fprintf(os.Stderr, "base:  0x%x\n", uint64(base))
	for i, hdr := range file.ProgramHeaders {
		fmt.Fprintf(os.Stderr, "  [%d] %-12s flags=%03b offset=0x%-8x vaddr=0x%-10x filesz=0x%-8x memsz=0x%-8x\n",
			i, hdr.Type, hdr.Flags, hdr.Offset, hdr.Vaddr, hdr.Filesz, hdr.Memsz)
	}
}
