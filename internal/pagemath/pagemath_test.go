package pagemath

import "testing"

// S3: the full flag transposition vector from spec.md.
func TestTransposeFlags_Vector(t *testing.T) {
	cases := []struct {
		elf, host uint32
	}{
		{0b000, 0b000},
		{0b001, 0b100},
		{0b010, 0b010},
		{0b011, 0b110},
		{0b100, 0b001},
		{0b101, 0b101},
		{0b110, 0b011},
		{0b111, 0b111},
	}
	for _, c := range cases {
		if got := TransposeFlags(c.elf); got != c.host {
			t.Errorf("TransposeFlags(0b%03b) = 0b%03b, want 0b%03b", c.elf, got, c.host)
		}
	}
}

// Invariant 3: transpose is an involution over [0, 8).
func TestTransposeFlags_Involution(t *testing.T) {
	for x := uint32(0); x < 8; x++ {
		got := TransposeFlags(TransposeFlags(x))
		if got != x {
			t.Errorf("TransposeFlags(TransposeFlags(%d)) = %d, want %d", x, got, x)
		}
	}
}

// Invariant 4: page_align_down(addr) <= addr < page_align_down(addr) + page_size().
func TestAlignDown_Invariant(t *testing.T) {
	ps := PageSize()
	if ps == 0 || ps&(ps-1) != 0 {
		t.Fatalf("PageSize() = %d, want a nonzero power of two", ps)
	}

	addrs := []uint64{0, 1, ps - 1, ps, ps + 1, 3*ps + 17, 0x400000, 0x401234}
	for _, addr := range addrs {
		down := AlignDown(addr)
		if down > addr {
			t.Errorf("AlignDown(%d) = %d > addr", addr, down)
		}
		if addr-down >= ps {
			t.Errorf("addr(%d) - AlignDown(%d) = %d, want < page size %d", addr, addr, addr-down, ps)
		}
		if down%ps != 0 {
			t.Errorf("AlignDown(%d) = %d is not page-aligned", addr, down)
		}
	}
}
