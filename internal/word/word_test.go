package word_test

import (
	"testing"

	"asmkit/internal/word"
)

func TestHeadBitsStop(t *testing.T) {
	h := word.Head{Opcode: 15, SrcMask: 0, DstMask: 0, ARE: word.AREAbsolute}
	if got, want := h.Bits(), uint16(0o74004); got != want {
		t.Errorf("Bits() = %#o, want %#o", got, want)
	}
}

func TestRegBitsMovR3R5(t *testing.T) {
	h := word.Head{Opcode: 0, SrcMask: 1 << 3, DstMask: 1 << 3, ARE: word.AREAbsolute}
	r := word.Reg{SrcReg: 3, DstReg: 5, ARE: word.AREAbsolute}
	if h.Bits() > 0o77777 {
		t.Errorf("head word does not fit 15 bits: %#o", h.Bits())
	}
	if r.Bits() > 0o77777 {
		t.Errorf("reg word does not fit 15 bits: %#o", r.Bits())
	}
}

func TestImmFixupToRelocatable(t *testing.T) {
	imm := &word.Imm{Value: 0, ARE: word.AREAbsolute}
	imm.SetRelocatable(103)
	if imm.ARE != word.ARERelocatable {
		t.Errorf("ARE = %v, want relocatable", imm.ARE)
	}
	if imm.Value != 103 {
		t.Errorf("Value = %d, want 103", imm.Value)
	}
}

func TestImmFixupToExternal(t *testing.T) {
	imm := &word.Imm{Value: 42, ARE: word.AREAbsolute}
	imm.SetExternal()
	if imm.ARE != word.AREExternal || imm.Value != 0 {
		t.Errorf("got ARE=%v Value=%d, want external/0", imm.ARE, imm.Value)
	}
}

func TestImmNegativeValuePacksInto12Bits(t *testing.T) {
	imm := &word.Imm{Value: -2048, ARE: word.AREAbsolute}
	if got := imm.Bits(); got > 0o77777 {
		t.Errorf("Bits() = %#o exceeds 15 bits", got)
	}
}
