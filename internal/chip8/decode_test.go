package chip8

import "testing"

func TestDecodeFields(t *testing.T) {
	in := Decode(0xA2F0)
	if in.Op != 0xA || in.NNN != 0x2F0 {
		t.Fatalf("got op=%x nnn=%x, want op=a nnn=2f0", in.Op, in.NNN)
	}

	in = Decode(0x8126)
	if in.Op != 0x8 || in.X != 0x1 || in.Y != 0x2 || in.N != 0x6 {
		t.Fatalf("got %+v", in)
	}

	in = Decode(0x63FF)
	if in.X != 0x3 || in.KK != 0xFF {
		t.Fatalf("got %+v", in)
	}
}

func TestClassifyAllDocumentedOpcodes(t *testing.T) {
	cases := []struct {
		word uint16
		kind Kind
	}{
		{0x00E0, OpCLS},
		{0x00EE, OpRET},
		{0x1234, OpJP},
		{0x2345, OpCALL},
		{0x3012, OpSE_VX_KK},
		{0x4012, OpSNE_VX_KK},
		{0x5120, OpSE_VX_VY},
		{0x6012, OpLD_VX_KK},
		{0x7012, OpADD_VX_KK},
		{0x8120, OpLD_VX_VY},
		{0x8121, OpOR},
		{0x8122, OpAND},
		{0x8123, OpXOR},
		{0x8124, OpADD_VX_VY},
		{0x8125, OpSUB},
		{0x8126, OpSHR},
		{0x8127, OpSUBN},
		{0x812E, OpSHL},
		{0x9120, OpSNE_VX_VY},
		{0xA123, OpLD_I_NNN},
		{0xB123, OpJP_V0},
		{0xC1FF, OpRND},
		{0xD125, OpDRW},
		{0xE19E, OpSKP},
		{0xE1A1, OpSKNP},
		{0xF107, OpLD_VX_DT},
		{0xF10A, OpLD_VX_K},
		{0xF115, OpLD_DT_VX},
		{0xF118, OpLD_ST_VX},
		{0xF11E, OpADD_I_VX},
		{0xF129, OpLD_F_VX},
		{0xF133, OpLD_B_VX},
		{0xF155, OpLD_I_VX},
		{0xF165, OpLD_VX_I},
	}
	for _, c := range cases {
		if got := Decode(c.word).Kind; got != c.kind {
			t.Errorf("Decode(%#04x).Kind = %v, want %v", c.word, got, c.kind)
		}
	}
}

func TestClassifyUndefinedOpcodesAreInvalid(t *testing.T) {
	undefined := []uint16{0x0123, 0x5121, 0x8128, 0x9121, 0xE199, 0xF199}
	for _, word := range undefined {
		if got := Decode(word).Kind; got != OpInvalid {
			t.Errorf("Decode(%#04x).Kind = %v, want OpInvalid", word, got)
		}
	}
}

func TestIsBranchTerminator(t *testing.T) {
	terminators := []uint16{0x00EE, 0x1200, 0x2200, 0x3012, 0x4012, 0x5120, 0x9120, 0xB200, 0xE19E, 0xE1A1, 0xF10A}
	for _, word := range terminators {
		if !Decode(word).IsBranchTerminator() {
			t.Errorf("Decode(%#04x).IsBranchTerminator() = false, want true", word)
		}
	}
	nonTerminators := []uint16{0x00E0, 0x6012, 0x7012, 0x8120, 0xA123, 0xC1FF, 0xD125, 0xF107}
	for _, word := range nonTerminators {
		if Decode(word).IsBranchTerminator() {
			t.Errorf("Decode(%#04x).IsBranchTerminator() = true, want false", word)
		}
	}
}
