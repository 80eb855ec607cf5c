package snapshot

import (
	"testing"

	"github.com/oleworth/go-spectrum/internal/engine"
)

func buildSNA() []byte {
	data := make([]byte, snaLength)
	word := func(off int, v uint16) {
		data[off] = byte(v)
		data[off+1] = byte(v >> 8)
	}

	data[0] = 0x3F // I
	word(1, 0x1111) // HL'
	word(3, 0x2222) // DE'
	word(5, 0x3333) // BC'
	word(7, 0x4444) // AF'
	word(9, 0x5555) // HL
	word(11, 0x6666) // DE
	word(13, 0x7777) // BC
	word(15, 0x8888) // IY
	word(17, 0x9999) // IX
	data[19] = 0x04 // interrupts enabled
	data[20] = 0x7A // R
	word(21, 0xAABB) // AF
	word(23, 0xFF00) // SP
	data[25] = 0x01 // IM
	data[26] = 0x03 // border

	// PC on the stack at SP
	ram := data[27:]
	ram[0xFF00-0x4000] = 0x34
	ram[0xFF01-0x4000] = 0x12

	// recognisable page contents
	ram[0] = 0x55                  // bank 5 (0x4000)
	ram[engine.PageSize] = 0x22    // bank 2 (0x8000)
	ram[2*engine.PageSize] = 0x99  // bank 0 (0xC000)

	return data
}

func TestReadSNA(t *testing.T) {
	s, err := ReadSNA(buildSNA())
	if err != nil {
		t.Fatal(err)
	}

	if s.Model != engine.Spectrum48K {
		t.Errorf("model = %v, want 48K", s.Model)
	}

	want := map[string]uint16{
		"HL_": 0x1111, "DE_": 0x2222, "BC_": 0x3333, "AF_": 0x4444,
		"HL": 0x5555, "DE": 0x6666, "BC": 0x7777,
		"IY": 0x8888, "IX": 0x9999,
		"AF": 0xAABB, "IR": 0x3F7A,
		"PC": 0x1234, "SP": 0xFF02,
	}
	for name, v := range want {
		if s.Registers[name] != v {
			t.Errorf("%s = %04X, want %04X", name, s.Registers[name], v)
		}
	}

	if !s.IFF1 || !s.IFF2 {
		t.Error("interrupt flip-flops not set")
	}
	if s.IM != 1 {
		t.Errorf("IM = %d, want 1", s.IM)
	}
	if s.Border != 3 {
		t.Errorf("border = %d, want 3", s.Border)
	}

	if s.Pages[5][0] != 0x55 || s.Pages[2][0] != 0x22 || s.Pages[0][0] != 0x99 {
		t.Error("page contents misassigned")
	}
}

func TestReadSNAWrongLength(t *testing.T) {
	if _, err := ReadSNA(make([]byte, 100)); err == nil {
		t.Fatal("expected error for wrong length")
	}
}

func TestReadSNAStackInROM(t *testing.T) {
	data := buildSNA()
	data[23], data[24] = 0x00, 0x20 // SP = 0x2000
	if _, err := ReadSNA(data); err == nil {
		t.Fatal("expected error for SP in ROM")
	}
}

func TestReadSNAStackAtTopOfMemory(t *testing.T) {
	// SP = 0xFFFF puts the stacked PC high byte past the end of RAM; the
	// reader must reject that rather than index past the dump
	data := buildSNA()
	data[23], data[24] = 0xFF, 0xFF
	if _, err := ReadSNA(data); err == nil {
		t.Fatal("expected error for SP at top of memory")
	}

	// SP = 0xFFFE is the highest stack that still holds a whole PC
	data[23], data[24] = 0xFE, 0xFF
	ram := data[27:]
	ram[0xFFFE-0x4000] = 0x34
	ram[0xFFFF-0x4000] = 0x12
	s, err := ReadSNA(data)
	if err != nil {
		t.Fatal(err)
	}
	if s.Registers["PC"] != 0x1234 {
		t.Errorf("PC = %04X, want 1234", s.Registers["PC"])
	}
	if s.Registers["SP"] != 0x0000 {
		t.Errorf("SP = %04X, want 0000", s.Registers["SP"])
	}
}
