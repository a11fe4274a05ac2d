package cpu

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructionTableIsTotal(t *testing.T) {
	official := 0
	for i := 0; i < 256; i++ {
		ins := Lookup(uint8(i))
		assert.NotEmpty(t, ins.Name, "opcode %02X", i)
		assert.GreaterOrEqual(t, ins.Cycles, uint8(1), "opcode %02X", i)
		assert.Equal(t, ins.Op.String(), ins.Name, "opcode %02X", i)
		assert.Contains(t, []int{1, 2, 3}, ins.Mode.Bytes(), "opcode %02X", i)
		if ins.Op != XXX {
			official++
		} else {
			assert.Equal(t, illegal, ins, "opcode %02X", i)
		}
	}
	assert.Equal(t, 151, official)
}

func TestLoadImmediateTakesTwoClocks(t *testing.T) {
	mem := &mockMem{}
	mem.putInstructions(0x0000, 0xA9, 0x05)
	c := New(mem)

	c.Clock()
	assert.False(t, c.Complete())
	c.Clock()

	s := c.State()
	assert.Equal(t, uint8(0x05), s.A)
	assert.False(t, s.Flag(Z))
	assert.False(t, s.Flag(N))
	assert.Equal(t, uint16(0x0002), s.PC)
	assert.Equal(t, uint8(0), s.Cycles)
	assert.Equal(t, uint64(2), s.Total)
	assert.True(t, c.Complete())
}

// Every opcode, run from the reset state with operands that never cross a
// page, takes exactly its table cycles. Branches whose condition holds at
// reset (C, Z, N and V clear) pay the taken cycle.
func TestEveryOpcodeTakesTableCycles(t *testing.T) {
	taken := map[Op]bool{BPL: true, BVC: true, BCC: true, BNE: true}
	controlFlow := map[Op]bool{
		JMP: true, JSR: true, RTS: true, RTI: true, BRK: true,
		BPL: true, BMI: true, BVC: true, BVS: true, BCC: true, BCS: true, BNE: true, BEQ: true,
	}

	for i := 0; i < 256; i++ {
		opcode := uint8(i)
		ins := Lookup(opcode)
		c, _ := newTestCPU(t, 0x0200, opcode, 0x10, 0x02)

		want := int(ins.Cycles)
		if taken[ins.Op] {
			want++
		}
		assert.Equal(t, want, c.Step(), "opcode %02X %s %s", opcode, ins.Name, ins.Mode)
		assert.Equal(t, uint8(0), c.State().Cycles)

		if !controlFlow[ins.Op] {
			assert.Equal(t, uint16(0x0200+ins.Mode.Bytes()), c.State().PC, "opcode %02X", opcode)
		}
	}
}

func TestPageCrossingPenalty(t *testing.T) {
	tests := []struct {
		name    string
		program []uint8
		setup   int
		cycles  int
	}{
		{"LDA abs,X same page", []uint8{0xA2, 0x05, 0xBD, 0xF0, 0x02}, 1, 4},
		{"LDA abs,X crossing", []uint8{0xA2, 0x20, 0xBD, 0xF0, 0x02}, 1, 5},
		{"LDA abs,Y same page", []uint8{0xA0, 0x05, 0xB9, 0xF0, 0x02}, 1, 4},
		{"LDA abs,Y crossing", []uint8{0xA0, 0x20, 0xB9, 0xF0, 0x02}, 1, 5},
		{"LDX abs,Y crossing", []uint8{0xA0, 0xFF, 0xBE, 0x01, 0x03}, 1, 5},
		{"ADC abs,X crossing", []uint8{0xA2, 0x20, 0x7D, 0xF0, 0x02}, 1, 5},
		{"LDA (zp),Y same page", []uint8{0xA0, 0x01, 0xB1, 0x20}, 1, 5},
		{"LDA (zp),Y crossing", []uint8{0xA0, 0x10, 0xB1, 0x20}, 1, 6},
		{"STA abs,X same page", []uint8{0xA2, 0x05, 0x9D, 0xF0, 0x02}, 1, 5},
		{"STA abs,X crossing", []uint8{0xA2, 0x20, 0x9D, 0xF0, 0x02}, 1, 5},
		{"STA (zp),Y crossing", []uint8{0xA0, 0x10, 0x91, 0x20}, 1, 6},
		{"INC abs,X crossing", []uint8{0xA2, 0x20, 0xFE, 0xF0, 0x02}, 1, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mem := newTestCPU(t, 0x0400, tt.program...)
			mem.putWord(0x0020, 0x02F8)
			run(c, tt.setup)
			assert.Equal(t, tt.cycles, c.Step())
		})
	}
}

func TestIndexedReadCrossingReadsCorrectByte(t *testing.T) {
	c, mem := newTestCPU(t, 0x0400, 0xA0, 0x10, 0xB1, 0x20)
	mem.putWord(0x0020, 0x02F8)
	mem.data[0x0308] = 0x99
	run(c, 2)
	assert.Equal(t, uint8(0x99), c.State().A)
}

func TestBranchPenaltiesAreAdditive(t *testing.T) {
	tests := []struct {
		name   string
		origin uint16
		code   []uint8
		cycles int
		pc     uint16
	}{
		{"not taken", 0x0200, []uint8{0xF0, 0x04}, 2, 0x0202},
		{"taken same page", 0x0200, []uint8{0xD0, 0x04}, 3, 0x0206},
		{"taken crossing forward", 0x02F0, []uint8{0xD0, 0x20}, 4, 0x0312},
		{"taken crossing backward", 0x0300, []uint8{0xD0, 0xF0}, 4, 0x02F2},
		{"taken to next page start", 0x02FC, []uint8{0xD0, 0x02}, 4, 0x0300},
		{"taken backward same page", 0x0210, []uint8{0xD0, 0xFE}, 3, 0x0210},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(t, tt.origin, tt.code...)
			assert.Equal(t, tt.cycles, c.Step())
			assert.Equal(t, tt.pc, c.State().PC)
		})
	}
}

func TestADC(t *testing.T) {
	tests := []struct {
		a, m     uint8
		carry    bool
		result   uint8
		c, v, z  bool
		negative bool
	}{
		{0x50, 0x10, false, 0x60, false, false, false, false},
		{0x50, 0x50, false, 0xA0, false, true, false, true},
		{0x50, 0x90, false, 0xE0, false, false, false, true},
		{0xD0, 0x90, false, 0x60, true, true, false, false},
		{0xFF, 0x01, false, 0x00, true, false, true, false},
		{0x01, 0x01, true, 0x03, false, false, false, false},
	}
	for _, tt := range tests {
		carry := uint8(0x18)
		if tt.carry {
			carry = 0x38
		}
		c, _ := newTestCPU(t, 0x0200, 0xA9, tt.a, carry, 0x69, tt.m)
		run(c, 3)
		s := c.State()
		assert.Equal(t, tt.result, s.A, "%02X+%02X", tt.a, tt.m)
		assert.Equal(t, tt.c, s.Flag(C), "carry %02X+%02X", tt.a, tt.m)
		assert.Equal(t, tt.v, s.Flag(V), "overflow %02X+%02X", tt.a, tt.m)
		assert.Equal(t, tt.z, s.Flag(Z), "zero %02X+%02X", tt.a, tt.m)
		assert.Equal(t, tt.negative, s.Flag(N), "negative %02X+%02X", tt.a, tt.m)
	}
}

func TestSBC(t *testing.T) {
	tests := []struct {
		a, m   uint8
		result uint8
		c, v   bool
	}{
		{0x50, 0xF0, 0x60, false, false},
		{0x50, 0xB0, 0xA0, false, true},
		{0x50, 0x30, 0x20, true, false},
		{0xD0, 0x70, 0x60, true, true},
		{0x05, 0x05, 0x00, true, false},
	}
	for _, tt := range tests {
		c, _ := newTestCPU(t, 0x0200, 0xA9, tt.a, 0x38, 0xE9, tt.m)
		run(c, 3)
		s := c.State()
		assert.Equal(t, tt.result, s.A, "%02X-%02X", tt.a, tt.m)
		assert.Equal(t, tt.c, s.Flag(C), "carry %02X-%02X", tt.a, tt.m)
		assert.Equal(t, tt.v, s.Flag(V), "overflow %02X-%02X", tt.a, tt.m)
		assert.Equal(t, tt.result == 0, s.Flag(Z))
	}
}

func TestDecimalFlagDoesNotChangeArithmetic(t *testing.T) {
	c, _ := newTestCPU(t, 0x0200, 0xF8, 0x18, 0xA9, 0x09, 0x69, 0x01)
	run(c, 4)
	s := c.State()
	assert.True(t, s.Flag(D))
	assert.Equal(t, uint8(0x0A), s.A)
}

func TestCompare(t *testing.T) {
	tests := []struct {
		m       uint8
		c, z, n bool
	}{
		{0x30, true, false, false},
		{0x40, true, true, false},
		{0x50, false, false, true},
	}
	for _, tt := range tests {
		c, _ := newTestCPU(t, 0x0200, 0xA9, 0x40, 0xC9, tt.m)
		run(c, 2)
		s := c.State()
		assert.Equal(t, tt.c, s.Flag(C), "CMP #$%02X", tt.m)
		assert.Equal(t, tt.z, s.Flag(Z), "CMP #$%02X", tt.m)
		assert.Equal(t, tt.n, s.Flag(N), "CMP #$%02X", tt.m)
		assert.Equal(t, uint8(0x40), s.A)
	}

	c, _ := newTestCPU(t, 0x0200, 0xA2, 0x10, 0xE0, 0x10, 0xA0, 0x01, 0xC0, 0x02)
	run(c, 2)
	assert.True(t, c.Flag(Z))
	assert.True(t, c.Flag(C))
	run(c, 2)
	assert.False(t, c.Flag(C))
	assert.True(t, c.Flag(N))
}

func TestBIT(t *testing.T) {
	c, mem := newTestCPU(t, 0x0200, 0xA9, 0x01, 0x24, 0x10, 0xA9, 0x40, 0x24, 0x10)
	mem.data[0x10] = 0xC0
	run(c, 2)
	assert.True(t, c.Flag(Z))
	assert.True(t, c.Flag(N))
	assert.True(t, c.Flag(V))
	run(c, 2)
	assert.False(t, c.Flag(Z))
	assert.Equal(t, uint8(0x40), c.State().A)
}

func TestShiftsAndRotates(t *testing.T) {
	// ASL A
	c, mem := newTestCPU(t, 0x0200, 0xA9, 0x81, 0x0A)
	run(c, 2)
	assert.Equal(t, uint8(0x02), c.State().A)
	assert.True(t, c.Flag(C))

	// SEC; ROR $10
	c, mem = newTestCPU(t, 0x0200, 0x38, 0x66, 0x10)
	mem.data[0x10] = 0x01
	assert.Equal(t, 7, run(c, 2))
	assert.Equal(t, uint8(0x80), mem.data[0x10])
	assert.True(t, c.Flag(C))
	assert.True(t, c.Flag(N))

	// ROL A through carry
	c, _ = newTestCPU(t, 0x0200, 0x38, 0xA9, 0x80, 0x2A)
	run(c, 3)
	assert.Equal(t, uint8(0x01), c.State().A)
	assert.True(t, c.Flag(C))

	// LSR $10 to zero
	c, mem = newTestCPU(t, 0x0200, 0x46, 0x10)
	mem.data[0x10] = 0x01
	run(c, 1)
	assert.Equal(t, uint8(0x00), mem.data[0x10])
	assert.True(t, c.Flag(Z))
	assert.True(t, c.Flag(C))
}

func TestIncrementDecrementWrap(t *testing.T) {
	c, mem := newTestCPU(t, 0x0200, 0xE6, 0x10, 0xC6, 0x11, 0xA2, 0xFF, 0xE8, 0x88)
	mem.data[0x10] = 0xFF
	mem.data[0x11] = 0x00

	run(c, 1)
	assert.Equal(t, uint8(0x00), mem.data[0x10])
	assert.True(t, c.Flag(Z))
	run(c, 1)
	assert.Equal(t, uint8(0xFF), mem.data[0x11])
	assert.True(t, c.Flag(N))
	run(c, 2)
	assert.Equal(t, uint8(0x00), c.State().X)
	assert.True(t, c.Flag(Z))
	run(c, 1)
	assert.Equal(t, uint8(0xFF), c.State().Y)
	assert.True(t, c.Flag(N))
}

func TestHandlersOnlyTouchTheirFlags(t *testing.T) {
	// LDA #$FF; PHA; PLP sets every flag but B, then LDA #$01 clears N and Z only
	c, _ := newTestCPU(t, 0x0200, 0xA9, 0xFF, 0x48, 0x28, 0xA9, 0x01)
	run(c, 3)
	assert.Equal(t, uint8(0xEF), c.State().Status)
	run(c, 1)
	assert.Equal(t, uint8(0x6D), c.State().Status)

	// stores, transfers to SP and NOP leave the status alone
	c, _ = newTestCPU(t, 0x0200, 0xA9, 0xFF, 0x48, 0x28, 0x85, 0x10, 0x9A, 0xEA, 0x02)
	run(c, 3)
	before := c.State().Status
	run(c, 4)
	assert.Equal(t, before, c.State().Status)
}

func TestZeroPageIndexingWraps(t *testing.T) {
	c, mem := newTestCPU(t, 0x0200, 0xA2, 0xFF, 0xB5, 0x80)
	mem.data[0x007F] = 0x11
	mem.data[0x017F] = 0x22
	run(c, 2)
	assert.Equal(t, uint8(0x11), c.State().A)

	c, mem = newTestCPU(t, 0x0200, 0xA0, 0x02, 0xB6, 0xFF)
	mem.data[0x0001] = 0x33
	run(c, 2)
	assert.Equal(t, uint8(0x33), c.State().X)
}

func TestIndirectXPointerWrapsInZeroPage(t *testing.T) {
	c, mem := newTestCPU(t, 0x0400, 0xA2, 0x00, 0xA1, 0xFF)
	mem.data[0x00FF] = 0x00
	mem.data[0x0000] = 0x03
	mem.data[0x0100] = 0x05
	mem.data[0x0300] = 0x77
	run(c, 2)
	assert.Equal(t, uint8(0x77), c.State().A)
}

func TestJMPIndirectPageBug(t *testing.T) {
	c, mem := newTestCPU(t, 0x0400, 0x6C, 0xFF, 0x02)
	mem.data[0x02FF] = 0x34
	mem.data[0x0200] = 0x12
	mem.data[0x0300] = 0x56
	assert.Equal(t, 5, c.Step())
	assert.Equal(t, uint16(0x1234), c.State().PC)
}

func TestStackWrapsWithinPageOne(t *testing.T) {
	c, mem := newTestCPU(t, 0x0200, 0xA9, 0x42, 0xA2, 0x00, 0x9A, 0x48, 0xA9, 0x00, 0x68)
	run(c, 4)
	assert.Equal(t, uint8(0x42), mem.data[0x0100])
	assert.Equal(t, uint8(0xFF), c.State().SP)
	run(c, 2)
	s := c.State()
	assert.Equal(t, uint8(0x00), s.SP)
	assert.Equal(t, uint8(0x42), s.A)
}

func TestPHPPushesBreakAndPLPIgnoresIt(t *testing.T) {
	c, mem := newTestCPU(t, 0x0200, 0x38, 0x08, 0x28)
	run(c, 2)
	assert.Equal(t, uint8(0x35), mem.data[0x01FD])
	assert.Equal(t, uint8(0xFC), c.State().SP)
	assert.False(t, c.Flag(B))
	run(c, 1)
	assert.Equal(t, uint8(0x25), c.State().Status)
}

func TestJSRAndRTS(t *testing.T) {
	c, mem := newTestCPU(t, 0x0200, 0x20, 0x00, 0x03)
	mem.data[0x0300] = 0x60

	assert.Equal(t, 6, c.Step())
	s := c.State()
	assert.Equal(t, uint16(0x0300), s.PC)
	assert.Equal(t, uint8(0xFB), s.SP)
	assert.Equal(t, uint8(0x02), mem.data[0x01FD])
	assert.Equal(t, uint8(0x02), mem.data[0x01FC])

	assert.Equal(t, 6, c.Step())
	s = c.State()
	assert.Equal(t, uint16(0x0203), s.PC)
	assert.Equal(t, uint8(0xFD), s.SP)
}

func TestBRKAndRTI(t *testing.T) {
	c, mem := newTestCPU(t, 0x0200, 0x00, 0xEA)
	mem.data[0x9000] = 0x40

	assert.Equal(t, 7, c.Step())
	s := c.State()
	assert.Equal(t, uint16(0x9000), s.PC)
	assert.Equal(t, uint8(0x02), mem.data[0x01FD])
	assert.Equal(t, uint8(0x02), mem.data[0x01FC])
	assert.Equal(t, uint8(0x34), mem.data[0x01FB])
	assert.True(t, s.Flag(I))

	assert.Equal(t, 6, c.Step())
	s = c.State()
	assert.Equal(t, uint16(0x0202), s.PC)
	assert.Equal(t, uint8(0x24), s.Status)
	assert.Equal(t, uint8(0xFD), s.SP)
}

func TestIRQIsMaskedByInterruptDisable(t *testing.T) {
	c, mem := newTestCPU(t, 0x0200, 0x58)

	before := c.State()
	require.True(t, before.Flag(I))
	c.IRQ()
	assert.Equal(t, before, c.State())

	c.Step()
	require.False(t, c.Flag(I))
	c.IRQ()

	s := c.State()
	assert.Equal(t, uint16(0x9000), s.PC)
	assert.Equal(t, uint8(7), s.Cycles)
	assert.Equal(t, uint8(0xFA), s.SP)
	assert.True(t, s.Flag(I))
	assert.Equal(t, uint8(0x02), mem.data[0x01FD])
	assert.Equal(t, uint8(0x01), mem.data[0x01FC])
	assert.Equal(t, uint8(0x20), mem.data[0x01FB])
	assert.Equal(t, 7, c.Step())
	assert.True(t, c.Complete())
}

func TestNMIIgnoresInterruptDisable(t *testing.T) {
	c, mem := newTestCPU(t, 0x0200, 0xEA)
	require.True(t, c.Flag(I))

	c.NMI()
	s := c.State()
	assert.Equal(t, uint16(0xA000), s.PC)
	assert.Equal(t, uint8(8), s.Cycles)
	assert.Equal(t, uint8(0x24), mem.data[0x01FB])
	assert.Equal(t, 8, c.Step())
}

func TestResetIsDeterministic(t *testing.T) {
	c, mem := newTestCPU(t, 0x0200, 0xA9, 0x80, 0xAA, 0x48, 0x58, 0xE8)
	run(c, 3)
	c.Clock()

	mem.putWord(ResetVector, 0xC000)
	c.Reset()
	s := c.State()
	assert.Equal(t, uint16(0xC000), s.PC)
	assert.True(t, s.Flag(I))
	assert.True(t, s.Flag(U))
	assert.Equal(t, uint8(0), s.Cycles)
	assert.Equal(t, uint64(0), s.Total)
	assert.Equal(t, uint8(0xFD), s.SP)
	assert.Equal(t, uint8(0), s.A)
	assert.Equal(t, uint8(0), s.X)
	assert.Equal(t, uint8(0), s.Y)
}

func TestIllegalOpcodeIsTwoCycleNOP(t *testing.T) {
	c, _ := newTestCPU(t, 0x0200, 0x02)
	before := c.State()
	assert.Equal(t, 2, c.Step())
	after := c.State()
	assert.Equal(t, uint16(0x0201), after.PC)
	assert.Equal(t, before.A, after.A)
	assert.Equal(t, before.X, after.X)
	assert.Equal(t, before.Y, after.Y)
	assert.Equal(t, before.SP, after.SP)
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, uint8(0x02), after.Opcode)
}

func TestExecutionIsDeterministic(t *testing.T) {
	program := []uint8{0xA9, 0x7F, 0x38, 0x69, 0x80, 0x2A, 0x85, 0x10}
	first, _ := newTestCPU(t, 0x0200, program...)
	second, _ := newTestCPU(t, 0x0200, program...)
	assert.Equal(t, run(first, 4), run(second, 4))
	assert.Equal(t, first.State(), second.State())
}

func TestUnusedFlagAlwaysSet(t *testing.T) {
	// pull an all-clear status
	c, _ := newTestCPU(t, 0x0200, 0xA9, 0x00, 0x48, 0x28)
	run(c, 3)
	assert.True(t, c.Flag(U))
	c.SetFlag(U, false)
	assert.True(t, c.Flag(U))
}

func TestTraceLogsEachInstruction(t *testing.T) {
	c, _ := newTestCPU(t, 0x0200, 0xA9, 0x05, 0xEA)
	var buf bytes.Buffer
	c.SetTrace(&buf)
	run(c, 2)
	out := buf.String()
	assert.Contains(t, out, "0200  A9 05     LDA #$05")
	assert.Contains(t, out, "0202  EA        NOP")
	assert.Contains(t, out, "CYC:2")

	c.SetTrace(nil)
	buf.Reset()
	c.Step()
	assert.Empty(t, buf.String())
}

func TestStateFlags(t *testing.T) {
	s := State{Status: uint8(N) | uint8(U) | uint8(C)}
	assert.Equal(t, "Nv-bdizC", s.Flags())
}
