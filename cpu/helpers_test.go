package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mockMem is a flat 64KB memory that counts side-effecting reads.
type mockMem struct {
	data  [0x10000]uint8
	reads int
}

func (m *mockMem) Read(addr uint16) uint8 {
	m.reads++
	return m.data[addr]
}

func (m *mockMem) Write(addr uint16, data uint8) {
	m.data[addr] = data
}

func (m *mockMem) Peek(addr uint16) uint8 {
	return m.data[addr]
}

func (m *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		m.data[origin+uint16(i)] = b
	}
	return origin + uint16(len(bytes))
}

func (m *mockMem) putWord(addr uint16, v uint16) {
	m.data[addr] = uint8(v)
	m.data[addr+1] = uint8(v >> 8)
}

// newTestCPU loads program at origin, points the reset vector at it and
// resets. Interrupt vectors point at $9000 (IRQ) and $A000 (NMI).
func newTestCPU(t *testing.T, origin uint16, program ...uint8) (*CPU, *mockMem) {
	t.Helper()
	mem := &mockMem{}
	mem.putInstructions(origin, program...)
	mem.putWord(ResetVector, origin)
	mem.putWord(IRQVector, 0x9000)
	mem.putWord(NMIVector, 0xA000)

	c := New(mem)
	c.Reset()
	require.Equal(t, origin, c.State().PC)
	return c, mem
}

// run steps n instructions and returns the cycles they took.
func run(c *CPU, n int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += c.Step()
	}
	return total
}
