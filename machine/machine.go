package machine

import (
	"errors"
	"fmt"

	"r6502-emu/bus"
	"r6502-emu/cpu"
)

var ErrCycleLimit = errors.New("cycle limit reached")

// Ticker is a device that runs off the CPU clock.
type Ticker interface {
	Clock()
}

// Resetter is a device with power-on state of its own.
type Resetter interface {
	Reset()
}

// Interrupter is a device that can drive the CPU interrupt lines.
type Interrupter interface {
	Interrupts() (irq, nmi bool)
}

// Machine is a CPU wired to a bus, plus the devices that need clocking.
type Machine struct {
	Bus *bus.Bus
	CPU *cpu.CPU

	tickers []Ticker
	entry   *uint16
}

func New(b *bus.Bus, tickers ...Ticker) *Machine {
	return &Machine{
		Bus:     b,
		CPU:     cpu.New(b),
		tickers: tickers,
	}
}

// SetEntry makes Reset start execution at pc instead of the reset vector.
func (m *Machine) SetEntry(pc uint16) {
	m.entry = &pc
	m.CPU.SetPC(pc)
}

// Reset resets every device on the bus that has state of its own, then the
// CPU.
func (m *Machine) Reset() {
	for _, mapping := range m.Bus.Mappings() {
		if r, ok := mapping.Device.(Resetter); ok {
			r.Reset()
		}
	}
	m.CPU.Reset()
	if m.entry != nil {
		m.CPU.SetPC(*m.entry)
	}
}

// Clock runs one CPU cycle.
func (m *Machine) Clock() {
	m.clock()
}

// clock reports whether the CPU finished what it was doing on this cycle.
// Device interrupt lines are sampled at that point and a pending NMI wins
// over an IRQ.
func (m *Machine) clock() bool {
	m.CPU.Clock()
	for _, t := range m.tickers {
		t.Clock()
	}
	if !m.CPU.Complete() {
		return false
	}

	var irq, nmi bool
	for _, t := range m.tickers {
		if d, ok := t.(Interrupter); ok {
			i, n := d.Interrupts()
			irq = irq || i
			nmi = nmi || n
		}
	}
	if nmi {
		m.CPU.NMI()
	} else if irq {
		m.CPU.IRQ()
	}
	return true
}

// Step runs one instruction, or one interrupt entry sequence, and returns
// the cycles it took.
func (m *Machine) Step() int {
	n := 1
	for !m.clock() {
		n++
	}
	return n
}

func (m *Machine) RunCycles(n int) {
	for i := 0; i < n; i++ {
		m.clock()
	}
}

// RunUntil steps until the CPU is about to execute the instruction at pc.
// It gives up with ErrCycleLimit once limit cycles have gone by.
func (m *Machine) RunUntil(pc uint16, limit int) error {
	for used := 0; used < limit; {
		used += m.Step()
		if m.CPU.Complete() && m.CPU.State().PC == pc {
			return nil
		}
	}
	return fmt.Errorf("run to $%04X: stopped at $%04X after %d cycles: %w",
		pc, m.CPU.State().PC, limit, ErrCycleLimit)
}

func (m *Machine) Disassemble(low, high uint16) *cpu.Listing {
	return cpu.Disassemble(m.Bus, low, high)
}
