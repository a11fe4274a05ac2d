package cpu

import (
	"fmt"
	"io"
	"log"
	"strings"
)

const (
	StackBase   = 0x0100
	NMIVector   = 0xFFFA
	ResetVector = 0xFFFC
	IRQVector   = 0xFFFE

	irqCycles = 7
	nmiCycles = 8
)

type Flag uint8

const (
	C = Flag(1 << 0)
	Z = Flag(1 << 1)
	I = Flag(1 << 2)
	D = Flag(1 << 3)
	B = Flag(1 << 4)
	U = Flag(1 << 5)
	V = Flag(1 << 6)
	N = Flag(1 << 7)
)

// Bus is what the CPU needs from the address space. Peek is only used for
// trace output.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, data uint8)
	Peek(addr uint16) uint8
}

// State is a copy of the programmer-visible registers.
type State struct {
	A      uint8
	X      uint8
	Y      uint8
	SP     uint8
	PC     uint16
	Status uint8

	// Cycles left before the instruction in flight has settled.
	Cycles uint8
	// Total cycles clocked since the last reset.
	Total uint64
	// Opcode is the last opcode fetched.
	Opcode uint8
}

func (s State) Flag(f Flag) bool {
	return s.Status&uint8(f) != 0
}

// Flags renders the status register as NV-BDIZC with clear flags in
// lowercase.
func (s State) Flags() string {
	const names = "CZIDBUVN"
	var sb strings.Builder
	for bit := 7; bit >= 0; bit-- {
		if bit == 5 {
			sb.WriteByte('-')
			continue
		}
		ch := names[bit]
		if s.Status&(1<<bit) == 0 {
			ch += 'a' - 'A'
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}

func (s State) String() string {
	return fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X SP:%02X P:%02X %s CYC:%d",
		s.PC, s.A, s.X, s.Y, s.SP, s.Status, s.Flags(), s.Total)
}

type CPU struct {
	accumulator uint8
	xRegister   uint8
	yRegister   uint8
	stkp        uint8
	pc          uint16
	status      uint8

	addrAbs     uint16
	opcode      uint8
	instruction Instruction
	cycles      uint8
	total       uint64

	bus   Bus
	trace *log.Logger
}

func New(bus Bus) *CPU {
	return &CPU{
		bus:    bus,
		status: uint8(U),
	}
}

// SetTrace logs every executed instruction to w. A nil writer turns tracing
// off.
func (c *CPU) SetTrace(w io.Writer) {
	if w == nil {
		c.trace = nil
		return
	}
	c.trace = log.New(w, "", 0)
}

func (c *CPU) State() State {
	return State{
		A:      c.accumulator,
		X:      c.xRegister,
		Y:      c.yRegister,
		SP:     c.stkp,
		PC:     c.pc,
		Status: c.status,
		Cycles: c.cycles,
		Total:  c.total,
		Opcode: c.opcode,
	}
}

// SetPC moves execution without going through the reset vector, for hosts
// that load raw images.
func (c *CPU) SetPC(pc uint16) {
	c.pc = pc
}

func (c *CPU) Flag(flag Flag) bool {
	return c.status&uint8(flag) != 0
}

func (c *CPU) SetFlag(flag Flag, v bool) {
	if flag == U {
		return
	}
	c.setFlag(flag, v)
}

func (c *CPU) Complete() bool {
	return c.cycles == 0
}

func (c *CPU) getFlag(flag Flag) uint8 {
	if c.status&uint8(flag) != 0 {
		return 1
	}
	return 0
}

func (c *CPU) setFlag(flag Flag, v bool) {
	if v {
		c.status |= uint8(flag)
	} else {
		c.status &= ^uint8(flag)
	}
}

func (c *CPU) setZN(v uint8) {
	c.setFlag(Z, v == 0x00)
	c.setFlag(N, v&0x80 != 0)
}

func (c *CPU) read(addr uint16) uint8 {
	return c.bus.Read(addr)
}

func (c *CPU) write(addr uint16, data uint8) {
	c.bus.Write(addr, data)
}

func (c *CPU) readWord(addr uint16) uint16 {
	return word(c.read, addr)
}

func (c *CPU) push(data uint8) {
	c.write(StackBase+uint16(c.stkp), data)
	c.stkp--
}

func (c *CPU) pop() uint8 {
	c.stkp++
	return c.read(StackBase + uint16(c.stkp))
}

// Reset loads PC from the reset vector. A, X and Y are undefined on the real
// part; they are zeroed here.
func (c *CPU) Reset() {
	c.pc = c.readWord(ResetVector)

	c.accumulator = 0
	c.xRegister = 0
	c.yRegister = 0
	c.stkp = 0xFD
	c.status = uint8(U) | uint8(I)

	c.addrAbs = 0x0000
	c.opcode = 0x00
	c.instruction = Lookup(0x00)
	c.cycles = 0
	c.total = 0
}

// IRQ requests a maskable interrupt. It is dropped while I is set.
func (c *CPU) IRQ() {
	if c.Flag(I) {
		return
	}
	c.interrupt(IRQVector, irqCycles)
}

// NMI is always serviced.
func (c *CPU) NMI() {
	c.interrupt(NMIVector, nmiCycles)
}

func (c *CPU) interrupt(vector uint16, cycles uint8) {
	c.push(uint8(c.pc >> 8))
	c.push(uint8(c.pc))
	c.push((c.status &^ uint8(B)) | uint8(U))
	c.setFlag(I, true)
	c.pc = c.readWord(vector)
	c.cycles += cycles
}

// Clock advances the CPU by one cycle. The whole instruction executes on its
// first cycle; the remaining cycles only count down.
func (c *CPU) Clock() {
	if c.cycles == 0 {
		c.execute()
	}
	c.cycles--
	c.total++
}

// Step clocks until the instruction (or interrupt sequence) in flight has
// completed and returns the number of cycles that took.
func (c *CPU) Step() int {
	n := 0
	for {
		c.Clock()
		n++
		if c.cycles == 0 {
			return n
		}
	}
}

func (c *CPU) execute() {
	if c.trace != nil {
		c.traceInstruction()
	}

	c.opcode = c.read(c.pc)
	c.pc++
	c.instruction = Lookup(c.opcode)

	operand := resolve(c.instruction.Mode, c.pc, c.xRegister, c.yRegister, c.read)
	c.pc += uint16(c.instruction.Mode.Bytes() - 1)
	c.addrAbs = operand.Addr

	c.cycles = c.instruction.Cycles
	if operand.PageCrossed && c.instruction.Op.pagePenalty() {
		c.cycles++
	}

	c.dispatch(operand)
	c.status |= uint8(U)
}

func (c *CPU) traceInstruction() {
	line := DisassembleAt(c.bus, c.pc)
	bytes := make([]string, len(line.Bytes))
	for i, b := range line.Bytes {
		bytes[i] = fmt.Sprintf("%02X", b)
	}
	c.trace.Printf("%04X  %-8s  %-14s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		c.pc, strings.Join(bytes, " "), line.Asm(),
		c.accumulator, c.xRegister, c.yRegister, c.status, c.stkp, c.total)
}
