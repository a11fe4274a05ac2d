package cpu

import (
	"fmt"
	"sort"
	"strings"
)

// Peeker reads memory without side effects.
type Peeker interface {
	Peek(addr uint16) uint8
}

// Line is one disassembled instruction.
type Line struct {
	Addr        uint16
	Bytes       []uint8
	Instruction Instruction
	Operand     string

	// Text is the rendered "$ADDR: MNEMONIC OPERAND" line.
	Text string

	// Prev and Next are the addresses of the neighbouring lines. Prev of the
	// first line is its own address. Next of the last line is the address
	// following it, which may lie outside the listing.
	Prev uint16
	Next uint16
}

// Asm is the line without its address prefix.
func (l Line) Asm() string {
	if l.Operand == "" {
		return l.Instruction.Name
	}
	return l.Instruction.Name + " " + l.Operand
}

// DisassembleAt decodes the single instruction at addr.
func DisassembleAt(p Peeker, addr uint16) Line {
	opcode := p.Peek(addr)
	ins := Lookup(opcode)

	n := ins.Mode.Bytes()
	bytes := make([]uint8, n)
	for i := range bytes {
		bytes[i] = p.Peek(addr + uint16(i))
	}

	operand := resolve(ins.Mode, addr+1, 0, 0, p.Peek)

	var text string
	switch ins.Mode {
	case Implied:
	case Accumulator:
		text = "A"
	case Immediate:
		text = fmt.Sprintf("#$%02X", bytes[1])
	case ZeroPage:
		text = fmt.Sprintf("$%02X", bytes[1])
	case ZeroPageX:
		text = fmt.Sprintf("$%02X,X", bytes[1])
	case ZeroPageY:
		text = fmt.Sprintf("$%02X,Y", bytes[1])
	case IndirectX:
		text = fmt.Sprintf("($%02X,X)", bytes[1])
	case IndirectY:
		text = fmt.Sprintf("($%02X),Y", bytes[1])
	case Absolute:
		text = fmt.Sprintf("$%04X", operand.Addr)
	case AbsoluteX:
		text = fmt.Sprintf("$%04X,X", operand.Addr)
	case AbsoluteY:
		text = fmt.Sprintf("$%04X,Y", operand.Addr)
	case Indirect:
		text = fmt.Sprintf("($%02X%02X)", bytes[2], bytes[1])
	case Relative:
		text = fmt.Sprintf("$%04X", operand.Addr)
	}

	line := Line{
		Addr:        addr,
		Bytes:       bytes,
		Instruction: ins,
		Operand:     text,
		Prev:        addr,
		Next:        addr + uint16(n),
	}
	line.Text = fmt.Sprintf("$%04X: %s", addr, line.Asm())
	return line
}

// Listing is the disassembly of an address range, ordered by address.
type Listing struct {
	lines []Line
	index map[uint16]int
}

// Disassemble decodes instructions from low up to and including high. The
// last instruction may run past high; it is decoded in full. Memory is read
// through p, so stateful devices are not disturbed.
func Disassemble(p Peeker, low, high uint16) *Listing {
	l := &Listing{index: make(map[uint16]int)}

	addr := uint32(low)
	prev := low
	for addr <= uint32(high) {
		line := DisassembleAt(p, uint16(addr))
		line.Prev = prev
		prev = line.Addr

		l.index[line.Addr] = len(l.lines)
		l.lines = append(l.lines, line)
		addr += uint32(len(line.Bytes))
	}
	return l
}

func (l *Listing) Len() int {
	return len(l.lines)
}

func (l *Listing) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *Listing) Line(addr uint16) (Line, bool) {
	i, ok := l.index[addr]
	if !ok {
		return Line{}, false
	}
	return l.lines[i], true
}

// Text returns the rendered lines keyed by address.
func (l *Listing) Text() map[uint16]string {
	out := make(map[uint16]string, len(l.lines))
	for _, line := range l.lines {
		out[line.Addr] = line.Text
	}
	return out
}

// Window returns up to before lines preceding addr, the line at addr and up
// to after lines following it. If addr is not the start of an instruction
// the window opens on the nearest line below it.
func (l *Listing) Window(addr uint16, before, after int) []Line {
	if len(l.lines) == 0 {
		return nil
	}
	i, ok := l.index[addr]
	if !ok {
		i = sort.Search(len(l.lines), func(n int) bool {
			return l.lines[n].Addr > addr
		}) - 1
		if i < 0 {
			i = 0
		}
	}

	from := i - before
	if from < 0 {
		from = 0
	}
	to := i + after + 1
	if to > len(l.lines) {
		to = len(l.lines)
	}
	out := make([]Line, to-from)
	copy(out, l.lines[from:to])
	return out
}

func (l *Listing) String() string {
	var sb strings.Builder
	for _, line := range l.lines {
		sb.WriteString(line.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
