package cpu

// Operand is the outcome of resolving an addressing mode.
type Operand struct {
	// Addr is the effective address. For Immediate it is the address of the
	// inline value, for Relative the branch target. Unused by Implied and
	// Accumulator.
	Addr uint16

	// PageCrossed is set when indexing moved Addr onto a different page than
	// the unindexed base. For Relative it compares the target against the
	// address of the next instruction.
	PageCrossed bool
}

// resolve computes the operand for mode. pc is the address of the first
// operand byte, i.e. one past the opcode. read fetches the operand bytes and
// any pointers; the CPU passes its bus read, the disassembler a peek.
func resolve(mode Mode, pc uint16, x, y uint8, read func(uint16) uint8) Operand {
	switch mode {
	case Implied, Accumulator:
		return Operand{}

	case Immediate:
		return Operand{Addr: pc}

	case ZeroPage:
		return Operand{Addr: uint16(read(pc))}

	case ZeroPageX:
		return Operand{Addr: uint16(read(pc) + x)}

	case ZeroPageY:
		return Operand{Addr: uint16(read(pc) + y)}

	case Absolute:
		return Operand{Addr: word(read, pc)}

	case AbsoluteX:
		base := word(read, pc)
		addr := base + uint16(x)
		return Operand{Addr: addr, PageCrossed: addr&0xFF00 != base&0xFF00}

	case AbsoluteY:
		base := word(read, pc)
		addr := base + uint16(y)
		return Operand{Addr: addr, PageCrossed: addr&0xFF00 != base&0xFF00}

	case Indirect:
		// the pointer's high byte is fetched without carrying into the
		// page, so JMP ($10FF) reads $10FF and $1000
		ptr := word(read, pc)
		lo := uint16(read(ptr))
		hi := uint16(read((ptr & 0xFF00) | ((ptr + 1) & 0x00FF)))
		return Operand{Addr: (hi << 8) | lo}

	case IndirectX:
		t := read(pc) + x
		lo := uint16(read(uint16(t)))
		hi := uint16(read(uint16(t + 1)))
		return Operand{Addr: (hi << 8) | lo}

	case IndirectY:
		t := read(pc)
		lo := uint16(read(uint16(t)))
		hi := uint16(read(uint16(t + 1)))
		base := (hi << 8) | lo
		addr := base + uint16(y)
		return Operand{Addr: addr, PageCrossed: addr&0xFF00 != base&0xFF00}

	case Relative:
		offset := int8(read(pc))
		next := pc + 1
		addr := next + uint16(offset)
		return Operand{Addr: addr, PageCrossed: addr&0xFF00 != next&0xFF00}
	}
	return Operand{}
}

func word(read func(uint16) uint8, addr uint16) uint16 {
	lo := uint16(read(addr))
	hi := uint16(read(addr + 1))
	return (hi << 8) | lo
}
