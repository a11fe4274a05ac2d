package cpu

// dispatch runs the semantic handler for the decoded instruction. Every Op
// has a case; XXX and NOP fall through to doing nothing.
func (c *CPU) dispatch(operand Operand) {
	switch c.instruction.Op {
	case ADC:
		c.adc(c.fetch())
	case SBC:
		c.adc(c.fetch() ^ 0xFF)
	case AND:
		c.accumulator &= c.fetch()
		c.setZN(c.accumulator)
	case ORA:
		c.accumulator |= c.fetch()
		c.setZN(c.accumulator)
	case EOR:
		c.accumulator ^= c.fetch()
		c.setZN(c.accumulator)
	case BIT:
		c.bit()

	case ASL:
		v := c.fetch()
		c.setFlag(C, v&0x80 != 0)
		c.store(v << 1)
	case LSR:
		v := c.fetch()
		c.setFlag(C, v&0x01 != 0)
		c.store(v >> 1)
	case ROL:
		v := c.fetch()
		carry := c.getFlag(C)
		c.setFlag(C, v&0x80 != 0)
		c.store((v << 1) | carry)
	case ROR:
		v := c.fetch()
		carry := c.getFlag(C)
		c.setFlag(C, v&0x01 != 0)
		c.store((v >> 1) | (carry << 7))

	case INC:
		c.store(c.fetch() + 1)
	case DEC:
		c.store(c.fetch() - 1)
	case INX:
		c.xRegister++
		c.setZN(c.xRegister)
	case INY:
		c.yRegister++
		c.setZN(c.yRegister)
	case DEX:
		c.xRegister--
		c.setZN(c.xRegister)
	case DEY:
		c.yRegister--
		c.setZN(c.yRegister)

	case CMP:
		c.compare(c.accumulator)
	case CPX:
		c.compare(c.xRegister)
	case CPY:
		c.compare(c.yRegister)

	case LDA:
		c.accumulator = c.fetch()
		c.setZN(c.accumulator)
	case LDX:
		c.xRegister = c.fetch()
		c.setZN(c.xRegister)
	case LDY:
		c.yRegister = c.fetch()
		c.setZN(c.yRegister)
	case STA:
		c.write(c.addrAbs, c.accumulator)
	case STX:
		c.write(c.addrAbs, c.xRegister)
	case STY:
		c.write(c.addrAbs, c.yRegister)

	case TAX:
		c.xRegister = c.accumulator
		c.setZN(c.xRegister)
	case TAY:
		c.yRegister = c.accumulator
		c.setZN(c.yRegister)
	case TSX:
		c.xRegister = c.stkp
		c.setZN(c.xRegister)
	case TXA:
		c.accumulator = c.xRegister
		c.setZN(c.accumulator)
	case TYA:
		c.accumulator = c.yRegister
		c.setZN(c.accumulator)
	case TXS:
		c.stkp = c.xRegister

	case PHA:
		c.push(c.accumulator)
	case PHP:
		c.push(c.status | uint8(B) | uint8(U))
	case PLA:
		c.accumulator = c.pop()
		c.setZN(c.accumulator)
	case PLP:
		c.status = (c.pop() &^ uint8(B)) | uint8(U)

	case BCC:
		c.branch(operand, !c.Flag(C))
	case BCS:
		c.branch(operand, c.Flag(C))
	case BNE:
		c.branch(operand, !c.Flag(Z))
	case BEQ:
		c.branch(operand, c.Flag(Z))
	case BPL:
		c.branch(operand, !c.Flag(N))
	case BMI:
		c.branch(operand, c.Flag(N))
	case BVC:
		c.branch(operand, !c.Flag(V))
	case BVS:
		c.branch(operand, c.Flag(V))

	case JMP:
		c.pc = c.addrAbs
	case JSR:
		// the return address pushed is the last byte of the JSR
		c.pc--
		c.push(uint8(c.pc >> 8))
		c.push(uint8(c.pc))
		c.pc = c.addrAbs
	case RTS:
		lo := uint16(c.pop())
		hi := uint16(c.pop())
		c.pc = ((hi << 8) | lo) + 1
	case RTI:
		c.status = (c.pop() &^ uint8(B)) | uint8(U)
		lo := uint16(c.pop())
		hi := uint16(c.pop())
		c.pc = (hi << 8) | lo
	case BRK:
		// skip the padding byte that follows BRK
		c.pc++
		c.push(uint8(c.pc >> 8))
		c.push(uint8(c.pc))
		c.push(c.status | uint8(B) | uint8(U))
		c.setFlag(I, true)
		c.pc = c.readWord(IRQVector)

	case CLC:
		c.setFlag(C, false)
	case CLD:
		c.setFlag(D, false)
	case CLI:
		c.setFlag(I, false)
	case CLV:
		c.setFlag(V, false)
	case SEC:
		c.setFlag(C, true)
	case SED:
		c.setFlag(D, true)
	case SEI:
		c.setFlag(I, true)

	case NOP, XXX:
	}
}

// fetch reads the operand value for the current instruction.
func (c *CPU) fetch() uint8 {
	if c.instruction.Mode == Accumulator {
		return c.accumulator
	}
	return c.read(c.addrAbs)
}

// store writes the result of a shift, rotate, INC or DEC back to where the
// operand came from and sets N and Z on it.
func (c *CPU) store(v uint8) {
	c.setZN(v)
	if c.instruction.Mode == Accumulator {
		c.accumulator = v
		return
	}
	c.write(c.addrAbs, v)
}

// adc is binary addition with carry. SBC is ADC of the one's complement.
// The decimal flag does not change the result.
func (c *CPU) adc(value uint8) {
	temp := uint16(c.accumulator) + uint16(value) + uint16(c.getFlag(C))
	c.setFlag(C, temp > 0xFF)
	overflow := (^(uint16(c.accumulator) ^ uint16(value))) & (uint16(c.accumulator) ^ temp) & 0x0080
	c.setFlag(V, overflow != 0)
	c.accumulator = uint8(temp & 0x00FF)
	c.setZN(c.accumulator)
}

func (c *CPU) bit() {
	v := c.fetch()
	c.setFlag(Z, c.accumulator&v == 0x00)
	c.setFlag(N, v&(1<<7) != 0)
	c.setFlag(V, v&(1<<6) != 0)
}

func (c *CPU) compare(reg uint8) {
	v := c.fetch()
	c.setFlag(C, reg >= v)
	c.setZN(reg - v)
}

// branch costs one cycle when taken and another when the target is on a
// different page from the next instruction.
func (c *CPU) branch(operand Operand, taken bool) {
	if !taken {
		return
	}
	c.cycles++
	if operand.PageCrossed {
		c.cycles++
	}
	c.pc = operand.Addr
}
