package cpu

// Mode is the addressing mode of an instruction.
type Mode uint8

const (
	Implied Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX // (zp,X)
	IndirectY // (zp),Y
	Relative
)

func (m Mode) String() string {
	switch m {
	case Implied:
		return "IMP"
	case Accumulator:
		return "ACC"
	case Immediate:
		return "IMM"
	case ZeroPage:
		return "ZP0"
	case ZeroPageX:
		return "ZPX"
	case ZeroPageY:
		return "ZPY"
	case Absolute:
		return "ABS"
	case AbsoluteX:
		return "ABX"
	case AbsoluteY:
		return "ABY"
	case Indirect:
		return "IND"
	case IndirectX:
		return "IZX"
	case IndirectY:
		return "IZY"
	case Relative:
		return "REL"
	}
	return "unknown addressing mode"
}

// Bytes is the length of an instruction using this mode, opcode included.
func (m Mode) Bytes() int {
	switch m {
	case Implied, Accumulator:
		return 1
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 3
	}
	return 2
}

// Op identifies the semantic handler. Opcodes sharing a mnemonic share an Op.
type Op uint8

const (
	XXX Op = iota
	ADC
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
)

var mnemonics = [...]string{
	XXX: "???",
	ADC: "ADC", AND: "AND", ASL: "ASL", BCC: "BCC", BCS: "BCS", BEQ: "BEQ",
	BIT: "BIT", BMI: "BMI", BNE: "BNE", BPL: "BPL", BRK: "BRK", BVC: "BVC",
	BVS: "BVS", CLC: "CLC", CLD: "CLD", CLI: "CLI", CLV: "CLV", CMP: "CMP",
	CPX: "CPX", CPY: "CPY", DEC: "DEC", DEX: "DEX", DEY: "DEY", EOR: "EOR",
	INC: "INC", INX: "INX", INY: "INY", JMP: "JMP", JSR: "JSR", LDA: "LDA",
	LDX: "LDX", LDY: "LDY", LSR: "LSR", NOP: "NOP", ORA: "ORA", PHA: "PHA",
	PHP: "PHP", PLA: "PLA", PLP: "PLP", ROL: "ROL", ROR: "ROR", RTI: "RTI",
	RTS: "RTS", SBC: "SBC", SEC: "SEC", SED: "SED", SEI: "SEI", STA: "STA",
	STX: "STX", STY: "STY", TAX: "TAX", TAY: "TAY", TSX: "TSX", TXA: "TXA",
	TXS: "TXS", TYA: "TYA",
}

func (o Op) String() string {
	if int(o) < len(mnemonics) {
		return mnemonics[o]
	}
	return "???"
}

// pagePenalty reports whether the instruction pays an extra cycle when its
// indexed address crosses a page. Stores and read-modify-write forms always
// take the long path and have it in their base cycles.
func (o Op) pagePenalty() bool {
	switch o {
	case ADC, AND, CMP, EOR, LDA, LDX, LDY, ORA, SBC:
		return true
	}
	return false
}

type Instruction struct {
	Name   string
	Op     Op
	Mode   Mode
	Cycles uint8
}

// Placeholder executed for every opcode the table has no entry for.
var illegal = Instruction{Name: "???", Op: XXX, Mode: Implied, Cycles: 2}

var instructions [256]Instruction

// Lookup returns the descriptor for an opcode. It is total over all byte
// values; unofficial opcodes get the ??? placeholder.
func Lookup(opcode uint8) Instruction {
	return instructions[opcode]
}

func init() {
	official := map[uint8]Instruction{
		0x00: {Op: BRK, Mode: Implied, Cycles: 7},
		0x01: {Op: ORA, Mode: IndirectX, Cycles: 6},
		0x05: {Op: ORA, Mode: ZeroPage, Cycles: 3},
		0x06: {Op: ASL, Mode: ZeroPage, Cycles: 5},
		0x08: {Op: PHP, Mode: Implied, Cycles: 3},
		0x09: {Op: ORA, Mode: Immediate, Cycles: 2},
		0x0A: {Op: ASL, Mode: Accumulator, Cycles: 2},
		0x0D: {Op: ORA, Mode: Absolute, Cycles: 4},
		0x0E: {Op: ASL, Mode: Absolute, Cycles: 6},

		0x10: {Op: BPL, Mode: Relative, Cycles: 2},
		0x11: {Op: ORA, Mode: IndirectY, Cycles: 5},
		0x15: {Op: ORA, Mode: ZeroPageX, Cycles: 4},
		0x16: {Op: ASL, Mode: ZeroPageX, Cycles: 6},
		0x18: {Op: CLC, Mode: Implied, Cycles: 2},
		0x19: {Op: ORA, Mode: AbsoluteY, Cycles: 4},
		0x1D: {Op: ORA, Mode: AbsoluteX, Cycles: 4},
		0x1E: {Op: ASL, Mode: AbsoluteX, Cycles: 7},

		0x20: {Op: JSR, Mode: Absolute, Cycles: 6},
		0x21: {Op: AND, Mode: IndirectX, Cycles: 6},
		0x24: {Op: BIT, Mode: ZeroPage, Cycles: 3},
		0x25: {Op: AND, Mode: ZeroPage, Cycles: 3},
		0x26: {Op: ROL, Mode: ZeroPage, Cycles: 5},
		0x28: {Op: PLP, Mode: Implied, Cycles: 4},
		0x29: {Op: AND, Mode: Immediate, Cycles: 2},
		0x2A: {Op: ROL, Mode: Accumulator, Cycles: 2},
		0x2C: {Op: BIT, Mode: Absolute, Cycles: 4},
		0x2D: {Op: AND, Mode: Absolute, Cycles: 4},
		0x2E: {Op: ROL, Mode: Absolute, Cycles: 6},

		0x30: {Op: BMI, Mode: Relative, Cycles: 2},
		0x31: {Op: AND, Mode: IndirectY, Cycles: 5},
		0x35: {Op: AND, Mode: ZeroPageX, Cycles: 4},
		0x36: {Op: ROL, Mode: ZeroPageX, Cycles: 6},
		0x38: {Op: SEC, Mode: Implied, Cycles: 2},
		0x39: {Op: AND, Mode: AbsoluteY, Cycles: 4},
		0x3D: {Op: AND, Mode: AbsoluteX, Cycles: 4},
		0x3E: {Op: ROL, Mode: AbsoluteX, Cycles: 7},

		0x40: {Op: RTI, Mode: Implied, Cycles: 6},
		0x41: {Op: EOR, Mode: IndirectX, Cycles: 6},
		0x45: {Op: EOR, Mode: ZeroPage, Cycles: 3},
		0x46: {Op: LSR, Mode: ZeroPage, Cycles: 5},
		0x48: {Op: PHA, Mode: Implied, Cycles: 3},
		0x49: {Op: EOR, Mode: Immediate, Cycles: 2},
		0x4A: {Op: LSR, Mode: Accumulator, Cycles: 2},
		0x4C: {Op: JMP, Mode: Absolute, Cycles: 3},
		0x4D: {Op: EOR, Mode: Absolute, Cycles: 4},
		0x4E: {Op: LSR, Mode: Absolute, Cycles: 6},

		0x50: {Op: BVC, Mode: Relative, Cycles: 2},
		0x51: {Op: EOR, Mode: IndirectY, Cycles: 5},
		0x55: {Op: EOR, Mode: ZeroPageX, Cycles: 4},
		0x56: {Op: LSR, Mode: ZeroPageX, Cycles: 6},
		0x58: {Op: CLI, Mode: Implied, Cycles: 2},
		0x59: {Op: EOR, Mode: AbsoluteY, Cycles: 4},
		0x5D: {Op: EOR, Mode: AbsoluteX, Cycles: 4},
		0x5E: {Op: LSR, Mode: AbsoluteX, Cycles: 7},

		0x60: {Op: RTS, Mode: Implied, Cycles: 6},
		0x61: {Op: ADC, Mode: IndirectX, Cycles: 6},
		0x65: {Op: ADC, Mode: ZeroPage, Cycles: 3},
		0x66: {Op: ROR, Mode: ZeroPage, Cycles: 5},
		0x68: {Op: PLA, Mode: Implied, Cycles: 4},
		0x69: {Op: ADC, Mode: Immediate, Cycles: 2},
		0x6A: {Op: ROR, Mode: Accumulator, Cycles: 2},
		0x6C: {Op: JMP, Mode: Indirect, Cycles: 5},
		0x6D: {Op: ADC, Mode: Absolute, Cycles: 4},
		0x6E: {Op: ROR, Mode: Absolute, Cycles: 6},

		0x70: {Op: BVS, Mode: Relative, Cycles: 2},
		0x71: {Op: ADC, Mode: IndirectY, Cycles: 5},
		0x75: {Op: ADC, Mode: ZeroPageX, Cycles: 4},
		0x76: {Op: ROR, Mode: ZeroPageX, Cycles: 6},
		0x78: {Op: SEI, Mode: Implied, Cycles: 2},
		0x79: {Op: ADC, Mode: AbsoluteY, Cycles: 4},
		0x7D: {Op: ADC, Mode: AbsoluteX, Cycles: 4},
		0x7E: {Op: ROR, Mode: AbsoluteX, Cycles: 7},

		0x81: {Op: STA, Mode: IndirectX, Cycles: 6},
		0x84: {Op: STY, Mode: ZeroPage, Cycles: 3},
		0x85: {Op: STA, Mode: ZeroPage, Cycles: 3},
		0x86: {Op: STX, Mode: ZeroPage, Cycles: 3},
		0x88: {Op: DEY, Mode: Implied, Cycles: 2},
		0x8A: {Op: TXA, Mode: Implied, Cycles: 2},
		0x8C: {Op: STY, Mode: Absolute, Cycles: 4},
		0x8D: {Op: STA, Mode: Absolute, Cycles: 4},
		0x8E: {Op: STX, Mode: Absolute, Cycles: 4},

		0x90: {Op: BCC, Mode: Relative, Cycles: 2},
		0x91: {Op: STA, Mode: IndirectY, Cycles: 6},
		0x94: {Op: STY, Mode: ZeroPageX, Cycles: 4},
		0x95: {Op: STA, Mode: ZeroPageX, Cycles: 4},
		0x96: {Op: STX, Mode: ZeroPageY, Cycles: 4},
		0x98: {Op: TYA, Mode: Implied, Cycles: 2},
		0x99: {Op: STA, Mode: AbsoluteY, Cycles: 5},
		0x9A: {Op: TXS, Mode: Implied, Cycles: 2},
		0x9D: {Op: STA, Mode: AbsoluteX, Cycles: 5},

		0xA0: {Op: LDY, Mode: Immediate, Cycles: 2},
		0xA1: {Op: LDA, Mode: IndirectX, Cycles: 6},
		0xA2: {Op: LDX, Mode: Immediate, Cycles: 2},
		0xA4: {Op: LDY, Mode: ZeroPage, Cycles: 3},
		0xA5: {Op: LDA, Mode: ZeroPage, Cycles: 3},
		0xA6: {Op: LDX, Mode: ZeroPage, Cycles: 3},
		0xA8: {Op: TAY, Mode: Implied, Cycles: 2},
		0xA9: {Op: LDA, Mode: Immediate, Cycles: 2},
		0xAA: {Op: TAX, Mode: Implied, Cycles: 2},
		0xAC: {Op: LDY, Mode: Absolute, Cycles: 4},
		0xAD: {Op: LDA, Mode: Absolute, Cycles: 4},
		0xAE: {Op: LDX, Mode: Absolute, Cycles: 4},

		0xB0: {Op: BCS, Mode: Relative, Cycles: 2},
		0xB1: {Op: LDA, Mode: IndirectY, Cycles: 5},
		0xB4: {Op: LDY, Mode: ZeroPageX, Cycles: 4},
		0xB5: {Op: LDA, Mode: ZeroPageX, Cycles: 4},
		0xB6: {Op: LDX, Mode: ZeroPageY, Cycles: 4},
		0xB8: {Op: CLV, Mode: Implied, Cycles: 2},
		0xB9: {Op: LDA, Mode: AbsoluteY, Cycles: 4},
		0xBA: {Op: TSX, Mode: Implied, Cycles: 2},
		0xBC: {Op: LDY, Mode: AbsoluteX, Cycles: 4},
		0xBD: {Op: LDA, Mode: AbsoluteX, Cycles: 4},
		0xBE: {Op: LDX, Mode: AbsoluteY, Cycles: 4},

		0xC0: {Op: CPY, Mode: Immediate, Cycles: 2},
		0xC1: {Op: CMP, Mode: IndirectX, Cycles: 6},
		0xC4: {Op: CPY, Mode: ZeroPage, Cycles: 3},
		0xC5: {Op: CMP, Mode: ZeroPage, Cycles: 3},
		0xC6: {Op: DEC, Mode: ZeroPage, Cycles: 5},
		0xC8: {Op: INY, Mode: Implied, Cycles: 2},
		0xC9: {Op: CMP, Mode: Immediate, Cycles: 2},
		0xCA: {Op: DEX, Mode: Implied, Cycles: 2},
		0xCC: {Op: CPY, Mode: Absolute, Cycles: 4},
		0xCD: {Op: CMP, Mode: Absolute, Cycles: 4},
		0xCE: {Op: DEC, Mode: Absolute, Cycles: 6},

		0xD0: {Op: BNE, Mode: Relative, Cycles: 2},
		0xD1: {Op: CMP, Mode: IndirectY, Cycles: 5},
		0xD5: {Op: CMP, Mode: ZeroPageX, Cycles: 4},
		0xD6: {Op: DEC, Mode: ZeroPageX, Cycles: 6},
		0xD8: {Op: CLD, Mode: Implied, Cycles: 2},
		0xD9: {Op: CMP, Mode: AbsoluteY, Cycles: 4},
		0xDD: {Op: CMP, Mode: AbsoluteX, Cycles: 4},
		0xDE: {Op: DEC, Mode: AbsoluteX, Cycles: 7},

		0xE0: {Op: CPX, Mode: Immediate, Cycles: 2},
		0xE1: {Op: SBC, Mode: IndirectX, Cycles: 6},
		0xE4: {Op: CPX, Mode: ZeroPage, Cycles: 3},
		0xE5: {Op: SBC, Mode: ZeroPage, Cycles: 3},
		0xE6: {Op: INC, Mode: ZeroPage, Cycles: 5},
		0xE8: {Op: INX, Mode: Implied, Cycles: 2},
		0xE9: {Op: SBC, Mode: Immediate, Cycles: 2},
		0xEA: {Op: NOP, Mode: Implied, Cycles: 2},
		0xEC: {Op: CPX, Mode: Absolute, Cycles: 4},
		0xED: {Op: SBC, Mode: Absolute, Cycles: 4},
		0xEE: {Op: INC, Mode: Absolute, Cycles: 6},

		0xF0: {Op: BEQ, Mode: Relative, Cycles: 2},
		0xF1: {Op: SBC, Mode: IndirectY, Cycles: 5},
		0xF5: {Op: SBC, Mode: ZeroPageX, Cycles: 4},
		0xF6: {Op: INC, Mode: ZeroPageX, Cycles: 6},
		0xF8: {Op: SED, Mode: Implied, Cycles: 2},
		0xF9: {Op: SBC, Mode: AbsoluteY, Cycles: 4},
		0xFD: {Op: SBC, Mode: AbsoluteX, Cycles: 4},
		0xFE: {Op: INC, Mode: AbsoluteX, Cycles: 7},
	}

	for i := range instructions {
		ins, ok := official[uint8(i)]
		if !ok {
			instructions[i] = illegal
			continue
		}
		ins.Name = ins.Op.String()
		instructions[i] = ins
	}
}
