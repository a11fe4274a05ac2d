package device

// Mapper translates offsets into the $8000-$FFFF cartridge window into
// offsets within program ROM. Writes into the window go to the mapper, which
// is how boards switch banks.
type Mapper interface {
	CpuMapRead(offset uint16) uint32
	CpuMapWrite(offset uint16, data uint8)
	Reset()
}

// Mapper0000 is NROM: 16KB mirrored or 32KB flat, no registers.
type Mapper0000 struct {
	PrgBanks uint8
}

func (m *Mapper0000) CpuMapRead(offset uint16) uint32 {
	mask := uint16(0x3FFF)
	if m.PrgBanks > 1 {
		mask = 0x7FFF
	}
	return uint32(offset & mask)
}

func (m *Mapper0000) CpuMapWrite(offset uint16, data uint8) {}

func (m *Mapper0000) Reset() {}

// Mapper0002 is UxROM: a switchable 16KB bank at $8000 and the last bank
// fixed at $C000. Any write into the window selects the low bank.
type Mapper0002 struct {
	PrgBanks        uint8
	PrgBankSelectLo uint8
	PrgBankSelectHi uint8
}

func (m *Mapper0002) CpuMapRead(offset uint16) uint32 {
	bank := m.PrgBankSelectLo
	if offset >= 0x4000 {
		bank = m.PrgBankSelectHi
	}
	return uint32(bank)*prgBankSize + uint32(offset&0x3FFF)
}

func (m *Mapper0002) CpuMapWrite(offset uint16, data uint8) {
	m.PrgBankSelectLo = (data & 0x0F) % m.PrgBanks
}

func (m *Mapper0002) Reset() {
	m.PrgBankSelectLo = 0
	m.PrgBankSelectHi = m.PrgBanks - 1
}

// Mapper0003 is CNROM. Its bank register only switches pattern ROM, so from
// the CPU it looks like NROM.
type Mapper0003 struct {
	Mapper0000
	chrBankSelect uint8
}

func (m *Mapper0003) CpuMapWrite(offset uint16, data uint8) {
	m.chrBankSelect = data & 0x03
}

func (m *Mapper0003) Reset() {
	m.chrBankSelect = 0
}
