package device

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	prgBankSize = 16384
	chrBankSize = 8192
	trainerSize = 512

	// CartridgeBase is where NROM program ROM is mapped.
	CartridgeBase = 0x8000
	CartridgeSize = 0x8000
)

var (
	ErrBadHeader         = errors.New("not an iNES image")
	ErrUnsupportedMapper = errors.New("unsupported mapper")
)

type MIRROR uint8

const (
	HORIZONTAL = MIRROR(0)
	VERTICAL   = MIRROR(1)
)

type header struct {
	Name         [4]byte
	PrgRomChunks uint8
	ChrRomChunks uint8
	Mapper1      uint8
	Mapper2      uint8
	PrgRamSize   uint8
	TvSystem1    uint8
	TvSystem2    uint8
	Unused       [5]byte
}

// Cartridge is the CPU side of an iNES image. Pattern memory belongs to
// the video chip and is skipped.
type Cartridge struct {
	PrgBanks uint8
	ChrBanks uint8
	MapperID uint8
	Mirror   MIRROR

	prgMemory []uint8
	mapper    Mapper
}

func LoadCartridge(r io.Reader) (*Cartridge, error) {
	h := header{}
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("cartridge header: %w", err)
	}
	if string(h.Name[:]) != "NES\x1A" {
		return nil, ErrBadHeader
	}

	if h.Mapper1&0x04 != 0 {
		if _, err := io.CopyN(io.Discard, r, trainerSize); err != nil {
			return nil, fmt.Errorf("cartridge trainer: %w", err)
		}
	}

	cart := &Cartridge{
		PrgBanks: h.PrgRomChunks,
		ChrBanks: h.ChrRomChunks,
		MapperID: ((h.Mapper2 >> 4) << 4) | (h.Mapper1 >> 4),
		Mirror:   HORIZONTAL,
	}
	if h.Mapper1&0x01 != 0 {
		cart.Mirror = VERTICAL
	}
	if cart.PrgBanks == 0 {
		return nil, fmt.Errorf("no program banks: %w", ErrBadHeader)
	}

	switch cart.MapperID {
	case 0, 3:
		if cart.PrgBanks > 2 {
			return nil, fmt.Errorf("mapper %d with %d program banks: %w", cart.MapperID, cart.PrgBanks, ErrBadHeader)
		}
		if cart.MapperID == 0 {
			cart.mapper = &Mapper0000{PrgBanks: cart.PrgBanks}
		} else {
			cart.mapper = &Mapper0003{Mapper0000: Mapper0000{PrgBanks: cart.PrgBanks}}
		}
	case 2:
		cart.mapper = &Mapper0002{PrgBanks: cart.PrgBanks}
	default:
		return nil, fmt.Errorf("mapper %d: %w", cart.MapperID, ErrUnsupportedMapper)
	}

	cart.prgMemory = make([]uint8, int(cart.PrgBanks)*prgBankSize)
	if _, err := io.ReadFull(r, cart.prgMemory); err != nil {
		return nil, fmt.Errorf("cartridge program ROM: %w", err)
	}
	if cart.ChrBanks > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(cart.ChrBanks)*chrBankSize); err != nil {
			return nil, fmt.Errorf("cartridge pattern ROM: %w", err)
		}
	}

	cart.Reset()
	return cart, nil
}

// Read takes offsets from CartridgeBase.
func (c *Cartridge) Read(offset uint16) uint8 {
	return c.prgMemory[c.mapper.CpuMapRead(offset)]
}

func (c *Cartridge) Write(offset uint16, data uint8) {
	c.mapper.CpuMapWrite(offset, data)
}

func (c *Cartridge) Peek(offset uint16) uint8 {
	return c.Read(offset)
}

func (c *Cartridge) Reset() {
	c.mapper.Reset()
}

func (c *Cartridge) PrgSize() int {
	return len(c.prgMemory)
}
