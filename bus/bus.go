package bus

import (
	"errors"
	"fmt"
)

const (
	AddressSpace = 0x10000
	maxDevices   = 0xFE // one route slot is kept for the fill device
	unmapped     = uint8(0)
)

var (
	ErrNilDevice      = errors.New("device is nil")
	ErrEmptyRange     = errors.New("device range is empty")
	ErrRangeOverflow  = errors.New("device range runs past $FFFF")
	ErrOverlap        = errors.New("device ranges overlap")
	ErrTooManyDevices = errors.New("too many devices attached")
	ErrUnmapped       = errors.New("address not mapped to any device")
)

// Device is anything that answers reads and writes on the bus. Offsets are
// relative to the base address the device was attached at.
type Device interface {
	Read(offset uint16) uint8
	Write(offset uint16, data uint8)
}

// Peeker is implemented by devices whose Read has side effects. Peek must
// return the same value Read would without changing device state.
type Peeker interface {
	Peek(offset uint16) uint8
}

type Mapping struct {
	Base   uint16
	Size   uint32
	Device Device
}

func (m Mapping) Last() uint16 {
	return uint16(uint32(m.Base) + m.Size - 1)
}

func (m Mapping) String() string {
	return fmt.Sprintf("$%04X-$%04X %T", m.Base, m.Last(), m.Device)
}

// Bus routes every address of the 16-bit space to exactly one device.
// route holds the 1-based index of the owning mapping for each address.
type Bus struct {
	mappings []Mapping
	route    []uint8
}

func (b *Bus) resolve(addr uint16) (*Mapping, uint16) {
	m := &b.mappings[b.route[addr]-1]
	return m, addr - m.Base
}

func (b *Bus) Read(addr uint16) uint8 {
	m, offset := b.resolve(addr)
	return m.Device.Read(offset)
}

func (b *Bus) Write(addr uint16, data uint8) {
	m, offset := b.resolve(addr)
	m.Device.Write(offset, data)
}

// Peek reads without triggering device side effects. Devices that do not
// implement Peeker are read normally, so peeking them is only as clean as
// their Read.
func (b *Bus) Peek(addr uint16) uint8 {
	m, offset := b.resolve(addr)
	if p, ok := m.Device.(Peeker); ok {
		return p.Peek(offset)
	}
	return m.Device.Read(offset)
}

func (b *Bus) ReadWord(addr uint16) uint16 {
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return (hi << 8) | lo
}

func (b *Bus) PeekWord(addr uint16) uint16 {
	lo := uint16(b.Peek(addr))
	hi := uint16(b.Peek(addr + 1))
	return (hi << 8) | lo
}

// Mappings returns the attached ranges in registration order. A fill device,
// if any, is listed last with the full address space as its range.
func (b *Bus) Mappings() []Mapping {
	out := make([]Mapping, len(b.mappings))
	copy(out, b.mappings)
	return out
}
