package bus

import "fmt"

// Builder collects device ranges before the bus is sealed. Ranges may not
// overlap; an address is owned by exactly one device, so registration order
// never decides who answers.
type Builder struct {
	mappings []Mapping
	route    []uint8
	fill     Device
}

func NewBuilder() *Builder {
	return &Builder{
		route: make([]uint8, AddressSpace),
	}
}

func (b *Builder) Attach(base uint16, size uint32, dev Device) error {
	if dev == nil {
		return fmt.Errorf("attach at $%04X: %w", base, ErrNilDevice)
	}
	if size == 0 {
		return fmt.Errorf("attach %T at $%04X: %w", dev, base, ErrEmptyRange)
	}
	if uint32(base)+size > AddressSpace {
		return fmt.Errorf("attach %T at $%04X size $%X: %w", dev, base, size, ErrRangeOverflow)
	}
	if len(b.mappings) >= maxDevices {
		return fmt.Errorf("attach %T at $%04X: %w", dev, base, ErrTooManyDevices)
	}

	end := uint32(base) + size
	for addr := uint32(base); addr < end; addr++ {
		if owner := b.route[addr]; owner != unmapped {
			other := b.mappings[owner-1]
			return fmt.Errorf("attach %T at $%04X-$%04X conflicts with %s at $%04X: %w",
				dev, base, end-1, other, addr, ErrOverlap)
		}
	}

	b.mappings = append(b.mappings, Mapping{Base: base, Size: size, Device: dev})
	index := uint8(len(b.mappings))
	for addr := uint32(base); addr < end; addr++ {
		b.route[addr] = index
	}
	return nil
}

// Fill sets the device answering every address no attached device claims.
// It sees absolute addresses as its offsets.
func (b *Builder) Fill(dev Device) {
	b.fill = dev
}

func (b *Builder) Build() (*Bus, error) {
	mappings := make([]Mapping, len(b.mappings), len(b.mappings)+1)
	copy(mappings, b.mappings)
	route := make([]uint8, AddressSpace)
	copy(route, b.route)

	var fillIndex uint8
	if b.fill != nil {
		mappings = append(mappings, Mapping{Base: 0x0000, Size: AddressSpace, Device: b.fill})
		fillIndex = uint8(len(mappings))
	}

	for addr := range route {
		if route[addr] != unmapped {
			continue
		}
		if fillIndex == unmapped {
			return nil, fmt.Errorf("build bus: $%04X: %w", addr, ErrUnmapped)
		}
		route[addr] = fillIndex
	}

	return &Bus{mappings: mappings, route: route}, nil
}
