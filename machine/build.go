package machine

import (
	"fmt"
	"io"
	"os"

	"r6502-emu/bus"
	"r6502-emu/config"
	"r6502-emu/device"
)

// FromConfig builds the devices and bus a machine description asks for and
// resets the CPU. Console devices write to out.
func FromConfig(cfg config.Machine, out io.Writer) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := bus.NewBuilder()
	var tickers []Ticker
	for _, d := range cfg.Devices {
		dev, size, err := newDevice(d, out)
		if err != nil {
			return nil, fmt.Errorf("device %s: %w", d, err)
		}
		if err := b.Attach(uint16(d.Base), size, dev); err != nil {
			return nil, fmt.Errorf("device %s: %w", d, err)
		}
		if t, ok := dev.(Ticker); ok {
			tickers = append(tickers, t)
		}
	}
	if cfg.Fill {
		b.Fill(device.NewRAM(bus.AddressSpace))
	}

	built, err := b.Build()
	if err != nil {
		return nil, err
	}

	m := New(built, tickers...)
	if cfg.Trace {
		m.CPU.SetTrace(os.Stderr)
	}
	if cfg.PC != nil {
		m.SetEntry(uint16(*cfg.PC))
	}
	m.Reset()
	return m, nil
}

func newDevice(d config.Device, out io.Writer) (bus.Device, uint32, error) {
	size := uint32(d.Size)
	switch d.Kind {
	case config.KindRAM:
		chip := uint32(d.Chip)
		if chip == 0 || chip > size {
			chip = size
		}
		ram := device.NewRAM(int(chip))
		if d.Image != "" {
			data, err := readImage(d.Image)
			if err != nil {
				return nil, 0, err
			}
			ram.Load(uint16(d.Load), data)
		}
		return ram, size, nil

	case config.KindROM:
		data, err := readImage(d.Image)
		if err != nil {
			return nil, 0, err
		}
		rom, err := device.NewROM(data)
		if err != nil {
			return nil, 0, err
		}
		if size == 0 {
			size = uint32(rom.Size())
		}
		return rom, size, nil

	case config.KindCartridge:
		f, err := os.Open(d.Image)
		if err != nil {
			return nil, 0, err
		}
		defer f.Close()
		cart, err := device.LoadCartridge(f)
		if err != nil {
			return nil, 0, err
		}
		if size == 0 {
			size = device.CartridgeSize
		}
		return cart, size, nil

	case config.KindTimer:
		return device.NewTimer(), size, nil

	case config.KindConsole:
		return device.NewConsole(out), size, nil
	}
	return nil, 0, fmt.Errorf("%q: %w", d.Kind, config.ErrUnknownKind)
}

func readImage(path string) ([]uint8, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return device.LoadImage(f)
}
