package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	KindRAM       = "ram"
	KindROM       = "rom"
	KindCartridge = "cartridge"
	KindTimer     = "timer"
	KindConsole   = "console"
)

var (
	ErrUnknownKind = errors.New("unknown device kind")
	ErrMissingSize = errors.New("device needs a size")
	ErrMissingFile = errors.New("device needs an image")
	ErrNoDevices   = errors.New("no devices configured")
	ErrRange       = errors.New("address out of range")
)

// Number is an address or size. In YAML it may be written as a plain
// integer, as 0x8000, or in assembler style as "$8000".
type Number uint32

func (n *Number) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseNumber(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*n = v
	return nil
}

func ParseNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	digits, base := s, 10
	switch {
	case strings.HasPrefix(s, "$"):
		digits, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		digits, base = s[2:], 16
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	return Number(v), nil
}

type Device struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	Base Number `yaml:"base"`

	// Size is the window claimed on the bus.
	Size Number `yaml:"size"`

	// Chip is the amount of RAM behind the window; smaller than Size means
	// mirrored. Defaults to Size.
	Chip Number `yaml:"chip"`

	// Image is a file loaded into the device: the contents of a rom, an
	// iNES file for a cartridge, or a preload for ram at offset Load.
	Image string `yaml:"image"`
	Load  Number `yaml:"load"`
}

func (d Device) String() string {
	if d.Name != "" {
		return d.Name
	}
	return fmt.Sprintf("%s@$%04X", d.Kind, uint32(d.Base))
}

type Machine struct {
	Devices []Device `yaml:"devices"`

	// Fill backs every address no device claims with RAM. Without it the
	// devices have to cover the whole address space.
	Fill bool `yaml:"fill"`

	// PC overrides the reset vector after reset.
	PC *Number `yaml:"pc"`

	Trace bool `yaml:"trace"`
}

func Load(r io.Reader) (Machine, error) {
	var m Machine
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Machine{}, fmt.Errorf("machine config: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Machine{}, err
	}
	return m, nil
}

// LoadFile reads a machine config. Relative image paths are taken relative
// to the config file.
func LoadFile(path string) (Machine, error) {
	f, err := os.Open(path)
	if err != nil {
		return Machine{}, err
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return Machine{}, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i := range m.Devices {
		if img := m.Devices[i].Image; img != "" && !filepath.IsAbs(img) {
			m.Devices[i].Image = filepath.Join(dir, img)
		}
	}
	return m, nil
}

func (m Machine) Validate() error {
	if len(m.Devices) == 0 {
		return ErrNoDevices
	}
	for _, d := range m.Devices {
		if d.Base > 0xFFFF || d.Load > 0xFFFF {
			return fmt.Errorf("device %s: %w", d, ErrRange)
		}
		switch d.Kind {
		case KindRAM, KindTimer, KindConsole:
			if d.Size == 0 {
				return fmt.Errorf("device %s: %w", d, ErrMissingSize)
			}
		case KindROM, KindCartridge:
			if d.Image == "" {
				return fmt.Errorf("device %s: %w", d, ErrMissingFile)
			}
		default:
			return fmt.Errorf("device %s: %q: %w", d, d.Kind, ErrUnknownKind)
		}
	}
	if m.PC != nil && *m.PC > 0xFFFF {
		return fmt.Errorf("pc $%X: %w", uint32(*m.PC), ErrRange)
	}
	return nil
}
