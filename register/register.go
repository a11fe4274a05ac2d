package register

import (
	"fmt"
	"sort"
	"strings"
)

type Field struct {
	Index uint16
	Size  uint16
}

// Register is a value split into named bit fields. Field values are cached
// on every change so reads are map lookups.
type Register struct {
	fields map[string]Field
	order  []string
	values map[string]uint16
	Reg    uint16
}

func mask(f Field) uint16 {
	return uint16(((^(0xFFFF << f.Size) & 0xFFFF) << f.Index) & 0xFFFF)
}

func (r *Register) SetField(key string, value uint16) {
	field, ok := r.fields[key]
	if !ok {
		return
	}

	m := mask(field)
	r.SetReg((r.Reg &^ m) | (m & (value << field.Index)))
}

func (r *Register) SetReg(value uint16) {
	r.Reg = value
	if r.values == nil {
		r.values = make(map[string]uint16, len(r.fields))
	}
	for key, field := range r.fields {
		r.values[key] = (r.Reg & mask(field)) >> field.Index
	}
}

func (r *Register) GetField(key string) uint16 {
	field, ok := r.values[key]
	if !ok {
		panic("Field " + key + " not found")
	}
	return field
}

// IsSet is GetField for single-bit fields.
func (r *Register) IsSet(key string) bool {
	return r.GetField(key) != 0
}

// Names lists the fields from the most significant down.
func (r *Register) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// String shows set one-bit fields by name and clear ones in lowercase.
// Wider fields are printed as name=value.
func (r *Register) String() string {
	var sb strings.Builder
	for _, name := range r.order {
		if r.fields[name].Size != 1 {
			fmt.Fprintf(&sb, "[%s=%X]", name, r.GetField(name))
			continue
		}
		if r.IsSet(name) {
			sb.WriteString(name)
		} else {
			sb.WriteString(strings.ToLower(name))
		}
	}
	return sb.String()
}

func CreateRegister(fields map[string]Field) Register {
	reg := Register{
		fields: fields,
		Reg:    uint16(0),
		values: make(map[string]uint16),
	}
	for key := range reg.fields {
		reg.values[key] = 0
		reg.order = append(reg.order, key)
	}
	sort.Slice(reg.order, func(i, j int) bool {
		return fields[reg.order[i]].Index > fields[reg.order[j]].Index
	})
	return reg
}

// CreateStatusRegister lays out the 6502 processor status, NV-BDIZC.
func CreateStatusRegister(status uint8) Register {
	reg := CreateRegister(map[string]Field{
		"N": {7, 1},
		"V": {6, 1},
		"U": {5, 1},
		"B": {4, 1},
		"D": {3, 1},
		"I": {2, 1},
		"Z": {1, 1},
		"C": {0, 1},
	})
	reg.SetReg(uint16(status))
	return reg
}
