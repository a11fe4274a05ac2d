package device

// RAM is read/write memory. When it is attached over a window larger than
// itself the contents repeat, the way 2KB of work RAM shows up four times in
// $0000-$1FFF on the NES.
type RAM struct {
	data []uint8
}

func NewRAM(size int) *RAM {
	return &RAM{data: make([]uint8, size)}
}

func (r *RAM) Read(offset uint16) uint8 {
	return r.data[int(offset)%len(r.data)]
}

func (r *RAM) Write(offset uint16, data uint8) {
	r.data[int(offset)%len(r.data)] = data
}

func (r *RAM) Peek(offset uint16) uint8 {
	return r.Read(offset)
}

// Load copies data in starting at offset, wrapping at the end of the RAM.
func (r *RAM) Load(offset uint16, data []uint8) {
	for i, b := range data {
		r.Write(offset+uint16(i), b)
	}
}

func (r *RAM) Size() int {
	return len(r.data)
}
