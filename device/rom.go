package device

import (
	"errors"
	"io"
)

var ErrEmptyImage = errors.New("image is empty")

// ROM is read-only memory. Writes are dropped. A 16KB image attached over
// $8000-$FFFF is visible in both halves, as with a single-bank NROM board.
type ROM struct {
	data []uint8
}

func NewROM(image []uint8) (*ROM, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	data := make([]uint8, len(image))
	copy(data, image)
	return &ROM{data: data}, nil
}

func (r *ROM) Read(offset uint16) uint8 {
	return r.data[int(offset)%len(r.data)]
}

func (r *ROM) Write(offset uint16, data uint8) {}

func (r *ROM) Peek(offset uint16) uint8 {
	return r.Read(offset)
}

func (r *ROM) Size() int {
	return len(r.data)
}

// LoadImage reads a raw binary image.
func LoadImage(r io.Reader) ([]uint8, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	return data, nil
}
