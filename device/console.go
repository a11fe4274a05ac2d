package device

import "io"

// Console is a one-register output port. Every byte written to it is passed
// on to the writer; reads return zero.
type Console struct {
	w   io.Writer
	err error
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Read(offset uint16) uint8 {
	return 0
}

func (c *Console) Write(offset uint16, data uint8) {
	if c.err != nil {
		return
	}
	_, c.err = c.w.Write([]byte{data})
}

// Err returns the first error the writer reported. Output stops after it.
func (c *Console) Err() error {
	return c.err
}
