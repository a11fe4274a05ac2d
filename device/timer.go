package device

const (
	TimerReloadLo = 0
	TimerReloadHi = 1
	TimerControl  = 2
	TimerStatus   = 3

	TimerEnable = 0x01
	TimerNMI    = 0x02

	timerPending = 0x80
)

// Timer is an interval timer occupying four registers. While enabled it
// counts down once per CPU cycle and, every reload+1 cycles, latches a
// pending interrupt. The interrupt goes out on the IRQ line unless TimerNMI
// is set in the control register.
//
// Reading the status register acknowledges the interrupt. Peek does not.
type Timer struct {
	reload  uint16
	counter uint16
	control uint8
	pending bool

	// nmi is edge triggered, so it is only reported once per event
	nmiSent bool
}

func NewTimer() *Timer {
	return &Timer{}
}

func (t *Timer) Read(offset uint16) uint8 {
	v := t.Peek(offset)
	if offset%4 == TimerStatus {
		t.acknowledge()
	}
	return v
}

func (t *Timer) Peek(offset uint16) uint8 {
	switch offset % 4 {
	case TimerReloadLo:
		return uint8(t.reload)
	case TimerReloadHi:
		return uint8(t.reload >> 8)
	case TimerControl:
		return t.control
	}
	if t.pending {
		return timerPending
	}
	return 0
}

func (t *Timer) Write(offset uint16, data uint8) {
	switch offset % 4 {
	case TimerReloadLo:
		t.reload = (t.reload & 0xFF00) | uint16(data)
	case TimerReloadHi:
		t.reload = (t.reload & 0x00FF) | (uint16(data) << 8)
	case TimerControl:
		if data&TimerEnable != 0 && t.control&TimerEnable == 0 {
			t.counter = t.reload
		}
		t.control = data
	case TimerStatus:
		t.acknowledge()
	}
}

// Reset disables the timer and drops any pending interrupt.
func (t *Timer) Reset() {
	*t = Timer{}
}

func (t *Timer) acknowledge() {
	t.pending = false
	t.nmiSent = false
}

func (t *Timer) Clock() {
	if t.control&TimerEnable == 0 {
		return
	}
	if t.counter == 0 {
		t.pending = true
		t.counter = t.reload
		return
	}
	t.counter--
}

// Interrupts reports the interrupt lines the timer is driving.
func (t *Timer) Interrupts() (irq, nmi bool) {
	if !t.pending {
		return false, false
	}
	if t.control&TimerNMI == 0 {
		return true, false
	}
	if t.nmiSent {
		return false, false
	}
	t.nmiSent = true
	return false, true
}
