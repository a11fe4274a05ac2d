// Package script drives a machine from Lua. Scripts get a small set of
// globals for poking memory, stepping the CPU and reading the registers,
// which is enough to write self-checking test programs.
package script

import (
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"r6502-emu/machine"
)

const defaultLimit = 1000000

type Host struct {
	L   *lua.LState
	m   *machine.Machine
	out io.Writer
}

// New returns a Lua state bound to m. print writes to out.
func New(m *machine.Machine, out io.Writer) *Host {
	h := &Host{
		L:   lua.NewState(),
		m:   m,
		out: out,
	}

	for name, fn := range map[string]lua.LGFunction{
		"peek":   h.peek,
		"poke":   h.poke,
		"step":   h.step,
		"clock":  h.clock,
		"reset":  h.reset,
		"irq":    h.irq,
		"nmi":    h.nmi,
		"regs":   h.regs,
		"setpc":  h.setpc,
		"disasm": h.disasm,
		"run":    h.run,
		"print":  h.print,
	} {
		h.L.SetGlobal(name, h.L.NewFunction(fn))
	}
	return h
}

func (h *Host) Close() {
	h.L.Close()
}

func (h *Host) DoString(src string) error {
	return h.L.DoString(src)
}

func (h *Host) DoFile(path string) error {
	return h.L.DoFile(path)
}

func checkAddr(L *lua.LState, n int) uint16 {
	v := L.CheckInt(n)
	if v < 0 || v > 0xFFFF {
		L.ArgError(n, fmt.Sprintf("address %d out of range", v))
	}
	return uint16(v)
}

func (h *Host) peek(L *lua.LState) int {
	L.Push(lua.LNumber(h.m.Bus.Peek(checkAddr(L, 1))))
	return 1
}

// poke(addr, value...) writes consecutive bytes.
func (h *Host) poke(L *lua.LState) int {
	addr := checkAddr(L, 1)
	for i := 2; i <= L.GetTop(); i++ {
		v := L.CheckInt(i)
		if v < 0 || v > 0xFF {
			L.ArgError(i, fmt.Sprintf("byte %d out of range", v))
		}
		h.m.Bus.Write(addr, uint8(v))
		addr++
	}
	return 0
}

// step([n]) returns the cycles taken.
func (h *Host) step(L *lua.LState) int {
	n := L.OptInt(1, 1)
	cycles := 0
	for i := 0; i < n; i++ {
		cycles += h.m.Step()
	}
	L.Push(lua.LNumber(cycles))
	return 1
}

func (h *Host) clock(L *lua.LState) int {
	h.m.RunCycles(L.OptInt(1, 1))
	return 0
}

func (h *Host) reset(L *lua.LState) int {
	h.m.Reset()
	return 0
}

func (h *Host) irq(L *lua.LState) int {
	h.m.CPU.IRQ()
	return 0
}

func (h *Host) nmi(L *lua.LState) int {
	h.m.CPU.NMI()
	return 0
}

func (h *Host) regs(L *lua.LState) int {
	s := h.m.CPU.State()
	t := L.NewTable()
	t.RawSetString("a", lua.LNumber(s.A))
	t.RawSetString("x", lua.LNumber(s.X))
	t.RawSetString("y", lua.LNumber(s.Y))
	t.RawSetString("sp", lua.LNumber(s.SP))
	t.RawSetString("pc", lua.LNumber(s.PC))
	t.RawSetString("p", lua.LNumber(s.Status))
	t.RawSetString("flags", lua.LString(s.Flags()))
	t.RawSetString("cycles", lua.LNumber(s.Total))
	L.Push(t)
	return 1
}

func (h *Host) setpc(L *lua.LState) int {
	h.m.CPU.SetPC(checkAddr(L, 1))
	return 0
}

// disasm(lo, hi) returns the listing as an array of lines.
func (h *Host) disasm(L *lua.LState) int {
	lo, hi := checkAddr(L, 1), checkAddr(L, 2)
	if hi < lo {
		L.ArgError(2, "end of range is below its start")
	}
	t := L.NewTable()
	for _, line := range h.m.Disassemble(lo, hi).Lines() {
		t.Append(lua.LString(line.Text))
	}
	L.Push(t)
	return 1
}

// run(addr[, limit]) returns true when addr was reached, or false and the
// reason.
func (h *Host) run(L *lua.LState) int {
	addr := checkAddr(L, 1)
	limit := L.OptInt(2, defaultLimit)
	if err := h.m.RunUntil(addr, limit); err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

func (h *Host) print(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	fmt.Fprintln(h.out, strings.Join(parts, "\t"))
	return 0
}
