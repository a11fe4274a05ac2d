package monitor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"r6502-emu/cpu"
	"r6502-emu/machine"
	"r6502-emu/register"
)

const (
	prompt       = "> "
	defaultLimit = 1000000
	memPerLine   = 16
)

var (
	ErrQuit           = errors.New("quit")
	ErrUnknownCommand = errors.New("unknown command")
	ErrArguments      = errors.New("wrong arguments")
)

// Monitor is a line oriented debugger for a machine.
type Monitor struct {
	m *machine.Machine
}

func New(m *machine.Machine) *Monitor {
	return &Monitor{m: m}
}

// Run puts the terminal on in into raw mode, when it is one, and serves
// commands until QUIT or end of input.
func (mon *Monitor) Run(in *os.File, out io.Writer) error {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("monitor: raw mode: %w", err)
		}
		defer func() { _ = term.Restore(fd, old) }()
	}
	return mon.Serve(struct {
		io.Reader
		io.Writer
	}{in, out})
}

// Serve reads commands from rw with line editing and history and writes
// the results back to it.
func (mon *Monitor) Serve(rw io.ReadWriter) error {
	t := term.NewTerminal(rw, prompt)
	fmt.Fprintln(t, mon.m.CPU.State())
	for {
		line, err := t.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		out, err := mon.Exec(line)
		if out != "" {
			fmt.Fprint(t, out)
		}
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(t, "error: %v\n", err)
		}
	}
}

// Exec runs a single command line and returns what it printed.
func (mon *Monitor) Exec(line string) (string, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return "", nil
	}
	command := strings.ToUpper(tokens[0])
	args := tokens[1:]

	var sb strings.Builder
	switch command {
	default:
		return "", fmt.Errorf("%s: %w", tokens[0], ErrUnknownCommand)

	case KeywordHelp:
		if len(args) > 0 {
			txt, ok := Help[strings.ToUpper(args[0])]
			if !ok {
				return "", fmt.Errorf("no help for %s: %w", args[0], ErrUnknownCommand)
			}
			return txt + "\n", nil
		}
		for _, k := range commandOrder {
			fmt.Fprintln(&sb, Help[k])
		}

	case KeywordQuit:
		return "", ErrQuit

	case KeywordStep:
		n, err := count(args, 0, 1)
		if err != nil {
			return "", err
		}
		for i := 0; i < n; i++ {
			mon.m.Step()
		}
		mon.status(&sb)

	case KeywordClock:
		n, err := count(args, 0, 1)
		if err != nil {
			return "", err
		}
		mon.m.RunCycles(n)
		mon.status(&sb)

	case KeywordRun:
		if len(args) < 1 {
			return "", usage(command)
		}
		addr, err := address(args[0])
		if err != nil {
			return "", err
		}
		limit, err := count(args, 1, defaultLimit)
		if err != nil {
			return "", err
		}
		err = mon.m.RunUntil(addr, limit)
		mon.status(&sb)
		return sb.String(), err

	case KeywordReset:
		mon.m.Reset()
		mon.status(&sb)

	case KeywordIRQ:
		mon.m.CPU.IRQ()
		mon.status(&sb)

	case KeywordNMI:
		mon.m.CPU.NMI()
		mon.status(&sb)

	case KeywordRegs:
		s := mon.m.CPU.State()
		status := register.CreateStatusRegister(s.Status)
		fmt.Fprintf(&sb, "PC:%04X A:%02X X:%02X Y:%02X SP:%02X\n", s.PC, s.A, s.X, s.Y, s.SP)
		fmt.Fprintf(&sb, "P:%02X %s\n", s.Status, status.String())
		fmt.Fprintf(&sb, "cycles:%d opcode:%02X\n", s.Total, s.Opcode)

	case KeywordDis:
		if len(args) != 2 {
			return "", usage(command)
		}
		lo, err := address(args[0])
		if err != nil {
			return "", err
		}
		hi, err := address(args[1])
		if err != nil {
			return "", err
		}
		if hi < lo {
			return "", fmt.Errorf("$%04X is below $%04X: %w", hi, lo, ErrArguments)
		}
		sb.WriteString(mon.m.Disassemble(lo, hi).String())

	case KeywordMem:
		if len(args) < 1 {
			return "", usage(command)
		}
		addr, err := address(args[0])
		if err != nil {
			return "", err
		}
		n, err := count(args, 1, memPerLine)
		if err != nil {
			return "", err
		}
		mon.dump(&sb, addr, n)

	case KeywordPoke:
		if len(args) < 2 {
			return "", usage(command)
		}
		addr, err := address(args[0])
		if err != nil {
			return "", err
		}
		data := make([]uint8, 0, len(args)-1)
		for _, a := range args[1:] {
			v, err := strconv.ParseUint(strings.TrimPrefix(a, "$"), 16, 8)
			if err != nil {
				return "", fmt.Errorf("byte %q: %w", a, ErrArguments)
			}
			data = append(data, uint8(v))
		}
		for i, v := range data {
			mon.m.Bus.Write(addr+uint16(i), v)
		}

	case KeywordPC:
		if len(args) != 1 {
			return "", usage(command)
		}
		addr, err := address(args[0])
		if err != nil {
			return "", err
		}
		mon.m.CPU.SetPC(addr)
		mon.status(&sb)

	case KeywordMap:
		for _, m := range mon.m.Bus.Mappings() {
			fmt.Fprintln(&sb, m)
		}
	}
	return sb.String(), nil
}

// status prints the registers and the instruction at PC.
func (mon *Monitor) status(sb *strings.Builder) {
	s := mon.m.CPU.State()
	fmt.Fprintln(sb, s)
	fmt.Fprintln(sb, cpu.DisassembleAt(mon.m.Bus, s.PC).Text)
}

func (mon *Monitor) dump(sb *strings.Builder, addr uint16, n int) {
	for i := 0; i < n; i++ {
		a := addr + uint16(i)
		if i%memPerLine == 0 {
			if i > 0 {
				sb.WriteByte('\n')
			}
			fmt.Fprintf(sb, "$%04X:", a)
		}
		fmt.Fprintf(sb, " %02X", mon.m.Bus.Peek(a))
	}
	sb.WriteByte('\n')
}

func usage(command string) error {
	return fmt.Errorf("usage: %s: %w", Help[command], ErrArguments)
}

// address parses a hex address, with or without a $ or 0x prefix.
func address(s string) (uint16, error) {
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("address %q: %w", s, ErrArguments)
	}
	return uint16(v), nil
}

// count parses the decimal argument at index i, or returns def when there is
// none.
func count(args []string, i int, def int) (int, error) {
	if len(args) <= i {
		return def, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("count %q: %w", args[i], ErrArguments)
	}
	return n, nil
}
