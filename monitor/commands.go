package monitor

const (
	KeywordStep  = "STEP"
	KeywordClock = "CLOCK"
	KeywordRun   = "RUN"
	KeywordReset = "RESET"
	KeywordIRQ   = "IRQ"
	KeywordNMI   = "NMI"
	KeywordRegs  = "REGS"
	KeywordDis   = "DIS"
	KeywordMem   = "MEM"
	KeywordPoke  = "POKE"
	KeywordPC    = "PC"
	KeywordMap   = "MAP"
	KeywordHelp  = "HELP"
	KeywordQuit  = "QUIT"
)

// Help holds the one-line description of each command and its arguments.
// Addresses and bytes are hex; counts are decimal.
var Help = map[string]string{
	KeywordStep:  "STEP [n] - execute n instructions (default 1)",
	KeywordClock: "CLOCK [n] - run n CPU cycles (default 1)",
	KeywordRun:   "RUN <addr> [limit] - run until PC reaches addr, or limit cycles pass",
	KeywordReset: "RESET - reset the CPU through the reset vector",
	KeywordIRQ:   "IRQ - raise a maskable interrupt",
	KeywordNMI:   "NMI - raise a non-maskable interrupt",
	KeywordRegs:  "REGS - display the CPU registers and flags",
	KeywordDis:   "DIS <lo> <hi> - disassemble a range of memory",
	KeywordMem:   "MEM <addr> [len] - hex dump memory (default 16 bytes)",
	KeywordPoke:  "POKE <addr> <byte>... - write bytes to memory",
	KeywordPC:    "PC <addr> - move the program counter",
	KeywordMap:   "MAP - list the devices on the bus",
	KeywordHelp:  "HELP [command] - list commands or describe one",
	KeywordQuit:  "QUIT - leave the monitor",
}

var commandOrder = []string{
	KeywordStep, KeywordClock, KeywordRun, KeywordReset, KeywordIRQ,
	KeywordNMI, KeywordRegs, KeywordDis, KeywordMem, KeywordPoke,
	KeywordPC, KeywordMap, KeywordHelp, KeywordQuit,
}
