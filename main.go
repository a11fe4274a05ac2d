package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"r6502-emu/config"
	"r6502-emu/device"
	"r6502-emu/machine"
	"r6502-emu/monitor"
	"r6502-emu/script"
)

var (
	configFile = flag.String("config", "", "machine description (YAML)")
	romFile    = flag.String("rom", "", "raw binary or iNES image to run without a machine description")
	loadAddr   = flag.String("load", "$0000", "where a raw -rom image is loaded")
	entry      = flag.String("pc", "", "start here instead of at the reset vector")
	useMonitor = flag.Bool("monitor", false, "run the terminal monitor instead of the window")
	scriptFile = flag.String("script", "", "run a Lua script against the machine and exit")
	trace      = flag.Bool("trace", false, "log every instruction to stderr")
)

// imageConfig describes a machine for a bare image. iNES files get 2KB of
// work RAM mirrored up to $1FFF and the cartridge at $8000. Raw images are
// loaded into 64KB of RAM, vectors included.
func imageConfig(path string, load config.Number) config.Machine {
	if strings.EqualFold(filepath.Ext(path), ".nes") {
		return config.Machine{
			Devices: []config.Device{
				{Name: "work ram", Kind: config.KindRAM, Base: 0x0000, Size: 0x2000, Chip: 0x0800},
				{Name: "cartridge", Kind: config.KindCartridge, Base: device.CartridgeBase, Size: device.CartridgeSize, Image: path},
			},
			Fill: true,
		}
	}
	return config.Machine{
		Devices: []config.Device{
			{Name: "ram", Kind: config.KindRAM, Base: 0x0000, Size: 0x10000, Image: path, Load: load},
		},
	}
}

func loadMachine() (*machine.Machine, error) {
	var cfg config.Machine
	switch {
	case *configFile != "":
		c, err := config.LoadFile(*configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	case *romFile != "":
		load, err := config.ParseNumber(*loadAddr)
		if err != nil {
			return nil, fmt.Errorf("-load: %w", err)
		}
		cfg = imageConfig(*romFile, load)
	default:
		return nil, errors.New("nothing to run: pass -config or -rom")
	}

	if *entry != "" {
		pc, err := config.ParseNumber(*entry)
		if err != nil {
			return nil, fmt.Errorf("-pc: %w", err)
		}
		cfg.PC = &pc
	}
	cfg.Trace = cfg.Trace || *trace
	return machine.FromConfig(cfg, os.Stdout)
}

func main() {
	flag.Parse()

	m, err := loadMachine()
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case *scriptFile != "":
		host := script.New(m, os.Stdout)
		defer host.Close()
		if err := host.DoFile(*scriptFile); err != nil {
			log.Fatal(err)
		}
		return

	case *useMonitor:
		if err := monitor.New(m).Run(os.Stdin, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("r6502-emu")
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(&Game{
		machine: m,
		listing: m.Disassemble(0x0000, 0xFFFF),
	}); err != nil {
		log.Fatal(err)
	}
}
