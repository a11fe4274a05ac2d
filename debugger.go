package main

import (
	"fmt"
	"image/color"
	"log"
	"strconv"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"r6502-emu/cpu"
	"r6502-emu/machine"
	"r6502-emu/register"
)

const (
	screenWidth  = 1280
	screenHeight = 720

	// roughly an NTSC 2A03 worth of cycles per 60Hz update
	cyclesPerUpdate = 1789773 / 60

	lineSize = 24
)

var (
	WHITE = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	GREEN = color.RGBA{G: 0xFF, A: 0xFF}
	RED   = color.RGBA{R: 0xFF, A: 0xFF}
	CYAN  = color.RGBA{G: 0xFF, B: 0xFF, A: 0xFF}
)

type Game struct {
	machine      *machine.Machine
	listing      *cpu.Listing
	defaultFont  font.Face
	emulationRun bool

	clipboardOnce sync.Once
	clipboardOK   bool
	message       string
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.emulationRun = !g.emulationRun
	}
	if g.emulationRun {
		g.machine.RunCycles(cyclesPerUpdate)
		return nil
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.machine.Step()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.machine.Clock()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.machine.Reset()
		g.listing = g.machine.Disassemble(0x0000, 0xFFFF)
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		g.machine.CPU.IRQ()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.machine.CPU.NMI()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.listing = g.machine.Disassemble(0x0000, 0xFFFF)
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		g.copyListing()
	}
	return nil
}

func (g *Game) copyListing() {
	g.clipboardOnce.Do(func() {
		g.clipboardOK = clipboard.Init() == nil
	})
	if !g.clipboardOK {
		g.message = "clipboard unavailable"
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.listing.String()))
	g.message = fmt.Sprintf("copied %d lines", g.listing.Len())
}

func numToHex(n int, d int) string {
	format := "%0" + strconv.Itoa(d) + "X"
	return fmt.Sprintf(format, n)
}

func (g *Game) getDefaultFont() font.Face {
	if g.defaultFont != nil {
		return g.defaultFont
	}
	tt, err := opentype.Parse(fonts.MPlus1pRegular_ttf)
	if err != nil {
		log.Fatal(err)
	}
	const dpi = 72 * 2
	mplusNormalFont, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    8,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		log.Fatal(err)
	}
	g.defaultFont = mplusNormalFont
	return g.defaultFont
}

func (g *Game) DrawString(screen *ebiten.Image, x int, y int, str string, clr color.RGBA) {
	text.Draw(screen, str, g.getDefaultFont(), x, y, clr)
}

// DrawCode shows nLines of the listing centred on PC.
func (g *Game) DrawCode(screen *ebiten.Image, x int, y int, nLines int) {
	pc := g.machine.CPU.State().PC
	half := nLines >> 1
	for i, line := range g.listing.Window(pc, half, half) {
		clr := WHITE
		if line.Addr == pc {
			clr = CYAN
		}
		g.DrawString(screen, x, y+i*lineSize, line.Text, clr)
	}
}

func (g *Game) DrawRam(screen *ebiten.Image, x int, y int, nAddr uint16, nRows int, nColumns int) {
	for row := 0; row < nRows; row++ {
		sOffset := fmt.Sprintf("$%s:", numToHex(int(nAddr), 4))
		for col := 0; col < nColumns; col++ {
			sOffset = fmt.Sprintf("%s %s", sOffset, numToHex(int(g.machine.Bus.Peek(nAddr)), 2))
			nAddr++
		}
		ebitenutil.DebugPrintAt(screen, sOffset, x, y)
		y += 16
	}
}

func (g *Game) DrawCpu(screen *ebiten.Image, x int, y int) {
	s := g.machine.CPU.State()
	status := register.CreateStatusRegister(s.Status)

	g.DrawString(screen, x, y, "STATUS: ", WHITE)
	titleOffset := 100
	statusOffset := 20
	for i, name := range status.Names() {
		statusColor := RED
		if status.IsSet(name) {
			statusColor = GREEN
		}
		g.DrawString(screen, x+titleOffset+(statusOffset*i), y, name, statusColor)
	}

	g.DrawString(screen, x, y+lineSize, fmt.Sprintf("PC: $%s", numToHex(int(s.PC), 4)), WHITE)
	g.DrawString(screen, x, y+(lineSize*2), fmt.Sprintf("A: $%s [%d]", numToHex(int(s.A), 2), s.A), WHITE)
	g.DrawString(screen, x, y+(lineSize*3), fmt.Sprintf("X: $%s [%d]", numToHex(int(s.X), 2), s.X), WHITE)
	g.DrawString(screen, x, y+(lineSize*4), fmt.Sprintf("Y: $%s [%d]", numToHex(int(s.Y), 2), s.Y), WHITE)
	g.DrawString(screen, x, y+(lineSize*5), fmt.Sprintf("Stack P: $%s", numToHex(int(s.SP), 4)), WHITE)
	g.DrawString(screen, x, y+(lineSize*6), fmt.Sprintf("Cycles: %d", s.Total), WHITE)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.DrawRam(screen, 10, 10, 0x0000, 16, 16)
	g.DrawRam(screen, 10, 300, 0x0100, 16, 16)
	g.DrawCpu(screen, screenWidth-450, 30)
	g.DrawCode(screen, screenWidth-450, 230, 17)

	help := "SPACE run/pause  S step  C clock  R reset  I irq  N nmi  D disassemble  K copy listing"
	if g.emulationRun {
		help = "running - SPACE to pause"
	}
	ebitenutil.DebugPrintAt(screen, help, 10, screenHeight-40)
	if g.message != "" {
		ebitenutil.DebugPrintAt(screen, g.message, 10, screenHeight-20)
	}
}

func (g *Game) Layout(outsideWidth int, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
