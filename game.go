package main

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"

	"nes-core/controller"
	"nes-core/cpu"
	"nes-core/nes"
	"nes-core/ppu"
)

const (
	panelWidth    = 440
	overlayHeight = 720
)

type Game struct {
	console         *nes.Console
	scale           int
	emulationRun    bool
	overlay         bool
	selectedPalette uint8
	nametable       uint16
	mapAsm          map[uint16]cpu.DisassembledInstruction
	defaultFont     font.Face
	frame           *image.RGBA
	gameScreen      *ebiten.Image
}

var controllerKeys = map[ebiten.Key]uint8{
	ebiten.KeyX:     controller.ButtonA,
	ebiten.KeyZ:     controller.ButtonB,
	ebiten.KeyA:     controller.ButtonSelect,
	ebiten.KeyS:     controller.ButtonStart,
	ebiten.KeyUp:    controller.ButtonUp,
	ebiten.KeyDown:  controller.ButtonDown,
	ebiten.KeyLeft:  controller.ButtonLeft,
	ebiten.KeyRight: controller.ButtonRight,
}

func controllerButtons(pressedKeys []ebiten.Key) uint8 {
	var buttons uint8
	for _, p := range pressedKeys {
		if value, ok := controllerKeys[p]; ok {
			buttons |= value
		}
	}
	return buttons
}

func newGame(console *nes.Console, scale int) *Game {
	return &Game{
		console:      console,
		scale:        scale,
		emulationRun: true,
		nametable:    0x2000,
		frame:        image.NewRGBA(image.Rect(0, 0, ppu.Width, ppu.Height)),
		gameScreen:   ebiten.NewImage(ppu.Width, ppu.Height),
	}
}

func runWindow(console *nes.Console, cfg config) error {
	g := newGame(console, cfg.scale)
	w, h := g.Layout(0, 0)

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(fmt.Sprintf("%s - %s", programName, cfg.rom))
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	g.console.SetButtons(0, controllerButtons(inpututil.AppendPressedKeys(nil)))

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.emulationRun = !g.emulationRun
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.console.Reset()
		g.mapAsm = nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.overlay = !g.overlay
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.selectedPalette++
		g.selectedPalette &= 0x07
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.nametable = nextNametablePage(g.nametable)
	}

	if g.emulationRun {
		g.console.StepFrame()
		return nil
	}

	// single stepping while paused
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.console.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.console.StepFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.console.Frame().Draw(g.frame)
	g.gameScreen.WritePixels(g.frame.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.gameScreen, op)

	if !g.emulationRun {
		ebitenutil.DebugPrintAt(screen, "PAUSED", 4, 4)
	}

	if !g.overlay {
		return
	}

	x := ppu.Width*g.scale + 10
	g.DrawCpu(screen, x, 24)
	g.DrawCode(screen, x, 200, 12)
	g.DrawOAM(screen, x, 520, 8)

	y := ppu.Height*g.scale + 10
	g.DrawSwatches(screen, 5, y)
	g.DrawPatternTable(screen, 5, float64(y+16), 0, g.selectedPalette)
	g.DrawPatternTable(screen, 5+128+10, float64(y+16), 1, g.selectedPalette)
	g.DrawRam(screen, 5+2*(128+10), y, g.console.Peek, 0x0000, 8, 8)
	g.DrawRam(screen, 5+2*(128+10)+190, y, g.console.PeekPPU, g.nametable, 8, 8)
}

// nextNametablePage steps the nametable dump through $2000-$2FFF, 64 bytes at
// a time.
func nextNametablePage(addr uint16) uint16 {
	return 0x2000 | ((addr + 0x40) & 0x0FFF)
}

func (g *Game) Layout(outsideWidth int, outsideHeight int) (int, int) {
	w, h := ppu.Width*g.scale, ppu.Height*g.scale
	if g.overlay {
		w += panelWidth
		if h < overlayHeight {
			h = overlayHeight
		}
	}
	return w, h
}
