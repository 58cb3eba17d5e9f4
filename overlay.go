package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"nes-core/cpu"
	"nes-core/logger"
)

const lineSize = 24

var (
	WHITE = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	CYAN  = color.RGBA{G: 0xFF, B: 0xFF, A: 0xFF}
	GREEN = color.RGBA{G: 0xFF, A: 0xFF}
	RED   = color.RGBA{R: 0xFF, A: 0xFF}
)

// getDefaultFont falls back to the fixed bitmap face if the TrueType font
// cannot be loaded.
func (g *Game) getDefaultFont() font.Face {
	if g.defaultFont != nil {
		return g.defaultFont
	}

	g.defaultFont = basicfont.Face7x13

	tt, err := opentype.Parse(fonts.MPlus1pRegular_ttf)
	if err != nil {
		logger.Logf("overlay", "font: %v", err)
		return g.defaultFont
	}
	const dpi = 72 * 2
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    8,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		logger.Logf("overlay", "font: %v", err)
		return g.defaultFont
	}

	g.defaultFont = face
	return g.defaultFont
}

func (g *Game) DrawString(screen *ebiten.Image, x int, y int, str string, clr color.RGBA) {
	text.Draw(screen, str, g.getDefaultFont(), x, y, clr)
}

func (g *Game) DrawCpu(screen *ebiten.Image, x int, y int) {
	s := g.console.Status()

	g.DrawString(screen, x, y, "STATUS: ", WHITE)
	titleOffset := 70
	statusOffset := 10
	for i, f := range []cpu.CPUFlag{cpu.N, cpu.V, cpu.U, cpu.B, cpu.D, cpu.I, cpu.Z, cpu.C} {
		statusColor := RED
		if s.CPU.Flag(f) {
			statusColor = GREEN
		}
		g.DrawString(screen, x+titleOffset+statusOffset*i, y, string("NVUBDIZC"[i]), statusColor)
	}

	g.DrawString(screen, x, y+lineSize, fmt.Sprintf("PC: $%04X", s.CPU.PC), WHITE)
	g.DrawString(screen, x, y+lineSize*2, fmt.Sprintf("A: $%02X  X: $%02X  Y: $%02X", s.CPU.A, s.CPU.X, s.CPU.Y), WHITE)
	g.DrawString(screen, x, y+lineSize*3, fmt.Sprintf("Stack P: $%02X", s.CPU.SP), WHITE)
	g.DrawString(screen, x, y+lineSize*4, fmt.Sprintf("Cycles: %d", s.CPU.Cycles), WHITE)
	g.DrawString(screen, x, y+lineSize*5, fmt.Sprintf("Scanline: %d Dot: %d", s.PPU.Scanline, s.PPU.Dot), WHITE)
	g.DrawString(screen, x, y+lineSize*6, fmt.Sprintf("Frame: %d", s.Frames), WHITE)
}

// disassembleAround decodes forward from the program counter, and backward
// as far as a run of instructions can be found that ends exactly on it.
func (g *Game) disassembleAround(pc uint16) {
	g.mapAsm = g.console.Disassemble(pc, 0xFFFF)

	for back := uint16(0x40); back > 0; back-- {
		if back > pc {
			continue
		}
		lines := g.console.Disassemble(pc-back, pc-1)
		addr := pc - back
		for addr < pc {
			d, ok := lines[addr]
			if !ok || d.NextAddr <= addr {
				break
			}
			addr = d.NextAddr
		}
		if addr != pc {
			continue
		}

		last := uint16(0)
		for addr = pc - back; addr < pc; addr = lines[addr].NextAddr {
			g.mapAsm[addr] = lines[addr]
			last = addr
		}
		d := g.mapAsm[pc]
		d.PreviousAddr = last
		g.mapAsm[pc] = d
		return
	}
}

// DrawCode lists the instructions around the program counter.
func (g *Game) DrawCode(screen *ebiten.Image, x int, y int, nLines int) {
	pc := g.console.Status().CPU.PC
	itA, ok := g.mapAsm[pc]
	if !ok || itA.Opcode != g.console.Peek(pc) {
		g.disassembleAround(pc)
		itA = g.mapAsm[pc]
	}

	lineY := y + (nLines>>1)*lineSize
	g.DrawString(screen, x, lineY, itA.Text(), CYAN)
	for lineY < y+nLines*lineSize {
		lineY += lineSize
		itA, ok = g.mapAsm[itA.NextAddr]
		if !ok {
			break
		}
		g.DrawString(screen, x, lineY, itA.Text(), WHITE)
	}

	itA = g.mapAsm[pc]
	lineY = y + (nLines>>1)*lineSize
	for lineY > y && itA.Address != itA.PreviousAddr {
		lineY -= lineSize
		itA, ok = g.mapAsm[itA.PreviousAddr]
		if !ok {
			break
		}
		g.DrawString(screen, x, lineY, itA.Text(), WHITE)
	}
}

func (g *Game) DrawOAM(screen *ebiten.Image, x, y int, n int) {
	oam := g.console.OAM()
	for i := 0; i < n; i++ {
		e := oam[i*4:]
		s := fmt.Sprintf("%02X: (%d, %d) ID: %02X AT: %02X", i, e[3], e[0], e[1], e[2])
		g.DrawString(screen, x, y+i*lineSize, s, WHITE)
	}
}

// DrawRam dumps memory through peek, which is either the CPU or the PPU
// address space.
func (g *Game) DrawRam(screen *ebiten.Image, x int, y int, peek func(uint16) uint8, nAddr uint16, nRows int, nColumns int) {
	for row := 0; row < nRows; row++ {
		sOffset := fmt.Sprintf("%04X:", nAddr)
		for col := 0; col < nColumns; col++ {
			sOffset = fmt.Sprintf("%s %02X", sOffset, peek(nAddr))
			nAddr++
		}
		ebitenutil.DebugPrintAt(screen, sOffset, x, y)
		y += 16
	}
}

func (g *Game) DrawPatternTable(screen *ebiten.Image, x, y float64, i uint8, palette uint8) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	img := ebiten.NewImageFromImage(g.console.PatternTable(i, palette))
	screen.DrawImage(img, op)
	img.Dispose()
}

// DrawSwatches shows the eight palettes with a box around the selected one.
func (g *Game) DrawSwatches(screen *ebiten.Image, x, y int) {
	const nSwatchSize = 6
	for p := uint8(0); p < 8; p++ {
		for s := uint8(0); s < 4; s++ {
			vector.DrawFilledRect(screen,
				float32(x+int(p)*(nSwatchSize*5)+int(s)*nSwatchSize),
				float32(y), nSwatchSize, nSwatchSize,
				g.console.PaletteColour(p, s),
				false)
		}
	}
	vector.StrokeRect(screen,
		float32(x+int(g.selectedPalette)*(nSwatchSize*5)-1),
		float32(y-1),
		nSwatchSize*4+2,
		nSwatchSize+2,
		1,
		WHITE,
		false)
}
