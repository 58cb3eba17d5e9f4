// Package ppu implements the 2C02 picture processing unit.
//
// The PPU is advanced one dot at a time by Step(). It never holds a reference
// to the cartridge; pattern memory and mirroring are reached through the
// Cartridge passed to each call.
package ppu

import "nes-core/mapper"

// Cartridge is the view of the cartridge available to the PPU.
type Cartridge interface {
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, data uint8)
	Mirroring() mapper.Mirroring
	ScanlineTick()
}

// Timing of an NTSC frame.
const (
	DotsPerScanline = 341
	Scanlines       = 262

	PreRenderScanline  = -1
	PostRenderScanline = 240
	VBlankScanline     = 241
	LastScanline       = 260
)

// Event reports what happened during a call to Step().
type Event uint8

const (
	// EventScanline is set when the dot counter wraps onto a new scanline.
	EventScanline Event = 1 << iota

	// EventFrame is set when the last scanline wraps to the pre-render line.
	EventFrame
)

// dot on which the mapper scanline counter is clocked
const scanlineTickDot = 260

type sprite struct {
	y         uint8
	id        uint8
	attribute uint8
	x         uint8
}

type PPU struct {
	vram    [4096]uint8
	palette [32]uint8
	oam     [256]uint8
	oamAddr uint8

	status  Register
	mask    Register
	control Register

	vramAddr Register
	tramAddr Register
	fineX    uint8

	writeToggle   bool
	ppuDataBuffer uint8

	// last value written to or read from any register
	ioLatch uint8

	scanline int
	dot      int
	frames   uint64
	oddFrame bool

	// after reset the PPU ignores writes to some registers until the
	// pre-render line is reached for the first time
	warm bool

	bgNextTileId       uint8
	bgNextTileAttrib   uint8
	bgNextTileLsb      uint8
	bgNextTileMsb      uint8
	bgShifterPatternLo uint16
	bgShifterPatternHi uint16
	bgShifterAttribLo  uint16
	bgShifterAttribHi  uint16

	spriteScanline         [8]sprite
	spriteCount            int
	spriteShifterPatternLo [8]uint8
	spriteShifterPatternHi [8]uint8

	spriteZeroHitPossible   bool
	spriteZeroBeingRendered bool
	spriteZeroHitX          int
	spriteZeroHitY          int

	front *Frame
	back  *Frame
}

func NewPPU() *PPU {
	p := &PPU{
		front: &Frame{},
		back:  &Frame{},
	}
	p.Reset()
	return p
}

// Reset clears the timing state and registers. Video memory and OAM keep
// their contents.
func (p *PPU) Reset() {
	p.control = 0
	p.mask = 0
	p.status = 0
	p.vramAddr = 0
	p.tramAddr = 0
	p.fineX = 0
	p.writeToggle = false
	p.ppuDataBuffer = 0
	p.ioLatch = 0
	p.oamAddr = 0

	p.scanline = 0
	p.dot = 0
	p.frames = 0
	p.oddFrame = false
	p.warm = false

	p.bgNextTileId = 0
	p.bgNextTileAttrib = 0
	p.bgNextTileLsb = 0
	p.bgNextTileMsb = 0
	p.bgShifterPatternLo = 0
	p.bgShifterPatternHi = 0
	p.bgShifterAttribLo = 0
	p.bgShifterAttribHi = 0
	p.spriteCount = 0
	p.spriteZeroHitPossible = false
	p.spriteZeroBeingRendered = false
	p.spriteZeroHitX = -1
	p.spriteZeroHitY = -1
}

// Position returns the scanline and dot the next call to Step() will
// process. The pre-render scanline is -1.
func (p *PPU) Position() (scanline int, dot int) {
	return p.scanline, p.dot
}

// FrameCount is the number of frames completed since reset.
func (p *PPU) FrameCount() uint64 {
	return p.frames
}

// NMI is the level of the interrupt output: vertical blank with NMI enabled.
func (p *PPU) NMI() bool {
	return p.status.Flag(statusVerticalBlank) && p.control.Flag(ctrlEnableNMI)
}

// Frame returns the most recently completed frame. The frame is overwritten
// when the frame after next completes.
func (p *PPU) Frame() *Frame {
	return p.front
}

// SpriteZeroHit returns the pixel position of the sprite zero hit in the
// current frame, if there has been one.
func (p *PPU) SpriteZeroHit() (x int, y int, ok bool) {
	if !p.status.Flag(statusSpriteZeroHit) {
		return -1, -1, false
	}
	return p.spriteZeroHitX, p.spriteZeroHitY, true
}

func (p *PPU) renderingEnabled() bool {
	return p.mask.Flag(maskRenderBackground) || p.mask.Flag(maskRenderSprites)
}

// Step processes a single dot.
func (p *PPU) Step(cart Cartridge) Event {
	if p.scanline >= PreRenderScanline && p.scanline < PostRenderScanline {
		p.render(cart)
	}

	if p.scanline == VBlankScanline && p.dot == 1 {
		p.status.SetFlag(statusVerticalBlank, true)
	}

	if p.scanline >= 0 && p.scanline < PostRenderScanline && p.dot >= 1 && p.dot <= 256 {
		p.composite()
	}

	return p.advance()
}

func (p *PPU) advance() Event {
	var ev Event

	p.dot++

	// odd frames skip the last dot of the pre-render line when rendering
	if p.scanline == PreRenderScanline && p.dot == 340 && p.oddFrame && p.renderingEnabled() {
		p.dot = DotsPerScanline
	}

	if p.dot >= DotsPerScanline {
		p.dot = 0
		p.scanline++
		ev |= EventScanline

		if p.scanline > LastScanline {
			p.scanline = PreRenderScanline
			p.frames++
			p.oddFrame = !p.oddFrame
			p.front, p.back = p.back, p.front
			ev |= EventFrame
		}
	}

	return ev
}

// render performs the background and sprite fetch work of the pre-render and
// visible scanlines.
func (p *PPU) render(cart Cartridge) {
	if p.scanline == PreRenderScanline && p.dot == 1 {
		p.warm = true
		p.status.SetFlag(statusVerticalBlank, false)
		p.status.SetFlag(statusSpriteZeroHit, false)
		p.status.SetFlag(statusSpriteOverflow, false)
		p.spriteZeroHitX = -1
		p.spriteZeroHitY = -1
		for i := 0; i < 8; i++ {
			p.spriteShifterPatternLo[i] = 0
			p.spriteShifterPatternHi[i] = 0
		}
	}

	p.renderBackground(cart)

	if !p.renderingEnabled() {
		return
	}

	if p.dot == 257 {
		p.oamAddr = 0
		if p.scanline >= 0 {
			p.evaluateSprites()
		} else {
			p.spriteCount = 0
		}
	}

	if p.dot == scanlineTickDot {
		cart.ScanlineTick()
	}

	if p.dot == 340 {
		p.fetchSprites(cart)
	}
}
