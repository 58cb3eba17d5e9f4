package ppu

import (
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nes-core/mapper"
)

type testCart struct {
	chr       [0x2000]uint8
	mirroring mapper.Mirroring
	ticks     int
}

func (c *testCart) ReadCHR(addr uint16) uint8        { return c.chr[addr&0x1FFF] }
func (c *testCart) WriteCHR(addr uint16, data uint8) { c.chr[addr&0x1FFF] = data }
func (c *testCart) Mirroring() mapper.Mirroring      { return c.mirroring }
func (c *testCart) ScanlineTick()                    { c.ticks++ }

const dotsPerFrame = DotsPerScanline * Scanlines

// newWarmPPU returns a PPU that accepts register writes straight away.
func newWarmPPU() (*PPU, *testCart) {
	p := NewPPU()
	p.warm = true
	return p, &testCart{mirroring: mapper.Vertical}
}

// stepUntil steps the PPU until cond is true after a step, returning the
// number of dots taken.
func stepUntil(t *testing.T, p *PPU, cart Cartridge, cond func(Event) bool) int {
	t.Helper()
	for n := 1; n <= dotsPerFrame*4; n++ {
		if cond(p.Step(cart)) {
			return n
		}
	}
	require.FailNow(t, "condition never met")
	return 0
}

func at(p *PPU, scanline, dot int) func(Event) bool {
	return func(Event) bool {
		s, d := p.Position()
		return s == scanline && d == dot
	}
}

func onFrame(ev Event) bool {
	return ev&EventFrame != 0
}

func setAddress(p *PPU, cart Cartridge, addr uint16) {
	p.WriteRegister(PPUADDR, uint8(addr>>8), cart)
	p.WriteRegister(PPUADDR, uint8(addr), cart)
}

func TestStatusReadResetsWriteToggle(t *testing.T) {
	p, cart := newWarmPPU()

	setAddress(p, cart, 0x2108)
	assert.Equal(t, uint16(0x2108), p.Snapshot().V)

	p.WriteRegister(PPUADDR, 0x3F, cart)
	assert.True(t, p.Snapshot().W)
	p.ReadRegister(PPUSTATUS, cart)
	assert.False(t, p.Snapshot().W)

	// this must be taken as the high byte
	p.WriteRegister(PPUADDR, 0x25, cart)
	assert.Equal(t, uint16(0x2508), p.Snapshot().T)
	assert.True(t, p.Snapshot().W)
	p.WriteRegister(PPUADDR, 0x00, cart)
	assert.Equal(t, uint16(0x2500), p.Snapshot().V)
}

func TestVerticalBlankAndNMI(t *testing.T) {
	p, cart := newWarmPPU()
	p.WriteRegister(PPUCTRL, 0x80, cart)

	n := stepUntil(t, p, cart, at(p, VBlankScanline, 2))
	assert.Equal(t, 241*DotsPerScanline+2, n)
	assert.True(t, p.NMI())

	status := p.ReadRegister(PPUSTATUS, cart)
	assert.Equal(t, uint8(0x80), status&0x80)
	assert.False(t, p.NMI())
	assert.Equal(t, uint8(0x00), p.ReadRegister(PPUSTATUS, cart)&0x80)

	// set again next frame, cleared at the start of the pre-render line
	stepUntil(t, p, cart, at(p, VBlankScanline, 2))
	assert.True(t, p.NMI())
	stepUntil(t, p, cart, at(p, PreRenderScanline, 2))
	assert.False(t, p.NMI())
	assert.Zero(t, p.PeekRegister(PPUSTATUS)&0xE0)
}

func TestNMIFollowsControlRegister(t *testing.T) {
	p, cart := newWarmPPU()
	stepUntil(t, p, cart, at(p, VBlankScanline, 2))
	assert.False(t, p.NMI())
	p.WriteRegister(PPUCTRL, 0x80, cart)
	assert.True(t, p.NMI())
}

func TestFrameTiming(t *testing.T) {
	p, cart := newWarmPPU()

	frames := 0
	scanlines := 0
	for i := 0; i < dotsPerFrame; i++ {
		ev := p.Step(cart)
		if ev&EventFrame != 0 {
			frames++
		}
		if ev&EventScanline != 0 {
			scanlines++
		}
	}

	scanline, dot := p.Position()
	assert.Equal(t, 0, scanline)
	assert.Equal(t, 0, dot)
	assert.Equal(t, 1, frames)
	assert.Equal(t, Scanlines, scanlines)
	assert.Equal(t, uint64(1), p.FrameCount())
	assert.Zero(t, p.PeekRegister(PPUSTATUS)&0x80)
}

func TestOddFrameSkipsADot(t *testing.T) {
	p, cart := newWarmPPU()
	p.WriteRegister(PPUMASK, 0x08, cart)

	stepUntil(t, p, cart, onFrame)
	assert.Equal(t, dotsPerFrame-1, stepUntil(t, p, cart, onFrame))
	assert.Equal(t, dotsPerFrame, stepUntil(t, p, cart, onFrame))

	// no skip with rendering off
	p.WriteRegister(PPUMASK, 0x00, cart)
	assert.Equal(t, dotsPerFrame, stepUntil(t, p, cart, onFrame))
}

func TestScanlineTicks(t *testing.T) {
	p, cart := newWarmPPU()
	p.WriteRegister(PPUMASK, 0x18, cart)

	stepUntil(t, p, cart, onFrame)
	assert.Equal(t, 240, cart.ticks)
	stepUntil(t, p, cart, onFrame)
	assert.Equal(t, 481, cart.ticks)
}

func TestWarmUp(t *testing.T) {
	p := NewPPU()
	cart := &testCart{}

	p.WriteRegister(PPUCTRL, 0x80, cart)
	p.WriteRegister(PPUMASK, 0x18, cart)
	assert.Zero(t, p.PeekRegister(PPUCTRL))
	assert.Zero(t, p.PeekRegister(PPUMASK))

	// OAMADDR is not affected
	p.WriteRegister(OAMADDR, 0x10, cart)
	assert.Equal(t, uint8(0x10), p.PeekRegister(OAMADDR))

	stepUntil(t, p, cart, at(p, PreRenderScanline, 2))
	p.WriteRegister(PPUCTRL, 0x80, cart)
	assert.Equal(t, uint8(0x80), p.PeekRegister(PPUCTRL))
}

func TestDataPort(t *testing.T) {
	p, cart := newWarmPPU()

	setAddress(p, cart, 0x2000)
	p.WriteRegister(PPUDATA, 0x11, cart)
	p.WriteRegister(PPUDATA, 0x22, cart)
	assert.Equal(t, uint16(0x2002), p.Snapshot().V)

	// reads are buffered
	setAddress(p, cart, 0x2000)
	p.ReadRegister(PPUDATA, cart)
	assert.Equal(t, uint8(0x11), p.ReadRegister(PPUDATA, cart))
	assert.Equal(t, uint8(0x22), p.ReadRegister(PPUDATA, cart))

	// vertical mirroring: $2800 is $2000
	setAddress(p, cart, 0x2800)
	p.ReadRegister(PPUDATA, cart)
	assert.Equal(t, uint8(0x11), p.ReadRegister(PPUDATA, cart))

	// increment by 32
	p.WriteRegister(PPUCTRL, 0x04, cart)
	setAddress(p, cart, 0x2400)
	p.WriteRegister(PPUDATA, 0x33, cart)
	assert.Equal(t, uint16(0x2420), p.Snapshot().V)
}

func TestPaletteAccess(t *testing.T) {
	p, cart := newWarmPPU()

	setAddress(p, cart, 0x3F10)
	p.WriteRegister(PPUDATA, 0x0F, cart)

	// $3F10 mirrors $3F00 and palette reads are immediate
	setAddress(p, cart, 0x3F00)
	assert.Equal(t, uint8(0x0F), p.ReadRegister(PPUDATA, cart))

	setAddress(p, cart, 0x3F01)
	p.WriteRegister(PPUDATA, 0x2A, cart)
	setAddress(p, cart, 0x3F21)
	assert.Equal(t, uint8(0x2A), p.ReadRegister(PPUDATA, cart))
}

func TestNametableMirroring(t *testing.T) {
	assert.Equal(t, uint16(0x0000), nametableOffset(0x2800, mapper.Vertical))
	assert.Equal(t, uint16(0x0400), nametableOffset(0x2C00, mapper.Vertical))
	assert.Equal(t, uint16(0x0000), nametableOffset(0x2400, mapper.Horizontal))
	assert.Equal(t, uint16(0x0400), nametableOffset(0x2800, mapper.Horizontal))
	assert.Equal(t, uint16(0x0000), nametableOffset(0x2C00, mapper.SingleLower))
	assert.Equal(t, uint16(0x0400), nametableOffset(0x2000, mapper.SingleUpper))
	assert.Equal(t, uint16(0x0C05), nametableOffset(0x2C05, mapper.FourScreen))
	assert.Equal(t, uint16(0x0005), nametableOffset(0x3005, mapper.FourScreen))
}

func TestSpriteOverflow(t *testing.T) {
	setup := func(inRange int) (*PPU, *testCart) {
		p, cart := newWarmPPU()
		for i := 0; i < 64; i++ {
			y := uint8(0xF0)
			if i < inRange {
				y = 10
			}
			p.oam[i*4] = y
			p.oam[i*4+1] = 0xF0
		}
		p.WriteRegister(PPUMASK, 0x10, cart)
		return p, cart
	}

	p, cart := setup(8)
	stepUntil(t, p, cart, at(p, 10, 258))
	assert.Zero(t, p.PeekRegister(PPUSTATUS)&0x20)

	p, cart = setup(9)
	stepUntil(t, p, cart, at(p, 10, 258))
	assert.Equal(t, uint8(0x20), p.PeekRegister(PPUSTATUS)&0x20)

	// the evaluation bug reads the tile number of sprite 9 as its y
	p, cart = setup(8)
	p.oam[9*4+1] = 10
	stepUntil(t, p, cart, at(p, 10, 258))
	assert.Equal(t, uint8(0x20), p.PeekRegister(PPUSTATUS)&0x20)
}

// solidTiles fills nametable 0 with tile 1, which is opaque in every row.
func solidTiles(p *PPU, cart *testCart) {
	for i := 0; i < 8; i++ {
		cart.chr[0x10+i] = 0xFF
	}
	setAddress(p, cart, 0x2000)
	for i := 0; i < 960; i++ {
		p.WriteRegister(PPUDATA, 0x01, cart)
	}
	setAddress(p, cart, 0x3F00)
	p.WriteRegister(PPUDATA, 0x0F, cart)
	p.WriteRegister(PPUDATA, 0x30, cart)
	setAddress(p, cart, 0x0000)
}

func TestSpriteZeroHit(t *testing.T) {
	p, cart := newWarmPPU()
	solidTiles(p, cart)
	copy(p.oam[:4], []uint8{20, 0x01, 0x00, 30})
	p.WriteRegister(PPUMASK, 0x1E, cart)

	_, _, ok := p.SpriteZeroHit()
	assert.False(t, ok)

	stepUntil(t, p, cart, func(Event) bool { return p.PeekRegister(PPUSTATUS)&0x40 != 0 })
	x, y, ok := p.SpriteZeroHit()
	assert.True(t, ok)
	assert.Equal(t, 30, x)
	assert.Equal(t, 21, y)

	// cleared on the pre-render line
	stepUntil(t, p, cart, at(p, PreRenderScanline, 2))
	_, _, ok = p.SpriteZeroHit()
	assert.False(t, ok)
}

func TestSpriteZeroHitLeftClip(t *testing.T) {
	p, cart := newWarmPPU()
	solidTiles(p, cart)
	copy(p.oam[:4], []uint8{20, 0x01, 0x00, 3})
	p.WriteRegister(PPUMASK, 0x18, cart)

	stepUntil(t, p, cart, func(Event) bool { return p.PeekRegister(PPUSTATUS)&0x40 != 0 })
	x, y, _ := p.SpriteZeroHit()
	assert.Equal(t, 8, x)
	assert.Equal(t, 21, y)
}

func TestFrameOutput(t *testing.T) {
	p, cart := newWarmPPU()
	setAddress(p, cart, 0x3F00)
	p.WriteRegister(PPUDATA, 0x21, cart)

	stepUntil(t, p, cart, onFrame)
	f := p.Frame()
	assert.Equal(t, uint8(0x21), f.At(0, 0))
	assert.Equal(t, uint8(0x21), f.At(255, 239))

	want := make([]uint8, Width*Height)
	for i := range want {
		want[i] = 0x21
	}
	sum := sha1.Sum(want)
	assert.Equal(t, hex.EncodeToString(sum[:]), f.Hash())

	img := f.Image()
	assert.Equal(t, Palette[0x21], img.RGBAAt(10, 10))
}

func TestOAMAccess(t *testing.T) {
	p, cart := newWarmPPU()
	p.WriteRegister(OAMADDR, 0xFE, cart)
	p.WriteRegister(OAMDATA, 0x01, cart)
	p.WriteOAM(0x02)
	p.WriteOAM(0x03)

	oam := p.OAM()
	assert.Equal(t, uint8(0x01), oam[0xFE])
	assert.Equal(t, uint8(0x02), oam[0xFF])
	assert.Equal(t, uint8(0x03), oam[0x00])

	p.WriteRegister(OAMADDR, 0xFF, cart)
	assert.Equal(t, uint8(0x02), p.ReadRegister(OAMDATA, cart))

	y, id, attr, x := p.Sprite(63)
	assert.Equal(t, [4]uint8{0, 0, 0x01, 0x02}, [4]uint8{y, id, attr, x})
}

func TestPatternTable(t *testing.T) {
	p, cart := newWarmPPU()
	solidTiles(p, cart)

	img := p.PatternTable(0, 0, cart)
	assert.Equal(t, Palette[0x0F], img.RGBAAt(0, 0))
	assert.Equal(t, Palette[0x30], img.RGBAAt(8, 0))
	assert.Equal(t, Palette[0x30], p.PaletteColour(0, 1))
}
