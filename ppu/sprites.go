package ppu

// MaxSpritesPerScanline is the number of sprites the PPU can draw on a line.
const MaxSpritesPerScanline = 8

func (p *PPU) spriteHeight() int {
	if p.control.Flag(ctrlSpriteSize) {
		return 16
	}
	return 8
}

func (p *PPU) spriteInRange(y uint8) bool {
	diff := p.scanline - int(y)
	return diff >= 0 && diff < p.spriteHeight()
}

// evaluateSprites finds the sprites on the current scanline, to be drawn on
// the next. Once eight have been found the search for a ninth carries on
// with the hardware bug that increments the byte offset along with the
// sprite index, so overflow is both missed and falsely reported.
func (p *PPU) evaluateSprites() {
	for i := range p.spriteScanline {
		p.spriteScanline[i] = sprite{0xFF, 0xFF, 0xFF, 0xFF}
		p.spriteShifterPatternLo[i] = 0
		p.spriteShifterPatternHi[i] = 0
	}
	p.spriteCount = 0
	p.spriteZeroHitPossible = false

	n := 0
	for ; n < 64 && p.spriteCount < MaxSpritesPerScanline; n++ {
		entry := p.oam[n*4 : n*4+4]
		if !p.spriteInRange(entry[0]) {
			continue
		}
		if n == 0 {
			p.spriteZeroHitPossible = true
		}
		p.spriteScanline[p.spriteCount] = sprite{
			y:         entry[0],
			id:        entry[1],
			attribute: entry[2],
			x:         entry[3],
		}
		p.spriteCount++
	}

	m := 0
	for ; n < 64; n++ {
		if p.spriteInRange(p.oam[n*4+m]) {
			p.status.SetFlag(statusSpriteOverflow, true)
			break
		}
		m = (m + 1) & 0x03
	}
}

func flipByte(b uint8) uint8 {
	b = ((b & 0xF0) >> 4) | ((b & 0x0F) << 4)
	b = ((b & 0xCC) >> 2) | ((b & 0x33) << 2)
	b = ((b & 0xAA) >> 1) | ((b & 0x55) << 1)
	return b
}

// fetchSprites loads the pattern shifters for the sprites found by
// evaluateSprites().
func (p *PPU) fetchSprites(cart Cartridge) {
	for i := 0; i < p.spriteCount; i++ {
		s := &p.spriteScanline[i]
		row := uint16(p.scanline - int(s.y))
		flipped := s.attribute&0x80 != 0

		var addr uint16
		if p.spriteHeight() == 8 {
			if flipped {
				row = 7 - row
			}
			addr = (p.control.Get(ctrlPatternSprite) << 12) | (uint16(s.id) << 4) | row
		} else {
			table := uint16(s.id&0x01) << 12
			tile := uint16(s.id & 0xFE)
			if flipped {
				row = 15 - row
			}
			if row >= 8 {
				tile++
			}
			addr = table | (tile << 4) | (row & 0x07)
		}

		lo := p.read(addr, cart)
		hi := p.read(addr+8, cart)
		if s.attribute&0x40 != 0 {
			lo = flipByte(lo)
			hi = flipByte(hi)
		}
		p.spriteShifterPatternLo[i] = lo
		p.spriteShifterPatternHi[i] = hi
	}
}

// spritePixel returns the first opaque sprite pixel at the current dot.
func (p *PPU) spritePixel(x int) (pixel uint8, palette uint8, front bool) {
	p.spriteZeroBeingRendered = false
	if !p.mask.Flag(maskRenderSprites) {
		return 0, 0, false
	}
	if x < 8 && !p.mask.Flag(maskRenderSpritesLeft) {
		return 0, 0, false
	}

	for i := 0; i < p.spriteCount; i++ {
		s := &p.spriteScanline[i]
		if s.x != 0 {
			continue
		}
		pixel = (p.spriteShifterPatternLo[i] >> 7) | ((p.spriteShifterPatternHi[i] >> 7) << 1)
		if pixel == 0 {
			continue
		}
		if i == 0 && p.spriteZeroHitPossible {
			p.spriteZeroBeingRendered = true
		}
		return pixel, (s.attribute & 0x03) + 0x04, s.attribute&0x20 == 0
	}
	return 0, 0, false
}

// composite mixes background and sprites for the pixel at the current dot
// and checks for a sprite zero hit.
func (p *PPU) composite() {
	x := p.dot - 1
	y := p.scanline

	bgPixel, bgPalette := p.backgroundPixel(x)
	fgPixel, fgPalette, fgFront := p.spritePixel(x)

	var pixel, palette uint8
	switch {
	case bgPixel == 0 && fgPixel == 0:
	case bgPixel == 0:
		pixel, palette = fgPixel, fgPalette
	case fgPixel == 0:
		pixel, palette = bgPixel, bgPalette
	default:
		if fgFront {
			pixel, palette = fgPixel, fgPalette
		} else {
			pixel, palette = bgPixel, bgPalette
		}

		if p.spriteZeroBeingRendered && x != 255 && !p.status.Flag(statusSpriteZeroHit) {
			p.status.SetFlag(statusSpriteZeroHit, true)
			p.spriteZeroHitX = x
			p.spriteZeroHitY = y
		}
	}

	p.back.pixels[y*Width+x] = p.paletteEntry(palette, pixel)
}
