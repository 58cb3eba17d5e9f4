package ppu

func (p *PPU) incrementScrollX() {
	if !p.renderingEnabled() {
		return
	}
	if p.vramAddr.Get(loopyCoarseX) == 31 {
		p.vramAddr.Set(loopyCoarseX, 0)
		p.vramAddr.Set(loopyNametableX, ^p.vramAddr.Get(loopyNametableX))
		return
	}
	p.vramAddr.Set(loopyCoarseX, p.vramAddr.Get(loopyCoarseX)+1)
}

func (p *PPU) incrementScrollY() {
	if !p.renderingEnabled() {
		return
	}
	if p.vramAddr.Get(loopyFineY) < 7 {
		p.vramAddr.Set(loopyFineY, p.vramAddr.Get(loopyFineY)+1)
		return
	}
	p.vramAddr.Set(loopyFineY, 0)

	switch p.vramAddr.Get(loopyCoarseY) {
	case 29:
		p.vramAddr.Set(loopyCoarseY, 0)
		p.vramAddr.Set(loopyNametableY, ^p.vramAddr.Get(loopyNametableY))
	case 31:
		// attribute memory; wrap without switching nametable
		p.vramAddr.Set(loopyCoarseY, 0)
	default:
		p.vramAddr.Set(loopyCoarseY, p.vramAddr.Get(loopyCoarseY)+1)
	}
}

func (p *PPU) transferAddressX() {
	if !p.renderingEnabled() {
		return
	}
	p.vramAddr.Set(loopyNametableX, p.tramAddr.Get(loopyNametableX))
	p.vramAddr.Set(loopyCoarseX, p.tramAddr.Get(loopyCoarseX))
}

func (p *PPU) transferAddressY() {
	if !p.renderingEnabled() {
		return
	}
	p.vramAddr.Set(loopyFineY, p.tramAddr.Get(loopyFineY))
	p.vramAddr.Set(loopyNametableY, p.tramAddr.Get(loopyNametableY))
	p.vramAddr.Set(loopyCoarseY, p.tramAddr.Get(loopyCoarseY))
}

func (p *PPU) loadBackgroundShifters() {
	p.bgShifterPatternLo = (p.bgShifterPatternLo & 0xFF00) | uint16(p.bgNextTileLsb)
	p.bgShifterPatternHi = (p.bgShifterPatternHi & 0xFF00) | uint16(p.bgNextTileMsb)

	acc := uint16(0x00)
	if p.bgNextTileAttrib&0b01 != 0 {
		acc = 0xFF
	}
	p.bgShifterAttribLo = (p.bgShifterAttribLo & 0xFF00) | acc
	acc = 0x00
	if p.bgNextTileAttrib&0b10 != 0 {
		acc = 0xFF
	}
	p.bgShifterAttribHi = (p.bgShifterAttribHi & 0xFF00) | acc
}

func (p *PPU) updateShifters() {
	if p.mask.Flag(maskRenderBackground) {
		p.bgShifterPatternLo <<= 1
		p.bgShifterPatternHi <<= 1
		p.bgShifterAttribLo <<= 1
		p.bgShifterAttribHi <<= 1
	}

	if p.mask.Flag(maskRenderSprites) && p.dot >= 1 && p.dot < 258 {
		for i := 0; i < p.spriteCount; i++ {
			if p.spriteScanline[i].x > 0 {
				p.spriteScanline[i].x--
			} else {
				p.spriteShifterPatternLo[i] <<= 1
				p.spriteShifterPatternHi[i] <<= 1
			}
		}
	}
}

func (p *PPU) backgroundPatternBase() uint16 {
	return p.control.Get(ctrlPatternBackground) << 12
}

// renderBackground runs the background fetch pipeline for the current dot.
func (p *PPU) renderBackground(cart Cartridge) {
	if (p.dot >= 2 && p.dot < 258) || (p.dot >= 321 && p.dot < 338) {
		p.updateShifters()

		switch (p.dot - 1) % 8 {
		case 0:
			p.loadBackgroundShifters()
			p.bgNextTileId = p.read(0x2000|(uint16(p.vramAddr)&0x0FFF), cart)
		case 2:
			p.bgNextTileAttrib = p.read(0x23C0|
				(p.vramAddr.Get(loopyNametableY)<<11)|
				(p.vramAddr.Get(loopyNametableX)<<10)|
				((p.vramAddr.Get(loopyCoarseY)>>2)<<3)|
				(p.vramAddr.Get(loopyCoarseX)>>2), cart)
			if p.vramAddr.Get(loopyCoarseY)&0x02 != 0 {
				p.bgNextTileAttrib >>= 4
			}
			if p.vramAddr.Get(loopyCoarseX)&0x02 != 0 {
				p.bgNextTileAttrib >>= 2
			}
			p.bgNextTileAttrib &= 0x03
		case 4:
			p.bgNextTileLsb = p.read(p.backgroundPatternBase()+(uint16(p.bgNextTileId)<<4)+p.vramAddr.Get(loopyFineY), cart)
		case 6:
			p.bgNextTileMsb = p.read(p.backgroundPatternBase()+(uint16(p.bgNextTileId)<<4)+p.vramAddr.Get(loopyFineY)+8, cart)
		case 7:
			p.incrementScrollX()
		}
	}

	if p.dot == 256 {
		p.incrementScrollY()
	}

	if p.dot == 257 {
		p.loadBackgroundShifters()
		p.transferAddressX()
	}

	if p.dot == 338 || p.dot == 340 {
		p.bgNextTileId = p.read(0x2000|(uint16(p.vramAddr)&0x0FFF), cart)
	}

	if p.scanline == PreRenderScanline && p.dot >= 280 && p.dot < 305 {
		p.transferAddressY()
	}
}

// backgroundPixel returns the two bit pattern value and palette of the
// background at the current dot.
func (p *PPU) backgroundPixel(x int) (pixel uint8, palette uint8) {
	if !p.mask.Flag(maskRenderBackground) {
		return 0, 0
	}
	if x < 8 && !p.mask.Flag(maskRenderBackgroundLeft) {
		return 0, 0
	}

	bitMux := uint16(0x8000) >> p.fineX
	if p.bgShifterPatternLo&bitMux != 0 {
		pixel |= 0b01
	}
	if p.bgShifterPatternHi&bitMux != 0 {
		pixel |= 0b10
	}
	if p.bgShifterAttribLo&bitMux != 0 {
		palette |= 0b01
	}
	if p.bgShifterAttribHi&bitMux != 0 {
		palette |= 0b10
	}
	return pixel, palette
}
