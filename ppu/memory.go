package ppu

import "nes-core/mapper"

// nametableOffset maps an address in $2000-$3EFF onto the 4 KiB of nametable
// memory according to the mirroring mode.
func nametableOffset(addr uint16, mirroring mapper.Mirroring) uint16 {
	addr &= 0x0FFF
	table := addr >> 10
	offset := addr & 0x03FF

	switch mirroring {
	case mapper.Horizontal:
		table >>= 1
	case mapper.Vertical:
		table &= 0x01
	case mapper.SingleLower:
		table = 0
	case mapper.SingleUpper:
		table = 1
	}
	return table<<10 | offset
}

// $3F10/$3F14/$3F18/$3F1C mirror the backdrop entries of the background
// palettes
func paletteOffset(addr uint16) uint16 {
	addr &= 0x001F
	if addr&0x0013 == 0x0010 {
		addr &= 0x000F
	}
	return addr
}

func (p *PPU) read(addr uint16, cart Cartridge) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return cart.ReadCHR(addr)
	case addr < 0x3F00:
		return p.vram[nametableOffset(addr, cart.Mirroring())]
	}

	mask := uint8(0x3F)
	if p.mask.Flag(maskGrayscale) {
		mask = 0x30
	}
	return p.palette[paletteOffset(addr)] & mask
}

func (p *PPU) write(addr uint16, data uint8, cart Cartridge) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		cart.WriteCHR(addr, data)
	case addr < 0x3F00:
		p.vram[nametableOffset(addr, cart.Mirroring())] = data
	default:
		p.palette[paletteOffset(addr)] = data & 0x3F
	}
}

// paletteEntry returns the colour index for a pixel value in one of the
// eight palettes. Pixel value zero is always the backdrop.
func (p *PPU) paletteEntry(palette uint8, pixel uint8) uint8 {
	if pixel == 0 {
		palette = 0
	}
	v := p.palette[paletteOffset(uint16(palette)<<2|uint16(pixel))]
	if p.mask.Flag(maskGrayscale) {
		v &= 0x30
	}
	return v
}
