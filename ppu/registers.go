package ppu

// CPU visible registers, mirrored every 8 bytes from $2000 to $3FFF.
const (
	PPUCTRL   = 0x0
	PPUMASK   = 0x1
	PPUSTATUS = 0x2
	OAMADDR   = 0x3
	OAMDATA   = 0x4
	PPUSCROLL = 0x5
	PPUADDR   = 0x6
	PPUDATA   = 0x7
)

func (p *PPU) incrementAddress() {
	if p.control.Flag(ctrlIncrementMode) {
		p.vramAddr += 32
	} else {
		p.vramAddr++
	}
	p.vramAddr &= 0x7FFF
}

// ReadRegister services a CPU read. reg is the address masked to the
// register window.
func (p *PPU) ReadRegister(reg uint16, cart Cartridge) uint8 {
	switch reg & 0x07 {
	case PPUSTATUS:
		p.ioLatch = (uint8(p.status) & 0xE0) | (p.ioLatch & 0x1F)
		p.status.SetFlag(statusVerticalBlank, false)
		p.writeToggle = false

	case OAMDATA:
		p.ioLatch = p.oam[p.oamAddr]

	case PPUDATA:
		addr := uint16(p.vramAddr) & 0x3FFF
		if addr >= 0x3F00 {
			// palette reads are not buffered. the buffer picks up the
			// nametable byte underneath instead
			p.ioLatch = (p.read(addr, cart) & 0x3F) | (p.ioLatch & 0xC0)
			p.ppuDataBuffer = p.read(addr-0x1000, cart)
		} else {
			p.ioLatch = p.ppuDataBuffer
			p.ppuDataBuffer = p.read(addr, cart)
		}
		p.incrementAddress()
	}

	// write only registers return the latch
	return p.ioLatch
}

// PeekRegister returns what a CPU read would see without any side effects.
func (p *PPU) PeekRegister(reg uint16) uint8 {
	switch reg & 0x07 {
	case PPUCTRL:
		return uint8(p.control)
	case PPUMASK:
		return uint8(p.mask)
	case PPUSTATUS:
		return (uint8(p.status) & 0xE0) | (p.ioLatch & 0x1F)
	case OAMADDR:
		return p.oamAddr
	case OAMDATA:
		return p.oam[p.oamAddr]
	case PPUDATA:
		return p.ppuDataBuffer
	}
	return p.ioLatch
}

// WriteRegister services a CPU write.
func (p *PPU) WriteRegister(reg uint16, data uint8, cart Cartridge) {
	p.ioLatch = data

	switch reg & 0x07 {
	case PPUCTRL:
		if !p.warm {
			return
		}
		p.control = Register(data)
		p.tramAddr.Set(loopyNametable, p.control.Get(ctrlNametable))

	case PPUMASK:
		if !p.warm {
			return
		}
		p.mask = Register(data)

	case OAMADDR:
		p.oamAddr = data

	case OAMDATA:
		p.WriteOAM(data)

	case PPUSCROLL:
		if !p.warm {
			return
		}
		if !p.writeToggle {
			p.fineX = data & 0x07
			p.tramAddr.Set(loopyCoarseX, uint16(data)>>3)
		} else {
			p.tramAddr.Set(loopyFineY, uint16(data)&0x07)
			p.tramAddr.Set(loopyCoarseY, uint16(data)>>3)
		}
		p.writeToggle = !p.writeToggle

	case PPUADDR:
		if !p.warm {
			return
		}
		if !p.writeToggle {
			p.tramAddr = Register((uint16(data)&0x3F)<<8 | uint16(p.tramAddr)&0x00FF)
		} else {
			p.tramAddr = Register(uint16(p.tramAddr)&0xFF00 | uint16(data))
			p.vramAddr = p.tramAddr
		}
		p.writeToggle = !p.writeToggle

	case PPUDATA:
		p.write(uint16(p.vramAddr), data, cart)
		p.incrementAddress()
	}
}

// WriteOAM stores a byte at OAMADDR and advances it. Used by OAMDATA writes
// and by sprite DMA.
func (p *PPU) WriteOAM(data uint8) {
	p.oam[p.oamAddr] = data
	p.oamAddr++
}

// Sprite returns the four OAM bytes of sprite n: y, tile, attributes, x.
func (p *PPU) Sprite(n int) (y, id, attribute, x uint8) {
	e := p.oam[(n&63)*4:]
	return e[0], e[1], e[2], e[3]
}

// OAM returns a copy of object attribute memory.
func (p *PPU) OAM() [256]uint8 {
	return p.oam
}

// Peek reads PPU address space without side effects.
func (p *PPU) Peek(addr uint16, cart Cartridge) uint8 {
	return p.read(addr, cart)
}

// Snapshot is the register state of the PPU.
type Snapshot struct {
	Control  uint8
	Mask     uint8
	Status   uint8
	V        uint16
	T        uint16
	FineX    uint8
	W        bool
	OAMAddr  uint8
	Scanline int
	Dot      int
	Frame    uint64
}

func (p *PPU) Snapshot() Snapshot {
	return Snapshot{
		Control:  uint8(p.control),
		Mask:     uint8(p.mask),
		Status:   uint8(p.status),
		V:        uint16(p.vramAddr),
		T:        uint16(p.tramAddr),
		FineX:    p.fineX,
		W:        p.writeToggle,
		OAMAddr:  p.oamAddr,
		Scanline: p.scanline,
		Dot:      p.dot,
		Frame:    p.frames,
	}
}
