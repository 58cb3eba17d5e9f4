package nes

import (
	"nes-core/apu"
	"nes-core/cartridge"
	"nes-core/controller"
	"nes-core/ppu"
)

// Memory map of the CPU address space.
const (
	ramEnd        = 0x2000
	ppuEnd        = 0x4000
	oamDMA        = 0x4014
	joypad1       = 0x4016
	joypad2       = 0x4017
	ioEnd         = 0x4020
	apuStatus     = apu.StatusRegister
	apuFrameCount = apu.FrameCounterRegister
)

// Bus routes CPU accesses to the device that owns the address. It implements
// cpu.Bus and cpu.Peeker.
type Bus struct {
	ram         ram
	ppu         *ppu.PPU
	apu         *apu.APU
	cart        *cartridge.Cartridge
	controllers [2]*controller.Controller

	// set by a write to $4014. the scheduler picks it up after the
	// instruction and charges the stall
	dmaPending bool

	// last byte the DMA left on the data bus
	dmaLatch uint8
}

func (b *Bus) Read(addr uint16, latch uint8) uint8 {
	switch {
	case addr < ramEnd:
		return b.ram.read(addr)
	case addr < ppuEnd:
		return b.ppu.ReadRegister(addr&0x0007, b.cart)
	case addr == apuStatus:
		return b.apu.ReadStatus(latch)
	case addr == joypad1 || addr == joypad2:
		return (latch & 0xE0) | b.controllers[addr&0x0001].Read()
	case addr < ioEnd:
		// write only registers
		return latch
	}
	return b.cart.ReadPRG(addr, latch)
}

func (b *Bus) Write(addr uint16, data uint8) {
	switch {
	case addr < ramEnd:
		b.ram.write(addr, data)
	case addr < ppuEnd:
		b.ppu.WriteRegister(addr&0x0007, data, b.cart)
	case addr == oamDMA:
		b.dma(data)
	case addr == joypad1:
		b.controllers[0].Write(data)
		b.controllers[1].Write(data)
	case addr < 0x4014 || addr == apuStatus || addr == apuFrameCount:
		b.apu.Write(addr, data)
	case addr < ioEnd:
		// unused test registers
	default:
		b.cart.WritePRG(addr, data)
	}
}

// dma copies a page into OAM, starting at the current OAM address. The copy
// completes at once; the CPU sees it only as the stall that follows and the
// last byte copied, which is left on the data bus.
func (b *Bus) dma(page uint8) {
	base := uint16(page) << 8
	latch := page
	for i := uint16(0); i < 256; i++ {
		latch = b.Read(base|i, latch)
		b.ppu.WriteOAM(latch)
	}
	b.dmaLatch = latch
	b.dmaPending = true
}

// Peek reads the address space without side effects.
func (b *Bus) Peek(addr uint16) uint8 {
	switch {
	case addr < ramEnd:
		return b.ram.read(addr)
	case addr < ppuEnd:
		return b.ppu.PeekRegister(addr & 0x0007)
	case addr == apuStatus:
		return b.apu.PeekStatus()
	case addr == joypad1 || addr == joypad2:
		return b.controllers[addr&0x0001].Peek()
	case addr < ioEnd:
		return 0
	}
	return b.cart.PeekPRG(addr)
}
