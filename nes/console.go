// Package nes ties the CPU, PPU, APU, controllers and cartridge together on
// a bus and drives them in lockstep.
package nes

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math/rand"

	"nes-core/apu"
	"nes-core/cartridge"
	"nes-core/controller"
	"nes-core/cpu"
	"nes-core/logger"
	"nes-core/ppu"
)

// PPU dots per CPU cycle.
const dotsPerCycle = 3

// OAM DMA stall. One more cycle is needed to align when the DMA starts on an
// odd cycle, counting from the cycle after the $4014 write.
const dmaCycles = 513

type Console struct {
	cpu  *cpu.CPU
	ppu  *ppu.PPU
	apu  *apu.APU
	cart *cartridge.Cartridge
	bus  *Bus

	controllers [2]*controller.Controller

	// previous level of the PPU NMI output. the CPU sees the rising edge
	nmiLevel bool

	// mapper IRQ as sampled at the last scanline boundary
	mapperIRQ bool

	frameDone    bool
	instructions uint64

	trace      io.Writer
	startPC    uint16
	hasStartPC bool
	randomRAM  bool
	seed       int64
}

// New builds a console around a cartridge and powers it on.
func New(cart *cartridge.Cartridge, options ...Option) (*Console, error) {
	if cart == nil {
		return nil, errors.New("nes: no cartridge")
	}

	c := &Console{
		cpu:  cpu.NewCPU(),
		ppu:  ppu.NewPPU(),
		apu:  apu.NewAPU(),
		cart: cart,
		controllers: [2]*controller.Controller{{}, {}},
	}
	c.bus = &Bus{
		ppu:         c.ppu,
		apu:         c.apu,
		cart:        c.cart,
		controllers: c.controllers,
	}

	if err := c.setOptions(options...); err != nil {
		return nil, fmt.Errorf("nes: %w", err)
	}

	if c.randomRAM {
		c.bus.ram.reset(rand.New(rand.NewSource(c.seed)))
	} else {
		c.bus.ram.reset(nil)
	}

	c.Reset()
	return c, nil
}

// Reset presses the reset button. Work RAM and cartridge memory survive. The
// reset sequence runs before Reset returns, so the CPU is ready to execute
// the first instruction at the reset vector.
func (c *Console) Reset() {
	c.cart.Reset()
	c.ppu.Reset()
	c.apu.Reset()
	c.nmiLevel = false
	c.mapperIRQ = false
	c.frameDone = false
	c.instructions = 0
	c.bus.dmaPending = false

	c.cpu.Reset()
	c.cycle(c.cpu.Step(c.bus))

	if c.hasStartPC {
		c.cpu.SetPC(c.startPC)
	}

	logger.Logf("nes", "reset: %s", c.cpu.Snapshot())
}

// Step executes one instruction, or services one interrupt, and advances the
// rest of the console by the cycles it took. It returns that cycle count,
// including any DMA stall.
func (c *Console) Step() int {
	if c.trace != nil {
		c.traceInstruction()
	}

	jammed := c.cpu.Jammed()
	start := c.cpu.Cycles()
	cycles := c.cpu.Step(c.bus)
	c.instructions++

	if c.bus.dmaPending {
		c.bus.dmaPending = false

		// the $4014 write is the last cycle of the instruction, so the DMA
		// begins on the cycle after it
		stall := dmaCycles
		if (start+uint64(cycles))%2 == 1 {
			stall++
		}
		c.cpu.Stall(stall)
		c.cpu.SetLatch(c.bus.dmaLatch)
		cycles += stall
	}

	c.cycle(cycles)

	if !jammed && c.cpu.Jammed() {
		logger.Logf("nes", "CPU jammed at $%04X", c.cpu.PC())
	}

	return cycles
}

// cycle advances the PPU and APU by a number of CPU cycles and updates the
// interrupt lines for the next instruction.
func (c *Console) cycle(cycles int) {
	for i := 0; i < cycles*dotsPerCycle; i++ {
		ev := c.ppu.Step(c.cart)
		if ev&ppu.EventScanline != 0 && c.cart.PollIRQ() {
			c.mapperIRQ = true
		}
		if ev&ppu.EventFrame != 0 {
			c.frameDone = true
		}
	}
	c.apu.Tick(cycles)

	nmi := c.ppu.NMI()
	if nmi && !c.nmiLevel {
		c.cpu.TriggerNMI()
	}
	c.nmiLevel = nmi

	// an acknowledge drops the line at once
	if !c.cart.PollIRQ() {
		c.mapperIRQ = false
	}
	c.cpu.SetIRQ(c.apu.IRQ() || c.mapperIRQ)
}

// StepFrame runs until the PPU completes a frame and returns it.
func (c *Console) StepFrame() *ppu.Frame {
	c.frameDone = false
	for !c.frameDone {
		c.Step()
	}
	return c.ppu.Frame()
}

// Frame is the most recently completed frame.
func (c *Console) Frame() *ppu.Frame {
	return c.ppu.Frame()
}

// SetButtons sets the buttons held on a controller port (0 or 1).
func (c *Console) SetButtons(port int, buttons uint8) {
	c.controllers[port&1].SetButtons(buttons)
}

// Peek reads the CPU address space without side effects.
func (c *Console) Peek(addr uint16) uint8 {
	return c.bus.Peek(addr)
}

// PeekPPU reads the PPU address space without side effects.
func (c *Console) PeekPPU(addr uint16) uint8 {
	return c.ppu.Peek(addr, c.cart)
}

// Cartridge returns the inserted cartridge.
func (c *Console) Cartridge() *cartridge.Cartridge {
	return c.cart
}

// Disassemble decodes the instructions between two addresses.
func (c *Console) Disassemble(start, stop uint16) map[uint16]cpu.DisassembledInstruction {
	return cpu.DisassembleRange(c.bus, start, stop)
}

// OAM returns a copy of object attribute memory.
func (c *Console) OAM() [256]uint8 {
	return c.ppu.OAM()
}

// PatternTable renders one of the two pattern tables with a palette.
func (c *Console) PatternTable(i uint8, palette uint8) *image.RGBA {
	return c.ppu.PatternTable(i, palette, c.cart)
}

// RAM dumps work RAM.
func (c *Console) RAM() string {
	return c.bus.ram.String()
}

// PaletteColour is the colour of an entry in one of the eight palettes.
func (c *Console) PaletteColour(palette uint8, pixel uint8) color.RGBA {
	return c.ppu.PaletteColour(palette, pixel)
}
