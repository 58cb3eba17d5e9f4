// Package cartridge holds the memory of a game cartridge and routes CPU and
// PPU accesses to it through the cartridge's mapper.
package cartridge

import (
	"errors"
	"fmt"

	"nes-core/logger"
	"nes-core/mapper"
)

var ErrLayout = errors.New("invalid cartridge layout")

// Config is everything needed to build a cartridge. A loader fills it from
// a ROM image.
type Config struct {
	Mapper    int
	PRG       []uint8
	CHR       []uint8
	Mirroring mapper.Mirroring
	Battery   bool

	// initial PRG RAM contents, if any
	RAM []uint8
}

type Cartridge struct {
	mapper    mapper.Mapper
	mirroring mapper.Mirroring
	battery   bool

	prgMemory []uint8
	chrMemory []uint8
	chrRAM    bool
	ram       []uint8
}

// New validates the config and builds the cartridge. The config's slices are
// copied.
func New(cfg Config) (*Cartridge, error) {
	if len(cfg.PRG) == 0 || len(cfg.PRG)%mapper.PRGBankSize != 0 {
		return nil, fmt.Errorf("PRG size %d is not a whole number of banks: %w", len(cfg.PRG), ErrLayout)
	}
	if len(cfg.CHR)%mapper.CHRBankSize != 0 {
		return nil, fmt.Errorf("CHR size %d is not a whole number of banks: %w", len(cfg.CHR), ErrLayout)
	}
	if len(cfg.RAM) > mapper.PRGRAMSize {
		return nil, fmt.Errorf("PRG RAM size %d too large: %w", len(cfg.RAM), ErrLayout)
	}

	geometry := mapper.Geometry{
		PRGBanks: len(cfg.PRG) / mapper.PRGBankSize,
		CHRBanks: len(cfg.CHR) / mapper.CHRBankSize,
	}
	m, err := mapper.New(cfg.Mapper, geometry)
	if err != nil {
		return nil, err
	}

	c := &Cartridge{
		mapper:    m,
		mirroring: cfg.Mirroring,
		battery:   cfg.Battery,
		prgMemory: append([]uint8(nil), cfg.PRG...),
		ram:       make([]uint8, mapper.PRGRAMSize),
	}
	copy(c.ram, cfg.RAM)

	if geometry.CHRBanks == 0 {
		c.chrMemory = make([]uint8, mapper.CHRBankSize)
		c.chrRAM = true
	} else {
		c.chrMemory = append([]uint8(nil), cfg.CHR...)
	}

	logger.Logf("cartridge", "mapper %d, %d PRG banks, %d CHR banks, %s mirroring", m.ID(), geometry.PRGBanks, geometry.CHRBanks, c.Mirroring())
	if c.chrRAM {
		logger.Log("cartridge", "using CHR RAM")
	}

	return c, nil
}

// MapperID is the iNES number of the cartridge's mapper.
func (c *Cartridge) MapperID() int {
	return c.mapper.ID()
}

// ReadPRG services a CPU read in $4020-$FFFF. Addresses the mapper leaves
// unmapped return the latch.
func (c *Cartridge) ReadPRG(addr uint16, latch uint8) uint8 {
	region, offset := c.mapper.TranslatePRG(addr)
	switch region {
	case mapper.ROM:
		return c.prgMemory[offset%uint32(len(c.prgMemory))]
	case mapper.RAM, mapper.RAMProtected:
		return c.ram[offset%uint32(len(c.ram))]
	}
	return latch
}

// PeekPRG reads without side effects. Unmapped addresses return zero.
func (c *Cartridge) PeekPRG(addr uint16) uint8 {
	return c.ReadPRG(addr, 0)
}

// WritePRG services a CPU write in $4020-$FFFF. Writes to $8000-$FFFF go to
// the mapper's control registers.
func (c *Cartridge) WritePRG(addr uint16, data uint8) {
	if addr >= 0x8000 {
		c.mapper.WriteControl(addr, data)
		return
	}
	region, offset := c.mapper.TranslatePRG(addr)
	if region == mapper.RAM {
		c.ram[offset%uint32(len(c.ram))] = data
	}
}

func (c *Cartridge) ReadCHR(addr uint16) uint8 {
	return c.chrMemory[c.mapper.TranslateCHR(addr)%uint32(len(c.chrMemory))]
}

// WriteCHR only has an effect on cartridges with CHR RAM.
func (c *Cartridge) WriteCHR(addr uint16, data uint8) {
	if !c.chrRAM {
		return
	}
	c.chrMemory[c.mapper.TranslateCHR(addr)%uint32(len(c.chrMemory))] = data
}

// Mirroring is the current nametable arrangement. Four screen wiring
// overrides anything the mapper selects.
func (c *Cartridge) Mirroring() mapper.Mirroring {
	if c.mirroring == mapper.FourScreen {
		return c.mirroring
	}
	if m, ok := c.mapper.Mirroring(); ok {
		return m
	}
	return c.mirroring
}

func (c *Cartridge) ScanlineTick() {
	c.mapper.ScanlineTick()
}

func (c *Cartridge) PollIRQ() bool {
	return c.mapper.PollIRQ()
}

// Reset returns the mapper to its power on state. Memory is untouched.
func (c *Cartridge) Reset() {
	c.mapper.Reset()
}

// Battery is true if PRG RAM is battery backed.
func (c *Cartridge) Battery() bool {
	return c.battery
}

// RAM returns the PRG RAM. The slice is live.
func (c *Cartridge) RAM() []uint8 {
	return c.ram
}
