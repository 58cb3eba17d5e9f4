// Package mapper implements the cartridge bank switching hardware.
//
// A Mapper only translates addresses. The memory itself is owned by the
// cartridge, which asks the mapper where each access lands.
package mapper

import (
	"errors"
	"fmt"
)

// Mirroring is the arrangement of the four logical nametables onto
// nametable memory.
type Mirroring uint8

const (
	Horizontal Mirroring = iota
	Vertical
	SingleLower
	SingleUpper
	FourScreen
)

func (m Mirroring) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case SingleLower:
		return "single-lower"
	case SingleUpper:
		return "single-upper"
	case FourScreen:
		return "four-screen"
	}
	return "unknown"
}

// Region is the kind of memory a CPU address resolves to.
type Region uint8

const (
	Unmapped Region = iota
	ROM
	RAM

	// RAMProtected can be read but ignores writes
	RAMProtected
)

// Bank sizes.
const (
	PRGBankSize = 0x4000
	CHRBankSize = 0x2000
	PRGRAMSize  = 0x2000
)

// Geometry describes the memory fitted to a cartridge. PRGBanks is in
// 16 KiB units and CHRBanks in 8 KiB units. Zero CHR banks means the
// cartridge carries 8 KiB of CHR RAM instead.
type Geometry struct {
	PRGBanks int
	CHRBanks int
}

func (g Geometry) prgSize() uint32 {
	return uint32(g.PRGBanks) * PRGBankSize
}

func (g Geometry) chrSize() uint32 {
	if g.CHRBanks == 0 {
		return CHRBankSize
	}
	return uint32(g.CHRBanks) * CHRBankSize
}

// Mapper translates CPU and PPU addresses into offsets within the
// cartridge's PRG and CHR memory.
type Mapper interface {
	// ID is the iNES mapper number.
	ID() int

	// TranslatePRG maps a CPU address in $4020-$FFFF. For ROM the offset is
	// into PRG ROM, for RAM and RAMProtected it is into PRG RAM.
	TranslatePRG(addr uint16) (Region, uint32)

	// TranslateCHR maps a PPU address in $0000-$1FFF to an offset into CHR
	// ROM or RAM.
	TranslateCHR(addr uint16) uint32

	// WriteControl handles CPU writes to $8000-$FFFF.
	WriteControl(addr uint16, data uint8)

	// ScanlineTick is called by the PPU once per rendered scanline.
	ScanlineTick()

	PollIRQ() bool
	AcknowledgeIRQ()

	// Mirroring returns the mirroring selected by the mapper. The second
	// value is false when mirroring is fixed by the cartridge wiring.
	Mirroring() (Mirroring, bool)

	Reset()
}

var (
	ErrUnsupportedMapper = errors.New("unsupported mapper")
	ErrBankLayout        = errors.New("bank layout out of range")
)

type limits struct {
	minPRG, maxPRG int
	minCHR, maxCHR int
}

func (l limits) check(g Geometry) error {
	if g.PRGBanks < l.minPRG || g.PRGBanks > l.maxPRG {
		return fmt.Errorf("%d PRG banks, want %d to %d: %w", g.PRGBanks, l.minPRG, l.maxPRG, ErrBankLayout)
	}
	if g.CHRBanks < l.minCHR || g.CHRBanks > l.maxCHR {
		return fmt.Errorf("%d CHR banks, want %d to %d: %w", g.CHRBanks, l.minCHR, l.maxCHR, ErrBankLayout)
	}
	return nil
}

// New creates mapper id for the geometry. Layouts the mapper cannot address
// are rejected.
func New(id int, g Geometry) (Mapper, error) {
	var m Mapper
	var l limits

	switch id {
	case 0:
		l = limits{1, 2, 0, 1}
		m = &Mapper0000{geometry: g}
	case 1:
		// the 4 bit PRG register reaches 256 KiB. SUROM's outer bank is not
		// wired
		l = limits{1, 16, 0, 16}
		m = &Mapper0001{geometry: g}
	case 2:
		l = limits{2, 256, 0, 1}
		m = &Mapper0002{geometry: g}
	case 3:
		l = limits{1, 2, 1, 256}
		m = &Mapper0003{geometry: g}
	case 4:
		l = limits{2, 32, 0, 32}
		m = &Mapper0004{geometry: g}
	default:
		return nil, fmt.Errorf("mapper %d: %w", id, ErrUnsupportedMapper)
	}

	if err := l.check(g); err != nil {
		return nil, fmt.Errorf("mapper %d: %w", id, err)
	}

	m.Reset()
	return m, nil
}

// prgRAM resolves $6000-$7FFF, shared by every mapper here.
func prgRAM(addr uint16) (Region, uint32) {
	if addr >= 0x6000 && addr < 0x8000 {
		return RAM, uint32(addr & 0x1FFF)
	}
	return Unmapped, 0
}

// noIRQ is embedded by mappers without an interrupt source
type noIRQ struct{}

func (noIRQ) ScanlineTick()   {}
func (noIRQ) PollIRQ() bool   { return false }
func (noIRQ) AcknowledgeIRQ() {}
