package nes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"nes-core/cartridge"
	"nes-core/mapper"
)

// vectors used by test programs
const (
	resetAddr = 0x8000
	nmiAddr   = 0x9000
	irqAddr   = 0xA000
)

// nrom builds a 32 KiB NROM cartridge. program is placed at $8000 and each
// entry of handlers at its address.
func nrom(t *testing.T, program []uint8, handlers map[uint16][]uint8) *cartridge.Cartridge {
	t.Helper()

	prg := make([]uint8, 2*mapper.PRGBankSize)
	copy(prg, program)
	for addr, code := range handlers {
		copy(prg[addr-0x8000:], code)
	}
	setVectors(prg, resetAddr, nmiAddr, irqAddr)

	cart, err := cartridge.New(cartridge.Config{
		Mapper: 0,
		PRG:    prg,
		CHR:    make([]uint8, mapper.CHRBankSize),
	})
	require.NoError(t, err)
	return cart
}

func setVectors(prg []uint8, reset, nmi, irq uint16) {
	end := len(prg)
	for i, v := range []uint16{nmi, reset, irq} {
		prg[end-6+i*2] = uint8(v)
		prg[end-5+i*2] = uint8(v >> 8)
	}
}

func newConsole(t *testing.T, cart *cartridge.Cartridge, options ...Option) *Console {
	t.Helper()
	c, err := New(cart, options...)
	require.NoError(t, err)
	return c
}

// BIT $2002; BPL back to the BIT
var waitVBlank = []uint8{0x2C, 0x02, 0x20, 0x10, 0xFB}

func code(parts ...[]uint8) []uint8 {
	var c []uint8
	for _, p := range parts {
		c = append(c, p...)
	}
	return c
}

// jmp to self, located at addr
func spin(addr uint16) []uint8 {
	return []uint8{0x4C, uint8(addr), uint8(addr >> 8)}
}

// romOrSkip loads a ROM from testdata, skipping the test if it is absent.
func romOrSkip(t *testing.T, name string) *cartridge.Cartridge {
	t.Helper()
	path := filepath.Join("testdata", name)
	if _, err := os.Stat(path); err != nil {
		t.Skipf("%s not available", path)
	}
	cart, err := cartridge.LoadFile(path)
	require.NoError(t, err)
	return cart
}
