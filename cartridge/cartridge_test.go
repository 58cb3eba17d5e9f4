package cartridge

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nes-core/mapper"
)

// image builds an iNES file. PRG bytes are filled with their bank number.
func image(mapperID int, prgBanks, chrBanks int, flags6 uint8, trainer bool) []byte {
	var b bytes.Buffer
	if trainer {
		flags6 |= 0x04
	}
	b.Write([]byte{'N', 'E', 'S', 0x1A, uint8(prgBanks), uint8(chrBanks),
		flags6 | uint8(mapperID&0x0F)<<4, uint8(mapperID & 0xF0), 0, 0, 0, 0, 0, 0, 0, 0})
	if trainer {
		b.Write(bytes.Repeat([]byte{0xEE}, trainerSize))
	}
	for i := 0; i < prgBanks; i++ {
		b.Write(bytes.Repeat([]byte{uint8(0x10 + i)}, mapper.PRGBankSize))
	}
	for i := 0; i < chrBanks; i++ {
		b.Write(bytes.Repeat([]byte{uint8(0x20 + i)}, mapper.CHRBankSize))
	}
	return b.Bytes()
}

func TestLoadINES(t *testing.T) {
	c, err := LoadINES(bytes.NewReader(image(0, 1, 1, 0x01, true)))
	require.NoError(t, err)

	assert.Equal(t, 0, c.MapperID())
	assert.Equal(t, mapper.Vertical, c.Mirroring())
	assert.Equal(t, uint8(0x10), c.ReadPRG(0x8000, 0))
	assert.Equal(t, uint8(0x10), c.ReadPRG(0xFFFF, 0))
	assert.Equal(t, uint8(0x20), c.ReadCHR(0x1FFF))

	// CHR ROM ignores writes
	c.WriteCHR(0x0000, 0x99)
	assert.Equal(t, uint8(0x20), c.ReadCHR(0x0000))
}

func TestHeaderErrors(t *testing.T) {
	_, err := LoadINES(bytes.NewReader([]byte("NES")))
	assert.ErrorIs(t, err, ErrTruncated)

	bad := image(0, 1, 1, 0, false)
	bad[0] = 'X'
	_, err = LoadINES(bytes.NewReader(bad))
	assert.ErrorIs(t, err, ErrNotINES)

	short := image(0, 2, 1, 0, false)
	_, err = LoadINES(bytes.NewReader(short[:0x5000]))
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = LoadINES(bytes.NewReader(image(7, 2, 1, 0, false)))
	assert.ErrorIs(t, err, mapper.ErrUnsupportedMapper)

	_, err = LoadINES(bytes.NewReader(image(0, 4, 1, 0, false)))
	assert.ErrorIs(t, err, mapper.ErrBankLayout)
}

func TestNewValidatesSizes(t *testing.T) {
	_, err := New(Config{PRG: make([]uint8, 100)})
	assert.ErrorIs(t, err, ErrLayout)

	_, err = New(Config{PRG: make([]uint8, mapper.PRGBankSize), CHR: make([]uint8, 10)})
	assert.ErrorIs(t, err, ErrLayout)

	_, err = New(Config{PRG: make([]uint8, mapper.PRGBankSize), RAM: make([]uint8, 0x4000)})
	assert.ErrorIs(t, err, ErrLayout)
}

func TestMemoryRegions(t *testing.T) {
	c, err := New(Config{
		PRG: make([]uint8, mapper.PRGBankSize),
		RAM: []uint8{0xAB},
	})
	require.NoError(t, err)

	assert.Equal(t, uint8(0xAB), c.ReadPRG(0x6000, 0))
	c.WritePRG(0x7FFF, 0x42)
	assert.Equal(t, uint8(0x42), c.ReadPRG(0x7FFF, 0))
	assert.Equal(t, uint8(0x42), c.RAM()[0x1FFF])

	// open bus below $6000
	assert.Equal(t, uint8(0x5A), c.ReadPRG(0x5000, 0x5A))
	assert.Equal(t, uint8(0x00), c.PeekPRG(0x5000))

	// CHR RAM
	c.WriteCHR(0x1234, 0x77)
	assert.Equal(t, uint8(0x77), c.ReadCHR(0x1234))
}

func TestMirroringSources(t *testing.T) {
	c, err := LoadINES(bytes.NewReader(image(0, 1, 1, 0x08, false)))
	require.NoError(t, err)
	assert.Equal(t, mapper.FourScreen, c.Mirroring())

	c, err = LoadINES(bytes.NewReader(image(1, 2, 1, 0x00, false)))
	require.NoError(t, err)
	// MMC1 powers on in single screen mode
	assert.Equal(t, mapper.SingleLower, c.Mirroring())
	for i := 0; i < 5; i++ {
		c.WritePRG(0x8000, (0x02>>i)&1)
	}
	assert.Equal(t, mapper.Vertical, c.Mirroring())
}

func TestBankSwitchThroughCartridge(t *testing.T) {
	c, err := LoadINES(bytes.NewReader(image(2, 4, 0, 0, false)))
	require.NoError(t, err)

	assert.Equal(t, uint8(0x10), c.ReadPRG(0x8000, 0))
	assert.Equal(t, uint8(0x13), c.ReadPRG(0xC000, 0))
	c.WritePRG(0x8000, 2)
	assert.Equal(t, uint8(0x12), c.ReadPRG(0x8000, 0))

	c.Reset()
	assert.Equal(t, uint8(0x10), c.ReadPRG(0x8000, 0))
}

func TestBatteryRAM(t *testing.T) {
	dir := t.TempDir()
	rom := filepath.Join(dir, "game.nes")
	require.NoError(t, os.WriteFile(rom, image(0, 1, 1, 0x02, false), 0o644))

	c, err := LoadFile(rom)
	require.NoError(t, err)
	assert.True(t, c.Battery())
	c.WritePRG(0x6000, 0x5C)
	require.NoError(t, c.SaveRAM(rom))

	c, err = LoadFile(rom)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x5C), c.ReadPRG(0x6000, 0))
}
