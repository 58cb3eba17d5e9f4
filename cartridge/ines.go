package cartridge

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"nes-core/mapper"
)

var (
	ErrNotINES   = errors.New("not an iNES image")
	ErrTruncated = errors.New("truncated image")
)

var inesMagic = [4]byte{'N', 'E', 'S', 0x1A}

const trainerSize = 512

// Header is the 16 byte iNES header.
type Header struct {
	Name         [4]byte
	PrgRomChunks uint8
	ChrRomChunks uint8
	Mapper1      uint8
	Mapper2      uint8
	PrgRamSize   uint8
	TvSystem1    uint8
	TvSystem2    uint8
	Unused       [5]byte
}

func (h Header) MapperID() int {
	return int((h.Mapper2 & 0xF0) | (h.Mapper1 >> 4))
}

func (h Header) Mirroring() mapper.Mirroring {
	switch {
	case h.Mapper1&0x08 != 0:
		return mapper.FourScreen
	case h.Mapper1&0x01 != 0:
		return mapper.Vertical
	}
	return mapper.Horizontal
}

func (h Header) Battery() bool {
	return h.Mapper1&0x02 != 0
}

func (h Header) Trainer() bool {
	return h.Mapper1&0x04 != 0
}

// ReadConfig parses an iNES image into a cartridge config.
func ReadConfig(r io.Reader) (Config, error) {
	header := Header{}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return Config{}, fmt.Errorf("header: %w", ErrTruncated)
	}
	if header.Name != inesMagic {
		return Config{}, ErrNotINES
	}

	if header.Trainer() {
		if _, err := io.CopyN(io.Discard, r, trainerSize); err != nil {
			return Config{}, fmt.Errorf("trainer: %w", ErrTruncated)
		}
	}

	cfg := Config{
		Mapper:    header.MapperID(),
		Mirroring: header.Mirroring(),
		Battery:   header.Battery(),
		PRG:       make([]uint8, int(header.PrgRomChunks)*mapper.PRGBankSize),
		CHR:       make([]uint8, int(header.ChrRomChunks)*mapper.CHRBankSize),
	}

	if _, err := io.ReadFull(r, cfg.PRG); err != nil {
		return Config{}, fmt.Errorf("PRG ROM: %w", ErrTruncated)
	}
	if _, err := io.ReadFull(r, cfg.CHR); err != nil {
		return Config{}, fmt.Errorf("CHR ROM: %w", ErrTruncated)
	}

	return cfg, nil
}

// LoadINES reads an iNES image and builds the cartridge.
func LoadINES(r io.Reader) (*Cartridge, error) {
	cfg, err := ReadConfig(r)
	if err != nil {
		return nil, fmt.Errorf("cartridge: %w", err)
	}
	c, err := New(cfg)
	if err != nil {
		return nil, fmt.Errorf("cartridge: %w", err)
	}
	return c, nil
}

// LoadFile loads an iNES file. If the cartridge is battery backed and a save
// file exists alongside it, PRG RAM is initialised from the save.
func LoadFile(filename string) (*Cartridge, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("cartridge: %w", err)
	}

	cfg, err := ReadConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cartridge: %s: %w", filename, err)
	}

	if cfg.Battery {
		if ram, err := os.ReadFile(SaveFilename(filename)); err == nil {
			cfg.RAM = ram
		}
	}

	c, err := New(cfg)
	if err != nil {
		return nil, fmt.Errorf("cartridge: %s: %w", filename, err)
	}
	return c, nil
}

// SaveFilename is where the PRG RAM of a battery backed cartridge is kept.
func SaveFilename(romFilename string) string {
	return romFilename + ".sav"
}

// SaveRAM writes battery backed PRG RAM next to the ROM file. It does
// nothing for cartridges without a battery.
func (c *Cartridge) SaveRAM(romFilename string) error {
	if !c.battery {
		return nil
	}
	if err := os.WriteFile(SaveFilename(romFilename), c.ram, 0o644); err != nil {
		return fmt.Errorf("cartridge: %w", err)
	}
	return nil
}
