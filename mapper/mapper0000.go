package mapper

// Mapper0000 is NROM: 16 or 32 KiB of PRG ROM with no bank switching. A
// single 16 KiB bank is mirrored into $C000-$FFFF.
type Mapper0000 struct {
	noIRQ
	geometry Geometry
}

func (m *Mapper0000) ID() int { return 0 }

func (m *Mapper0000) TranslatePRG(addr uint16) (Region, uint32) {
	if addr >= 0x8000 {
		base := uint16(0x3FFF)
		if m.geometry.PRGBanks > 1 {
			base = 0x7FFF
		}
		return ROM, uint32(addr & base)
	}
	return prgRAM(addr)
}

func (m *Mapper0000) TranslateCHR(addr uint16) uint32 {
	return uint32(addr & 0x1FFF)
}

func (m *Mapper0000) WriteControl(addr uint16, data uint8) {}

func (m *Mapper0000) Mirroring() (Mirroring, bool) {
	return Horizontal, false
}

func (m *Mapper0000) Reset() {}
