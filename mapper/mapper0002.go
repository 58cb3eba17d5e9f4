package mapper

// Mapper0002 is UxROM: a switchable 16 KiB bank at $8000 and the last bank
// fixed at $C000.
type Mapper0002 struct {
	noIRQ
	geometry        Geometry
	prgBankSelectLo uint32
	prgBankSelectHi uint32
}

func (m *Mapper0002) ID() int { return 2 }

func (m *Mapper0002) TranslatePRG(addr uint16) (Region, uint32) {
	switch {
	case addr >= 0xC000:
		return ROM, m.prgBankSelectHi*PRGBankSize + uint32(addr&0x3FFF)
	case addr >= 0x8000:
		return ROM, m.prgBankSelectLo*PRGBankSize + uint32(addr&0x3FFF)
	}
	return prgRAM(addr)
}

func (m *Mapper0002) TranslateCHR(addr uint16) uint32 {
	return uint32(addr & 0x1FFF)
}

func (m *Mapper0002) WriteControl(addr uint16, data uint8) {
	m.prgBankSelectLo = uint32(data) % uint32(m.geometry.PRGBanks)
}

func (m *Mapper0002) Mirroring() (Mirroring, bool) {
	return Horizontal, false
}

func (m *Mapper0002) Reset() {
	m.prgBankSelectLo = 0
	m.prgBankSelectHi = uint32(m.geometry.PRGBanks - 1)
}
