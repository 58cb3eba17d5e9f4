package mapper

// Mapper0003 is CNROM: fixed PRG as NROM with a switchable 8 KiB CHR bank.
type Mapper0003 struct {
	noIRQ
	geometry       Geometry
	chrBanksSelect uint32
}

func (m *Mapper0003) ID() int { return 3 }

func (m *Mapper0003) TranslatePRG(addr uint16) (Region, uint32) {
	if addr >= 0x8000 {
		base := uint16(0x3FFF)
		if m.geometry.PRGBanks > 1 {
			base = 0x7FFF
		}
		return ROM, uint32(addr & base)
	}
	return prgRAM(addr)
}

func (m *Mapper0003) TranslateCHR(addr uint16) uint32 {
	return m.chrBanksSelect*CHRBankSize + uint32(addr&0x1FFF)
}

func (m *Mapper0003) WriteControl(addr uint16, data uint8) {
	m.chrBanksSelect = uint32(data) % uint32(m.geometry.CHRBanks)
}

func (m *Mapper0003) Mirroring() (Mirroring, bool) {
	return Horizontal, false
}

func (m *Mapper0003) Reset() {
	m.chrBanksSelect = 0
}
