package mapper

// Mapper0001 is MMC1. Registers are loaded one bit at a time through a five
// bit shift register; the fifth write picks the target register from
// address bits 13 and 14.
type Mapper0001 struct {
	noIRQ
	geometry Geometry

	shift      uint8
	shiftCount uint8

	control    uint8
	chrBank0   uint8
	chrBank1   uint8
	prgBank    uint8
	ramDisable bool
}

func (m *Mapper0001) ID() int { return 1 }

func (m *Mapper0001) TranslatePRG(addr uint16) (Region, uint32) {
	if addr < 0x8000 {
		if m.ramDisable && addr >= 0x6000 {
			return Unmapped, 0
		}
		return prgRAM(addr)
	}

	last := uint32(m.geometry.PRGBanks - 1)
	bank := uint32(m.prgBank & 0x0F)

	switch (m.control >> 2) & 0x03 {
	case 0, 1:
		// 32 KiB mode ignores the low bit of the bank number
		bank = (bank &^ 1) + uint32((addr>>14)&1)
	case 2:
		if addr < 0xC000 {
			bank = 0
		}
	case 3:
		if addr >= 0xC000 {
			bank = last
		}
	}

	bank %= uint32(m.geometry.PRGBanks)
	return ROM, bank*PRGBankSize + uint32(addr&0x3FFF)
}

func (m *Mapper0001) TranslateCHR(addr uint16) uint32 {
	var bank uint32
	if m.control&0x10 == 0 {
		// 8 KiB mode
		bank = uint32(m.chrBank0&0x1E) + uint32((addr>>12)&1)
	} else if addr < 0x1000 {
		bank = uint32(m.chrBank0)
	} else {
		bank = uint32(m.chrBank1)
	}
	return (bank*0x1000 + uint32(addr&0x0FFF)) % m.geometry.chrSize()
}

func (m *Mapper0001) WriteControl(addr uint16, data uint8) {
	if data&0x80 != 0 {
		m.shift = 0
		m.shiftCount = 0
		m.control |= 0x0C
		return
	}

	m.shift |= (data & 0x01) << m.shiftCount
	m.shiftCount++
	if m.shiftCount < 5 {
		return
	}

	value := m.shift
	m.shift = 0
	m.shiftCount = 0

	switch (addr >> 13) & 0x03 {
	case 0:
		m.control = value
	case 1:
		m.chrBank0 = value
	case 2:
		m.chrBank1 = value
	case 3:
		m.prgBank = value & 0x0F
		m.ramDisable = value&0x10 != 0
	}
}

func (m *Mapper0001) Mirroring() (Mirroring, bool) {
	switch m.control & 0x03 {
	case 0:
		return SingleLower, true
	case 1:
		return SingleUpper, true
	case 2:
		return Vertical, true
	}
	return Horizontal, true
}

func (m *Mapper0001) Reset() {
	m.shift = 0
	m.shiftCount = 0
	m.control = 0x0C
	m.chrBank0 = 0
	m.chrBank1 = 0
	m.prgBank = 0
	m.ramDisable = false
}
