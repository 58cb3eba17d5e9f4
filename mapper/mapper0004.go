package mapper

// Mapper0004 is MMC3: 8 KiB PRG banks, 1 and 2 KiB CHR banks and a
// scanline counter that raises an IRQ.
type Mapper0004 struct {
	geometry Geometry

	targetRegister uint8
	prgBankMode    bool
	chrInversion   bool
	mirrorMode     Mirroring
	register       [8]uint8

	ramEnable  bool
	ramProtect bool

	irqActive  bool
	irqEnable  bool
	irqReload  bool
	irqCounter uint8
	irqLatch   uint8
}

func (m *Mapper0004) ID() int { return 4 }

func (m *Mapper0004) prgBank8K(n uint32) uint32 {
	return n % uint32(m.geometry.PRGBanks*2)
}

func (m *Mapper0004) TranslatePRG(addr uint16) (Region, uint32) {
	if addr < 0x8000 {
		if addr < 0x6000 || !m.ramEnable {
			return Unmapped, 0
		}
		if m.ramProtect {
			return RAMProtected, uint32(addr & 0x1FFF)
		}
		return RAM, uint32(addr & 0x1FFF)
	}

	count := uint32(m.geometry.PRGBanks * 2)
	secondLast := count - 2
	last := count - 1

	var bank uint32
	switch (addr - 0x8000) >> 13 {
	case 0:
		bank = uint32(m.register[6])
		if m.prgBankMode {
			bank = secondLast
		}
	case 1:
		bank = uint32(m.register[7])
	case 2:
		bank = secondLast
		if m.prgBankMode {
			bank = uint32(m.register[6])
		}
	case 3:
		bank = last
	}

	return ROM, m.prgBank8K(bank)*0x2000 + uint32(addr&0x1FFF)
}

func (m *Mapper0004) TranslateCHR(addr uint16) uint32 {
	a := addr & 0x1FFF
	if m.chrInversion {
		a ^= 0x1000
	}

	var bank uint32
	switch {
	case a < 0x0800:
		bank = uint32(m.register[0]&0xFE) + uint32((a>>10)&1)
	case a < 0x1000:
		bank = uint32(m.register[1]&0xFE) + uint32((a>>10)&1)
	default:
		bank = uint32(m.register[2+((a-0x1000)>>10)])
	}

	return (bank*0x0400 + uint32(addr&0x03FF)) % m.geometry.chrSize()
}

func (m *Mapper0004) WriteControl(addr uint16, data uint8) {
	even := addr&0x0001 == 0

	switch {
	case addr < 0xA000:
		if even {
			m.targetRegister = data & 0x07
			m.prgBankMode = data&0x40 != 0
			m.chrInversion = data&0x80 != 0
		} else {
			m.register[m.targetRegister] = data
		}

	case addr < 0xC000:
		if even {
			if data&0x01 != 0 {
				m.mirrorMode = Horizontal
			} else {
				m.mirrorMode = Vertical
			}
		} else {
			m.ramEnable = data&0x80 != 0
			m.ramProtect = data&0x40 != 0
		}

	case addr < 0xE000:
		if even {
			m.irqLatch = data
		} else {
			m.irqCounter = 0
			m.irqReload = true
		}

	default:
		if even {
			m.irqEnable = false
			m.irqActive = false
		} else {
			m.irqEnable = true
		}
	}
}

// ScanlineTick clocks the IRQ counter. A zero counter or a pending reload
// loads the latch, otherwise the counter decrements. Reaching zero with IRQs
// enabled raises the IRQ.
func (m *Mapper0004) ScanlineTick() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}

	if m.irqCounter == 0 && m.irqEnable {
		m.irqActive = true
	}
}

func (m *Mapper0004) PollIRQ() bool {
	return m.irqActive
}

func (m *Mapper0004) AcknowledgeIRQ() {
	m.irqActive = false
}

func (m *Mapper0004) Mirroring() (Mirroring, bool) {
	return m.mirrorMode, true
}

func (m *Mapper0004) Reset() {
	m.targetRegister = 0
	m.prgBankMode = false
	m.chrInversion = false
	m.mirrorMode = Horizontal
	m.register = [8]uint8{0, 2, 4, 5, 6, 7, 0, 1}
	m.ramEnable = true
	m.ramProtect = false
	m.irqActive = false
	m.irqEnable = false
	m.irqReload = false
	m.irqCounter = 0
	m.irqLatch = 0
}
