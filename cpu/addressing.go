package cpu

// AddrMode is the method by which an instruction finds its operand.
type AddrMode uint8

const (
	IMP AddrMode = iota // implied
	ACC                 // accumulator
	IMM                 // immediate
	ZP0                 // zero page
	ZPX                 // zero page indexed by X
	ZPY                 // zero page indexed by Y
	REL                 // relative, branches only
	ABS                 // absolute
	ABX                 // absolute indexed by X
	ABY                 // absolute indexed by Y
	IND                 // indirect, JMP only
	IZX                 // (zero page,X)
	IZY                 // (zero page),Y
)

var modeNames = [...]string{"IMP", "ACC", "IMM", "ZP0", "ZPX", "ZPY", "REL", "ABS", "ABX", "ABY", "IND", "IZX", "IZY"}

func (m AddrMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "???"
}

// Bytes is the length of an instruction using the addressing mode, opcode
// included.
func (m AddrMode) Bytes() int {
	switch m {
	case IMP, ACC:
		return 1
	case ABS, ABX, ABY, IND:
		return 3
	}
	return 2
}

// modes in which an index addition can carry into the high byte
func (m AddrMode) pageSensitive() bool {
	return m == ABX || m == ABY || m == IZY
}

func pagesDiffer(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// resolve consumes the operand bytes of the current instruction and leaves the
// effective address in addrAbs. It reports whether an index addition crossed
// a page.
//
// Indexed modes put the partially formed address on the bus before the high
// byte is fixed up. That dummy read happens on a page cross, and always for
// instructions that write.
func (c *CPU) resolve(in *instruction) bool {
	switch in.mode {
	case IMP, ACC:
		return false

	case IMM:
		c.addrAbs = c.pc
		c.pc++

	case ZP0:
		c.addrAbs = uint16(c.read(c.pc))
		c.pc++

	case ZPX:
		c.addrAbs = uint16(c.read(c.pc)+c.xRegister) & 0x00FF
		c.pc++

	case ZPY:
		c.addrAbs = uint16(c.read(c.pc)+c.yRegister) & 0x00FF
		c.pc++

	case REL:
		offset := c.read(c.pc)
		c.pc++
		c.addrAbs = c.pc + uint16(int16(int8(offset)))

	case ABS:
		c.addrAbs = c.read16(c.pc)
		c.pc += 2

	case ABX:
		base := c.read16(c.pc)
		c.pc += 2
		return c.index(in, base, c.xRegister)

	case ABY:
		base := c.read16(c.pc)
		c.pc += 2
		return c.index(in, base, c.yRegister)

	case IND:
		ptr := c.read16(c.pc)
		c.pc += 2

		// the high byte of the pointer is never incremented
		lo := uint16(c.read(ptr))
		hi := uint16(c.read((ptr & 0xFF00) | uint16(uint8(ptr)+1)))
		c.addrAbs = (hi << 8) | lo

	case IZX:
		t := c.read(c.pc) + c.xRegister
		c.pc++
		lo := uint16(c.read(uint16(t)))
		hi := uint16(c.read(uint16(t + 1)))
		c.addrAbs = (hi << 8) | lo

	case IZY:
		t := c.read(c.pc)
		c.pc++
		lo := uint16(c.read(uint16(t)))
		hi := uint16(c.read(uint16(t + 1)))
		return c.index(in, (hi<<8)|lo, c.yRegister)
	}

	return false
}

func (c *CPU) index(in *instruction, base uint16, reg uint8) bool {
	c.addrBase = base
	c.addrAbs = base + uint16(reg)
	crossed := pagesDiffer(base, c.addrAbs)
	if crossed || in.kind != kindRead {
		c.read((base & 0xFF00) | (c.addrAbs & 0x00FF))
	}
	return crossed
}
