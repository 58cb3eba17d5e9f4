package cpu

// magic constant for the unstable XAA and LXA opcodes
const unstableMagic = 0xEE

func slo(c *CPU) {
	c.accumulator |= c.modify(c.shiftLeft)
	c.setZN(c.accumulator)
}

func rla(c *CPU) {
	c.accumulator &= c.modify(c.rotateLeft)
	c.setZN(c.accumulator)
}

func sre(c *CPU) {
	c.accumulator ^= c.modify(c.shiftRight)
	c.setZN(c.accumulator)
}

func rra(c *CPU) {
	c.add(c.modify(c.rotateRight))
}

func dcp(c *CPU) {
	v := c.modify(func(v uint8) uint8 { return v - 1 })
	c.compare(c.accumulator, v)
}

func isb(c *CPU) {
	v := c.modify(func(v uint8) uint8 { return v + 1 })
	c.add(^v)
}

func sax(c *CPU) {
	c.write(c.addrAbs, c.accumulator&c.xRegister)
}

func lax(c *CPU) {
	c.accumulator = c.fetch()
	c.xRegister = c.accumulator
	c.setZN(c.accumulator)
}

func anc(c *CPU) {
	and(c)
	c.setFlag(C, c.accumulator&0x80 != 0)
}

func alr(c *CPU) {
	c.accumulator = c.shiftRight(c.accumulator & c.fetch())
}

func arr(c *CPU) {
	v := c.accumulator & c.fetch()
	c.accumulator = v>>1 | c.getFlag(C)<<7
	c.setZN(c.accumulator)
	c.setFlag(C, c.accumulator&0x40 != 0)
	c.setFlag(V, (c.accumulator>>6^c.accumulator>>5)&0x01 != 0)
}

func xaa(c *CPU) {
	c.accumulator = (c.accumulator | unstableMagic) & c.xRegister & c.fetch()
	c.setZN(c.accumulator)
}

func lxa(c *CPU) {
	c.accumulator = (c.accumulator | unstableMagic) & c.fetch()
	c.xRegister = c.accumulator
	c.setZN(c.accumulator)
}

func axs(c *CPU) {
	v := c.fetch()
	ax := c.accumulator & c.xRegister
	c.setFlag(C, ax >= v)
	c.xRegister = ax - v
	c.setZN(c.xRegister)
}

func las(c *CPU) {
	v := c.fetch() & c.stkp
	c.accumulator = v
	c.xRegister = v
	c.stkp = v
	c.setZN(v)
}

// storeHigh implements the SHA family: the stored value is ANDed with the
// high byte of the base address plus one, and when indexing crossed a page
// the stored value also replaces the high byte of the target.
func (c *CPU) storeHigh(v uint8) {
	v &= uint8(c.addrBase>>8) + 1
	addr := c.addrAbs
	if pagesDiffer(c.addrBase, c.addrAbs) {
		addr = uint16(v)<<8 | addr&0x00FF
	}
	c.write(addr, v)
}

func sha(c *CPU) { c.storeHigh(c.accumulator & c.xRegister) }
func shx(c *CPU) { c.storeHigh(c.xRegister) }
func shy(c *CPU) { c.storeHigh(c.yRegister) }

func tas(c *CPU) {
	c.stkp = c.accumulator & c.xRegister
	c.storeHigh(c.stkp)
}

// jam halts the processor with the program counter left on the opcode
func jam(c *CPU) {
	c.pc--
	c.jammed = true
}
