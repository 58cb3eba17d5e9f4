package cpu

// fetch loads the operand of the current instruction into c.fetched.
func (c *CPU) fetch() uint8 {
	if c.mode == IMP || c.mode == ACC {
		c.fetched = c.accumulator
	} else {
		c.fetched = c.read(c.addrAbs)
	}
	return c.fetched
}

// modify runs a read-modify-write cycle on the operand. Memory operands see
// the unmodified value written back before the result.
func (c *CPU) modify(fn func(uint8) uint8) uint8 {
	if c.mode == ACC {
		c.accumulator = fn(c.accumulator)
		return c.accumulator
	}
	v := c.read(c.addrAbs)
	c.write(c.addrAbs, v)
	r := fn(v)
	c.write(c.addrAbs, r)
	return r
}

func (c *CPU) add(value uint8) {
	temp := uint16(c.accumulator) + uint16(value) + uint16(c.getFlag(C))
	c.setFlag(C, temp > 0xFF)
	c.setFlag(V, (^(c.accumulator^value))&(c.accumulator^uint8(temp))&0x80 != 0)
	c.accumulator = uint8(temp)
	c.setZN(c.accumulator)
}

func (c *CPU) compare(reg, value uint8) {
	c.setFlag(C, reg >= value)
	c.setZN(reg - value)
}

func (c *CPU) shiftLeft(v uint8) uint8 {
	c.setFlag(C, v&0x80 != 0)
	v <<= 1
	c.setZN(v)
	return v
}

func (c *CPU) shiftRight(v uint8) uint8 {
	c.setFlag(C, v&0x01 != 0)
	v >>= 1
	c.setZN(v)
	return v
}

func (c *CPU) rotateLeft(v uint8) uint8 {
	carry := c.getFlag(C)
	c.setFlag(C, v&0x80 != 0)
	v = v<<1 | carry
	c.setZN(v)
	return v
}

func (c *CPU) rotateRight(v uint8) uint8 {
	carry := c.getFlag(C)
	c.setFlag(C, v&0x01 != 0)
	v = v>>1 | carry<<7
	c.setZN(v)
	return v
}

// branch costs one extra cycle when taken and another when the destination
// is on a different page.
func (c *CPU) branch(taken bool) {
	if !taken {
		return
	}
	c.stepped++
	if pagesDiffer(c.pc, c.addrAbs) {
		c.stepped++
	}
	c.pc = c.addrAbs
}

// delayPoll records the I flag as it stood before the current instruction
// changed it. The next interrupt poll uses that value.
func (c *CPU) delayPoll(before uint8) {
	c.irqPollDelayed = true
	c.irqPollFlag = before
}

func adc(c *CPU) {
	c.add(c.fetch())
}

func sbc(c *CPU) {
	c.add(^c.fetch())
}

func and(c *CPU) {
	c.accumulator &= c.fetch()
	c.setZN(c.accumulator)
}

func ora(c *CPU) {
	c.accumulator |= c.fetch()
	c.setZN(c.accumulator)
}

func eor(c *CPU) {
	c.accumulator ^= c.fetch()
	c.setZN(c.accumulator)
}

func bit(c *CPU) {
	v := c.fetch()
	c.setFlag(Z, c.accumulator&v == 0)
	c.setFlag(N, v&0x80 != 0)
	c.setFlag(V, v&0x40 != 0)
}

func cmp(c *CPU) { c.compare(c.accumulator, c.fetch()) }
func cpx(c *CPU) { c.compare(c.xRegister, c.fetch()) }
func cpy(c *CPU) { c.compare(c.yRegister, c.fetch()) }

func asl(c *CPU) { c.modify(c.shiftLeft) }
func lsr(c *CPU) { c.modify(c.shiftRight) }
func rol(c *CPU) { c.modify(c.rotateLeft) }
func ror(c *CPU) { c.modify(c.rotateRight) }

func inc(c *CPU) {
	c.modify(func(v uint8) uint8 {
		v++
		c.setZN(v)
		return v
	})
}

func dec(c *CPU) {
	c.modify(func(v uint8) uint8 {
		v--
		c.setZN(v)
		return v
	})
}

func inx(c *CPU) {
	c.xRegister++
	c.setZN(c.xRegister)
}

func iny(c *CPU) {
	c.yRegister++
	c.setZN(c.yRegister)
}

func dex(c *CPU) {
	c.xRegister--
	c.setZN(c.xRegister)
}

func dey(c *CPU) {
	c.yRegister--
	c.setZN(c.yRegister)
}

func lda(c *CPU) {
	c.accumulator = c.fetch()
	c.setZN(c.accumulator)
}

func ldx(c *CPU) {
	c.xRegister = c.fetch()
	c.setZN(c.xRegister)
}

func ldy(c *CPU) {
	c.yRegister = c.fetch()
	c.setZN(c.yRegister)
}

func sta(c *CPU) { c.write(c.addrAbs, c.accumulator) }
func stx(c *CPU) { c.write(c.addrAbs, c.xRegister) }
func sty(c *CPU) { c.write(c.addrAbs, c.yRegister) }

func tax(c *CPU) {
	c.xRegister = c.accumulator
	c.setZN(c.xRegister)
}

func tay(c *CPU) {
	c.yRegister = c.accumulator
	c.setZN(c.yRegister)
}

func txa(c *CPU) {
	c.accumulator = c.xRegister
	c.setZN(c.accumulator)
}

func tya(c *CPU) {
	c.accumulator = c.yRegister
	c.setZN(c.accumulator)
}

func tsx(c *CPU) {
	c.xRegister = c.stkp
	c.setZN(c.xRegister)
}

func txs(c *CPU) {
	c.stkp = c.xRegister
}

func bcc(c *CPU) { c.branch(c.getFlag(C) == 0) }
func bcs(c *CPU) { c.branch(c.getFlag(C) == 1) }
func bne(c *CPU) { c.branch(c.getFlag(Z) == 0) }
func beq(c *CPU) { c.branch(c.getFlag(Z) == 1) }
func bpl(c *CPU) { c.branch(c.getFlag(N) == 0) }
func bmi(c *CPU) { c.branch(c.getFlag(N) == 1) }
func bvc(c *CPU) { c.branch(c.getFlag(V) == 0) }
func bvs(c *CPU) { c.branch(c.getFlag(V) == 1) }

func brk(c *CPU) {
	// the byte after BRK is padding
	c.pc++
	c.interrupt(IRQVector, true)
}

func jmp(c *CPU) {
	c.pc = c.addrAbs
}

func jsr(c *CPU) {
	c.push16(c.pc - 1)
	c.pc = c.addrAbs
}

func rts(c *CPU) {
	c.pc = c.pull16() + 1
}

func rti(c *CPU) {
	c.status = c.pull()
	c.setFlag(B, false)
	c.setFlag(U, true)
	c.pc = c.pull16()
}

func php(c *CPU) {
	c.push(c.status | uint8(B) | uint8(U))
}

func plp(c *CPU) {
	before := c.getFlag(I)
	c.status = c.pull()
	c.setFlag(B, false)
	c.setFlag(U, true)
	c.delayPoll(before)
}

func pha(c *CPU) {
	c.push(c.accumulator)
}

func pla(c *CPU) {
	c.accumulator = c.pull()
	c.setZN(c.accumulator)
}

func clc(c *CPU) { c.setFlag(C, false) }
func sec(c *CPU) { c.setFlag(C, true) }
func cld(c *CPU) { c.setFlag(D, false) }
func sed(c *CPU) { c.setFlag(D, true) }
func clv(c *CPU) { c.setFlag(V, false) }

func cli(c *CPU) {
	c.delayPoll(c.getFlag(I))
	c.setFlag(I, false)
}

func sei(c *CPU) {
	c.delayPoll(c.getFlag(I))
	c.setFlag(I, true)
}

// nop still performs the operand read of its addressing mode
func nop(c *CPU) {
	if c.mode != IMP {
		c.fetch()
	}
}
