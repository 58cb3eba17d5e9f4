// Package cpu implements the 2A03 processor: a 6502 without decimal mode.
//
// The CPU never holds a reference to the rest of the console. The bus is
// handed in on every call to Step() and dropped again before Step() returns.
// Interrupt request lines are plain flags that the owner of the CPU raises and
// lowers between instructions.
package cpu

// Bus is the view of the address space available to the CPU. The latch
// argument is the value last seen on the data bus; addresses with no device
// behind them return it unchanged.
type Bus interface {
	Read(address uint16, latch uint8) uint8
	Write(address uint16, data uint8)
}

// Interrupt vectors.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// InterruptCycles is the cost of entering any interrupt handler.
const InterruptCycles = 7

const stackBase = uint16(0x0100)

type CPUFlag uint8

const (
	C = CPUFlag(1 << 0)
	Z = CPUFlag(1 << 1)
	I = CPUFlag(1 << 2)
	D = CPUFlag(1 << 3)
	B = CPUFlag(1 << 4)
	U = CPUFlag(1 << 5)
	V = CPUFlag(1 << 6)
	N = CPUFlag(1 << 7)
)

type CPU struct {
	accumulator uint8
	xRegister   uint8
	yRegister   uint8
	stkp        uint8
	pc          uint16
	status      uint8

	// last value driven onto the data bus
	latch uint8

	// total cycles since power on, including DMA stalls
	cycles uint64

	// state of the instruction being executed
	opcode   uint8
	addrAbs  uint16
	addrBase uint16
	fetched  uint8
	mode     AddrMode
	stepped  int
	bus      Bus

	// interrupt lines
	resetLine bool
	nmiLine   bool
	irqLine   bool

	// CLI, SEI and PLP change the I flag after the interrupt poll has been
	// made, so the poll that follows them sees the old value
	irqPollDelayed bool
	irqPollFlag    uint8

	jammed bool
}

func NewCPU() *CPU {
	c := &CPU{}
	c.powerOn()
	return c
}

func (c *CPU) powerOn() {
	c.accumulator = 0
	c.xRegister = 0
	c.yRegister = 0
	c.stkp = 0x00
	c.pc = 0x0000
	c.status = uint8(U) | uint8(I)
	c.latch = 0
	c.cycles = 0
	c.irqPollDelayed = false
	c.jammed = false
	c.nmiLine = false
	c.irqLine = false
}

// Reset returns the registers to their power-on values and raises the reset
// line. The reset sequence itself runs on the next call to Step().
func (c *CPU) Reset() {
	c.powerOn()
	c.resetLine = true
}

// TriggerNMI latches a non-maskable interrupt. It is serviced at the start of
// the next Step().
func (c *CPU) TriggerNMI() {
	c.nmiLine = true
}

// SetIRQ sets the level of the maskable interrupt line.
func (c *CPU) SetIRQ(level bool) {
	c.irqLine = level
}

// Stall accounts for cycles in which the CPU is held off the bus.
func (c *CPU) Stall(cycles int) {
	c.cycles += uint64(cycles)
}

// SetLatch replaces the value left on the data bus. A DMA that takes the bus
// from the CPU leaves its last byte there.
func (c *CPU) SetLatch(v uint8) {
	c.latch = v
}

// SetPC forces the program counter. Used by test harnesses that start
// execution somewhere other than the reset vector.
func (c *CPU) SetPC(pc uint16) {
	c.pc = pc
}

// PC returns the program counter.
func (c *CPU) PC() uint16 {
	return c.pc
}

// Cycles returns the number of cycles executed since power on.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Jammed is true once one of the JAM opcodes has been executed. Only a reset
// will free the CPU.
func (c *CPU) Jammed() bool {
	return c.jammed
}

func (c *CPU) getFlag(flag CPUFlag) uint8 {
	if c.status&uint8(flag) != 0 {
		return 1
	}
	return 0
}

func (c *CPU) setFlag(flag CPUFlag, v bool) {
	if v {
		c.status |= uint8(flag)
	} else {
		c.status &= ^uint8(flag)
	}
}

func (c *CPU) setZN(v uint8) {
	c.setFlag(Z, v == 0x00)
	c.setFlag(N, v&0x80 != 0)
}

func (c *CPU) read(addr uint16) uint8 {
	c.latch = c.bus.Read(addr, c.latch)
	return c.latch
}

func (c *CPU) write(addr uint16, data uint8) {
	c.latch = data
	c.bus.Write(addr, data)
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	return (hi << 8) | lo
}

func (c *CPU) push(data uint8) {
	c.write(stackBase+uint16(c.stkp), data)
	c.stkp--
}

func (c *CPU) pull() uint8 {
	c.stkp++
	return c.read(stackBase + uint16(c.stkp))
}

func (c *CPU) push16(data uint16) {
	c.push(uint8(data >> 8))
	c.push(uint8(data & 0x00FF))
}

func (c *CPU) pull16() uint16 {
	lo := uint16(c.pull())
	hi := uint16(c.pull())
	return (hi << 8) | lo
}

// Step services a pending interrupt or executes one instruction, returning
// the number of cycles consumed.
func (c *CPU) Step(bus Bus) int {
	c.bus = bus
	defer func() {
		c.bus = nil
	}()

	iFlag := c.getFlag(I)
	if c.irqPollDelayed {
		iFlag = c.irqPollFlag
		c.irqPollDelayed = false
	}

	switch {
	case c.resetLine:
		c.resetLine = false
		c.jammed = false
		c.reset()
		return c.spend(InterruptCycles)
	case c.jammed:
		return c.spend(1)
	case c.nmiLine:
		c.nmiLine = false
		c.interrupt(NMIVector, false)
		return c.spend(InterruptCycles)
	case c.irqLine && iFlag == 0:
		c.interrupt(IRQVector, false)
		return c.spend(InterruptCycles)
	}

	c.opcode = c.read(c.pc)
	c.pc++
	c.setFlag(U, true)

	in := &lookup[c.opcode]
	c.mode = in.mode
	c.stepped = int(in.cycles)

	crossed := c.resolve(in)
	if crossed && in.kind == kindRead && in.mode.pageSensitive() {
		c.stepped++
	}

	in.operate(c)
	c.setFlag(U, true)

	return c.spend(c.stepped)
}

func (c *CPU) spend(cycles int) int {
	c.cycles += uint64(cycles)
	return cycles
}

// reset runs the reset sequence. The stack pointer moves as if three bytes
// were pushed but nothing is written.
func (c *CPU) reset() {
	c.stkp -= 3
	c.setFlag(I, true)
	c.pc = c.read16(ResetVector)
}

// interrupt pushes the return address and status and jumps through vector.
// The B flag is only set in the pushed copy when the interrupt came from BRK.
func (c *CPU) interrupt(vector uint16, brk bool) {
	c.push16(c.pc)
	p := c.status | uint8(U)
	if brk {
		p |= uint8(B)
	} else {
		p &= ^uint8(B)
	}
	c.push(p)
	c.setFlag(I, true)
	c.pc = c.read16(vector)
}
