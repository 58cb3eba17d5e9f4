// Package apu implements the register interface and frame sequencer of the
// 2A03 audio unit. Channel output is not synthesised; the package tracks
// only the state that is visible to the CPU: length counters, the status
// register and the frame interrupt.
package apu

const (
	Pulse1 = iota
	Pulse2
	Triangle
	Noise
	channels
)

// Register addresses.
const (
	StatusRegister       = 0x4015
	FrameCounterRegister = 0x4017
)

var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// frame sequencer steps, in CPU cycles since the sequencer was reset
const (
	stepQuarter1 = 7457
	stepHalf1    = 14913
	stepQuarter3 = 22371
	step4End     = 29829
	step5End     = 37281
)

type APU struct {
	registers [0x14]uint8

	enabled       [channels]bool
	lengthCounter [channels]uint8
	lengthHalt    [channels]bool

	fiveStep   bool
	irqInhibit bool
	frameIRQ   bool

	clockCounter      uint64
	frameClockCounter uint32
	quarterFrames     uint64
	halfFrames        uint64
}

func NewAPU() *APU {
	a := &APU{}
	a.Reset()
	return a
}

func (a *APU) Reset() {
	*a = APU{}
}

// IRQ is the level of the interrupt output.
func (a *APU) IRQ() bool {
	return a.frameIRQ
}

// ReadStatus services a read of $4015. Bit 5 is not driven and comes from
// the latch. The read acknowledges the frame interrupt.
func (a *APU) ReadStatus(latch uint8) uint8 {
	data := latch & 0x20
	for ch := 0; ch < channels; ch++ {
		if a.lengthCounter[ch] > 0 {
			data |= 1 << ch
		}
	}
	if a.frameIRQ {
		data |= 0x40
	}
	a.frameIRQ = false
	return data
}

// PeekStatus returns $4015 without acknowledging the interrupt.
func (a *APU) PeekStatus() uint8 {
	irq := a.frameIRQ
	data := a.ReadStatus(0)
	a.frameIRQ = irq
	return data
}

// Register returns the last value written to one of $4000-$4013.
func (a *APU) Register(addr uint16) uint8 {
	if addr < 0x4000 || addr >= 0x4014 {
		return 0
	}
	return a.registers[addr-0x4000]
}

// Write services CPU writes to $4000-$4013, $4015 and $4017.
func (a *APU) Write(addr uint16, data uint8) {
	switch {
	case addr >= 0x4000 && addr < 0x4014:
		a.registers[addr-0x4000] = data
		a.writeChannel(addr, data)
	case addr == StatusRegister:
		for ch := 0; ch < channels; ch++ {
			a.enabled[ch] = data&(1<<ch) != 0
			if !a.enabled[ch] {
				a.lengthCounter[ch] = 0
			}
		}
	case addr == FrameCounterRegister:
		a.fiveStep = data&0x80 != 0
		a.irqInhibit = data&0x40 != 0
		if a.irqInhibit {
			a.frameIRQ = false
		}
		a.frameClockCounter = 0
		if a.fiveStep {
			a.clockQuarter()
			a.clockHalf()
		}
	}
}

func (a *APU) writeChannel(addr uint16, data uint8) {
	switch addr {
	case 0x4000:
		a.lengthHalt[Pulse1] = data&0x20 != 0
	case 0x4004:
		a.lengthHalt[Pulse2] = data&0x20 != 0
	case 0x4008:
		a.lengthHalt[Triangle] = data&0x80 != 0
	case 0x400C:
		a.lengthHalt[Noise] = data&0x20 != 0
	case 0x4003:
		a.loadLength(Pulse1, data)
	case 0x4007:
		a.loadLength(Pulse2, data)
	case 0x400B:
		a.loadLength(Triangle, data)
	case 0x400F:
		a.loadLength(Noise, data)
	}
}

func (a *APU) loadLength(ch int, data uint8) {
	if a.enabled[ch] {
		a.lengthCounter[ch] = lengthTable[data>>3]
	}
}

// LengthCounter returns the length counter of a channel.
func (a *APU) LengthCounter(ch int) uint8 {
	return a.lengthCounter[ch]
}

// Tick advances the frame sequencer by a number of CPU cycles.
func (a *APU) Tick(cycles int) {
	for i := 0; i < cycles; i++ {
		a.clock()
	}
}

func (a *APU) clock() {
	a.clockCounter++
	a.frameClockCounter++

	switch a.frameClockCounter {
	case stepQuarter1, stepQuarter3:
		a.clockQuarter()
	case stepHalf1:
		a.clockQuarter()
		a.clockHalf()
	case step4End:
		if !a.fiveStep {
			a.clockQuarter()
			a.clockHalf()
			if !a.irqInhibit {
				a.frameIRQ = true
			}
			a.frameClockCounter = 0
		}
	case step5End:
		a.clockQuarter()
		a.clockHalf()
		a.frameClockCounter = 0
	}
}

// envelopes and the linear counter are clocked here. They produce no output
// so only the count is kept.
func (a *APU) clockQuarter() {
	a.quarterFrames++
}

func (a *APU) clockHalf() {
	a.halfFrames++
	for ch := 0; ch < channels; ch++ {
		if !a.lengthHalt[ch] && a.lengthCounter[ch] > 0 {
			a.lengthCounter[ch]--
		}
	}
}

// Cycles is the number of CPU cycles the APU has been ticked for.
func (a *APU) Cycles() uint64 {
	return a.clockCounter
}
