package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type access struct {
	addr uint16
	data uint8
}

type testBus struct {
	mem    [0x10000]uint8
	writes []access
}

func (b *testBus) Read(addr uint16, latch uint8) uint8 {
	return b.mem[addr]
}

func (b *testBus) Write(addr uint16, data uint8) {
	b.mem[addr] = data
	b.writes = append(b.writes, access{addr, data})
}

func (b *testBus) Peek(addr uint16) uint8 {
	return b.mem[addr]
}

// newTestCPU loads program at $8000 and runs the reset sequence.
func newTestCPU(t *testing.T, program ...uint8) (*CPU, *testBus) {
	t.Helper()
	bus := &testBus{}
	copy(bus.mem[0x8000:], program)
	bus.mem[0xFFFC], bus.mem[0xFFFD] = 0x00, 0x80
	bus.mem[0xFFFA], bus.mem[0xFFFB] = 0x00, 0x90
	bus.mem[0xFFFE], bus.mem[0xFFFF] = 0x00, 0xA0

	c := NewCPU()
	c.Reset()
	require.Equal(t, InterruptCycles, c.Step(bus))
	require.Equal(t, uint16(0x8000), c.PC())
	return c, bus
}

func TestResetState(t *testing.T) {
	c, _ := newTestCPU(t)
	s := c.Snapshot()
	assert.Equal(t, uint8(0xFD), s.SP)
	assert.Equal(t, uint8(0x24), s.P)
	assert.Equal(t, uint64(7), s.Cycles)
	assert.Equal(t, "PC:8000 A:00 X:00 Y:00 P:24 SP:FD CYC:7", s.String())
	assert.Equal(t, "nvUbdIzc", s.Flags())
}

func TestEveryOpcodeUsesTableCycles(t *testing.T) {
	for op := 0; op < 256; op++ {
		def := Lookup(uint8(op))
		if def.Mode == REL {
			continue
		}
		c, bus := newTestCPU(t, uint8(op), 0x00, 0x02)
		cycles := c.Step(bus)
		assert.Equal(t, def.Cycles, cycles, "opcode %02X %s %s", op, def.Mnemonic, def.Mode)
	}
}

func TestPageCrossPenalty(t *testing.T) {
	// LDX #$01; LDA $02FF,X
	c, bus := newTestCPU(t, 0xA2, 0x01, 0xBD, 0xFF, 0x02)
	c.Step(bus)
	assert.Equal(t, 5, c.Step(bus))

	// LDX #$01; STA $02FF,X has no penalty
	c, bus = newTestCPU(t, 0xA2, 0x01, 0x9D, 0xFF, 0x02)
	c.Step(bus)
	assert.Equal(t, 5, c.Step(bus))

	// LDY #$01; LDA ($10),Y with ($10) = $02FF
	c, bus = newTestCPU(t, 0xA0, 0x01, 0xB1, 0x10)
	bus.mem[0x10], bus.mem[0x11] = 0xFF, 0x02
	bus.mem[0x0300] = 0x42
	c.Step(bus)
	assert.Equal(t, 6, c.Step(bus))
	assert.Equal(t, uint8(0x42), c.Snapshot().A)
}

func TestBranchCycles(t *testing.T) {
	// BNE +2, not taken after LDA #$00
	c, bus := newTestCPU(t, 0xA9, 0x00, 0xD0, 0x02)
	c.Step(bus)
	assert.Equal(t, 2, c.Step(bus))
	assert.Equal(t, uint16(0x8004), c.PC())

	// BEQ +2, taken on the same page
	c, bus = newTestCPU(t, 0xA9, 0x00, 0xF0, 0x02)
	c.Step(bus)
	assert.Equal(t, 3, c.Step(bus))
	assert.Equal(t, uint16(0x8006), c.PC())

	// BEQ -8, taken across a page
	c, bus = newTestCPU(t, 0xA9, 0x00, 0xF0, 0xF8)
	c.Step(bus)
	assert.Equal(t, 4, c.Step(bus))
	assert.Equal(t, uint16(0x7FFC), c.PC())
}

func TestReadModifyWriteWritesTwice(t *testing.T) {
	// INC $0200
	c, bus := newTestCPU(t, 0xEE, 0x00, 0x02)
	bus.mem[0x0200] = 0x41
	assert.Equal(t, 6, c.Step(bus))
	assert.Equal(t, []access{{0x0200, 0x41}, {0x0200, 0x42}}, bus.writes)
}

func TestJMPIndirectPageWrap(t *testing.T) {
	c, bus := newTestCPU(t, 0x6C, 0xFF, 0x02)
	bus.mem[0x02FF] = 0x34
	bus.mem[0x0200] = 0x12
	bus.mem[0x0300] = 0x99
	c.Step(bus)
	assert.Equal(t, uint16(0x1234), c.PC())
}

func TestJSRAndRTS(t *testing.T) {
	c, bus := newTestCPU(t, 0x20, 0x00, 0x90)
	bus.mem[0x9000] = 0x60
	assert.Equal(t, 6, c.Step(bus))
	assert.Equal(t, uint16(0x9000), c.PC())
	assert.Equal(t, uint8(0x80), bus.mem[0x01FD])
	assert.Equal(t, uint8(0x02), bus.mem[0x01FC])
	assert.Equal(t, 6, c.Step(bus))
	assert.Equal(t, uint16(0x8003), c.PC())
}

func TestNMI(t *testing.T) {
	c, bus := newTestCPU(t, 0xEA)
	c.TriggerNMI()
	assert.Equal(t, InterruptCycles, c.Step(bus))
	assert.Equal(t, uint16(0x9000), c.PC())

	pushed := bus.mem[0x0100+uint16(c.Snapshot().SP)+1]
	assert.Zero(t, pushed&uint8(B))
	assert.NotZero(t, pushed&uint8(U))
	assert.True(t, c.Snapshot().Flag(I))
}

func TestBRKPushesBreakFlag(t *testing.T) {
	c, bus := newTestCPU(t, 0x00, 0xFF)
	assert.Equal(t, 7, c.Step(bus))
	assert.Equal(t, uint16(0xA000), c.PC())

	sp := uint16(c.Snapshot().SP)
	assert.NotZero(t, bus.mem[0x0101+sp]&uint8(B))
	assert.Equal(t, uint8(0x02), bus.mem[0x0102+sp])
	assert.Equal(t, uint8(0x80), bus.mem[0x0103+sp])
}

func TestIRQMaskedUntilCLIHasCompleted(t *testing.T) {
	// CLI; NOP; NOP
	c, bus := newTestCPU(t, 0x58, 0xEA, 0xEA)
	c.SetIRQ(true)

	assert.Equal(t, 2, c.Step(bus))
	assert.Equal(t, uint16(0x8001), c.PC())

	// the poll after CLI still sees I set
	assert.Equal(t, 2, c.Step(bus))
	assert.Equal(t, uint16(0x8002), c.PC())

	assert.Equal(t, InterruptCycles, c.Step(bus))
	assert.Equal(t, uint16(0xA000), c.PC())
}

func TestRTIRestoresStatus(t *testing.T) {
	c, bus := newTestCPU(t, 0x58, 0xEA)
	bus.mem[0xA000] = 0x40
	c.Step(bus)
	c.Step(bus)
	c.SetIRQ(true)
	c.Step(bus)
	require.Equal(t, uint16(0xA000), c.PC())
	c.SetIRQ(false)

	assert.Equal(t, 6, c.Step(bus))
	assert.Equal(t, uint16(0x8002), c.PC())
	assert.False(t, c.Snapshot().Flag(I))
}

func TestJam(t *testing.T) {
	c, bus := newTestCPU(t, 0x02)
	assert.Equal(t, 2, c.Step(bus))
	assert.True(t, c.Jammed())
	assert.Equal(t, 1, c.Step(bus))

	c.TriggerNMI()
	assert.Equal(t, 1, c.Step(bus))
	assert.Equal(t, uint16(0x8000), c.PC())

	c.Reset()
	assert.Equal(t, InterruptCycles, c.Step(bus))
	assert.False(t, c.Jammed())
}

func TestUnofficialOpcodes(t *testing.T) {
	t.Run("LAX", func(t *testing.T) {
		c, bus := newTestCPU(t, 0xA7, 0x10)
		bus.mem[0x10] = 0x85
		c.Step(bus)
		s := c.Snapshot()
		assert.Equal(t, uint8(0x85), s.A)
		assert.Equal(t, uint8(0x85), s.X)
		assert.True(t, s.Flag(N))
	})

	t.Run("SAX", func(t *testing.T) {
		// LDA #$F0; LDX #$3C; SAX $10
		c, bus := newTestCPU(t, 0xA9, 0xF0, 0xA2, 0x3C, 0x87, 0x10)
		c.Step(bus)
		c.Step(bus)
		c.Step(bus)
		assert.Equal(t, uint8(0x30), bus.mem[0x10])
	})

	t.Run("DCP", func(t *testing.T) {
		// LDA #$40; DCP $10
		c, bus := newTestCPU(t, 0xA9, 0x40, 0xC7, 0x10)
		bus.mem[0x10] = 0x41
		c.Step(bus)
		c.Step(bus)
		assert.Equal(t, uint8(0x40), bus.mem[0x10])
		s := c.Snapshot()
		assert.True(t, s.Flag(Z))
		assert.True(t, s.Flag(C))
	})

	t.Run("ISB", func(t *testing.T) {
		// SEC; LDA #$10; ISB $10
		c, bus := newTestCPU(t, 0x38, 0xA9, 0x10, 0xE7, 0x10)
		bus.mem[0x10] = 0x04
		c.Step(bus)
		c.Step(bus)
		c.Step(bus)
		assert.Equal(t, uint8(0x05), bus.mem[0x10])
		assert.Equal(t, uint8(0x0B), c.Snapshot().A)
	})

	t.Run("AXS", func(t *testing.T) {
		// LDA #$FF; LDX #$0F; AXS #$05
		c, bus := newTestCPU(t, 0xA9, 0xFF, 0xA2, 0x0F, 0xCB, 0x05)
		c.Step(bus)
		c.Step(bus)
		c.Step(bus)
		s := c.Snapshot()
		assert.Equal(t, uint8(0x0A), s.X)
		assert.True(t, s.Flag(C))
	})
}

func TestADCOverflow(t *testing.T) {
	// CLC; LDA #$50; ADC #$50
	c, bus := newTestCPU(t, 0x18, 0xA9, 0x50, 0x69, 0x50)
	c.Step(bus)
	c.Step(bus)
	c.Step(bus)
	s := c.Snapshot()
	assert.Equal(t, uint8(0xA0), s.A)
	assert.True(t, s.Flag(V))
	assert.True(t, s.Flag(N))
	assert.False(t, s.Flag(C))
}

func TestStallCountsCycles(t *testing.T) {
	c, _ := newTestCPU(t)
	c.Stall(513)
	assert.Equal(t, uint64(520), c.Cycles())
}

func TestSetLatch(t *testing.T) {
	c, bus := newTestCPU(t, 0xA9, 0x33) // LDA #$33
	c.SetLatch(0x5A)
	assert.Equal(t, uint8(0x5A), c.Snapshot().Latch)

	// the next bus read replaces it
	c.Step(bus)
	assert.Equal(t, uint8(0x33), c.Snapshot().Latch)
}

func TestDisassemble(t *testing.T) {
	bus := &testBus{}
	copy(bus.mem[0xC000:], []uint8{0x4C, 0xF5, 0xC5, 0xA9, 0x10, 0xD0, 0xFE, 0xA7, 0x33, 0x0A})

	d := Disassemble(bus, 0xC000)
	assert.Equal(t, " JMP $C5F5", d.Assembly())
	assert.Equal(t, "$C000:  JMP $C5F5 {ABS}", d.Text())
	assert.Equal(t, []uint8{0x4C, 0xF5, 0xC5}, d.Bytes)

	lines := DisassembleRange(bus, 0xC000, 0xC009)
	require.Len(t, lines, 5)
	assert.Equal(t, " LDA #$10", lines[0xC003].Assembly())
	assert.Equal(t, " BNE $C005", lines[0xC005].Assembly())
	assert.Equal(t, "*LAX $33", lines[0xC007].Assembly())
	assert.Equal(t, " ASL A", lines[0xC009].Assembly())
	assert.Equal(t, uint16(0xC007), lines[0xC009].PreviousAddr)
	assert.Equal(t, uint16(0xC005), lines[0xC003].NextAddr)
}
