package cpu

import (
	"fmt"
	"strings"
)

// Snapshot is a copy of the programmer visible state of the CPU.
type Snapshot struct {
	A      uint8
	X      uint8
	Y      uint8
	SP     uint8
	P      uint8
	PC     uint16
	Cycles uint64
	Jammed bool

	// last value seen on the data bus
	Latch uint8
}

func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		A:      c.accumulator,
		X:      c.xRegister,
		Y:      c.yRegister,
		SP:     c.stkp,
		P:      c.status,
		PC:     c.pc,
		Cycles: c.cycles,
		Jammed: c.jammed,
		Latch:  c.latch,
	}
}

// Flag reports whether a status flag is set.
func (s Snapshot) Flag(f CPUFlag) bool {
	return s.P&uint8(f) != 0
}

// Flags renders the status register with set flags in upper case.
func (s Snapshot) Flags() string {
	var b strings.Builder
	for i, f := range []CPUFlag{N, V, U, B, D, I, Z, C} {
		ch := "NVUBDIZC"[i]
		if !s.Flag(f) {
			ch += 'a' - 'A'
		}
		b.WriteByte(ch)
	}
	return b.String()
}

func (s Snapshot) String() string {
	return fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d", s.PC, s.A, s.X, s.Y, s.P, s.SP, s.Cycles)
}
