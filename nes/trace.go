package nes

import (
	"fmt"
	"strings"

	"nes-core/cpu"
)

// TraceLine formats the state of the console before the next instruction
// in the column layout of nestest.log:
//
//	C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7
//
// Operands are not annotated with the memory values nestest.log shows.
func (c *Console) TraceLine() string {
	s := c.cpu.Snapshot()
	d := cpu.Disassemble(c.bus, s.PC)

	b := make([]string, len(d.Bytes))
	for i, v := range d.Bytes {
		b[i] = fmt.Sprintf("%02X", v)
	}

	scanline, dot := c.ppu.Position()
	return fmt.Sprintf("%04X  %-8s %-32s A:%02X X:%02X Y:%02X P:%02X SP:%02X PPU:%3d,%3d CYC:%d",
		s.PC, strings.Join(b, " "), d.Assembly(),
		s.A, s.X, s.Y, s.P, s.SP,
		traceScanline(scanline), dot, s.Cycles)
}

func (c *Console) traceInstruction() {
	fmt.Fprintln(c.trace, c.TraceLine())
}
