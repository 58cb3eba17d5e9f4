package cpu

import "fmt"

// Peeker reads memory without side effects.
type Peeker interface {
	Peek(address uint16) uint8
}

// DisassembledInstruction is one decoded line. Next and Previous link lines
// in address order, since instructions are variable in length.
type DisassembledInstruction struct {
	Address      uint16
	Opcode       uint8
	Bytes        []uint8
	Mnemonic     string
	Operand      string
	Unofficial   bool
	NextAddr     uint16
	PreviousAddr uint16
}

// Text is the instruction as shown in the debugger code listing.
func (d DisassembledInstruction) Text() string {
	return fmt.Sprintf("$%04X: %s {%s}", d.Address, d.Assembly(), lookup[d.Opcode].mode)
}

// Assembly is the mnemonic and operand. Unofficial opcodes are marked with
// a leading '*'.
func (d DisassembledInstruction) Assembly() string {
	prefix := " "
	if d.Unofficial {
		prefix = "*"
	}
	if d.Operand == "" {
		return prefix + d.Mnemonic
	}
	return prefix + d.Mnemonic + " " + d.Operand
}

// Disassemble decodes the instruction at addr.
func Disassemble(mem Peeker, addr uint16) DisassembledInstruction {
	opcode := mem.Peek(addr)
	in := &lookup[opcode]
	d := DisassembledInstruction{
		Address:    addr,
		Opcode:     opcode,
		Mnemonic:   in.name,
		Unofficial: in.unofficial,
	}

	n := in.mode.Bytes()
	d.Bytes = make([]uint8, n)
	for i := 0; i < n; i++ {
		d.Bytes[i] = mem.Peek(addr + uint16(i))
	}
	d.NextAddr = addr + uint16(n)

	var lo, hi uint8
	if n > 1 {
		lo = d.Bytes[1]
	}
	if n > 2 {
		hi = d.Bytes[2]
	}
	word := uint16(hi)<<8 | uint16(lo)

	switch in.mode {
	case ACC:
		d.Operand = "A"
	case IMM:
		d.Operand = fmt.Sprintf("#$%02X", lo)
	case ZP0:
		d.Operand = fmt.Sprintf("$%02X", lo)
	case ZPX:
		d.Operand = fmt.Sprintf("$%02X,X", lo)
	case ZPY:
		d.Operand = fmt.Sprintf("$%02X,Y", lo)
	case IZX:
		d.Operand = fmt.Sprintf("($%02X,X)", lo)
	case IZY:
		d.Operand = fmt.Sprintf("($%02X),Y", lo)
	case ABS:
		d.Operand = fmt.Sprintf("$%04X", word)
	case ABX:
		d.Operand = fmt.Sprintf("$%04X,X", word)
	case ABY:
		d.Operand = fmt.Sprintf("$%04X,Y", word)
	case IND:
		d.Operand = fmt.Sprintf("($%04X)", word)
	case REL:
		d.Operand = fmt.Sprintf("$%04X", d.NextAddr+uint16(int16(int8(lo))))
	}
	return d
}

// DisassembleRange decodes every instruction from start to stop inclusive,
// keyed by address.
func DisassembleRange(mem Peeker, start, stop uint16) map[uint16]DisassembledInstruction {
	lines := make(map[uint16]DisassembledInstruction)
	addr := uint32(start)
	previous := uint16(0)
	for addr <= uint32(stop) {
		d := Disassemble(mem, uint16(addr))
		d.PreviousAddr = previous
		lines[d.Address] = d
		previous = d.Address
		addr += uint32(len(d.Bytes))
	}
	return lines
}
