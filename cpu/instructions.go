package cpu

type accessKind uint8

// how an instruction uses its effective address. decides page-cross penalty
// and the dummy bus accesses of indexed and read-modify-write instructions.
const (
	kindRead accessKind = iota
	kindWrite
	kindRMW
)

const (
	rd  = kindRead
	wr  = kindWrite
	rmw = kindRMW
)

type instruction struct {
	name       string
	operate    func(*CPU)
	mode       AddrMode
	cycles     uint8
	kind       accessKind
	unofficial bool
}

func op(name string, operate func(*CPU), mode AddrMode, cycles uint8, kind accessKind) instruction {
	return instruction{name: name, operate: operate, mode: mode, cycles: cycles, kind: kind}
}

func ux(name string, operate func(*CPU), mode AddrMode, cycles uint8, kind accessKind) instruction {
	in := op(name, operate, mode, cycles, kind)
	in.unofficial = true
	return in
}

// lookup decodes every opcode. base cycle counts exclude the page-cross and
// branch penalties which are added during execution.
var lookup = [256]instruction{
	0x00: op("BRK", brk, IMP, 7, rd), 0x01: op("ORA", ora, IZX, 6, rd), 0x02: ux("JAM", jam, IMP, 2, rd), 0x03: ux("SLO", slo, IZX, 8, rmw),
	0x04: ux("NOP", nop, ZP0, 3, rd), 0x05: op("ORA", ora, ZP0, 3, rd), 0x06: op("ASL", asl, ZP0, 5, rmw), 0x07: ux("SLO", slo, ZP0, 5, rmw),
	0x08: op("PHP", php, IMP, 3, rd), 0x09: op("ORA", ora, IMM, 2, rd), 0x0A: op("ASL", asl, ACC, 2, rd), 0x0B: ux("ANC", anc, IMM, 2, rd),
	0x0C: ux("NOP", nop, ABS, 4, rd), 0x0D: op("ORA", ora, ABS, 4, rd), 0x0E: op("ASL", asl, ABS, 6, rmw), 0x0F: ux("SLO", slo, ABS, 6, rmw),

	0x10: op("BPL", bpl, REL, 2, rd), 0x11: op("ORA", ora, IZY, 5, rd), 0x12: ux("JAM", jam, IMP, 2, rd), 0x13: ux("SLO", slo, IZY, 8, rmw),
	0x14: ux("NOP", nop, ZPX, 4, rd), 0x15: op("ORA", ora, ZPX, 4, rd), 0x16: op("ASL", asl, ZPX, 6, rmw), 0x17: ux("SLO", slo, ZPX, 6, rmw),
	0x18: op("CLC", clc, IMP, 2, rd), 0x19: op("ORA", ora, ABY, 4, rd), 0x1A: ux("NOP", nop, IMP, 2, rd), 0x1B: ux("SLO", slo, ABY, 7, rmw),
	0x1C: ux("NOP", nop, ABX, 4, rd), 0x1D: op("ORA", ora, ABX, 4, rd), 0x1E: op("ASL", asl, ABX, 7, rmw), 0x1F: ux("SLO", slo, ABX, 7, rmw),

	0x20: op("JSR", jsr, ABS, 6, rd), 0x21: op("AND", and, IZX, 6, rd), 0x22: ux("JAM", jam, IMP, 2, rd), 0x23: ux("RLA", rla, IZX, 8, rmw),
	0x24: op("BIT", bit, ZP0, 3, rd), 0x25: op("AND", and, ZP0, 3, rd), 0x26: op("ROL", rol, ZP0, 5, rmw), 0x27: ux("RLA", rla, ZP0, 5, rmw),
	0x28: op("PLP", plp, IMP, 4, rd), 0x29: op("AND", and, IMM, 2, rd), 0x2A: op("ROL", rol, ACC, 2, rd), 0x2B: ux("ANC", anc, IMM, 2, rd),
	0x2C: op("BIT", bit, ABS, 4, rd), 0x2D: op("AND", and, ABS, 4, rd), 0x2E: op("ROL", rol, ABS, 6, rmw), 0x2F: ux("RLA", rla, ABS, 6, rmw),

	0x30: op("BMI", bmi, REL, 2, rd), 0x31: op("AND", and, IZY, 5, rd), 0x32: ux("JAM", jam, IMP, 2, rd), 0x33: ux("RLA", rla, IZY, 8, rmw),
	0x34: ux("NOP", nop, ZPX, 4, rd), 0x35: op("AND", and, ZPX, 4, rd), 0x36: op("ROL", rol, ZPX, 6, rmw), 0x37: ux("RLA", rla, ZPX, 6, rmw),
	0x38: op("SEC", sec, IMP, 2, rd), 0x39: op("AND", and, ABY, 4, rd), 0x3A: ux("NOP", nop, IMP, 2, rd), 0x3B: ux("RLA", rla, ABY, 7, rmw),
	0x3C: ux("NOP", nop, ABX, 4, rd), 0x3D: op("AND", and, ABX, 4, rd), 0x3E: op("ROL", rol, ABX, 7, rmw), 0x3F: ux("RLA", rla, ABX, 7, rmw),

	0x40: op("RTI", rti, IMP, 6, rd), 0x41: op("EOR", eor, IZX, 6, rd), 0x42: ux("JAM", jam, IMP, 2, rd), 0x43: ux("SRE", sre, IZX, 8, rmw),
	0x44: ux("NOP", nop, ZP0, 3, rd), 0x45: op("EOR", eor, ZP0, 3, rd), 0x46: op("LSR", lsr, ZP0, 5, rmw), 0x47: ux("SRE", sre, ZP0, 5, rmw),
	0x48: op("PHA", pha, IMP, 3, rd), 0x49: op("EOR", eor, IMM, 2, rd), 0x4A: op("LSR", lsr, ACC, 2, rd), 0x4B: ux("ALR", alr, IMM, 2, rd),
	0x4C: op("JMP", jmp, ABS, 3, rd), 0x4D: op("EOR", eor, ABS, 4, rd), 0x4E: op("LSR", lsr, ABS, 6, rmw), 0x4F: ux("SRE", sre, ABS, 6, rmw),

	0x50: op("BVC", bvc, REL, 2, rd), 0x51: op("EOR", eor, IZY, 5, rd), 0x52: ux("JAM", jam, IMP, 2, rd), 0x53: ux("SRE", sre, IZY, 8, rmw),
	0x54: ux("NOP", nop, ZPX, 4, rd), 0x55: op("EOR", eor, ZPX, 4, rd), 0x56: op("LSR", lsr, ZPX, 6, rmw), 0x57: ux("SRE", sre, ZPX, 6, rmw),
	0x58: op("CLI", cli, IMP, 2, rd), 0x59: op("EOR", eor, ABY, 4, rd), 0x5A: ux("NOP", nop, IMP, 2, rd), 0x5B: ux("SRE", sre, ABY, 7, rmw),
	0x5C: ux("NOP", nop, ABX, 4, rd), 0x5D: op("EOR", eor, ABX, 4, rd), 0x5E: op("LSR", lsr, ABX, 7, rmw), 0x5F: ux("SRE", sre, ABX, 7, rmw),

	0x60: op("RTS", rts, IMP, 6, rd), 0x61: op("ADC", adc, IZX, 6, rd), 0x62: ux("JAM", jam, IMP, 2, rd), 0x63: ux("RRA", rra, IZX, 8, rmw),
	0x64: ux("NOP", nop, ZP0, 3, rd), 0x65: op("ADC", adc, ZP0, 3, rd), 0x66: op("ROR", ror, ZP0, 5, rmw), 0x67: ux("RRA", rra, ZP0, 5, rmw),
	0x68: op("PLA", pla, IMP, 4, rd), 0x69: op("ADC", adc, IMM, 2, rd), 0x6A: op("ROR", ror, ACC, 2, rd), 0x6B: ux("ARR", arr, IMM, 2, rd),
	0x6C: op("JMP", jmp, IND, 5, rd), 0x6D: op("ADC", adc, ABS, 4, rd), 0x6E: op("ROR", ror, ABS, 6, rmw), 0x6F: ux("RRA", rra, ABS, 6, rmw),

	0x70: op("BVS", bvs, REL, 2, rd), 0x71: op("ADC", adc, IZY, 5, rd), 0x72: ux("JAM", jam, IMP, 2, rd), 0x73: ux("RRA", rra, IZY, 8, rmw),
	0x74: ux("NOP", nop, ZPX, 4, rd), 0x75: op("ADC", adc, ZPX, 4, rd), 0x76: op("ROR", ror, ZPX, 6, rmw), 0x77: ux("RRA", rra, ZPX, 6, rmw),
	0x78: op("SEI", sei, IMP, 2, rd), 0x79: op("ADC", adc, ABY, 4, rd), 0x7A: ux("NOP", nop, IMP, 2, rd), 0x7B: ux("RRA", rra, ABY, 7, rmw),
	0x7C: ux("NOP", nop, ABX, 4, rd), 0x7D: op("ADC", adc, ABX, 4, rd), 0x7E: op("ROR", ror, ABX, 7, rmw), 0x7F: ux("RRA", rra, ABX, 7, rmw),

	0x80: ux("NOP", nop, IMM, 2, rd), 0x81: op("STA", sta, IZX, 6, wr), 0x82: ux("NOP", nop, IMM, 2, rd), 0x83: ux("SAX", sax, IZX, 6, wr),
	0x84: op("STY", sty, ZP0, 3, wr), 0x85: op("STA", sta, ZP0, 3, wr), 0x86: op("STX", stx, ZP0, 3, wr), 0x87: ux("SAX", sax, ZP0, 3, wr),
	0x88: op("DEY", dey, IMP, 2, rd), 0x89: ux("NOP", nop, IMM, 2, rd), 0x8A: op("TXA", txa, IMP, 2, rd), 0x8B: ux("XAA", xaa, IMM, 2, rd),
	0x8C: op("STY", sty, ABS, 4, wr), 0x8D: op("STA", sta, ABS, 4, wr), 0x8E: op("STX", stx, ABS, 4, wr), 0x8F: ux("SAX", sax, ABS, 4, wr),

	0x90: op("BCC", bcc, REL, 2, rd), 0x91: op("STA", sta, IZY, 6, wr), 0x92: ux("JAM", jam, IMP, 2, rd), 0x93: ux("SHA", sha, IZY, 6, wr),
	0x94: op("STY", sty, ZPX, 4, wr), 0x95: op("STA", sta, ZPX, 4, wr), 0x96: op("STX", stx, ZPY, 4, wr), 0x97: ux("SAX", sax, ZPY, 4, wr),
	0x98: op("TYA", tya, IMP, 2, rd), 0x99: op("STA", sta, ABY, 5, wr), 0x9A: op("TXS", txs, IMP, 2, rd), 0x9B: ux("TAS", tas, ABY, 5, wr),
	0x9C: ux("SHY", shy, ABX, 5, wr), 0x9D: op("STA", sta, ABX, 5, wr), 0x9E: ux("SHX", shx, ABY, 5, wr), 0x9F: ux("SHA", sha, ABY, 5, wr),

	0xA0: op("LDY", ldy, IMM, 2, rd), 0xA1: op("LDA", lda, IZX, 6, rd), 0xA2: op("LDX", ldx, IMM, 2, rd), 0xA3: ux("LAX", lax, IZX, 6, rd),
	0xA4: op("LDY", ldy, ZP0, 3, rd), 0xA5: op("LDA", lda, ZP0, 3, rd), 0xA6: op("LDX", ldx, ZP0, 3, rd), 0xA7: ux("LAX", lax, ZP0, 3, rd),
	0xA8: op("TAY", tay, IMP, 2, rd), 0xA9: op("LDA", lda, IMM, 2, rd), 0xAA: op("TAX", tax, IMP, 2, rd), 0xAB: ux("LXA", lxa, IMM, 2, rd),
	0xAC: op("LDY", ldy, ABS, 4, rd), 0xAD: op("LDA", lda, ABS, 4, rd), 0xAE: op("LDX", ldx, ABS, 4, rd), 0xAF: ux("LAX", lax, ABS, 4, rd),

	0xB0: op("BCS", bcs, REL, 2, rd), 0xB1: op("LDA", lda, IZY, 5, rd), 0xB2: ux("JAM", jam, IMP, 2, rd), 0xB3: ux("LAX", lax, IZY, 5, rd),
	0xB4: op("LDY", ldy, ZPX, 4, rd), 0xB5: op("LDA", lda, ZPX, 4, rd), 0xB6: op("LDX", ldx, ZPY, 4, rd), 0xB7: ux("LAX", lax, ZPY, 4, rd),
	0xB8: op("CLV", clv, IMP, 2, rd), 0xB9: op("LDA", lda, ABY, 4, rd), 0xBA: op("TSX", tsx, IMP, 2, rd), 0xBB: ux("LAS", las, ABY, 4, rd),
	0xBC: op("LDY", ldy, ABX, 4, rd), 0xBD: op("LDA", lda, ABX, 4, rd), 0xBE: op("LDX", ldx, ABY, 4, rd), 0xBF: ux("LAX", lax, ABY, 4, rd),

	0xC0: op("CPY", cpy, IMM, 2, rd), 0xC1: op("CMP", cmp, IZX, 6, rd), 0xC2: ux("NOP", nop, IMM, 2, rd), 0xC3: ux("DCP", dcp, IZX, 8, rmw),
	0xC4: op("CPY", cpy, ZP0, 3, rd), 0xC5: op("CMP", cmp, ZP0, 3, rd), 0xC6: op("DEC", dec, ZP0, 5, rmw), 0xC7: ux("DCP", dcp, ZP0, 5, rmw),
	0xC8: op("INY", iny, IMP, 2, rd), 0xC9: op("CMP", cmp, IMM, 2, rd), 0xCA: op("DEX", dex, IMP, 2, rd), 0xCB: ux("AXS", axs, IMM, 2, rd),
	0xCC: op("CPY", cpy, ABS, 4, rd), 0xCD: op("CMP", cmp, ABS, 4, rd), 0xCE: op("DEC", dec, ABS, 6, rmw), 0xCF: ux("DCP", dcp, ABS, 6, rmw),

	0xD0: op("BNE", bne, REL, 2, rd), 0xD1: op("CMP", cmp, IZY, 5, rd), 0xD2: ux("JAM", jam, IMP, 2, rd), 0xD3: ux("DCP", dcp, IZY, 8, rmw),
	0xD4: ux("NOP", nop, ZPX, 4, rd), 0xD5: op("CMP", cmp, ZPX, 4, rd), 0xD6: op("DEC", dec, ZPX, 6, rmw), 0xD7: ux("DCP", dcp, ZPX, 6, rmw),
	0xD8: op("CLD", cld, IMP, 2, rd), 0xD9: op("CMP", cmp, ABY, 4, rd), 0xDA: ux("NOP", nop, IMP, 2, rd), 0xDB: ux("DCP", dcp, ABY, 7, rmw),
	0xDC: ux("NOP", nop, ABX, 4, rd), 0xDD: op("CMP", cmp, ABX, 4, rd), 0xDE: op("DEC", dec, ABX, 7, rmw), 0xDF: ux("DCP", dcp, ABX, 7, rmw),

	0xE0: op("CPX", cpx, IMM, 2, rd), 0xE1: op("SBC", sbc, IZX, 6, rd), 0xE2: ux("NOP", nop, IMM, 2, rd), 0xE3: ux("ISB", isb, IZX, 8, rmw),
	0xE4: op("CPX", cpx, ZP0, 3, rd), 0xE5: op("SBC", sbc, ZP0, 3, rd), 0xE6: op("INC", inc, ZP0, 5, rmw), 0xE7: ux("ISB", isb, ZP0, 5, rmw),
	0xE8: op("INX", inx, IMP, 2, rd), 0xE9: op("SBC", sbc, IMM, 2, rd), 0xEA: op("NOP", nop, IMP, 2, rd), 0xEB: ux("SBC", sbc, IMM, 2, rd),
	0xEC: op("CPX", cpx, ABS, 4, rd), 0xED: op("SBC", sbc, ABS, 4, rd), 0xEE: op("INC", inc, ABS, 6, rmw), 0xEF: ux("ISB", isb, ABS, 6, rmw),

	0xF0: op("BEQ", beq, REL, 2, rd), 0xF1: op("SBC", sbc, IZY, 5, rd), 0xF2: ux("JAM", jam, IMP, 2, rd), 0xF3: ux("ISB", isb, IZY, 8, rmw),
	0xF4: ux("NOP", nop, ZPX, 4, rd), 0xF5: op("SBC", sbc, ZPX, 4, rd), 0xF6: op("INC", inc, ZPX, 6, rmw), 0xF7: ux("ISB", isb, ZPX, 6, rmw),
	0xF8: op("SED", sed, IMP, 2, rd), 0xF9: op("SBC", sbc, ABY, 4, rd), 0xFA: ux("NOP", nop, IMP, 2, rd), 0xFB: ux("ISB", isb, ABY, 7, rmw),
	0xFC: ux("NOP", nop, ABX, 4, rd), 0xFD: op("SBC", sbc, ABX, 4, rd), 0xFE: op("INC", inc, ABX, 7, rmw), 0xFF: ux("ISB", isb, ABX, 7, rmw),
}

// Definition is the public description of an opcode.
type Definition struct {
	Opcode     uint8
	Mnemonic   string
	Mode       AddrMode
	Cycles     int
	Unofficial bool
}

// Lookup returns the definition of an opcode.
func Lookup(opcode uint8) Definition {
	in := &lookup[opcode]
	return Definition{
		Opcode:     opcode,
		Mnemonic:   in.name,
		Mode:       in.mode,
		Cycles:     int(in.cycles),
		Unofficial: in.unofficial,
	}
}
