// debug_disasm_z80.go - Z80 disassembler for the trace and monitor views

package main

import (
	"fmt"
	"strings"
)

type DisassembledLine struct {
	Address      uint64
	HexBytes     string
	Mnemonic     string
	Size         int
	IsPC         bool
	IsBranch     bool
	BranchTarget uint64
}

var (
	z80RegNames  = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	z80PairNames = [4]string{"BC", "DE", "HL", "SP"}
	z80PushNames = [4]string{"BC", "DE", "HL", "AF"}
	z80CondNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
	z80ALUNames  = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}
	z80RotNames  = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}
)

func disassembleZ80(readMem func(addr uint64, size int) []byte, addr uint64, count int) []DisassembledLine {
	lines := make([]DisassembledLine, 0, count)
	for ; count > 0; count-- {
		window := readMem(addr, 4) // the longest Z80 encoding is four bytes
		if len(window) == 0 {
			break
		}
		size, mnemonic := decodeZ80Instruction(window, uint16(addr))
		line := DisassembledLine{
			Address:  addr,
			HexBytes: hexWindow(window, size),
			Mnemonic: mnemonic,
			Size:     size,
		}
		markBranch(&line, window)
		lines = append(lines, line)
		addr += uint64(size)
	}
	return lines
}

func hexWindow(window []byte, size int) string {
	if size > len(window) {
		size = len(window)
	}
	parts := make([]string, size)
	for i, b := range window[:size] {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

func markBranch(line *DisassembledLine, window []byte) {
	op := window[0]
	switch {
	case op == 0xC3 || op&0xC7 == 0xC2 || op == 0xCD || op&0xC7 == 0xC4:
		// JP nn / JP cc,nn / CALL nn / CALL cc,nn
		line.IsBranch = true
		if len(window) >= 3 {
			line.BranchTarget = uint64(uint16(window[1]) | uint16(window[2])<<8)
		}
	case op == 0x18 || op == 0x10 || op&0xE7 == 0x20:
		// JR / DJNZ / JR cc
		line.IsBranch = true
		if len(window) >= 2 {
			line.BranchTarget = uint64(uint16(line.Address) + 2 + uint16(int8(window[1])))
		}
	}
}

func decodeZ80Instruction(data []byte, pc uint16) (int, string) {
	if len(data) == 0 {
		return 1, "?"
	}
	switch data[0] {
	case 0xCB:
		return decodeZ80CB(data)
	case 0xED:
		return decodeZ80ED(data)
	case 0xDD:
		return decodeZ80Indexed(data, pc, "IX")
	case 0xFD:
		return decodeZ80Indexed(data, pc, "IY")
	}
	return decodeZ80Base(data, pc)
}

func imm16(data []byte) string {
	if len(data) < 3 {
		return "$????"
	}
	return fmt.Sprintf("$%04X", uint16(data[1])|uint16(data[2])<<8)
}

func imm8(data []byte, at int) string {
	if len(data) <= at {
		return "$??"
	}
	return fmt.Sprintf("$%02X", data[at])
}

func relTarget(data []byte, pc uint16) string {
	if len(data) < 2 {
		return "$????"
	}
	return fmt.Sprintf("$%04X", pc+2+uint16(int8(data[1])))
}

func decodeZ80Base(data []byte, pc uint16) (int, string) {
	op := data[0]
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07
	p := y >> 1
	q := y & 0x01

	switch x {
	case 0:
		switch z {
		case 0:
			switch y {
			case 0:
				return 1, "NOP"
			case 1:
				return 1, "EX AF,AF'"
			case 2:
				return 2, "DJNZ " + relTarget(data, pc)
			case 3:
				return 2, "JR " + relTarget(data, pc)
			default:
				return 2, "JR " + z80CondNames[y-4] + "," + relTarget(data, pc)
			}
		case 1:
			if q == 0 {
				return 3, "LD " + z80PairNames[p] + "," + imm16(data)
			}
			return 1, "ADD HL," + z80PairNames[p]
		case 2:
			switch y {
			case 0:
				return 1, "LD (BC),A"
			case 1:
				return 1, "LD A,(BC)"
			case 2:
				return 1, "LD (DE),A"
			case 3:
				return 1, "LD A,(DE)"
			case 4:
				return 3, "LD (" + imm16(data) + "),HL"
			case 5:
				return 3, "LD HL,(" + imm16(data) + ")"
			case 6:
				return 3, "LD (" + imm16(data) + "),A"
			default:
				return 3, "LD A,(" + imm16(data) + ")"
			}
		case 3:
			if q == 0 {
				return 1, "INC " + z80PairNames[p]
			}
			return 1, "DEC " + z80PairNames[p]
		case 4:
			return 1, "INC " + z80RegNames[y]
		case 5:
			return 1, "DEC " + z80RegNames[y]
		case 6:
			return 2, "LD " + z80RegNames[y] + "," + imm8(data, 1)
		default:
			ops := [8]string{"RLCA", "RRCA", "RLA", "RRA", "DAA", "CPL", "SCF", "CCF"}
			return 1, ops[y]
		}
	case 1:
		if op == 0x76 {
			return 1, "HALT"
		}
		return 1, "LD " + z80RegNames[y] + "," + z80RegNames[z]
	case 2:
		return 1, z80ALUNames[y] + z80RegNames[z]
	default:
		switch z {
		case 0:
			return 1, "RET " + z80CondNames[y]
		case 1:
			if q == 0 {
				return 1, "POP " + z80PushNames[p]
			}
			ops := [4]string{"RET", "EXX", "JP (HL)", "LD SP,HL"}
			return 1, ops[p]
		case 2:
			return 3, "JP " + z80CondNames[y] + "," + imm16(data)
		case 3:
			switch y {
			case 0:
				return 3, "JP " + imm16(data)
			case 2:
				return 2, "OUT (" + imm8(data, 1) + "),A"
			case 3:
				return 2, "IN A,(" + imm8(data, 1) + ")"
			case 4:
				return 1, "EX (SP),HL"
			case 5:
				return 1, "EX DE,HL"
			case 6:
				return 1, "DI"
			default:
				return 1, "EI"
			}
		case 4:
			return 3, "CALL " + z80CondNames[y] + "," + imm16(data)
		case 5:
			if q == 0 {
				return 1, "PUSH " + z80PushNames[p]
			}
			return 3, "CALL " + imm16(data)
		case 6:
			return 2, z80ALUNames[y] + imm8(data, 1)
		default:
			return 1, fmt.Sprintf("RST $%02X", y*8)
		}
	}
}

func decodeZ80CB(data []byte) (int, string) {
	if len(data) < 2 {
		return 2, "?"
	}
	op := data[1]
	bit := (op >> 3) & 0x07
	reg := z80RegNames[op&0x07]
	switch op >> 6 {
	case 0:
		return 2, z80RotNames[bit] + " " + reg
	case 1:
		return 2, fmt.Sprintf("BIT %d,%s", bit, reg)
	case 2:
		return 2, fmt.Sprintf("RES %d,%s", bit, reg)
	default:
		return 2, fmt.Sprintf("SET %d,%s", bit, reg)
	}
}

func decodeZ80ED(data []byte) (int, string) {
	if len(data) < 2 {
		return 2, "?"
	}
	op := data[1]
	y := (op >> 3) & 0x07
	p := y >> 1
	q := y & 0x01
	ednn := func() string {
		if len(data) < 4 {
			return "$????"
		}
		return fmt.Sprintf("$%04X", uint16(data[2])|uint16(data[3])<<8)
	}

	switch {
	case op >= 0x40 && op <= 0x7F:
		switch op & 0x07 {
		case 0:
			if y == 6 {
				return 2, "IN (C)"
			}
			return 2, "IN " + z80RegNames[y] + ",(C)"
		case 1:
			if y == 6 {
				return 2, "OUT (C),0"
			}
			return 2, "OUT (C)," + z80RegNames[y]
		case 2:
			if q == 0 {
				return 2, "SBC HL," + z80PairNames[p]
			}
			return 2, "ADC HL," + z80PairNames[p]
		case 3:
			if q == 0 {
				return 4, "LD (" + ednn() + ")," + z80PairNames[p]
			}
			return 4, "LD " + z80PairNames[p] + ",(" + ednn() + ")"
		case 4:
			return 2, "NEG"
		case 5:
			if op == 0x4D {
				return 2, "RETI"
			}
			return 2, "RETN"
		case 6:
			modes := [8]string{"0", "0", "1", "2", "0", "0", "1", "2"}
			return 2, "IM " + modes[y]
		default:
			ops := [8]string{"LD I,A", "LD R,A", "LD A,I", "LD A,R", "RRD", "RLD", "NOP", "NOP"}
			return 2, ops[y]
		}
	case op >= 0xA0 && op <= 0xBB:
		names := map[byte]string{
			0xA0: "LDI", 0xA1: "CPI", 0xA2: "INI", 0xA3: "OUTI",
			0xA8: "LDD", 0xA9: "CPD", 0xAA: "IND", 0xAB: "OUTD",
			0xB0: "LDIR", 0xB1: "CPIR", 0xB2: "INIR", 0xB3: "OTIR",
			0xB8: "LDDR", 0xB9: "CPDR", 0xBA: "INDR", 0xBB: "OTDR",
		}
		if name, ok := names[op]; ok {
			return 2, name
		}
	}
	return 2, "NOP*"
}

func decodeZ80Indexed(data []byte, pc uint16, ix string) (int, string) {
	if len(data) < 2 {
		return 2, "?"
	}
	if data[1] == 0xCB {
		return decodeZ80IndexedCB(data, ix)
	}
	if data[1] == 0x36 {
		// LD (IX+d),n carries the immediate after the displacement,
		// so the generic operand splice cannot cover it.
		disp := "+$??"
		if len(data) >= 3 {
			if d := int8(data[2]); d < 0 {
				disp = fmt.Sprintf("-$%02X", -int(d))
			} else {
				disp = fmt.Sprintf("+$%02X", d)
			}
		}
		return 4, "LD (" + ix + disp + ")," + imm8(data, 3)
	}

	size, mnemonic := decodeZ80Base(data[1:], pc+1)

	// Displaced memory operand: splice the signed offset in.
	if strings.Contains(mnemonic, "(HL)") {
		disp := "+$??"
		if len(data) >= 3 {
			d := int8(data[2])
			if d < 0 {
				disp = fmt.Sprintf("-$%02X", -int(d))
			} else {
				disp = fmt.Sprintf("+$%02X", d)
			}
		}
		mnemonic = strings.ReplaceAll(mnemonic, "(HL)", "("+ix+disp+")")
		return size + 2, mnemonic
	}
	if strings.Contains(mnemonic, "HL") {
		return size + 1, strings.ReplaceAll(mnemonic, "HL", ix)
	}
	if strings.Contains(mnemonic, "H") || strings.Contains(mnemonic, "L") {
		// Register-half forms only rewrite the H/L operands, never
		// mnemonic letters; handle the LD/INC/DEC/ALU shapes.
		mnemonic = rewriteIndexHalves(mnemonic, ix)
		return size + 1, mnemonic
	}
	return size + 1, mnemonic
}

func rewriteIndexHalves(mnemonic, ix string) string {
	idx := strings.IndexByte(mnemonic, ' ')
	if idx < 0 {
		return mnemonic
	}
	head := mnemonic[:idx+1]
	operands := strings.Split(mnemonic[idx+1:], ",")
	for i, operand := range operands {
		switch operand {
		case "H":
			operands[i] = ix + "H"
		case "L":
			operands[i] = ix + "L"
		}
	}
	return head + strings.Join(operands, ",")
}

func decodeZ80IndexedCB(data []byte, ix string) (int, string) {
	if len(data) < 4 {
		return 4, "?"
	}
	d := int8(data[2])
	disp := fmt.Sprintf("+$%02X", d)
	if d < 0 {
		disp = fmt.Sprintf("-$%02X", -int(d))
	}
	target := "(" + ix + disp + ")"
	op := data[3]
	bit := (op >> 3) & 0x07
	reg := op & 0x07
	storeback := ""
	if reg != 6 {
		storeback = "," + z80RegNames[reg]
	}
	switch op >> 6 {
	case 0:
		return 4, z80RotNames[bit] + " " + target + storeback
	case 1:
		return 4, fmt.Sprintf("BIT %d,%s", bit, target)
	case 2:
		return 4, fmt.Sprintf("RES %d,%s%s", bit, target, storeback)
	default:
		return 4, fmt.Sprintf("SET %d,%s%s", bit, target, storeback)
	}
}
