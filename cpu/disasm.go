package cpu

import (
	"fmt"
)

func reg8Name(code uint8) string {
	if r := Reg8(code); r.Valid() {
		return r.String()
	}
	return fmt.Sprintf("?%x", code)
}

func reg16Name(code uint8) string {
	if r := Reg16(code); r.Valid() {
		return r.String()
	}
	return fmt.Sprintf("?%x", code)
}

// Disassemble decodes the instruction at ip, returning its text and its
// size in bytes. Memory is only read.
func Disassemble(m Memory, ip uint16) (text string, size int) {
	code := m.Read(ip)
	arg := func(n uint16) uint8 { return m.Read(ip + n) }
	word := func(n uint16) uint16 { return makeWord(arg(n), arg(n+1)) }

	if Opcode(code) > OP_HLT {
		family, selector := splitNibbles(code)
		switch Family(family) {
		case FAMILY_MOV8, FAMILY_ADD8:
			return fmt.Sprintf("%v %v, 0x%02x", Family(family), reg8Name(selector), arg(1)), 2
		case FAMILY_MOV16, FAMILY_ADD16:
			return fmt.Sprintf("%v %v, 0x%04x", Family(family), reg16Name(selector), word(1)), 3
		case FAMILY_PUSH8, FAMILY_POP8:
			return fmt.Sprintf("%v %v", Family(family), reg8Name(selector)), 1
		case FAMILY_PUSH16, FAMILY_POP16:
			return fmt.Sprintf("%v %v", Family(family), reg16Name(selector)), 1
		}
		return fmt.Sprintf(".byte 0x%02x", code), 1
	}

	op := Opcode(code)
	info, ok := _opcodes[op]
	if !ok {
		return fmt.Sprintf(".byte 0x%02x", code), 1
	}

	p1, p2 := splitNibbles(arg(1))
	switch info.operand {
	case OPERAND_PAIR8:
		return fmt.Sprintf("%v %v, %v", info.name, reg8Name(p1), reg8Name(p2)), 2
	case OPERAND_PAIR16:
		return fmt.Sprintf("%v %v, %v", info.name, reg16Name(p1), reg16Name(p2)), 2
	case OPERAND_NEG:
		if p1 == 1 {
			return fmt.Sprintf("%v %v", info.name, reg16Name(p2)), 2
		}
		return fmt.Sprintf("%v %v", info.name, reg8Name(p2)), 2
	case OPERAND_COUNT:
		return fmt.Sprintf("%v %v, %d", info.name, reg8Name(p1), p2), 2
	case OPERAND_MUL:
		if p2 == MUL_A {
			return fmt.Sprintf("%v a, %v", info.name, reg8Name(p1)), 2
		}
		return fmt.Sprintf("%v %v, %v", info.name, reg8Name(p1), reg8Name(p2)), 2
	case OPERAND_TAG:
		switch arg(1) {
		case MOVS_F:
			return "movs al, f", 2
		case MOVS_IC:
			return "movs al, ic", 2
		case MOVS_IP:
			return "movs a, ip", 2
		}
		return fmt.Sprintf("%v ?%02x", info.name, arg(1)), 2
	case OPERAND_DISP:
		return fmt.Sprintf("%v [bp%+d]", info.name, int8(arg(1))), 2
	case OPERAND_ADDR:
		return fmt.Sprintf("%v 0x%04x", info.name, word(1)), 3
	case OPERAND_IMM8:
		return fmt.Sprintf("%v 0x%02x", info.name, arg(1)), 2
	}

	switch op {
	case OP_LDB_C, OP_STB_C, OP_LDW_C, OP_STW_C:
		return fmt.Sprintf("%v [c]", info.name), 1
	}

	return info.name, 1
}
