package cpu

import (
	"fmt"
)

// Opcode is a byte operation code, valid for values up to OP_HLT.
type Opcode uint8

const (
	OP_NOP    = Opcode(0x00)
	OP_ADD8   = Opcode(0x01) // g8 += g8
	OP_ADD16  = Opcode(0x02) // r16 += r16
	OP_SUB8   = Opcode(0x03) // g8 -= g8
	OP_SUB16  = Opcode(0x04) // r16 -= r16
	OP_INC    = Opcode(0x05) // c++
	OP_DEC    = Opcode(0x06) // c--
	OP_NEG    = Opcode(0x07) // g8 = -g8, or g16 = -g16
	OP_AND    = Opcode(0x08)
	OP_OR     = Opcode(0x09)
	OP_XOR    = Opcode(0x0a)
	OP_ROL    = Opcode(0x0b)
	OP_SHL    = Opcode(0x0c) // shift left, or right for counts 8..15
	OP_MUL    = Opcode(0x0d)
	OP_MOV8   = Opcode(0x20)
	OP_MOV16  = Opcode(0x21)
	OP_MOVS   = Opcode(0x22) // al = f, al = ic, or a = ip
	OP_LDB_BP = Opcode(0x23)
	OP_LDB_C  = Opcode(0x24)
	OP_STB_BP = Opcode(0x25)
	OP_STB_C  = Opcode(0x26)
	OP_SWP    = Opcode(0x28)
	OP_LDW_BP = Opcode(0x29)
	OP_LDW_C  = Opcode(0x2a)
	OP_MOV_AT = Opcode(0x2b) // al = t
	OP_MOV_TA = Opcode(0x2c) // t = al
	OP_STW_BP = Opcode(0x2d)
	OP_STW_C  = Opcode(0x2e)
	OP_JP     = Opcode(0x40)
	OP_JZ     = Opcode(0x41)
	OP_JC     = Opcode(0x42)
	OP_JNZ    = Opcode(0x43)
	OP_JNC    = Opcode(0x44)
	OP_CALL   = Opcode(0x48)
	OP_CALL_A = Opcode(0x49)
	OP_INT    = Opcode(0x4a)
	OP_RET    = Opcode(0x4b)
	OP_RETI   = Opcode(0x4c)
	OP_EI     = Opcode(0x50)
	OP_DI     = Opcode(0x51)
	OP_ECI    = Opcode(0x52)
	OP_DCI    = Opcode(0x53)
	OP_RSV_54 = Opcode(0x54)
	OP_RSV_55 = Opcode(0x55)
	OP_IN     = Opcode(0x60)
	OP_OUT    = Opcode(0x61)
	OP_HLT    = Opcode(0x70)
)

// Selector tags of OP_MOVS.
const (
	MOVS_F  = 0x01
	MOVS_IC = 0x02
	MOVS_IP = 0x03
)

// MUL_A is the second selector of OP_MUL that multiplies all of A.
const MUL_A = 0x4

// Family is the high nibble of a nibble operation. The low nibble is the
// register selector.
type Family uint8

//go:generate go tool stringer -linecomment -type=Family
const (
	FAMILY_MOV8   = Family(0x8) // mov8
	FAMILY_MOV16  = Family(0x9) // mov16
	FAMILY_PUSH8  = Family(0xa) // push8
	FAMILY_PUSH16 = Family(0xb) // push16
	FAMILY_POP8   = Family(0xc) // pop8
	FAMILY_POP16  = Family(0xd) // pop16
	FAMILY_ADD8   = Family(0xe) // addi8
	FAMILY_ADD16  = Family(0xf) // addi16
)

// Reg8 selects one of the four 8-bit half registers.
type Reg8 uint8

//go:generate go tool stringer -linecomment -type=Reg8
const (
	REG8_AL = Reg8(0) // al
	REG8_AH = Reg8(1) // ah
	REG8_CL = Reg8(2) // cl
	REG8_CH = Reg8(3) // ch
)

// Valid returns true if the selector names a g8 register.
func (r Reg8) Valid() bool {
	return r <= REG8_CH
}

// Reg16 selects one of the 16-bit registers.
type Reg16 uint8

//go:generate go tool stringer -linecomment -type=Reg16
const (
	REG16_A  = Reg16(0) // a
	REG16_C  = Reg16(1) // c
	REG16_SP = Reg16(2) // sp
	REG16_BP = Reg16(3) // bp
)

// Valid returns true if the selector names a r16 register.
func (r Reg16) Valid() bool {
	return r <= REG16_BP
}

// General returns true if the selector names a g16 register (A or C).
func (r Reg16) General() bool {
	return r <= REG16_C
}

// operandKind describes the bytes following a byte operation.
type operandKind int

const (
	OPERAND_NONE   = operandKind(iota)
	OPERAND_PAIR8  // g8, g8 nibble pair
	OPERAND_PAIR16 // r16, r16 nibble pair
	OPERAND_NEG    // mode, register nibble pair
	OPERAND_COUNT  // g8, count nibble pair
	OPERAND_MUL    // g8, g8 or MUL_A nibble pair
	OPERAND_TAG    // OP_MOVS tag byte
	OPERAND_DISP   // signed BP displacement byte
	OPERAND_ADDR   // little endian 16-bit address
	OPERAND_IMM8   // immediate byte
)

type opcodeInfo struct {
	name    string
	operand operandKind
}

var _opcodes = map[Opcode]opcodeInfo{
	OP_NOP:    {"nop", OPERAND_NONE},
	OP_ADD8:   {"add8", OPERAND_PAIR8},
	OP_ADD16:  {"add16", OPERAND_PAIR16},
	OP_SUB8:   {"sub8", OPERAND_PAIR8},
	OP_SUB16:  {"sub16", OPERAND_PAIR16},
	OP_INC:    {"inc", OPERAND_NONE},
	OP_DEC:    {"dec", OPERAND_NONE},
	OP_NEG:    {"neg", OPERAND_NEG},
	OP_AND:    {"and", OPERAND_PAIR8},
	OP_OR:     {"or", OPERAND_PAIR8},
	OP_XOR:    {"xor", OPERAND_PAIR8},
	OP_ROL:    {"rol", OPERAND_COUNT},
	OP_SHL:    {"shl", OPERAND_COUNT},
	OP_MUL:    {"mul", OPERAND_MUL},
	OP_MOV8:   {"mov8", OPERAND_PAIR8},
	OP_MOV16:  {"mov16", OPERAND_PAIR16},
	OP_MOVS:   {"movs", OPERAND_TAG},
	OP_LDB_BP: {"ldb", OPERAND_DISP},
	OP_LDB_C:  {"ldb", OPERAND_NONE},
	OP_STB_BP: {"stb", OPERAND_DISP},
	OP_STB_C:  {"stb", OPERAND_NONE},
	OP_SWP:    {"swp", OPERAND_NONE},
	OP_LDW_BP: {"ldw", OPERAND_DISP},
	OP_LDW_C:  {"ldw", OPERAND_NONE},
	OP_MOV_AT: {"movat", OPERAND_NONE},
	OP_MOV_TA: {"movta", OPERAND_NONE},
	OP_STW_BP: {"stw", OPERAND_DISP},
	OP_STW_C:  {"stw", OPERAND_NONE},
	OP_JP:     {"jp", OPERAND_ADDR},
	OP_JZ:     {"jz", OPERAND_ADDR},
	OP_JC:     {"jc", OPERAND_ADDR},
	OP_JNZ:    {"jnz", OPERAND_ADDR},
	OP_JNC:    {"jnc", OPERAND_ADDR},
	OP_CALL:   {"call", OPERAND_ADDR},
	OP_CALL_A: {"calla", OPERAND_NONE},
	OP_INT:    {"int", OPERAND_IMM8},
	OP_RET:    {"ret", OPERAND_NONE},
	OP_RETI:   {"reti", OPERAND_NONE},
	OP_EI:     {"ei", OPERAND_NONE},
	OP_DI:     {"di", OPERAND_NONE},
	OP_ECI:    {"eci", OPERAND_NONE},
	OP_DCI:    {"dci", OPERAND_NONE},
	OP_RSV_54: {"rsv54", OPERAND_NONE},
	OP_RSV_55: {"rsv55", OPERAND_NONE},
	OP_IN:     {"in", OPERAND_NONE},
	OP_OUT:    {"out", OPERAND_NONE},
	OP_HLT:    {"hlt", OPERAND_NONE},
}

// Valid returns true if the opcode is a mapped byte operation.
func (op Opcode) Valid() (ok bool) {
	_, ok = _opcodes[op]
	return
}

// String returns the mnemonic of the opcode.
func (op Opcode) String() string {
	info, ok := _opcodes[op]
	if !ok {
		return fmt.Sprintf("Opcode(0x%02x)", uint8(op))
	}
	return info.name
}

func makeWord(low, high uint8) uint16 {
	return uint16(low) | uint16(high)<<8
}

func lowByte(word uint16) uint8 {
	return uint8(word)
}

func highByte(word uint16) uint8 {
	return uint8(word >> 8)
}

func splitNibbles(value uint8) (high, low uint8) {
	return value >> 4, value & 0x0f
}
