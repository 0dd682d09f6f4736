package cpu

import (
	"errors"
)

// params fetches an operand byte, split into its high and low nibbles.
func (cpu *Cpu) params() (p1, p2 uint8) {
	return splitNibbles(cpu.fetch())
}

// fetchWord fetches a little endian 16-bit operand.
func (cpu *Cpu) fetchWord() uint16 {
	low := cpu.fetch()
	high := cpu.fetch()
	return makeWord(low, high)
}

// displacement fetches a signed offset and returns BP plus that offset.
func (cpu *Cpu) displacement() uint16 {
	return cpu.Primary.BP + uint16(int8(cpu.fetch()))
}

func (cpu *Cpu) readWord(addr uint16) uint16 {
	return makeWord(cpu.mem.Read(addr), cpu.mem.Read(addr+1))
}

func (cpu *Cpu) writeWord(addr uint16, value uint16) {
	cpu.mem.Write(addr, lowByte(value))
	cpu.mem.Write(addr+1, highByte(value))
}

// execByte executes a byte operation.
func (cpu *Cpu) execByte(op Opcode) (err error) {
	p := &cpu.Primary

	switch op {
	case OP_NOP:
	case OP_ADD8, OP_SUB8:
		cpu.opArith8(op)
	case OP_ADD16, OP_SUB16:
		cpu.opArith16(op)
	case OP_INC:
		p.C++
	case OP_DEC:
		p.C--
	case OP_NEG:
		cpu.opNeg()
	case OP_AND, OP_OR, OP_XOR:
		cpu.opLogic(op)
	case OP_ROL, OP_SHL:
		cpu.opShift(op)
	case OP_MUL:
		cpu.opMul()
	case OP_MOV8, OP_MOV16, OP_MOVS,
		OP_LDB_BP, OP_LDB_C, OP_STB_BP, OP_STB_C,
		OP_LDW_BP, OP_LDW_C, OP_STW_BP, OP_STW_C,
		OP_MOV_AT, OP_MOV_TA:
		cpu.opMove(op)
	case OP_SWP:
		cpu.Primary, cpu.Shadow = cpu.Shadow, cpu.Primary
	case OP_JP, OP_JZ, OP_JC, OP_JNZ, OP_JNC:
		cpu.opJump(op)
	case OP_CALL:
		cpu.Ip = cpu.fetchWord()
	case OP_CALL_A:
		cpu.Ip = p.A
	case OP_INT:
		cpu.RaiseInterrupt(cpu.fetch())
	case OP_RET:
		cpu.pop16(&cpu.Ip)
	case OP_RETI:
		cpu.returnFromInterrupt()
	case OP_EI:
		cpu.InterruptHandling = true
	case OP_DI:
		cpu.InterruptHandling = false
	case OP_ECI:
		cpu.ClockInterrupt = true
	case OP_DCI:
		cpu.ClockInterrupt = false
	case OP_RSV_54, OP_RSV_55:
		// Reserved.
	case OP_IN:
		if cpu.input == nil {
			err = ErrInput
			return
		}
		var value uint8
		value, err = cpu.input.ReadByte()
		if err != nil {
			err = errors.Join(ErrInput, err)
			return
		}
		p.A = makeWord(value, highByte(p.A))
	case OP_OUT:
		if cpu.output == nil {
			err = ErrOutput
			return
		}
		err = cpu.output.WriteByte(lowByte(p.A))
		if err != nil {
			err = errors.Join(ErrOutput, err)
			return
		}
	case OP_HLT:
		cpu.PowerOn = false
	default:
		cpu.badOpCode()
	}

	return
}

// opArith8 adds or subtracts two half registers. Addition sets carry and
// zero, subtraction sets only zero.
func (cpu *Cpu) opArith8(op Opcode) {
	p1, p2 := cpu.params()
	r1, r2 := Reg8(p1), Reg8(p2)
	if !r1.Valid() || !r2.Valid() {
		cpu.badParameter()
		return
	}

	a, b := cpu.getG8(r1), cpu.getG8(r2)
	if op == OP_ADD8 {
		cpu.Primary.setCarry(uint16(a)+uint16(b) > 0xff)
		cpu.setG8(r1, a+b)
	} else {
		cpu.setG8(r1, a-b)
	}
	cpu.Primary.setZero(cpu.getG8(r1) == 0)
}

// opArith16 adds or subtracts two 16-bit registers.
func (cpu *Cpu) opArith16(op Opcode) {
	p1, p2 := cpu.params()
	r1, r2 := Reg16(p1), Reg16(p2)
	if !r1.Valid() || !r2.Valid() {
		cpu.badParameter()
		return
	}

	dst, src := cpu.r16(r1), *cpu.r16(r2)
	if op == OP_ADD16 {
		cpu.Primary.setCarry(uint32(*dst)+uint32(src) > 0xffff)
		*dst += src
	} else {
		*dst -= src
	}
	cpu.Primary.setZero(*dst == 0)
}

// opNeg negates a half register (mode 0) or A or C (mode 1).
func (cpu *Cpu) opNeg() {
	mode, code := cpu.params()
	switch mode {
	case 0:
		r := Reg8(code)
		if !r.Valid() {
			cpu.badParameter()
			return
		}
		cpu.setG8(r, -cpu.getG8(r))
	case 1:
		r := Reg16(code)
		if !r.General() {
			cpu.badParameter()
			return
		}
		reg := cpu.r16(r)
		*reg = -*reg
	default:
		cpu.badParameter()
	}
}

func (cpu *Cpu) opLogic(op Opcode) {
	p1, p2 := cpu.params()
	r1, r2 := Reg8(p1), Reg8(p2)
	if !r1.Valid() || !r2.Valid() {
		cpu.badParameter()
		return
	}

	a, b := cpu.getG8(r1), cpu.getG8(r2)
	switch op {
	case OP_AND:
		cpu.setG8(r1, a&b)
	case OP_OR:
		cpu.setG8(r1, a|b)
	case OP_XOR:
		cpu.setG8(r1, a^b)
	}
}

// opShift rotates left by 0..7, or shifts. Shift counts 0..7 shift left,
// and counts 8..15 shift right by 16 minus the count.
func (cpu *Cpu) opShift(op Opcode) {
	p1, count := cpu.params()
	r := Reg8(p1)
	if !r.Valid() {
		cpu.badParameter()
		return
	}

	value := cpu.getG8(r)
	switch {
	case op == OP_ROL && count > 7:
		cpu.badParameter()
	case op == OP_ROL:
		cpu.setG8(r, value<<count|value>>(8-count))
	case count > 7:
		cpu.setG8(r, value>>(16-count))
	default:
		cpu.setG8(r, value<<count)
	}
}

// opMul multiplies two half registers, or A by a half register when the
// second selector is MUL_A. Only carry is set.
func (cpu *Cpu) opMul() {
	p1, p2 := cpu.params()
	r1, r2 := Reg8(p1), Reg8(p2)
	switch {
	case r1.Valid() && r2.Valid():
		product := uint16(cpu.getG8(r1)) * uint16(cpu.getG8(r2))
		cpu.Primary.setCarry(product > 0xff)
		cpu.setG8(r1, uint8(product))
	case r1.Valid() && p2 == MUL_A:
		value := uint16(cpu.getG8(r1))
		cpu.Primary.setCarry(uint32(cpu.Primary.A)*uint32(value) > 0xffff)
		cpu.Primary.A *= value
	default:
		cpu.badParameter()
	}
}

// opMove executes the register and memory moves.
func (cpu *Cpu) opMove(op Opcode) {
	p := &cpu.Primary

	switch op {
	case OP_MOV8:
		p1, p2 := cpu.params()
		r1, r2 := Reg8(p1), Reg8(p2)
		if !r1.Valid() || !r2.Valid() {
			cpu.badParameter()
			return
		}
		cpu.setG8(r1, cpu.getG8(r2))
	case OP_MOV16:
		p1, p2 := cpu.params()
		r1, r2 := Reg16(p1), Reg16(p2)
		if !r1.Valid() || !r2.Valid() {
			cpu.badParameter()
			return
		}
		*cpu.r16(r1) = *cpu.r16(r2)
	case OP_MOVS:
		switch cpu.fetch() {
		case MOVS_F:
			p.A = makeWord(p.F, highByte(p.A))
		case MOVS_IC:
			p.A = makeWord(cpu.Ic, highByte(p.A))
		case MOVS_IP:
			p.A = cpu.Ip
		default:
			cpu.badParameter()
		}
	case OP_LDB_BP:
		p.A = makeWord(cpu.mem.Read(cpu.displacement()), highByte(p.A))
	case OP_LDB_C:
		p.A = makeWord(cpu.mem.Read(p.C), highByte(p.A))
	case OP_STB_BP:
		cpu.mem.Write(cpu.displacement(), lowByte(p.A))
	case OP_STB_C:
		cpu.mem.Write(p.C, lowByte(p.A))
	case OP_LDW_BP:
		p.A = cpu.readWord(cpu.displacement())
	case OP_LDW_C:
		p.A = cpu.readWord(p.C)
	case OP_STW_BP:
		cpu.writeWord(cpu.displacement(), p.A)
	case OP_STW_C:
		cpu.writeWord(p.C, p.A)
	case OP_MOV_AT:
		p.A = makeWord(cpu.T, highByte(p.A))
	case OP_MOV_TA:
		cpu.T = lowByte(p.A)
	}
}

// opJump fetches an absolute address, and jumps to it if the condition holds.
func (cpu *Cpu) opJump(op Opcode) {
	addr := cpu.fetchWord()
	p := &cpu.Primary

	var taken bool
	switch op {
	case OP_JP:
		taken = true
	case OP_JZ:
		taken = p.Zero()
	case OP_JC:
		taken = p.Carry()
	case OP_JNZ:
		taken = !p.Zero()
	case OP_JNC:
		taken = !p.Carry()
	}

	if taken {
		cpu.Ip = addr
	}
}

// execNibble executes a nibble operation on the register named by selector.
func (cpu *Cpu) execNibble(family Family, selector uint8) {
	p := &cpu.Primary
	r8, r16 := Reg8(selector), Reg16(selector)

	switch family {
	case FAMILY_MOV8:
		value := cpu.fetch()
		if !r8.Valid() {
			cpu.badParameter()
			return
		}
		cpu.setG8(r8, value)
	case FAMILY_MOV16:
		value := cpu.fetchWord()
		if !r16.Valid() {
			cpu.badParameter()
			return
		}
		*cpu.r16(r16) = value
	case FAMILY_PUSH8:
		if !r8.Valid() {
			cpu.badParameter()
			return
		}
		cpu.push8(cpu.getG8(r8))
	case FAMILY_PUSH16:
		if !r16.Valid() {
			cpu.badParameter()
			return
		}
		cpu.push16(cpu.r16(r16))
	case FAMILY_POP8:
		if !r8.Valid() {
			cpu.badParameter()
			return
		}
		cpu.setG8(r8, cpu.pop8())
	case FAMILY_POP16:
		if !r16.Valid() {
			cpu.badParameter()
			return
		}
		cpu.pop16(cpu.r16(r16))
	case FAMILY_ADD8:
		if !r8.Valid() {
			cpu.badParameter()
			return
		}
		value := cpu.fetch()
		reg := cpu.getG8(r8)
		p.setCarry(uint16(reg)+uint16(value) > 0xff)
		cpu.setG8(r8, reg+value)
		p.setZero(cpu.getG8(r8) == 0)
	case FAMILY_ADD16:
		if !r16.Valid() {
			cpu.badParameter()
			return
		}
		value := cpu.fetchWord()
		reg := cpu.r16(r16)
		p.setCarry(uint32(*reg)+uint32(value) > 0xffff)
		*reg += value
		p.setZero(*reg == 0)
	default:
		cpu.badOpCode()
	}
}
