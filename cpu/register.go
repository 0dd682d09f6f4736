package cpu

// Flag bits of the F register.
const (
	FLAG_ZERO  = uint8(1 << 0)
	FLAG_CARRY = uint8(1 << 1)
)

// Bank is one of the two general register banks.
type Bank struct {
	A  uint16 // Accumulator.
	C  uint16 // Counter.
	F  uint8  // Flags.
	SP uint16 // Stack pointer.
	BP uint16 // Base pointer.
}

// Zero returns the zero flag.
func (b *Bank) Zero() bool {
	return b.F&FLAG_ZERO != 0
}

// Carry returns the carry flag.
func (b *Bank) Carry() bool {
	return b.F&FLAG_CARRY != 0
}

func (b *Bank) setFlag(flag uint8, state bool) {
	if state {
		b.F |= flag
	} else {
		b.F &^= flag
	}
}

func (b *Bank) setZero(state bool) {
	b.setFlag(FLAG_ZERO, state)
}

func (b *Bank) setCarry(state bool) {
	b.setFlag(FLAG_CARRY, state)
}

// getG8 reads a half register of the primary bank.
// Reading CH returns the high byte of A.
func (cpu *Cpu) getG8(r Reg8) uint8 {
	p := &cpu.Primary
	switch r {
	case REG8_AL:
		return lowByte(p.A)
	case REG8_AH:
		return highByte(p.A)
	case REG8_CL:
		return lowByte(p.C)
	case REG8_CH:
		return highByte(p.A)
	}
	panic("unknown g8 register")
}

// setG8 writes a half register of the primary bank.
func (cpu *Cpu) setG8(r Reg8, value uint8) {
	p := &cpu.Primary
	switch r {
	case REG8_AL:
		p.A = makeWord(value, highByte(p.A))
	case REG8_AH:
		p.A = makeWord(lowByte(p.A), value)
	case REG8_CL:
		p.C = makeWord(value, highByte(p.C))
	case REG8_CH:
		p.C = makeWord(lowByte(p.C), value)
	default:
		panic("unknown g8 register")
	}
}

// r16 returns the primary bank register named by r.
func (cpu *Cpu) r16(r Reg16) *uint16 {
	p := &cpu.Primary
	switch r {
	case REG16_A:
		return &p.A
	case REG16_C:
		return &p.C
	case REG16_SP:
		return &p.SP
	case REG16_BP:
		return &p.BP
	}
	panic("unknown r16 register")
}
