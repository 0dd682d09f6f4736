package cpu

// The stack grows down from SP of the primary bank. Words are stored
// little endian, low byte at SP.

func (cpu *Cpu) push8(value uint8) {
	cpu.Primary.SP--
	cpu.mem.Write(cpu.Primary.SP, value)
}

func (cpu *Cpu) pop8() (value uint8) {
	value = cpu.mem.Read(cpu.Primary.SP)
	cpu.Primary.SP++
	return
}

// push16 pushes the value of reg after SP is decremented, so pushing SP
// stores its new value.
func (cpu *Cpu) push16(reg *uint16) {
	cpu.Primary.SP -= 2
	cpu.writeWord(cpu.Primary.SP, *reg)
}

// pop16 stores the word at SP into reg, then advances SP, so popping SP
// leaves it two past the popped value.
func (cpu *Cpu) pop16(reg *uint16) {
	*reg = cpu.readWord(cpu.Primary.SP)
	cpu.Primary.SP += 2
}
