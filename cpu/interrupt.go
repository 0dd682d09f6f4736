package cpu

import (
	"log"
)

// Interrupt codes with a fixed meaning.
const (
	INT_FAULT        = uint8(0x0) // Bad opcode or bad parameter.
	INT_CLOCK        = uint8(0x1) // Periodic clock interrupt.
	INT_SOFT         = uint8(0x2) // Reserved for software.
	INT_DOUBLE_FAULT = uint8(0x3) // Fault while handling an interrupt.
)

const (
	INT_LEVEL_MAX    = 2    // Deepest interrupt nesting.
	INT_VECTOR_SIZE  = 16   // Bytes per interrupt handler slot.
	INT_TABLE_SIZE   = 2048 // Bytes per vector table, selected by T.
	INT_VECTOR_COUNT = INT_TABLE_SIZE / INT_VECTOR_SIZE
	INT_CLOCK_PERIOD = 256 // Instructions between clock interrupts.
)

// isSoftInterrupt returns true for the codes that are not redirected to the
// double fault vector at level 1.
func isSoftInterrupt(code uint8) bool {
	switch code {
	case INT_FAULT, INT_SOFT, INT_DOUBLE_FAULT:
		return true
	}
	return false
}

// VectorAddress returns the handler address of an interrupt code in
// vector table t.
func VectorAddress(code uint8, t uint8) uint16 {
	return INT_VECTOR_SIZE*uint16(code) + INT_TABLE_SIZE*uint16(t)
}

// RaiseInterrupt dispatches to the handler of an interrupt code.
// Nothing happens while interrupt handling is disabled. The return address
// is saved in the shadow A register; a handler that swaps banks must save
// it before overwriting it.
func (cpu *Cpu) RaiseInterrupt(code uint8) {
	if !cpu.InterruptHandling {
		return
	}

	if cpu.Level == INT_LEVEL_MAX {
		if cpu.Verbose {
			log.Printf("cpu: triple fault 0x%02x at 0x%04x, power off", code, cpu.Ip)
		}
		cpu.PowerOn = false
		return
	}

	cpu.Shadow.A = cpu.Ip
	if cpu.Level == 1 && !isSoftInterrupt(code) {
		code = INT_DOUBLE_FAULT
	}
	cpu.Ip = VectorAddress(code, cpu.T)
	cpu.Level++

	if cpu.Verbose {
		log.Printf("cpu: interrupt 0x%02x level %d, return 0x%04x", code, cpu.Level, cpu.Shadow.A)
	}
}

// InterruptLevel returns the current interrupt nesting depth.
func (cpu *Cpu) InterruptLevel() uint8 {
	return cpu.Level
}

func (cpu *Cpu) badOpCode() {
	cpu.RaiseInterrupt(INT_FAULT)
}

func (cpu *Cpu) badParameter() {
	cpu.RaiseInterrupt(INT_FAULT)
}

// returnFromInterrupt leaves the current interrupt level and resumes at the
// address held in the shadow A register. Returning outside of an interrupt
// is a fault.
func (cpu *Cpu) returnFromInterrupt() {
	if cpu.Level > 0 {
		cpu.Level--
	} else {
		cpu.badParameter()
	}
	cpu.Ip = cpu.Shadow.A
}

// clockInterruptPending returns true when the periodic clock interrupt is
// due, on each wrap of the instruction counter.
func (cpu *Cpu) clockInterruptPending() bool {
	return cpu.ClockInterrupt && cpu.Ic == 0
}
