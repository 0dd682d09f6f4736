// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
)

// Memory is the byte addressable store the CPU executes from.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// Input produces a byte for the IN instruction. It may block.
type Input io.ByteReader

// Output consumes a byte from the OUT instruction. It may block.
type Output io.ByteWriter

var _cpu_defines = map[string]int{
	"FLAG_ZERO":        int(FLAG_ZERO),
	"FLAG_CARRY":       int(FLAG_CARRY),
	"INT_FAULT":        int(INT_FAULT),
	"INT_CLOCK":        int(INT_CLOCK),
	"INT_SOFT":         int(INT_SOFT),
	"INT_DOUBLE_FAULT": int(INT_DOUBLE_FAULT),
	"INT_LEVEL_MAX":    INT_LEVEL_MAX,
	"INT_VECTOR_SIZE":  INT_VECTOR_SIZE,
	"INT_TABLE_SIZE":   INT_TABLE_SIZE,
	"INT_VECTOR_COUNT": INT_VECTOR_COUNT,
}

// register describes one named value of the diagnostic dump.
type register struct {
	name  string
	width int // Hex digits.
	value func(cpu *Cpu) int
}

func boolInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func bankRegisters(suffix string, bank func(cpu *Cpu) *Bank) []register {
	return []register{
		{"a" + suffix, 4, func(cpu *Cpu) int { return int(bank(cpu).A) }},
		{"c" + suffix, 4, func(cpu *Cpu) int { return int(bank(cpu).C) }},
		{"al" + suffix, 2, func(cpu *Cpu) int { return int(lowByte(bank(cpu).A)) }},
		{"ah" + suffix, 2, func(cpu *Cpu) int { return int(highByte(bank(cpu).A)) }},
		{"cl" + suffix, 2, func(cpu *Cpu) int { return int(lowByte(bank(cpu).C)) }},
		{"ch" + suffix, 2, func(cpu *Cpu) int { return int(highByte(bank(cpu).C)) }},
		{"f" + suffix, 2, func(cpu *Cpu) int { return int(bank(cpu).F) }},
		{"sp" + suffix, 4, func(cpu *Cpu) int { return int(bank(cpu).SP) }},
		{"bp" + suffix, 4, func(cpu *Cpu) int { return int(bank(cpu).BP) }},
	}
}

var _registers = append(append(
	bankRegisters("", func(cpu *Cpu) *Bank { return &cpu.Primary }),
	bankRegisters("_", func(cpu *Cpu) *Bank { return &cpu.Shadow })...),
	register{"ip", 4, func(cpu *Cpu) int { return int(cpu.Ip) }},
	register{"ic", 2, func(cpu *Cpu) int { return int(cpu.Ic) }},
	register{"t", 2, func(cpu *Cpu) int { return int(cpu.T) }},
	register{"ih", 1, func(cpu *Cpu) int { return boolInt(cpu.InterruptHandling) }},
	register{"il", 1, func(cpu *Cpu) int { return int(cpu.Level) }},
	register{"ci", 1, func(cpu *Cpu) int { return boolInt(cpu.ClockInterrupt) }},
	register{"po", 1, func(cpu *Cpu) int { return boolInt(cpu.PowerOn) }},
)

// Cpu is the simulation context of the lvcpu processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Primary Bank // Active register bank.
	Shadow  Bank // Alternate register bank, swapped in by SWP.

	Ip uint16 // Next fetch address.
	Ic uint8  // Instructions executed, modulo 256.
	T  uint8  // Interrupt vector table selector.

	Level             uint8 // Interrupt nesting depth.
	InterruptHandling bool  // Interrupts are dispatched when set.
	ClockInterrupt    bool  // Periodic clock interrupt is enabled.
	PowerOn           bool  // Cleared by HLT or a triple fault.

	Clock *Clock // Fetch pacing.

	mem    Memory
	input  Input
	output Output
}

// NewCpu creates a powered on CPU executing from m at clockRate
// instructions per second.
func NewCpu(m Memory, clockRate float64, input Input, output Output) (cpu *Cpu, err error) {
	clock, err := NewClock(clockRate)
	if err != nil {
		return
	}

	cpu = &Cpu{
		Clock:   clock,
		PowerOn: true,
		mem:     m,
		input:   input,
		output:  output,
	}

	return
}

// Defines returns an iterator over the named machine constants.
func (cpu *Cpu) Defines() iter.Seq2[string, int] {
	return maps.All(_cpu_defines)
}

// Registers returns an iterator over every named register value.
func (cpu *Cpu) Registers() iter.Seq2[string, int] {
	return func(yield func(name string, value int) bool) {
		for _, reg := range _registers {
			if !yield(reg.name, reg.value(cpu)) {
				return
			}
		}
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for _, reg := range _registers {
		text += fmt.Sprintf("% 4s: %0*x\n", reg.name, reg.width, reg.value(cpu))
	}

	return
}

// Reset the CPU state.
// - Clears both register banks, IP, IC and T.
// - Disables interrupts and the clock interrupt.
// - Powers on, and restarts the clock schedule.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Primary = Bank{}
	cpu.Shadow = Bank{}
	cpu.Ip = 0
	cpu.Ic = 0
	cpu.T = 0
	cpu.Level = 0
	cpu.InterruptHandling = false
	cpu.ClockInterrupt = false
	cpu.PowerOn = true
	cpu.Clock.Reset()
}

// IsOn returns false once the CPU has halted.
func (cpu *Cpu) IsOn() bool {
	return cpu.PowerOn
}

// fetch reads the byte at IP and advances IP, after pacing the clock.
func (cpu *Cpu) fetch() (value uint8) {
	cpu.Clock.Tick()
	value = cpu.mem.Read(cpu.Ip)
	cpu.Ip++
	return
}

// Step executes a single instruction.
//
// Guest faults are dispatched as interrupts and are not errors. Errors
// are returned only for a powered off CPU and for failing I/O endpoints.
func (cpu *Cpu) Step() (err error) {
	if !cpu.PowerOn {
		err = ErrPowerOff
		return
	}

	if cpu.clockInterruptPending() {
		cpu.RaiseInterrupt(INT_CLOCK)
	}

	if cpu.Verbose {
		text, _ := Disassemble(cpu.mem, cpu.Ip)
		log.Printf("%04x: %v", cpu.Ip, text)
	}

	code := cpu.fetch()
	if Opcode(code) <= OP_HLT {
		err = cpu.execByte(Opcode(code))
	} else {
		family, selector := splitNibbles(code)
		cpu.execNibble(Family(family), selector)
	}

	cpu.Ic++

	return
}
