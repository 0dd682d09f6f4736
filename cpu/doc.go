// Package cpu implements the processor of the lvcpu machine.
//
// The CPU consists of two register banks (primary and shadow) of A, C, F, SP
// and BP, a bank independent instruction pointer (IP), an 8-bit
// instruction counter (IC) and an interrupt vector table selector (T).
// Interrupts nest at most two deep; a second level fault is redirected to
// the double fault vector, and a third halts the machine.
//
// Execution is paced by a Clock that throttles instruction fetches to a
// configured rate.
package cpu
