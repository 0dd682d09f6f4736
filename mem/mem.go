// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package mem implements the 64KiB byte addressable memory of the lvcpu
// machine.
package mem

import (
	"io"
	"log"
)

const (
	SIZE = 1 << 16 // Bytes addressable by a 16-bit address.
)

// Memory is a flat 64KiB store. Every 16-bit address is valid.
type Memory struct {
	Verbose bool // If set, enables verbose logging.

	Data [SIZE]uint8
}

// NewMemory creates a zeroed memory.
func NewMemory() (m *Memory) {
	m = &Memory{}

	return
}

// Read the byte at addr.
func (m *Memory) Read(addr uint16) uint8 {
	return m.Data[addr]
}

// Write value at addr.
func (m *Memory) Write(addr uint16, value uint8) {
	m.Data[addr] = value
}

// Reset zeroes the memory.
func (m *Memory) Reset() {
	clear(m.Data[:])
}

// Load copies an image from r into memory, starting at address 0.
// At most limit bytes are accepted; a limit outside of (0, SIZE] means
// SIZE. Bytes past the end of the image are left untouched.
func (m *Memory) Load(r io.Reader, limit int) (n int, err error) {
	if limit <= 0 || limit > SIZE {
		limit = SIZE
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return
	}

	if len(data) > limit {
		err = &ErrImageSize{Limit: limit}
		return
	}

	n = copy(m.Data[:], data)

	if m.Verbose {
		log.Printf("mem: loaded %d bytes", n)
	}

	return
}
