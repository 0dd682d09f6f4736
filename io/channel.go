// Package io provides the byte stream endpoints of the lvcpu machine.
// It includes sequential host streams (Tape), an in-memory FIFO (Ring),
// and boot images (Rom).
package io

// Channel defines the interface for all byte endpoints attached to the CPU.
type Channel interface {
	// Rewind resets the channel to its initial read position.
	Rewind()
	// ReadByte returns the next byte from the channel, or io.EOF.
	ReadByte() (byte, error)
	// WriteByte appends a single byte to the channel.
	WriteByte(value byte) error
}
