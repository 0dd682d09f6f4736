package io

import (
	"io"
)

// Tape provides sequential byte I/O over host streams.
// Reads are unbuffered, so an interactive Input yields each byte as soon
// as the host delivers it.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	// Received and Sent count the bytes moved through the tape.
	Received int
	Sent     int
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// ReadByte reads one byte from the input stream.
func (tc *Tape) ReadByte() (value byte, err error) {
	if tc.Input == nil {
		err = io.EOF
		return
	}

	var one [1]byte
	for {
		var n int
		n, err = tc.Input.Read(one[:])
		if n == 1 {
			// A reader may return data alongside io.EOF.
			err = nil
			break
		}
		if err != nil {
			return
		}
	}

	value = one[0]
	tc.Received++

	return
}

// WriteByte writes one byte to the output stream.
func (tc *Tape) WriteByte(value byte) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	_, err = tc.Output.Write([]byte{value})
	if err != nil {
		return
	}

	tc.Sent++

	return
}

// Flush flushes the output stream, if it supports flushing.
func (tc *Tape) Flush() (err error) {
	if flusher, ok := tc.Output.(interface{ Flush() error }); ok {
		err = flusher.Flush()
	}

	return
}
