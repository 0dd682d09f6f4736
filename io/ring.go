package io

import (
	"io"
	"iter"
)

const (
	// RING_DEFAULT_CAPACITY is the default capacity in bytes for a new ring.
	RING_DEFAULT_CAPACITY = 65536
)

// Ring is an in-memory byte FIFO with separate read and write positions.
// Bytes written are retained until Rewind or Unmarshal, so a rewound ring
// replays everything written so far.
type Ring struct {
	Capacity int

	WriteIndex int
	ReadIndex  int
	Data       []uint8
}

var _ Channel = (*Ring)(nil)
var _ io.ReadWriter = (*Ring)(nil)

// Rewind resets the ring's read position to the start and write position to the end
// of existing data. Initializes the data buffer if not already allocated.
func (ring *Ring) Rewind() {
	if ring.Data == nil {
		if ring.Capacity == 0 {
			ring.Capacity = RING_DEFAULT_CAPACITY
		}
		ring.Data = make([]byte, 0, ring.Capacity)
	} else if ring.Capacity < len(ring.Data) {
		ring.Capacity = len(ring.Data)
	}

	ring.ReadIndex = 0
	ring.WriteIndex = len(ring.Data)
}

// Unmarshal loads ring data from a reader, replacing any existing data.
func (ring *Ring) Unmarshal(file io.Reader) (err error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return
	}

	ring.Data = data
	if ring.Capacity < len(data) {
		ring.Capacity = len(data)
	}
	ring.ReadIndex = 0
	ring.WriteIndex = len(ring.Data)

	return
}

// Marshal writes the ring's data to a writer up to the current write position.
func (ring *Ring) Marshal(file io.Writer) (err error) {
	_, err = file.Write(ring.Data[0:ring.WriteIndex])

	return
}

// Len returns the number of unread bytes.
func (ring *Ring) Len() int {
	if ring == nil {
		return 0
	}
	return ring.WriteIndex - ring.ReadIndex
}

// ReadByte returns the byte at the read position, or io.EOF if the ring
// has no unread data.
func (ring *Ring) ReadByte() (value byte, err error) {
	if ring == nil || ring.ReadIndex >= ring.WriteIndex {
		err = io.EOF
		return
	}

	value = ring.Data[ring.ReadIndex]
	ring.ReadIndex++

	return
}

// WriteByte appends a byte at the write position.
// Returns ErrChannelFull if the ring has reached capacity.
func (ring *Ring) WriteByte(value byte) (err error) {
	if ring == nil {
		err = ErrChannelFull
		return
	}

	if ring.Data == nil {
		ring.Rewind()
	}

	if ring.WriteIndex >= ring.Capacity {
		err = ErrChannelFull
		return
	}

	ring.Data = append(ring.Data[:ring.WriteIndex], value)
	ring.WriteIndex++

	return
}

// Read implements io.Reader over the unread bytes.
func (ring *Ring) Read(p []byte) (n int, err error) {
	if ring.Len() == 0 {
		err = io.EOF
		return
	}

	n = copy(p, ring.Data[ring.ReadIndex:ring.WriteIndex])
	ring.ReadIndex += n

	return
}

// Write implements io.Writer, stopping with ErrChannelFull at capacity.
func (ring *Ring) Write(p []byte) (n int, err error) {
	for _, value := range p {
		err = ring.WriteByte(value)
		if err != nil {
			return
		}
		n++
	}

	return
}

// Bytes returns an iterator that drains the unread bytes of the ring.
func (ring *Ring) Bytes() iter.Seq[byte] {
	return func(yield func(value byte) bool) {
		for {
			value, err := ring.ReadByte()
			if err != nil {
				return
			}
			if !yield(value) {
				return
			}
		}
	}
}
