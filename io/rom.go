package io

import (
	"io"
)

// Rom is a read-only boot image.
// It is consumed either byte by byte as a Channel or as an io.Reader.
type Rom struct {
	Data []uint8

	offset int
}

var _ Channel = (*Rom)(nil)
var _ io.Reader = (*Rom)(nil)

// Unmarshal loads the image from a reader, replacing any existing data.
func (rc *Rom) Unmarshal(file io.Reader) (err error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return
	}

	rc.Data = data
	rc.offset = 0

	return
}

// Rewind restarts reading at the beginning of the image.
func (rc *Rom) Rewind() {
	rc.offset = 0
}

// ReadByte returns the next image byte.
func (rc *Rom) ReadByte() (value byte, err error) {
	if rc.offset >= len(rc.Data) {
		err = io.EOF
		return
	}

	value = rc.Data[rc.offset]
	rc.offset++

	return
}

// Read implements io.Reader over the remaining image bytes.
func (rc *Rom) Read(p []byte) (n int, err error) {
	if rc.offset >= len(rc.Data) {
		err = io.EOF
		return
	}

	n = copy(p, rc.Data[rc.offset:])
	rc.offset += n

	return
}

// WriteByte always fails; a Rom is read-only.
func (rc *Rom) WriteByte(value byte) error {
	return ErrChannelFull
}
