package mem

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()

	for _, addr := range []uint16{0, 1, 0x7fff, 0x8000, 0xfffe, 0xffff} {
		assert.Equal(uint8(0), m.Read(addr))
		m.Write(addr, uint8(addr>>8)^0x5a)
		assert.Equal(uint8(addr>>8)^0x5a, m.Read(addr))
	}
}

func TestMemory_Wrap(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()

	addr := uint16(0xffff)
	m.Write(addr, 0x12)
	addr++
	m.Write(addr, 0x34)

	assert.Equal(uint8(0x12), m.Data[0xffff])
	assert.Equal(uint8(0x34), m.Data[0x0000])
}

func TestMemory_Reset(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()
	m.Write(0x1234, 0xff)
	m.Reset()

	assert.Equal(uint8(0), m.Read(0x1234))
}

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		image []byte
		limit int
		n     int
		fails bool
	}){
		{"empty", []byte{}, 0, 0, false},
		{"small", []byte{0x8c, 0x05, 0x70}, 0, 3, false},
		{"exact", []byte{1, 2, 3, 4}, 4, 4, false},
		{"over", []byte{1, 2, 3, 4, 5}, 4, 0, true},
		{"full", make([]byte, SIZE), SIZE, SIZE, false},
		{"too_big", make([]byte, SIZE+1), -1, 0, true},
	}

	for _, entry := range table {
		m := NewMemory()
		m.Write(0xffff, 0xee)

		n, err := m.Load(bytes.NewReader(entry.image), entry.limit)
		if entry.fails {
			assert.Error(err, entry.name)
			assert.True(errors.Is(err, &ErrImageSize{}), entry.name)
			continue
		}
		assert.NoError(err, entry.name)
		assert.Equal(entry.n, n, entry.name)
		for addr, value := range entry.image {
			assert.Equal(value, m.Read(uint16(addr)), entry.name)
		}
		if len(entry.image) < SIZE {
			assert.Equal(uint8(0xee), m.Read(0xffff), entry.name)
		}
	}
}
