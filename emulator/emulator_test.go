package emulator

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/lvcpu/config"
	"github.com/ezrec/lvcpu/cpu"
	"github.com/ezrec/lvcpu/io"
	"github.com/ezrec/lvcpu/mem"
)

var testConfig = config.Config{
	ClockRate:  1e9,
	MemorySize: mem.SIZE,
	InputPath:  "-",
	OutputPath: "-",
	BinPath:    "prog.bin",
}

// Prints "Hi" and halts.
var progHello = []byte{
	0x80, 'H', // mov8 al, 'H'
	0x61,      // out
	0x80, 'i', // mov8 al, 'i'
	0x61, // out
	0x70, // hlt
}

// Copies input to output until the input is exhausted.
var progCat = []byte{
	0x60,             // in
	0x61,             // out
	0x40, 0x00, 0x00, // jp 0x0000
}

func newTestEmulator(t *testing.T, cfg config.Config, image []byte, input []byte) (emu *Emulator, output *bytes.Buffer) {
	emu, err := NewEmulator(&cfg)
	if err != nil {
		t.Fatal(err)
	}

	emu.Rom.Data = image
	output = &bytes.Buffer{}
	emu.Tape.Input = bytes.NewReader(input)
	emu.Tape.Output = output

	err = emu.Reset()
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(&testConfig)
	assert.NoError(err)

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.True(emu.Cpu.IsOn())
	assert.Equal(mem.SIZE, emu.MemorySize)
}

func TestEmulator_BadConfig(t *testing.T) {
	assert := assert.New(t)

	cfg := testConfig
	cfg.ClockRate = 0

	emu, err := NewEmulator(&cfg)
	assert.Nil(emu)
	assert.ErrorIs(err, config.ErrConfigRange)
}

func TestEmulator_Defines(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(&testConfig)
	assert.NoError(err)

	defines := map[string]int{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}

	assert.Equal(mem.SIZE, defines["MEMORY_SIZE"])
	assert.Equal(int(cpu.FLAG_CARRY), defines["FLAG_CARRY"])
	assert.Equal(cpu.INT_TABLE_SIZE, defines["INT_TABLE_SIZE"])
}

func TestEmulator_Tick(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator(t, testConfig, progHello, nil)

	for n := range 4 {
		done, err := emu.Tick()
		assert.NoError(err)
		assert.False(done, "%d", n)
		assert.Equal(n+1, emu.Ticks())
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal("Hi", output.String())

	// Powered off, so nothing more happens.
	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(5, emu.Ticks())
}

func TestEmulator_Reset(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator(t, testConfig, progHello, nil)

	err := emu.Run(context.Background())
	assert.NoError(err)
	assert.False(emu.Cpu.IsOn())

	emu.Memory.Write(0x100, 0xaa)

	err = emu.Reset()
	assert.NoError(err)
	assert.True(emu.Cpu.IsOn())
	assert.Equal(uint16(0), emu.Cpu.Ip)
	assert.Equal(uint8(0), emu.Memory.Read(0x100))
	assert.Equal(progHello[0], emu.Memory.Read(0))

	err = emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal("HiHi", output.String())
}

func TestEmulator_ImageSize(t *testing.T) {
	assert := assert.New(t)

	cfg := testConfig
	cfg.MemorySize = 4

	emu, err := NewEmulator(&cfg)
	assert.NoError(err)

	emu.Rom.Data = progHello
	err = emu.Reset()
	assert.ErrorIs(err, &mem.ErrImageSize{})

	emu.Rom.Data = progHello[:4]
	err = emu.Reset()
	assert.NoError(err)
}

func TestEmulator_Run(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator(t, testConfig, progCat, []byte("hello, world\n"))

	err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal("hello, world\n", output.String())
	assert.Equal(13, emu.Tape.Received)
	assert.Equal(13, emu.Tape.Sent)

	// Input exhaustion is not a power off.
	assert.True(emu.Cpu.IsOn())
}

func TestEmulator_Run_Ring(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newTestEmulator(t, testConfig, progCat, nil)

	input := &io.Ring{}
	input.Unmarshal(bytes.NewReader([]byte("loop")))
	output := &io.Ring{Capacity: 2}
	emu.Tape.Input = input
	emu.Tape.Output = output

	err := emu.Run(context.Background())
	assert.ErrorIs(err, cpu.ErrOutput)
	assert.ErrorIs(err, io.ErrChannelFull)
	assert.Equal([]byte("lo"), output.Data)

	var rerr *ErrRuntime
	if assert.ErrorAs(err, &rerr) {
		assert.Equal(uint16(1), rerr.Ip)
	}
}

func TestEmulator_Run_Cancel(t *testing.T) {
	assert := assert.New(t)

	// jp 0x0000
	emu, _ := newTestEmulator(t, testConfig, []byte{0x40, 0x00, 0x00}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := emu.Run(ctx)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(0, emu.Ticks())

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err = emu.Run(ctx)
	assert.ErrorIs(err, context.DeadlineExceeded)
	assert.True(emu.Cpu.IsOn())
}

func TestEmulator_OutputClosed(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newTestEmulator(t, testConfig, progHello, nil)
	emu.Tape.Output = nil

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)

	done, err = emu.Tick()
	assert.False(done)
	assert.ErrorIs(err, cpu.ErrOutput)
	assert.ErrorIs(err, io.ErrChannelClosed)

	var rerr *ErrRuntime
	if assert.ErrorAs(err, &rerr) {
		assert.Equal(uint16(2), rerr.Ip)
		assert.Equal(uint8(1), rerr.Ic)
	}
}

func TestEmulator_Trace(t *testing.T) {
	assert := assert.New(t)

	var logged bytes.Buffer
	log.SetOutput(&logged)
	defer log.SetOutput(os.Stderr)

	cfg := testConfig
	cfg.Trace = "ip == 3 and al == 0x48"

	emu, output := newTestEmulator(t, cfg, progHello, nil)

	err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal("Hi", output.String())

	text := logged.String()
	assert.Contains(text, "emulator: trace ip == 3")
	assert.Contains(text, "  al: 48\n")
	assert.Equal(1, bytes.Count(logged.Bytes(), []byte("emulator: trace")))
}

func TestEmulator_Trace_Level(t *testing.T) {
	assert := assert.New(t)

	var logged bytes.Buffer
	log.SetOutput(&logged)
	defer log.SetOutput(os.Stderr)

	// ei; int 0x05; handler at the vector halts.
	image := make([]byte, cpu.VectorAddress(5, 0)+1)
	copy(image, []byte{0x50, 0x4a, 0x05})
	image[cpu.VectorAddress(5, 0)] = 0x70

	cfg := testConfig
	cfg.Trace = "il == 1"

	emu, _ := newTestEmulator(t, cfg, image, nil)

	err := emu.Run(context.Background())
	assert.NoError(err)
	assert.False(emu.Cpu.IsOn())
	assert.Equal(3, emu.Ticks())

	assert.Equal(1, bytes.Count(logged.Bytes(), []byte("emulator: trace il == 1")))
	assert.Contains(logged.String(), "  il: 1\n")
}

func TestEmulator_Ticks(t *testing.T) {
	assert := assert.New(t)

	// jp 0x0000
	emu, _ := newTestEmulator(t, testConfig, []byte{0x40, 0x00, 0x00}, nil)

	for range 300 {
		done, err := emu.Tick()
		assert.NoError(err)
		assert.False(done)
	}

	assert.Equal(300, emu.Ticks())
	assert.Equal(uint8(300%256), emu.Cpu.Ic)

	err := emu.Reset()
	assert.NoError(err)
	assert.Equal(0, emu.Ticks())
}

func TestEmulator_Trace_Invalid(t *testing.T) {
	table := []string{
		"ip ==",
		"no_such_register > 1",
	}

	for _, trace := range table {
		assert := assert.New(t)

		cfg := testConfig
		cfg.Trace = trace

		emu, err := NewEmulator(&cfg)
		assert.Nil(emu, trace)
		assert.ErrorIs(err, ErrTrace, trace)
	}
}
