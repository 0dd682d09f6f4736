// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"iter"
	"log"
	"maps"

	goio "io"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/lvcpu/config"
	"github.com/ezrec/lvcpu/cpu"
	"github.com/ezrec/lvcpu/internal"
	"github.com/ezrec/lvcpu/io"
	"github.com/ezrec/lvcpu/mem"
)

var _emulator_defines = map[string]int{
	"MEMORY_SIZE": mem.SIZE,
}

// Emulator state. CPU + memory + IO channels.
type Emulator struct {
	Verbose    bool       // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Memory     mem.Memory // Main memory.
	MemorySize int        // Largest accepted boot image.
	Trace      string     // Starlark predicate; when true the CPU state is logged.

	Tape io.Tape // Tape IO channel, used by IN and OUT.
	Rom  io.Rom  // Boot image.

	ticks int
}

// NewEmulator creates a new emulator from a configuration.
func NewEmulator(cfg *config.Config) (emu *Emulator, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}

	emu = &Emulator{
		Verbose:    cfg.Verbose,
		MemorySize: cfg.MemorySize,
		Trace:      cfg.Trace,
	}

	emu.Cpu, err = cpu.NewCpu(&emu.Memory, cfg.ClockRate, &emu.Tape, &emu.Tape)
	if err != nil {
		emu = nil
		return
	}

	// Reject a broken trace predicate up front.
	_, err = emu.traceHit()
	if err != nil {
		emu = nil
		return
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, int] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset clears memory, loads the boot image at address 0, and resets the CPU.
func (emu *Emulator) Reset() (err error) {
	emu.Memory.Verbose = emu.Verbose
	emu.Memory.Reset()

	emu.Rom.Rewind()
	n, err := emu.Memory.Load(&emu.Rom, emu.MemorySize)
	if err != nil {
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.ticks = 0

	if emu.Verbose {
		log.Printf("emulator: reset, %d byte image", n)
	}

	return
}

// Ticks returns the total instructions executed since a reset.
// Unlike the 8-bit IC register it does not wrap.
func (emu *Emulator) Ticks() int {
	return emu.ticks
}

// traceHit evaluates the trace predicate against the current registers.
func (emu *Emulator) traceHit() (hit bool, err error) {
	if len(emu.Trace) == 0 {
		return
	}

	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, value := range internal.IterSeq2Concat(emu.Cpu.Registers(), emu.Defines()) {
		pred[key] = starlark.MakeInt(value)
	}

	prog := "rc=" + emu.Trace + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "trace", prog, pred)
	if err != nil {
		err = errors.Join(ErrTrace, err)
		return
	}

	hit = bool(dict["rc"].Truth())

	return
}

// Tick performs a single instruction of the emulator.
// done is set once the CPU powers off, or the input is exhausted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	ip := emu.Cpu.Ip
	ic := emu.Cpu.Ic
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, Ic: ic, Err: err}
		}
	}()

	if !emu.Cpu.IsOn() {
		done = true
		return
	}

	hit, err := emu.traceHit()
	if err != nil {
		return
	}
	if hit {
		log.Printf("emulator: trace %v\n%v", emu.Trace, emu.Cpu.String())
	}

	err = emu.Cpu.Step()
	emu.ticks++
	if errors.Is(err, cpu.ErrInput) && errors.Is(err, goio.EOF) {
		if emu.Verbose {
			log.Printf("emulator: input exhausted at 0x%04x", ip)
		}
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	done = !emu.Cpu.IsOn()

	return
}

// Run ticks the emulator until it is done, an error occurs, or ctx is
// cancelled. Cancellation is only noticed between instructions.
// The output tape is always flushed.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	defer func() {
		ferr := emu.Tape.Flush()
		if err == nil {
			err = ferr
		}
	}()

	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
