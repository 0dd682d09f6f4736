// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package config loads the machine configuration from Lua chunks.
//
// A configuration file is a Lua script that assigns globals:
//
//	clock_rate  = 1000        -- instructions per second
//	memory_size = 65536       -- largest accepted program image, in bytes
//	input_path  = "-"         -- "-" is stdin
//	output_path = "-"         -- "-" is stdout
//	bin_path    = "prog.bin"
//	trace       = "ip == 0x100"  -- optional Starlark predicate
//	verbose     = false          -- optional
//
// The command line arguments are joined with spaces and run as a final
// chunk, so any global may be overridden there.
package config

import (
	"errors"
	"log"
	"math"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/ezrec/lvcpu/mem"
)

const (
	LOCAL_PATH   = "lvcpu.conf"      // Configuration in the working directory.
	SYSCONF_PATH = "/etc/lvcpu/conf" // System-wide configuration.

	STDIO_PATH = "-" // Path naming stdin or stdout.
)

// DefaultPaths lists the configuration files tried, in order. Only the
// first one found is run.
var DefaultPaths = []string{LOCAL_PATH, SYSCONF_PATH}

// Config is the machine configuration.
type Config struct {
	ClockRate  float64 // Instructions per second.
	MemorySize int     // Maximum program image size.
	InputPath  string  // IN endpoint path.
	OutputPath string  // OUT endpoint path.
	BinPath    string  // Program image path.
	Trace      string  // Starlark trace predicate.
	Verbose    bool    // Verbose logging.
}

// Loader runs configuration files and command line chunks.
type Loader struct {
	Verbose bool     // If set, enables verbose logging.
	Paths   []string // Configuration files to try.
}

// Load runs the default configuration files and then the args.
func Load(args []string) (cfg *Config, err error) {
	ld := &Loader{Paths: DefaultPaths}
	return ld.Load(args)
}

// Load runs the first configuration file found in ld.Paths, then the args
// joined as a single chunk, and reads the resulting globals.
func (ld *Loader) Load(args []string) (cfg *Config, err error) {
	L := lua.NewState()
	defer L.Close()

	found := false
	for _, path := range ld.Paths {
		var fn *lua.LFunction
		fn, err = L.LoadFile(path)
		if err != nil {
			var apiErr *lua.ApiError
			if errors.As(err, &apiErr) && apiErr.Type == lua.ApiErrorFile {
				if ld.Verbose {
					log.Printf("config: %v: %v", path, err)
				}
				err = nil
				continue
			}
			err = &ErrConfig{Key: path, Err: errors.Join(ErrConfigSyntax, err)}
			return
		}

		if ld.Verbose {
			log.Printf("config: running %v", path)
		}

		err = run(L, path, fn)
		if err != nil {
			return
		}
		found = true
		break
	}

	if !found {
		log.Printf("config: warning: did not find any configuration files")
	}

	fn, err := L.LoadString(strings.Join(args, " "))
	if err != nil {
		err = &ErrConfig{Key: "args", Err: errors.Join(ErrConfigSyntax, err)}
		return
	}

	err = run(L, "args", fn)
	if err != nil {
		return
	}

	cfg, err = read(L)

	return
}

func run(L *lua.LState, source string, fn *lua.LFunction) (err error) {
	L.Push(fn)
	err = L.PCall(0, lua.MultRet, nil)
	if err != nil {
		err = &ErrConfig{Key: source, Err: errors.Join(ErrConfigRuntime, err)}
	}

	return
}

// read collects the configuration globals.
func read(L *lua.LState) (cfg *Config, err error) {
	cfg = &Config{}

	var errs []error
	check := func(e error) {
		if e != nil {
			errs = append(errs, e)
		}
	}

	cfg.ClockRate, err = readNumber(L, "clock_rate")
	check(err)
	cfg.MemorySize, err = readInteger(L, "memory_size")
	check(err)
	cfg.InputPath, err = readString(L, "input_path", true)
	check(err)
	cfg.OutputPath, err = readString(L, "output_path", true)
	check(err)
	cfg.BinPath, err = readString(L, "bin_path", true)
	check(err)
	cfg.Trace, err = readString(L, "trace", false)
	check(err)
	cfg.Verbose, err = readBool(L, "verbose")
	check(err)

	err = errors.Join(errs...)
	if err != nil {
		cfg = nil
	}

	return
}

func readNumber(L *lua.LState, name string) (value float64, err error) {
	number, ok := L.GetGlobal(name).(lua.LNumber)
	if !ok {
		err = &ErrConfig{Key: name, Err: ErrConfigType("number")}
		return
	}

	value = float64(number)

	return
}

func readInteger(L *lua.LState, name string) (value int, err error) {
	number, ok := L.GetGlobal(name).(lua.LNumber)
	if !ok || math.Trunc(float64(number)) != float64(number) ||
		math.Abs(float64(number)) > math.MaxInt32 {
		err = &ErrConfig{Key: name, Err: ErrConfigType("integer")}
		return
	}

	value = int(number)

	return
}

func readString(L *lua.LState, name string, required bool) (value string, err error) {
	lv := L.GetGlobal(name)
	if lv == lua.LNil && !required {
		return
	}

	str, ok := lv.(lua.LString)
	if !ok {
		err = &ErrConfig{Key: name, Err: ErrConfigType("string")}
		return
	}

	value = string(str)

	return
}

func readBool(L *lua.LState, name string) (value bool, err error) {
	lv := L.GetGlobal(name)
	if lv == lua.LNil {
		return
	}

	b, ok := lv.(lua.LBool)
	if !ok {
		err = &ErrConfig{Key: name, Err: ErrConfigType("boolean")}
		return
	}

	value = bool(b)

	return
}

// Validate checks the ranges of the configuration values.
func (cfg *Config) Validate() (err error) {
	var errs []error

	if !(cfg.ClockRate > 0) || math.IsInf(cfg.ClockRate, 0) {
		errs = append(errs, &ErrConfig{Key: "clock_rate", Err: ErrConfigRange})
	}

	if cfg.MemorySize < 1 || cfg.MemorySize > mem.SIZE {
		errs = append(errs, &ErrConfig{Key: "memory_size", Err: ErrConfigRange})
	}

	if cfg.BinPath == STDIO_PATH && cfg.InputPath == STDIO_PATH {
		errs = append(errs, &ErrConfig{Key: "bin_path", Err: ErrConfigStdin})
	}

	err = errors.Join(errs...)

	return
}
