// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/ezrec/lvcpu/config"
	"github.com/ezrec/lvcpu/emulator"
)

func main() {
	var conf string
	var verbose bool

	flag.StringVar(&conf, "conf", "", "Configuration file (default lvcpu.conf, then "+config.SYSCONF_PATH+")")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	ld := &config.Loader{Verbose: verbose, Paths: config.DefaultPaths}
	if len(conf) != 0 {
		ld.Paths = []string{conf}
	}

	// Remaining arguments are Lua statements, ie: clock_rate=1000 bin_path="boot.bin"
	cfg, err := ld.Load(flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	cfg.Verbose = cfg.Verbose || verbose

	err = run(cfg)
	if err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config) (err error) {
	emu, err := emulator.NewEmulator(cfg)
	if err != nil {
		return
	}

	// Boot image.
	if cfg.BinPath == config.STDIO_PATH {
		err = emu.Rom.Unmarshal(os.Stdin)
	} else {
		var inf *os.File
		inf, err = os.Open(cfg.BinPath)
		if err != nil {
			return
		}
		err = emu.Rom.Unmarshal(inf)
		inf.Close()
	}
	if err != nil {
		return
	}

	if cfg.InputPath == config.STDIO_PATH {
		emu.Tape.Input = os.Stdin

		// Deliver keystrokes to IN as they are typed.
		var restore func()
		restore, err = enterCharMode(int(os.Stdin.Fd()))
		if err != nil {
			return
		}
		defer restore()
	} else {
		var inf *os.File
		inf, err = os.Open(cfg.InputPath)
		if err != nil {
			return
		}
		defer inf.Close()
		emu.Tape.Input = bufio.NewReader(inf)
	}

	if cfg.OutputPath == config.STDIO_PATH {
		emu.Tape.Output = os.Stdout
	} else {
		var ouf *os.File
		ouf, err = os.Create(cfg.OutputPath)
		if err != nil {
			return
		}
		defer ouf.Close()
		emu.Tape.Output = bufio.NewWriter(ouf)
	}

	err = emu.Reset()
	if err != nil {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = emu.Run(ctx)
	if err != nil {
		return
	}

	if cfg.Verbose {
		log.Printf("lvcpu: %d bytes in, %d bytes out", emu.Tape.Received, emu.Tape.Sent)
	}

	return
}
