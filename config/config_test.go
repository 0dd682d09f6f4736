package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testArgs = []string{
	`clock_rate=1000`,
	`memory_size=256`,
	`input_path="-"`,
	`output_path="out.txt"`,
	`bin_path="prog.bin"`,
}

func writeConf(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "lvcpu.conf")
	err := os.WriteFile(path, []byte(text), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Args(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}
	cfg, err := ld.Load(testArgs)
	assert.NoError(err)
	if assert.NotNil(cfg) {
		assert.Equal(1000.0, cfg.ClockRate)
		assert.Equal(256, cfg.MemorySize)
		assert.Equal("-", cfg.InputPath)
		assert.Equal("out.txt", cfg.OutputPath)
		assert.Equal("prog.bin", cfg.BinPath)
		assert.Equal("", cfg.Trace)
		assert.False(cfg.Verbose)
		assert.NoError(cfg.Validate())
	}
}

func TestLoad_File(t *testing.T) {
	assert := assert.New(t)

	conf := writeConf(t, `
clock_rate = 50 * 2
memory_size = 1024
input_path = "in.txt"
output_path = "-"
bin_path = "boot.bin"
verbose = true
trace = "ip == 0x10"
`)

	missing := filepath.Join(t.TempDir(), "missing.conf")

	ld := &Loader{Paths: []string{missing, conf}}
	cfg, err := ld.Load([]string{`memory_size=512`})
	assert.NoError(err)
	if assert.NotNil(cfg) {
		assert.Equal(100.0, cfg.ClockRate)
		// Arguments override the file.
		assert.Equal(512, cfg.MemorySize)
		assert.Equal("in.txt", cfg.InputPath)
		assert.Equal("-", cfg.OutputPath)
		assert.Equal("boot.bin", cfg.BinPath)
		assert.Equal("ip == 0x10", cfg.Trace)
		assert.True(cfg.Verbose)
	}
}

func TestLoad_FirstFileOnly(t *testing.T) {
	assert := assert.New(t)

	first := writeConf(t, `clock_rate = 1`)
	second := writeConf(t, `memory_size = 2`)

	ld := &Loader{Paths: []string{first, second}}
	_, err := ld.Load(nil)

	var cerr *ErrConfig
	assert.ErrorAs(err, &cerr)
	assert.ErrorIs(err, ErrConfigType("integer"))
}

func TestLoad_Types(t *testing.T) {
	table := [](struct {
		args []string
		key  string
	}){
		{[]string{`clock_rate="fast"`}, "clock_rate"},
		{[]string{`memory_size=1.5`}, "memory_size"},
		{[]string{`memory_size="big"`}, "memory_size"},
		{[]string{`bin_path=7`}, "bin_path"},
		{[]string{`input_path=nil`}, "input_path"},
		{[]string{`output_path=true`}, "output_path"},
		{[]string{`trace=1`}, "trace"},
		{[]string{`verbose="yes"`}, "verbose"},
	}

	for _, entry := range table {
		assert := assert.New(t)

		args := append(append([]string{}, testArgs...), entry.args...)
		cfg, err := (&Loader{}).Load(args)
		assert.Nil(cfg, "%v", entry.args)
		assert.ErrorIs(err, ErrConfigType(""), "%v", entry.args)
		assert.ErrorContains(err, entry.key, "%v", entry.args)
	}
}

func TestLoad_Missing(t *testing.T) {
	assert := assert.New(t)

	_, err := (&Loader{}).Load(nil)
	assert.ErrorIs(err, ErrConfigType("number"))
	assert.ErrorContains(err, "clock_rate")
	assert.ErrorContains(err, "memory_size")
	assert.ErrorContains(err, "bin_path")
}

func TestLoad_Syntax(t *testing.T) {
	assert := assert.New(t)

	_, err := (&Loader{}).Load([]string{`clock_rate = = 3`})
	assert.ErrorIs(err, ErrConfigSyntax)

	conf := writeConf(t, `memory_size = (`)
	_, err = (&Loader{Paths: []string{conf}}).Load(testArgs)
	assert.ErrorIs(err, ErrConfigSyntax)

	var cerr *ErrConfig
	if assert.ErrorAs(err, &cerr) {
		assert.Equal(conf, cerr.Key)
	}
}

func TestLoad_Runtime(t *testing.T) {
	assert := assert.New(t)

	_, err := (&Loader{}).Load([]string{`error("boom")`})
	assert.ErrorIs(err, ErrConfigRuntime)
	assert.ErrorContains(err, "boom")

	conf := writeConf(t, `local x = nil; x.y = 1`)
	_, err = (&Loader{Paths: []string{conf}}).Load(testArgs)
	assert.ErrorIs(err, ErrConfigRuntime)
}

func TestValidate(t *testing.T) {
	good := Config{
		ClockRate:  10,
		MemorySize: 65536,
		InputPath:  "-",
		OutputPath: "-",
		BinPath:    "prog.bin",
	}

	table := [](struct {
		modify func(cfg *Config)
		key    string
		err    error
	}){
		{func(cfg *Config) {}, "", nil},
		{func(cfg *Config) { cfg.ClockRate = 0 }, "clock_rate", ErrConfigRange},
		{func(cfg *Config) { cfg.ClockRate = -1 }, "clock_rate", ErrConfigRange},
		{func(cfg *Config) { cfg.MemorySize = 0 }, "memory_size", ErrConfigRange},
		{func(cfg *Config) { cfg.MemorySize = 65537 }, "memory_size", ErrConfigRange},
		{func(cfg *Config) { cfg.BinPath = "-" }, "bin_path", ErrConfigStdin},
	}

	for _, entry := range table {
		assert := assert.New(t)

		cfg := good
		entry.modify(&cfg)
		err := cfg.Validate()
		if entry.err == nil {
			assert.NoError(err)
			continue
		}

		assert.ErrorIs(err, entry.err, entry.key)
		assert.ErrorContains(err, entry.key)
	}
}
