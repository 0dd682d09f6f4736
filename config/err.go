package config

import (
	"errors"

	"github.com/ezrec/lvcpu/translate"
)

var f = translate.From

var (
	// Configuration errors
	ErrConfigSyntax  = errors.New(f("syntax error"))
	ErrConfigRuntime = errors.New(f("runtime error"))
	ErrConfigRange   = errors.New(f("value out of range"))
	ErrConfigStdin   = errors.New(f("stdin used more than once"))
)

// ErrConfigType indicates a global of the wrong Lua type.
// The value names the expected type.
type ErrConfigType string

func (err ErrConfigType) Error() string {
	return f("must be %v", string(err))
}

func (err ErrConfigType) Is(target error) (ok bool) {
	_, ok = target.(ErrConfigType)
	return
}

// ErrConfig indicates which configuration key or source failed.
type ErrConfig struct {
	Key string
	Err error
}

func (err *ErrConfig) Error() string {
	return f("conf: %v: %v", err.Key, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}
