package emulator

import (
	"errors"

	"github.com/ezrec/lvcpu/translate"
)

var f = translate.From

var (
	// Emulator errors
	ErrTrace = errors.New(f("trace predicate"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Ip  uint16
	Ic  uint8
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("ip 0x%04x ic %d: %v", err.Ip, err.Ic, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
