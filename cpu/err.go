package cpu

import (
	"errors"

	"github.com/ezrec/lvcpu/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrPowerOff = errors.New(f("power off"))
	ErrInput    = errors.New(f("input"))
	ErrOutput   = errors.New(f("output"))
)

// ErrClockRate indicates a clock rate that is not a positive, finite number,
// or is too slow for its period to be represented.
type ErrClockRate float64

func (err ErrClockRate) Error() string {
	return f("clock rate %v out of range", float64(err))
}

func (err ErrClockRate) Is(target error) (ok bool) {
	_, ok = target.(ErrClockRate)
	return
}
