package cpu

import (
	"math"
	"time"
)

const (
	CLOCK_RESOLUTION = 20 * time.Millisecond // Coarsest pacing period.
	CLOCK_SCALE      = 50                    // Fetches per second per multiplier step.
)

// Clock paces instruction fetches to a rate of instructions per second.
//
// Timer resolution is coarser than the per-fetch interval at high rates,
// so the clock lets Multiplier() fetches through and then busy-waits until
// the next Period() boundary.
type Clock struct {
	period     time.Duration
	multiplier uint
	stage      uint
	next       time.Time

	now func() time.Time
}

// NewClock creates a clock for a rate in fetches per second.
func NewClock(rate float64) (clk *Clock, err error) {
	if !(rate > 0) || math.IsInf(rate, 1) {
		err = ErrClockRate(rate)
		return
	}

	interval := 1_000_000 / rate
	if interval >= float64(math.MaxInt64/int64(time.Microsecond)) {
		err = ErrClockRate(rate)
		return
	}

	period := time.Duration(interval-math.Mod(interval, float64(CLOCK_RESOLUTION/time.Microsecond))) * time.Microsecond
	period = max(period, CLOCK_RESOLUTION)

	multiplier := math.Min(math.Max(1, rate/CLOCK_SCALE), math.MaxUint32)

	clk = &Clock{
		period:     period,
		multiplier: uint(multiplier),
		now:        time.Now,
	}
	clk.Reset()

	return
}

// Period returns the pacing period.
func (clk *Clock) Period() time.Duration {
	return clk.period
}

// Multiplier returns the number of fetches allowed per period.
func (clk *Clock) Multiplier() uint {
	return clk.multiplier
}

// Reset restarts the pacing schedule from now.
func (clk *Clock) Reset() {
	clk.stage = 0
	clk.next = clk.now()
}

// Tick accounts for one fetch, blocking until the next deadline once
// every Multiplier() calls.
func (clk *Clock) Tick() {
	if clk.stage != clk.multiplier-1 {
		clk.stage++
		return
	}

	clk.stage = 0
	for clk.now().Before(clk.next) {
	}
	clk.next = clk.next.Add(clk.period)
}
