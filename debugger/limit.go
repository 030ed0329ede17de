package debugger

import (
	"time"

	"github.com/ezrec/regdev/device"
)

// StepLimit stops the device once Max instructions have executed.
// A Max of 0 never stops.
type StepLimit struct {
	Max int

	count int
}

var _ device.Debugger = (*StepLimit)(nil)

// NewStepLimit creates a limit of max executed instructions.
func NewStepLimit(max int) *StepLimit {
	return &StepLimit{Max: max}
}

// Count returns the number of instructions observed.
func (sl *StepLimit) Count() int {
	return sl.count
}

// Err returns ErrStepLimit if the limit stopped the device.
func (sl *StepLimit) Err() error {
	if sl.Max > 0 && sl.count >= sl.Max {
		return ErrStepLimit
	}
	return nil
}

// OnStep counts the step, and stops once Max steps have run.
func (sl *StepLimit) OnStep(ip uint64, pre, post []uint64) bool {
	sl.count++
	return sl.Max <= 0 || sl.count < sl.Max
}

// OnHalt does nothing.
func (sl *StepLimit) OnHalt(ip uint64) {}

// Deadline stops the device once the clock passes At.
type Deadline struct {
	At  time.Time
	Now func() time.Time // Clock, defaults to time.Now.

	expired bool
}

var _ device.Debugger = (*Deadline)(nil)

// NewDeadline creates a deadline timeout from now.
func NewDeadline(timeout time.Duration) *Deadline {
	return &Deadline{At: time.Now().Add(timeout)}
}

// Err returns ErrDeadline if the deadline stopped the device.
func (dl *Deadline) Err() error {
	if dl.expired {
		return ErrDeadline
	}
	return nil
}

// OnStep stops once the clock is past At.
func (dl *Deadline) OnStep(ip uint64, pre, post []uint64) bool {
	now := time.Now
	if dl.Now != nil {
		now = dl.Now
	}

	if now().After(dl.At) {
		dl.expired = true
		return false
	}

	return true
}

// OnHalt does nothing.
func (dl *Deadline) OnHalt(ip uint64) {}
