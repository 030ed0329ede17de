package debugger

import (
	"github.com/ezrec/regdev/device"
)

// Repeat watches a register each time an address executes, and stops the
// device the first time a value is seen again.
//
// The value watched is the register before the instruction executes.
type Repeat struct {
	Ip       uint64 // Address to watch.
	Register uint64 // Register to sample.

	seen     map[uint64]bool
	first    uint64
	last     uint64
	repeated bool
}

var _ device.Debugger = (*Repeat)(nil)

// NewRepeat watches register at address ip.
func NewRepeat(ip uint64, register uint64) *Repeat {
	return &Repeat{Ip: ip, Register: register}
}

// First returns the first value sampled.
func (rp *Repeat) First() (value uint64, ok bool) {
	return rp.first, len(rp.seen) > 0
}

// Last returns the last unique value sampled before a repeat.
func (rp *Repeat) Last() (value uint64, ok bool) {
	return rp.last, len(rp.seen) > 0
}

// Unique returns the number of unique values sampled.
func (rp *Repeat) Unique() int {
	return len(rp.seen)
}

// Repeated returns true if a repeated value stopped the device.
func (rp *Repeat) Repeated() bool {
	return rp.repeated
}

// OnStep samples the register at the watched address.
func (rp *Repeat) OnStep(ip uint64, pre, post []uint64) bool {
	if ip != rp.Ip || rp.Register >= uint64(len(pre)) {
		return true
	}

	value := pre[rp.Register]
	if rp.seen[value] {
		rp.repeated = true
		return false
	}

	if rp.seen == nil {
		rp.seen = map[uint64]bool{}
		rp.first = value
	}
	rp.seen[value] = true
	rp.last = value

	return true
}

// OnHalt does nothing.
func (rp *Repeat) OnHalt(ip uint64) {}
