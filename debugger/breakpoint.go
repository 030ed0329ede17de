package debugger

import (
	"github.com/ezrec/regdev/device"
)

// Breakpoint stops the device after executing any of a set of addresses.
type Breakpoint struct {
	address map[uint64]bool

	hit    uint64
	hitSet bool
}

var _ device.Debugger = (*Breakpoint)(nil)

// NewBreakpoint creates a breakpoint on each of the addresses.
func NewBreakpoint(ips ...uint64) (bp *Breakpoint) {
	bp = &Breakpoint{
		address: make(map[uint64]bool, len(ips)),
	}
	for _, ip := range ips {
		bp.address[ip] = true
	}
	return
}

// Set adds a breakpoint address.
func (bp *Breakpoint) Set(ip uint64) {
	if bp.address == nil {
		bp.address = map[uint64]bool{}
	}
	bp.address[ip] = true
}

// Clear removes a breakpoint address.
func (bp *Breakpoint) Clear(ip uint64) {
	delete(bp.address, ip)
}

// Has returns true if there is a breakpoint at the address.
func (bp *Breakpoint) Has(ip uint64) bool {
	return bp.address[ip]
}

// Hit returns the address of the last breakpoint that stopped the device.
func (bp *Breakpoint) Hit() (ip uint64, ok bool) {
	return bp.hit, bp.hitSet
}

// OnStep stops after a breakpoint address executes.
func (bp *Breakpoint) OnStep(ip uint64, pre, post []uint64) bool {
	if !bp.address[ip] {
		return true
	}

	bp.hit = ip
	bp.hitSet = true
	return false
}

// OnHalt does nothing.
func (bp *Breakpoint) OnHalt(ip uint64) {}
