package debugger

import (
	"github.com/ezrec/regdev/device"
)

// Chain passes every hook to each of its debuggers, in order.
//
// Every debugger sees every step. The device stops if any of them
// asks it to.
type Chain []device.Debugger

var _ device.Debugger = Chain(nil)

// OnStep calls every debugger, and proceeds only if all of them do.
func (ch Chain) OnStep(ip uint64, pre, post []uint64) bool {
	proceed := true
	for _, dbg := range ch {
		if !dbg.OnStep(ip, pre, post) {
			proceed = false
		}
	}
	return proceed
}

// OnHalt calls every debugger.
func (ch Chain) OnHalt(ip uint64) {
	for _, dbg := range ch {
		dbg.OnHalt(ip)
	}
}
