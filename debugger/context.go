package debugger

import (
	"context"

	"github.com/ezrec/regdev/device"
)

// Context stops the device when its context is done.
type Context struct {
	ctx  context.Context
	done bool
}

var _ device.Debugger = (*Context)(nil)

// WithContext creates a debugger bound to ctx.
func WithContext(ctx context.Context) *Context {
	return &Context{ctx: ctx}
}

// Err returns the context error if the context stopped the device.
func (dc *Context) Err() error {
	if !dc.done {
		return nil
	}
	return dc.ctx.Err()
}

// OnStep stops once the context is done.
func (dc *Context) OnStep(ip uint64, pre, post []uint64) bool {
	select {
	case <-dc.ctx.Done():
		dc.done = true
		return false
	default:
		return true
	}
}

// OnHalt does nothing.
func (dc *Context) OnHalt(ip uint64) {}
