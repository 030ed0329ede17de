package device

// Debugger observes and controls a running Device.
//
// The Device is the only caller of these hooks.
type Debugger interface {
	// OnStep is called after each executed instruction, before the
	// instruction pointer is read back from its bound register.
	// The pre and post register snapshots are only valid during the call.
	// Return false to stop the Device.
	OnStep(ip uint64, pre, post []uint64) (proceed bool)
	// OnHalt is called once, when the instruction pointer leaves the
	// program. It is not called when OnStep stopped the Device.
	OnHalt(ip uint64)
}

// Nop is a Debugger that never stops the Device.
type Nop struct{}

var _ Debugger = Nop{}

// OnStep always proceeds.
func (Nop) OnStep(ip uint64, pre, post []uint64) bool { return true }

// OnHalt does nothing.
func (Nop) OnHalt(ip uint64) {}

// StepFunc adapts a function of the instruction pointer alone to a Debugger.
// Register snapshots are ignored, and halts are not reported.
type StepFunc func(ip uint64) (proceed bool)

var _ Debugger = StepFunc(nil)

// OnStep calls fn with the executed address.
func (fn StepFunc) OnStep(ip uint64, pre, post []uint64) bool {
	return fn(ip)
}

// OnHalt does nothing.
func (fn StepFunc) OnHalt(ip uint64) {}

// Hooks is a Debugger built from optional functions.
// A nil Step proceeds, and a nil Halt is ignored.
type Hooks struct {
	Step func(ip uint64, pre, post []uint64) bool
	Halt func(ip uint64)
}

var _ Debugger = (*Hooks)(nil)

// OnStep calls Step, if set.
func (h *Hooks) OnStep(ip uint64, pre, post []uint64) bool {
	if h.Step == nil {
		return true
	}
	return h.Step(ip, pre, post)
}

// OnHalt calls Halt, if set.
func (h *Hooks) OnHalt(ip uint64) {
	if h.Halt != nil {
		h.Halt(ip)
	}
}
