package debugger

import (
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/regdev/device"
)

// Condition stops the device after a step where a Starlark expression
// is true.
//
// The expression sees 'ip', the address executed, and 'pre' and 'post',
// the registers before and after as tuples of integers. An evaluation
// failure also stops the device; see Err.
type Condition struct {
	Expr string

	thread *starlark.Thread
	fn     starlark.Callable
	err    error
}

var _ device.Debugger = (*Condition)(nil)

// NewCondition compiles a condition expression.
func NewCondition(expr string) (cond *Condition, err error) {
	if strings.ContainsAny(expr, "\r\n") || len(strings.TrimSpace(expr)) == 0 {
		err = ErrCondition
		return
	}

	thread := &starlark.Thread{Name: "condition"}
	src := "def cond(ip, pre, post):\n    return " + expr + "\n"
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, "condition", src, nil)
	if err != nil {
		err = ErrConditionEval{Err: err}
		return
	}

	fn, ok := globals["cond"].(starlark.Callable)
	if !ok {
		err = ErrCondition
		return
	}

	cond = &Condition{
		Expr:   expr,
		thread: thread,
		fn:     fn,
	}
	return
}

// Err returns the evaluation error that stopped the device, if any.
func (cond *Condition) Err() error {
	return cond.err
}

func registerTuple(regs []uint64) starlark.Tuple {
	tuple := make(starlark.Tuple, len(regs))
	for n, value := range regs {
		tuple[n] = starlark.MakeUint64(value)
	}
	return tuple
}

// OnStep evaluates the expression, and stops when it is true or fails.
func (cond *Condition) OnStep(ip uint64, pre, post []uint64) bool {
	args := starlark.Tuple{
		starlark.MakeUint64(ip),
		registerTuple(pre),
		registerTuple(post),
	}

	value, err := starlark.Call(cond.thread, cond.fn, args, nil)
	if err != nil {
		cond.err = ErrConditionEval{Ip: ip, Err: err}
		return false
	}

	return !bool(value.Truth())
}

// OnHalt does nothing.
func (cond *Condition) OnHalt(ip uint64) {}
