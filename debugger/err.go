package debugger

import (
	"errors"

	"github.com/ezrec/regdev/translate"
)

var f = translate.From

var (
	ErrCondition = errors.New(f("condition invalid"))
	ErrDeadline  = errors.New(f("deadline exceeded"))
	ErrStepLimit = errors.New(f("step limit exceeded"))
)

// ErrConditionEval is a failure while evaluating a condition.
type ErrConditionEval struct {
	Ip  uint64
	Err error
}

func (err ErrConditionEval) Error() string {
	return f("condition at ip %v: %v", err.Ip, err.Err)
}

func (err ErrConditionEval) Unwrap() error {
	return err.Err
}

func (err ErrConditionEval) Is(target error) bool {
	return target == ErrCondition
}
