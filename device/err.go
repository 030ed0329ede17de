package device

import (
	"errors"

	"github.com/ezrec/regdev/translate"
)

var f = translate.From

var (
	// Device errors
	ErrRegisterRange = errors.New(f("register out of range"))
	ErrProgramNil    = errors.New(f("program missing"))

	// Program errors
	ErrProgramEmpty    = errors.New(f("program has no instructions"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOperandCount    = errors.New(f("instruction needs 3 operands"))
	ErrDirective       = errors.New(f("#ip directive must be the first line"))
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
)

// ErrRegister is an access to a register outside of the register bank.
type ErrRegister struct {
	Index uint64 // Register index requested.
	Count int    // Size of the register bank.
}

func (err ErrRegister) Error() string {
	return f("register %v out of range for %v registers", err.Index, err.Count)
}

func (err ErrRegister) Is(target error) bool {
	return target == ErrRegisterRange
}

// ErrInstruction identifies the instruction that faulted.
type ErrInstruction Instruction

func (ei ErrInstruction) Error() string {
	return f("instruction '%v'", Instruction(ei).String())
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

// ErrRuntime indicates the location of a runtime fault.
type ErrRuntime struct {
	Ip     uint64 // Instruction pointer of the fault.
	LineNo int    // Source line, if known.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("ip %v line %v %v", err.Ip, err.LineNo, err.Err)
	}
	return f("ip %v %v", err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a non-negative number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
