package device

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Program is an immutable list of instructions, with an optional
// register bound to the instruction pointer.
//
// A Program may be shared between any number of Devices.
type Program struct {
	ipRegister uint64
	ipBound    bool

	instructions []Instruction
	lines        []int // Source line of each instruction, if assembled.
}

// NewProgram creates a program with no instruction pointer binding.
func NewProgram(instructions ...Instruction) (prog *Program, err error) {
	if len(instructions) == 0 {
		err = ErrProgramEmpty
		return
	}

	prog = &Program{
		instructions: slices.Clone(instructions),
	}
	return
}

// NewProgramIp creates a program with the instruction pointer bound to
// the given register.
func NewProgramIp(register uint64, instructions ...Instruction) (prog *Program, err error) {
	prog, err = NewProgram(instructions...)
	if err != nil {
		return
	}

	prog.ipRegister = register
	prog.ipBound = true
	return
}

// IpRegister returns the register bound to the instruction pointer, if any.
func (prog *Program) IpRegister() (register uint64, ok bool) {
	return prog.ipRegister, prog.ipBound
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.instructions)
}

// At returns the instruction at an address.
func (prog *Program) At(ip uint64) (ins Instruction, ok bool) {
	if ip >= uint64(len(prog.instructions)) {
		return
	}

	return prog.instructions[ip], true
}

// Instructions iterates over the addresses and instructions of the program.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return slices.All(prog.instructions)
}

// LineNo returns the source line of the instruction at an address,
// or 0 if unknown.
func (prog *Program) LineNo(ip uint64) int {
	if ip >= uint64(len(prog.lines)) {
		return 0
	}

	return prog.lines[ip]
}

// String returns the program in assembler syntax.
func (prog *Program) String() string {
	var sb strings.Builder

	if prog.ipBound {
		fmt.Fprintf(&sb, "#ip %d\n", prog.ipRegister)
	}
	for _, ins := range prog.instructions {
		sb.WriteString(ins.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}
