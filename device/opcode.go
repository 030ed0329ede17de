package device

import (
	"strings"
)

// Opcode is one of the 16 device operations.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADDR = Opcode(0)  // addr
	OP_ADDI = Opcode(1)  // addi
	OP_MULR = Opcode(2)  // mulr
	OP_MULI = Opcode(3)  // muli
	OP_BANR = Opcode(4)  // banr
	OP_BANI = Opcode(5)  // bani
	OP_BORR = Opcode(6)  // borr
	OP_BORI = Opcode(7)  // bori
	OP_SETR = Opcode(8)  // setr
	OP_SETI = Opcode(9)  // seti
	OP_GTIR = Opcode(10) // gtir
	OP_GTRI = Opcode(11) // gtri
	OP_GTRR = Opcode(12) // gtrr
	OP_EQIR = Opcode(13) // eqir
	OP_EQRI = Opcode(14) // eqri
	OP_EQRR = Opcode(15) // eqrr
)

// OPCODE_COUNT is the number of opcodes in the table.
const OPCODE_COUNT = 16

// Family is the semantic grouping of an opcode.
type Family int

//go:generate go tool stringer -linecomment -type=Family
const (
	FAMILY_ADD = Family(0) // add
	FAMILY_MUL = Family(1) // mul
	FAMILY_AND = Family(2) // and
	FAMILY_OR  = Family(3) // or
	FAMILY_SET = Family(4) // set
	FAMILY_GT  = Family(5) // gt
	FAMILY_EQ  = Family(6) // eq
)

// Operand describes how an instruction input is interpreted.
type Operand int

//go:generate go tool stringer -linecomment -type=Operand
const (
	OPERAND_REGISTER  = Operand(0) // r
	OPERAND_IMMEDIATE = Operand(1) // i
	OPERAND_IGNORED   = Operand(2) // -
)

// Opcodes returns every opcode in table order.
//
// The order is stable, and the returned slice is owned by the caller.
func Opcodes() []Opcode {
	ops := make([]Opcode, OPCODE_COUNT)
	for n := range ops {
		ops[n] = Opcode(n)
	}
	return ops
}

// ParseOpcode looks up an opcode by its mnemonic, ignoring case.
func ParseOpcode(word string) (op Opcode, err error) {
	word = strings.ToLower(word)
	for _, op = range Opcodes() {
		if op.String() == word {
			return
		}
	}

	op = Opcode(-1)
	err = ErrOpcodeInvalid
	return
}

// Valid returns true if the opcode is in the table.
func (op Opcode) Valid() bool {
	return op >= OP_ADDR && op <= OP_EQRR
}

// Family returns the semantic family of the opcode.
func (op Opcode) Family() Family {
	switch op {
	case OP_ADDR, OP_ADDI:
		return FAMILY_ADD
	case OP_MULR, OP_MULI:
		return FAMILY_MUL
	case OP_BANR, OP_BANI:
		return FAMILY_AND
	case OP_BORR, OP_BORI:
		return FAMILY_OR
	case OP_SETR, OP_SETI:
		return FAMILY_SET
	case OP_GTIR, OP_GTRI, OP_GTRR:
		return FAMILY_GT
	case OP_EQIR, OP_EQRI, OP_EQRR:
		return FAMILY_EQ
	}

	return Family(-1)
}

// Operands returns the interpretation of the A and B inputs.
// The C operand is always an output register.
func (op Opcode) Operands() (a, b Operand) {
	switch op {
	case OP_ADDR, OP_MULR, OP_BANR, OP_BORR, OP_GTRR, OP_EQRR:
		a, b = OPERAND_REGISTER, OPERAND_REGISTER
	case OP_ADDI, OP_MULI, OP_BANI, OP_BORI, OP_GTRI, OP_EQRI:
		a, b = OPERAND_REGISTER, OPERAND_IMMEDIATE
	case OP_GTIR, OP_EQIR:
		a, b = OPERAND_IMMEDIATE, OPERAND_REGISTER
	case OP_SETR:
		a, b = OPERAND_REGISTER, OPERAND_IGNORED
	case OP_SETI:
		a, b = OPERAND_IMMEDIATE, OPERAND_IGNORED
	default:
		a, b = OPERAND_IGNORED, OPERAND_IGNORED
	}

	return
}
