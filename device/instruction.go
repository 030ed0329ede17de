package device

import (
	"fmt"
)

// Instruction is a single decoded operation with its three operands.
//
// Whether A and B name registers or immediate values depends solely on
// the opcode. C always names the output register. Operands are not
// checked against any register bank until the instruction executes.
type Instruction struct {
	Op Opcode
	A  uint64
	B  uint64
	C  uint64
}

// String returns the assembly language form of the instruction.
func (ins Instruction) String() string {
	return fmt.Sprintf("%v %d %d %d", ins.Op, ins.A, ins.B, ins.C)
}

// Describe returns the instruction as an assignment, e.g. "r3 = r1 + 5".
func (ins Instruction) Describe() string {
	a_kind, b_kind := ins.Op.Operands()
	a := operandString(a_kind, ins.A)
	b := operandString(b_kind, ins.B)

	var expr string
	switch ins.Op.Family() {
	case FAMILY_ADD:
		expr = fmt.Sprintf("%v + %v", a, b)
	case FAMILY_MUL:
		expr = fmt.Sprintf("%v * %v", a, b)
	case FAMILY_AND:
		expr = fmt.Sprintf("%v & %v", a, b)
	case FAMILY_OR:
		expr = fmt.Sprintf("%v | %v", a, b)
	case FAMILY_SET:
		expr = a
	case FAMILY_GT:
		expr = fmt.Sprintf("%v > %v", a, b)
	case FAMILY_EQ:
		expr = fmt.Sprintf("%v == %v", a, b)
	default:
		expr = "?"
	}

	return fmt.Sprintf("r%d = %v", ins.C, expr)
}

func operandString(kind Operand, value uint64) string {
	switch kind {
	case OPERAND_REGISTER:
		return fmt.Sprintf("r%d", value)
	case OPERAND_IMMEDIATE:
		return fmt.Sprintf("%d", value)
	}
	return "_"
}
