package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodes(t *testing.T) {
	assert := assert.New(t)

	ops := Opcodes()
	assert.Equal(OPCODE_COUNT, len(ops))

	names := []string{
		"addr", "addi", "mulr", "muli",
		"banr", "bani", "borr", "bori",
		"setr", "seti",
		"gtir", "gtri", "gtrr",
		"eqir", "eqri", "eqrr",
	}
	for n, op := range ops {
		assert.Equal(names[n], op.String())
		assert.True(op.Valid())
	}

	// Callers own the returned slice.
	ops[0] = OP_EQRR
	assert.Equal(OP_ADDR, Opcodes()[0])
}

func TestParseOpcode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word string
		op   Opcode
		err  error
	}){
		{"addr", OP_ADDR, nil},
		{"SETI", OP_SETI, nil},
		{"EqRr", OP_EQRR, nil},
		{"jump", Opcode(-1), ErrOpcodeInvalid},
		{"", Opcode(-1), ErrOpcodeInvalid},
	}

	for _, entry := range table {
		op, err := ParseOpcode(entry.word)
		assert.ErrorIs(err, entry.err, entry.word)
		if entry.err == nil {
			assert.NoError(err, entry.word)
		}
		assert.Equal(entry.op, op, entry.word)
	}
}

func TestOpcode_Family(t *testing.T) {
	assert := assert.New(t)

	count := map[Family]int{}
	for _, op := range Opcodes() {
		count[op.Family()]++
	}

	assert.Equal(map[Family]int{
		FAMILY_ADD: 2,
		FAMILY_MUL: 2,
		FAMILY_AND: 2,
		FAMILY_OR:  2,
		FAMILY_SET: 2,
		FAMILY_GT:  3,
		FAMILY_EQ:  3,
	}, count)

	assert.Equal("gt", OP_GTRI.Family().String())
	assert.Equal(Family(-1), Opcode(16).Family())
	assert.False(Opcode(16).Valid())
	assert.Equal("Opcode(16)", Opcode(16).String())
}

func TestOpcode_Operands(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op   Opcode
		a, b Operand
	}){
		{OP_ADDR, OPERAND_REGISTER, OPERAND_REGISTER},
		{OP_ADDI, OPERAND_REGISTER, OPERAND_IMMEDIATE},
		{OP_SETR, OPERAND_REGISTER, OPERAND_IGNORED},
		{OP_SETI, OPERAND_IMMEDIATE, OPERAND_IGNORED},
		{OP_GTIR, OPERAND_IMMEDIATE, OPERAND_REGISTER},
		{OP_EQRI, OPERAND_REGISTER, OPERAND_IMMEDIATE},
		{OP_EQRR, OPERAND_REGISTER, OPERAND_REGISTER},
	}

	for _, entry := range table {
		a, b := entry.op.Operands()
		assert.Equal(entry.a, a, entry.op.String())
		assert.Equal(entry.b, b, entry.op.String())
	}
}
