package device

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram(t *testing.T) {
	assert := assert.New(t)

	_, err := NewProgram()
	assert.ErrorIs(err, ErrProgramEmpty)

	_, err = NewProgramIp(2)
	assert.ErrorIs(err, ErrProgramEmpty)

	code := []Instruction{
		{OP_SETI, 7, 0, 1},
		{OP_MULR, 1, 1, 2},
	}

	prog, err := NewProgram(code...)
	assert.NoError(err)

	// The program keeps its own copy.
	code[0].A = 99
	ins, ok := prog.At(0)
	assert.True(ok)
	assert.Equal(uint64(7), ins.A)

	_, ok = prog.At(2)
	assert.False(ok)
	_, ok = prog.At(^uint64(0))
	assert.False(ok)

	_, bound := prog.IpRegister()
	assert.False(bound)
	assert.Equal(0, prog.LineNo(0))

	count := 0
	for ip, ins := range prog.Instructions() {
		at, _ := prog.At(uint64(ip))
		assert.Equal(at, ins)
		count++
	}
	assert.Equal(2, count)

	assert.Equal("seti 7 0 1\nmulr 1 1 2\n", prog.String())
}

func TestProgram_Ip(t *testing.T) {
	assert := assert.New(t)

	prog, err := NewProgramIp(3, Instruction{OP_ADDI, 3, 1, 3})
	assert.NoError(err)

	reg, bound := prog.IpRegister()
	assert.True(bound)
	assert.Equal(uint64(3), reg)
	assert.Equal(1, prog.Len())
	assert.Equal("#ip 3\naddi 3 1 3\n", prog.String())
}

func TestProgram_String_Parse(t *testing.T) {
	assert := assert.New(t)

	prog, err := NewProgramIp(1,
		Instruction{OP_GTRI, 0, 10, 2},
		Instruction{OP_BORI, 2, 4, 3},
		Instruction{OP_EQIR, 1, 3, 0},
	)
	assert.NoError(err)

	again, err := Parse(strings.NewReader(prog.String()))
	assert.NoError(err)
	assert.Equal(prog.String(), again.String())
	assert.Equal(3, again.LineNo(1))
}
