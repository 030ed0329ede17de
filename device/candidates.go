package device

import (
	"slices"
)

// Candidates returns, in table order, every opcode which transforms the
// before registers into the after registers with operands a, b and c.
//
// Opcodes which fault on the given registers are not candidates.
func Candidates(before []uint64, a, b, c uint64, after []uint64) (ops []Opcode) {
	for _, op := range Opcodes() {
		dev := NewDevice(before...)
		err := dev.Execute(Instruction{Op: op, A: a, B: b, C: c})
		if err != nil {
			continue
		}
		if slices.Equal(dev.register, after) {
			ops = append(ops, op)
		}
	}

	return
}
