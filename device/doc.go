// Package device implements a small register machine and its assembler.
//
// The device has a fixed bank of 64-bit unsigned registers and an
// instruction pointer (IP). Programs are lists of three-operand
// instructions drawn from a closed table of 16 opcodes: add, multiply,
// bitwise and/or, set, greater-than and equality, each with register or
// immediate operand forms. There is no jump opcode. A program may bind
// the IP to one register; the IP is written to that register before each
// instruction and read back after it, so any instruction writing the
// bound register branches.
//
// Execution is driven through a Debugger, which is called after every
// instruction and once on halt, and may stop execution early.
package device
