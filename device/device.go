// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package device

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Device is the register machine.
//
// The size of the register bank is fixed when the Device is created.
// A Device must only be driven from one goroutine at a time.
type Device struct {
	Verbose bool // Set to enable verbose logging.

	ip       uint64   // Current instruction pointer.
	register []uint64 // Register bank.
	ticks    int      // Executed instruction counter.

	pre  []uint64 // Pre-step snapshot given to the debugger.
	post []uint64 // Post-step snapshot given to the debugger.
}

// NewDevice creates a new device with a copy of the initial register bank.
// The instruction pointer starts at 0.
func NewDevice(registers ...uint64) (dev *Device) {
	dev = &Device{
		register: slices.Clone(registers),
		pre:      make([]uint64, len(registers)),
		post:     make([]uint64, len(registers)),
	}
	if dev.register == nil {
		dev.register = []uint64{}
	}

	return
}

// Ip returns the current instruction pointer.
func (dev *Device) Ip() uint64 {
	return dev.ip
}

// Ticks returns the number of instructions executed.
func (dev *Device) Ticks() int {
	return dev.ticks
}

// Registers returns a copy of the register bank.
func (dev *Device) Registers() []uint64 {
	return slices.Clone(dev.register)
}

// String returns the current device state as a string.
func (dev *Device) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "% 5s: %d\n", "ip", dev.ip)
	for n, val := range dev.register {
		fmt.Fprintf(&sb, "% 5s: %d\n", fmt.Sprintf("r%d", n), val)
	}

	return sb.String()
}

// read returns the value of a register.
func (dev *Device) read(index uint64) (value uint64, err error) {
	if index >= uint64(len(dev.register)) {
		err = ErrRegister{Index: index, Count: len(dev.register)}
		return
	}

	value = dev.register[index]
	return
}

// write sets the value of a register.
func (dev *Device) write(index uint64, value uint64) (err error) {
	if index >= uint64(len(dev.register)) {
		err = ErrRegister{Index: index, Count: len(dev.register)}
		return
	}

	dev.register[index] = value
	return
}

// flag converts a comparison result to a register value.
func flag(cond bool) uint64 {
	if cond {
		return 1
	}
	return 0
}

// Execute executes a single instruction against the register bank.
// The instruction pointer is not changed.
//
// On error, no register is modified.
func (dev *Device) Execute(ins Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction(ins), err)
		}
	}()

	var a, b, value uint64

	a_kind, b_kind := ins.Op.Operands()

	switch a_kind {
	case OPERAND_REGISTER:
		a, err = dev.read(ins.A)
	case OPERAND_IMMEDIATE:
		a = ins.A
	}
	if err != nil {
		return
	}

	switch b_kind {
	case OPERAND_REGISTER:
		b, err = dev.read(ins.B)
	case OPERAND_IMMEDIATE:
		b = ins.B
	}
	if err != nil {
		return
	}

	switch ins.Op {
	case OP_ADDR, OP_ADDI:
		value = a + b
	case OP_MULR, OP_MULI:
		value = a * b
	case OP_BANR, OP_BANI:
		value = a & b
	case OP_BORR, OP_BORI:
		value = a | b
	case OP_SETR, OP_SETI:
		value = a
	case OP_GTIR, OP_GTRI, OP_GTRR:
		value = flag(a > b)
	case OP_EQIR, OP_EQRI, OP_EQRR:
		value = flag(a == b)
	default:
		err = ErrOpcodeInvalid
		return
	}

	err = dev.write(ins.C, value)
	return
}

// Step performs one fetch-execute cycle of the program.
//
// done is true when the device has halted, either because the
// instruction pointer left the program (OnHalt is called), or because
// the debugger asked to stop (the instruction pointer is left at the
// instruction just executed).
func (dev *Device) Step(prog *Program, dbg Debugger) (done bool, err error) {
	if prog == nil {
		err = ErrProgramNil
		return
	}
	if dbg == nil {
		dbg = Nop{}
	}

	ip := dev.ip
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, LineNo: prog.LineNo(ip), Err: err}
		}
	}()

	ip_reg, bound := prog.IpRegister()
	if bound {
		err = dev.write(ip_reg, dev.ip)
		if err != nil {
			return
		}
	}

	ins, ok := prog.At(dev.ip)
	if !ok {
		if dev.Verbose {
			log.Printf("device: halt at ip %d", dev.ip)
		}
		dbg.OnHalt(dev.ip)
		done = true
		return
	}

	if dev.Verbose {
		log.Printf("%03d: %v", dev.ip, ins)
	}

	copy(dev.pre, dev.register)
	err = dev.Execute(ins)
	if err != nil {
		return
	}
	dev.ticks++
	copy(dev.post, dev.register)

	if !dbg.OnStep(dev.ip, dev.pre, dev.post) {
		if dev.Verbose {
			log.Printf("device: stopped at ip %d", dev.ip)
		}
		done = true
		return
	}

	if bound {
		dev.ip, err = dev.read(ip_reg)
		if err != nil {
			return
		}
	}
	dev.ip++

	return
}

// Run executes the program until it halts.
//
// A program that never halts will run forever; use Debug with a
// debugger that bounds execution instead.
func (dev *Device) Run(prog *Program) error {
	return dev.Debug(prog, Nop{})
}

// Debug executes the program under the control of a debugger, until the
// program halts or the debugger stops it.
func (dev *Device) Debug(prog *Program, dbg Debugger) (err error) {
	for done := false; !done; {
		done, err = dev.Step(prog, dbg)
		if err != nil {
			return
		}
	}

	return
}
