package debugger

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/olekukonko/tablewriter"

	"github.com/ezrec/regdev/device"
)

// Profile counts how often each address executes.
//
// The halting address, if reached, is counted once.
type Profile struct {
	count  map[uint64]int
	ticks  int
	halt   uint64
	halted bool
}

var _ device.Debugger = (*Profile)(nil)

// NewProfile creates an empty profile.
func NewProfile() *Profile {
	return &Profile{count: map[uint64]int{}}
}

// Count returns the number of visits to an address.
func (pf *Profile) Count(ip uint64) int {
	return pf.count[ip]
}

// Ticks returns the total number of instructions executed.
func (pf *Profile) Ticks() int {
	return pf.ticks
}

// Halt returns the address the device halted at.
func (pf *Profile) Halt() (ip uint64, ok bool) {
	return pf.halt, pf.halted
}

// Addresses returns the visited addresses, in ascending order.
func (pf *Profile) Addresses() []uint64 {
	return slices.Sorted(maps.Keys(pf.count))
}

// Hottest returns the most visited executed address.
// Ties go to the lowest address.
func (pf *Profile) Hottest() (ip uint64, count int) {
	for _, addr := range pf.Addresses() {
		if pf.halted && addr == pf.halt {
			continue
		}
		if pf.count[addr] > count {
			ip, count = addr, pf.count[addr]
		}
	}
	return
}

// Render writes the profile as a table.
// If prog is not nil, each row shows the instruction at the address.
func (pf *Profile) Render(w io.Writer, prog *device.Program) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"IP", "Count", "Instruction"})
	table.SetBorder(false)
	if pf.halted {
		table.SetCaption(true, f("%d instructions, halted at ip %d", pf.ticks, pf.halt))
	} else {
		table.SetCaption(true, f("%d instructions", pf.ticks))
	}

	for _, ip := range pf.Addresses() {
		text := ""
		if prog != nil {
			ins, ok := prog.At(ip)
			if ok {
				text = ins.Describe()
			} else {
				text = "halt"
			}
		}
		table.Append([]string{
			fmt.Sprintf("%d", ip),
			fmt.Sprintf("%d", pf.count[ip]),
			text,
		})
	}

	table.Render()
}

// OnStep counts the executed address.
func (pf *Profile) OnStep(ip uint64, pre, post []uint64) bool {
	if pf.count == nil {
		pf.count = map[uint64]int{}
	}
	pf.count[ip]++
	pf.ticks++
	return true
}

// OnHalt counts the halting address.
func (pf *Profile) OnHalt(ip uint64) {
	if pf.count == nil {
		pf.count = map[uint64]int{}
	}
	pf.count[ip]++
	pf.halt = ip
	pf.halted = true
}
