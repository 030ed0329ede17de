package debugger

import (
	"fmt"
)

// Change is a single register modification.
type Change struct {
	Register int
	Old      uint64
	New      uint64
}

func (c Change) String() string {
	return fmt.Sprintf("r%d: %d -> %d", c.Register, c.Old, c.New)
}

// Diff returns the registers that differ between two snapshots.
// Registers past the end of the shorter snapshot are ignored.
func Diff(pre, post []uint64) (changes []Change) {
	for n := range min(len(pre), len(post)) {
		if pre[n] != post[n] {
			changes = append(changes, Change{Register: n, Old: pre[n], New: post[n]})
		}
	}
	return
}
