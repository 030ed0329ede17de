// Package debugger provides reusable device.Debugger implementations.
//
// Each debugger only observes the device through the step and halt
// hooks, so debuggers may be combined freely with Chain.
package debugger
