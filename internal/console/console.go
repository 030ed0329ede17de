// Package console provides an interactive stepping debugger.
package console

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ezrec/regdev/debugger"
	"github.com/ezrec/regdev/device"
)

// LineReader is a source of console commands.
// *readline.Instance is a LineReader.
type LineReader interface {
	Readline() (string, error)
}

var _ LineReader = (*readline.Instance)(nil)

const help = `commands:
  step [N]     execute N instructions (default 1), also an empty line
  continue     run until a breakpoint, condition, or halt
  break IP     set a breakpoint after address IP
  delete IP    remove the breakpoint at IP
  when EXPR    stop when the expression is true (empty EXPR clears)
  regs         show the registers
  list         show the program
  quit         stop the device
`

// Console is a device.Debugger that prompts for a command after each
// step, until told to run on.
type Console struct {
	Program *device.Program
	In      LineReader
	Out     io.Writer
	Bound   device.Debugger // If set, may stop the device before any prompt.

	breakpoint *debugger.Breakpoint
	condition  *debugger.Condition

	remaining int      // Steps left before the next prompt.
	running   bool     // Run until a breakpoint or condition.
	quit      bool     // Stopped by the user.
	ip        uint64   // Last executed address.
	register  []uint64 // Registers after the last step.
}

var _ device.Debugger = (*Console)(nil)

// New creates a console for prog.
func New(prog *device.Program, in LineReader, out io.Writer) *Console {
	return &Console{
		Program:    prog,
		In:         in,
		Out:        out,
		breakpoint: debugger.NewBreakpoint(),
	}
}

// Quit returns true if the user stopped the device.
func (con *Console) Quit() bool {
	return con.quit
}

// Breakpoint returns the console's breakpoints.
func (con *Console) Breakpoint() *debugger.Breakpoint {
	return con.breakpoint
}

func (con *Console) printf(format string, args ...any) {
	fmt.Fprintf(con.Out, format, args...)
}

func (con *Console) showStep(pre, post []uint64) {
	text := "?"
	if ins, ok := con.Program.At(con.ip); ok {
		text = ins.String()
	}

	changes := debugger.Diff(pre, post)
	diff := make([]string, len(changes))
	for n, change := range changes {
		diff[n] = change.String()
	}

	con.printf("%03d: %-20s %v\n", con.ip, text, strings.Join(diff, ", "))
}

func (con *Console) showRegisters() {
	con.printf("ip: %d\n", con.ip)
	for n, value := range con.register {
		con.printf("r%d: %d\n", n, value)
	}
}

func (con *Console) showProgram() {
	for ip, ins := range con.Program.Instructions() {
		mark := " "
		if uint64(ip) == con.ip {
			mark = ">"
		}
		if con.breakpoint.Has(uint64(ip)) {
			mark += "*"
		} else {
			mark += " "
		}
		con.printf("%v %03d: %v\n", mark, ip, ins)
	}
}

// OnStep prompts for commands once the requested steps have run, or when
// a breakpoint or condition is reached. Bound is consulted first.
func (con *Console) OnStep(ip uint64, pre, post []uint64) bool {
	con.ip = ip
	con.register = append(con.register[:0], post...)

	if con.Bound != nil && !con.Bound.OnStep(ip, pre, post) {
		con.running = false
		con.showStep(pre, post)
		con.printf("stopped at ip %d\n", ip)
		return false
	}

	if con.running {
		stop := !con.breakpoint.OnStep(ip, pre, post)
		if con.condition != nil && !con.condition.OnStep(ip, pre, post) {
			if err := con.condition.Err(); err != nil {
				con.printf("%v\n", err)
			}
			stop = true
		}
		if !stop {
			return true
		}
		con.running = false
	} else if con.remaining > 1 {
		con.remaining--
		return true
	}

	con.showStep(pre, post)
	return con.prompt()
}

// OnHalt reports the halt, and passes it on to Bound.
func (con *Console) OnHalt(ip uint64) {
	if con.Bound != nil {
		con.Bound.OnHalt(ip)
	}
	con.printf("halt at ip %d\n", ip)
}

// prompt reads commands until one resumes or stops the device.
func (con *Console) prompt() (proceed bool) {
	for {
		line, err := con.In.Readline()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, readline.ErrInterrupt) {
				con.printf("%v\n", err)
			}
			con.quit = true
			return false
		}

		resume, err := con.command(strings.TrimSpace(line))
		if err != nil {
			con.printf("%v\n", err)
			continue
		}
		if resume {
			return !con.quit
		}
	}
}

func parseAddress(words []string) (ip uint64, err error) {
	if len(words) != 2 {
		err = ErrArgument
		return
	}
	ip, err = strconv.ParseUint(words[1], 0, 64)
	if err != nil {
		err = ErrArgument
	}
	return
}

// command executes one console command, and returns true if the device
// should resume.
func (con *Console) command(line string) (resume bool, err error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		con.remaining = 1
		return true, nil
	}

	switch words[0] {
	case "s", "step":
		count := 1
		if len(words) > 2 {
			err = ErrArgument
			return
		}
		if len(words) == 2 {
			count, err = strconv.Atoi(words[1])
			if err != nil || count < 1 {
				err = ErrArgument
				return
			}
		}
		con.remaining = count
		resume = true
	case "c", "continue":
		con.running = true
		resume = true
	case "b", "break":
		var ip uint64
		ip, err = parseAddress(words)
		if err != nil {
			return
		}
		con.breakpoint.Set(ip)
		con.printf("breakpoint at %d\n", ip)
	case "d", "delete":
		var ip uint64
		ip, err = parseAddress(words)
		if err != nil {
			return
		}
		con.breakpoint.Clear(ip)
	case "w", "when":
		expr := strings.TrimSpace(strings.TrimPrefix(line, words[0]))
		if expr == "" {
			con.condition = nil
			return
		}
		var cond *debugger.Condition
		cond, err = debugger.NewCondition(expr)
		if err != nil {
			return
		}
		con.condition = cond
	case "r", "regs":
		con.showRegisters()
	case "l", "list":
		con.showProgram()
	case "q", "quit":
		con.quit = true
		resume = true
	case "h", "help", "?":
		con.printf("%v", help)
	default:
		err = ErrCommand(words[0])
	}

	return
}

// Registers returns the registers after the last step.
func (con *Console) Registers() []uint64 {
	return slices.Clone(con.register)
}
