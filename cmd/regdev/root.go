// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ezrec/regdev/debugger"
	"github.com/ezrec/regdev/device"
	"github.com/ezrec/regdev/internal/config"
	"github.com/ezrec/regdev/internal/console"
	"github.com/ezrec/regdev/translate"
)

var f = translate.From

// options are the command line settings shared by the run commands.
type options struct {
	verbose    bool
	configFile string

	registers   []string
	count       int
	breakpoints []string
	maxSteps    int
	timeout     time.Duration
	condition   string
	trace       bool
	equates     []string
	repeat      string
}

func parseUints(words []string) (values []uint64, err error) {
	values = make([]uint64, 0, len(words))
	for _, word := range words {
		var value uint64
		value, err = strconv.ParseUint(strings.TrimSpace(word), 0, 64)
		if err != nil {
			err = errors.Wrapf(err, "'%v'", word)
			return
		}
		values = append(values, value)
	}
	return
}

// settings merges the configuration file with the flags that were set.
func (opt *options) settings(cmd *cobra.Command) (cfg *config.Config, err error) {
	cfg = &config.Config{}
	if opt.configFile != "" {
		cfg, err = config.Load(opt.configFile)
		if err != nil {
			return
		}
	}

	flags := &config.Config{}
	flagSet := cmd.Flags()
	if flagSet.Changed("registers") {
		flags.Registers, err = parseUints(opt.registers)
		if err != nil {
			err = errors.Wrap(err, "--registers")
			return
		}
	}
	if flagSet.Changed("count") {
		flags.Count = opt.count
	}
	if flagSet.Changed("break") {
		flags.Breakpoints, err = parseUints(opt.breakpoints)
		if err != nil {
			err = errors.Wrap(err, "--break")
			return
		}
	}
	if flagSet.Changed("max-steps") {
		flags.MaxSteps = opt.maxSteps
	}
	if flagSet.Changed("timeout") {
		flags.Timeout = opt.timeout
	}
	if flagSet.Changed("condition") {
		flags.Condition = opt.condition
	}
	flags.Trace = opt.trace

	cfg.Merge(flags)
	err = cfg.Validate()
	return
}

// load assembles the program file.
func (opt *options) load(path string) (prog *device.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &device.Assembler{Verbose: opt.verbose}
	for _, equ := range opt.equates {
		name, value, ok := strings.Cut(equ, "=")
		if !ok {
			err = errors.New(f("--equ %v: expected NAME=VALUE", equ))
			return
		}
		asm.Predefine(name, value)
	}

	prog, err = asm.Parse(inf)
	if err != nil {
		err = errors.Wrapf(err, "%v", path)
		return
	}

	return
}

// session is a configured device and its debuggers.
type session struct {
	cfg   *config.Config
	dev   *device.Device
	prog  *device.Program
	chain debugger.Chain // Bounds and observers, without breakpoints.

	breakpoint *debugger.Breakpoint
	limit      *debugger.StepLimit
	deadline   *debugger.Deadline
	condition  *debugger.Condition
	repeat     *debugger.Repeat
}

func (opt *options) session(cmd *cobra.Command, path string) (ss *session, err error) {
	cfg, err := opt.settings(cmd)
	if err != nil {
		return
	}

	ss = &session{cfg: cfg}
	ss.prog, err = opt.load(path)
	if err != nil {
		return
	}

	ss.dev = device.NewDevice(cfg.Bank()...)
	ss.dev.Verbose = opt.verbose

	ss.breakpoint = debugger.NewBreakpoint(cfg.Breakpoints...)
	if cfg.MaxSteps > 0 {
		ss.limit = debugger.NewStepLimit(cfg.MaxSteps)
		ss.chain = append(ss.chain, ss.limit)
	}
	if cfg.Timeout > 0 {
		ss.deadline = debugger.NewDeadline(cfg.Timeout)
		ss.chain = append(ss.chain, ss.deadline)
	}
	if cfg.Condition != "" {
		ss.condition, err = debugger.NewCondition(cfg.Condition)
		if err != nil {
			err = errors.Wrap(err, f("condition"))
			return
		}
		ss.chain = append(ss.chain, ss.condition)
	}
	if opt.repeat != "" {
		var at []uint64
		at, err = parseUints(strings.Split(opt.repeat, ":"))
		if err == nil && len(at) != 2 {
			err = errors.New(f("expected IP:REGISTER"))
		}
		if err != nil {
			err = errors.Wrap(err, "--repeat")
			return
		}
		ss.repeat = debugger.NewRepeat(at[0], at[1])
		ss.chain = append(ss.chain, ss.repeat)
	}
	if cfg.Trace {
		ss.chain = append(ss.chain, &debugger.Trace{Program: ss.prog})
	}

	return
}

// debuggers returns the breakpoints and the chain as one debugger.
func (ss *session) debuggers() device.Debugger {
	return append(debugger.Chain{ss.breakpoint}, ss.chain...)
}

// report writes why the device stopped, and its final state.
func (ss *session) report(out io.Writer) (err error) {
	if ss.condition != nil && ss.condition.Err() != nil {
		return ss.condition.Err()
	}

	if ss.limit != nil && ss.limit.Err() != nil {
		fmt.Fprintf(out, "stopped: %v\n", ss.limit.Err())
	}
	if ss.deadline != nil && ss.deadline.Err() != nil {
		fmt.Fprintf(out, "stopped: %v\n", ss.deadline.Err())
	}
	if ss.repeat != nil {
		if first, ok := ss.repeat.First(); ok {
			last, _ := ss.repeat.Last()
			fmt.Fprintf(out, "repeat: first %d, last %d, %d unique\n", first, last, ss.repeat.Unique())
		}
	}

	fmt.Fprintf(out, "ticks: %d\n", ss.dev.Ticks())
	fmt.Fprint(out, ss.dev.String())
	return
}

func (opt *options) addRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVarP(&opt.registers, "registers", "r", nil, "Initial register values")
	flags.IntVarP(&opt.count, "count", "n", 0, "Register bank size")
	flags.StringSliceVarP(&opt.breakpoints, "break", "b", nil, "Stop after executing these addresses")
	flags.IntVar(&opt.maxSteps, "max-steps", 0, "Stop after this many instructions (0 = unlimited)")
	flags.DurationVar(&opt.timeout, "timeout", 0, "Stop after this much time, e.g. 30s")
	flags.StringVar(&opt.condition, "condition", "", "Stop when this expression over ip, pre and post is true")
	flags.BoolVar(&opt.trace, "trace", false, "Log every step")
	flags.StringSliceVarP(&opt.equates, "equ", "D", nil, "Predefine an assembler equate, NAME=VALUE")
	flags.StringVar(&opt.repeat, "repeat", "", "Watch IP:REGISTER and stop on the first repeated value")
}

func newRootCmd(in io.ReadCloser, out io.Writer) *cobra.Command {
	opt := &options{}

	root := &cobra.Command{
		Use:           "regdev",
		Short:         "Register device assembler and debugger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opt.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&opt.verbose, "verbose", "v", false, "Verbose mode")
	root.PersistentFlags().StringVarP(&opt.configFile, "config", "c", "", "YAML run configuration")

	runCmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a program until it halts or is stopped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ss, err := opt.session(cmd, args[0])
			if err != nil {
				return
			}

			err = ss.dev.Debug(ss.prog, ss.debuggers())
			if err != nil {
				return
			}

			return ss.report(cmd.OutOrStdout())
		},
	}
	opt.addRunFlags(runCmd)

	profileCmd := &cobra.Command{
		Use:   "profile FILE",
		Short: "Run a program and show how often each address executed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ss, err := opt.session(cmd, args[0])
			if err != nil {
				return
			}

			pf := debugger.NewProfile()
			err = ss.dev.Debug(ss.prog, debugger.Chain{pf, ss.debuggers()})
			if err != nil {
				return
			}

			pf.Render(cmd.OutOrStdout(), ss.prog)
			return ss.report(cmd.OutOrStdout())
		},
	}
	opt.addRunFlags(profileCmd)

	stepCmd := &cobra.Command{
		Use:   "step FILE",
		Short: "Step through a program interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ss, err := opt.session(cmd, args[0])
			if err != nil {
				return
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt: "> ",
				Stdin:  in,
				Stdout: cmd.OutOrStdout(),
			})
			if err != nil {
				return
			}
			atexit.Register(func() { rl.Close() })
			defer rl.Close()

			con := console.New(ss.prog, rl, cmd.OutOrStdout())
			con.Bound = ss.chain
			for _, ip := range ss.cfg.Breakpoints {
				con.Breakpoint().Set(ip)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "type 'help' for commands")

			err = ss.dev.Debug(ss.prog, con)
			if err != nil {
				return
			}

			return ss.report(cmd.OutOrStdout())
		},
	}
	opt.addRunFlags(stepCmd)

	opcodesCmd := &cobra.Command{
		Use:   "opcodes",
		Short: "List the instruction set",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Opcode", "Family", "A", "B", "Effect"})
			table.SetBorder(false)
			for _, op := range device.Opcodes() {
				a, b := op.Operands()
				table.Append([]string{
					op.String(),
					op.Family().String(),
					a.String(),
					b.String(),
					device.Instruction{Op: op, A: 1, B: 2, C: 3}.Describe(),
				})
			}
			table.Render()
		},
	}

	var before, after []string
	candidatesCmd := &cobra.Command{
		Use:   "candidates A B C",
		Short: "List the opcodes that transform --before into --after",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			operand, err := parseUints(args)
			if err != nil {
				return
			}
			pre, err := parseUints(before)
			if err != nil {
				return errors.Wrap(err, "--before")
			}
			post, err := parseUints(after)
			if err != nil {
				return errors.Wrap(err, "--after")
			}

			ops := device.Candidates(pre, operand[0], operand[1], operand[2], post)
			for _, op := range ops {
				fmt.Fprintln(cmd.OutOrStdout(), op)
			}
			return
		},
	}
	candidatesCmd.Flags().StringSliceVar(&before, "before", nil, "Registers before the instruction")
	candidatesCmd.Flags().StringSliceVar(&after, "after", nil, "Registers after the instruction")

	root.AddCommand(runCmd, profileCmd, stepCmd, opcodesCmd, candidatesCmd)
	return root
}
