// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package device

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var (
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler parses device program text.
//
// The text is one instruction per line, as a mnemonic followed by three
// non-negative integers. An optional first line of '#ip N' binds the
// instruction pointer to register N. Text after '//' or ';' is a comment.
//
// Operands may name equates, defined with '.equ NAME VALUE', and may use
// '$(expression)' for compile-time arithmetic.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Parse parses program text with a default Assembler.
func Parse(input io.Reader) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Parse(input)
}

// Predefine defines a new equate or redefines an existing equate,
// applied at the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint64, err error) {
	value, err = strconv.ParseUint(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint64, err error) {
	thread := &starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		value64, err := asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeUint64(value64)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Uint64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// parseLine expands a single line into words.
// Equate definitions are consumed, and return no words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%d", lineno)

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = nil
		return
	}

	for n, word := range words[1:] {
		equate, ok := asm.Equate[word]
		if ok {
			words[1+n] = equate
		}
	}

	return
}

// parseInstruction decodes the words of one instruction.
func (asm *Assembler) parseInstruction(words []string) (ins Instruction, err error) {
	ins.Op, err = ParseOpcode(words[0])
	if err != nil {
		return
	}

	if len(words) != 4 {
		err = ErrOperandCount
		return
	}

	out := [3](*uint64){&ins.A, &ins.B, &ins.C}
	for n, word := range words[1:] {
		*out[n], err = asm.valueOf(word)
		if err != nil {
			return
		}
	}

	return
}

// stripComment removes '//' and ';' comments.
func stripComment(text string) string {
	if n := strings.Index(text, "//"); n >= 0 {
		text = text[:n]
	}
	if n := strings.Index(text, ";"); n >= 0 {
		text = text[:n]
	}
	return strings.TrimSpace(text)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	var text string

	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	var content bool
	var ip_reg uint64
	var ip_bound bool
	var instructions []Instruction
	var lines []int

	for scanner.Scan() {
		text = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v", lineno, text)
		}

		line := stripComment(text)
		if len(line) == 0 {
			continue
		}

		// #ip REGISTER
		if strings.HasPrefix(line, "#ip") {
			words := strings.Fields(line)
			if content || len(words) != 2 || words[0] != "#ip" {
				err = ErrSyntax{LineNo: lineno, Line: text, Err: ErrDirective}
				return
			}
			ip_reg, err = asm.valueOf(words[1])
			if err != nil {
				err = ErrSyntax{LineNo: lineno, Line: text, Err: err}
				return
			}
			ip_bound = true
			content = true
			continue
		}
		content = true

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: text, Err: err}
			return
		}
		if len(words) == 0 {
			continue
		}

		var ins Instruction
		ins, err = asm.parseInstruction(words)
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: text, Err: err}
			return
		}

		instructions = append(instructions, ins)
		lines = append(lines, lineno)
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if ip_bound {
		prog, err = NewProgramIp(ip_reg, instructions...)
	} else {
		prog, err = NewProgram(instructions...)
	}
	if err != nil {
		return
	}

	prog.lines = lines

	return
}
