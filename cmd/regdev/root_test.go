package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/regdev/debugger"
	"github.com/ezrec/regdev/device"
	"github.com/ezrec/regdev/internal/config"
)

func writeFile(t *testing.T, name string, text string) string {
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(text), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(args ...string) (out string, err error) {
	return executeInput("", args...)
}

func executeInput(input string, args ...string) (out string, err error) {
	var buf bytes.Buffer
	cmd := newRootCmd(io.NopCloser(strings.NewReader(input)), &buf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return buf.String(), err
}

const jumpProgram = `#ip 0
seti 5 0 0
addi 0 1 0
`

const loopProgram = `#ip 3
seti 0 0 0
addi 0 1 0
gtri 0 2 1
addr 1 3 3
seti 0 0 3
`

const foreverProgram = `#ip 2
seti 0 0 0
addi 0 1 0 ; loop
seti 0 0 2
`

func TestRun(t *testing.T) {
	assert := assert.New(t)

	out, err := execute("run", writeFile(t, "jump.asm", jumpProgram))
	assert.NoError(err)
	assert.Contains(out, "ticks: 1\n")
	assert.Contains(out, "   ip: 6\n")
	assert.Contains(out, "   r0: 6\n")
	assert.Contains(out, "   r5: 0\n")
}

func TestRun_Flags(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "loop.asm", loopProgram)

	out, err := execute("run", path, "--count", "4", "--break", "3")
	assert.NoError(err)
	assert.Contains(out, "ticks: 4\n")
	assert.Contains(out, "   ip: 3\n")
	assert.NotContains(out, "r4:")

	out, err = execute("run", path, "-r", "0,0,0,0,9")
	assert.NoError(err)
	assert.Contains(out, "ticks: 12\n")
	assert.Contains(out, "   r4: 9\n")
	assert.Contains(out, "   r5: 0\n")
}

func TestRun_Stopped(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "forever.asm", foreverProgram)

	out, err := execute("run", path, "--max-steps", "10", "-n", "3")
	assert.NoError(err)
	assert.Contains(out, debugger.ErrStepLimit.Error())
	assert.Contains(out, "ticks: 10\n")

	out, err = execute("run", path, "--condition", "post[0] == 7", "-n", "3")
	assert.NoError(err)
	assert.Contains(out, "   r0: 7\n")
}

func TestRun_Repeat(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "mask.asm", `#ip 1
addi 0 3 0
bani 0 7 0
addi 0 3 0
seti 0 0 1
`)

	out, err := execute("run", path, "-n", "2", "--repeat", "1:0")
	assert.NoError(err)
	assert.Contains(out, "repeat: first 3, last 8, 8 unique\n")

	_, err = execute("run", path, "--repeat", "1")
	assert.Error(err)
}

func TestRun_Equate(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "equ.asm", "seti TARGET 0 0\n")

	out, err := execute("run", path, "-D", "TARGET=0x20", "-n", "1")
	assert.NoError(err)
	assert.Contains(out, "   r0: 32\n")

	_, err = execute("run", path, "-D", "TARGET")
	assert.Error(err)

	_, err = execute("run", path)
	assert.ErrorIs(err, device.ErrParseNumber("TARGET"))
}

func TestRun_Config(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "loop.asm", loopProgram)
	cfg := writeFile(t, "run.yaml", "count: 4\nbreakpoints: [3]\nregisters: [0, 0, 0, 0]\n")

	out, err := execute("run", path, "--config", cfg)
	assert.NoError(err)
	assert.Contains(out, "ticks: 4\n")

	// Flags override the file.
	out, err = execute("run", path, "--config", cfg, "--break", "4")
	assert.NoError(err)
	assert.Contains(out, "ticks: 5\n")

	bad := writeFile(t, "bad.yaml", "count: 1\nregisters: [1, 2]\n")
	_, err = execute("run", path, "--config", bad)
	assert.ErrorIs(err, config.ErrCount)
}

func TestRun_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := execute("run", filepath.Join(t.TempDir(), "missing.asm"))
	assert.ErrorIs(err, os.ErrNotExist)

	_, err = execute("run")
	assert.Error(err)

	path := writeFile(t, "loop.asm", loopProgram)
	_, err = execute("run", path, "-n", "2")
	assert.ErrorIs(err, device.ErrRegisterRange)

	_, err = execute("run", path, "--condition", "pre[9] > 0")
	assert.ErrorIs(err, debugger.ErrCondition)

	_, err = execute("run", path, "--condition", "1 +")
	assert.ErrorIs(err, debugger.ErrCondition)

	_, err = execute("run", path, "-r", "x")
	assert.Error(err)
}

func TestProfile(t *testing.T) {
	assert := assert.New(t)

	out, err := execute("profile", writeFile(t, "loop.asm", loopProgram), "-n", "4")
	assert.NoError(err)
	assert.Contains(out, "COUNT")
	assert.Contains(out, "r0 = r0 + 1")
	assert.Contains(out, "ticks: 12\n")
}

func TestStep(t *testing.T) {
	assert := assert.New(t)

	out, err := execute("step", writeFile(t, "loop.asm", loopProgram), "-n", "4")
	assert.NoError(err)
	assert.Contains(out, "help")
	assert.Contains(out, "000: seti 0 0 0")
	assert.Contains(out, "ticks: 1\n")
}

func TestStep_Bounded(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "loop.asm", loopProgram)

	out, err := executeInput("continue\n", "step", path, "-n", "4", "--max-steps", "2", "--repeat", "1:0")
	assert.NoError(err)
	assert.Contains(out, "stopped at ip 1")
	assert.Contains(out, "stopped: "+debugger.ErrStepLimit.Error())
	assert.Contains(out, "repeat: first 0, last 0, 1 unique\n")
	assert.Contains(out, "ticks: 2\n")
	assert.NotContains(out, "halt at ip")

	// Breakpoints prompt rather than stop.
	out, err = executeInput("continue\ndelete 2\ncontinue\n", "step", path, "-n", "4", "--break", "2")
	assert.NoError(err)
	assert.Contains(out, "002: gtri 0 2 1")
	assert.Contains(out, "halt at ip 5")
	assert.Contains(out, "ticks: 12\n")
}

func TestOpcodes(t *testing.T) {
	assert := assert.New(t)

	out, err := execute("opcodes")
	assert.NoError(err)
	for _, op := range device.Opcodes() {
		assert.Contains(out, op.String())
	}
	assert.Contains(out, "r3 = r1 + 2")
}

func TestCandidates(t *testing.T) {
	assert := assert.New(t)

	out, err := execute("candidates", "2", "1", "2", "--before", "3,2,1,1", "--after", "3,2,2,1")
	assert.NoError(err)
	assert.Equal("addi\nmulr\nseti\n", out)

	_, err = execute("candidates", "2", "1")
	assert.Error(err)
}
