// Package config loads device run configuration files.
package config

import (
	"bytes"
	"io"
	"os"
	"slices"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/regdev/translate"
)

// DefaultCount is the register bank size when none is configured.
const DefaultCount = 6

var f = translate.From

var (
	ErrCount    = errors.New(f("count is smaller than the initial registers"))
	ErrNegative = errors.New(f("value must not be negative"))
)

// Config is a device run configuration.
//
//	registers: [1, 0, 0]      # initial register values
//	count: 6                  # register bank size
//	breakpoints: [28]         # stop after executing these addresses
//	max_steps: 1000000        # stop after this many instructions
//	timeout: 30s              # stop after this much wall time
//	condition: "post[0] > 9"  # stop when this expression is true
//	trace: true               # log every step
type Config struct {
	Registers   []uint64      `yaml:"registers"`
	Count       int           `yaml:"count"`
	Breakpoints []uint64      `yaml:"breakpoints"`
	MaxSteps    int           `yaml:"max_steps"`
	Timeout     time.Duration `yaml:"timeout"`
	Condition   string        `yaml:"condition"`
	Trace       bool          `yaml:"trace"`
}

// Load reads a configuration file.
func Load(path string) (cfg *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrap(err, f("reading config %v", path))
		return
	}

	cfg, err = Parse(data)
	if err != nil {
		err = errors.Wrap(err, f("config %v", path))
		return
	}

	return
}

// Parse decodes and validates a YAML configuration.
// Unknown keys are rejected. An empty document is an empty configuration.
func Parse(data []byte) (cfg *Config, err error) {
	cfg = &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err = dec.Decode(cfg)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		cfg = nil
		err = errors.Wrap(err, f("decoding config"))
		return
	}

	err = cfg.Validate()
	if err != nil {
		cfg = nil
		return
	}

	return
}

// Validate checks the configuration for consistency.
func (cfg *Config) Validate() error {
	if cfg.Count < 0 {
		return errors.Wrap(ErrNegative, f("count"))
	}
	if cfg.Count > 0 && cfg.Count < len(cfg.Registers) {
		return errors.Wrap(ErrCount, f("count %d, %d registers", cfg.Count, len(cfg.Registers)))
	}
	if cfg.MaxSteps < 0 {
		return errors.Wrap(ErrNegative, f("max_steps"))
	}
	if cfg.Timeout < 0 {
		return errors.Wrap(ErrNegative, f("timeout"))
	}

	return nil
}

// Bank returns the initial register bank: the configured registers,
// padded with zeros up to the bank size.
func (cfg *Config) Bank() []uint64 {
	count := cfg.Count
	if count == 0 {
		count = max(DefaultCount, len(cfg.Registers))
	}

	bank := make([]uint64, count)
	copy(bank, cfg.Registers)
	return bank
}

// Merge overlays the set fields of other onto cfg.
// Trace is set if either is set.
func (cfg *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Registers != nil {
		cfg.Registers = slices.Clone(other.Registers)
	}
	if other.Count != 0 {
		cfg.Count = other.Count
	}
	if other.Breakpoints != nil {
		cfg.Breakpoints = slices.Clone(other.Breakpoints)
	}
	if other.MaxSteps != 0 {
		cfg.MaxSteps = other.MaxSteps
	}
	if other.Timeout != 0 {
		cfg.Timeout = other.Timeout
	}
	if other.Condition != "" {
		cfg.Condition = other.Condition
	}
	cfg.Trace = cfg.Trace || other.Trace
}
