// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command regdev assembles and runs register device programs.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"
)

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout)
	if err := cmd.Execute(); err != nil {
		log.Error(err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
