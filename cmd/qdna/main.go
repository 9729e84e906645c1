// SPDX-License-Identifier: MIT

// Command qdna simulates exciton dynamics on one DNA sequence.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/qdna/internal/cmd/qdna"
)

func main() {
	cfg, err := qdna.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		exitf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := qdna.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		stop()
		exitf("qdna: %v", err)
	}
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
