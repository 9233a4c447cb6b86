// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the tester command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/tester"
	"github.com/matt-FFFFFF/tester/cmd/tester/run"
	"github.com/matt-FFFFFF/tester/cmd/tester/show"
	"github.com/matt-FFFFFF/tester/internal/cancellation"
	"github.com/matt-FFFFFF/tester/internal/ctxlog"
	"github.com/matt-FFFFFF/tester/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const interruptNotice = "Ctrl-c pressed. Terminating..."

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		show.ShowCmd,
	},
	Writer:       os.Stdout,
	ErrWriter:    os.Stderr,
	Name:         "tester",
	Usage:        "A simple cli tool to help you run a test multi times",
	ArgsUsage:    "[--] exec [exec_args...]",
	Description:  run.Description,
	Copyright:    "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Flags:        run.Flags(),
	StopOnNthArg: run.StopOnNthArg,
	Action:       run.Action,
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sig := cancellation.New()
	ctx = cancellation.NewContext(ctx, sig)

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(ctx, sigCh, onInterrupt(sig, rootCmd.Writer))

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", tester.Version, tester.Commit)

	if err := rootCmd.Run(ctx, os.Args); err != nil { // Err is handled by cli framework
		ctxlog.Logger(ctx).Debug("command execution failed", "error", err)
		os.Exit(1)
	}
}

// onInterrupt stops new runs on the first signal. A later signal escalates
// the stop; running children are only killed if the run opted in with
// --kill-on-second-interrupt.
func onInterrupt(sig *cancellation.Signal, w io.Writer) func(os.Signal) {
	return func(os.Signal) {
		if sig.Trigger() {
			fmt.Fprintln(w, interruptNotice) //nolint:errcheck
			return
		}

		sig.Escalate()
	}
}
