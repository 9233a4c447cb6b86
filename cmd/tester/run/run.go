// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements the default action of the tester CLI: run an
// executable a number of times and print a summary.
package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/matt-FFFFFF/tester/internal/aggregate"
	"github.com/matt-FFFFFF/tester/internal/cancellation"
	"github.com/matt-FFFFFF/tester/internal/config"
	"github.com/matt-FFFFFF/tester/internal/ctxlog"
	"github.com/matt-FFFFFF/tester/internal/executor"
	"github.com/matt-FFFFFF/tester/internal/progress"
	"github.com/matt-FFFFFF/tester/internal/report"
	"github.com/matt-FFFFFF/tester/internal/runner"
	"github.com/matt-FFFFFF/tester/internal/tracing"
	"github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel/trace"
)

const (
	timesFlag        = "times"
	threadsFlag      = "threads"
	silentFlag       = "silent"
	scoreFlag        = "score"
	progressFlag     = "progress"
	configFlag       = "config"
	timeoutFlag      = "timeout"
	timingFlag       = "timing"
	outFlag          = "out"
	otlpEndpointFlag = "otlp-endpoint"
	otlpInsecureFlag = "otlp-insecure"
	killFlag         = "kill-on-second-interrupt"
	cliExitStr       = ""

	shutdownTimeout = 5 * time.Second
)

var (
	// ErrWriteResults is returned when the results file cannot be written.
	ErrWriteResults = errors.New("failed to write results file")
	// ErrTracing is returned when span export cannot be set up.
	ErrTracing = errors.New("failed to initialise tracing")
)

// Description is the long help text of the root command.
const Description = `Run an executable a number of times, optionally in parallel, and report
how many runs failed. With --score each successful run must print a number
on stdout and the average is reported.

Options may also come from a YAML or HCL config file (--config). Config file
URLs use Hashicorp's go-getter syntax, see https://github.com/hashicorp/go-getter.
Flags given on the command line override values from the file.

The first argument that is not a flag names the executable. An executable
called "show" collides with the show subcommand; give it as a path instead,
for example ./show or /usr/local/bin/show.

Press Ctrl-C to stop starting new runs; runs in flight are allowed to finish
and the summary is still printed. With --kill-on-second-interrupt a second
Ctrl-C kills the runs in flight, which are then counted as failed.`

// stopAfterExec ends flag parsing at the executable so its own flags are
// passed through untouched.
var stopAfterExec = 1

// StopOnNthArg is used by the root command.
var StopOnNthArg = &stopAfterExec

// Flags returns the flags of the root command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:     timesFlag,
			Aliases:  []string{"n"},
			Usage:    "Total number of runs. Required unless set in the config file",
			OnlyOnce: true,
		},
		&cli.IntFlag{
			Name:     threadsFlag,
			Aliases:  []string{"p"},
			Usage:    "Number of runs to execute at the same time",
			Value:    1,
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        silentFlag,
			Usage:       "Do not echo the output of each run",
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        scoreFlag,
			Aliases:     []string{"s"},
			Usage:       "Treat the stdout of each successful run as a number and report the average",
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        progressFlag,
			Usage:       "Show progress on stderr",
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.StringFlag{
			Name:      configFlag,
			Aliases:   []string{"c"},
			Usage:     "YAML or HCL config file. Supports Hashicorp's go-getter syntax",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.DurationFlag{
			Name:     timeoutFlag,
			Usage:    "Kill a run that takes longer than this and count it as failed. 0 disables the timeout",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        killFlag,
			Usage:       "Kill running children when Ctrl-C is pressed a second time and count them as failed",
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        timingFlag,
			Usage:       "Report run duration percentiles",
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.StringFlag{
			Name:      outFlag,
			Aliases:   []string{"o"},
			Usage:     "Write the summary to this file. Use 'tester show' to read it",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:     otlpEndpointFlag,
			Usage:    "Export one span per run to this OTLP/HTTP endpoint (host:port)",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        otlpInsecureFlag,
			Usage:       "Use plain HTTP for the OTLP endpoint",
			DefaultText: "false",
			OnlyOnce:    true,
		},
	}
}

// Streams are the destinations of a run's output.
type Streams struct {
	Stdout io.Writer // child stdout
	Stderr io.Writer // child stderr and progress display
}

// Action is the action of the root command.
func Action(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	cfg, err := buildConfig(ctx, cmd)
	if err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	provider, err := tracing.Init(ctx, tracing.Config{
		Endpoint: cfg.OTLPEndpoint,
		Insecure: cmd.Bool(otlpInsecureFlag),
	})
	if err != nil {
		logger.Error(errors.Join(ErrTracing, err).Error())
		return cli.Exit(cliExitStr, 1)
	}

	defer func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := provider.Shutdown(sctx); err != nil {
			logger.Warn("failed to flush spans", "error", err)
		}
	}()

	sum, err := Execute(ctx, cfg, cancellation.FromContext(ctx), provider.Tracer(), Streams{
		Stdout: cmd.Writer,
		Stderr: cmd.ErrWriter,
	})
	if err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	if cfg.Out != "" {
		if err := writeResults(cfg.Out, sum); err != nil {
			logger.Error(err.Error())
			return cli.Exit(cliExitStr, 1)
		}

		logger.Info(fmt.Sprintf("Results written to %s", cfg.Out))
	}

	if err := sum.WriteText(cmd.Writer); err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

// buildConfig layers the config file, then flags, then positional arguments
// over the defaults.
func buildConfig(ctx context.Context, cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()

	if src := cmd.String(configFlag); src != "" {
		f, err := config.Load(ctx, src)
		if err != nil {
			return cfg, err
		}

		if err := f.Apply(&cfg); err != nil {
			return cfg, err
		}
	}

	if cmd.IsSet(timesFlag) {
		cfg.Times = cmd.Int(timesFlag)
	}

	if cmd.IsSet(threadsFlag) {
		cfg.Threads = cmd.Int(threadsFlag)
	}

	if cmd.IsSet(timeoutFlag) {
		cfg.Timeout = cmd.Duration(timeoutFlag)
	}

	if cmd.IsSet(outFlag) {
		cfg.Out = cmd.String(outFlag)
	}

	if cmd.IsSet(otlpEndpointFlag) {
		cfg.OTLPEndpoint = cmd.String(otlpEndpointFlag)
	}

	for name, dst := range map[string]*bool{
		silentFlag:   &cfg.Silent,
		scoreFlag:    &cfg.Score,
		progressFlag: &cfg.Progress,
		timingFlag:   &cfg.Timing,
		killFlag:     &cfg.KillOnSecondInterrupt,
	} {
		if cmd.IsSet(name) {
			*dst = cmd.Bool(name)
		}
	}

	if args := cmd.Args().Slice(); len(args) > 0 {
		cfg.Exec = args[0]
		cfg.Args = args[1:]
	}

	return cfg, cfg.Validate()
}

// Execute runs cfg to completion, or until sig is triggered, and returns the
// summary. A non-nil error means the run was aborted and the summary must
// not be reported.
func Execute(ctx context.Context, cfg config.Config, sig *cancellation.Signal, tracer trace.Tracer, streams Streams) (report.Summary, error) {
	state := aggregate.New(cfg.Score)

	// Progress lines share stderr with echoed child output and must take
	// the same lock.
	progressOut := streams.Stderr

	var echo *executor.Echo
	if !cfg.Silent {
		echo = executor.NewEcho(streams.Stdout, streams.Stderr)
		progressOut = echo.Stderr()
	}

	r := runner.New(runner.Options{
		Execer: &executor.Executor{
			Path:    cfg.Exec,
			Args:    cfg.Args,
			Timeout: cfg.Timeout,
		},
		State:    state,
		Cancel:   sig,
		Echo:     echo,
		Tracer:   tracer,
		Name:     filepath.Base(cfg.Exec),
		Times:    cfg.Times,
		Threads:  cfg.Threads,
		Progress: cfg.Progress,
	})

	startedAt := time.Now()

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	var logBuf *bytes.Buffer

	var display progress.Display

	if cfg.Progress {
		total := int64(max(cfg.Times, 0))

		if progress.IsTerminal(streams.Stderr) {
			// The bar owns the terminal, hold log records until it is done.
			logBuf = &bytes.Buffer{}
			runCtx = ctxlog.NewBuffered(runCtx, logBuf)
			display = progress.NewBar(total, streams.Stderr)
		} else {
			display = progress.NewLine(progressOut, total)
		}
	}

	ctxlog.Debug(runCtx, "starting runs",
		"executable", cfg.Exec,
		"times", cfg.Times,
		"threads", r.Workers(),
	)

	if cfg.KillOnSecondInterrupt {
		go killOnEscalation(runCtx, sig, r.Done(), stop)
	}

	r.Start(runCtx)

	if display != nil {
		m := &progress.Monitor{
			Total:   int64(max(cfg.Times, 0)),
			Counter: state,
			Cancel:  sig,
			Display: display,
			Stop:    r.Done(),
		}
		m.Run(runCtx)
	}

	err := r.Wait()

	if logBuf != nil {
		logBuf.WriteTo(streams.Stderr) //nolint:errcheck
	}

	if err != nil {
		return report.Summary{}, err
	}

	return report.FromSnapshot(state.Snapshot(), cfg.Command(), startedAt, time.Since(startedAt), cfg.Timing), nil
}

// killOnEscalation cancels the run, which kills every running child, once sig
// is escalated. It returns when done is closed.
func killOnEscalation(ctx context.Context, sig *cancellation.Signal, done <-chan struct{}, cancel context.CancelFunc) {
	select {
	case <-sig.Escalated():
		ctxlog.Warn(ctx, "interrupt repeated, killing running processes")
		cancel()
	case <-done:
	}
}

func writeResults(name string, sum report.Summary) error {
	f, err := config.FsFactory().Create(name)
	if err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	defer f.Close() //nolint:errcheck

	if err := sum.WriteBinary(f); err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	return nil
}
