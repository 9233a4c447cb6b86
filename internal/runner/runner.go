// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/matt-FFFFFF/tester/internal/aggregate"
	"github.com/matt-FFFFFF/tester/internal/cancellation"
	"github.com/matt-FFFFFF/tester/internal/ctxlog"
	"github.com/matt-FFFFFF/tester/internal/executor"
	"github.com/matt-FFFFFF/tester/internal/score"
	"github.com/matt-FFFFFF/tester/internal/tracing"
)

// Execer performs one run of the program under test.
type Execer interface {
	Run(ctx context.Context) (executor.Outcome, error)
}

// Options configure the Runner.
type Options struct {
	Execer  Execer               // required
	State   *aggregate.State     // required
	Cancel  *cancellation.Signal // required
	Echo    *executor.Echo       // nil suppresses output echo
	Tracer  trace.Tracer         // nil disables spans
	Name    string               // executable name used for span names
	Times   int                  // total runs across all workers
	Threads int                  // worker count, values below 1 mean 1
	// Progress publishes every run to State as it completes rather than
	// once per worker at the end.
	Progress bool
}

func (o *Options) normalize() {
	if o.Threads <= 0 {
		o.Threads = 1
	}

	if o.Times < 0 {
		o.Times = 0
	}

	if o.Tracer == nil {
		o.Tracer = noop.NewTracerProvider().Tracer("")
	}
}

// Runner executes a fixed number of runs. It is single use.
type Runner struct {
	opt     Options
	shares  []int
	done    chan struct{}
	started bool
	err     error
}

// New returns a Runner for opt.
func New(opt Options) *Runner {
	opt.normalize()

	return &Runner{
		opt:    opt,
		shares: Shares(opt.Times, opt.Threads),
		done:   make(chan struct{}),
	}
}

// Workers returns the number of workers Start launches.
func (r *Runner) Workers() int {
	return len(r.shares)
}

// Start launches one goroutine per share and returns immediately.
// Calls after the first do nothing.
func (r *Runner) Start(ctx context.Context) {
	if r.started {
		return
	}

	r.started = true

	ctxlog.Debug(ctx, "runner", "detail", "starting workers", "times", r.opt.Times, "shares", r.shares)

	g, gctx := errgroup.WithContext(ctx)

	for id, share := range r.shares {
		g.Go(func() error {
			return r.work(gctx, id, share)
		})
	}

	go func() {
		r.err = g.Wait()
		close(r.done)
	}()
}

// Done is closed once every worker has returned.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until every worker has returned and reports the first fatal error.
func (r *Runner) Wait() error {
	if !r.started {
		return nil
	}

	<-r.done

	return r.err
}

// Run is Start followed by Wait.
func (r *Runner) Run(ctx context.Context) error {
	r.Start(ctx)
	return r.Wait()
}

func (r *Runner) work(ctx context.Context, id, share int) error {
	logger := ctxlog.Logger(ctx).With("worker", id, "share", share)
	state := r.opt.State

	var (
		runs, fails int64
		scoreSum    float64
	)

	hist := aggregate.NewDurationHistogram()

	defer func() {
		state.RecordResult(fails, scoreSum)
		state.RecordDurations(hist)

		if !r.opt.Progress {
			state.RecordRun(runs)
		}

		logger.Debug("worker finished", "runs", runs, "fails", fails)
	}()

	for i := range share {
		if r.opt.Cancel.Triggered() {
			logger.Debug("cancellation requested, stopping", "completed", i)
			return nil
		}

		if ctx.Err() != nil {
			logger.Debug("another worker failed, stopping", "completed", i)
			return nil
		}

		runCtx, span := tracing.StartRunSpan(ctx, r.opt.Tracer, r.opt.Name, id)

		o, err := r.opt.Execer.Run(runCtx)
		if err != nil {
			tracing.EndRunSpan(span, false, err)
			return fmt.Errorf("worker %d, run %d: %w", id, i+1, err)
		}

		aggregate.RecordDuration(hist, o.Duration)

		if err := r.iteration(o, &fails, &scoreSum); err != nil {
			tracing.EndRunSpan(span, o.Success, err)
			return fmt.Errorf("worker %d, run %d: %w", id, i+1, err)
		}

		runs++

		if r.opt.Progress {
			state.RecordRun(1)
		}

		tracing.EndRunSpan(span, o.Success, nil,
			tracing.AttrExitCode.Int(o.ExitCode),
			tracing.AttrTimedOut.Bool(o.TimedOut),
		)
	}

	return nil
}

// iteration echoes o and folds it into the worker's local totals.
func (r *Runner) iteration(o executor.Outcome, fails *int64, scoreSum *float64) error {
	if r.opt.Echo != nil {
		if err := r.opt.Echo.Write(o); err != nil {
			return err
		}
	}

	if !o.Success {
		*fails++
		return nil
	}

	if !r.opt.State.Scoring() {
		return nil
	}

	v, err := score.Parse(o.Stdout)
	if err != nil {
		return err
	}

	*scoreSum += v

	return nil
}
