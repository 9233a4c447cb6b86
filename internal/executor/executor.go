// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package executor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matt-FFFFFF/tester/internal/ctxlog"
)

// pipeGrace bounds how long output is drained after the watchdog kills a
// child. Grandchildren may still hold the pipes open.
const pipeGrace = time.Second

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrWaitFailed is returned when waiting for the process fails at the operating system level.
	ErrWaitFailed = errors.New("failed waiting for process")
	// ErrFailedToReadBuffer is returned when the output pipes could not be read.
	ErrFailedToReadBuffer = errors.New("failed to read buffer")
)

// Outcome is the result of a single run.
type Outcome struct {
	Success  bool
	ExitCode int // -1 when the process was terminated by a signal.
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
	TimedOut bool
}

// Executor runs Path with Args. It holds no per-run state and may be shared
// between goroutines.
type Executor struct {
	Path string
	Args []string
	// Timeout, if positive, kills a run that takes longer. The run is then
	// reported as failed with TimedOut set.
	Timeout time.Duration
}

// Run starts the program, waits for it to exit, and returns its outcome.
// If ctx is cancelled the child is killed and the run is reported as failed.
func (e *Executor) Run(ctx context.Context) (Outcome, error) {
	logger := ctxlog.Logger(ctx).With("executable", e.Path)

	path, err := exec.LookPath(e.Path)
	if err != nil {
		return Outcome{ExitCode: -1}, errors.Join(ErrCouldNotStartProcess, err)
	}

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return Outcome{ExitCode: -1}, errors.Join(ErrFailedToCreatePipe, err)
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		closeAll(rOut, wOut)
		return Outcome{ExitCode: -1}, errors.Join(ErrFailedToCreatePipe, err)
	}

	argv := append([]string{e.Path}, e.Args...)

	ps, err := os.StartProcess(path, argv, &os.ProcAttr{
		Env:   os.Environ(),
		Files: []*os.File{os.Stdin, wOut, wErr},
	})
	start := time.Now()

	// The child has its own copies of the write ends.
	closeAll(wOut, wErr)

	if err != nil {
		closeAll(rOut, rErr)
		return Outcome{ExitCode: -1}, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid, "args", e.Args)

	var stdout, stderr bytes.Buffer

	drained := make(chan struct{})

	var copyErr error

	go func() {
		defer close(drained)

		var wg sync.WaitGroup

		var outErr, errErr error

		wg.Add(2)

		go func() {
			defer wg.Done()

			_, outErr = io.Copy(&stdout, rOut)
		}()

		go func() {
			defer wg.Done()

			_, errErr = io.Copy(&stderr, rErr)
		}()

		wg.Wait()

		copyErr = errors.Join(outErr, errErr)
	}()

	var (
		killed   atomic.Bool
		timedOut atomic.Bool
	)

	exited := make(chan struct{})
	watchdogDone := make(chan struct{})

	go func() {
		defer close(watchdogDone)

		var deadline <-chan time.Time

		if e.Timeout > 0 {
			t := time.NewTimer(e.Timeout)
			defer t.Stop()

			deadline = t.C
		}

		select {
		case <-deadline:
			logger.Debug("timeout exceeded, killing process", "pid", ps.Pid, "timeout", e.Timeout)
			timedOut.Store(true)
			killed.Store(killPs(ctx, ps))
		case <-ctx.Done():
			logger.Debug("context done, killing process", "pid", ps.Pid)
			killed.Store(killPs(ctx, ps))
		case <-exited:
		}
	}()

	state, waitErr := ps.Wait()
	duration := time.Since(start)

	close(exited)
	<-watchdogDone

	forced := false

	if killed.Load() {
		select {
		case <-drained:
		case <-time.After(pipeGrace):
			forced = true

			closeAll(rOut, rErr)
			<-drained
		}
	} else {
		<-drained
	}

	if !forced {
		closeAll(rOut, rErr)
	}

	if waitErr != nil {
		return Outcome{ExitCode: -1, Duration: duration}, errors.Join(ErrWaitFailed, waitErr)
	}

	if copyErr != nil && !forced {
		return Outcome{ExitCode: -1, Duration: duration}, errors.Join(ErrFailedToReadBuffer, copyErr)
	}

	o := Outcome{
		Success:  state.Success() && !timedOut.Load(),
		ExitCode: state.ExitCode(),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: duration,
		TimedOut: timedOut.Load(),
	}

	logger.Debug("process finished",
		"pid", ps.Pid,
		"exitCode", o.ExitCode,
		"timedOut", o.TimedOut,
		"duration", duration,
		"stdoutBytes", len(o.Stdout),
		"stderrBytes", len(o.Stderr),
	)

	return o, nil
}

// killPs kills the process and reports whether the kill was delivered.
func killPs(ctx context.Context, ps *os.Process) bool {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return false
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

		return false
	}

	ctxlog.Info(ctx, "process killed", "pid", ps.Pid)

	return true
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
