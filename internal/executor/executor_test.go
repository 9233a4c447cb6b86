// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package executor

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/matt-FFFFFF/tester/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ctxlog.LevelVar.Set(slog.LevelDebug)
	t.Cleanup(func() { ctxlog.LevelVar.Set(slog.LevelWarn) })

	return ctxlog.New(ctx, ctxlog.DefaultLogger)
}

func TestExecutorRun_Success(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := &Executor{Path: "/bin/sh", Args: []string{"-c", "echo hello; echo oops >&2"}}

	o, err := e.Run(testContext(t))
	require.NoError(t, err)

	assert.True(t, o.Success)
	assert.Equal(t, 0, o.ExitCode)
	assert.Equal(t, "hello\n", string(o.Stdout))
	assert.Equal(t, "oops\n", string(o.Stderr))
	assert.False(t, o.TimedOut)
	assert.Positive(t, o.Duration)
}

func TestExecutorRun_NonZeroExitIsFailureNotError(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := &Executor{Path: "/bin/sh", Args: []string{"-c", "exit 3"}}

	o, err := e.Run(testContext(t))
	require.NoError(t, err)

	assert.False(t, o.Success)
	assert.Equal(t, 3, o.ExitCode)
}

func TestExecutorRun_KilledBySignal(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := &Executor{Path: "/bin/sh", Args: []string{"-c", "kill -9 $$"}}

	o, err := e.Run(testContext(t))
	require.NoError(t, err)

	assert.False(t, o.Success)
	assert.Equal(t, -1, o.ExitCode)
}

func TestExecutorRun_SearchesPath(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := &Executor{Path: "sh", Args: []string{"-c", "printf 2.5"}}

	o, err := e.Run(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, "2.5", string(o.Stdout))
}

func TestExecutorRun_NotFound(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := &Executor{Path: "/definitely/not/a/real/binary"}

	_, err := e.Run(testContext(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCouldNotStartProcess)
}

func TestExecutorRun_NotExecutable(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(f, []byte("not a program"), 0o644))

	_, err := (&Executor{Path: f}).Run(testContext(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCouldNotStartProcess)
}

func TestExecutorRun_NotInPath(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, err := (&Executor{Path: "no-such-command-for-tester"}).Run(testContext(t))
	assert.ErrorIs(t, err, ErrCouldNotStartProcess)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestExecutorRun_LargeOutput(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Larger than a pipe buffer on every supported platform.
	e := &Executor{Path: "/bin/sh", Args: []string{"-c", "head -c 1048576 /dev/zero; head -c 300000 /dev/zero >&2"}}

	o, err := e.Run(testContext(t))
	require.NoError(t, err)

	assert.True(t, o.Success)
	assert.Len(t, o.Stdout, 1048576)
	assert.Len(t, o.Stderr, 300000)
}

func TestExecutorRun_Timeout(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := &Executor{
		Path:    "/bin/sh",
		Args:    []string{"-c", "echo started; exec sleep 10"},
		Timeout: 100 * time.Millisecond,
	}

	start := time.Now()
	o, err := e.Run(testContext(t))
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.True(t, o.TimedOut)
	assert.False(t, o.Success)
	assert.Equal(t, "started\n", string(o.Stdout))
}

func TestExecutorRun_TimeoutNotReached(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := &Executor{Path: "/bin/sh", Args: []string{"-c", "true"}, Timeout: 5 * time.Second}

	o, err := e.Run(testContext(t))
	require.NoError(t, err)
	assert.True(t, o.Success)
	assert.False(t, o.TimedOut)
}

func TestExecutorRun_ContextCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(testContext(t))

	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	o, err := (&Executor{Path: "/bin/sh", Args: []string{"-c", "exec sleep 10"}}).Run(ctx)
	require.NoError(t, err)
	assert.False(t, o.Success)
	assert.False(t, o.TimedOut)
}
