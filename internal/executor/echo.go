// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package executor

import (
	"errors"
	"io"
	"sync"
)

// ErrEchoOutput is returned when captured output cannot be written back.
var ErrEchoOutput = errors.New("failed to echo child output")

// Echo replays captured child output. One Outcome's stdout and stderr are
// written together, so output from concurrent workers is never interleaved
// within a run.
type Echo struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
}

// NewEcho returns an Echo writing to the given streams.
func NewEcho(stdout, stderr io.Writer) *Echo {
	return &Echo{stdout: stdout, stderr: stderr}
}

// Write writes o.Stdout verbatim followed by o.Stderr.
func (e *Echo) Write(o Outcome) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.stdout.Write(o.Stdout); err != nil {
		return errors.Join(ErrEchoOutput, err)
	}

	if _, err := e.stderr.Write(o.Stderr); err != nil {
		return errors.Join(ErrEchoOutput, err)
	}

	return nil
}

// Stderr returns a writer to the stderr stream that is serialized with Write.
// Other output sharing that stream goes through it.
func (e *Echo) Stderr() io.Writer {
	return lockedStderr{e}
}

type lockedStderr struct{ e *Echo }

func (l lockedStderr) Write(p []byte) (int, error) {
	l.e.mu.Lock()
	defer l.e.mu.Unlock()

	return l.e.stderr.Write(p) //nolint:wrapcheck
}
