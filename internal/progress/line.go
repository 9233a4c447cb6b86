// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Line is a Display that writes one line per position change.
type Line struct {
	mu       sync.Mutex
	w        io.Writer
	total    int64
	start    time.Time
	last     int64
	finished bool
	now      func() time.Time
}

// NewLine returns a Line writing to w.
func NewLine(w io.Writer, total int64) *Line {
	return &Line{w: w, total: total, start: time.Now(), last: -1, now: time.Now}
}

// SetPosition implements Display.
func (l *Line) SetPosition(n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.finished || n == l.last {
		return
	}

	l.last = n
	elapsed := l.now().Sub(l.start)

	fmt.Fprintf(l.w, "[%s] %d/%d (%s)\n", formatElapsed(elapsed), n, l.total, formatETA(ETA(elapsed, n, l.total))) //nolint:errcheck
}

// Finish implements Display. Later calls to SetPosition are ignored.
func (l *Line) Finish() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.finished = true
}
