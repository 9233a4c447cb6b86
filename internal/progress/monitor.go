// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"time"

	"github.com/matt-FFFFFF/tester/internal/cancellation"
)

// DefaultInterval is the polling interval used when Monitor.Interval is zero.
const DefaultInterval = 100 * time.Millisecond

// Counter is read by the Monitor on every tick.
type Counter interface {
	CurrentRunTimes() int64
}

// Display renders a position out of a known total.
type Display interface {
	SetPosition(n int64)
	Finish()
}

// Monitor drives a Display from a Counter.
type Monitor struct {
	Total    int64
	Interval time.Duration
	Counter  Counter
	Cancel   *cancellation.Signal
	Display  Display
	// Stop, if set, ends monitoring when closed. The runner's Done channel
	// goes here so a fatal error does not leave the monitor waiting for a
	// total that will never be reached.
	Stop <-chan struct{}
}

// Run blocks until the counter reaches Total, the cancellation signal is
// triggered, Stop is closed or ctx is done. It calls Display.Finish before
// returning.
func (m *Monitor) Run(ctx context.Context) {
	interval := m.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	defer m.Display.Finish()

	for {
		if m.Cancel != nil && m.Cancel.Triggered() {
			return
		}

		pos := m.Counter.CurrentRunTimes()
		m.Display.SetPosition(pos)

		if pos >= m.Total {
			return
		}

		select {
		case <-ticker.C:
		case <-m.Stop:
			m.Display.SetPosition(m.Counter.CurrentRunTimes())
			return
		case <-ctx.Done():
			return
		}
	}
}
