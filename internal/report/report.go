// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report renders the result of a test run and persists it.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/matt-FFFFFF/tester/internal/aggregate"
)

// ErrWriteText is returned when the text summary cannot be written.
var ErrWriteText = errors.New("failed to write summary")

// Summary is the final, serializable view of a run.
type Summary struct {
	ID         string // ULID, sortable by start time
	Command    []string
	StartedAt  time.Time
	Elapsed    time.Duration
	RunTimes   int64
	FailTimes  int64
	Scoring    bool
	TotalScore float64
	Timing     bool
	Durations  aggregate.DurationStats
}

// FromSnapshot builds a Summary for a run that started at startedAt.
func FromSnapshot(snap aggregate.Snapshot, command []string, startedAt time.Time, elapsed time.Duration, timing bool) Summary {
	return Summary{
		ID:         ulid.MustNew(ulid.Timestamp(startedAt), ulid.DefaultEntropy()).String(),
		Command:    command,
		StartedAt:  startedAt,
		Elapsed:    elapsed,
		RunTimes:   snap.RunTimes,
		FailTimes:  snap.FailTimes,
		Scoring:    snap.Scoring,
		TotalScore: snap.TotalScore,
		Timing:     timing,
		Durations:  snap.Durations,
	}
}

// Average returns the mean score. With failures the mean is taken over
// successful runs only. ok is false when there is nothing to divide by.
func (s Summary) Average() (avg float64, ok bool) {
	n := s.RunTimes
	if s.FailTimes > 0 {
		n -= s.FailTimes
	}

	if n <= 0 {
		return 0, false
	}

	return s.TotalScore / float64(n), true
}

// WriteText writes the human readable summary.
func (s Summary) WriteText(w io.Writer) error {
	var b strings.Builder

	if s.FailTimes > 0 {
		fmt.Fprintf(&b, "#tester finished. Failed %d / %d\n", s.FailTimes, s.RunTimes)
	} else {
		fmt.Fprintf(&b, "#tester finished. No failure in %d runs.\n", s.RunTimes)
	}

	if s.Scoring {
		avg, ok := s.Average()

		switch {
		case !ok:
			b.WriteString("#tester average score: n/a (no successful runs).\n")
		case s.FailTimes > 0:
			fmt.Fprintf(&b, "#tester average score(Ignore failed runs): %s.\n", formatScore(avg))
		default:
			fmt.Fprintf(&b, "#tester average score: %s.\n", formatScore(avg))
		}
	}

	if s.Timing && s.Durations.Count > 0 {
		d := s.Durations
		fmt.Fprintf(&b, "#tester run duration: min=%s p50=%s p90=%s p99=%s max=%s\n",
			d.Min, d.P50, d.P90, d.P99, d.Max)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Join(ErrWriteText, err)
	}

	return nil
}

// WriteDetails writes the run metadata kept in a results file.
func (s Summary) WriteDetails(w io.Writer) error {
	_, err := fmt.Fprintf(w, "run %s\ncommand: %s\nstarted: %s\nelapsed: %s\n",
		s.ID, strings.Join(s.Command, " "), s.StartedAt.Format(time.RFC3339), s.Elapsed.Round(time.Millisecond))
	if err != nil {
		return errors.Join(ErrWriteText, err)
	}

	return nil
}

// formatScore prints the shortest representation that round-trips.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
