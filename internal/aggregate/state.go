// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package aggregate

import (
	"sync"
	"sync/atomic"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// State is the process-wide result of a test run. It is safe for concurrent use.
type State struct {
	runTimes  atomic.Int64
	failTimes atomic.Int64
	scoring   bool

	mu         sync.Mutex
	totalScore float64
	durations  *hdrhistogram.Histogram
}

// Snapshot is a copy of State taken at one instant.
type Snapshot struct {
	RunTimes   int64
	FailTimes  int64
	Scoring    bool
	TotalScore float64
	Durations  DurationStats
}

// New returns a zeroed State. When scoring is false, score sums passed to
// RecordResult are discarded.
func New(scoring bool) *State {
	return &State{
		scoring:   scoring,
		durations: NewDurationHistogram(),
	}
}

// Scoring reports whether scores are being accumulated.
func (s *State) Scoring() bool {
	return s.scoring
}

// RecordRun adds count completed runs.
func (s *State) RecordRun(count int64) {
	s.runTimes.Add(count)
}

// RecordResult adds a worker's failure count and, when scoring, its score sum.
func (s *State) RecordResult(failCount int64, scoreSum float64) {
	s.failTimes.Add(failCount)

	if !s.scoring {
		return
	}

	s.mu.Lock()
	s.totalScore += scoreSum
	s.mu.Unlock()
}

// RecordDurations merges a worker's run durations. h is not retained.
func (s *State) RecordDurations(h *hdrhistogram.Histogram) {
	if h == nil {
		return
	}

	s.mu.Lock()
	s.durations.Merge(h)
	s.mu.Unlock()
}

// CurrentRunTimes returns the number of runs recorded so far.
func (s *State) CurrentRunTimes() int64 {
	return s.runTimes.Load()
}

// Snapshot copies the current values.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		RunTimes:   s.runTimes.Load(),
		FailTimes:  s.failTimes.Load(),
		Scoring:    s.scoring,
		TotalScore: s.totalScore,
		Durations:  statsOf(s.durations),
	}
}
