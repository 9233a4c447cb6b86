// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package aggregate

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestState_ZeroValue(t *testing.T) {
	s := New(true)

	snap := s.Snapshot()
	assert.Equal(t, Snapshot{Scoring: true}, snap)
	assert.Zero(t, s.CurrentRunTimes())
}

func TestState_ConcurrentRecording(t *testing.T) {
	s := New(true)

	const workers = 16

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 100 {
				s.RecordRun(1)
			}

			s.RecordResult(3, 25)
		}()
	}

	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, int64(workers*100), snap.RunTimes)
	assert.Equal(t, int64(workers*3), snap.FailTimes)
	assert.InDelta(t, float64(workers*25), snap.TotalScore, 1e-9)
}

func TestState_ScoringDisabledDiscardsScore(t *testing.T) {
	s := New(false)
	s.RecordRun(4)
	s.RecordResult(1, 99.5)

	snap := s.Snapshot()
	assert.Equal(t, int64(4), snap.RunTimes)
	assert.Equal(t, int64(1), snap.FailTimes)
	assert.Zero(t, snap.TotalScore)
	assert.False(t, snap.Scoring)
}

func TestState_RecordDurations(t *testing.T) {
	s := New(false)

	for _, ms := range []int{10, 20} {
		h := NewDurationHistogram()
		RecordDuration(h, time.Duration(ms)*time.Millisecond)
		s.RecordDurations(h)
	}

	s.RecordDurations(nil)

	d := s.Snapshot().Durations
	assert.Equal(t, int64(2), d.Count)
	assert.InDelta(t, float64(10*time.Millisecond), float64(d.Min), float64(50*time.Microsecond))
	assert.InDelta(t, float64(20*time.Millisecond), float64(d.Max), float64(50*time.Microsecond))
}

func TestRecordDuration_Clamps(t *testing.T) {
	h := NewDurationHistogram()

	RecordDuration(h, 0)
	RecordDuration(h, 2*time.Hour)

	assert.Equal(t, int64(2), h.TotalCount())
	assert.Equal(t, int64(1), h.Min())
}
