// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package aggregate

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	lowestMicros  = 1
	highestMicros = int64(time.Hour / time.Microsecond)
	sigFigs       = 3
)

// DurationStats summarises run durations.
type DurationStats struct {
	Count int64
	Min   time.Duration
	P50   time.Duration
	P90   time.Duration
	P99   time.Duration
	Max   time.Duration
}

// NewDurationHistogram returns a histogram of microseconds from 1µs to one
// hour at three significant figures, suitable for RecordDuration and
// State.RecordDurations.
func NewDurationHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(lowestMicros, highestMicros, sigFigs)
}

// RecordDuration adds d to h, clamping it to the trackable range.
func RecordDuration(h *hdrhistogram.Histogram, d time.Duration) {
	us := max(d.Microseconds(), h.LowestTrackableValue())
	us = min(us, h.HighestTrackableValue())

	_ = h.RecordValue(us)
}

func statsOf(h *hdrhistogram.Histogram) DurationStats {
	if h.TotalCount() == 0 {
		return DurationStats{}
	}

	us := func(v int64) time.Duration { return time.Duration(v) * time.Microsecond }

	return DurationStats{
		Count: h.TotalCount(),
		Min:   us(h.Min()),
		P50:   us(h.ValueAtQuantile(50)),
		P90:   us(h.ValueAtQuantile(90)),
		P99:   us(h.ValueAtQuantile(99)),
		Max:   us(h.Max()),
	}
}
