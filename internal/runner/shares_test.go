// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShares(t *testing.T) {
	tests := []struct {
		name    string
		times   int
		threads int
		want    []int
	}{
		{name: "remainder goes to first workers", times: 10, threads: 3, want: []int{4, 3, 3}},
		{name: "even split", times: 9, threads: 3, want: []int{3, 3, 3}},
		{name: "single worker", times: 5, threads: 1, want: []int{5}},
		{name: "zero threads means one", times: 5, threads: 0, want: []int{5}},
		{name: "negative threads means one", times: 2, threads: -4, want: []int{2}},
		{name: "more threads than runs", times: 2, threads: 5, want: []int{1, 1}},
		{name: "zero times", times: 0, threads: 4, want: nil},
		{name: "negative times", times: -3, threads: 2, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Shares(tt.times, tt.threads))
		})
	}
}

func TestShares_SumAndBalance(t *testing.T) {
	for times := 0; times <= 60; times++ {
		for threads := 1; threads <= 13; threads++ {
			shares := Shares(times, threads)

			sum := 0
			for i, s := range shares {
				sum += s

				assert.Positive(t, s)

				want := times / threads
				if i < times%threads {
					want++
				}

				assert.Equal(t, want, s, "times=%d threads=%d worker=%d", times, threads, i)
			}

			assert.Equal(t, times, sum, "times=%d threads=%d", times, threads)
			assert.LessOrEqual(t, len(shares), threads)
		}
	}
}
