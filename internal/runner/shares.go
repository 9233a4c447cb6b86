// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

// Shares returns the number of runs for each worker that has work.
// threads below 1 is treated as 1. The result sums to max(times, 0).
func Shares(times, threads int) []int {
	if times <= 0 {
		return nil
	}

	threads = max(threads, 1)
	base, extra := times/threads, times%threads

	shares := make([]int, 0, min(threads, times))

	for i := range threads {
		n := base
		if i < extra {
			n++
		}

		if n == 0 {
			break
		}

		shares = append(shares, n)
	}

	return shares
}
