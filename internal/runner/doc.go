// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner repeats a child process a fixed number of times across a
// fixed pool of workers.
//
// # Distribution
//
// [Shares] splits the total count into one share per worker. Each share is
// times/threads, and the first times%threads workers get one extra run.
// Workers with an empty share are never started. Shares are static; there is
// no work stealing.
//
// # Basic Usage
//
//	r := runner.New(runner.Options{
//		Execer:  &executor.Executor{Path: "/bin/true"},
//		State:   aggregate.New(false),
//		Cancel:  cancellation.New(),
//		Times:   10,
//		Threads: 3,
//	})
//	err := r.Run(ctx)
//
// Run may be split into Start and Wait so the caller can poll progress on its
// own goroutine while the workers execute.
//
// # Failures and errors
//
// A run that exits non-zero is counted and the worker carries on. An error
// from the Execer, a score that cannot be parsed or output that cannot be
// echoed stops every worker and is returned from Wait.
//
// # Cancellation
//
// Each worker checks the cancellation signal before starting a run. It never
// abandons a child that is already running. Whatever a worker completed is
// always merged into the State, cancelled or not.
package runner
