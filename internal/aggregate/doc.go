// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package aggregate holds the counters that every worker reports into.
//
// A [State] is created before the workers start and read once they have all
// joined. In between, workers write to it and the progress monitor reads the
// run counter:
//
//	state := aggregate.New(scoring)
//	// in each worker, once its share is done
//	state.RecordResult(localFails, localScore)
//	state.RecordRun(localRuns)
//	// after join
//	snap := state.Snapshot()
//
// Run and failure counts are atomics. The score total and the run duration
// histogram share one mutex, held only for the update.
package aggregate
