// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress shows how far a test run has got.
//
// A [Monitor] polls a run counter on a fixed interval and forwards the value
// to a [Display] until the target is reached or the run is cancelled, then
// finishes the display exactly once. [Bar] is the interactive display, a
// bubbletea program drawing a spinner, elapsed time, a bar, the position and
// an ETA on stderr. [Line] prints plain lines for output that is not a terminal.
package progress
