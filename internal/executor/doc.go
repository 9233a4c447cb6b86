// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package executor runs one instance of an external program and captures
// what it did.
//
// Standard output and standard error are always piped into memory; the child
// never writes to the terminal directly. A run that exits non-zero, is killed
// by a signal or exceeds its timeout is reported through Outcome and is not an
// error. Errors are reserved for conditions that make further runs pointless:
// the program cannot be started, or the operating system fails while waiting
// for it.
package executor
