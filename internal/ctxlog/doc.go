// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger renders records with PrettyHandler on stderr, so that
// stdout stays reserved for child process output and the run summary.
// The level comes from <EXE>_LOG_LEVEL, where <EXE> is the upper-cased
// executable name (TESTER_LOG_LEVEL for the tester binary). Accepted values
// are DEBUG, INFO, WARN and ERROR; anything else means WARN.
package ctxlog
