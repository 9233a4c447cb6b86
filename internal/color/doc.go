// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI SGR escape codes.
//
// Colour is decided once at program start: NO_COLOR disables it, FORCE_COLOR
// enables it, otherwise it is on only when stderr is a terminal. Diagnostics
// are written to stderr, so that is the stream that is checked.
package color
