// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package score reads the numeric score a program prints on standard output.
package score

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 is returned when the output is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("output is not valid UTF-8")
	// ErrParseScore is returned when the trimmed output is not a floating-point number.
	ErrParseScore = errors.New("output is not a valid score")
)

// Parse interprets the whole of stdout, minus surrounding whitespace, as a
// float64. There is no partial parse and no default value.
func Parse(stdout []byte) (float64, error) {
	if !utf8.Valid(stdout) {
		return 0, ErrInvalidUTF8
	}

	s := strings.TrimSpace(string(stdout))

	if isHex(s) {
		return 0, fmt.Errorf("%w: %q: hexadecimal notation is not accepted", ErrParseScore, s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %q: %w", ErrParseScore, s, err)
	}

	// Out of range values saturate: ParseFloat already returned ±Inf or 0.
	return v, nil
}

func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
