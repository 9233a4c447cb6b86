// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"encoding/gob"
	"errors"
	"io"
)

var (
	// ErrWriteGob is returned when writing the summary to a binary format fails.
	ErrWriteGob = errors.New("failed to write binary results")
	// ErrReadGob is returned when a binary results file cannot be decoded.
	ErrReadGob = errors.New("failed to decode binary results")
)

// WriteBinary encodes s for a later `tester show`.
func (s Summary) WriteBinary(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(s); err != nil {
		return errors.Join(ErrWriteGob, err)
	}

	return nil
}

// ReadBinary decodes a Summary written by WriteBinary.
func ReadBinary(r io.Reader) (Summary, error) {
	var s Summary
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return Summary{}, errors.Join(ErrReadGob, err)
	}

	return s, nil
}
