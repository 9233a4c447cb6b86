// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, TimesUnset, c.Times)
	assert.Equal(t, 1, c.Threads)
	assert.False(t, c.Silent)
	assert.Zero(t, c.Timeout)
}

func TestValidate(t *testing.T) {
	good := Default()
	good.Exec = "true"
	good.Times = 0
	require.NoError(t, good.Validate())

	good.Threads = 0
	require.NoError(t, good.Validate(), "zero threads is treated as one")

	bad := Config{
		Times:   TimesUnset,
		Threads: -2,
		Timeout: -time.Second,
	}

	err := bad.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, ErrMissingExec)
	assert.ErrorIs(t, err, ErrInvalidTimes)
	assert.ErrorIs(t, err, ErrInvalidThreads)
	assert.ErrorIs(t, err, ErrInvalidTimeout)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 4)
}

func TestCommand(t *testing.T) {
	c := Config{Exec: "echo", Args: []string{"a", "b"}}
	assert.Equal(t, []string{"echo", "a", "b"}, c.Command())
	assert.Equal(t, []string{"echo"}, Config{Exec: "echo"}.Command())
}
