// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config builds the immutable run configuration.
//
// Values come from an optional config file (YAML, or HCL for files ending in
// .hcl) and from command line flags, with flags taking precedence. The file
// may be a local path or any source understood by Hashicorp's go-getter.
package config

import (
	"errors"
	"time"

	"github.com/hashicorp/go-multierror"
)

// TimesUnset marks Config.Times as not provided.
const TimesUnset = -1

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrMissingExec is returned when no executable is given.
	ErrMissingExec = errors.New("an executable to run is required")
	// ErrInvalidTimes is returned when the run count is missing or negative.
	ErrInvalidTimes = errors.New("the number of runs (--times) is required and must not be negative")
	// ErrInvalidThreads is returned for a negative worker count.
	ErrInvalidThreads = errors.New("the number of threads must not be negative")
	// ErrInvalidTimeout is returned for a negative timeout.
	ErrInvalidTimeout = errors.New("the timeout must not be negative")
)

// Config is built once and then only read. Pass it by value.
type Config struct {
	Exec     string
	Args     []string
	Times    int
	Threads  int // 0 is treated as 1
	Silent   bool
	Score    bool
	Progress bool

	Timeout      time.Duration // per run, 0 means none
	Timing       bool
	Out          string
	OTLPEndpoint string

	// KillOnSecondInterrupt kills running children when the stop request
	// is repeated. Off by default so a first interrupt never kills.
	KillOnSecondInterrupt bool
}

// Default returns the configuration used before any file or flag is applied.
func Default() Config {
	return Config{
		Times:   TimesUnset,
		Threads: 1,
	}
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var err error

	if c.Exec == "" {
		err = multierror.Append(err, ErrMissingExec)
	}

	if c.Times < 0 {
		err = multierror.Append(err, ErrInvalidTimes)
	}

	if c.Threads < 0 {
		err = multierror.Append(err, ErrInvalidThreads)
	}

	if c.Timeout < 0 {
		err = multierror.Append(err, ErrInvalidTimeout)
	}

	if err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	return nil
}

// Command returns the executable followed by its arguments.
func (c Config) Command() []string {
	return append([]string{c.Exec}, c.Args...)
}
