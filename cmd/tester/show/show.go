// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show implements the command that prints a saved results file.
package show

import (
	"context"
	"errors"

	"github.com/matt-FFFFFF/tester/internal/config"
	"github.com/matt-FFFFFF/tester/internal/report"
	"github.com/urfave/cli/v3"
)

const (
	fileArg = "file"
)

var (
	// ErrReadFile is returned when the file cannot be read.
	ErrReadFile = errors.New("failed to read file")
	// ErrNoFile is returned when no file argument is given.
	ErrNoFile = errors.New("a results file is required")
)

// ShowCmd is the command that shows results saved with --out.
var ShowCmd = New()

// New returns a fresh show command.
func New() *cli.Command {
	return &cli.Command{
		Name:        "show",
		Usage:       "Show previously saved results",
		Description: "Show results written by a previous run with --out.",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: fileArg,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(_ context.Context, cmd *cli.Command) error {
	name := cmd.StringArg(fileArg)
	if name == "" {
		return ErrNoFile
	}

	f, err := config.FsFactory().Open(name)
	if err != nil {
		return errors.Join(ErrReadFile, err)
	}
	defer f.Close() // nolint:errcheck

	sum, err := report.ReadBinary(f)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer

	if err := sum.WriteDetails(w); err != nil {
		return err
	}

	return sum.WriteText(w)
}
