// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/matt-FFFFFF/tester/cmd/tester/run"
	"github.com/matt-FFFFFF/tester/cmd/tester/show"
	"github.com/matt-FFFFFF/tester/internal/cancellation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestOnInterrupt(t *testing.T) {
	sig := cancellation.New()
	buf := &bytes.Buffer{}

	h := onInterrupt(sig, buf)
	h(os.Interrupt)
	h(os.Interrupt)

	assert.True(t, sig.Triggered())
	assert.Equal(t, interruptNotice+"\n", buf.String(), "the notice is printed once")

	select {
	case <-sig.Escalated():
	default:
		t.Fatal("a repeated signal escalates")
	}
}

func TestShowByPathRunsExecutable(t *testing.T) {
	var got []string

	root := &cli.Command{
		Name:         "tester",
		Writer:       &bytes.Buffer{},
		ErrWriter:    &bytes.Buffer{},
		Commands:     []*cli.Command{show.New()},
		Flags:        run.Flags(),
		StopOnNthArg: run.StopOnNthArg,
		Action: func(_ context.Context, cmd *cli.Command) error {
			got = cmd.Args().Slice()
			return nil
		},
	}

	require.NoError(t, root.Run(context.Background(), []string{"tester", "-n", "2", "./show", "-x"}))
	assert.Equal(t, []string{"./show", "-x"}, got)
}
