// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileYAML(t *testing.T) {
	content := `
exec: ./run.sh
args: ["-v"]
times: 10
threads: 2
silent: true
progress: true
timeout: 1m30s
timing: true
out: results.bin
otlp_endpoint: localhost:4318
kill_on_second_interrupt: true
`
	f, err := ParseFile("tester.yaml", []byte(content))
	require.NoError(t, err)

	c := Default()
	require.NoError(t, f.Apply(&c))

	assert.Equal(t, Config{
		Exec:         "./run.sh",
		Args:         []string{"-v"},
		Times:        10,
		Threads:      2,
		Silent:       true,
		Progress:     true,
		Timeout:      90 * time.Second,
		Timing:       true,
		Out:          "results.bin",
		OTLPEndpoint: "localhost:4318",

		KillOnSecondInterrupt: true,
	}, c)
}

func TestParseFileYAMLUnknownField(t *testing.T) {
	_, err := ParseFile("tester.yml", []byte("times: 1\nthraeds: 2\n"))
	require.ErrorIs(t, err, ErrParseFile)
}

func TestParseFileYAMLPartial(t *testing.T) {
	f, err := ParseFile("tester.yaml", []byte("score: true\n"))
	require.NoError(t, err)

	c := Default()
	c.Exec = "keep"
	require.NoError(t, f.Apply(&c))

	assert.Equal(t, "keep", c.Exec)
	assert.Equal(t, TimesUnset, c.Times)
	assert.Equal(t, 1, c.Threads)
	assert.True(t, c.Score)
}

func TestParseFileHCL(t *testing.T) {
	t.Setenv("TESTER_TEST_ARG", "from-env")

	content := `
exec    = "./run.sh"
args    = ["--mode", env.TESTER_TEST_ARG]
times   = 5
threads = 3
score   = true
timeout = "2s"
`
	f, err := ParseFile("tester.hcl", []byte(content))
	require.NoError(t, err)

	c := Default()
	require.NoError(t, f.Apply(&c))

	assert.Equal(t, "./run.sh", c.Exec)
	assert.Equal(t, []string{"--mode", "from-env"}, c.Args)
	assert.Equal(t, 5, c.Times)
	assert.Equal(t, 3, c.Threads)
	assert.True(t, c.Score)
	assert.False(t, c.Silent)
	assert.Equal(t, 2*time.Second, c.Timeout)
}

func TestParseFileHCLErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "syntax", content: `times = `},
		{name: "unknown attribute", content: `repeat = 3`},
		{name: "wrong type", content: `times = "many"`},
		{name: "unknown variable", content: `exec = var.nope`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFile("bad.hcl", []byte(tc.content))
			assert.ErrorIs(t, err, ErrParseFile)
		})
	}
}

func TestApplyBadTimeout(t *testing.T) {
	f, err := ParseFile("tester.yaml", []byte("timeout: soon\n"))
	require.NoError(t, err)

	c := Default()
	assert.ErrorIs(t, f.Apply(&c), ErrFileTimeout)
}

func TestApplyNil(t *testing.T) {
	var f *File

	c := Default()
	require.NoError(t, f.Apply(&c))
	assert.Equal(t, Default(), c)
}
