// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandler_Handle(t *testing.T) {
	tests := []struct {
		name           string
		level          slog.Level
		message        string
		attrs          []any
		options        []Option
		expectInOutput []string
	}{
		{
			name:           "basic info message",
			level:          slog.LevelInfo,
			message:        "test message",
			expectInOutput: []string{"INFO:", "test message"},
		},
		{
			name:           "debug message with attributes",
			level:          slog.LevelDebug,
			message:        "debug message",
			attrs:          []any{"key", "value", "number", 42},
			expectInOutput: []string{"DEBUG:", "debug message", `"key": "value"`, `"number": 42`},
		},
		{
			name:           "error message",
			level:          slog.LevelError,
			message:        "error message",
			expectInOutput: []string{"ERROR:", "error message"},
		},
		{
			name:           "empty attrs output enabled",
			level:          slog.LevelInfo,
			message:        "test message",
			options:        []Option{WithOutputEmptyAttrs()},
			expectInOutput: []string{"INFO:", "test message", "{}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			opts := append([]Option{WithDestinationWriter(&buf)}, tt.options...)
			h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, opts...)

			r := slog.NewRecord(time.Now(), tt.level, tt.message, 0)
			r.Add(tt.attrs...)

			require.NoError(t, h.Handle(context.Background(), r))

			out := buf.String()
			for _, want := range tt.expectInOutput {
				assert.Contains(t, out, want)
			}

			assert.True(t, strings.HasSuffix(out, "\n"))
			assert.NotContains(t, out, `"msg"`, "builtin keys are not repeated in the attrs")
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelInfo})

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_ReplaceAttr(t *testing.T) {
	var buf bytes.Buffer

	h := NewPrettyHandler(&slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case "secret":
				return slog.String("secret", "[REDACTED]")
			}

			return a
		},
	}, WithDestinationWriter(&buf))

	logger := slog.New(h)
	logger.Info("login", "secret", "hunter2")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "INFO: login"), "time was removed: %q", out)
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, "hunter2")
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer

	base := NewPrettyHandler(nil, WithDestinationWriter(&buf))
	logger := slog.New(base).With("worker", 2).WithGroup("run")
	logger.Info("finished", "exitCode", 1)

	out := buf.String()
	assert.Contains(t, out, `"worker": 2`)
	assert.Contains(t, out, `"run": {`)
	assert.Contains(t, out, `"exitCode": 1`)

	derived, ok := base.WithAttrs(nil).(*PrettyHandler)
	require.True(t, ok)
	assert.Same(t, base.mu, derived.mu)
	assert.Same(t, base.buf, derived.buf)
}

func TestPrettyHandler_Colour(t *testing.T) {
	var plain, coloured bytes.Buffer

	slog.New(NewPrettyHandler(nil, WithDestinationWriter(&plain))).Warn("careful")
	slog.New(NewPrettyHandler(nil, WithDestinationWriter(&coloured), WithColour())).Warn("careful")

	assert.NotContains(t, plain.String(), "\033[")
	assert.Contains(t, coloured.String(), "careful")
}

func TestPrettyHandler_Concurrent(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewPrettyHandler(nil, WithDestinationWriter(&buf)))

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			logger.Info("tick", "i", i)
		}()
	}

	wg.Wait()

	assert.Equal(t, 20, strings.Count(buf.String(), "INFO: tick"))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrettyHandler_WriteError(t *testing.T) {
	h := NewPrettyHandler(nil, WithDestinationWriter(failWriter{}))

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0))
	assert.ErrorIs(t, err, ErrIoWrite)
}
