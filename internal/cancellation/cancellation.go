// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cancellation provides a one-shot stop flag shared between the
// interrupt handler, the workers and the progress monitor.
//
// A Signal starts armed and can be triggered exactly once. It is never reset.
// Triggering does not interrupt anything by itself: workers poll Triggered
// before starting another run and so finish whatever child they are waiting on.
//
// A triggered Signal may additionally be escalated once. Escalation is only a
// notification; callers that opted in react to it by killing running children.
package cancellation

import (
	"context"
	"sync/atomic"
)

// Signal is safe for concurrent use. The zero value is not usable; call New.
type Signal struct {
	triggered atomic.Bool
	done      chan struct{}
	escalated atomic.Bool
	escalate  chan struct{}
}

// New returns an armed Signal.
func New() *Signal {
	return &Signal{
		done:     make(chan struct{}),
		escalate: make(chan struct{}),
	}
}

// Trigger moves the signal to the triggered state.
// It reports whether this call performed the transition.
func (s *Signal) Trigger() bool {
	if !s.triggered.CompareAndSwap(false, true) {
		return false
	}

	close(s.done)

	return true
}

// Triggered reports whether Trigger has been called.
func (s *Signal) Triggered() bool {
	return s.triggered.Load()
}

// Done returns a channel that is closed once the signal is triggered.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Escalate records a repeated stop request. It does nothing until the signal
// has been triggered and reports whether this call performed the transition.
func (s *Signal) Escalate() bool {
	if !s.Triggered() || !s.escalated.CompareAndSwap(false, true) {
		return false
	}

	close(s.escalate)

	return true
}

// Escalated returns a channel that is closed once Escalate succeeds.
func (s *Signal) Escalated() <-chan struct{} {
	return s.escalate
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Signal) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the Signal stored in ctx, or a fresh armed Signal.
func FromContext(ctx context.Context) *Signal {
	if s, ok := ctx.Value(contextKey{}).(*Signal); ok && s != nil {
		return s
	}

	return New()
}
