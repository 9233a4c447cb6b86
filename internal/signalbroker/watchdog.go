// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/tester/internal/ctxlog"
)

// Watch calls onSignal for every signal received on sigCh.
// It returns when sigCh is closed or ctx is done.
// onSignal runs on the Watch goroutine and must be safe to call repeatedly.
func Watch(ctx context.Context, sigCh <-chan os.Signal, onSignal func(os.Signal)) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			ctxlog.Info(ctx, "watchdog", "detail", "received signal", "signal", sig.String())
			onSignal(sig)
		}
	}
}
