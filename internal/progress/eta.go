// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"fmt"
	"time"
)

// ETA extrapolates the time left from the average time per completed run.
// It is zero until the first run completes and once pos reaches total.
func ETA(elapsed time.Duration, pos, total int64) time.Duration {
	if pos <= 0 || pos >= total {
		return 0
	}

	return time.Duration(float64(elapsed) / float64(pos) * float64(total-pos))
}

func formatETA(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// formatElapsed renders d as hh:mm:ss.
func formatElapsed(d time.Duration) string {
	s := int64(d / time.Second)

	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}
