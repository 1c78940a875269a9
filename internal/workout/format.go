// ABOUTME: Human-readable formatting for workout clocks and history labels.
package workout

import (
	"fmt"
	"time"

	"github.com/harperreed/intervals/internal/random"
)

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// LastFinishedLabel describes when something last happened relative to now.
func LastFinishedLabel(last time.Time, ok bool, now time.Time) string {
	if !ok {
		return "Never"
	}
	switch days := random.DaysDifference(last, now); {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}
