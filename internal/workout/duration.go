// ABOUTME: Resolves an exercise's effective duration from its override expression.
// ABOUTME: Invalid expressions fall back to the default and are flagged, never rejected.
package workout

import (
	"regexp"
	"strconv"

	"github.com/harperreed/intervals/internal/models"
)

var (
	offsetOverride     = regexp.MustCompile(`^[+-]\d+$`)
	absoluteOverride   = regexp.MustCompile(`^\d+$`)
	multiplierOverride = regexp.MustCompile(`^x\d+$`)
)

// DurationResult is the resolved duration of an exercise in seconds.
type DurationResult struct {
	Duration        int
	OverrideIsValid bool
}

// ResolveDuration applies exercise.DurationOverride to the default task duration.
// Every result is at least one second.
func ResolveDuration(exercise models.Exercise, settings models.Settings) DurationResult {
	expr := exercise.DurationOverride
	base := settings.DefaultTaskDuration

	switch {
	case offsetOverride.MatchString(expr):
		if offset, err := strconv.Atoi(expr); err == nil {
			return DurationResult{Duration: atLeastOne(base + offset), OverrideIsValid: true}
		}
	case absoluteOverride.MatchString(expr):
		if seconds, err := strconv.Atoi(expr); err == nil {
			return DurationResult{Duration: atLeastOne(seconds), OverrideIsValid: true}
		}
	case multiplierOverride.MatchString(expr):
		if factor, err := strconv.Atoi(expr[1:]); err == nil {
			return DurationResult{Duration: atLeastOne(base * factor), OverrideIsValid: true}
		}
	}
	return DurationResult{Duration: atLeastOne(base), OverrideIsValid: false}
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
