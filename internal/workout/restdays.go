// ABOUTME: Rest-day policy deciding which exercise groups may be scheduled.
// ABOUTME: A group rests for RestDaysPerGroups calendar days after any of its exercises.
package workout

import (
	"time"

	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/random"
)

// IsGroupEligible reports whether group may appear in a workout generated at now.
func IsGroupEligible(group models.ExerciseGroup, settings models.Settings, log models.ActivityLog, now time.Time) bool {
	if !group.Active {
		return false
	}

	lastGroup, ok := LastFinishedForGroup(log, group)
	if !ok {
		return true
	}

	daysSince := random.DaysDifference(lastGroup, now)
	if settings.AssumeNextDayAfterWorkout {
		if lastWorkout, ok := LastFinishedWorkout(log); ok && random.DaysDifference(lastWorkout, now) == 0 {
			daysSince++
		}
	}
	return daysSince >= settings.RestDaysPerGroups
}

// EligibleGroups filters the catalog down to groups that may be scheduled at now.
func EligibleGroups(settings models.Settings, log models.ActivityLog, now time.Time) []models.ExerciseGroup {
	var groups []models.ExerciseGroup
	for _, g := range settings.ExerciseGroups {
		if IsGroupEligible(g, settings, log, now) {
			groups = append(groups, g)
		}
	}
	return groups
}

// NextEligibleDay returns the first day at or after now on which group
// becomes eligible again. ok is false for inactive groups.
func NextEligibleDay(group models.ExerciseGroup, settings models.Settings, log models.ActivityLog, now time.Time) (day time.Time, ok bool) {
	if !group.Active {
		return time.Time{}, false
	}
	last, finished := LastFinishedForGroup(log, group)
	if !finished {
		return random.StartOfDay(now), true
	}
	due := random.StartOfDay(last).AddDate(0, 0, settings.RestDaysPerGroups)
	if due.Before(random.StartOfDay(now)) {
		return random.StartOfDay(now), true
	}
	return due, true
}
