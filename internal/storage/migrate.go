// ABOUTME: Data migration between intervals storage backends.
// ABOUTME: Copies settings, the current workout and the activity log from source to destination.
package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Groups     int
	Exercises  int
	Tasks      int
	LogEntries int
}

// MigrateData copies all data from src to dst, overwriting what dst holds.
// With dryRun set it only counts what would be copied.
func MigrateData(src, dst Repository, dryRun bool) (*MigrateSummary, error) {
	data, err := GetAllData(src)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	summary := &MigrateSummary{
		Groups:     len(data.Settings.ExerciseGroups),
		Tasks:      len(data.Workout.Tasks),
		LogEntries: len(data.ActivityLog.Exercises),
	}
	for _, g := range data.Settings.ExerciseGroups {
		summary.Exercises += len(g.Exercises)
	}

	if dryRun {
		return summary, nil
	}
	if err := ImportData(dst, data); err != nil {
		return nil, fmt.Errorf("write destination: %w", err)
	}
	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
