// ABOUTME: Workout generator building warmup, main sets and cooldown from the catalog
// ABOUTME: with rest-day filtering and randomized set distribution.

// Package workout generates randomized interval workouts and advances them
// one second at a time, deciding which spoken cues to emit along the way.
package workout

import (
	"slices"
	"time"

	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/random"
)

// MaxPartitionAttempts bounds the rejection sampling in SetDistribution.
const MaxPartitionAttempts = 100

const (
	warmupTaskName   = "Warmup"
	cooldownTaskName = "Cooldown"
)

// Generator builds workouts from settings and activity history.
type Generator struct {
	rand *random.Rand
	now  func() time.Time
}

// NewGenerator returns a Generator using r for randomness. A nil r seeds
// from the clock; a nil now uses time.Now.
func NewGenerator(r *random.Rand, now func() time.Time) *Generator {
	if r == nil {
		r = random.New()
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rand: r, now: now}
}

// Generate builds a fresh workout: warmup, preparation for the first
// exercise, the randomized main sequence, then cooldown.
func (g *Generator) Generate(settings models.Settings, log models.ActivityLog) models.Workout {
	main := g.mainTasks(settings, log)
	tasks := make([]models.WorkoutTask, 0, len(main)+3)

	if settings.WarmupDuration > 0 {
		tasks = append(tasks, models.WorkoutTask{
			Name:     warmupTaskName,
			Duration: settings.WarmupDuration,
			Type:     models.TaskWarmup,
		})
	}

	if settings.FirstExercisePreparationDuration > 0 && len(main) > 0 {
		tasks = append(tasks, models.WorkoutTask{
			Name:     "Prepare " + main[0].Name,
			Duration: settings.FirstExercisePreparationDuration,
			Type:     models.TaskInitialPreparation,
		})
	}

	tasks = append(tasks, main...)

	if settings.CooldownDuration > 0 {
		tasks = append(tasks, models.WorkoutTask{
			Name:     cooldownTaskName,
			Duration: settings.CooldownDuration,
			Type:     models.TaskCooldown,
		})
	}

	return models.Workout{Tasks: tasks}
}

func (g *Generator) mainTasks(settings models.Settings, log models.ActivityLog) []models.WorkoutTask {
	var tasks []models.WorkoutTask

	eligible := EligibleGroups(settings, log, g.now())
	for _, group := range random.SampleUnique(g.rand, eligible, settings.GroupsPerWorkout) {
		if len(group.Exercises) == 0 {
			continue
		}

		sets := g.rand.IntInclusive(settings.MinSetsPerGroup, settings.MaxSetsPerGroup)
		blocks := SetDistribution(g.rand, sets, settings)
		exercises := g.chooseExercises(group.Exercises, len(blocks))

		for i, reps := range blocks {
			exercise := exercises[i]
			duration := ResolveDuration(exercise, settings).Duration
			for j := 0; j < reps; j++ {
				tasks = append(tasks, models.WorkoutTask{
					Name:     exercise.Name,
					Duration: duration,
					Type:     models.TaskExercise,
				})
			}
		}
	}

	return tasks
}

// chooseExercises picks n exercises for a group, primaries first. Groups
// with fewer exercises than n repeat them cyclically.
func (g *Generator) chooseExercises(exercises []models.Exercise, n int) []models.Exercise {
	if n <= len(exercises) {
		chosen := random.SampleUnique(g.rand, exercises, n)
		slices.SortStableFunc(chosen, primaryFirst)
		return chosen
	}

	all := random.Shuffle(g.rand, slices.Clone(exercises))
	slices.SortStableFunc(all, primaryFirst)
	return random.RepeatToLength(all, n)
}

func primaryFirst(a, b models.Exercise) int {
	switch {
	case a.IsPrimary == b.IsPrimary:
		return 0
	case a.IsPrimary:
		return -1
	default:
		return 1
	}
}

// SetDistribution splits sets into blocks of consecutive repetitions of one
// exercise, each block drawn from [MinSetRepetitions, MaxSetRepetitions].
// It retries up to MaxPartitionAttempts times for an exact sum, then trims
// the last block of the final attempt so the blocks always sum to sets.
func SetDistribution(r *random.Rand, sets int, settings models.Settings) []int {
	if sets <= 0 {
		return []int{}
	}

	// Repetitions below one would never make progress toward the target.
	minReps := max(1, settings.MinSetRepetitions)
	maxReps := max(1, settings.MaxSetRepetitions)

	var blocks []int
	for attempt := 1; ; attempt++ {
		blocks = blocks[:0]
		count := 0
		for count < sets {
			n := r.IntInclusive(minReps, maxReps)
			blocks = append(blocks, n)
			count += n
		}
		if count == sets {
			return blocks
		}
		if attempt == MaxPartitionAttempts {
			// Everything before the last block summed to less than sets,
			// so the trimmed block is always at least one.
			blocks[len(blocks)-1] -= count - sets
			return blocks
		}
	}
}
