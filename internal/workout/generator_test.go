// ABOUTME: Tests for workout generation and set partitioning.
// ABOUTME: Seeds randomness so sampled workouts are reproducible.
package workout

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/random"
)

func fixedClock() time.Time { return testNow }

func squatSettings() models.Settings {
	return models.Settings{
		WarmupDuration:                   60,
		CooldownDuration:                 120,
		DefaultTaskDuration:              30,
		FirstExercisePreparationDuration: 0,
		GroupsPerWorkout:                 1,
		MinSetsPerGroup:                  2,
		MaxSetsPerGroup:                  2,
		MinSetRepetitions:                2,
		MaxSetRepetitions:                2,
		ExerciseGroups: []models.ExerciseGroup{{
			ID:        "legs",
			Name:      "Legs",
			Active:    true,
			Exercises: []models.Exercise{{ID: "squat", Name: "Squat", DurationOverride: "+0"}},
		}},
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	g := NewGenerator(random.NewSeeded(1, 1), fixedClock)
	got := g.Generate(squatSettings(), models.ActivityLog{})

	want := models.Workout{Tasks: []models.WorkoutTask{
		{Name: "Warmup", Duration: 60, Type: models.TaskWarmup},
		{Name: "Squat", Duration: 30, Type: models.TaskExercise},
		{Name: "Squat", Duration: 30, Type: models.TaskExercise},
		{Name: "Cooldown", Duration: 120, Type: models.TaskCooldown},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateWithPreparation(t *testing.T) {
	settings := squatSettings()
	settings.FirstExercisePreparationDuration = 15
	settings.WarmupDuration = 0

	got := NewGenerator(random.NewSeeded(2, 2), fixedClock).Generate(settings, models.ActivityLog{})

	if len(got.Tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d: %+v", len(got.Tasks), got.Tasks)
	}
	prep := got.Tasks[0]
	if prep.Type != models.TaskInitialPreparation || prep.Name != "Prepare Squat" || prep.Duration != 15 {
		t.Errorf("unexpected preparation task: %+v", prep)
	}
}

func TestGenerateNoEligibleGroups(t *testing.T) {
	settings := squatSettings()
	settings.FirstExercisePreparationDuration = 10
	settings.RestDaysPerGroups = 3
	log := logWith(map[string]time.Time{"Squat": testNow})

	got := NewGenerator(random.NewSeeded(3, 3), fixedClock).Generate(settings, log)

	want := models.Workout{Tasks: []models.WorkoutTask{
		{Name: "Warmup", Duration: 60, Type: models.TaskWarmup},
		{Name: "Cooldown", Duration: 120, Type: models.TaskCooldown},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateEmptyCatalog(t *testing.T) {
	settings := models.Settings{GroupsPerWorkout: 3, MinSetsPerGroup: 1, MaxSetsPerGroup: 2}
	got := NewGenerator(random.NewSeeded(4, 4), fixedClock).Generate(settings, models.ActivityLog{})
	if len(got.Tasks) != 0 {
		t.Errorf("expected empty workout, got %+v", got.Tasks)
	}
	if !got.HasEnded() {
		t.Error("empty workout should count as ended")
	}
}

func TestGenerateSkipsGroupWithoutExercises(t *testing.T) {
	settings := squatSettings()
	settings.GroupsPerWorkout = 2
	settings.ExerciseGroups = append(settings.ExerciseGroups, models.ExerciseGroup{ID: "empty", Name: "Empty", Active: true})

	got := NewGenerator(random.NewSeeded(5, 5), fixedClock).Generate(settings, models.ActivityLog{})
	if len(got.Tasks) != 4 {
		t.Errorf("expected only the Squat group to contribute, got %+v", got.Tasks)
	}
}

func TestGenerateGroupsPerWorkoutExceedsCatalog(t *testing.T) {
	settings := squatSettings()
	settings.GroupsPerWorkout = 10
	got := NewGenerator(random.NewSeeded(6, 6), fixedClock).Generate(settings, models.ActivityLog{})
	if len(got.Tasks) != 4 {
		t.Errorf("expected 4 tasks, got %d", len(got.Tasks))
	}
}

func TestGenerateDefaultSettingsShape(t *testing.T) {
	settings := models.DefaultSettings()
	g := NewGenerator(random.NewSeeded(7, 7), fixedClock)

	for i := 0; i < 50; i++ {
		w := g.Generate(settings, models.ActivityLog{})

		if w.Tasks[0].Type != models.TaskWarmup || w.Tasks[len(w.Tasks)-1].Type != models.TaskCooldown {
			t.Fatalf("workout should start with warmup and end with cooldown: %+v", w.Tasks)
		}
		if w.Tasks[1].Type != models.TaskInitialPreparation {
			t.Fatalf("expected preparation task, got %+v", w.Tasks[1])
		}
		if w.Tasks[1].Name != "Prepare "+w.Tasks[2].Name {
			t.Errorf("preparation name %q does not match first exercise %q", w.Tasks[1].Name, w.Tasks[2].Name)
		}

		exercises := len(w.Tasks) - 3
		// Two groups of 4-7 sets each.
		if exercises < 8 || exercises > 14 {
			t.Errorf("expected 8-14 exercise tasks, got %d", exercises)
		}

		groups := make(map[string]bool)
		for _, task := range w.Tasks[2 : len(w.Tasks)-1] {
			if task.Type != models.TaskExercise || task.Duration != 100 {
				t.Fatalf("unexpected main task: %+v", task)
			}
			groups[groupOf(settings, task.Name)] = true
		}
		if len(groups) != 2 {
			t.Errorf("expected exercises from 2 groups, got %v", groups)
		}
	}
}

func TestGeneratePrimaryExercisesFirst(t *testing.T) {
	settings := squatSettings()
	settings.WarmupDuration, settings.CooldownDuration = 0, 0
	settings.MinSetsPerGroup, settings.MaxSetsPerGroup = 2, 2
	settings.MinSetRepetitions, settings.MaxSetRepetitions = 1, 1
	settings.ExerciseGroups[0].Exercises = []models.Exercise{
		{ID: "a", Name: "Lunge", DurationOverride: "+0"},
		{ID: "b", Name: "Step-up", DurationOverride: "+0"},
		{ID: "c", Name: "Squat", DurationOverride: "x2", IsPrimary: true},
	}

	g := NewGenerator(random.NewSeeded(8, 8), fixedClock)
	for i := 0; i < 30; i++ {
		w := g.Generate(settings, models.ActivityLog{})
		if len(w.Tasks) != 2 {
			t.Fatalf("expected 2 tasks, got %+v", w.Tasks)
		}
		for j, task := range w.Tasks {
			if task.Name == "Squat" && j != 0 {
				t.Errorf("primary exercise scheduled at position %d: %+v", j, w.Tasks)
			}
			if task.Name == "Squat" && task.Duration != 60 {
				t.Errorf("Squat duration = %d, want 60", task.Duration)
			}
		}
	}
}

func TestGenerateRepeatsExercisesWhenGroupIsSmall(t *testing.T) {
	settings := squatSettings()
	settings.WarmupDuration, settings.CooldownDuration = 0, 0
	settings.MinSetsPerGroup, settings.MaxSetsPerGroup = 4, 4
	settings.MinSetRepetitions, settings.MaxSetRepetitions = 1, 1
	settings.ExerciseGroups[0].Exercises = append(settings.ExerciseGroups[0].Exercises,
		models.Exercise{ID: "lunge", Name: "Lunge", DurationOverride: "+0"})

	w := NewGenerator(random.NewSeeded(9, 9), fixedClock).Generate(settings, models.ActivityLog{})
	if len(w.Tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(w.Tasks))
	}
	// Four single-set blocks cycle through the two exercises.
	if w.Tasks[0].Name != w.Tasks[2].Name || w.Tasks[1].Name != w.Tasks[3].Name || w.Tasks[0].Name == w.Tasks[1].Name {
		t.Errorf("expected alternating exercises, got %+v", w.Tasks)
	}
}

func TestSetDistributionSums(t *testing.T) {
	r := random.NewSeeded(11, 11)

	tests := []struct {
		name     string
		sets     int
		min, max int
	}{
		{"exact fit", 6, 2, 3},
		{"single reps", 5, 1, 1},
		{"impossible exact", 5, 2, 2},
		{"large blocks", 3, 4, 6},
		{"zero min reps", 4, 0, 2},
		{"swapped bounds", 7, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := models.Settings{MinSetRepetitions: tt.min, MaxSetRepetitions: tt.max}
			for i := 0; i < 100; i++ {
				blocks := SetDistribution(r, tt.sets, settings)
				sum := 0
				for _, b := range blocks {
					if b < 1 {
						t.Fatalf("block below one: %v", blocks)
					}
					sum += b
				}
				if sum != tt.sets {
					t.Fatalf("SetDistribution(%d) = %v, sum %d", tt.sets, blocks, sum)
				}
			}
		})
	}
}

func TestSetDistributionForcedFit(t *testing.T) {
	// Blocks of exactly 2 can never sum to 5, so the fallback trims the last block.
	settings := models.Settings{MinSetRepetitions: 2, MaxSetRepetitions: 2}
	got := SetDistribution(random.NewSeeded(12, 12), 5, settings)
	if diff := cmp.Diff([]int{2, 2, 1}, got); diff != "" {
		t.Errorf("SetDistribution forced fit mismatch (-want +got):\n%s", diff)
	}
}

func TestSetDistributionZeroSets(t *testing.T) {
	got := SetDistribution(random.NewSeeded(13, 13), 0, models.Settings{MinSetRepetitions: 1, MaxSetRepetitions: 3})
	if len(got) != 0 {
		t.Errorf("SetDistribution(0) = %v, want empty", got)
	}
}

func groupOf(settings models.Settings, exercise string) string {
	for _, g := range settings.ExerciseGroups {
		for _, e := range g.Exercises {
			if e.Name == exercise {
				return g.Name
			}
		}
	}
	return ""
}
