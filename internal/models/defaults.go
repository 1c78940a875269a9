// ABOUTME: Built-in default catalog and timing settings.
// ABOUTME: Used on first run and by "settings reset".
package models

// DefaultSettings returns a fresh copy of the built-in configuration.
func DefaultSettings() Settings {
	group := func(id, name string, exercises ...Exercise) ExerciseGroup {
		return ExerciseGroup{ID: id, Name: name, Exercises: exercises, Active: true}
	}
	ex := func(id, name string) Exercise {
		return Exercise{ID: id, Name: name, DurationOverride: "+0"}
	}

	return Settings{
		Version: CurrentSettingsVersion,
		ExerciseGroups: []ExerciseGroup{
			group("2f0b6f0e-4a57-4f43-9d3e-0b7f3c6b9a11", "Shoulder",
				ex("0a2c1e77-5b8f-4b55-8c3d-59e0b0c2f101", "Dumbbell Shoulder Press"),
				ex("6f8d9c25-6478-4925-a1b7-3c4d2e1f0102", "Dumbbell Lateral Raise"),
				ex("98042086-6124-4604-b1c2-d3e4f5a60103", `Dumbbell Incline "W" Raise`),
			),
			group("0216037b-1143-4210-8e74-86a1b2c3d421", "Chest",
				ex("16797282-7622-4542-9a5b-6c7d8e9f0201", "Dumbbell Incline Fly"),
				ex("13618314-8416-4244-8a35-0b1c2d3e0202", "Dumbbell Incline Bench Press"),
			),
			group("75368568-7285-4134-95a6-b7c8d9e0f431", "Back",
				ex("53573303-4384-4637-8e1f-2a3b4c5d0301", "Dumbbell Lying Row"),
				ex("48154094-1899-4140-9a2b-3c4d5e6f0302", "Dumbbell Bent-Over Row"),
			),
			group("18759021-2746-4898-94c5-d6e7f8091441", "Arms",
				ex("53268966-2238-4807-85a1-b2c3d4e50401", "Barbell Curl"),
				ex("42602811-2553-4024-93b4-c5d6e7f80402", "Dumbbell Curl"),
				ex("36018702-0842-4558-86c7-d8e9f0a10403", "Bench Dip"),
				ex("96683523-3687-4574-83d9-e0f1a2b30404", "Barbell Lying Tricep Extension"),
				ex("20217556-9004-4555-86e1-f2a3b4c50405", "Dumbbell Concentration Curl"),
			),
			group("10865579-5258-4936-87f2-a3b4c5d6e451", "Abs",
				ex("02917339-6249-4283-857a-b8c9d0e10501", "Lying Leg-Hip Raise"),
				ex("26130539-5528-4098-8b1c-2d3e4f500502", "Weighted Crunch"),
			),
		},
		WarmupDuration:                   60,
		CooldownDuration:                 120,
		DefaultTaskDuration:              100,
		FirstExercisePreparationDuration: 20,
		GroupsPerWorkout:                 2,
		MinSetsPerGroup:                  4,
		MaxSetsPerGroup:                  7,
		MinSetRepetitions:                2,
		MaxSetRepetitions:                3,
		NextExerciseAnnouncementOffset:   40,
		RestDaysPerGroups:                1,
	}
}

// DefaultWorkout is the placeholder shown before anything is generated.
func DefaultWorkout() Workout {
	return Workout{Tasks: []WorkoutTask{
		{Name: "Warmup", Duration: 60, Type: TaskWarmup},
		{Name: "Cooldown", Duration: 120, Type: TaskCooldown},
	}}
}
