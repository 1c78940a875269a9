// ABOUTME: Copy-on-write editing operations for the exercise catalog.
// ABOUTME: Lookups accept a full ID, an unambiguous ID prefix, or an exact name.
package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a group or exercise reference matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned when a reference matches more than one record.
	ErrAmbiguous = errors.New("ambiguous reference")
)

// NewID generates an identifier for a group or exercise.
func NewID() string {
	return uuid.New().String()
}

// NewExercise creates an exercise with the neutral "+0" override.
func NewExercise(name string) Exercise {
	return Exercise{ID: NewID(), Name: name, DurationOverride: "+0"}
}

// NewExerciseGroup creates an active, empty group.
func NewExerciseGroup(name string) ExerciseGroup {
	return ExerciseGroup{ID: NewID(), Name: name, Exercises: []Exercise{}, Active: true}
}

// FindGroup resolves ref to a group index.
func (s Settings) FindGroup(ref string) (int, error) {
	idx := -1
	for i, g := range s.ExerciseGroups {
		if g.ID == ref {
			return i, nil
		}
	}
	for i, g := range s.ExerciseGroups {
		if matchesRef(g.ID, g.Name, ref) {
			if idx >= 0 {
				return -1, fmt.Errorf("group %q: %w", ref, ErrAmbiguous)
			}
			idx = i
		}
	}
	if idx < 0 {
		return -1, fmt.Errorf("group %q: %w", ref, ErrNotFound)
	}
	return idx, nil
}

// FindExercise resolves ref to a (group index, exercise index) pair.
func (s Settings) FindExercise(ref string) (int, int, error) {
	for gi, g := range s.ExerciseGroups {
		for ei, e := range g.Exercises {
			if e.ID == ref {
				return gi, ei, nil
			}
		}
	}
	gIdx, eIdx := -1, -1
	for gi, g := range s.ExerciseGroups {
		for ei, e := range g.Exercises {
			if !matchesRef(e.ID, e.Name, ref) {
				continue
			}
			if gIdx >= 0 {
				return -1, -1, fmt.Errorf("exercise %q: %w", ref, ErrAmbiguous)
			}
			gIdx, eIdx = gi, ei
		}
	}
	if gIdx < 0 {
		return -1, -1, fmt.Errorf("exercise %q: %w", ref, ErrNotFound)
	}
	return gIdx, eIdx, nil
}

// Exercise returns the exercise matching ref.
func (s Settings) Exercise(ref string) (Exercise, error) {
	gi, ei, err := s.FindExercise(ref)
	if err != nil {
		return Exercise{}, err
	}
	return s.ExerciseGroups[gi].Exercises[ei], nil
}

// Group returns the group matching ref.
func (s Settings) Group(ref string) (ExerciseGroup, error) {
	gi, err := s.FindGroup(ref)
	if err != nil {
		return ExerciseGroup{}, err
	}
	return s.ExerciseGroups[gi], nil
}

// AddGroup returns settings with a new active group appended.
func (s Settings) AddGroup(name string) (Settings, ExerciseGroup) {
	out := s.Clone()
	g := NewExerciseGroup(name)
	out.ExerciseGroups = append(out.ExerciseGroups, g)
	return out, g
}

// RemoveGroup returns settings without the referenced group.
func (s Settings) RemoveGroup(ref string) (Settings, error) {
	gi, err := s.FindGroup(ref)
	if err != nil {
		return s, err
	}
	out := s.Clone()
	out.ExerciseGroups = append(out.ExerciseGroups[:gi], out.ExerciseGroups[gi+1:]...)
	return out, nil
}

// RenameGroup returns settings with the referenced group renamed.
func (s Settings) RenameGroup(ref, name string) (Settings, error) {
	return s.editGroup(ref, func(g *ExerciseGroup) { g.Name = name })
}

// SetGroupActive returns settings with the group's active flag set.
func (s Settings) SetGroupActive(ref string, active bool) (Settings, error) {
	return s.editGroup(ref, func(g *ExerciseGroup) { g.Active = active })
}

// AddExercise returns settings with a new exercise appended to the group.
func (s Settings) AddExercise(groupRef, name string) (Settings, Exercise, error) {
	e := NewExercise(name)
	out, err := s.editGroup(groupRef, func(g *ExerciseGroup) {
		g.Exercises = append(g.Exercises, e)
	})
	if err != nil {
		return s, Exercise{}, err
	}
	return out, e, nil
}

// RemoveExercise returns settings without the referenced exercise.
func (s Settings) RemoveExercise(ref string) (Settings, error) {
	gi, ei, err := s.FindExercise(ref)
	if err != nil {
		return s, err
	}
	out := s.Clone()
	exs := out.ExerciseGroups[gi].Exercises
	out.ExerciseGroups[gi].Exercises = append(exs[:ei], exs[ei+1:]...)
	return out, nil
}

// RenameExercise returns settings with the referenced exercise renamed.
func (s Settings) RenameExercise(ref, name string) (Settings, error) {
	return s.editExercise(ref, func(e *Exercise) { e.Name = name })
}

// SetExerciseDurationOverride stores expr verbatim; validity is reported by
// duration resolution, not enforced here.
func (s Settings) SetExerciseDurationOverride(ref, expr string) (Settings, error) {
	return s.editExercise(ref, func(e *Exercise) { e.DurationOverride = strings.TrimSpace(expr) })
}

// SetExercisePrimary returns settings with the exercise's primary flag set.
func (s Settings) SetExercisePrimary(ref string, primary bool) (Settings, error) {
	return s.editExercise(ref, func(e *Exercise) { e.IsPrimary = primary })
}

func (s Settings) editGroup(ref string, fn func(*ExerciseGroup)) (Settings, error) {
	gi, err := s.FindGroup(ref)
	if err != nil {
		return s, err
	}
	out := s.Clone()
	fn(&out.ExerciseGroups[gi])
	return out, nil
}

func (s Settings) editExercise(ref string, fn func(*Exercise)) (Settings, error) {
	gi, ei, err := s.FindExercise(ref)
	if err != nil {
		return s, err
	}
	out := s.Clone()
	fn(&out.ExerciseGroups[gi].Exercises[ei])
	return out, nil
}

// matchesRef matches an ID prefix or a case-insensitive exact name.
func matchesRef(id, name, ref string) bool {
	if ref == "" {
		return false
	}
	return strings.HasPrefix(id, ref) || strings.EqualFold(name, ref)
}
