// ABOUTME: Tests for the workout player using manual tick channels.
// ABOUTME: Verifies cue order, persistence, activity recording and pause semantics.
package player

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/storage"
)

var testNow = time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)

type recorder struct {
	mu    sync.Mutex
	texts []string
}

func (r *recorder) Speak(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return nil
}

func (r *recorder) spoken() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

type fakeSyncer struct {
	mu       sync.Mutex
	autoSync []bool
	syncs    int
}

func (f *fakeSyncer) SetAutoSync(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.autoSync = append(f.autoSync, enabled)
}

func (f *fakeSyncer) Sync() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.syncs++
	return nil
}

func squatWorkout() models.Workout {
	return models.Workout{Tasks: []models.WorkoutTask{
		{Name: "Warmup", Duration: 60, Type: models.TaskWarmup},
		{Name: "Squat", Duration: 30, Type: models.TaskExercise},
		{Name: "Squat", Duration: 30, Type: models.TaskExercise},
		{Name: "Cooldown", Duration: 120, Type: models.TaskCooldown},
	}}
}

func setupPlayer(t *testing.T, opts Options) (*Player, storage.Repository) {
	t.Helper()

	backend, err := storage.OpenBadgerInMemory(nil)
	if err != nil {
		t.Fatalf("OpenBadgerInMemory failed: %v", err)
	}
	repo := storage.New(backend, nil)
	t.Cleanup(func() { _ = repo.Close() })

	settings := models.DefaultSettings()
	settings.NextExerciseAnnouncementOffset = 20
	if err := repo.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	if err := repo.SaveWorkout(squatWorkout()); err != nil {
		t.Fatalf("SaveWorkout failed: %v", err)
	}

	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	p, err := New(repo, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p, repo
}

func ticks(n int) <-chan time.Time {
	ch := make(chan time.Time, n)
	for i := 0; i < n; i++ {
		ch <- testNow
	}
	return ch
}

func TestRunWholeWorkout(t *testing.T) {
	r := &recorder{}
	p, repo := setupPlayer(t, Options{Speaker: r})
	ctx := context.Background()

	if err := p.Play(ctx); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if err := p.Run(ctx, ticks(300)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []string{
		"Starting with warmup!",
		"Halfway through!",
		"5 seconds to go!",
		"GO!",
		"Next up: [pause] Same exercise one more time!",
		"5 seconds to go!",
		"GO!",
		"Next up: [pause] Cooldown!",
		"5 seconds to go!",
		"Go!",
		"Halfway through!",
		"30 seconds to go!",
		"5 seconds to go!",
		"DONE!",
	}
	if diff := cmp.Diff(want, r.spoken()); diff != "" {
		t.Errorf("cues mismatch (-want +got):\n%s", diff)
	}

	state := p.State()
	if state.Playing {
		t.Error("player should stop when the workout ends")
	}
	if !state.Workout.HasEnded() {
		t.Error("workout should have ended")
	}

	stored, err := repo.GetWorkout()
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if !stored.HasEnded() {
		t.Errorf("stored workout not finished: %+v", stored)
	}

	activity, err := repo.GetActivityLog()
	if err != nil {
		t.Fatalf("GetActivityLog failed: %v", err)
	}
	entry, ok := activity.Lookup("Squat")
	if !ok || !entry.LastFinished.Equal(testNow) {
		t.Errorf("Squat not recorded: %+v", activity)
	}
	if _, ok := activity.Lookup("Cooldown"); ok {
		t.Error("cooldown should not be recorded")
	}
}

func TestTickWhilePausedIsNoop(t *testing.T) {
	p, _ := setupPlayer(t, Options{})

	finished, err := p.Tick(context.Background())
	if err != nil || finished {
		t.Fatalf("Tick() = %v, %v", finished, err)
	}
	if elapsed := p.State().Workout.ElapsedTime(); elapsed != 0 {
		t.Errorf("paused tick advanced workout to %d", elapsed)
	}
}

func TestPauseSavesProgress(t *testing.T) {
	p, repo := setupPlayer(t, Options{})
	ctx := context.Background()

	if err := p.Play(ctx); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	for i := 0; i < 75; i++ {
		if _, err := p.Tick(ctx); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
	if err := p.Pause(); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}

	stored, _ := repo.GetWorkout()
	if stored.Tasks[0].CurrentSecond != 60 || stored.Tasks[1].CurrentSecond != 15 {
		t.Errorf("unexpected stored progress: %+v", stored.Tasks)
	}

	// Resuming a begun workout does not repeat the start cue.
	r := &recorder{}
	p.speaker = r
	if err := p.Play(ctx); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if got := r.spoken(); len(got) != 0 {
		t.Errorf("resume spoke %v", got)
	}
}

func TestPlayEndedWorkout(t *testing.T) {
	p, _ := setupPlayer(t, Options{})

	w := squatWorkout()
	for i := range w.Tasks {
		w.Tasks[i].CurrentSecond = w.Tasks[i].Duration
	}
	if err := p.Load(w); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := p.Play(context.Background()); !errors.Is(err, ErrWorkoutEnded) {
		t.Errorf("Play error = %v, want ErrWorkoutEnded", err)
	}
}

func TestResetZeroesProgress(t *testing.T) {
	p, repo := setupPlayer(t, Options{})
	ctx := context.Background()

	_ = p.Play(ctx)
	for i := 0; i < 10; i++ {
		_, _ = p.Tick(ctx)
	}
	if err := p.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	state := p.State()
	if state.Playing || state.Workout.HasBegun() {
		t.Errorf("unexpected state after reset: %+v", state)
	}
	stored, _ := repo.GetWorkout()
	if stored.HasBegun() {
		t.Error("reset not persisted")
	}
}

func TestToggle(t *testing.T) {
	p, _ := setupPlayer(t, Options{})
	ctx := context.Background()

	playing, err := p.Toggle(ctx)
	if err != nil || !playing {
		t.Fatalf("first Toggle = %v, %v", playing, err)
	}
	playing, err = p.Toggle(ctx)
	if err != nil || playing {
		t.Fatalf("second Toggle = %v, %v", playing, err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	p, repo := setupPlayer(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())

	if err := p.Play(ctx); err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	tickCh := make(chan time.Time)
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx, tickCh) }()

	for i := 0; i < 5; i++ {
		tickCh <- testNow
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
	if p.State().Playing {
		t.Error("player should be paused after cancel")
	}
	stored, _ := repo.GetWorkout()
	if stored.ElapsedTime() != 5 {
		t.Errorf("stored elapsed = %d, want 5", stored.ElapsedTime())
	}
}

func TestSyncerToggledAroundPlayback(t *testing.T) {
	s := &fakeSyncer{}
	p, _ := setupPlayer(t, Options{Syncer: s})
	ctx := context.Background()

	if err := p.Play(ctx); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if err := p.Pause(); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	// Pausing again must not sync a second time.
	if err := p.Pause(); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}

	if diff := cmp.Diff([]bool{false, true}, s.autoSync); diff != "" {
		t.Errorf("auto-sync calls mismatch (-want +got):\n%s", diff)
	}
	if s.syncs != 1 {
		t.Errorf("syncs = %d, want 1", s.syncs)
	}
}

func TestOnTickReceivesState(t *testing.T) {
	var states []State
	p, _ := setupPlayer(t, Options{OnTick: func(s State) { states = append(states, s) }})
	ctx := context.Background()

	_ = p.Play(ctx)
	for i := 0; i < 3; i++ {
		_, _ = p.Tick(ctx)
	}
	if len(states) != 3 {
		t.Fatalf("OnTick called %d times, want 3", len(states))
	}
	if states[2].Workout.ElapsedTime() != 3 || !states[2].Playing {
		t.Errorf("unexpected last state: %+v", states[2])
	}
}

func TestConcurrentControl(t *testing.T) {
	p, _ := setupPlayer(t, Options{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = p.Toggle(ctx)
				_, _ = p.Tick(ctx)
				_ = p.State()
			}
		}()
	}
	wg.Wait()

	if elapsed := p.State().Workout.ElapsedTime(); elapsed > 200 {
		t.Errorf("elapsed %d exceeds number of ticks", elapsed)
	}
}
