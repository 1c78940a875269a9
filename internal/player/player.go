// ABOUTME: Player owns the live workout and drives it one tick per second.
// ABOUTME: Serializes play, pause, reset and ticks; persists progress and records finished workouts.
package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/intervals/internal/logging"
	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/speech"
	"github.com/harperreed/intervals/internal/storage"
	"github.com/harperreed/intervals/internal/workout"
)

// ErrWorkoutEnded is returned when playing a workout that has already finished.
var ErrWorkoutEnded = errors.New("workout has already ended")

// Syncer is implemented by backends that push writes to a remote.
type Syncer interface {
	SetAutoSync(enabled bool)
	Sync() error
}

// State is a point-in-time view of the player.
type State struct {
	Workout models.Workout
	Playing bool
}

// Options configures a Player.
type Options struct {
	Speaker speech.Speaker
	Logger  *log.Logger
	Now     func() time.Time
	// Syncer, when set, has auto-sync disabled while playing and is synced
	// whenever playback stops.
	Syncer Syncer
	// OnTick is called after every tick with the new state.
	OnTick func(State)
}

// Player runs a workout against a repository.
type Player struct {
	repo    storage.Repository
	speaker speech.Speaker
	log     *log.Logger
	now     func() time.Time
	syncer  Syncer
	onTick  func(State)

	mu       sync.Mutex
	settings models.Settings
	workout  models.Workout
	playing  bool
}

// New loads settings and the current workout from repo.
func New(repo storage.Repository, opts Options) (*Player, error) {
	settings, err := repo.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	w, err := repo.GetWorkout()
	if err != nil {
		return nil, fmt.Errorf("load workout: %w", err)
	}

	p := &Player{
		repo:     repo,
		speaker:  opts.Speaker,
		log:      opts.Logger,
		now:      opts.Now,
		syncer:   opts.Syncer,
		onTick:   opts.OnTick,
		settings: settings,
		workout:  w,
	}
	if p.speaker == nil {
		p.speaker = speech.Multi{}
	}
	if p.log == nil {
		p.log = logging.Discard()
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p, nil
}

// State returns a copy of the current state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

func (p *Player) stateLocked() State {
	return State{Workout: p.workout.Clone(), Playing: p.playing}
}

// Play starts or resumes playback. A workout that has not begun announces
// its first task.
func (p *Player) Play(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.workout.HasEnded() {
		return ErrWorkoutEnded
	}
	if p.playing {
		return nil
	}
	p.playing = true
	if p.syncer != nil {
		p.syncer.SetAutoSync(false)
	}
	p.log.Info("play", "elapsed", p.workout.ElapsedTime(), "total", p.workout.TotalTime())

	if cue, ok := workout.StartCue(&p.workout, p.settings); ok {
		p.speakLocked(ctx, cue)
	}
	return nil
}

// Pause stops playback and persists progress.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopLocked()
}

// Toggle flips between playing and paused and reports whether it is now playing.
func (p *Player) Toggle(ctx context.Context) (bool, error) {
	p.mu.Lock()
	playing := p.playing
	p.mu.Unlock()

	if playing {
		return false, p.Pause()
	}
	if err := p.Play(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Reset pauses and zeroes all progress.
func (p *Player) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.workout.Reset()
	p.log.Info("reset workout")
	return p.stopLocked()
}

// Load replaces the workout, pausing playback.
func (p *Player) Load(w models.Workout) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.workout = w.Clone()
	p.log.Info("loaded workout", "tasks", len(w.Tasks), "total", w.TotalTime())
	return p.stopLocked()
}

// Tick advances the workout by one second when playing. It reports whether
// the workout finished on this tick.
func (p *Player) Tick(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing {
		return false, nil
	}

	for _, cue := range workout.Advance(&p.workout, p.settings) {
		p.speakLocked(ctx, cue)
	}
	if err := p.repo.SaveWorkout(p.workout); err != nil {
		return false, fmt.Errorf("save workout: %w", err)
	}

	finished := p.workout.HasEnded()
	if finished {
		if err := p.finishLocked(); err != nil {
			return true, err
		}
	}
	if p.onTick != nil {
		p.onTick(p.stateLocked())
	}
	return finished, nil
}

// Run ticks the player from ticks until the workout ends or ctx is done.
// Playback is paused and saved on return.
func (p *Player) Run(ctx context.Context, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			if err := p.Pause(); err != nil {
				return err
			}
			return ctx.Err()
		case <-ticks:
			finished, err := p.Tick(ctx)
			if err != nil {
				return err
			}
			if finished {
				return nil
			}
		}
	}
}

func (p *Player) finishLocked() error {
	p.log.Info("workout finished", "total", p.workout.TotalTime())

	activity, err := p.repo.GetActivityLog()
	if err != nil {
		return fmt.Errorf("load activity log: %w", err)
	}
	if workout.RecordFinished(&activity, &p.workout, p.now()) {
		if err := p.repo.SaveActivityLog(activity); err != nil {
			return fmt.Errorf("save activity log: %w", err)
		}
	}
	return p.stopLocked()
}

func (p *Player) stopLocked() error {
	wasPlaying := p.playing
	p.playing = false

	if err := p.repo.SaveWorkout(p.workout); err != nil {
		return fmt.Errorf("save workout: %w", err)
	}
	if p.syncer != nil && wasPlaying {
		p.syncer.SetAutoSync(true)
		if err := p.syncer.Sync(); err != nil {
			p.log.Warn("sync after playback", "err", err)
		}
	}
	return nil
}

func (p *Player) speakLocked(ctx context.Context, cue string) {
	p.log.Debug("cue", "text", cue)
	if err := p.speaker.Speak(ctx, cue); err != nil {
		p.log.Warn("speak cue", "text", cue, "err", err)
	}
}
