// ABOUTME: Repository interface for intervals data storage.
// ABOUTME: Wraps a raw key/value backend with decoding, migration and defaults.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/harperreed/intervals/internal/models"
)

// Keys under which each document is stored.
const (
	KeySettings    = "settings"
	KeyWorkout     = "workout"
	KeyActivityLog = "activity_log"
)

// ErrReadOnly is returned when writing to a store another process holds open.
var ErrReadOnly = errors.New("database is locked by another process (MCP server?)")

// Repository defines the storage interface for intervals data.
// Missing documents read as their defaults.
type Repository interface {
	GetSettings() (models.Settings, error)
	SaveSettings(s models.Settings) error

	GetWorkout() (models.Workout, error)
	SaveWorkout(w models.Workout) error

	GetActivityLog() (models.ActivityLog, error)
	SaveActivityLog(a models.ActivityLog) error

	Close() error
}

// Backend is a raw key/value store. Get returns nil data and no error for
// keys that have never been written.
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
	Close() error
}

// Store implements Repository on top of a Backend.
type Store struct {
	backend Backend
	log     *log.Logger
}

// Compile-time check that Store implements Repository.
var _ Repository = (*Store)(nil)

// New wraps backend. A nil logger discards log output.
func New(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{backend: backend, log: logger}
}

// Backend returns the underlying key/value store.
func (s *Store) Backend() Backend {
	return s.backend
}

// GetSettings loads settings, upgrading and rewriting older shapes.
func (s *Store) GetSettings() (models.Settings, error) {
	data, err := s.backend.Get(KeySettings)
	if err != nil {
		return models.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	if data == nil {
		return models.DefaultSettings(), nil
	}

	settings, changed, err := models.MigrateSettings(data)
	if err != nil {
		return models.Settings{}, err
	}
	if changed {
		s.log.Info("migrated stored settings", "version", settings.Version)
		if err := s.SaveSettings(settings); err != nil {
			s.log.Warn("rewrite migrated settings", "err", err)
		}
	}
	return settings, nil
}

// SaveSettings stores settings at the current schema version.
func (s *Store) SaveSettings(settings models.Settings) error {
	settings.Version = models.CurrentSettingsVersion
	return s.put(KeySettings, settings)
}

// GetWorkout loads the current workout, or the default workout if none exists.
func (s *Store) GetWorkout() (models.Workout, error) {
	data, err := s.backend.Get(KeyWorkout)
	if err != nil {
		return models.Workout{}, fmt.Errorf("get workout: %w", err)
	}
	if data == nil {
		return models.DefaultWorkout(), nil
	}

	w, changed, err := models.MigrateWorkout(data)
	if err != nil {
		return models.Workout{}, err
	}
	if changed {
		s.log.Info("migrated stored workout", "tasks", len(w.Tasks))
		if err := s.SaveWorkout(w); err != nil {
			s.log.Warn("rewrite migrated workout", "err", err)
		}
	}
	return w, nil
}

// SaveWorkout stores the current workout including its progress.
func (s *Store) SaveWorkout(w models.Workout) error {
	return s.put(KeyWorkout, w)
}

// GetActivityLog loads the activity log, empty if none exists.
func (s *Store) GetActivityLog() (models.ActivityLog, error) {
	data, err := s.backend.Get(KeyActivityLog)
	if err != nil {
		return models.ActivityLog{}, fmt.Errorf("get activity log: %w", err)
	}
	if data == nil {
		return models.ActivityLog{}, nil
	}

	a, changed, err := models.MigrateActivityLog(data)
	if err != nil {
		return models.ActivityLog{}, err
	}
	if changed {
		s.log.Info("migrated stored activity log", "exercises", len(a.Exercises))
		if err := s.SaveActivityLog(a); err != nil {
			s.log.Warn("rewrite migrated activity log", "err", err)
		}
	}
	return a, nil
}

// SaveActivityLog stores the activity log.
func (s *Store) SaveActivityLog(a models.ActivityLog) error {
	return s.put(KeyActivityLog, a)
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.backend.Set(key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	s.log.Debug("saved", "key", key, "bytes", len(data))
	return nil
}
