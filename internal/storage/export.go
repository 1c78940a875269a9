// ABOUTME: Export and import of intervals data as JSON, YAML or Markdown.
// ABOUTME: Imports run through the schema migrations so legacy backups load.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/workout"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the version stamped on export bundles.
const ExportVersion = "1.0"

// Format is an export encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates an export format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatMarkdown:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", s)
}

// ExportData is a backup bundle. Nil sections are left untouched on import.
type ExportData struct {
	Version     string              `json:"version" yaml:"version"`
	ExportedAt  time.Time           `json:"exported_at" yaml:"exported_at"`
	Tool        string              `json:"tool" yaml:"tool"`
	Settings    *models.Settings    `json:"settings,omitempty" yaml:"settings,omitempty"`
	Workout     *models.Workout     `json:"workout,omitempty" yaml:"workout,omitempty"`
	ActivityLog *models.ActivityLog `json:"activity_log,omitempty" yaml:"activity_log,omitempty"`
}

// GetAllData reads every document from repo into a bundle.
func GetAllData(repo Repository) (*ExportData, error) {
	settings, err := repo.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	workout, err := repo.GetWorkout()
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}
	activity, err := repo.GetActivityLog()
	if err != nil {
		return nil, fmt.Errorf("get activity log: %w", err)
	}

	return &ExportData{
		Version:     ExportVersion,
		ExportedAt:  time.Now(),
		Tool:        "intervals",
		Settings:    &settings,
		Workout:     &workout,
		ActivityLog: &activity,
	}, nil
}

// ImportData writes every non-nil section of data into repo.
func ImportData(repo Repository, data *ExportData) error {
	if data.Settings != nil {
		if err := repo.SaveSettings(*data.Settings); err != nil {
			return fmt.Errorf("import settings: %w", err)
		}
	}
	if data.Workout != nil {
		if err := repo.SaveWorkout(*data.Workout); err != nil {
			return fmt.Errorf("import workout: %w", err)
		}
	}
	if data.ActivityLog != nil {
		if err := repo.SaveActivityLog(*data.ActivityLog); err != nil {
			return fmt.Errorf("import activity log: %w", err)
		}
	}
	return nil
}

// Encode renders data in the given format.
func Encode(data *ExportData, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		return yaml.Marshal(data)
	case FormatMarkdown:
		return []byte(ExportMarkdown(data)), nil
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}

// Decode parses a JSON or YAML bundle, upgrading legacy section shapes.
func Decode(raw []byte, format Format) (*ExportData, error) {
	var doc map[string]any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("cannot import %s", format)
	}

	data := &ExportData{}
	if v, ok := doc["version"].(string); ok {
		data.Version = v
	}
	if v, ok := doc["tool"].(string); ok {
		data.Tool = v
	}

	if section, ok := doc["settings"]; ok && section != nil {
		b, err := json.Marshal(section)
		if err != nil {
			return nil, fmt.Errorf("encode settings: %w", err)
		}
		s, _, err := models.MigrateSettings(b)
		if err != nil {
			return nil, err
		}
		data.Settings = &s
	}
	if section, ok := doc["workout"]; ok && section != nil {
		b, err := json.Marshal(section)
		if err != nil {
			return nil, fmt.Errorf("encode workout: %w", err)
		}
		w, _, err := models.MigrateWorkout(b)
		if err != nil {
			return nil, err
		}
		data.Workout = &w
	}
	if section, ok := doc["activity_log"]; ok && section != nil {
		b, err := json.Marshal(section)
		if err != nil {
			return nil, fmt.Errorf("encode activity log: %w", err)
		}
		a, _, err := models.MigrateActivityLog(b)
		if err != nil {
			return nil, err
		}
		data.ActivityLog = &a
	}

	if data.Settings == nil && data.Workout == nil && data.ActivityLog == nil {
		return nil, fmt.Errorf("no settings, workout, or activity log found")
	}
	return data, nil
}

// ExportMarkdown renders a bundle as Markdown tables.
func ExportMarkdown(data *ExportData) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Intervals Export - %s\n\n", data.ExportedAt.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", data.ExportedAt.Format(time.RFC3339)))

	if s := data.Settings; s != nil {
		sb.WriteString("## Exercise Groups\n\n")
		sb.WriteString("| Group | Exercise | Duration | Primary | Active |\n")
		sb.WriteString("|-------|----------|----------|---------|--------|\n")
		for _, g := range s.ExerciseGroups {
			for _, e := range g.Exercises {
				sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
					g.Name, e.Name, e.DurationOverride, yesNo(e.IsPrimary), yesNo(g.Active)))
			}
		}
		sb.WriteString("\n")
	}

	if w := data.Workout; w != nil && len(w.Tasks) > 0 {
		sb.WriteString("## Current Workout\n\n")
		sb.WriteString("| # | Task | Type | Duration | Progress |\n")
		sb.WriteString("|---|------|------|----------|----------|\n")
		for i, t := range w.Tasks {
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
				i+1, t.Name, t.Type, workout.FormatClock(t.Duration), workout.FormatClock(t.CurrentSecond)))
		}
		sb.WriteString("\n")
	}

	if a := data.ActivityLog; a != nil && len(a.Exercises) > 0 {
		entries := append([]models.ExerciseLog(nil), a.Exercises...)
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].LastFinished.After(entries[j].LastFinished)
		})

		sb.WriteString("## Activity\n\n")
		sb.WriteString("| Exercise | Last Finished |\n")
		sb.WriteString("|----------|---------------|\n")
		for _, e := range entries {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", e.Name, e.LastFinished.Format("2006-01-02 15:04")))
		}
	}

	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
