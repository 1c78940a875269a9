// ABOUTME: Execution engine advancing a workout by one second per tick.
// ABOUTME: Returns the cues triggered by the tick, in the order they should be spoken.
package workout

import "github.com/harperreed/intervals/internal/models"

// Advance moves the first unfinished task forward by one second and returns
// the cues it triggers: the task's own cue, then, if the task just finished,
// the entering cue of the following task. A finished workout is left as is.
func Advance(w *models.Workout, settings models.Settings) []string {
	i := w.CurrentTaskIndex()
	if i < 0 {
		return nil
	}

	w.Tasks[i].CurrentSecond++

	var cues []string
	if cue, ok := CueFor(w, i, settings); ok {
		cues = append(cues, cue)
	}
	if w.Tasks[i].IsDone() && i+1 < len(w.Tasks) {
		if cue, ok := CueFor(w, i+1, settings); ok {
			cues = append(cues, cue)
		}
	}
	return cues
}

// StartCue is the cue spoken when playback begins on a workout that has
// not started yet.
func StartCue(w *models.Workout, settings models.Settings) (string, bool) {
	if w.HasBegun() {
		return "", false
	}
	return CueFor(w, 0, settings)
}
