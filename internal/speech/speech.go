// ABOUTME: Cue speakers that turn workout cues into terminal output, log lines or audio.
// ABOUTME: The [pause] token marks a short break between "Next up:" and the exercise.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
)

// PauseToken marks a spoken pause inside a cue.
const PauseToken = "[pause]"

// Speaker delivers a cue.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Render replaces pause tokens with an ellipsis for display.
func Render(text string) string {
	return collapse(strings.ReplaceAll(text, PauseToken, "..."))
}

// Strip removes pause tokens for speech engines that pause on punctuation.
func Strip(text string) string {
	return collapse(strings.ReplaceAll(text, PauseToken, " "))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Console prints cues to a terminal.
type Console struct {
	Out io.Writer
}

var cueColor = color.New(color.FgCyan, color.Bold)

// Speak writes the rendered cue on its own line.
func (c Console) Speak(_ context.Context, text string) error {
	_, err := cueColor.Fprintf(c.Out, "🔊 %s\n", Render(text))
	return err
}

// Command runs a text-to-speech program with the cue as its last argument.
type Command struct {
	Program string
	Args    []string
	Stdout  io.Writer
	Stderr  io.Writer
}

// ParseCommand splits a command line such as "espeak -s 150" into a Command.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errors.New("empty speech command")
	}
	return Command{Program: fields[0], Args: fields[1:]}, nil
}

// Speak runs the program and waits for it to finish.
func (c Command) Speak(ctx context.Context, text string) error {
	args := append(append([]string(nil), c.Args...), Strip(text))
	cmd := exec.CommandContext(ctx, c.Program, args...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", c.Program, err)
	}
	return nil
}

// Log records cues as structured log lines.
type Log struct {
	Logger *log.Logger
}

// Speak logs the cue at info level.
func (l Log) Speak(_ context.Context, text string) error {
	l.Logger.Info("cue", "text", Render(text))
	return nil
}

// Multi fans a cue out to several speakers. Every speaker is tried.
type Multi []Speaker

// Speak delivers to all speakers and joins their errors.
func (m Multi) Speak(ctx context.Context, text string) error {
	var errs []error
	for _, s := range m {
		if err := s.Speak(ctx, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
