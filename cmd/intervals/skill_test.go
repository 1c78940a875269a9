// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, confirmation, and file content.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestInstallSkillWritesFile verifies a confirmed install creates the
// directory tree and writes the embedded skill.
func TestInstallSkillWritesFile(t *testing.T) {
	tmpHome := t.TempDir()
	var out bytes.Buffer

	if err := installSkill(tmpHome, strings.NewReader("y\n"), &out, false); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	skillPath := filepath.Join(tmpHome, ".claude", "skills", "intervals", "SKILL.md")
	written, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("Skill file not created: %v", err)
	}

	embedded, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}
	if !bytes.Equal(written, embedded) {
		t.Error("Installed skill does not match embedded content")
	}
	if !strings.Contains(out.String(), "Installed intervals skill") {
		t.Errorf("Expected success message, got:\n%s", out.String())
	}
}

// TestInstallSkillCanceled verifies that declining leaves nothing behind.
func TestInstallSkillCanceled(t *testing.T) {
	tmpHome := t.TempDir()
	var out bytes.Buffer

	if err := installSkill(tmpHome, strings.NewReader("n\n"), &out, false); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpHome, ".claude")); err == nil {
		t.Error(".claude directory should not be created when canceled")
	}
	if !strings.Contains(out.String(), "Installation canceled.") {
		t.Errorf("Expected cancel message, got:\n%s", out.String())
	}
}

// TestInstallSkillOverwritesExistingFile verifies a stale skill is replaced
// without prompting when confirmation is skipped.
func TestInstallSkillOverwritesExistingFile(t *testing.T) {
	tmpHome := t.TempDir()
	skillDir := filepath.Join(tmpHome, ".claude", "skills", "intervals")
	skillPath := filepath.Join(skillDir, "SKILL.md")

	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatalf("Failed to create skill directory: %v", err)
	}
	if err := os.WriteFile(skillPath, []byte("# Old Skill\nstale content"), 0644); err != nil {
		t.Fatalf("Failed to write old skill file: %v", err)
	}

	var out bytes.Buffer
	if err := installSkill(tmpHome, strings.NewReader(""), &out, true); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	newData, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("Failed to read new skill file: %v", err)
	}
	if strings.Contains(string(newData), "stale content") {
		t.Error("Old content should have been replaced")
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Error("Expected overwrite notice")
	}
}

// TestInstallSkillFilePermissions verifies the file is private to the owner.
func TestInstallSkillFilePermissions(t *testing.T) {
	tmpHome := t.TempDir()

	if err := installSkill(tmpHome, nil, &bytes.Buffer{}, true); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(tmpHome, ".claude", "skills", "intervals", "SKILL.md"))
	if err != nil {
		t.Fatalf("Failed to stat skill file: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("Expected 0600, got %v", mode)
	}
}

// TestSkillFSReadEmbeddedContent verifies the embedded SKILL.md has
// frontmatter and documents the MCP tools.
func TestSkillFSReadEmbeddedContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill/SKILL.md: %v", err)
	}

	contentStr := string(content)
	if !strings.HasPrefix(contentStr, "---") {
		t.Error("Expected SKILL.md to start with YAML frontmatter (---)")
	}

	expectedMarkers := []string{
		"name: intervals",
		"description:",
		"## When to use intervals",
		"## Duration overrides",
		"## Rest days",
	}
	for _, marker := range expectedMarkers {
		if !strings.Contains(contentStr, marker) {
			t.Errorf("Expected SKILL.md to contain %q", marker)
		}
	}

	for _, tool := range registeredToolNames {
		if !strings.Contains(contentStr, "mcp__intervals__"+tool) {
			t.Errorf("Expected embedded SKILL.md to reference %q", tool)
		}
	}
}

// TestSkillSkipConfirmFlag verifies the flag exists and has correct defaults.
func TestSkillSkipConfirmFlag(t *testing.T) {
	flag := installSkillCmd.Flags().Lookup("yes")
	if flag == nil {
		t.Fatal("Expected --yes flag to be defined")
	}
	if flag.Shorthand != "y" {
		t.Errorf("Expected shorthand 'y', got %q", flag.Shorthand)
	}
	if flag.DefValue != "false" {
		t.Errorf("Expected default value 'false', got %q", flag.DefValue)
	}
}

// registeredToolNames lists the MCP tools the skill must document.
var registeredToolNames = []string{
	"generate_workout",
	"get_workout",
	"reset_workout",
	"list_groups",
	"add_group",
	"update_group",
	"remove_group",
	"add_exercise",
	"update_exercise",
	"remove_exercise",
	"update_settings",
	"get_history",
}
