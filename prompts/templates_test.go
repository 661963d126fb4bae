package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatSubstitutesVariables(t *testing.T) {
	got, err := Format("Move {disk} from {from} to {to}", map[string]string{
		"disk": "1",
		"from": "0",
		"to":   "2",
	})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if got != "Move 1 from 0 to 2" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatMissingVariable(t *testing.T) {
	_, err := Format("State: {current_state}", map[string]string{})
	if err == nil {
		t.Fatal("Expected error for unbound placeholder")
	}
	if !strings.Contains(err.Error(), "current_state") {
		t.Errorf("Error should name the missing variable: %v", err)
	}
}

func TestFormatUnusedVariablesAllowed(t *testing.T) {
	got, err := Format("hello", map[string]string{"unused": "x"})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatIgnoresNonIdentifierBraces(t *testing.T) {
	got, err := Format("JSON looks like {} or {1,2}", nil)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if got != "JSON looks like {} or {1,2}" {
		t.Errorf("Format() = %q", got)
	}
}

func TestDefaultsContainRequiredTemplates(t *testing.T) {
	templates := Defaults()
	if err := CheckRequired(templates); err != nil {
		t.Fatalf("Default templates incomplete: %v", err)
	}

	missing := Validate(templates["user_turn"], []string{
		"progress", "current_state", "error_message", "move_format",
	})
	if len(missing) != 0 {
		t.Errorf("user_turn template missing placeholders: %v", missing)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write template: %v", err)
		}
	}
	write("system.txt", "You solve puzzles.")
	write("user_turn.txt", "{progress} {current_state} {error_message} {move_format}")

	templates, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("Expected 2 templates, got %d", len(templates))
	}
	if templates["system"] != "You solve puzzles." {
		t.Errorf("system template = %q", templates["system"])
	}
	if err := CheckRequired(templates); err != nil {
		t.Errorf("Loaded set should satisfy requirements: %v", err)
	}
}

func TestLoadDirMissingDirectory(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("Expected error for missing directory")
	}
}

func TestLoadDirEmptyDirectory(t *testing.T) {
	if _, err := LoadDir(t.TempDir()); err == nil {
		t.Fatal("Expected error for directory without templates")
	}
}

func TestCheckRequiredReportsMissing(t *testing.T) {
	err := CheckRequired(map[string]string{"system": "x"})
	if err == nil {
		t.Fatal("Expected error for missing user_turn")
	}
	if !strings.Contains(err.Error(), "user_turn") {
		t.Errorf("Error should name the missing template: %v", err)
	}
}

func TestValidateReportsAbsentPlaceholders(t *testing.T) {
	missing := Validate("only {progress} here", []string{"progress", "current_state", "move_format"})
	if len(missing) != 2 {
		t.Fatalf("Expected 2 missing names, got %v", missing)
	}
	if missing[0] != "current_state" || missing[1] != "move_format" {
		t.Errorf("Missing names not sorted: %v", missing)
	}
}
