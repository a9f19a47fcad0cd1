package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func hasLine(lines []string, substr string) bool {
	for _, line := range lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestValidatePreset_Valid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "classic.yaml", "name: classic\npebbles_count: 15\nmax_pebbles_per_turn: 3\ndifficulty: easy\n")

	result := validatePreset(path)
	if !result.Valid {
		t.Fatalf("Expected valid preset, got errors: %v", result.Errors)
	}
	if result.ID != "classic" {
		t.Errorf("Expected id classic, got %s", result.ID)
	}
	if !hasLine(result.Notes, "First mover wins by leaving a multiple of 4") {
		t.Errorf("Expected first mover note, got %v", result.Notes)
	}
}

func TestValidatePreset_UnbeatableHard(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "wall.json", `{"pebbles_count": 20, "max_pebbles_per_turn": 4, "difficulty": "hard"}`)

	result := validatePreset(path)
	if !result.Valid {
		t.Fatalf("Expected valid preset, got errors: %v", result.Errors)
	}
	if !hasLine(result.Notes, "Second mover wins") || !hasLine(result.Notes, "cannot be beaten") {
		t.Errorf("Expected unbeatable note, got %v", result.Notes)
	}
}

func TestValidatePreset_HardFirstMoverStillLoses(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "trap.yaml", "pebbles_count: 15\nmax_pebbles_per_turn: 3\ndifficulty: hard\n")

	result := validatePreset(path)
	if !result.Valid {
		t.Fatalf("Expected valid preset, got errors: %v", result.Errors)
	}
	if !hasLine(result.Notes, "First mover wins") || !hasLine(result.Notes, "cannot be beaten") {
		t.Errorf("Expected 15/3 hard to be flagged unbeatable, got %v", result.Notes)
	}
}

func TestValidatePreset_HardOneTurnPile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sprint.yaml", "pebbles_count: 3\nmax_pebbles_per_turn: 3\ndifficulty: hard\n")

	result := validatePreset(path)
	if !result.Valid {
		t.Fatalf("Expected valid preset, got errors: %v", result.Errors)
	}
	if hasLine(result.Notes, "cannot be beaten") || !hasLine(result.Notes, "taking the whole pile") {
		t.Errorf("Expected a beatable hard note, got %v", result.Notes)
	}
}

func TestValidatePreset_WholePile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tiny.yaml", "pebbles_count: 3\nmax_pebbles_per_turn: 5\ndifficulty: easy\n")

	result := validatePreset(path)
	if !result.Valid {
		t.Fatalf("Expected valid preset, got errors: %v", result.Errors)
	}
	if !hasLine(result.Notes, "Name: tiny") || !hasLine(result.Notes, "covers the whole pile") {
		t.Errorf("Unexpected notes: %v", result.Notes)
	}
}

func TestValidatePreset_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"bad json", "a.json", "{not json", "failed to parse"},
		{"bad yaml", "b.yaml", "pebbles_count: [", "failed to parse"},
		{"zero pebbles", "c.yaml", "pebbles_count: 0\nmax_pebbles_per_turn: 3\ndifficulty: easy\n", "pebbles_count must be positive"},
		{"zero max", "d.yaml", "pebbles_count: 5\nmax_pebbles_per_turn: 0\ndifficulty: easy\n", "max_pebbles_per_turn must be positive"},
		{"unknown difficulty", "e.json", `{"pebbles_count": 5, "max_pebbles_per_turn": 2, "difficulty": "brutal"}`, "brutal"},
		{"unknown json field", "f.json", `{"pebbles_count": 5, "max_pebbles_per_turn": 2, "difficulty": "easy", "pebbels": 3}`, "pebbels"},
		{"unknown yaml field", "g.yaml", "pebbles_count: 5\nmax_pebbles_per_turn: 2\ndifficulty: easy\nmax_per_turn: 4\n", "max_per_turn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			result := validatePreset(writeFile(t, dir, tt.file, tt.content))
			if result.Valid {
				t.Fatal("Expected invalid preset")
			}
			if !hasLine(result.Errors, tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, result.Errors)
			}
		})
	}
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "duel.json", `{"pebbles_count": 21, "max_pebbles_per_turn": 2, "difficulty": "easy"}`)
	writeFile(t, dir, "Duel.yaml", "pebbles_count: 9\nmax_pebbles_per_turn: 2\ndifficulty: hard\n")
	writeFile(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "nested.yaml"), 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	results, err := validateDir(dir)
	if err != nil {
		t.Fatalf("validateDir failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].File != "Duel.yaml" || !results[0].Valid {
		t.Errorf("Expected Duel.yaml to be valid first, got %+v", results[0])
	}
	if results[1].Valid || !hasLine(results[1].Errors, "Duplicate preset id") {
		t.Errorf("Expected duplicate id error, got %+v", results[1])
	}

	if _, err := validateDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestReport(t *testing.T) {
	var out bytes.Buffer
	ok := report(&out, []ValidationResult{
		{File: "a.yaml", Valid: true, Notes: []string{"✓ Name: a"}},
		{File: "b.yaml", Valid: false, Errors: []string{"broken"}},
	})
	if ok {
		t.Error("Expected report to fail with an invalid preset")
	}
	text := out.String()
	for _, want := range []string{"✅ VALID", "✓ Name: a", "❌ INVALID", "❌ broken", "Some presets have errors"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output:\n%s", want, text)
		}
	}

	out.Reset()
	if !report(&out, nil) || !strings.Contains(out.String(), "No preset files found") {
		t.Errorf("Unexpected empty report: %s", out.String())
	}
}

func TestShippedPresets(t *testing.T) {
	results, err := validateDir(filepath.Join("..", "presets"))
	if err != nil {
		t.Fatalf("validateDir failed: %v", err)
	}
	var out bytes.Buffer
	if !report(&out, results) {
		t.Errorf("Shipped presets are invalid:\n%s", out.String())
	}
}
