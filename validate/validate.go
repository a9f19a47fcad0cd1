// Command validate checks every preset file (*.yaml, *.yml, *.json) in a
// presets directory. It checks:
//   - YAML/JSON structure, rejecting unknown fields
//   - Positive pebble count and per-turn maximum
//   - A known difficulty (easy or hard)
//   - Preset ids that are unique once lowercased and stripped of extension
//
// Valid presets also get a short strategy note: which side wins under
// perfect play and whether the hard opponent can be beaten at all.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/pebblesgame/game/config"
	"github.com/wricardo/mcp-training/pebblesgame/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Notes holds informational lines; otherwise Errors
// holds the problems found.
type ValidationResult struct {
	File   string
	ID     string
	Valid  bool
	Errors []string
	Notes  []string
}

// validatePreset loads a single preset file and describes it.
func validatePreset(path string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(path),
		ID:    strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))),
		Valid: true,
	}

	preset, err := config.ParsePresetFile(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	period := uint64(preset.MaxPebblesPerTurn) + 1
	result.Notes = append(result.Notes,
		fmt.Sprintf("✓ Name: %s", preset.Name),
		fmt.Sprintf("✓ Pebbles: %d, max per turn: %d", preset.PebblesCount, preset.MaxPebblesPerTurn),
		fmt.Sprintf("✓ Difficulty: %s", preset.Difficulty),
	)

	firstWins := engine.FirstMoverWins(preset.PebblesCount, preset.MaxPebblesPerTurn)
	if firstWins {
		result.Notes = append(result.Notes, fmt.Sprintf("✓ First mover wins by leaving a multiple of %d", period))
	} else {
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Second mover wins (%d is a multiple of %d)", preset.PebblesCount, period))
	}
	if preset.Difficulty == engine.Hard {
		if engine.HardBeatable(preset.PebblesCount, preset.MaxPebblesPerTurn) {
			result.Notes = append(result.Notes, "✓ Hard opponent is beaten only by moving first and taking the whole pile")
		} else {
			result.Notes = append(result.Notes, "! Hard opponent cannot be beaten with these settings")
		}
	}
	if uint64(preset.MaxPebblesPerTurn) >= uint64(preset.PebblesCount) {
		result.Notes = append(result.Notes, "! Max per turn covers the whole pile, the first move can win outright")
	}

	return result
}

// validateDir validates every preset file in dir, sorted by file name, and
// flags ids that more than one file resolves to.
func validateDir(dir string) ([]ValidationResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading presets directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	owners := map[string]string{}
	results := make([]ValidationResult, 0, len(files))
	for _, name := range files {
		result := validatePreset(filepath.Join(dir, name))
		if first, dup := owners[result.ID]; dup {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Duplicate preset id %q (also defined by %s)", result.ID, first))
		} else {
			owners[result.ID] = name
		}
		results = append(results, result)
	}
	return results, nil
}

// report prints results and returns whether all of them are valid.
func report(w io.Writer, results []ValidationResult) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, note := range result.Notes {
				fmt.Fprintln(w, "  "+note)
			}
			continue
		}

		allValid = false
		fmt.Fprintln(w, "❌ INVALID")
		for _, err := range result.Errors {
			fmt.Fprintln(w, "  ❌ "+err)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	switch {
	case len(results) == 0:
		fmt.Fprintln(w, "No preset files found")
	case allValid:
		fmt.Fprintln(w, "✅ All presets are valid!")
	default:
		fmt.Fprintln(w, "❌ Some presets have errors")
	}
	return allValid
}

func main() {
	cmd := &cli.Command{
		Name:      "validate",
		Usage:     "Validate game preset files",
		ArgsUsage: "[presets-dir]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := "presets"
			if cmd.Args().Present() {
				dir = cmd.Args().First()
			}
			results, err := validateDir(dir)
			if err != nil {
				return err
			}
			if !report(os.Stdout, results) {
				return cli.Exit("", 1)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "validate: %v\n", err)
		os.Exit(1)
	}
}
