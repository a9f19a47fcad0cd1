// Package config provides game preset management for the Pebbles Game.
//
// The config package handles:
//   - Builtin presets embedded in the binary
//   - Loading additional presets from a directory of YAML or JSON files
//   - Preset validation
//   - Default preset selection and preset listing
//
// Preset Format:
//
// A preset file holds a single preset:
//
//	name: marathon
//	description: A long game against the strategy player
//	pebbles_count: 101
//	max_pebbles_per_turn: 5
//	difficulty: hard
//
// The file name without its extension is the preset id. A file whose id
// matches a builtin preset replaces it.
//
// Builtin Presets:
//   - classic: 15 pebbles, up to 3 per turn, easy
//   - easy: 10 pebbles, up to 3 per turn, easy
//   - hard: 20 pebbles, up to 4 per turn, hard
//
// Usage:
//
//	manager, err := config.NewManager("presets")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	preset, err := manager.LoadPreset("hard")
//	defaultPreset := manager.GetDefault()
//	presets, err := manager.ListPresets()
package config
