package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/pebblesgame/game/config"
	"github.com/wricardo/mcp-training/pebblesgame/game/engine"
	"github.com/wricardo/mcp-training/pebblesgame/game/service"
)

type stubPresets struct {
	presets []*service.PresetInfo
	err     error
}

func (s stubPresets) ListPresets() ([]*service.PresetInfo, error) {
	return s.presets, s.err
}

func TestAnalyzePreset_Hard(t *testing.T) {
	// Hard answers a multiple of max+1 with max+1, so a pile larger than
	// one turn is lost whoever opens.
	firstMover := &service.PresetInfo{PresetID: "w", PebblesCount: 15, MaxPebblesPerTurn: 3, Difficulty: engine.Hard}
	report, err := analyzePreset(firstMover, 60, []byte("seed"))
	if err != nil {
		t.Fatalf("analyzePreset failed: %v", err)
	}
	if !report.FirstMoverWins || report.HardBeatable {
		t.Errorf("Expected 15/3 to favour the first mover yet stay unbeatable: %+v", report)
	}
	if report.UserFirst+report.ProgramOpenings != 60 {
		t.Errorf("Expected 60 games, got %d + %d", report.UserFirst, report.ProgramOpenings)
	}
	if report.UserFirst == 0 || report.UserWins != 0 {
		t.Errorf("Expected the user to lose every game, including %d openings: %+v", report.UserFirst, report)
	}

	losing := &service.PresetInfo{PresetID: "l", PebblesCount: 20, MaxPebblesPerTurn: 4, Difficulty: engine.Hard}
	report, err = analyzePreset(losing, 60, []byte("seed"))
	if err != nil {
		t.Fatalf("analyzePreset failed: %v", err)
	}
	if report.FirstMoverWins || report.UserWins != 0 {
		t.Errorf("Expected perfect hard play to win every 20/4 game, got %+v", report)
	}

	oneTurn := &service.PresetInfo{PresetID: "o", PebblesCount: 3, MaxPebblesPerTurn: 3, Difficulty: engine.Hard}
	report, err = analyzePreset(oneTurn, 60, []byte("seed"))
	if err != nil {
		t.Fatalf("analyzePreset failed: %v", err)
	}
	if !report.HardBeatable || report.UserWins != report.UserFirst || report.UserWinsFirst != report.UserFirst {
		t.Errorf("Expected the user to win exactly the games they opened: %+v", report)
	}
}

func TestAnalyzePreset_EasyDeterministic(t *testing.T) {
	p := &service.PresetInfo{PresetID: "classic", PebblesCount: 15, MaxPebblesPerTurn: 3, Difficulty: engine.Easy}

	a, err := analyzePreset(p, 40, []byte("same"))
	if err != nil {
		t.Fatalf("analyzePreset failed: %v", err)
	}
	b, _ := analyzePreset(p, 40, []byte("same"))
	if *a != *b {
		t.Errorf("Expected identical reports for the same seed, got %+v and %+v", a, b)
	}
	if a.UserWinsFirst != a.UserFirst {
		t.Errorf("A perfect first mover should never lose 15/3: %+v", a)
	}
}

func TestRun(t *testing.T) {
	manager, err := config.NewManager("")
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	var out bytes.Buffer
	if err := run(&out, manager, 10, []byte("test")); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"=== Analyzing classic ===",
		"=== Analyzing easy ===",
		"=== Analyzing hard ===",
		"Perfect play: second mover wins (pile is a multiple of 5)",
		"Hard opponent: cannot be beaten",
		"Simulated 10 games with a perfect user:",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output:\n%s", want, text)
		}
	}
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	if err := run(&out, stubPresets{err: errors.New("boom")}, 1, nil); err == nil {
		t.Error("Expected listing error to be returned")
	}

	bad := stubPresets{presets: []*service.PresetInfo{{PresetID: "bad", PebblesCount: 0, MaxPebblesPerTurn: 3, Difficulty: engine.Easy}}}
	out.Reset()
	if err := run(&out, bad, 1, nil); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Error simulating") {
		t.Errorf("Expected simulation error in output, got %s", out.String())
	}
}
