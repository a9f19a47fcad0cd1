// Command analyze prints quick, human-readable facts about the game presets:
// whether the player moving first wins under perfect play, whether the hard
// opponent can be beaten at all, and how a perfect player actually fares
// against each preset's opponent over a batch of seeded games.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/pebblesgame/game/config"
	"github.com/wricardo/mcp-training/pebblesgame/game/engine"
	"github.com/wricardo/mcp-training/pebblesgame/game/service"
)

// Report summarizes one preset
type Report struct {
	Preset          service.PresetInfo
	FirstMoverWins  bool
	HardBeatable    bool
	Games           int
	UserFirst       int
	UserWins        int
	UserWinsFirst   int
	ProgramOpenings int
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "Analyze game presets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "presets-dir",
				Usage:   "Directory with extra presets (builtins only when empty)",
				Sources: cli.EnvVars("PRESETS_DIR"),
			},
			&cli.IntFlag{
				Name:  "games",
				Value: 200,
				Usage: "Games to simulate per preset",
			},
			&cli.StringFlag{
				Name:  "seed",
				Value: "analyze",
				Usage: "Seed for the simulated games",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			manager, err := config.NewManager(cmd.String("presets-dir"))
			if err != nil {
				return err
			}
			return run(os.Stdout, manager, int(cmd.Int("games")), []byte(cmd.String("seed")))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

// presetSource is the part of the preset manager the analyzer needs
type presetSource interface {
	ListPresets() ([]*service.PresetInfo, error)
}

func run(w io.Writer, presets presetSource, games int, seed []byte) error {
	list, err := presets.ListPresets()
	if err != nil {
		return err
	}

	for _, p := range list {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", p.PresetID)
		report, err := analyzePreset(p, games, seed)
		if err != nil {
			fmt.Fprintf(w, "Error simulating: %v\n", err)
			continue
		}
		printReport(w, report)
	}
	return nil
}

func printReport(w io.Writer, r *Report) {
	p := r.Preset
	fmt.Fprintf(w, "Name: %s\n", p.Name)
	fmt.Fprintf(w, "Pebbles: %d, max per turn: %d, difficulty: %s\n", p.PebblesCount, p.MaxPebblesPerTurn, p.Difficulty)
	if r.FirstMoverWins {
		fmt.Fprintf(w, "Perfect play: first mover wins (leave a multiple of %d)\n", uint64(p.MaxPebblesPerTurn)+1)
	} else {
		fmt.Fprintf(w, "Perfect play: second mover wins (pile is a multiple of %d)\n", uint64(p.MaxPebblesPerTurn)+1)
	}
	if p.Difficulty == engine.Hard {
		if r.HardBeatable {
			fmt.Fprintf(w, "Hard opponent: beaten only by moving first and taking the whole pile\n")
		} else {
			fmt.Fprintf(w, "Hard opponent: cannot be beaten\n")
		}
	}
	fmt.Fprintf(w, "Simulated %d games with a perfect user:\n", r.Games)
	fmt.Fprintf(w, "  user moved first: %d, won %d of those\n", r.UserFirst, r.UserWinsFirst)
	fmt.Fprintf(w, "  program moved first: %d, won %d of those\n", r.ProgramOpenings, r.ProgramOpenings-(r.UserWins-r.UserWinsFirst))
	if r.Games > 0 {
		fmt.Fprintf(w, "  user win rate: %.1f%%\n", 100*float64(r.UserWins)/float64(r.Games))
	}
}

// analyzePreset plays games against the preset with a user that plays
// engine.PerfectMove.
func analyzePreset(p *service.PresetInfo, games int, seed []byte) (*Report, error) {
	report := &Report{
		Preset:         *p,
		FirstMoverWins: engine.FirstMoverWins(p.PebblesCount, p.MaxPebblesPerTurn),
		HardBeatable:   engine.HardBeatable(p.PebblesCount, p.MaxPebblesPerTurn),
		Games:          games,
	}
	params := engine.InitParams{
		PebblesCount:      p.PebblesCount,
		MaxPebblesPerTurn: p.MaxPebblesPerTurn,
		Difficulty:        p.Difficulty,
	}

	for g := 0; g < games; g++ {
		winner, userFirst, err := simulate(params, seed, g)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", g, err)
		}
		if userFirst {
			report.UserFirst++
		} else {
			report.ProgramOpenings++
		}
		if winner == engine.User {
			report.UserWins++
			if userFirst {
				report.UserWinsFirst++
			}
		}
	}
	return report, nil
}

func simulate(params engine.InitParams, seed []byte, game int) (engine.Player, bool, error) {
	eng := engine.NewEngine()
	discard := engine.ResponderFunc(func(engine.Event) error { return nil })
	runtime := func(msg int) engine.Runtime {
		salt := fmt.Sprintf("game-%d/msg-%d", game, msg)
		return engine.Runtime{
			Random:    engine.NewSaltedSource(seed, []byte(salt)),
			Responses: discard,
		}
	}

	if err := eng.Initialize(runtime(0), params); err != nil {
		return "", false, err
	}
	state, err := eng.Snapshot()
	if err != nil {
		return "", false, err
	}
	userFirst := state.FirstPlayer == engine.User

	// Every turn removes at least one pebble, so the pile bounds the loop
	for msg := 1; state.Winner == nil; msg++ {
		if err := eng.ApplyTurn(runtime(msg), engine.PerfectMove(state.PebblesRemaining, state.MaxPebblesPerTurn)); err != nil {
			return "", false, err
		}
		if state, err = eng.Snapshot(); err != nil {
			return "", false, err
		}
	}
	return *state.Winner, userFirst, nil
}
