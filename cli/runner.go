// Command execution for CLI commands.
//
// Information Hiding:
// - Config/template/provider setup hidden
// - Session orchestration hidden
// - Output formatting hidden

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/richinex/hanoibench/config"
	"github.com/richinex/hanoibench/llm"
	"github.com/richinex/hanoibench/prompts"
	"github.com/richinex/hanoibench/puzzle"
	"github.com/richinex/hanoibench/scorer"
	"github.com/richinex/hanoibench/solver"
	"github.com/richinex/hanoibench/storage"
)

// Options holds CLI execution options.
type Options struct {
	ConfigPath string
	Provider   string // overrides config when set
	Model      string // overrides config when set
	DBPath     string // overrides config when set
	Verbose    bool
}

// Run executes one experiment: one solver session per configured puzzle
// size, persisting each session's transcript and result.
func Run(ctx context.Context, opts Options) error {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Provider != "" {
		settings.LLM.Provider = opts.Provider
		settings.LLM.Model = ""
	}
	if opts.Model != "" {
		settings.LLM.Model = opts.Model
	}
	if opts.DBPath != "" {
		settings.Run.DBPath = opts.DBPath
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	templates, err := loadTemplates(settings.Run.TemplateDir)
	if err != nil {
		return err
	}

	generator, err := createGenerator(settings.LLM)
	if err != nil {
		return err
	}

	store, err := storage.Open(settings.Run.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	logger := slog.Default()
	logger.Info("starting run",
		"provider", settings.LLM.Provider,
		"model", settings.LLM.Model,
		"sizes", settings.Run.PuzzleSizes)

	var results []solver.CompletionResult
	for _, size := range settings.Run.PuzzleSizes {
		p, err := newPuzzle(settings.Run.Puzzle, size)
		if err != nil {
			return err
		}

		session, err := solver.NewMultiTurn(p, generator, templates, solverOptions(settings.Solver))
		if err != nil {
			return err
		}
		session = session.WithLogger(logger.With("puzzle_size", size))

		sessionID := uuid.NewString()
		if err := store.CreateSession(ctx, sessionID, settings.Run.Puzzle, size); err != nil {
			return err
		}

		outcome := session.Solve(ctx)
		results = append(results, outcome.Result)

		if err := store.SaveTranscript(ctx, sessionID, outcome.Transcript); err != nil {
			return err
		}
		if err := store.SaveResult(ctx, sessionID, outcome.Result); err != nil {
			return err
		}

		printScores(sessionID, outcome.Result)
	}

	printSummary(scorer.Summarize(results))
	return nil
}

// Results prints every stored result from a previous run.
func Results(ctx context.Context, dbPath string) error {
	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	stored, err := store.ListResults(ctx)
	if err != nil {
		return err
	}
	if len(stored) == 0 {
		fmt.Println("No results recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SESSION\tPUZZLE\tSIZE\tSOLVED\tREASON\tTURNS\tMOVES\tINVALID\tCREATED")
	for _, s := range stored {
		fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%s\t%d\t%d\t%d\t%s\n",
			s.SessionID,
			s.PuzzleType,
			s.Result.PuzzleSize,
			s.Result.Solved,
			s.Result.TerminationReason,
			s.Result.TurnsTaken,
			s.Result.TotalMovesAttempted,
			s.Result.InvalidTurns,
			s.CreatedAt,
		)
	}
	return w.Flush()
}

// newPuzzle constructs a puzzle by configured type. Tower of Hanoi is the
// only variant today.
func newPuzzle(puzzleType string, size int) (puzzle.Puzzle, error) {
	switch puzzleType {
	case "tower_of_hanoi":
		return puzzle.NewHanoi(size)
	default:
		return nil, fmt.Errorf("unsupported puzzle type: %q", puzzleType)
	}
}

func loadTemplates(dir string) (map[string]string, error) {
	if dir == "" {
		return prompts.Defaults(), nil
	}
	templates, err := prompts.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	if err := prompts.CheckRequired(templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func createGenerator(cfg config.LLMConfig) (solver.Generator, error) {
	apiKey, err := config.APIKeyFor(cfg.Provider)
	if err != nil {
		return nil, err
	}
	provider, err := llm.New(cfg.Provider, apiKey, cfg.Model, cfg.MaxTokens, float32(cfg.Temperature))
	if err != nil {
		return nil, err
	}
	return llm.NewClient(provider), nil
}

func solverOptions(cfg config.SolverConfig) solver.Options {
	return solver.Options{
		TurnLimitMultiplier:  cfg.TurnLimitMultiplier,
		MoveLimitMultiplier:  cfg.MoveLimitMultiplier,
		WindowSize:           cfg.WindowSize,
		RepeatedInvalidLimit: cfg.RepeatedInvalidLimit,
		StateRevisitLimit:    cfg.StateRevisitLimit,
	}
}

func printScores(sessionID string, result solver.CompletionResult) {
	fmt.Printf("\nSession %s (size %d):\n", sessionID, result.PuzzleSize)
	for _, score := range scorer.All(result) {
		fmt.Printf("  %-15s %6.1f  %s\n", score.Name, score.Value, score.Explanation)
	}
}

func printSummary(summary scorer.Summary) {
	if summary.Sessions == 0 {
		return
	}
	fmt.Printf("\n%d sessions: %.0f%% solved, %.1f avg turns, %.1f avg invalid turns, %d/%d moves successful\n",
		summary.Sessions,
		summary.SolveRate*100,
		summary.AvgTurns,
		summary.AvgInvalid,
		summary.SuccessMoves,
		summary.TotalMoves,
	)
}
