// Package solver drives one bounded multi-turn puzzle-solving session.
//
// This is THE canonical turn loop of the harness: render state, ask the
// model, apply its moves, check termination. All session execution goes
// through this module.
//
// Information Hiding:
// - Sliding-window context management hidden
// - Termination policy hidden
// - Session bookkeeping hidden
package solver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/richinex/hanoibench/llm"
	"github.com/richinex/hanoibench/prompts"
	"github.com/richinex/hanoibench/puzzle"
)

// truncationMarker is inserted into the windowed view when older turns are
// dropped, so the model knows history is incomplete.
const truncationMarker = "[History truncated - earlier turns omitted]"

// Generator produces one completion for a message history. llm.Client
// satisfies it; tests substitute scripted implementations. The solver issues
// at most one outstanding request at a time and never retries.
type Generator interface {
	Chat(ctx context.Context, messages []llm.ChatMessage) (string, error)
}

// Options holds the five session tunables. All limits scale off the puzzle's
// optimal move count except the window and stuck thresholds.
type Options struct {
	TurnLimitMultiplier  float64
	MoveLimitMultiplier  float64
	WindowSize           int
	RepeatedInvalidLimit int
	StateRevisitLimit    int
}

// DefaultOptions returns the standard session tunables.
func DefaultOptions() Options {
	return Options{
		TurnLimitMultiplier:  2.0,
		MoveLimitMultiplier:  10.0,
		WindowSize:           4,
		RepeatedInvalidLimit: 3,
		StateRevisitLimit:    2,
	}
}

// Outcome is what a finished session exposes to the caller: the result
// record plus the full unwindowed transcript.
type Outcome struct {
	Result     CompletionResult
	Transcript []llm.ChatMessage
}

// MultiTurn runs one session against one puzzle. Sessions are independent
// and single-threaded; nothing here is safe for concurrent use.
type MultiTurn struct {
	puzzle     puzzle.Puzzle
	generator  Generator
	templates  map[string]string
	opts       Options
	puzzleSize int
	logger     *slog.Logger
}

// NewMultiTurn creates a session controller. The template set must contain
// the required "system" and "user_turn" entries; a missing template is a
// setup error surfaced before the session starts.
func NewMultiTurn(p puzzle.Puzzle, generator Generator, templates map[string]string, opts Options) (*MultiTurn, error) {
	if err := prompts.CheckRequired(templates); err != nil {
		return nil, err
	}
	return &MultiTurn{
		puzzle:     p,
		generator:  generator,
		templates:  templates,
		opts:       opts,
		puzzleSize: p.Size(),
		logger:     slog.Default(),
	}, nil
}

// WithLogger overrides the session logger.
func (s *MultiTurn) WithLogger(logger *slog.Logger) *MultiTurn {
	s.logger = logger
	return s
}

// Solve drives the session to completion. It never returns an error and
// never panics out: any unexpected fault degrades to a CompletionResult with
// reason "error" so a single session cannot crash the evaluation run.
func (s *MultiTurn) Solve(ctx context.Context) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("session fault, degrading to error result", "panic", r)
			outcome = s.degraded()
		}
	}()

	sctx := &Context{}
	sctx.Transcript = append(sctx.Transcript, llm.SystemMessage(s.templates["system"]))

	reason := ""
	for {
		userContent, err := s.buildUserMessage(sctx)
		if err != nil {
			s.logger.Error("template substitution failed", "error", err)
			return s.degraded()
		}
		userMsg := llm.UserMessage(userContent)

		windowed := append(s.applyWindow(sctx.Transcript), userMsg)

		s.logger.Debug("generating model response",
			"turn", sctx.TurnCount+1, "window", len(windowed))
		completion, err := s.generator.Chat(ctx, windowed)
		if err != nil {
			s.logger.Error("generation failed", "error", err)
			return s.degraded()
		}

		sctx.Transcript = append(sctx.Transcript, userMsg, llm.AssistantMessage(completion))

		moves, parseErr := s.puzzle.ParseMoves(completion)
		if parseErr != nil {
			s.logger.Info("unparseable response, terminating", "error", parseErr)
			reason = ReasonParseError
			break
		}
		if len(moves) == 0 {
			s.logger.Info("model gave up")
			reason = ReasonGaveUp
			break
		}

		_, invalid := s.puzzle.ApplyMoves(moves)
		s.updateContext(sctx, moves, invalid)
		s.logger.Debug("turn completed",
			"turn", sctx.TurnCount,
			"moves", len(moves),
			"invalid", invalid != nil)

		var stop bool
		stop, reason = s.shouldTerminate(sctx)
		if stop {
			break
		}
	}

	result := CompletionResult{
		Solved:              s.puzzle.IsSolved(),
		TerminationReason:   reason,
		TurnsTaken:          sctx.TurnCount,
		TotalMovesAttempted: sctx.TotalMoves,
		InvalidTurns:        sctx.InvalidTurns,
		SuccessfulMoves:     sctx.SuccessfulMoves,
		PuzzleSize:          s.puzzle.Size(),
	}
	s.logger.Info("session finished",
		"reason", reason,
		"solved", result.Solved,
		"turns", result.TurnsTaken)

	return Outcome{Result: result, Transcript: sctx.Transcript}
}

// buildUserMessage renders the outbound message for the current turn:
// progress label, current state, move format, and the most recent invalid
// attempt when the previous turn failed.
func (s *MultiTurn) buildUserMessage(sctx *Context) (string, error) {
	progress := "This is your first turn."
	if sctx.TurnCount > 0 {
		progress = fmt.Sprintf("Turn %d", sctx.TurnCount+1)
	}

	errorMessage := ""
	if len(sctx.RecentInvalidAttempts) > 0 {
		last := sctx.RecentInvalidAttempts[len(sctx.RecentInvalidAttempts)-1]
		errorMessage = fmt.Sprintf("\nPrevious move was invalid: %s\n\n", last)
	}

	return prompts.Format(s.templates["user_turn"], map[string]string{
		"progress":      progress,
		"current_state": s.puzzle.State(),
		"error_message": errorMessage,
		"move_format":   s.puzzle.MoveFormat(),
	})
}

// applyWindow derives the bounded view sent to the generator. A leading
// system message is always preserved; of the rest, only the WindowSize most
// recent messages are kept, with a truncation marker inserted when anything
// was actually dropped. The authoritative transcript is never mutated.
func (s *MultiTurn) applyWindow(messages []llm.ChatMessage) []llm.ChatMessage {
	var system *llm.ChatMessage
	start := 0
	if len(messages) > 0 && messages[0].Role == llm.RoleSystem {
		system = &messages[0]
		start = 1
	}

	if len(messages) <= s.opts.WindowSize+start {
		return append([]llm.ChatMessage(nil), messages...)
	}

	keep := s.opts.WindowSize
	if rest := len(messages) - start; rest < keep {
		keep = rest
	}

	windowed := make([]llm.ChatMessage, 0, keep+2)
	if system != nil {
		windowed = append(windowed, *system)
	}
	if len(messages)-start > keep {
		windowed = append(windowed, llm.SystemMessage(truncationMarker))
	}
	windowed = append(windowed, messages[len(messages)-keep:]...)
	return windowed
}

// updateContext applies one turn's bookkeeping. A failed batch still spends
// the move budget for every move up to and including the failing one, even
// though those moves were rolled back from puzzle state.
func (s *MultiTurn) updateContext(sctx *Context, moves []puzzle.Move, invalid *puzzle.InvalidMoveError) {
	sctx.TurnCount++

	if invalid != nil {
		sctx.InvalidTurns++
		sctx.TotalMoves += invalid.MoveIndex + 1
		sctx.RecentInvalidAttempts = append(sctx.RecentInvalidAttempts, invalid.Move)
		return
	}

	sctx.SuccessfulMoves += len(moves)
	sctx.TotalMoves += len(moves)
	sctx.RecentInvalidAttempts = sctx.RecentInvalidAttempts[:0]
}

// shouldTerminate evaluates the termination policy in strict priority order;
// the first matching condition wins.
func (s *MultiTurn) shouldTerminate(sctx *Context) (bool, string) {
	optimal := s.puzzle.OptimalMoveCount()

	switch {
	case s.puzzle.IsSolved():
		return true, ReasonSolved
	case sctx.TurnCount >= int(s.opts.TurnLimitMultiplier*float64(optimal)):
		return true, ReasonTurnLimit
	case sctx.TotalMoves >= int(s.opts.MoveLimitMultiplier*float64(optimal)):
		return true, ReasonMoveLimit
	case len(sctx.RecentInvalidAttempts) >= s.opts.RepeatedInvalidLimit:
		return true, ReasonStuckInvalid
	case s.stateLoopDetected():
		return true, ReasonStuckLoop
	}
	return false, ""
}

// stateLoopDetected reports whether any single state has been visited more
// than StateRevisitLimit times. The initial state counts as a visit.
func (s *MultiTurn) stateLoopDetected() bool {
	counts := make(map[string]int)
	for _, state := range s.puzzle.StateHistory() {
		counts[state]++
		if counts[state] > s.opts.StateRevisitLimit {
			return true
		}
	}
	return false
}

// degraded is the single fatal-fallback path: counters zeroed, puzzle size
// from the metadata captured at construction.
func (s *MultiTurn) degraded() Outcome {
	return Outcome{
		Result: CompletionResult{
			Solved:            false,
			TerminationReason: ReasonError,
			PuzzleSize:        s.puzzleSize,
		},
	}
}
