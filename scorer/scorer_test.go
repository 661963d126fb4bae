package scorer

import (
	"testing"

	"github.com/richinex/hanoibench/solver"
)

func sampleResult() solver.CompletionResult {
	return solver.CompletionResult{
		Solved:              true,
		TerminationReason:   solver.ReasonSolved,
		TurnsTaken:          4,
		TotalMovesAttempted: 9,
		InvalidTurns:        1,
		SuccessfulMoves:     7,
		PuzzleSize:          3,
	}
}

func TestPuzzleSolved(t *testing.T) {
	score := PuzzleSolved(sampleResult())
	if score.Value != 1.0 {
		t.Errorf("Value = %g, want 1.0", score.Value)
	}

	failed := sampleResult()
	failed.Solved = false
	failed.TerminationReason = solver.ReasonTurnLimit
	score = PuzzleSolved(failed)
	if score.Value != 0.0 {
		t.Errorf("Value = %g, want 0.0", score.Value)
	}
}

func TestAllScores(t *testing.T) {
	scores := All(sampleResult())
	if len(scores) != 4 {
		t.Fatalf("Expected 4 scores, got %d", len(scores))
	}

	byName := make(map[string]float64, len(scores))
	for _, s := range scores {
		byName[s.Name] = s.Value
	}
	if byName["puzzle_solved"] != 1.0 {
		t.Errorf("puzzle_solved = %g", byName["puzzle_solved"])
	}
	if byName["turns_taken"] != 4.0 {
		t.Errorf("turns_taken = %g", byName["turns_taken"])
	}
	if byName["moves_used"] != 7.0 {
		t.Errorf("moves_used = %g", byName["moves_used"])
	}
	if byName["invalid_turns"] != 1.0 {
		t.Errorf("invalid_turns = %g", byName["invalid_turns"])
	}
}

func TestSummarize(t *testing.T) {
	solved := sampleResult()
	failed := solver.CompletionResult{
		TerminationReason:   solver.ReasonStuckInvalid,
		TurnsTaken:          6,
		TotalMovesAttempted: 5,
		InvalidTurns:        3,
		SuccessfulMoves:     2,
		PuzzleSize:          4,
	}

	summary := Summarize([]solver.CompletionResult{solved, failed})

	if summary.Sessions != 2 {
		t.Errorf("Sessions = %d", summary.Sessions)
	}
	if summary.SolveRate != 0.5 {
		t.Errorf("SolveRate = %g", summary.SolveRate)
	}
	if summary.AvgTurns != 5.0 {
		t.Errorf("AvgTurns = %g", summary.AvgTurns)
	}
	if summary.AvgInvalid != 2.0 {
		t.Errorf("AvgInvalid = %g", summary.AvgInvalid)
	}
	if summary.TotalMoves != 14 {
		t.Errorf("TotalMoves = %d", summary.TotalMoves)
	}
	if summary.SuccessMoves != 9 {
		t.Errorf("SuccessMoves = %d", summary.SuccessMoves)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.Sessions != 0 {
		t.Errorf("Sessions = %d, want 0", summary.Sessions)
	}
}
