// Package scorer turns completion results into evaluation scores.
//
// Each scorer reads one CompletionResult and yields a value with an
// explanation; Summary aggregates a whole run.
package scorer

import (
	"fmt"

	"github.com/richinex/hanoibench/solver"
)

// Score is one metric computed from a completion result.
type Score struct {
	Name        string
	Value       float64
	Explanation string
}

// PuzzleSolved scores 1 for a solved puzzle, 0 otherwise.
func PuzzleSolved(r solver.CompletionResult) Score {
	value := 0.0
	if r.Solved {
		value = 1.0
	}
	return Score{
		Name:        "puzzle_solved",
		Value:       value,
		Explanation: fmt.Sprintf("Terminated with reason %q", r.TerminationReason),
	}
}

// TurnsTaken scores the number of interaction turns used.
func TurnsTaken(r solver.CompletionResult) Score {
	return Score{
		Name:        "turns_taken",
		Value:       float64(r.TurnsTaken),
		Explanation: fmt.Sprintf("Took %d turns", r.TurnsTaken),
	}
}

// MovesUsed scores the number of successfully applied moves.
func MovesUsed(r solver.CompletionResult) Score {
	return Score{
		Name:  "moves_used",
		Value: float64(r.SuccessfulMoves),
		Explanation: fmt.Sprintf("Attempted %d moves, of which %d were successful",
			r.TotalMovesAttempted, r.SuccessfulMoves),
	}
}

// InvalidTurns scores the number of turns whose batch was rejected.
func InvalidTurns(r solver.CompletionResult) Score {
	return Score{
		Name:        "invalid_turns",
		Value:       float64(r.InvalidTurns),
		Explanation: fmt.Sprintf("Submitted %d invalid turns", r.InvalidTurns),
	}
}

// All computes every per-result score.
func All(r solver.CompletionResult) []Score {
	return []Score{
		PuzzleSolved(r),
		TurnsTaken(r),
		MovesUsed(r),
		InvalidTurns(r),
	}
}

// Summary aggregates results across a run.
type Summary struct {
	Sessions     int
	SolveRate    float64
	AvgTurns     float64
	AvgInvalid   float64
	TotalMoves   int
	SuccessMoves int
}

// Summarize computes aggregate metrics over many results.
func Summarize(results []solver.CompletionResult) Summary {
	if len(results) == 0 {
		return Summary{}
	}

	var solved, turns, invalid int
	summary := Summary{Sessions: len(results)}
	for _, r := range results {
		if r.Solved {
			solved++
		}
		turns += r.TurnsTaken
		invalid += r.InvalidTurns
		summary.TotalMoves += r.TotalMovesAttempted
		summary.SuccessMoves += r.SuccessfulMoves
	}
	summary.SolveRate = float64(solved) / float64(len(results))
	summary.AvgTurns = float64(turns) / float64(len(results))
	summary.AvgInvalid = float64(invalid) / float64(len(results))
	return summary
}
