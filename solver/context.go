// Session bookkeeping for one puzzle-solving session.

package solver

import "github.com/richinex/hanoibench/llm"

// Context tracks the state and progress of one puzzle-solving session across
// turns. The solver owns it exclusively: it is created zeroed at session
// start, mutated once per turn, consumed to build the final CompletionResult,
// and then discarded.
type Context struct {
	// TurnCount is the number of completed request/response turns.
	TurnCount int

	// TotalMoves counts every attempted move, including the moves of a
	// failed batch up to and including the failing one.
	TotalMoves int

	// InvalidTurns counts turns whose batch was rejected.
	InvalidTurns int

	// SuccessfulMoves counts moves actually applied to the puzzle.
	SuccessfulMoves int

	// RecentInvalidAttempts holds the move text of consecutive failed
	// turns. Cleared whenever a turn fully succeeds.
	RecentInvalidAttempts []string

	// Transcript is the authoritative, unwindowed conversation history.
	// The sliding window is always derived fresh from it.
	Transcript []llm.ChatMessage
}
