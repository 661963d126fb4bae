// Package puzzle defines the puzzle abstraction driven by the multi-turn
// solver, plus the Tower of Hanoi implementation.
//
// Information Hiding:
// - Peg layout and state history encapsulated behind the Puzzle interface
// - Move legality rules hidden inside implementations
// - Parsing of free-form model output hidden behind ParseMoves
package puzzle

import "fmt"

// Move relocates one disk between pegs.
type Move struct {
	Disk int
	From int
	To   int
}

// String renders the move the way models submit it: "[1, 0, 2]".
// This form is echoed back in invalid-move feedback.
func (m Move) String() string {
	return fmt.Sprintf("[%d, %d, %d]", m.Disk, m.From, m.To)
}

// InvalidMoveError identifies the first failing move in a submitted batch.
// It is returned as a value rather than an error: illegal moves are expected
// game events that drive normal turn bookkeeping, not faults.
type InvalidMoveError struct {
	MoveIndex int    `json:"move_index"`
	Move      string `json:"move"`
	Reason    string `json:"reason"`
}

func (e *InvalidMoveError) String() string {
	return fmt.Sprintf("Invalid move %q at index %d: %s", e.Move, e.MoveIndex, e.Reason)
}

// Puzzle is the capability set the solver needs from any puzzle variant.
// Tower of Hanoi is the only implementation today; the solver never depends
// on anything beyond this interface.
type Puzzle interface {
	// Size returns the puzzle difficulty (number of disks for Hanoi).
	Size() int

	// State returns the current state as deterministic, human-readable text.
	// This exact rendering is what models read, so it is a wire format.
	State() string

	// ApplyMoves applies a batch atomically. On success it returns the
	// rendered post-batch state; on the first illegal move it restores the
	// pre-batch state and returns an InvalidMoveError. An empty batch is a
	// no-op returning the current state.
	ApplyMoves(moves []Move) (string, *InvalidMoveError)

	// IsSolved reports whether the puzzle reached its goal state.
	IsSolved() bool

	// ParseMoves extracts a move list from free-form model output.
	ParseMoves(output string) ([]Move, error)

	// MoveFormat describes the expected move wire format for prompts.
	MoveFormat() string

	// OptimalMoveCount returns the minimum number of moves to solve.
	OptimalMoveCount() int

	// StateHistory returns a copy of all rendered states seen so far,
	// one entry per applied move plus the initial state.
	StateHistory() []string
}
