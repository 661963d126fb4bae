// Completion result record and its wire format.

package solver

import (
	"encoding/json"
	"fmt"
)

// Termination reasons, in the priority order they are checked.
const (
	ReasonSolved       = "solved"
	ReasonTurnLimit    = "turn_limit"
	ReasonMoveLimit    = "move_limit"
	ReasonStuckInvalid = "stuck_invalid"
	ReasonStuckLoop    = "stuck_loop"
	ReasonGaveUp       = "gave_up"
	ReasonParseError   = "parse_error"
	ReasonError        = "error"
)

// CompletionResult is the immutable record produced exactly once at session
// end. It round-trips through a flat JSON encoding.
type CompletionResult struct {
	Solved              bool   `json:"solved"`
	TerminationReason   string `json:"termination_reason"`
	TurnsTaken          int    `json:"turns_taken"`
	TotalMovesAttempted int    `json:"total_moves_attempted"`
	InvalidTurns        int    `json:"invalid_turns"`
	SuccessfulMoves     int    `json:"successful_moves"`
	PuzzleSize          int    `json:"puzzle_size"`
}

// requiredResultFields are the JSON keys a decodable result must carry.
var requiredResultFields = []string{
	"solved",
	"termination_reason",
	"turns_taken",
	"total_moves_attempted",
	"invalid_turns",
	"successful_moves",
	"puzzle_size",
}

// JSON encodes the result as a flat JSON object.
func (r CompletionResult) JSON() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encoding completion result: %w", err)
	}
	return string(data), nil
}

// DecodeResult parses a result record. Unknown extra fields are ignored;
// a missing required field fails the decode.
func DecodeResult(data []byte) (CompletionResult, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return CompletionResult{}, fmt.Errorf("decoding completion result: %w", err)
	}
	for _, field := range requiredResultFields {
		if _, ok := raw[field]; !ok {
			return CompletionResult{}, fmt.Errorf("decoding completion result: missing required field %q", field)
		}
	}

	var result CompletionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return CompletionResult{}, fmt.Errorf("decoding completion result: %w", err)
	}
	return result, nil
}
