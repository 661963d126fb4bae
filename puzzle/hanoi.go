// Tower of Hanoi implementation.
//
// Information Hiding:
// - Peg representation (three ordered stacks, largest disk first)
// - Snapshot/restore mechanics for atomic batch application
// - Regex-plus-decode parsing of model output
package puzzle

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// movePattern matches a JSON-shaped list of 3-integer triples anywhere in
// free-form text. Parsing takes the last match so models may narrate their
// reasoning before emitting the answer.
var movePattern = regexp.MustCompile(`\[\s*\[\s*\d+\s*,\s*\d+\s*,\s*\d+\s*\](?:\s*,\s*\[\s*\d+\s*,\s*\d+\s*,\s*\d+\s*\])*\s*\]`)

// giveUpToken is the distinguished output meaning "no moves, I give up".
const giveUpToken = "[]"

// Hanoi is the classic three-peg disk puzzle. Disk ids run 1..N with larger
// numbers denoting larger disks. Within a peg disks are ordered largest
// first, so a peg's top disk is its last element.
type Hanoi struct {
	nDisks  int
	pegs    [3][]int
	history []string
}

// NewHanoi constructs the canonical start state: all disks on peg 0, largest
// at the bottom. The state history is seeded with that initial rendering.
func NewHanoi(nDisks int) (*Hanoi, error) {
	if nDisks < 0 {
		return nil, fmt.Errorf("number of disks must be non-negative, got %d", nDisks)
	}

	h := &Hanoi{nDisks: nDisks}
	for d := nDisks; d >= 1; d-- {
		h.pegs[0] = append(h.pegs[0], d)
	}
	h.history = []string{h.State()}
	return h, nil
}

// Size returns the number of disks.
func (h *Hanoi) Size() int {
	return h.nDisks
}

// State renders the pegs one line each, e.g.
//
//	Peg 0: 3 (bottom), 2, 1 (top)
//	Peg 1: (empty)
//	Peg 2: 1
//
// Prompts and downstream diagnostics depend on this exact format.
func (h *Hanoi) State() string {
	lines := make([]string, 0, 3)
	for i, peg := range h.pegs {
		switch len(peg) {
		case 0:
			lines = append(lines, fmt.Sprintf("Peg %d: (empty)", i))
		case 1:
			lines = append(lines, fmt.Sprintf("Peg %d: %d", i, peg[0]))
		default:
			parts := make([]string, 0, len(peg))
			parts = append(parts, fmt.Sprintf("%d (bottom)", peg[0]))
			for _, d := range peg[1 : len(peg)-1] {
				parts = append(parts, fmt.Sprintf("%d", d))
			}
			parts = append(parts, fmt.Sprintf("%d (top)", peg[len(peg)-1]))
			lines = append(lines, fmt.Sprintf("Peg %d: %s", i, strings.Join(parts, ", ")))
		}
	}
	return strings.Join(lines, "\n")
}

// ApplyMoves applies a batch of moves atomically. Pegs and state history are
// snapshotted before the first move; on any illegal move both are restored
// and none of the batch is retained.
func (h *Hanoi) ApplyMoves(moves []Move) (string, *InvalidMoveError) {
	if len(moves) == 0 {
		return h.State(), nil
	}

	pegsSnapshot := h.snapshotPegs()
	historySnapshot := append([]string(nil), h.history...)

	for i, m := range moves {
		ok, reason := h.CanMove(m.Disk, m.From, m.To)
		if !ok {
			h.pegs = pegsSnapshot
			h.history = historySnapshot
			return "", &InvalidMoveError{
				MoveIndex: i,
				Move:      m.String(),
				Reason:    "Failed to execute move: " + reason,
			}
		}
		h.executeMove(m.From, m.To)
		h.history = append(h.history, h.State())
	}
	return h.State(), nil
}

// CanMove validates a single move without executing it. Checks run in order
// and the first failure wins; later checks are skipped.
func (h *Hanoi) CanMove(disk, from, to int) (bool, string) {
	if reason := h.validateParameters(disk, from, to); reason != "" {
		return false, reason
	}
	if reason := h.validatePosition(disk, from); reason != "" {
		return false, reason
	}
	if reason := h.validateDestination(disk, to); reason != "" {
		return false, reason
	}
	return true, ""
}

// IsSolved reports whether all disks sit on peg 2 in descending order.
func (h *Hanoi) IsSolved() bool {
	if len(h.pegs[0]) != 0 || len(h.pegs[1]) != 0 || len(h.pegs[2]) != h.nDisks {
		return false
	}
	for i, d := range h.pegs[2] {
		if d != h.nDisks-i {
			return false
		}
	}
	return true
}

// ParseMoves extracts a move list from free-form model output. The literal
// text "[]" is the give-up signal and yields an empty list without error.
// Otherwise the last bracketed list of integer triples found anywhere in the
// text is decoded; input with no well-formed match fails.
func (h *Hanoi) ParseMoves(output string) ([]Move, error) {
	if output == giveUpToken {
		return []Move{}, nil
	}

	matches := movePattern.FindAllString(output, -1)
	if len(matches) > 0 {
		var decoded [][]int
		if err := json.Unmarshal([]byte(matches[len(matches)-1]), &decoded); err == nil && len(decoded) > 0 {
			moves := make([]Move, 0, len(decoded))
			for _, triple := range decoded {
				if len(triple) != 3 {
					moves = nil
					break
				}
				moves = append(moves, Move{Disk: triple[0], From: triple[1], To: triple[2]})
			}
			if moves != nil {
				return moves, nil
			}
		}
	}

	return nil, fmt.Errorf("failed to parse moves from model output: %s", output)
}

// MoveFormat describes the expected move wire format.
func (h *Hanoi) MoveFormat() string {
	return "[[disk_id, from_peg, to_peg], ...]"
}

// OptimalMoveCount returns 2^N - 1, the classic three-peg solution length.
func (h *Hanoi) OptimalMoveCount() int {
	return (1 << h.nDisks) - 1
}

// StateHistory returns a copy of the rendered states seen so far. Callers
// cannot corrupt the internal history through the returned slice.
func (h *Hanoi) StateHistory() []string {
	return append([]string(nil), h.history...)
}

func (h *Hanoi) snapshotPegs() [3][]int {
	var snap [3][]int
	for i, peg := range h.pegs {
		snap[i] = append([]int(nil), peg...)
	}
	return snap
}

// executeMove moves the top disk between pegs. Legality is the caller's
// responsibility.
func (h *Hanoi) executeMove(from, to int) {
	top := h.pegs[from][len(h.pegs[from])-1]
	h.pegs[from] = h.pegs[from][:len(h.pegs[from])-1]
	h.pegs[to] = append(h.pegs[to], top)
}

func (h *Hanoi) topDisk(peg int) (int, bool) {
	if len(h.pegs[peg]) == 0 {
		return 0, false
	}
	return h.pegs[peg][len(h.pegs[peg])-1], true
}

func (h *Hanoi) validateParameters(disk, from, to int) string {
	if from < 0 || from > 2 {
		return fmt.Sprintf("Invalid peg index: %d. Must be 0, 1, or 2.", from)
	}
	if to < 0 || to > 2 {
		return fmt.Sprintf("Invalid peg index: %d. Must be 0, 1, or 2.", to)
	}
	if disk < 1 || disk > h.nDisks {
		return fmt.Sprintf("Invalid disk ID: %d. Must be between 1 and %d.", disk, h.nDisks)
	}
	if from == to {
		return fmt.Sprintf("Cannot move from peg %d to same peg", from)
	}
	return ""
}

// validatePosition checks the disk is accessible on the source peg. When the
// disk sits on a different peg, the error names its real location.
func (h *Hanoi) validatePosition(disk, from int) string {
	if !containsDisk(h.pegs[from], disk) {
		return fmt.Sprintf("Disk %d is not on peg %d. Current location: %d", disk, from, h.findDisk(disk))
	}

	top, ok := h.topDisk(from)
	if !ok {
		return fmt.Sprintf("Peg %d is empty, cannot move disk %d", from, disk)
	}
	if top != disk {
		return fmt.Sprintf("Cannot move disk %d: disk %d is on top of peg %d", disk, top, from)
	}
	return ""
}

func (h *Hanoi) validateDestination(disk, to int) string {
	top, ok := h.topDisk(to)
	if ok && disk > top {
		return fmt.Sprintf("Cannot place disk %d on disk %d: larger disk cannot be placed on smaller disk", disk, top)
	}
	return ""
}

func (h *Hanoi) findDisk(disk int) int {
	for i, peg := range h.pegs {
		if containsDisk(peg, disk) {
			return i
		}
	}
	return -1
}

func containsDisk(peg []int, disk int) bool {
	for _, d := range peg {
		if d == disk {
			return true
		}
	}
	return false
}
