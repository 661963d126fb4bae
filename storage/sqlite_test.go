package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/richinex/hanoibench/llm"
	"github.com/richinex/hanoibench/solver"
)

func newTestStore(t *testing.T) *RunStore {
	t.Helper()
	store, err := NewInMemory()
	if err != nil {
		t.Fatalf("Failed to create in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "runs.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if err := store.CreateSession(context.Background(), "s1", "tower_of_hanoi", 3); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
}

func TestSaveAndLoadTranscript(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateSession(ctx, "s1", "tower_of_hanoi", 3); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	messages := []llm.ChatMessage{
		llm.SystemMessage("You solve puzzles."),
		llm.UserMessage("This is your first turn."),
		llm.AssistantMessage("[[1, 0, 2]]"),
	}
	if err := store.SaveTranscript(ctx, "s1", messages); err != nil {
		t.Fatalf("SaveTranscript failed: %v", err)
	}

	loaded, err := store.LoadTranscript(ctx, "s1")
	if err != nil {
		t.Fatalf("LoadTranscript failed: %v", err)
	}
	if len(loaded) != len(messages) {
		t.Fatalf("Expected %d messages, got %d", len(messages), len(loaded))
	}
	for i, msg := range loaded {
		if msg != messages[i] {
			t.Errorf("Message %d = %+v, want %+v", i, msg, messages[i])
		}
	}
}

func TestSaveTranscriptReplacesPrevious(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateSession(ctx, "s1", "tower_of_hanoi", 3); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	first := []llm.ChatMessage{llm.UserMessage("old")}
	if err := store.SaveTranscript(ctx, "s1", first); err != nil {
		t.Fatalf("SaveTranscript failed: %v", err)
	}
	second := []llm.ChatMessage{llm.UserMessage("new"), llm.AssistantMessage("[]")}
	if err := store.SaveTranscript(ctx, "s1", second); err != nil {
		t.Fatalf("SaveTranscript failed: %v", err)
	}

	loaded, err := store.LoadTranscript(ctx, "s1")
	if err != nil {
		t.Fatalf("LoadTranscript failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 messages after replace, got %d", len(loaded))
	}
	if loaded[0].Content != "new" {
		t.Errorf("First message = %q, want %q", loaded[0].Content, "new")
	}
}

func TestLoadTranscriptUnknownSession(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.LoadTranscript(context.Background(), "missing")
	if err != nil {
		t.Fatalf("LoadTranscript failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("Expected empty transcript, got %d messages", len(loaded))
	}
}

func TestSaveAndListResults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateSession(ctx, "s1", "tower_of_hanoi", 3); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	result := solver.CompletionResult{
		Solved:              true,
		TerminationReason:   solver.ReasonSolved,
		TurnsTaken:          4,
		TotalMovesAttempted: 9,
		InvalidTurns:        1,
		SuccessfulMoves:     7,
		PuzzleSize:          3,
	}
	if err := store.SaveResult(ctx, "s1", result); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	stored, err := store.ListResults(ctx)
	if err != nil {
		t.Fatalf("ListResults failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(stored))
	}
	if stored[0].SessionID != "s1" {
		t.Errorf("SessionID = %q", stored[0].SessionID)
	}
	if stored[0].PuzzleType != "tower_of_hanoi" {
		t.Errorf("PuzzleType = %q", stored[0].PuzzleType)
	}
	if stored[0].Result != result {
		t.Errorf("Result = %+v, want %+v", stored[0].Result, result)
	}
}

func TestSaveResultReplacesPrevious(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateSession(ctx, "s1", "tower_of_hanoi", 3); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	first := solver.CompletionResult{TerminationReason: solver.ReasonError, PuzzleSize: 3}
	if err := store.SaveResult(ctx, "s1", first); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
	second := solver.CompletionResult{
		Solved: true, TerminationReason: solver.ReasonSolved,
		TurnsTaken: 2, TotalMovesAttempted: 7, SuccessfulMoves: 7, PuzzleSize: 3,
	}
	if err := store.SaveResult(ctx, "s1", second); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	stored, err := store.ListResults(ctx)
	if err != nil {
		t.Fatalf("ListResults failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("Expected 1 result after replace, got %d", len(stored))
	}
	if stored[0].Result.TerminationReason != solver.ReasonSolved {
		t.Errorf("TerminationReason = %q", stored[0].Result.TerminationReason)
	}
}
