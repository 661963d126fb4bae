package llm

import (
	"context"
	"testing"
)

func TestScriptedProviderReplaysInOrder(t *testing.T) {
	provider := NewScriptedProvider("first", "second")
	ctx := context.Background()

	resp, err := provider.Chat(ctx, nil)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if resp.Content != "first" {
		t.Errorf("Content = %q, want %q", resp.Content, "first")
	}

	resp, err = provider.Chat(ctx, nil)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if resp.Content != "second" {
		t.Errorf("Content = %q, want %q", resp.Content, "second")
	}
	if provider.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", provider.Remaining())
	}
}

func TestScriptedProviderExhaustion(t *testing.T) {
	provider := NewScriptedProvider("only")
	ctx := context.Background()

	if _, err := provider.Chat(ctx, nil); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if _, err := provider.Chat(ctx, nil); err == nil {
		t.Fatal("Expected error past end of script")
	}
}

func TestClientChatReturnsContent(t *testing.T) {
	client := NewClient(NewScriptedProvider("[[1, 0, 2]]"))

	content, err := client.Chat(context.Background(), []ChatMessage{UserMessage("go")})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if content != "[[1, 0, 2]]" {
		t.Errorf("Content = %q", content)
	}
}

func TestMessageHelpers(t *testing.T) {
	cases := []struct {
		msg  ChatMessage
		role string
	}{
		{SystemMessage("a"), RoleSystem},
		{UserMessage("b"), RoleUser},
		{AssistantMessage("c"), RoleAssistant},
	}
	for _, tc := range cases {
		if tc.msg.Role != tc.role {
			t.Errorf("Role = %q, want %q", tc.msg.Role, tc.role)
		}
	}
}
