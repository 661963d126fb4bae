// Scripted provider for tests and dry runs.

package llm

import (
	"context"
	"fmt"
	"sync"
)

// ScriptedProvider is a deterministic Provider that replays a fixed sequence
// of completions. Used in tests and for exercising the harness without
// network access.
type ScriptedProvider struct {
	mu        sync.Mutex
	index     int
	responses []string
}

// NewScriptedProvider creates a provider that returns the given responses in
// order. Requests past the end of the script fail.
func NewScriptedProvider(responses ...string) *ScriptedProvider {
	cloned := make([]string, len(responses))
	copy(cloned, responses)
	return &ScriptedProvider{responses: cloned}
}

// Name returns the provider name.
func (p *ScriptedProvider) Name() string {
	return "scripted"
}

// Model returns the current model.
func (p *ScriptedProvider) Model() string {
	return "scripted"
}

// Chat returns the next scripted response.
func (p *ScriptedProvider) Chat(_ context.Context, _ []ChatMessage) (LLMResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.index >= len(p.responses) {
		return LLMResponse{}, fmt.Errorf("script exhausted at step %d", p.index+1)
	}
	content := p.responses[p.index]
	p.index++
	return LLMResponse{Content: content}, nil
}

// Remaining returns how many scripted responses are left.
func (p *ScriptedProvider) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.responses) - p.index
}

// Verify ScriptedProvider implements Provider
var _ Provider = (*ScriptedProvider)(nil)
