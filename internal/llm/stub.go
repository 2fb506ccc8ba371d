package llm

import (
	"context"
	"sync/atomic"
)

// StubProvider is a deterministic, hand-written test double implementing
// Provider — no mocking framework, matching the pack's own stub-provider
// testing style. Responses is consumed in order; once exhausted, Generate
// returns the last response repeatedly so a test-authored adversarial LLM
// (e.g. one that always proposes the same failing tool call) can run for as
// many iterations as the orchestrator allows.
type StubProvider struct {
	NameValue string
	Responses []string
	Err       error

	calls atomic.Int32
}

// Generate returns the next canned response, or Err if set.
func (p *StubProvider) Generate(_ context.Context, _, _ string) (string, error) {
	n := int(p.calls.Add(1)) - 1
	if p.Err != nil {
		return "", p.Err
	}
	if len(p.Responses) == 0 {
		return "", nil
	}
	if n >= len(p.Responses) {
		return p.Responses[len(p.Responses)-1], nil
	}
	return p.Responses[n], nil
}

// Name returns the stub's configured name, defaulting to "stub".
func (p *StubProvider) Name() string {
	if p.NameValue == "" {
		return "stub"
	}
	return p.NameValue
}

// CallCount returns how many times Generate has been invoked.
func (p *StubProvider) CallCount() int { return int(p.calls.Load()) }
