// Package llm defines the single-endpoint LLM client contract the
// orchestrator drives: given a system and a user prompt, produce raw text.
// JSON extraction and retry live in the orchestrator, not here — the wire
// client has no knowledge of Decisions.
package llm

import "context"

// Provider is the interface every LLM backend implements. Any
// OpenAI-compatible endpoint (litellm, Ollama, Azure, vLLM, etc.) can be
// used by implementing this one method plus a name.
type Provider interface {
	// Generate sends a single system+user prompt pair and returns the raw
	// assistant reply text. Generate itself does not retry; the caller
	// (internal/orchestrator's DecideNode) owns the retry/backoff policy.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Name returns the provider's identifier, used in log lines.
	Name() string
}
