package orchestrator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// fencedBlock matches a fenced code block, optionally tagged "json".
var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

// trailingComma matches a comma immediately before a closing `}` or `]`,
// tolerating whitespace between them.
var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// ParseDecision recovers a Decision from arbitrary LLM output. It tries, in
// order: (1) a direct JSON parse; (2) the content of the first fenced code
// block; (3) the longest substring from the first '{' to the last '}'; (4)
// the same substring with trailing commas stripped. The first stage that
// both parses and satisfies the Decision shape wins.
func ParseDecision(raw string) (Decision, error) {
	candidates := []string{raw}

	if m := fencedBlock.FindStringSubmatch(raw); m != nil {
		candidates = append(candidates, m[1])
	}

	if braced, ok := braceBalancedSlice(raw); ok {
		candidates = append(candidates, braced)
		candidates = append(candidates, trailingComma.ReplaceAllString(braced, "$1"))
	}

	var lastErr error
	for _, c := range candidates {
		d, err := decodeDecision(c)
		if err == nil {
			return d, nil
		}
		lastErr = err
	}

	return Decision{}, fmt.Errorf("orchestrator: could not parse a Decision object from LLM output: %w", lastErr)
}

// braceBalancedSlice returns the substring from the first '{' to the last
// '}' that contains it, which is a necessary (not sufficient) condition for
// a valid JSON object; the caller still attempts to decode it.
func braceBalancedSlice(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// decodeDecision decodes s as JSON and defaults absent optional fields.
func decodeDecision(s string) (Decision, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Decision{}, fmt.Errorf("empty candidate")
	}

	var raw struct {
		Reasoning  *string        `json:"reasoning"`
		Tool       *string        `json:"tool"`
		Parameters map[string]any `json:"parameters"`
		Answer     *string        `json:"answer"`
		Confidence *float64       `json:"confidence"`
		Done       *bool          `json:"done"`
	}
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return Decision{}, err
	}
	if raw.Done == nil {
		return Decision{}, fmt.Errorf("decision missing required field %q", "done")
	}

	d := Decision{Parameters: raw.Parameters, Done: *raw.Done}
	if raw.Reasoning != nil {
		d.Reasoning = *raw.Reasoning
	}
	if raw.Tool != nil {
		d.Tool = *raw.Tool
	}
	if raw.Answer != nil {
		d.Answer = *raw.Answer
	}
	if raw.Confidence != nil {
		d.Confidence = *raw.Confidence
	}
	if d.Parameters == nil {
		d.Parameters = make(map[string]any)
	}
	return d, nil
}
