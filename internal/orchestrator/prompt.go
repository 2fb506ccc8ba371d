package orchestrator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/entitycatalog"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/tool"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/util"
)

// maxObservationChars caps how much of a single step's tool output is
// replayed into the next prompt — prompt-context cost is the dominant
// scaling concern (spec design note), so older steps lose detail before
// they lose relevance.
const maxObservationChars = 1200

// systemPromptRules are the hardcoded contract rules; unlike the tool
// catalog and alias table these never vary per query.
const systemPromptRules = `Rules:
- Output must be a single JSON object with exactly these fields: reasoning, tool, parameters, answer, confidence, done. No prose, no markdown code fences, nothing before or after the object.
- Use double-quoted JSON strings, no trailing commas. "tool" and "answer" may be JSON null.
- When done is true, tool must be null and answer must be a non-empty, self-contained answer to the question.
- When done is false, tool must name one of the registered tools above, and parameters must supply its non-rowset required arguments.
- If the needed information is already present in the trace below, set done=true and copy the concrete values into answer rather than calling another tool.
- If a tool has already failed twice with the same parameters, do not call it a third time with those parameters — try a different tool or different parameters.`

// BuildSystemPrompt assembles the static-per-query system prompt: role
// statement, the entity-type alias table, the tool catalog, and the ReAct
// contract rules.
func BuildSystemPrompt(reg *tool.Registry, cat *entitycatalog.Catalog) string {
	var sb strings.Builder

	sb.WriteString("You are a log-analysis assistant. You answer questions about structured log data by reasoning step by step and calling tools to search, filter, and extract entities from the dataset, then finalizing a concrete answer.\n\n")

	sb.WriteString("Entity type aliases:\n")
	if cat != nil {
		for _, line := range cat.AliasLines() {
			sb.WriteString("- ")
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	sb.WriteString("\n")

	sb.WriteString("Available tools:\n")
	sb.WriteString(reg.DescribeAll())
	sb.WriteString("\n")

	sb.WriteString("You work in a Reason → Act → Observe → Decide → Finalize loop: each turn you reason about the question and the trace so far, then either call one tool (Act) or finalize an answer (Finalize). The tool's result (Observe) is appended to the trace before your next turn (Decide).\n\n")

	sb.WriteString(systemPromptRules)

	return sb.String()
}

// BuildUserPrompt assembles the per-iteration user prompt: the original
// query, the rendered trace, and (from iteration ≥ 2) a reminder to
// finalize once the trace already answers the question.
func BuildUserPrompt(state *State) string {
	var sb strings.Builder

	sb.WriteString("Question: ")
	sb.WriteString(state.Query)
	sb.WriteString("\n\n")

	if len(state.Trace) > 0 {
		sb.WriteString("Trace so far:\n")
		sb.WriteString(renderTrace(state.Trace))
		sb.WriteString("\n")
	}

	if len(state.Trace) >= 1 {
		sb.WriteString("If the observations already contain the answer, finalize now.\n")
	}

	remaining := state.MaxIterations - len(state.Trace)
	if remaining <= 2 && len(state.Trace) > 0 {
		sb.WriteString(fmt.Sprintf("Only %d iteration(s) remain — finalize with the best available answer if you cannot gather more.\n", remaining))
	}

	sb.WriteString("\nRespond with the JSON Decision object described in the system prompt.")

	return sb.String()
}

// renderTrace formats each Step as "iteration i → reasoning → tool(params) →
// observation message → [data dict, if present]".
func renderTrace(steps []Step) string {
	var sb strings.Builder
	for _, s := range steps {
		sb.WriteString(fmt.Sprintf("iteration %d → %s\n", s.Iteration, util.TruncateRunes(s.Decision.Reasoning, 300)))

		if s.Decision.Tool != "" {
			sb.WriteString(fmt.Sprintf("  tool: %s(%s)\n", s.Decision.Tool, renderParameters(s.Decision.Parameters)))
		}

		if s.Error != "" {
			sb.WriteString(fmt.Sprintf("  error: %s\n", s.Error))
		}

		if s.Result != nil {
			sb.WriteString(fmt.Sprintf("  observation: %s\n", util.TruncateRunes(s.Result.Message, maxObservationChars)))
			if dict := renderDataDict(s.Result.Data); dict != "" {
				sb.WriteString(fmt.Sprintf("  data: %s\n", util.TruncateRunes(dict, maxObservationChars)))
			}
		}
	}
	return sb.String()
}

// renderParameters renders a tool call's parameters minus any row-set
// argument — a row set has no useful textual form in the trace and its
// presence is implied by the tool name.
func renderParameters(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}
	filtered := make(map[string]any, len(params))
	for k, v := range params {
		if k == "rows" {
			continue
		}
		filtered[k] = v
	}
	b, err := json.Marshal(filtered)
	if err != nil {
		return ""
	}
	return string(b)
}

// renderDataDict renders a tool result's structured data when it is a
// counts/values dict worth showing the LLM verbatim (row sets are already
// summarized in Message and would be too large to replay).
func renderDataDict(data any) string {
	switch data.(type) {
	case map[string][]string, map[string]int:
		b, err := json.Marshal(data)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

