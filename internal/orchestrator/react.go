package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/core"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/errkind"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/llm"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/logstore"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/tool"
)

// llmCallRetries and llmBackoff implement spec.md §4.8 step 2: retry a
// failing/empty LLM call up to twice with back-off before recording
// llm_unreachable and moving on.
const (
	llmCallRetries = 2
	llmBackoff     = 500 * time.Millisecond
)

// maxParseFailStreak terminates the query after this many consecutive
// decision-parse failures (spec.md §4.8 step 3).
const maxParseFailStreak = 3

// DecidePrep is the prepared input for one DecideNode.Exec call.
type DecidePrep struct {
	SystemPrompt string
	UserPrompt   string
	Iteration    int
}

// decisionOutcome is DecideNode's Exec result: either a parsed Decision, or
// an error kind recording why one could not be produced this iteration.
// Exec never returns a Go error — every failure mode here is reported as an
// error kind for Post to handle (deadline_exceeded terminates the query, the
// others are recoverable), so control never passes through core.Node's
// generic retry/ExecFallback path.
type decisionOutcome struct {
	Decision    Decision
	ErrKind     errkind.Kind
	ErrMessage  string
	Cause       error
	WallClockMs int64
}

// DecideNode builds prompts, calls the LLM, parses its reply, and decides
// whether the next step is a tool call, a finalized answer, or (after a
// recoverable error, recorded as this iteration's Step) another iteration.
type DecideNode struct {
	provider llm.Provider
}

func NewDecideNode(provider llm.Provider) *DecideNode {
	return &DecideNode{provider: provider}
}

func (n *DecideNode) Prep(state *State) []DecidePrep {
	if len(state.Trace) >= state.MaxIterations {
		return nil // signals Post to terminate with iteration_exhausted
	}
	return []DecidePrep{{
		SystemPrompt: state.SystemPrompt,
		UserPrompt:   BuildUserPrompt(state),
		Iteration:    len(state.Trace) + 1,
	}}
}

func (n *DecideNode) Exec(ctx context.Context, prep DecidePrep) (decisionOutcome, error) {
	start := time.Now()

	callTimeout := 45 * time.Second
	if secs, err := strconv.Atoi(os.Getenv("AGENT_LLM_TIMEOUT_SECONDS")); err == nil && secs > 0 {
		callTimeout = time.Duration(secs) * time.Second
	}

	var raw string
	var lastErr error
	for attempt := 0; attempt <= llmCallRetries; attempt++ {
		if ctx.Err() != nil {
			return decisionOutcome{ErrKind: errkind.DeadlineExceeded, ErrMessage: ctx.Err().Error()}, nil
		}
		callCtx, cancel := context.WithTimeout(ctx, callTimeout)
		raw, lastErr = n.provider.Generate(callCtx, prep.SystemPrompt, prep.UserPrompt)
		cancel()
		if lastErr == nil && strings.TrimSpace(raw) != "" {
			break
		}
		if attempt < llmCallRetries {
			log.Printf("[Orchestrator] LLM call failed (attempt %d/%d): %v", attempt+1, llmCallRetries+1, lastErr)
			select {
			case <-time.After(llmBackoff):
			case <-ctx.Done():
				return decisionOutcome{ErrKind: errkind.DeadlineExceeded, ErrMessage: ctx.Err().Error()}, nil
			}
		}
	}
	if lastErr != nil || strings.TrimSpace(raw) == "" {
		return decisionOutcome{
			ErrKind:     errkind.LLMUnreachable,
			ErrMessage:  "LLM call failed after retries",
			Cause:       lastErr,
			WallClockMs: time.Since(start).Milliseconds(),
		}, nil
	}

	decision, err := ParseDecision(raw)
	if err != nil {
		return decisionOutcome{
			ErrKind:     errkind.LLMParseFailed,
			ErrMessage:  "could not parse reasoner output",
			Cause:       err,
			WallClockMs: time.Since(start).Milliseconds(),
		}, nil
	}

	return decisionOutcome{Decision: decision, WallClockMs: time.Since(start).Milliseconds()}, nil
}

func (n *DecideNode) ExecFallback(err error) decisionOutcome {
	return decisionOutcome{ErrKind: errkind.LLMUnreachable, ErrMessage: "LLM call failed after exhausting node-level retries", Cause: err}
}

func (n *DecideNode) Post(state *State, prep []DecidePrep, results ...decisionOutcome) core.Action {
	if len(results) == 0 {
		return n.terminate(state, errkind.IterationExhausted, "iteration_exhausted: max_iterations reached without done=true")
	}

	outcome := results[0]
	iteration := prep[0].Iteration
	state.Iteration = iteration

	if outcome.ErrKind == errkind.DeadlineExceeded {
		return n.terminate(state, errkind.DeadlineExceeded, outcome.ErrMessage)
	}

	if outcome.ErrKind == errkind.LLMParseFailed {
		state.ParseFailStreak++
		if state.ParseFailStreak >= maxParseFailStreak {
			errk := errkind.New(errkind.LLMParseFailed, "could not parse reasoner output after 3 consecutive attempts")
			state.Trace = append(state.Trace, Step{Iteration: iteration, Error: errk.Error(), WallClockMs: outcome.WallClockMs})
			return n.terminate(state, errk.Kind, errk.Message)
		}
		errk := errkind.Wrap(outcome.ErrKind, outcome.ErrMessage, outcome.Cause)
		return n.recordFailure(state, iteration, outcome.WallClockMs, nil, errk)
	}

	if outcome.ErrKind != "" {
		errk := errkind.Wrap(outcome.ErrKind, outcome.ErrMessage, outcome.Cause)
		return n.recordFailure(state, iteration, outcome.WallClockMs, nil, errk)
	}

	state.ParseFailStreak = 0
	decision := outcome.Decision

	if decision.Done {
		if decision.Answer == "" {
			errk := errkind.New(errkind.InvalidParameter, "done=true requires a non-empty answer")
			return n.recordFailure(state, iteration, outcome.WallClockMs, &decision, errk)
		}
		state.Answer = decision.Answer
		state.Confidence = decision.Confidence
		state.Done = true
		state.Trace = append(state.Trace, Step{Iteration: iteration, Decision: decision, WallClockMs: outcome.WallClockMs})
		return core.ActionAnswer
	}

	if decision.Tool == "" {
		errk := errkind.New(errkind.InvalidParameter, "done=false requires a tool name")
		return n.recordFailure(state, iteration, outcome.WallClockMs, &decision, errk)
	}

	if _, ok := state.Registry.Get(decision.Tool); !ok {
		errk := errkind.New(errkind.UnknownTool, fmt.Sprintf("%q is not a registered tool", decision.Tool))
		return n.recordFailure(state, iteration, outcome.WallClockMs, &decision, errk)
	}

	state.LastDecision = &decision
	return core.ActionTool
}

// recordFailure appends this iteration's Step and uses the error kind's
// Recoverable() classification to decide whether the loop gets another
// attempt (spec.md §7's recoverability table) or terminates the query here.
func (n *DecideNode) recordFailure(state *State, iteration int, wallClockMs int64, decision *Decision, errk *errkind.Error) core.Action {
	step := Step{Iteration: iteration, Error: errk.Error(), WallClockMs: wallClockMs}
	if decision != nil {
		step.Decision = *decision
	}
	state.Trace = append(state.Trace, step)

	if !errk.Kind.Recoverable() {
		return n.terminate(state, errk.Kind, errk.Message)
	}
	if len(state.Trace) >= state.MaxIterations {
		return n.terminate(state, errkind.IterationExhausted, "iteration_exhausted: max_iterations reached without done=true")
	}
	return core.ActionDefault
}

// terminate marks state as done=false with a terminal error, for the Flow
// to end on (routed through AnswerNode). If no answer was set earlier, the
// termination message becomes the answer; no answer is derived from the
// observations already in the trace.
func (n *DecideNode) terminate(state *State, kind errkind.Kind, message string) core.Action {
	state.Done = false
	state.ErrorKind = kind
	if state.Answer == "" {
		state.Answer = message
	}
	return core.ActionAnswer
}

// ── ToolNode ──

// ToolPrep is the prepared, validated input for one tool execution, or a
// pre-computed failure (missing parameter, skipped due to repeated
// failure) that Exec surfaces without calling the tool at all.
type ToolPrep struct {
	ToolName    string
	Params      tool.Params
	Resolved    tool.Tool
	Fingerprint string
	PreError    string
}

type ToolNode struct{}

func NewToolNode() *ToolNode { return &ToolNode{} }

func (n *ToolNode) Prep(state *State) []ToolPrep {
	if state.LastDecision == nil {
		return nil
	}
	decision := *state.LastDecision

	t, ok := state.Registry.Get(decision.Tool)
	if !ok {
		return []ToolPrep{{ToolName: decision.Tool, PreError: fmt.Sprintf("unknown_tool: %q", decision.Tool)}}
	}

	params, preErr := buildParams(t, decision.Parameters, state)
	fingerprint := failureFingerprint(t, decision.Parameters)

	if preErr == "" && state.FailedAttempts[fingerprint] >= 2 {
		preErr = "skipped: this call has failed twice already — try a different approach"
	}

	return []ToolPrep{{
		ToolName:    decision.Tool,
		Params:      params,
		Resolved:    t,
		Fingerprint: fingerprint,
		PreError:    preErr,
	}}
}

// buildParams auto-injects every ROWSET parameter with FilteredRows
// (falling back to LoadedRows; search_logs always gets LoadedRows), then
// validates required-ness for every other parameter (spec.md §4.8 steps
// 5-6). A value the LLM supplies for a ROWSET parameter is ignored and
// replaced by the injected row set.
func buildParams(t tool.Tool, raw map[string]any, state *State) (tool.Params, string) {
	p := tool.NewParams()

	for _, spec := range t.Params() {
		val, present := raw[spec.Name]

		if spec.Kind == tool.KindRowSet {
			if t.Name() == "search_logs" {
				p.RowSets[spec.Name] = state.LoadedRows
			} else {
				p.RowSets[spec.Name] = state.CurrentRows()
			}
			continue
		}

		if !present {
			if spec.Required {
				return p, fmt.Sprintf("missing_parameter: %q is required by %s", spec.Name, t.Name())
			}
			continue
		}

		switch spec.Kind {
		case tool.KindString:
			if s, ok := val.(string); ok {
				p.Strings[spec.Name] = s
			}
		case tool.KindInteger:
			switch n := val.(type) {
			case float64:
				p.Integers[spec.Name] = int(n)
			case int:
				p.Integers[spec.Name] = n
			}
		case tool.KindList:
			if arr, ok := val.([]any); ok {
				list := make([]string, 0, len(arr))
				for _, v := range arr {
					if s, ok := v.(string); ok {
						list = append(list, s)
					}
				}
				p.Lists[spec.Name] = list
			}
		case tool.KindDict:
			if m, ok := val.(map[string]any); ok {
				p.Dicts[spec.Name] = m
			}
		}
	}

	return p, ""
}

// failureFingerprint is (tool name, canonical JSON of parameters minus
// rowset arguments) — the Glossary's definition, used to detect and break
// repeated-failure loops.
func failureFingerprint(t tool.Tool, raw map[string]any) string {
	filtered := make(map[string]any, len(raw))
	rowsetNames := make(map[string]bool)
	for _, spec := range t.Params() {
		if spec.Kind == tool.KindRowSet {
			rowsetNames[spec.Name] = true
		}
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		if !rowsetNames[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		filtered[k] = raw[k]
	}

	b, _ := json.Marshal(filtered) // keys already sorted above; Marshal preserves map key order alphabetically too
	return t.Name() + ":" + string(b)
}

func (n *ToolNode) Exec(ctx context.Context, prep ToolPrep) (tool.Result, error) {
	if prep.PreError != "" {
		return tool.Fail(prep.PreError), nil
	}
	return prep.Resolved.Execute(ctx, prep.Params)
}

func (n *ToolNode) ExecFallback(err error) tool.Result {
	return tool.Failf("tool_execution_failed: %v", err)
}

func (n *ToolNode) Post(state *State, prep []ToolPrep, results ...tool.Result) core.Action {
	if len(prep) == 0 || len(results) == 0 {
		return core.ActionDefault
	}
	p := prep[0]
	result := results[0]

	step := Step{Iteration: state.Iteration, Result: &result}
	if state.LastDecision != nil {
		step.Decision = *state.LastDecision
	}
	if !result.Success {
		step.Error = result.Error
	}
	state.Trace = append(state.Trace, step)
	state.LastDecision = nil

	// Only a failure produced by actually calling the tool counts toward the
	// two-strike fingerprint bookkeeping (spec.md §4.8 step 6): a
	// missing_parameter rejection from buildParams, or a call skipped
	// because it already struck out, never reached Execute and would
	// otherwise inflate or reuse the same strike for a mistake the LLM
	// never got to retry.
	if p.PreError == "" && !result.Success && p.Fingerprint != "" {
		state.FailedAttempts[p.Fingerprint]++
	}

	if rs, ok := result.Data.(logstore.RowSet); ok {
		state.FilteredRows = rs
		state.HasFiltered = true
	}

	if p.ToolName == "finalize_answer" && result.Success {
		if answer, ok := result.Data.(string); ok {
			state.Answer = answer
			state.Done = true
			return core.ActionAnswer
		}
	}

	if len(state.Trace) >= state.MaxIterations {
		state.Done = false
		state.ErrorKind = errkind.IterationExhausted
		if state.Answer == "" {
			state.Answer = "iteration_exhausted: max_iterations reached without done=true"
		}
		return core.ActionAnswer
	}

	return core.ActionDefault
}

// ── AnswerNode ──

// AnswerNode is a pure terminal state: the Decision already carries the
// final answer text when done=true (or terminate() has already set a
// best-effort message), so there is nothing left to synthesize.
type AnswerNode struct{}

func NewAnswerNode() *AnswerNode { return &AnswerNode{} }

func (n *AnswerNode) Prep(state *State) []struct{} { return []struct{}{{}} }

func (n *AnswerNode) Exec(_ context.Context, _ struct{}) (struct{}, error) { return struct{}{}, nil }

func (n *AnswerNode) ExecFallback(error) struct{} { return struct{}{} }

func (n *AnswerNode) Post(state *State, _ []struct{}, _ ...struct{}) core.Action {
	return core.ActionEnd
}

// BuildFlow wires DecideNode ──┬── ActionTool → ToolNode ──→ DecideNode
//
//	└── ActionAnswer → AnswerNode (terminal)
//
// plus DecideNode's ActionDefault self-loop for recoverable errors
// (llm_unreachable, llm_parse_failed, unknown_tool, invalid parameter) that
// never reached ToolNode; each of those records its own Step and uses up
// one iteration.
func BuildFlow(provider llm.Provider) core.Workflow[State] {
	decide := core.NewNode[State, DecidePrep, decisionOutcome](NewDecideNode(provider), 0)
	toolNode := core.NewNode[State, ToolPrep, tool.Result](NewToolNode(), 0)
	answer := core.NewNode[State, struct{}, struct{}](NewAnswerNode(), 0)

	decide.AddSuccessor(decide, core.ActionDefault)
	decide.AddSuccessor(toolNode, core.ActionTool)
	decide.AddSuccessor(answer, core.ActionAnswer)
	toolNode.AddSuccessor(decide, core.ActionDefault)

	return core.NewFlow[State](decide)
}

// Analyze runs the full ReAct loop for one query against store, returning
// the final Result. deadline bounds the entire call (spec.md §5's overall
// query deadline); on expiry the loop stops with ErrorKind deadline_exceeded
// and the Result carries the trace recorded so far. No answer is derived
// from that trace's observations.
func Analyze(ctx context.Context, query string, loaded logstore.RowSet, reg *tool.Registry, systemPrompt string, provider llm.Provider, deadline time.Duration) Result {
	queryID := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	state := NewState(queryID, query, loaded, reg)
	state.SystemPrompt = systemPrompt

	flow := BuildFlow(provider)
	flow.Run(ctx, state)

	if ctx.Err() != nil && !state.Done {
		state.ErrorKind = errkind.DeadlineExceeded
	}

	result := Result{
		Success:      state.Done,
		QueryID:      state.QueryID,
		Answer:       state.Answer,
		Confidence:   state.Confidence,
		Iterations:   len(state.Trace),
		Trace:        state.Trace,
		LogsAnalyzed: state.CurrentRows().Len(),
		ErrorKind:    state.ErrorKind,
	}
	if !state.Done && state.ErrorKind != "" {
		result.Error = state.Answer
	}
	return result
}
