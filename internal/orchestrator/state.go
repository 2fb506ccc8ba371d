// Package orchestrator drives the ReAct loop: build prompt, call the LLM,
// parse its decision, validate it, auto-inject row sets, execute the chosen
// tool, and record the outcome — until the LLM finalizes an answer or a
// safety limit fires.
package orchestrator

import (
	"log"
	"os"
	"strconv"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/errkind"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/logstore"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/tool"
)

// MaxIterations bounds the ReAct loop. Configurable via AGENT_MAX_ITERATIONS
// (default 10; a value that is not an integer in [1, 50] is ignored with a
// warning and the default used) so a deployment can trade latency for
// thoroughness without a code change.
var MaxIterations = loadMaxIterations()

func loadMaxIterations() int {
	const defaultIterations = 10
	v := os.Getenv("AGENT_MAX_ITERATIONS")
	if v == "" {
		return defaultIterations
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 50 {
		log.Printf("[Orchestrator] WARNING: invalid AGENT_MAX_ITERATIONS=%q (must be 1-50), using default %d", v, defaultIterations)
		return defaultIterations
	}
	return n
}

// Decision is the LLM's structured output for one ReAct iteration. A JSON
// null for tool/answer decodes to "" — there is no separate pointer
// indirection needed since the empty string is never itself a valid tool
// name or a valid non-empty answer.
type Decision struct {
	Reasoning  string         `json:"reasoning"`
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters"`
	Answer     string         `json:"answer"`
	Confidence float64        `json:"confidence"`
	Done       bool           `json:"done"`
}

// Step is one recorded iteration: the Decision the LLM made, plus the
// ToolResult it produced (absent when the iteration terminated before a
// tool ran — a parse failure, an unreachable LLM, an unknown tool, or a
// done=true finalization). Exactly one Step is appended per iteration.
type Step struct {
	Iteration   int
	Decision    Decision
	Result      *tool.Result
	Error       string
	WallClockMs int64
}

// State is the per-query mutable container the ReAct loop reads and writes.
// Not goroutine-safe: the Flow guarantees single-goroutine access for the
// lifetime of one Analyze call.
type State struct {
	QueryID       string
	Query         string
	Iteration     int
	MaxIterations int
	Trace         []Step

	LoadedRows   logstore.RowSet
	FilteredRows logstore.RowSet
	HasFiltered  bool

	Answer     string
	Confidence float64
	Done       bool

	ErrorKind errkind.Kind

	FailedAttempts  map[string]int
	ParseFailStreak int

	Registry *tool.Registry

	// Transient: written by DecideNode.Post, read by ToolNode.
	LastDecision *Decision

	SystemPrompt string // built once per query, reused every iteration
}

// NewState builds a fresh orchestrator state for one query.
func NewState(queryID, query string, loaded logstore.RowSet, reg *tool.Registry) *State {
	return &State{
		QueryID:        queryID,
		Query:          query,
		MaxIterations:  MaxIterations,
		LoadedRows:     loaded,
		FailedAttempts: make(map[string]int),
		Registry:       reg,
	}
}

// CurrentRows returns FilteredRows if a row-producing tool has run,
// otherwise LoadedRows — the row set auto-injection falls back to and the
// row set `logs_analyzed` is counted against.
func (s *State) CurrentRows() logstore.RowSet {
	if s.HasFiltered {
		return s.FilteredRows
	}
	return s.LoadedRows
}

// Result is the envelope Analyze returns.
type Result struct {
	Success      bool
	QueryID      string
	Answer       string
	Confidence   float64
	Iterations   int
	Trace        []Step
	LogsAnalyzed int
	Error        string
	ErrorKind    errkind.Kind
}
