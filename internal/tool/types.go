// Package tool defines the tool contract every concrete tool in
// internal/tools implements, plus the Registry that binds tool objects to
// their names and renders the catalog the Prompt Builder injects into the
// LLM's system prompt.
package tool

import (
	"context"
	"fmt"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/logstore"
)

// Kind is the closed set of parameter types a tool may declare. The LLM
// only ever sees these five names; internally a Params value carries a
// tagged variant matching one of them.
type Kind string

const (
	KindString  Kind = "STRING"
	KindInteger Kind = "INTEGER"
	KindList    Kind = "LIST"
	KindRowSet  Kind = "ROWSET"
	KindDict    Kind = "DICT"
)

// ParamSpec describes one parameter a tool accepts.
type ParamSpec struct {
	Name        string
	Kind        Kind
	Required    bool
	Example     string
	Description string
}

// Tool is the explicit contract every concrete tool implements: a name, a
// description, a parameter list, and an execution function from
// (parameters, injected state) to a Result.
type Tool interface {
	// Name returns the tool identifier (the LLM uses this name in Decisions).
	Name() string
	// Description returns a one-line, human-readable statement of intent.
	Description() string
	// Params returns the ordered parameter specs for this tool.
	Params() []ParamSpec
	// Execute runs the tool against validated, auto-injected parameters.
	Execute(ctx context.Context, params Params) (Result, error)
}

// Params is the validated argument bag handed to Execute. It is built by the
// orchestrator after JSON-decoding the Decision's raw parameters map,
// auto-injecting rowset parameters, and checking required-ness — Execute
// itself never has to re-validate presence, only interpret values.
type Params struct {
	Strings  map[string]string
	Integers map[string]int
	Lists    map[string][]string
	RowSets  map[string]logstore.RowSet
	Dicts    map[string]map[string]any
}

// NewParams returns an empty Params with every map initialized, so callers
// can assign into it without nil-map panics.
func NewParams() Params {
	return Params{
		Strings:  make(map[string]string),
		Integers: make(map[string]int),
		Lists:    make(map[string][]string),
		RowSets:  make(map[string]logstore.RowSet),
		Dicts:    make(map[string]map[string]any),
	}
}

// String returns the named string parameter, or "" if absent.
func (p Params) String(name string) string { return p.Strings[name] }

// Integer returns the named integer parameter, or def if absent.
func (p Params) Integer(name string, def int) int {
	if v, ok := p.Integers[name]; ok {
		return v
	}
	return def
}

// List returns the named list parameter, or nil if absent.
func (p Params) List(name string) []string { return p.Lists[name] }

// RowSet returns the named row-set parameter and whether it was present.
func (p Params) RowSet(name string) (logstore.RowSet, bool) {
	rs, ok := p.RowSets[name]
	return rs, ok
}

// Result is what a tool's Execute returns. Data may hold a logstore.RowSet, a
// map[string][]string (type → values), a map[string]int (value → count), an
// int, or a formatted string, depending on the tool; callers type-assert
// based on which tool they called.
type Result struct {
	Success bool
	Message string
	Data    any
	Error   string
}

// Ok builds a successful Result.
func Ok(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data}
}

// Fail builds a failed, recoverable Result — the ReAct loop keeps running
// and feeds this back to the LLM through the trace.
func Fail(message string) Result {
	return Result{Success: false, Message: message, Error: message}
}

// Failf is Fail with fmt.Sprintf formatting.
func Failf(format string, args ...any) Result {
	return Fail(fmt.Sprintf(format, args...))
}
