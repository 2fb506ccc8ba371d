package tools

import (
	"context"
	"fmt"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/logstore"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/tool"
)

// severityDescending lists every severity from most to least urgent;
// return_logs walks it to fill its severity histogram, which is a map and
// so keeps no order of its own.
var severityDescending = []logstore.Severity{
	logstore.CRITICAL, logstore.ERROR, logstore.WARNING, logstore.INFO, logstore.DEBUG,
}

// ReturnLogsSummary is the structured payload of a return_logs call. It is
// carried in the Result's Data; the orchestrator's trace rendering and the
// CLI show only the Result's Message, not these fields.
type ReturnLogsSummary struct {
	TotalRows       int            `json:"total_rows"`
	TimeSpanStart   string         `json:"time_span_start"`
	TimeSpanEnd     string         `json:"time_span_end"`
	SeverityCounts  map[string]int `json:"severity_counts"`
	Samples         []string       `json:"samples"`
	SamplesTruncated bool          `json:"samples_truncated"`
}

// ReturnLogsTool is return_logs: a terminal-style tool that formats a row
// set for display — total count, time span, a severity histogram (a map
// from level name to count with no defined order; levels with no rows are
// left out, unparsed rows count under "UNPARSED"), and up to max_samples
// example rows.
type ReturnLogsTool struct{}

func NewReturnLogsTool() *ReturnLogsTool { return &ReturnLogsTool{} }

func (t *ReturnLogsTool) Name() string { return "return_logs" }
func (t *ReturnLogsTool) Description() string {
	return "Formats a row set for display: count, time span, severity histogram, and sample rows."
}
func (t *ReturnLogsTool) Params() []tool.ParamSpec {
	return []tool.ParamSpec{
		{Name: "rows", Kind: tool.KindRowSet, Required: false, Description: "row set to render; defaults to the current row set (the last tool-produced row set, else the full dataset)"},
		{Name: "max_samples", Kind: tool.KindInteger, Required: false, Example: `{"max_samples": 5}`, Description: "maximum example rows to include (default 3, capped at 10)"},
	}
}

func (t *ReturnLogsTool) Execute(_ context.Context, p tool.Params) (tool.Result, error) {
	rows, _ := p.RowSet("rows")
	maxSamples := clampInt(p.Integer("max_samples", DefaultExampleCount), 0, MaxSamplesInReturn)

	if rows.Empty() {
		return tool.Ok("Formatted 0 logs", ReturnLogsSummary{SeverityCounts: map[string]int{}}), nil
	}

	counts := make(map[logstore.Severity]int)
	var start, end string
	samples := make([]string, 0, maxSamples)
	truncated := rows.Len() > maxSamples

	for i, row := range rows.Rows() {
		counts[row.Severity]++
		if row.Timestamp != "" {
			if start == "" || row.Timestamp < start {
				start = row.Timestamp
			}
			if end == "" || row.Timestamp > end {
				end = row.Timestamp
			}
		}
		if i < maxSamples {
			samples = append(samples, truncateLog(row.Log))
		}
	}

	severityCounts := make(map[string]int, len(severityDescending))
	for _, sev := range severityDescending {
		if c := counts[sev]; c > 0 {
			severityCounts[sev.String()] = c
		}
	}
	if u := counts[logstore.Unparsed]; u > 0 {
		severityCounts["UNPARSED"] = u
	}

	summary := ReturnLogsSummary{
		TotalRows:        rows.Len(),
		TimeSpanStart:    start,
		TimeSpanEnd:      end,
		SeverityCounts:   severityCounts,
		Samples:          samples,
		SamplesTruncated: truncated,
	}

	msg := fmt.Sprintf("Formatted %d logs", rows.Len())
	return tool.Ok(msg, summary), nil
}

// truncateLog caps a log payload at MaxLogCharsPerRow characters so a single
// verbose row can't blow out the LLM's context window.
func truncateLog(log string) string {
	runes := []rune(log)
	if len(runes) <= MaxLogCharsPerRow {
		return log
	}
	return string(runes[:MaxLogCharsPerRow]) + "…"
}

// FinalizeAnswerTool is finalize_answer: the ReAct loop's termination
// signal. It performs no computation of its own — on success ToolNode
// copies its answer into the query state, marks the query done and routes
// to AnswerNode — and it is registered so it appears in the catalog the
// LLM is shown.
type FinalizeAnswerTool struct{}

func NewFinalizeAnswerTool() *FinalizeAnswerTool { return &FinalizeAnswerTool{} }

func (t *FinalizeAnswerTool) Name() string { return "finalize_answer" }
func (t *FinalizeAnswerTool) Description() string {
	return "Terminates the investigation with a final answer and confidence level."
}
func (t *FinalizeAnswerTool) Params() []tool.ParamSpec {
	return []tool.ParamSpec{
		{Name: "answer", Kind: tool.KindString, Required: true, Example: `{"answer": "The outage was caused by..."}`, Description: "the final natural-language answer"},
		{Name: "confidence", Kind: tool.KindString, Required: false, Example: `{"confidence": "high"}`, Description: "low, medium, or high"},
	}
}

func (t *FinalizeAnswerTool) Execute(_ context.Context, p tool.Params) (tool.Result, error) {
	answer := p.String("answer")
	if answer == "" {
		return tool.Fail("finalize_answer: answer must not be empty"), nil
	}
	return tool.Ok("Answer provided", answer), nil
}
