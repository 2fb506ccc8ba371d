package tools

import (
	"context"
	"fmt"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/logstore"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/tool"
)

// SearchLogsTool is search_logs: substring search over loaded_rows.
type SearchLogsTool struct{}

func NewSearchLogsTool() *SearchLogsTool { return &SearchLogsTool{} }

func (t *SearchLogsTool) Name() string { return "search_logs" }
func (t *SearchLogsTool) Description() string {
	return "Substring search over log rows; optionally restricted to named columns."
}
func (t *SearchLogsTool) Params() []tool.ParamSpec {
	return []tool.ParamSpec{
		{Name: "value", Kind: tool.KindString, Required: true, Example: `{"value": "MAWED07T01"}`, Description: "literal substring to search for"},
		{Name: "columns", Kind: tool.KindList, Required: false, Example: `{"columns": ["_source.log"]}`, Description: "restrict the search to these columns; default scans every column"},
		{Name: "rows", Kind: tool.KindRowSet, Required: false, Description: "row set to search; defaults to the full dataset"},
	}
}

func (t *SearchLogsTool) Execute(_ context.Context, p tool.Params) (tool.Result, error) {
	value := p.String("value")
	if value == "" {
		return tool.Fail("search_logs: value must not be empty"), nil
	}
	rows, _ := p.RowSet("rows")

	result, err := logstore.SearchSubstring(rows, value, p.List("columns"))
	if err != nil {
		return tool.Fail(err.Error()), nil
	}
	return tool.Ok(fmt.Sprintf("kept %d of %d", result.Len(), rows.Len()), result), nil
}

// FilterByTimeTool is filter_by_time: retains rows within [start, end].
type FilterByTimeTool struct{}

func NewFilterByTimeTool() *FilterByTimeTool { return &FilterByTimeTool{} }

func (t *FilterByTimeTool) Name() string { return "filter_by_time" }
func (t *FilterByTimeTool) Description() string {
	return "Retains rows whose timestamp falls within an inclusive ISO-8601 range."
}
func (t *FilterByTimeTool) Params() []tool.ParamSpec {
	return []tool.ParamSpec{
		{Name: "start", Kind: tool.KindString, Required: false, Example: `{"start": "2024-01-01T00:00:00Z"}`, Description: "inclusive lower bound"},
		{Name: "end", Kind: tool.KindString, Required: false, Example: `{"end": "2024-01-02T00:00:00Z"}`, Description: "inclusive upper bound"},
		{Name: "rows", Kind: tool.KindRowSet, Required: false, Description: "row set to filter"},
	}
}

func (t *FilterByTimeTool) Execute(_ context.Context, p tool.Params) (tool.Result, error) {
	start, end := p.String("start"), p.String("end")
	if start == "" && end == "" {
		return tool.Fail("filter_by_time: at least one of start or end must be given"), nil
	}
	rows, _ := p.RowSet("rows")
	result := logstore.FilterTime(rows, start, end)
	return tool.Ok(fmt.Sprintf("kept %d of %d", result.Len(), rows.Len()), result), nil
}

// FilterBySeverityTool is filter_by_severity: retains rows matching any of
// the given severity levels.
type FilterBySeverityTool struct{}

func NewFilterBySeverityTool() *FilterBySeverityTool { return &FilterBySeverityTool{} }

func (t *FilterBySeverityTool) Name() string { return "filter_by_severity" }
func (t *FilterBySeverityTool) Description() string {
	return "Retains rows whose severity is one of the given levels (DEBUG/INFO/WARNING/ERROR/CRITICAL)."
}
func (t *FilterBySeverityTool) Params() []tool.ParamSpec {
	return []tool.ParamSpec{
		{Name: "severities", Kind: tool.KindList, Required: true, Example: `{"severities": ["ERROR", "CRITICAL"]}`, Description: "severity level names to keep"},
		{Name: "rows", Kind: tool.KindRowSet, Required: false, Description: "row set to filter"},
	}
}

func (t *FilterBySeverityTool) Execute(_ context.Context, p tool.Params) (tool.Result, error) {
	names := p.List("severities")
	if len(names) == 0 {
		return tool.Fail("filter_by_severity: severities must not be empty"), nil
	}
	levels := make([]logstore.Severity, 0, len(names))
	for _, name := range names {
		sev, err := logstore.ParseSeverity(name)
		if err != nil {
			return tool.Fail(fmt.Sprintf("filter_by_severity: %v", err)), nil
		}
		levels = append(levels, sev)
	}
	rows, _ := p.RowSet("rows")
	result, err := logstore.FilterSeverity(rows, levels)
	if err != nil {
		return tool.Fail(err.Error()), nil
	}
	return tool.Ok(fmt.Sprintf("kept %d of %d", result.Len(), rows.Len()), result), nil
}

// FilterByFieldTool is filter_by_field: exact-equality match on a named field.
type FilterByFieldTool struct{}

func NewFilterByFieldTool() *FilterByFieldTool { return &FilterByFieldTool{} }

func (t *FilterByFieldTool) Name() string { return "filter_by_field" }
func (t *FilterByFieldTool) Description() string {
	return "Retains rows where a named CSV column exactly equals a value."
}
func (t *FilterByFieldTool) Params() []tool.ParamSpec {
	return []tool.ParamSpec{
		{Name: "field", Kind: tool.KindString, Required: true, Example: `{"field": "rpdname"}`, Description: "CSV column name"},
		{Name: "value", Kind: tool.KindString, Required: true, Example: `{"value": "MAWED07T01"}`, Description: "exact value to match"},
		{Name: "rows", Kind: tool.KindRowSet, Required: false, Description: "row set to filter"},
	}
}

func (t *FilterByFieldTool) Execute(_ context.Context, p tool.Params) (tool.Result, error) {
	field, value := p.String("field"), p.String("value")
	if field == "" {
		return tool.Fail("filter_by_field: field must not be empty"), nil
	}
	rows, _ := p.RowSet("rows")
	result := logstore.FilterField(rows, field, value)
	return tool.Ok(fmt.Sprintf("kept %d of %d", result.Len(), rows.Len()), result), nil
}

// GetLogCountTool is get_log_count: reports the row count.
type GetLogCountTool struct{}

func NewGetLogCountTool() *GetLogCountTool { return &GetLogCountTool{} }

func (t *GetLogCountTool) Name() string        { return "get_log_count" }
func (t *GetLogCountTool) Description() string { return "Returns the number of rows in the current row set." }
func (t *GetLogCountTool) Params() []tool.ParamSpec {
	return []tool.ParamSpec{
		{Name: "rows", Kind: tool.KindRowSet, Required: false, Description: "row set to count"},
	}
}

func (t *GetLogCountTool) Execute(_ context.Context, p tool.Params) (tool.Result, error) {
	rows, _ := p.RowSet("rows")
	count := logstore.Count(rows)
	return tool.Ok(fmt.Sprintf("%d rows", count), count), nil
}
