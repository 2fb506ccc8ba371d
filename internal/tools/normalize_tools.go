package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/normalize"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/tool"
)

// NormalizeTermTool is normalize_term: expands a term into its configured
// surface variants without touching any row set.
type NormalizeTermTool struct{}

func NewNormalizeTermTool() *NormalizeTermTool { return &NormalizeTermTool{} }

func (t *NormalizeTermTool) Name() string { return "normalize_term" }
func (t *NormalizeTermTool) Description() string {
	return "Expands a term into its configured synonym variants."
}
func (t *NormalizeTermTool) Params() []tool.ParamSpec {
	return []tool.ParamSpec{
		{Name: "term", Kind: tool.KindString, Required: true, Example: `{"term": "error"}`, Description: "term to expand"},
	}
}

func (t *NormalizeTermTool) Execute(_ context.Context, p tool.Params) (tool.Result, error) {
	term := p.String("term")
	if term == "" {
		return tool.Fail("normalize_term: term must not be empty"), nil
	}
	variants := normalize.Normalize(term)
	return tool.Ok(fmt.Sprintf("%d variants: %s", len(variants), strings.Join(variants, ", ")), variants), nil
}

// FuzzySearchTool is fuzzy_search: search_logs unioned across a term's
// normalized variants.
type FuzzySearchTool struct{}

func NewFuzzySearchTool() *FuzzySearchTool { return &FuzzySearchTool{} }

func (t *FuzzySearchTool) Name() string { return "fuzzy_search" }
func (t *FuzzySearchTool) Description() string {
	return "Searches for a term and all of its configured synonym variants, unioning the matches."
}
func (t *FuzzySearchTool) Params() []tool.ParamSpec {
	return []tool.ParamSpec{
		{Name: "term", Kind: tool.KindString, Required: true, Example: `{"term": "timeout"}`, Description: "term to fuzzy-search for"},
		{Name: "rows", Kind: tool.KindRowSet, Required: false, Description: "row set to search; defaults to the current row set (the last tool-produced row set, else the full dataset)"},
	}
}

func (t *FuzzySearchTool) Execute(_ context.Context, p tool.Params) (tool.Result, error) {
	term := p.String("term")
	if term == "" {
		return tool.Fail("fuzzy_search: term must not be empty"), nil
	}
	rows, _ := p.RowSet("rows")

	result, err := normalize.FuzzySearch(rows, term)
	if err != nil {
		return tool.Fail(err.Error()), nil
	}
	return tool.Ok(fmt.Sprintf("kept %d of %d", result.Len(), rows.Len()), result), nil
}
