package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/entity"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/entitycatalog"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/logstore"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/tool"
)

// exampleSummary renders "N values: a, b, c (and M more)" for a tool's
// observation message — showing values, not merely counts, is required for
// the LLM to cite them in a final answer.
func exampleSummary(values []string) string {
	shown := values
	more := 0
	if len(values) > DefaultExampleCount {
		shown = values[:DefaultExampleCount]
		more = len(values) - DefaultExampleCount
	}
	msg := fmt.Sprintf("%d values: %s", len(values), strings.Join(shown, ", "))
	if more > 0 {
		msg += fmt.Sprintf(" (and %d more)", more)
	}
	return msg
}

// ExtractEntitiesTool is extract_entities: type → [unique values].
type ExtractEntitiesTool struct {
	catalog *entitycatalog.Catalog
}

func NewExtractEntitiesTool(cat *entitycatalog.Catalog) *ExtractEntitiesTool {
	return &ExtractEntitiesTool{catalog: cat}
}

func (t *ExtractEntitiesTool) Name() string { return "extract_entities" }
func (t *ExtractEntitiesTool) Description() string {
	return "Extracts configured entity types (MACs, IPs, identifiers) from a row set's log payloads."
}
func (t *ExtractEntitiesTool) Params() []tool.ParamSpec {
	return []tool.ParamSpec{
		{Name: "entity_types", Kind: tool.KindList, Required: true, Example: `{"entity_types": ["cm_mac"]}`, Description: "entity type names to extract"},
		{Name: "rows", Kind: tool.KindRowSet, Required: false, Description: "row set to scan"},
	}
}

func (t *ExtractEntitiesTool) Execute(_ context.Context, p tool.Params) (tool.Result, error) {
	types := p.List("entity_types")
	if len(types) == 0 {
		return tool.Fail("extract_entities: entity_types must not be empty"), nil
	}
	rows, _ := p.RowSet("rows")

	occ, unknown, err := entity.Extract(t.catalog, rows, types)
	if err != nil {
		return tool.Fail(err.Error()), nil
	}

	data := make(map[string][]string)
	var parts []string
	for _, typeName := range sortedTypes(occ) {
		vals := occ.Values(typeName)
		if len(vals) > MaxEntitiesPerType {
			vals = vals[:MaxEntitiesPerType]
		}
		data[typeName] = vals
		parts = append(parts, fmt.Sprintf("%s: %s", typeName, exampleSummary(vals)))
	}
	if len(unknown) > 0 {
		parts = append(parts, fmt.Sprintf("skipped unknown types: %s", strings.Join(unknown, ", ")))
	}
	if len(parts) == 0 {
		return tool.Ok("no entities found", data), nil
	}
	return tool.Ok(strings.Join(parts, "; "), data), nil
}

func sortedTypes(occ *entity.OccurrenceMap) []string {
	names := occ.Types()
	sort.Strings(names)
	return names
}

// CountEntitiesTool is count_entities: per-value frequency for one type.
type CountEntitiesTool struct {
	catalog *entitycatalog.Catalog
}

func NewCountEntitiesTool(cat *entitycatalog.Catalog) *CountEntitiesTool {
	return &CountEntitiesTool{catalog: cat}
}

func (t *CountEntitiesTool) Name() string { return "count_entities" }
func (t *CountEntitiesTool) Description() string {
	return "Counts how many times each value of one entity type occurs in a row set."
}
func (t *CountEntitiesTool) Params() []tool.ParamSpec {
	return []tool.ParamSpec{
		{Name: "entity_type", Kind: tool.KindString, Required: true, Example: `{"entity_type": "cm_mac"}`, Description: "entity type name"},
		{Name: "rows", Kind: tool.KindRowSet, Required: false, Description: "row set to scan"},
	}
}

func (t *CountEntitiesTool) Execute(_ context.Context, p tool.Params) (tool.Result, error) {
	typeName := p.String("entity_type")
	if typeName == "" {
		return tool.Fail("count_entities: entity_type must not be empty"), nil
	}
	rows, _ := p.RowSet("rows")

	occ, unknown, err := entity.Extract(t.catalog, rows, []string{typeName})
	if err != nil {
		return tool.Fail(err.Error()), nil
	}
	if len(unknown) > 0 {
		return tool.Failf("count_entities: unknown entity type %q", typeName), nil
	}

	counts := make(map[string]int)
	for _, v := range occ.Values(typeName) {
		counts[v] = len(occ.RowIndices(typeName, v))
	}
	return tool.Ok(fmt.Sprintf("%d distinct values", len(counts)), counts), nil
}

// AggregateEntitiesTool is aggregate_entities: union of extract over
// multiple types with per-type counts.
type AggregateEntitiesTool struct {
	catalog *entitycatalog.Catalog
}

func NewAggregateEntitiesTool(cat *entitycatalog.Catalog) *AggregateEntitiesTool {
	return &AggregateEntitiesTool{catalog: cat}
}

func (t *AggregateEntitiesTool) Name() string { return "aggregate_entities" }
func (t *AggregateEntitiesTool) Description() string {
	return "Extracts multiple entity types and reports per-type counts and values together."
}
func (t *AggregateEntitiesTool) Params() []tool.ParamSpec {
	return []tool.ParamSpec{
		{Name: "entity_types", Kind: tool.KindList, Required: true, Example: `{"entity_types": ["cm_mac", "cpe_ip"]}`, Description: "entity type names to aggregate"},
		{Name: "rows", Kind: tool.KindRowSet, Required: false, Description: "row set to scan"},
	}
}

type aggregateEntry struct {
	Count  int      `json:"count"`
	Values []string `json:"values"`
}

func (t *AggregateEntitiesTool) Execute(_ context.Context, p tool.Params) (tool.Result, error) {
	types := p.List("entity_types")
	if len(types) == 0 {
		return tool.Fail("aggregate_entities: entity_types must not be empty"), nil
	}
	rows, _ := p.RowSet("rows")

	occ, unknown, err := entity.Extract(t.catalog, rows, types)
	if err != nil {
		return tool.Fail(err.Error()), nil
	}

	data := make(map[string]aggregateEntry)
	var parts []string
	for _, typeName := range sortedTypes(occ) {
		vals := occ.Values(typeName)
		data[typeName] = aggregateEntry{Count: len(vals), Values: vals}
		parts = append(parts, fmt.Sprintf("%s: %d", typeName, len(vals)))
	}
	if len(unknown) > 0 {
		parts = append(parts, fmt.Sprintf("skipped unknown types: %s", strings.Join(unknown, ", ")))
	}
	return tool.Ok(strings.Join(parts, ", "), data), nil
}

// FindEntityRelationshipsTool is find_entity_relationships: rows mentioning
// target_value, then extract related_types over that subset.
type FindEntityRelationshipsTool struct {
	catalog *entitycatalog.Catalog
}

func NewFindEntityRelationshipsTool(cat *entitycatalog.Catalog) *FindEntityRelationshipsTool {
	return &FindEntityRelationshipsTool{catalog: cat}
}

func (t *FindEntityRelationshipsTool) Name() string { return "find_entity_relationships" }
func (t *FindEntityRelationshipsTool) Description() string {
	return "Finds rows mentioning a target value, then extracts related entity types from that subset."
}
func (t *FindEntityRelationshipsTool) Params() []tool.ParamSpec {
	return []tool.ParamSpec{
		{Name: "target_value", Kind: tool.KindString, Required: true, Example: `{"target_value": "MAWED07T01"}`, Description: "value to search for"},
		{Name: "related_types", Kind: tool.KindList, Required: true, Example: `{"related_types": ["cm_mac"]}`, Description: "entity types to extract from the matching subset"},
		{Name: "rows", Kind: tool.KindRowSet, Required: false, Description: "row set to search within"},
	}
}

func (t *FindEntityRelationshipsTool) Execute(_ context.Context, p tool.Params) (tool.Result, error) {
	target := p.String("target_value")
	if target == "" {
		return tool.Fail("find_entity_relationships: target_value must not be empty"), nil
	}
	related := p.List("related_types")
	if len(related) == 0 {
		return tool.Fail("find_entity_relationships: related_types must not be empty"), nil
	}
	rows, _ := p.RowSet("rows")

	matching, err := logstore.SearchSubstring(rows, target, nil)
	if err != nil {
		return tool.Fail(err.Error()), nil
	}

	occ, unknown, err := entity.Extract(t.catalog, matching, related)
	if err != nil {
		return tool.Fail(err.Error()), nil
	}

	data := make(map[string][]string)
	var parts []string
	parts = append(parts, fmt.Sprintf("%d rows mention %q", matching.Len(), target))
	for _, typeName := range sortedTypes(occ) {
		vals := occ.Values(typeName)
		data[typeName] = vals
		parts = append(parts, fmt.Sprintf("%s: %s", typeName, exampleSummary(vals)))
	}
	if len(unknown) > 0 {
		parts = append(parts, fmt.Sprintf("skipped unknown types: %s", strings.Join(unknown, ", ")))
	}
	return tool.Ok(strings.Join(parts, "; "), data), nil
}
