package tools

import (
	"testing"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/tool"
)

func TestRegisterAllRegistersThirteenTools(t *testing.T) {
	reg := tool.NewRegistry()
	RegisterAll(reg, loadTestCatalog(t))

	want := []string{
		"search_logs", "filter_by_time", "filter_by_severity", "filter_by_field",
		"get_log_count", "extract_entities", "count_entities", "aggregate_entities",
		"find_entity_relationships", "normalize_term", "fuzzy_search", "return_logs",
		"finalize_answer",
	}
	if len(reg.List()) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(reg.List()))
	}
	for _, name := range want {
		if _, ok := reg.Get(name); !ok {
			t.Errorf("missing tool %q", name)
		}
	}
}
