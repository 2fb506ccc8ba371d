package tool

import (
	"context"
	"strings"
	"testing"
)

// dummyTool is a minimal Tool implementation for registry tests.
type dummyTool struct {
	name   string
	params []ParamSpec
}

func (d *dummyTool) Name() string        { return d.name }
func (d *dummyTool) Description() string { return "test tool" }
func (d *dummyTool) Params() []ParamSpec { return d.params }
func (d *dummyTool) Execute(_ context.Context, _ Params) (Result, error) {
	return Ok("ok", nil), nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&dummyTool{name: "search_logs"})

	got, ok := r.Get("search_logs")
	if !ok || got.Name() != "search_logs" {
		t.Fatalf("Get returned %v, %v", got, ok)
	}
	if _, ok := r.Get("nonexistent"); ok {
		t.Fatal("Get on unregistered name should report false")
	}
}

func TestRegistryListSortedByName(t *testing.T) {
	r := NewRegistry()
	r.Register(&dummyTool{name: "zeta"})
	r.Register(&dummyTool{name: "alpha"})
	list := r.List()
	if len(list) != 2 || list[0].Name() != "alpha" || list[1].Name() != "zeta" {
		t.Fatalf("List not sorted: %v", list)
	}
}

func TestRegisterPanicsOnRequiredRowSetParam(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("want panic when registering a tool with a required ROWSET parameter")
		}
	}()
	r := NewRegistry()
	r.Register(&dummyTool{name: "bad", params: []ParamSpec{
		{Name: "rows", Kind: KindRowSet, Required: true},
	}})
}

func TestDescribeAllMarksRowSetAutoInjected(t *testing.T) {
	r := NewRegistry()
	r.Register(&dummyTool{name: "filter_by_time", params: []ParamSpec{
		{Name: "start", Kind: KindString, Required: false, Example: `"2024-01-01"`},
		{Name: "rows", Kind: KindRowSet, Required: false},
	}})
	catalog := r.DescribeAll()
	if !strings.Contains(catalog, "[OPTIONAL — auto-injected]") {
		t.Fatalf("catalog does not mark rowset params auto-injected:\n%s", catalog)
	}
}

func TestDescribeAllEmpty(t *testing.T) {
	r := NewRegistry()
	if got := r.DescribeAll(); got != "(no tools registered)" {
		t.Errorf("empty registry catalog = %q", got)
	}
}
