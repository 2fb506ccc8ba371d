package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/logstore"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/tool"
)

const sampleCSV = `_source.log,timestamp,severity,rpdname
"cm_mac=00:1A:2B:3C:4D:5E reg failed",2024-01-01T00:00:00Z,ERROR,MAWED07T01
"cpe_ip=10.0.0.5 connected",2024-01-01T01:00:00Z,INFO,MAWED07T01
"link down",2024-01-01T02:00:00Z,CRITICAL,MAWED07T02
`

func loadSample(t *testing.T) logstore.RowSet {
	t.Helper()
	store, err := logstore.LoadReader(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	return store.LoadAll()
}

func rowsParam(rs logstore.RowSet) tool.Params {
	p := tool.NewParams()
	p.RowSets["rows"] = rs
	return p
}

func TestSearchLogsToolKeepsMatchingRows(t *testing.T) {
	rs := loadSample(t)
	p := rowsParam(rs)
	p.Strings["value"] = "reg failed"

	res, err := NewSearchLogsTool().Execute(context.Background(), p)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	got := res.Data.(logstore.RowSet)
	if got.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", got.Len())
	}
}

func TestSearchLogsToolRejectsEmptyValue(t *testing.T) {
	res, err := NewSearchLogsTool().Execute(context.Background(), rowsParam(loadSample(t)))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Success {
		t.Fatal("expected failure for empty value")
	}
}

func TestFilterBySeverityToolRejectsUnknownLevel(t *testing.T) {
	p := rowsParam(loadSample(t))
	p.Lists["severities"] = []string{"BOGUS"}

	res, err := NewFilterBySeverityTool().Execute(context.Background(), p)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Success {
		t.Fatal("expected failure for unknown severity level")
	}
}

func TestFilterBySeverityToolKeepsMatching(t *testing.T) {
	p := rowsParam(loadSample(t))
	p.Lists["severities"] = []string{"CRITICAL"}

	res, err := NewFilterBySeverityTool().Execute(context.Background(), p)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got := res.Data.(logstore.RowSet)
	if got.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", got.Len())
	}
}

func TestFilterByFieldToolExactMatch(t *testing.T) {
	p := rowsParam(loadSample(t))
	p.Strings["field"] = "rpdname"
	p.Strings["value"] = "MAWED07T01"

	res, err := NewFilterByFieldTool().Execute(context.Background(), p)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got := res.Data.(logstore.RowSet)
	if got.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Len())
	}
}

func TestGetLogCountTool(t *testing.T) {
	res, err := NewGetLogCountTool().Execute(context.Background(), rowsParam(loadSample(t)))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Data.(int) != 3 {
		t.Fatalf("expected 3, got %v", res.Data)
	}
}

func TestFilterByTimeToolRequiresABound(t *testing.T) {
	res, err := NewFilterByTimeTool().Execute(context.Background(), rowsParam(loadSample(t)))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Success {
		t.Fatal("expected failure when neither start nor end is given")
	}
}
