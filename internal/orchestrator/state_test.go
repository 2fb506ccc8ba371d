package orchestrator

import (
	"strings"
	"testing"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/logstore"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/tool"
)

func loadTestRows(t *testing.T) logstore.RowSet {
	t.Helper()
	store, err := logstore.LoadReader(strings.NewReader(
		"_source.log,timestamp,severity,rpdname\n" +
			"\"cm_mac=00:1A:2B:3C:4D:5E reg failed\",2024-01-01T00:00:00Z,ERROR,MAWED07T01\n",
	))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	return store.LoadAll()
}

func TestNewStateDefaultsMaxIterations(t *testing.T) {
	rows := loadTestRows(t)
	s := NewState("q1", "who failed registration?", rows, tool.NewRegistry())

	if s.MaxIterations != MaxIterations {
		t.Errorf("MaxIterations = %d, want package default %d", s.MaxIterations, MaxIterations)
	}
	if s.FailedAttempts == nil {
		t.Error("FailedAttempts should be initialized, not nil")
	}
}

func TestCurrentRowsFallsBackToLoaded(t *testing.T) {
	rows := loadTestRows(t)
	s := NewState("q1", "query", rows, tool.NewRegistry())

	if s.CurrentRows().Len() != rows.Len() {
		t.Fatalf("CurrentRows before any filter should equal LoadedRows")
	}

	filtered := logstore.NewRowSet(nil)
	s.FilteredRows = filtered
	s.HasFiltered = true

	if s.CurrentRows().Len() != 0 {
		t.Errorf("CurrentRows after HasFiltered=true should return FilteredRows, got len %d", s.CurrentRows().Len())
	}
}
