package tools

import (
	"context"
	"testing"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/tool"
)

func TestReturnLogsToolSummarizesCountSpanAndSeverities(t *testing.T) {
	res, err := NewReturnLogsTool().Execute(context.Background(), rowsParam(loadSample(t)))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Message != "Formatted 3 logs" {
		t.Fatalf("expected message %q, got %q", "Formatted 3 logs", res.Message)
	}
	summary := res.Data.(ReturnLogsSummary)
	if summary.TotalRows != 3 {
		t.Fatalf("expected 3 rows, got %d", summary.TotalRows)
	}
	if summary.SeverityCounts["CRITICAL"] != 1 || summary.SeverityCounts["ERROR"] != 1 || summary.SeverityCounts["INFO"] != 1 {
		t.Fatalf("unexpected severity counts: %+v", summary.SeverityCounts)
	}
	if summary.TimeSpanStart != "2024-01-01T00:00:00Z" || summary.TimeSpanEnd != "2024-01-01T02:00:00Z" {
		t.Fatalf("unexpected time span: %s..%s", summary.TimeSpanStart, summary.TimeSpanEnd)
	}
}

func TestReturnLogsToolCapsSamplesAtMaxSamplesInReturn(t *testing.T) {
	p := rowsParam(loadSample(t))
	p.Integers["max_samples"] = 1000

	res, err := NewReturnLogsTool().Execute(context.Background(), p)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	summary := res.Data.(ReturnLogsSummary)
	if len(summary.Samples) > MaxSamplesInReturn {
		t.Fatalf("expected at most %d samples, got %d", MaxSamplesInReturn, len(summary.Samples))
	}
}

func TestReturnLogsToolEmptyRowSet(t *testing.T) {
	res, err := NewReturnLogsTool().Execute(context.Background(), tool.NewParams())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Message != "Formatted 0 logs" {
		t.Fatalf("expected message %q, got %q", "Formatted 0 logs", res.Message)
	}
	summary := res.Data.(ReturnLogsSummary)
	if summary.TotalRows != 0 {
		t.Fatalf("expected 0 rows, got %d", summary.TotalRows)
	}
}

func TestFinalizeAnswerToolRequiresAnswer(t *testing.T) {
	res, err := NewFinalizeAnswerTool().Execute(context.Background(), tool.NewParams())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Success {
		t.Fatal("expected failure for empty answer")
	}
}

func TestFinalizeAnswerToolSucceedsWithAnswer(t *testing.T) {
	p := tool.NewParams()
	p.Strings["answer"] = "the root cause was a DHCP lease expiry"

	res, err := NewFinalizeAnswerTool().Execute(context.Background(), p)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Message != "Answer provided" {
		t.Fatalf("expected message %q, got %q", "Answer provided", res.Message)
	}
}
