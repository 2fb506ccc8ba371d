package orchestrator

import "testing"

func TestParseDecisionDirect(t *testing.T) {
	raw := `{"reasoning":"need rows","tool":"search_logs","parameters":{"value":"reg failed"},"answer":null,"confidence":0.4,"done":false}`

	d, err := ParseDecision(raw)
	if err != nil {
		t.Fatalf("ParseDecision: %v", err)
	}
	if d.Tool != "search_logs" || d.Done {
		t.Errorf("got %+v", d)
	}
	if d.Parameters["value"] != "reg failed" {
		t.Errorf("parameters not decoded: %+v", d.Parameters)
	}
}

func TestParseDecisionFencedCodeBlock(t *testing.T) {
	raw := "Sure thing, here is my decision:\n```json\n{\"reasoning\":\"done\",\"tool\":null,\"parameters\":{},\"answer\":\"3 devices failed\",\"confidence\":0.9,\"done\":true}\n```\nLet me know if you need more."

	d, err := ParseDecision(raw)
	if err != nil {
		t.Fatalf("ParseDecision: %v", err)
	}
	if !d.Done || d.Answer != "3 devices failed" {
		t.Errorf("got %+v", d)
	}
}

func TestParseDecisionBraceBalancedSlice(t *testing.T) {
	raw := "I'll respond now: {\"reasoning\":\"x\",\"tool\":null,\"parameters\":{},\"answer\":\"ok\",\"confidence\":1,\"done\":true} — hope that helps!"

	d, err := ParseDecision(raw)
	if err != nil {
		t.Fatalf("ParseDecision: %v", err)
	}
	if !d.Done || d.Answer != "ok" {
		t.Errorf("got %+v", d)
	}
}

func TestParseDecisionTrailingCommaStripped(t *testing.T) {
	raw := `{"reasoning":"x","tool":null,"parameters":{},"answer":"ok","confidence":1,"done":true,}`

	d, err := ParseDecision(raw)
	if err != nil {
		t.Fatalf("ParseDecision: %v", err)
	}
	if !d.Done || d.Answer != "ok" {
		t.Errorf("got %+v", d)
	}
}

func TestParseDecisionRejectsGarbage(t *testing.T) {
	if _, err := ParseDecision("not json at all, just rambling prose."); err == nil {
		t.Fatal("expected an error for unparsable output")
	}
}

func TestParseDecisionRequiresDoneField(t *testing.T) {
	raw := `{"reasoning":"x","tool":"search_logs","parameters":{}}`
	if _, err := ParseDecision(raw); err == nil {
		t.Fatal("expected an error when done is absent")
	}
}

func TestParseDecisionDefaultsNilParameters(t *testing.T) {
	raw := `{"reasoning":"x","tool":null,"parameters":null,"answer":"ok","confidence":1,"done":true}`
	d, err := ParseDecision(raw)
	if err != nil {
		t.Fatalf("ParseDecision: %v", err)
	}
	if d.Parameters == nil {
		t.Error("Parameters should default to an empty, non-nil map")
	}
}
