package errkind

import (
	"errors"
	"testing"
)

func TestRecoverableClassification(t *testing.T) {
	recoverable := []Kind{LLMUnreachable, LLMParseFailed, UnknownTool, MissingParameter, InvalidParameter, ToolExecutionFail, LoopDetected}
	for _, k := range recoverable {
		if !k.Recoverable() {
			t.Errorf("%s should be recoverable", k)
		}
	}
	terminal := []Kind{ConfigInvalid, DeadlineExceeded, IterationExhausted}
	for _, k := range terminal {
		if k.Recoverable() {
			t.Errorf("%s should be terminal", k)
		}
	}
}

func TestErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ToolExecutionFail, "search_logs failed", cause)
	if !errors.Is(err, cause) {
		t.Fatal("Wrap should preserve the cause for errors.Is")
	}
}
