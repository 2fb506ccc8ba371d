package openai

import "testing"

func TestValidateRequiresAPIKey(t *testing.T) {
	c := &Config{Model: "gpt-4o"}
	if err := c.Validate(); err == nil {
		t.Fatal("want error when APIKey is empty")
	}
}

func TestValidateRejectsOutOfRangeTemperature(t *testing.T) {
	temp := float32(3.0)
	c := &Config{APIKey: "x", Model: "gpt-4o", Temperature: &temp}
	if err := c.Validate(); err == nil {
		t.Fatal("want error for temperature above 2.0")
	}
}

func TestValidateAcceptsMinimalConfig(t *testing.T) {
	c := &Config{APIKey: "x", Model: "gpt-4o"}
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
