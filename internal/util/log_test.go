package util

import "testing"

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		if l := NewLogger(level, "json"); l == nil {
			t.Errorf("NewLogger(%q, json) returned nil", level)
		}
	}
	if l := NewLogger("info", "text"); l == nil {
		t.Error("NewLogger(info, text) returned nil")
	}
}
