package tintero

import (
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	if got := normalizeDate(" 2024-06-01 "); got != "2024-06-01" {
		t.Errorf("normalizeDate trimmed = %q, want %q", got, "2024-06-01")
	}
	// Free-form dates pass through untouched.
	if got := normalizeDate("sometime in June"); got != "sometime in June" {
		t.Errorf("normalizeDate free-form = %q", got)
	}
	today := time.Now().Format("2006-01-02")
	if got := normalizeDate(""); got != today {
		t.Errorf("normalizeDate empty = %q, want %q", got, today)
	}
}
