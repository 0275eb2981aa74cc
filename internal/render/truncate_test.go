package render

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate_UnderLimitUnchanged(t *testing.T) {
	content := strings.Repeat("a", 100)
	out, outcome := Truncate(content, FormatMarkdown, 100)
	if out != content {
		t.Error("content at the limit should pass through unchanged")
	}
	if outcome.Truncated {
		t.Error("expected truncated=false")
	}
	if outcome.OriginalLength != 0 || outcome.Message != "" {
		t.Errorf("expected empty outcome metadata, got %+v", outcome)
	}
}

func TestTruncate_OverLimitMarkdown(t *testing.T) {
	content := strings.Repeat("x", 150)
	out, outcome := Truncate(content, FormatMarkdown, 100)

	if !outcome.Truncated {
		t.Fatal("expected truncated=true")
	}
	if outcome.OriginalLength != 150 {
		t.Errorf("original_length = %d, want 150", outcome.OriginalLength)
	}
	if outcome.Message == "" {
		t.Error("expected a fixed truncation message")
	}

	// Output is exactly the 100-rune prefix plus the notice.
	if want := 100 + utf8.RuneCountInString(markdownTruncationNotice); utf8.RuneCountInString(out) != want {
		t.Errorf("output length = %d runes, want %d", utf8.RuneCountInString(out), want)
	}
	if !strings.HasPrefix(out, strings.Repeat("x", 100)) {
		t.Error("output does not start with the hard prefix cut")
	}
	if !strings.Contains(out, "---") || !strings.Contains(out, "**Note:**") {
		t.Errorf("markdown notice missing horizontal rule or bold note:\n%s", out)
	}
	for _, suggestion := range []string{"date range", "symbols", "paginat"} {
		if !strings.Contains(out, suggestion) {
			t.Errorf("markdown notice missing suggestion %q:\n%s", suggestion, out)
		}
	}
}

func TestTruncate_OverLimitJSON(t *testing.T) {
	content := strings.Repeat("{", 150)
	out, outcome := Truncate(content, FormatJSON, 100)

	if !outcome.Truncated {
		t.Fatal("expected truncated=true")
	}
	want := strings.Repeat("{", 100) + jsonTruncationMarker
	if out != want {
		t.Errorf("json truncation output mismatch:\ngot  %q\nwant %q", out, want)
	}
}

func TestTruncate_Reapplication(t *testing.T) {
	// Re-truncating already-truncated content that fits under the limit
	// must report truncated=false.
	content := strings.Repeat("y", 150)
	first, outcome := Truncate(content, FormatMarkdown, 100)
	if !outcome.Truncated {
		t.Fatal("expected first application to truncate")
	}

	firstLen := len([]rune(first))
	second, outcome2 := Truncate(first, FormatMarkdown, firstLen)
	if outcome2.Truncated {
		t.Error("re-truncation under the limit should report truncated=false")
	}
	if second != first {
		t.Error("re-truncation under the limit should not modify content")
	}
}

func TestTruncate_CountsRunesNotBytes(t *testing.T) {
	// 120 two-byte runes: 240 bytes but only 120 code points.
	content := strings.Repeat("é", 120)
	out, outcome := Truncate(content, FormatMarkdown, 150)
	if outcome.Truncated {
		t.Error("content under the code-point limit should not be truncated")
	}
	if out != content {
		t.Error("content modified despite being under the limit")
	}
}
