package tasks

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateDescription_ShortTextUntouched(t *testing.T) {
	text := "A short walking tour of the old town."
	if got := truncateDescription(text); got != text {
		t.Errorf("Short text should pass through unchanged, got %q", got)
	}
}

func TestTruncateDescription_CutsAtWordBoundary(t *testing.T) {
	text := strings.Repeat("wander ", 100)
	got := truncateDescription(text)

	if len(got) > maxDescriptionLength+len("…") {
		t.Errorf("Expected at most %d bytes plus ellipsis, got %d", maxDescriptionLength, len(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Expected ellipsis suffix, got %q", got)
	}
	if strings.Contains(got, "wande…") {
		t.Errorf("Truncation split a word: %q", got)
	}
}

func TestTruncateDescription_NeverSplitsRune(t *testing.T) {
	// No spaces in the first maxDescriptionLength bytes, so the word
	// boundary fallback cannot rescue a mid-rune cut.
	// Three-byte runes guarantee the byte cap lands mid-rune.
	text := strings.Repeat("あ", maxDescriptionLength)
	got := truncateDescription(text)

	if !utf8.ValidString(got) {
		t.Fatalf("Truncated text is not valid UTF-8: %q", got[:20])
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Expected ellipsis suffix, got end %q", got[len(got)-10:])
	}
	if len(got) > maxDescriptionLength+len("…") {
		t.Errorf("Expected at most %d bytes plus ellipsis, got %d", maxDescriptionLength, len(got))
	}
}
