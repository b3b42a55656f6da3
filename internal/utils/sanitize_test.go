package utils

import (
	"strings"
	"testing"
)

func stripEmojiSpans(s string) string {
	s = strings.ReplaceAll(s, `<span class="emoji-accent">`, "")
	return strings.ReplaceAll(s, `</span>`, "")
}

func TestSanitizeCommentEmptyInput(t *testing.T) {
	if got := SanitizeComment(""); got != "" {
		t.Errorf("empty input must yield empty output, got %q", got)
	}
}

func TestSanitizeCommentPlainTextUnchanged(t *testing.T) {
	in := "This is a perfectly ordinary comment about regional AI policy."
	if got := SanitizeComment(in); got != in {
		t.Errorf("plain text must pass through unchanged, got %q", got)
	}
}

func TestSanitizeCommentKeepsLineBreaks(t *testing.T) {
	got := SanitizeComment("line one<br>line two")
	if !strings.Contains(got, "<br") {
		t.Errorf("line break tag must survive, got %q", got)
	}
}

func TestSanitizeCommentStripsScript(t *testing.T) {
	got := SanitizeComment(`before<script>alert("xss")</script>after`)
	if strings.Contains(got, "<script") {
		t.Errorf("script tag survived: %q", got)
	}
	if strings.Contains(got, "alert") {
		t.Errorf("script body survived: %q", got)
	}
}

func TestSanitizeCommentStripsEventHandlers(t *testing.T) {
	got := SanitizeComment(`<b onclick="steal()">bold claim</b>`)
	if strings.Contains(got, "onclick") {
		t.Errorf("event handler survived: %q", got)
	}
	if !strings.Contains(got, "bold claim") {
		t.Errorf("visible text was lost: %q", got)
	}
}

func TestSanitizeCommentStripsStyleInjection(t *testing.T) {
	got := SanitizeComment(`<span style="position:fixed">pinned</span>`)
	if strings.Contains(got, "style=") {
		t.Errorf("style attribute survived: %q", got)
	}
}

func TestWrapEmojiWrapsRuns(t *testing.T) {
	got := WrapEmoji("Great insight 🤖🔥 thanks")
	want := `Great insight <span class="emoji-accent">🤖🔥</span> thanks`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWrapEmojiPreservesText(t *testing.T) {
	inputs := []string{
		"no emoji here",
		"🚀 to the moon",
		"mixed 🧠 in the 🌏 middle",
		"trailing wave 👋",
		"skin tone 👍🏽 run",
		"flag 🇸🇬 of Singapore",
	}
	for _, in := range inputs {
		if got := stripEmojiSpans(WrapEmoji(in)); got != in {
			t.Errorf("visible text changed: in %q out %q", in, got)
		}
	}
}

func TestWrapEmojiJoinerDoesNotOpenRun(t *testing.T) {
	// A variation selector with no preceding emoji must stay bare.
	in := "x️y"
	if got := WrapEmoji(in); got != in {
		t.Errorf("joiner alone must not open a span, got %q", got)
	}
}
