package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// commentPolicy strips every tag and attribute except bare line breaks.
// Comment bodies are user or model output and never trusted.
var commentPolicy = bluemonday.NewPolicy()

func init() {
	commentPolicy.AllowElements("br")
}

// SanitizeComment returns HTML-safe markup for a raw comment body: all tags
// except <br> are stripped, then every emoji run is wrapped in a span so it
// can carry the brand accent color.
func SanitizeComment(raw string) string {
	if raw == "" {
		return ""
	}
	return WrapEmoji(commentPolicy.Sanitize(raw))
}

// WrapEmoji wraps each consecutive run of emoji characters in
// <span class="emoji-accent">...</span>. The visible characters are never
// altered, so stripping the spans back out reproduces the input.
func WrapEmoji(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inRun := false
	for _, r := range s {
		switch {
		case isEmojiBase(r):
			if !inRun {
				b.WriteString(`<span class="emoji-accent">`)
				inRun = true
			}
			b.WriteRune(r)
		case inRun && isEmojiJoiner(r):
			// ZWJ sequences, variation selectors and skin tones continue a run
			b.WriteRune(r)
		default:
			if inRun {
				b.WriteString(`</span>`)
				inRun = false
			}
			b.WriteRune(r)
		}
	}
	if inRun {
		b.WriteString(`</span>`)
	}
	return b.String()
}

// isEmojiBase covers the pictographic blocks that start an emoji run. Go's
// regexp has no Extended_Pictographic class, so the ranges are listed here.
func isEmojiBase(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F5FF: // symbols & pictographs
		return true
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport & map
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // supplemental symbols
		return true
	case r >= 0x1FA70 && r <= 0x1FAFF: // symbols & pictographs extended-A
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators (flags)
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // stars and arrows
		return true
	case r == 0x2328 || r == 0x23F0 || r == 0x231A || r == 0x231B:
		return true
	}
	return false
}

// isEmojiJoiner covers characters that extend an already-open run but never
// open one themselves.
func isEmojiJoiner(r rune) bool {
	switch {
	case r == 0x200D: // zero-width joiner
		return true
	case r == 0xFE0F || r == 0xFE0E: // variation selectors
		return true
	case r >= 0x1F3FB && r <= 0x1F3FF: // skin tone modifiers
		return true
	case r == 0x20E3: // combining enclosing keycap
		return true
	}
	return false
}
