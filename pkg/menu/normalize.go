// Package menu resolves and invokes commands inside the application's
// dynamically generated menu tree. Captions are matched in normalized form;
// the tree is re-walked from the scope root on every call because the
// application regenerates menus between calls.
package menu

import (
	"strings"
	"unicode"
)

// Normalize makes a human menu caption comparable: accelerator markers
// ("&Play") are stripped, a trailing ellipsis ("Stop..." or "Stop…") is
// removed, surrounding whitespace is trimmed, and the result is
// case-folded. Normalize is pure and idempotent — both the requested
// caption and every child caption pass through it before comparison.
func Normalize(caption string) string {
	s := strings.TrimSpace(caption)
	s = stripAccelerators(s)
	s = stripEllipsis(s)
	s = strings.TrimSpace(s)
	return strings.ToLower(s)
}

// stripAccelerators removes '&' markers that immediately precede a letter
// or digit. Runs to a fixed point so normalization stays idempotent even
// for pathological captions; "A && B" style literal ampersands survive
// because neither '&' precedes a letter.
func stripAccelerators(s string) string {
	for {
		r := []rune(s)
		out := make([]rune, 0, len(r))
		removed := false
		for i := 0; i < len(r); i++ {
			if !removed && r[i] == '&' && i+1 < len(r) &&
				(unicode.IsLetter(r[i+1]) || unicode.IsDigit(r[i+1])) {
				removed = true
				continue
			}
			out = append(out, r[i])
		}
		if !removed {
			return s
		}
		s = string(out)
	}
}

// stripEllipsis removes trailing "..." or '…' decorations, with any
// whitespace between the label and the dots.
func stripEllipsis(s string) string {
	for {
		trimmed := strings.TrimRight(s, " \t")
		switch {
		case strings.HasSuffix(trimmed, "..."):
			s = trimmed[:len(trimmed)-3]
		case strings.HasSuffix(trimmed, "…"):
			s = strings.TrimSuffix(trimmed, "…")
		default:
			return trimmed
		}
	}
}
