package domain

import "strings"

// NormalizePhone canonicalizes raw phone input by stripping every
// non-digit rune. It does not validate length or country code; an empty
// result must be rejected by the caller.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
