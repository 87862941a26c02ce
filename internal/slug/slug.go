package slug

import (
	"strings"
)

// Make produces a canonical slug for a configured entity name (house,
// interest, skill, enemy template). Behavior: trims, lower-cases and replaces
// runs of spaces with underscores. Suitable for stable DB keys and URLs.
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(s), "_")
}

// MakeAll slugs every name in order, dropping blanks.
func MakeAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if s := Make(n); s != "" {
			out = append(out, s)
		}
	}
	return out
}
