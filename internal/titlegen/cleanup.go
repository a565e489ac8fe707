package titlegen

import "strings"

// MaxTitles caps the candidate list length per request.
const MaxTitles = 18

// ParseTitles turns the raw model output into a clean candidate title list.
// The model is instructed to return one line of comma-separated titles with
// no prose, but the cleanup runs unconditionally because the contract
// assumes the model will sometimes violate its formatting instructions.
// The result is capped at MaxTitles entries.
func ParseTitles(content string) []string {
	parts := strings.Split(content, ",")

	titles := make([]string, 0, MaxTitles)
	for _, part := range parts {
		if len(titles) >= MaxTitles {
			break
		}
		title := CleanTitle(part)
		if title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}

// CleanTitle strips whitespace and any leading ordinal ("1."–"18.") or
// bullet marker from a single title. Idempotent: cleaning a clean title is
// a no-op.
func CleanTitle(raw string) string {
	title := strings.TrimSpace(raw)

	if ordinal, rest, ok := strings.Cut(title, "."); ok && isListOrdinal(ordinal) {
		title = strings.TrimSpace(rest)
	}

	for _, bullet := range []string{"-", "*", "•"} {
		if strings.HasPrefix(title, bullet) {
			title = strings.TrimSpace(title[len(bullet):])
			break
		}
	}

	return title
}

// isListOrdinal reports whether s is a list position between 1 and 18.
// Anything else keeps its dot: "Dr. Langeskov" is a title, not a bullet.
func isListOrdinal(s string) bool {
	if len(s) == 0 || len(s) > 2 {
		return false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		n = n*10 + int(r-'0')
	}
	return n >= 1 && n <= MaxTitles
}
