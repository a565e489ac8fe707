package titlegen

import (
	"sort"
	"strings"
)

// filterLabels maps structured filter keys to the natural-language labels
// used when rendering them into the prompt. Unknown keys pass through as-is.
var filterLabels = map[string]string{
	"genre":       "genre",
	"platform":    "platform",
	"year":        "released in",
	"mode":        "mode",
	"art_style":   "art style",
	"perspective": "perspective",
	"difficulty":  "difficulty",
	"popularity":  "popularity",
	"price":       "price",
	"score":       "score above",
}

// filterKeyOrder fixes the rendering order so prompts are deterministic.
var filterKeyOrder = []string{
	"genre", "platform", "year", "mode", "art_style",
	"perspective", "difficulty", "popularity", "price", "score",
}

// FilterClause renders structured filters into a natural-language clause,
// "label: value" pairs joined by commas. Filters with empty values are
// omitted entirely; a fully-empty mapping renders as the empty string.
func FilterClause(filters map[string]string) string {
	if len(filters) == 0 {
		return ""
	}

	var parts []string
	seen := make(map[string]bool, len(filters))
	for _, key := range filterKeyOrder {
		if value := filters[key]; value != "" {
			parts = append(parts, filterLabels[key]+": "+value)
			seen[key] = true
		}
	}

	// Unknown keys pass through verbatim, in sorted order for determinism.
	var extras []string
	for key, value := range filters {
		if !seen[key] && filterLabels[key] == "" && value != "" {
			extras = append(extras, key+": "+value)
		}
	}
	sort.Strings(extras)
	parts = append(parts, extras...)

	return strings.Join(parts, ", ")
}
