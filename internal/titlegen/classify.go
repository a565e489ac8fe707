package titlegen

import "strings"

// Classifier decides whether a preference string names a specific game
// rather than describing a general preference. It is a plain predicate so
// the policy can be tuned and tested independently of the pipeline.
type Classifier func(text string) bool

// preferenceWords are category/style vocabulary words whose presence marks
// the input as a general request rather than a game title.
var preferenceWords = []string{
	"like", "similar", "games", "genre", "type", "style", "feel", "vibe",
	"atmosphere", "mood", "theme", "setting", "story", "narrative",
	"action", "adventure", "rpg", "strategy", "puzzle", "simulation",
	"multiplayer", "single", "coop", "competitive", "relaxing", "challenging",
	"casual", "hardcore", "indie", "triple", "retro", "modern", "classic",
}

// IsLikelyGameTitle is the default Classifier: short inputs free of
// preference vocabulary are treated as game titles. Known to misfire on
// short descriptive phrases; tune the word list, not the pipeline.
func IsLikelyGameTitle(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, word := range preferenceWords {
		if strings.Contains(lower, word) {
			return false
		}
	}

	return len(strings.Fields(text)) <= 3
}
