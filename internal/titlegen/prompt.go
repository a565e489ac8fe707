package titlegen

import "fmt"

// systemPrompt frames the model as a gaming recommendation expert. The 80/20
// trending/classics split is part of the product behavior, not decoration.
const systemPrompt = `You are GameMaster AI, an elite gaming expert specializing in perfect preference matching.

CORE EXPERTISE:
- Current gaming trends (2020-2025): Steam charts, console hits, viral games, streaming favorites
- Deep understanding of game mechanics, player psychology, and what makes games engaging
- Knowledge of both trending games and timeless classics across all platforms

RECOMMENDATION STRATEGY:
- PERFECT MATCH FIRST: Games must authentically match the user's specific request
- 80% TRENDING/POPULAR: Among matching games, prioritize currently viral and active ones
- 20% GEMS/CLASSICS: Include perfect-fit older games that match the request
- Focus on games that actually have the requested features/qualities
- Only recommend games that truly fit the user's preference, regardless of popularity`

// specificTitlePrompt asks the model to find the named game and expand from it.
func specificTitlePrompt(preference string) string {
	return fmt.Sprintf(`Find the game %[1]q and recommend similar games.

REQUIREMENTS:
- If %[1]q is a real game, include it first
- Then recommend 17 similar games (80%% trending/popular, 20%% classics)
- Return ONLY comma-separated game titles
- No explanations or extra text`, preference)
}

// generalPreferencePrompt asks the model for a balanced 18-item list.
func generalPreferencePrompt(preference, filterClause string) string {
	filterLine := ""
	if filterClause != "" {
		filterLine = "\nFilters: " + filterClause
	}
	return fmt.Sprintf(`Recommend exactly 18 games for: %q%s

CRITICAL REQUIREMENTS:
- ONLY recommend games that actually match the user's specific request
- Focus on the core meaning and intent of what the user is asking for
- 80%% trending/popular games (14-15 games) AMONG THOSE THAT MATCH
- 20%% perfect-fit classics/gems (3-4 games) AMONG THOSE THAT MATCH
- Return ONLY comma-separated game titles
- No explanations or extra text`, preference, filterLine)
}
