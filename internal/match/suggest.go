package match

import "sort"

// MinSuggestionScore is the similarity below which a name is not offered as
// a suggestion.
const MinSuggestionScore = 0.5

// Suggestion is a known name together with its similarity to the query.
type Suggestion struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name and returns those reaching
// MinSuggestionScore, best first. Ties keep candidate order.
func Rank(name string, candidates []string) []Suggestion {
	var out []Suggestion

	for _, c := range candidates {
		score := NameSimilarity(name, c)
		if score < MinSuggestionScore {
			continue
		}

		out = append(out, Suggestion{Name: c, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out
}

// Suggest returns up to limit candidate names similar to name.
func Suggest(name string, candidates []string, limit int) []string {
	ranked := Rank(name, candidates)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	names := make([]string, len(ranked))
	for i, s := range ranked {
		names[i] = s.Name
	}

	return names
}
