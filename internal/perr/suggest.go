package perr

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// similarityThreshold is the approximate Damerau-like similarity cutoff
// below which a candidate name is not suggested.
const similarityThreshold = 0.77

// similarity normalizes a Levenshtein edit distance into a 0..1 score,
// 1 meaning identical strings.
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// Suggest builds the "did you mean" candidate list for a cannot-find-member
// error: names scoring at or above similarityThreshold, sorted by
// (similarity desc, name asc as an arity-distance stand-in — member
// names carry no arity once past the object graph, so lexical order
// breaks ties deterministically). When nothing scores above
// threshold, every known name is returned so the caller can still list
// "legal members"; when knownNames itself is empty, Suggest returns nil
// and the caller notes "(none)".
func Suggest(key string, knownNames []string) []string {
	if len(knownNames) == 0 {
		return nil
	}
	type scored struct {
		name  string
		score float64
	}
	candidates := make([]scored, 0, len(knownNames))
	for _, name := range knownNames {
		candidates = append(candidates, scored{name: name, score: similarity(key, name)})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].name < candidates[j].name
	})

	var above []string
	for _, c := range candidates {
		if c.score >= similarityThreshold {
			above = append(above, c.name)
		}
	}
	if len(above) > 0 {
		return above
	}
	all := make([]string, len(candidates))
	for i, c := range candidates {
		all[i] = c.name
	}
	return all
}
