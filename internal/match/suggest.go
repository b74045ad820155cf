package match

// MinSimilarity is the lowest normalized similarity Closest accepts.
const MinSimilarity = 0.5

// Closest returns the candidate most similar to name after normalization.
// Ties keep the earliest candidate. It reports false when candidates is
// empty or nothing reaches MinSimilarity.
func Closest(name string, candidates []string) (string, bool) {
	target := Normalize(name)

	best, bestScore := "", -1.0
	for _, c := range candidates {
		score := Similarity(target, Normalize(c))
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < MinSimilarity {
		return "", false
	}

	return best, true
}

// Hint formats Closest as a parenthesized suffix, or "" without a match.
func Hint(name string, candidates []string) string {
	best, ok := Closest(name, candidates)
	if !ok {
		return ""
	}

	return " (did you mean '" + best + "'?)"
}
