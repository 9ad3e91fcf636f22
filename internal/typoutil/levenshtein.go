package typoutil

// CalculateLevenshteinDistance computes the Levenshtein distance between two strings:
// the minimum number of single-rune insertions, deletions or substitutions needed
// to turn one into the other.
func CalculateLevenshteinDistance(a, b string) int {
	runesA := []rune(a)
	runesB := []rune(b)
	if len(runesA) == 0 {
		return len(runesB)
	}
	if len(runesB) == 0 {
		return len(runesA)
	}

	prev := make([]int, len(runesB)+1)
	curr := make([]int, len(runesB)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(runesA); i++ {
		curr[0] = i
		for j := 1; j <= len(runesB); j++ {
			cost := 1
			if runesA[i-1] == runesB[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(runesB)]
}

// CalculateLevenshteinDistanceWithLimit computes the Levenshtein distance but gives up
// as soon as the result is known to exceed maxDistance, returning maxDistance + 1.
func CalculateLevenshteinDistanceWithLimit(a, b string, maxDistance int) int {
	runesA := []rune(a)
	runesB := []rune(b)

	lengthDiff := len(runesA) - len(runesB)
	if lengthDiff < 0 {
		lengthDiff = -lengthDiff
	}
	if lengthDiff > maxDistance {
		return maxDistance + 1
	}
	if len(runesA) == 0 || len(runesB) == 0 {
		return lengthDiff
	}

	prev := make([]int, len(runesB)+1)
	curr := make([]int, len(runesB)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(runesA); i++ {
		curr[0] = i
		rowMin := i
		for j := 1; j <= len(runesB); j++ {
			cost := 1
			if runesA[i-1] == runesB[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		// Row minimums never decrease, so the final distance is at least rowMin
		if rowMin > maxDistance {
			return maxDistance + 1
		}
		prev, curr = curr, prev
	}

	if prev[len(runesB)] > maxDistance {
		return maxDistance + 1
	}
	return prev[len(runesB)]
}

// ClosestTerm returns the term from sortedTerms with the smallest edit distance to
// term, provided that distance is at most maxDistance. Among equally close terms the
// one that sorts first wins. sortedTerms must be in lexicographic order.
func ClosestTerm(term string, sortedTerms []string, maxDistance int) (string, int, bool) {
	if maxDistance < 0 {
		return "", 0, false
	}

	best := ""
	bestDistance := -1
	limit := maxDistance
	for _, candidate := range sortedTerms {
		d := CalculateLevenshteinDistanceWithLimit(term, candidate, limit)
		if d > limit {
			continue
		}
		if bestDistance == -1 || d < bestDistance {
			best = candidate
			bestDistance = d
			if d == 0 {
				break
			}
			// Only strictly closer terms can replace the current best
			limit = d - 1
		}
	}

	if bestDistance == -1 {
		return "", 0, false
	}
	return best, bestDistance, true
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
