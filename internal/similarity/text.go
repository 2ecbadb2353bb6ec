package similarity

import (
	"math"
	"strings"
	"unicode"

	"github.com/adrg/strutil/metrics"
)

var levenshtein = metrics.NewLevenshtein()

// EditDistance is the minimum number of single-character insertions,
// deletions and substitutions turning a into b.
func EditDistance(a, b string) int {
	return levenshtein.Distance(a, b)
}

// tokenize lowercases s, strips everything that is neither word character
// (letter, digit, underscore) nor whitespace, and returns the set of
// remaining words.
func tokenize(s string) map[string]struct{} {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}

	words := make(map[string]struct{})
	for _, w := range strings.Fields(sb.String()) {
		words[w] = struct{}{}
	}
	return words
}

// TextSimilarity scores two free-text strings in [0,1]. It is symmetric.
//
// Exact word overlap (Jaccard) is boosted by partial matches: substring
// containment between words of length >= 3 counts as a full match, and a
// small edit distance between words of length >= 4 counts as 0.8 of one.
// The partial score is dampened so that fuzzy overlap alone can never beat a
// clean exact match.
func TextSimilarity(text1, text2 string) float64 {
	words1 := tokenize(text1)
	words2 := tokenize(text2)

	union := len(words1)
	inter := 0
	for w := range words2 {
		if _, ok := words1[w]; ok {
			inter++
		} else {
			union++
		}
	}

	score := 0.0
	if union > 0 {
		score = float64(inter) / float64(union)
	}

	if len(words1) > 0 && len(words2) > 0 {
		partial := 0.0
		for w1 := range words1 {
			r1 := len([]rune(w1))
			for w2 := range words2 {
				r2 := len([]rune(w2))
				if r1 < 3 || r2 < 3 {
					continue
				}
				switch {
				case strings.Contains(w1, w2) || strings.Contains(w2, w1):
					partial += 1.0
				case r1 >= 4 && r2 >= 4:
					// Catches near spellings like "Vijay" vs "Vijaya".
					if EditDistance(w1, w2) <= max(1, min(r1, r2)/5) {
						partial += 0.8
					}
				}
			}
		}

		partialScore := partial / float64(max(len(words1), len(words2))) * 0.8
		score = math.Max(score, partialScore)
	}

	return math.Min(1, score)
}
