package similarity

import (
	"sort"

	"tunematch/internal/models"
)

// RankConfig bounds and filters a ranking run.
type RankConfig struct {
	// Limit caps the number of returned results.
	Limit int
	// MinSimilarity drops candidates scoring below it (inclusive filter:
	// a score equal to the threshold survives).
	MinSimilarity float64
	// TieBreak optionally orders candidates with equal overall scores.
	// When nil, ties keep their original candidate order.
	TieBreak func(a, b models.ScoredTrack) bool
}

// ByPopularity is an optional tie-break ordering more popular tracks first.
func ByPopularity(a, b models.ScoredTrack) bool {
	pa, pb := 0, 0
	if a.Track.Popularity != nil {
		pa = *a.Track.Popularity
	}
	if b.Track.Popularity != nil {
		pb = *b.Track.Popularity
	}
	return pa > pb
}

// Rank scores every candidate against the reference, drops the reference
// itself and anything under the threshold, orders the rest by descending
// overall score (stable on input order), truncates to the limit and attaches
// match explanations.
func (e *Engine) Rank(reference models.Track, candidates []models.Track, cfg RankConfig) []models.ScoredTrack {
	scored := make([]models.ScoredTrack, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == reference.ID {
			continue
		}
		m := e.Score(reference, c)
		if m.Overall < cfg.MinSimilarity {
			continue
		}
		scored = append(scored, models.ScoredTrack{
			Track:      c,
			Similarity: m.Overall,
			Metrics:    m,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		if cfg.TieBreak != nil {
			return cfg.TieBreak(scored[i], scored[j])
		}
		return false
	})

	if cfg.Limit > 0 && len(scored) > cfg.Limit {
		scored = scored[:cfg.Limit]
	}

	for i := range scored {
		scored[i].MatchedFeatures = Explain(scored[i].Metrics)
	}
	return scored
}

// Explain derives the human-readable reasons a pair matched from its score
// breakdown. The list is never empty.
func Explain(m models.SimilarityMetrics) []string {
	var reasons []string

	if m.Text > 0.7 {
		reasons = append(reasons, "Strong title/artist match")
	} else if m.Text > 0.3 {
		reasons = append(reasons, "Partial title/artist match")
	}

	if m.Genre > 0.9 {
		reasons = append(reasons, "Same genre")
	} else if m.Genre > 0.5 {
		reasons = append(reasons, "Similar genre")
	}

	if m.Audio > 0.8 {
		reasons = append(reasons, "Very similar audio features")
	} else if m.Audio > 0.6 {
		reasons = append(reasons, "Similar audio features")
	}

	if len(reasons) == 0 {
		return []string{"General similarity"}
	}
	return reasons
}
