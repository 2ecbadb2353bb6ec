package similarity

import (
	"math"

	"tunematch/internal/models"
)

// Weights distribute the overall score across the three sub-scores.
type Weights struct {
	Text  float64
	Genre float64
	Audio float64
}

// ScoringConfig collects every hand-tuned constant of the pair scorer so
// tuning and testing never touch algorithm code.
type ScoringConfig struct {
	// DefaultWeights apply to an ordinary pair.
	DefaultWeights Weights
	// ArtistMatchWeights replace the defaults once the artist similarity
	// exceeds StrongArtist: with the artist identified, text is the reliable
	// signal and audio-feature noise matters less.
	ArtistMatchWeights Weights

	// StrongArtist and PartialArtist gate the adaptive text score. Titles
	// vary across platforms far more than artist names, so a strong artist
	// match is allowed to dominate a weak title match.
	StrongArtist  float64
	PartialArtist float64

	// SameArtistBonus is added once artist similarity exceeds
	// SameArtistBonusAt; SameArtistFloor is the minimum overall score for
	// any pair above StrongArtist.
	SameArtistBonusAt float64
	SameArtistBonus   float64
	SameArtistFloor   float64
}

// DefaultScoringConfig returns the tuned production constants.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		DefaultWeights:     Weights{Text: 0.5, Genre: 0.2, Audio: 0.3},
		ArtistMatchWeights: Weights{Text: 0.7, Genre: 0.15, Audio: 0.15},
		StrongArtist:       0.7,
		PartialArtist:      0.3,
		SameArtistBonusAt:  0.8,
		SameArtistBonus:    0.1,
		SameArtistFloor:    0.75,
	}
}

// Engine scores track pairs. It is pure and safe for concurrent use.
type Engine struct {
	cfg ScoringConfig
}

func NewEngine(cfg ScoringConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Score computes the similarity breakdown for an ordered (reference,
// candidate) pair. Absent optional fields degrade to zero contribution;
// there are no error conditions.
func (e *Engine) Score(reference, candidate models.Track) models.SimilarityMetrics {
	titleSim := TextSimilarity(reference.Title, candidate.Title)
	artistSim := TextSimilarity(reference.Artist, candidate.Artist)

	textSim := titleSim
	switch {
	case artistSim > e.cfg.StrongArtist:
		textSim = math.Max(titleSim, 0.85+(artistSim-e.cfg.StrongArtist)*0.5)
	case artistSim > e.cfg.PartialArtist:
		textSim = math.Max(titleSim, artistSim*0.9)
	}

	genreSim := GenreSimilarity(reference.Genre, candidate.Genre)
	audioSim := AudioFeatureSimilarity(reference, candidate)

	w := e.cfg.DefaultWeights
	if artistSim > e.cfg.StrongArtist {
		w = e.cfg.ArtistMatchWeights
	}

	overall := textSim*w.Text + genreSim*w.Genre + audioSim*w.Audio

	if artistSim > e.cfg.SameArtistBonusAt {
		overall = math.Min(1, overall+e.cfg.SameArtistBonus)
	}
	if artistSim > e.cfg.StrongArtist {
		overall = math.Max(overall, e.cfg.SameArtistFloor)
	}

	return models.SimilarityMetrics{
		Text:    textSim,
		Audio:   audioSim,
		Genre:   genreSim,
		Overall: math.Min(1, math.Max(0, overall)),
	}
}
