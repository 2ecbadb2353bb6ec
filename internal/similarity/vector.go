package similarity

import (
	"math"

	"tunematch/internal/models"
)

// Tempo is the only scale-sensitive dimension; typical songs sit in
// 60-200 BPM, so it is rescaled onto [0,1] before entering the vector.
const (
	tempoFloor = 60.0
	tempoRange = 140.0
)

// pairVectors projects two tracks onto the shared subset of the fixed
// dimension list {acousticness, danceability, energy, valence, tempo}.
// A dimension is included only when both tracks carry it, so the returned
// vectors always have equal length.
func pairVectors(a, b models.Track) ([]float64, []float64) {
	dims := []struct {
		av, bv *float64
		tempo  bool
	}{
		{a.Acousticness, b.Acousticness, false},
		{a.Danceability, b.Danceability, false},
		{a.Energy, b.Energy, false},
		{a.Valence, b.Valence, false},
		{a.Tempo, b.Tempo, true},
	}

	var va, vb []float64
	for _, d := range dims {
		if d.av == nil || d.bv == nil {
			continue
		}
		if d.tempo {
			va = append(va, (*d.av-tempoFloor)/tempoRange)
			vb = append(vb, (*d.bv-tempoFloor)/tempoRange)
		} else {
			va = append(va, *d.av)
			vb = append(vb, *d.bv)
		}
	}
	return va, vb
}

// Cosine is the standard cosine similarity of two equal-length vectors,
// symmetric in its arguments. A zero-norm or empty vector yields 0.
// Mismatched lengths mean the caller broke the paired-vector invariant, so
// this panics rather than guessing.
func Cosine(v1, v2 []float64) float64 {
	if len(v1) != len(v2) {
		panic("similarity: cosine vectors must have the same length")
	}

	var dot, norm1, norm2 float64
	for i := range v1 {
		dot += v1[i] * v2[i]
		norm1 += v1[i] * v1[i]
		norm2 += v2[i] * v2[i]
	}

	if norm1 == 0 || norm2 == 0 {
		return 0
	}
	return dot / (math.Sqrt(norm1) * math.Sqrt(norm2))
}

// AudioFeatureSimilarity compares the continuous audio attributes of two
// tracks over the dimensions both carry, clamped non-negative: inverse
// correlation is "no similarity", never a penalty. No shared dimensions
// yields 0.
func AudioFeatureSimilarity(a, b models.Track) float64 {
	va, vb := pairVectors(a, b)
	if len(va) == 0 {
		return 0
	}
	return math.Max(0, Cosine(va, vb))
}
