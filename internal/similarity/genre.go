package similarity

import "strings"

// genreGroups are the fixed synonym classes consulted when two genre tags
// differ. Static configuration, not derived at runtime.
var genreGroups = [][]string{
	{"pop", "dance pop", "electropop"},
	{"rock", "alternative rock", "indie rock", "hard rock"},
	{"hip hop", "rap", "trap", "hip-hop"},
	{"electronic", "edm", "house", "techno", "dubstep"},
	{"r&b", "soul", "neo soul"},
	{"country", "folk", "americana"},
	{"jazz", "blues", "funk"},
	{"classical", "orchestral", "chamber music"},
}

var genreGroupIndex = func() map[string]int {
	idx := make(map[string]int)
	for i, group := range genreGroups {
		for _, g := range group {
			idx[g] = i
		}
	}
	return idx
}()

const relatedGenreScore = 0.7

// GenreSimilarity scores two genre tags: 1 for a case-insensitive exact
// match, 0.7 for distinct tags in the same synonym group, 0 otherwise.
// A missing tag on either side scores 0.
func GenreSimilarity(genre1, genre2 string) float64 {
	if genre1 == "" || genre2 == "" {
		return 0
	}

	g1 := strings.ToLower(genre1)
	g2 := strings.ToLower(genre2)
	if g1 == g2 {
		return 1
	}

	i1, ok1 := genreGroupIndex[g1]
	i2, ok2 := genreGroupIndex[g2]
	if ok1 && ok2 && i1 == i2 {
		return relatedGenreScore
	}
	return 0
}
