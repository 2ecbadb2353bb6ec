package source

import (
	"sort"
	"strings"

	"tunematch/internal/models"
)

// SearchCatalog filters a static demo catalog the way the live platforms
// filter search results: whole-query substring hits on title or artist first,
// then word-by-word overlap against title, artist, genre and album. Artist
// hits outrank everything else, then popularity. No hit means an empty
// result, never random filler.
func SearchCatalog(catalog []models.Track, query string, limit int) []models.Track {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	queryWords := strings.Fields(q)

	var hits []models.Track
	for _, t := range catalog {
		if catalogMatch(t, q, queryWords) {
			hits = append(hits, t)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		ai := strings.Contains(strings.ToLower(hits[i].Artist), q)
		aj := strings.Contains(strings.ToLower(hits[j].Artist), q)
		if ai != aj {
			return ai
		}
		return popularity(hits[i]) > popularity(hits[j])
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

func popularity(t models.Track) int {
	if t.Popularity == nil {
		return 0
	}
	return *t.Popularity
}

func catalogMatch(t models.Track, q string, queryWords []string) bool {
	title := strings.ToLower(t.Title)
	artist := strings.ToLower(t.Artist)

	if strings.Contains(title, q) || strings.Contains(artist, q) {
		return true
	}

	fields := title + " " + artist + " " + strings.ToLower(t.Genre) + " " + strings.ToLower(t.Album)
	trackWords := strings.FieldsFunc(fields, func(r rune) bool {
		return r == ' ' || r == '-' || r == ',' || r == '|'
	})

	for _, qw := range queryWords {
		if len(qw) < 2 {
			continue
		}
		for _, tw := range trackWords {
			if tw == qw ||
				(len(qw) >= 3 && strings.Contains(tw, qw)) ||
				(len(tw) >= 3 && strings.Contains(qw, tw)) {
				return true
			}
		}
	}
	return false
}

// FindInCatalog returns the catalog entry with the given id.
func FindInCatalog(catalog []models.Track, id string) (models.Track, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return models.Track{}, false
}
