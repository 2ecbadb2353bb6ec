package spotify

import "tunematch/internal/models"

// demoCatalog serves search results when the platform is unconfigured, so
// the full pipeline stays exercisable without credentials. Feature values
// are curated per track, not generated, to keep scoring deterministic.
var demoCatalog = buildDemoCatalog()

type demoEntry struct {
	id, title, artist, album, genre string
	durationMs, popularity          int
	ac, da, en, va, tempo           float64
}

func buildDemoCatalog() []models.Track {
	entries := []demoEntry{
		{"spotify-1", "Blinding Lights", "The Weeknd", "After Hours", "Pop", 200040, 95, 0.001, 0.514, 0.730, 0.334, 171.005},
		{"spotify-2", "Shape of You", "Ed Sheeran", "÷ (Divide)", "Pop", 233713, 93, 0.581, 0.825, 0.652, 0.931, 95.977},
		{"spotify-3", "Tum Hi Ho", "Arijit Singh", "Aashiqui 2", "Bollywood", 262000, 89, 0.456, 0.534, 0.423, 0.678, 78.5},
		{"spotify-4", "Kesariya", "Arijit Singh", "Brahmastra", "Bollywood", 295000, 92, 0.389, 0.612, 0.567, 0.745, 95.2},
		{"spotify-5", "Raabta", "Arijit Singh", "Agent Vinod", "Bollywood", 284000, 85, 0.512, 0.445, 0.398, 0.634, 82.3},
		{"spotify-6", "Channa Mereya", "Arijit Singh", "Ae Dil Hai Mushkil", "Bollywood", 298000, 88, 0.478, 0.389, 0.456, 0.523, 75.8},
		{"spotify-7", "Someone Like You", "Adele", "21", "Pop", 285000, 90, 0.892, 0.389, 0.234, 0.178, 67.5},
		{"spotify-8", "Perfect", "Ed Sheeran", "÷ (Divide)", "Pop", 263000, 91, 0.678, 0.456, 0.389, 0.789, 95.0},
		{"spotify-9", "Levitating", "Dua Lipa", "Future Nostalgia", "Pop", 203000, 94, 0.012, 0.897, 0.834, 0.915, 103.0},
		{"spotify-10", "Bad Habits", "Ed Sheeran", "=", "Pop", 231000, 92, 0.234, 0.734, 0.689, 0.823, 126.0},
		{"spotify-11", "Gaalipata", "Vijay Prakash", "Gaalipata", "Kannada", 278000, 89, 0.456, 0.678, 0.567, 0.789, 92.5},
		{"spotify-12", "Mungaru Male", "Vijay Prakash", "Mungaru Male", "Kannada", 295000, 91, 0.512, 0.456, 0.445, 0.723, 78.3},
		{"spotify-14", "Kadhal Anukkal", "Vijay Prakash", "Enthiran", "Tamil", 245000, 88, 0.389, 0.612, 0.578, 0.745, 95.8},
		{"spotify-17", "Ringa Ringa", "Vijay Prakash", "Arya 2", "Telugu", 276000, 90, 0.234, 0.834, 0.745, 0.889, 115.6},
		{"spotify-33", "Hosanna", "Vijay Prakash, Suzanne", "Vinnaithaandi Varuvaayaa", "Tamil", 312000, 93, 0.345, 0.623, 0.578, 0.789, 96.8},
		{"spotify-39", "Lag Jaa Gale", "Lata Mangeshkar", "Woh Kaun Thi", "Hindi Classic", 298000, 96, 0.834, 0.267, 0.345, 0.456, 68.7},
	}

	catalog := make([]models.Track, len(entries))
	for i, e := range entries {
		pop := e.popularity
		ac, da, en, va, tempo := e.ac, e.da, e.en, e.va, e.tempo
		catalog[i] = models.Track{
			ID:           e.id,
			Title:        e.title,
			Artist:       e.artist,
			Album:        e.album,
			Genre:        e.genre,
			DurationMs:   e.durationMs,
			Popularity:   &pop,
			Acousticness: &ac,
			Danceability: &da,
			Energy:       &en,
			Valence:      &va,
			Tempo:        &tempo,
			Platform:     models.PlatformSpotify,
		}
	}
	return catalog
}
