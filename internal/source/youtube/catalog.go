package youtube

import "tunematch/internal/models"

// demoCatalog mirrors the uploads you would actually find for the demo
// songs, raw upload titles included, so the title hygiene path is exercised
// even without an API key.
var demoCatalog = buildDemoCatalog()

// demoFeatures holds curated audio features for the demo videos. Keyed
// separately from the catalog because the live platform returns search hits
// bare and features only arrive through enrichment; the demo path behaves
// the same way.
var demoFeatures = buildDemoFeatures()

type demoEntry struct {
	id, rawTitle, artist  string
	durationMs            int
	ac, da, en, va, tempo float64
}

var demoEntries = []demoEntry{
	{"youtube-1", "Blinding Lights (Official Video)", "The Weeknd", 200000, 0.002, 0.513, 0.728, 0.336, 171.0},
	{"youtube-2", "Shape of You (Official Video)", "Ed Sheeran", 233000, 0.575, 0.820, 0.648, 0.928, 96.0},
	{"youtube-3", "Tum Hi Ho (Full Video Song)", "Arijit Singh", 262000, 0.460, 0.530, 0.420, 0.675, 78.6},
	{"youtube-4", "Kesariya (Official Video) | Brahmastra", "Arijit Singh", 295000, 0.392, 0.610, 0.565, 0.742, 95.3},
	{"youtube-5", "Raabta - Title Song Video", "Arijit Singh", 284000, 0.515, 0.443, 0.396, 0.631, 82.4},
	{"youtube-6", "Channa Mereya (Full Video) | Ae Dil Hai Mushkil", "Arijit Singh", 298000, 0.480, 0.387, 0.455, 0.521, 75.9},
	{"youtube-8", "Someone Like You (Live from the Royal Albert Hall)", "Adele", 285000, 0.890, 0.390, 0.236, 0.180, 67.6},
	{"youtube-9", "Perfect (Official Music Video)", "Ed Sheeran", 263000, 0.675, 0.455, 0.390, 0.786, 95.1},
	{"youtube-10", "Levitating (Official Music Video)", "Dua Lipa", 203000, 0.014, 0.895, 0.831, 0.912, 103.1},
	{"youtube-11", "Gaalipata (Full Video Song) | Kannada Hit", "Vijay Prakash", 278000, 0.458, 0.675, 0.565, 0.786, 92.6},
	{"youtube-12", "Mungaru Male - Title Song | Kannada", "Vijay Prakash", 295000, 0.514, 0.454, 0.443, 0.721, 78.4},
	{"youtube-14", "Kadhal Anukkal - Enthiran | A.R. Rahman", "Vijay Prakash", 245000, 0.391, 0.610, 0.576, 0.743, 95.9},
	{"youtube-33", "Hosanna - Vinnaithaandi Varuvaayaa", "Vijay Prakash, Suzanne", 312000, 0.347, 0.621, 0.576, 0.787, 96.9},
	{"youtube-39", "Lag Jaa Gale - Timeless Classic", "Lata Mangeshkar", 298000, 0.832, 0.269, 0.346, 0.458, 68.8},
}

func buildDemoCatalog() []models.Track {
	catalog := make([]models.Track, len(demoEntries))
	for i, e := range demoEntries {
		catalog[i] = models.Track{
			ID:          e.id,
			Title:       CleanTitle(e.rawTitle),
			Artist:      e.artist,
			DurationMs:  e.durationMs,
			Platform:    models.PlatformYouTube,
			ExternalURL: "https://www.youtube.com/watch?v=" + e.id,
		}
	}
	return catalog
}

func buildDemoFeatures() map[string]models.TrackFeatures {
	features := make(map[string]models.TrackFeatures, len(demoEntries))
	for _, e := range demoEntries {
		ac, da, en, va, tempo := e.ac, e.da, e.en, e.va, e.tempo
		features[e.id] = models.TrackFeatures{
			Acousticness: &ac,
			Danceability: &da,
			Energy:       &en,
			Valence:      &va,
			Tempo:        &tempo,
		}
	}
	return features
}
