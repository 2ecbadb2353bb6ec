package models

// Platform identifies which content source a track came from. Track IDs are
// only unique within a platform; the same song on both platforms carries two
// unrelated IDs, so cross-platform identity is never assumed.
type Platform string

const (
	PlatformSpotify Platform = "spotify"
	PlatformYouTube Platform = "youtube"
)

// Track is one catalog entry from a source. The audio feature fields are
// pointers because neither platform guarantees them; a nil field simply
// contributes nothing to similarity.
type Track struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Artist       string   `json:"artist"`
	Album        string   `json:"album,omitempty"`
	Genre        string   `json:"genre,omitempty"`
	DurationMs   int      `json:"duration_ms,omitempty"`
	Popularity   *int     `json:"popularity,omitempty"`
	Acousticness *float64 `json:"acousticness,omitempty"`
	Danceability *float64 `json:"danceability,omitempty"`
	Energy       *float64 `json:"energy,omitempty"`
	Valence      *float64 `json:"valence,omitempty"`
	Tempo        *float64 `json:"tempo,omitempty"`
	Platform     Platform `json:"platform"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	ExternalURL  string   `json:"external_url,omitempty"`
}

// TrackFeatures is the partial result of a feature-enrichment lookup.
type TrackFeatures struct {
	Acousticness *float64
	Danceability *float64
	Energy       *float64
	Valence      *float64
	Tempo        *float64
}

// Apply copies the non-nil features onto t.
func (f TrackFeatures) Apply(t *Track) {
	if f.Acousticness != nil {
		t.Acousticness = f.Acousticness
	}
	if f.Danceability != nil {
		t.Danceability = f.Danceability
	}
	if f.Energy != nil {
		t.Energy = f.Energy
	}
	if f.Valence != nil {
		t.Valence = f.Valence
	}
	if f.Tempo != nil {
		t.Tempo = f.Tempo
	}
}

// SimilarityMetrics is the per-pair score breakdown. All four values lie in
// [0,1]; Overall is derived from the other three plus the artist-match
// strength.
type SimilarityMetrics struct {
	Text    float64 `json:"text_similarity"`
	Audio   float64 `json:"audio_feature_similarity"`
	Genre   float64 `json:"genre_similarity"`
	Overall float64 `json:"overall_similarity"`
}

// ScoredTrack is a ranked candidate with its score and the human-readable
// reasons it matched.
type ScoredTrack struct {
	Track           Track             `json:"track"`
	Similarity      float64           `json:"similarity"`
	Metrics         SimilarityMetrics `json:"metrics"`
	MatchedFeatures []string          `json:"matched_features"`
}

// PlatformFilter selects which sources a request draws candidates from.
type PlatformFilter string

const (
	FilterSpotify PlatformFilter = "spotify"
	FilterYouTube PlatformFilter = "youtube"
	FilterBoth    PlatformFilter = "both"
)

// RecommendRequest is a parsed, validated recommendation query.
type RecommendRequest struct {
	Query    string         `json:"query"`
	Platform PlatformFilter `json:"platform"`
	Limit    int            `json:"limit"`
}

// RecommendResponse echoes the query and carries the bounded ranked results.
// TotalFound counts distinct candidates considered before truncation,
// excluding the reference itself.
type RecommendResponse struct {
	Results          []ScoredTrack `json:"results"`
	Query            string        `json:"query"`
	ProcessingTimeMs int64         `json:"processing_time_ms"`
	TotalFound       int           `json:"total_found"`
}

// PlatformStatus reports one adapter's operability for the status endpoint.
type PlatformStatus struct {
	Configured bool `json:"configured"`
	Available  bool `json:"available"`
}
