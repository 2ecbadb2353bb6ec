// Package youtube adapts YouTube to the source.Adapter contract: the Data
// API v3 for search, the player metadata client for single-video lookups,
// and a built-in demo catalog when no API key is configured.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	ytclient "github.com/kkdai/youtube/v2"
	"golang.org/x/time/rate"

	"tunematch/internal/models"
	"tunematch/internal/source"
)

const searchEndpoint = "https://www.googleapis.com/youtube/v3/search"

type Config struct {
	APIKey string
}

type Adapter struct {
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	videos  ytclient.Client
}

func New(cfg Config) *Adapter {
	return &Adapter{
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: 30 * time.Second},
		// The Data API quota burns 100 units per search; stay well under it.
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
	}
}

func (a *Adapter) Name() models.Platform { return models.PlatformYouTube }

func (a *Adapter) Configured() bool { return a.apiKey != "" }

// searchItem is the slice of the Data API response we care about.
type searchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		ChannelTitle string `json:"channelTitle"`
		Thumbnails   struct {
			Medium  struct{ URL string } `json:"medium"`
			Default struct{ URL string } `json:"default"`
		} `json:"thumbnails"`
	} `json:"snippet"`
}

func (a *Adapter) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	if !a.Configured() {
		return source.SearchCatalog(demoCatalog, query, limit), nil
	}

	tracks, err := a.searchLive(ctx, query, limit)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Live failure degrades to the demo catalog, same as running
		// without a key, so an unreachable platform never empties results.
		return source.SearchCatalog(demoCatalog, query, limit), nil
	}
	return tracks, nil
}

func (a *Adapter) searchLive(ctx context.Context, query string, limit int) ([]models.Track, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("q", query+" music")
	q.Set("type", "video")
	q.Set("videoCategoryId", "10") // Music
	q.Set("maxResults", fmt.Sprintf("%d", limit))
	q.Set("key", a.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube search %q: status %d", query, resp.StatusCode)
	}

	var payload struct {
		Items []searchItem `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("youtube search decode: %w", err)
	}

	tracks := make([]models.Track, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.ID.VideoID == "" {
			continue
		}
		artist, title := SplitArtistTitle(item.Snippet.Title, item.Snippet.ChannelTitle)

		thumb := item.Snippet.Thumbnails.Medium.URL
		if thumb == "" {
			thumb = item.Snippet.Thumbnails.Default.URL
		}

		tracks = append(tracks, models.Track{
			ID:           item.ID.VideoID,
			Title:        title,
			Artist:       artist,
			Platform:     models.PlatformYouTube,
			ThumbnailURL: thumb,
			ExternalURL:  "https://www.youtube.com/watch?v=" + item.ID.VideoID,
		})
	}
	return tracks, nil
}

// TrackFeatures: YouTube exposes no audio analysis, so the live path returns
// an empty set and scoring degrades to text and genre signals. Demo catalog
// entries carry curated features to keep the audio path exercisable.
func (a *Adapter) TrackFeatures(_ context.Context, id string) (models.TrackFeatures, error) {
	if f, ok := demoFeatures[id]; ok {
		return f, nil
	}
	return models.TrackFeatures{}, nil
}

func (a *Adapter) GetTrack(ctx context.Context, id string) (models.Track, error) {
	if t, ok := source.FindInCatalog(demoCatalog, id); ok {
		return t, nil
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return models.Track{}, err
	}

	video, err := a.videos.GetVideoContext(ctx, id)
	if err != nil {
		return models.Track{}, fmt.Errorf("youtube get video %s: %w", id, err)
	}

	artist, title := SplitArtistTitle(video.Title, video.Author)
	t := models.Track{
		ID:          video.ID,
		Title:       title,
		Artist:      artist,
		DurationMs:  int(video.Duration / time.Millisecond),
		Platform:    models.PlatformYouTube,
		ExternalURL: "https://www.youtube.com/watch?v=" + video.ID,
	}
	if len(video.Thumbnails) > 0 {
		t.ThumbnailURL = video.Thumbnails[0].URL
	}
	return t, nil
}
