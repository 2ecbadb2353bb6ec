// Package spotify adapts the Spotify Web API to the source.Adapter contract.
// With client credentials it uses the official API; without them it can fall
// back to an anonymous web-player token, and failing both it serves a small
// built-in demo catalog.
package spotify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"tunematch/internal/models"
	"tunematch/internal/source"
)

// Config carries the Spotify credentials. AllowAnonymous enables the
// web-player token fallback when no client credentials are set.
type Config struct {
	ClientID       string
	ClientSecret   string
	AllowAnonymous bool
}

type Adapter struct {
	client     *spotify.Client
	limiter    *rate.Limiter
	configured bool
}

// New builds the adapter. The limiter keeps the whole process inside
// Spotify's per-app request budget regardless of enrichment fan-out.
func New(ctx context.Context, cfg Config) *Adapter {
	a := &Adapter{
		// 5 req/sec with a small burst for batched enrichment
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}

	switch {
	case cfg.ClientID != "" && cfg.ClientSecret != "":
		conf := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     spotifyauth.TokenURL,
		}
		a.client = spotify.New(conf.Client(ctx))
		a.configured = true
	case cfg.AllowAnonymous:
		httpClient := &http.Client{
			Timeout:   30 * time.Second,
			Transport: newWebTokenTransport(),
		}
		a.client = spotify.New(httpClient)
		a.configured = true
	}
	return a
}

func (a *Adapter) Name() models.Platform { return models.PlatformSpotify }

func (a *Adapter) Configured() bool { return a.configured }

func (a *Adapter) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	if !a.configured {
		return source.SearchCatalog(demoCatalog, query, limit), nil
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	res, err := a.client.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(limit))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Live failure degrades to the demo catalog, same as running
		// unconfigured, so an unreachable platform never empties results.
		return source.SearchCatalog(demoCatalog, query, limit), nil
	}
	if res.Tracks == nil {
		return nil, nil
	}

	tracks := make([]models.Track, 0, len(res.Tracks.Tracks))
	for _, ft := range res.Tracks.Tracks {
		tracks = append(tracks, transform(ft))
	}
	return tracks, nil
}

func (a *Adapter) TrackFeatures(ctx context.Context, id string) (models.TrackFeatures, error) {
	if !a.configured {
		if t, ok := source.FindInCatalog(demoCatalog, id); ok {
			return models.TrackFeatures{
				Acousticness: t.Acousticness,
				Danceability: t.Danceability,
				Energy:       t.Energy,
				Valence:      t.Valence,
				Tempo:        t.Tempo,
			}, nil
		}
		return models.TrackFeatures{}, nil
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return models.TrackFeatures{}, err
	}

	feats, err := a.client.GetAudioFeatures(ctx, spotify.ID(id))
	if err != nil {
		return models.TrackFeatures{}, fmt.Errorf("spotify audio features %s: %w", id, err)
	}
	if len(feats) == 0 || feats[0] == nil {
		return models.TrackFeatures{}, nil
	}

	f := feats[0]
	return models.TrackFeatures{
		Acousticness: ptr(float64(f.Acousticness)),
		Danceability: ptr(float64(f.Danceability)),
		Energy:       ptr(float64(f.Energy)),
		Valence:      ptr(float64(f.Valence)),
		Tempo:        ptr(float64(f.Tempo)),
	}, nil
}

func (a *Adapter) GetTrack(ctx context.Context, id string) (models.Track, error) {
	if !a.configured {
		if t, ok := source.FindInCatalog(demoCatalog, id); ok {
			return t, nil
		}
		return models.Track{}, fmt.Errorf("spotify track %s not found", id)
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return models.Track{}, err
	}

	ft, err := a.client.GetTrack(ctx, spotify.ID(id))
	if err != nil {
		return models.Track{}, fmt.Errorf("spotify get track %s: %w", id, err)
	}
	return transform(*ft), nil
}

func transform(st spotify.FullTrack) models.Track {
	artists := make([]string, len(st.Artists))
	for i, ar := range st.Artists {
		artists[i] = ar.Name
	}

	t := models.Track{
		ID:         string(st.ID),
		Title:      st.Name,
		Artist:     strings.Join(artists, ", "),
		Album:      st.Album.Name,
		DurationMs: int(st.Duration),
		Platform:   models.PlatformSpotify,
	}

	pop := int(st.Popularity)
	t.Popularity = &pop

	if len(st.Album.Images) > 0 {
		t.ThumbnailURL = st.Album.Images[0].URL
	}
	if url, ok := st.ExternalURLs["spotify"]; ok {
		t.ExternalURL = url
	}
	return t
}

func ptr(v float64) *float64 { return &v }
