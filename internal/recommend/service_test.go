package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunematch/internal/models"
	"tunematch/internal/similarity"
	"tunematch/internal/source"
)

type fakeAdapter struct {
	platform   models.Platform
	catalog    []models.Track
	features   map[string]models.TrackFeatures
	searchErr  error
	configured bool
}

func (f *fakeAdapter) Name() models.Platform { return f.platform }

func (f *fakeAdapter) Configured() bool { return f.configured }

func (f *fakeAdapter) SearchTracks(_ context.Context, query string, limit int) ([]models.Track, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return source.SearchCatalog(f.catalog, query, limit), nil
}

func (f *fakeAdapter) TrackFeatures(_ context.Context, id string) (models.TrackFeatures, error) {
	return f.features[id], nil
}

func (f *fakeAdapter) GetTrack(_ context.Context, id string) (models.Track, error) {
	if t, ok := source.FindInCatalog(f.catalog, id); ok {
		return t, nil
	}
	return models.Track{}, errors.New("not found")
}

func fptr(v float64) *float64 { return &v }

func spotifyFake() *fakeAdapter {
	return &fakeAdapter{
		platform:   models.PlatformSpotify,
		configured: true,
		catalog: []models.Track{
			{ID: "sp-1", Title: "Shape of You", Artist: "Ed Sheeran", Genre: "Pop", Platform: models.PlatformSpotify},
			{ID: "sp-2", Title: "Perfect", Artist: "Ed Sheeran", Genre: "Pop", Platform: models.PlatformSpotify},
			{ID: "sp-3", Title: "Levitating", Artist: "Dua Lipa", Genre: "Pop", Platform: models.PlatformSpotify},
		},
		features: map[string]models.TrackFeatures{
			"sp-1": {Energy: fptr(0.65), Tempo: fptr(96)},
			"sp-2": {Energy: fptr(0.45), Tempo: fptr(95)},
		},
	}
}

func youtubeFake() *fakeAdapter {
	return &fakeAdapter{
		platform:   models.PlatformYouTube,
		configured: false,
		catalog: []models.Track{
			{ID: "yt-1", Title: "Shape of You", Artist: "Ed Sheeran", Platform: models.PlatformYouTube},
			{ID: "yt-2", Title: "Perfect", Artist: "Ed Sheeran", Platform: models.PlatformYouTube},
		},
		features: map[string]models.TrackFeatures{},
	}
}

func newTestService(adapters ...source.Adapter) *Service {
	sources := source.NewRegistry(adapters...)
	engine := similarity.NewEngine(similarity.DefaultScoringConfig())
	return New(sources, engine, nil, zerolog.Nop(), DefaultConfig())
}

func TestGetRecommendations(t *testing.T) {
	ctx := context.Background()

	t.Run("reference excluded and cross-platform results ranked", func(t *testing.T) {
		svc := newTestService(spotifyFake(), youtubeFake())
		resp := svc.GetRecommendations(ctx, models.RecommendRequest{Query: "ed sheeran"})

		require.NotEmpty(t, resp.Results)
		for _, r := range resp.Results {
			assert.NotEqual(t, "sp-1", r.Track.ID, "reference must not recommend itself")
			assert.GreaterOrEqual(t, r.Similarity, 0.05)
			assert.NotEmpty(t, r.MatchedFeatures)
		}
		assert.Equal(t, "ed sheeran", resp.Query)
		assert.Equal(t, len(resp.Results), resp.TotalFound)

		platforms := map[models.Platform]bool{}
		for _, r := range resp.Results {
			platforms[r.Track.Platform] = true
		}
		assert.True(t, platforms[models.PlatformYouTube], "expected candidates from both platforms")
	})

	t.Run("one source failing costs only its candidates", func(t *testing.T) {
		broken := spotifyFake()
		broken.searchErr = errors.New("rate limited")
		svc := newTestService(broken, youtubeFake())

		resp := svc.GetRecommendations(ctx, models.RecommendRequest{Query: "ed sheeran"})
		require.NotEmpty(t, resp.Results)
		for _, r := range resp.Results {
			assert.Equal(t, models.PlatformYouTube, r.Track.Platform)
		}
	})

	t.Run("no match anywhere yields empty valid response", func(t *testing.T) {
		svc := newTestService(spotifyFake(), youtubeFake())
		resp := svc.GetRecommendations(ctx, models.RecommendRequest{Query: "zzz nothing"})
		assert.NotNil(t, resp.Results)
		assert.Empty(t, resp.Results)
		assert.Zero(t, resp.TotalFound)
		assert.Equal(t, "zzz nothing", resp.Query)
	})

	t.Run("platform filter restricts candidates not reference", func(t *testing.T) {
		svc := newTestService(spotifyFake(), youtubeFake())
		resp := svc.GetRecommendations(ctx, models.RecommendRequest{
			Query:    "ed sheeran",
			Platform: models.FilterYouTube,
		})
		require.NotEmpty(t, resp.Results)
		for _, r := range resp.Results {
			assert.Equal(t, models.PlatformYouTube, r.Track.Platform)
		}
	})

	t.Run("limit caps results", func(t *testing.T) {
		svc := newTestService(spotifyFake(), youtubeFake())
		resp := svc.GetRecommendations(ctx, models.RecommendRequest{Query: "ed sheeran", Limit: 1})
		assert.Len(t, resp.Results, 1)
		assert.Greater(t, resp.TotalFound, 1, "total keeps counting past the limit")
	})

	t.Run("reference carries enriched features into scoring", func(t *testing.T) {
		svc := newTestService(spotifyFake(), youtubeFake())
		resp := svc.GetRecommendations(ctx, models.RecommendRequest{Query: "ed sheeran"})
		require.NotEmpty(t, resp.Results)
		// sp-2 shares features with the sp-1 reference, so its audio score is set.
		seen := false
		for _, r := range resp.Results {
			if r.Track.ID == "sp-2" {
				seen = true
				assert.Greater(t, r.Metrics.Audio, 0.0)
			}
		}
		assert.True(t, seen)
	})
}

func TestSearch(t *testing.T) {
	svc := newTestService(spotifyFake(), youtubeFake())

	results := svc.Search(context.Background(), models.RecommendRequest{Query: "perfect"})
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Contains(t, r.Title, "Perfect")
	}

	limited := svc.Search(context.Background(), models.RecommendRequest{Query: "ed sheeran", Limit: 2})
	assert.Len(t, limited, 2)

	assert.Empty(t, svc.Search(context.Background(), models.RecommendRequest{Query: "zzz"}))
}

func TestResolveTrack(t *testing.T) {
	svc := newTestService(spotifyFake(), youtubeFake())

	t.Run("known track is enriched", func(t *testing.T) {
		track, err := svc.ResolveTrack(context.Background(), models.PlatformSpotify, "sp-1")
		require.NoError(t, err)
		assert.Equal(t, "Shape of You", track.Title)
		require.NotNil(t, track.Energy)
		assert.InDelta(t, 0.65, *track.Energy, 1e-9)
	})

	t.Run("unknown platform", func(t *testing.T) {
		_, err := svc.ResolveTrack(context.Background(), "soundcloud", "x")
		var unknown *UnknownPlatformError
		require.ErrorAs(t, err, &unknown)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.ResolveTrack(context.Background(), models.PlatformSpotify, "missing")
		assert.Error(t, err)
	})
}

func TestCrossPlatformMatches(t *testing.T) {
	t.Run("finds the twin on the other platform", func(t *testing.T) {
		svc := newTestService(spotifyFake(), youtubeFake())
		ref, err := svc.ResolveTrack(context.Background(), models.PlatformSpotify, "sp-1")
		require.NoError(t, err)

		matches, err := svc.CrossPlatformMatches(context.Background(), ref)
		require.NoError(t, err)
		require.NotEmpty(t, matches)
		assert.Equal(t, "yt-1", matches[0].ID)
		assert.Equal(t, models.PlatformYouTube, matches[0].Platform)
	})

	t.Run("no other platform registered", func(t *testing.T) {
		svc := newTestService(spotifyFake())
		matches, err := svc.CrossPlatformMatches(context.Background(), models.Track{
			ID: "sp-1", Platform: models.PlatformSpotify,
		})
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("weak candidates stay under the strict threshold", func(t *testing.T) {
		yt := youtubeFake()
		yt.catalog = []models.Track{
			{ID: "yt-x", Title: "Shape", Artist: "Cover Band", Platform: models.PlatformYouTube},
		}
		svc := newTestService(spotifyFake(), yt)
		ref, err := svc.ResolveTrack(context.Background(), models.PlatformSpotify, "sp-1")
		require.NoError(t, err)

		matches, err := svc.CrossPlatformMatches(context.Background(), ref)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestStatus(t *testing.T) {
	svc := newTestService(spotifyFake(), youtubeFake())
	status := svc.Status()

	require.Len(t, status, 2)
	assert.True(t, status[models.PlatformSpotify].Configured)
	assert.False(t, status[models.PlatformYouTube].Configured)
	assert.True(t, status[models.PlatformSpotify].Available)
}
