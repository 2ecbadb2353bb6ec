package spotify

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	zmb3 "github.com/zmb3/spotify/v2"
	"golang.org/x/time/rate"

	"tunematch/internal/models"
)

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("platform unreachable")
}

func TestUnconfiguredAdapterServesDemoCatalog(t *testing.T) {
	a := New(context.Background(), Config{})
	require.False(t, a.Configured())

	t.Run("search", func(t *testing.T) {
		tracks, err := a.SearchTracks(context.Background(), "ed sheeran", 10)
		require.NoError(t, err)
		require.NotEmpty(t, tracks)
		for _, tr := range tracks {
			assert.Equal(t, models.PlatformSpotify, tr.Platform)
			assert.Equal(t, "Ed Sheeran", tr.Artist)
		}
	})

	t.Run("features", func(t *testing.T) {
		f, err := a.TrackFeatures(context.Background(), "spotify-2")
		require.NoError(t, err)
		require.NotNil(t, f.Tempo)
		assert.InDelta(t, 95.977, *f.Tempo, 1e-3)
	})

	t.Run("get track", func(t *testing.T) {
		tr, err := a.GetTrack(context.Background(), "spotify-2")
		require.NoError(t, err)
		assert.Equal(t, "Shape of You", tr.Title)

		_, err = a.GetTrack(context.Background(), "missing")
		assert.Error(t, err)
	})
}

func TestLiveSearchFailureFallsBackToDemoCatalog(t *testing.T) {
	a := &Adapter{
		client:     zmb3.New(&http.Client{Transport: failingTransport{}}),
		limiter:    rate.NewLimiter(rate.Every(time.Millisecond), 5),
		configured: true,
	}

	tracks, err := a.SearchTracks(context.Background(), "ed sheeran", 10)
	require.NoError(t, err)
	require.NotEmpty(t, tracks)
	for _, tr := range tracks {
		assert.Equal(t, "Ed Sheeran", tr.Artist)
	}

	t.Run("cancelled context still errors", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := a.SearchTracks(ctx, "ed sheeran", 10)
		assert.Error(t, err)
	})
}

func TestConfiguredFlag(t *testing.T) {
	a := New(context.Background(), Config{ClientID: "id", ClientSecret: "secret"})
	assert.True(t, a.Configured())

	a = New(context.Background(), Config{AllowAnonymous: true})
	assert.True(t, a.Configured())
}
