// Package source defines the capability contract a content platform must
// implement and a registry the pipeline iterates instead of hardcoding
// platforms, so adding a third source never touches pipeline code.
package source

import (
	"context"

	"tunematch/internal/models"
)

// Adapter is one named content platform.
//
// SearchTracks is best-effort: fewer results than limit, including none, is
// not an error; an error means genuine transport failure and the caller
// treats it as zero items. TrackFeatures may return an empty set when the
// platform lacks the capability. Configured reports operability for status
// surfacing only.
type Adapter interface {
	Name() models.Platform
	SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error)
	TrackFeatures(ctx context.Context, id string) (models.TrackFeatures, error)
	// GetTrack resolves a single known track by its platform id, used when a
	// request names a track directly instead of searching for one.
	GetTrack(ctx context.Context, id string) (models.Track, error)
	Configured() bool
}

// Registry holds the registered adapters in preference order: the first
// adapter is the one with the richest metadata and is tried first when
// resolving a reference track.
type Registry struct {
	adapters []Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	return &Registry{adapters: adapters}
}

// All returns the adapters in registration order.
func (r *Registry) All() []Adapter {
	return r.adapters
}

// Get returns the adapter for a platform.
func (r *Registry) Get(p models.Platform) (Adapter, bool) {
	for _, a := range r.adapters {
		if a.Name() == p {
			return a, true
		}
	}
	return nil, false
}

// Others returns every adapter except the one for p, used by the
// cross-platform lookup.
func (r *Registry) Others(p models.Platform) []Adapter {
	var out []Adapter
	for _, a := range r.adapters {
		if a.Name() != p {
			out = append(out, a)
		}
	}
	return out
}

// Filtered returns the adapters selected by a request's platform filter.
func (r *Registry) Filtered(f models.PlatformFilter) []Adapter {
	if f == "" || f == models.FilterBoth {
		return r.adapters
	}
	var out []Adapter
	for _, a := range r.adapters {
		if models.PlatformFilter(a.Name()) == f {
			out = append(out, a)
		}
	}
	return out
}
