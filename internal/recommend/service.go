// Package recommend orchestrates the recommendation pipeline: resolve a
// reference track for the query, gather and enrich candidates from every
// selected source, rank them, and assemble the timed response. All scoring
// is delegated to the pure similarity engine; this package owns the I/O.
package recommend

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/rs/zerolog"

	"tunematch/internal/models"
	"tunematch/internal/registry"
	"tunematch/internal/similarity"
	"tunematch/internal/source"
)

// Config bounds the pipeline's fan-out and thresholds.
type Config struct {
	// ReferenceLimit is the small per-source fan-out when resolving the
	// reference track.
	ReferenceLimit int
	// CandidateLimit is the per-source candidate batch size.
	CandidateLimit int
	// DefaultLimit caps results when the request does not set a limit.
	DefaultLimit int
	// MinSimilarity is the inclusive threshold for the discovery flow.
	MinSimilarity float64
	// CrossMatchMin is the stricter threshold for same-song linking.
	CrossMatchMin float64
	// CrossMatchLimit bounds the cross-platform match result set.
	CrossMatchLimit int
	// EnrichWorkers caps concurrent feature lookups per source.
	EnrichWorkers int
	// LinkConfidence is the whole-string verification score a top match
	// needs before its link is persisted.
	LinkConfidence float64
}

func DefaultConfig() Config {
	return Config{
		ReferenceLimit:  5,
		CandidateLimit:  50,
		DefaultLimit:    20,
		MinSimilarity:   0.05,
		CrossMatchMin:   0.6,
		CrossMatchLimit: 5,
		EnrichWorkers:   8,
		LinkConfidence:  0.85,
	}
}

// Service is stateless across requests; every entity it builds lives for one
// request only.
type Service struct {
	sources *source.Registry
	engine  *similarity.Engine
	links   *registry.Store
	verify  *metrics.JaroWinkler
	log     zerolog.Logger
	cfg     Config
}

// New wires the pipeline. links may be nil to run without persistence.
func New(sources *source.Registry, engine *similarity.Engine, links *registry.Store, log zerolog.Logger, cfg Config) *Service {
	return &Service{
		sources: sources,
		engine:  engine,
		links:   links,
		verify:  metrics.NewJaroWinkler(),
		log:     log,
		cfg:     cfg,
	}
}

// GetRecommendations runs the full pipeline. A source failing is a normal
// outcome that costs only that source's candidates; a query matching nothing
// anywhere yields an empty, well-formed response.
func (s *Service) GetRecommendations(ctx context.Context, req models.RecommendRequest) models.RecommendResponse {
	start := time.Now()
	resp := models.RecommendResponse{
		Results: []models.ScoredTrack{},
		Query:   req.Query,
	}

	reference, ok := s.findReference(ctx, req.Query)
	if !ok {
		resp.ProcessingTimeMs = time.Since(start).Milliseconds()
		return resp
	}

	candidates := s.gatherCandidates(ctx, req)

	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	resp.Results = s.engine.Rank(reference, candidates, similarity.RankConfig{
		Limit:         limit,
		MinSimilarity: s.cfg.MinSimilarity,
	})

	for _, c := range candidates {
		if c.ID != reference.ID {
			resp.TotalFound++
		}
	}

	resp.ProcessingTimeMs = time.Since(start).Milliseconds()
	return resp
}

// findReference resolves the comparison anchor: every source is searched
// concurrently with a small limit, and the first result from the
// earliest-registered source that produced anything wins, enriched with that
// source's features. Registration order encodes metadata richness.
func (s *Service) findReference(ctx context.Context, query string) (models.Track, bool) {
	adapters := s.sources.All()
	found := make([]*models.Track, len(adapters))

	var wg sync.WaitGroup
	for i, a := range adapters {
		wg.Add(1)
		go func(i int, a source.Adapter) {
			defer wg.Done()
			tracks, err := a.SearchTracks(ctx, query, s.cfg.ReferenceLimit)
			if err != nil {
				s.log.Warn().Err(err).Str("platform", string(a.Name())).Msg("reference search failed")
				return
			}
			if len(tracks) == 0 {
				return
			}
			t := tracks[0]
			if f, err := a.TrackFeatures(ctx, t.ID); err == nil {
				f.Apply(&t)
			}
			found[i] = &t
		}(i, a)
	}
	wg.Wait()

	for _, t := range found {
		if t != nil {
			return *t, true
		}
	}
	return models.Track{}, false
}

// gatherCandidates fetches a candidate batch from each source selected by
// the request filter, concurrently; each batch is feature-enriched with a
// bounded fan-out. A failed source contributes zero candidates.
func (s *Service) gatherCandidates(ctx context.Context, req models.RecommendRequest) []models.Track {
	adapters := s.sources.Filtered(req.Platform)
	batches := make([][]models.Track, len(adapters))

	var wg sync.WaitGroup
	for i, a := range adapters {
		wg.Add(1)
		go func(i int, a source.Adapter) {
			defer wg.Done()
			tracks, err := a.SearchTracks(ctx, req.Query, s.cfg.CandidateLimit)
			if err != nil {
				s.log.Warn().Err(err).Str("platform", string(a.Name())).Msg("candidate search failed")
				return
			}
			s.enrich(ctx, a, tracks)
			batches[i] = tracks
		}(i, a)
	}
	wg.Wait()

	var candidates []models.Track
	for _, batch := range batches {
		candidates = append(candidates, batch...)
	}
	return candidates
}

// enrich looks up features for every track in place. The semaphore keeps the
// fan-out from overwhelming a source; a failed lookup just leaves the track
// without features.
func (s *Service) enrich(ctx context.Context, a source.Adapter, tracks []models.Track) {
	sem := make(chan struct{}, s.cfg.EnrichWorkers)
	var wg sync.WaitGroup
	for i := range tracks {
		wg.Add(1)
		sem <- struct{}{}
		go func(t *models.Track) {
			defer wg.Done()
			defer func() { <-sem }()
			f, err := a.TrackFeatures(ctx, t.ID)
			if err != nil {
				s.log.Debug().Err(err).Str("id", t.ID).Msg("feature lookup failed")
				return
			}
			f.Apply(t)
		}(&tracks[i])
	}
	wg.Wait()
}

// Search runs a plain track search across the selected sources, without
// scoring. Results keep per-source order, sources in registration order.
func (s *Service) Search(ctx context.Context, req models.RecommendRequest) []models.Track {
	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	adapters := s.sources.Filtered(req.Platform)
	batches := make([][]models.Track, len(adapters))

	var wg sync.WaitGroup
	for i, a := range adapters {
		wg.Add(1)
		go func(i int, a source.Adapter) {
			defer wg.Done()
			tracks, err := a.SearchTracks(ctx, req.Query, limit)
			if err != nil {
				s.log.Warn().Err(err).Str("platform", string(a.Name())).Msg("search failed")
				return
			}
			batches[i] = tracks
		}(i, a)
	}
	wg.Wait()

	results := []models.Track{}
	for _, batch := range batches {
		results = append(results, batch...)
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// ResolveTrack fetches a single known track, feature-enriched.
func (s *Service) ResolveTrack(ctx context.Context, platform models.Platform, id string) (models.Track, error) {
	a, ok := s.sources.Get(platform)
	if !ok {
		return models.Track{}, &UnknownPlatformError{Platform: platform}
	}
	t, err := a.GetTrack(ctx, id)
	if err != nil {
		return models.Track{}, err
	}
	if f, err := a.TrackFeatures(ctx, t.ID); err == nil {
		f.Apply(&t)
	}
	return t, nil
}

// CrossPlatformMatches finds the same song on the other platform(s): a known
// link is served from the registry, otherwise the other platform is searched
// with "{artist} {title}" and ranked under the strict threshold. A new
// top match that survives whole-string verification is persisted.
func (s *Service) CrossPlatformMatches(ctx context.Context, track models.Track) ([]models.Track, error) {
	others := s.sources.Others(track.Platform)
	if len(others) == 0 {
		return nil, nil
	}

	if linked := s.lookupLink(track); linked != nil {
		return []models.Track{*linked}, nil
	}

	query := strings.TrimSpace(track.Artist + " " + track.Title)

	var candidates []models.Track
	for _, a := range others {
		tracks, err := a.SearchTracks(ctx, query, 10)
		if err != nil {
			s.log.Warn().Err(err).Str("platform", string(a.Name())).Msg("cross-platform search failed")
			continue
		}
		s.enrich(ctx, a, tracks)
		candidates = append(candidates, tracks...)
	}

	ranked := s.engine.Rank(track, candidates, similarity.RankConfig{
		Limit:         s.cfg.CrossMatchLimit,
		MinSimilarity: s.cfg.CrossMatchMin,
	})

	matches := make([]models.Track, 0, len(ranked))
	for _, r := range ranked {
		matches = append(matches, r.Track)
	}

	if len(matches) > 0 {
		s.saveLink(track, matches[0])
	}
	return matches, nil
}

// lookupLink consults the registry and resolves the linked track when one
// exists. Failures fall through to the search path.
func (s *Service) lookupLink(track models.Track) *models.Track {
	if s.links == nil {
		return nil
	}
	linkedID, err := s.links.Lookup(track.Platform, track.ID)
	if err != nil || linkedID == "" {
		return nil
	}

	other := otherPlatform(track.Platform)
	a, ok := s.sources.Get(other)
	if !ok {
		return nil
	}
	t, err := a.GetTrack(context.Background(), linkedID)
	if err != nil {
		s.log.Debug().Err(err).Str("id", linkedID).Msg("linked track lookup failed")
		return nil
	}
	return &t
}

// saveLink verifies the top match against the source track on the whole
// "artist title" string and persists it when confident enough.
func (s *Service) saveLink(track, match models.Track) {
	if s.links == nil {
		return
	}

	a := strings.ToLower(track.Artist + " " + track.Title)
	b := strings.ToLower(match.Artist + " " + match.Title)
	confidence := strutil.Similarity(a, b, s.verify)
	if confidence < s.cfg.LinkConfidence {
		return
	}

	link := registry.Link{Artist: track.Artist, Title: track.Title, Confidence: confidence}
	switch track.Platform {
	case models.PlatformSpotify:
		link.SpotifyID, link.YouTubeID = track.ID, match.ID
	case models.PlatformYouTube:
		link.SpotifyID, link.YouTubeID = match.ID, track.ID
	default:
		return
	}

	if err := s.links.Upsert(link); err != nil {
		s.log.Warn().Err(err).Msg("link upsert failed")
	}
}

// Status reports per-platform operability for the status endpoint.
func (s *Service) Status() map[models.Platform]models.PlatformStatus {
	status := make(map[models.Platform]models.PlatformStatus)
	for _, a := range s.sources.All() {
		status[a.Name()] = models.PlatformStatus{
			Configured: a.Configured(),
			Available:  true,
		}
	}
	return status
}

func otherPlatform(p models.Platform) models.Platform {
	if p == models.PlatformSpotify {
		return models.PlatformYouTube
	}
	return models.PlatformSpotify
}

// UnknownPlatformError marks a request naming a platform no adapter serves.
type UnknownPlatformError struct {
	Platform models.Platform
}

func (e *UnknownPlatformError) Error() string {
	return "unknown platform: " + string(e.Platform)
}
