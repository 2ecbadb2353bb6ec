// Package server exposes the recommendation pipeline over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tunematch/internal/models"
	"tunematch/internal/recommend"
)

const maxLimit = 50

// Server holds the router and the pipeline it fronts.
type Server struct {
	svc *recommend.Service
	log zerolog.Logger
	mux *chi.Mux
}

func New(svc *recommend.Service, log zerolog.Logger) *Server {
	s := &Server{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/recommendations", s.handleRecommendations)
		r.Get("/search", s.handleSearch)
		r.Get("/status", s.handleStatus)
		r.Get("/tracks/{platform}/{id}/matches", s.handleMatches)
	})
	r.Get("/healthz", s.handleHealth)

	s.mux = r
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

// requestID tags every request with an id, honoring one supplied by the
// caller.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", ww.Header().Get("X-Request-ID")).
			Msg("request")
	})
}

// GET /api/v1/recommendations?query=...&platform=both&limit=20
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	req, err := parseRecommendRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := s.svc.GetRecommendations(r.Context(), req)
	s.writeJSON(w, http.StatusOK, resp)
}

// GET /api/v1/search?query=...&platform=both&limit=20
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := parseRecommendRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results := s.svc.Search(r.Context(), req)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"results":     results,
		"query":       req.Query,
		"total_found": len(results),
	})
}

// GET /api/v1/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"platforms": s.svc.Status(),
	})
}

// GET /api/v1/tracks/{platform}/{id}/matches
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	platform := models.Platform(chi.URLParam(r, "platform"))
	id := chi.URLParam(r, "id")

	track, err := s.svc.ResolveTrack(r.Context(), platform, id)
	if err != nil {
		var unknown *recommend.UnknownPlatformError
		if errors.As(err, &unknown) {
			s.writeError(w, http.StatusBadRequest, unknown.Error())
			return
		}
		s.writeError(w, http.StatusNotFound, "track not found")
		return
	}

	matches, err := s.svc.CrossPlatformMatches(r.Context(), track)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "cross-platform lookup failed")
		return
	}
	if matches == nil {
		matches = []models.Track{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"track":   track,
		"matches": matches,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseRecommendRequest(r *http.Request) (models.RecommendRequest, error) {
	q := r.URL.Query()

	query := strings.TrimSpace(q.Get("query"))
	if query == "" {
		return models.RecommendRequest{}, errors.New("query parameter is required")
	}

	platform := models.PlatformFilter(q.Get("platform"))
	switch platform {
	case "", models.FilterBoth, models.FilterSpotify, models.FilterYouTube:
	default:
		return models.RecommendRequest{}, errors.New("platform must be spotify, youtube, or both")
	}

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			return models.RecommendRequest{}, errors.New("limit must be an integer between 1 and 50")
		}
		limit = n
	}

	return models.RecommendRequest{Query: query, Platform: platform, Limit: limit}, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("response encode failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
