// Package registry persists confirmed cross-platform track links
// (spotify_id <-> youtube_id) so repeat lookups skip the search-and-verify
// round trip. It stores identity links only, never similarity scores.
package registry

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"tunematch/internal/models"
)

//go:embed schema.sql
var schema string

// Link records that two platform ids refer to the same song, with the
// verification confidence of the match that established it.
type Link struct {
	SpotifyID  string
	YouTubeID  string
	Artist     string
	Title      string
	Confidence float64
}

type Store struct {
	db *sql.DB
}

// Open creates or opens the registry database at path. WAL keeps concurrent
// link writes from blocking lookups on the request path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("registry pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("registry schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Upsert inserts or refreshes a link. COALESCE keeps existing ids when a new
// row only knows one side.
func (s *Store) Upsert(l Link) error {
	if s == nil {
		return nil
	}
	const q = `
	INSERT INTO track_links (spotify_id, youtube_id, artist, title, confidence, last_updated)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(spotify_id, youtube_id) DO UPDATE SET
		artist       = COALESCE(NULLIF(excluded.artist, ''), track_links.artist),
		title        = COALESCE(NULLIF(excluded.title, ''), track_links.title),
		confidence   = MAX(excluded.confidence, track_links.confidence),
		last_updated = CURRENT_TIMESTAMP;`

	_, err := s.db.Exec(q, l.SpotifyID, l.YouTubeID, l.Artist, l.Title, l.Confidence)
	return err
}

// Lookup returns the linked id on the other platform, or "" when no link is
// known.
func (s *Store) Lookup(platform models.Platform, id string) (string, error) {
	if s == nil || id == "" {
		return "", nil
	}

	var query string
	switch platform {
	case models.PlatformSpotify:
		query = "SELECT youtube_id FROM track_links WHERE spotify_id = ? ORDER BY confidence DESC LIMIT 1"
	case models.PlatformYouTube:
		query = "SELECT spotify_id FROM track_links WHERE youtube_id = ? ORDER BY confidence DESC LIMIT 1"
	default:
		return "", fmt.Errorf("unsupported platform: %s", platform)
	}

	var linked sql.NullString
	err := s.db.QueryRow(query, id).Scan(&linked)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return linked.String, nil
}
