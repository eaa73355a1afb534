// Package session stores rendered word-cloud state for HTTP clients.
//
// A session is one rendered-state cell: the layout a client currently shows.
// Each new text submitted to a session is diffed against that layout, and
// the new layout replaces it wholesale. Sessions expire after a period of
// inactivity and are never written to disk.
//
// Two backends implement [Store]:
//   - [MemoryStore]: in-process map for single-instance servers and tests
//   - [RedisStore]: Redis-backed storage for multi-instance deployments
//
// # Usage
//
//	store := session.NewMemoryStore()
//	sess := session.New(session.DefaultTTL)
//	_ = store.Set(ctx, sess)
//
//	sess, err := store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    // not found or expired
//	}
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/animate"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/layout"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("session not found")

// DefaultTTL is the default idle lifetime of a session.
const DefaultTTL = 30 * time.Minute

// Session is one client's rendered state.
type Session struct {
	ID        string       `json:"id"`
	Layout    cloud.Layout `json:"layout"`
	Revision  int          `json:"revision"`
	TTL       Duration     `json:"ttl"`
	ExpiresAt time.Time    `json:"expires_at"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Duration is a time.Duration that encodes as a Go duration string.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) { return []byte(time.Duration(d).String()), nil }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// New creates an empty session with a random UUID.
func New(ttl time.Duration) *Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Layout:    cloud.Export(layout.Layout{Params: layout.DefaultParams()}),
		TTL:       Duration(ttl),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// State returns the rendered state held by the session.
func (s *Session) State() animate.State { return s.Layout.State() }

// Replace installs a new rendered layout, bumps the revision and extends the
// expiry.
func (s *Session) Replace(l layout.Layout) {
	now := time.Now()
	s.Layout = cloud.Export(l)
	s.Revision++
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(time.Duration(s.TTL))
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session until its ExpiresAt.
	Set(ctx context.Context, s *Session) error

	// Delete removes a session. Deleting a missing session returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions (may be a no-op).
	Cleanup(ctx context.Context) error

	Close() error
}
