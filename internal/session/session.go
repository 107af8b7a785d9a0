// Package session keeps track of logged-in listeners.
//
// A session lives server-side (Redis, or memory in tests and as a fallback)
// under an opaque random token. The browser only holds the token and its
// HMAC signature in a cookie, so a guessed or edited cookie never resolves.
//
// Sessions expire 24h after they were issued. Expiry is checked lazily when a
// session is read; there is no background sweep.
package session

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned by stores when no session exists for a token.
var ErrNotFound = errors.New("session not found")

// Session is an authenticated listener.
type Session struct {
	Token    string
	Login    string
	Username string
	Email    string
	IssuedAt time.Time
}

// Expired reports whether the session is at least ttl old at now.
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.IssuedAt) >= ttl
}

// Store persists sessions by token.
type Store interface {
	Save(ctx context.Context, s *Session) error
	// Get returns ErrNotFound when the token is unknown.
	Get(ctx context.Context, token string) (*Session, error)
	// Delete is a no-op for unknown tokens.
	Delete(ctx context.Context, token string) error
}

// Manager issues, resolves and revokes sessions.
type Manager struct {
	store  Store
	ttl    time.Duration
	secret []byte
	now    func() time.Time
}

// NewManager builds a Manager. secret signs cookie values.
func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{
		store:  store,
		ttl:    ttl,
		secret: []byte(secret),
		now:    time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// TTL is the lifetime of a session.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create stores a fresh session for the user and returns it together with
// the signed cookie value.
func (m *Manager) Create(ctx context.Context, login, email string) (*Session, string, error) {
	token, err := newToken()
	if err != nil {
		return nil, "", err
	}

	s := &Session{
		Token:    token,
		Login:    login,
		Username: login,
		Email:    email,
		IssuedAt: m.now(),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, "", fmt.Errorf("save session: %w", err)
	}

	return s, m.sign(token), nil
}

// Resolve maps a cookie value to a live session.
//
// A nil session with a nil error means anonymous: empty value, bad
// signature, unknown token or an expired session (which is deleted).
func (m *Manager) Resolve(ctx context.Context, cookieValue string) (*Session, error) {
	token, ok := m.verify(cookieValue)
	if !ok {
		return nil, nil
	}

	s, err := m.store.Get(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if s.Expired(m.now(), m.ttl) {
		if err := m.store.Delete(ctx, token); err != nil {
			return nil, fmt.Errorf("delete expired session: %w", err)
		}
		return nil, nil
	}

	return s, nil
}

// Destroy revokes the session behind cookieValue, if any.
func (m *Manager) Destroy(ctx context.Context, cookieValue string) error {
	token, ok := m.verify(cookieValue)
	if !ok {
		return nil
	}
	return m.store.Delete(ctx, token)
}

// sign returns "token.signature".
func (m *Manager) sign(token string) string {
	return token + "." + m.mac(token)
}

// verify splits a cookie value and checks its signature in constant time.
func (m *Manager) verify(value string) (string, bool) {
	token, sig, found := strings.Cut(value, ".")
	if !found || token == "" || sig == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(m.mac(token))) {
		return "", false
	}
	return token, true
}

func (m *Manager) mac(token string) string {
	h := hmac.New(sha256.New, m.secret)
	h.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// newToken returns 32 random bytes, hex encoded.
func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
