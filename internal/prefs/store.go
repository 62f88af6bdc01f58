package prefs

import (
	"errors"
	"net/http"
	"time"
)

// Backend is the durable key-value storage a Store persists through. Reads and
// writes may fail (disabled cookies, proxy stripping); stores degrade to
// in-memory operation rather than surfacing those errors.
type Backend interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// ErrNoValue is returned by backends when no value exists under a key.
var ErrNoValue = errors.New("prefs: no stored value")

// Store is a named single-writer preference cell. It rehydrates from its
// backend on construction and writes through on every Set. A backend failure
// leaves the in-memory value authoritative for the rest of the request.
type Store struct {
	key      string
	fallback string
	valid    func(string) bool
	backend  Backend
	current  string
}

// NewStore rehydrates a store from backend under key. Unreadable or invalid
// stored values fail closed to fallback.
func NewStore(backend Backend, key, fallback string, valid func(string) bool) *Store {
	s := &Store{key: key, fallback: fallback, valid: valid, backend: backend, current: fallback}
	if backend == nil {
		return s
	}
	if v, err := backend.Get(key); err == nil && valid(v) {
		s.current = v
	}
	return s
}

// Current returns the active value.
func (s *Store) Current() string { return s.current }

// Set commits value in memory and writes through to the backend best-effort.
// Invalid values are ignored entirely, so consumers never observe a value
// outside the store's enum.
func (s *Store) Set(value string) {
	if !s.valid(value) {
		return
	}
	s.current = value
	if s.backend != nil {
		_ = s.backend.Set(s.key, value)
	}
}

// MemoryBackend is an in-process backend used by tests and as the degraded
// fallback when no durable storage is available.
type MemoryBackend struct {
	values map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: map[string]string{}}
}

func (m *MemoryBackend) Get(key string) (string, error) {
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", ErrNoValue
}

func (m *MemoryBackend) Set(key, value string) error {
	m.values[key] = value
	return nil
}

// CookieBackend persists preferences as plain per-key cookies on the current
// request/response pair. Values are readable by the client so the theme
// anti-flash script can consult them before first paint.
type CookieBackend struct {
	r      *http.Request
	w      http.ResponseWriter
	secure bool
	maxAge time.Duration
}

const defaultCookieAge = 365 * 24 * time.Hour

func NewCookieBackend(w http.ResponseWriter, r *http.Request, secure bool) *CookieBackend {
	return &CookieBackend{r: r, w: w, secure: secure, maxAge: defaultCookieAge}
}

func (c *CookieBackend) Get(key string) (string, error) {
	ck, err := c.r.Cookie(key)
	if err != nil || ck.Value == "" {
		return "", ErrNoValue
	}
	return ck.Value, nil
}

func (c *CookieBackend) Set(key, value string) error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.maxAge / time.Second),
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		HttpOnly: false,
	})
	return nil
}
