// Package cache persists fetched volume records in a local SQLite
// database so repeated lookups of the same volume skip the network.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/viper"
	_ "modernc.org/sqlite"
)

const (
	// DefaultTTL keeps successful lookups for 30 days. Bibliographic
	// records change rarely.
	DefaultTTL = 720 * time.Hour
	// NegativeTTL keeps "not found" results for 7 days only, in case the
	// volume appears later.
	NegativeTTL = 168 * time.Hour
)

// Entries carry their expiry, decided at write time, so a negative
// result and a real record can live in the same table with different
// lifetimes.
const schema = `
CREATE TABLE IF NOT EXISTS volumes (
	cache_key  TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	expires_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_volumes_expires_at ON volumes(expires_at);
`

// Store is a SQLite-backed cache of JSON-encoded volume records.
type Store struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

var (
	globalStore *Store
	globalOnce  sync.Once
)

// Shared returns the process-wide store, opening the database file named
// by the cache.dbfile setting on first use.
func Shared() (*Store, error) {
	var initErr error
	globalOnce.Do(func() {
		path := viper.GetString("cache.dbfile")
		if path == "" {
			path = "./cache.db"
		}
		globalStore, initErr = Open(path)
	})
	if initErr != nil {
		return nil, initErr
	}
	return globalStore, nil
}

// ResetShared closes the shared store so the next Shared call reopens
// it. Tests use this to point the store at a fresh database file.
func ResetShared() error {
	var closeErr error
	if globalStore != nil {
		closeErr = globalStore.Close()
	}
	globalStore = nil
	globalOnce = sync.Once{}
	return closeErr
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("connecting to cache database: %w", err), closeErr)
	}

	if _, err := db.Exec(schema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("creating cache schema: %w", err), closeErr)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the cached data for key and whether an unexpired entry
// exists.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	var expiresAt time.Time
	err := s.db.QueryRow(`SELECT data, expires_at FROM volumes WHERE cache_key = ?`, key).Scan(&data, &expiresAt)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying cache: %w", err)
	}

	if time.Now().UTC().After(expiresAt) {
		slog.Debug("Cache entry expired", "key", key)
		return "", false, nil
	}
	return data, true, nil
}

// Set stores data under key with the given lifetime, replacing any
// existing entry.
func (s *Store) Set(key, data string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := time.Now().UTC().Add(ttl)
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO volumes (cache_key, data, expires_at) VALUES (?, ?, ?)`,
		key, data, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Purge deletes every entry and returns the number removed.
func (s *Store) Purge() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`DELETE FROM volumes`)
	if err != nil {
		return 0, fmt.Errorf("purging cache: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	slog.Debug("Cache purged", "rows", rows)
	return rows, nil
}

// PurgeExpired deletes entries past their expiry and returns the number
// removed.
func (s *Store) PurgeExpired() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`DELETE FROM volumes WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purging expired cache entries: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows > 0 {
		slog.Info("Purged expired cache entries", "count", rows)
	}
	return rows, nil
}

// GetOrFetch returns the cached value for key, or calls fetch and caches
// the result with the configured TTL. The second return value reports
// whether the value came from cache. Fetch errors are returned as-is so
// callers can match sentinel errors.
func GetOrFetch[T any](key string, fetch func() (T, error)) (T, bool, error) {
	return GetOrFetchTTL(key, fetch, nil)
}

// GetOrFetchTTL is GetOrFetch with a per-result lifetime: ttlFor is
// called with the freshly fetched value to pick how long to keep it.
// Used for negative caching, where a "not found" marker gets a shorter
// lifetime than a real record.
func GetOrFetchTTL[T any](key string, fetch func() (T, error), ttlFor func(T) time.Duration) (T, bool, error) {
	var zero T

	store, err := Shared()
	if err != nil {
		// no cache is a degradation, not a failure
		slog.Warn("Cache unavailable, fetching directly", "error", err)
		value, fetchErr := fetch()
		return value, false, fetchErr
	}

	if cached, ok, err := store.Get(key); err == nil && ok {
		var value T
		if err := json.Unmarshal([]byte(cached), &value); err == nil {
			slog.Debug("Cache hit", "key", key)
			return value, true, nil
		}
		slog.Warn("Discarding unreadable cache entry", "key", key, "error", err)
	}

	slog.Debug("Cache miss", "key", key)
	value, err := fetch()
	if err != nil {
		return zero, false, err
	}

	ttl := configuredTTL()
	if ttlFor != nil {
		ttl = ttlFor(value)
	}

	if encoded, err := json.Marshal(value); err != nil {
		slog.Warn("Not caching unencodable value", "key", key, "error", err)
	} else if err := store.Set(key, string(encoded), ttl); err != nil {
		slog.Warn("Failed to write cache entry", "key", key, "error", err)
	}

	return value, false, nil
}

// NegativeTTLFor builds a TTL selector that keeps values isMiss reports
// as "not found" for NegativeTTL and everything else for the configured
// TTL.
func NegativeTTLFor[T any](isMiss func(T) bool) func(T) time.Duration {
	return func(value T) time.Duration {
		if isMiss(value) {
			return NegativeTTL
		}
		return configuredTTL()
	}
}

func configuredTTL() time.Duration {
	raw := viper.GetString("cache.ttl")
	if raw == "" {
		return DefaultTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("Invalid cache TTL, using default", "ttl", raw, "error", err)
		return DefaultTTL
	}
	return ttl
}
