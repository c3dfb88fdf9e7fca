// Package clientdata provides persistent caching for external API client
// responses. Payloads are stored as msgpack blobs with expiration timestamps
// for cache-first behavior: fresh data is served from cache, stale data is
// kept around as a fallback for when the upstream API fails.
package clientdata

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Namespaces partition the cache by upstream endpoint.
const (
	NamespaceOverview  = "market_overview"
	NamespaceQuote     = "stock_quote"
	NamespaceSectors   = "sector_performance"
	NamespaceHistory   = "stock_history"
	NamespaceCrypto    = "crypto_prices"
	NamespaceBonds     = "bond_yields"
	NamespaceEconomics = "economic_indicators"
)

// Repository provides cache operations for client data.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new client data repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InitSchema creates the cache table if it does not exist.
func (r *Repository) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS client_cache (
		namespace   TEXT NOT NULL,
		key         TEXT NOT NULL,
		data        BLOB NOT NULL,
		expires_at  INTEGER NOT NULL,
		updated_at  INTEGER NOT NULL,
		PRIMARY KEY (namespace, key)
	);
	CREATE INDEX IF NOT EXISTS idx_client_cache_expiry ON client_cache(expires_at);
	`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create client_cache schema: %w", err)
	}
	return nil
}

// Store saves a value with expiration = now + ttl.
// Uses INSERT OR REPLACE to upsert data.
func (r *Repository) Store(namespace, key string, value interface{}, ttl time.Duration) error {
	payload, err := msgpack.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache payload: %w", err)
	}

	now := time.Now()
	_, err = r.db.Exec(
		"INSERT OR REPLACE INTO client_cache (namespace, key, data, expires_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		namespace, key, payload, now.Add(ttl).Unix(), now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store cache entry %s/%s: %w", namespace, key, err)
	}

	return nil
}

// GetIfFresh unmarshals the cached value into dest only if it has not
// expired. Returns false when the key is missing or stale; use GetStale to
// retrieve expired data as a fallback when API calls fail.
func (r *Repository) GetIfFresh(namespace, key string, dest interface{}) (bool, error) {
	return r.get(namespace, key, dest, true)
}

// GetStale unmarshals the cached value into dest regardless of expiration.
// Stale data beats no data when the upstream API is down.
func (r *Repository) GetStale(namespace, key string, dest interface{}) (bool, error) {
	return r.get(namespace, key, dest, false)
}

func (r *Repository) get(namespace, key string, dest interface{}, freshOnly bool) (bool, error) {
	query := "SELECT data FROM client_cache WHERE namespace = ? AND key = ?"
	args := []interface{}{namespace, key}
	if freshOnly {
		query += " AND expires_at > ?"
		args = append(args, time.Now().Unix())
	}

	var payload []byte
	err := r.db.QueryRow(query, args...).Scan(&payload)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry %s/%s: %w", namespace, key, err)
	}

	if err := msgpack.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache payload %s/%s: %w", namespace, key, err)
	}

	return true, nil
}

// PurgeExpired removes entries that expired more than the grace period ago.
// Recently-expired entries are kept so GetStale still has a fallback.
func (r *Repository) PurgeExpired(grace time.Duration) (int64, error) {
	cutoff := time.Now().Add(-grace).Unix()
	result, err := r.db.Exec("DELETE FROM client_cache WHERE expires_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired cache entries: %w", err)
	}
	return result.RowsAffected()
}
