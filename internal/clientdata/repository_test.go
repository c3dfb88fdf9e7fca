package clientdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/advisor/internal/database"
)

type samplePayload struct {
	Price  float64 `msgpack:"price"`
	Volume int64   `msgpack:"volume"`
}

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    "file:clientdata_test?mode=memory&cache=shared",
		Profile: database.ProfileCache,
		Name:    "cache-test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db.Conn())
	require.NoError(t, repo.InitSchema())
	return repo
}

func TestStoreAndGetIfFresh(t *testing.T) {
	repo := newTestRepo(t)

	stored := samplePayload{Price: 182.5, Volume: 1200000}
	require.NoError(t, repo.Store(NamespaceQuote, "AAPL", stored, time.Minute))

	var got samplePayload
	found, err := repo.GetIfFresh(NamespaceQuote, "AAPL", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, stored, got)
}

func TestGetIfFresh_MissingKey(t *testing.T) {
	repo := newTestRepo(t)

	var got samplePayload
	found, err := repo.GetIfFresh(NamespaceQuote, "MISSING", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetStale_ReturnsExpiredEntry(t *testing.T) {
	repo := newTestRepo(t)

	stored := samplePayload{Price: 99.0, Volume: 5000}
	// Negative TTL: the entry is already expired when written.
	require.NoError(t, repo.Store(NamespaceQuote, "MSFT", stored, -time.Minute))

	var got samplePayload
	found, err := repo.GetIfFresh(NamespaceQuote, "MSFT", &got)
	require.NoError(t, err)
	assert.False(t, found, "expired entry must not be served as fresh")

	found, err = repo.GetStale(NamespaceQuote, "MSFT", &got)
	require.NoError(t, err)
	assert.True(t, found, "expired entry must still be available as stale fallback")
	assert.Equal(t, stored, got)
}

func TestStore_Upserts(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Store(NamespaceQuote, "GOOG", samplePayload{Price: 1}, time.Minute))
	require.NoError(t, repo.Store(NamespaceQuote, "GOOG", samplePayload{Price: 2}, time.Minute))

	var got samplePayload
	found, err := repo.GetIfFresh(NamespaceQuote, "GOOG", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2.0, got.Price)
}

func TestPurgeExpired(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Store(NamespaceQuote, "OLD", samplePayload{}, -2*time.Hour))
	require.NoError(t, repo.Store(NamespaceQuote, "FRESH", samplePayload{}, time.Hour))

	purged, err := repo.PurgeExpired(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var got samplePayload
	found, err := repo.GetStale(NamespaceQuote, "FRESH", &got)
	require.NoError(t, err)
	assert.True(t, found)
}
