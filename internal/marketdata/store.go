package marketdata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/thdms4101-lab/Open-API-COSPI/internal/market"
	"github.com/thdms4101-lab/Open-API-COSPI/pkg/redis"
)

// Batch is one cached retrieval of the whole universe. The source label
// travels with the data so cached reads keep the live/fallback tag.
type Batch struct {
	Source    market.Source     `json:"source"`
	Snapshots []market.Snapshot `json:"snapshots"`
}

// SnapshotStore is the time-bounded cache behind UniverseSnapshots.
// Entries are immutable once written; Flush drops everything at once.
type SnapshotStore interface {
	Get(ctx context.Context, key string) (Batch, bool)
	Set(ctx context.Context, key string, batch Batch, ttl time.Duration)
	Flush(ctx context.Context)
}

// snapshotKey derives the cache key from the call's input parameters.
// Only (credentials-present, useLive) matter, so the key space is fixed.
func snapshotKey(credsPresent, useLive bool) string {
	return fmt.Sprintf("universe:creds=%t:live=%t", credsPresent, useLive)
}

// allSnapshotKeys enumerates the whole key space, used by Flush on
// backends without prefix scans.
func allSnapshotKeys() []string {
	return []string{
		snapshotKey(false, false),
		snapshotKey(false, true),
		snapshotKey(true, false),
		snapshotKey(true, true),
	}
}

// ============================================================
// In-memory store
// ============================================================

type memoryEntry struct {
	batch     Batch
	expiresAt time.Time
}

// MemoryStore is the default process-local snapshot store. The clock is
// injectable so tests control expiry deterministically.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an in-memory store using the wall clock
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock creates an in-memory store with a custom clock
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) (Batch, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return Batch{}, false
	}

	if !m.now().Before(entry.expiresAt) {
		// Passive expiry: drop on read
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return Batch{}, false
	}

	return entry.batch, true
}

func (m *MemoryStore) Set(_ context.Context, key string, batch Batch, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{
		batch:     batch,
		expiresAt: m.now().Add(ttl),
	}
}

func (m *MemoryStore) Flush(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memoryEntry)
}

// ============================================================
// Redis-backed store
// ============================================================

// RedisStore shares the snapshot cache across processes via Redis.
// Read or write failures degrade to cache misses, never to errors.
type RedisStore struct {
	cache *redis.Cache
}

// NewRedisStore creates a Redis-backed snapshot store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		cache: redis.NewCache(client, "kospi"),
	}
}

func (r *RedisStore) Get(ctx context.Context, key string) (Batch, bool) {
	var batch Batch
	found, err := r.cache.Get(ctx, key, &batch)
	if err != nil || !found {
		return Batch{}, false
	}
	return batch, true
}

func (r *RedisStore) Set(ctx context.Context, key string, batch Batch, ttl time.Duration) {
	_ = r.cache.Set(ctx, key, batch, ttl)
}

func (r *RedisStore) Flush(ctx context.Context) {
	for _, key := range allSnapshotKeys() {
		_ = r.cache.Delete(ctx, key)
	}
}
