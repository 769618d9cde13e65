package database

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
	"github.com/ceylontrails/travelmatch/internal/domain/providers"
	"github.com/ceylontrails/travelmatch/internal/domain/repositories"
)

type memoryCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	setKeys []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.setKeys = append(c.setKeys, key)
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) DeletePattern(context.Context, string) error { return nil }

func (c *memoryCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

type countingGuideRepo struct {
	calls  int
	guides []*entities.Guide
	err    error
}

func (r *countingGuideRepo) ListCandidates(context.Context, repositories.CandidateFilter) ([]*entities.Guide, error) {
	r.calls++
	return r.guides, r.err
}

func TestCachedGuideAdapter_ServesSecondCallFromCache(t *testing.T) {
	rating := 4.2
	repo := &countingGuideRepo{guides: []*entities.Guide{{
		ID: "g1", Name: "Kumari", Languages: []string{"English"}, Price: 4000, Rating: &rating,
		Available: true, Origin: entities.OriginLive,
	}}}
	cache := newMemoryCache()
	adapter := NewCachedGuideAdapter(repo, cache, 60, nil)
	filter := repositories.CandidateFilter{BudgetMin: 2000, BudgetMax: 20000, City: "Kandy"}

	first, err := adapter.ListCandidates(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	require.Eventually(t, func() bool { return cache.size() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"candidates:guides:2000:20000:kandy"}, cache.setKeys)

	second, err := adapter.ListCandidates(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, first, second)
}

func TestCachedGuideAdapter_CacheErrorFallsThrough(t *testing.T) {
	repo := &countingGuideRepo{guides: []*entities.Guide{{ID: "g1"}}}
	cache := newMemoryCache()
	cache.getErr = errors.New("redis down")
	adapter := NewCachedGuideAdapter(repo, cache, 60, nil)

	got, err := adapter.ListCandidates(context.Background(), repositories.CandidateFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, repo.calls)
}

func TestCachedGuideAdapter_PropagatesStoreError(t *testing.T) {
	repo := &countingGuideRepo{err: errors.New("db down")}
	adapter := NewCachedGuideAdapter(repo, newMemoryCache(), 60, nil)

	_, err := adapter.ListCandidates(context.Background(), repositories.CandidateFilter{})
	assert.Error(t, err)
}

func TestCandidateCacheKey(t *testing.T) {
	key := candidateCacheKey(AccommodationCacheNamespace, repositories.CandidateFilter{BudgetMin: 1000.5, BudgetMax: 50000, City: " Galle "})
	assert.Equal(t, "candidates:accommodations:1000.5:50000:galle", key)
	assert.Equal(t, "candidates:guides:*", CandidateCachePattern(GuideCacheNamespace))
}
