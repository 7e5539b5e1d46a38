package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/ifcampus/meal-gateway/pkg/errors"
)

// stubCacheRepo is an in-memory CacheRepository shared by the service tests.
type stubCacheRepo struct {
	mu       sync.Mutex
	data     map[string][]byte
	ttls     map[string]time.Duration
	patterns []string
	getErr   error
	setErr   error
}

func newStubCacheRepo() *stubCacheRepo {
	return &stubCacheRepo{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return s.getErr
	}
	raw, ok := s.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	s.ttls[key] = ttl
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns = append(s.patterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			delete(s.data, key)
		}
	}
	return nil
}

func (s *stubCacheRepo) seed(t *testing.T, key string, value interface{}) {
	t.Helper()
	require.NoError(t, s.Set(context.Background(), key, value, time.Minute))
}

func newTestCacheService(repo *stubCacheRepo) *CacheService {
	return NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
}

func TestCacheServiceGetMissThenHit(t *testing.T) {
	repo := newStubCacheRepo()
	svc := newTestCacheService(repo)
	ctx := context.Background()

	var out string
	hit, err := svc.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(ctx, "k", "value", time.Minute))

	hit, err = svc.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "value", out)
}

func TestCacheServiceDisabledIsNoop(t *testing.T) {
	repo := newStubCacheRepo()
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), false)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "k", "value", time.Minute))

	var out string
	hit, err := svc.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, repo.data)
}

func TestCacheServiceDefaultTTL(t *testing.T) {
	repo := newStubCacheRepo()
	svc := NewCacheService(repo, nil, 10*time.Minute, zap.NewNop(), true)

	require.NoError(t, svc.Set(context.Background(), "k", 1, 0))
	assert.Equal(t, 10*time.Minute, repo.ttls["k"])
}

func TestCacheServiceInvalidate(t *testing.T) {
	repo := newStubCacheRepo()
	svc := newTestCacheService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "menus:7:2026-09-01", 1, time.Minute))
	require.NoError(t, svc.Set(ctx, "menus:8:2026-09-01", 1, time.Minute))

	require.NoError(t, svc.Invalidate(ctx, "menus:7:*"))
	assert.Equal(t, []string{"menus:7:*"}, repo.patterns)

	var out int
	hit, err := svc.Get(ctx, "menus:7:2026-09-01", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = svc.Get(ctx, "menus:8:2026-09-01", &out)
	require.NoError(t, err)
	assert.True(t, hit)
}
