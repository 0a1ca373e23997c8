package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"alltagslabor/internal/cache"
	"alltagslabor/internal/domain"
	"alltagslabor/internal/logger"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ResourceRepository reads the auxiliary files published next to the
// datasets: subject and school type lists and the impressum.
type ResourceRepository interface {
	// Get returns the raw content of res. A successful read is kept for the
	// lifetime of the process.
	Get(ctx context.Context, res domain.Resource) ([]byte, error)
}

type resourceRepository struct {
	source   domain.CatalogSource
	cache    domain.Cache
	cacheTTL time.Duration

	sf    singleflight.Group
	mu    sync.RWMutex
	files map[string][]byte
}

// NewResourceRepository creates a repository reading from source. cache may
// be nil.
func NewResourceRepository(source domain.CatalogSource, c domain.Cache, cacheTTL time.Duration) ResourceRepository {
	if cacheTTL <= 0 {
		cacheTTL = defaultCatalogTTL
	}
	return &resourceRepository{
		source:   source,
		cache:    c,
		cacheTTL: cacheTTL,
		files:    make(map[string][]byte),
	}
}

func (r *resourceRepository) Get(ctx context.Context, res domain.Resource) ([]byte, error) {
	r.mu.RLock()
	data, ok := r.files[res.Name]
	r.mu.RUnlock()
	if ok {
		return data, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := r.sf.DoChan(res.Name, func() (interface{}, error) {
		data, err := r.load(fetchCtx, res)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.files[res.Name] = data
		r.mu.Unlock()
		return data, nil
	})

	var result singleflight.Result
	select {
	case <-ctx.Done():
		return nil, domain.NewResourceFetchFailedError(res, ctx.Err())
	case result = <-ch:
	}
	if result.Err != nil {
		logger.Get().Error("Failed to load resource", zap.String("resource", res.Name), zap.Error(result.Err))
		return nil, domain.NewResourceFetchFailedError(res, result.Err)
	}

	data, ok = result.Val.([]byte)
	if !ok {
		return nil, domain.NewInternalError(fmt.Sprintf("unexpected type from singleflight for resource: %T", result.Val), nil)
	}
	return data, nil
}

// load prefers the cached content and falls back to the source.
func (r *resourceRepository) load(ctx context.Context, res domain.Resource) ([]byte, error) {
	key := cache.ResourceKey(res.Name)

	if r.cache != nil {
		raw, err := r.cache.Get(ctx, key)
		switch {
		case err == nil:
			if !res.JSON || json.Valid([]byte(raw)) {
				logger.Get().Debug("Resource cache hit", zap.String("key", key))
				return []byte(raw), nil
			}
			logger.Get().Warn("Discarding invalid cached resource", zap.String("key", key))
		case errors.Is(err, domain.ErrCacheMiss):
			logger.Get().Debug("Resource cache miss", zap.String("key", key))
		default:
			logger.Get().Warn("Failed to read resource cache", zap.String("key", key), zap.Error(err))
		}
	}

	data, err := r.source.FetchFile(ctx, res.File)
	if err != nil {
		return nil, err
	}
	if res.JSON && !json.Valid(data) {
		return nil, fmt.Errorf("%s is not valid JSON", res.File)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, string(data), r.cacheTTL); err != nil {
			logger.Get().Warn("Failed to cache resource", zap.String("key", key), zap.Error(err))
		}
	}
	return data, nil
}
