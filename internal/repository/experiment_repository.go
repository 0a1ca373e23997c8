package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"alltagslabor/internal/cache"
	"alltagslabor/internal/catalog"
	"alltagslabor/internal/domain"
	"alltagslabor/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultCatalogTTL = time.Hour

// ExperimentRepository defines the interface for reading experiment catalogs.
type ExperimentRepository interface {
	// Get returns the current snapshot of lang, loading it on first use.
	Get(ctx context.Context, lang domain.Language) (*catalog.Dataset, error)
	// Load fetches lang again and swaps the snapshot. On failure the
	// previous snapshot stays in place.
	Load(ctx context.Context, lang domain.Language) (*catalog.Dataset, error)
	// Refresh is Load without the cached JSON: it always asks the source
	// and overwrites the cache on success. On failure the previous snapshot
	// and cache entry stay in place.
	Refresh(ctx context.Context, lang domain.Language) (*catalog.Dataset, error)
}

// experimentRepository keeps one immutable dataset per language.
type experimentRepository struct {
	source   domain.CatalogSource
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time

	sf       singleflight.Group
	mu       sync.RWMutex
	datasets map[domain.LanguageCode]*catalog.Dataset
}

// NewExperimentRepository creates a repository reading from source. cache
// may be nil.
func NewExperimentRepository(source domain.CatalogSource, c domain.Cache, cacheTTL time.Duration) ExperimentRepository {
	if cacheTTL <= 0 {
		cacheTTL = defaultCatalogTTL
	}
	return &experimentRepository{
		source:   source,
		cache:    c,
		cacheTTL: cacheTTL,
		now:      time.Now,
		datasets: make(map[domain.LanguageCode]*catalog.Dataset),
	}
}

func (r *experimentRepository) Get(ctx context.Context, lang domain.Language) (*catalog.Dataset, error) {
	if ds := r.snapshot(lang.Code); ds != nil {
		return ds, nil
	}
	return r.Load(ctx, lang)
}

func (r *experimentRepository) Load(ctx context.Context, lang domain.Language) (*catalog.Dataset, error) {
	return r.load(ctx, lang, true)
}

func (r *experimentRepository) Refresh(ctx context.Context, lang domain.Language) (*catalog.Dataset, error) {
	return r.load(ctx, lang, false)
}

// load shares one fetch per language among concurrent callers. The fetch
// outlives a cancelled caller so the others still get its result; each
// caller stops waiting when its own ctx is done.
func (r *experimentRepository) load(ctx context.Context, lang domain.Language, useCache bool) (*catalog.Dataset, error) {
	key := string(lang.Code)
	if !useCache {
		key = "refresh:" + key
	}
	fetchCtx := context.WithoutCancel(ctx)

	ch := r.sf.DoChan(key, func() (interface{}, error) {
		experiments, err := r.loadExperiments(fetchCtx, lang, useCache)
		if err != nil {
			return nil, err
		}
		ds := catalog.NewDataset(lang, experiments, r.now())

		r.mu.Lock()
		r.datasets[lang.Code] = ds
		r.mu.Unlock()

		logger.Get().Info("Catalog loaded",
			zap.String("language", string(lang.Code)),
			zap.Bool("from_source_only", !useCache),
			zap.Int("experiments", len(ds.All)),
			zap.Int("visible", len(ds.Visible)))
		return ds, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, domain.NewFetchFailedError(lang.Code, ctx.Err())
	case res = <-ch:
	}

	if res.Err != nil {
		logger.Get().Error("Failed to load catalog",
			zap.String("language", string(lang.Code)),
			zap.Bool("previous_kept", r.snapshot(lang.Code) != nil),
			zap.Error(res.Err))
		return nil, domain.NewFetchFailedError(lang.Code, res.Err)
	}

	ds, ok := res.Val.(*catalog.Dataset)
	if !ok {
		return nil, domain.NewInternalError(fmt.Sprintf("unexpected type from singleflight for catalog: %T", res.Val), nil)
	}
	return ds, nil
}

func (r *experimentRepository) snapshot(code domain.LanguageCode) *catalog.Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.datasets[code]
}

// loadExperiments prefers the cached raw JSON, when useCache is set, and
// falls back to the source.
func (r *experimentRepository) loadExperiments(ctx context.Context, lang domain.Language, useCache bool) ([]domain.Experiment, error) {
	key := cache.CatalogKey(string(lang.Code))

	if r.cache != nil && useCache {
		raw, err := r.cache.Get(ctx, key)
		switch {
		case err == nil:
			experiments, decodeErr := catalog.DecodeExperiments([]byte(raw))
			if decodeErr == nil {
				logger.Get().Debug("Catalog cache hit", zap.String("key", key))
				return experiments, nil
			}
			logger.Get().Warn("Discarding undecodable cached catalog", zap.String("key", key), zap.Error(decodeErr))
		case errors.Is(err, domain.ErrCacheMiss):
			logger.Get().Debug("Catalog cache miss", zap.String("key", key))
		default:
			logger.Get().Warn("Failed to read catalog cache", zap.String("key", key), zap.Error(err))
		}
	}

	raw, err := r.source.Fetch(ctx, lang)
	if err != nil {
		return nil, err
	}
	experiments, err := catalog.DecodeExperiments(raw)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, string(raw), r.cacheTTL); err != nil {
			logger.Get().Warn("Failed to cache catalog", zap.String("key", key), zap.Error(err))
		}
	}
	return experiments, nil
}
