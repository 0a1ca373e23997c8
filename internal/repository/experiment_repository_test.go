package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"alltagslabor/internal/cache"
	"alltagslabor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogSource struct {
	mock.Mock
}

func (m *MockCatalogSource) Fetch(ctx context.Context, lang domain.Language) ([]byte, error) {
	args := m.Called(ctx, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCatalogSource) FetchFile(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

const sampleJSON = `[
  {"title":"Mechanik 1: Hebel","subject":"Physik","gradeLevel":"7","schoolType":"Gymnasium","steps":[{"type":"text","content":"Hebel"}],"extra":true},
  {"title":"__Vorlage","subject":"Chemie","gradeLevel":"9","schoolType":"Realschule"},
  {"title":"_Einführung","subject":"Physik","gradeLevel":"5"}
]`

func german(t *testing.T) domain.Language {
	t.Helper()
	lang, ok := domain.LookupLanguage("de")
	require.True(t, ok)
	return lang
}

func TestExperimentRepository_LoadFromSourceWithoutCache(t *testing.T) {
	ctx := context.Background()
	src := new(MockCatalogSource)
	src.On("Fetch", mock.Anything, german(t)).Return([]byte(sampleJSON), nil).Once()

	repo := NewExperimentRepository(src, nil, 0)
	ds, err := repo.Get(ctx, german(t))

	require.NoError(t, err)
	assert.Len(t, ds.All, 3)
	assert.Len(t, ds.Visible, 2)
	assert.Equal(t, []string{"Alle", "Physik"}, ds.Facets.Subjects)

	again, err := repo.Get(ctx, german(t))
	require.NoError(t, err)
	assert.Same(t, ds, again)
	src.AssertExpectations(t)
}

func TestExperimentRepository_CacheHitSkipsSource(t *testing.T) {
	ctx := context.Background()
	src := new(MockCatalogSource)
	c := new(MockCache)
	c.On("Get", mock.Anything, cache.CatalogKey("de")).Return(sampleJSON, nil).Once()

	repo := NewExperimentRepository(src, c, time.Minute)
	ds, err := repo.Load(ctx, german(t))

	require.NoError(t, err)
	assert.Len(t, ds.All, 3)
	src.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	c.AssertExpectations(t)
}

func TestExperimentRepository_CacheMissStoresRawJSON(t *testing.T) {
	ctx := context.Background()
	src := new(MockCatalogSource)
	c := new(MockCache)
	key := cache.CatalogKey("de")
	c.On("Get", mock.Anything, key).Return("", domain.ErrCacheMiss).Once()
	src.On("Fetch", mock.Anything, german(t)).Return([]byte(sampleJSON), nil).Once()
	c.On("Set", mock.Anything, key, sampleJSON, 5*time.Minute).Return(nil).Once()

	repo := NewExperimentRepository(src, c, 5*time.Minute)
	_, err := repo.Load(ctx, german(t))

	require.NoError(t, err)
	src.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestExperimentRepository_CacheFailuresAreIgnored(t *testing.T) {
	ctx := context.Background()
	src := new(MockCatalogSource)
	c := new(MockCache)
	key := cache.CatalogKey("de")
	c.On("Get", mock.Anything, key).Return("", errors.New("connection refused")).Once()
	src.On("Fetch", mock.Anything, german(t)).Return([]byte(sampleJSON), nil).Once()
	c.On("Set", mock.Anything, key, sampleJSON, time.Hour).Return(errors.New("connection refused")).Once()

	repo := NewExperimentRepository(src, c, 0)
	ds, err := repo.Load(ctx, german(t))

	require.NoError(t, err)
	assert.Len(t, ds.All, 3)
	c.AssertExpectations(t)
}

func TestExperimentRepository_FailedFetchKeepsPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	src := new(MockCatalogSource)
	src.On("Fetch", mock.Anything, german(t)).Return([]byte(sampleJSON), nil).Once()
	src.On("Fetch", mock.Anything, german(t)).Return(nil, errors.New("network down")).Once()

	repo := NewExperimentRepository(src, nil, 0)
	first, err := repo.Load(ctx, german(t))
	require.NoError(t, err)

	_, err = repo.Load(ctx, german(t))
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeFetchFailed))
	assert.ErrorContains(t, err, "network down")

	current, err := repo.Get(ctx, german(t))
	require.NoError(t, err)
	assert.Same(t, first, current)
	src.AssertExpectations(t)
}

func TestExperimentRepository_MalformedJSONIsFetchFailure(t *testing.T) {
	ctx := context.Background()
	src := new(MockCatalogSource)
	src.On("Fetch", mock.Anything, german(t)).Return([]byte(`{"title":`), nil).Once()

	_, err := NewExperimentRepository(src, nil, 0).Get(ctx, german(t))
	assert.True(t, domain.HasCode(err, domain.CodeFetchFailed))
}

func TestExperimentRepository_RefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	src := new(MockCatalogSource)
	c := new(MockCache)
	key := cache.CatalogKey("de")
	c.On("Get", mock.Anything, key).Return(sampleJSON, nil).Once()
	src.On("Fetch", mock.Anything, german(t)).Return([]byte(`[]`), nil).Once()
	c.On("Set", mock.Anything, key, `[]`, time.Hour).Return(nil).Once()

	repo := NewExperimentRepository(src, c, 0)
	first, err := repo.Get(ctx, german(t))
	require.NoError(t, err)
	assert.Len(t, first.All, 3)

	second, err := repo.Refresh(ctx, german(t))
	require.NoError(t, err)
	assert.Empty(t, second.All)

	current, err := repo.Get(ctx, german(t))
	require.NoError(t, err)
	assert.Same(t, second, current)
	src.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestExperimentRepository_FailedRefreshKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	src := new(MockCatalogSource)
	src.On("Fetch", mock.Anything, german(t)).Return([]byte(sampleJSON), nil).Once()
	src.On("Fetch", mock.Anything, german(t)).Return([]byte(`[{"title":`), nil).Once()

	repo := NewExperimentRepository(src, nil, 0)
	first, err := repo.Get(ctx, german(t))
	require.NoError(t, err)

	_, err = repo.Refresh(ctx, german(t))
	assert.True(t, domain.HasCode(err, domain.CodeFetchFailed))

	current, err := repo.Get(ctx, german(t))
	require.NoError(t, err)
	assert.Same(t, first, current)
	src.AssertExpectations(t)
}

type slowSource struct {
	calls   atomic.Int32
	release chan struct{}
}

func (s *slowSource) Fetch(ctx context.Context, lang domain.Language) ([]byte, error) {
	s.calls.Add(1)
	<-s.release
	return []byte(sampleJSON), nil
}

func (s *slowSource) FetchFile(ctx context.Context, name string) ([]byte, error) {
	return nil, errors.New("not supported")
}

func TestExperimentRepository_OneFetchInFlightPerLanguage(t *testing.T) {
	src := &slowSource{release: make(chan struct{})}
	repo := NewExperimentRepository(src, nil, 0)
	lang := german(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Load(context.Background(), lang)
			assert.NoError(t, err)
		}()
	}

	assert.Eventually(t, func() bool { return src.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
}

func TestExperimentRepository_CancelledCallerDoesNotFailOthers(t *testing.T) {
	src := &slowSource{release: make(chan struct{})}
	repo := NewExperimentRepository(src, nil, 0)
	lang := german(t)

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := repo.Load(first, lang)
		firstErr <- err
	}()
	assert.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	secondDone := make(chan error, 1)
	go func() {
		_, err := repo.Load(context.Background(), lang)
		secondDone <- err
	}()

	cancel()
	select {
	case err := <-firstErr:
		assert.True(t, domain.HasCode(err, domain.CodeFetchFailed))
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(src.release)
	select {
	case err := <-secondDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("second caller did not finish")
	}

	ds, err := repo.Get(context.Background(), lang)
	require.NoError(t, err)
	assert.Len(t, ds.All, 3)
}
