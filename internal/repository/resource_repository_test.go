package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"alltagslabor/internal/cache"
	"alltagslabor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const subjectsJSON = `{"Sachsen":["Physik","Chemie"],"Bayern":["Physik"]}`

func TestResourceRepository_FetchesOnceWithoutCache(t *testing.T) {
	ctx := context.Background()
	src := new(MockCatalogSource)
	src.On("FetchFile", mock.Anything, "subjects.json").Return([]byte(subjectsJSON), nil).Once()

	repo := NewResourceRepository(src, nil, 0)
	first, err := repo.Get(ctx, domain.ResourceSubjects)
	require.NoError(t, err)
	assert.JSONEq(t, subjectsJSON, string(first))

	again, err := repo.Get(ctx, domain.ResourceSubjects)
	require.NoError(t, err)
	assert.Equal(t, first, again)
	src.AssertExpectations(t)
}

func TestResourceRepository_CacheHitSkipsSource(t *testing.T) {
	src := new(MockCatalogSource)
	c := new(MockCache)
	c.On("Get", mock.Anything, cache.ResourceKey("impressum")).Return("Alltagslabor\nMusterstraße 1", nil).Once()

	data, err := NewResourceRepository(src, c, time.Minute).Get(context.Background(), domain.ResourceImpressum)

	require.NoError(t, err)
	assert.Equal(t, "Alltagslabor\nMusterstraße 1", string(data))
	src.AssertNotCalled(t, "FetchFile", mock.Anything, mock.Anything)
	c.AssertExpectations(t)
}

func TestResourceRepository_CacheMissStoresContent(t *testing.T) {
	src := new(MockCatalogSource)
	c := new(MockCache)
	key := cache.ResourceKey("school-types")
	c.On("Get", mock.Anything, key).Return("", domain.ErrCacheMiss).Once()
	src.On("FetchFile", mock.Anything, "typeOfSchoole.json").Return([]byte(`["Gymnasium"]`), nil).Once()
	c.On("Set", mock.Anything, key, `["Gymnasium"]`, 2*time.Minute).Return(nil).Once()

	data, err := NewResourceRepository(src, c, 2*time.Minute).Get(context.Background(), domain.ResourceSchoolTypes)

	require.NoError(t, err)
	assert.JSONEq(t, `["Gymnasium"]`, string(data))
	src.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestResourceRepository_InvalidJSONIsFetchFailure(t *testing.T) {
	src := new(MockCatalogSource)
	src.On("FetchFile", mock.Anything, "subjects.json").Return([]byte(`{"Sachsen":`), nil).Once()
	src.On("FetchFile", mock.Anything, "subjects.json").Return([]byte(subjectsJSON), nil).Once()
	repo := NewResourceRepository(src, nil, 0)

	_, err := repo.Get(context.Background(), domain.ResourceSubjects)
	assert.True(t, domain.HasCode(err, domain.CodeFetchFailed))
	assert.ErrorContains(t, err, "subjects.json is not valid JSON")

	// Failures are not remembered.
	data, err := repo.Get(context.Background(), domain.ResourceSubjects)
	require.NoError(t, err)
	assert.JSONEq(t, subjectsJSON, string(data))
	src.AssertExpectations(t)
}

func TestResourceRepository_SourceError(t *testing.T) {
	src := new(MockCatalogSource)
	src.On("FetchFile", mock.Anything, "impressum.txt").Return(nil, errors.New("404")).Once()

	_, err := NewResourceRepository(src, nil, 0).Get(context.Background(), domain.ResourceImpressum)

	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeFetchFailed))
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "impressum", domainErr.Context["resource"])
}
