package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"alltagslabor/internal/config"
	"alltagslabor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLanguage(t *testing.T, code string) domain.Language {
	t.Helper()
	lang, ok := domain.LookupLanguage(code)
	require.True(t, ok)
	return lang
}

func TestHTTPSource_Fetch(t *testing.T) {
	var gotPath, gotRef, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRef = r.URL.Query().Get("ref_type")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"title":"Mechanik 1: Hebel"}]`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/", time.Second)
	data, err := src.Fetch(context.Background(), mustLanguage(t, "en"))

	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"Mechanik 1: Hebel"}]`, string(data))
	assert.Equal(t, "/_experiments_eng.json", gotPath)
	assert.Equal(t, "heads", gotRef)
	assert.Equal(t, userAgent, gotAgent)
}

func TestHTTPSource_FetchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, time.Second)
	_, err := src.Fetch(context.Background(), mustLanguage(t, "de"))
	assert.ErrorContains(t, err, "404")
}

func TestHTTPSource_FetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPSource(srv.URL, time.Second).Fetch(ctx, mustLanguage(t, "de"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPSource_FetchOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"title":"Mechanik 1: Hebel"}]`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, time.Second)
	src.maxBody = 8
	_, err := src.Fetch(context.Background(), mustLanguage(t, "de"))
	assert.ErrorContains(t, err, "_experiments_de.json exceeds 8 bytes")

	src.maxBody = int64(len(`[{"title":"Mechanik 1: Hebel"}]`))
	data, err := src.Fetch(context.Background(), mustLanguage(t, "de"))
	require.NoError(t, err)
	assert.Len(t, data, int(src.maxBody))
}

func TestHTTPSource_FetchFile(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("Verantwortlich: Alltagslabor"))
	}))
	defer srv.Close()

	data, err := NewHTTPSource(srv.URL, time.Second).FetchFile(context.Background(), domain.ResourceImpressum.File)
	require.NoError(t, err)
	assert.Equal(t, "Verantwortlich: Alltagslabor", string(data))
	assert.Equal(t, "/impressum.txt", gotPath)
}

func TestHTTPSource_URLFor(t *testing.T) {
	src := NewHTTPSource("https://example.org/raw/main/", 0)
	assert.Equal(t, "https://example.org/raw/main/_experiments_uk.json?ref_type=heads", src.URLFor(mustLanguage(t, "uk")))
}

func TestDirSource_Fetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "_experiments_fr.json"), []byte(`[]`), 0o644))

	src := NewDirSource(dir)
	data, err := src.Fetch(context.Background(), mustLanguage(t, "fr"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = src.Fetch(context.Background(), mustLanguage(t, "ru"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDirSource_FetchFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subjects.json"), []byte(`{"Sachsen":["Physik"]}`), 0o644))
	src := NewDirSource(dir)

	data, err := src.FetchFile(context.Background(), domain.ResourceSubjects.File)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Sachsen":["Physik"]}`, string(data))

	_, err = src.FetchFile(context.Background(), "../subjects.json")
	assert.ErrorContains(t, err, "invalid file name")
	_, err = src.FetchFile(context.Background(), domain.ResourceSchoolTypes.File)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcher_ReportsLanguageOfChangedFile(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan domain.Language, 4)

	w := NewWatcher(dir, 20*time.Millisecond, func(lang domain.Language) {
		changed <- lang
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	assert.ErrorIs(t, w.Start(ctx), ErrWatcherStarted)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "_experiments_de.json"), []byte(`[]`), 0o644))

	select {
	case lang := <-changed:
		assert.Equal(t, domain.LanguageCode("de"), lang.Code)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestFromConfig(t *testing.T) {
	src, err := FromConfig(config.CatalogConfig{Source: config.SourceHTTP, DataBaseURL: "https://example.org/data"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPSource{}, src)

	src, err = FromConfig(config.CatalogConfig{Source: config.SourceDir, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &DirSource{}, src)

	_, err = FromConfig(config.CatalogConfig{Source: "ftp"})
	assert.Error(t, err)
}
