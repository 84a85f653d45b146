package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemix-nlp/codemix/config"
	"github.com/codemix-nlp/codemix/internal/freq"
	"github.com/codemix-nlp/codemix/internal/storage"
)

type fakeStore struct {
	entries map[string][]freq.Entry
	runs    []storage.EvalRun
	loads   int
	err     error
}

func (f *fakeStore) LoadWordlist(lang string, limit int) ([]freq.Entry, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.entries[lang]
	if !ok {
		return nil, fmt.Errorf("wordlist %q: %w", lang, storage.ErrNotFound)
	}
	if limit > 0 && len(e) > limit {
		e = e[:limit]
	}
	return e, nil
}

func (f *fakeStore) ListEvalRuns(limit int) ([]storage.EvalRun, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.runs) {
		return f.runs[:limit], nil
	}
	return f.runs, nil
}

func newTestApp(store WordlistStore) *fiber.App {
	app := fiber.New()
	New(store, nil).RegisterRoutes(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func TestCheckEndpoint(t *testing.T) {
	app := newTestApp(nil)

	t.Run("should report a clean corpus", func(t *testing.T) {
		status, body := doRequest(t, app, "POST", "/check", "the/e dog/e\nhola/s\n")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, true, body["clean"])
		assert.EqualValues(t, 0, body["count"])
		assert.Empty(t, body["findings"])
	})

	t.Run("should return findings with line attribution", func(t *testing.T) {
		status, body := doRequest(t, app, "POST", "/check", "ok/e\nbad/x\n")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, false, body["clean"])
		assert.EqualValues(t, 1, body["count"])

		findings, ok := body["findings"].([]any)
		require.True(t, ok)
		require.Len(t, findings, 1)
		f := findings[0].(map[string]any)
		assert.EqualValues(t, 2, f["line"])
		assert.Equal(t, "bad_tag", f["kind"])
		assert.Equal(t, "x", f["detail"])
	})

	t.Run("should handle an empty body", func(t *testing.T) {
		status, body := doRequest(t, app, "POST", "/check", "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, true, body["clean"])
	})
}

func TestStaticWordlistEndpoint(t *testing.T) {
	app := newTestApp(nil)

	t.Run("should serve the full spanish list by default", func(t *testing.T) {
		status, body := doRequest(t, app, "GET", "/wordlists/es", "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.EqualValues(t, 250, body["count"])

		words := body["words"].([]any)
		assert.Equal(t, "de", words[0])
	})

	t.Run("should serve the top32 band", func(t *testing.T) {
		status, body := doRequest(t, app, "GET", "/wordlists/en?band=top32", "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.EqualValues(t, 32, body["count"])

		words := body["words"].([]any)
		assert.Equal(t, "the", words[0])
	})

	t.Run("should serve the rest band", func(t *testing.T) {
		status, body := doRequest(t, app, "GET", "/wordlists/en?band=rest", "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.EqualValues(t, 218, body["count"])

		words := body["words"].([]any)
		assert.Equal(t, "if", words[0])
	})

	t.Run("should 404 an unknown language", func(t *testing.T) {
		status, body := doRequest(t, app, "GET", "/wordlists/fr", "")
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Contains(t, body["error"], "Unknown language")
	})

	t.Run("should 400 an unknown band", func(t *testing.T) {
		status, _ := doRequest(t, app, "GET", "/wordlists/es?band=bogus", "")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("should 400 an unknown source", func(t *testing.T) {
		status, _ := doRequest(t, app, "GET", "/wordlists/es?source=bogus", "")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}

func storedEntries(n int) []freq.Entry {
	entries := make([]freq.Entry, n)
	for i := range entries {
		entries[i] = freq.Entry{Word: fmt.Sprintf("w%03d", i), Count: int64(n - i)}
	}
	return entries
}

func TestStoredWordlistEndpoint(t *testing.T) {
	t.Run("should split stored entries into bands", func(t *testing.T) {
		store := &fakeStore{entries: map[string][]freq.Entry{"es": storedEntries(40)}}
		app := newTestApp(store)

		status, body := doRequest(t, app, "GET", "/wordlists/es?source=store&band=top32", "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.EqualValues(t, 32, body["count"])

		status, body = doRequest(t, app, "GET", "/wordlists/es?source=store&band=rest", "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.EqualValues(t, 8, body["count"])

		status, body = doRequest(t, app, "GET", "/wordlists/es?source=store", "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.EqualValues(t, 40, body["count"])
	})

	t.Run("should serve repeated reads from the cache", func(t *testing.T) {
		store := &fakeStore{entries: map[string][]freq.Entry{"en": storedEntries(5)}}
		app := newTestApp(store)

		doRequest(t, app, "GET", "/wordlists/en?source=store", "")
		doRequest(t, app, "GET", "/wordlists/en?source=store&band=top32", "")
		assert.Equal(t, 1, store.loads)
	})

	t.Run("should 404 when nothing is stored for the language", func(t *testing.T) {
		app := newTestApp(&fakeStore{entries: map[string][]freq.Entry{}})
		status, body := doRequest(t, app, "GET", "/wordlists/es?source=store", "")
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Contains(t, body["error"], "No stored wordlist")
	})

	t.Run("should 503 without a store", func(t *testing.T) {
		app := newTestApp(nil)
		status, _ := doRequest(t, app, "GET", "/wordlists/es?source=store", "")
		assert.Equal(t, fiber.StatusServiceUnavailable, status)
	})

	t.Run("should 500 on store failures", func(t *testing.T) {
		app := newTestApp(&fakeStore{err: fmt.Errorf("pg down")})
		status, body := doRequest(t, app, "GET", "/wordlists/es?source=store", "")
		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Contains(t, body["error"], "pg down")
	})
}

func TestEvalsEndpoint(t *testing.T) {
	t.Run("should list recorded runs", func(t *testing.T) {
		store := &fakeStore{runs: []storage.EvalRun{
			{ID: 2, Name: "hmm-v2", Accuracy: 0.91},
			{ID: 1, Name: "hmm-v1", Accuracy: 0.88},
		}}
		app := newTestApp(store)

		status, body := doRequest(t, app, "GET", "/evals", "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.EqualValues(t, 2, body["count"])

		runs := body["runs"].([]any)
		first := runs[0].(map[string]any)
		assert.Equal(t, "hmm-v2", first["name"])
	})

	t.Run("should apply the limit parameter", func(t *testing.T) {
		store := &fakeStore{runs: []storage.EvalRun{{ID: 2}, {ID: 1}}}
		app := newTestApp(store)

		status, body := doRequest(t, app, "GET", "/evals?limit=1", "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.EqualValues(t, 1, body["count"])
	})

	t.Run("should 503 without a store", func(t *testing.T) {
		app := newTestApp(nil)
		status, _ := doRequest(t, app, "GET", "/evals", "")
		assert.Equal(t, fiber.StatusServiceUnavailable, status)
	})
}

func warmConfig() *config.Config {
	cfg := config.GetDefaultConfig()
	cfg.API.WarmCache = true
	return cfg
}

func TestWarmCache(t *testing.T) {
	t.Run("should preload both languages when enabled", func(t *testing.T) {
		store := &fakeStore{entries: map[string][]freq.Entry{
			"en": storedEntries(3),
			"es": storedEntries(3),
		}}
		New(store, warmConfig())
		assert.Equal(t, 2, store.loads)
	})

	t.Run("should survive warmup misses", func(t *testing.T) {
		store := &fakeStore{entries: map[string][]freq.Entry{}}
		a := New(store, warmConfig())
		assert.NotNil(t, a)
		assert.Zero(t, a.cache.Size())
	})
}
