// Package api exposes the tag checker and wordlists over HTTP.
package api

import (
	"bytes"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/codemix-nlp/codemix/config"
	"github.com/codemix-nlp/codemix/internal/freq"
	"github.com/codemix-nlp/codemix/internal/lid"
	"github.com/codemix-nlp/codemix/internal/storage"
	"github.com/codemix-nlp/codemix/internal/tagcheck"
)

const (
	defaultCacheSize = 16
	defaultCacheTTL  = 5 * time.Minute
)

// WordlistStore is the slice of the storage layer the API reads from.
type WordlistStore interface {
	LoadWordlist(lang string, limit int) ([]freq.Entry, error)
	ListEvalRuns(limit int) ([]storage.EvalRun, error)
}

type API struct {
	checker  *tagcheck.Checker
	store    WordlistStore
	cache    *ListCache
	bandSize int
}

// New builds the API. store may be nil, which disables the endpoints
// backed by postgres.
func New(store WordlistStore, cfg *config.Config) *API {
	a := &API{
		checker:  tagcheck.New(),
		store:    store,
		cache:    NewListCache(defaultCacheSize, defaultCacheTTL),
		bandSize: lid.TopBandSize,
	}
	if cfg != nil && cfg.Freq.BandSize > 0 {
		a.bandSize = cfg.Freq.BandSize
	}
	if cfg != nil && cfg.API.WarmCache && store != nil {
		a.warmCache()
	}
	return a
}

func (a *API) warmCache() {
	for _, lang := range []string{"en", "es"} {
		entries, err := a.store.LoadWordlist(lang, 0)
		if err != nil {
			log.Printf("cache warmup skipped for %s: %v", lang, err)
			continue
		}
		a.cache.Put(lang, entries)
	}
}

func (a *API) RegisterRoutes(app *fiber.App) {
	app.Post("/check", a.checkHandler)
	app.Get("/wordlists/:lang", a.wordlistHandler)
	app.Get("/evals", a.evalsHandler)
}

func (a *API) checkHandler(c *fiber.Ctx) error {
	findings, err := a.checker.Check(bytes.NewReader(c.Body()))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Check failed: " + err.Error(),
		})
	}
	if findings == nil {
		findings = []tagcheck.Finding{}
	}
	return c.JSON(fiber.Map{
		"clean":    len(findings) == 0,
		"count":    len(findings),
		"findings": findings,
	})
}

func (a *API) wordlistHandler(c *fiber.Ctx) error {
	lang := c.Params("lang")
	band := c.Query("band", "all")
	source := c.Query("source", "static")

	switch source {
	case "static":
		return a.staticWordlist(c, lang, band)
	case "store":
		return a.storedWordlist(c, lang, band)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown source: " + source,
		})
	}
}

func (a *API) staticWordlist(c *fiber.Ctx, lang, band string) error {
	top, rest, ok := lid.ByLanguage(lang)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unknown language: " + lang,
		})
	}

	var words []string
	switch band {
	case "top32":
		words = top.Words()
	case "rest":
		words = rest.Words()
	case "all":
		words = append(top.Words(), rest.Words()...)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown band: " + band,
		})
	}

	return c.JSON(fiber.Map{
		"language": lang,
		"band":     band,
		"source":   "static",
		"count":    len(words),
		"words":    words,
	})
}

func (a *API) storedWordlist(c *fiber.Ctx, lang, band string) error {
	if a.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "No wordlist store configured",
		})
	}

	entries, err := a.cache.GetOrLoad(lang, func() ([]freq.Entry, error) {
		return a.store.LoadWordlist(lang, 0)
	})
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No stored wordlist for: " + lang,
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Wordlist load failed: " + err.Error(),
		})
	}

	top, rest := freq.Bands(entries, a.bandSize)
	var selected []freq.Entry
	switch band {
	case "top32":
		selected = top
	case "rest":
		selected = rest
	case "all":
		selected = entries
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown band: " + band,
		})
	}
	if selected == nil {
		selected = []freq.Entry{}
	}

	return c.JSON(fiber.Map{
		"language": lang,
		"band":     band,
		"source":   "store",
		"count":    len(selected),
		"entries":  selected,
	})
}

func (a *API) evalsHandler(c *fiber.Ctx) error {
	if a.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "No eval store configured",
		})
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	runs, err := a.store.ListEvalRuns(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Eval list failed: " + err.Error(),
		})
	}
	if runs == nil {
		runs = []storage.EvalRun{}
	}
	return c.JSON(fiber.Map{
		"count": len(runs),
		"runs":  runs,
	})
}
