package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codemix-nlp/codemix/config"
	"github.com/codemix-nlp/codemix/internal/corpus"
	"github.com/codemix-nlp/codemix/internal/eval"
	"github.com/codemix-nlp/codemix/internal/freq"
	"github.com/codemix-nlp/codemix/internal/hmm"
	"github.com/codemix-nlp/codemix/internal/storage"
	"github.com/codemix-nlp/codemix/internal/tagcheck"
	"github.com/codemix-nlp/codemix/models"
	"github.com/codemix-nlp/codemix/pkg/api"
)

func main() {
	var (
		configFile = flag.String("config", "codemix.yaml", "Path to configuration file")
		mode       = flag.String("mode", "check", "Mode: check, eval, hmm, freq, wordlist, import or serve")
		input      = flag.String("input", "", "Path to the input corpus (default stdin)")
		gold       = flag.String("gold", "", "Path to the gold corpus for eval mode")
		pred       = flag.String("pred", "", "Path to the predicted corpus for eval mode")
		train      = flag.String("train", "", "Path to the training corpus (eval OOV stats, hmm mode)")
		name       = flag.String("name", "", "Run name when recording an eval")
		record     = flag.Bool("record", false, "Record the eval result in postgres")
		emissions  = flag.Int("emissions", 0, "Print the top N emissions per state after hmm training")
		useRedis   = flag.Bool("redis", false, "Accumulate counts in redis instead of memory")
		dedupe     = flag.Bool("dedupe", false, "Skip lines already counted (needs -redis)")
		fromStore  = flag.String("from-store", "", "Accumulate from a mongo corpus instead of a file (freq mode)")
		batch      = flag.Int("batch", 500, "Mongo batch size for -from-store")
		outDir     = flag.String("outdir", ".", "Directory for the .freq files written by freq mode")
		lang       = flag.String("lang", "", "Language list to read in wordlist mode (en or es)")
		top        = flag.Int("top", 0, "Cap the wordlist at the top N words (0 = all)")
		bandSize   = flag.Int("band-size", 0, "Split the wordlist into rank bands of this size (0 = flat)")
		hints      = flag.Bool("hints", false, "Print stem-grouped curation hints after the wordlist")
		save       = flag.Bool("save", false, "Save the wordlist to postgres")
		corpusName = flag.String("corpus", "", "Corpus name for import mode")
		addr       = flag.String("addr", "", "Listen address override for serve mode")
	)
	flag.Parse()
	log.SetPrefix("codemix: ")
	log.SetFlags(0)

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Printf("Failed to load configuration from %s: %v", *configFile, err)
		log.Println("Using default configuration...")
		cfg = config.GetDefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	switch *mode {
	case "check":
		in, err := openInput(*input)
		if err != nil {
			log.Fatalf("Failed to open input: %v", err)
		}
		defer in.Close()

		checker := tagcheck.New()
		if len(cfg.Check.AllowedTags) > 0 {
			checker.Allowed = tagSet(cfg.Check.AllowedTags)
		}

		bad := 0
		err = checker.Run(in, func(f tagcheck.Finding) {
			tagcheck.Report(os.Stdout, f)
			bad++
		})
		if err != nil {
			log.Fatalf("Check failed: %v", err)
		}
		if bad > 0 {
			log.Printf("Found %d tag problems", bad)
			os.Exit(1)
		}

	case "eval":
		if *gold == "" || *pred == "" {
			log.Fatal("eval mode needs -gold and -pred")
		}
		reader := newReader(cfg)
		goldSeqs, err := reader.ReadFile(*gold)
		if err != nil {
			log.Fatalf("Failed to read the gold corpus: %v", err)
		}
		predSeqs, err := reader.ReadFile(*pred)
		if err != nil {
			log.Fatalf("Failed to read the predicted corpus: %v", err)
		}
		var trainSeqs []models.Sequence
		if *train != "" {
			trainSeqs, err = reader.ReadFile(*train)
			if err != nil {
				log.Fatalf("Failed to read the training corpus: %v", err)
			}
		}

		res, err := eval.Evaluate(goldSeqs, predSeqs, trainSeqs)
		if err != nil {
			log.Fatalf("Evaluation failed: %v", err)
		}
		res.WriteText(os.Stdout)

		if *record {
			db, err := storage.NewDBConnection(&cfg.DB)
			if err != nil {
				log.Fatalf("Failed to connect to postgres: %v", err)
			}
			defer db.Close()
			if err := db.Init(); err != nil {
				log.Fatalf("Failed to init the postgres schema: %v", err)
			}

			runName := *name
			if runName == "" {
				runName = filepath.Base(*pred)
			}
			id, err := db.RecordEvalRun(runName, *gold, *pred, res)
			if err != nil {
				log.Fatalf("Failed to record the eval run: %v", err)
			}
			log.Printf("Recorded eval run %d (%s)", id, runName)
		}

	case "hmm":
		if *train == "" {
			log.Fatal("hmm mode needs -train")
		}
		reader := newReader(cfg)
		seqs, err := reader.ReadFile(*train)
		if err != nil {
			log.Fatalf("Failed to read the training corpus: %v", err)
		}

		var emitted map[string]*hmm.TokenCounts
		if *emissions > 0 {
			emitted = make(map[string]*hmm.TokenCounts)
		}

		probs, err := hmm.Estimate(seqs, cfg.HMM.States, cfg.HMM.SkipStates, emitted)
		if err != nil {
			log.Fatalf("Training failed: %v", err)
		}
		probs.WriteText(os.Stdout)

		if *emissions > 0 {
			for _, state := range probs.States {
				tc := emitted[state]
				if tc == nil {
					continue
				}
				fmt.Printf("\nTop emissions for %s:\n", state)
				for _, e := range tc.Top(*emissions) {
					fmt.Printf("%s %d\n", e.Token, e.Count)
				}
			}
		}

	case "freq":
		var in io.ReadCloser
		if *fromStore != "" {
			store, err := storage.NewCorpusStore(ctx, &cfg.Mongo)
			if err != nil {
				log.Fatalf("Failed to connect to mongo: %v", err)
			}
			defer store.Disconnect()
			in = corpusPipe(ctx, store, *fromStore, *batch)
		} else {
			var err error
			in, err = openInput(*input)
			if err != nil {
				log.Fatalf("Failed to open input: %v", err)
			}
		}
		defer in.Close()

		var counter freq.Counter
		if *useRedis {
			client, err := freq.NewRedisClient(ctx, &cfg.Redis)
			if err != nil {
				log.Fatalf("Failed to connect to redis: %v", err)
			}
			counter = freq.NewRedisCounter(client)
		} else {
			counter = freq.NewMemoryCounter()
		}
		defer counter.Close()

		opts := freq.Options{}
		if *dedupe {
			if !*useRedis {
				log.Fatal("-dedupe needs -redis")
			}
			dd, err := freq.NewLineDeduper(&cfg.Redis, cfg.Freq.DedupeFilter)
			if err != nil {
				log.Fatalf("Failed to set up the line filter: %v", err)
			}
			opts.Dedupe = dd
		}

		totals, err := freq.Accumulate(ctx, in, counter, opts)
		if err != nil {
			log.Fatalf("Failed to accumulate counts: %v", err)
		}
		for _, l := range []string{"en", "es"} {
			log.Printf("Counted %d %s tokens", totals[l], l)
		}

		if !*useRedis {
			for _, l := range []string{"en", "es"} {
				if totals[l] == 0 {
					continue
				}
				size, err := counter.Len(ctx, l)
				if err != nil {
					log.Fatalf("Failed to size the %s list: %v", l, err)
				}
				entries, err := counter.Top(ctx, l, size)
				if err != nil {
					log.Fatalf("Failed to read the %s list: %v", l, err)
				}
				entries = filterMin(entries, cfg.Freq.MinCount)

				path := filepath.Join(*outDir, l+".freq")
				f, err := os.Create(path)
				if err != nil {
					log.Fatalf("Failed to create %s: %v", path, err)
				}
				if err := freq.WriteList(f, entries); err != nil {
					f.Close()
					log.Fatalf("Failed to write %s: %v", path, err)
				}
				f.Close()
				log.Printf("Wrote %d words to %s", len(entries), path)
			}
		}

	case "wordlist":
		if *lang == "" {
			log.Fatal("wordlist mode needs -lang (en or es)")
		}
		client, err := freq.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		counter := freq.NewRedisCounter(client)
		defer counter.Close()

		n := int64(*top)
		if n <= 0 {
			n, err = counter.Len(ctx, *lang)
			if err != nil {
				log.Fatalf("Failed to size the %s list: %v", *lang, err)
			}
			if n == 0 {
				log.Fatalf("No counts stored for %s, run -mode freq -redis first", *lang)
			}
		}
		entries, err := counter.Top(ctx, *lang, n)
		if err != nil {
			log.Fatalf("Failed to read the %s list: %v", *lang, err)
		}
		entries = filterMin(entries, cfg.Freq.MinCount)

		if *bandSize > 0 {
			topBand, rest := freq.Bands(entries, *bandSize)
			fmt.Printf("# top %d\n", *bandSize)
			if err := freq.WriteList(os.Stdout, topBand); err != nil {
				log.Fatalf("Failed to write the wordlist: %v", err)
			}
			fmt.Printf("# rank %d+\n", *bandSize+1)
			if err := freq.WriteList(os.Stdout, rest); err != nil {
				log.Fatalf("Failed to write the wordlist: %v", err)
			}
		} else if err := freq.WriteList(os.Stdout, entries); err != nil {
			log.Fatalf("Failed to write the wordlist: %v", err)
		}
		if *hints {
			for _, h := range freq.CurationHints(entries) {
				fmt.Printf("# %s: %s\n", h.Stem, strings.Join(h.Words, " "))
			}
		}

		if *save {
			db, err := storage.NewDBConnection(&cfg.DB)
			if err != nil {
				log.Fatalf("Failed to connect to postgres: %v", err)
			}
			defer db.Close()
			if err := db.Init(); err != nil {
				log.Fatalf("Failed to init the postgres schema: %v", err)
			}
			if err := db.SaveWordlist(*lang, entries); err != nil {
				log.Fatalf("Failed to save the wordlist: %v", err)
			}
			log.Printf("Saved %d %s words to postgres", len(entries), *lang)
		}

	case "import":
		if *corpusName == "" {
			log.Fatal("import mode needs -corpus")
		}
		in, err := openInput(*input)
		if err != nil {
			log.Fatalf("Failed to open input: %v", err)
		}
		defer in.Close()

		reader := newReader(cfg)
		lines, err := reader.ReadLines(in)
		if err != nil {
			log.Fatalf("Failed to read the corpus: %v", err)
		}

		store, err := storage.NewCorpusStore(ctx, &cfg.Mongo)
		if err != nil {
			log.Fatalf("Failed to connect to mongo: %v", err)
		}
		defer store.Disconnect()

		stored := make([]models.StoredLine, len(lines))
		for i, l := range lines {
			stored[i] = models.StoredLine{LineNo: l.No, Raw: l.Raw, Tokens: l.Seq}
		}
		if err := store.SaveLines(ctx, *corpusName, stored); err != nil {
			log.Fatalf("Failed to save the corpus lines: %v", err)
		}

		total, err := store.CountLines(ctx, *corpusName)
		if err != nil {
			log.Printf("Imported %d lines", len(stored))
		} else {
			log.Printf("Imported %d lines, corpus %q now holds %d", len(stored), *corpusName, total)
		}

	case "serve":
		httpAddr := cfg.API.HTTPAddr
		if *addr != "" {
			httpAddr = *addr
		}

		var store api.WordlistStore
		db, err := storage.NewDBConnection(&cfg.DB)
		if err != nil {
			log.Printf("Postgres unavailable, serving static wordlists only: %v", err)
		} else {
			defer db.Close()
			if err := db.Init(); err != nil {
				log.Fatalf("Failed to init the postgres schema: %v", err)
			}
			store = db
		}

		app := fiber.New(fiber.Config{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		})
		api.New(store, cfg).RegisterRoutes(app)

		go func() {
			log.Printf("Starting the API on %s", httpAddr)
			if err := app.Listen(httpAddr); err != nil {
				log.Fatalf("Fiber app failed: %v", err)
			}
		}()

		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Fiber shutdown failed: %v", err)
		}
		log.Println("Server exited properly")

	default:
		log.Fatalf("Unknown mode: %s. Use check, eval, hmm, freq, wordlist, import or serve.", *mode)
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// corpusPipe streams a stored corpus out of mongo as plain text, one raw
// line per document, paging by ObjectID.
func corpusPipe(ctx context.Context, store *storage.CorpusStore, corpusName string, batchSize int) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		var lastID *primitive.ObjectID
		for {
			lines, next, err := store.GetBatch(ctx, corpusName, batchSize, lastID)
			if err != nil {
				pw.CloseWithError(err)
				return
			}
			if len(lines) == 0 {
				pw.Close()
				return
			}
			for _, l := range lines {
				if _, err := fmt.Fprintln(pw, l.Raw); err != nil {
					pw.CloseWithError(err)
					return
				}
			}
			lastID = next
		}
	}()
	return pr
}

func newReader(cfg *config.Config) *corpus.Reader {
	r := corpus.NewReader()
	r.NormalizeNFC = cfg.Corpus.NormalizeNFC
	if len(cfg.Corpus.DropTags) > 0 {
		r.DropTags = tagSet(cfg.Corpus.DropTags)
	}
	return r
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

func filterMin(entries []freq.Entry, min int64) []freq.Entry {
	if min <= 1 {
		return entries
	}
	kept := make([]freq.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Count >= min {
			kept = append(kept, e)
		}
	}
	return kept
}
