package freq

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/codemix-nlp/codemix/internal/corpus"
)

// tagLanguage routes tagged tokens to the list they count toward.
// Tokens tagged n carry no language signal and are not counted.
var tagLanguage = map[string]string{
	"e": "en",
	"s": "es",
}

// stripMarks removes combining marks after NFD decomposition, turning
// "señor" into "senor" to match the diacritic-free wordlists.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeWord lowercases, strips diacritics and keeps only letters,
// digits and apostrophes. URLs and @mentions are rejected outright and a
// leading hashtag marker is dropped. The boolean is false when nothing
// countable remains.
func NormalizeWord(word string) (string, bool) {
	w := strings.ToLower(word)
	if strings.Contains(w, "://") || strings.HasPrefix(w, "www.") {
		return "", false
	}
	if strings.HasPrefix(w, "@") {
		return "", false
	}
	w = strings.TrimPrefix(w, "#")
	if cleaned, _, err := transform.String(stripMarks, w); err == nil {
		w = cleaned
	}

	var b strings.Builder
	for _, r := range w {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '\'' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return "", false
	}
	return out, true
}

// Options tunes one accumulation pass. The zero value splits with
// corpus.SplitToken and deduplicates nothing.
type Options struct {
	Split  corpus.SplitFunc
	Dedupe Deduper
}

// Accumulate streams an annotated corpus into counter, one list per
// language. Tokens that fail to decode, carry a non-language tag or
// normalize to nothing are skipped; duplicate lines are skipped when a
// Deduper is set. Returns how many tokens each list received.
func Accumulate(ctx context.Context, in io.Reader, counter Counter, opts Options) (map[string]int64, error) {
	split := opts.Split
	if split == nil {
		split = corpus.SplitToken
	}

	counted := make(map[string]int64)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), corpus.MaxLineBytes)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if opts.Dedupe != nil {
			seen, err := opts.Dedupe.Seen(line)
			if err != nil {
				return counted, fmt.Errorf("failed to dedupe line: %w", err)
			}
			if seen {
				continue
			}
		}
		for _, tok := range strings.Fields(line) {
			surface, tag, err := split(tok)
			if err != nil {
				continue
			}
			lang, ok := tagLanguage[tag]
			if !ok {
				continue
			}
			word, ok := NormalizeWord(surface)
			if !ok {
				continue
			}
			if err := counter.Add(ctx, lang, word, 1); err != nil {
				return counted, fmt.Errorf("failed to count %q: %w", word, err)
			}
			counted[lang]++
		}
	}
	if err := scanner.Err(); err != nil {
		return counted, fmt.Errorf("failed to read corpus: %w", err)
	}
	return counted, nil
}
