package freq

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/reiver/go-porterstemmer"
)

// Bands splits ranked entries into the top band and the rest, the same
// cut the static wordlists use between top32 and 32plus.
func Bands(entries []Entry, bandSize int) (top, rest []Entry) {
	if bandSize < 0 {
		bandSize = 0
	}
	if len(entries) <= bandSize {
		return entries, nil
	}
	return entries[:bandSize], entries[bandSize:]
}

// WriteList writes one "word count" line per entry in the given order.
func WriteList(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s %d\n", e.Word, e.Count); err != nil {
			return fmt.Errorf("failed to write wordlist: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write wordlist: %w", err)
	}
	return nil
}

// Hint flags candidate entries that likely inflect the same lemma, for
// a human pass over a generated list.
type Hint struct {
	Stem  string
	Words []string
}

// CurationHints groups entries sharing a porter stem. Only groups with
// two or more surface forms are reported, sorted by stem; words keep
// their rank order within a group.
func CurationHints(entries []Entry) []Hint {
	groups := make(map[string][]string)
	for _, e := range entries {
		stem := stemWord(e.Word)
		if stem == "" {
			continue
		}
		groups[stem] = append(groups[stem], e.Word)
	}
	var hints []Hint
	for stem, words := range groups {
		if len(words) < 2 {
			continue
		}
		hints = append(hints, Hint{Stem: stem, Words: words})
	}
	sort.Slice(hints, func(i, j int) bool { return hints[i].Stem < hints[j].Stem })
	return hints
}

func stemWord(word string) (stem string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("WARNING: Recovered from panic while stemming token '%s': %v", word, r)
			stem = ""
		}
	}()
	return porterstemmer.StemString(word)
}
