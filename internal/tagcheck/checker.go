// Package tagcheck validates per-token language tags in an annotated
// corpus. It is lenient where the corpus reader is strict: problems are
// reported as findings and the pass always reaches end of input.
package tagcheck

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/codemix-nlp/codemix/internal/corpus"
)

type Kind string

const (
	// KindDecode marks a line with a token the splitter could not decode.
	KindDecode Kind = "decode"
	// KindBadTag marks a decoded tag outside the allowed vocabulary.
	KindBadTag Kind = "bad_tag"
)

// Finding is one diagnostic, attributed to the 1-based input line it
// came from. Detail holds the decode error message or the bad tag.
type Finding struct {
	Line   int    `json:"line"`
	Kind   Kind   `json:"kind"`
	Detail string `json:"detail"`
	Text   string `json:"text"`
}

// AllowedTags returns the tag vocabulary: e English, s Spanish, n neither.
func AllowedTags() map[string]struct{} {
	return map[string]struct{}{"e": {}, "s": {}, "n": {}}
}

// Checker validates token tags line by line. Zero fields fall back to
// corpus.SplitToken and AllowedTags, so New() gives the stock checker
// and tests can inject fakes.
type Checker struct {
	Split   corpus.SplitFunc
	Allowed map[string]struct{}
}

func New() *Checker {
	return &Checker{Split: corpus.SplitToken, Allowed: AllowedTags()}
}

// Run streams in line by line and calls emit for every finding, in input
// order. A decode failure yields a single finding and skips tag checks
// for the rest of that line. Reaching end of input is success whether or
// not findings were emitted; only the read itself can fail.
func (c *Checker) Run(in io.Reader, emit func(Finding)) error {
	split := c.Split
	if split == nil {
		split = corpus.SplitToken
	}
	allowed := c.Allowed
	if allowed == nil {
		allowed = AllowedTags()
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), corpus.MaxLineBytes)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		var tags []string
		decoded := true
		for _, tok := range strings.Fields(line) {
			_, tag, err := split(tok)
			if err != nil {
				emit(Finding{Line: lineno, Kind: KindDecode, Detail: err.Error(), Text: line})
				decoded = false
				break
			}
			tags = append(tags, tag)
		}
		if !decoded {
			continue
		}
		for _, tag := range tags {
			if _, ok := allowed[tag]; !ok {
				emit(Finding{Line: lineno, Kind: KindBadTag, Detail: tag, Text: line})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// Check runs the validation pass and collects the findings.
func (c *Checker) Check(in io.Reader) ([]Finding, error) {
	var findings []Finding
	if err := c.Run(in, func(f Finding) {
		findings = append(findings, f)
	}); err != nil {
		return nil, err
	}
	return findings, nil
}
