package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/codemix-nlp/codemix/models"
)

// MaxLineBytes caps the length of a single corpus line.
const MaxLineBytes = 1 << 20

// Line is one non-empty corpus line with its decoded token sequence.
type Line struct {
	No  int
	Raw string
	Seq models.Sequence
}

// Reader decodes annotated corpora strictly: any token that fails to
// split aborts the read. Use tagcheck for the lenient, report-and-continue
// pass.
type Reader struct {
	Split        SplitFunc
	DropTags     map[string]struct{}
	NormalizeNFC bool
}

func NewReader() *Reader {
	return &Reader{Split: SplitToken}
}

// ReadLines decodes every non-empty line of in. Line numbers are 1-based
// over the raw input, counting the empty lines it skips.
func (r *Reader) ReadLines(in io.Reader) ([]Line, error) {
	split := r.Split
	if split == nil {
		split = SplitToken
	}

	var lines []Line
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	lineno := 0
	for scanner.Scan() {
		lineno++
		raw := scanner.Text()
		if r.NormalizeNFC {
			raw = norm.NFC.String(raw)
		}
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		seq := make(models.Sequence, 0, len(fields))
		for _, tok := range fields {
			surface, tag, err := split(tok)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			if _, drop := r.DropTags[tag]; drop {
				continue
			}
			seq = append(seq, models.TokenTag{Token: surface, Tag: tag})
		}
		if len(seq) == 0 {
			continue
		}
		lines = append(lines, Line{No: lineno, Raw: raw, Seq: seq})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	return lines, nil
}

// ReadAll decodes in and returns just the token sequences.
func (r *Reader) ReadAll(in io.Reader) ([]models.Sequence, error) {
	lines, err := r.ReadLines(in)
	if err != nil {
		return nil, err
	}
	seqs := make([]models.Sequence, len(lines))
	for i, l := range lines {
		seqs[i] = l.Seq
	}
	return seqs, nil
}

func (r *Reader) ReadFile(path string) ([]models.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer f.Close()
	return r.ReadAll(f)
}
