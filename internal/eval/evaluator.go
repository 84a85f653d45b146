// Package eval scores predicted tag sequences against gold annotations,
// with out-of-vocabulary breakdowns relative to a training corpus.
package eval

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/codemix-nlp/codemix/models"
)

// Result holds the counts and derived rates for one evaluation run.
// OOV fields are only populated when a training corpus was supplied,
// signalled by HasOOV.
type Result struct {
	Hits     int
	Misses   int
	Total    int
	Accuracy float64

	// SkippedLines are 1-based sequence numbers whose gold and predicted
	// token counts disagreed and were left out of the counts.
	SkippedLines []int

	HasOOV      bool
	OOV         int
	OOVHits     int
	OOVMisses   int
	OOVRate     float64
	OOVAccuracy float64

	LabelHits     map[string]int
	LabelMisses   map[string]int
	LabelCounts   map[string]int
	LabelAccuracy map[string]float64
}

// Labels returns every gold label seen, sorted.
func (r *Result) Labels() []string {
	labels := make([]string, 0, len(r.LabelCounts))
	for label := range r.LabelCounts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Evaluate compares pred against gold token by token. Both corpora must
// have the same number of sequences; sequences whose lengths disagree
// are skipped and recorded. Tags are compared exactly; tokens are
// lowercased on both sides of the vocabulary lookup. train may be nil
// when OOV numbers are not wanted.
func Evaluate(gold, pred, train []models.Sequence) (*Result, error) {
	if len(gold) != len(pred) {
		return nil, fmt.Errorf("gold and predicted corpora are not the same size (%d vs %d)",
			len(gold), len(pred))
	}

	res := &Result{
		HasOOV:      train != nil,
		LabelHits:   make(map[string]int),
		LabelMisses: make(map[string]int),
		LabelCounts: make(map[string]int),
	}

	vocab := make(map[string]struct{})
	for _, seq := range train {
		for _, tt := range seq {
			vocab[strings.ToLower(tt.Token)] = struct{}{}
		}
	}

	for i := range gold {
		goldSeq, predSeq := gold[i], pred[i]
		if len(goldSeq) != len(predSeq) {
			res.SkippedLines = append(res.SkippedLines, i+1)
			continue
		}
		for j := range goldSeq {
			g, p := goldSeq[j], predSeq[j]
			hit := g.Tag == p.Tag
			if hit {
				res.Hits++
				res.LabelHits[g.Tag]++
			} else {
				res.Misses++
				res.LabelMisses[g.Tag]++
			}
			if !res.HasOOV {
				continue
			}
			if _, known := vocab[strings.ToLower(g.Token)]; !known {
				res.OOV++
				if hit {
					res.OOVHits++
				} else {
					res.OOVMisses++
				}
			}
		}
	}

	res.Total = res.Hits + res.Misses
	if res.Total > 0 {
		res.Accuracy = float64(res.Hits) / float64(res.Total)
		res.OOVRate = float64(res.OOV) / float64(res.Total)
	}
	if res.OOV > 0 {
		res.OOVAccuracy = float64(res.OOVHits) / float64(res.OOV)
	}

	for label, n := range res.LabelHits {
		res.LabelCounts[label] = n
	}
	for label, n := range res.LabelMisses {
		res.LabelCounts[label] += n
	}
	res.LabelAccuracy = make(map[string]float64, len(res.LabelCounts))
	for label, count := range res.LabelCounts {
		res.LabelAccuracy[label] = float64(res.LabelHits[label]) / float64(count)
	}

	return res, nil
}

// WriteText prints the evaluation report with labels in sorted order.
func (r *Result) WriteText(w io.Writer) {
	fmt.Fprintf(w, "Accuracy: %.4f (%d/%d)\n", r.Accuracy, r.Hits, r.Total)
	if r.HasOOV {
		fmt.Fprintf(w, "OOV accuracy: %.4f (%d/%d)\n", r.OOVAccuracy, r.OOVHits, r.OOV)
		fmt.Fprintf(w, "OOV rate: %.4f (%d/%d)\n", r.OOVRate, r.OOV, r.Total)
	}
	fmt.Fprintln(w, "Class accuracies:")
	for _, label := range r.Labels() {
		fmt.Fprintf(w, "%s: %.4f\n", label, r.LabelAccuracy[label])
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Data balance:")
	for _, label := range r.Labels() {
		count := r.LabelCounts[label]
		var frac float64
		if r.Total > 0 {
			frac = float64(count) / float64(r.Total)
		}
		fmt.Fprintf(w, "%s: %.4f (%d/%d)\n", label, frac, count, r.Total)
	}
}
