// Package hmm estimates initial and transition probabilities for a
// tag-level hidden Markov model from an annotated corpus, the classic
// starting point for code-switch decoding.
package hmm

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/codemix-nlp/codemix/models"
)

// Default state inventory: English and Spanish carry sequence
// information, everything tagged neither is skipped.
var (
	DefaultStates     = []string{"e", "s"}
	DefaultSkipStates = []string{"n"}
)

const probSumTolerance = 1e-9

// StateProbabilities holds maximum-likelihood estimates. Initial[i] is
// the probability of starting in States[i]; Transition[i][j] the
// probability of moving from States[i] to States[j].
type StateProbabilities struct {
	States     []string
	Initial    []float64
	Transition [][]float64
}

// Estimate counts state initials and transitions over seqs. Tags listed
// in skip are ignored, with transitions bridging across them, so
// "e n s" counts one e to s transition. Any other tag outside states is
// an error. When emissions is non-nil it accumulates lowercased token
// counts per state.
func Estimate(seqs []models.Sequence, states, skip []string, emissions map[string]*TokenCounts) (*StateProbabilities, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("no states given")
	}
	index := make(map[string]int, len(states))
	for i, s := range states {
		if _, dup := index[s]; dup {
			return nil, fmt.Errorf("duplicate state %q", s)
		}
		index[s] = i
	}
	skipSet := make(map[string]struct{}, len(skip))
	for _, s := range skip {
		skipSet[s] = struct{}{}
	}

	initCounts := make([]int, len(states))
	fromCounts := make([]int, len(states))
	transCounts := make([][]int, len(states))
	for i := range transCounts {
		transCounts[i] = make([]int, len(states))
	}

	initTotal := 0
	for _, seq := range seqs {
		first := true
		last := -1
		for _, tt := range seq {
			if _, ok := skipSet[tt.Tag]; ok {
				continue
			}
			cur, ok := index[tt.Tag]
			if !ok {
				return nil, fmt.Errorf("tag %q is neither a state nor skipped", tt.Tag)
			}
			if first {
				initCounts[cur]++
				initTotal++
				first = false
			} else {
				transCounts[last][cur]++
				fromCounts[last]++
			}
			last = cur

			if emissions != nil {
				tc := emissions[tt.Tag]
				if tc == nil {
					tc = NewTokenCounts()
					emissions[tt.Tag] = tc
				}
				tc.Increment(strings.ToLower(tt.Token), 1)
			}
		}
	}
	if initTotal == 0 {
		return nil, fmt.Errorf("training corpus has no tokens in the state set")
	}

	sp := &StateProbabilities{
		States:     append([]string(nil), states...),
		Initial:    make([]float64, len(states)),
		Transition: make([][]float64, len(states)),
	}
	for i, state := range states {
		if fromCounts[i] == 0 {
			return nil, fmt.Errorf("state %q has no outgoing transitions in training", state)
		}
		sp.Initial[i] = float64(initCounts[i]) / float64(initTotal)
		sp.Transition[i] = make([]float64, len(states))
		for j := range states {
			sp.Transition[i][j] = float64(transCounts[i][j]) / float64(fromCounts[i])
		}
	}

	piSum := 0.0
	for i := range states {
		piSum += sp.Initial[i]
		rowSum := 0.0
		for j := range states {
			rowSum += sp.Transition[i][j]
		}
		if math.Abs(rowSum-1) > probSumTolerance {
			return nil, fmt.Errorf("transitions out of state %q do not sum to one", states[i])
		}
	}
	if math.Abs(piSum-1) > probSumTolerance {
		return nil, fmt.Errorf("initial state probabilities do not sum to one")
	}
	return sp, nil
}

// WriteText prints the estimates in a readable report.
func (sp *StateProbabilities) WriteText(w io.Writer) {
	fmt.Fprintln(w, "Initial probabilities:")
	for i, state := range sp.States {
		fmt.Fprintf(w, "%s: %.4f\n", state, sp.Initial[i])
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Transition probabilities:")
	for i, from := range sp.States {
		for j, to := range sp.States {
			fmt.Fprintf(w, "%s -> %s: %.4f\n", from, to, sp.Transition[i][j])
		}
	}
}
