package hmm

import "sort"

// TokenCounts tallies the tokens emitted by one state.
type TokenCounts struct {
	counts map[string]int
	total  int
}

func NewTokenCounts() *TokenCounts {
	return &TokenCounts{counts: make(map[string]int)}
}

func (tc *TokenCounts) Increment(token string, n int) {
	tc.counts[token] += n
	tc.total += n
}

func (tc *TokenCounts) Count(token string) int { return tc.counts[token] }

func (tc *TokenCounts) Total() int { return tc.total }

// TokenCount is one token with its emission count.
type TokenCount struct {
	Token string
	Count int
}

// Top returns the n most frequent tokens, ties broken by token order so
// the result is stable.
func (tc *TokenCounts) Top(n int) []TokenCount {
	out := make([]TokenCount, 0, len(tc.counts))
	for tok, c := range tc.counts {
		out = append(out, TokenCount{Token: tok, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Token < out[j].Token
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
