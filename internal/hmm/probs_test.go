package hmm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemix-nlp/codemix/models"
)

func seq(toks ...string) models.Sequence {
	s := make(models.Sequence, len(toks))
	for i, tt := range toks {
		k := strings.LastIndexByte(tt, '/')
		s[i] = models.TokenTag{Token: tt[:k], Tag: tt[k+1:]}
	}
	return s
}

func TestEstimate(t *testing.T) {
	t.Run("should compute maximum likelihood estimates", func(t *testing.T) {
		seqs := []models.Sequence{
			seq("a/e", "b/e", "c/s"),
			seq("d/s", "e/s"),
			seq("f/e", ",/n", "g/s"),
		}
		sp, err := Estimate(seqs, DefaultStates, DefaultSkipStates, nil)
		require.NoError(t, err)

		require.Equal(t, []string{"e", "s"}, sp.States)
		assert.InDelta(t, 2.0/3.0, sp.Initial[0], 1e-9)
		assert.InDelta(t, 1.0/3.0, sp.Initial[1], 1e-9)

		assert.InDelta(t, 1.0/3.0, sp.Transition[0][0], 1e-9)
		assert.InDelta(t, 2.0/3.0, sp.Transition[0][1], 1e-9)
		assert.InDelta(t, 0.0, sp.Transition[1][0], 1e-9)
		assert.InDelta(t, 1.0, sp.Transition[1][1], 1e-9)
	})

	t.Run("should bridge transitions across skipped tags", func(t *testing.T) {
		seqs := []models.Sequence{
			seq("a/e", ",/n", "b/s"),
			seq("c/s", "d/e"),
		}
		sp, err := Estimate(seqs, DefaultStates, DefaultSkipStates, nil)
		require.NoError(t, err)
		assert.Equal(t, 1.0, sp.Transition[0][1])
		assert.Equal(t, 1.0, sp.Transition[1][0])
	})

	t.Run("should not count skipped tags as initials", func(t *testing.T) {
		seqs := []models.Sequence{
			seq(",/n", "a/e", "b/s"),
			seq("c/s", "d/e"),
		}
		sp, err := Estimate(seqs, DefaultStates, DefaultSkipStates, nil)
		require.NoError(t, err)
		assert.Equal(t, 0.5, sp.Initial[0])
		assert.Equal(t, 0.5, sp.Initial[1])
	})

	t.Run("should collect lowercased emission counts per state", func(t *testing.T) {
		seqs := []models.Sequence{
			seq("The/e", "the/e", "Mundo/s", ",/n"),
			seq("casa/s", "vida/e"),
		}
		emissions := make(map[string]*TokenCounts)
		_, err := Estimate(seqs, DefaultStates, DefaultSkipStates, emissions)
		require.NoError(t, err)

		require.Contains(t, emissions, "e")
		require.Contains(t, emissions, "s")
		assert.NotContains(t, emissions, "n")
		assert.Equal(t, 2, emissions["e"].Count("the"))
		assert.Equal(t, 1, emissions["s"].Count("mundo"))
		assert.Equal(t, 3, emissions["e"].Total())
	})

	t.Run("should reject a tag outside states and skips", func(t *testing.T) {
		_, err := Estimate([]models.Sequence{seq("a/x")}, DefaultStates, DefaultSkipStates, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"x"`)
	})

	t.Run("should fail when a state has no outgoing transitions", func(t *testing.T) {
		_, err := Estimate([]models.Sequence{seq("a/e")}, DefaultStates, DefaultSkipStates, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no outgoing transitions")
	})

	t.Run("should fail on a corpus with no taggable tokens", func(t *testing.T) {
		_, err := Estimate([]models.Sequence{seq(",/n")}, DefaultStates, DefaultSkipStates, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no tokens in the state set")
	})

	t.Run("should reject an empty state list", func(t *testing.T) {
		_, err := Estimate(nil, nil, nil, nil)
		require.Error(t, err)
	})

	t.Run("should reject duplicate states", func(t *testing.T) {
		_, err := Estimate(nil, []string{"e", "e"}, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate state")
	})
}

func TestStateProbabilitiesWriteText(t *testing.T) {
	t.Run("should print initial and transition sections", func(t *testing.T) {
		seqs := []models.Sequence{
			seq("a/e", "b/s"),
			seq("c/s", "d/e"),
		}
		sp, err := Estimate(seqs, DefaultStates, DefaultSkipStates, nil)
		require.NoError(t, err)

		var sb strings.Builder
		sp.WriteText(&sb)
		out := sb.String()
		assert.Contains(t, out, "Initial probabilities:\ne: 0.5000\ns: 0.5000\n")
		assert.Contains(t, out, "Transition probabilities:")
		assert.Contains(t, out, "e -> s: 1.0000")
		assert.Contains(t, out, "s -> e: 1.0000")
	})
}
