package lid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allLists() []*WordRankList {
	return []*WordRankList{SpanishTop32, Spanish32Plus, EnglishTop32, English32Plus}
}

func TestWordRankListData(t *testing.T) {
	t.Run("should size the top bands at exactly TopBandSize", func(t *testing.T) {
		assert.Equal(t, TopBandSize, SpanishTop32.Len())
		assert.Equal(t, TopBandSize, EnglishTop32.Len())
	})

	t.Run("should hold only lowercase letters, digits and apostrophes", func(t *testing.T) {
		for _, l := range allLists() {
			for i := 0; i < l.Len(); i++ {
				w := l.At(i)
				require.NotEmpty(t, w)
				for _, r := range w {
					ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '\''
					assert.Truef(t, ok, "%s: %q has unexpected rune %q", l.Name(), w, r)
				}
			}
		}
	})

	t.Run("should contain no duplicate words within a list", func(t *testing.T) {
		for _, l := range allLists() {
			seen := make(map[string]bool, l.Len())
			for i := 0; i < l.Len(); i++ {
				w := l.At(i)
				assert.Falsef(t, seen[w], "%s: %q appears twice", l.Name(), w)
				seen[w] = true
			}
		}
	})

	t.Run("should keep the two bands of a language disjoint", func(t *testing.T) {
		for i := 0; i < Spanish32Plus.Len(); i++ {
			assert.False(t, SpanishTop32.Contains(Spanish32Plus.At(i)))
		}
		for i := 0; i < English32Plus.Len(); i++ {
			assert.False(t, EnglishTop32.Contains(English32Plus.At(i)))
		}
	})
}

func TestWordRankList(t *testing.T) {
	t.Run("should rank top band words from 1", func(t *testing.T) {
		r, ok := SpanishTop32.Rank("de")
		require.True(t, ok)
		assert.Equal(t, 1, r)

		r, ok = EnglishTop32.Rank("the")
		require.True(t, ok)
		assert.Equal(t, 1, r)
	})

	t.Run("should continue the 32plus band at rank 33", func(t *testing.T) {
		r, ok := Spanish32Plus.Rank(Spanish32Plus.At(0))
		require.True(t, ok)
		assert.Equal(t, TopBandSize+1, r)
	})

	t.Run("should report unknown words as unranked", func(t *testing.T) {
		_, ok := EnglishTop32.Rank("zzzz")
		assert.False(t, ok)
		assert.False(t, EnglishTop32.Contains("zzzz"))
	})

	t.Run("should preserve rank order through At", func(t *testing.T) {
		words := EnglishTop32.Words()
		for i, w := range words {
			assert.Equal(t, w, EnglishTop32.At(i))
		}
	})

	t.Run("should not expose internal state through Words", func(t *testing.T) {
		first := SpanishTop32.At(0)
		words := SpanishTop32.Words()
		words[0] = "mutated"
		assert.Equal(t, first, SpanishTop32.At(0))
		assert.False(t, SpanishTop32.Contains("mutated"))
	})
}

func TestByLanguage(t *testing.T) {
	t.Run("should resolve language codes and names", func(t *testing.T) {
		for _, lang := range []string{"es", "ES", "spanish", "Spanish"} {
			top, rest, ok := ByLanguage(lang)
			require.Truef(t, ok, "lang %q", lang)
			assert.Same(t, SpanishTop32, top)
			assert.Same(t, Spanish32Plus, rest)
		}
		top, rest, ok := ByLanguage("en")
		require.True(t, ok)
		assert.Same(t, EnglishTop32, top)
		assert.Same(t, English32Plus, rest)
	})

	t.Run("should reject unknown languages", func(t *testing.T) {
		_, _, ok := ByLanguage("fr")
		assert.False(t, ok)
	})
}

func TestDefaultModelConfig(t *testing.T) {
	assert.Equal(t, "params/model1_defaults.cfg", DefaultModelConfig)
}
