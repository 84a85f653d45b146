package freq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBands(t *testing.T) {
	entries := []Entry{{"de", 5}, {"la", 4}, {"que", 3}, {"el", 2}}

	t.Run("should split at the band size", func(t *testing.T) {
		top, rest := Bands(entries, 2)
		assert.Equal(t, []Entry{{"de", 5}, {"la", 4}}, top)
		assert.Equal(t, []Entry{{"que", 3}, {"el", 2}}, rest)
	})

	t.Run("should put everything in the top band when short", func(t *testing.T) {
		top, rest := Bands(entries, 32)
		assert.Equal(t, entries, top)
		assert.Empty(t, rest)
	})

	t.Run("should treat a negative band size as zero", func(t *testing.T) {
		top, rest := Bands(entries, -1)
		assert.Empty(t, top)
		assert.Equal(t, entries, rest)
	})
}

func TestWriteList(t *testing.T) {
	t.Run("should write word and count per line", func(t *testing.T) {
		var sb strings.Builder
		err := WriteList(&sb, []Entry{{"de", 10}, {"la", 7}})
		require.NoError(t, err)
		assert.Equal(t, "de 10\nla 7\n", sb.String())
	})

	t.Run("should write nothing for an empty list", func(t *testing.T) {
		var sb strings.Builder
		require.NoError(t, WriteList(&sb, nil))
		assert.Empty(t, sb.String())
	})
}

func TestCurationHints(t *testing.T) {
	t.Run("should group words sharing a stem in rank order", func(t *testing.T) {
		entries := []Entry{
			{"running", 9},
			{"run", 7},
			{"casa", 5},
			{"runs", 3},
		}
		hints := CurationHints(entries)
		require.Len(t, hints, 1)
		assert.Equal(t, "run", hints[0].Stem)
		assert.Equal(t, []string{"running", "run", "runs"}, hints[0].Words)
	})

	t.Run("should report no hints when stems are distinct", func(t *testing.T) {
		hints := CurationHints([]Entry{{"casa", 2}, {"perro", 1}})
		assert.Empty(t, hints)
	})

	t.Run("should sort groups by stem", func(t *testing.T) {
		entries := []Entry{
			{"walked", 5}, {"walking", 4},
			{"jumped", 3}, {"jumping", 2},
		}
		hints := CurationHints(entries)
		require.Len(t, hints, 2)
		assert.Equal(t, "jump", hints[0].Stem)
		assert.Equal(t, "walk", hints[1].Stem)
	})
}
