package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText(t *testing.T) {
	chunker := NewTextChunker()

	t.Run("empty text", func(t *testing.T) {
		assert.Empty(t, chunker.ChunkText("  \n\n ", 100, 10))
	})

	t.Run("short text is one chunk", func(t *testing.T) {
		got := chunker.ChunkText("Summary\n\nGo developer.", 100, 10)
		assert.Equal(t, []string{"Summary\n\nGo developer."}, got)
	})

	t.Run("paragraphs split at the limit", func(t *testing.T) {
		text := strings.Repeat("a", 40) + "\n\n" + strings.Repeat("b", 40) + "\n\n" + strings.Repeat("c", 40)
		got := chunker.ChunkText(text, 90, 0)
		require.Len(t, got, 2)
		assert.Equal(t, strings.Repeat("a", 40)+"\n\n"+strings.Repeat("b", 40), got[0])
		assert.Equal(t, strings.Repeat("c", 40), got[1])
	})

	t.Run("chunks never exceed the limit", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < 200; i++ {
			sb.WriteString("Built résumé parsers in Go. ")
			if i%7 == 0 {
				sb.WriteString("\n\n")
			}
		}
		sb.WriteString(strings.Repeat("x", 450))

		got := chunker.ChunkText(sb.String(), 120, 30)
		require.NotEmpty(t, got)
		for _, c := range got {
			assert.LessOrEqual(t, utf8.RuneCountInString(c), 120)
		}
	})

	t.Run("overlap carries the previous tail", func(t *testing.T) {
		text := strings.Repeat("a", 50) + "\n\n" + strings.Repeat("b", 50)
		got := chunker.ChunkText(text, 60, 5)
		require.Len(t, got, 2)
		assert.True(t, strings.HasPrefix(got[1], "aaaaa "))
	})
}

func TestSplitIntoSentences(t *testing.T) {
	got := splitIntoSentences("Led a team. Shipped fast! Why? trailing")
	assert.Equal(t, []string{"Led a team.", "Shipped fast!", "Why?", "trailing"}, got)
}
