package services

import (
	"strings"
	"unicode/utf8"
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText splits text into chunks of at most maxChunkSize runes, preferring
// paragraph and then sentence boundaries. Consecutive chunks share up to
// overlap trailing runes. A single sentence longer than maxChunkSize is cut
// on rune boundaries.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	c := &chunkBuilder{max: maxChunkSize, overlap: overlap}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= maxChunkSize {
			c.add(para, "\n\n")
			continue
		}

		// Paragraph is too long, fall back to sentences
		for _, sentence := range splitIntoSentences(para) {
			for _, piece := range splitRunes(sentence, maxChunkSize) {
				c.add(piece, " ")
			}
		}
	}

	return c.finish()
}

type chunkBuilder struct {
	max     int
	overlap int
	chunks  []string
	current strings.Builder
	size    int
}

func (c *chunkBuilder) add(piece, sep string) {
	pieceLen := utf8.RuneCountInString(piece)

	if c.size > 0 && c.size+utf8.RuneCountInString(sep)+pieceLen > c.max {
		c.flush()
		// Carry the tail of the previous chunk only if the piece still fits
		if c.overlap > 0 {
			tail := getLastNChars(c.chunks[len(c.chunks)-1], c.overlap)
			if tailLen := utf8.RuneCountInString(tail); tailLen+1+pieceLen <= c.max {
				c.write(tail, "")
				sep = " "
			}
		}
	}

	if c.size > 0 {
		c.write(piece, sep)
		return
	}
	c.write(piece, "")
}

func (c *chunkBuilder) write(piece, sep string) {
	c.current.WriteString(sep)
	c.current.WriteString(piece)
	c.size += utf8.RuneCountInString(sep) + utf8.RuneCountInString(piece)
}

func (c *chunkBuilder) flush() {
	if c.size == 0 {
		return
	}
	c.chunks = append(c.chunks, c.current.String())
	c.current.Reset()
	c.size = 0
}

func (c *chunkBuilder) finish() []string {
	c.flush()
	if c.chunks == nil {
		return []string{}
	}
	return c.chunks
}

func splitIntoSentences(text string) []string {
	var result []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				result = append(result, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		result = append(result, s)
	}
	return result
}

func splitRunes(text string, size int) []string {
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	var parts []string
	for len(runes) > 0 {
		n := size
		if len(runes) < n {
			n = len(runes)
		}
		parts = append(parts, string(runes[:n]))
		runes = runes[n:]
	}
	return parts
}

func getLastNChars(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
