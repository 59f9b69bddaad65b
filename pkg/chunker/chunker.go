// Package chunker splits documents into sentence-aligned pieces small enough
// for an embedding model's input limit.
package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// Defaults sized for Cohere embed v3 models, which truncate inputs past 512 tokens.
const (
	DefaultMaxWords     = 256
	DefaultOverlapWords = 32
)

// Chunk is one piece of a document
type Chunk struct {
	// ID is derived from the text and position, so re-chunking the same document yields the same IDs
	ID    string
	Text  string
	Index int
	Words int
}

// Chunker groups whole sentences into chunks of at most MaxWords words.
// A single sentence longer than MaxWords becomes its own chunk.
type Chunker struct {
	MaxWords     int // default: 256
	OverlapWords int // words repeated from the end of the previous chunk, default: 32; negative disables
}

// Chunk splits text into chunks
func (c *Chunker) Chunk(text string) []Chunk {
	maxWords := c.MaxWords
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	overlap := c.OverlapWords
	if overlap == 0 {
		overlap = DefaultOverlapWords
	}

	chunks := []Chunk{}
	var (
		window []string
		words  int
	)
	flush := func() {
		body := strings.Join(window, " ")
		chunks = append(chunks, Chunk{
			ID:    chunkID(body, len(chunks)),
			Text:  body,
			Index: len(chunks),
			Words: words,
		})
	}

	for _, s := range sentences(text) {
		n := len(strings.Fields(s))
		if len(window) > 0 && words+n > maxWords {
			flush()
			window = tail(window, overlap)
			words = wordCount(window)
			if words+n > maxWords {
				window, words = nil, 0
			}
		}
		window = append(window, s)
		words += n
		// only a lone sentence can exceed maxWords here
		if words > maxWords {
			flush()
			window, words = nil, 0
		}
	}
	if len(window) > 0 {
		flush()
	}

	return chunks
}

// sentences splits on '.', '!' or '?' followed by whitespace or end of text
func sentences(text string) []string {
	var out []string
	start := 0
	runes := []rune(text)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			out = append(out, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}
	return out
}

// tail returns the trailing whole sentences holding at most limit words.
// It is empty when the last sentence alone is longer than limit.
func tail(window []string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	words := 0
	i := len(window)
	for i > 0 {
		n := len(strings.Fields(window[i-1]))
		if words+n > limit {
			break
		}
		words += n
		i--
	}
	return append([]string(nil), window[i:]...)
}

func wordCount(window []string) int {
	total := 0
	for _, s := range window {
		total += len(strings.Fields(s))
	}
	return total
}

func chunkID(text string, index int) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s-%d", hex.EncodeToString(sum[:8]), index)
}
