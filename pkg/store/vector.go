package store

import (
	"context"
	"math"
	"sort"
)

// SearchResult represents a vector search result with similarity score.
type SearchResult struct {
	ID    string  // Entry ID
	Text  string  // Text the vector was computed from
	Score float64 // Cosine similarity score, higher is more similar
}

// VectorStore holds embedded texts and answers similarity queries.
type VectorStore interface {
	// Add adds or updates the text and its embedding for the given ID.
	Add(ctx context.Context, id string, text string, embedding []float32) error

	// Search finds the most similar vectors to the query.
	// Returns up to topK results sorted by similarity score (descending).
	Search(ctx context.Context, query []float32, topK int) ([]SearchResult, error)

	// Delete removes an entry from the store.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)
}

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns 0 for vectors of different length or zero magnitude.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// rank sorts results by score descending and keeps at most topK.
func rank(results []SearchResult, topK int) []SearchResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if topK >= 0 && topK < len(results) {
		results = results[:topK]
	}
	return results
}
