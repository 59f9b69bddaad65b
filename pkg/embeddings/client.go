package embeddings

import (
	"context"

	"github.com/oracle/oci-go-sdk/v65/generativeaiinference"
)

// EmbeddingClient defines the interface for generating text embeddings
type EmbeddingClient interface {
	// Embed generates embeddings for multiple texts
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedOne generates an embedding for a single text
	EmbedOne(ctx context.Context, text string) ([]float32, error)
}

// TextEmbedder is the part of the OCI Generative AI inference client the adapter calls.
// generativeaiinference.GenerativeAiInferenceClient satisfies it.
type TextEmbedder interface {
	EmbedText(ctx context.Context, request generativeaiinference.EmbedTextRequest) (generativeaiinference.EmbedTextResponse, error)
}
