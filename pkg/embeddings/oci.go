// Package embeddings provides the OCI Generative AI embedding client implementation
package embeddings

import (
	"context"
	"fmt"
	"strings"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/generativeaiinference"
)

const (
	// DefaultBatchSize is the most inputs OCI accepts in one embed-text request.
	DefaultBatchSize = 96

	defaultTruncate = "END"

	// dedicatedEndpointPrefix marks model identifiers that point at a dedicated AI cluster endpoint.
	dedicatedEndpointPrefix = "ocid1.generativeaiendpoint"
)

// OCIConfig holds configuration for the OCI embedding client
type OCIConfig struct {
	// Model ID (e.g. "cohere.embed-english-v3.0") or dedicated endpoint OCID
	ModelName string

	// Inference endpoint, e.g. "https://inference.generativeai.us-chicago-1.oci.oraclecloud.com".
	// Only used when the client is built here.
	ServiceEndpoint string

	// Compartment the request is billed against
	CompartmentID string

	// Authentication settings, only used when the client is built here
	AuthType         AuthType
	AuthProfile      string
	AuthFileLocation string

	// Truncation applied to inputs over the model's token limit: NONE, START or END (default: END)
	Truncate string

	// Max inputs per request (default: 96)
	BatchSize int
}

// OCIClient implements EmbeddingClient using OCI Generative AI
type OCIClient struct {
	config   OCIConfig
	client   TextEmbedder
	truncate generativeaiinference.EmbedTextDetailsTruncateEnum
}

// NewOCIClient creates a new OCI embedding client.
// If client is nil, an inference client is built from the endpoint and auth settings in cfg.
func NewOCIClient(cfg OCIConfig, client TextEmbedder) (*OCIClient, error) {
	if strings.TrimSpace(cfg.ModelName) == "" {
		return nil, fmt.Errorf("model name is required")
	}

	// Apply defaults
	if cfg.Truncate == "" {
		cfg.Truncate = defaultTruncate
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.AuthProfile == "" {
		cfg.AuthProfile = defaultAuthProfile
	}

	authType, err := ParseAuthType(string(cfg.AuthType))
	if err != nil {
		return nil, err
	}
	cfg.AuthType = authType

	truncate, ok := generativeaiinference.GetMappingEmbedTextDetailsTruncateEnum(cfg.Truncate)
	if !ok {
		return nil, fmt.Errorf("invalid truncate value %q: must be NONE, START or END", cfg.Truncate)
	}

	if client == nil {
		inference, err := newInferenceClient(cfg)
		if err != nil {
			return nil, err
		}
		client = inference
	}

	return &OCIClient{
		config:   cfg,
		client:   client,
		truncate: truncate,
	}, nil
}

// Model returns the configured model identifier
func (c *OCIClient) Model() string {
	return c.config.ModelName
}

// GetTextEmbeddingBatch embeds texts as documents, one vector per input in input order.
// Errors from the underlying client are returned as-is.
func (c *OCIClient) GetTextEmbeddingBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return c.embed(ctx, texts, generativeaiinference.EmbedTextDetailsInputTypeSearchDocument)
}

// Embed generates embeddings for multiple texts
func (c *OCIClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return c.GetTextEmbeddingBatch(ctx, texts)
}

// EmbedOne generates an embedding for a single text
func (c *OCIClient) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	return c.embedSingle(ctx, text, generativeaiinference.EmbedTextDetailsInputTypeSearchDocument)
}

// EmbedQuery generates an embedding for a search query
func (c *OCIClient) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return c.embedSingle(ctx, query, generativeaiinference.EmbedTextDetailsInputTypeSearchQuery)
}

func (c *OCIClient) embedSingle(ctx context.Context, text string, inputType generativeaiinference.EmbedTextDetailsInputTypeEnum) ([]float32, error) {
	embeddings, err := c.embed(ctx, []string{text}, inputType)
	if err != nil {
		return nil, err
	}

	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	return embeddings[0], nil
}

func (c *OCIClient) embed(ctx context.Context, texts []string, inputType generativeaiinference.EmbedTextDetailsInputTypeEnum) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	embeddings := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += c.config.BatchSize {
		end := min(start+c.config.BatchSize, len(texts))

		resp, err := c.client.EmbedText(ctx, c.buildRequest(texts[start:end], inputType))
		if err != nil {
			return nil, err
		}
		embeddings = append(embeddings, resp.Embeddings...)
	}

	return embeddings, nil
}

func (c *OCIClient) buildRequest(texts []string, inputType generativeaiinference.EmbedTextDetailsInputTypeEnum) generativeaiinference.EmbedTextRequest {
	details := generativeaiinference.EmbedTextDetails{
		Inputs:      texts,
		ServingMode: c.servingMode(),
		Truncate:    c.truncate,
		InputType:   inputType,
	}
	if c.config.CompartmentID != "" {
		details.CompartmentId = common.String(c.config.CompartmentID)
	}

	return generativeaiinference.EmbedTextRequest{EmbedTextDetails: details}
}

func (c *OCIClient) servingMode() generativeaiinference.ServingMode {
	if strings.HasPrefix(c.config.ModelName, dedicatedEndpointPrefix) {
		return generativeaiinference.DedicatedServingMode{EndpointId: common.String(c.config.ModelName)}
	}
	return generativeaiinference.OnDemandServingMode{ModelId: common.String(c.config.ModelName)}
}
