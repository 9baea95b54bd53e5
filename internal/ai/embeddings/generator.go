package embeddings

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	// Model is the embedding model used for every vector in the system.
	// Job and candidate vectors must come from the same model to be comparable.
	Model = openai.EmbeddingModelTextEmbedding3Small

	// Dimension is the vector size produced by Model. Stored columns are
	// declared with this size, so a response with a different one is an error.
	Dimension = 1536
)

// Generator creates text embeddings for similarity scoring
type Generator struct {
	client *openai.Client
}

// NewGenerator creates a new embeddings generator
func NewGenerator(apiKey string) *Generator {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Generator{
		client: &client,
	}
}

// Generate creates an embedding vector for a single text
func (g *Generator) Generate(ctx context.Context, text string) ([]float32, error) {
	vectors, err := g.GenerateBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// GenerateBatch creates embeddings for multiple texts in one API call.
// The result preserves input order; empty inputs are rejected.
func (g *Generator) GenerateBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}
	for i, text := range texts {
		if text == "" {
			return nil, fmt.Errorf("text %d is empty", i)
		}
	}

	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model: Model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		if len(data.Embedding) != Dimension {
			return nil, fmt.Errorf("embedding %d has %d dimensions, expected %d", i, len(data.Embedding), Dimension)
		}
		vec := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		vectors[i] = vec
	}

	return vectors, nil
}
