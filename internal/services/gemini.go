package services

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// Embedder turns texts into fixed-length sentence embeddings. Implementations
// are loaded once at startup and are safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
	ModelName() string
}

// maxEmbedBatch is the Gemini limit on contents per EmbedContent request.
const maxEmbedBatch = 100

// maxEmbedChars keeps a single input under the model's token window.
const maxEmbedChars = 40000

type geminiEmbedder struct {
	client     *genai.Client
	embedModel string
	dimension  int
}

func NewGeminiEmbedder(ctx context.Context, apiKey, embedModel string, dimension int) (Embedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrModelUnavailable)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", ErrModelUnavailable, err)
	}

	return &geminiEmbedder{
		client:     client,
		embedModel: embedModel,
		dimension:  dimension,
	}, nil
}

// Embed implements Embedder.
func (g *geminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += maxEmbedBatch {
		end := min(start+maxEmbedBatch, len(texts))

		contents := make([]*genai.Content, 0, end-start)
		for _, text := range texts[start:end] {
			contents = append(contents, genai.Text(truncateRunes(text, maxEmbedChars))...)
		}

		result, err := g.client.Models.EmbedContent(ctx, g.embedModel, contents, &genai.EmbedContentConfig{
			TaskType: "SEMANTIC_SIMILARITY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to generate embedding: %v", ErrModelUnavailable, err)
		}

		if result == nil || len(result.Embeddings) != end-start {
			return nil, fmt.Errorf("%w: expected %d embeddings", ErrModelUnavailable, end-start)
		}

		for _, embedding := range result.Embeddings {
			vectors = append(vectors, embedding.Values)
		}
	}

	return vectors, nil
}

// Dimension implements Embedder.
func (g *geminiEmbedder) Dimension() int {
	return g.dimension
}

// ModelName implements Embedder.
func (g *geminiEmbedder) ModelName() string {
	return g.embedModel
}

// Warmup embeds a probe sentence so an unreachable or misconfigured model
// fails the process at startup instead of the first comparison.
func Warmup(ctx context.Context, embedder Embedder) error {
	vectors, err := embedder.Embed(ctx, []string{"resume and job description matcher"})
	if err != nil {
		return err
	}

	if len(vectors) != 1 || len(vectors[0]) == 0 {
		return fmt.Errorf("%w: empty probe embedding", ErrModelUnavailable)
	}

	if dim := embedder.Dimension(); dim > 0 && len(vectors[0]) != dim {
		return fmt.Errorf("%w: model %s returned %d dimensions, expected %d",
			ErrModelUnavailable, embedder.ModelName(), len(vectors[0]), dim)
	}

	log.Printf("✅ Embedding model %s ready (%d dimensions)\n", embedder.ModelName(), len(vectors[0]))
	return nil
}
