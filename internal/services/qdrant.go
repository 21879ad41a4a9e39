package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"alfredoptarigan/smartmatch/internal/models"
)

// JobArchive keeps the embedding of every compared job description so a
// resume can later be checked against all of them at once.
type JobArchive interface {
	InitCollection(ctx context.Context) error
	Archive(ctx context.Context, id uuid.UUID, source string, jobSnippet string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]models.SimilarJob, error)
}

const defaultSimilarLimit = 5

type qdrantJobArchive struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantJobArchive(urlStr, apiKey, collectionName string, vectorSize int) (JobArchive, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantJobArchive{
		client:         client,
		collectionName: collectionName,
		vectorSize:     uint64(vectorSize),
	}, nil
}

// InitCollection implements JobArchive.
func (q *qdrantJobArchive) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Printf("✅ Qdrant collection '%s' already exists\n", q.collectionName)
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// Archive implements JobArchive. Re-archiving the same id overwrites the point.
func (q *qdrantJobArchive) Archive(ctx context.Context, id uuid.UUID, source string, jobSnippet string, embedding []float32) error {
	if uint64(len(embedding)) != q.vectorSize {
		return fmt.Errorf("embedding has %d dimensions, collection expects %d", len(embedding), q.vectorSize)
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(id.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]any{
			"match_id": id.String(),
			"source":   source,
			"text":     jobSnippet,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements JobArchive. Scores are cosine similarities scaled
// to percentages the same way match scores are.
func (q *qdrantJobArchive) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]models.SimilarJob, error) {
	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]models.SimilarJob, 0, len(points))
	for _, point := range points {
		payload := point.GetPayload()
		results = append(results, models.SimilarJob{
			MatchID:    payloadString(payload, "match_id"),
			Source:     payloadString(payload, "source"),
			Score:      ScorePercent(float64(point.GetScore())),
			JobSnippet: payloadString(payload, "text"),
		})
	}

	return results, nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if value, ok := payload[key]; ok {
		if val, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
			return val.StringValue
		}
	}
	return ""
}
