package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"alfredoptarigan/ats-analyzer/internal/models"
)

// JobIndex is a vector index over job descriptions.
type JobIndex interface {
	Index(ctx context.Context, jd *models.JobDescription) error
	// FindSimilar returns the closest other job descriptions, best first.
	FindSimilar(ctx context.Context, jd *models.JobDescription, limit int) ([]SimilarHit, error)
	Enabled() bool
}

type SimilarHit struct {
	ID    uuid.UUID
	Score float32
}

type QdrantIndexConfig struct {
	URL        string
	APIKey     string
	Collection string
	VectorSize uint64
}

type qdrantJobIndex struct {
	client         *qdrant.Client
	embedder       Embedder
	prompts        *PromptBuilder
	collectionName string
	vectorSize     uint64
}

// NewQdrantJobIndex connects to Qdrant and makes sure the collection exists.
func NewQdrantJobIndex(ctx context.Context, cfg QdrantIndexConfig, embedder Embedder) (JobIndex, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	// gRPC port unless the URL says otherwise
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	index := &qdrantJobIndex{
		client:         client,
		embedder:       embedder,
		prompts:        NewPromptBuilder(),
		collectionName: cfg.Collection,
		vectorSize:     cfg.VectorSize,
	}
	if err := index.initCollection(ctx); err != nil {
		return nil, err
	}
	return index, nil
}

func (q *qdrantJobIndex) Enabled() bool { return true }

// initCollection creates the collection when it does not exist yet.
func (q *qdrantJobIndex) initCollection(ctx context.Context) error {
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

// Index implements JobIndex. The point id is the job description id, so
// indexing the same record twice overwrites it.
func (q *qdrantJobIndex) Index(ctx context.Context, jd *models.JobDescription) error {
	embedding, err := q.embedder.GenerateEmbedding(ctx, q.prompts.BuildEmbeddingText(jd))
	if err != nil {
		return fmt.Errorf("failed to embed job description %s: %w", jd.ID, err)
	}

	_, err = q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Wait:           qdrant.PtrOf(true),
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewIDUUID(jd.ID.String()),
				Vectors: qdrant.NewVectors(embedding...),
				Payload: qdrant.NewValueMap(map[string]any{
					"title":   jd.Title,
					"company": jd.Company,
				}),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// FindSimilar implements JobIndex.
func (q *qdrantJobIndex) FindSimilar(ctx context.Context, jd *models.JobDescription, limit int) ([]SimilarHit, error) {
	embedding, err := q.embedder.GenerateEmbedding(ctx, q.prompts.BuildEmbeddingText(jd))
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description %s: %w", jd.ID, err)
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter: &qdrant.Filter{
			MustNot: []*qdrant.Condition{
				qdrant.NewHasID(qdrant.NewIDUUID(jd.ID.String())),
			},
		},
		Limit: qdrant.PtrOf(uint64(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	hits := make([]SimilarHit, 0, len(points))
	for _, point := range points {
		id, err := uuid.Parse(point.GetId().GetUuid())
		if err != nil {
			continue
		}
		hits = append(hits, SimilarHit{ID: id, Score: point.GetScore()})
	}

	return hits, nil
}

type noopJobIndex struct{}

// NewNoopJobIndex is used when QDRANT_URL is empty.
func NewNoopJobIndex() JobIndex { return noopJobIndex{} }

func (noopJobIndex) Enabled() bool { return false }

func (noopJobIndex) Index(context.Context, *models.JobDescription) error { return nil }

func (noopJobIndex) FindSimilar(context.Context, *models.JobDescription, int) ([]SimilarHit, error) {
	return nil, ErrIndexDisabled
}
