package services

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// LLMClient sends one system+user exchange to a chat model and returns the
// raw text reply. Implementations ask the model for a JSON reply.
type LLMClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Name identifies provider and model, e.g. "gemini/gemini-2.5-flash".
	Name() string
}

// Embedder turns text into a dense vector for similarity search.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// GeminiService is both an LLMClient and an Embedder.
type GeminiService interface {
	LLMClient
	Embedder
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	embedModel  string
	temperature float32
}

func NewGeminiService(apiKey, model, embedModel string) (GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:      client,
		modelName:   model,
		embedModel:  embedModel,
		temperature: 0.2,
	}, nil
}

func (g *geminiService) Name() string {
	return "gemini/" + g.modelName
}

// GenerateEmbedding implements Embedder.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if runes := []rune(text); len(runes) > 40000 {
		text = string(runes[:40000])
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// Complete implements LLMClient.
func (g *geminiService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(g.temperature),
		MaxOutputTokens:   4096,
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(userPrompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		log.Println("❌ No text content in Gemini response")
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}
