package services

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type openaiService struct {
	client *openai.Client
	model  string
}

// NewOpenAIService builds an LLMClient on the chat completions API. baseURL
// may point at any OpenAI-compatible endpoint; empty keeps the default.
func NewOpenAIService(apiKey, model, baseURL string) (LLMClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is empty")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &openaiService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (o *openaiService) Name() string {
	return "openai/" + o.model
}

// Complete implements LLMClient.
func (o *openaiService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return resp.Choices[0].Message.Content, nil
}
