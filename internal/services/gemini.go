package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type GeminiService interface {
	// GenerateStructured issues one request constrained to schema and
	// returns the raw JSON text of the reply.
	GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	ModelName() string
}

type geminiService struct {
	apiKey    string
	modelName string
	log       *zap.Logger

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiService does not contact the API. The client is built on the
// first request, so a missing key surfaces as a failed analysis.
func NewGeminiService(apiKey, modelName string, log *zap.Logger) GeminiService {
	return &geminiService{
		apiKey:    apiKey,
		modelName: modelName,
		log:       log,
	}
}

func (g *geminiService) ModelName() string {
	return g.modelName
}

func (g *geminiService) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.client = client
	return client, nil
}

// GenerateStructured implements GeminiService.
func (g *geminiService) GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	g.log.Debug("📊 Gemini response received",
		zap.String("model", g.modelName),
		zap.Int("chars", len(text)),
	)

	return text, nil
}
