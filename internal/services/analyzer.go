package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/career-architect/internal/models"
)

type Analyzer interface {
	Analyze(ctx context.Context, profile models.UserProfile) (*models.ArchitectResponse, error)
}

type analyzerService struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
	validator     *ResponseValidator
	log           *zap.Logger
}

// NewAnalyzer builds the orchestrator. A nil validator skips local schema
// checks and trusts the model's structured-output contract.
func NewAnalyzer(geminiService GeminiService, validator *ResponseValidator, log *zap.Logger) Analyzer {
	return &analyzerService{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		validator:     validator,
		log:           log,
	}
}

// Analyze makes exactly one model call. No retries.
func (a *analyzerService) Analyze(ctx context.Context, profile models.UserProfile) (*models.ArchitectResponse, error) {
	prompt := a.promptBuilder.BuildCareerAnalysisPrompt(profile)
	a.log.Debug("📝 Career analysis prompt built", zap.Int("chars", len(prompt)))

	response, err := a.geminiService.GenerateStructured(ctx, prompt, ResponseSchema())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	if a.validator != nil {
		if err := a.validator.Validate(response); err != nil {
			return nil, fmt.Errorf("%w: response does not match schema: %w", ErrAnalysisFailed, err)
		}
	}

	result, err := parseJSONResponse(response)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	return result, nil
}

func parseJSONResponse(response string) (*models.ArchitectResponse, error) {
	trimmed := strings.TrimSpace(response)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, fmt.Errorf("response is not a JSON object")
	}

	var result models.ArchitectResponse
	if err := json.Unmarshal([]byte(trimmed), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return &result, nil
}
