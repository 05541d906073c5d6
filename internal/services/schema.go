package services

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/genai"
)

func stringList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

// ResponseSchema is the structured-output contract sent with every
// analysis request. Every property is required.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"skillGapAnalysis": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"strong":  stringList(),
					"partial": stringList(),
					"missing": stringList(),
				},
				Required: []string{"strong", "partial", "missing"},
			},
			"readinessScore": {Type: genai.TypeNumber},
			"paths": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":            {Type: genai.TypeString},
						"description":     {Type: genai.TypeString},
						"readinessLevel":  {Type: genai.TypeNumber},
						"confidenceScore": {Type: genai.TypeNumber},
						"tradeOffs":       {Type: genai.TypeString},
					},
					Required: []string{"name", "description", "readinessLevel", "confidenceScore", "tradeOffs"},
				},
			},
			"actionPlan": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"week":  {Type: genai.TypeNumber},
						"focus": {Type: genai.TypeString},
						"tasks": stringList(),
					},
					Required: []string{"week", "focus", "tasks"},
				},
			},
			"projects": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":           {Type: genai.TypeString},
						"skillsGained":   stringList(),
						"relevance":      {Type: genai.TypeString},
						"githubStrategy": {Type: genai.TypeString},
					},
					Required: []string{"name", "skillsGained", "relevance", "githubStrategy"},
				},
			},
			"optimizationAdvice": {Type: genai.TypeString},
			"reasoning":          {Type: genai.TypeString},
		},
		Required: []string{
			"skillGapAnalysis", "readinessScore", "paths", "actionPlan",
			"projects", "optimizationAdvice", "reasoning",
		},
	}
}

// JSONSchemaDocument converts a genai schema into a draft-07 JSON Schema
// document so the same contract can be checked locally.
func JSONSchemaDocument(s *genai.Schema) map[string]any {
	doc := map[string]any{}
	if s == nil {
		return doc
	}
	if s.Type != "" {
		doc["type"] = strings.ToLower(string(s.Type))
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = JSONSchemaDocument(prop)
		}
		doc["properties"] = props
	}
	if len(s.Required) > 0 {
		required := make([]any, len(s.Required))
		for i, r := range s.Required {
			required[i] = r
		}
		doc["required"] = required
	}
	if s.Items != nil {
		doc["items"] = JSONSchemaDocument(s.Items)
	}
	return doc
}

type FieldError struct {
	Field   string
	Message string
}

type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ResponseValidator checks raw model output against the response schema.
type ResponseValidator struct {
	schema *gojsonschema.Schema
}

func NewResponseValidator() (*ResponseValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(JSONSchemaDocument(ResponseSchema())))
	if err != nil {
		return nil, fmt.Errorf("failed to compile response schema: %w", err)
	}
	return &ResponseValidator{schema: schema}, nil
}

func (v *ResponseValidator) Validate(jsonText string) error {
	result, err := v.schema.Validate(gojsonschema.NewStringLoader(jsonText))
	if err != nil {
		return fmt.Errorf("failed to load response document: %w", err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
