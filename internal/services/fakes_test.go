package services

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"alfredoptarigan/career-architect/internal/models"
)

const validResponseJSON = `{
  "skillGapAnalysis": {
    "strong": ["Python"],
    "partial": ["SQL", "Statistics"],
    "missing": ["Tableau"]
  },
  "readinessScore": 62,
  "paths": [
    {"name": "Fast Track", "description": "Intensive", "readinessLevel": 55, "confidenceScore": 81, "tradeOffs": "Less depth"},
    {"name": "Balanced Track", "description": "Steady", "readinessLevel": 70, "confidenceScore": 74, "tradeOffs": "Slower"}
  ],
  "actionPlan": [
    {"week": 1, "focus": "SQL", "tasks": ["Joins"]},
    {"week": 2, "focus": "Pandas", "tasks": ["DataFrames"]},
    {"week": 3, "focus": "Charts", "tasks": ["Matplotlib"]},
    {"week": 4, "focus": "Capstone", "tasks": ["Publish"]}
  ],
  "projects": [
    {"name": "Sales Dashboard", "skillsGained": ["SQL", "Tableau"], "relevance": "Core analyst work", "githubStrategy": "Pin it"}
  ],
  "optimizationAdvice": "Focus on SQL first.",
  "reasoning": "Solid Python, weak BI tooling."
}`

type fakeGemini struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
	schemas  []*genai.Schema
	// release, when set, holds every call until it is closed or ctx ends.
	release chan struct{}
}

func (f *fakeGemini) GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.schemas = append(f.schemas, schema)
	release := f.release
	response, err := f.response, f.err
	f.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return response, err
}

func (f *fakeGemini) ModelName() string { return "fake-model" }

func (f *fakeGemini) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type analyzerFunc func(ctx context.Context, profile models.UserProfile) (*models.ArchitectResponse, error)

func (fn analyzerFunc) Analyze(ctx context.Context, profile models.UserProfile) (*models.ArchitectResponse, error) {
	return fn(ctx, profile)
}

func analystProfile() models.UserProfile {
	p := models.NewUserProfile()
	p.Education = models.Education{Degree: "B.Sc", Branch: "CS", Year: "3"}
	p.Skills = []string{"Python", "SQL"}
	p.TargetRoles = []string{"Data Analyst"}
	p.Availability = "10"
	return p
}

func metricValue(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	switch {
	case out.Counter != nil:
		return out.Counter.GetValue()
	case out.Gauge != nil:
		return out.Gauge.GetValue()
	}
	return 0
}
