package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/career-architect/internal/models"
	"alfredoptarigan/career-architect/internal/repositories"
	"alfredoptarigan/career-architect/internal/services"
)

const analysisJSON = `{
  "skillGapAnalysis": {"strong": ["Python"], "partial": ["SQL"], "missing": ["Tableau", "Excel"]},
  "readinessScore": 62,
  "paths": [
    {"name": "Fast Track", "description": "Intensive", "readinessLevel": 55, "confidenceScore": 85, "tradeOffs": "Less depth"},
    {"name": "Balanced Track", "description": "Steady", "readinessLevel": 70, "confidenceScore": 72, "tradeOffs": "Slower"}
  ],
  "actionPlan": [
    {"week": 1, "focus": "SQL", "tasks": ["Joins"]},
    {"week": 2, "focus": "Pandas", "tasks": ["DataFrames"]},
    {"week": 3, "focus": "Charts", "tasks": ["Matplotlib"]},
    {"week": 4, "focus": "Capstone", "tasks": ["Publish"]}
  ],
  "projects": [{"name": "Sales Dashboard", "skillsGained": ["SQL"], "relevance": "Core", "githubStrategy": "Pin it"}],
  "optimizationAdvice": "Focus on SQL first.",
  "reasoning": "Solid Python."
}`

type stubGemini struct {
	mu       sync.Mutex
	response string
	prompts  []string
}

func (s *stubGemini) GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	return s.response, nil
}

func (s *stubGemini) ModelName() string { return "stub" }

func newTestApp(t *testing.T, response string) *fiber.App {
	t.Helper()
	log := zap.NewNop()
	metrics := services.NewMetrics(prometheus.NewRegistry())
	analyzer := services.NewAnalyzer(&stubGemini{response: response}, nil, log)
	worker := services.NewWorker(analyzer, metrics, log, 1)
	worker.Start(context.Background())
	t.Cleanup(worker.Stop)

	sessions := services.NewSessionService(
		repositories.NewMemorySessionRepository(), worker, metrics, log, time.Hour, 10*time.Minute,
	)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app.Group("/api/v1"), sessions)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := doRequest(t, app, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, status)
	return body["id"].(string)
}

func fillProfile(t *testing.T, app *fiber.App, id string) {
	t.Helper()
	base := "/sessions/" + id + "/wizard"

	status, _ := doRequest(t, app, http.MethodPatch, base+"/profile", map[string]string{
		"degree": "B.Sc", "branch": "CS", "year": "3", "availability": "10",
	})
	require.Equal(t, http.StatusOK, status)
	status, _ = doRequest(t, app, http.MethodPost, base+"/skills", map[string]string{"value": "Python"})
	require.Equal(t, http.StatusOK, status)
	status, _ = doRequest(t, app, http.MethodPost, base+"/target-roles", map[string]string{"value": "Data Analyst"})
	require.Equal(t, http.StatusOK, status)
	doRequest(t, app, http.MethodPost, base+"/advance", nil)
	status, body := doRequest(t, app, http.MethodPost, base+"/advance", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 3.0, body["step"])
}

func waitForState(t *testing.T, app *fiber.App, id string, state models.SessionState) map[string]any {
	t.Helper()
	var body map[string]any
	require.Eventually(t, func() bool {
		_, body = doRequest(t, app, http.MethodGet, "/sessions/"+id, nil)
		return body["state"] == string(state)
	}, 2*time.Second, 10*time.Millisecond)
	return body
}

func TestHandlers_FullFlow(t *testing.T) {
	app := newTestApp(t, analysisJSON)
	id := createSession(t, app)

	status, body := doRequest(t, app, http.MethodGet, "/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "idle", body["state"])
	assert.Equal(t, 1.0, body["step"])
	assert.Nil(t, body["error"])

	fillProfile(t, app, id)

	status, body = doRequest(t, app, http.MethodPost, "/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusAccepted, status)
	assert.Equal(t, id, body["id"])
	assert.Equal(t, "loading", body["state"])

	body = waitForState(t, app, id, models.StateResult)
	assert.Equal(t, true, body["has_result"])

	status, body = doRequest(t, app, http.MethodGet, "/sessions/"+id+"/result", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 62.0, body["readinessScore"])
	paths := body["paths"].([]any)
	require.Len(t, paths, 2)
	assert.Equal(t, "Fast Track", paths[0].(map[string]any)["name"])
	assert.Equal(t, "Balanced Track", paths[1].(map[string]any)["name"])

	status, body = doRequest(t, app, http.MethodGet, "/sessions/"+id+"/dashboard", nil)
	require.Equal(t, http.StatusOK, status)
	readiness := body["readiness"].(map[string]any)
	assert.Equal(t, "62%", readiness["label"])
	assert.InDelta(t, 0.62, readiness["fraction"], 1e-9)
	cards := body["paths"].([]any)
	assert.Equal(t, "high", cards[0].(map[string]any)["emphasis"])
	assert.Equal(t, "normal", cards[1].(map[string]any)["emphasis"])

	status, body = doRequest(t, app, http.MethodPost, "/sessions/"+id+"/reset", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "idle", body["state"])
	assert.Equal(t, 1.0, body["step"])
	assert.Equal(t, false, body["has_result"])
}

func TestHandlers_FailureShowsErrorBanner(t *testing.T) {
	app := newTestApp(t, "not json")
	id := createSession(t, app)
	fillProfile(t, app, id)

	status, _ := doRequest(t, app, http.MethodPost, "/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusAccepted, status)

	var body map[string]any
	require.Eventually(t, func() bool {
		_, body = doRequest(t, app, http.MethodGet, "/sessions/"+id, nil)
		return body["error"] != nil
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "idle", body["state"])
	assert.Equal(t, models.AnalysisFailedMessage, body["error"])
	assert.Equal(t, 3.0, body["step"])
	assert.Equal(t, []any{"Python"}, body["draft"].(map[string]any)["skills"])

	status, body = doRequest(t, app, http.MethodGet, "/sessions/"+id+"/result", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, models.AnalysisFailedMessage, body["error"])

	status, body = doRequest(t, app, http.MethodPost, "/sessions/"+id+"/dismiss-error", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, body["error"])
}

func TestHandlers_SubmitBeforeFinalStep(t *testing.T) {
	app := newTestApp(t, analysisJSON)
	id := createSession(t, app)

	status, body := doRequest(t, app, http.MethodPost, "/sessions/"+id+"/submit", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, services.ErrNotOnFinalStep.Error(), body["error"])
}

func TestHandlers_ResultBeforeAnalysis(t *testing.T) {
	app := newTestApp(t, analysisJSON)
	id := createSession(t, app)

	status, body := doRequest(t, app, http.MethodGet, "/sessions/"+id+"/dashboard", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "idle", body["state"])
}

func TestHandlers_InvalidProfileFields(t *testing.T) {
	app := newTestApp(t, analysisJSON)
	id := createSession(t, app)

	status, body := doRequest(t, app, http.MethodPatch, "/sessions/"+id+"/wizard/profile", map[string]string{
		"proficiency": "Expert",
		"timeline":    "2 Years",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "proficiency")
	assert.Contains(t, fields, "timeline")

	status, body = doRequest(t, app, http.MethodPatch, "/sessions/"+id+"/wizard/profile", map[string]string{
		"timeline":      "1 Year",
		"learningStyle": "Videos",
	})
	require.Equal(t, http.StatusOK, status)
	draft := body["draft"].(map[string]any)
	assert.Equal(t, "1 Year", draft["timeline"])
	assert.Equal(t, "Videos", draft["learningStyle"])
	assert.Equal(t, "Beginner", draft["proficiency"])
}

func TestHandlers_ListEditing(t *testing.T) {
	app := newTestApp(t, analysisJSON)
	id := createSession(t, app)
	base := "/sessions/" + id + "/wizard/skills"

	doRequest(t, app, http.MethodPost, base, map[string]string{"value": "  Go  "})
	doRequest(t, app, http.MethodPost, base, map[string]string{"value": "   "})
	_, body := doRequest(t, app, http.MethodPost, base, map[string]string{"value": "SQL"})
	assert.Equal(t, []any{"Go", "SQL"}, body["draft"].(map[string]any)["skills"])

	status, body := doRequest(t, app, http.MethodDelete, base+"/5", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"Go", "SQL"}, body["draft"].(map[string]any)["skills"])

	_, body = doRequest(t, app, http.MethodDelete, base+"/0", nil)
	assert.Equal(t, []any{"SQL"}, body["draft"].(map[string]any)["skills"])

	status, _ = doRequest(t, app, http.MethodDelete, base+"/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHandlers_SessionLookupErrors(t *testing.T) {
	app := newTestApp(t, analysisJSON)

	status, body := doRequest(t, app, http.MethodGet, "/sessions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid session ID format", body["error"])

	status, _ = doRequest(t, app, http.MethodGet, "/sessions/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, status)

	id := createSession(t, app)
	status, _ = doRequest(t, app, http.MethodDelete, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = doRequest(t, app, http.MethodGet, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHandlers_Health(t *testing.T) {
	app := newTestApp(t, analysisJSON)

	status, body := doRequest(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
}
