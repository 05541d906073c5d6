package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/career-architect/internal/models"
)

func promptLine(t *testing.T, prompt, prefix string) string {
	t.Helper()
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix)
		}
	}
	require.Failf(t, "missing prompt line", "prefix %q", prefix)
	return ""
}

func TestBuildCareerAnalysisPrompt_EmbedsProfile(t *testing.T) {
	profile := analystProfile()
	profile.Proficiency = models.ProficiencyIntermediate
	profile.Timeline = models.TimelineThreeMonths
	profile.LearningStyle = models.LearningStyleProjects

	prompt := NewPromptBuilder().BuildCareerAnalysisPrompt(profile)

	assert.Equal(t, "B.Sc in CS (Year: 3)", promptLine(t, prompt, "- Education: "))
	assert.Equal(t, "Python, SQL", promptLine(t, prompt, "- Current Skills: "))
	assert.Equal(t, "Intermediate", promptLine(t, prompt, "- Proficiency: "))
	assert.Equal(t, "Data Analyst", promptLine(t, prompt, "- Target Roles: "))
	assert.Equal(t, "10", promptLine(t, prompt, "- Availability: "))
	assert.Equal(t, "3 Months", promptLine(t, prompt, "- Timeline: "))
	assert.Equal(t, "Projects", promptLine(t, prompt, "- Learning Style: "))
}

func TestBuildCareerAnalysisPrompt_ListsRecoverable(t *testing.T) {
	profile := analystProfile()
	profile.Skills = []string{"Go", "Kubernetes", "gRPC"}
	profile.TargetRoles = []string{"Platform Engineer", "SRE"}

	prompt := NewPromptBuilder().BuildCareerAnalysisPrompt(profile)

	assert.Equal(t, profile.Skills, strings.Split(promptLine(t, prompt, "- Current Skills: "), ", "))
	assert.Equal(t, profile.TargetRoles, strings.Split(promptLine(t, prompt, "- Target Roles: "), ", "))
}

func TestBuildCareerAnalysisPrompt_Instructions(t *testing.T) {
	prompt := NewPromptBuilder().BuildCareerAnalysisPrompt(models.NewUserProfile())

	assert.Contains(t, prompt, "readiness score is a number between 0 and 100")
	assert.Contains(t, prompt, "at least 2 distinct career paths")
	assert.Contains(t, prompt, "30-day (4-week) action plan")
}
