package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/career-architect/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCareerAnalysisPrompt embeds every profile field. List fields are
// joined with ", ".
func (pb *PromptBuilder) BuildCareerAnalysisPrompt(profile models.UserProfile) string {
	return fmt.Sprintf(`As an AI Career Architect, analyze this user profile and provide a detailed career roadmap.
User Profile:
- Education: %s in %s (Year: %s)
- Current Skills: %s
- Proficiency: %s
- Target Roles: %s
- Availability: %s
- Timeline: %s
- Learning Style: %s

Follow the strict output format required for an Architect analysis. Be realistic, technical, and mentor-like.
Ensure the readiness score is a number between 0 and 100.
Provide at least 2 distinct career paths (Fast Track and Balanced Track).
Provide a 30-day (4-week) action plan.`,
		profile.Education.Degree,
		profile.Education.Branch,
		profile.Education.Year,
		strings.Join(profile.Skills, ", "),
		profile.Proficiency,
		strings.Join(profile.TargetRoles, ", "),
		profile.Availability,
		profile.Timeline,
		profile.LearningStyle,
	)
}
