// Package dashboard turns an analysis result into a read-only view model.
// Rendering is pure: inputs are never mutated and every list is copied.
package dashboard

import (
	"strconv"

	"alfredoptarigan/career-architect/internal/models"
)

type Emphasis string

const (
	EmphasisHigh   Emphasis = "high"
	EmphasisNormal Emphasis = "normal"
)

// HighConfidenceThreshold is exclusive: a score must exceed it.
const HighConfidenceThreshold = 80

type DistributionSlice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

type SkillGapPanel struct {
	Strong       []string            `json:"strong"`
	Partial      []string            `json:"partial"`
	Missing      []string            `json:"missing"`
	Distribution []DistributionSlice `json:"distribution"`
}

type ReadinessGauge struct {
	Score float64 `json:"score"`
	// Fraction is Score/100 and is not clamped.
	Fraction float64 `json:"fraction"`
	Label    string  `json:"label"`
	Caption  string  `json:"caption"`
}

type PathCard struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	ReadinessLevel  float64  `json:"readinessLevel"`
	ConfidenceScore float64  `json:"confidenceScore"`
	ConfidenceLabel string   `json:"confidenceLabel"`
	Emphasis        Emphasis `json:"emphasis"`
	TradeOffs       string   `json:"tradeOffs"`
}

type TimelineEntry struct {
	Week  float64  `json:"week"`
	Label string   `json:"label"`
	Focus string   `json:"focus"`
	Tasks []string `json:"tasks"`
}

type ProjectCard struct {
	Name           string   `json:"name"`
	Tags           []string `json:"tags"`
	Relevance      string   `json:"relevance"`
	GithubStrategy string   `json:"githubStrategy"`
}

type Dashboard struct {
	SkillGap  SkillGapPanel   `json:"skillGap"`
	Readiness ReadinessGauge  `json:"readiness"`
	Paths     []PathCard      `json:"paths"`
	Timeline  []TimelineEntry `json:"timeline"`
	Projects  []ProjectCard   `json:"projects"`
	Advice    string          `json:"advice"`
}

func ConfidenceEmphasis(score float64) Emphasis {
	if score > HighConfidenceThreshold {
		return EmphasisHigh
	}
	return EmphasisNormal
}

func Render(r *models.ArchitectResponse) Dashboard {
	gap := r.SkillGapAnalysis

	d := Dashboard{
		SkillGap: SkillGapPanel{
			Strong:  copyStrings(gap.Strong),
			Partial: copyStrings(gap.Partial),
			Missing: copyStrings(gap.Missing),
			Distribution: []DistributionSlice{
				{Label: "Strong", Count: len(gap.Strong), Color: "#10b981"},
				{Label: "Partial", Count: len(gap.Partial), Color: "#f59e0b"},
				{Label: "Missing", Count: len(gap.Missing), Color: "#ef4444"},
			},
		},
		Readiness: ReadinessGauge{
			Score:    r.ReadinessScore,
			Fraction: r.ReadinessScore / 100,
			Label:    percent(r.ReadinessScore),
			Caption:  r.Reasoning,
		},
		Paths:    make([]PathCard, 0, len(r.Paths)),
		Timeline: make([]TimelineEntry, 0, len(r.ActionPlan)),
		Projects: make([]ProjectCard, 0, len(r.Projects)),
		Advice:   r.OptimizationAdvice,
	}

	for _, p := range r.Paths {
		d.Paths = append(d.Paths, PathCard{
			Name:            p.Name,
			Description:     p.Description,
			ReadinessLevel:  p.ReadinessLevel,
			ConfidenceScore: p.ConfidenceScore,
			ConfidenceLabel: percent(p.ConfidenceScore) + " Confidence",
			Emphasis:        ConfidenceEmphasis(p.ConfidenceScore),
			TradeOffs:       p.TradeOffs,
		})
	}

	for _, w := range r.ActionPlan {
		d.Timeline = append(d.Timeline, TimelineEntry{
			Week:  w.Week,
			Label: "Week " + formatNumber(w.Week),
			Focus: w.Focus,
			Tasks: copyStrings(w.Tasks),
		})
	}

	for _, p := range r.Projects {
		d.Projects = append(d.Projects, ProjectCard{
			Name:           p.Name,
			Tags:           copyStrings(p.SkillsGained),
			Relevance:      p.Relevance,
			GithubStrategy: p.GithubStrategy,
		})
	}

	return d
}

func percent(v float64) string {
	return formatNumber(v) + "%"
}

// formatNumber prints integral values without a decimal point.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func copyStrings(in []string) []string {
	return append(make([]string, 0, len(in)), in...)
}
