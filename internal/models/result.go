package models

type SkillGap struct {
	Strong  []string `json:"strong"`
	Partial []string `json:"partial"`
	Missing []string `json:"missing"`
}

type CareerPath struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	ReadinessLevel  float64 `json:"readinessLevel"`
	ConfidenceScore float64 `json:"confidenceScore"`
	TradeOffs       string  `json:"tradeOffs"`
}

type RoadmapWeek struct {
	Week  float64  `json:"week"`
	Focus string   `json:"focus"`
	Tasks []string `json:"tasks"`
}

type ProjectSuggestion struct {
	Name           string   `json:"name"`
	SkillsGained   []string `json:"skillsGained"`
	Relevance      string   `json:"relevance"`
	GithubStrategy string   `json:"githubStrategy"`
}

// ArchitectResponse is the structured analysis returned by the model.
// Nothing here is range-checked locally.
type ArchitectResponse struct {
	SkillGapAnalysis   SkillGap            `json:"skillGapAnalysis"`
	ReadinessScore     float64             `json:"readinessScore"`
	Paths              []CareerPath        `json:"paths"`
	ActionPlan         []RoadmapWeek       `json:"actionPlan"`
	Projects           []ProjectSuggestion `json:"projects"`
	OptimizationAdvice string              `json:"optimizationAdvice"`
	Reasoning          string              `json:"reasoning"`
}

// Clone deep-copies r. A nil receiver yields nil.
func (r *ArchitectResponse) Clone() *ArchitectResponse {
	if r == nil {
		return nil
	}
	out := *r
	out.SkillGapAnalysis = SkillGap{
		Strong:  cloneStrings(r.SkillGapAnalysis.Strong),
		Partial: cloneStrings(r.SkillGapAnalysis.Partial),
		Missing: cloneStrings(r.SkillGapAnalysis.Missing),
	}
	if r.Paths != nil {
		out.Paths = append([]CareerPath{}, r.Paths...)
	}
	if r.ActionPlan != nil {
		out.ActionPlan = make([]RoadmapWeek, len(r.ActionPlan))
		for i, w := range r.ActionPlan {
			w.Tasks = cloneStrings(w.Tasks)
			out.ActionPlan[i] = w
		}
	}
	if r.Projects != nil {
		out.Projects = make([]ProjectSuggestion, len(r.Projects))
		for i, p := range r.Projects {
			p.SkillsGained = cloneStrings(p.SkillsGained)
			out.Projects[i] = p
		}
	}
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}
