// Package wizard implements the three-step intake form that builds a
// UserProfile draft. It performs no I/O.
package wizard

import (
	"strings"

	"alfredoptarigan/career-architect/internal/models"
)

// Step is the wizard page. The zero value is not a valid step.
type Step int

const (
	StepEducation Step = iota + 1
	StepSkills
	StepGoals
)

const (
	FirstStep = StepEducation
	LastStep  = StepGoals
)

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// Next saturates at LastStep.
func (s Step) Next() Step {
	if s >= LastStep {
		return LastStep
	}
	if s < FirstStep {
		return FirstStep
	}
	return s + 1
}

// Prev saturates at FirstStep.
func (s Step) Prev() Step {
	if s <= FirstStep {
		return FirstStep
	}
	if s > LastStep {
		return LastStep
	}
	return s - 1
}

func (s Step) String() string {
	switch s {
	case StepEducation:
		return "education"
	case StepSkills:
		return "skills"
	case StepGoals:
		return "goals"
	default:
		return "unknown"
	}
}

type Wizard struct {
	Step  Step
	Draft models.UserProfile
}

func New() *Wizard {
	return &Wizard{
		Step:  FirstStep,
		Draft: models.NewUserProfile(),
	}
}

// Restore rebuilds a wizard from persisted state. An out of range step
// is pulled back to the nearest valid one.
func Restore(step int, draft models.UserProfile) *Wizard {
	s := Step(step)
	switch {
	case s < FirstStep:
		s = FirstStep
	case s > LastStep:
		s = LastStep
	}
	return &Wizard{Step: s, Draft: draft}
}

func (w *Wizard) Advance() {
	w.Step = w.Step.Next()
}

func (w *Wizard) Retreat() {
	w.Step = w.Step.Prev()
}

func (w *Wizard) AddSkill(text string) bool {
	return appendTrimmed(&w.Draft.Skills, text)
}

func (w *Wizard) RemoveSkill(index int) bool {
	return removeAt(&w.Draft.Skills, index)
}

func (w *Wizard) AddTargetRole(text string) bool {
	return appendTrimmed(&w.Draft.TargetRoles, text)
}

func (w *Wizard) RemoveTargetRole(index int) bool {
	return removeAt(&w.Draft.TargetRoles, index)
}

func (w *Wizard) SetDegree(v string)       { w.Draft.Education.Degree = v }
func (w *Wizard) SetBranch(v string)       { w.Draft.Education.Branch = v }
func (w *Wizard) SetYear(v string)         { w.Draft.Education.Year = v }
func (w *Wizard) SetAvailability(v string) { w.Draft.Availability = v }

func (w *Wizard) SetProficiency(v models.Proficiency)     { w.Draft.Proficiency = v }
func (w *Wizard) SetTimeline(v models.Timeline)           { w.Draft.Timeline = v }
func (w *Wizard) SetLearningStyle(v models.LearningStyle) { w.Draft.LearningStyle = v }

// Submit hands out a copy of the draft. It only succeeds on the last step.
func (w *Wizard) Submit() (models.UserProfile, bool) {
	if w.Step != LastStep {
		return models.UserProfile{}, false
	}
	return w.Draft.Clone(), true
}

func appendTrimmed(list *[]string, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	*list = append(*list, text)
	return true
}

func removeAt(list *[]string, index int) bool {
	if index < 0 || index >= len(*list) {
		return false
	}
	out := make([]string, 0, len(*list)-1)
	out = append(out, (*list)[:index]...)
	out = append(out, (*list)[index+1:]...)
	*list = out
	return true
}
