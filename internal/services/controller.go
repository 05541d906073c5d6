package services

import (
	"alfredoptarigan/career-architect/internal/models"
	"alfredoptarigan/career-architect/internal/wizard"
)

// The functions below are the controller's state machine. They only
// mutate the session passed in; persistence is the caller's job.
//
//	idle    --submit-->  loading
//	loading --success--> result
//	loading --failure--> idle + error
//	result  --reset-->   idle (fresh wizard)

// EditWizard applies fn to the session's wizard. Only allowed while idle.
func EditWizard(s *models.Session, fn func(w *wizard.Wizard)) error {
	if s.State != models.StateIdle {
		return ErrWizardLocked
	}
	w := wizard.Restore(s.Step, s.Draft)
	fn(w)
	s.Step = int(w.Step)
	s.Draft = w.Draft
	return nil
}

// BeginAnalysis moves idle to loading and returns the profile to analyse.
func BeginAnalysis(s *models.Session) (models.UserProfile, error) {
	switch s.State {
	case models.StateLoading:
		return models.UserProfile{}, ErrAnalysisInProgress
	case models.StateResult:
		return models.UserProfile{}, ErrInvalidTransition
	}

	profile, ok := wizard.Restore(s.Step, s.Draft).Submit()
	if !ok {
		return models.UserProfile{}, ErrNotOnFinalStep
	}

	s.State = models.StateLoading
	s.ErrorMessage = ""
	s.Result = nil
	return profile, nil
}

func CompleteAnalysis(s *models.Session, result *models.ArchitectResponse) error {
	if s.State != models.StateLoading {
		return ErrInvalidTransition
	}
	s.State = models.StateResult
	s.Result = result
	s.ErrorMessage = ""
	return nil
}

// FailAnalysis returns to idle with the error banner set. The draft is
// kept so the user can submit again.
func FailAnalysis(s *models.Session) error {
	if s.State != models.StateLoading {
		return ErrInvalidTransition
	}
	s.State = models.StateIdle
	s.Result = nil
	s.ErrorMessage = models.AnalysisFailedMessage
	return nil
}

// ResetSession clears the result and error. Leaving the result view
// starts a fresh wizard.
func ResetSession(s *models.Session) error {
	switch s.State {
	case models.StateLoading:
		return ErrAnalysisInProgress
	case models.StateResult:
		w := wizard.New()
		s.Step = int(w.Step)
		s.Draft = w.Draft
	}
	s.State = models.StateIdle
	s.Result = nil
	s.ErrorMessage = ""
	return nil
}

func DismissError(s *models.Session) {
	s.ErrorMessage = ""
}
