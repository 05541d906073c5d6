package services

import (
	"errors"

	"alfredoptarigan/career-architect/internal/repositories"
)

var (
	// ErrAnalysisFailed covers every analysis failure. Causes are only
	// kept for logs.
	ErrAnalysisFailed = errors.New("analysis failed")

	ErrSessionNotFound    = repositories.ErrSessionNotFound
	ErrAnalysisInProgress = errors.New("analysis already in progress")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrWizardLocked       = errors.New("wizard is not editable in the current state")
	ErrNotOnFinalStep     = errors.New("profile can only be submitted from the final step")
	ErrWorkerStopped      = errors.New("worker stopped")
)
