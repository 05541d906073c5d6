package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/career-architect/internal/models"
	"alfredoptarigan/career-architect/internal/repositories"
	"alfredoptarigan/career-architect/internal/wizard"
)

type SessionService interface {
	Create(ctx context.Context) (*models.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
	End(ctx context.Context, id uuid.UUID) error
	EditWizard(ctx context.Context, id uuid.UUID, fn func(w *wizard.Wizard)) (*models.Session, error)
	Submit(ctx context.Context, id uuid.UUID) (*models.Session, *AnalysisTask, error)
	Reset(ctx context.Context, id uuid.UUID) (*models.Session, error)
	DismissError(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Sweep(ctx context.Context) error
	RunJanitor(ctx context.Context, interval time.Duration)
}

type sessionService struct {
	repo       repositories.SessionRepository
	worker     Worker
	metrics    *Metrics
	log        *zap.Logger
	ttl        time.Duration
	staleAfter time.Duration
	locks      *keyedMutex
	now        func() time.Time
}

func NewSessionService(
	repo repositories.SessionRepository,
	worker Worker,
	metrics *Metrics,
	log *zap.Logger,
	ttl time.Duration,
	staleAfter time.Duration,
) SessionService {
	return &sessionService{
		repo:       repo,
		worker:     worker,
		metrics:    metrics,
		log:        log,
		ttl:        ttl,
		staleAfter: staleAfter,
		locks:      newKeyedMutex(),
		now:        time.Now,
	}
}

// Create implements SessionService.
func (s *sessionService) Create(ctx context.Context) (*models.Session, error) {
	w := wizard.New()
	now := s.now()
	session := &models.Session{
		ID:        uuid.New(),
		State:     models.StateIdle,
		Step:      int(w.Step),
		Draft:     w.Draft,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.metrics.SessionsCreated.Inc()
	s.log.Info("🆕 Session created", zap.Stringer("session_id", session.ID))
	return session, nil
}

// Get implements SessionService.
func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return s.repo.FindByID(ctx, id)
}

// End implements SessionService. An analysis still running for the
// session is left to finish; its outcome is dropped.
func (s *sessionService) End(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("🗑️ Session ended", zap.Stringer("session_id", id))
	return nil
}

// EditWizard implements SessionService.
func (s *sessionService) EditWizard(ctx context.Context, id uuid.UUID, fn func(w *wizard.Wizard)) (*models.Session, error) {
	return s.mutate(ctx, id, func(session *models.Session) error {
		return EditWizard(session, fn)
	})
}

// Submit implements SessionService.
func (s *sessionService) Submit(ctx context.Context, id uuid.UUID) (*models.Session, *AnalysisTask, error) {
	var profile models.UserProfile
	session, err := s.mutate(ctx, id, func(session *models.Session) error {
		var err error
		profile, err = BeginAnalysis(session)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	task, err := s.worker.EnqueueJob(AnalysisJob{
		SessionID: id,
		Profile:   profile,
		OnSettled: func(result *models.ArchitectResponse, err error) {
			s.settle(id, result, err)
		},
	})
	if err != nil {
		s.settle(id, nil, err)
		return nil, nil, fmt.Errorf("failed to enqueue analysis: %w", err)
	}

	return session, task, nil
}

// Reset implements SessionService.
func (s *sessionService) Reset(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return s.mutate(ctx, id, ResetSession)
}

// DismissError implements SessionService.
func (s *sessionService) DismissError(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return s.mutate(ctx, id, func(session *models.Session) error {
		DismissError(session)
		return nil
	})
}

// settle applies the single outcome of an analysis.
func (s *sessionService) settle(id uuid.UUID, result *models.ArchitectResponse, analysisErr error) {
	ctx := context.Background()

	_, err := s.mutate(ctx, id, func(session *models.Session) error {
		if analysisErr != nil {
			return FailAnalysis(session)
		}
		return CompleteAnalysis(session, result)
	})

	switch {
	case errors.Is(err, ErrSessionNotFound):
		s.log.Info("⚠️ Session gone before analysis settled", zap.Stringer("session_id", id))
	case err != nil:
		s.log.Error("❌ Failed to store analysis outcome", zap.Stringer("session_id", id), zap.Error(err))
	}
}

// Sweep implements SessionService. It purges expired sessions and fails
// sessions left loading with no analysis running, which happens when a
// persistent store outlives a restart.
func (s *sessionService) Sweep(ctx context.Context) error {
	now := s.now()

	purged, err := s.repo.DeleteExpired(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	if purged > 0 {
		s.metrics.SessionsPurged.Add(float64(purged))
		s.log.Info("🧹 Purged expired sessions", zap.Int64("count", purged))
	}

	stale, err := s.repo.FindByState(ctx, models.StateLoading, now.Add(-s.staleAfter), 50)
	if err != nil {
		return fmt.Errorf("failed to find stale sessions: %w", err)
	}

	for _, session := range stale {
		if s.worker.InFlight(session.ID) {
			continue
		}
		_, err := s.mutate(ctx, session.ID, FailAnalysis)
		switch {
		case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrInvalidTransition):
			// settled or ended since the lookup
		case err != nil:
			s.log.Warn("⚠️ Failed to recover stale session", zap.Stringer("session_id", session.ID), zap.Error(err))
		default:
			s.log.Warn("🔄 Recovered orphaned analysis", zap.Stringer("session_id", session.ID))
		}
	}

	return nil
}

// RunJanitor implements SessionService. It blocks until ctx is done.
func (s *sessionService) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("🔄 Starting session janitor", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("🔄 Session janitor stopped")
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.log.Warn("⚠️ Session sweep failed", zap.Error(err))
			}
		}
	}
}

// mutate loads, changes and saves a session under its lock. A failing
// fn leaves the stored session untouched.
func (s *sessionService) mutate(ctx context.Context, id uuid.UUID, fn func(session *models.Session) error) (*models.Session, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(session); err != nil {
		return nil, err
	}

	now := s.now()
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(s.ttl)

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*keyedLock
}

type keyedLock struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*keyedLock)}
}

// Lock returns the matching unlock func.
func (k *keyedMutex) Lock(id uuid.UUID) func() {
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &keyedLock{}
		k.locks[id] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
