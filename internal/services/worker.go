package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/career-architect/internal/models"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(job AnalysisJob) (*AnalysisTask, error)
	InFlight(sessionID uuid.UUID) bool
}

// AnalysisJob is one profile waiting for the model. OnSettled is called
// exactly once, from the worker goroutine, before the task completes.
type AnalysisJob struct {
	SessionID uuid.UUID
	Profile   models.UserProfile
	OnSettled func(result *models.ArchitectResponse, err error)
}

type queuedJob struct {
	job  AnalysisJob
	task *AnalysisTask
}

type worker struct {
	analyzer    Analyzer
	metrics     *Metrics
	log         *zap.Logger
	jobQueue    chan queuedJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once

	mu       sync.Mutex
	baseCtx  context.Context
	inFlight map[uuid.UUID]*AnalysisTask
}

func NewWorker(
	analyzer Analyzer,
	metrics *Metrics,
	log *zap.Logger,
	concurrency int,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &worker{
		analyzer:    analyzer,
		metrics:     metrics,
		log:         log,
		jobQueue:    make(chan queuedJob, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
		baseCtx:     context.Background(),
		inFlight:    make(map[uuid.UUID]*AnalysisTask),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.log.Info("🚀 Starting worker", zap.Int("concurrency", w.concurrency))

	w.mu.Lock()
	w.baseCtx = ctx
	w.mu.Unlock()

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(i + 1)
	}
}

// Stop cancels in-flight analyses and fails anything still queued.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.log.Info("🛑 Stopping worker...")
		close(w.stopChan)

		w.mu.Lock()
		for _, task := range w.inFlight {
			task.Cancel()
		}
		w.mu.Unlock()

		w.wg.Wait()

		for {
			select {
			case q := <-w.jobQueue:
				w.run(q)
			default:
				w.log.Info("✅ Worker stopped")
				return
			}
		}
	})
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(job AnalysisJob) (*AnalysisTask, error) {
	select {
	case <-w.stopChan:
		return nil, ErrWorkerStopped
	default:
	}

	w.mu.Lock()
	task := NewTask[*models.ArchitectResponse](w.baseCtx)
	w.inFlight[job.SessionID] = task
	w.mu.Unlock()

	select {
	case w.jobQueue <- queuedJob{job: job, task: task}:
		w.log.Info("📥 Analysis enqueued", zap.Stringer("session_id", job.SessionID))
		return task, nil
	case <-w.stopChan:
		w.forget(job.SessionID, task)
		return nil, ErrWorkerStopped
	}
}

// InFlight implements Worker.
func (w *worker) InFlight(sessionID uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.inFlight[sessionID]
	return ok
}

func (w *worker) processJobs(workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.log.Debug("👷 Worker stopped", zap.Int("worker", workerID))
			return
		case q := <-w.jobQueue:
			w.log.Info("👷 Processing analysis",
				zap.Int("worker", workerID),
				zap.Stringer("session_id", q.job.SessionID),
			)
			w.run(q)
		}
	}
}

func (w *worker) run(q queuedJob) {
	q.task.Run(func(ctx context.Context) (*models.ArchitectResponse, error) {
		defer w.forget(q.job.SessionID, q.task)

		w.metrics.AnalysesInFlight.Inc()
		start := time.Now()
		result, err := w.analyzer.Analyze(ctx, q.job.Profile)
		w.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
		w.metrics.AnalysesInFlight.Dec()

		if err != nil {
			w.metrics.AnalysesTotal.WithLabelValues(OutcomeFailure).Inc()
			w.log.Error("❌ Analysis failed",
				zap.Stringer("session_id", q.job.SessionID),
				zap.Error(err),
			)
		} else {
			w.metrics.AnalysesTotal.WithLabelValues(OutcomeSuccess).Inc()
			w.log.Info("✅ Analysis completed", zap.Stringer("session_id", q.job.SessionID))
		}

		if q.job.OnSettled != nil {
			q.job.OnSettled(result, err)
		}
		return result, err
	})
}

func (w *worker) forget(sessionID uuid.UUID, task *AnalysisTask) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight[sessionID] == task {
		delete(w.inFlight, sessionID)
	}
}
