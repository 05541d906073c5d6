package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/career-architect/internal/models"
)

func newTestWorker(t *testing.T, analyzer Analyzer, concurrency int) (Worker, *Metrics) {
	t.Helper()
	metrics := NewMetrics(prometheus.NewRegistry())
	w := NewWorker(analyzer, metrics, zap.NewNop(), concurrency)
	w.Start(context.Background())
	t.Cleanup(w.Stop)
	return w, metrics
}

func TestWorker_SettlesBeforeTaskCompletes(t *testing.T) {
	var settled atomic.Bool
	analyzer := analyzerFunc(func(ctx context.Context, profile models.UserProfile) (*models.ArchitectResponse, error) {
		return &models.ArchitectResponse{ReadinessScore: 62}, nil
	})
	w, metrics := newTestWorker(t, analyzer, 2)

	task, err := w.EnqueueJob(AnalysisJob{
		SessionID: uuid.New(),
		Profile:   analystProfile(),
		OnSettled: func(result *models.ArchitectResponse, err error) {
			settled.Store(true)
		},
	})
	require.NoError(t, err)

	result, err := task.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 62.0, result.ReadinessScore)
	assert.True(t, settled.Load())
	assert.Equal(t, 1.0, metricValue(t, metrics.AnalysesTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 0.0, metricValue(t, metrics.AnalysesInFlight))
}

func TestWorker_Failure(t *testing.T) {
	analyzer := analyzerFunc(func(ctx context.Context, profile models.UserProfile) (*models.ArchitectResponse, error) {
		return nil, ErrAnalysisFailed
	})
	w, metrics := newTestWorker(t, analyzer, 1)

	var settledErr error
	task, err := w.EnqueueJob(AnalysisJob{
		SessionID: uuid.New(),
		OnSettled: func(result *models.ArchitectResponse, err error) { settledErr = err },
	})
	require.NoError(t, err)

	_, err = task.Wait(context.Background())
	assert.ErrorIs(t, err, ErrAnalysisFailed)
	assert.ErrorIs(t, settledErr, ErrAnalysisFailed)
	assert.Equal(t, 1.0, metricValue(t, metrics.AnalysesTotal.WithLabelValues(OutcomeFailure)))
}

func TestWorker_InFlight(t *testing.T) {
	release := make(chan struct{})
	analyzer := analyzerFunc(func(ctx context.Context, profile models.UserProfile) (*models.ArchitectResponse, error) {
		<-release
		return &models.ArchitectResponse{}, nil
	})
	w, _ := newTestWorker(t, analyzer, 1)

	id := uuid.New()
	task, err := w.EnqueueJob(AnalysisJob{SessionID: id})
	require.NoError(t, err)
	assert.True(t, w.InFlight(id))
	assert.False(t, w.InFlight(uuid.New()))

	close(release)
	_, err = task.Wait(context.Background())
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return !w.InFlight(id) }, time.Second, 5*time.Millisecond)
}

func TestWorker_StopCancelsInFlight(t *testing.T) {
	started := make(chan struct{})
	analyzer := analyzerFunc(func(ctx context.Context, profile models.UserProfile) (*models.ArchitectResponse, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	metrics := NewMetrics(prometheus.NewRegistry())
	w := NewWorker(analyzer, metrics, zap.NewNop(), 1)
	w.Start(context.Background())

	var settledErr error
	task, err := w.EnqueueJob(AnalysisJob{
		SessionID: uuid.New(),
		OnSettled: func(result *models.ArchitectResponse, err error) { settledErr = err },
	})
	require.NoError(t, err)
	<-started

	w.Stop()

	_, err = task.Wait(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, settledErr, context.Canceled)

	_, err = w.EnqueueJob(AnalysisJob{SessionID: uuid.New()})
	assert.True(t, errors.Is(err, ErrWorkerStopped))
}

func TestWorker_StopSettlesQueuedJobs(t *testing.T) {
	analyzer := analyzerFunc(func(ctx context.Context, profile models.UserProfile) (*models.ArchitectResponse, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &models.ArchitectResponse{}, nil
	})
	metrics := NewMetrics(prometheus.NewRegistry())
	// never started, so jobs stay queued until Stop drains them
	w := NewWorker(analyzer, metrics, zap.NewNop(), 1)

	var settled atomic.Int32
	tasks := make([]*AnalysisTask, 0, 3)
	for i := 0; i < 3; i++ {
		task, err := w.EnqueueJob(AnalysisJob{
			SessionID: uuid.New(),
			OnSettled: func(result *models.ArchitectResponse, err error) { settled.Add(1) },
		})
		require.NoError(t, err)
		tasks = append(tasks, task)
	}

	w.Stop()

	for _, task := range tasks {
		assert.True(t, task.Settled())
		_, err := task.Wait(context.Background())
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, int32(3), settled.Load())
}
