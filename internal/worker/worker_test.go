package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilKumar1122/pr-pilot/internal/logger"
	"github.com/sahilKumar1122/pr-pilot/internal/models"
	"github.com/sahilKumar1122/pr-pilot/internal/queue"
)

type fakeOrchestrator struct {
	result models.AnalysisResult
}

func (f *fakeOrchestrator) Analyze(ctx context.Context, repo string, number int) models.AnalysisResult {
	return f.result
}

type fakePoster struct {
	err    error
	posted []string
}

func (f *fakePoster) PostComment(ctx context.Context, repo string, number int, body string) error {
	if f.err != nil {
		return f.err
	}
	f.posted = append(f.posted, body)
	return nil
}

type fakeRecorder struct {
	statuses []models.JobStatus
}

func (f *fakeRecorder) Record(ctx context.Context, status models.JobStatus) error {
	f.statuses = append(f.statuses, status)
	return nil
}

func analysisTask(t *testing.T) *asynq.Task {
	t.Helper()
	task, err := queue.NewAnalysisTask(models.AnalysisJob{Repository: "org/repo", PRNumber: 42})
	require.NoError(t, err)
	return task
}

func newTestWorker(orch Orchestrator, poster CommentPoster, recorder StatusRecorder) *Worker {
	return New(orch, poster, recorder, logger.New("error", "json"))
}

func TestHandlePRAnalysisSuccess(t *testing.T) {
	poster := &fakePoster{}
	recorder := &fakeRecorder{}
	w := newTestWorker(&fakeOrchestrator{result: models.AnalysisResult{
		Success: true,
		Summary: "summary",
		PRType:  "bug",
	}}, poster, recorder)

	err := w.HandlePRAnalysis(context.Background(), analysisTask(t))

	require.NoError(t, err)
	require.Len(t, poster.posted, 1)
	assert.Contains(t, poster.posted[0], "PR Pilot Analysis")
	require.Len(t, recorder.statuses, 1)
	assert.Equal(t, models.JobStatusSuccess, recorder.statuses[0].Status)
	assert.Equal(t, 1, recorder.statuses[0].Attempt)
}

func TestHandlePRAnalysisFailureIsRetried(t *testing.T) {
	recorder := &fakeRecorder{}
	w := newTestWorker(&fakeOrchestrator{result: models.AnalysisResult{
		Success: false,
		Error:   "404 Not Found",
	}}, &fakePoster{}, recorder)

	err := w.HandlePRAnalysis(context.Background(), analysisTask(t))

	// A returned error asks the queue to redeliver
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
	require.Len(t, recorder.statuses, 1)
	assert.Equal(t, models.JobStatusRetrying, recorder.statuses[0].Status)
	assert.Equal(t, "404 Not Found", recorder.statuses[0].Error)
}

func TestFailureStatus(t *testing.T) {
	tests := []struct {
		name       string
		retryCount int
		maxRetry   int
		hasMeta    bool
		want       string
	}{
		{"first attempt", 0, 3, true, models.JobStatusRetrying},
		{"last retry pending", 2, 3, true, models.JobStatusRetrying},
		{"retries exhausted", 3, 3, true, models.JobStatusError},
		{"beyond budget", 4, 3, true, models.JobStatusError},
		{"no retry metadata", 3, 3, false, models.JobStatusRetrying},
		{"retries disabled", 0, 0, true, models.JobStatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failureStatus(tt.retryCount, tt.maxRetry, tt.hasMeta))
		})
	}
}

func TestHandlePRAnalysisPartialSuccess(t *testing.T) {
	poster := &fakePoster{err: errors.New("403 Forbidden")}
	recorder := &fakeRecorder{}
	w := newTestWorker(&fakeOrchestrator{result: models.AnalysisResult{
		Success: true,
	}}, poster, recorder)

	err := w.HandlePRAnalysis(context.Background(), analysisTask(t))

	// Delivery failure is not retried: analysis succeeded
	require.NoError(t, err)
	require.Len(t, recorder.statuses, 1)
	assert.Equal(t, models.JobStatusPartialSuccess, recorder.statuses[0].Status)
	assert.Contains(t, recorder.statuses[0].Error, "DELIVERY_FAILED")
	assert.Contains(t, recorder.statuses[0].Error, "403 Forbidden")
}

func TestHandlePRAnalysisMalformedPayload(t *testing.T) {
	recorder := &fakeRecorder{}
	w := newTestWorker(&fakeOrchestrator{}, &fakePoster{}, recorder)

	err := w.HandlePRAnalysis(context.Background(), asynq.NewTask(queue.TypePRAnalysis, []byte("not-json")))

	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, recorder.statuses)
}
