// Package worker consumes analysis jobs from the queue, runs the
// orchestrator and governs retry semantics at the job boundary.
package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/sahilKumar1122/pr-pilot/internal/analyzer"
	"github.com/sahilKumar1122/pr-pilot/internal/errors"
	"github.com/sahilKumar1122/pr-pilot/internal/logger"
	"github.com/sahilKumar1122/pr-pilot/internal/models"
	"github.com/sahilKumar1122/pr-pilot/internal/queue"
)

// Orchestrator runs one full analysis attempt
type Orchestrator interface {
	Analyze(ctx context.Context, repoFullName string, number int) models.AnalysisResult
}

// CommentPoster delivers the formatted comment to the pull request
type CommentPoster interface {
	PostComment(ctx context.Context, repoFullName string, number int, body string) error
}

// StatusRecorder records per-attempt job outcomes
type StatusRecorder interface {
	Record(ctx context.Context, status models.JobStatus) error
}

// Worker handles analysis job deliveries. Deliveries are at-least-once;
// handling must not assume exactly-once execution.
type Worker struct {
	orchestrator Orchestrator
	vcs          CommentPoster
	statuses     StatusRecorder
	log          *logger.Logger
}

// New creates a worker over explicit collaborator handles
func New(orchestrator Orchestrator, vcs CommentPoster, statuses StatusRecorder, log *logger.Logger) *Worker {
	return &Worker{
		orchestrator: orchestrator,
		vcs:          vcs,
		statuses:     statuses,
		log:          log,
	}
}

// HandlePRAnalysis processes one job delivery. Returning an error hands the
// job back to the queue for scheduled redelivery until retries are
// exhausted; a nil return acknowledges the delivery.
func (w *Worker) HandlePRAnalysis(ctx context.Context, t *asynq.Task) error {
	job, err := queue.ParseAnalysisTask(t)
	if err != nil {
		// A malformed payload never succeeds, do not requeue it
		w.log.Error("Dropping malformed analysis task", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	taskID, _ := asynq.GetTaskID(ctx)
	retryCount, okRetry := asynq.GetRetryCount(ctx)
	maxRetry, okMax := asynq.GetMaxRetry(ctx)
	attempt := retryCount + 1

	log := w.log.With("task_id", taskID).With("repo", job.Repository).
		With("pr_number", job.PRNumber).With("attempt", attempt)
	log.Info("Processing analysis job")

	result := w.orchestrator.Analyze(ctx, job.Repository, job.PRNumber)
	if !result.Success {
		status := failureStatus(retryCount, maxRetry, okRetry && okMax)
		if status == models.JobStatusError {
			log.Errorf("Analysis failed terminally after %d attempts: %s", attempt, result.Error)
		}
		w.record(ctx, taskID, job, status, attempt, result.Error)
		return fmt.Errorf("analysis of %s#%d failed: %s", job.Repository, job.PRNumber, result.Error)
	}

	comment := analyzer.FormatComment(result)
	if err := w.vcs.PostComment(ctx, job.Repository, job.PRNumber, comment); err != nil {
		// Analysis succeeded but delivery did not: distinct outcome,
		// not retried by the controller
		appErr := errors.DeliveryFailed(err)
		log.Error("Comment delivery failed, recording partial success", err)
		w.record(ctx, taskID, job, models.JobStatusPartialSuccess, attempt, appErr.Error())
		return nil
	}

	log.Info("Analysis comment posted")
	w.record(ctx, taskID, job, models.JobStatusSuccess, attempt, "")
	return nil
}

// failureStatus decides the recorded status for a failed attempt. A final
// failed attempt is terminal; without retry metadata (hasMeta false, as on
// bare contexts) the attempt is assumed non-terminal.
func failureStatus(retryCount, maxRetry int, hasMeta bool) string {
	if hasMeta && retryCount >= maxRetry {
		return models.JobStatusError
	}
	return models.JobStatusRetrying
}

func (w *Worker) record(ctx context.Context, taskID string, job models.AnalysisJob, status string, attempt int, errText string) {
	err := w.statuses.Record(ctx, models.JobStatus{
		TaskID:     taskID,
		Repository: job.Repository,
		PRNumber:   job.PRNumber,
		Status:     status,
		Attempt:    attempt,
		Error:      errText,
	})
	if err != nil {
		w.log.Error("Failed to record job status", err)
	}
}
