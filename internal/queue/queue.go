// Package queue carries analysis jobs from the webhook API to the worker
// over a durable Redis-backed queue with at-least-once delivery.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/sahilKumar1122/pr-pilot/internal/config"
	"github.com/sahilKumar1122/pr-pilot/internal/models"
)

// TypePRAnalysis is the task type for pull request analysis jobs
const TypePRAnalysis = "pr:analyze"

// Enqueuer hands analysis jobs to the queue. The webhook handler depends on
// this interface so tests can substitute a fake.
type Enqueuer interface {
	EnqueueAnalysis(ctx context.Context, job models.AnalysisJob) (taskID string, err error)
}

// NewAnalysisTask builds an asynq task from an analysis job
func NewAnalysisTask(job models.AnalysisJob) (*asynq.Task, error) {
	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis job: %w", err)
	}
	return asynq.NewTask(TypePRAnalysis, payload), nil
}

// ParseAnalysisTask decodes an analysis job from a task payload
func ParseAnalysisTask(t *asynq.Task) (models.AnalysisJob, error) {
	var job models.AnalysisJob
	if err := json.Unmarshal(t.Payload(), &job); err != nil {
		return models.AnalysisJob{}, fmt.Errorf("failed to unmarshal analysis job: %w", err)
	}
	if job.Repository == "" || job.PRNumber <= 0 {
		return models.AnalysisJob{}, fmt.Errorf("invalid analysis job: repository=%q pr_number=%d", job.Repository, job.PRNumber)
	}
	return job, nil
}

// Client enqueues analysis jobs on Redis
type Client struct {
	client   *asynq.Client
	maxRetry int
	timeout  time.Duration
}

// NewClient creates a queue client from configuration
func NewClient(cfg config.QueueConfig) (*Client, error) {
	opt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	return &Client{
		client:   asynq.NewClient(opt),
		maxRetry: cfg.MaxRetry,
		timeout:  cfg.TaskTimeout,
	}, nil
}

// EnqueueAnalysis submits a job and returns the queue-assigned task ID
func (c *Client) EnqueueAnalysis(ctx context.Context, job models.AnalysisJob) (string, error) {
	task, err := NewAnalysisTask(job)
	if err != nil {
		return "", err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(c.maxRetry),
		asynq.Timeout(c.timeout),
	)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue analysis task: %w", err)
	}

	return info.ID, nil
}

// Close releases the underlying Redis connection
func (c *Client) Close() error {
	return c.client.Close()
}
