package models

import "encoding/json"

// Job statuses recorded by the worker for each delivery attempt
const (
	JobStatusRetrying       = "retrying"
	JobStatusSuccess        = "success"
	JobStatusPartialSuccess = "partial_success"
	JobStatusError          = "error"
)

// AnalysisJob is the unit of work carried on the queue. It has no identity
// beyond (repository, PR number, attempt); repeated events for the same PR
// produce independent jobs.
type AnalysisJob struct {
	Repository string          `json:"repository"`
	PRNumber   int             `json:"pr_number"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// JobStatus is one recorded outcome of a job delivery attempt
type JobStatus struct {
	TaskID     string `json:"task_id"`
	Repository string `json:"repository"`
	PRNumber   int    `json:"pr_number"`
	Status     string `json:"status"`
	Attempt    int    `json:"attempt"`
	Error      string `json:"error,omitempty"`
}
