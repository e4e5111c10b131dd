package models

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// WebhookResponse represents the synchronous ingestion response
type WebhookResponse struct {
	Status   string `json:"status"`
	Action   string `json:"action,omitempty"`
	Repo     string `json:"repo,omitempty"`
	PRNumber int    `json:"pr_number,omitempty"`
	TaskID   string `json:"task_id,omitempty"`
}
