package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/sahilKumar1122/pr-pilot/internal/errors"
	"github.com/sahilKumar1122/pr-pilot/internal/models"
	"github.com/sahilKumar1122/pr-pilot/internal/signature"
)

// signatureHeader is the GitHub HMAC signature header
const signatureHeader = "X-Hub-Signature-256"

// watchedActions are the PR actions that produce an analysis job; every
// other action is acknowledged and ignored
var watchedActions = map[string]bool{
	"opened":      true,
	"synchronize": true,
	"reopened":    true,
}

// GitHubWebhook handles GitHub pull request webhook events. This runs on
// the synchronous request path and must stay fast: it only verifies the
// signature, filters the event and enqueues a job. All heavy work happens
// on the worker side.
func (h *Handler) GitHubWebhook(w http.ResponseWriter, r *http.Request) {
	// Raw body is needed for signature verification: re-serialized JSON
	// would not reproduce the signed byte stream
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeAppError(w, errors.InvalidRequest("Failed to read request body: "+err.Error()))
		return
	}

	switch signature.Verify(body, h.webhookSecret, r.Header.Get(signatureHeader)) {
	case signature.MissingSecretSkipped:
		h.log.Warn("GITHUB_WEBHOOK_SECRET not set, skipping signature verification")
	case signature.MissingHeader:
		h.log.Warn("GitHub webhook received without signature header")
		h.writeAppError(w, errors.Unauthorized("Missing "+signatureHeader+" header"))
		return
	case signature.Invalid:
		h.log.Warn("Invalid GitHub webhook signature")
		h.writeAppError(w, errors.Unauthorized("Invalid webhook signature"))
		return
	case signature.Valid:
	}

	var event models.PullRequestEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.writeAppError(w, errors.InvalidRequest("Invalid webhook payload: "+err.Error()))
		return
	}

	if !watchedActions[event.Action] {
		h.log.Debugf("Ignoring pull request action %q", event.Action)
		h.writeJSON(w, &models.WebhookResponse{
			Status: "ignored",
			Action: event.Action,
		}, http.StatusOK)
		return
	}

	if appErr := h.validator.ValidatePullRequestEvent(&event); appErr != nil {
		h.writeAppError(w, appErr)
		return
	}

	job := models.AnalysisJob{
		Repository: event.GetRepositoryName(),
		PRNumber:   event.GetPRNumber(),
		Payload:    json.RawMessage(body),
	}

	taskID, err := h.enqueuer.EnqueueAnalysis(r.Context(), job)
	if err != nil {
		h.writeAppError(w, errors.EnqueueFailed(err))
		return
	}

	h.log.With("task_id", taskID).
		Infof("Enqueued analysis for %s#%d (%s)", job.Repository, job.PRNumber, event.Action)

	h.writeJSON(w, &models.WebhookResponse{
		Status:   "enqueued",
		Action:   event.Action,
		Repo:     job.Repository,
		PRNumber: job.PRNumber,
		TaskID:   taskID,
	}, http.StatusOK)
}
