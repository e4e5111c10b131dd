package handlers

import (
	"github.com/sahilKumar1122/pr-pilot/internal/logger"
	"github.com/sahilKumar1122/pr-pilot/internal/queue"
	"github.com/sahilKumar1122/pr-pilot/internal/validation"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	enqueuer      queue.Enqueuer
	log           *logger.Logger
	validator     *validation.Validator
	webhookSecret string
}

// New creates a new handler instance
func New(enqueuer queue.Enqueuer, log *logger.Logger, webhookSecret string) *Handler {
	return &Handler{
		enqueuer:      enqueuer,
		log:           log,
		validator:     validation.New(),
		webhookSecret: webhookSecret,
	}
}
