package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sahilKumar1122/pr-pilot/internal/errors"
	"github.com/sahilKumar1122/pr-pilot/internal/models"
)

// writeJSON writes a JSON response with the given status code
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("Failed to encode JSON response", err)
	}
}

// writeAppError logs the error with its code and status, then writes the
// client-facing JSON representation
func (h *Handler) writeAppError(w http.ResponseWriter, appErr *errors.AppError) {
	h.log.With("error_code", appErr.Code).
		With("status_code", appErr.StatusCode).
		Error(appErr.Message, appErr.Err)

	h.writeJSON(w, &models.ErrorResponse{
		Error:   appErr.Message,
		Code:    string(appErr.Code),
		Details: appErr.Details,
	}, appErr.StatusCode)
}
