package validation

import (
	"regexp"
	"strings"

	"github.com/sahilKumar1122/pr-pilot/internal/errors"
	"github.com/sahilKumar1122/pr-pilot/internal/models"
)

// Repository full name pattern: owner/repo
var repoFullNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// Validator provides validation methods
type Validator struct{}

// New creates a new validator instance
func New() *Validator {
	return &Validator{}
}

// ValidatePullRequestEvent validates a pull request webhook event before a
// job is created from it
func (v *Validator) ValidatePullRequestEvent(event *models.PullRequestEvent) *errors.AppError {
	if event == nil {
		return errors.InvalidRequest("Event payload is required")
	}

	if strings.TrimSpace(event.Action) == "" {
		return errors.ValidationError("'action' field is required")
	}

	if !v.IsValidRepoFullName(event.Repository.FullName) {
		return errors.ValidationError("'repository.full_name' must be in owner/repo format")
	}

	if event.GetPRNumber() <= 0 {
		return errors.ValidationError("'pull_request.number' must be a positive integer")
	}

	return nil
}

// IsValidRepoFullName checks if a repository name is in owner/repo format
func (v *Validator) IsValidRepoFullName(fullName string) bool {
	return repoFullNamePattern.MatchString(strings.TrimSpace(fullName))
}
