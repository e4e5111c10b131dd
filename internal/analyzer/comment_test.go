package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sahilKumar1122/pr-pilot/internal/models"
)

func successResult() models.AnalysisResult {
	return models.AnalysisResult{
		Success: true,
		Snapshot: models.PRSnapshot{
			Author:       "octocat",
			Additions:    10,
			Deletions:    5,
			FilesChanged: []string{"a.py"},
		},
		Summary:       "Fixes the login flow",
		PRType:        "bug",
		Confidence:    0.83,
		CommitMessage: "fix: fix bug",
		Risks:         []string{"⚠️ Large PR (500+ lines): Consider splitting into smaller PRs"},
		Suggestions:   []string{"🧪 Consider adding tests for the new code"},
	}
}

func TestFormatCommentSuccess(t *testing.T) {
	comment := FormatComment(successResult())

	assert.Contains(t, comment, "## 🤖 PR Pilot Analysis")
	assert.Contains(t, comment, "**Summary:** Fixes the login flow")
	assert.Contains(t, comment, "**Type:** `bug` (confidence: 83%)")
	assert.Contains(t, comment, "**Changes:** +10 -5 lines across 1 files")
	assert.Contains(t, comment, "**Author:** @octocat")
	assert.Contains(t, comment, "```\nfix: fix bug\n```")
	assert.Contains(t, comment, "- ⚠️ Large PR")
	assert.Contains(t, comment, "- 🧪 Consider adding tests")
	assert.Contains(t, comment, "Generated by [PR Pilot]")
}

func TestFormatCommentNoRisks(t *testing.T) {
	result := successResult()
	result.Risks = nil

	comment := FormatComment(result)

	assert.Contains(t, comment, "- ✅ No major risks detected")
}

func TestFormatCommentFailure(t *testing.T) {
	comment := FormatComment(models.AnalysisResult{Success: false, Error: "PR not found"})

	assert.Contains(t, comment, "❌ **Analysis Failed**")
	assert.Contains(t, comment, "PR not found")
	assert.NotContains(t, comment, "PR Pilot Analysis")
}

func TestFormatCommentFailureWithoutError(t *testing.T) {
	comment := FormatComment(models.AnalysisResult{Success: false})

	assert.Contains(t, comment, "Unknown error")
}

func TestFormatCommentDeterministic(t *testing.T) {
	result := successResult()

	assert.Equal(t, FormatComment(result), FormatComment(result))
}
