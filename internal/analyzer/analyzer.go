// Package analyzer sequences the pull request analysis pipeline:
// fetch → summarize → classify → risk detection → suggestions → comment.
package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilKumar1122/pr-pilot/internal/errors"
	"github.com/sahilKumar1122/pr-pilot/internal/logger"
	"github.com/sahilKumar1122/pr-pilot/internal/models"
)

// SnapshotFetcher fetches the current state of a pull request
type SnapshotFetcher interface {
	GetPRSnapshot(ctx context.Context, repoFullName string, number int) (models.PRSnapshot, error)
}

// InvocationCascade produces summaries and classifications. Its operations
// never fail; model failures are absorbed by deterministic fallbacks.
type InvocationCascade interface {
	Summarize(ctx context.Context, text string) string
	Classify(ctx context.Context, text string, labels []string) map[string]float64
}

// classificationLabels is the fixed label set for PR classification. Its
// declaration order is the tie-break order: when scores are equal the label
// appearing first here wins.
var classificationLabels = []string{"bug", "feature", "refactor", "docs"}

// commitTypes maps classification labels to conventional commit types
var commitTypes = map[string]string{
	"bug":      "fix",
	"feature":  "feat",
	"refactor": "refactor",
	"docs":     "docs",
}

const defaultCommitType = "chore"

var sensitiveFilePatterns = []string{"config", "secret", "password", "key", "token", ".env"}

var sourceExtensions = []string{".py", ".js", ".ts", ".java", ".go"}

var docExtensions = []string{".md", ".rst", ".txt"}

// Analyzer runs the full analysis pipeline for one pull request
type Analyzer struct {
	vcs     SnapshotFetcher
	cascade InvocationCascade
	log     *logger.Logger
}

// New creates an analyzer over explicit collaborator handles
func New(vcs SnapshotFetcher, cascade InvocationCascade, log *logger.Logger) *Analyzer {
	return &Analyzer{
		vcs:     vcs,
		cascade: cascade,
		log:     log,
	}
}

// Analyze runs the pipeline. Only the PR fetch can abort it early; every
// inference failure is absorbed downstream and still yields a usable result.
func (a *Analyzer) Analyze(ctx context.Context, repoFullName string, number int) models.AnalysisResult {
	log := a.log.With("repo", repoFullName).With("pr_number", number)
	log.Info("Fetching pull request details")

	snapshot, err := a.vcs.GetPRSnapshot(ctx, repoFullName, number)
	if err != nil {
		appErr := errors.FetchFailed(err)
		log.Error("Pull request fetch failed", err)
		return models.AnalysisResult{Success: false, Error: appErr.Error()}
	}

	log.Debugf("Fetched PR %q by %s: +%d -%d across %d files",
		snapshot.Title, snapshot.Author, snapshot.Additions, snapshot.Deletions, len(snapshot.FilesChanged))

	summary := a.cascade.Summarize(ctx, buildSummaryInput(snapshot))

	scores := a.cascade.Classify(ctx, buildClassifyInput(snapshot), classificationLabels)
	prType, confidence := selectTopLabel(scores)
	log.Debugf("Classified as %s (confidence %.0f%%)", prType, confidence*100)

	return models.AnalysisResult{
		Success:       true,
		Snapshot:      snapshot,
		Summary:       summary,
		PRType:        prType,
		Confidence:    confidence,
		Scores:        scores,
		CommitMessage: buildCommitMessage(prType, snapshot.Title),
		Risks:         detectRisks(snapshot),
		Suggestions:   generateSuggestions(snapshot),
	}
}

// buildSummaryInput combines title, truncated description, leading changed
// filenames and a diff preview into the summarization input
func buildSummaryInput(snapshot models.PRSnapshot) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title: %s\n\n", snapshot.Title))

	if snapshot.Body != "" {
		sb.WriteString(fmt.Sprintf("Description: %s\n\n", truncate(snapshot.Body, 300)))
	}

	files := snapshot.FilesChanged
	if len(files) > 5 {
		files = files[:5]
	}
	sb.WriteString(fmt.Sprintf("Changed files: %s\n\n", strings.Join(files, ", ")))

	if snapshot.Diff != "" {
		sb.WriteString("Changes preview:\n")
		sb.WriteString(truncate(snapshot.Diff, 500))
	}

	return sb.String()
}

func buildClassifyInput(snapshot models.PRSnapshot) string {
	return fmt.Sprintf("%s. %s", snapshot.Title, truncate(snapshot.Body, 200))
}

// selectTopLabel picks the argmax label. Iteration follows the declaration
// order of classificationLabels, so the first label wins ties.
func selectTopLabel(scores map[string]float64) (string, float64) {
	best := classificationLabels[0]
	bestScore := scores[best]
	for _, label := range classificationLabels[1:] {
		if scores[label] > bestScore {
			best = label
			bestScore = scores[label]
		}
	}
	return best, bestScore
}

func buildCommitMessage(prType, title string) string {
	commitType, ok := commitTypes[prType]
	if !ok {
		commitType = defaultCommitType
	}
	return fmt.Sprintf("%s: %s", commitType, strings.ToLower(title))
}

// detectRisks applies ordered heuristic rules; multiple findings may fire
// for the same snapshot
func detectRisks(snapshot models.PRSnapshot) []string {
	var risks []string

	if snapshot.Additions+snapshot.Deletions > 500 {
		risks = append(risks, "⚠️ Large PR (500+ lines): Consider splitting into smaller PRs")
	}

	if len(snapshot.FilesChanged) > 10 {
		risks = append(risks, "⚠️ Many files changed: Review carefully for side effects")
	}

	// Only the first sensitive match is reported
	for _, file := range snapshot.FilesChanged {
		fileLower := strings.ToLower(file)
		for _, pattern := range sensitiveFilePatterns {
			if strings.Contains(fileLower, pattern) {
				risks = append(risks, fmt.Sprintf("🔒 Sensitive file modified: %s", file))
				return risks
			}
		}
	}

	return risks
}

// generateSuggestions checks for missing tests and docs; the result is
// never empty
func generateSuggestions(snapshot models.PRSnapshot) []string {
	var suggestions []string

	hasTests := false
	hasSource := false
	hasDocs := false
	for _, file := range snapshot.FilesChanged {
		fileLower := strings.ToLower(file)

		if strings.Contains(fileLower, "test") || strings.Contains(fileLower, "spec") {
			hasTests = true
		}
		if hasExtension(fileLower, sourceExtensions) && !strings.Contains(fileLower, "test") {
			hasSource = true
		}
		if hasExtension(fileLower, docExtensions) || strings.Contains(fileLower, "doc") {
			hasDocs = true
		}
	}

	if hasSource && !hasTests {
		suggestions = append(suggestions, "🧪 Consider adding tests for the new code")
	}

	if !hasDocs && len(snapshot.FilesChanged) > 3 {
		suggestions = append(suggestions, "📚 Consider updating documentation")
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, "✅ Looks good!")
	}

	return suggestions
}

func hasExtension(filename string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

// truncate limits s to maxLen characters, never splitting a multi-byte rune
func truncate(s string, maxLen int) string {
	if runes := []rune(s); len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return s
}
