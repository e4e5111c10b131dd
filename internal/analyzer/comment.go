package analyzer

import (
	"fmt"
	"strings"

	"github.com/sahilKumar1122/pr-pilot/internal/models"
)

const commentFooter = "\n---\n<sub>🤖 Generated by [PR Pilot](https://github.com/sahilKumar1122/PR-Pilot) • Powered by AI</sub>\n"

// FormatComment renders an analysis result as a GitHub markdown comment.
// Pure and deterministic: the same result always yields the same text.
func FormatComment(result models.AnalysisResult) string {
	if !result.Success {
		errText := result.Error
		if errText == "" {
			errText = "Unknown error"
		}
		return fmt.Sprintf("❌ **Analysis Failed**\n\n%s\n", errText)
	}

	var sb strings.Builder

	sb.WriteString("## 🤖 PR Pilot Analysis\n\n")
	sb.WriteString(fmt.Sprintf("**Summary:** %s\n\n", result.Summary))

	sb.WriteString("### 📊 PR Details\n")
	sb.WriteString(fmt.Sprintf("- **Type:** `%s` (confidence: %.0f%%)\n", result.PRType, result.Confidence*100))
	sb.WriteString(fmt.Sprintf("- **Changes:** +%d -%d lines across %d files\n",
		result.Snapshot.Additions, result.Snapshot.Deletions, len(result.Snapshot.FilesChanged)))
	sb.WriteString(fmt.Sprintf("- **Author:** @%s\n\n", result.Snapshot.Author))

	sb.WriteString("### 💬 Suggested Commit Message\n")
	sb.WriteString(fmt.Sprintf("```\n%s\n```\n\n", result.CommitMessage))

	sb.WriteString("### ⚠️ Potential Risks\n")
	if len(result.Risks) > 0 {
		for _, risk := range result.Risks {
			sb.WriteString(fmt.Sprintf("- %s\n", risk))
		}
	} else {
		sb.WriteString("- ✅ No major risks detected\n")
	}

	sb.WriteString("\n### 💡 Suggestions\n")
	for _, suggestion := range result.Suggestions {
		sb.WriteString(fmt.Sprintf("- %s\n", suggestion))
	}

	sb.WriteString(commentFooter)

	return sb.String()
}
