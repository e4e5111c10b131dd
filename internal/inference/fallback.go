package inference

import "strings"

// NoSummarySentinel is returned when no line of the input qualifies as a
// fallback summary
const NoSummarySentinel = "Unable to generate AI summary (see PR details below)"

// fallbackKeywords are the known keyword sets for keyword-based
// classification when every model call fails
var fallbackKeywords = map[string][]string{
	"bug":      {"fix", "bug", "issue", "error", "crash", "broken"},
	"feature":  {"add", "new", "feature", "implement", "create"},
	"refactor": {"refactor", "cleanup", "improve", "optimize", "reorganize"},
	"docs":     {"doc", "readme", "comment", "documentation"},
}

// FallbackSummary extracts a summary without any model: the first of the
// leading non-empty lines that is longer than 20 characters and is not a
// diff marker, truncated to 200 characters.
func FallbackSummary(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	if len(lines) > 5 {
		lines = lines[:5]
	}

	for _, line := range lines {
		if len(line) <= 20 {
			continue
		}
		if strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "@@") {
			continue
		}
		if runes := []rune(line); len(runes) > 200 {
			return string(runes[:200])
		}
		return line
	}

	return NoSummarySentinel
}

// FallbackClassify scores labels by keyword hits: min(0.25 × hits, 0.9) for
// labels with a known keyword set, 0.1 otherwise, normalized to sum to 1.0.
func FallbackClassify(text string, labels []string) map[string]float64 {
	textLower := strings.ToLower(text)

	scores := make(map[string]float64, len(labels))
	var total float64
	for _, label := range labels {
		keywords, known := fallbackKeywords[label]
		if !known {
			scores[label] = 0.1
			total += 0.1
			continue
		}

		var hits int
		for _, kw := range keywords {
			if strings.Contains(textLower, kw) {
				hits++
			}
		}
		score := min(0.25*float64(hits), 0.9)
		scores[label] = score
		total += score
	}

	// Guard against division by zero when nothing matched
	if total == 0 {
		total = 1.0
	}
	for label := range scores {
		scores[label] /= total
	}

	return scores
}
