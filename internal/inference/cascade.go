package inference

import (
	"context"

	"github.com/sahilKumar1122/pr-pilot/internal/logger"
)

// maxInputChars is the input limit sent to any model
const maxInputChars = 512

// Model candidates, tried in order
var summaryModels = []string{
	"sshleifer/distilbart-cnn-12-6", // lighter, faster model
	"facebook/bart-large-cnn",
}

const classifyModel = "facebook/bart-large-mnli"

// Cascade tries ordered model candidates and falls back to deterministic
// heuristics. Its operations never fail: external inference endpoints are
// unreliable and the pipeline must always produce some usable output.
type Cascade struct {
	invoker Invoker
	log     *logger.Logger
}

// NewCascade creates a cascade over the given model invoker
func NewCascade(invoker Invoker, log *logger.Logger) *Cascade {
	return &Cascade{
		invoker: invoker,
		log:     log,
	}
}

// Summarize returns a summary of the text, from the first model candidate
// that answers or from the line-extraction heuristic when all fail
func (c *Cascade) Summarize(ctx context.Context, text string) string {
	text = truncateInput(text)

	for _, model := range summaryModels {
		summary, err := c.invoker.Summarize(ctx, model, text)
		if err != nil {
			c.log.With("model", model).Warn("Summarization model failed, trying next candidate: " + err.Error())
			continue
		}
		return summary
	}

	c.log.Info("All summarization models failed, using fallback text extraction")
	return FallbackSummary(text)
}

// Classify returns label→confidence scores for the text, from the zero-shot
// model or from keyword scoring when it fails
func (c *Cascade) Classify(ctx context.Context, text string, labels []string) map[string]float64 {
	text = truncateInput(text)

	scores, err := c.invoker.Classify(ctx, classifyModel, text, labels)
	if err != nil {
		c.log.With("model", classifyModel).Warn("Classification model failed, using keyword fallback: " + err.Error())
		return FallbackClassify(text, labels)
	}
	return scores
}

// truncateInput limits the text sent to a model, cutting on a rune boundary
// so non-ASCII titles and bodies stay valid UTF-8
func truncateInput(text string) string {
	if runes := []rune(text); len(runes) > maxInputChars {
		return string(runes[:maxInputChars]) + "..."
	}
	return text
}
