// Package inference talks to the HuggingFace Inference API and wraps it in
// a model cascade with deterministic fallbacks, so the pipeline always
// produces usable output even when every remote model fails.
package inference

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sahilKumar1122/pr-pilot/internal/config"
	"github.com/sahilKumar1122/pr-pilot/internal/errors"
)

// Invoker is the model invocation boundary. The cascade depends on this
// interface so tests can substitute failing or canned models.
type Invoker interface {
	Summarize(ctx context.Context, model, text string) (string, error)
	Classify(ctx context.Context, model, text string, labels []string) (map[string]float64, error)
}

// Client calls the HuggingFace Inference API over HTTP
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ Invoker = (*Client)(nil)

// NewClient creates an inference client from configuration
func NewClient(cfg config.HuggingFaceConfig) *Client {
	transport := http.DefaultTransport
	if cfg.InsecureSkipTLSVerify {
		// Development-only escape hatch for SSL-inspecting proxies,
		// scoped to this client instance
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

type classifyParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters *classifyParameters `json:"parameters,omitempty"`
}

// summaryResponse is the canonical record every accepted summarization
// response shape is normalized into
type summaryResponse struct {
	SummaryText string `json:"summary_text"`
}

// classifyResponse is the canonical record for zero-shot classification
type classifyResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Summarize runs abstractive summarization on the given model
func (c *Client) Summarize(ctx context.Context, model, text string) (string, error) {
	raw, err := c.invoke(ctx, model, inferenceRequest{Inputs: text})
	if err != nil {
		return "", err
	}
	return normalizeSummary(raw)
}

// Classify runs zero-shot classification over the candidate labels
func (c *Client) Classify(ctx context.Context, model, text string, labels []string) (map[string]float64, error) {
	req := inferenceRequest{
		Inputs:     text,
		Parameters: &classifyParameters{CandidateLabels: labels},
	}
	raw, err := c.invoke(ctx, model, req)
	if err != nil {
		return nil, err
	}
	return normalizeClassification(raw)
}

func (c *Client) invoke(ctx context.Context, model string, reqBody inferenceRequest) (json.RawMessage, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCodeInferenceFailed, "model %s request failed", model)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrCodeInferenceFailed,
			fmt.Sprintf("model %s returned status %d: %s", model, httpResp.StatusCode, truncateBody(respBody)))
	}

	return json.RawMessage(respBody), nil
}

// normalizeSummary maps every accepted summarization response shape (bare
// string, object, single-element array) into one summary string. Unknown
// shapes are a collaborator-interface error, not a pipeline concern.
func normalizeSummary(raw json.RawMessage) (string, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil && asString != "" {
		return asString, nil
	}

	var asObject summaryResponse
	if err := json.Unmarshal(raw, &asObject); err == nil && asObject.SummaryText != "" {
		return asObject.SummaryText, nil
	}

	var asList []summaryResponse
	if err := json.Unmarshal(raw, &asList); err == nil && len(asList) > 0 && asList[0].SummaryText != "" {
		return asList[0].SummaryText, nil
	}

	return "", fmt.Errorf("unsupported summarization response shape: %s", truncateBody(raw))
}

// normalizeClassification maps the accepted classification response shapes
// (object or single-element array of {labels, scores}) into a label→score map
func normalizeClassification(raw json.RawMessage) (map[string]float64, error) {
	var asObject classifyResponse
	if err := json.Unmarshal(raw, &asObject); err == nil && len(asObject.Labels) > 0 {
		return pairScores(asObject)
	}

	var asList []classifyResponse
	if err := json.Unmarshal(raw, &asList); err == nil && len(asList) > 0 && len(asList[0].Labels) > 0 {
		return pairScores(asList[0])
	}

	return nil, fmt.Errorf("unsupported classification response shape: %s", truncateBody(raw))
}

func pairScores(resp classifyResponse) (map[string]float64, error) {
	if len(resp.Labels) != len(resp.Scores) {
		return nil, fmt.Errorf("classification response has %d labels but %d scores", len(resp.Labels), len(resp.Scores))
	}

	scores := make(map[string]float64, len(resp.Labels))
	for i, label := range resp.Labels {
		scores[label] = resp.Scores[i]
	}
	return scores, nil
}

func truncateBody(body []byte) string {
	const maxLen = 200
	if len(body) > maxLen {
		return string(body[:maxLen]) + "..."
	}
	return string(body)
}
