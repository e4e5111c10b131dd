package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilKumar1122/pr-pilot/internal/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.HuggingFaceConfig{
		APIKey:  "test-key",
		BaseURL: serverURL,
		Timeout: 5 * time.Second,
	})
}

func TestClientSummarize(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody inferenceRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`[{"summary_text":"This PR fixes the login flow"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	summary, err := client.Summarize(context.Background(), "facebook/bart-large-cnn", "diff text")

	require.NoError(t, err)
	assert.Equal(t, "This PR fixes the login flow", summary)
	assert.Equal(t, "/models/facebook/bart-large-cnn", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "diff text", gotBody.Inputs)
}

func TestClientSummarizeNormalizesShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bare string", `"This PR fixes the login flow"`},
		{"object", `{"summary_text":"This PR fixes the login flow"}`},
		{"array of objects", `[{"summary_text":"This PR fixes the login flow"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			summary, err := newTestClient(server.URL).Summarize(context.Background(), "m", "text")

			require.NoError(t, err)
			assert.Equal(t, "This PR fixes the login flow", summary)
		})
	}
}

func TestClientSummarizeRejectsUnknownShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"generated_text":"nope"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Summarize(context.Background(), "m", "text")

	assert.ErrorContains(t, err, "unsupported summarization response shape")
}

func TestClientClassify(t *testing.T) {
	var gotBody inferenceRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"sequence":"t","labels":["bug","feature"],"scores":[0.9,0.1]}`))
	}))
	defer server.Close()

	scores, err := newTestClient(server.URL).Classify(context.Background(), "facebook/bart-large-mnli", "fix crash", []string{"bug", "feature"})

	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"bug": 0.9, "feature": 0.1}, scores)
	require.NotNil(t, gotBody.Parameters)
	assert.Equal(t, []string{"bug", "feature"}, gotBody.Parameters.CandidateLabels)
}

func TestClientClassifyNormalizesArrayShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"labels":["bug"],"scores":[1.0]}]`))
	}))
	defer server.Close()

	scores, err := newTestClient(server.URL).Classify(context.Background(), "m", "text", []string{"bug"})

	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"bug": 1.0}, scores)
}

func TestClientClassifyMismatchedScores(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"labels":["bug","feature"],"scores":[0.5]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Classify(context.Background(), "m", "text", []string{"bug", "feature"})

	assert.ErrorContains(t, err, "2 labels but 1 scores")
}

func TestClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"model is loading"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Summarize(context.Background(), "m", "text")

	assert.ErrorContains(t, err, "INFERENCE_FAILED")
	assert.ErrorContains(t, err, "status 503")
}
