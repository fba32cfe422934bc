package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/config"
	"github.com/spec-kit/triage-service/internal/observability"
	"github.com/spec-kit/triage-service/internal/search"
)

func newTestClient(t *testing.T, reply string, status int) (*Client, *observability.Metrics) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(status)
		if status == http.StatusOK {
			fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q}}]}`, reply)
		}
	}))
	t.Cleanup(server.Close)

	metrics := observability.NewMetrics()
	client := NewClient(config.LLMConfig{BaseURL: server.URL, Model: "test-model"}, zap.NewNop(), metrics)
	return client, metrics
}

func TestExtractFields(t *testing.T) {
	reply := "Here you go:\n{\"issue_type\": \"crash\", \"severity\": \"critical\", \"affected_system\": \"auth system\"}\nHope that helps."
	client, metrics := newTestClient(t, reply, http.StatusOK)

	got := client.ExtractFields(context.Background(), "Server crash on login")
	assert.Equal(t, Extraction{IssueType: "crash", Severity: "critical", AffectedSystem: "auth system"}, got)
	assert.Equal(t, int64(1), metrics.LLMCallCount("extract", "ok"))
}

func TestExtractFieldsSubstitutesUnknownOnGarbage(t *testing.T) {
	client, metrics := newTestClient(t, "I am sorry, I cannot help with that.", http.StatusOK)

	got := client.ExtractFields(context.Background(), "Server crash on login")
	assert.Equal(t, UnknownExtraction(), got)
	assert.Equal(t, int64(1), metrics.LLMCallCount("extract", "degraded"))
}

func TestExtractFieldsSubstitutesUnknownOnBrokenJSON(t *testing.T) {
	client, _ := newTestClient(t, `{"issue_type": "crash", "severity": }`, http.StatusOK)

	got := client.ExtractFields(context.Background(), "Server crash on login")
	assert.Equal(t, UnknownExtraction(), got)
}

func TestExtractFieldsSubstitutesUnknownOnTransportError(t *testing.T) {
	client, metrics := newTestClient(t, "", http.StatusBadGateway)

	got := client.ExtractFields(context.Background(), "Server crash on login")
	assert.Equal(t, UnknownExtraction(), got)
	assert.Equal(t, int64(1), metrics.LLMCallCount("extract", "error"))
}

func TestGenerateFix(t *testing.T) {
	client, _ := newTestClient(t, "Restart the auth service and rotate the session keys.", http.StatusOK)

	fix, err := client.GenerateFix(context.Background(), "Server crash on login")
	require.NoError(t, err)
	assert.Equal(t, "Restart the auth service and rotate the session keys.", fix)
}

func TestGenerateFixSurfacesErrors(t *testing.T) {
	client, _ := newTestClient(t, "", http.StatusInternalServerError)

	_, err := client.GenerateFix(context.Background(), "Server crash on login")
	assert.Error(t, err)
}

func TestParseSearchQuery(t *testing.T) {
	client, _ := newTestClient(t, `{"status": "need_review", "severity": "medium"}`, http.StatusOK)

	got := client.ParseSearchQuery(context.Background(), "show me need review medium severity tickets")
	assert.Equal(t, search.Facets{Status: "need_review", Severity: "medium"}, got)
}

func TestParseSearchQueryFallsBackToUnconstrained(t *testing.T) {
	client, _ := newTestClient(t, "no json here", http.StatusOK)

	got := client.ParseSearchQuery(context.Background(), "anything at all")
	assert.Equal(t, search.Unconstrained(), got)
}

func TestExtractJSON(t *testing.T) {
	raw, ok := extractJSON("prefix {\"a\": 1} suffix")
	require.True(t, ok)
	assert.Equal(t, `{"a": 1}`, string(raw))

	_, ok = extractJSON("no braces")
	assert.False(t, ok)

	_, ok = extractJSON("} reversed {")
	assert.False(t, ok)
}
