package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/civicdesk/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGenerateServer returns a fake generation endpoint answering every
// /api/generate call with the given response text.
func newGenerateServer(t *testing.T, responseText string, calls *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt64(calls, 1)
		}
		require.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Prompt)

		json.NewEncoder(w).Encode(generateResponse{
			Model:    req.Model,
			Response: responseText,
			Done:     true,
		})
	}))
}

func TestCategorizeParsesWrappedJSON(t *testing.T) {
	responseText := "Here is the analysis you asked for:\n```json\n" + `{
  "category": "Infrastructure",
  "department": "Public Works",
  "priority": "HIGH",
  "keywords": ["streetlight", "safety", "night"],
  "sentiment": "Negative",
  "confidence": 0.92,
  "reasoning": "Safety hazard reported on a public street"
}` + "\n```\nLet me know if you need anything else."

	server := newGenerateServer(t, responseText, nil)
	defer server.Close()

	categorizer := NewCategorizer(server.URL, "test-model", 5*time.Second, nil)
	analysis := categorizer.Categorize("Broken streetlight", "The streetlight on Elm St has been off for a week.")

	assert.Equal(t, "Infrastructure", analysis.Category)
	assert.Equal(t, "Public Works", analysis.Department)
	assert.Equal(t, "high", analysis.Priority)
	assert.Equal(t, []string{"streetlight", "safety", "night"}, analysis.Keywords)
	assert.Equal(t, "negative", analysis.Sentiment)
	assert.InDelta(t, 0.92, analysis.Confidence, 1e-9)
}

func TestCategorizeFallbackWhenUnreachable(t *testing.T) {
	server := newGenerateServer(t, "{}", nil)
	server.Close() // connection refused from here on

	categorizer := NewCategorizer(server.URL, "test-model", time.Second, nil)
	analysis := categorizer.Categorize("Title", "Description")

	assert.Equal(t, FallbackAnalysis(), analysis)
}

func TestCategorizeFallbackOnNonJSONResponse(t *testing.T) {
	server := newGenerateServer(t, "I could not analyze this complaint, sorry.", nil)
	defer server.Close()

	categorizer := NewCategorizer(server.URL, "test-model", time.Second, nil)
	analysis := categorizer.Categorize("Title", "Description")

	assert.Equal(t, FallbackAnalysis(), analysis)
}

func TestCategorizeFallbackOnUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	categorizer := NewCategorizer(server.URL, "test-model", time.Second, nil)
	analysis := categorizer.Categorize("Title", "Description")

	assert.Equal(t, FallbackAnalysis(), analysis)
}

func TestCategorizeNormalizesOutOfRangeFields(t *testing.T) {
	responseText := `{
  "category": "Infrastructure",
  "department": "Public Works",
  "priority": "urgent",
  "sentiment": "angry",
  "confidence": 1.4,
  "reasoning": "r"
}`
	server := newGenerateServer(t, responseText, nil)
	defer server.Close()

	categorizer := NewCategorizer(server.URL, "test-model", time.Second, nil)
	analysis := categorizer.Categorize("Title", "Description")

	assert.Equal(t, "medium", analysis.Priority)
	assert.Equal(t, "neutral", analysis.Sentiment)
	assert.Equal(t, 1.0, analysis.Confidence)
	assert.NotNil(t, analysis.Keywords)
	assert.Empty(t, analysis.Keywords)
}

func TestSuggestShortInputMakesNoCall(t *testing.T) {
	var calls int64
	server := newGenerateServer(t, `["a"]`, &calls)
	defer server.Close()

	categorizer := NewCategorizer(server.URL, "test-model", time.Second, nil)

	assert.Empty(t, categorizer.Suggest("too short", "complaint"))
	assert.Empty(t, categorizer.Suggest(strings.Repeat("x", MinSuggestionLength), "complaint"))
	assert.Empty(t, categorizer.Suggest("   "+strings.Repeat("x", 5)+"   ", "complaint"))
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
}

func TestSuggestParsesWrappedArray(t *testing.T) {
	responseText := "Sure, here are some suggestions:\n[\"Add the exact street address\", \"Mention how long the issue has existed\", \"Attach a photo if possible\"]"
	server := newGenerateServer(t, responseText, nil)
	defer server.Close()

	categorizer := NewCategorizer(server.URL, "test-model", time.Second, nil)
	suggestions := categorizer.Suggest("The streetlight on Elm St has been off", "complaint")

	assert.Equal(t, []string{
		"Add the exact street address",
		"Mention how long the issue has existed",
		"Attach a photo if possible",
	}, suggestions)
}

func TestSuggestReturnsEmptyOnFailure(t *testing.T) {
	server := newGenerateServer(t, "no array here", nil)
	defer server.Close()

	categorizer := NewCategorizer(server.URL, "test-model", time.Second, nil)
	assert.Empty(t, categorizer.Suggest("The streetlight on Elm St has been off", "complaint"))

	server.Close()
	assert.Empty(t, categorizer.Suggest("The streetlight on Elm St has been off", "complaint"))
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "bare object",
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
			ok:    true,
		},
		{
			name:  "prose around object",
			input: `The result is {"a": 1} as requested.`,
			want:  `{"a": 1}`,
			ok:    true,
		},
		{
			name:  "nested objects",
			input: `prefix {"a": {"b": 2}} suffix`,
			want:  `{"a": {"b": 2}}`,
			ok:    true,
		},
		{
			name:  "braces inside strings",
			input: `{"text": "curly } inside"} trailing`,
			want:  `{"text": "curly } inside"}`,
			ok:    true,
		},
		{
			name:  "escaped quote inside string",
			input: `{"text": "quote \" and } brace"}`,
			want:  `{"text": "quote \" and } brace"}`,
			ok:    true,
		},
		{
			name:  "unterminated object",
			input: `{"a": 1`,
			ok:    false,
		},
		{
			name:  "no object",
			input: "nothing to see here",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	got, ok := extractJSONArray(`Suggestions: ["a", "b"] done`)
	require.True(t, ok)
	assert.Equal(t, `["a", "b"]`, got)

	_, ok = extractJSONArray("no array")
	assert.False(t, ok)
}

func TestNormalizeAnalysisDefaults(t *testing.T) {
	analysis := models.AIAnalysis{Confidence: -0.2}
	normalizeAnalysis(&analysis)

	assert.Equal(t, "Other", analysis.Category)
	assert.Equal(t, "General", analysis.Department)
	assert.Equal(t, "medium", analysis.Priority)
	assert.Equal(t, "neutral", analysis.Sentiment)
	assert.Equal(t, 0.0, analysis.Confidence)
	assert.NotNil(t, analysis.Keywords)
}
