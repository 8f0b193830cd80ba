package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/civicdesk/backend/internal/logger"
	"github.com/civicdesk/backend/internal/models"
)

// MinSuggestionLength is the trimmed-input threshold below which Suggest
// makes no upstream call.
const MinSuggestionLength = 20

const suggestionCacheTTL = 10 * time.Minute

// Cache is the optional response cache the categorizer writes through.
// Failures on either side read as misses.
type Cache interface {
	CacheGet(key string) (string, bool)
	CacheSet(key, value string, ttl time.Duration)
}

// Categorizer turns complaint text into a structured analysis by prompting
// an external generation service. It is total: every failure collapses to a
// defined fallback, so complaint filing never blocks on AI availability.
type Categorizer struct {
	baseURL string
	model   string
	client  *http.Client
	cache   Cache
}

type generateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

type generateResponse struct {
	Model     string `json:"model"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`
}

// NewCategorizer builds a categorizer for the given generation endpoint.
// cache may be nil.
func NewCategorizer(baseURL, model string, timeout time.Duration, cache Cache) *Categorizer {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama2:13b"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Categorizer{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		cache:   cache,
	}
}

// FallbackAnalysis is the analysis stored when the generation service is
// unavailable or returns something unusable.
func FallbackAnalysis() models.AIAnalysis {
	return models.AIAnalysis{
		Category:   "Other",
		Department: "General",
		Priority:   "medium",
		Keywords:   []string{},
		Sentiment:  "neutral",
		Confidence: 0.5,
		Reasoning:  "Manual review required",
	}
}

// Categorize produces a validated analysis for the given complaint text.
// It never returns an error: one upstream attempt, then the fallback.
func (c *Categorizer) Categorize(title, description string) models.AIAnalysis {
	prompt := fmt.Sprintf(CATEGORIZE_PROMPT, title, description)

	cacheKey := "categorize:" + hashText(title+"\n"+description)
	if cached, ok := c.cacheGet(cacheKey); ok {
		var analysis models.AIAnalysis
		if err := json.Unmarshal([]byte(cached), &analysis); err == nil {
			return analysis
		}
	}

	raw, err := c.generate(prompt)
	if err != nil {
		logger.WithCategorizer("categorize").WithField("error", err.Error()).
			Warn("generation call failed, using fallback analysis")
		return FallbackAnalysis()
	}

	jsonText, ok := extractJSONObject(raw)
	if !ok {
		logger.WithCategorizer("categorize").Warn("no JSON object in generation response, using fallback analysis")
		return FallbackAnalysis()
	}

	var analysis models.AIAnalysis
	if err := json.Unmarshal([]byte(jsonText), &analysis); err != nil {
		logger.WithCategorizer("categorize").WithField("error", err.Error()).
			Warn("unparseable generation response, using fallback analysis")
		return FallbackAnalysis()
	}

	normalizeAnalysis(&analysis)

	if encoded, err := json.Marshal(analysis); err == nil {
		c.cacheSet(cacheKey, string(encoded), suggestionCacheTTL)
	}
	return analysis
}

// Suggest returns up to a handful of completion suggestions for partial
// input. Inputs at or under the length threshold make no upstream call.
// Every failure path yields an empty slice.
func (c *Categorizer) Suggest(partialText, context string) []string {
	trimmed := strings.TrimSpace(partialText)
	if len(trimmed) <= MinSuggestionLength {
		return []string{}
	}
	if context == "" {
		context = "complaint"
	}

	cacheKey := "suggest:" + hashText(context+"\n"+trimmed)
	if cached, ok := c.cacheGet(cacheKey); ok {
		var suggestions []string
		if err := json.Unmarshal([]byte(cached), &suggestions); err == nil {
			return suggestions
		}
	}

	prompt := fmt.Sprintf(SUGGEST_PROMPT, trimmed, context)
	raw, err := c.generate(prompt)
	if err != nil {
		logger.WithCategorizer("suggest").WithField("error", err.Error()).
			Warn("generation call failed, returning no suggestions")
		return []string{}
	}

	jsonText, ok := extractJSONArray(raw)
	if !ok {
		return []string{}
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(jsonText), &suggestions); err != nil {
		return []string{}
	}
	if suggestions == nil {
		suggestions = []string{}
	}

	if encoded, err := json.Marshal(suggestions); err == nil {
		c.cacheSet(cacheKey, string(encoded), suggestionCacheTTL)
	}
	return suggestions
}

func (c *Categorizer) generate(prompt string) (string, error) {
	request := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]interface{}{
			"temperature": 0.2,
			"top_p":       0.8,
		},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/generate", c.baseURL)
	start := time.Now()

	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	logger.WithCategorizer("generate").WithFields(map[string]interface{}{
		"status":     resp.StatusCode,
		"elapsed":    time.Since(start).String(),
		"prompt_len": len(prompt),
	}).Debug("generation request completed")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generation API returned status %d, body: %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}
	return genResp.Response, nil
}

func (c *Categorizer) cacheGet(key string) (string, bool) {
	if c.cache == nil {
		return "", false
	}
	return c.cache.CacheGet(key)
}

func (c *Categorizer) cacheSet(key, value string, ttl time.Duration) {
	if c.cache == nil {
		return
	}
	c.cache.CacheSet(key, value, ttl)
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// normalizeAnalysis forces the parsed analysis into the persisted enums:
// priority lowercased and validated, sentiment validated, confidence
// clamped to [0,1], nil keyword list replaced.
func normalizeAnalysis(analysis *models.AIAnalysis) {
	analysis.Priority = strings.ToLower(strings.TrimSpace(analysis.Priority))
	if !models.ValidPriority(models.ComplaintPriority(analysis.Priority)) {
		analysis.Priority = string(models.PriorityMedium)
	}

	analysis.Sentiment = strings.ToLower(strings.TrimSpace(analysis.Sentiment))
	if !models.ValidSentiment(models.Sentiment(analysis.Sentiment)) {
		analysis.Sentiment = string(models.SentimentNeutral)
	}

	if analysis.Confidence < 0 {
		analysis.Confidence = 0
	}
	if analysis.Confidence > 1 {
		analysis.Confidence = 1
	}

	if analysis.Keywords == nil {
		analysis.Keywords = []string{}
	}
	if strings.TrimSpace(analysis.Category) == "" {
		analysis.Category = "Other"
	}
	if strings.TrimSpace(analysis.Department) == "" {
		analysis.Department = "General"
	}
}

// extractJSONObject returns the first balanced {...} substring of the
// response. The generation service may wrap the object in prose or
// markdown fences; scanning for the first brace skips both.
func extractJSONObject(response string) (string, bool) {
	return extractBalanced(response, '{', '}')
}

// extractJSONArray returns the first balanced [...] substring.
func extractJSONArray(response string) (string, bool) {
	return extractBalanced(response, '[', ']')
}

func extractBalanced(s string, opening, closing byte) (string, bool) {
	start := strings.IndexByte(s, opening)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case opening:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
