// Package enrich asks an OpenAI-compatible chat completion endpoint for a short analyst reading of an
// analysis. It never fails: a missing key or any error yields a placeholder text.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/hedisam/chaininvestigator/internal/custompromauto"
	"github.com/hedisam/chaininvestigator/internal/facts"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 60 * time.Second

	// Unavailable prefixes every placeholder returned instead of a model answer.
	Unavailable = "[AI analysis unavailable]"

	maxItems    = 5
	maxTokens   = 350
	temperature = 0.4

	systemPrompt = "You are a technical blockchain analyst."
)

var calls = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
	Namespace: custompromauto.Namespace,
	Name:      "ai_enrichments_total",
	Help:      "Number of AI enrichment calls, by outcome",
}, []string{"outcome"})

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

type config struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type Option func(*config)

func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithModel(model string) Option {
	return func(c *config) {
		if model != "" {
			c.model = model
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

type Client struct {
	logger     *logrus.Logger
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// New returns a Client. An empty apiKey is accepted; Enrich then returns the placeholder without calling out.
func New(logger *logrus.Logger, apiKey string, opts ...Option) *Client {
	cfg := &config{
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for opt := range slices.Values(opts) {
		opt(cfg)
	}

	return &Client{
		logger:     logger,
		apiKey:     apiKey,
		baseURL:    cfg.baseURL,
		model:      cfg.model,
		httpClient: cfg.httpClient,
	}
}

// Enrich returns the model's reading of the analysis, or a placeholder starting with Unavailable.
func (c *Client) Enrich(ctx context.Context, rec *facts.Record, events []facts.Event, transfers []facts.Transfer) string {
	if c.apiKey == "" {
		calls.WithLabelValues("disabled").Inc()
		return Unavailable + " OPENAI_API_KEY is not set."
	}

	text, err := c.complete(ctx, Prompt(rec, events, transfers))
	if err != nil {
		calls.WithLabelValues("error").Inc()
		c.logger.WithContext(ctx).WithError(err).Warn("AI enrichment failed, using the placeholder")
		return fmt.Sprintf("%s Error: %v", Unavailable, err)
	}
	calls.WithLabelValues("ok").Inc()
	return text
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	var out chatResponse
	err = json.Unmarshal(raw, &out)
	if err != nil {
		return "", fmt.Errorf("decode chat response (status %s): %w", resp.Status, err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("chat completion error (%s): %s", out.Error.Type, out.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received unexpected status %s", resp.Status)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("chat completion returned an empty answer")
	}
	return text, nil
}

type promptFacts struct {
	Network           string   `json:"network"`
	From              string   `json:"from"`
	To                string   `json:"to"`
	RiskBand          string   `json:"risk_band"`
	RiskScore         string   `json:"risk_score"`
	TransfersDetected int      `json:"transfers_detected"`
	EventsDetected    int      `json:"events_detected"`
	Summary           []string `json:"summary,omitempty"`
}

// Prompt builds the analyst prompt from the record, the first five events and the first five transfers.
func Prompt(rec *facts.Record, events []facts.Event, transfers []facts.Transfer) string {
	pf := promptFacts{
		Network:           rec.Network.String(),
		From:              rec.From.String(),
		To:                rec.To.String(),
		RiskBand:          rec.RiskBand.String(),
		RiskScore:         rec.RiskScore.String(),
		TransfersDetected: len(transfers),
		EventsDetected:    len(events),
		Summary:           rec.Summary,
	}

	var b strings.Builder
	b.WriteString("Analyse the following wallet or transaction data.\n\nFacts:\n")
	b.WriteString(jsonOr(pf, "{}"))
	b.WriteString("\n\nDetected events:\n")
	b.WriteString(firstItems(events, "none"))
	b.WriteString("\n\nDetected transfers:\n")
	b.WriteString(firstItems(transfers, "none"))
	b.WriteString(`

Write a concise technical summary covering:
- the likely kind of operation (internal move, swap, deposit, drain, ...)
- the perceived risk (low, medium, high) given the data
- the possible relation between the source and destination addresses
- relevant observations about the overall activity

Answer in professional English with short sentences.`)
	return b.String()
}

func firstItems[T any](items []T, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return jsonOr(items[:min(len(items), maxItems)], empty)
}

func jsonOr(v any, empty string) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return empty
	}
	return string(out)
}
