package engineapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
	"github.com/pickwise/pickwise-backend/pkg/config"
)

// Client is an HTTP client for the question-generation and search engine
// service. Both operations are single-shot calls: the engine owns its own
// retry policy, and transient-failure recovery belongs to the end user.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new engine client.
func NewClient(cfg *config.EngineConfig) (*Client, error) {
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errors.New("engine base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// GenerateQuestionsRequest is the wire payload for question generation.
type GenerateQuestionsRequest struct {
	Query         string `json:"query"`
	QuestionCount int    `json:"questionCount"`
	AnswerCount   int    `json:"answerCount"`
}

// GenerateQuestionsResponse is the engine's question-generation envelope.
type GenerateQuestionsResponse struct {
	Success   bool                `json:"success"`
	Questions []entities.Question `json:"questions,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// SearchResponse is the engine's search envelope.
type SearchResponse struct {
	Success bool                    `json:"success"`
	Results []entities.SearchResult `json:"results,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

// GenerateQuestions calls the engine once and returns its envelope.
func (c *Client) GenerateQuestions(ctx context.Context, req *GenerateQuestionsRequest) (*GenerateQuestionsResponse, error) {
	var envelope GenerateQuestionsResponse
	if err := c.post(ctx, "/api/generate-questions", req, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

// Search calls the engine once and returns its envelope.
func (c *Client) Search(ctx context.Context, req *entities.SearchRequest) (*SearchResponse, error) {
	var envelope SearchResponse
	if err := c.post(ctx, "/api/search", req, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode engine request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordEngineMetric(ctx, path, 0, time.Since(start), err)
		return fmt.Errorf("engine request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("engine request failed with status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
		recordEngineMetric(ctx, path, resp.StatusCode, time.Since(start), err)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		recordEngineMetric(ctx, path, resp.StatusCode, time.Since(start), err)
		return fmt.Errorf("failed to decode engine response: %w", err)
	}

	recordEngineMetric(ctx, path, resp.StatusCode, time.Since(start), nil)
	return nil
}

type engineMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var (
	engineMetricsOnce sync.Once
	engineMetricsOK   bool
	engineMetricsInst engineMetrics
)

func initEngineMetrics() {
	meter := otel.Meter("github.com/pickwise/pickwise-backend/engine")

	requestCount, err := meter.Int64Counter(
		"engine.request.count",
		metric.WithDescription("Number of engine requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"engine.request.duration",
		metric.WithDescription("Engine request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"engine.request.errors",
		metric.WithDescription("Number of engine request errors"),
	)
	if err != nil {
		return
	}

	engineMetricsInst = engineMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	engineMetricsOK = true
}

func recordEngineMetric(ctx context.Context, path string, statusCode int, duration time.Duration, err error) {
	engineMetricsOnce.Do(initEngineMetrics)
	if !engineMetricsOK {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("engine.path", path),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	engineMetricsInst.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	engineMetricsInst.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		engineMetricsInst.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
