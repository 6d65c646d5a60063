package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"hisaab/internal/log"
)

// Gemini is the live Completer backed by the Gemini API.
type Gemini struct {
	client   *genai.Client
	model    string
	timeout  time.Duration
	attempts int
	logger   *log.Logger
}

// GeminiConfig carries the knobs the service call exposes: model
// choice, deterministic-leaning temperature is fixed, timeout bounds
// each attempt, and Attempts caps retries on transient failures.
type GeminiConfig struct {
	APIKey   string
	Model    string
	Timeout  time.Duration
	Attempts int
}

const geminiTemperature float32 = 0.1

// NewGemini creates a Gemini-backed Completer.
func NewGemini(ctx context.Context, cfg GeminiConfig, logger *log.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, ErrUnavailable
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{
		client:   client,
		model:    cfg.Model,
		timeout:  cfg.Timeout,
		attempts: cfg.Attempts,
		logger:   logger.WithComponent(log.ComponentLLM),
	}, nil
}

// Complete sends one system+user instruction pair and returns the raw
// response text. Transient failures (429 and 5xx) are retried with
// exponential backoff up to the configured attempt count.
func (g *Gemini) Complete(ctx context.Context, system, user string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(geminiTemperature),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
	}

	var lastErr error
	for attempt := 0; attempt < g.attempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		text, err := g.generate(ctx, user, config)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !isTransient(err) {
			break
		}
		g.logger.WarnContext(ctx, "Transient classifier failure, retrying",
			"attempt", attempt+1, "error", err)
	}
	return "", lastErr
}

func (g *Gemini) generate(ctx context.Context, user string, config *genai.GenerateContentConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(user), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}

// isTransient reports whether the error is worth retrying: rate
// limiting, server-side failures, or a per-attempt timeout.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
	}
	return false
}
