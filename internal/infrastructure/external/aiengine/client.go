package aiengine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/warf-hq/warf-backend/internal/usecase/minutes"
	"github.com/warf-hq/warf-backend/pkg/config"
)

const pipelineVersion = "v2"

const systemPrompt = `You are a meeting minutes writer. Given a raw meeting transcript,
respond with a single JSON object and nothing else:
{
  "summary": "concise prose summary of the meeting",
  "decisions": ["each decision that was made"],
  "action_items": [
    {"title": "what must be done", "assignee": "person responsible", "priority": "low|medium|high", "due_date": "YYYY-MM-DD"}
  ]
}
Omit due_date when no deadline was mentioned. Use an empty list when a section has no content.`

// Client calls an OpenAI-compatible chat completions endpoint to produce a
// summary and decision payload. Implements the minutes engine interface.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// NewClient creates an AI engine client from config
func NewClient(cfg *config.AIEngineConfig) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client:      &http.Client{Timeout: cfg.Timeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// generated is the shape the model is instructed to emit
type generated struct {
	Summary     string          `json:"summary"`
	Decisions   json.RawMessage `json:"decisions"`
	ActionItems json.RawMessage `json:"action_items"`
}

// GenerateMinutes sends the transcript to the model and returns the summary
// together with the decision payload serialized as JSON. Transient failures
// are retried with exponential backoff inside the caller's context.
func (c *Client) GenerateMinutes(ctx context.Context, transcript string) (*minutes.EngineResult, error) {
	var content string

	operation := func() error {
		var err error
		content, err = c.complete(ctx, transcript)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	var parsed generated
	if err := json.Unmarshal([]byte(extractJSON(content)), &parsed); err != nil {
		return nil, fmt.Errorf("model returned unparsable content: %w", err)
	}
	if parsed.Summary == "" {
		return nil, fmt.Errorf("model returned no summary")
	}

	payload := map[string]json.RawMessage{}
	if len(parsed.Decisions) > 0 {
		payload["decisions"] = parsed.Decisions
	}
	if len(parsed.ActionItems) > 0 {
		payload["action_items"] = parsed.ActionItems
	}
	decisionsJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize decision payload: %w", err)
	}

	return &minutes.EngineResult{
		Summary:         parsed.Summary,
		DecisionsJSON:   string(decisionsJSON),
		ModelName:       c.model,
		PipelineVersion: pipelineVersion,
	}, nil
}

func (c *Client) complete(ctx context.Context, transcript string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: transcript},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", backoff.Permanent(err)
	}

	endpoint := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", backoff.Permanent(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", fmt.Errorf("engine returned status %d", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return "", backoff.Permanent(fmt.Errorf("engine returned status %d", resp.StatusCode))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from engine")
	}
	return cr.Choices[0].Message.Content, nil
}

// extractJSON strips a markdown code fence when the model wraps its answer in one
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
