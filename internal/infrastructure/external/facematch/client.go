package facematch

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warf-hq/warf-backend/internal/usecase/meeting"
	"github.com/warf-hq/warf-backend/pkg/config"
)

// Client talks to the face matching service. The service compares a reference
// image against a probe and answers with a verdict and confidence score.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a face match client from config
func NewClient(cfg *config.FaceMatchConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type verifyRequest struct {
	ReferenceImage string `json:"reference_image"`
	ProbeImage     string `json:"probe_image"`
}

type verifyResponse struct {
	Verified   bool    `json:"verified"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error,omitempty"`
}

// Verify compares the reference image against the probe
func (c *Client) Verify(ctx context.Context, reference, probe []byte) (meeting.MatchResult, error) {
	reqBody := verifyRequest{
		ReferenceImage: base64.StdEncoding.EncodeToString(reference),
		ProbeImage:     base64.StdEncoding.EncodeToString(probe),
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return meeting.MatchResult{}, err
	}

	endpoint := c.baseURL + "/api/v1/verify"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return meeting.MatchResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return meeting.MatchResult{}, fmt.Errorf("face match request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return meeting.MatchResult{}, fmt.Errorf("face match service returned status %d", resp.StatusCode)
	}

	var vr verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return meeting.MatchResult{}, fmt.Errorf("failed to decode face match response: %w", err)
	}
	if vr.Error != "" {
		return meeting.MatchResult{}, fmt.Errorf("face match service error: %s", vr.Error)
	}

	return meeting.MatchResult{
		Matched:    vr.Verified,
		Confidence: vr.Confidence,
	}, nil
}
