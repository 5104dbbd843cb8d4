package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yourusername/resumeats-api/internal/model"
)

const defaultMagicalAPIURL = "https://api.magicalapi.com/v1/resume/score"

// MagicalAPIClient wraps the MagicalAPI resume scoring endpoint.
// The vendor only accepts hosted-URL references, so PDFs are first
// uploaded to file.io to obtain a public link.
type MagicalAPIClient struct {
	apiKey  string
	apiURL  string
	uploads *FileIOClient
	client  *http.Client
}

func NewMagicalAPIClient(apiKey, apiURL string, uploads *FileIOClient) *MagicalAPIClient {
	if apiURL == "" {
		apiURL = defaultMagicalAPIURL
	}
	return &MagicalAPIClient{
		apiKey:  apiKey,
		apiURL:  apiURL,
		uploads: uploads,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Enabled returns true if a MagicalAPI key is configured.
func (c *MagicalAPIClient) Enabled() bool {
	return c.apiKey != ""
}

func (c *MagicalAPIClient) Name() string {
	return "magicalapi"
}

type magicalAPIResponse struct {
	Score float64 `json:"score"`
	Data  struct {
		Score float64 `json:"score"`
	} `json:"data"`
}

// AttemptScore uploads the PDF and asks MagicalAPI for an ATS score.
// Any failure means the provider is unavailable and the chain moves on.
func (c *MagicalAPIClient) AttemptScore(ctx context.Context, pdfPath string) (*model.ScoreResult, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("MagicalAPI key not configured")
	}

	publicURL, err := c.uploads.Upload(ctx, pdfPath)
	if err != nil {
		return nil, fmt.Errorf("hosting resume for MagicalAPI: %w", err)
	}

	jsonBody, err := json.Marshal(map[string]string{"resume_url": publicURL})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling MagicalAPI: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("MagicalAPI returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed magicalAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing MagicalAPI response: %w", err)
	}

	score := parsed.Score
	if score == 0 {
		score = parsed.Data.Score
	}
	if score <= 0 || score > 100 {
		return nil, fmt.Errorf("MagicalAPI returned no usable score (raw: %s)", string(body))
	}

	return &model.ScoreResult{
		Score: score,
		Note:  "scored via MagicalAPI",
	}, nil
}
