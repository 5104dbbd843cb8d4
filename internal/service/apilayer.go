package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/yourusername/resumeats-api/internal/model"
)

const defaultAPILayerURL = "https://api.apilayer.com/resume_parser/upload"

// APILayerClient wraps the apilayer resume parser, which turns a raw PDF
// into structured fields (name, contact info, skills, history).
type APILayerClient struct {
	apiKey string
	apiURL string
	client *http.Client
}

func NewAPILayerClient(apiKey, apiURL string) *APILayerClient {
	if apiURL == "" {
		apiURL = defaultAPILayerURL
	}
	return &APILayerClient{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{
			Timeout: 45 * time.Second,
		},
	}
}

// Enabled returns true if an apilayer key is configured.
func (c *APILayerClient) Enabled() bool {
	return c.apiKey != ""
}

// ── apilayer response types ──────────────────────────

type apiLayerResponse struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Skills    []string `json:"skills"`
	Education []struct {
		Name  string `json:"name"`
		Dates string `json:"dates"`
	} `json:"education"`
	Experience []struct {
		Title        string `json:"title"`
		Organization string `json:"organization"`
		Dates        string `json:"dates"`
	} `json:"experience"`
}

// ParseResume posts the PDF bytes and returns the structured fields.
func (c *APILayerClient) ParseResume(ctx context.Context, pdfPath string) (*model.ParsedResume, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("apilayer key not configured")
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling apilayer: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("apilayer returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed apiLayerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing apilayer response: %w", err)
	}

	result := &model.ParsedResume{
		Name:   parsed.Name,
		Email:  parsed.Email,
		Phone:  parsed.Phone,
		Skills: parsed.Skills,
	}
	for _, edu := range parsed.Education {
		result.Education = append(result.Education, model.ParsedEducation{
			Name:  edu.Name,
			Dates: edu.Dates,
		})
	}
	for _, exp := range parsed.Experience {
		result.Experience = append(result.Experience, model.ParsedExperience{
			Title:        exp.Title,
			Organization: exp.Organization,
			Dates:        exp.Dates,
		})
	}

	return result, nil
}
