package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const defaultFileIOURL = "https://file.io"

// FileIOClient uploads files to file.io to obtain short-lived public URLs.
// Scoring vendors that only accept hosted-URL references need this.
type FileIOClient struct {
	baseURL string
	client  *http.Client
}

func NewFileIOClient(baseURL string) *FileIOClient {
	if baseURL == "" {
		baseURL = defaultFileIOURL
	}
	return &FileIOClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type fileIOResponse struct {
	Success bool   `json:"success"`
	Link    string `json:"link"`
	Error   string `json:"error"`
}

// Upload posts the file with a one-week expiry and returns its public link.
func (c *FileIOClient) Upload(ctx context.Context, filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("reading file for upload: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return "", fmt.Errorf("creating multipart field: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("writing multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"?expires=1w", &body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading to file.io: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading upload response: %w", err)
	}

	var parsed fileIOResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("file.io service temporarily unavailable: %w", err)
	}

	if !parsed.Success || parsed.Link == "" {
		if parsed.Error == "" {
			parsed.Error = "unknown error"
		}
		return "", fmt.Errorf("file.io upload rejected: %s", parsed.Error)
	}

	return parsed.Link, nil
}
