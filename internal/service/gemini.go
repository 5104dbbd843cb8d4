package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

const enhancePromptPrefix = "You are an expert ATS resume optimizer. " +
	"Enhance the following resume to maximize ATS score and readability. " +
	"Keep every fact truthful, keep section headings, and return plain text only:\n\n"

// GeminiEnhancer rewrites resume text with the Gemini API. A nil-keyed
// enhancer is valid and simply reports itself disabled.
type GeminiEnhancer struct {
	client    *genai.Client
	modelName string
}

// NewGeminiEnhancer builds an enhancer for the Gemini API backend.
// An empty key yields a disabled enhancer rather than an error, so the
// rest of the pipeline runs without generative rewriting.
func NewGeminiEnhancer(ctx context.Context, apiKey, modelName string) (*GeminiEnhancer, error) {
	if modelName = strings.TrimSpace(modelName); modelName == "" {
		modelName = defaultGeminiModel
	}
	if strings.TrimSpace(apiKey) == "" {
		return &GeminiEnhancer{modelName: modelName}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiEnhancer{client: client, modelName: modelName}, nil
}

// Enabled returns true if a Gemini client is configured.
func (g *GeminiEnhancer) Enabled() bool {
	return g != nil && g.client != nil
}

// Enhance rewrites the resume, optionally targeting a job description.
// On any failure it degrades to the original text and reports
// enhanced=false; generation errors never fail a request.
func (g *GeminiEnhancer) Enhance(ctx context.Context, resumeText, jobDescription string) (string, bool) {
	if !g.Enabled() {
		return resumeText, false
	}

	prompt := enhancePromptPrefix + resumeText
	if strings.TrimSpace(jobDescription) != "" {
		prompt += "\n\nTarget Job Description:\n" + jobDescription
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		log.Warn().Err(err).Msg("Gemini enhancement failed, returning original text")
		return resumeText, false
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(strings.TrimSpace(part.Text))
		}
	}

	enhanced := strings.TrimSpace(sb.String())
	if enhanced == "" {
		log.Warn().Msg("Gemini returned empty response, returning original text")
		return resumeText, false
	}

	return enhanced, true
}
