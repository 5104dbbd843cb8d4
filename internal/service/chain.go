package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/resumeats-api/internal/model"
	"github.com/yourusername/resumeats-api/internal/scorer"
)

// ScoreProvider is one strategy for scoring a resume PDF. Returning an
// error means "provider unavailable"; the chain falls through to the next.
type ScoreProvider interface {
	Name() string
	AttemptScore(ctx context.Context, pdfPath string) (*model.ScoreResult, error)
}

// ScoreChain tries providers in priority order and returns the first
// success. With the heuristic provider as its terminal member it cannot
// come back empty-handed.
type ScoreChain struct {
	providers []ScoreProvider
}

func NewScoreChain(providers ...ScoreProvider) *ScoreChain {
	return &ScoreChain{providers: providers}
}

// Score runs the chain. Provider failures are logged and swallowed; they
// never propagate to the HTTP caller.
func (c *ScoreChain) Score(ctx context.Context, pdfPath string) *model.ScoreResult {
	for _, provider := range c.providers {
		result, err := provider.AttemptScore(ctx, pdfPath)
		if err != nil {
			log.Warn().Err(err).Str("provider", provider.Name()).Msg("Scoring provider unavailable, falling through")
			continue
		}
		log.Info().Str("provider", provider.Name()).Float64("score", result.Score).Msg("Resume scored")
		return result
	}

	// Unreachable with a heuristic terminal member; kept total anyway.
	result := scorer.Score("")
	return &result
}

// HeuristicProvider scores by extracting text locally and applying the
// rule-based scorer. It always succeeds.
type HeuristicProvider struct {
	extractor *Extractor
}

func NewHeuristicProvider(extractor *Extractor) *HeuristicProvider {
	return &HeuristicProvider{extractor: extractor}
}

func (p *HeuristicProvider) Name() string {
	return "heuristic"
}

func (p *HeuristicProvider) AttemptScore(ctx context.Context, pdfPath string) (*model.ScoreResult, error) {
	text := p.extractor.ExtractText(pdfPath)
	result := scorer.Score(text)
	return &result, nil
}
