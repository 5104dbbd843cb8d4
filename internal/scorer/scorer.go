// Package scorer implements the rule-based resume score used as the
// terminal fallback when every external scoring provider is unavailable.
package scorer

import (
	"math"
	"strings"

	"github.com/yourusername/resumeats-api/internal/model"
)

// Note marks results produced by the rule-based scorer.
const Note = "rule-based fallback"

// sectionKeywords are checked in order; each hit adds sectionBonus.
var sectionKeywords = []string{
	"experience", "education", "skills", "projects",
	"summary", "objective", "work", "employment",
}

// contactIndicators: any hit sets has_contact_info and adds contactBonus.
var contactIndicators = []string{
	"@", "phone", "email", "linkedin", "github", "contact",
}

// actionVerbs each add verbBonus, capped at verbBonusCap total.
// Presence is counted once per verb regardless of repeats.
var actionVerbs = []string{
	"managed", "developed", "created", "led",
	"implemented", "achieved", "improved",
}

const (
	baseScore    = 50.0
	sectionBonus = 5.0
	contactBonus = 10.0
	verbBonus    = 2.0
	verbBonusCap = 10.0

	// Word-count band: inside gets the bonus, above gets the penalty.
	// Below the band neither applies.
	idealWordsMin     = 300
	idealWordsMax     = 1000
	wordBandBonus     = 10.0
	longResumePenalty = 5.0
)

// Score computes a 0-100 completeness score for extracted resume text.
// It is a pure function, total over all string inputs: empty or
// whitespace-only text yields exactly the base score of 50.0.
//
// Matching is deliberately lenient substring matching, not word-boundary
// matching ("contact" also matches inside "contactless"); callers depend
// on this for compatibility with historical scoring behavior.
func Score(text string) model.ScoreResult {
	lower := strings.ToLower(text)
	score := baseScore

	sectionsFound := []string{}
	for _, kw := range sectionKeywords {
		if strings.Contains(lower, kw) {
			sectionsFound = append(sectionsFound, kw)
			score += sectionBonus
		}
	}

	wordCount := len(strings.Fields(text))
	switch {
	case wordCount >= idealWordsMin && wordCount <= idealWordsMax:
		score += wordBandBonus
	case wordCount > idealWordsMax:
		score -= longResumePenalty
	}

	hasContact := false
	for _, indicator := range contactIndicators {
		if strings.Contains(lower, indicator) {
			hasContact = true
			break
		}
	}
	if hasContact {
		score += contactBonus
	}

	verbsFound := 0
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			verbsFound++
		}
	}
	score += math.Min(float64(verbsFound)*verbBonus, verbBonusCap)

	score = math.Max(0, math.Min(100, score))
	score = math.Round(score*10) / 10

	return model.ScoreResult{
		Score:          score,
		SectionsFound:  sectionsFound,
		WordCount:      wordCount,
		HasContactInfo: hasContact,
		Note:           Note,
	}
}
