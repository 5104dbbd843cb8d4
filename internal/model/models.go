package model

import (
	"time"

	"github.com/google/uuid"
)

// ── Scoring ────────────────────────────────────────────

// ScoreResult is the outcome of scoring a resume with one provider.
// The rule-based scorer fills every field; external providers typically
// fill only Score and Note.
type ScoreResult struct {
	Score          float64  `json:"score"`
	SectionsFound  []string `json:"sections_found"`
	WordCount      int      `json:"word_count"`
	HasContactInfo bool     `json:"has_contact_info"`
	Note           string   `json:"note"`
}

// ── Parsed resume fields ───────────────────────────────

// ParsedResume is the structured data an external resume parser extracts
// from a PDF (name, contact info, skills, history).
type ParsedResume struct {
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone"`
	Skills     []string           `json:"skills"`
	Education  []ParsedEducation  `json:"education"`
	Experience []ParsedExperience `json:"experience"`
}

type ParsedEducation struct {
	Name  string `json:"name"`
	Dates string `json:"dates,omitempty"`
}

type ParsedExperience struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Dates        string `json:"dates,omitempty"`
}

// ── Persisted analysis history ─────────────────────────

// AnalysisReport is one stored optimize/analyze run.
type AnalysisReport struct {
	ID            uuid.UUID `json:"id"`
	Filename      string    `json:"filename"`
	BeforeScore   float64   `json:"before_score"`
	AfterScore    float64   `json:"after_score"`
	WordCount     int       `json:"word_count"`
	SectionsFound []string  `json:"sections_found"`
	HasContact    bool      `json:"has_contact"`
	Note          string    `json:"note"`
	AIEnhanced    bool      `json:"ai_enhanced"`
	CreatedAt     time.Time `json:"created_at"`
}
