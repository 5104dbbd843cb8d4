package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Every endpoint response uses snake_case keys; stored reports are served
// straight from this struct, so its tags must follow the same convention.
func TestAnalysisReportJSONUsesSnakeCase(t *testing.T) {
	rq := require.New(t)

	report := AnalysisReport{
		ID:            uuid.New(),
		Filename:      "resume.pdf",
		BeforeScore:   50,
		AfterScore:    62.5,
		WordCount:     420,
		SectionsFound: []string{"experience", "skills"},
		HasContact:    true,
		Note:          "rule-based fallback",
		AIEnhanced:    true,
		CreatedAt:     time.Now(),
	}

	data, err := json.Marshal(report)
	rq.NoError(err)

	var keys map[string]any
	rq.NoError(json.Unmarshal(data, &keys))

	for _, key := range []string{
		"id", "filename", "before_score", "after_score", "word_count",
		"sections_found", "has_contact", "note", "ai_enhanced", "created_at",
	} {
		rq.Contains(keys, key)
	}
	rq.NotContains(keys, "beforeScore")
	rq.NotContains(keys, "aiEnhanced")
}
