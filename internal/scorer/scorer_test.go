package scorer

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreEmptyInput(t *testing.T) {
	rq := require.New(t)

	for _, input := range []string{"", "   ", "\n\t  \n"} {
		result := Score(input)

		rq.Equal(50.0, result.Score)
		rq.Equal(0, result.WordCount)
		rq.Empty(result.SectionsFound)
		rq.NotNil(result.SectionsFound)
		rq.False(result.HasContactInfo)
		rq.Equal(Note, result.Note)
	}
}

func TestScoreSectionKeywords(t *testing.T) {
	rq := require.New(t)

	result := Score("Experience Education Skills")

	rq.Equal([]string{"experience", "education", "skills"}, result.SectionsFound)
	// base 50 + 3 sections * 5
	rq.Equal(65.0, result.Score)
}

func TestScoreSectionOrderAndNoDuplicates(t *testing.T) {
	rq := require.New(t)

	// Repeated and out-of-order mentions still yield the fixed rule order,
	// each keyword at most once.
	result := Score("skills skills SKILLS education experience education")

	rq.Equal([]string{"experience", "education", "skills"}, result.SectionsFound)
}

func TestScoreFullResume(t *testing.T) {
	rq := require.New(t)

	// 3 sections (+15), 500 words (ideal band, +10), phone contact (+10),
	// two distinct action verbs (+4) => 50 + 15 + 10 + 10 + 4 = 89.0
	// 6 meaningful words + 494 filler words.
	text := "Experience Education Skills phone developed led " +
		strings.TrimSpace(strings.Repeat("filler ", 494))
	rq.Equal(500, len(strings.Fields(text)))

	result := Score(text)

	rq.Equal(89.0, result.Score)
	rq.Equal(500, result.WordCount)
	rq.True(result.HasContactInfo)
	rq.Equal([]string{"experience", "education", "skills"}, result.SectionsFound)
}

func TestScoreWordCountBands(t *testing.T) {
	testCases := []struct {
		name  string
		words int
		score float64
	}{
		{name: "below band gets no adjustment", words: 299, score: 50.0},
		{name: "band lower edge", words: 300, score: 60.0},
		{name: "band upper edge", words: 1000, score: 60.0},
		{name: "above band is penalized", words: 1001, score: 45.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			// "zzz" matches no section, contact, or verb rule.
			text := strings.TrimSpace(strings.Repeat("zzz ", tc.words))
			result := Score(text)

			rq.Equal(tc.words, result.WordCount)
			rq.Equal(tc.score, result.Score)
		})
	}
}

func TestScoreContactIndicators(t *testing.T) {
	rq := require.New(t)

	for _, token := range []string{"@", "phone", "email", "linkedin", "github", "contact"} {
		result := Score(token)
		rq.True(result.HasContactInfo, "token %q should count as contact info", token)
		rq.Equal(60.0, result.Score)
	}

	// Substring matching is intentional: "contactless" still matches "contact".
	rq.True(Score("contactless payments").HasContactInfo)
}

func TestScoreVerbBonusCapped(t *testing.T) {
	rq := require.New(t)

	// 20 repeats of one verb count once: +2, not +40.
	result := Score(strings.TrimSpace(strings.Repeat("managed ", 20)))
	rq.Equal(52.0, result.Score)

	// All 7 distinct verbs clamp at +10, not +14.
	result = Score("managed developed created led implemented achieved improved")
	rq.Equal(60.0, result.Score)
}

func TestScoreVerbBonusMonotone(t *testing.T) {
	rq := require.New(t)

	verbs := []string{"managed", "developed", "created", "led", "implemented", "achieved", "improved"}
	prev := Score("").Score
	for i := range verbs {
		score := Score(strings.Join(verbs[:i+1], " ")).Score
		rq.GreaterOrEqual(score, prev)
		prev = score
	}
}

func TestScoreRangeAndPrecision(t *testing.T) {
	rq := require.New(t)

	inputs := []string{
		"",
		"experience education skills projects summary objective work employment",
		"managed developed created led implemented achieved improved @ linkedin github",
		strings.Repeat("experience phone managed ", 400),
		strings.Repeat("x ", 5000),
		"EXPERIENCE\nSKILLS\ncontact: someone@example.com",
	}

	for _, input := range inputs {
		result := Score(input)
		rq.GreaterOrEqual(result.Score, 0.0)
		rq.LessOrEqual(result.Score, 100.0)
		// One decimal digit of precision.
		rq.Equal(result.Score, math.Round(result.Score*10)/10)
	}
}

func TestScoreClampsAt100(t *testing.T) {
	rq := require.New(t)

	// Every rule maxed: 50 + 40 + 10 + 10 + 10 = 120, clamped.
	text := "experience education skills projects summary objective work employment " +
		"phone @ email managed developed created led implemented achieved improved " +
		strings.Repeat("pad ", 400)
	result := Score(text)

	rq.Equal(100.0, result.Score)
}

func TestScoreIdempotent(t *testing.T) {
	rq := require.New(t)

	text := "Experience at Acme. Skills: Go. Contact: jane@example.com. Led and developed things."
	first := Score(text)
	second := Score(text)

	rq.Equal(first, second)
}
