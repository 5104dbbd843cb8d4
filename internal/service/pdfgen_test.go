package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteResumePDF(t *testing.T) {
	rq := require.New(t)

	text := "SUMMARY\nSeasoned Go engineer.\n\nEXPERIENCE\nLed a platform team.\n\nnot a heading line"
	path := filepath.Join(t.TempDir(), "enhanced.pdf")

	rq.NoError(WriteResumePDF(text, path))

	data, err := os.ReadFile(path)
	rq.NoError(err)
	rq.True(len(data) > 4)
	rq.Equal("%PDF", string(data[:4]))
}

func TestIsHeadingLine(t *testing.T) {
	testCases := []struct {
		line    string
		heading bool
	}{
		{"EXPERIENCE", true},
		{"Work Experience", true},
		{"Education", true},
		{"TECHNICAL SKILLS", true},
		{"Shipped the billing migration on time.", false},
		{"2019 - 2022", false},
	}

	for _, tc := range testCases {
		if got := isHeadingLine(tc.line); got != tc.heading {
			t.Errorf("isHeadingLine(%q) = %v, want %v", tc.line, got, tc.heading)
		}
	}
}
