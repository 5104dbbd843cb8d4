package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/resumeats-api/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	extractor := service.NewExtractor()
	chain := service.NewScoreChain(service.NewHeuristicProvider(extractor))
	enhancer, err := service.NewGeminiEnhancer(context.Background(), "", "")
	require.NoError(t, err)
	parser := service.NewAPILayerClient("", "")

	h := NewOptimizeHandler(extractor, chain, enhancer, parser, nil)

	r := gin.New()
	r.POST("/optimize_resume", h.Optimize)
	r.POST("/analyze_resume", h.Analyze)
	r.GET("/download/:filename", NewDownloadHandler().Download)
	return r
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func TestOptimizeRejectsBadUploads(t *testing.T) {
	testCases := []struct {
		name     string
		filename string
		content  []byte
		wantMsg  string
	}{
		{
			name:     "non-PDF extension",
			filename: "resume.docx",
			content:  []byte("%PDF-1.4 whatever"),
			wantMsg:  "Only PDF files are supported",
		},
		{
			name:     "empty file",
			filename: "resume.pdf",
			content:  []byte{},
			wantMsg:  "Uploaded file is empty",
		},
		{
			name:     "bad magic bytes",
			filename: "resume.pdf",
			content:  []byte("this is plain text"),
			wantMsg:  "Invalid PDF file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			router := newTestRouter(t)

			body, contentType := multipartUpload(t, tc.filename, tc.content)
			req := httptest.NewRequest("POST", "/optimize_resume", body)
			req.Header.Set("Content-Type", contentType)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			rq.Equal(http.StatusBadRequest, w.Code)
			rq.Contains(w.Body.String(), tc.wantMsg)
		})
	}
}

func TestOptimizeScoresAndServesRewrite(t *testing.T) {
	rq := require.New(t)
	router := newTestRouter(t)

	// A real PDF with extractable text, built with our own renderer.
	src := filepath.Join(t.TempDir(), "resume.pdf")
	text := "EXPERIENCE\nDeveloped and led the payments platform for six years at Acme.\n\n" +
		"EDUCATION\nState University, BSc Computer Science.\n\n" +
		"SKILLS\nGo, Postgres, Kubernetes.\n\n" +
		"Contact: jane@example.com"
	rq.NoError(service.WriteResumePDF(text, src))

	content, err := os.ReadFile(src)
	rq.NoError(err)

	body, contentType := multipartUpload(t, "resume.pdf", content)
	req := httptest.NewRequest("POST", "/optimize_resume", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	rq.Equal(http.StatusOK, w.Code)

	var resp struct {
		BeforeScore       float64 `json:"before_score"`
		AfterScore        float64 `json:"after_score"`
		AIEnhanced        bool    `json:"ai_enhanced"`
		EnhancedResumeURL string  `json:"enhanced_resume_url"`
		TextExtracted     bool    `json:"text_extracted"`
		BeforeDetails     struct {
			Note string `json:"note"`
		} `json:"before_details"`
	}
	rq.NoError(json.Unmarshal(w.Body.Bytes(), &resp))

	// The enhancer is unconfigured, so the rewrite is the original text.
	rq.False(resp.AIEnhanced)
	rq.True(resp.TextExtracted)
	rq.GreaterOrEqual(resp.BeforeScore, 0.0)
	rq.LessOrEqual(resp.BeforeScore, 100.0)
	rq.GreaterOrEqual(resp.AfterScore, 0.0)
	rq.LessOrEqual(resp.AfterScore, 100.0)
	rq.Equal("rule-based fallback", resp.BeforeDetails.Note)
	rq.True(strings.HasPrefix(resp.EnhancedResumeURL, "/download/enhanced-"))
	rq.True(strings.HasSuffix(resp.EnhancedResumeURL, ".pdf"))

	// The rewrite is immediately downloadable at the returned URL.
	dlReq := httptest.NewRequest("GET", resp.EnhancedResumeURL, nil)
	dlW := httptest.NewRecorder()
	router.ServeHTTP(dlW, dlReq)

	rq.Equal(http.StatusOK, dlW.Code)
	rq.True(bytes.HasPrefix(dlW.Body.Bytes(), []byte("%PDF")))
	defer os.Remove(filepath.Join(os.TempDir(), filepath.Base(resp.EnhancedResumeURL)))
}

func TestOptimizeRejectsMissingFile(t *testing.T) {
	rq := require.New(t)
	router := newTestRouter(t)

	req := httptest.NewRequest("POST", "/optimize_resume", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	rq.Equal(http.StatusBadRequest, w.Code)
	rq.Contains(w.Body.String(), "No file uploaded")
}

func TestAnalyzeRejectsUnextractablePDF(t *testing.T) {
	rq := require.New(t)
	router := newTestRouter(t)

	// Valid magic bytes but no extractable text anywhere in the chain.
	body, contentType := multipartUpload(t, "resume.pdf", []byte("%PDF-1.4\ngarbage"))
	req := httptest.NewRequest("POST", "/analyze_resume", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	rq.Equal(http.StatusBadRequest, w.Code)
	rq.Contains(w.Body.String(), "Could not extract sufficient text")
}

func TestDownloadRejectsForeignFilenames(t *testing.T) {
	rq := require.New(t)
	router := newTestRouter(t)

	// A real temp file that is not one of ours must stay unreachable.
	secret := filepath.Join(os.TempDir(), "secret.txt")
	rq.NoError(os.WriteFile(secret, []byte("do not serve"), 0o600))
	defer os.Remove(secret)

	for _, name := range []string{"secret.txt", "..%2Fsecret.txt", "enhanced-x.txt", "notours.pdf"} {
		req := httptest.NewRequest("GET", "/download/"+name, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		rq.Equal(http.StatusNotFound, w.Code, "filename %q must 404", name)
	}
}

func TestDownloadServesGeneratedPDF(t *testing.T) {
	rq := require.New(t)
	router := newTestRouter(t)

	path := filepath.Join(os.TempDir(), "enhanced-test-download.pdf")
	rq.NoError(service.WriteResumePDF("EXPERIENCE\nBuilt things.", path))
	defer os.Remove(path)

	req := httptest.NewRequest("GET", "/download/enhanced-test-download.pdf", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	rq.Equal(http.StatusOK, w.Code)
	rq.Equal("application/pdf", w.Header().Get("Content-Type"))
	rq.True(bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}
