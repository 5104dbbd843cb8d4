package handler

import (
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/resumeats-api/internal/model"
	"github.com/yourusername/resumeats-api/internal/repository"
	"github.com/yourusername/resumeats-api/internal/service"
)

const (
	maxUploadBytes = 10 * 1024 * 1024
	minTextLength  = 50
)

type OptimizeHandler struct {
	extractor *service.Extractor
	chain     *service.ScoreChain
	enhancer  *service.GeminiEnhancer
	parser    *service.APILayerClient
	reports   *repository.ReportRepo // nil when no database is configured
}

func NewOptimizeHandler(
	extractor *service.Extractor,
	chain *service.ScoreChain,
	enhancer *service.GeminiEnhancer,
	parser *service.APILayerClient,
	reports *repository.ReportRepo,
) *OptimizeHandler {
	return &OptimizeHandler{
		extractor: extractor,
		chain:     chain,
		enhancer:  enhancer,
		parser:    parser,
		reports:   reports,
	}
}

// Optimize handles POST /optimize_resume
// Scores the uploaded PDF, rewrites it with AI, renders the rewrite back
// to PDF, re-scores it, and returns the before/after report.
func (h *OptimizeHandler) Optimize(c *gin.Context) {
	inputPDF, filename, ok := h.receivePDF(c)
	if !ok {
		return
	}
	defer os.Remove(inputPDF)

	text := h.extractor.ExtractText(inputPDF)
	if len(text) < minTextLength {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Could not extract sufficient text from PDF. It may be image-based or corrupted.",
		})
		return
	}

	jobDescription := c.PostForm("job_description")

	log.Info().
		Str("filename", filename).
		Int("textLen", len(text)).
		Bool("hasJobDescription", jobDescription != "").
		Msg("Optimizing resume")

	before := h.chain.Score(c.Request.Context(), inputPDF)

	enhancedText, enhanced := h.enhancer.Enhance(c.Request.Context(), text, jobDescription)

	enhancedPDF := filepath.Join(os.TempDir(), "enhanced-"+uuid.NewString()+".pdf")
	if err := service.WriteResumePDF(enhancedText, enhancedPDF); err != nil {
		log.Error().Err(err).Msg("Failed to render enhanced PDF")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create enhanced PDF"})
		return
	}

	after := h.chain.Score(c.Request.Context(), enhancedPDF)

	h.persistReport(c, filename, before, after, enhanced)

	c.JSON(http.StatusOK, gin.H{
		"before_score":        before.Score,
		"after_score":         after.Score,
		"score_improvement":   round1(after.Score - before.Score),
		"before_details":      before,
		"after_details":       after,
		"enhanced_resume_url": "/download/" + filepath.Base(enhancedPDF),
		"ai_enhanced":         enhanced,
		"text_extracted":      len(text) > 0,
		"text_length":         len(text),
	})
}

// Analyze handles POST /analyze_resume
// Scores the uploaded PDF once and, when the field parser is configured,
// attaches the structured resume fields.
func (h *OptimizeHandler) Analyze(c *gin.Context) {
	inputPDF, filename, ok := h.receivePDF(c)
	if !ok {
		return
	}
	defer os.Remove(inputPDF)

	text := h.extractor.ExtractText(inputPDF)
	if len(text) < minTextLength {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Could not extract sufficient text from PDF. It may be image-based or corrupted.",
		})
		return
	}

	log.Info().Str("filename", filename).Int("textLen", len(text)).Msg("Analyzing resume")

	result := h.chain.Score(c.Request.Context(), inputPDF)

	resp := gin.H{
		"score":       result.Score,
		"details":     result,
		"text_length": len(text),
	}

	if h.parser.Enabled() {
		parsed, err := h.parser.ParseResume(c.Request.Context(), inputPDF)
		if err != nil {
			// Degrade to a score-only response.
			log.Warn().Err(err).Msg("Resume field parsing unavailable")
		} else {
			resp["parsed"] = parsed
		}
	}

	h.persistReport(c, filename, result, result, false)

	c.JSON(http.StatusOK, resp)
}

// receivePDF validates the multipart upload and writes it to a temp file.
// On failure it has already written the client error response.
func (h *OptimizeHandler) receivePDF(c *gin.Context) (path, filename string, ok bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return "", "", false
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF files are supported"})
		return "", "", false
	}

	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 10MB."})
		return "", "", false
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return "", "", false
	}

	if len(fileBytes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file is empty"})
		return "", "", false
	}

	// Header must start with %PDF
	if len(fileBytes) < 4 || string(fileBytes[:4]) != "%PDF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid PDF file"})
		return "", "", false
	}

	tmpPath := filepath.Join(os.TempDir(), "resume-"+uuid.NewString()+".pdf")
	if err := os.WriteFile(tmpPath, fileBytes, 0o600); err != nil {
		log.Error().Err(err).Msg("Failed to write uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return "", "", false
	}

	return tmpPath, header.Filename, true
}

// persistReport saves the run when a database is configured. Storage
// failures are logged, never surfaced to the caller.
func (h *OptimizeHandler) persistReport(c *gin.Context, filename string, before, after *model.ScoreResult, enhanced bool) {
	if h.reports == nil {
		return
	}

	_, err := h.reports.Create(c.Request.Context(), &model.AnalysisReport{
		Filename:      filename,
		BeforeScore:   before.Score,
		AfterScore:    after.Score,
		WordCount:     before.WordCount,
		SectionsFound: before.SectionsFound,
		HasContact:    before.HasContactInfo,
		Note:          before.Note,
		AIEnhanced:    enhanced,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to persist analysis report")
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
