package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

type DownloadHandler struct{}

func NewDownloadHandler() *DownloadHandler {
	return &DownloadHandler{}
}

// Download handles GET /download/:filename
// Serves an enhanced resume PDF generated earlier in this process's temp
// dir. Only files this service wrote are downloadable.
func (h *DownloadHandler) Download(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))

	// Refuse anything that isn't one of our generated PDFs; also blocks
	// traversal into other temp files.
	if !strings.HasPrefix(filename, "enhanced-") || !strings.HasSuffix(filename, ".pdf") {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found or expired"})
		return
	}

	path := filepath.Join(os.TempDir(), filename)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found or expired"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="enhanced_resume.pdf"`)
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
