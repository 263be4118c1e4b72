package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordbook/internal/auth"
	"github.com/mrlokans/wordbook/internal/exporters"
	"github.com/mrlokans/wordbook/internal/tasks"
)

// ExportController serves markdown downloads and queues file exports.
type ExportController struct {
	exporter *exporters.DeckExporter
	queue    TaskQueue
}

// NewExportController creates an ExportController. queue may be nil when the
// task queue is disabled; POST /api/export then answers 503.
func NewExportController(exporter *exporters.DeckExporter, queue TaskQueue) *ExportController {
	return &ExportController{exporter: exporter, queue: queue}
}

// DownloadMarkdown handles GET /api/export/markdown?categoryId=
func (ec *ExportController) DownloadMarkdown(c *gin.Context) {
	categoryID, ok := parseOptionalQueryID(c, "categoryId")
	if !ok {
		return
	}

	markdown, _, err := ec.exporter.Render(c.Request.Context(), auth.GetUserID(c), categoryID)
	if err != nil {
		respondStoreError(c, err, "user", "render markdown export")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", exporters.DeckFileName))
	c.Header("Content-Type", "text/markdown; charset=utf-8")
	c.String(http.StatusOK, markdown)
}

// EnqueueExport handles POST /api/export
// Queues a write of the caller's deck to the export directory.
func (ec *ExportController) EnqueueExport(c *gin.Context) {
	if ec.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled", CodeUnavailable)
		return
	}

	taskID, err := ec.queue.Enqueue(tasks.ExportDeckTask{UserID: auth.GetUserID(c)})
	if err != nil {
		respondInternalError(c, err, "enqueue export")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"taskId": taskID})
}
