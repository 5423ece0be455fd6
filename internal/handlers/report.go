package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/time-management-api/internal/middleware"
	"github.com/yukikurage/time-management-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Performance reports per-department results.
// Query: department, from, to.
func (h *ReportHandler) Performance(c *gin.Context) {
	rows, err := h.reportService.Performance(c.Request.Context(), middleware.GetSession(c), services.PerformanceCriteria{
		Department: c.Query("department"),
		From:       c.Query("from"),
		To:         c.Query("to"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"departments": rows})
}

func (h *ReportHandler) AIAdoption(c *gin.Context) {
	slices, err := h.reportService.AIAdoption(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"departments": slices})
}

func (h *ReportHandler) ProjectStatus(c *gin.Context) {
	slices, err := h.reportService.ProjectStatus(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": slices})
}
