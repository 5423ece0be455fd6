package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/time-management-api/internal/dto"
	apierrors "github.com/yukikurage/time-management-api/internal/errors"
	"github.com/yukikurage/time-management-api/internal/middleware"
	"github.com/yukikurage/time-management-api/internal/scope"
	"github.com/yukikurage/time-management-api/internal/services"
)

type TimeEntryHandler struct {
	entryService *services.TimeEntryService
}

func NewTimeEntryHandler(entryService *services.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{
		entryService: entryService,
	}
}

// ListTimeEntries returns time logged inside the caller's hierarchy.
// Query: search, employee, project, from, to, page, limit.
func (h *TimeEntryHandler) ListTimeEntries(c *gin.Context) {
	params, ok := pagination(c)
	if !ok {
		return
	}

	entries, err := h.entryService.ListTimeEntries(c.Request.Context(), middleware.GetSession(c), scope.TimeEntryCriteria{
		Search:   c.Query("search"),
		Employee: c.Query("employee"),
		Project:  c.Query("project"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	list(c, http.StatusOK, entries, params)
}

func (h *TimeEntryHandler) CreateTimeEntry(c *gin.Context) {
	var req dto.CreateTimeEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	date, ok := parseDate(c, "date", &req.Date)
	if !ok {
		return
	}
	if date == nil {
		apierrors.BadRequest(c, "date is required")
		return
	}

	entry, err := h.entryService.CreateTimeEntry(c.Request.Context(), middleware.GetSession(c), services.CreateTimeEntryInput{
		UserID:     req.UserID,
		ProjectID:  req.ProjectID,
		SubProject: req.SubProject,
		TaskID:     req.TaskID,
		Date:       *date,
		TimeSpent:  req.TimeSpent,
		AIUsed:     req.AIUsed,
		AITool:     req.AITool,
		TimeSaved:  req.TimeSaved,
		Status:     req.Status,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *TimeEntryHandler) UpdateTimeEntry(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}
	var req dto.UpdateTimeEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	date, ok := parseDate(c, "date", req.Date)
	if !ok {
		return
	}

	entry, err := h.entryService.UpdateTimeEntry(c.Request.Context(), middleware.GetSession(c), id, services.UpdateTimeEntryInput{
		ProjectID:  req.ProjectID,
		SubProject: req.SubProject,
		TaskID:     req.TaskID,
		Date:       date,
		TimeSpent:  req.TimeSpent,
		AIUsed:     req.AIUsed,
		AITool:     req.AITool,
		TimeSaved:  req.TimeSaved,
		Status:     req.Status,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *TimeEntryHandler) DeleteTimeEntry(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	if err := h.entryService.DeleteTimeEntry(c.Request.Context(), middleware.GetSession(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Time entry deleted successfully"})
}
