package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/time-management-api/internal/dto"
	"github.com/yukikurage/time-management-api/internal/middleware"
	"github.com/yukikurage/time-management-api/internal/services"
)

// SettingsHandler serves the department and AI tool catalogues.
type SettingsHandler struct {
	departmentService *services.DepartmentService
	toolService       *services.AIToolService
}

func NewSettingsHandler(departmentService *services.DepartmentService, toolService *services.AIToolService) *SettingsHandler {
	return &SettingsHandler{
		departmentService: departmentService,
		toolService:       toolService,
	}
}

func (h *SettingsHandler) ListDepartments(c *gin.Context) {
	depts, err := h.departmentService.ListDepartments(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(depts, 0, 0))
}

func (h *SettingsHandler) CreateDepartment(c *gin.Context) {
	var req dto.DepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	dept, err := h.departmentService.CreateDepartment(c.Request.Context(), middleware.GetSession(c), departmentInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dept)
}

func (h *SettingsHandler) UpdateDepartment(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}
	var req dto.DepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	dept, err := h.departmentService.UpdateDepartment(c.Request.Context(), middleware.GetSession(c), id, departmentInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dept)
}

func (h *SettingsHandler) DeleteDepartment(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	if err := h.departmentService.DeleteDepartment(c.Request.Context(), middleware.GetSession(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}

func (h *SettingsHandler) ListAITools(c *gin.Context) {
	tools, err := h.toolService.ListAITools(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(tools, 0, 0))
}

func (h *SettingsHandler) CreateAITool(c *gin.Context) {
	var req dto.AIToolRequest
	if !bindJSON(c, &req) {
		return
	}

	tool, err := h.toolService.CreateAITool(c.Request.Context(), middleware.GetSession(c), aiToolInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tool)
}

func (h *SettingsHandler) UpdateAITool(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}
	var req dto.AIToolRequest
	if !bindJSON(c, &req) {
		return
	}

	tool, err := h.toolService.UpdateAITool(c.Request.Context(), middleware.GetSession(c), id, aiToolInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tool)
}

func (h *SettingsHandler) DeleteAITool(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	if err := h.toolService.DeleteAITool(c.Request.Context(), middleware.GetSession(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "AI tool deleted successfully"})
}

func departmentInput(req dto.DepartmentRequest) services.DepartmentInput {
	return services.DepartmentInput{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}
}

func aiToolInput(req dto.AIToolRequest) services.AIToolInput {
	return services.AIToolInput{
		Name:        req.Name,
		Category:    req.Category,
		UsageCount:  req.UsageCount,
		TimeSaved:   req.TimeSaved,
		Departments: req.Departments,
		Trend:       req.Trend,
		Description: req.Description,
		URL:         req.URL,
	}
}
