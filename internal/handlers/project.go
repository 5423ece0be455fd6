package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/time-management-api/internal/dto"
	"github.com/yukikurage/time-management-api/internal/middleware"
	"github.com/yukikurage/time-management-api/internal/scope"
	"github.com/yukikurage/time-management-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns the projects visible to the caller.
// Query: search, department, status, page, limit.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params, ok := pagination(c)
	if !ok {
		return
	}

	projects, err := h.projectService.ListProjects(c.Request.Context(), middleware.GetSession(c), scope.ProjectCriteria{
		Search:     c.Query("search"),
		Department: c.Query("department"),
		Status:     c.Query("status"),
		Page:       params.Page,
		PageSize:   params.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	list(c, http.StatusOK, projects, params)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), middleware.GetSession(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	start, ok := parseDate(c, "start_date", req.StartDate)
	if !ok {
		return
	}
	end, ok := parseDate(c, "end_date", req.EndDate)
	if !ok {
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), middleware.GetSession(c), services.CreateProjectInput{
		Name:              req.Name,
		Category:          req.Category,
		Department:        req.Department,
		SubProjects:       req.SubProjects,
		StartDate:         start,
		EndDate:           end,
		Status:            req.Status,
		Progress:          req.Progress,
		AssignedEmployees: req.AssignedEmployees,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}
	var req dto.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	start, ok := parseDate(c, "start_date", req.StartDate)
	if !ok {
		return
	}
	end, ok := parseDate(c, "end_date", req.EndDate)
	if !ok {
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), middleware.GetSession(c), id, services.UpdateProjectInput{
		Name:              req.Name,
		Category:          req.Category,
		Department:        req.Department,
		SubProjects:       req.SubProjects,
		StartDate:         start,
		EndDate:           end,
		Status:            req.Status,
		Progress:          req.Progress,
		AssignedEmployees: req.AssignedEmployees,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), middleware.GetSession(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
