package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/time-management-api/internal/dto"
	"github.com/yukikurage/time-management-api/internal/middleware"
	"github.com/yukikurage/time-management-api/internal/scope"
	"github.com/yukikurage/time-management-api/internal/services"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// ListEmployees returns the employees in the caller's hierarchy.
// Query: search, department, status, page, limit.
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	params, ok := pagination(c)
	if !ok {
		return
	}

	employees, err := h.employeeService.ListEmployees(c.Request.Context(), middleware.GetSession(c), scope.EmployeeCriteria{
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

	list(c, http.StatusOK, employees, params)
}

func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.GetEmployee(c.Request.Context(), middleware.GetSession(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.employeeService.CreateEmployee(c.Request.Context(), middleware.GetSession(c), services.CreateEmployeeInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		Designation: req.Designation,
		Status:      req.Status,
		Avatar:      req.Avatar,
		Department:  req.Department,
		ManagerID:   req.ManagerID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}
	var req dto.UpdateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.employeeService.UpdateEmployee(c.Request.Context(), middleware.GetSession(c), id, services.UpdateEmployeeInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		Designation:  req.Designation,
		Status:       req.Status,
		Avatar:       req.Avatar,
		Department:   req.Department,
		ManagerID:    req.ManagerID,
		ClearManager: req.ClearManager,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), middleware.GetSession(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
