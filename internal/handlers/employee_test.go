package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yukikurage/time-management-api/internal/dto"
	"github.com/yukikurage/time-management-api/internal/models"
)

func TestEmployeeHandler_ListScopedToHierarchy(t *testing.T) {
	env := setupTestEnv(t)
	manager := env.createUser(t, "manager", models.RoleManager, "Engineering", nil)
	env.createUser(t, "report", models.RoleEmployee, "Engineering", &manager.ID)
	env.createUser(t, "outsider", models.RoleEmployee, "Marketing", nil)

	w := env.request(t, http.MethodGet, "/api/employees?department=all&search=", nil, manager)

	require.Equal(t, http.StatusOK, w.Code)
	var body listBody[dto.EmployeeView]
	decode(t, w, &body)
	require.Equal(t, 2, body.Count)
	require.Equal(t, "None", body.Items[0].Manager)
	require.Equal(t, "manager", body.Items[1].Manager)
}

func TestEmployeeHandler_CreateRequiresCapability(t *testing.T) {
	env := setupTestEnv(t)
	manager := env.createUser(t, "manager", models.RoleManager, "Engineering", nil)
	admin := env.createUser(t, "admin", models.RoleAdmin, "Operations", nil)

	req := dto.CreateEmployeeRequest{
		Name:       "New Hire",
		Email:      "hire@example.com",
		Password:   testPassword,
		Department: "Engineering",
		ManagerID:  &manager.ID,
	}

	w := env.request(t, http.MethodPost, "/api/employees", req, manager)
	require.Equal(t, http.StatusForbidden, w.Code)
	var denied errorBody
	decode(t, w, &denied)
	require.Equal(t, "canCreateEmployee", denied.Details["capability"])

	w = env.request(t, http.MethodPost, "/api/employees", req, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.User
	decode(t, w, &created)
	require.Equal(t, models.RoleEmployee, created.Role)
	require.Empty(t, created.PasswordHash)

	w = env.request(t, http.MethodPost, "/api/employees", req, admin)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestEmployeeHandler_CreateShortPassword(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.createUser(t, "admin", models.RoleAdmin, "Operations", nil)

	w := env.request(t, http.MethodPost, "/api/employees", dto.CreateEmployeeRequest{
		Name:     "Weak",
		Email:    "weak@example.com",
		Password: "short",
	}, admin)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body errorBody
	decode(t, w, &body)
	require.Equal(t, "Password must be at least 8 characters", body.Message)
}

func TestEmployeeHandler_UpdateAndDelete(t *testing.T) {
	env := setupTestEnv(t)
	super := env.createUser(t, "root", models.RoleSuperAdmin, "IT", nil)
	manager := env.createUser(t, "manager", models.RoleManager, "Engineering", nil)
	report := env.createUser(t, "report", models.RoleEmployee, "Engineering", &manager.ID)
	url := fmt.Sprintf("/api/employees/%d", report.ID)

	designation := "Staff Engineer"
	w := env.request(t, http.MethodPut, url, dto.UpdateEmployeeRequest{
		Designation:  &designation,
		ClearManager: true,
	}, super)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.User
	decode(t, w, &updated)
	require.Equal(t, designation, updated.Designation)
	require.Nil(t, updated.ManagerID)

	w = env.request(t, http.MethodDelete, url, nil, super)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, url, nil, super)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettingsHandler_Departments(t *testing.T) {
	env := setupTestEnv(t)
	super := env.createUser(t, "root", models.RoleSuperAdmin, "IT", nil)
	admin := env.createUser(t, "admin", models.RoleAdmin, "Operations", nil)
	name := "Design"

	w := env.request(t, http.MethodPost, "/api/departments", dto.DepartmentRequest{Name: &name}, admin)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodPost, "/api/departments", dto.DepartmentRequest{Name: &name}, super)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/departments", dto.DepartmentRequest{Name: &name}, super)
	require.Equal(t, http.StatusConflict, w.Code)

	w = env.request(t, http.MethodGet, "/api/departments", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	var body listBody[models.Department]
	decode(t, w, &body)
	require.Equal(t, 1, body.Count)
	require.Equal(t, "Design", body.Items[0].Name)
}

func TestSettingsHandler_AITools(t *testing.T) {
	env := setupTestEnv(t)
	super := env.createUser(t, "root", models.RoleSuperAdmin, "IT", nil)
	employee := env.createUser(t, "worker", models.RoleEmployee, "Engineering", nil)
	name := "Copilot"
	trend := models.AIToolTrendIncreasing

	w := env.request(t, http.MethodPost, "/api/ai-tools", dto.AIToolRequest{Name: &name, Trend: &trend}, super)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var tool models.AITool
	decode(t, w, &tool)

	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/ai-tools/%d", tool.ID), dto.AIToolRequest{Name: &name}, employee)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodGet, "/api/ai-tools", nil, employee)
	require.Equal(t, http.StatusOK, w.Code)
	var body listBody[models.AITool]
	decode(t, w, &body)
	require.Equal(t, 1, body.Count)
	require.Equal(t, models.AIToolTrendIncreasing, body.Items[0].Trend)
}

func TestReportHandler_RouteAccess(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.createUser(t, "admin", models.RoleAdmin, "Operations", nil)
	manager := env.createUser(t, "manager", models.RoleManager, "Engineering", nil)

	w := env.request(t, http.MethodGet, "/api/reports/performance", nil, manager)
	require.Equal(t, http.StatusForbidden, w.Code)
	var denied errorBody
	decode(t, w, &denied)
	require.Equal(t, "/dashboard", denied.Details["redirect"])

	w = env.request(t, http.MethodGet, "/api/reports/ai-adoption", nil, manager)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/reports/performance?department=all&from=2024-11-01&to=2024-11-30", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/reports/performance?from=nope", nil, admin)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodGet, "/api/reports/project-status", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
}
