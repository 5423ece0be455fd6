package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/yukikurage/time-management-api/internal/dto"
	"github.com/yukikurage/time-management-api/internal/models"
)

// WorkHandlerTestSuite covers projects, tasks and time entries over HTTP.
type WorkHandlerTestSuite struct {
	suite.Suite
	env *testEnv

	admin    *models.User
	manager  *models.User
	report   *models.User
	outsider *models.User
}

// SetupTest runs before each test
func (suite *WorkHandlerTestSuite) SetupTest() {
	t := suite.T()
	suite.env = setupTestEnv(t)

	suite.admin = suite.env.createUser(t, "admin", models.RoleAdmin, "Operations", nil)
	suite.manager = suite.env.createUser(t, "manager", models.RoleManager, "Engineering", nil)
	suite.report = suite.env.createUser(t, "report", models.RoleEmployee, "Engineering", &suite.manager.ID)
	suite.outsider = suite.env.createUser(t, "outsider", models.RoleEmployee, "Marketing", nil)
}

func (suite *WorkHandlerTestSuite) createProject(name, department string) models.Project {
	w := suite.env.request(suite.T(), http.MethodPost, "/api/projects", dto.CreateProjectRequest{
		Name:        name,
		Department:  department,
		SubProjects: []string{"Backend"},
		StartDate:   strPtr("2024-11-01"),
		EndDate:     strPtr("2024-12-31"),
	}, suite.admin)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var project models.Project
	decode(suite.T(), w, &project)
	return project
}

func (suite *WorkHandlerTestSuite) createTask(name string, assignee *models.User, by *models.User) models.Task {
	req := dto.CreateTaskRequest{Name: name, EstimatedTime: 4}
	if assignee != nil {
		req.AssignedTo = &assignee.ID
	}
	w := suite.env.request(suite.T(), http.MethodPost, "/api/tasks", req, by)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var task models.Task
	decode(suite.T(), w, &task)
	return task
}

func strPtr(s string) *string {
	return &s
}

// TestProjects_ListScopedByDepartment tests that a manager only sees their department
func (suite *WorkHandlerTestSuite) TestProjects_ListScopedByDepartment() {
	suite.createProject("Apollo", "Engineering")
	suite.createProject("Campaign", "Marketing")

	w := suite.env.request(suite.T(), http.MethodGet, "/api/projects?status=all", nil, suite.manager)
	suite.Require().Equal(http.StatusOK, w.Code)

	var body listBody[models.Project]
	decode(suite.T(), w, &body)
	suite.Require().Equal(1, body.Count)
	suite.Equal("Apollo", body.Items[0].Name)
	suite.Require().NotNil(body.Items[0].StartDate)
	suite.Equal("2024-11-01", body.Items[0].StartDate.Format("2006-01-02"))
}

// TestProjects_InvalidDate tests date validation on create
func (suite *WorkHandlerTestSuite) TestProjects_InvalidDate() {
	w := suite.env.request(suite.T(), http.MethodPost, "/api/projects", dto.CreateProjectRequest{
		Name:      "Broken",
		StartDate: strPtr("01/11/2024"),
	}, suite.admin)

	suite.Equal(http.StatusBadRequest, w.Code)
}

// TestProjects_DeleteRequiresCapability tests that admins cannot delete projects
func (suite *WorkHandlerTestSuite) TestProjects_DeleteRequiresCapability() {
	project := suite.createProject("Apollo", "Engineering")

	w := suite.env.request(suite.T(), http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID), nil, suite.admin)

	suite.Equal(http.StatusForbidden, w.Code)
}

// TestTasks_CreateAndList tests task creation and hierarchy scoped listing
func (suite *WorkHandlerTestSuite) TestTasks_CreateAndList() {
	suite.createTask("Report's task", suite.report, suite.manager)
	suite.createTask("Outsider's task", suite.outsider, suite.admin)

	w := suite.env.request(suite.T(), http.MethodGet, "/api/tasks", nil, suite.manager)
	suite.Require().Equal(http.StatusOK, w.Code)

	var body listBody[dto.TaskView]
	decode(suite.T(), w, &body)
	suite.Require().Equal(1, body.Count)
	suite.Equal("Report's task", body.Items[0].Name)
	suite.Equal("report", body.Items[0].AssignedToName)
	suite.Equal(models.TaskStatusTodo, body.Items[0].Status)
}

// TestTasks_CreateOutsideHierarchy tests assigning to someone outside the hierarchy
func (suite *WorkHandlerTestSuite) TestTasks_CreateOutsideHierarchy() {
	w := suite.env.request(suite.T(), http.MethodPost, "/api/tasks", dto.CreateTaskRequest{
		Name:       "Poach",
		AssignedTo: &suite.outsider.ID,
	}, suite.manager)

	suite.Equal(http.StatusForbidden, w.Code)
}

// TestTasks_EmployeeCannotCreate tests the capability check
func (suite *WorkHandlerTestSuite) TestTasks_EmployeeCannotCreate() {
	w := suite.env.request(suite.T(), http.MethodPost, "/api/tasks", dto.CreateTaskRequest{Name: "Mine"}, suite.report)

	suite.Equal(http.StatusForbidden, w.Code)
}

// TestTasks_UpdateStatus tests that assignees can move their task to any status
func (suite *WorkHandlerTestSuite) TestTasks_UpdateStatus() {
	task := suite.createTask("Flip", suite.report, suite.manager)
	url := fmt.Sprintf("/api/tasks/%d", task.ID)

	for _, status := range []models.TaskStatus{models.TaskStatusCompleted, models.TaskStatusTodo} {
		w := suite.env.request(suite.T(), http.MethodPut, url, dto.UpdateTaskRequest{Status: &status}, suite.report)
		suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		var updated models.Task
		decode(suite.T(), w, &updated)
		assert.Equal(suite.T(), status, updated.Status)
	}

	bad := models.TaskStatus("Blocked")
	w := suite.env.request(suite.T(), http.MethodPut, url, dto.UpdateTaskRequest{Status: &bad}, suite.report)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// TestTasks_InvisibleIsNotFound tests that tasks outside the hierarchy look missing
func (suite *WorkHandlerTestSuite) TestTasks_InvisibleIsNotFound() {
	task := suite.createTask("Theirs", suite.outsider, suite.admin)
	url := fmt.Sprintf("/api/tasks/%d", task.ID)

	w := suite.env.request(suite.T(), http.MethodGet, url, nil, suite.manager)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.env.request(suite.T(), http.MethodDelete, url, nil, suite.manager)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.env.request(suite.T(), http.MethodGet, url, nil, suite.admin)
	suite.Equal(http.StatusOK, w.Code)
}

// TestTasks_InvalidStatusFilter tests criteria validation
func (suite *WorkHandlerTestSuite) TestTasks_InvalidStatusFilter() {
	w := suite.env.request(suite.T(), http.MethodGet, "/api/tasks?status=Blocked", nil, suite.admin)

	suite.Equal(http.StatusBadRequest, w.Code)
}

// TestTimeEntries_LogAndFilter tests logging time and filtering by date range
func (suite *WorkHandlerTestSuite) TestTimeEntries_LogAndFilter() {
	project := suite.createProject("Apollo", "Engineering")

	for _, date := range []string{"2024-11-15", "2024-11-16", "2024-11-17T10:00:00Z", "2024-11-18"} {
		w := suite.env.request(suite.T(), http.MethodPost, "/api/time-entries", dto.CreateTimeEntryRequest{
			ProjectID: project.ID,
			Date:      date,
			TimeSpent: 2,
		}, suite.report)
		suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	}

	w := suite.env.request(suite.T(), http.MethodGet, "/api/time-entries?from=2024-11-16&to=2024-11-17", nil, suite.manager)
	suite.Require().Equal(http.StatusOK, w.Code)

	var body listBody[models.TimeEntry]
	decode(suite.T(), w, &body)
	suite.Require().Equal(2, body.Count)
	suite.Equal("report", body.Items[0].Employee)
	suite.Equal("Apollo", body.Items[0].Project)

	w = suite.env.request(suite.T(), http.MethodGet, "/api/time-entries", nil, suite.outsider)
	suite.Require().Equal(http.StatusOK, w.Code)
	decode(suite.T(), w, &body)
	suite.Equal(0, body.Count)

	w = suite.env.request(suite.T(), http.MethodGet, "/api/time-entries?employee=abc", nil, suite.manager)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// TestTimeEntries_CannotLogForOthers tests the hierarchy write restriction
func (suite *WorkHandlerTestSuite) TestTimeEntries_CannotLogForOthers() {
	w := suite.env.request(suite.T(), http.MethodPost, "/api/time-entries", dto.CreateTimeEntryRequest{
		UserID:    &suite.outsider.ID,
		Date:      "2024-11-15",
		TimeSpent: 1,
	}, suite.report)

	suite.Equal(http.StatusForbidden, w.Code)
}

// TestTimeEntries_UpdateAndDelete tests editing and removing an entry
func (suite *WorkHandlerTestSuite) TestTimeEntries_UpdateAndDelete() {
	w := suite.env.request(suite.T(), http.MethodPost, "/api/time-entries", dto.CreateTimeEntryRequest{
		Date:      "2024-11-15",
		TimeSpent: 1,
	}, suite.report)
	suite.Require().Equal(http.StatusCreated, w.Code)
	var entry models.TimeEntry
	decode(suite.T(), w, &entry)
	url := fmt.Sprintf("/api/time-entries/%d", entry.ID)

	spent := 3.5
	w = suite.env.request(suite.T(), http.MethodPut, url, dto.UpdateTimeEntryRequest{TimeSpent: &spent}, suite.manager)
	suite.Require().Equal(http.StatusOK, w.Code)
	decode(suite.T(), w, &entry)
	suite.Equal(3.5, entry.TimeSpent)

	w = suite.env.request(suite.T(), http.MethodDelete, url, nil, suite.outsider)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.env.request(suite.T(), http.MethodDelete, url, nil, suite.report)
	suite.Equal(http.StatusOK, w.Code)
}

// TestWorkHandlerTestSuite runs the test suite
func TestWorkHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(WorkHandlerTestSuite))
}
