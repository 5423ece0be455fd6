package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/time-management-api/internal/auth"
	"github.com/yukikurage/time-management-api/internal/constants"
	"github.com/yukikurage/time-management-api/internal/hierarchy"
	"github.com/yukikurage/time-management-api/internal/models"
	"github.com/yukikurage/time-management-api/internal/notify"
	"github.com/yukikurage/time-management-api/internal/repository"
	"github.com/yukikurage/time-management-api/internal/scope"
	"github.com/yukikurage/time-management-api/internal/session"
	"github.com/yukikurage/time-management-api/internal/testutil"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.TaskEvent
}

func (n *recordingNotifier) TaskAssigned(_ context.Context, event notify.TaskEvent) error {
	n.record(event)
	return nil
}

func (n *recordingNotifier) TaskStatusChanged(_ context.Context, event notify.TaskEvent) error {
	n.record(event)
	return nil
}

func (n *recordingNotifier) record(event notify.TaskEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

type ServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	db  *gorm.DB

	users    repository.UserRepository
	notifier *recordingNotifier
	hasher   *auth.PasswordHasher

	employees   *EmployeeService
	projects    *ProjectService
	tasks       *TaskService
	entries     *TimeEntryService
	departments *DepartmentService
	tools       *AIToolService
	reports     *ReportService
	auth        *AuthService

	super    *models.User
	admin    *models.User
	manager  *models.User
	report   *models.User
	outsider *models.User
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.db = testutil.NewDB(suite.T())

	suite.users = repository.NewUserRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	entryRepo := repository.NewTimeEntryRepository(suite.db)
	deptRepo := repository.NewDepartmentRepository(suite.db)
	toolRepo := repository.NewAIToolRepository(suite.db)

	builder := scope.NewBuilder(hierarchy.NewResolver(suite.users))
	suite.notifier = &recordingNotifier{}
	suite.hasher = auth.NewPasswordHasher(bcrypt.MinCost)

	suite.employees = NewEmployeeService(suite.users, builder, suite.hasher)
	suite.projects = NewProjectService(projectRepo, suite.users, builder)
	suite.tasks = NewTaskService(taskRepo, projectRepo, suite.users, builder, suite.notifier, zap.NewNop())
	suite.entries = NewTimeEntryService(entryRepo, projectRepo, taskRepo, suite.users, builder)
	suite.departments = NewDepartmentService(deptRepo)
	suite.tools = NewAIToolService(toolRepo)
	suite.reports = NewReportService(deptRepo, taskRepo, entryRepo, builder, suite.projects)
	suite.auth = NewAuthService(suite.users, suite.hasher, auth.NewTokenManager("secret", 60))

	t := suite.T()
	suite.super = testutil.CreateUser(t, suite.db, "root", models.RoleSuperAdmin, "IT", nil)
	suite.admin = testutil.CreateUser(t, suite.db, "admin", models.RoleAdmin, "Operations", nil)
	suite.manager = testutil.CreateUser(t, suite.db, "manager", models.RoleManager, "Engineering", nil)
	suite.report = testutil.CreateUser(t, suite.db, "report", models.RoleEmployee, "Engineering", &suite.manager.ID)
	suite.outsider = testutil.CreateUser(t, suite.db, "outsider", models.RoleEmployee, "Marketing", nil)

	for _, name := range []string{"Engineering", "Marketing"} {
		suite.Require().NoError(suite.db.Create(&models.Department{Name: name, Code: name[:3]}).Error)
	}
}

func (suite *ServiceTestSuite) as(user *models.User) *session.Session {
	return session.New(user, "test")
}

func (suite *ServiceTestSuite) createProject(name, department string, progress int, assignees ...uint64) *models.Project {
	project, err := suite.projects.CreateProject(suite.ctx, suite.as(suite.super), CreateProjectInput{
		Name:              name,
		Department:        department,
		Progress:          progress,
		SubProjects:       []string{"Backend", "Frontend"},
		AssignedEmployees: assignees,
	})
	suite.Require().NoError(err)
	return project
}

// Employees

func (suite *ServiceTestSuite) TestListEmployees_ManagerNames() {
	views, err := suite.employees.ListEmployees(suite.ctx, suite.as(suite.manager), scope.EmployeeCriteria{})
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)

	suite.Equal("manager", views[0].Name)
	suite.Equal(constants.NoManagerName, views[0].Manager)
	suite.Equal("report", views[1].Name)
	suite.Equal("manager", views[1].Manager)
}

func (suite *ServiceTestSuite) TestListEmployees_DeletedManagerShowsNone() {
	suite.Require().NoError(suite.users.Delete(suite.ctx, suite.manager.ID))

	views, err := suite.employees.ListEmployees(suite.ctx, suite.as(suite.admin), scope.EmployeeCriteria{Search: "report"})
	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.Equal(constants.NoManagerName, views[0].Manager)
}

func (suite *ServiceTestSuite) TestListEmployees_Unauthenticated() {
	_, err := suite.employees.ListEmployees(suite.ctx, nil, scope.EmployeeCriteria{})
	suite.ErrorIs(err, ErrUnauthenticated)
}

func (suite *ServiceTestSuite) TestListEmployees_InvalidCriteria() {
	_, err := suite.employees.ListEmployees(suite.ctx, suite.as(suite.admin), scope.EmployeeCriteria{Status: "fired"})
	suite.ErrorIs(err, ErrInvalidInput)
}

func (suite *ServiceTestSuite) TestGetEmployee_OutsideHierarchy() {
	_, err := suite.employees.GetEmployee(suite.ctx, suite.as(suite.manager), suite.outsider.ID)
	suite.ErrorIs(err, ErrNotFound)

	view, err := suite.employees.GetEmployee(suite.ctx, suite.as(suite.manager), suite.report.ID)
	suite.Require().NoError(err)
	suite.Equal("manager", view.Manager)
}

func (suite *ServiceTestSuite) TestCreateEmployee() {
	input := CreateEmployeeInput{
		Name:       "New Hire",
		Email:      "  New.Hire@Example.com ",
		Password:   "supersecret",
		Department: "Engineering",
		ManagerID:  &suite.manager.ID,
	}

	_, err := suite.employees.CreateEmployee(suite.ctx, suite.as(suite.manager), input)
	suite.ErrorIs(err, ErrForbidden)

	user, err := suite.employees.CreateEmployee(suite.ctx, suite.as(suite.admin), input)
	suite.Require().NoError(err)
	suite.Equal("new.hire@example.com", user.Email)
	suite.Equal(models.RoleEmployee, user.Role)
	suite.Equal(models.EmployeeStatusActive, user.Status)
	suite.NoError(suite.hasher.Verify(user.PasswordHash, "supersecret"))

	_, err = suite.employees.CreateEmployee(suite.ctx, suite.as(suite.admin), input)
	suite.ErrorIs(err, ErrEmailTaken)
	suite.ErrorIs(err, ErrConflict)
}

func (suite *ServiceTestSuite) TestCreateEmployee_Validation() {
	base := CreateEmployeeInput{Name: "x", Email: "x@example.com", Password: "supersecret"}

	short := base
	short.Password = "short"
	_, err := suite.employees.CreateEmployee(suite.ctx, suite.as(suite.admin), short)
	suite.ErrorIs(err, ErrPasswordTooShort)

	badRole := base
	badRole.Role = "owner"
	_, err = suite.employees.CreateEmployee(suite.ctx, suite.as(suite.admin), badRole)
	suite.ErrorIs(err, ErrInvalidInput)

	superRole := base
	superRole.Role = models.RoleSuperAdmin
	_, err = suite.employees.CreateEmployee(suite.ctx, suite.as(suite.admin), superRole)
	suite.ErrorIs(err, ErrForbidden)

	missingManager := base
	missingManager.ManagerID = testutil.Ptr(uint64(999))
	_, err = suite.employees.CreateEmployee(suite.ctx, suite.as(suite.admin), missingManager)
	suite.ErrorIs(err, ErrManagerNotFound)
}

func (suite *ServiceTestSuite) TestUpdateEmployee() {
	_, err := suite.employees.UpdateEmployee(suite.ctx, suite.as(suite.admin), suite.report.ID, UpdateEmployeeInput{
		ManagerID: &suite.report.ID,
	})
	suite.ErrorIs(err, ErrInvalidInput)

	updated, err := suite.employees.UpdateEmployee(suite.ctx, suite.as(suite.admin), suite.report.ID, UpdateEmployeeInput{
		Designation:  testutil.Ptr("Staff Engineer"),
		Status:       testutil.Ptr(models.EmployeeStatusOnLeave),
		ClearManager: true,
	})
	suite.Require().NoError(err)
	suite.Equal("Staff Engineer", updated.Designation)
	suite.Equal(models.EmployeeStatusOnLeave, updated.Status)
	suite.Nil(updated.ManagerID)
}

func (suite *ServiceTestSuite) TestDeleteEmployee_NoCascade() {
	task, err := suite.tasks.CreateTask(suite.ctx, suite.as(suite.admin), CreateTaskInput{
		Name:       "Orphan me",
		AssignedTo: &suite.outsider.ID,
	})
	suite.Require().NoError(err)

	err = suite.employees.DeleteEmployee(suite.ctx, suite.as(suite.admin), suite.outsider.ID)
	suite.ErrorIs(err, ErrForbidden)

	suite.Require().NoError(suite.employees.DeleteEmployee(suite.ctx, suite.as(suite.super), suite.outsider.ID))

	view, err := suite.tasks.GetTask(suite.ctx, suite.as(suite.admin), task.ID)
	suite.Require().NoError(err)
	suite.Equal(suite.outsider.ID, *view.AssignedTo)
	suite.Equal(constants.UnassignedName, view.AssignedToName)

	err = suite.employees.DeleteEmployee(suite.ctx, suite.as(suite.super), suite.super.ID)
	suite.ErrorIs(err, ErrInvalidInput)
}

// Projects

func (suite *ServiceTestSuite) TestProjects_Visibility() {
	eng := suite.createProject("Apollo", "Engineering", 10)
	suite.createProject("Campaign", "Marketing", 80)
	shared := suite.createProject("Shared", "Marketing", 50, suite.report.ID)

	projects, err := suite.projects.ListProjects(suite.ctx, suite.as(suite.manager), scope.ProjectCriteria{})
	suite.Require().NoError(err)
	suite.Require().Len(projects, 2)
	suite.Equal(eng.ID, projects[0].ID)
	suite.Equal(shared.ID, projects[1].ID)
	suite.Equal([]uint64{suite.report.ID}, projects[1].AssignedEmployees)

	_, err = suite.projects.GetProject(suite.ctx, suite.as(suite.outsider), eng.ID)
	suite.ErrorIs(err, ErrProjectNotFound)
}

func (suite *ServiceTestSuite) TestProjects_Writes() {
	_, err := suite.projects.CreateProject(suite.ctx, suite.as(suite.admin), CreateProjectInput{Name: "Bad", Progress: 150})
	suite.ErrorIs(err, ErrInvalidInput)

	_, err = suite.projects.CreateProject(suite.ctx, suite.as(suite.admin), CreateProjectInput{
		Name:              "Ghost team",
		AssignedEmployees: []uint64{999},
	})
	suite.ErrorIs(err, ErrInvalidInput)

	project := suite.createProject("Apollo", "Engineering", 10)

	updated, err := suite.projects.UpdateProject(suite.ctx, suite.as(suite.manager), project.ID, UpdateProjectInput{
		Progress:          testutil.Ptr(60),
		Status:            testutil.Ptr(models.ProjectStatusInProgress),
		AssignedEmployees: []uint64{suite.report.ID, suite.manager.ID, suite.report.ID},
	})
	suite.Require().NoError(err)
	suite.Equal(60, updated.Progress)
	suite.Equal([]uint64{suite.manager.ID, suite.report.ID}, updated.AssignedEmployees)

	err = suite.projects.DeleteProject(suite.ctx, suite.as(suite.manager), project.ID)
	suite.ErrorIs(err, ErrForbidden)

	suite.Require().NoError(suite.projects.DeleteProject(suite.ctx, suite.as(suite.super), project.ID))
	_, err = suite.projects.GetProject(suite.ctx, suite.as(suite.super), project.ID)
	suite.ErrorIs(err, ErrNotFound)
}

// Tasks

func (suite *ServiceTestSuite) TestTasks_CreateNotifiesAssignee() {
	project := suite.createProject("Apollo", "Engineering", 10)

	task, err := suite.tasks.CreateTask(suite.ctx, suite.as(suite.manager), CreateTaskInput{
		Name:          "Build API",
		ProjectID:     project.ID,
		SubProject:    "Backend",
		AssignedTo:    &suite.report.ID,
		EstimatedTime: 8,
	})
	suite.Require().NoError(err)
	suite.Equal("Apollo", task.Project)
	suite.Equal(models.TaskStatusTodo, task.Status)
	suite.Equal(models.TaskPriorityMedium, task.Priority)

	suite.Require().Len(suite.notifier.events, 1)
	suite.Equal(notify.EventTaskAssigned, suite.notifier.events[0].Type)
	suite.Equal(task.ID, suite.notifier.events[0].TaskID)
}

func (suite *ServiceTestSuite) TestTasks_AssigneeMustBeInHierarchy() {
	_, err := suite.tasks.CreateTask(suite.ctx, suite.as(suite.manager), CreateTaskInput{
		Name:       "Poach",
		AssignedTo: &suite.outsider.ID,
	})
	suite.ErrorIs(err, ErrForbidden)

	_, err = suite.tasks.CreateTask(suite.ctx, suite.as(suite.report), CreateTaskInput{Name: "Nope"})
	suite.ErrorIs(err, ErrForbidden)
}

func (suite *ServiceTestSuite) TestTasks_AnyStatusTransition() {
	task, err := suite.tasks.CreateTask(suite.ctx, suite.as(suite.manager), CreateTaskInput{
		Name:       "Flip",
		AssignedTo: &suite.report.ID,
	})
	suite.Require().NoError(err)

	sequence := []models.TaskStatus{
		models.TaskStatusCompleted,
		models.TaskStatusTodo,
		models.TaskStatusInProgress,
		models.TaskStatusTodo,
	}
	for _, status := range sequence {
		updated, err := suite.tasks.UpdateTask(suite.ctx, suite.as(suite.report), task.ID, UpdateTaskInput{
			Status: testutil.Ptr(status),
		})
		suite.Require().NoError(err)
		suite.Equal(status, updated.Status)
	}

	// One assignment plus one event per status change.
	suite.Require().Len(suite.notifier.events, 1+len(sequence))
	last := suite.notifier.events[len(suite.notifier.events)-1]
	suite.Equal(notify.EventTaskStatusChanged, last.Type)
	suite.Equal(models.TaskStatusInProgress, last.OldStatus)
	suite.Equal(models.TaskStatusTodo, last.NewStatus)

	_, err = suite.tasks.UpdateTask(suite.ctx, suite.as(suite.report), task.ID, UpdateTaskInput{
		Status: testutil.Ptr(models.TaskStatus("Blocked")),
	})
	suite.ErrorIs(err, ErrInvalidInput)
}

func (suite *ServiceTestSuite) TestTasks_ListNamesAndScope() {
	_, err := suite.tasks.CreateTask(suite.ctx, suite.as(suite.admin), CreateTaskInput{Name: "Nobody's"})
	suite.Require().NoError(err)
	_, err = suite.tasks.CreateTask(suite.ctx, suite.as(suite.admin), CreateTaskInput{Name: "Report's", AssignedTo: &suite.report.ID})
	suite.Require().NoError(err)

	views, err := suite.tasks.ListTasks(suite.ctx, suite.as(suite.admin), scope.TaskCriteria{})
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.Equal(constants.UnassignedName, views[0].AssignedToName)
	suite.Equal("report", views[1].AssignedToName)

	views, err = suite.tasks.ListTasks(suite.ctx, suite.as(suite.outsider), scope.TaskCriteria{})
	suite.Require().NoError(err)
	suite.Empty(views)
}

func (suite *ServiceTestSuite) TestTasks_DeleteOutsideHierarchy() {
	task, err := suite.tasks.CreateTask(suite.ctx, suite.as(suite.admin), CreateTaskInput{Name: "Theirs", AssignedTo: &suite.outsider.ID})
	suite.Require().NoError(err)

	err = suite.tasks.DeleteTask(suite.ctx, suite.as(suite.manager), task.ID)
	suite.ErrorIs(err, ErrTaskNotFound)

	suite.Require().NoError(suite.tasks.DeleteTask(suite.ctx, suite.as(suite.admin), task.ID))
}

// Time entries

func (suite *ServiceTestSuite) TestTimeEntries_CreateDefaultsOwner() {
	project := suite.createProject("Apollo", "Engineering", 10)
	local := time.Date(2024, 11, 16, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*3600))

	entry, err := suite.entries.CreateTimeEntry(suite.ctx, suite.as(suite.report), CreateTimeEntryInput{
		ProjectID: project.ID,
		Date:      local,
		TimeSpent: 3,
		AIUsed:    true,
		AITool:    "Copilot",
	})
	suite.Require().NoError(err)
	suite.Equal(suite.report.ID, entry.UserID)
	suite.Equal("report", entry.Employee)
	suite.Equal("Apollo", entry.Project)
	suite.Equal(testutil.Date(2024, 11, 17), entry.Date)
	suite.Equal(models.TimeEntryStatusCompleted, entry.Status)
}

func (suite *ServiceTestSuite) TestTimeEntries_WriteScope() {
	_, err := suite.entries.CreateTimeEntry(suite.ctx, suite.as(suite.report), CreateTimeEntryInput{
		UserID:    &suite.outsider.ID,
		Date:      testutil.Date(2024, 11, 16),
		TimeSpent: 1,
	})
	suite.ErrorIs(err, ErrForbidden)

	entry, err := suite.entries.CreateTimeEntry(suite.ctx, suite.as(suite.manager), CreateTimeEntryInput{
		UserID:    &suite.report.ID,
		Date:      testutil.Date(2024, 11, 16),
		TimeSpent: 1,
	})
	suite.Require().NoError(err)
	suite.Equal("report", entry.Employee)

	_, err = suite.entries.UpdateTimeEntry(suite.ctx, suite.as(suite.outsider), entry.ID, UpdateTimeEntryInput{
		TimeSpent: testutil.Ptr(2.0),
	})
	suite.ErrorIs(err, ErrTimeEntryNotFound)

	_, err = suite.entries.UpdateTimeEntry(suite.ctx, suite.as(suite.report), entry.ID, UpdateTimeEntryInput{
		TimeSpent: testutil.Ptr(-1.0),
	})
	suite.ErrorIs(err, ErrInvalidInput)

	suite.Require().NoError(suite.entries.DeleteTimeEntry(suite.ctx, suite.as(suite.report), entry.ID))
	err = suite.entries.DeleteTimeEntry(suite.ctx, suite.as(suite.report), entry.ID)
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *ServiceTestSuite) TestTimeEntries_ProjectMustBeVisible() {
	hidden := suite.createProject("Campaign", "Marketing", 0)
	visible := suite.createProject("Apollo", "Engineering", 0)

	_, err := suite.entries.CreateTimeEntry(suite.ctx, suite.as(suite.report), CreateTimeEntryInput{
		ProjectID: hidden.ID,
		Date:      testutil.Date(2024, 11, 16),
		TimeSpent: 1,
	})
	suite.ErrorIs(err, ErrProjectNotFound)

	entry, err := suite.entries.CreateTimeEntry(suite.ctx, suite.as(suite.report), CreateTimeEntryInput{
		ProjectID: visible.ID,
		Date:      testutil.Date(2024, 11, 16),
		TimeSpent: 1,
	})
	suite.Require().NoError(err)

	_, err = suite.entries.UpdateTimeEntry(suite.ctx, suite.as(suite.report), entry.ID, UpdateTimeEntryInput{
		ProjectID: &hidden.ID,
	})
	suite.ErrorIs(err, ErrProjectNotFound)

	var stored models.TimeEntry
	suite.Require().NoError(suite.db.First(&stored, entry.ID).Error)
	suite.Equal("Apollo", stored.Project)

	// Organization-wide roles may link any project.
	_, err = suite.entries.CreateTimeEntry(suite.ctx, suite.as(suite.admin), CreateTimeEntryInput{
		UserID:    &suite.report.ID,
		ProjectID: hidden.ID,
		Date:      testutil.Date(2024, 11, 16),
		TimeSpent: 1,
	})
	suite.NoError(err)
}

func (suite *ServiceTestSuite) TestTimeEntries_ListDateRange() {
	for day := 15; day <= 18; day++ {
		_, err := suite.entries.CreateTimeEntry(suite.ctx, suite.as(suite.report), CreateTimeEntryInput{
			Date:      testutil.Date(2024, 11, day),
			TimeSpent: 1,
		})
		suite.Require().NoError(err)
	}

	entries, err := suite.entries.ListTimeEntries(suite.ctx, suite.as(suite.manager), scope.TimeEntryCriteria{
		From: "2024-11-16",
		To:   "2024-11-17",
	})
	suite.Require().NoError(err)
	suite.Len(entries, 2)

	_, err = suite.entries.ListTimeEntries(suite.ctx, suite.as(suite.manager), scope.TimeEntryCriteria{
		From: "2024-11-18",
		To:   "2024-11-17",
	})
	suite.ErrorIs(err, ErrInvalidInput)
}

// Departments and AI tools

func (suite *ServiceTestSuite) TestDepartments() {
	_, err := suite.departments.CreateDepartment(suite.ctx, suite.as(suite.admin), DepartmentInput{Name: testutil.Ptr("Design")})
	suite.ErrorIs(err, ErrForbidden)

	dept, err := suite.departments.CreateDepartment(suite.ctx, suite.as(suite.super), DepartmentInput{
		Name: testutil.Ptr("Design"),
		Code: testutil.Ptr("des"),
	})
	suite.Require().NoError(err)
	suite.Equal("DES", dept.Code)

	_, err = suite.departments.UpdateDepartment(suite.ctx, suite.as(suite.super), dept.ID, DepartmentInput{Name: testutil.Ptr("Engineering")})
	suite.ErrorIs(err, ErrDepartmentNameTaken)

	depts, err := suite.departments.ListDepartments(suite.ctx, suite.as(suite.outsider))
	suite.Require().NoError(err)
	suite.Len(depts, 3)

	suite.Require().NoError(suite.departments.DeleteDepartment(suite.ctx, suite.as(suite.super), dept.ID))
	suite.ErrorIs(suite.departments.DeleteDepartment(suite.ctx, suite.as(suite.super), dept.ID), ErrDepartmentNotFound)
}

func (suite *ServiceTestSuite) TestAITools() {
	_, err := suite.tools.CreateAITool(suite.ctx, suite.as(suite.admin), AIToolInput{Name: testutil.Ptr("Copilot")})
	suite.ErrorIs(err, ErrForbidden)

	tool, err := suite.tools.CreateAITool(suite.ctx, suite.as(suite.super), AIToolInput{
		Name:        testutil.Ptr("Copilot"),
		Departments: []string{"Engineering", " Engineering ", "Design"},
	})
	suite.Require().NoError(err)
	suite.Equal(models.AIToolTrendStable, tool.Trend)
	suite.Equal([]string{"Engineering", "Design"}, tool.Departments)

	_, err = suite.tools.UpdateAITool(suite.ctx, suite.as(suite.super), tool.ID, AIToolInput{
		Trend: testutil.Ptr(models.AIToolTrend("exploding")),
	})
	suite.ErrorIs(err, ErrInvalidInput)

	tools, err := suite.tools.ListAITools(suite.ctx, suite.as(suite.report))
	suite.Require().NoError(err)
	suite.Len(tools, 1)
}

// Reports

func (suite *ServiceTestSuite) TestReports_Performance() {
	for _, status := range []models.TaskStatus{models.TaskStatusCompleted, models.TaskStatusTodo} {
		_, err := suite.tasks.CreateTask(suite.ctx, suite.as(suite.admin), CreateTaskInput{
			Name:          "Work",
			AssignedTo:    &suite.report.ID,
			EstimatedTime: 3,
			Status:        status,
		})
		suite.Require().NoError(err)
	}
	// Unassigned tasks count toward no department.
	suite.Require().NoError(suite.db.Create(&models.Task{
		Name:          "Backlog",
		EstimatedTime: 8,
		Status:        models.TaskStatusCompleted,
	}).Error)
	for i, aiUsed := range []bool{true, false, false, false} {
		_, err := suite.entries.CreateTimeEntry(suite.ctx, suite.as(suite.report), CreateTimeEntryInput{
			Date:      testutil.Date(2024, 11, 15+i),
			TimeSpent: 2,
			AIUsed:    aiUsed,
		})
		suite.Require().NoError(err)
	}

	_, err := suite.reports.Performance(suite.ctx, suite.as(suite.manager), PerformanceCriteria{})
	suite.ErrorIs(err, ErrForbidden)

	rows, err := suite.reports.Performance(suite.ctx, suite.as(suite.admin), PerformanceCriteria{Department: "all"})
	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)

	// Departments are listed by name.
	suite.Equal(DepartmentPerformance{Name: "Engineering", TasksCompleted: 1, TimeEfficiency: 75, AIUsage: 25}, rows[0])
	suite.Equal(DepartmentPerformance{Name: "Marketing"}, rows[1])

	rows, err = suite.reports.Performance(suite.ctx, suite.as(suite.admin), PerformanceCriteria{
		From: "2024-11-16",
		To:   "2024-11-16",
	})
	suite.Require().NoError(err)
	suite.Equal(100, rows[0].TimeEfficiency)
	suite.Equal(0, rows[0].AIUsage)
}

func (suite *ServiceTestSuite) TestReports_AIAdoption() {
	for _, aiUsed := range []bool{true, false} {
		_, err := suite.entries.CreateTimeEntry(suite.ctx, suite.as(suite.report), CreateTimeEntryInput{
			Date:      testutil.Date(2024, 11, 15),
			TimeSpent: 1,
			AIUsed:    aiUsed,
		})
		suite.Require().NoError(err)
	}
	_, err := suite.entries.CreateTimeEntry(suite.ctx, suite.as(suite.outsider), CreateTimeEntryInput{
		Date:      testutil.Date(2024, 11, 15),
		TimeSpent: 1,
		AIUsed:    true,
	})
	suite.Require().NoError(err)

	_, err = suite.reports.AIAdoption(suite.ctx, suite.as(suite.report))
	suite.ErrorIs(err, ErrForbidden)

	slices, err := suite.reports.AIAdoption(suite.ctx, suite.as(suite.manager))
	suite.Require().NoError(err)
	suite.Equal([]ChartSlice{
		{Name: "Engineering", Value: 50, Color: "#4f46e5"},
		{Name: "Marketing", Value: 0, Color: "#06b6d4"},
	}, slices)
}

func (suite *ServiceTestSuite) TestReports_ProjectStatus() {
	suite.createProject("Apollo", "Engineering", 10)
	suite.createProject("Zeus", "Engineering", 75)

	slices, err := suite.reports.ProjectStatus(suite.ctx, suite.as(suite.admin))
	suite.Require().NoError(err)
	suite.Equal([]ChartSlice{
		{Name: "Apollo", Value: 10, Color: "#ef4444"},
		{Name: "Zeus", Value: 75, Color: "#10b981"},
	}, slices)
}

// Auth

func (suite *ServiceTestSuite) TestAuth_Login() {
	hashed, err := suite.hasher.Hash("supersecret")
	suite.Require().NoError(err)
	suite.report.PasswordHash = hashed
	suite.Require().NoError(suite.users.Update(suite.ctx, suite.report))

	result, err := suite.auth.Login(suite.ctx, LoginInput{Email: " REPORT@example.com", Password: "supersecret"})
	suite.Require().NoError(err)
	suite.Equal(suite.report.ID, result.User.ID)
	suite.NotEmpty(result.Token)

	user, err := suite.auth.AuthenticateToken(suite.ctx, result.Token)
	suite.Require().NoError(err)
	suite.Equal(suite.report.ID, user.ID)

	_, err = suite.auth.Login(suite.ctx, LoginInput{Email: "report@example.com", Password: "wrong-password"})
	suite.ErrorIs(err, ErrInvalidCredentials)
	_, err = suite.auth.Login(suite.ctx, LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	suite.report.Status = models.EmployeeStatusInactive
	suite.Require().NoError(suite.users.Update(suite.ctx, suite.report))
	_, err = suite.auth.Login(suite.ctx, LoginInput{Email: "report@example.com", Password: "supersecret"})
	suite.ErrorIs(err, ErrAccountInactive)
	_, err = suite.auth.AuthenticateToken(suite.ctx, result.Token)
	suite.ErrorIs(err, ErrUnauthenticated)
}

func (suite *ServiceTestSuite) TestAuth_PermissionsAndRoutes() {
	perms, err := suite.auth.Permissions(suite.as(suite.manager))
	suite.Require().NoError(err)
	suite.Equal(60, perms.AccessLevel)
	suite.True(perms.Capabilities["canCreateTask"])
	suite.False(perms.Capabilities["canDeleteProject"])

	route, err := suite.auth.RouteAccess(suite.as(suite.report), "/dashboard/settings")
	suite.Require().NoError(err)
	suite.False(route.Allowed)
	suite.Equal("/dashboard", route.Redirect)

	_, err = suite.auth.Permissions(nil)
	suite.ErrorIs(err, ErrUnauthenticated)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
