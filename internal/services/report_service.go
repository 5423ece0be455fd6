package services

import (
	"context"
	"fmt"
	"math"

	"github.com/yukikurage/time-management-api/internal/access"
	"github.com/yukikurage/time-management-api/internal/models"
	"github.com/yukikurage/time-management-api/internal/repository"
	"github.com/yukikurage/time-management-api/internal/scope"
	"github.com/yukikurage/time-management-api/internal/session"
)

const defaultChartColor = "#6b7280"

var departmentColors = map[string]string{
	"Engineering": "#4f46e5",
	"Marketing":   "#06b6d4",
	"Design":      "#f59e0b",
	"Product":     "#10b981",
	"HR":          "#ef4444",
	"IT":          "#8b5cf6",
	"Finance":     "#ec4899",
	"Sales":       "#14b8a6",
}

// DepartmentPerformance is one row of the performance report.
type DepartmentPerformance struct {
	Name           string `json:"name"`
	TasksCompleted int    `json:"tasks_completed"`
	TimeEfficiency int    `json:"time_efficiency"`
	AIUsage        int    `json:"ai_usage"`
}

// ChartSlice is a named value with a display color.
type ChartSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// PerformanceCriteria narrows the performance report. Department accepts the
// "all" sentinel; From and To are inclusive calendar dates.
type PerformanceCriteria struct {
	Department string
	From       string
	To         string
}

// ReportService computes dashboard aggregates over the caller's visible data.
type ReportService struct {
	deptRepo  repository.DepartmentRepository
	taskRepo  repository.TaskRepository
	entryRepo repository.TimeEntryRepository
	builder   *scope.Builder
	projects  *ProjectService
}

// NewReportService creates a new ReportService.
func NewReportService(
	deptRepo repository.DepartmentRepository,
	taskRepo repository.TaskRepository,
	entryRepo repository.TimeEntryRepository,
	builder *scope.Builder,
	projects *ProjectService,
) *ReportService {
	return &ReportService{
		deptRepo:  deptRepo,
		taskRepo:  taskRepo,
		entryRepo: entryRepo,
		builder:   builder,
		projects:  projects,
	}
}

// Performance reports completed tasks, time efficiency and AI usage per
// department, counting only users inside the caller's hierarchy.
func (s *ReportService) Performance(ctx context.Context, sess *session.Session, criteria PerformanceCriteria) ([]DepartmentPerformance, error) {
	if err := requireRoute(sess, access.RouteReports); err != nil {
		return nil, err
	}

	dates, err := scope.TimeEntryCriteria{From: criteria.From, To: criteria.To}.Normalize().DateRange()
	if err != nil {
		return nil, translate(err, ErrNotFound)
	}
	view, err := s.builder.View(ctx, sess)
	if err != nil {
		return nil, err
	}

	department := scope.EmployeeCriteria{Department: criteria.Department}.Normalize().Department
	byDept := make(map[string][]uint64)
	ids := make([]uint64, 0, view.Members.Len())
	for _, u := range view.Members.Users() {
		if department != "" && u.Department != department {
			continue
		}
		byDept[u.Department] = append(byDept[u.Department], u.ID)
		ids = append(ids, u.ID)
	}
	userScope := repository.Only(ids)
	if view.OrgWide && department == "" {
		userScope = repository.IDScope{}
	}

	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{AssigneeScope: userScope})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	entries, err := s.entryRepo.List(ctx, repository.TimeEntryFilter{
		UserScope:  userScope,
		DateFrom:   dates.From,
		DateBefore: dates.Before(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	depts, err := s.deptRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	tasksByUser := make(map[uint64][]models.Task)
	for _, t := range tasks {
		if t.AssignedTo == nil {
			continue
		}
		tasksByUser[*t.AssignedTo] = append(tasksByUser[*t.AssignedTo], t)
	}
	entriesByUser := groupEntries(entries)

	rows := make([]DepartmentPerformance, 0, len(depts))
	for _, d := range depts {
		var completed, total, aiEntries int
		var estimated, actual float64
		for _, id := range byDept[d.Name] {
			for _, t := range tasksByUser[id] {
				estimated += t.EstimatedTime
				if t.Status == models.TaskStatusCompleted {
					completed++
				}
			}
			for _, e := range entriesByUser[id] {
				actual += e.TimeSpent
				total++
				if e.AIUsed {
					aiEntries++
				}
			}
		}

		rows = append(rows, DepartmentPerformance{
			Name:           d.Name,
			TasksCompleted: completed,
			TimeEfficiency: timeEfficiency(estimated, actual),
			AIUsage:        percent(aiEntries, total),
		})
	}
	return rows, nil
}

// AIAdoption reports, per department, the share of visible time entries
// logged with AI assistance.
func (s *ReportService) AIAdoption(ctx context.Context, sess *session.Session) ([]ChartSlice, error) {
	if err := requireRoute(sess, access.RouteAIAdoption); err != nil {
		return nil, err
	}

	view, err := s.builder.View(ctx, sess)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.List(ctx, repository.TimeEntryFilter{UserScope: view.Scope()})
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	depts, err := s.deptRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	entriesByUser := groupEntries(entries)
	byDept := make(map[string][]uint64)
	for _, u := range view.Members.Users() {
		byDept[u.Department] = append(byDept[u.Department], u.ID)
	}

	slices := make([]ChartSlice, 0, len(depts))
	for _, d := range depts {
		var total, aiEntries int
		for _, id := range byDept[d.Name] {
			for _, e := range entriesByUser[id] {
				total++
				if e.AIUsed {
					aiEntries++
				}
			}
		}
		slices = append(slices, ChartSlice{
			Name:  d.Name,
			Value: percent(aiEntries, total),
			Color: DepartmentColor(d.Name),
		})
	}
	return slices, nil
}

// ProjectStatus reports the progress of every visible project.
func (s *ReportService) ProjectStatus(ctx context.Context, sess *session.Session) ([]ChartSlice, error) {
	if err := requireRoute(sess, access.RouteReports); err != nil {
		return nil, err
	}

	projects, err := s.projects.ListProjects(ctx, sess, scope.ProjectCriteria{})
	if err != nil {
		return nil, err
	}

	slices := make([]ChartSlice, len(projects))
	for i, p := range projects {
		slices[i] = ChartSlice{
			Name:  p.Name,
			Value: p.Progress,
			Color: ProgressColor(p.Progress),
		}
	}
	return slices, nil
}

// DepartmentColor returns the fixed chart color of a department.
func DepartmentColor(name string) string {
	if c, ok := departmentColors[name]; ok {
		return c
	}
	return defaultChartColor
}

// ProgressColor bands project progress: red, amber, blue, green.
func ProgressColor(progress int) string {
	switch {
	case progress < 25:
		return "#ef4444"
	case progress < 50:
		return "#f59e0b"
	case progress < 75:
		return "#3b82f6"
	default:
		return "#10b981"
	}
}

// timeEfficiency is estimated over actual hours as a capped percentage.
// No estimate means 0; no logged time counts as one hour.
func timeEfficiency(estimated, actual float64) int {
	if estimated <= 0 {
		return 0
	}
	if actual == 0 {
		actual = 1
	}
	return int(math.Min(100, math.Round(estimated/actual*100)))
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func groupEntries(entries []models.TimeEntry) map[uint64][]models.TimeEntry {
	grouped := make(map[uint64][]models.TimeEntry)
	for _, e := range entries {
		grouped[e.UserID] = append(grouped[e.UserID], e)
	}
	return grouped
}

func requireRoute(sess *session.Session, route string) error {
	user, err := sess.Require()
	if err != nil {
		return err
	}
	if !access.HasRouteAccess(user, route) {
		return ErrForbidden
	}
	return nil
}
