package scope

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yukikurage/time-management-api/internal/constants"
	"github.com/yukikurage/time-management-api/internal/models"
)

// ErrInvalidCriteria wraps every validation failure of a criteria struct.
var ErrInvalidCriteria = errors.New("invalid filter criteria")

// EmployeeCriteria filters the employee listing. Search matches name, email
// and designation.
type EmployeeCriteria struct {
	Search     string
	Department string
	Status     string
	Page       int
	PageSize   int
}

// ProjectCriteria filters the project listing. Search matches name and category.
type ProjectCriteria struct {
	Search     string
	Department string
	Status     string
	Page       int
	PageSize   int
}

// TaskCriteria filters the task listing. Search matches the task name and the
// project name; Project is matched against the task's project name.
type TaskCriteria struct {
	Search     string
	Project    string
	SubProject string
	Status     string
	Page       int
	PageSize   int
}

// TimeEntryCriteria filters the time entry listing. Search matches project
// and task names. Employee and Project are ids. From and To are calendar
// dates (YYYY-MM-DD), both inclusive, either may be empty.
type TimeEntryCriteria struct {
	Search   string
	Employee string
	Project  string
	From     string
	To       string
	Page     int
	PageSize int
}

// filterValue trims v and maps the "all" sentinel to the empty string, which
// every builder treats as "no restriction".
func filterValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, constants.FilterAll) {
		return ""
	}
	return v
}

// Normalize returns c with sentinels removed.
func (c EmployeeCriteria) Normalize() EmployeeCriteria {
	c.Search = strings.TrimSpace(c.Search)
	c.Department = filterValue(c.Department)
	c.Status = filterValue(c.Status)
	return c
}

// Validate checks a normalized criteria.
func (c EmployeeCriteria) Validate() error {
	if c.Status != "" && !models.EmployeeStatus(c.Status).Valid() {
		return fmt.Errorf("%w: unknown employee status %q", ErrInvalidCriteria, c.Status)
	}
	return validatePage(c.Page, c.PageSize)
}

func (c ProjectCriteria) Normalize() ProjectCriteria {
	c.Search = strings.TrimSpace(c.Search)
	c.Department = filterValue(c.Department)
	c.Status = filterValue(c.Status)
	return c
}

func (c ProjectCriteria) Validate() error {
	if c.Status != "" && !models.ProjectStatus(c.Status).Valid() {
		return fmt.Errorf("%w: unknown project status %q", ErrInvalidCriteria, c.Status)
	}
	return validatePage(c.Page, c.PageSize)
}

func (c TaskCriteria) Normalize() TaskCriteria {
	c.Search = strings.TrimSpace(c.Search)
	c.Project = filterValue(c.Project)
	c.SubProject = filterValue(c.SubProject)
	c.Status = filterValue(c.Status)
	return c
}

func (c TaskCriteria) Validate() error {
	if c.Status != "" && !models.TaskStatus(c.Status).Valid() {
		return fmt.Errorf("%w: unknown task status %q", ErrInvalidCriteria, c.Status)
	}
	return validatePage(c.Page, c.PageSize)
}

func (c TimeEntryCriteria) Normalize() TimeEntryCriteria {
	c.Search = strings.TrimSpace(c.Search)
	c.Employee = filterValue(c.Employee)
	c.Project = filterValue(c.Project)
	c.From = strings.TrimSpace(c.From)
	c.To = strings.TrimSpace(c.To)
	return c
}

func (c TimeEntryCriteria) Validate() error {
	if _, err := parseID("employee", c.Employee); err != nil {
		return err
	}
	if _, err := parseID("project", c.Project); err != nil {
		return err
	}
	_, err := c.DateRange()
	if err != nil {
		return err
	}
	return validatePage(c.Page, c.PageSize)
}

// DateRange is a pair of optional calendar-date bounds, both inclusive.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Before returns the exclusive upper bound: the day after To.
func (r DateRange) Before() *time.Time {
	if r.To == nil {
		return nil
	}
	next := r.To.AddDate(0, 0, 1)
	return &next
}

// DateRange parses From and To.
func (c TimeEntryCriteria) DateRange() (DateRange, error) {
	var r DateRange
	if c.From != "" {
		from, err := ParseDate(c.From)
		if err != nil {
			return r, fmt.Errorf("%w: from: %v", ErrInvalidCriteria, err)
		}
		r.From = &from
	}
	if c.To != "" {
		to, err := ParseDate(c.To)
		if err != nil {
			return r, fmt.Errorf("%w: to: %v", ErrInvalidCriteria, err)
		}
		r.To = &to
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return r, fmt.Errorf("%w: from %s is after to %s", ErrInvalidCriteria, c.From, c.To)
	}
	return r, nil
}

// ParseDate reads a calendar date as UTC midnight. Full RFC 3339 timestamps
// are accepted and keep the date they name in their own offset.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(constants.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %s, got %q", constants.DateLayout, s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// TruncateDay returns UTC midnight of t's UTC date.
func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseID(field, v string) (*uint64, error) {
	if v == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("%w: %s must be a positive id, got %q", ErrInvalidCriteria, field, v)
	}
	return &id, nil
}

func validatePage(page, pageSize int) error {
	if page < 0 || pageSize < 0 {
		return fmt.Errorf("%w: negative pagination", ErrInvalidCriteria)
	}
	if pageSize > constants.MaxPageSize {
		return fmt.Errorf("%w: page size above %d", ErrInvalidCriteria, constants.MaxPageSize)
	}
	return nil
}
