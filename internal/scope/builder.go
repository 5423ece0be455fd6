// Package scope turns a session plus list criteria into repository filters
// that already carry the caller's visibility restriction.
package scope

import (
	"context"
	"fmt"

	"github.com/yukikurage/time-management-api/internal/access"
	"github.com/yukikurage/time-management-api/internal/hierarchy"
	"github.com/yukikurage/time-management-api/internal/models"
	"github.com/yukikurage/time-management-api/internal/repository"
	"github.com/yukikurage/time-management-api/internal/session"
)

// View is the visibility of one user for the duration of a request.
type View struct {
	User    *models.User
	OrgWide bool
	Members *hierarchy.Set
}

// Allows reports whether a record owned by userID is inside the view.
func (v *View) Allows(userID uint64) bool {
	return v.OrgWide || v.Members.Contains(userID)
}

// Scope returns the id restriction for user-owned records: none for
// organization-wide roles, the hierarchy otherwise.
func (v *View) Scope() repository.IDScope {
	if v.OrgWide {
		return repository.IDScope{}
	}
	return repository.Only(v.Members.IDs())
}

// Builder composes visibility with list criteria.
type Builder struct {
	resolver *hierarchy.Resolver
}

// NewBuilder creates a Builder backed by resolver.
func NewBuilder(resolver *hierarchy.Resolver) *Builder {
	return &Builder{resolver: resolver}
}

// View resolves the visibility of the session's user.
func (b *Builder) View(ctx context.Context, sess *session.Session) (*View, error) {
	user, err := sess.Require()
	if err != nil {
		return nil, err
	}
	members, err := b.resolver.ResolveFor(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve hierarchy: %w", err)
	}
	return &View{
		User:    user,
		OrgWide: access.HasOrgWideVisibility(user.Role),
		Members: members,
	}, nil
}

// Employees restricts the listing to the caller's hierarchy. Organization-wide
// roles see the whole directory and get no id restriction.
func (b *Builder) Employees(ctx context.Context, sess *session.Session, c EmployeeCriteria) (repository.UserFilter, error) {
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return repository.UserFilter{}, err
	}
	view, err := b.View(ctx, sess)
	if err != nil {
		return repository.UserFilter{}, err
	}

	filter := repository.UserFilter{
		Scope:      view.Scope(),
		Search:     c.Search,
		Department: c.Department,
		Page:       c.Page,
		PageSize:   c.PageSize,
	}
	if c.Status != "" {
		status := models.EmployeeStatus(c.Status)
		filter.Status = &status
	}
	return filter, nil
}

// Projects limits non-admin callers to projects of their own department or
// with an assignee in their hierarchy. The visibility is ANDed with the
// search and the explicit filters.
func (b *Builder) Projects(ctx context.Context, sess *session.Session, c ProjectCriteria) (repository.ProjectFilter, error) {
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return repository.ProjectFilter{}, err
	}
	view, err := b.View(ctx, sess)
	if err != nil {
		return repository.ProjectFilter{}, err
	}

	filter := repository.ProjectFilter{
		Search:     c.Search,
		Department: c.Department,
		Page:       c.Page,
		PageSize:   c.PageSize,
	}
	if !view.OrgWide {
		filter.Visibility = &repository.ProjectVisibility{
			Department:  view.User.Department,
			AssigneeIDs: view.Members.IDs(),
		}
	}
	if c.Status != "" {
		status := models.ProjectStatus(c.Status)
		filter.Status = &status
	}
	return filter, nil
}

// Tasks limits non-admin callers to tasks assigned inside their hierarchy.
// Unassigned tasks are visible to organization-wide roles only.
func (b *Builder) Tasks(ctx context.Context, sess *session.Session, c TaskCriteria) (repository.TaskFilter, error) {
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return repository.TaskFilter{}, err
	}
	view, err := b.View(ctx, sess)
	if err != nil {
		return repository.TaskFilter{}, err
	}

	filter := repository.TaskFilter{
		AssigneeScope: view.Scope(),
		Search:        c.Search,
		Project:       c.Project,
		SubProject:    c.SubProject,
		Page:          c.Page,
		PageSize:      c.PageSize,
	}
	if c.Status != "" {
		status := models.TaskStatus(c.Status)
		filter.Status = &status
	}
	return filter, nil
}

// TimeEntries limits non-admin callers to entries owned inside their
// hierarchy. An explicit employee filter narrows that set further; it never
// widens it.
func (b *Builder) TimeEntries(ctx context.Context, sess *session.Session, c TimeEntryCriteria) (repository.TimeEntryFilter, error) {
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return repository.TimeEntryFilter{}, err
	}
	view, err := b.View(ctx, sess)
	if err != nil {
		return repository.TimeEntryFilter{}, err
	}

	employeeID, _ := parseID("employee", c.Employee)
	projectID, _ := parseID("project", c.Project)
	dates, _ := c.DateRange()

	return repository.TimeEntryFilter{
		UserScope:  view.Scope(),
		Search:     c.Search,
		EmployeeID: employeeID,
		ProjectID:  projectID,
		DateFrom:   dates.From,
		DateBefore: dates.Before(),
		Page:       c.Page,
		PageSize:   c.PageSize,
	}, nil
}
