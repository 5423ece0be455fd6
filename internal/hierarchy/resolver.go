// Package hierarchy computes the users a given user may see: everybody for
// organization-wide roles, otherwise the user plus everyone who reports to
// them directly or transitively.
package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/yukikurage/time-management-api/internal/access"
	"github.com/yukikurage/time-management-api/internal/models"
)

// Directory is the slice of the user store the resolver reads.
type Directory interface {
	FindByID(ctx context.Context, id uint64) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
	ListDirectReports(ctx context.Context, managerIDs []uint64) ([]models.User, error)
}

// Set is an unordered collection of users keyed by id.
type Set struct {
	users map[uint64]models.User
}

func newSet() *Set {
	return &Set{users: make(map[uint64]models.User)}
}

func (s *Set) add(u models.User) bool {
	if _, ok := s.users[u.ID]; ok {
		return false
	}
	s.users[u.ID] = u
	return true
}

// Len returns the number of users in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.users)
}

// Contains reports whether id is in the set.
func (s *Set) Contains(id uint64) bool {
	if s == nil {
		return false
	}
	_, ok := s.users[id]
	return ok
}

// IDs returns the member ids in ascending order.
func (s *Set) IDs() []uint64 {
	if s == nil {
		return []uint64{}
	}
	ids := make([]uint64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Users returns the members ordered by id.
func (s *Set) Users() []models.User {
	ids := s.IDs()
	users := make([]models.User, len(ids))
	for i, id := range ids {
		users[i] = s.users[id]
	}
	return users
}

// Resolver walks the manager graph stored in a Directory.
type Resolver struct {
	dir Directory
}

// NewResolver creates a Resolver over dir.
func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve returns the hierarchy rooted at userID. An unknown id yields an
// empty set and no error.
func (r *Resolver) Resolve(ctx context.Context, userID uint64) (*Set, error) {
	user, err := r.dir.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newSet(), nil
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	return r.ResolveFor(ctx, user)
}

// ResolveFor is Resolve for a user record the caller already holds.
func (r *Resolver) ResolveFor(ctx context.Context, user *models.User) (*Set, error) {
	set := newSet()
	if user == nil {
		return set, nil
	}

	if access.HasOrgWideVisibility(user.Role) {
		all, err := r.dir.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		for _, u := range all {
			set.add(u)
		}
		return set, nil
	}

	// Breadth-first, one query per level. An id joins the frontier only the
	// first time it is seen, so a cycle in manager_id ends the walk instead
	// of looping.
	set.add(*user)
	frontier := []uint64{user.ID}
	for len(frontier) > 0 {
		reports, err := r.dir.ListDirectReports(ctx, frontier)
		if err != nil {
			return nil, fmt.Errorf("failed to list direct reports: %w", err)
		}

		next := make([]uint64, 0, len(reports))
		for _, report := range reports {
			if set.add(report) {
				next = append(next, report.ID)
			}
		}
		frontier = next
	}

	return set, nil
}
