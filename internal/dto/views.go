package dto

import (
	"time"

	"github.com/yukikurage/time-management-api/internal/access"
	"github.com/yukikurage/time-management-api/internal/models"
)

// EmployeeView is a user as shown in the employee directory, with the
// manager's display name resolved.
type EmployeeView struct {
	ID          uint64                `json:"id"`
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Role        models.Role           `json:"role"`
	Designation string                `json:"designation"`
	Status      models.EmployeeStatus `json:"status"`
	Avatar      string                `json:"avatar,omitempty"`
	Department  string                `json:"department,omitempty"`
	ManagerID   *uint64               `json:"manager_id,omitempty"`
	Manager     string                `json:"manager"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// TaskView is a task with the assignee's display name resolved.
type TaskView struct {
	models.Task
	AssignedToName string `json:"assigned_to_name"`
}

// UserDTO represents the authenticated user in auth responses
type UserDTO struct {
	ID         uint64      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       models.Role `json:"role"`
	Department string      `json:"department,omitempty"`
	Avatar     string      `json:"avatar,omitempty"`
}

// LoginResponse is returned by a successful login. The token is an
// alternative to the session cookie for API clients.
type LoginResponse struct {
	User      UserDTO   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PermissionsDTO lists what the caller's role grants.
type PermissionsDTO struct {
	Role         models.Role     `json:"role"`
	AccessLevel  int             `json:"access_level"`
	Routes       []string        `json:"routes"`
	Capabilities map[string]bool `json:"capabilities"`
}

// RouteAccessDTO answers whether a dashboard route may be opened.
type RouteAccessDTO struct {
	Route    string `json:"route"`
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

// ListResponse wraps every list endpoint.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// NewListResponse builds a ListResponse, never encoding a nil slice.
func NewListResponse[T any](items []T, page, limit int) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Count: len(items), Page: page, Limit: limit}
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		Department: user.Department,
		Avatar:     user.Avatar,
	}
}

// ToEmployeeView converts a User model; managerName is used as given.
func ToEmployeeView(user models.User, managerName string) EmployeeView {
	return EmployeeView{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		Designation: user.Designation,
		Status:      user.Status,
		Avatar:      user.Avatar,
		Department:  user.Department,
		ManagerID:   user.ManagerID,
		Manager:     managerName,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// ToPermissionsDTO flattens a role's grant. Every known capability is
// present in the map, false when not granted.
func ToPermissionsDTO(role models.Role) PermissionsDTO {
	perms := access.PermissionsFor(role)

	caps := make(map[string]bool, len(access.Capabilities()))
	for _, c := range access.Capabilities() {
		caps[string(c)] = perms.Capabilities[c]
	}

	return PermissionsDTO{
		Role:         role,
		AccessLevel:  perms.AccessLevel,
		Routes:       access.AllowedRoutes(role),
		Capabilities: caps,
	}
}
