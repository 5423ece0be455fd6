// Package access maps roles to the routes and capabilities they grant.
//
// Every check is a pure lookup in static tables. The numeric access level is
// for display only; decisions are made from the capability map.
package access

import (
	"sort"

	"github.com/yukikurage/time-management-api/internal/models"
)

type Capability string

const (
	CanCreateEmployee  Capability = "canCreateEmployee"
	CanEditEmployee    Capability = "canEditEmployee"
	CanDeleteEmployee  Capability = "canDeleteEmployee"
	CanCreateProject   Capability = "canCreateProject"
	CanEditProject     Capability = "canEditProject"
	CanDeleteProject   Capability = "canDeleteProject"
	CanCreateTask      Capability = "canCreateTask"
	CanEditTask        Capability = "canEditTask"
	CanDeleteTask      Capability = "canDeleteTask"
	CanManageSettings  Capability = "canManageSettings"
	CanEditDepartments Capability = "canEditDepartments"
	CanLogTime         Capability = "canLogTime"
	CanViewReports     Capability = "canViewReports"
)

// Dashboard routes
const (
	RouteDashboard    = "/dashboard"
	RouteEmployees    = "/dashboard/employees"
	RouteProjects     = "/dashboard/projects"
	RouteTasks        = "/dashboard/tasks"
	RouteTimeTracking = "/dashboard/time-tracking"
	RouteAIAdoption   = "/dashboard/ai-adoption"
	RouteReports      = "/dashboard/reports"
	RouteSettings     = "/dashboard/settings"
)

// SafeDefaultRoute is where a caller lands after being refused a route.
const SafeDefaultRoute = RouteDashboard

// Permissions is the resolved grant for a single role.
type Permissions struct {
	AccessLevel  int
	Routes       map[string]struct{}
	Capabilities map[Capability]bool
}

type roleGrant struct {
	level        int
	routes       []string
	capabilities map[Capability]bool
}

var grants = map[models.Role]roleGrant{
	models.RoleSuperAdmin: {
		level: 100,
		routes: []string{
			RouteDashboard, RouteEmployees, RouteProjects, RouteTasks,
			RouteTimeTracking, RouteAIAdoption, RouteReports, RouteSettings,
		},
		capabilities: map[Capability]bool{
			CanCreateEmployee:  true,
			CanEditEmployee:    true,
			CanDeleteEmployee:  true,
			CanCreateProject:   true,
			CanEditProject:     true,
			CanDeleteProject:   true,
			CanCreateTask:      true,
			CanEditTask:        true,
			CanDeleteTask:      true,
			CanManageSettings:  true,
			CanEditDepartments: true,
			CanLogTime:         true,
			CanViewReports:     true,
		},
	},
	models.RoleAdmin: {
		level: 80,
		routes: []string{
			RouteDashboard, RouteEmployees, RouteProjects, RouteTasks,
			RouteTimeTracking, RouteAIAdoption, RouteReports,
		},
		capabilities: map[Capability]bool{
			CanCreateEmployee:  true,
			CanEditEmployee:    true,
			CanDeleteEmployee:  false,
			CanCreateProject:   true,
			CanEditProject:     true,
			CanDeleteProject:   false,
			CanCreateTask:      true,
			CanEditTask:        true,
			CanDeleteTask:      true,
			CanManageSettings:  false,
			CanEditDepartments: false,
			CanLogTime:         true,
			CanViewReports:     true,
		},
	},
	models.RoleManager: {
		level: 60,
		routes: []string{
			RouteDashboard, RouteEmployees, RouteProjects, RouteTasks,
			RouteTimeTracking, RouteAIAdoption,
		},
		capabilities: map[Capability]bool{
			CanCreateEmployee:  false,
			CanEditEmployee:    false,
			CanDeleteEmployee:  false,
			CanCreateProject:   true,
			CanEditProject:     true,
			CanDeleteProject:   false,
			CanCreateTask:      true,
			CanEditTask:        true,
			CanDeleteTask:      true,
			CanManageSettings:  false,
			CanEditDepartments: false,
			CanLogTime:         true,
			CanViewReports:     false,
		},
	},
	models.RoleEmployee: {
		level:  40,
		routes: []string{RouteDashboard, RouteTasks, RouteTimeTracking},
		capabilities: map[Capability]bool{
			CanCreateEmployee:  false,
			CanEditEmployee:    false,
			CanDeleteEmployee:  false,
			CanCreateProject:   false,
			CanEditProject:     false,
			CanDeleteProject:   false,
			CanCreateTask:      false,
			CanEditTask:        true,
			CanDeleteTask:      false,
			CanManageSettings:  false,
			CanEditDepartments: false,
			CanLogTime:         true,
			CanViewReports:     false,
		},
	},
}

// PermissionsFor returns a fresh copy of the role's grant. An unknown role
// yields level 0 with no routes and no capabilities.
func PermissionsFor(role models.Role) Permissions {
	perms := Permissions{
		Routes:       map[string]struct{}{},
		Capabilities: map[Capability]bool{},
	}

	g, ok := grants[role]
	if !ok {
		return perms
	}

	perms.AccessLevel = g.level
	for _, r := range g.routes {
		perms.Routes[r] = struct{}{}
	}
	for c, v := range g.capabilities {
		perms.Capabilities[c] = v
	}
	return perms
}

// HasRouteAccess reports whether user may open route.
func HasRouteAccess(user *models.User, route string) bool {
	if user == nil {
		return false
	}
	g, ok := grants[user.Role]
	if !ok {
		return false
	}
	for _, r := range g.routes {
		if r == route {
			return true
		}
	}
	return false
}

// HasCapability reports whether user's role grants c. A capability missing
// from the role table is reserved for super_admin.
func HasCapability(user *models.User, c Capability) bool {
	if user == nil {
		return false
	}
	g, ok := grants[user.Role]
	if !ok {
		return false
	}
	granted, known := g.capabilities[c]
	if !known {
		return user.Role == models.RoleSuperAdmin
	}
	return granted
}

// HasOrgWideVisibility reports whether role sees every user and every record
// instead of only its own hierarchy.
func HasOrgWideVisibility(role models.Role) bool {
	return role == models.RoleSuperAdmin || role == models.RoleAdmin
}

// AllowedRoutes lists the routes for role in sorted order.
func AllowedRoutes(role models.Role) []string {
	g, ok := grants[role]
	if !ok {
		return []string{}
	}
	routes := append([]string(nil), g.routes...)
	sort.Strings(routes)
	return routes
}

// Capabilities lists every capability the policy knows about, sorted.
func Capabilities() []Capability {
	caps := make([]Capability, 0, len(grants[models.RoleSuperAdmin].capabilities))
	for c := range grants[models.RoleSuperAdmin].capabilities {
		caps = append(caps, c)
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i] < caps[j] })
	return caps
}
