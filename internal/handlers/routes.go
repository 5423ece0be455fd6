package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/time-management-api/internal/access"
	"github.com/yukikurage/time-management-api/internal/middleware"
)

// Handlers bundles every HTTP handler of the API.
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Employees *EmployeeHandler
	Projects  *ProjectHandler
	Tasks     *TaskHandler
	Entries   *TimeEntryHandler
	Settings  *SettingsHandler
	Reports   *ReportHandler
}

// RegisterRoutes mounts the API on r. The session middleware must already be
// installed; requireAuth guards everything except health, login and logout.
func RegisterRoutes(r *gin.Engine, h Handlers, requireAuth gin.HandlerFunc) {
	r.GET("/health", h.Health.Health)

	withID := middleware.RequireIDParam()

	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/me", requireAuth, h.Auth.GetCurrentUser)
			auth.GET("/permissions", requireAuth, h.Auth.GetPermissions)
			auth.GET("/route-access", requireAuth, h.Auth.CheckRouteAccess)
		}

		protected := api.Group("")
		protected.Use(requireAuth)

		employees := protected.Group("/employees")
		{
			employees.GET("", h.Employees.ListEmployees)
			employees.POST("", middleware.RequireCapability(access.CanCreateEmployee), h.Employees.CreateEmployee)
			employees.GET("/:id", withID, h.Employees.GetEmployee)
			employees.PUT("/:id", withID, middleware.RequireCapability(access.CanEditEmployee), h.Employees.UpdateEmployee)
			employees.DELETE("/:id", withID, middleware.RequireCapability(access.CanDeleteEmployee), h.Employees.DeleteEmployee)
		}

		projects := protected.Group("/projects")
		{
			projects.GET("", h.Projects.ListProjects)
			projects.POST("", h.Projects.CreateProject)
			projects.GET("/:id", withID, h.Projects.GetProject)
			projects.PUT("/:id", withID, h.Projects.UpdateProject)
			projects.DELETE("/:id", withID, h.Projects.DeleteProject)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("", h.Tasks.ListTasks)
			tasks.POST("", h.Tasks.CreateTask)
			tasks.GET("/:id", withID, h.Tasks.GetTask)
			tasks.PUT("/:id", withID, h.Tasks.UpdateTask)
			tasks.DELETE("/:id", withID, h.Tasks.DeleteTask)
		}

		entries := protected.Group("/time-entries")
		{
			entries.GET("", h.Entries.ListTimeEntries)
			entries.POST("", h.Entries.CreateTimeEntry)
			entries.PUT("/:id", withID, h.Entries.UpdateTimeEntry)
			entries.DELETE("/:id", withID, h.Entries.DeleteTimeEntry)
		}

		departments := protected.Group("/departments")
		{
			departments.GET("", h.Settings.ListDepartments)
			departments.POST("", middleware.RequireCapability(access.CanEditDepartments), h.Settings.CreateDepartment)
			departments.PUT("/:id", withID, middleware.RequireCapability(access.CanEditDepartments), h.Settings.UpdateDepartment)
			departments.DELETE("/:id", withID, middleware.RequireCapability(access.CanEditDepartments), h.Settings.DeleteDepartment)
		}

		tools := protected.Group("/ai-tools")
		{
			tools.GET("", h.Settings.ListAITools)
			tools.POST("", middleware.RequireCapability(access.CanManageSettings), h.Settings.CreateAITool)
			tools.PUT("/:id", withID, middleware.RequireCapability(access.CanManageSettings), h.Settings.UpdateAITool)
			tools.DELETE("/:id", withID, middleware.RequireCapability(access.CanManageSettings), h.Settings.DeleteAITool)
		}

		reports := protected.Group("/reports")
		{
			reports.GET("/performance", middleware.RequireRoute(access.RouteReports), h.Reports.Performance)
			reports.GET("/ai-adoption", middleware.RequireRoute(access.RouteAIAdoption), h.Reports.AIAdoption)
			reports.GET("/project-status", middleware.RequireRoute(access.RouteReports), h.Reports.ProjectStatus)
		}
	}
}
