// Package seed loads the reference data a fresh installation needs: the
// departments, a super admin, a small sample reporting tree and the AI tool
// catalogue. Every step skips records that already exist, so running it
// twice is harmless.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/time-management-api/internal/auth"
	"github.com/yukikurage/time-management-api/internal/models"
	"github.com/yukikurage/time-management-api/internal/repository"
	"github.com/yukikurage/time-management-api/internal/utils"
)

// Options configures a seeding run.
type Options struct {
	AdminEmail    string
	AdminPassword string
	// WithSamples also creates the sample manager and their reports.
	WithSamples bool
}

// Credential is a login created by the run. Password is only set when it was
// generated.
type Credential struct {
	Email    string
	Role     models.Role
	Password string
}

// Result summarizes what a run created.
type Result struct {
	Departments int
	AITools     int
	Users       []Credential
}

var departments = []models.Department{
	{Name: "Engineering", Code: "ENG", Description: "Product and platform development"},
	{Name: "Marketing", Code: "MKT", Description: "Brand, campaigns and growth"},
	{Name: "Operations", Code: "OPS", Description: "Finance, people and facilities"},
	{Name: "IT", Code: "IT", Description: "Internal systems and support"},
}

var aiTools = []models.AITool{
	{Name: "GitHub Copilot", Category: "Code Assistant", Departments: []string{"Engineering"}, Trend: models.AIToolTrendIncreasing},
	{Name: "ChatGPT", Category: "General Assistant", Departments: []string{"Engineering", "Marketing", "Operations"}, Trend: models.AIToolTrendIncreasing},
	{Name: "Midjourney", Category: "Image Generation", Departments: []string{"Marketing"}, Trend: models.AIToolTrendStable},
	{Name: "Notion AI", Category: "Productivity", Departments: []string{"Operations", "IT"}, Trend: models.AIToolTrendDecreasing},
}

type sampleUser struct {
	name        string
	email       string
	role        models.Role
	designation string
	department  string
	// reportsTo names the email of the sample manager, if any.
	reportsTo string
}

var samples = []sampleUser{
	{name: "Olivia Admin", email: "olivia.admin@example.com", role: models.RoleAdmin, designation: "Operations Lead", department: "Operations"},
	{name: "Marcus Manager", email: "marcus.manager@example.com", role: models.RoleManager, designation: "Engineering Manager", department: "Engineering"},
	{name: "Erin Engineer", email: "erin.engineer@example.com", role: models.RoleEmployee, designation: "Software Engineer", department: "Engineering", reportsTo: "marcus.manager@example.com"},
	{name: "Theo Tester", email: "theo.tester@example.com", role: models.RoleEmployee, designation: "QA Engineer", department: "Engineering", reportsTo: "marcus.manager@example.com"},
}

// Seeder writes reference data through the repositories.
type Seeder struct {
	users  repository.UserRepository
	depts  repository.DepartmentRepository
	tools  repository.AIToolRepository
	hasher *auth.PasswordHasher
	logger *zap.Logger
}

// NewSeeder creates a Seeder.
func NewSeeder(users repository.UserRepository, depts repository.DepartmentRepository, tools repository.AIToolRepository, hasher *auth.PasswordHasher, logger *zap.Logger) *Seeder {
	return &Seeder{users: users, depts: depts, tools: tools, hasher: hasher, logger: logger}
}

// Run seeds everything opts asks for.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	if strings.TrimSpace(opts.AdminEmail) == "" {
		return nil, errors.New("admin email is required")
	}

	result := &Result{}

	for _, dept := range departments {
		dept := dept
		created, err := s.ensureDepartment(ctx, &dept)
		if err != nil {
			return nil, err
		}
		if created {
			result.Departments++
		}
	}

	admin, cred, err := s.ensureUser(ctx, sampleUser{
		name:        "Super Admin",
		email:       opts.AdminEmail,
		role:        models.RoleSuperAdmin,
		designation: "System Administrator",
		department:  "IT",
	}, opts.AdminPassword, nil)
	if err != nil {
		return nil, err
	}
	if cred != nil {
		result.Users = append(result.Users, *cred)
	}
	s.logger.Debug("super admin ready", zap.Uint64("user_id", admin.ID))

	if opts.WithSamples {
		byEmail := make(map[string]uint64)
		for _, sample := range samples {
			var managerID *uint64
			if sample.reportsTo != "" {
				id, ok := byEmail[sample.reportsTo]
				if !ok {
					return nil, fmt.Errorf("sample manager %s not seeded before %s", sample.reportsTo, sample.email)
				}
				managerID = &id
			}

			user, cred, err := s.ensureUser(ctx, sample, "", managerID)
			if err != nil {
				return nil, err
			}
			byEmail[user.Email] = user.ID
			if cred != nil {
				result.Users = append(result.Users, *cred)
			}
		}
	}

	for _, tool := range aiTools {
		tool := tool
		created, err := s.ensureAITool(ctx, &tool)
		if err != nil {
			return nil, err
		}
		if created {
			result.AITools++
		}
	}

	s.logger.Info("seed completed",
		zap.Int("departments", result.Departments),
		zap.Int("ai_tools", result.AITools),
		zap.Int("users", len(result.Users)),
	)
	return result, nil
}

func (s *Seeder) ensureDepartment(ctx context.Context, dept *models.Department) (bool, error) {
	_, err := s.depts.FindByName(ctx, dept.Name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up department %s: %w", dept.Name, err)
	}
	if err := s.depts.Create(ctx, dept); err != nil {
		return false, fmt.Errorf("failed to create department %s: %w", dept.Name, err)
	}
	return true, nil
}

func (s *Seeder) ensureAITool(ctx context.Context, tool *models.AITool) (bool, error) {
	_, err := s.tools.FindByName(ctx, tool.Name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up AI tool %s: %w", tool.Name, err)
	}
	if err := s.tools.Create(ctx, tool); err != nil {
		return false, fmt.Errorf("failed to create AI tool %s: %w", tool.Name, err)
	}
	return true, nil
}

// ensureUser returns the existing user with sample.email, or creates one.
// The credential is nil when the user already existed.
func (s *Seeder) ensureUser(ctx context.Context, sample sampleUser, password string, managerID *uint64) (*models.User, *Credential, error) {
	email := strings.ToLower(strings.TrimSpace(sample.email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to look up user %s: %w", email, err)
	}

	cred := &Credential{Email: email, Role: sample.role}
	if password == "" {
		password, err = utils.GenerateTemporaryPassword()
		if err != nil {
			return nil, nil, err
		}
		cred.Password = password
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password for %s: %w", email, err)
	}

	user := &models.User{
		Name:         sample.name,
		Email:        email,
		PasswordHash: hashed,
		Role:         sample.role,
		Designation:  sample.designation,
		Status:       models.EmployeeStatusActive,
		Department:   sample.department,
		ManagerID:    managerID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("failed to create user %s: %w", email, err)
	}
	return user, cred, nil
}
