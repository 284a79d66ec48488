package controllers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adamanr/dreamteam/internal/entity"
)

type seedEmployee struct {
	email    string
	username string
	password string
	isAdmin  bool
}

var (
	seedEmployees = []seedEmployee{
		{email: "admin@email.com", username: "admin", password: "admin2019", isAdmin: true},
		{email: "test_user@email.com", username: "test_user", password: "test2019"},
	}

	seedDepartments = []entity.DepartmentRequest{
		{Name: "Human Resources", Description: "Find and keep the best talent"},
		{Name: "Information Technology", Description: "Manage all tech systems and processes"},
	}

	seedRoles = []entity.RoleRequest{
		{Name: "Head of Department", Description: "Lead the entire department"},
		{Name: "Intern", Description: "3-month learning position"},
	}
)

// SeedResult counts the records inserted by Seed.
type SeedResult struct {
	Employees   int
	Departments int
	Roles       int
}

// Seed inserts the development fixtures. Records that already exist are
// left untouched, so running it twice is harmless.
func (c *AuthController) Seed(ctx context.Context) (*SeedResult, error) {
	var res SeedResult

	for _, s := range seedEmployees {
		exists, err := c.deps.Employees.ExistsByEmail(ctx, s.email)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", s.email, err)
		}
		if exists {
			continue
		}

		hash, err := hashPassword(s.password)
		if err != nil {
			return nil, err
		}

		if _, err = c.deps.Employees.Create(ctx, entity.Employee{
			Email:        s.email,
			Username:     s.username,
			PasswordHash: hash,
			IsAdmin:      s.isAdmin,
		}); err != nil {
			return nil, fmt.Errorf("create %s: %w", s.username, err)
		}
		res.Employees++
	}

	for _, d := range seedDepartments {
		taken, err := c.deps.Departments.NameTaken(ctx, d.Name, 0)
		if err != nil {
			return nil, fmt.Errorf("check department %q: %w", d.Name, err)
		}
		if taken {
			continue
		}

		if _, err = c.deps.Departments.Create(ctx, d.Name, d.Description); err != nil {
			return nil, fmt.Errorf("create department %q: %w", d.Name, err)
		}
		res.Departments++
	}

	for _, r := range seedRoles {
		taken, err := c.deps.Roles.NameTaken(ctx, r.Name, 0)
		if err != nil {
			return nil, fmt.Errorf("check role %q: %w", r.Name, err)
		}
		if taken {
			continue
		}

		if _, err = c.deps.Roles.Create(ctx, r.Name, r.Description); err != nil {
			return nil, fmt.Errorf("create role %q: %w", r.Name, err)
		}
		res.Roles++
	}

	c.deps.Logger.Info("Seed finished",
		slog.Int("employees", res.Employees),
		slog.Int("departments", res.Departments),
		slog.Int("roles", res.Roles),
	)

	return &res, nil
}
