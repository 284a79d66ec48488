package controllers

import (
	"context"
	"log/slog"

	"github.com/adamanr/dreamteam/internal/entity"
)

type Summary struct {
	Employees   int64
	Departments int64
	Roles       int64
}

type DashboardController struct {
	deps *Dependens
}

func NewDashboardController(deps *Dependens) *DashboardController {
	return &DashboardController{
		deps: deps,
	}
}

// Summary returns the directory totals shown on the admin dashboard.
func (c *DashboardController) Summary(ctx context.Context, actor *entity.Actor) (*Summary, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var (
		s   Summary
		err error
	)

	if s.Employees, err = c.deps.Employees.Count(ctx); err != nil {
		c.deps.Logger.Error("Error counting employees", slog.String("error", err.Error()))
		return nil, err
	}

	if s.Departments, err = c.deps.Departments.Count(ctx); err != nil {
		c.deps.Logger.Error("Error counting departments", slog.String("error", err.Error()))
		return nil, err
	}

	if s.Roles, err = c.deps.Roles.Count(ctx); err != nil {
		c.deps.Logger.Error("Error counting roles", slog.String("error", err.Error()))
		return nil, err
	}

	return &s, nil
}
