package controllers

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/adamanr/dreamteam/internal/apperror"
	"github.com/adamanr/dreamteam/internal/entity"
	"github.com/adamanr/dreamteam/internal/repository"
)

const (
	msgDepartmentExists   = "Error: department name already exists"
	msgDepartmentNotFound = "Department not found"
)

type DepartmentController struct {
	deps *Dependens
}

func NewDepartmentController(deps *Dependens) *DepartmentController {
	return &DepartmentController{
		deps: deps,
	}
}

func (c *DepartmentController) List(ctx context.Context, actor *entity.Actor) ([]entity.Department, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	departments, err := c.deps.Departments.List(ctx)
	if err != nil {
		c.deps.Logger.Error("Error listing departments", slog.String("error", err.Error()))
		return nil, err
	}

	return departments, nil
}

func (c *DepartmentController) Get(ctx context.Context, actor *entity.Actor, id int64) (*entity.Department, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	dept, err := c.deps.Departments.GetByID(ctx, id)
	if err != nil {
		return nil, c.notFoundOr(err, id)
	}

	return dept, nil
}

func (c *DepartmentController) Add(ctx context.Context, actor *entity.Actor, req entity.DepartmentRequest) (*entity.Department, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := c.deps.validate(req); err != nil {
		return nil, err
	}

	if err := c.checkName(ctx, req.Name, 0); err != nil {
		return nil, err
	}

	dept, err := c.deps.Departments.Create(ctx, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(msgDepartmentExists)
		}

		c.deps.Logger.Error("Error inserting department", slog.String("error", err.Error()))
		return nil, err
	}

	c.deps.Logger.Info("Department created", slog.Int64("id", dept.ID), slog.String("name", dept.Name))
	return dept, nil
}

func (c *DepartmentController) Edit(ctx context.Context, actor *entity.Actor, id int64, req entity.DepartmentRequest) (*entity.Department, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	if _, err := c.deps.Departments.GetByID(ctx, id); err != nil {
		return nil, c.notFoundOr(err, id)
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := c.deps.validate(req); err != nil {
		return nil, err
	}

	if err := c.checkName(ctx, req.Name, id); err != nil {
		return nil, err
	}

	dept, err := c.deps.Departments.Update(ctx, id, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(msgDepartmentExists)
		}

		return nil, c.notFoundOr(err, id)
	}

	c.deps.Logger.Info("Department updated", slog.Int64("id", dept.ID), slog.String("name", dept.Name))
	return dept, nil
}

func (c *DepartmentController) Delete(ctx context.Context, actor *entity.Actor, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	if err := c.deps.Departments.Delete(ctx, id); err != nil {
		return c.notFoundOr(err, id)
	}

	c.deps.Logger.Info("Department deleted", slog.Int64("id", id))
	return nil
}

func (c *DepartmentController) checkName(ctx context.Context, name string, excludeID int64) error {
	taken, err := c.deps.Departments.NameTaken(ctx, name, excludeID)
	if err != nil {
		c.deps.Logger.Error("Error checking department name", slog.String("error", err.Error()))
		return err
	}

	if taken {
		c.deps.Logger.Warn("Department name already exists", slog.String("name", name))
		return apperror.Conflict(msgDepartmentExists)
	}

	return nil
}

func (c *DepartmentController) notFoundOr(err error, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		c.deps.Logger.Warn("Department not found", slog.Int64("id", id))
		return apperror.NotFound(msgDepartmentNotFound)
	}

	c.deps.Logger.Error("Error accessing department", slog.Int64("id", id), slog.String("error", err.Error()))
	return err
}
