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
	msgRoleExists   = "Error: Role name already exists"
	msgRoleNotFound = "Role not found"
)

type RoleController struct {
	deps *Dependens
}

func NewRoleController(deps *Dependens) *RoleController {
	return &RoleController{
		deps: deps,
	}
}

func (c *RoleController) List(ctx context.Context, actor *entity.Actor) ([]entity.Role, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	roles, err := c.deps.Roles.List(ctx)
	if err != nil {
		c.deps.Logger.Error("Error listing roles", slog.String("error", err.Error()))
		return nil, err
	}

	return roles, nil
}

func (c *RoleController) Get(ctx context.Context, actor *entity.Actor, id int64) (*entity.Role, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	role, err := c.deps.Roles.GetByID(ctx, id)
	if err != nil {
		return nil, c.notFoundOr(err, id)
	}

	return role, nil
}

func (c *RoleController) Add(ctx context.Context, actor *entity.Actor, req entity.RoleRequest) (*entity.Role, error) {
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

	role, err := c.deps.Roles.Create(ctx, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(msgRoleExists)
		}

		c.deps.Logger.Error("Error inserting role", slog.String("error", err.Error()))
		return nil, err
	}

	c.deps.Logger.Info("Role created", slog.Int64("id", role.ID), slog.String("name", role.Name))
	return role, nil
}

func (c *RoleController) Edit(ctx context.Context, actor *entity.Actor, id int64, req entity.RoleRequest) (*entity.Role, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	if _, err := c.deps.Roles.GetByID(ctx, id); err != nil {
		return nil, c.notFoundOr(err, id)
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := c.deps.validate(req); err != nil {
		return nil, err
	}

	if err := c.checkName(ctx, req.Name, id); err != nil {
		return nil, err
	}

	role, err := c.deps.Roles.Update(ctx, id, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(msgRoleExists)
		}

		return nil, c.notFoundOr(err, id)
	}

	c.deps.Logger.Info("Role updated", slog.Int64("id", role.ID), slog.String("name", role.Name))
	return role, nil
}

func (c *RoleController) Delete(ctx context.Context, actor *entity.Actor, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	if err := c.deps.Roles.Delete(ctx, id); err != nil {
		return c.notFoundOr(err, id)
	}

	c.deps.Logger.Info("Role deleted", slog.Int64("id", id))
	return nil
}

func (c *RoleController) checkName(ctx context.Context, name string, excludeID int64) error {
	taken, err := c.deps.Roles.NameTaken(ctx, name, excludeID)
	if err != nil {
		c.deps.Logger.Error("Error checking role name", slog.String("error", err.Error()))
		return err
	}

	if taken {
		c.deps.Logger.Warn("Role name already exists", slog.String("name", name))
		return apperror.Conflict(msgRoleExists)
	}

	return nil
}

func (c *RoleController) notFoundOr(err error, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		c.deps.Logger.Warn("Role not found", slog.Int64("id", id))
		return apperror.NotFound(msgRoleNotFound)
	}

	c.deps.Logger.Error("Error accessing role", slog.Int64("id", id), slog.String("error", err.Error()))
	return err
}
