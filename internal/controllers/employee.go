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
	msgEmployeeNotFound = "Employee not found"
	msgLoginRequired    = "Please log in to access this page."
	msgInvalidChoice    = "Not a valid choice."

	departmentField = "department_id"
	roleField       = "role_id"

	roleConstraint = "employees_role_id_fkey"
)

type EmployeeController struct {
	deps *Dependens
}

func NewEmployeeController(deps *Dependens) *EmployeeController {
	return &EmployeeController{
		deps: deps,
	}
}

// List returns every employee with department and role resolved.
func (c *EmployeeController) List(ctx context.Context, actor *entity.Actor) ([]entity.Employee, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	employees, err := c.deps.Employees.List(ctx)
	if err != nil {
		c.deps.Logger.Error("Error listing employees", slog.String("error", err.Error()))
		return nil, err
	}

	return employees, nil
}

func (c *EmployeeController) Get(ctx context.Context, actor *entity.Actor, id int64) (*entity.Employee, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	return c.get(ctx, id)
}

func (c *EmployeeController) get(ctx context.Context, id int64) (*entity.Employee, error) {
	emp, err := c.deps.Employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.deps.Logger.Warn("Employee not found", slog.Int64("id", id))
			return nil, apperror.NotFound(msgEmployeeNotFound)
		}

		c.deps.Logger.Error("Error querying employee", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, err
	}

	return emp, nil
}

// Assign links the employee to a department and a role, replacing any
// previous assignment.
func (c *EmployeeController) Assign(ctx context.Context, actor *entity.Actor, id int64, req entity.AssignRequest) (*entity.Employee, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	if _, err := c.get(ctx, id); err != nil {
		return nil, err
	}

	if err := c.deps.validate(req); err != nil {
		return nil, err
	}

	if _, err := c.deps.Departments.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, c.missingTarget(err, departmentField)
	}

	if _, err := c.deps.Roles.GetByID(ctx, req.RoleID); err != nil {
		return nil, c.missingTarget(err, roleField)
	}

	if err := c.deps.Employees.Assign(ctx, id, req.DepartmentID, req.RoleID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.NotFound(msgEmployeeNotFound)
		case errors.Is(err, repository.ErrInvalidReference):
			return nil, c.missingTarget(err, referenceField(err))
		}

		c.deps.Logger.Error("Error assigning employee", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, err
	}

	c.deps.Logger.Info("Employee assigned",
		slog.Int64("id", id),
		slog.Int64("department_id", req.DepartmentID),
		slog.Int64("role_id", req.RoleID),
	)

	return c.get(ctx, id)
}

// missingTarget reports a department or role that does not exist as a
// not-found error on the form field that selected it.
func (c *EmployeeController) missingTarget(err error, field string) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidReference) {
		msg := msgDepartmentNotFound
		if field == roleField {
			msg = msgRoleNotFound
		}
		return apperror.NotFoundField(msg, field, msgInvalidChoice)
	}

	c.deps.Logger.Error("Error checking assignment target", slog.String("field", field), slog.String("error", err.Error()))
	return err
}

// referenceField names the input behind a foreign key violation.
func referenceField(err error) string {
	if repository.ConstraintName(err) == roleConstraint {
		return roleField
	}
	return departmentField
}

// Profile returns the actor's own record.
func (c *EmployeeController) Profile(ctx context.Context, actor *entity.Actor) (*entity.Employee, error) {
	if actor == nil {
		return nil, apperror.Auth(msgLoginRequired)
	}

	return c.get(ctx, actor.EmployeeID)
}

func (c *EmployeeController) UpdateProfile(ctx context.Context, actor *entity.Actor, req entity.ProfileRequest) (*entity.Employee, error) {
	if actor == nil {
		return nil, apperror.Auth(msgLoginRequired)
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := c.deps.validate(req); err != nil {
		return nil, err
	}

	if err := c.deps.Employees.UpdateProfile(ctx, actor.EmployeeID, req.FirstName, req.LastName); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(msgEmployeeNotFound)
		}

		c.deps.Logger.Error("Error updating profile", slog.Int64("id", actor.EmployeeID), slog.String("error", err.Error()))
		return nil, err
	}

	return c.get(ctx, actor.EmployeeID)
}
