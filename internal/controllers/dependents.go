package controllers

import (
	"context"
	"log/slog"
	"time"

	"github.com/adamanr/dreamteam/internal/apperror"
	"github.com/adamanr/dreamteam/internal/config"
	"github.com/adamanr/dreamteam/internal/entity"
	"github.com/adamanr/dreamteam/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
)

const msgInsufficientPermissions = "You do not have sufficient permissions to access this page."

type Controllers struct {
	AuthController       *AuthController
	DepartmentController *DepartmentController
	RoleController       *RoleController
	EmployeeController   *EmployeeController
	DashboardController  *DashboardController
}

type Dependens struct {
	Employees   repository.EmployeeRepository
	Departments repository.DepartmentRepository
	Roles       repository.RoleRepository
	Redis       interface {
		Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
		Get(ctx context.Context, key string) *redis.StringCmd
		Del(ctx context.Context, keys ...string) *redis.IntCmd
	}
	Validate *validator.Validate
	Logger   *slog.Logger
	Config   *config.Config
}

func New(deps *Dependens) *Controllers {
	if deps.Validate == nil {
		deps.Validate = NewValidator()
	}

	return &Controllers{
		AuthController:       NewAuthController(deps),
		DepartmentController: NewDepartmentController(deps),
		RoleController:       NewRoleController(deps),
		EmployeeController:   NewEmployeeController(deps),
		DashboardController:  NewDashboardController(deps),
	}
}

// requireAdmin rejects anonymous and non-admin actors.
func requireAdmin(actor *entity.Actor) error {
	if actor == nil || !actor.IsAdmin {
		return apperror.Permission(msgInsufficientPermissions)
	}

	return nil
}
