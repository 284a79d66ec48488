// Package repository stores directory records in PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/adamanr/dreamteam/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("duplicate record")
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, emp entity.Employee) (*entity.Employee, error)
	GetByID(ctx context.Context, id int64) (*entity.Employee, error)
	GetByEmail(ctx context.Context, email string) (*entity.Employee, error)
	List(ctx context.Context) ([]entity.Employee, error)
	Count(ctx context.Context) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Assign(ctx context.Context, id, departmentID, roleID int64) error
	UpdateProfile(ctx context.Context, id int64, firstName, lastName string) error
	SetAdmin(ctx context.Context, id int64, isAdmin bool) error
}

type DepartmentRepository interface {
	List(ctx context.Context) ([]entity.Department, error)
	GetByID(ctx context.Context, id int64) (*entity.Department, error)
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, name, description string) (*entity.Department, error)
	Update(ctx context.Context, id int64, name, description string) (*entity.Department, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type RoleRepository interface {
	List(ctx context.Context) ([]entity.Role, error)
	GetByID(ctx context.Context, id int64) (*entity.Role, error)
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, name, description string) (*entity.Role, error)
	Update(ctx context.Context, id int64, name, description string) (*entity.Role, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// mapError converts driver errors into the package sentinels. The original
// error stays in the chain so callers can still inspect the *pgconn.PgError.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", ErrDuplicate, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %w", ErrInvalidReference, err)
		}
	}

	return err
}

// ConstraintName returns the violated constraint carried by err, if any.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}

	return ""
}
