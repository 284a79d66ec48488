package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/adamanr/dreamteam/internal/entity"
	"github.com/jackc/pgx/v5"
)

const employeeTable = "employees"

var employeeColumns = []string{
	"e.id", "e.email", "e.username", "e.first_name", "e.last_name", "e.password_hash", "e.is_admin",
	"e.department_id", "e.role_id", "e.created_at", "e.updated_at",
	"d.name", "d.description", "r.name", "r.description",
}

type employeeRepository struct {
	db DB
}

func NewEmployeeRepository(db DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func selectEmployees() sq.SelectBuilder {
	return psql.Select(employeeColumns...).
		From(employeeTable + " e").
		LeftJoin("departments d ON d.id = e.department_id").
		LeftJoin("roles r ON r.id = e.role_id")
}

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var (
		e                  entity.Employee
		deptName, deptDesc *string
		roleName, roleDesc *string
	)

	if err := row.Scan(
		&e.ID, &e.Email, &e.Username, &e.FirstName, &e.LastName, &e.PasswordHash, &e.IsAdmin,
		&e.DepartmentID, &e.RoleID, &e.CreatedAt, &e.UpdatedAt,
		&deptName, &deptDesc, &roleName, &roleDesc,
	); err != nil {
		return nil, mapError(err)
	}

	if e.DepartmentID != nil && deptName != nil {
		e.Department = &entity.Department{ID: *e.DepartmentID, Name: *deptName, Description: deref(deptDesc)}
	}

	if e.RoleID != nil && roleName != nil {
		e.Role = &entity.Role{ID: *e.RoleID, Name: *roleName, Description: deref(roleDesc)}
	}

	return &e, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func (r *employeeRepository) Create(ctx context.Context, emp entity.Employee) (*entity.Employee, error) {
	query, args, err := psql.Insert(employeeTable).
		Columns("email", "username", "first_name", "last_name", "password_hash", "is_admin").
		Values(emp.Email, emp.Username, emp.FirstName, emp.LastName, emp.PasswordHash, emp.IsAdmin).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build employee insert: %w", err)
	}

	if err = r.db.QueryRow(ctx, query, args...).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
		return nil, mapError(err)
	}

	return &emp, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*entity.Employee, error) {
	return r.getOne(ctx, sq.Eq{"e.id": id})
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	return r.getOne(ctx, sq.Eq{"e.email": email})
}

func (r *employeeRepository) getOne(ctx context.Context, where sq.Eq) (*entity.Employee, error) {
	query, args, err := selectEmployees().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build employee query: %w", err)
	}

	return scanEmployee(r.db.QueryRow(ctx, query, args...))
}

func (r *employeeRepository) List(ctx context.Context) ([]entity.Employee, error) {
	query, args, err := selectEmployees().OrderBy("e.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build employee list: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	employees := []entity.Employee{}
	for rows.Next() {
		emp, scanErr := scanEmployee(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan employee: %w", scanErr)
		}
		employees = append(employees, *emp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}

	return employees, nil
}

func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := psql.Select("COUNT(*)").From(employeeTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build employee count: %w", err)
	}

	var n int64
	if err = r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}

	return n, nil
}

func (r *employeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, sq.Eq{"email": email})
}

func (r *employeeRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, sq.Eq{"username": username})
}

func (r *employeeRepository) exists(ctx context.Context, where sq.Eq) (bool, error) {
	query, args, err := psql.Select("1").Prefix("SELECT EXISTS (").From(employeeTable).Where(where).Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("build employee exists: %w", err)
	}

	var exists bool
	if err = r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check employee exists: %w", err)
	}

	return exists, nil
}

// Assign overwrites both references. A missing department or role surfaces
// as ErrInvalidReference through the foreign keys.
func (r *employeeRepository) Assign(ctx context.Context, id, departmentID, roleID int64) error {
	return r.update(ctx, id, map[string]interface{}{
		"department_id": departmentID,
		"role_id":       roleID,
	})
}

func (r *employeeRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName string) error {
	return r.update(ctx, id, map[string]interface{}{
		"first_name": firstName,
		"last_name":  lastName,
	})
}

func (r *employeeRepository) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	return r.update(ctx, id, map[string]interface{}{"is_admin": isAdmin})
}

func (r *employeeRepository) update(ctx context.Context, id int64, fields map[string]interface{}) error {
	query, args, err := psql.Update(employeeTable).
		SetMap(fields).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build employee update: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
