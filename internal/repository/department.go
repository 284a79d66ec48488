package repository

import (
	"context"

	"github.com/adamanr/dreamteam/internal/entity"
)

const departmentTable = "departments"

type departmentRepository struct {
	t lookupTable
}

func NewDepartmentRepository(db DB) DepartmentRepository {
	return &departmentRepository{t: lookupTable{db: db, table: departmentTable}}
}

func (r *departmentRepository) List(ctx context.Context) ([]entity.Department, error) {
	records, err := r.t.list(ctx)
	if err != nil {
		return nil, err
	}

	departments := make([]entity.Department, 0, len(records))
	for _, rec := range records {
		departments = append(departments, entity.Department(rec))
	}

	return departments, nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*entity.Department, error) {
	rec, err := r.t.get(ctx, id)
	if err != nil {
		return nil, err
	}

	dept := entity.Department(*rec)
	return &dept, nil
}

func (r *departmentRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	return r.t.nameTaken(ctx, name, excludeID)
}

func (r *departmentRepository) Create(ctx context.Context, name, description string) (*entity.Department, error) {
	rec, err := r.t.create(ctx, name, description)
	if err != nil {
		return nil, err
	}

	dept := entity.Department(*rec)
	return &dept, nil
}

func (r *departmentRepository) Update(ctx context.Context, id int64, name, description string) (*entity.Department, error) {
	rec, err := r.t.update(ctx, id, name, description)
	if err != nil {
		return nil, err
	}

	dept := entity.Department(*rec)
	return &dept, nil
}

// Delete removes the department. Employees referencing it are detached by
// the ON DELETE SET NULL foreign key.
func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	return r.t.delete(ctx, id)
}

func (r *departmentRepository) Count(ctx context.Context) (int64, error) {
	return r.t.count(ctx)
}
