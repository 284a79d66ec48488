package repository

import (
	"context"

	"github.com/adamanr/dreamteam/internal/entity"
)

const roleTable = "roles"

type roleRepository struct {
	t lookupTable
}

func NewRoleRepository(db DB) RoleRepository {
	return &roleRepository{t: lookupTable{db: db, table: roleTable}}
}

func (r *roleRepository) List(ctx context.Context) ([]entity.Role, error) {
	records, err := r.t.list(ctx)
	if err != nil {
		return nil, err
	}

	roles := make([]entity.Role, 0, len(records))
	for _, rec := range records {
		roles = append(roles, entity.Role(rec))
	}

	return roles, nil
}

func (r *roleRepository) GetByID(ctx context.Context, id int64) (*entity.Role, error) {
	rec, err := r.t.get(ctx, id)
	if err != nil {
		return nil, err
	}

	role := entity.Role(*rec)
	return &role, nil
}

func (r *roleRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	return r.t.nameTaken(ctx, name, excludeID)
}

func (r *roleRepository) Create(ctx context.Context, name, description string) (*entity.Role, error) {
	rec, err := r.t.create(ctx, name, description)
	if err != nil {
		return nil, err
	}

	role := entity.Role(*rec)
	return &role, nil
}

func (r *roleRepository) Update(ctx context.Context, id int64, name, description string) (*entity.Role, error) {
	rec, err := r.t.update(ctx, id, name, description)
	if err != nil {
		return nil, err
	}

	role := entity.Role(*rec)
	return &role, nil
}

// Delete removes the role. Employees referencing it are detached by
// the ON DELETE SET NULL foreign key.
func (r *roleRepository) Delete(ctx context.Context, id int64) error {
	return r.t.delete(ctx, id)
}

func (r *roleRepository) Count(ctx context.Context) (int64, error) {
	return r.t.count(ctx)
}
