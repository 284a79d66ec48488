package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// lookupRecord has the same field set as entity.Department and entity.Role
// so rows convert to either with a plain type conversion.
type lookupRecord struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var lookupColumns = []string{"id", "name", "description", "created_at", "updated_at"}

// lookupTable implements the name/description CRUD shared by the
// departments and roles tables.
type lookupTable struct {
	db    DB
	table string
}

func scanLookup(row pgx.Row) (*lookupRecord, error) {
	var rec lookupRecord
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, mapError(err)
	}

	return &rec, nil
}

func (t lookupTable) list(ctx context.Context) ([]lookupRecord, error) {
	query, args, err := psql.Select(lookupColumns...).From(t.table).OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s list query: %w", t.table, err)
	}

	rows, err := t.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.table, err)
	}
	defer rows.Close()

	records := []lookupRecord{}
	for rows.Next() {
		rec, scanErr := scanLookup(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan %s: %w", t.table, scanErr)
		}
		records = append(records, *rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", t.table, err)
	}

	return records, nil
}

func (t lookupTable) get(ctx context.Context, id int64) (*lookupRecord, error) {
	query, args, err := psql.Select(lookupColumns...).From(t.table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s get query: %w", t.table, err)
	}

	return scanLookup(t.db.QueryRow(ctx, query, args...))
}

func (t lookupTable) nameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From(t.table).
		Where(sq.Eq{"name": name}).
		Where(sq.NotEq{"id": excludeID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build %s name query: %w", t.table, err)
	}

	var exists bool
	if err = t.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s name: %w", t.table, err)
	}

	return exists, nil
}

func (t lookupTable) create(ctx context.Context, name, description string) (*lookupRecord, error) {
	query, args, err := psql.Insert(t.table).
		Columns("name", "description").
		Values(name, description).
		Suffix("RETURNING " + strings.Join(lookupColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s insert: %w", t.table, err)
	}

	return scanLookup(t.db.QueryRow(ctx, query, args...))
}

func (t lookupTable) update(ctx context.Context, id int64, name, description string) (*lookupRecord, error) {
	query, args, err := psql.Update(t.table).
		Set("name", name).
		Set("description", description).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(lookupColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s update: %w", t.table, err)
	}

	return scanLookup(t.db.QueryRow(ctx, query, args...))
}

func (t lookupTable) delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete(t.table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build %s delete: %w", t.table, err)
	}

	tag, err := t.db.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (t lookupTable) count(ctx context.Context) (int64, error) {
	query, args, err := psql.Select("COUNT(*)").From(t.table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s count: %w", t.table, err)
	}

	var n int64
	if err = t.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", t.table, err)
	}

	return n, nil
}
