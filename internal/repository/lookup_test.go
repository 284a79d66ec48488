package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/adamanr/dreamteam/internal/entity"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sqlPrefix(prefix string) interface{} {
	return mock.MatchedBy(func(query string) bool {
		return strings.HasPrefix(query, prefix)
	})
}

func TestDepartmentRepository_List(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		setupMocks  func(*MockDB)
		expectError bool
		want        []entity.Department
	}{
		{
			name: "successful list",
			setupMocks: func(mockDB *MockDB) {
				rows := NewMockRows([][]interface{}{
					{int64(1), "Human Resources", "Find and keep the best talent", now, now},
					{int64(2), "Information Technology", "Manage all tech systems and processes", now, now},
				}, nil)
				mockDB.On("Query", mock.Anything, "SELECT id, name, description, created_at, updated_at FROM departments ORDER BY id").Return(rows, nil)
			},
			want: []entity.Department{
				{ID: 1, Name: "Human Resources", Description: "Find and keep the best talent", CreatedAt: now, UpdatedAt: now},
				{ID: 2, Name: "Information Technology", Description: "Manage all tech systems and processes", CreatedAt: now, UpdatedAt: now},
			},
		},
		{
			name: "empty table",
			setupMocks: func(mockDB *MockDB) {
				mockDB.On("Query", mock.Anything, mock.AnythingOfType("string")).Return(NewMockRows(nil, nil), nil)
			},
			want: []entity.Department{},
		},
		{
			name: "query error",
			setupMocks: func(mockDB *MockDB) {
				mockDB.On("Query", mock.Anything, mock.AnythingOfType("string")).Return((*MockRows)(nil), errors.New("query error"))
			},
			expectError: true,
		},
		{
			name: "iteration error",
			setupMocks: func(mockDB *MockDB) {
				mockDB.On("Query", mock.Anything, mock.AnythingOfType("string")).Return(NewMockRows(nil, errors.New("conn reset")), nil)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := &MockDB{}
			tt.setupMocks(mockDB)

			got, err := NewDepartmentRepository(mockDB).List(context.Background())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("List() mismatch (-want +got):\n%s", diff)
				}
			}

			mockDB.AssertExpectations(t)
		})
	}
}

func TestDepartmentRepository_GetByID(t *testing.T) {
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mockDB := &MockDB{}
		row := NewMockRow([]interface{}{int64(1), "IT", "The IT Department", now, now}, nil)
		mockDB.On("QueryRow", mock.Anything, "SELECT id, name, description, created_at, updated_at FROM departments WHERE id = $1", int64(1)).Return(row)

		dept, err := NewDepartmentRepository(mockDB).GetByID(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "IT", dept.Name)
		mockDB.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockDB := &MockDB{}
		mockDB.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), int64(999)).Return(NewMockRow(nil, pgx.ErrNoRows))

		dept, err := NewDepartmentRepository(mockDB).GetByID(context.Background(), 999)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, dept)
	})
}

func TestDepartmentRepository_Create(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		row           *MockRow
		expectErrorIs error
	}{
		{
			name: "successful create",
			row:  NewMockRow([]interface{}{int64(3), "IT", "The IT Department", now, now}, nil),
		},
		{
			name:          "unique violation",
			row:           NewMockRow(nil, &pgconn.PgError{Code: "23505", ConstraintName: "departments_name_key"}),
			expectErrorIs: ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := &MockDB{}
			mockDB.On("QueryRow", mock.Anything, sqlPrefix("INSERT INTO departments (name,description) VALUES ($1,$2) RETURNING"), "IT", "The IT Department").Return(tt.row)

			dept, err := NewDepartmentRepository(mockDB).Create(context.Background(), "IT", "The IT Department")

			if tt.expectErrorIs != nil {
				assert.ErrorIs(t, err, tt.expectErrorIs)
				assert.Equal(t, "departments_name_key", ConstraintName(err))
				assert.Nil(t, dept)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(3), dept.ID)
			}

			mockDB.AssertExpectations(t)
		})
	}
}

func TestRoleRepository_Update(t *testing.T) {
	now := time.Now()
	mockDB := &MockDB{}
	row := NewMockRow([]interface{}{int64(1), "Edited name", "Edited description", now, now}, nil)
	mockDB.On("QueryRow", mock.Anything, sqlPrefix("UPDATE roles SET name = $1, description = $2, updated_at = now() WHERE id = $3"),
		"Edited name", "Edited description", int64(1)).Return(row)

	role, err := NewRoleRepository(mockDB).Update(context.Background(), 1, "Edited name", "Edited description")

	require.NoError(t, err)
	assert.Equal(t, "Edited name", role.Name)
	assert.Equal(t, "Edited description", role.Description)
	mockDB.AssertExpectations(t)
}

func TestRoleRepository_NameTaken(t *testing.T) {
	mockDB := &MockDB{}
	mockDB.On("QueryRow", mock.Anything, "SELECT EXISTS ( SELECT 1 FROM roles WHERE name = $1 AND id <> $2 )", "CEO", int64(4)).
		Return(NewMockRow([]interface{}{true}, nil))

	taken, err := NewRoleRepository(mockDB).NameTaken(context.Background(), "CEO", 4)

	require.NoError(t, err)
	assert.True(t, taken)
	mockDB.AssertExpectations(t)
}

func TestRoleRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		tag           pgconn.CommandTag
		execErr       error
		expectErrorIs error
	}{
		{name: "deleted", tag: NewMockCommandTag(1)},
		{name: "not found", tag: NewMockCommandTag(0), expectErrorIs: ErrNotFound},
		{name: "exec error", tag: NewMockCommandTag(0), execErr: errors.New("conn closed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := &MockDB{}
			mockDB.On("Exec", mock.Anything, "DELETE FROM roles WHERE id = $1", int64(1)).Return(tt.tag, tt.execErr)

			err := NewRoleRepository(mockDB).Delete(context.Background(), 1)

			switch {
			case tt.expectErrorIs != nil:
				assert.ErrorIs(t, err, tt.expectErrorIs)
			case tt.execErr != nil:
				assert.ErrorContains(t, err, "conn closed")
			default:
				assert.NoError(t, err)
			}

			mockDB.AssertExpectations(t)
		})
	}
}

func TestRoleRepository_Count(t *testing.T) {
	mockDB := &MockDB{}
	mockDB.On("QueryRow", mock.Anything, "SELECT COUNT(*) FROM roles").Return(NewMockRow([]interface{}{int64(1)}, nil))

	n, err := NewRoleRepository(mockDB).Count(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
