package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockDB represents a mock database connection.
type MockDB struct {
	mock.Mock
}

func (m *MockDB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	mockArgs := append([]interface{}{ctx, sql}, args...)
	callArgs := m.Called(mockArgs...)
	return callArgs.Get(0).(pgx.Rows), callArgs.Error(1)
}

func (m *MockDB) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	mockArgs := append([]interface{}{ctx, sql}, args...)
	callArgs := m.Called(mockArgs...)
	return callArgs.Get(0).(pgx.Row)
}

func (m *MockDB) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	mockArgs := append([]interface{}{ctx, sql}, args...)
	callArgs := m.Called(mockArgs...)
	return callArgs.Get(0).(pgconn.CommandTag), callArgs.Error(1)
}

// MockRow represents a mock database row whose values are assigned to the
// scan destinations by position.
type MockRow struct {
	data []interface{}
	err  error
}

func NewMockRow(data []interface{}, err error) *MockRow {
	return &MockRow{data: data, err: err}
}

func (m *MockRow) Scan(dest ...interface{}) error {
	if m.err != nil {
		return m.err
	}

	return assign(m.data, dest)
}

// MockRows represents mock database rows.
type MockRows struct {
	rows [][]interface{}
	pos  int
	err  error
}

func NewMockRows(rows [][]interface{}, err error) *MockRows {
	return &MockRows{rows: rows, pos: -1, err: err}
}

func (m *MockRows) Next() bool {
	if m.err != nil {
		return false
	}
	m.pos++
	return m.pos < len(m.rows)
}

func (m *MockRows) Close() {}

func (m *MockRows) Scan(dest ...interface{}) error {
	if m.pos >= len(m.rows) {
		return nil
	}

	return assign(m.rows[m.pos], dest)
}

func (m *MockRows) Err() error {
	return m.err
}

func (m *MockRows) CommandTag() pgconn.CommandTag {
	return pgconn.NewCommandTag("")
}

func (m *MockRows) FieldDescriptions() []pgconn.FieldDescription {
	return nil
}

func (m *MockRows) Values() ([]interface{}, error) {
	if m.pos >= len(m.rows) {
		return nil, nil
	}
	return m.rows[m.pos], nil
}

func (m *MockRows) RawValues() [][]byte {
	return nil
}

func (m *MockRows) Conn() *pgx.Conn {
	return nil
}

func assign(data []interface{}, dest []interface{}) error {
	if len(data) != len(dest) {
		return fmt.Errorf("mock scan: %d values for %d destinations", len(data), len(dest))
	}

	for i, val := range data {
		switch d := dest[i].(type) {
		case *int64:
			*d = val.(int64)
		case **int64:
			*d = val.(*int64)
		case *string:
			*d = val.(string)
		case **string:
			*d = val.(*string)
		case *bool:
			*d = val.(bool)
		case *time.Time:
			*d = val.(time.Time)
		default:
			return fmt.Errorf("mock scan: unsupported destination %T", dest[i])
		}
	}

	return nil
}

func NewMockCommandTag(rowsAffected int64) pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", rowsAffected))
}

func Int64Ptr(v int64) *int64 {
	return &v
}

func StringPtr(s string) *string {
	return &s
}
