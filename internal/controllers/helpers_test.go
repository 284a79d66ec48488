package controllers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/adamanr/dreamteam/internal/config"
	"github.com/adamanr/dreamteam/internal/entity"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

const testSecret = "test-secret-key"

var (
	adminActor    = &entity.Actor{EmployeeID: 1, Username: "admin", IsAdmin: true, SessionID: "admin-session"}
	employeeActor = &entity.Actor{EmployeeID: 2, Username: "test_user", SessionID: "user-session"}
)

// MockEmployeeRepository represents a mock employee store.
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, emp entity.Employee) (*entity.Employee, error) {
	args := m.Called(ctx, emp)
	created, _ := args.Get(0).(*entity.Employee)
	return created, args.Error(1)
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id int64) (*entity.Employee, error) {
	args := m.Called(ctx, id)
	emp, _ := args.Get(0).(*entity.Employee)
	return emp, args.Error(1)
}

func (m *MockEmployeeRepository) GetByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	args := m.Called(ctx, email)
	emp, _ := args.Get(0).(*entity.Employee)
	return emp, args.Error(1)
}

func (m *MockEmployeeRepository) List(ctx context.Context) ([]entity.Employee, error) {
	args := m.Called(ctx)
	employees, _ := args.Get(0).([]entity.Employee)
	return employees, args.Error(1)
}

func (m *MockEmployeeRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) Assign(ctx context.Context, id, departmentID, roleID int64) error {
	return m.Called(ctx, id, departmentID, roleID).Error(0)
}

func (m *MockEmployeeRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName string) error {
	return m.Called(ctx, id, firstName, lastName).Error(0)
}

func (m *MockEmployeeRepository) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	return m.Called(ctx, id, isAdmin).Error(0)
}

// MockDepartmentRepository represents a mock department store.
type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) List(ctx context.Context) ([]entity.Department, error) {
	args := m.Called(ctx)
	departments, _ := args.Get(0).([]entity.Department)
	return departments, args.Error(1)
}

func (m *MockDepartmentRepository) GetByID(ctx context.Context, id int64) (*entity.Department, error) {
	args := m.Called(ctx, id)
	dept, _ := args.Get(0).(*entity.Department)
	return dept, args.Error(1)
}

func (m *MockDepartmentRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDepartmentRepository) Create(ctx context.Context, name, description string) (*entity.Department, error) {
	args := m.Called(ctx, name, description)
	dept, _ := args.Get(0).(*entity.Department)
	return dept, args.Error(1)
}

func (m *MockDepartmentRepository) Update(ctx context.Context, id int64, name, description string) (*entity.Department, error) {
	args := m.Called(ctx, id, name, description)
	dept, _ := args.Get(0).(*entity.Department)
	return dept, args.Error(1)
}

func (m *MockDepartmentRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDepartmentRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockRoleRepository represents a mock role store.
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) List(ctx context.Context) ([]entity.Role, error) {
	args := m.Called(ctx)
	roles, _ := args.Get(0).([]entity.Role)
	return roles, args.Error(1)
}

func (m *MockRoleRepository) GetByID(ctx context.Context, id int64) (*entity.Role, error) {
	args := m.Called(ctx, id)
	role, _ := args.Get(0).(*entity.Role)
	return role, args.Error(1)
}

func (m *MockRoleRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleRepository) Create(ctx context.Context, name, description string) (*entity.Role, error) {
	args := m.Called(ctx, name, description)
	role, _ := args.Get(0).(*entity.Role)
	return role, args.Error(1)
}

func (m *MockRoleRepository) Update(ctx context.Context, id int64, name, description string) (*entity.Role, error) {
	args := m.Called(ctx, id, name, description)
	role, _ := args.Get(0).(*entity.Role)
	return role, args.Error(1)
}

func (m *MockRoleRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRoleRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockRedis represents a mock Redis client.
type MockRedis struct {
	mock.Mock
}

func (m *MockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return redis.NewStatusResult("OK", args.Error(0))
}

func (m *MockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return redis.NewStringResult(args.String(0), args.Error(1))
}

func (m *MockRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return redis.NewIntResult(int64(len(keys)), args.Error(0))
}

type testMocks struct {
	employees   *MockEmployeeRepository
	departments *MockDepartmentRepository
	roles       *MockRoleRepository
	redis       *MockRedis
}

func newTestMocks() *testMocks {
	return &testMocks{
		employees:   new(MockEmployeeRepository),
		departments: new(MockDepartmentRepository),
		roles:       new(MockRoleRepository),
		redis:       new(MockRedis),
	}
}

func (m *testMocks) assertExpectations(t mock.TestingT) {
	m.employees.AssertExpectations(t)
	m.departments.AssertExpectations(t)
	m.roles.AssertExpectations(t)
	m.redis.AssertExpectations(t)
}

func CreateTestDependencies(m *testMocks) *Dependens {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

	cfg := &config.Config{}
	cfg.Server.SessionSecret = testSecret
	cfg.Redis.SessionTTL = time.Hour

	return &Dependens{
		Employees:   m.employees,
		Departments: m.departments,
		Roles:       m.roles,
		Redis:       m.redis,
		Validate:    NewValidator(),
		Logger:      logger,
		Config:      cfg,
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}
