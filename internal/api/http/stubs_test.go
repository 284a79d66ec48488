package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/adamanr/dreamteam/internal/apperror"
	"github.com/adamanr/dreamteam/internal/controllers"
	"github.com/adamanr/dreamteam/internal/entity"
	"github.com/stretchr/testify/require"
)

const (
	adminToken = "admin-token"
	userToken  = "user-token"
)

var (
	adminActor = &entity.Actor{EmployeeID: 1, Username: "admin", IsAdmin: true, SessionID: "a"}
	userActor  = &entity.Actor{EmployeeID: 2, Username: "test_user", SessionID: "u"}
)

type stubAuth struct {
	register func(ctx context.Context, req entity.RegisterRequest) (*entity.Employee, error)
	login    func(ctx context.Context, req entity.LoginRequest) (*entity.Employee, string, error)
	logout   func(ctx context.Context, actor *entity.Actor) error
}

func (s *stubAuth) Register(ctx context.Context, req entity.RegisterRequest) (*entity.Employee, error) {
	return s.register(ctx, req)
}

func (s *stubAuth) Login(ctx context.Context, req entity.LoginRequest) (*entity.Employee, string, error) {
	return s.login(ctx, req)
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (*entity.Actor, error) {
	switch token {
	case adminToken:
		return adminActor, nil
	case userToken:
		return userActor, nil
	default:
		return nil, apperror.Auth("Your session has expired. Please log in again.")
	}
}

func (s *stubAuth) Logout(ctx context.Context, actor *entity.Actor) error {
	return s.logout(ctx, actor)
}

type stubDepartments struct {
	list   func(ctx context.Context, actor *entity.Actor) ([]entity.Department, error)
	get    func(ctx context.Context, actor *entity.Actor, id int64) (*entity.Department, error)
	add    func(ctx context.Context, actor *entity.Actor, req entity.DepartmentRequest) (*entity.Department, error)
	edit   func(ctx context.Context, actor *entity.Actor, id int64, req entity.DepartmentRequest) (*entity.Department, error)
	delete func(ctx context.Context, actor *entity.Actor, id int64) error
}

func (s *stubDepartments) List(ctx context.Context, actor *entity.Actor) ([]entity.Department, error) {
	return s.list(ctx, actor)
}

func (s *stubDepartments) Get(ctx context.Context, actor *entity.Actor, id int64) (*entity.Department, error) {
	return s.get(ctx, actor, id)
}

func (s *stubDepartments) Add(ctx context.Context, actor *entity.Actor, req entity.DepartmentRequest) (*entity.Department, error) {
	return s.add(ctx, actor, req)
}

func (s *stubDepartments) Edit(ctx context.Context, actor *entity.Actor, id int64, req entity.DepartmentRequest) (*entity.Department, error) {
	return s.edit(ctx, actor, id, req)
}

func (s *stubDepartments) Delete(ctx context.Context, actor *entity.Actor, id int64) error {
	return s.delete(ctx, actor, id)
}

type stubRoles struct {
	list   func(ctx context.Context, actor *entity.Actor) ([]entity.Role, error)
	get    func(ctx context.Context, actor *entity.Actor, id int64) (*entity.Role, error)
	add    func(ctx context.Context, actor *entity.Actor, req entity.RoleRequest) (*entity.Role, error)
	edit   func(ctx context.Context, actor *entity.Actor, id int64, req entity.RoleRequest) (*entity.Role, error)
	delete func(ctx context.Context, actor *entity.Actor, id int64) error
}

func (s *stubRoles) List(ctx context.Context, actor *entity.Actor) ([]entity.Role, error) {
	return s.list(ctx, actor)
}

func (s *stubRoles) Get(ctx context.Context, actor *entity.Actor, id int64) (*entity.Role, error) {
	return s.get(ctx, actor, id)
}

func (s *stubRoles) Add(ctx context.Context, actor *entity.Actor, req entity.RoleRequest) (*entity.Role, error) {
	return s.add(ctx, actor, req)
}

func (s *stubRoles) Edit(ctx context.Context, actor *entity.Actor, id int64, req entity.RoleRequest) (*entity.Role, error) {
	return s.edit(ctx, actor, id, req)
}

func (s *stubRoles) Delete(ctx context.Context, actor *entity.Actor, id int64) error {
	return s.delete(ctx, actor, id)
}

type stubEmployees struct {
	list          func(ctx context.Context, actor *entity.Actor) ([]entity.Employee, error)
	get           func(ctx context.Context, actor *entity.Actor, id int64) (*entity.Employee, error)
	assign        func(ctx context.Context, actor *entity.Actor, id int64, req entity.AssignRequest) (*entity.Employee, error)
	profile       func(ctx context.Context, actor *entity.Actor) (*entity.Employee, error)
	updateProfile func(ctx context.Context, actor *entity.Actor, req entity.ProfileRequest) (*entity.Employee, error)
	export        func(ctx context.Context, actor *entity.Actor, w io.Writer) error
}

func (s *stubEmployees) List(ctx context.Context, actor *entity.Actor) ([]entity.Employee, error) {
	return s.list(ctx, actor)
}

func (s *stubEmployees) Get(ctx context.Context, actor *entity.Actor, id int64) (*entity.Employee, error) {
	return s.get(ctx, actor, id)
}

func (s *stubEmployees) Assign(ctx context.Context, actor *entity.Actor, id int64, req entity.AssignRequest) (*entity.Employee, error) {
	return s.assign(ctx, actor, id, req)
}

func (s *stubEmployees) Profile(ctx context.Context, actor *entity.Actor) (*entity.Employee, error) {
	return s.profile(ctx, actor)
}

func (s *stubEmployees) UpdateProfile(ctx context.Context, actor *entity.Actor, req entity.ProfileRequest) (*entity.Employee, error) {
	return s.updateProfile(ctx, actor, req)
}

func (s *stubEmployees) Export(ctx context.Context, actor *entity.Actor, w io.Writer) error {
	return s.export(ctx, actor, w)
}

type stubDashboard struct {
	summary func(ctx context.Context, actor *entity.Actor) (*controllers.Summary, error)
}

func (s *stubDashboard) Summary(ctx context.Context, actor *entity.Actor) (*controllers.Summary, error) {
	return s.summary(ctx, actor)
}

type testEnv struct {
	auth        *stubAuth
	departments *stubDepartments
	roles       *stubRoles
	employees   *stubEmployees
	dashboard   *stubDashboard
	handler     http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		auth:        &stubAuth{},
		departments: &stubDepartments{},
		roles:       &stubRoles{},
		employees:   &stubEmployees{},
		dashboard:   &stubDashboard{},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := NewServer(Services{
		Auth:        env.auth,
		Departments: env.departments,
		Roles:       env.roles,
		Employees:   env.employees,
		Dashboard:   env.dashboard,
	}, logger, Options{SessionTTL: time.Hour})
	require.NoError(t, err)

	env.handler = srv.Handler()
	return env
}

// do performs a request, optionally with a session token and form body.
func (e *testEnv) do(method, target, token string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
