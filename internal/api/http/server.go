// Package api serves the Dream Team web application.
package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/adamanr/dreamteam/internal/controllers"
	"github.com/adamanr/dreamteam/internal/entity"
	"github.com/go-chi/chi/v5"
)

type AuthService interface {
	Register(ctx context.Context, req entity.RegisterRequest) (*entity.Employee, error)
	Login(ctx context.Context, req entity.LoginRequest) (*entity.Employee, string, error)
	Authenticate(ctx context.Context, token string) (*entity.Actor, error)
	Logout(ctx context.Context, actor *entity.Actor) error
}

type DepartmentService interface {
	List(ctx context.Context, actor *entity.Actor) ([]entity.Department, error)
	Get(ctx context.Context, actor *entity.Actor, id int64) (*entity.Department, error)
	Add(ctx context.Context, actor *entity.Actor, req entity.DepartmentRequest) (*entity.Department, error)
	Edit(ctx context.Context, actor *entity.Actor, id int64, req entity.DepartmentRequest) (*entity.Department, error)
	Delete(ctx context.Context, actor *entity.Actor, id int64) error
}

type RoleService interface {
	List(ctx context.Context, actor *entity.Actor) ([]entity.Role, error)
	Get(ctx context.Context, actor *entity.Actor, id int64) (*entity.Role, error)
	Add(ctx context.Context, actor *entity.Actor, req entity.RoleRequest) (*entity.Role, error)
	Edit(ctx context.Context, actor *entity.Actor, id int64, req entity.RoleRequest) (*entity.Role, error)
	Delete(ctx context.Context, actor *entity.Actor, id int64) error
}

type EmployeeService interface {
	List(ctx context.Context, actor *entity.Actor) ([]entity.Employee, error)
	Get(ctx context.Context, actor *entity.Actor, id int64) (*entity.Employee, error)
	Assign(ctx context.Context, actor *entity.Actor, id int64, req entity.AssignRequest) (*entity.Employee, error)
	Profile(ctx context.Context, actor *entity.Actor) (*entity.Employee, error)
	UpdateProfile(ctx context.Context, actor *entity.Actor, req entity.ProfileRequest) (*entity.Employee, error)
	Export(ctx context.Context, actor *entity.Actor, w io.Writer) error
}

type DashboardService interface {
	Summary(ctx context.Context, actor *entity.Actor) (*controllers.Summary, error)
}

type Services struct {
	Auth        AuthService
	Departments DepartmentService
	Roles       RoleService
	Employees   EmployeeService
	Dashboard   DashboardService
}

// ServicesFromControllers wires the web layer to the controllers.
func ServicesFromControllers(c *controllers.Controllers) Services {
	return Services{
		Auth:        c.AuthController,
		Departments: c.DepartmentController,
		Roles:       c.RoleController,
		Employees:   c.EmployeeController,
		Dashboard:   c.DashboardController,
	}
}

type Options struct {
	SessionTTL    time.Duration
	SecureCookies bool
}

type Server struct {
	svc    Services
	views  *views
	logger *slog.Logger
	opts   Options
}

func NewServer(svc Services, logger *slog.Logger, opts Options) (*Server, error) {
	v, err := loadViews()
	if err != nil {
		return nil, err
	}

	return &Server{
		svc:    svc,
		views:  v,
		logger: logger,
		opts:   opts,
	}, nil
}

// Mount registers every web route on r.
func (s *Server) Mount(r chi.Router) {
	r.NotFound(s.recoverer(s.loadSession(http.HandlerFunc(s.notFound))).ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(s.recoverer)
		r.Use(s.loadSession)

		r.Get("/", s.Homepage)
		r.Get("/register", s.RegisterForm)
		r.Post("/register", s.Register)
		r.Get("/login", s.LoginForm)
		r.Post("/login", s.Login)

		r.Group(func(r chi.Router) {
			r.Use(s.requireLogin)

			r.Get("/logout", s.Logout)
			r.Get("/dashboard", s.Dashboard)
			r.Get("/profile", s.ProfileForm)
			r.Post("/profile", s.UpdateProfile)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)

			r.Get("/dashboard", s.AdminDashboard)

			r.Get("/departments", s.ListDepartments)
			r.Get("/departments/add", s.AddDepartmentForm)
			r.Post("/departments/add", s.AddDepartment)
			r.Get("/departments/edit/{id}", s.EditDepartmentForm)
			r.Post("/departments/edit/{id}", s.EditDepartment)
			r.Get("/departments/delete/{id}", s.DeleteDepartment)

			r.Get("/roles", s.ListRoles)
			r.Get("/roles/add", s.AddRoleForm)
			r.Post("/roles/add", s.AddRole)
			r.Get("/roles/edit/{id}", s.EditRoleForm)
			r.Post("/roles/edit/{id}", s.EditRole)
			r.Get("/roles/delete/{id}", s.DeleteRole)

			r.Get("/employees", s.ListEmployees)
			r.Get("/employees/export", s.ExportEmployees)
			r.Get("/employees/assign/{id}", s.AssignEmployeeForm)
			r.Post("/employees/assign/{id}", s.AssignEmployee)
		})
	})
}

// Handler returns a standalone router serving the web routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Mount(r)
	return r
}
