package api

import (
	"log/slog"
	"net/http"

	"github.com/adamanr/dreamteam/internal/apperror"
	"github.com/adamanr/dreamteam/internal/entity"
)

const (
	msgRegistered = "You have successfully registered! You may now login."
	msgLoggedOut  = "You have successfully been logged out."
)

var (
	registerFields = []string{"email", "username", "first_name", "last_name"}
	loginFields    = []string{"email"}
)

func (s *Server) Homepage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home", &page{Title: "Home"})
}

func (s *Server) RegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register", &page{Title: "Register"})
}

// Register creates an account from the registration form.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	form := formValues(r, registerFields...)
	req := entity.RegisterRequest{
		Email:           form["email"],
		Username:        form["username"],
		FirstName:       form["first_name"],
		LastName:        form["last_name"],
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	if _, err := s.svc.Auth.Register(r.Context(), req); err != nil {
		if fields := apperror.FieldErrors(err); fields != nil {
			s.render(w, r, http.StatusOK, "register", &page{Title: "Register", Form: form, Errors: fields})
			return
		}

		s.handleError(w, r, err)
		return
	}

	s.redirectWithNotice(w, r, "/login", NoticeSuccess, msgRegistered)
}

func (s *Server) LoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login", &page{
		Title: "Login",
		Form:  map[string]string{"next": r.URL.Query().Get("next")},
	})
}

// Login opens a session and sends the employee to the page they asked for,
// or to their dashboard.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	form := formValues(r, loginFields...)
	form["next"] = r.PostFormValue("next")
	if form["next"] == "" {
		form["next"] = r.URL.Query().Get("next")
	}

	emp, token, err := s.svc.Auth.Login(r.Context(), entity.LoginRequest{
		Email:    form["email"],
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		p := &page{Title: "Login", Form: form}

		switch apperror.GetCode(err) {
		case apperror.CodeValidation:
			p.Errors = apperror.FieldErrors(err)
		case apperror.CodeAuth:
			p.Notices = []Notice{{Kind: NoticeError, Message: apperror.Message(err)}}
		default:
			s.handleError(w, r, err)
			return
		}

		s.render(w, r, http.StatusOK, "login", p)
		return
	}

	s.writeSessionCookie(w, token)
	s.logger.Info("Employee logged in", slog.Int64("id", emp.ID), slog.Bool("is_admin", emp.IsAdmin))

	target, ok := safeNext(form["next"])
	if !ok {
		target = "/dashboard"
		if emp.IsAdmin {
			target = "/admin/dashboard"
		}
	}

	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Auth.Logout(r.Context(), entity.ActorFromContext(r.Context())); err != nil {
		s.handleError(w, r, err)
		return
	}

	s.clearSessionCookie(w)
	s.redirectWithNotice(w, r, "/login", NoticeSuccess, msgLoggedOut)
}
