package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"

	"github.com/adamanr/dreamteam/internal/apperror"
	"github.com/adamanr/dreamteam/internal/entity"
	"github.com/go-chi/chi/v5/middleware"
)

// recoverer turns a panic into the 500 page.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler { //nolint:errorlint
				panic(rec)
			}

			s.logger.Error("Panic while serving request",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("path", r.URL.Path),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)
			s.renderError(w, r, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}

// loadSession resolves the session cookie into an actor on the request
// context. Invalid or revoked sessions continue anonymously.
func (s *Server) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := readSessionCookie(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		actor, err := s.svc.Auth.Authenticate(r.Context(), token)
		if err != nil {
			if apperror.GetCode(err) != apperror.CodeAuth {
				s.logger.Error("Error loading session", slog.String("error", err.Error()))
				s.renderError(w, r, http.StatusInternalServerError)
				return
			}

			s.clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(entity.WithActor(r.Context(), actor)))
	})
}

// requireLogin redirects anonymous visitors to the login page, remembering
// where they were going.
func (s *Server) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if entity.ActorFromContext(r.Context()) == nil {
			redirectToLogin(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireAdmin sends anonymous visitors to the login page and answers 403
// to signed-in employees without the admin flag.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := entity.ActorFromContext(r.Context())
		if actor == nil {
			redirectToLogin(w, r)
			return
		}

		if !actor.IsAdmin {
			s.logger.Warn("Admin route denied",
				slog.String("path", r.URL.Path),
				slog.Int64("employee_id", actor.EmployeeID),
			)
			s.renderError(w, r, http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
}

// safeNext accepts only same-site relative paths as a post-login target.
func safeNext(next string) (string, bool) {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "", false
	}

	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "", false
	}

	return next, true
}
