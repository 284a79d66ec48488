package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/adamanr/dreamteam/internal/apperror"
	"github.com/adamanr/dreamteam/internal/entity"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layoutTemplate = "templates/layout.html"

type views struct {
	pages map[string]*template.Template
}

func loadViews() (*views, error) {
	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	v := &views{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		if file == layoutTemplate {
			continue
		}

		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, parseErr := template.New(name).ParseFS(templatesFS, layoutTemplate, file)
		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}
		v.pages[name] = tmpl
	}

	return v, nil
}

// page is the data every template receives.
type page struct {
	Title   string
	Actor   *entity.Actor
	Notices []Notice
	Form    map[string]string
	Errors  map[string]string
	Data    any
}

type errorPage struct {
	Status  int
	Message string
}

var errorMessages = map[int]string{
	http.StatusForbidden:           "You do not have sufficient permissions to access this page.",
	http.StatusNotFound:            "The page you're looking for doesn't exist.",
	http.StatusInternalServerError: "The server encountered an internal error. That's all we know.",
}

// render executes the named page into a buffer first so a template failure
// still produces a clean 500 response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, p *page) {
	tmpl, ok := s.views.pages[name]
	if !ok {
		s.logger.Error("Unknown template", slog.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	p.Actor = entity.ActorFromContext(r.Context())
	if notice, ok := s.takeFlash(w, r); ok {
		p.Notices = append([]Notice{notice}, p.Notices...)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		s.logger.Error("Error rendering template", slog.String("template", name), slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("Error writing response", slog.String("error", err.Error()))
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int) {
	s.render(w, r, status, "error", &page{
		Title: fmt.Sprintf("%d Error", status),
		Data:  errorPage{Status: status, Message: errorMessages[status]},
	})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusNotFound)
}

// handleError renders the page matching a failed service call. Validation
// and conflict errors are handled by the form handlers before this.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch apperror.GetCode(err) {
	case apperror.CodeNotFound:
		s.renderError(w, r, http.StatusNotFound)
	case apperror.CodePermission:
		s.renderError(w, r, http.StatusForbidden)
	case apperror.CodeAuth:
		s.flash(w, NoticeError, apperror.Message(err))
		redirectToLogin(w, r)
	default:
		s.logger.Error("Request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		s.renderError(w, r, http.StatusInternalServerError)
	}
}

// redirectWithNotice flashes message and sends the browser to target.
func (s *Server) redirectWithNotice(w http.ResponseWriter, r *http.Request, target string, kind NoticeKind, message string) {
	s.flash(w, kind, message)
	http.Redirect(w, r, target, http.StatusFound)
}
