package api

import (
	"net/http"
	"strconv"

	"github.com/adamanr/dreamteam/internal/apperror"
	"github.com/adamanr/dreamteam/internal/entity"
)

const (
	msgDepartmentAdded   = "You have successfully added a new department"
	msgDepartmentEdited  = "You have successfully edited the department"
	msgDepartmentDeleted = "You have successfully deleted the department"

	departmentsPath = "/admin/departments"
)

var lookupFields = []string{"name", "description"}

// lookupItem is a department or role row in the shared list template.
type lookupItem struct {
	ID          int64
	Name        string
	Description string
}

type lookupList struct {
	Kind  string
	Base  string
	Items []lookupItem
}

type lookupForm struct {
	Kind   string
	Base   string
	Action string
	Add    bool
}

func (s *Server) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := s.svc.Departments.List(r.Context(), entity.ActorFromContext(r.Context()))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	items := make([]lookupItem, 0, len(departments))
	for _, d := range departments {
		items = append(items, lookupItem{ID: d.ID, Name: d.Name, Description: d.Description})
	}

	s.render(w, r, http.StatusOK, "lookup_list", &page{
		Title: "Departments",
		Data:  lookupList{Kind: "Department", Base: departmentsPath, Items: items},
	})
}

func (s *Server) AddDepartmentForm(w http.ResponseWriter, r *http.Request) {
	s.renderDepartmentForm(w, r, nil, &page{}, true, departmentsPath+"/add")
}

func (s *Server) AddDepartment(w http.ResponseWriter, r *http.Request) {
	form := formValues(r, lookupFields...)
	_, err := s.svc.Departments.Add(r.Context(), entity.ActorFromContext(r.Context()), entity.DepartmentRequest{
		Name:        form["name"],
		Description: form["description"],
	})
	if err != nil {
		s.renderDepartmentForm(w, r, err, &page{Form: form}, true, departmentsPath+"/add")
		return
	}

	s.redirectWithNotice(w, r, departmentsPath, NoticeSuccess, msgDepartmentAdded)
}

func (s *Server) EditDepartmentForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	dept, err := s.svc.Departments.Get(r.Context(), entity.ActorFromContext(r.Context()), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.renderDepartmentForm(w, r, nil, &page{
		Form: map[string]string{"name": dept.Name, "description": dept.Description},
	}, false, departmentEditPath(id))
}

func (s *Server) EditDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	form := formValues(r, lookupFields...)
	_, err := s.svc.Departments.Edit(r.Context(), entity.ActorFromContext(r.Context()), id, entity.DepartmentRequest{
		Name:        form["name"],
		Description: form["description"],
	})
	if err != nil {
		s.renderDepartmentForm(w, r, err, &page{Form: form}, false, departmentEditPath(id))
		return
	}

	s.redirectWithNotice(w, r, departmentsPath, NoticeSuccess, msgDepartmentEdited)
}

func (s *Server) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	if err := s.svc.Departments.Delete(r.Context(), entity.ActorFromContext(r.Context()), id); err != nil {
		s.handleError(w, r, err)
		return
	}

	s.redirectWithNotice(w, r, departmentsPath, NoticeSuccess, msgDepartmentDeleted)
}

// renderDepartmentForm shows the add/edit form. A validation error fills the
// field messages, a conflict becomes an error notice, anything else goes to
// handleError.
func (s *Server) renderDepartmentForm(w http.ResponseWriter, r *http.Request, err error, p *page, add bool, action string) {
	if !s.formError(w, r, err, p) {
		return
	}

	p.Title = "Edit Department"
	if add {
		p.Title = "Add Department"
	}
	p.Data = lookupForm{Kind: "Department", Base: departmentsPath, Action: action, Add: add}

	s.render(w, r, http.StatusOK, "lookup_form", p)
}

func departmentEditPath(id int64) string {
	return departmentsPath + "/edit/" + strconv.FormatInt(id, 10)
}

// formError folds a form submission error into p. It reports false when the
// error was fully handled and nothing else should be written.
func (s *Server) formError(w http.ResponseWriter, r *http.Request, err error, p *page) bool {
	switch apperror.GetCode(err) {
	case "":
	case apperror.CodeValidation:
		p.Errors = apperror.FieldErrors(err)
	case apperror.CodeConflict:
		p.Notices = append(p.Notices, Notice{Kind: NoticeError, Message: apperror.Message(err)})
	default:
		s.handleError(w, r, err)
		return false
	}

	return true
}
