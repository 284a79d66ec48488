package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/adamanr/dreamteam/internal/apperror"
	"github.com/adamanr/dreamteam/internal/entity"
)

const (
	msgEmployeeAssigned = "You have successfully assigned a department and role."

	employeesPath = "/admin/employees"
	xlsxMIME      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type assignForm struct {
	Employee    *entity.Employee
	Departments []entity.Department
	Roles       []entity.Role
	Action      string
}

func (s *Server) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.svc.Employees.List(r.Context(), entity.ActorFromContext(r.Context()))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "employees", &page{Title: "Employees", Data: employees})
}

func (s *Server) AssignEmployeeForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	emp, err := s.svc.Employees.Get(r.Context(), entity.ActorFromContext(r.Context()), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	form := map[string]string{}
	if emp.DepartmentID != nil {
		form["department_id"] = strconv.FormatInt(*emp.DepartmentID, 10)
	}
	if emp.RoleID != nil {
		form["role_id"] = strconv.FormatInt(*emp.RoleID, 10)
	}

	s.renderAssignForm(w, r, emp, &page{Form: form})
}

func (s *Server) AssignEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	actor := entity.ActorFromContext(r.Context())
	req := entity.AssignRequest{
		DepartmentID: formInt(r, "department_id"),
		RoleID:       formInt(r, "role_id"),
	}

	if _, err := s.svc.Employees.Assign(r.Context(), actor, id, req); err != nil {
		fields := apperror.FieldErrors(err)
		if fields == nil {
			s.handleError(w, r, err)
			return
		}

		emp, getErr := s.svc.Employees.Get(r.Context(), actor, id)
		if getErr != nil {
			s.handleError(w, r, getErr)
			return
		}

		s.renderAssignForm(w, r, emp, &page{Form: formValues(r, "department_id", "role_id"), Errors: fields})
		return
	}

	s.redirectWithNotice(w, r, employeesPath, NoticeSuccess, msgEmployeeAssigned)
}

func (s *Server) renderAssignForm(w http.ResponseWriter, r *http.Request, emp *entity.Employee, p *page) {
	actor := entity.ActorFromContext(r.Context())

	departments, err := s.svc.Departments.List(r.Context(), actor)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	roles, err := s.svc.Roles.List(r.Context(), actor)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	p.Title = "Assign Employee"
	p.Data = assignForm{
		Employee:    emp,
		Departments: departments,
		Roles:       roles,
		Action:      employeesPath + "/assign/" + strconv.FormatInt(emp.ID, 10),
	}

	s.render(w, r, http.StatusOK, "assign", p)
}

// ExportEmployees downloads the directory as an XLSX workbook.
func (s *Server) ExportEmployees(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.svc.Employees.Export(r.Context(), entity.ActorFromContext(r.Context()), &buf); err != nil {
		s.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", `attachment; filename="employees.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("Error writing export", slog.String("error", err.Error()))
	}
}
