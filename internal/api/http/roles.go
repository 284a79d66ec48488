package api

import (
	"net/http"
	"strconv"

	"github.com/adamanr/dreamteam/internal/entity"
)

const (
	msgRoleAdded   = "You have successfully added a new role"
	msgRoleEdited  = "You have successfully edited the role"
	msgRoleDeleted = "You have successfully deleted the role"

	rolesPath = "/admin/roles"
)

func (s *Server) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.svc.Roles.List(r.Context(), entity.ActorFromContext(r.Context()))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	items := make([]lookupItem, 0, len(roles))
	for _, role := range roles {
		items = append(items, lookupItem{ID: role.ID, Name: role.Name, Description: role.Description})
	}

	s.render(w, r, http.StatusOK, "lookup_list", &page{
		Title: "Roles",
		Data:  lookupList{Kind: "Role", Base: rolesPath, Items: items},
	})
}

func (s *Server) AddRoleForm(w http.ResponseWriter, r *http.Request) {
	s.renderRoleForm(w, r, nil, &page{}, true, rolesPath+"/add")
}

func (s *Server) AddRole(w http.ResponseWriter, r *http.Request) {
	form := formValues(r, lookupFields...)
	_, err := s.svc.Roles.Add(r.Context(), entity.ActorFromContext(r.Context()), entity.RoleRequest{
		Name:        form["name"],
		Description: form["description"],
	})
	if err != nil {
		s.renderRoleForm(w, r, err, &page{Form: form}, true, rolesPath+"/add")
		return
	}

	s.redirectWithNotice(w, r, rolesPath, NoticeSuccess, msgRoleAdded)
}

func (s *Server) EditRoleForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	role, err := s.svc.Roles.Get(r.Context(), entity.ActorFromContext(r.Context()), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.renderRoleForm(w, r, nil, &page{
		Form: map[string]string{"name": role.Name, "description": role.Description},
	}, false, roleEditPath(id))
}

func (s *Server) EditRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	form := formValues(r, lookupFields...)
	_, err := s.svc.Roles.Edit(r.Context(), entity.ActorFromContext(r.Context()), id, entity.RoleRequest{
		Name:        form["name"],
		Description: form["description"],
	})
	if err != nil {
		s.renderRoleForm(w, r, err, &page{Form: form}, false, roleEditPath(id))
		return
	}

	s.redirectWithNotice(w, r, rolesPath, NoticeSuccess, msgRoleEdited)
}

func (s *Server) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	if err := s.svc.Roles.Delete(r.Context(), entity.ActorFromContext(r.Context()), id); err != nil {
		s.handleError(w, r, err)
		return
	}

	s.redirectWithNotice(w, r, rolesPath, NoticeSuccess, msgRoleDeleted)
}

// renderRoleForm shows the add/edit role form.
func (s *Server) renderRoleForm(w http.ResponseWriter, r *http.Request, err error, p *page, add bool, action string) {
	if !s.formError(w, r, err, p) {
		return
	}

	p.Title = "Edit Role"
	if add {
		p.Title = "Add Role"
	}
	p.Data = lookupForm{Kind: "Role", Base: rolesPath, Action: action, Add: add}

	s.render(w, r, http.StatusOK, "lookup_form", p)
}

func roleEditPath(id int64) string {
	return rolesPath + "/edit/" + strconv.FormatInt(id, 10)
}
