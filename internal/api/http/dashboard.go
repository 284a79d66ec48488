package api

import (
	"net/http"

	"github.com/adamanr/dreamteam/internal/apperror"
	"github.com/adamanr/dreamteam/internal/entity"
)

const msgProfileUpdated = "You have successfully updated your profile."

var profileFields = []string{"first_name", "last_name"}

func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "dashboard", &page{Title: "Dashboard"})
}

func (s *Server) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.Dashboard.Summary(r.Context(), entity.ActorFromContext(r.Context()))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "admin_dashboard", &page{Title: "Dashboard", Data: summary})
}

func (s *Server) ProfileForm(w http.ResponseWriter, r *http.Request) {
	emp, err := s.svc.Employees.Profile(r.Context(), entity.ActorFromContext(r.Context()))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "profile", &page{
		Title: "Profile",
		Form:  map[string]string{"first_name": emp.FirstName, "last_name": emp.LastName},
		Data:  emp,
	})
}

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor := entity.ActorFromContext(r.Context())
	form := formValues(r, profileFields...)

	_, err := s.svc.Employees.UpdateProfile(r.Context(), actor, entity.ProfileRequest{
		FirstName: form["first_name"],
		LastName:  form["last_name"],
	})
	if err != nil {
		fields := apperror.FieldErrors(err)
		if fields == nil {
			s.handleError(w, r, err)
			return
		}

		emp, profileErr := s.svc.Employees.Profile(r.Context(), actor)
		if profileErr != nil {
			s.handleError(w, r, profileErr)
			return
		}

		s.render(w, r, http.StatusOK, "profile", &page{Title: "Profile", Form: form, Errors: fields, Data: emp})
		return
	}

	s.redirectWithNotice(w, r, "/profile", NoticeSuccess, msgProfileUpdated)
}
