package entity

import (
	"time"
)

type Employee struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`

	DepartmentID *int64      `json:"department_id"`
	RoleID       *int64      `json:"role_id"`
	Department   *Department `json:"department,omitempty"`
	Role         *Role       `json:"role,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns "First Last", falling back to the username for accounts
// created without names (the bootstrap admin).
func (e Employee) FullName() string {
	switch {
	case e.FirstName != "" && e.LastName != "":
		return e.FirstName + " " + e.LastName
	case e.FirstName != "":
		return e.FirstName
	case e.LastName != "":
		return e.LastName
	default:
		return e.Username
	}
}

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email,max=60"`
	Username        string `json:"username" validate:"required,max=60"`
	FirstName       string `json:"first_name" validate:"required,max=60"`
	LastName        string `json:"last_name" validate:"required,max=60"`
	Password        string `json:"password" validate:"required,eqfield=ConfirmPassword"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=60"`
	Password string `json:"password" validate:"required"`
}

type ProfileRequest struct {
	FirstName string `json:"first_name" validate:"required,max=60"`
	LastName  string `json:"last_name" validate:"required,max=60"`
}

type AssignRequest struct {
	DepartmentID int64 `json:"department_id" validate:"required,gt=0"`
	RoleID       int64 `json:"role_id" validate:"required,gt=0"`
}

type AdminRequest struct {
	Email    string `json:"email" validate:"required,email,max=60"`
	Username string `json:"username" validate:"required,max=60"`
	Password string `json:"password" validate:"required"`
}
