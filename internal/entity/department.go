package entity

import "time"

type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// DepartmentRequest is the add/edit form payload.
type DepartmentRequest struct {
	Name        string `json:"name" validate:"required,max=60"`
	Description string `json:"description" validate:"max=200"`
}
