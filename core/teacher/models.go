package teacher

import (
	"time"

	"github.com/trezcool/educrm/core"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Teacher struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Subject      string    `json:"subject"`
	Salary       float64   `json:"salary"`
	StudentCount int       `json:"student_count"`
	JoinDate     time.Time `json:"join_date"` // UTC
	Status       Status    `json:"status"`
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	Name     string    `json:"name" validate:"required"`
	Email    string    `json:"email" validate:"omitempty,email"`
	Phone    string    `json:"phone"`
	Subject  string    `json:"subject" validate:"required"`
	Salary   float64   `json:"salary" validate:"gte=0"`
	JoinDate time.Time `json:"join_date"`
}

func (nt *NewTeacher) Validate() error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Subject = core.CleanString(nt.Subject)
	return core.FieldErrors(core.Validate.Struct(nt))
}

// UpdateTeacher defines what information may be provided to modify an existing
// Teacher. Zero-valued fields are left untouched.
type UpdateTeacher struct {
	Name         string   `json:"name"`
	Email        string   `json:"email" validate:"omitempty,email"`
	Phone        string   `json:"phone"`
	Subject      string   `json:"subject"`
	Salary       *float64 `json:"salary" validate:"omitempty,gte=0"`
	StudentCount *int     `json:"student_count" validate:"omitempty,gte=0"`
	Status       Status   `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (ut *UpdateTeacher) Validate() error {
	ut.Name = core.CleanString(ut.Name)
	ut.Email = core.CleanString(ut.Email, true /* lower */)
	ut.Subject = core.CleanString(ut.Subject)
	return core.FieldErrors(core.Validate.Struct(ut))
}
