package student

import (
	"time"

	"github.com/trezcool/educrm/core"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// PaymentStatus tracks where the student stands with their course fee.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentOverdue PaymentStatus = "overdue"
)

type Student struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Course        string        `json:"course"`
	Fee           float64       `json:"fee"`
	JoinDate      time.Time     `json:"join_date"` // UTC
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	GroupID       string        `json:"group_id,omitempty"` // empty when unassigned
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name          string        `json:"name" validate:"required"`
	Email         string        `json:"email" validate:"omitempty,email"`
	Phone         string        `json:"phone"`
	Course        string        `json:"course" validate:"required"`
	Fee           float64       `json:"fee" validate:"gte=0"`
	JoinDate      time.Time     `json:"join_date"`
	PaymentStatus PaymentStatus `json:"payment_status" validate:"omitempty,oneof=paid pending overdue"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Course = core.CleanString(ns.Course)
	return core.FieldErrors(core.Validate.Struct(ns))
}

// UpdateStudent defines what information may be provided to modify an existing
// Student. Zero-valued fields are left untouched.
type UpdateStudent struct {
	Name          string        `json:"name"`
	Email         string        `json:"email" validate:"omitempty,email"`
	Phone         string        `json:"phone"`
	Course        string        `json:"course"`
	Fee           *float64      `json:"fee" validate:"omitempty,gte=0"`
	Status        Status        `json:"status" validate:"omitempty,oneof=active inactive"`
	PaymentStatus PaymentStatus `json:"payment_status" validate:"omitempty,oneof=paid pending overdue"`
}

func (us *UpdateStudent) Validate() error {
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.Course = core.CleanString(us.Course)
	return core.FieldErrors(core.Validate.Struct(us))
}
