package billing

import (
	"time"

	"github.com/trezcool/educrm/core"
)

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	MethodCash PaymentMethod = "cash"
	MethodCard PaymentMethod = "card"
	MethodBank PaymentMethod = "bank"
)

// Payment records one fee payment. StudentName is a point-in-time copy kept
// for display: it does not follow later renames of the student.
type Payment struct {
	ID          string        `json:"id"`
	StudentID   string        `json:"student_id"`
	StudentName string        `json:"student_name"`
	Amount      float64       `json:"amount"`
	Date        time.Time     `json:"date"` // UTC
	Status      PaymentStatus `json:"status"`
	Method      PaymentMethod `json:"method"`
}

// Product is an item of the points shop.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Image       string  `json:"image,omitempty"`
}

// NewPayment contains information needed to record a payment.
type NewPayment struct {
	StudentID   string        `json:"student_id" validate:"required"`
	StudentName string        `json:"student_name" validate:"required"`
	Amount      float64       `json:"amount" validate:"gt=0"`
	Date        time.Time     `json:"date"`
	Status      PaymentStatus `json:"status" validate:"required,oneof=completed pending failed"`
	Method      PaymentMethod `json:"method" validate:"required,oneof=cash card bank"`
}

func (np *NewPayment) Validate() error {
	np.StudentName = core.CleanString(np.StudentName)
	return core.FieldErrors(core.Validate.Struct(np))
}

// UpdatePayment defines what information may be provided to modify an
// existing Payment. Zero-valued fields are left untouched.
type UpdatePayment struct {
	Amount *float64      `json:"amount" validate:"omitempty,gt=0"`
	Status PaymentStatus `json:"status" validate:"omitempty,oneof=completed pending failed"`
	Method PaymentMethod `json:"method" validate:"omitempty,oneof=cash card bank"`
}

func (up *UpdatePayment) Validate() error {
	return core.FieldErrors(core.Validate.Struct(up))
}

// NewProduct contains information needed to add a shop product.
type NewProduct struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Image       string  `json:"image"`
}

func (np *NewProduct) Validate() error {
	np.Name = core.CleanString(np.Name)
	np.Description = core.CleanString(np.Description)
	np.Category = core.CleanString(np.Category)
	return core.FieldErrors(core.Validate.Struct(np))
}

// UpdateProduct defines what information may be provided to modify an
// existing Product. Zero-valued fields are left untouched.
type UpdateProduct struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    string   `json:"category"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Image       string   `json:"image"`
}

func (up *UpdateProduct) Validate() error {
	up.Name = core.CleanString(up.Name)
	up.Description = core.CleanString(up.Description)
	up.Category = core.CleanString(up.Category)
	return core.FieldErrors(core.Validate.Struct(up))
}
