package activity

import "time"

// Type tags an activity entry with the domain event family it came from.
type Type string

const (
	TypeRegistration Type = "registration"
	TypePayment      Type = "payment"
	TypeProduct      Type = "product"
	TypeTeacher      Type = "teacher"
	TypeGroup        Type = "group"
	TypeLesson       Type = "lesson"
	TypeAttendance   Type = "attendance"
	TypePoint        Type = "point"
)

// Activity is a single entry of the append-only audit trail.
// Names embedded in Message are point-in-time copies: they do not change when
// the source entity is later renamed.
type Activity struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"` // UTC
}
