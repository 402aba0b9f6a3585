package points

import (
	"time"

	"github.com/trezcool/educrm/core"
)

// StudentPoint is one signed entry of the points ledger. Entries are never
// mutated after creation; a student's balance is the sum of their entries.
type StudentPoint struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	GroupID   string    `json:"group_id"`
	Points    int       `json:"points"` // negative for spend entries
	Reason    string    `json:"reason"`
	Date      time.Time `json:"date"` // UTC
}

// NewStudentPoint contains information needed to append an earn entry.
type NewStudentPoint struct {
	StudentID string    `json:"student_id" validate:"required"`
	GroupID   string    `json:"group_id"`
	Points    int       `json:"points" validate:"required"`
	Reason    string    `json:"reason" validate:"required"`
	Date      time.Time `json:"date"`
}

func (np *NewStudentPoint) Validate() error {
	np.Reason = core.CleanString(np.Reason)
	return core.FieldErrors(core.Validate.Struct(np))
}
