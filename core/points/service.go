package points

import (
	"errors"
	"time"

	"github.com/trezcool/educrm/core"
	"github.com/trezcool/educrm/core/activity"
)

var (
	// errors
	ErrInsufficientPoints = errors.New("insufficient points")
)

type (
	Repository interface {
		// CreateStudentPoint appends an entry to the ledger.
		CreateStudentPoint(ent StudentPoint) (StudentPoint, error)
		QueryAllPoints() ([]StudentPoint, error)
		QueryPointsByStudentID(studentID string) ([]StudentPoint, error)
		QueryPointsByGroupID(groupID string) ([]StudentPoint, error)
		// SpendStudentPoints appends a negative entry if (and only if) the
		// student's balance covers points. The balance check and the append
		// happen atomically: concurrent spends cannot interleave.
		// Returns ErrInsufficientPoints otherwise, leaving the ledger untouched.
		SpendStudentPoints(studentID string, points int, reason string, date time.Time) (StudentPoint, error)
	}

	Service struct {
		repo        Repository
		activitySvc *activity.Service
	}
)

func NewService(repo Repository, activitySvc *activity.Service) *Service {
	return &Service{repo: repo, activitySvc: activitySvc}
}

// Award appends an earn entry to the ledger.
func (svc *Service) Award(np NewStudentPoint) (StudentPoint, error) {
	if err := np.Validate(); err != nil {
		return StudentPoint{}, err
	}
	ent := StudentPoint{
		StudentID: np.StudentID,
		GroupID:   np.GroupID,
		Points:    np.Points,
		Reason:    np.Reason,
		Date:      np.Date.UTC(),
	}
	ent, err := svc.repo.CreateStudentPoint(ent)
	if err != nil {
		return StudentPoint{}, err
	}
	if _, err := svc.activitySvc.Log(activity.TypePoint, "Assigned %d points for %q", ent.Points, ent.Reason); err != nil {
		return StudentPoint{}, err
	}
	return ent, nil
}

// Spend deducts points from the student's balance by appending a negative
// ledger entry. Fails with ErrInsufficientPoints when the balance does not
// cover the amount; nothing is recorded in that case.
func (svc *Service) Spend(studentID string, amount int, item string) (StudentPoint, error) {
	item = core.CleanString(item)
	if studentID == "" || amount <= 0 || item == "" {
		return StudentPoint{}, core.NewValidationError(errors.New("invalid spend request"))
	}
	ent, err := svc.repo.SpendStudentPoints(studentID, amount, "Bought "+item, time.Now().UTC())
	if err != nil {
		return StudentPoint{}, err
	}
	if _, err := svc.activitySvc.Log(activity.TypePoint, "Spent %d points on %q", amount, item); err != nil {
		return StudentPoint{}, err
	}
	return ent, nil
}

func (svc *Service) StudentEntries(studentID string) ([]StudentPoint, error) {
	return svc.repo.QueryPointsByStudentID(studentID)
}

// TotalPoints returns the student's balance: the sum of all their ledger
// entries, spend entries included. It may be negative; no floor is enforced
// here (Spend is where the check lives).
func (svc *Service) TotalPoints(studentID string) (int, error) {
	entries, err := svc.repo.QueryPointsByStudentID(studentID)
	if err != nil {
		return 0, err
	}
	return Sum(entries), nil
}

// AveragePoints returns the group's per-entry average (not per-student),
// rounded half-up.
func (svc *Service) AveragePoints(groupID string) (int, error) {
	entries, err := svc.repo.QueryPointsByGroupID(groupID)
	if err != nil {
		return 0, err
	}
	return Average(entries), nil
}

// Sum adds up the given ledger entries.
func Sum(entries []StudentPoint) int {
	var total int
	for _, ent := range entries {
		total += ent.Points
	}
	return total
}

// Average returns the mean points per entry rounded half-up, or 0 when there
// are no entries.
func Average(entries []StudentPoint) int {
	if len(entries) == 0 {
		return 0
	}
	return core.RoundHalfUp(float64(Sum(entries)) / float64(len(entries)))
}
