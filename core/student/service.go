package student

import (
	"errors"

	"github.com/trezcool/educrm/core/activity"
)

var (
	// errors
	ErrNotFound = errors.New("student not found")
)

type (
	Repository interface {
		CreateStudent(std Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		QueryStudentsByGroupID(groupID string) ([]Student, error)
		GetStudentByID(id string) (Student, error)
		// UpdateStudent merges the set fields of std into the stored entity.
		UpdateStudent(std Student, fee *float64) (Student, error)
		DeleteStudentByID(id string) error
	}

	Service struct {
		repo        Repository
		activitySvc *activity.Service
	}
)

func NewService(repo Repository, activitySvc *activity.Service) *Service {
	return &Service{repo: repo, activitySvc: activitySvc}
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}
	paymentStatus := ns.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = PaymentPending
	}
	std := Student{
		Name:          ns.Name,
		Email:         ns.Email,
		Phone:         ns.Phone,
		Course:        ns.Course,
		Fee:           ns.Fee,
		JoinDate:      ns.JoinDate.UTC(),
		Status:        StatusActive,
		PaymentStatus: paymentStatus,
	}
	std, err := svc.repo.CreateStudent(std)
	if err != nil {
		return Student{}, err
	}
	if _, err := svc.activitySvc.Log(activity.TypeRegistration, "%s registered for %s", std.Name, std.Course); err != nil {
		return Student{}, err
	}
	return std, nil
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) QueryByGroup(groupID string) ([]Student, error) {
	return svc.repo.QueryStudentsByGroupID(groupID)
}

func (svc *Service) GetByID(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) Update(id string, us UpdateStudent) (Student, error) {
	if err := us.Validate(); err != nil {
		return Student{}, err
	}
	std := Student{
		ID:            id,
		Name:          us.Name,
		Email:         us.Email,
		Phone:         us.Phone,
		Course:        us.Course,
		Status:        us.Status,
		PaymentStatus: us.PaymentStatus,
	}
	return svc.repo.UpdateStudent(std, us.Fee)
}

// Delete removes the student; it is a no-op if the id is unknown.
// Group membership is not reconciled here: a stale entry in Group.StudentIDs
// is tolerated until the next assignment replaces the list.
// todo: reconcile group membership on delete? (needs product call)
func (svc *Service) Delete(id string) error {
	std, err := svc.repo.GetStudentByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if err := svc.repo.DeleteStudentByID(id); err != nil {
		return err
	}
	if _, err := svc.activitySvc.Log(activity.TypeRegistration, "Student %s removed", std.Name); err != nil {
		return err
	}
	return nil
}

// ActiveCount reports how many students are currently active.
func ActiveCount(students []Student) int {
	var n int
	for _, std := range students {
		if std.Status == StatusActive {
			n++
		}
	}
	return n
}
