package teacher

import (
	"errors"

	"github.com/trezcool/educrm/core/activity"
)

var (
	// errors
	ErrNotFound = errors.New("teacher not found")
)

type (
	Repository interface {
		CreateTeacher(tch Teacher) (Teacher, error)
		QueryAllTeachers() ([]Teacher, error)
		GetTeacherByID(id string) (Teacher, error)
		// UpdateTeacher merges the set fields of tch into the stored entity.
		UpdateTeacher(tch Teacher, salary *float64, studentCount *int) (Teacher, error)
		DeleteTeacherByID(id string) error
	}

	Service struct {
		repo        Repository
		activitySvc *activity.Service
	}
)

func NewService(repo Repository, activitySvc *activity.Service) *Service {
	return &Service{repo: repo, activitySvc: activitySvc}
}

func (svc *Service) Create(nt NewTeacher) (Teacher, error) {
	if err := nt.Validate(); err != nil {
		return Teacher{}, err
	}
	tch := Teacher{
		Name:     nt.Name,
		Email:    nt.Email,
		Phone:    nt.Phone,
		Subject:  nt.Subject,
		Salary:   nt.Salary,
		JoinDate: nt.JoinDate.UTC(),
		Status:   StatusActive,
	}
	tch, err := svc.repo.CreateTeacher(tch)
	if err != nil {
		return Teacher{}, err
	}
	if _, err := svc.activitySvc.Log(activity.TypeTeacher, "New teacher %s added", tch.Name); err != nil {
		return Teacher{}, err
	}
	return tch, nil
}

func (svc *Service) QueryAll() ([]Teacher, error) {
	return svc.repo.QueryAllTeachers()
}

func (svc *Service) GetByID(id string) (Teacher, error) {
	return svc.repo.GetTeacherByID(id)
}

func (svc *Service) Update(id string, ut UpdateTeacher) (Teacher, error) {
	if err := ut.Validate(); err != nil {
		return Teacher{}, err
	}
	tch := Teacher{
		ID:      id,
		Name:    ut.Name,
		Email:   ut.Email,
		Phone:   ut.Phone,
		Subject: ut.Subject,
		Status:  ut.Status,
	}
	return svc.repo.UpdateTeacher(tch, ut.Salary, ut.StudentCount)
}

// Delete removes the teacher; it is a no-op if the id is unknown.
// Groups taught by the teacher are left untouched: their display names keep
// the removed teacher's name as a historical snapshot.
func (svc *Service) Delete(id string) error {
	tch, err := svc.repo.GetTeacherByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if err := svc.repo.DeleteTeacherByID(id); err != nil {
		return err
	}
	if _, err := svc.activitySvc.Log(activity.TypeTeacher, "Teacher %s removed", tch.Name); err != nil {
		return err
	}
	return nil
}

// ActiveCount reports how many teachers are currently active.
func ActiveCount(teachers []Teacher) int {
	var n int
	for _, tch := range teachers {
		if tch.Status == StatusActive {
			n++
		}
	}
	return n
}
