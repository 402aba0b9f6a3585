package inmemdb

import (
	"github.com/google/uuid"

	"github.com/trezcool/educrm/core/teacher"
)

type teacherRepository struct {
	db *teacherTable
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db.teacher}
}

func (repo *teacherRepository) query() []teacher.Teacher {
	teachers := make([]teacher.Teacher, 0, len(repo.db.t))
	for _, tch := range repo.db.t {
		teachers = append(teachers, *tch)
	}
	return teachers
}

func (repo *teacherRepository) CreateTeacher(tch teacher.Teacher) (teacher.Teacher, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	tch.ID = uuid.New().String()
	repo.db.t[tch.ID] = &tch
	return tch, nil
}

func (repo *teacherRepository) QueryAllTeachers() ([]teacher.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *teacherRepository) GetTeacherByID(id string) (teacher.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if tch, ok := repo.db.t[id]; ok {
		return *tch, nil
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) UpdateTeacher(tch teacher.Teacher, salary *float64, studentCount *int) (teacher.Teacher, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	orig, ok := repo.db.t[tch.ID]
	if !ok {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	if tch.Name != "" {
		orig.Name = tch.Name
	}
	if tch.Email != "" {
		orig.Email = tch.Email
	}
	if tch.Phone != "" {
		orig.Phone = tch.Phone
	}
	if tch.Subject != "" {
		orig.Subject = tch.Subject
	}
	if tch.Status != "" {
		orig.Status = tch.Status
	}
	if salary != nil {
		orig.Salary = *salary
	}
	if studentCount != nil {
		orig.StudentCount = *studentCount
	}
	return *orig, nil
}

func (repo *teacherRepository) DeleteTeacherByID(id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.t, id)
	return nil
}
