package inmemdb

import (
	"github.com/google/uuid"

	"github.com/trezcool/educrm/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.t))
	for _, std := range repo.db.t {
		students = append(students, *std)
	}
	return students
}

func (repo *studentRepository) CreateStudent(std student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	std.ID = uuid.New().String()
	repo.db.t[std.ID] = &std
	return std, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) QueryStudentsByGroupID(groupID string) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]student.Student, 0)
	for _, std := range repo.db.t {
		if std.GroupID == groupID {
			students = append(students, *std)
		}
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(id string) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if std, ok := repo.db.t[id]; ok {
		return *std, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(std student.Student, fee *float64) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	orig, ok := repo.db.t[std.ID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	if std.Name != "" {
		orig.Name = std.Name
	}
	if std.Email != "" {
		orig.Email = std.Email
	}
	if std.Phone != "" {
		orig.Phone = std.Phone
	}
	if std.Course != "" {
		orig.Course = std.Course
	}
	if std.Status != "" {
		orig.Status = std.Status
	}
	if std.PaymentStatus != "" {
		orig.PaymentStatus = std.PaymentStatus
	}
	if fee != nil {
		orig.Fee = *fee
	}
	return *orig, nil
}

func (repo *studentRepository) DeleteStudentByID(id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.t, id)
	return nil
}
