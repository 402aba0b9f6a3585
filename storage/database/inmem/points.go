package inmemdb

import (
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/educrm/core/points"
)

type pointsRepository struct {
	db *pointsTable
}

var _ points.Repository = (*pointsRepository)(nil) // interface compliance check

func NewPointsRepository(db *DB) points.Repository {
	return &pointsRepository{db: db.points}
}

func (repo *pointsRepository) CreateStudentPoint(ent points.StudentPoint) (points.StudentPoint, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	ent.ID = uuid.New().String()
	repo.db.entries = append(repo.db.entries, ent)
	return ent, nil
}

func (repo *pointsRepository) QueryAllPoints() ([]points.StudentPoint, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]points.StudentPoint(nil), repo.db.entries...), nil
}

func (repo *pointsRepository) QueryPointsByStudentID(studentID string) ([]points.StudentPoint, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	entries := make([]points.StudentPoint, 0)
	for _, ent := range repo.db.entries {
		if ent.StudentID == studentID {
			entries = append(entries, ent)
		}
	}
	return entries, nil
}

func (repo *pointsRepository) QueryPointsByGroupID(groupID string) ([]points.StudentPoint, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	entries := make([]points.StudentPoint, 0)
	for _, ent := range repo.db.entries {
		if ent.GroupID == groupID {
			entries = append(entries, ent)
		}
	}
	return entries, nil
}

// SpendStudentPoints holds the write lock across the balance check and the
// append, so two concurrent spends can never both pass the check on the same
// balance.
func (repo *pointsRepository) SpendStudentPoints(studentID string, pts int, reason string, date time.Time) (points.StudentPoint, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var balance int
	for _, ent := range repo.db.entries {
		if ent.StudentID == studentID {
			balance += ent.Points
		}
	}
	if balance < pts {
		return points.StudentPoint{}, points.ErrInsufficientPoints
	}

	ent := points.StudentPoint{
		ID:        uuid.New().String(),
		StudentID: studentID,
		Points:    -pts,
		Reason:    reason,
		Date:      date,
	}
	repo.db.entries = append(repo.db.entries, ent)
	return ent, nil
}
