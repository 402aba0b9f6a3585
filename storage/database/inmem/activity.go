package inmemdb

import (
	"github.com/google/uuid"

	"github.com/trezcool/educrm/core/activity"
)

type activityRepository struct {
	db *activityTable
}

var _ activity.Repository = (*activityRepository)(nil) // interface compliance check

func NewActivityRepository(db *DB) activity.Repository {
	return &activityRepository{db: db.activity}
}

func (repo *activityRepository) CreateActivity(act activity.Activity) (activity.Activity, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	act.ID = uuid.New().String()
	// newest first
	repo.db.entries = append([]activity.Activity{act}, repo.db.entries...)
	return act, nil
}

func (repo *activityRepository) QueryRecentActivities(limit int) ([]activity.Activity, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	n := len(repo.db.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	return append([]activity.Activity(nil), repo.db.entries[:n]...), nil
}
