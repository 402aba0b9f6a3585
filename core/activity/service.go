package activity

import (
	"errors"
	"fmt"
	"time"
)

var (
	// errors
	ErrNotFound = errors.New("activity not found")
)

type (
	Repository interface {
		// CreateActivity prepends the entry to the log (newest-first).
		CreateActivity(act Activity) (Activity, error)
		// QueryRecentActivities returns up to limit entries, newest first.
		// limit <= 0 returns the whole log.
		QueryRecentActivities(limit int) ([]Activity, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Log appends a new entry to the front of the audit trail.
func (svc *Service) Log(typ Type, format string, args ...interface{}) (Activity, error) {
	act := Activity{
		Type:      typ,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now().UTC(),
	}
	return svc.repo.CreateActivity(act)
}

func (svc *Service) Recent(limit int) ([]Activity, error) {
	return svc.repo.QueryRecentActivities(limit)
}
