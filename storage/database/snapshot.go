package database

import (
	"context"

	"github.com/trezcool/educrm/core/activity"
	"github.com/trezcool/educrm/core/billing"
	"github.com/trezcool/educrm/core/group"
	"github.com/trezcool/educrm/core/points"
	"github.com/trezcool/educrm/core/student"
	"github.com/trezcool/educrm/core/teacher"
)

type (
	// Snapshot is the full entity state handed to the persistence
	// collaborator on save and received back on load. The core makes no
	// assumption about how it is stored.
	Snapshot struct {
		Teachers   []teacher.Teacher
		Students   []student.Student
		Groups     []group.Group
		Lessons    []group.Lesson
		Attendance []group.AttendanceRecord
		Marks      []group.StudentMark
		Points     []points.StudentPoint
		Payments   []billing.Payment
		Products   []billing.Product
		Activities []activity.Activity
	}

	// SnapshotStore persists and restores full snapshots.
	SnapshotStore interface {
		LoadSnapshot(ctx context.Context) (Snapshot, error)
		SaveSnapshot(ctx context.Context, snap Snapshot) error
	}
)
