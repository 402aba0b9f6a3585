// Package inmemdb holds the authoritative in-memory entity store. Each table
// guards its maps with its own RWMutex; queries hand out copies so readers
// never observe a half-applied mutation.
package inmemdb

import (
	"sync"

	"github.com/trezcool/educrm/core/activity"
	"github.com/trezcool/educrm/core/billing"
	"github.com/trezcool/educrm/core/group"
	"github.com/trezcool/educrm/core/points"
	"github.com/trezcool/educrm/core/student"
	"github.com/trezcool/educrm/core/teacher"
)

type (
	DB struct {
		teacher  *teacherTable
		student  *studentTable
		group    *groupTable
		points   *pointsTable
		billing  *billingTable
		activity *activityTable
	}

	teacherTable struct {
		t     map[string]*teacher.Teacher
		mutex sync.RWMutex
	}

	studentTable struct {
		t     map[string]*student.Student
		mutex sync.RWMutex
	}

	// groupTable keeps groups together with their owned lessons, attendance
	// records and marks so cascade deletes run under a single lock.
	// byGroup/byLesson are secondary indexes for O(1)-amortized cascades;
	// byLessonStudent is the upsert key for attendance.
	groupTable struct {
		groups     map[string]*group.Group
		lessons    map[string]*group.Lesson
		attendance map[string]*group.AttendanceRecord
		marks      map[string]*group.StudentMark

		byGroup         map[string]map[string]struct{} // groupID -> lesson ids
		byLesson        map[string]map[string]struct{} // lessonID -> attendance ids
		byLessonStudent map[lessonStudentKey]string     // -> attendance id

		mutex sync.RWMutex
	}

	lessonStudentKey struct {
		lessonID  string
		studentID string
	}

	// pointsTable is an append-only ledger; order of arrival is preserved.
	pointsTable struct {
		entries []points.StudentPoint
		mutex   sync.RWMutex
	}

	billingTable struct {
		payments map[string]*billing.Payment
		order    []string // payment ids in insertion order
		products map[string]*billing.Product
		mutex    sync.RWMutex
	}

	// activityTable keeps entries newest-first.
	activityTable struct {
		entries []activity.Activity
		mutex   sync.RWMutex
	}
)

func Open() (*DB, error) {
	db := &DB{
		teacher: &teacherTable{t: make(map[string]*teacher.Teacher)},
		student: &studentTable{t: make(map[string]*student.Student)},
		group: &groupTable{
			groups:          make(map[string]*group.Group),
			lessons:         make(map[string]*group.Lesson),
			attendance:      make(map[string]*group.AttendanceRecord),
			marks:           make(map[string]*group.StudentMark),
			byGroup:         make(map[string]map[string]struct{}),
			byLesson:        make(map[string]map[string]struct{}),
			byLessonStudent: make(map[lessonStudentKey]string),
		},
		points:   &pointsTable{},
		billing:  &billingTable{payments: make(map[string]*billing.Payment), products: make(map[string]*billing.Product)},
		activity: &activityTable{},
	}
	return db, nil
}
