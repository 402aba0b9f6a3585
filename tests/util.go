package testutil

import (
	"testing"
	"time"

	"github.com/trezcool/educrm/core"
	"github.com/trezcool/educrm/core/group"
	"github.com/trezcool/educrm/core/points"
	"github.com/trezcool/educrm/core/student"
	"github.com/trezcool/educrm/core/teacher"
	inmemdb "github.com/trezcool/educrm/storage/database/inmem"
)

func NewConfig(t *testing.T) *core.Config {
	conf := core.NewConfig(core.Getwd())
	conf.Debug = false
	conf.TestMode = true
	return conf
}

func NewStore(t *testing.T) *inmemdb.DB {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	return db
}

func CreateTeacher(t *testing.T, repo teacher.Repository, name, subject string, salary float64, joinDate ...time.Time) teacher.Teacher {
	tstamp := time.Now().UTC()
	if len(joinDate) > 0 {
		tstamp = joinDate[0].UTC()
	}
	tch, err := repo.CreateTeacher(teacher.Teacher{
		Name:     name,
		Subject:  subject,
		Salary:   salary,
		JoinDate: tstamp,
		Status:   teacher.StatusActive,
	})
	if err != nil {
		t.Fatalf("createTeacher() failed: %v", err)
	}
	return tch
}

func CreateStudent(t *testing.T, repo student.Repository, name, course string, fee float64, paymentStatus ...student.PaymentStatus) student.Student {
	pstatus := student.PaymentPending
	if len(paymentStatus) > 0 {
		pstatus = paymentStatus[0]
	}
	std, err := repo.CreateStudent(student.Student{
		Name:          name,
		Email:         core.CleanString(name, true) + "@test.cd",
		Course:        course,
		Fee:           fee,
		JoinDate:      time.Now().UTC(),
		Status:        student.StatusActive,
		PaymentStatus: pstatus,
	})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return std
}

func CreateGroup(t *testing.T, repo group.Repository, name, subject string, studentIDs ...string) group.Group {
	if studentIDs == nil {
		studentIDs = []string{}
	}
	grp, err := repo.CreateGroup(group.Group{
		Name:       name,
		Subject:    subject,
		LessonTime: "09:00 - 10:30",
		LessonDays: []group.Weekday{group.Monday, group.Wednesday},
		StudentIDs: studentIDs,
		Active:     true,
	})
	if err != nil {
		t.Fatalf("createGroup() failed: %v", err)
	}
	return grp
}

func CreateLesson(t *testing.T, repo group.Repository, groupID, topic string) group.Lesson {
	lsn, err := repo.CreateLesson(group.Lesson{
		GroupID: groupID,
		Topic:   topic,
		Date:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("createLesson() failed: %v", err)
	}
	return lsn
}

func RecordAttendance(t *testing.T, repo group.Repository, lessonID, groupID, studentID string, status group.AttendanceStatus) group.AttendanceRecord {
	rec, err := repo.UpsertAttendanceRecord(group.AttendanceRecord{
		LessonID:  lessonID,
		GroupID:   groupID,
		StudentID: studentID,
		Date:      time.Now().UTC(),
		Status:    status,
	})
	if err != nil {
		t.Fatalf("recordAttendance() failed: %v", err)
	}
	return rec
}

func AwardPoints(t *testing.T, repo points.Repository, studentID, groupID string, pts int, reason string) points.StudentPoint {
	ent, err := repo.CreateStudentPoint(points.StudentPoint{
		StudentID: studentID,
		GroupID:   groupID,
		Points:    pts,
		Reason:    reason,
		Date:      time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("awardPoints() failed: %v", err)
	}
	return ent
}
