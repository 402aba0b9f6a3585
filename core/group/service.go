package group

import (
	"errors"

	"github.com/trezcool/educrm/core/activity"
)

var (
	// errors
	ErrNotFound       = errors.New("group not found")
	ErrLessonNotFound = errors.New("lesson not found")
	ErrMarkNotFound   = errors.New("mark not found")
)

type (
	Repository interface {
		CreateGroup(grp Group) (Group, error)
		QueryAllGroups() ([]Group, error)
		GetGroupByID(id string) (Group, error)
		// UpdateGroup merges the set fields of grp into the stored entity.
		UpdateGroup(grp Group, active *bool) (Group, error)
		// DeleteGroupByID removes the group and cascades to its lessons and
		// their attendance records. Deleting an unknown id is a no-op.
		DeleteGroupByID(id string) error
		// ReplaceGroupStudents swaps the group's member list wholesale and
		// reconciles Student.GroupID on both the removed and the added
		// students, all in one critical section.
		ReplaceGroupStudents(groupID string, studentIDs []string) (Group, error)

		CreateLesson(lsn Lesson) (Lesson, error)
		QueryAllLessons() ([]Lesson, error)
		QueryLessonsByGroupID(groupID string) ([]Lesson, error)
		GetLessonByID(id string) (Lesson, error)
		UpdateLesson(lsn Lesson) (Lesson, error)
		// DeleteLessonByID cascades to the lesson's attendance records.
		// Deleting an unknown id is a no-op.
		DeleteLessonByID(id string) error

		// UpsertAttendanceRecord creates the record, or updates status and
		// date in place when one already exists for (LessonID, StudentID).
		UpsertAttendanceRecord(rec AttendanceRecord) (AttendanceRecord, error)
		QueryAllAttendance() ([]AttendanceRecord, error)
		QueryAttendanceByLessonID(lessonID string) ([]AttendanceRecord, error)
		QueryAttendanceByGroupID(groupID string) ([]AttendanceRecord, error)
		QueryAttendanceByStudent(groupID, studentID string) ([]AttendanceRecord, error)

		CreateMark(mrk StudentMark) (StudentMark, error)
		GetMarkByID(id string) (StudentMark, error)
		UpdateMark(mrk StudentMark, mark *int) (StudentMark, error)
		QueryMarksByStudentID(studentID string) ([]StudentMark, error)
	}

	Service struct {
		repo        Repository
		activitySvc *activity.Service
	}
)

func NewService(repo Repository, activitySvc *activity.Service) *Service {
	return &Service{repo: repo, activitySvc: activitySvc}
}

func (svc *Service) Create(ng NewGroup) (Group, error) {
	if err := ng.Validate(); err != nil {
		return Group{}, err
	}
	grp := Group{
		Name:       ng.Name,
		Subject:    ng.Subject,
		LessonTime: ng.LessonTime,
		LessonDays: ng.LessonDays,
		StudentIDs: ng.StudentIDs,
		Active:     true,
	}
	if grp.StudentIDs == nil {
		grp.StudentIDs = []string{}
	}
	grp, err := svc.repo.CreateGroup(grp)
	if err != nil {
		return Group{}, err
	}
	if _, err := svc.activitySvc.Log(activity.TypeGroup, "New group %q created", grp.Name); err != nil {
		return Group{}, err
	}
	return grp, nil
}

func (svc *Service) QueryAll() ([]Group, error) {
	return svc.repo.QueryAllGroups()
}

func (svc *Service) GetByID(id string) (Group, error) {
	return svc.repo.GetGroupByID(id)
}

func (svc *Service) Update(id string, ug UpdateGroup) (Group, error) {
	if err := ug.Validate(); err != nil {
		return Group{}, err
	}
	grp := Group{
		ID:         id,
		Name:       ug.Name,
		Subject:    ug.Subject,
		LessonTime: ug.LessonTime,
		LessonDays: ug.LessonDays,
	}
	return svc.repo.UpdateGroup(grp, ug.Active)
}

// Delete removes the group and, through the repository, all of its lessons
// and their attendance records. Unknown ids are a no-op.
func (svc *Service) Delete(id string) error {
	grp, err := svc.repo.GetGroupByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if err := svc.repo.DeleteGroupByID(id); err != nil {
		return err
	}
	if _, err := svc.activitySvc.Log(activity.TypeGroup, "Group %q deleted", grp.Name); err != nil {
		return err
	}
	return nil
}

// AssignStudents replaces the group's member list with the given one.
// The list is taken as-is (callers must not pass duplicates); membership is
// reconciled on both sides so Group.StudentIDs and Student.GroupID never
// drift apart.
func (svc *Service) AssignStudents(groupID string, studentIDs []string) (Group, error) {
	return svc.repo.ReplaceGroupStudents(groupID, studentIDs)
}

// lessons

func (svc *Service) CreateLesson(nl NewLesson) (Lesson, error) {
	if err := nl.Validate(); err != nil {
		return Lesson{}, err
	}
	groupName := "Unknown"
	if grp, err := svc.repo.GetGroupByID(nl.GroupID); err == nil {
		groupName = grp.Name
	}
	lsn := Lesson{
		GroupID:  nl.GroupID,
		Topic:    nl.Topic,
		Date:     nl.Date.UTC(),
		Homework: nl.Homework,
	}
	lsn, err := svc.repo.CreateLesson(lsn)
	if err != nil {
		return Lesson{}, err
	}
	if _, err := svc.activitySvc.Log(activity.TypeLesson, "New lesson %q added to group %s", lsn.Topic, groupName); err != nil {
		return Lesson{}, err
	}
	return lsn, nil
}

func (svc *Service) QueryAllLessons() ([]Lesson, error) {
	return svc.repo.QueryAllLessons()
}

func (svc *Service) QueryLessons(groupID string) ([]Lesson, error) {
	return svc.repo.QueryLessonsByGroupID(groupID)
}

func (svc *Service) GetLessonByID(id string) (Lesson, error) {
	return svc.repo.GetLessonByID(id)
}

func (svc *Service) UpdateLesson(id string, ul UpdateLesson) (Lesson, error) {
	if err := ul.Validate(); err != nil {
		return Lesson{}, err
	}
	lsn := Lesson{
		ID:       id,
		Topic:    ul.Topic,
		Date:     ul.Date,
		Homework: ul.Homework,
	}
	return svc.repo.UpdateLesson(lsn)
}

// DeleteLesson removes the lesson and its attendance records.
// Unknown ids are a no-op.
func (svc *Service) DeleteLesson(id string) error {
	lsn, err := svc.repo.GetLessonByID(id)
	if err != nil {
		if errors.Is(err, ErrLessonNotFound) {
			return nil
		}
		return err
	}
	if err := svc.repo.DeleteLessonByID(id); err != nil {
		return err
	}
	if _, err := svc.activitySvc.Log(activity.TypeLesson, "Lesson %q deleted", lsn.Topic); err != nil {
		return err
	}
	return nil
}

// attendance

// RecordAttendance upserts the student's status for a lesson: re-recording
// the same (lesson, student) overwrites the previous status instead of
// inserting a second record.
func (svc *Service) RecordAttendance(nr NewAttendanceRecord) (AttendanceRecord, error) {
	if err := nr.Validate(); err != nil {
		return AttendanceRecord{}, err
	}
	rec := AttendanceRecord{
		LessonID:  nr.LessonID,
		GroupID:   nr.GroupID,
		StudentID: nr.StudentID,
		Date:      nr.Date.UTC(),
		Status:    nr.Status,
	}
	return svc.repo.UpsertAttendanceRecord(rec)
}

func (svc *Service) AttendanceForLesson(lessonID string) ([]AttendanceRecord, error) {
	return svc.repo.QueryAttendanceByLessonID(lessonID)
}

// GroupAttendanceRate reports the percentage of "present" records among all
// of the group's attendance records.
func (svc *Service) GroupAttendanceRate(groupID string) (int, error) {
	records, err := svc.repo.QueryAttendanceByGroupID(groupID)
	if err != nil {
		return 0, err
	}
	return AttendanceRate(records), nil
}

// StudentAttendanceRate reports one student's rate within a group.
func (svc *Service) StudentAttendanceRate(groupID, studentID string) (int, error) {
	records, err := svc.repo.QueryAttendanceByStudent(groupID, studentID)
	if err != nil {
		return 0, err
	}
	return AttendanceRate(records), nil
}

// marks

func (svc *Service) AddMark(nm NewMark) (StudentMark, error) {
	if err := nm.Validate(); err != nil {
		return StudentMark{}, err
	}
	mrk := StudentMark{
		StudentID: nm.StudentID,
		GroupID:   nm.GroupID,
		LessonID:  nm.LessonID,
		Mark:      nm.Mark,
		Date:      nm.Date.UTC(),
		Comment:   nm.Comment,
	}
	return svc.repo.CreateMark(mrk)
}

func (svc *Service) UpdateMark(id string, um UpdateMark) (StudentMark, error) {
	if err := um.Validate(); err != nil {
		return StudentMark{}, err
	}
	mrk := StudentMark{
		ID:      id,
		Comment: um.Comment,
	}
	return svc.repo.UpdateMark(mrk, um.Mark)
}

func (svc *Service) StudentMarks(studentID string) ([]StudentMark, error) {
	return svc.repo.QueryMarksByStudentID(studentID)
}

// AverageMark reports the student's mark average, rounded half-up.
func (svc *Service) AverageMark(studentID string) (int, error) {
	marks, err := svc.repo.QueryMarksByStudentID(studentID)
	if err != nil {
		return 0, err
	}
	return MarkAverage(marks), nil
}
