package inmemdb

import (
	"github.com/google/uuid"

	"github.com/trezcool/educrm/core/group"
)

// groupRepository also holds the student table: replacing a group's members
// rewrites Student.GroupID in the same critical section. Lock order is always
// group table first, student table second.
type groupRepository struct {
	db       *groupTable
	students *studentTable
}

var _ group.Repository = (*groupRepository)(nil) // interface compliance check

func NewGroupRepository(db *DB) group.Repository {
	return &groupRepository{db: db.group, students: db.student}
}

// clone copies grp including its slices so callers cannot alias table state.
func clone(grp group.Group) group.Group {
	grp.StudentIDs = append([]string(nil), grp.StudentIDs...)
	grp.LessonDays = append([]group.Weekday(nil), grp.LessonDays...)
	return grp
}

func (repo *groupRepository) CreateGroup(grp group.Group) (group.Group, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	grp.ID = uuid.New().String()
	stored := clone(grp)
	repo.db.groups[grp.ID] = &stored
	return grp, nil
}

func (repo *groupRepository) QueryAllGroups() ([]group.Group, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	groups := make([]group.Group, 0, len(repo.db.groups))
	for _, grp := range repo.db.groups {
		groups = append(groups, clone(*grp))
	}
	return groups, nil
}

func (repo *groupRepository) GetGroupByID(id string) (group.Group, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if grp, ok := repo.db.groups[id]; ok {
		return clone(*grp), nil
	}
	return group.Group{}, group.ErrNotFound
}

func (repo *groupRepository) UpdateGroup(grp group.Group, active *bool) (group.Group, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	orig, ok := repo.db.groups[grp.ID]
	if !ok {
		return group.Group{}, group.ErrNotFound
	}
	if grp.Name != "" {
		orig.Name = grp.Name
	}
	if grp.Subject != "" {
		orig.Subject = grp.Subject
	}
	if grp.LessonTime != "" {
		orig.LessonTime = grp.LessonTime
	}
	if grp.LessonDays != nil {
		orig.LessonDays = append([]group.Weekday(nil), grp.LessonDays...)
	}
	if active != nil {
		orig.Active = *active
	}
	return clone(*orig), nil
}

func (repo *groupRepository) DeleteGroupByID(id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.groups[id]; !ok {
		return nil // idempotent
	}
	for lessonID := range repo.db.byGroup[id] {
		repo.deleteLesson(lessonID)
	}
	delete(repo.db.byGroup, id)
	delete(repo.db.groups, id)
	return nil
}

// deleteLesson removes a lesson and its attendance records.
// Callers must hold the write lock.
func (repo *groupRepository) deleteLesson(lessonID string) {
	for recID := range repo.db.byLesson[lessonID] {
		if rec, ok := repo.db.attendance[recID]; ok {
			delete(repo.db.byLessonStudent, lessonStudentKey{rec.LessonID, rec.StudentID})
		}
		delete(repo.db.attendance, recID)
	}
	delete(repo.db.byLesson, lessonID)

	if lsn, ok := repo.db.lessons[lessonID]; ok {
		if lessonIDs, ok := repo.db.byGroup[lsn.GroupID]; ok {
			delete(lessonIDs, lessonID)
		}
	}
	delete(repo.db.lessons, lessonID)
}

func (repo *groupRepository) ReplaceGroupStudents(groupID string, studentIDs []string) (group.Group, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	grp, ok := repo.db.groups[groupID]
	if !ok {
		return group.Group{}, group.ErrNotFound
	}

	repo.students.mutex.Lock()
	defer repo.students.mutex.Unlock()

	// detach students no longer in the list, attach the new ones
	member := make(map[string]struct{}, len(studentIDs))
	for _, id := range studentIDs {
		member[id] = struct{}{}
	}
	for _, id := range grp.StudentIDs {
		if _, keep := member[id]; keep {
			continue
		}
		if std, ok := repo.students.t[id]; ok && std.GroupID == groupID {
			std.GroupID = ""
		}
	}
	for _, id := range studentIDs {
		if std, ok := repo.students.t[id]; ok {
			std.GroupID = groupID
		}
	}

	grp.StudentIDs = append([]string(nil), studentIDs...)
	return clone(*grp), nil
}

// lessons

func (repo *groupRepository) CreateLesson(lsn group.Lesson) (group.Lesson, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	lsn.ID = uuid.New().String()
	repo.db.lessons[lsn.ID] = &lsn
	if repo.db.byGroup[lsn.GroupID] == nil {
		repo.db.byGroup[lsn.GroupID] = make(map[string]struct{})
	}
	repo.db.byGroup[lsn.GroupID][lsn.ID] = struct{}{}
	return lsn, nil
}

func (repo *groupRepository) QueryAllLessons() ([]group.Lesson, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	lessons := make([]group.Lesson, 0, len(repo.db.lessons))
	for _, lsn := range repo.db.lessons {
		lessons = append(lessons, *lsn)
	}
	return lessons, nil
}

func (repo *groupRepository) QueryLessonsByGroupID(groupID string) ([]group.Lesson, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	lessons := make([]group.Lesson, 0, len(repo.db.byGroup[groupID]))
	for lessonID := range repo.db.byGroup[groupID] {
		if lsn, ok := repo.db.lessons[lessonID]; ok {
			lessons = append(lessons, *lsn)
		}
	}
	return lessons, nil
}

func (repo *groupRepository) GetLessonByID(id string) (group.Lesson, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if lsn, ok := repo.db.lessons[id]; ok {
		return *lsn, nil
	}
	return group.Lesson{}, group.ErrLessonNotFound
}

func (repo *groupRepository) UpdateLesson(lsn group.Lesson) (group.Lesson, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	orig, ok := repo.db.lessons[lsn.ID]
	if !ok {
		return group.Lesson{}, group.ErrLessonNotFound
	}
	if lsn.Topic != "" {
		orig.Topic = lsn.Topic
	}
	if !lsn.Date.IsZero() {
		orig.Date = lsn.Date
	}
	if lsn.Homework != "" {
		orig.Homework = lsn.Homework
	}
	return *orig, nil
}

func (repo *groupRepository) DeleteLessonByID(id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.lessons[id]; !ok {
		return nil // idempotent
	}
	repo.deleteLesson(id)
	return nil
}

// attendance

func (repo *groupRepository) UpsertAttendanceRecord(rec group.AttendanceRecord) (group.AttendanceRecord, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	key := lessonStudentKey{rec.LessonID, rec.StudentID}
	if recID, ok := repo.db.byLessonStudent[key]; ok {
		orig := repo.db.attendance[recID]
		orig.Status = rec.Status
		orig.Date = rec.Date
		return *orig, nil
	}

	rec.ID = uuid.New().String()
	repo.db.attendance[rec.ID] = &rec
	repo.db.byLessonStudent[key] = rec.ID
	if repo.db.byLesson[rec.LessonID] == nil {
		repo.db.byLesson[rec.LessonID] = make(map[string]struct{})
	}
	repo.db.byLesson[rec.LessonID][rec.ID] = struct{}{}
	return rec, nil
}

func (repo *groupRepository) QueryAllAttendance() ([]group.AttendanceRecord, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := make([]group.AttendanceRecord, 0, len(repo.db.attendance))
	for _, rec := range repo.db.attendance {
		records = append(records, *rec)
	}
	return records, nil
}

func (repo *groupRepository) QueryAttendanceByLessonID(lessonID string) ([]group.AttendanceRecord, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := make([]group.AttendanceRecord, 0, len(repo.db.byLesson[lessonID]))
	for recID := range repo.db.byLesson[lessonID] {
		if rec, ok := repo.db.attendance[recID]; ok {
			records = append(records, *rec)
		}
	}
	return records, nil
}

func (repo *groupRepository) QueryAttendanceByGroupID(groupID string) ([]group.AttendanceRecord, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := make([]group.AttendanceRecord, 0)
	for _, rec := range repo.db.attendance {
		if rec.GroupID == groupID {
			records = append(records, *rec)
		}
	}
	return records, nil
}

func (repo *groupRepository) QueryAttendanceByStudent(groupID, studentID string) ([]group.AttendanceRecord, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := make([]group.AttendanceRecord, 0)
	for _, rec := range repo.db.attendance {
		if rec.GroupID == groupID && rec.StudentID == studentID {
			records = append(records, *rec)
		}
	}
	return records, nil
}

// marks

func (repo *groupRepository) CreateMark(mrk group.StudentMark) (group.StudentMark, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	mrk.ID = uuid.New().String()
	repo.db.marks[mrk.ID] = &mrk
	return mrk, nil
}

func (repo *groupRepository) GetMarkByID(id string) (group.StudentMark, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if mrk, ok := repo.db.marks[id]; ok {
		return *mrk, nil
	}
	return group.StudentMark{}, group.ErrMarkNotFound
}

func (repo *groupRepository) UpdateMark(mrk group.StudentMark, mark *int) (group.StudentMark, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	orig, ok := repo.db.marks[mrk.ID]
	if !ok {
		return group.StudentMark{}, group.ErrMarkNotFound
	}
	if mark != nil {
		orig.Mark = *mark
	}
	if mrk.Comment != "" {
		orig.Comment = mrk.Comment
	}
	return *orig, nil
}

func (repo *groupRepository) QueryMarksByStudentID(studentID string) ([]group.StudentMark, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	marks := make([]group.StudentMark, 0)
	for _, mrk := range repo.db.marks {
		if mrk.StudentID == studentID {
			marks = append(marks, *mrk)
		}
	}
	return marks, nil
}
