package inmemdb

import (
	"github.com/trezcool/educrm/core/activity"
	"github.com/trezcool/educrm/core/billing"
	"github.com/trezcool/educrm/core/group"
	"github.com/trezcool/educrm/core/points"
	"github.com/trezcool/educrm/core/student"
	"github.com/trezcool/educrm/core/teacher"
	"github.com/trezcool/educrm/storage/database"
)

// Dump copies the whole store into a Snapshot for the persistence
// collaborator. Tables are locked one at a time, in a fixed order.
func (db *DB) Dump() database.Snapshot {
	var snap database.Snapshot

	db.teacher.mutex.RLock()
	for _, tch := range db.teacher.t {
		snap.Teachers = append(snap.Teachers, *tch)
	}
	db.teacher.mutex.RUnlock()

	db.student.mutex.RLock()
	for _, std := range db.student.t {
		snap.Students = append(snap.Students, *std)
	}
	db.student.mutex.RUnlock()

	db.group.mutex.RLock()
	for _, grp := range db.group.groups {
		snap.Groups = append(snap.Groups, clone(*grp))
	}
	for _, lsn := range db.group.lessons {
		snap.Lessons = append(snap.Lessons, *lsn)
	}
	for _, rec := range db.group.attendance {
		snap.Attendance = append(snap.Attendance, *rec)
	}
	for _, mrk := range db.group.marks {
		snap.Marks = append(snap.Marks, *mrk)
	}
	db.group.mutex.RUnlock()

	db.points.mutex.RLock()
	snap.Points = append(snap.Points, db.points.entries...)
	db.points.mutex.RUnlock()

	db.billing.mutex.RLock()
	for _, id := range db.billing.order {
		if pmt, ok := db.billing.payments[id]; ok {
			snap.Payments = append(snap.Payments, *pmt)
		}
	}
	for _, prd := range db.billing.products {
		snap.Products = append(snap.Products, *prd)
	}
	db.billing.mutex.RUnlock()

	db.activity.mutex.RLock()
	snap.Activities = append(snap.Activities, db.activity.entries...)
	db.activity.mutex.RUnlock()

	return snap
}

// Restore replaces the whole store with the snapshot's contents and rebuilds
// the secondary indexes. Meant for startup, before the store is shared.
func (db *DB) Restore(snap database.Snapshot) {
	db.teacher.mutex.Lock()
	db.teacher.t = make(map[string]*teacher.Teacher, len(snap.Teachers))
	for i := range snap.Teachers {
		tch := snap.Teachers[i]
		db.teacher.t[tch.ID] = &tch
	}
	db.teacher.mutex.Unlock()

	db.student.mutex.Lock()
	db.student.t = make(map[string]*student.Student, len(snap.Students))
	for i := range snap.Students {
		std := snap.Students[i]
		db.student.t[std.ID] = &std
	}
	db.student.mutex.Unlock()

	db.group.mutex.Lock()
	db.group.groups = make(map[string]*group.Group, len(snap.Groups))
	db.group.lessons = make(map[string]*group.Lesson, len(snap.Lessons))
	db.group.attendance = make(map[string]*group.AttendanceRecord, len(snap.Attendance))
	db.group.marks = make(map[string]*group.StudentMark, len(snap.Marks))
	db.group.byGroup = make(map[string]map[string]struct{})
	db.group.byLesson = make(map[string]map[string]struct{})
	db.group.byLessonStudent = make(map[lessonStudentKey]string)
	for i := range snap.Groups {
		grp := clone(snap.Groups[i])
		db.group.groups[grp.ID] = &grp
	}
	for i := range snap.Lessons {
		lsn := snap.Lessons[i]
		db.group.lessons[lsn.ID] = &lsn
		if db.group.byGroup[lsn.GroupID] == nil {
			db.group.byGroup[lsn.GroupID] = make(map[string]struct{})
		}
		db.group.byGroup[lsn.GroupID][lsn.ID] = struct{}{}
	}
	for i := range snap.Attendance {
		rec := snap.Attendance[i]
		db.group.attendance[rec.ID] = &rec
		if db.group.byLesson[rec.LessonID] == nil {
			db.group.byLesson[rec.LessonID] = make(map[string]struct{})
		}
		db.group.byLesson[rec.LessonID][rec.ID] = struct{}{}
		db.group.byLessonStudent[lessonStudentKey{rec.LessonID, rec.StudentID}] = rec.ID
	}
	for i := range snap.Marks {
		mrk := snap.Marks[i]
		db.group.marks[mrk.ID] = &mrk
	}
	db.group.mutex.Unlock()

	db.points.mutex.Lock()
	db.points.entries = append([]points.StudentPoint(nil), snap.Points...)
	db.points.mutex.Unlock()

	db.billing.mutex.Lock()
	db.billing.payments = make(map[string]*billing.Payment, len(snap.Payments))
	db.billing.order = make([]string, 0, len(snap.Payments))
	db.billing.products = make(map[string]*billing.Product, len(snap.Products))
	for i := range snap.Payments {
		pmt := snap.Payments[i]
		db.billing.payments[pmt.ID] = &pmt
		db.billing.order = append(db.billing.order, pmt.ID)
	}
	for i := range snap.Products {
		prd := snap.Products[i]
		db.billing.products[prd.ID] = &prd
	}
	db.billing.mutex.Unlock()

	db.activity.mutex.Lock()
	db.activity.entries = append([]activity.Activity(nil), snap.Activities...)
	db.activity.mutex.Unlock()
}
