package group

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/educrm/core"
)

// Weekday is a lesson day as displayed on the schedule.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (w Weekday) IsValid() bool {
	for _, day := range AllWeekdays {
		if w == day {
			return true
		}
	}
	return false
}

// Group is a set of students taught together on a fixed schedule.
// StudentIDs mirrors Student.GroupID; AssignStudents keeps both sides in sync.
type Group struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Subject    string    `json:"subject"`
	LessonTime string    `json:"lesson_time"` // e.g. "09:00 - 10:30"
	LessonDays []Weekday `json:"lesson_days"`
	StudentIDs []string  `json:"student_ids"`
	Active     bool      `json:"active"`
}

// Lesson is owned by its Group: deleting the group deletes its lessons.
type Lesson struct {
	ID       string    `json:"id"`
	GroupID  string    `json:"group_id"`
	Topic    string    `json:"topic"`
	Date     time.Time `json:"date"` // UTC
	Homework string    `json:"homework"`
}

type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Late    AttendanceStatus = "late"
)

// AttendanceRecord holds one student's status for one lesson.
// At most one record exists per (LessonID, StudentID): recording again
// overwrites the previous status.
type AttendanceRecord struct {
	ID        string           `json:"id"`
	LessonID  string           `json:"lesson_id"`
	GroupID   string           `json:"group_id"`
	StudentID string           `json:"student_id"`
	Date      time.Time        `json:"date"` // UTC
	Status    AttendanceStatus `json:"status"`
}

// StudentMark is a 1-10 grade given for a lesson.
type StudentMark struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	GroupID   string    `json:"group_id"`
	LessonID  string    `json:"lesson_id"`
	Mark      int       `json:"mark"` // 1-10
	Date      time.Time `json:"date"` // UTC
	Comment   string    `json:"comment,omitempty"`
}

var (
	weekdayTag  = "weekday"
	weekdayText = "invalid lesson day"
)

func init() {
	_ = core.Validate.RegisterValidation(weekdayTag, weekdayValidation)
	core.RegisterCustomTranslation(weekdayTag, weekdayText)
}

func weekdayValidation(fl validator.FieldLevel) bool {
	return Weekday(fl.Field().String()).IsValid()
}

// NewGroup contains information needed to create a new Group.
// The group starts active with no students unless StudentIDs is supplied.
type NewGroup struct {
	Name       string    `json:"name" validate:"required"`
	Subject    string    `json:"subject" validate:"required"`
	LessonTime string    `json:"lesson_time" validate:"required"`
	LessonDays []Weekday `json:"lesson_days" validate:"omitempty,dive,weekday"`
	StudentIDs []string  `json:"student_ids"`
}

func (ng *NewGroup) Validate() error {
	ng.Name = core.CleanString(ng.Name)
	ng.Subject = core.CleanString(ng.Subject)
	ng.LessonTime = core.CleanString(ng.LessonTime)
	return core.FieldErrors(core.Validate.Struct(ng))
}

// UpdateGroup defines what information may be provided to modify an existing
// Group. Zero-valued fields are left untouched.
type UpdateGroup struct {
	Name       string    `json:"name"`
	Subject    string    `json:"subject"`
	LessonTime string    `json:"lesson_time"`
	LessonDays []Weekday `json:"lesson_days" validate:"omitempty,dive,weekday"`
	Active     *bool     `json:"active"`
}

func (ug *UpdateGroup) Validate() error {
	ug.Name = core.CleanString(ug.Name)
	ug.Subject = core.CleanString(ug.Subject)
	ug.LessonTime = core.CleanString(ug.LessonTime)
	return core.FieldErrors(core.Validate.Struct(ug))
}

// NewLesson contains information needed to create a new Lesson.
type NewLesson struct {
	GroupID  string    `json:"group_id" validate:"required"`
	Topic    string    `json:"topic" validate:"required"`
	Date     time.Time `json:"date"`
	Homework string    `json:"homework"`
}

func (nl *NewLesson) Validate() error {
	nl.Topic = core.CleanString(nl.Topic)
	return core.FieldErrors(core.Validate.Struct(nl))
}

// UpdateLesson defines what information may be provided to modify an existing
// Lesson. Zero-valued fields are left untouched.
type UpdateLesson struct {
	Topic    string    `json:"topic"`
	Date     time.Time `json:"date"`
	Homework string    `json:"homework"`
}

func (ul *UpdateLesson) Validate() error {
	ul.Topic = core.CleanString(ul.Topic)
	return core.FieldErrors(core.Validate.Struct(ul))
}

// NewAttendanceRecord contains information needed to record attendance.
type NewAttendanceRecord struct {
	LessonID  string           `json:"lesson_id" validate:"required"`
	GroupID   string           `json:"group_id" validate:"required"`
	StudentID string           `json:"student_id" validate:"required"`
	Date      time.Time        `json:"date"`
	Status    AttendanceStatus `json:"status" validate:"required,oneof=present absent late"`
}

func (nr *NewAttendanceRecord) Validate() error {
	return core.FieldErrors(core.Validate.Struct(nr))
}

// NewMark contains information needed to record a student mark.
type NewMark struct {
	StudentID string    `json:"student_id" validate:"required"`
	GroupID   string    `json:"group_id" validate:"required"`
	LessonID  string    `json:"lesson_id" validate:"required"`
	Mark      int       `json:"mark" validate:"min=1,max=10"`
	Date      time.Time `json:"date"`
	Comment   string    `json:"comment"`
}

func (nm *NewMark) Validate() error {
	nm.Comment = core.CleanString(nm.Comment)
	return core.FieldErrors(core.Validate.Struct(nm))
}

// UpdateMark defines what information may be provided to modify an existing
// StudentMark.
type UpdateMark struct {
	Mark    *int   `json:"mark" validate:"omitempty,min=1,max=10"`
	Comment string `json:"comment"`
}

func (um *UpdateMark) Validate() error {
	um.Comment = core.CleanString(um.Comment)
	return core.FieldErrors(core.Validate.Struct(um))
}
