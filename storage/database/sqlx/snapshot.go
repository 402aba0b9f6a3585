package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/educrm/core/activity"
	"github.com/trezcool/educrm/core/billing"
	"github.com/trezcool/educrm/core/group"
	"github.com/trezcool/educrm/core/points"
	"github.com/trezcool/educrm/core/student"
	"github.com/trezcool/educrm/core/teacher"
	"github.com/trezcool/educrm/storage/database"
)

// snapshotStore persists full snapshots to postgres. Saving replaces the
// previous snapshot wholesale inside one transaction; there is no partial
// update path (durability is the in-memory store's collaborator concern, not
// a second source of truth).
type snapshotStore struct {
	db *sqlx.DB
}

var _ database.SnapshotStore = (*snapshotStore)(nil) // interface compliance check

func NewSnapshotStore(db *sqlx.DB) *snapshotStore {
	return &snapshotStore{db: db}
}

type (
	teacherRow struct {
		ID           string    `db:"id"`
		Name         string    `db:"name"`
		Email        string    `db:"email"`
		Phone        string    `db:"phone"`
		Subject      string    `db:"subject"`
		Salary       float64   `db:"salary"`
		StudentCount int       `db:"student_count"`
		JoinDate     time.Time `db:"join_date"`
		Status       string    `db:"status"`
	}

	studentRow struct {
		ID            string      `db:"id"`
		Name          string      `db:"name"`
		Email         string      `db:"email"`
		Phone         string      `db:"phone"`
		Course        string      `db:"course"`
		Fee           float64     `db:"fee"`
		JoinDate      time.Time   `db:"join_date"`
		Status        string      `db:"status"`
		PaymentStatus string      `db:"payment_status"`
		GroupID       null.String `db:"group_id"`
	}

	groupRow struct {
		ID         string         `db:"id"`
		Name       string         `db:"name"`
		Subject    string         `db:"subject"`
		LessonTime string         `db:"lesson_time"`
		LessonDays pq.StringArray `db:"lesson_days"`
		StudentIDs pq.StringArray `db:"student_ids"`
		Active     bool           `db:"active"`
	}

	lessonRow struct {
		ID       string    `db:"id"`
		GroupID  string    `db:"group_id"`
		Topic    string    `db:"topic"`
		Date     time.Time `db:"date"`
		Homework string    `db:"homework"`
	}

	attendanceRow struct {
		ID        string    `db:"id"`
		LessonID  string    `db:"lesson_id"`
		GroupID   string    `db:"group_id"`
		StudentID string    `db:"student_id"`
		Date      time.Time `db:"date"`
		Status    string    `db:"status"`
	}

	markRow struct {
		ID        string      `db:"id"`
		StudentID string      `db:"student_id"`
		GroupID   string      `db:"group_id"`
		LessonID  string      `db:"lesson_id"`
		Mark      int         `db:"mark"`
		Date      time.Time   `db:"date"`
		Comment   null.String `db:"comment"`
	}

	pointRow struct {
		Seq       int64       `db:"seq"`
		ID        string      `db:"id"`
		StudentID string      `db:"student_id"`
		GroupID   null.String `db:"group_id"`
		Points    int         `db:"points"`
		Reason    string      `db:"reason"`
		Date      time.Time   `db:"date"`
	}

	paymentRow struct {
		Seq         int64     `db:"seq"`
		ID          string    `db:"id"`
		StudentID   string    `db:"student_id"`
		StudentName string    `db:"student_name"`
		Amount      float64   `db:"amount"`
		Date        time.Time `db:"date"`
		Status      string    `db:"status"`
		Method      string    `db:"method"`
	}

	productRow struct {
		ID          string      `db:"id"`
		Name        string      `db:"name"`
		Description string      `db:"description"`
		Price       float64     `db:"price"`
		Category    string      `db:"category"`
		Stock       int         `db:"stock"`
		Image       null.String `db:"image"`
	}

	activityRow struct {
		Seq       int64     `db:"seq"`
		ID        string    `db:"id"`
		Type      string    `db:"type"`
		Message   string    `db:"message"`
		Timestamp time.Time `db:"timestamp"`
	}
)

var tables = []string{"activity", "payment", "product", "student_point", "mark", "attendance", "lesson", "student", "teacher", "class_group"}

func (st *snapshotStore) SaveSnapshot(ctx context.Context, snap database.Snapshot) error {
	tx, err := st.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning snapshot tx")
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range tables {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return errors.Wrap(err, "clearing "+table)
		}
	}

	for _, grp := range snap.Groups {
		days := make(pq.StringArray, 0, len(grp.LessonDays))
		for _, day := range grp.LessonDays {
			days = append(days, string(day))
		}
		row := groupRow{
			ID:         grp.ID,
			Name:       grp.Name,
			Subject:    grp.Subject,
			LessonTime: grp.LessonTime,
			LessonDays: days,
			StudentIDs: pq.StringArray(grp.StudentIDs),
			Active:     grp.Active,
		}
		if _, err = tx.NamedExecContext(ctx, `
			INSERT INTO class_group (id, name, subject, lesson_time, lesson_days, student_ids, active)
			VALUES (:id, :name, :subject, :lesson_time, :lesson_days, :student_ids, :active)`, row); err != nil {
			return errors.Wrap(err, "inserting group")
		}
	}

	for _, tch := range snap.Teachers {
		row := teacherRow{tch.ID, tch.Name, tch.Email, tch.Phone, tch.Subject, tch.Salary, tch.StudentCount, tch.JoinDate, string(tch.Status)}
		if _, err = tx.NamedExecContext(ctx, `
			INSERT INTO teacher (id, name, email, phone, subject, salary, student_count, join_date, status)
			VALUES (:id, :name, :email, :phone, :subject, :salary, :student_count, :join_date, :status)`, row); err != nil {
			return errors.Wrap(err, "inserting teacher")
		}
	}

	for _, std := range snap.Students {
		row := studentRow{
			ID:            std.ID,
			Name:          std.Name,
			Email:         std.Email,
			Phone:         std.Phone,
			Course:        std.Course,
			Fee:           std.Fee,
			JoinDate:      std.JoinDate,
			Status:        string(std.Status),
			PaymentStatus: string(std.PaymentStatus),
			GroupID:       null.NewString(std.GroupID, std.GroupID != ""),
		}
		if _, err = tx.NamedExecContext(ctx, `
			INSERT INTO student (id, name, email, phone, course, fee, join_date, status, payment_status, group_id)
			VALUES (:id, :name, :email, :phone, :course, :fee, :join_date, :status, :payment_status, :group_id)`, row); err != nil {
			return errors.Wrap(err, "inserting student")
		}
	}

	for _, lsn := range snap.Lessons {
		row := lessonRow{lsn.ID, lsn.GroupID, lsn.Topic, lsn.Date, lsn.Homework}
		if _, err = tx.NamedExecContext(ctx, `
			INSERT INTO lesson (id, group_id, topic, date, homework)
			VALUES (:id, :group_id, :topic, :date, :homework)`, row); err != nil {
			return errors.Wrap(err, "inserting lesson")
		}
	}

	for _, rec := range snap.Attendance {
		row := attendanceRow{rec.ID, rec.LessonID, rec.GroupID, rec.StudentID, rec.Date, string(rec.Status)}
		if _, err = tx.NamedExecContext(ctx, `
			INSERT INTO attendance (id, lesson_id, group_id, student_id, date, status)
			VALUES (:id, :lesson_id, :group_id, :student_id, :date, :status)`, row); err != nil {
			return errors.Wrap(err, "inserting attendance record")
		}
	}

	for _, mrk := range snap.Marks {
		row := markRow{
			ID:        mrk.ID,
			StudentID: mrk.StudentID,
			GroupID:   mrk.GroupID,
			LessonID:  mrk.LessonID,
			Mark:      mrk.Mark,
			Date:      mrk.Date,
			Comment:   null.NewString(mrk.Comment, mrk.Comment != ""),
		}
		if _, err = tx.NamedExecContext(ctx, `
			INSERT INTO mark (id, student_id, group_id, lesson_id, mark, date, comment)
			VALUES (:id, :student_id, :group_id, :lesson_id, :mark, :date, :comment)`, row); err != nil {
			return errors.Wrap(err, "inserting mark")
		}
	}

	for _, ent := range snap.Points {
		row := pointRow{
			ID:        ent.ID,
			StudentID: ent.StudentID,
			GroupID:   null.NewString(ent.GroupID, ent.GroupID != ""),
			Points:    ent.Points,
			Reason:    ent.Reason,
			Date:      ent.Date,
		}
		if _, err = tx.NamedExecContext(ctx, `
			INSERT INTO student_point (id, student_id, group_id, points, reason, date)
			VALUES (:id, :student_id, :group_id, :points, :reason, :date)`, row); err != nil {
			return errors.Wrap(err, "inserting point entry")
		}
	}

	for _, pmt := range snap.Payments {
		row := paymentRow{
			ID:          pmt.ID,
			StudentID:   pmt.StudentID,
			StudentName: pmt.StudentName,
			Amount:      pmt.Amount,
			Date:        pmt.Date,
			Status:      string(pmt.Status),
			Method:      string(pmt.Method),
		}
		if _, err = tx.NamedExecContext(ctx, `
			INSERT INTO payment (id, student_id, student_name, amount, date, status, method)
			VALUES (:id, :student_id, :student_name, :amount, :date, :status, :method)`, row); err != nil {
			return errors.Wrap(err, "inserting payment")
		}
	}

	for _, prd := range snap.Products {
		row := productRow{
			ID:          prd.ID,
			Name:        prd.Name,
			Description: prd.Description,
			Price:       prd.Price,
			Category:    prd.Category,
			Stock:       prd.Stock,
			Image:       null.NewString(prd.Image, prd.Image != ""),
		}
		if _, err = tx.NamedExecContext(ctx, `
			INSERT INTO product (id, name, description, price, category, stock, image)
			VALUES (:id, :name, :description, :price, :category, :stock, :image)`, row); err != nil {
			return errors.Wrap(err, "inserting product")
		}
	}

	for _, act := range snap.Activities {
		row := activityRow{
			ID:        act.ID,
			Type:      string(act.Type),
			Message:   act.Message,
			Timestamp: act.Timestamp,
		}
		if _, err = tx.NamedExecContext(ctx, `
			INSERT INTO activity (id, type, message, timestamp)
			VALUES (:id, :type, :message, :timestamp)`, row); err != nil {
			return errors.Wrap(err, "inserting activity")
		}
	}

	return errors.Wrap(tx.Commit(), "committing snapshot")
}

func (st *snapshotStore) LoadSnapshot(ctx context.Context) (database.Snapshot, error) {
	var snap database.Snapshot

	var teacherRows []teacherRow
	if err := st.db.SelectContext(ctx, &teacherRows, "SELECT * FROM teacher"); err != nil {
		return snap, errors.Wrap(err, "loading teachers")
	}
	for _, row := range teacherRows {
		snap.Teachers = append(snap.Teachers, teacher.Teacher{
			ID:           row.ID,
			Name:         row.Name,
			Email:        row.Email,
			Phone:        row.Phone,
			Subject:      row.Subject,
			Salary:       row.Salary,
			StudentCount: row.StudentCount,
			JoinDate:     row.JoinDate,
			Status:       teacher.Status(row.Status),
		})
	}

	var studentRows []studentRow
	if err := st.db.SelectContext(ctx, &studentRows, "SELECT * FROM student"); err != nil {
		return snap, errors.Wrap(err, "loading students")
	}
	for _, row := range studentRows {
		snap.Students = append(snap.Students, student.Student{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			Phone:         row.Phone,
			Course:        row.Course,
			Fee:           row.Fee,
			JoinDate:      row.JoinDate,
			Status:        student.Status(row.Status),
			PaymentStatus: student.PaymentStatus(row.PaymentStatus),
			GroupID:       row.GroupID.String,
		})
	}

	var groupRows []groupRow
	if err := st.db.SelectContext(ctx, &groupRows, "SELECT * FROM class_group"); err != nil {
		return snap, errors.Wrap(err, "loading groups")
	}
	for _, row := range groupRows {
		days := make([]group.Weekday, 0, len(row.LessonDays))
		for _, day := range row.LessonDays {
			days = append(days, group.Weekday(day))
		}
		snap.Groups = append(snap.Groups, group.Group{
			ID:         row.ID,
			Name:       row.Name,
			Subject:    row.Subject,
			LessonTime: row.LessonTime,
			LessonDays: days,
			StudentIDs: append([]string(nil), row.StudentIDs...),
			Active:     row.Active,
		})
	}

	var lessonRows []lessonRow
	if err := st.db.SelectContext(ctx, &lessonRows, "SELECT * FROM lesson"); err != nil {
		return snap, errors.Wrap(err, "loading lessons")
	}
	for _, row := range lessonRows {
		snap.Lessons = append(snap.Lessons, group.Lesson{
			ID:       row.ID,
			GroupID:  row.GroupID,
			Topic:    row.Topic,
			Date:     row.Date,
			Homework: row.Homework,
		})
	}

	var attendanceRows []attendanceRow
	if err := st.db.SelectContext(ctx, &attendanceRows, "SELECT * FROM attendance"); err != nil {
		return snap, errors.Wrap(err, "loading attendance records")
	}
	for _, row := range attendanceRows {
		snap.Attendance = append(snap.Attendance, group.AttendanceRecord{
			ID:        row.ID,
			LessonID:  row.LessonID,
			GroupID:   row.GroupID,
			StudentID: row.StudentID,
			Date:      row.Date,
			Status:    group.AttendanceStatus(row.Status),
		})
	}

	var markRows []markRow
	if err := st.db.SelectContext(ctx, &markRows, "SELECT * FROM mark"); err != nil {
		return snap, errors.Wrap(err, "loading marks")
	}
	for _, row := range markRows {
		snap.Marks = append(snap.Marks, group.StudentMark{
			ID:        row.ID,
			StudentID: row.StudentID,
			GroupID:   row.GroupID,
			LessonID:  row.LessonID,
			Mark:      row.Mark,
			Date:      row.Date,
			Comment:   row.Comment.String,
		})
	}

	var pointRows []pointRow
	if err := st.db.SelectContext(ctx, &pointRows, "SELECT * FROM student_point ORDER BY seq"); err != nil {
		return snap, errors.Wrap(err, "loading point entries")
	}
	for _, row := range pointRows {
		snap.Points = append(snap.Points, points.StudentPoint{
			ID:        row.ID,
			StudentID: row.StudentID,
			GroupID:   row.GroupID.String,
			Points:    row.Points,
			Reason:    row.Reason,
			Date:      row.Date,
		})
	}

	var paymentRows []paymentRow
	if err := st.db.SelectContext(ctx, &paymentRows, "SELECT * FROM payment ORDER BY seq"); err != nil {
		return snap, errors.Wrap(err, "loading payments")
	}
	for _, row := range paymentRows {
		snap.Payments = append(snap.Payments, billing.Payment{
			ID:          row.ID,
			StudentID:   row.StudentID,
			StudentName: row.StudentName,
			Amount:      row.Amount,
			Date:        row.Date,
			Status:      billing.PaymentStatus(row.Status),
			Method:      billing.PaymentMethod(row.Method),
		})
	}

	var productRows []productRow
	if err := st.db.SelectContext(ctx, &productRows, "SELECT * FROM product"); err != nil {
		return snap, errors.Wrap(err, "loading products")
	}
	for _, row := range productRows {
		snap.Products = append(snap.Products, billing.Product{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Price:       row.Price,
			Category:    row.Category,
			Stock:       row.Stock,
			Image:       row.Image.String,
		})
	}

	// saved newest-first; seq order preserves that
	var activityRows []activityRow
	if err := st.db.SelectContext(ctx, &activityRows, "SELECT * FROM activity ORDER BY seq"); err != nil {
		return snap, errors.Wrap(err, "loading activities")
	}
	for _, row := range activityRows {
		snap.Activities = append(snap.Activities, activity.Activity{
			ID:        row.ID,
			Type:      activity.Type(row.Type),
			Message:   row.Message,
			Timestamp: row.Timestamp,
		})
	}

	return snap, nil
}
