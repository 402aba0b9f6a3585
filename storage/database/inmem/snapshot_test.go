package inmemdb_test

import (
	"testing"
	"time"

	"github.com/trezcool/educrm/core/activity"
	"github.com/trezcool/educrm/core/billing"
	"github.com/trezcool/educrm/core/group"
	inmemdb "github.com/trezcool/educrm/storage/database/inmem"
	testutil "github.com/trezcool/educrm/tests"
)

func TestDumpRestore_roundTrip(t *testing.T) {
	src := testutil.NewStore(t)

	tchRepo := inmemdb.NewTeacherRepository(src)
	stdRepo := inmemdb.NewStudentRepository(src)
	grpRepo := inmemdb.NewGroupRepository(src)
	ptsRepo := inmemdb.NewPointsRepository(src)
	bilRepo := inmemdb.NewBillingRepository(src)
	actRepo := inmemdb.NewActivityRepository(src)

	testutil.CreateTeacher(t, tchRepo, "John Smith", "Mathematics", 2500)
	std := testutil.CreateStudent(t, stdRepo, "Alice Johnson", "Mathematics", 500)
	grp := testutil.CreateGroup(t, grpRepo, "Math A", "Mathematics", std.ID)
	lsn := testutil.CreateLesson(t, grpRepo, grp.ID, "Introduction to Algebra")
	rec := testutil.RecordAttendance(t, grpRepo, lsn.ID, grp.ID, std.ID, group.Present)
	testutil.AwardPoints(t, ptsRepo, std.ID, grp.ID, 10, "Participated actively in class")
	if _, err := bilRepo.CreatePayment(billing.Payment{StudentID: std.ID, StudentName: std.Name, Amount: 500, Date: time.Now().UTC(), Status: billing.PaymentCompleted, Method: billing.MethodCard}); err != nil {
		t.Fatalf("CreatePayment() failed: %v", err)
	}
	if _, err := bilRepo.CreateProduct(billing.Product{Name: "Premium Notebook", Price: 25, Stock: 50}); err != nil {
		t.Fatalf("CreateProduct() failed: %v", err)
	}
	if _, err := actRepo.CreateActivity(activity.Activity{Type: activity.TypeRegistration, Message: "Alice Johnson registered for Mathematics", Timestamp: time.Now().UTC()}); err != nil {
		t.Fatalf("CreateActivity() failed: %v", err)
	}

	dst := testutil.NewStore(t)
	dst.Restore(src.Dump())

	dstGrpRepo := inmemdb.NewGroupRepository(dst)

	got, err := dstGrpRepo.GetGroupByID(grp.ID)
	if err != nil {
		t.Fatalf("GetGroupByID() failed: %v", err)
	}
	if len(got.StudentIDs) != 1 || got.StudentIDs[0] != std.ID {
		t.Errorf("StudentIDs = %v, want [%s]", got.StudentIDs, std.ID)
	}

	// the upsert index must be rebuilt: re-recording updates in place
	updated, err := dstGrpRepo.UpsertAttendanceRecord(group.AttendanceRecord{
		LessonID: lsn.ID, GroupID: grp.ID, StudentID: std.ID, Date: time.Now().UTC(), Status: group.Late,
	})
	if err != nil {
		t.Fatalf("UpsertAttendanceRecord() failed: %v", err)
	}
	if updated.ID != rec.ID {
		t.Error("restored store must upsert against the existing record")
	}
	records, err := dstGrpRepo.QueryAllAttendance()
	if err != nil {
		t.Fatalf("QueryAllAttendance() failed: %v", err)
	}
	if got, want := len(records), 1; got != want {
		t.Fatalf("attendance records = %d, want %d", got, want)
	}

	// cascade indexes must be rebuilt too
	if err := dstGrpRepo.DeleteGroupByID(grp.ID); err != nil {
		t.Fatalf("DeleteGroupByID() failed: %v", err)
	}
	lessons, err := dstGrpRepo.QueryAllLessons()
	if err != nil {
		t.Fatalf("QueryAllLessons() failed: %v", err)
	}
	if len(lessons) != 0 {
		t.Error("restored store must cascade group deletes to lessons")
	}
	records, _ = dstGrpRepo.QueryAllAttendance()
	if len(records) != 0 {
		t.Error("restored store must cascade group deletes to attendance")
	}
}
