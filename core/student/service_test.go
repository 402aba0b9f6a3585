package student_test

import (
	"errors"
	"testing"
	"time"

	"github.com/trezcool/educrm/core"
	"github.com/trezcool/educrm/core/activity"
	"github.com/trezcool/educrm/core/student"
	inmemdb "github.com/trezcool/educrm/storage/database/inmem"
	testutil "github.com/trezcool/educrm/tests"
)

func setup(t *testing.T) (*student.Service, student.Repository, *activity.Service) {
	db := testutil.NewStore(t)
	repo := inmemdb.NewStudentRepository(db)
	activitySvc := activity.NewService(inmemdb.NewActivityRepository(db))
	return student.NewService(repo, activitySvc), repo, activitySvc
}

func TestService_Create(t *testing.T) {
	svc, _, activitySvc := setup(t)

	std, err := svc.Create(student.NewStudent{Name: "Alice Johnson", Email: "alice@test.cd", Course: "Mathematics", Fee: 500, JoinDate: time.Now()})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if std.Status != student.StatusActive {
		t.Error("new students must start active")
	}
	if std.PaymentStatus != student.PaymentPending {
		t.Errorf("payment status = %s, want %s by default", std.PaymentStatus, student.PaymentPending)
	}
	if std.GroupID != "" {
		t.Error("new students must start unassigned")
	}

	recent, err := activitySvc.Recent(1)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if got, want := recent[0].Message, "Alice Johnson registered for Mathematics"; got != want {
		t.Errorf("activity message = %q, want %q", got, want)
	}

	if _, err := svc.Create(student.NewStudent{Name: "No Course"}); err == nil {
		t.Error("Create() must reject a missing course")
	}
	_, err = svc.Create(student.NewStudent{Name: "Bad Fee", Course: "Mathematics", Fee: -1})
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("Create() error = %v, want ValidationError", err)
	}
}

func TestService_Update(t *testing.T) {
	svc, repo, _ := setup(t)

	std := testutil.CreateStudent(t, repo, "Bob Smith", "Mathematics", 450)

	newFee := 500.0
	got, err := svc.Update(std.ID, student.UpdateStudent{Fee: &newFee, PaymentStatus: student.PaymentOverdue})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if got.Fee != newFee {
		t.Errorf("fee = %v, want %v", got.Fee, newFee)
	}
	if got.PaymentStatus != student.PaymentOverdue {
		t.Errorf("payment status = %s, want %s", got.PaymentStatus, student.PaymentOverdue)
	}
	if got.Name != std.Name {
		t.Error("unset fields must be left untouched")
	}

	if _, err := svc.Update("nope", student.UpdateStudent{}); !errors.Is(err, student.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc, repo, activitySvc := setup(t)

	std := testutil.CreateStudent(t, repo, "Charlie Davis", "Physics", 450)

	if err := svc.Delete(std.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := svc.GetByID(std.ID); !errors.Is(err, student.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(std.ID); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}

	recent, _ := activitySvc.Recent(1)
	if got, want := recent[0].Message, "Student Charlie Davis removed"; got != want {
		t.Errorf("activity message = %q, want %q", got, want)
	}
}

func TestService_QueryByGroup(t *testing.T) {
	db := testutil.NewStore(t)
	repo := inmemdb.NewStudentRepository(db)
	grpRepo := inmemdb.NewGroupRepository(db)
	svc := student.NewService(repo, activity.NewService(inmemdb.NewActivityRepository(db)))

	alice := testutil.CreateStudent(t, repo, "Alice Johnson", "Mathematics", 500)
	testutil.CreateStudent(t, repo, "Bob Smith", "Mathematics", 450)
	grp := testutil.CreateGroup(t, grpRepo, "Math A", "Mathematics")

	if _, err := grpRepo.ReplaceGroupStudents(grp.ID, []string{alice.ID}); err != nil {
		t.Fatalf("ReplaceGroupStudents() failed: %v", err)
	}

	members, err := svc.QueryByGroup(grp.ID)
	if err != nil {
		t.Fatalf("QueryByGroup() failed: %v", err)
	}
	if got, want := len(members), 1; got != want {
		t.Fatalf("members = %d, want %d", got, want)
	}
	if members[0].ID != alice.ID {
		t.Errorf("member = %s, want %s", members[0].Name, alice.Name)
	}
}
