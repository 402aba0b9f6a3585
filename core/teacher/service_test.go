package teacher_test

import (
	"errors"
	"testing"
	"time"

	"github.com/trezcool/educrm/core"
	"github.com/trezcool/educrm/core/activity"
	"github.com/trezcool/educrm/core/teacher"
	inmemdb "github.com/trezcool/educrm/storage/database/inmem"
	testutil "github.com/trezcool/educrm/tests"
)

func setup(t *testing.T) (*teacher.Service, teacher.Repository, *activity.Service) {
	db := testutil.NewStore(t)
	repo := inmemdb.NewTeacherRepository(db)
	activitySvc := activity.NewService(inmemdb.NewActivityRepository(db))
	return teacher.NewService(repo, activitySvc), repo, activitySvc
}

func TestService_Create(t *testing.T) {
	svc, _, activitySvc := setup(t)

	tests := []struct {
		name    string
		nt      teacher.NewTeacher
		wantErr bool
	}{
		{name: "ok", nt: teacher.NewTeacher{Name: "John Smith", Email: "john@educrm.com", Subject: "Mathematics", Salary: 2500, JoinDate: time.Now()}},
		{name: "missing name", nt: teacher.NewTeacher{Subject: "Mathematics"}, wantErr: true},
		{name: "missing subject", nt: teacher.NewTeacher{Name: "John Smith"}, wantErr: true},
		{name: "bad email", nt: teacher.NewTeacher{Name: "John Smith", Subject: "Mathematics", Email: "nope"}, wantErr: true},
		{name: "negative salary", nt: teacher.NewTeacher{Name: "John Smith", Subject: "Mathematics", Salary: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tch, err := svc.Create(tt.nt)
			if tt.wantErr {
				var vErr *core.ValidationError
				if !errors.As(err, &vErr) {
					t.Errorf("Create() error = %v, want ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() failed: %v", err)
			}
			if tch.Status != teacher.StatusActive {
				t.Error("new teachers must start active")
			}
		})
	}

	recent, err := activitySvc.Recent(1)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if got, want := recent[0].Message, "New teacher John Smith added"; got != want {
		t.Errorf("activity message = %q, want %q", got, want)
	}
}

func TestService_Update(t *testing.T) {
	svc, repo, _ := setup(t)

	tch := testutil.CreateTeacher(t, repo, "John Smith", "Mathematics", 2500)

	newSalary := 2800.0
	got, err := svc.Update(tch.ID, teacher.UpdateTeacher{Salary: &newSalary})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if got.Salary != newSalary {
		t.Errorf("salary = %v, want %v", got.Salary, newSalary)
	}
	if got.Name != tch.Name || got.Subject != tch.Subject {
		t.Error("unset fields must be left untouched")
	}

	if _, err := svc.Update("nope", teacher.UpdateTeacher{}); !errors.Is(err, teacher.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc, repo, activitySvc := setup(t)

	tch := testutil.CreateTeacher(t, repo, "Mike Wilson", "Science", 1800)

	if err := svc.Delete(tch.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := svc.GetByID(tch.ID); !errors.Is(err, teacher.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}

	// deleting again is a no-op and logs nothing new
	recent, _ := activitySvc.Recent(0)
	before := len(recent)
	if err := svc.Delete(tch.ID); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}
	recent, _ = activitySvc.Recent(0)
	if len(recent) != before {
		t.Error("idempotent delete must not log an activity")
	}

	if got, want := recent[0].Message, "Teacher Mike Wilson removed"; got != want {
		t.Errorf("activity message = %q, want %q", got, want)
	}
}

func TestActiveCount(t *testing.T) {
	teachers := []teacher.Teacher{
		{Status: teacher.StatusActive},
		{Status: teacher.StatusInactive},
		{Status: teacher.StatusActive},
	}
	if got := teacher.ActiveCount(teachers); got != 2 {
		t.Errorf("ActiveCount() = %d, want 2", got)
	}
}
