package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strconv"
	"testing"

	"github.com/trezcool/educrm/core/activity"
	"github.com/trezcool/educrm/core/billing"
	"github.com/trezcool/educrm/core/group"
	"github.com/trezcool/educrm/core/points"
	"github.com/trezcool/educrm/core/student"
	"github.com/trezcool/educrm/core/teacher"
	emailsvc "github.com/trezcool/educrm/services/email"
	"github.com/trezcool/educrm/storage/database"
	inmemdb "github.com/trezcool/educrm/storage/database/inmem"
	testutil "github.com/trezcool/educrm/tests"
)

// fakeSnapshotStore keeps the saved snapshot in memory so seed/report/remind
// can round-trip without a live DB.
type fakeSnapshotStore struct {
	snap database.Snapshot
}

func (st *fakeSnapshotStore) LoadSnapshot(ctx context.Context) (database.Snapshot, error) {
	return st.snap, nil
}

func (st *fakeSnapshotStore) SaveSnapshot(ctx context.Context, snap database.Snapshot) error {
	st.snap = snap
	return nil
}

func setup(t *testing.T) (*commandLine, *fakeSnapshotStore) {
	conf := testutil.NewConfig(t)
	store := testutil.NewStore(t)
	snapStore := &fakeSnapshotStore{}

	emailsvc.ClearSentMessages()
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	activitySvc := activity.NewService(inmemdb.NewActivityRepository(store))

	return &commandLine{
		conf:        conf,
		store:       store,
		snapStore:   snapStore,
		activitySvc: activitySvc,
		teacherSvc:  teacher.NewService(inmemdb.NewTeacherRepository(store), activitySvc),
		studentSvc:  student.NewService(inmemdb.NewStudentRepository(store), activitySvc),
		groupSvc:    group.NewService(inmemdb.NewGroupRepository(store), activitySvc),
		pointsSvc:   points.NewService(inmemdb.NewPointsRepository(store), activitySvc),
		billingSvc:  billing.NewService(inmemdb.NewBillingRepository(store), activitySvc, mailSvc, conf),
	}, snapStore
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_seed(t *testing.T) {
	cli, snapStore := setup(t)

	t.Run("declined prompt", func(t *testing.T) {
		confirmFunc = func(prompt string) (bool, error) { return false, nil }
		if err := cli.run([]string{"admin", "seed"}); err != errHelp {
			t.Errorf("cli.run() error = %v, wantErr %v", err, errHelp)
		}
		if len(snapStore.snap.Teachers) != 0 {
			t.Error("declined seed must not write a snapshot")
		}
	})

	t.Run("forced", func(t *testing.T) {
		if err := cli.run([]string{"admin", "seed", "-force"}); err != nil {
			t.Fatalf("cli.run() unexpected error = %v", err)
		}
		if got, want := len(snapStore.snap.Teachers), 3; got != want {
			t.Errorf("snapshot teachers = %d, want %d", got, want)
		}
		if got, want := len(snapStore.snap.Students), 3; got != want {
			t.Errorf("snapshot students = %d, want %d", got, want)
		}
		if got, want := len(snapStore.snap.Groups), 1; got != want {
			t.Errorf("snapshot groups = %d, want %d", got, want)
		}
		if got, want := len(snapStore.snap.Payments), 2; got != want {
			t.Errorf("snapshot payments = %d, want %d", got, want)
		}
	})
}

func Test_commandLine_report(t *testing.T) {
	cli, _ := setup(t)

	confirmFunc = func(prompt string) (bool, error) { return true, nil }
	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}
	if err := cli.run([]string{"admin", "report", "-limit", "5"}); err != nil {
		t.Errorf("cli.run() unexpected error = %v", err)
	}
}

func Test_commandLine_remind(t *testing.T) {
	cli, _ := setup(t)

	if err := cli.run([]string{"admin", "seed", "-force"}); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}

	emailsvc.ClearSentMessages()
	if err := cli.run([]string{"admin", "remind"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}
	// only Charlie Davis is overdue in the demo dataset
	if got, want := len(emailsvc.SentMessages), 1; got != want {
		t.Fatalf("sent reminders = %d, want %d", got, want)
	}
	if got, want := emailsvc.SentMessages[0].Subject, "Payment overdue"; got != want {
		t.Errorf("reminder subject = %q, want %q", got, want)
	}
}
