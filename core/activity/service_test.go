package activity_test

import (
	"testing"

	"github.com/trezcool/educrm/core/activity"
	inmemdb "github.com/trezcool/educrm/storage/database/inmem"
	testutil "github.com/trezcool/educrm/tests"
)

func TestService_Log_newestFirst(t *testing.T) {
	db := testutil.NewStore(t)
	svc := activity.NewService(inmemdb.NewActivityRepository(db))

	messages := []string{"first", "second", "third"}
	for _, msg := range messages {
		if _, err := svc.Log(activity.TypeRegistration, msg); err != nil {
			t.Fatalf("Log() failed: %v", err)
		}
	}

	recent, err := svc.Recent(2)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if got, want := len(recent), 2; got != want {
		t.Fatalf("entries = %d, want %d", got, want)
	}
	if recent[0].Message != "third" || recent[1].Message != "second" {
		t.Errorf("Recent() = [%s, %s], want newest first", recent[0].Message, recent[1].Message)
	}

	// limit <= 0 returns everything
	all, err := svc.Recent(0)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if got, want := len(all), len(messages); got != want {
		t.Errorf("entries = %d, want %d", got, want)
	}
}

func TestService_Log_format(t *testing.T) {
	db := testutil.NewStore(t)
	svc := activity.NewService(inmemdb.NewActivityRepository(db))

	act, err := svc.Log(activity.TypePayment, "Payment received from %s", "Alice Johnson")
	if err != nil {
		t.Fatalf("Log() failed: %v", err)
	}
	if act.ID == "" {
		t.Error("Log() must assign an id")
	}
	if act.Timestamp.IsZero() {
		t.Error("Log() must stamp the entry")
	}
	if got, want := act.Message, "Payment received from Alice Johnson"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}
