package points_test

import (
	"errors"
	"testing"
	"time"

	"github.com/trezcool/educrm/core"
	"github.com/trezcool/educrm/core/activity"
	"github.com/trezcool/educrm/core/points"
	inmemdb "github.com/trezcool/educrm/storage/database/inmem"
	testutil "github.com/trezcool/educrm/tests"
)

func setup(t *testing.T) (*points.Service, points.Repository, *activity.Service) {
	db := testutil.NewStore(t)
	repo := inmemdb.NewPointsRepository(db)
	activitySvc := activity.NewService(inmemdb.NewActivityRepository(db))
	return points.NewService(repo, activitySvc), repo, activitySvc
}

func TestService_Award(t *testing.T) {
	svc, _, activitySvc := setup(t)

	if _, err := svc.Award(points.NewStudentPoint{StudentID: "s1", Points: 10}); err == nil {
		t.Error("Award() must reject a missing reason")
	}

	ent, err := svc.Award(points.NewStudentPoint{StudentID: "s1", GroupID: "g1", Points: 10, Reason: "Participated actively in class", Date: time.Now()})
	if err != nil {
		t.Fatalf("Award() failed: %v", err)
	}
	if ent.ID == "" {
		t.Error("Award() must assign an id")
	}

	recent, err := activitySvc.Recent(1)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if got, want := recent[0].Message, `Assigned 10 points for "Participated actively in class"`; got != want {
		t.Errorf("activity message = %q, want %q", got, want)
	}
}

func TestService_Spend(t *testing.T) {
	svc, repo, activitySvc := setup(t)

	testutil.AwardPoints(t, repo, "s1", "g1", 10, "Participated actively in class")
	testutil.AwardPoints(t, repo, "s1", "g1", 5, "Completed extra homework")

	ent, err := svc.Spend("s1", 8, "Scientific Calculator")
	if err != nil {
		t.Fatalf("Spend() failed: %v", err)
	}
	if ent.Points != -8 {
		t.Errorf("spend entry points = %d, want -8", ent.Points)
	}
	if got, want := ent.Reason, "Bought Scientific Calculator"; got != want {
		t.Errorf("spend entry reason = %q, want %q", got, want)
	}

	total, err := svc.TotalPoints("s1")
	if err != nil {
		t.Fatalf("TotalPoints() failed: %v", err)
	}
	if want := 7; total != want {
		t.Errorf("TotalPoints() = %d, want %d", total, want)
	}

	recent, err := activitySvc.Recent(1)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if got, want := recent[0].Message, `Spent 8 points on "Scientific Calculator"`; got != want {
		t.Errorf("activity message = %q, want %q", got, want)
	}
}

func TestService_Spend_insufficient(t *testing.T) {
	svc, repo, _ := setup(t)

	testutil.AwardPoints(t, repo, "s1", "g1", 5, "Completed extra homework")

	if _, err := svc.Spend("s1", 8, "Scientific Calculator"); !errors.Is(err, points.ErrInsufficientPoints) {
		t.Fatalf("Spend() error = %v, want ErrInsufficientPoints", err)
	}

	// the ledger must be untouched
	total, err := svc.TotalPoints("s1")
	if err != nil {
		t.Fatalf("TotalPoints() failed: %v", err)
	}
	if want := 5; total != want {
		t.Errorf("TotalPoints() = %d, want %d", total, want)
	}
	entries, err := svc.StudentEntries("s1")
	if err != nil {
		t.Fatalf("StudentEntries() failed: %v", err)
	}
	if got, want := len(entries), 1; got != want {
		t.Errorf("ledger entries = %d, want %d", got, want)
	}
}

func TestService_Spend_invalidInput(t *testing.T) {
	svc, _, _ := setup(t)

	tests := []struct {
		name      string
		studentID string
		amount    int
		item      string
	}{
		{name: "no student", amount: 5, item: "Notebook"},
		{name: "zero amount", studentID: "s1", item: "Notebook"},
		{name: "negative amount", studentID: "s1", amount: -3, item: "Notebook"},
		{name: "blank item", studentID: "s1", amount: 5, item: "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Spend(tt.studentID, tt.amount, tt.item)
			var vErr *core.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("Spend() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestService_AveragePoints(t *testing.T) {
	svc, repo, _ := setup(t)

	avg, err := svc.AveragePoints("g1")
	if err != nil {
		t.Fatalf("AveragePoints() failed: %v", err)
	}
	if avg != 0 {
		t.Errorf("AveragePoints() = %d, want 0 on empty group", avg)
	}

	// per ledger entry, not per student
	testutil.AwardPoints(t, repo, "s1", "g1", 10, "Participated actively in class")
	testutil.AwardPoints(t, repo, "s2", "g1", 5, "Completed extra homework")
	testutil.AwardPoints(t, repo, "s3", "g2", 100, "Different group")

	avg, err = svc.AveragePoints("g1")
	if err != nil {
		t.Fatalf("AveragePoints() failed: %v", err)
	}
	if want := 8; avg != want { // 15/2 rounded half-up
		t.Errorf("AveragePoints() = %d, want %d", avg, want)
	}
}

func TestSumAndAverage(t *testing.T) {
	entries := []points.StudentPoint{{Points: 10}, {Points: 5}, {Points: -8}}
	if got, want := points.Sum(entries), 7; got != want {
		t.Errorf("Sum() = %d, want %d", got, want)
	}
	if got, want := points.Average(entries), 2; got != want { // 7/3 rounded half-up
		t.Errorf("Average() = %d, want %d", got, want)
	}
	if got := points.Average(nil); got != 0 {
		t.Errorf("Average(nil) = %d, want 0", got)
	}
}
