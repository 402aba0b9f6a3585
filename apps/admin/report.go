package main

import (
	"context"
	"fmt"

	"github.com/trezcool/educrm/core/group"
	"github.com/trezcool/educrm/core/student"
	"github.com/trezcool/educrm/core/teacher"
)

// report restores the stored snapshot and prints the dashboard numbers.
func (cli *commandLine) report(limit int) error {
	if limit <= 0 {
		limit = cli.conf.ActivityLogSize
	}
	snap, err := cli.snapStore.LoadSnapshot(context.Background())
	if err != nil {
		return err
	}
	cli.store.Restore(snap)

	teachers, err := cli.teacherSvc.QueryAll()
	if err != nil {
		return err
	}
	students, err := cli.studentSvc.QueryAll()
	if err != nil {
		return err
	}
	groups, err := cli.groupSvc.QueryAll()
	if err != nil {
		return err
	}
	revenue, err := cli.billingSvc.TotalRevenue()
	if err != nil {
		return err
	}

	fmt.Printf("Teachers:      %d (%d active)\n", len(teachers), teacher.ActiveCount(teachers))
	fmt.Printf("Students:      %d (%d active)\n", len(students), student.ActiveCount(students))
	fmt.Printf("Groups:        %d (%d active)\n", len(groups), group.ActiveCount(groups))
	fmt.Printf("Total revenue: %.2f\n", revenue)

	fmt.Println("\nGroups:")
	for _, grp := range groups {
		rate, err := cli.groupSvc.GroupAttendanceRate(grp.ID)
		if err != nil {
			return err
		}
		avg, err := cli.pointsSvc.AveragePoints(grp.ID)
		if err != nil {
			return err
		}
		fmt.Printf("  %-20s %2d students, attendance %3d%%, avg points %d\n", grp.Name, group.Occupancy(grp), rate, avg)
	}

	recent, err := cli.activitySvc.Recent(limit)
	if err != nil {
		return err
	}
	fmt.Println("\nRecent activity:")
	for _, act := range recent {
		fmt.Printf("  %s [%s] %s\n", act.Timestamp.Format("2006-01-02 15:04"), act.Type, act.Message)
	}
	return nil
}
