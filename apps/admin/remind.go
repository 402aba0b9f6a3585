package main

import (
	"context"
	"fmt"
)

// remind sends a payment reminder to every overdue student in the stored
// snapshot.
func (cli *commandLine) remind() error {
	snap, err := cli.snapStore.LoadSnapshot(context.Background())
	if err != nil {
		return err
	}
	cli.store.Restore(snap)

	students, err := cli.studentSvc.QueryAll()
	if err != nil {
		return err
	}
	sent := cli.billingSvc.SendOverdueReminders(students)
	fmt.Printf("%d reminder(s) sent\n", sent)
	return nil
}
