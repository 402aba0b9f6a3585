package main

import (
	"context"
	"time"

	"github.com/trezcool/educrm/core/billing"
	"github.com/trezcool/educrm/core/group"
	"github.com/trezcool/educrm/core/points"
	"github.com/trezcool/educrm/core/student"
	"github.com/trezcool/educrm/core/teacher"
)

// seed replaces the stored snapshot with a small demo dataset.
func (cli *commandLine) seed() error {
	now := time.Now().UTC()

	for _, nt := range []teacher.NewTeacher{
		{Name: "John Smith", Email: "john@educrm.com", Phone: "+1234567890", Subject: "Mathematics", Salary: 2500, JoinDate: now.AddDate(0, -6, 0)},
		{Name: "Sarah Johnson", Email: "sarah@educrm.com", Phone: "+1234567891", Subject: "English", Salary: 3000, JoinDate: now.AddDate(0, -5, 0)},
		{Name: "Mike Wilson", Email: "mike@educrm.com", Phone: "+1234567892", Subject: "Science", Salary: 1800, JoinDate: now.AddDate(0, -4, 0)},
	} {
		if _, err := cli.teacherSvc.Create(nt); err != nil {
			return err
		}
	}

	students := make([]student.Student, 0, 3)
	for _, ns := range []student.NewStudent{
		{Name: "Alice Johnson", Email: "alice@test.com", Phone: "+1234567893", Course: "Mathematics", Fee: 500, JoinDate: now.AddDate(0, -3, 0), PaymentStatus: student.PaymentPaid},
		{Name: "Bob Smith", Email: "bob@test.com", Phone: "+1234567894", Course: "Mathematics", Fee: 450, JoinDate: now.AddDate(0, -2, 0)},
		{Name: "Charlie Davis", Email: "charlie@test.com", Phone: "+1234567895", Course: "Physics", Fee: 450, JoinDate: now.AddDate(0, -1, 0), PaymentStatus: student.PaymentOverdue},
	} {
		std, err := cli.studentSvc.Create(ns)
		if err != nil {
			return err
		}
		students = append(students, std)
	}

	grp, err := cli.groupSvc.Create(group.NewGroup{
		Name:       "Math A",
		Subject:    "Mathematics",
		LessonTime: "09:00 - 10:30",
		LessonDays: []group.Weekday{group.Monday, group.Wednesday},
	})
	if err != nil {
		return err
	}
	if _, err = cli.groupSvc.AssignStudents(grp.ID, []string{students[0].ID, students[1].ID}); err != nil {
		return err
	}

	lsn, err := cli.groupSvc.CreateLesson(group.NewLesson{
		GroupID:  grp.ID,
		Topic:    "Introduction to Algebra",
		Date:     now.AddDate(0, 0, -7),
		Homework: "Complete exercises 1-10 in Chapter 2",
	})
	if err != nil {
		return err
	}
	for _, rec := range []group.NewAttendanceRecord{
		{LessonID: lsn.ID, GroupID: grp.ID, StudentID: students[0].ID, Date: lsn.Date, Status: group.Present},
		{LessonID: lsn.ID, GroupID: grp.ID, StudentID: students[1].ID, Date: lsn.Date, Status: group.Absent},
	} {
		if _, err = cli.groupSvc.RecordAttendance(rec); err != nil {
			return err
		}
	}

	for _, np := range []points.NewStudentPoint{
		{StudentID: students[0].ID, GroupID: grp.ID, Points: 10, Reason: "Participated actively in class", Date: now.AddDate(0, 0, -5)},
		{StudentID: students[1].ID, GroupID: grp.ID, Points: 5, Reason: "Completed extra homework", Date: now.AddDate(0, 0, -3)},
	} {
		if _, err = cli.pointsSvc.Award(np); err != nil {
			return err
		}
	}

	for _, np := range []billing.NewPayment{
		{StudentID: students[0].ID, StudentName: students[0].Name, Amount: 500, Date: now.AddDate(0, 0, -10), Status: billing.PaymentCompleted, Method: billing.MethodCard},
		{StudentID: students[1].ID, StudentName: students[1].Name, Amount: 450, Date: now.AddDate(0, 0, -2), Status: billing.PaymentPending, Method: billing.MethodCash},
	} {
		if _, err = cli.billingSvc.AddPayment(np); err != nil {
			return err
		}
	}

	for _, np := range []billing.NewProduct{
		{Name: "Premium Notebook", Description: "High-quality notebook for students", Price: 25, Category: "Stationery", Stock: 50, Image: "/notebook.png"},
		{Name: "Scientific Calculator", Description: "Advanced calculator for math classes", Price: 85, Category: "Electronics", Stock: 20, Image: "/scientific-calculator.webp"},
	} {
		if _, err = cli.billingSvc.AddProduct(np); err != nil {
			return err
		}
	}

	return cli.snapStore.SaveSnapshot(context.Background(), cli.store.Dump())
}
