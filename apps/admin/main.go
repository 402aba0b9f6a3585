package main

import (
	"fmt"
	"log"
	"os"

	"github.com/trezcool/educrm/core"
	"github.com/trezcool/educrm/core/activity"
	"github.com/trezcool/educrm/core/billing"
	"github.com/trezcool/educrm/core/group"
	"github.com/trezcool/educrm/core/points"
	"github.com/trezcool/educrm/core/student"
	"github.com/trezcool/educrm/core/teacher"
	emailsvc "github.com/trezcool/educrm/services/email"
	logsvc "github.com/trezcool/educrm/services/logger"
	"github.com/trezcool/educrm/storage/database"
	inmemdb "github.com/trezcool/educrm/storage/database/inmem"
	sqlxrepos "github.com/trezcool/educrm/storage/database/sqlx"
)

var logger core.Logger

func main() {
	defer os.Exit(0)

	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig(core.Getwd())

	rollLogger := logsvc.NewRollbarLogger(std, conf)
	rollLogger.Enable(!(conf.Debug || conf.TestMode))
	logger = rollLogger

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	// authoritative in-memory store; postgres only holds snapshots
	store, err := inmemdb.Open()
	errAndDie(err)

	var mailSvc core.EmailService = emailsvc.NewConsoleService(conf)
	if conf.SendgridApiKey != "" {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	activitySvc := activity.NewService(inmemdb.NewActivityRepository(store))

	// start CLI
	cli := commandLine{
		conf:        conf,
		db:          db.DB,
		store:       store,
		snapStore:   sqlxrepos.NewSnapshotStore(db),
		activitySvc: activitySvc,
		teacherSvc:  teacher.NewService(inmemdb.NewTeacherRepository(store), activitySvc),
		studentSvc:  student.NewService(inmemdb.NewStudentRepository(store), activitySvc),
		groupSvc:    group.NewService(inmemdb.NewGroupRepository(store), activitySvc),
		pointsSvc:   points.NewService(inmemdb.NewPointsRepository(store), activitySvc),
		billingSvc:  billing.NewService(inmemdb.NewBillingRepository(store), activitySvc, mailSvc, conf),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %s", err))
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error())
	}
}
