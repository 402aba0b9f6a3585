package main

import (
	"bufio"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/trezcool/educrm/core"
	"github.com/trezcool/educrm/core/activity"
	"github.com/trezcool/educrm/core/billing"
	"github.com/trezcool/educrm/core/group"
	"github.com/trezcool/educrm/core/points"
	"github.com/trezcool/educrm/core/student"
	"github.com/trezcool/educrm/core/teacher"
	"github.com/trezcool/educrm/storage/database"
	inmemdb "github.com/trezcool/educrm/storage/database/inmem"
)

var (
	confirmFunc = confirm // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf      *core.Config
	db        *sql.DB
	store     *inmemdb.DB
	snapStore database.SnapshotStore

	activitySvc *activity.Service
	teacherSvc  *teacher.Service
	studentSvc  *student.Service
	groupSvc    *group.Service
	pointsSvc   *points.Service
	billingSvc  *billing.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - manage DB migrations (up, down, status, ...)")
	fmt.Println("  seed [-force]          - replace all stored data with demo fixtures")
	fmt.Println("  report [-limit N]      - print dashboard metrics and recent activity")
	fmt.Println("  remind                 - email overdue payment reminders")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedForce := seedCmd.Bool("force", false, "Skip the confirmation prompt.")

	reportCmd := flag.NewFlagSet("report", flag.ExitOnError)
	reportLimit := reportCmd.Int("limit", 0, "Number of recent activity entries to show (defaults to the configured log size).")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		if !*seedForce {
			ok, err := confirmFunc("This replaces all stored data with demo fixtures. Continue? [y/N] ")
			if err != nil {
				return err
			}
			if !ok {
				return errHelp
			}
		}
		return cli.seed()
	case "report":
		if err := reportCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.report(*reportLimit)
	case "remind":
		return cli.remind()
	default:
		cli.printUsage()
		return errHelp
	}
}

func confirm(prompt string) (bool, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
