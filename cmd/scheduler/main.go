// Notdienst scheduler CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/notdienst/scheduler/internal/config"
	"github.com/notdienst/scheduler/internal/database"
	"github.com/notdienst/scheduler/internal/export"
	"github.com/notdienst/scheduler/internal/ingest"
	"github.com/notdienst/scheduler/pkg/logger"
	"github.com/notdienst/scheduler/pkg/model"
	"github.com/notdienst/scheduler/pkg/scheduler"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	logger.Init(logger.Config{Level: os.Getenv("APP_LOG_LEVEL"), Format: "console", Output: "stderr"})

	staffPath := flag.String("staff", "", "path to the staff roster CSV")
	vacationPath := flag.String("vacations", "", "path to the vacation blackout CSV")
	quarterStart := flag.String("quarter-start", "", "quarter start date, YYYY-MM-DD")
	outPath := flag.String("out", "", "path to write the schedule CSV (defaults to stdout)")
	budgetSeconds := flag.Int("budget", 120, "solver wall-clock budget in seconds")
	seed := flag.Int("seed", 0, "solver tie-break seed")
	orgIDFlag := flag.String("org-id", "", "organization UUID; enables loading/saving carry-forward context from Postgres")
	flag.Parse()

	fmt.Fprintf(os.Stderr, "notdienst-scheduler %s (%s, %s)\n", Version, BuildTime, GitCommit)

	if *staffPath == "" || *quarterStart == "" {
		fmt.Fprintln(os.Stderr, "usage: scheduler -staff roster.csv -quarter-start 2026-01-01 [-vacations vacations.csv] [-out schedule.csv]")
		os.Exit(2)
	}

	staffFile, err := os.Open(*staffPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open staff csv")
	}
	defer staffFile.Close()

	staff, err := ingest.ParseStaffCSV(staffFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse staff csv")
	}

	var vacations []model.Vacation
	if *vacationPath != "" {
		vacationFile, err := os.Open(*vacationPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("open vacations csv")
		}
		defer vacationFile.Close()

		vacations, err = ingest.ParseVacationCSV(vacationFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse vacations csv")
		}
	}

	var orgID uuid.UUID
	var planStore *database.PreviousPlanStore
	if *orgIDFlag != "" {
		orgID, err = uuid.Parse(*orgIDFlag)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse org-id")
		}
		cfg, err := config.Load()
		if err != nil {
			logger.Fatal().Err(err).Msg("load config")
		}
		db, err := database.New(&cfg.Database)
		if err != nil {
			logger.Fatal().Err(err).Msg("connect to database")
		}
		defer db.Close()
		planStore = database.NewPreviousPlanStore(db)
	}

	ctx := context.Background()
	var previous *model.PreviousPlanContext
	if planStore != nil {
		previous, err = planStore.Load(ctx, orgID, *quarterStart)
		if err != nil {
			logger.Fatal().Err(err).Msg("load previous plan context")
		}
	}

	result, err := scheduler.Schedule(staff, *quarterStart, vacations, previous, time.Duration(*budgetSeconds)*time.Second, *seed)
	if err != nil {
		logger.Fatal().Err(err).Msg("schedule")
	}

	if !result.Success {
		fmt.Fprintln(os.Stderr, "no feasible schedule found:")
		for _, hint := range result.UnsatisfiableConstraints {
			fmt.Fprintln(os.Stderr, " -", hint)
		}
		os.Exit(1)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("create output file")
		}
		defer f.Close()
		out = f
	}

	if err := export.WriteScheduleCSV(out, result.Schedule); err != nil {
		logger.Fatal().Err(err).Msg("write schedule csv")
	}

	if planStore != nil {
		carryForward := scheduler.CarryForward(result.Schedule, staff, vacations)
		if err := planStore.Save(ctx, orgID, carryForward); err != nil {
			logger.Fatal().Err(err).Msg("save carry-forward context")
		}
	}

	fmt.Fprintf(os.Stderr, "soft penalty: %.2f\n", result.SoftPenalty)
	if len(result.UnsatisfiableConstraints) > 0 {
		fmt.Fprintln(os.Stderr, "validator findings:")
		for _, hint := range result.UnsatisfiableConstraints {
			fmt.Fprintln(os.Stderr, " -", hint)
		}
	}
}
