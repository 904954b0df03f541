package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/pulseboard-dev/pulseboard/backend/internal/catalog"
	"github.com/pulseboard-dev/pulseboard/backend/internal/config"
	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
	"github.com/pulseboard-dev/pulseboard/backend/internal/repository"
	"github.com/pulseboard-dev/pulseboard/backend/internal/seed"
	"github.com/pulseboard-dev/pulseboard/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation (1: random operators, 2: random submissions, 3: random financial months, 4: demo data)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("could not create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not touch the database, so ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("could not connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("number of operators must be positive")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomOperator(cfg.Seed.Operator.Password, "pulseboard.dev")
				if err != nil {
					slog.Error("could not generate operator", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("could not insert operator", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("operators inserted", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("number of submissions must be positive")
			return
		}

		users, err := repo.GetAllUsers()
		if err != nil {
			slog.Error("could not load users", slog.String("error", err.Error()))
			return
		}
		if len(users) == 0 {
			slog.Error("no users to attribute submissions to, seed operators first")
			return
		}

		products := catalog.All()
		weekStart := mondayOfCurrentWeek()

		cnt := 0
		for i := 0; i < n; i++ {
			product := products[rand.Intn(len(products))]
			user := users[rand.Intn(len(users))]
			periodStart := weekStart.AddDate(0, 0, -7*rand.Intn(8)).Format("2006-01-02")

			submission := utils.GenerateRandomSubmission(product, user.Email, domain.PeriodWeekly, periodStart)
			if err := repo.UpsertSubmission(submission); err != nil {
				slog.Error("could not insert submission", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("submissions inserted", slog.Int("count", cnt))
	case 3:
		if n <= 0 {
			slog.Error("number of months must be positive")
			return
		}

		now := time.Now()
		cnt := 0
		for i := 0; i < n; i++ {
			periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0).Format("2006-01-02")
			record := utils.GenerateRandomFinancialRecord(periodStart, "seed@pulseboard.dev")
			if err := repo.UpsertFinancialRecord(record); err != nil {
				slog.Error("could not insert financial record", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("financial months inserted", slog.Int("count", cnt))
	case 4:
		seed.SeedDemoData(repo, cfg.Seed.Operator.Password)
	default:
		slog.Error("unknown operation")
	}
}

func mondayOfCurrentWeek() time.Time {
	now := time.Now()
	offset := (int(now.Weekday()) + 6) % 7
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}
