package seed

import (
	"log/slog"
	"time"

	"github.com/pulseboard-dev/pulseboard/backend/internal/catalog"
	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
	"github.com/pulseboard-dev/pulseboard/backend/internal/repository"
	"github.com/pulseboard-dev/pulseboard/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// demo operators, one per catalog product
var demoOperators = []struct {
	Email   string
	Name    string
	Product string
}{
	{Email: "dana.ops@pulseboard.dev", Name: "Dana Miller", Product: "sams"},
	{Email: "sam.ops@pulseboard.dev", Name: "Sam Clark", Product: "stigviewer"},
	{Email: "robin.ops@pulseboard.dev", Name: "Robin Hall", Product: "navigator"},
}

// SeedDemoData inserts a fixed set of operators plus a few recent weeks of
// submissions and months of financial figures, enough to click through the
// portal locally.
func SeedDemoData(repo *repository.Repository, operatorPassword string) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(operatorPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("could not hash operator password", "error", err)
		return
	}

	for _, op := range demoOperators {
		user := &domain.User{
			Email:        op.Email,
			PasswordHash: string(passwordHash),
			Name:         op.Name,
			Role:         domain.RoleOperator,
			Products:     []string{op.Product},
		}
		if err := repo.CreateUser(user); err != nil {
			// likely already seeded, keep going
			slog.Error("could not create demo operator", "email", op.Email, "error", err)
			continue
		}

		product, ok := catalog.Get(op.Product)
		if !ok {
			continue
		}

		// four weekly periods ending this week, every field filled
		weekStart := mondayOf(time.Now()).AddDate(0, 0, -21)
		for week := 0; week < 4; week++ {
			periodStart := weekStart.AddDate(0, 0, week*7).Format("2006-01-02")
			for range product.Fields {
				submission := utils.GenerateRandomSubmission(product, user.Email, domain.PeriodWeekly, periodStart)
				if err := repo.UpsertSubmission(submission); err != nil {
					slog.Error("could not seed submission", "error", err)
				}
			}
		}
	}

	// six months of financials
	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)
	for month := 0; month < 6; month++ {
		periodStart := monthStart.AddDate(0, month, 0).Format("2006-01-02")
		record := utils.GenerateRandomFinancialRecord(periodStart, "seed@pulseboard.dev")
		if err := repo.UpsertFinancialRecord(record); err != nil {
			slog.Error("could not seed financial record", "error", err)
		}
	}

	slog.Info("demo data seeded")
}

func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}
