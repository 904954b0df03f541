package utils

import (
	cryptorand "crypto/rand"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/pulseboard-dev/pulseboard/backend/internal/catalog"
	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"Alex", "Sam", "Jordan", "Taylor", "Morgan", "Casey", "Riley", "Quinn",
	"Avery", "Dana", "Jamie", "Robin", "Lee", "Drew", "Kim", "Pat",
}
var lastNames = []string{
	"Smith", "Johnson", "Lee", "Brown", "Garcia", "Miller", "Davis", "Wilson",
	"Moore", "Clark", "Hall", "Young", "King", "Wright", "Scott", "Green",
}

func GenerateRandomName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")
var alphanumerics = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}

// GenerateSessionID returns a cookie-safe random identifier used as the
// server-side session key. Unlike the seed helpers it draws from crypto/rand:
// session ids must be unpredictable.
func GenerateSessionID(length int) string {
	buf := make([]byte, length)
	if _, err := cryptorand.Read(buf); err != nil {
		panic(err)
	}

	id := make([]rune, length)
	for i, b := range buf {
		id[i] = alphanumerics[int(b)%len(alphanumerics)]
	}
	return string(id)
}

// GenerateRandomOperator builds an operator account with a plausible name and
// a catalog product assignment for seeding development databases.
func GenerateRandomOperator(password string, emailDomain string) (*domain.User, error) {
	name := GenerateRandomName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	products := catalog.All()
	assigned := products[rand.Intn(len(products))].ID

	user := &domain.User{
		Email:        fmt.Sprintf("%s%d@%s", lowerFirstWord(name), rand.Intn(1000), emailDomain),
		PasswordHash: string(passwordHash),
		Name:         name,
		Role:         domain.RoleOperator,
		Products:     []string{assigned},
	}

	return user, nil
}

func lowerFirstWord(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r == ' ' {
			break
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

// GenerateRandomSubmission fills a random catalog field of the given product
// for the given period with a random metric value.
func GenerateRandomSubmission(product catalog.Product, userEmail string, periodType domain.PeriodType, periodStart string) *domain.Submission {
	field := product.Fields[rand.Intn(len(product.Fields))]
	return &domain.Submission{
		ProductID:   product.ID,
		FieldName:   field.Name,
		Value:       strconv.Itoa(rand.Intn(1000)),
		UserEmail:   userEmail,
		PeriodType:  periodType,
		PeriodStart: periodStart,
	}
}

// GenerateRandomFinancialRecord produces a month record with loosely
// consistent figures.
func GenerateRandomFinancialRecord(periodStart string, updatedBy string) *domain.FinancialRecord {
	revenue := decimal.NewFromInt(int64(rand.Intn(900000) + 100000))
	costs := revenue.Mul(decimal.NewFromFloat(0.4 + rand.Float64()*0.3)).Round(2)

	start, _ := time.Parse("2006-01-02", periodStart)
	end := start.AddDate(0, 1, -start.Day())

	return &domain.FinancialRecord{
		PeriodStart:      periodStart,
		PeriodEnd:        end.Format("2006-01-02"),
		Revenue:          revenue,
		RecurringRevenue: revenue.Mul(decimal.NewFromFloat(0.8)).Round(2),
		NewBookings:      decimal.NewFromInt(int64(rand.Intn(200000))),
		ChurnedRevenue:   decimal.NewFromInt(int64(rand.Intn(50000))),
		GrossMargin:      revenue.Sub(costs),
		OperatingCosts:   costs,
		CashBalance:      decimal.NewFromInt(int64(rand.Intn(5000000))),
		Headcount:        decimal.NewFromInt(int64(rand.Intn(200) + 10)),
		UpdatedBy:        updatedBy,
	}
}
