package services

import (
	"log/slog"
	"math/rand"
	"time"

	"spendtrack/internal/models"
	"spendtrack/internal/repositories"

	"github.com/shopspring/decimal"
)

// merchantInfo pairs a merchant name with the category it spends against
type merchantInfo struct {
	Name     string
	Category string
}

// LedgerSeederInterface generates realistic expense history for development
// environments. Seeded data includes recurring subscriptions and occasional
// outliers so the analytics endpoints have something to report.
type LedgerSeederInterface interface {
	SeedExpenses(count, days int) (int, error)
}

type ledgerSeeder struct {
	expenseRepo  repositories.ExpenseRepositoryInterface
	merchantPool []merchantInfo
	rng          *rand.Rand
	logger       *slog.Logger
	nowFn        func() time.Time
}

// NewLedgerSeeder creates a development-data seeder over the expense ledger
func NewLedgerSeeder(
	expenseRepo repositories.ExpenseRepositoryInterface,
	logger *slog.Logger,
) LedgerSeederInterface {
	source := rand.NewSource(time.Now().UnixNano())
	return &ledgerSeeder{
		expenseRepo:  expenseRepo,
		merchantPool: initializeMerchantPool(),
		rng:          rand.New(source),
		logger:       logger,
		nowFn:        time.Now,
	}
}

// initializeMerchantPool creates a pool of realistic merchants per category
func initializeMerchantPool() []merchantInfo {
	return []merchantInfo{
		// Groceries
		{"Walmart Supercenter", models.CategoryGroceries},
		{"Kroger", models.CategoryGroceries},
		{"Whole Foods Market", models.CategoryGroceries},
		{"Trader Joe's", models.CategoryGroceries},
		{"Costco Wholesale", models.CategoryGroceries},
		{"Aldi", models.CategoryGroceries},

		// Dining
		{"Starbucks", models.CategoryDining},
		{"Chipotle Mexican Grill", models.CategoryDining},
		{"Subway", models.CategoryDining},
		{"Panera Bread", models.CategoryDining},
		{"Olive Garden", models.CategoryDining},
		{"Taco Bell", models.CategoryDining},

		// Transportation
		{"Uber", models.CategoryTransportation},
		{"Lyft", models.CategoryTransportation},
		{"Shell", models.CategoryTransportation},
		{"Chevron", models.CategoryTransportation},
		{"Metro Transit", models.CategoryTransportation},

		// Shopping
		{"Amazon.com", models.CategoryShopping},
		{"Best Buy", models.CategoryShopping},
		{"Home Depot", models.CategoryShopping},
		{"Nike", models.CategoryShopping},
		{"IKEA", models.CategoryShopping},

		// Entertainment
		{"AMC Theaters", models.CategoryEntertainment},
		{"Regal Cinemas", models.CategoryEntertainment},
		{"Steam", models.CategoryEntertainment},

		// Healthcare
		{"CVS Pharmacy", models.CategoryHealthcare},
		{"Walgreens", models.CategoryHealthcare},
		{"LabCorp", models.CategoryHealthcare},

		// Travel
		{"Delta Air Lines", models.CategoryTravel},
		{"Marriott Hotels", models.CategoryTravel},

		// Education
		{"Udemy", models.CategoryEducation},
		{"Coursera", models.CategoryEducation},

		// Other
		{"USPS", models.CategoryOther},
		{"City Parking", models.CategoryFees},
	}
}

// subscriptions are charged monthly at a fixed amount, which makes them
// detectable by recurring pattern analysis
var subscriptions = []struct {
	Place    string
	Category string
	Amount   float64
	Day      int
}{
	{"Netflix", models.CategoryEntertainment, 15.49, 3},
	{"Spotify", models.CategoryEntertainment, 10.99, 7},
	{"Comcast Xfinity", models.CategoryBillsUtilities, 79.99, 12},
	{"Verizon Wireless", models.CategoryBillsUtilities, 65.00, 15},
	{"PG&E", models.CategoryBillsUtilities, 120.00, 20},
	{"Planet Fitness", models.CategoryHealthcare, 24.99, 1},
}

// SeedExpenses writes count randomized expenses plus monthly subscription
// charges spread over the trailing days window. Returns the number of
// expenses created.
func (g *ledgerSeeder) SeedExpenses(count, days int) (int, error) {
	end := g.nowFn().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -days)

	created := 0

	for _, sub := range subscriptions {
		for d := firstChargeOnOrAfter(start, sub.Day); !d.After(end); d = d.AddDate(0, 1, 0) {
			expense := &models.Expense{
				Date:     d,
				Place:    sub.Place,
				Amount:   decimal.NewFromFloat(sub.Amount),
				Category: sub.Category,
				Notes:    "Seeded subscription charge",
			}
			if err := g.expenseRepo.Create(expense); err != nil {
				return created, err
			}
			created++
		}
	}

	for i := 0; i < count; i++ {
		merchant := g.merchantPool[g.rng.Intn(len(g.merchantPool))]
		expense := &models.Expense{
			Date:     g.randomDate(start, end),
			Place:    merchant.Name,
			Amount:   g.randomAmount(merchant.Category),
			Category: merchant.Category,
			Notes:    "Seeded expense",
		}
		if err := g.expenseRepo.Create(expense); err != nil {
			return created, err
		}
		created++
	}

	g.logger.Info("seeded expense ledger", "created", created, "days", days)
	return created, nil
}

// randomAmount draws a category-plausible amount. Roughly one expense in
// forty is a large outlier so anomaly detection has candidates.
func (g *ledgerSeeder) randomAmount(category string) decimal.Decimal {
	minValue, maxValue := amountRange(category)
	amount := minValue + g.rng.Float64()*(maxValue-minValue)
	if g.rng.Intn(40) == 0 {
		amount *= 4
	}
	return decimal.NewFromFloat(amount).Round(2)
}

func amountRange(category string) (float64, float64) {
	ranges := map[string][2]float64{
		models.CategoryGroceries:      {15.00, 250.00},
		models.CategoryDining:         {8.00, 120.00},
		models.CategoryTransportation: {10.00, 80.00},
		models.CategoryShopping:       {25.00, 450.00},
		models.CategoryEntertainment:  {10.00, 60.00},
		models.CategoryBillsUtilities: {50.00, 250.00},
		models.CategoryHealthcare:     {20.00, 300.00},
		models.CategoryTravel:         {100.00, 800.00},
		models.CategoryEducation:      {30.00, 200.00},
		models.CategoryFees:           {2.00, 40.00},
	}

	if r, exists := ranges[category]; exists {
		return r[0], r[1]
	}
	return 10.00, 100.00
}

// randomDate picks a day in [start, end] weighted toward weekends, matching
// how discretionary spending actually clusters
func (g *ledgerSeeder) randomDate(start, end time.Time) time.Time {
	totalDays := int(end.Sub(start).Hours()/24) + 1
	for {
		date := start.AddDate(0, 0, g.rng.Intn(totalDays))
		weekday := date.Weekday()
		if weekday == time.Saturday || weekday == time.Sunday {
			return date
		}
		// Weekdays pass two thirds of the time
		if g.rng.Intn(3) != 0 {
			return date
		}
	}
}

// firstChargeOnOrAfter finds the first monthly charge date on the given day
// of month that falls on or after start
func firstChargeOnOrAfter(start time.Time, day int) time.Time {
	charge := time.Date(start.Year(), start.Month(), day, 0, 0, 0, 0, time.UTC)
	if charge.Before(start) {
		charge = charge.AddDate(0, 1, 0)
	}
	return charge
}
