package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"os"
	"time"

	"expense_tracker/internal/domain"
	"expense_tracker/internal/repository"
	"expense_tracker/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	demoEmail    = "demo@bellcorp.com"
	demoPassword = "demo123456"
)

type sampleExpense struct {
	title    string
	category string
	min, max float64
}

var sampleExpenses = []sampleExpense{
	{"Grocery shopping", "Groceries", 400, 2500},
	{"Restaurant dinner", "Food & Dining", 300, 1500},
	{"Coffee", "Food & Dining", 100, 400},
	{"Uber ride", "Transportation", 100, 600},
	{"Fuel", "Transportation", 500, 2000},
	{"Movie tickets", "Entertainment", 300, 800},
	{"Streaming subscription", "Subscriptions", 199, 799},
	{"Electricity bill", "Bills & Utilities", 800, 2500},
	{"Internet bill", "Bills & Utilities", 599, 1199},
	{"New clothes", "Shopping", 500, 3000},
	{"Online order", "Shopping", 300, 2500},
	{"Pharmacy", "Healthcare", 150, 800},
	{"Haircut", "Personal Care", 200, 600},
	{"Online course", "Education", 500, 2000},
	{"House rent", "Rent", 15000, 15000},
	{"Health insurance premium", "Insurance", 2000, 2000},
	{"Mutual fund SIP", "Savings & Investments", 5000, 5000},
	{"Weekend trip", "Travel", 2000, 8000},
	{"Gift for friend", "Gifts & Donations", 500, 1500},
	{"Misc expense", "Other", 100, 1000},
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	ctx := context.Background()

	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	users := repository.NewUserRepository(db)
	txs := repository.NewTransactionRepository(db)

	user, err := users.GetByEmail(ctx, demoEmail)
	switch {
	case err == nil:
		// wipe the demo account's old data so reseeding is repeatable
		if _, err := db.Exec(ctx, `DELETE FROM transactions WHERE user_id = $1`, user.ID); err != nil {
			log.Fatalf("clear demo transactions: %v", err)
		}
	case errors.Is(err, repository.ErrNotFound):
		hash, err := service.HashPassword(demoPassword)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		user = &domain.User{
			Name:          "Demo User",
			Email:         demoEmail,
			PasswordHash:  hash,
			Currency:      "INR",
			MonthlyBudget: 50000,
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("create demo user: %v", err)
		}
	default:
		log.Fatalf("lookup demo user: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	now := time.Now()
	count := 0

	for monthsBack := 5; monthsBack >= 0; monthsBack-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, -monthsBack, 0)

		salary := &domain.Transaction{
			UserID:   user.ID,
			Title:    "Monthly salary",
			Amount:   75000,
			Type:     domain.TypeIncome,
			Category: "Other",
			Date:     monthStart.AddDate(0, 0, rng.Intn(3)),
			Tags:     []string{"salary"},
		}
		if err := txs.Create(ctx, salary); err != nil {
			log.Fatalf("seed income: %v", err)
		}
		count++

		n := 18 + rng.Intn(10)
		for i := 0; i < n; i++ {
			s := sampleExpenses[rng.Intn(len(sampleExpenses))]
			amount := s.min
			if s.max > s.min {
				amount = s.min + rng.Float64()*(s.max-s.min)
			}
			day := rng.Intn(28)
			tx := &domain.Transaction{
				UserID:   user.ID,
				Title:    s.title,
				Amount:   float64(int(amount*100)) / 100,
				Type:     domain.TypeExpense,
				Category: s.category,
				Date:     monthStart.AddDate(0, 0, day),
				Tags:     []string{},
			}
			if tx.Date.After(now) {
				continue
			}
			if err := txs.Create(ctx, tx); err != nil {
				log.Fatalf("seed expense: %v", err)
			}
			count++
		}
	}

	log.Printf("seeded %d transactions for %s", count, demoEmail)
}
