package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"expense_tracker/internal/domain"
	"expense_tracker/internal/repository"
	"expense_tracker/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func testDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	return db
}

func createTestUser(t *testing.T, db *pgxpool.Pool, email string) *domain.User {
	t.Helper()
	users := repository.NewUserRepository(db)

	hash, err := service.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	u := &domain.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Currency:     "USD",
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() {
		db.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, u.ID)
	})
	return u
}

func uniqueEmail(t *testing.T) string {
	return fmt.Sprintf("it-%d@test.local", time.Now().UnixNano())
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := testDB(t)
	email := uniqueEmail(t)
	createTestUser(t, db, email)

	users := repository.NewUserRepository(db)
	dup := &domain.User{Name: "Dup", Email: email, PasswordHash: "x", Currency: "USD"}
	if err := users.Create(context.Background(), dup); !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestTransactionRepository_RoundTrip(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db, uniqueEmail(t))
	txs := repository.NewTransactionRepository(db)
	ctx := context.Background()

	tx := &domain.Transaction{
		UserID:   user.ID,
		Title:    "Lunch",
		Amount:   12.50,
		Type:     domain.TypeExpense,
		Category: "Food & Dining",
		Date:     time.Now(),
		Notes:    "team lunch",
		Tags:     []string{"work"},
	}
	if err := txs.Create(ctx, tx); err != nil {
		t.Fatalf("create: %v", err)
	}
	if tx.ID == 0 {
		t.Fatal("id not assigned")
	}

	got, err := txs.GetByID(ctx, user.ID, tx.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Lunch" || got.Amount != 12.50 || got.Category != "Food & Dining" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "work" {
		t.Fatalf("tags: %v", got.Tags)
	}

	got.Title = "Team lunch"
	got.Amount = 15
	if err := txs.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}

	again, err := txs.GetByID(ctx, user.ID, tx.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if again.Title != "Team lunch" || again.Amount != 15 {
		t.Fatalf("update not applied: %+v", again)
	}

	if err := txs.Delete(ctx, user.ID, tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := txs.GetByID(ctx, user.ID, tx.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestTransactionRepository_OwnershipScoping(t *testing.T) {
	db := testDB(t)
	owner := createTestUser(t, db, uniqueEmail(t))
	other := createTestUser(t, db, uniqueEmail(t))
	txs := repository.NewTransactionRepository(db)
	ctx := context.Background()

	tx := &domain.Transaction{
		UserID:   owner.ID,
		Title:    "Private",
		Amount:   50,
		Type:     domain.TypeExpense,
		Category: "Other",
		Date:     time.Now(),
		Tags:     []string{},
	}
	if err := txs.Create(ctx, tx); err != nil {
		t.Fatalf("create: %v", err)
	}

	// another user's id must behave exactly like a missing row
	if _, err := txs.GetByID(ctx, other.ID, tx.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	if err := txs.Delete(ctx, other.ID, tx.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}

	foreign := *tx
	foreign.UserID = other.ID
	foreign.Title = "Hijacked"
	if err := txs.Update(ctx, &foreign); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
}

func TestTransactionRepository_ListFilters(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db, uniqueEmail(t))
	txs := repository.NewTransactionRepository(db)
	ctx := context.Background()

	seed := []struct {
		title    string
		amount   float64
		category string
	}{
		{"Coffee", 5, "Food & Dining"},
		{"Groceries run", 80, "Groceries"},
		{"Rent", 1500, "Rent"},
	}
	for _, s := range seed {
		tx := &domain.Transaction{
			UserID:   user.ID,
			Title:    s.title,
			Amount:   s.amount,
			Type:     domain.TypeExpense,
			Category: s.category,
			Date:     time.Now(),
			Tags:     []string{},
		}
		if err := txs.Create(ctx, tx); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	// amount bounds are inclusive on both ends
	min, max := 5.0, 80.0
	items, total, err := txs.List(ctx, user.ID, repository.ListFilter{MinAmount: &min, MaxAmount: &max})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("amount range: total %d, items %d", total, len(items))
	}

	cat := "Rent"
	items, total, err = txs.List(ctx, user.ID, repository.ListFilter{Category: &cat})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || items[0].Title != "Rent" {
		t.Fatalf("category filter: total %d", total)
	}

	_, total, err = txs.List(ctx, user.ID, repository.ListFilter{Search: "grocer"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 {
		t.Fatalf("search: total %d", total)
	}
}

func TestStatsService_Dashboard(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db, uniqueEmail(t))
	txs := repository.NewTransactionRepository(db)
	stats := service.NewStatsService(repository.NewStatsRepository(db), txs)
	ctx := context.Background()

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := monthStart.Add(-time.Hour)
	seed := []struct {
		title    string
		amount   float64
		txType   domain.TransactionType
		category string
		date     time.Time
	}{
		{"Salary", 3000, domain.TypeIncome, "Other", now},
		{"Rent", 1500, domain.TypeExpense, "Rent", now},
		{"Groceries", 500, domain.TypeExpense, "Groceries", now},
		{"Old rent", 1000, domain.TypeExpense, "Rent", lastMonth},
	}
	for _, s := range seed {
		tx := &domain.Transaction{
			UserID:   user.ID,
			Title:    s.title,
			Amount:   s.amount,
			Type:     s.txType,
			Category: s.category,
			Date:     s.date,
			Tags:     []string{},
		}
		if err := txs.Create(ctx, tx); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	d, err := stats.Dashboard(ctx, user.ID, now)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if d.Overview.TotalIncome != 3000 || d.Overview.TotalExpenses != 3000 {
		t.Fatalf("overview: %+v", d.Overview)
	}
	if d.Overview.Balance != 0 || d.Overview.TotalTransactions != 4 {
		t.Fatalf("overview: %+v", d.Overview)
	}

	if d.CurrentMonth.Expenses != 2000 || d.CurrentMonth.Income != 3000 {
		t.Fatalf("current month: %+v", d.CurrentMonth)
	}
	// 1000 last month vs 2000 this month
	if d.CurrentMonth.ExpenseChange != 100 {
		t.Fatalf("expense change: %v", d.CurrentMonth.ExpenseChange)
	}

	if len(d.CategoryBreakdown) != 2 {
		t.Fatalf("breakdown: %+v", d.CategoryBreakdown)
	}
	if d.CategoryBreakdown[0].Category != "Rent" || d.CategoryBreakdown[0].Percentage != 75 {
		t.Fatalf("breakdown[0]: %+v", d.CategoryBreakdown[0])
	}

	if len(d.RecentTransactions) != 4 {
		t.Fatalf("recent: %d", len(d.RecentTransactions))
	}
}
