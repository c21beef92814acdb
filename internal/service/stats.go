package service

import (
	"context"
	"math"
	"time"

	"expense_tracker/internal/domain"
	"expense_tracker/internal/repository"

	"golang.org/x/sync/errgroup"
)

// Overview is the all-time summary block of the dashboard.
type Overview struct {
	TotalExpenses     float64 `json:"totalExpenses"`
	TotalIncome       float64 `json:"totalIncome"`
	Balance           float64 `json:"balance"`
	TotalTransactions int64   `json:"totalTransactions"`
}

// MonthSummary is the current-month block, including the change against
// the previous month.
type MonthSummary struct {
	Expenses         float64 `json:"expenses"`
	Income           float64 `json:"income"`
	Balance          float64 `json:"balance"`
	TransactionCount int64   `json:"transactionCount"`
	ExpenseChange    float64 `json:"expenseChange"`
}

// BreakdownItem is one category slice of the current-month expense pie.
type BreakdownItem struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DashboardStats is the full dashboard payload.
type DashboardStats struct {
	Overview           Overview                `json:"overview"`
	CurrentMonth       MonthSummary            `json:"currentMonth"`
	CategoryBreakdown  []BreakdownItem         `json:"categoryBreakdown"`
	MonthlyTrend       []repository.TrendPoint `json:"monthlyTrend"`
	RecentTransactions []*domain.Transaction   `json:"recentTransactions"`
	DailySpending      []repository.DailyTotal `json:"dailySpending"`
}

// typeSummary is a grouped-by-type result folded into fixed buckets.
type typeSummary struct {
	Expense float64
	Income  float64
	Count   int64
}

// StatsService computes dashboard statistics from independent grouped
// aggregations.
type StatsService struct {
	stats *repository.StatsRepository
	txs   *repository.TransactionRepository
}

func NewStatsService(stats *repository.StatsRepository, txs *repository.TransactionRepository) *StatsService {
	return &StatsService{stats: stats, txs: txs}
}

// Dashboard runs the seven aggregates concurrently and assembles the
// response. Any single query failure fails the whole call; there are no
// partial results.
func (s *StatsService) Dashboard(ctx context.Context, userID int64, now time.Time) (*DashboardStats, error) {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfPrevMonth := startOfMonth.AddDate(0, -1, 0)
	trendSince := startOfMonth.AddDate(0, -5, 0)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	var (
		allTime   []repository.TypeTotal
		thisMonth []repository.TypeTotal
		prevMonth []repository.TypeTotal
		breakdown []repository.CategoryTotal
		trend     []repository.TrendPoint
		recent    []*domain.Transaction
		daily     []repository.DailyTotal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		allTime, err = s.stats.TotalsByType(gctx, userID, nil, nil)
		return
	})
	g.Go(func() (err error) {
		thisMonth, err = s.stats.TotalsByType(gctx, userID, &startOfMonth, nil)
		return
	})
	g.Go(func() (err error) {
		prevMonth, err = s.stats.TotalsByType(gctx, userID, &startOfPrevMonth, &startOfMonth)
		return
	})
	g.Go(func() (err error) {
		breakdown, err = s.stats.CategoryBreakdown(gctx, userID, startOfMonth)
		return
	})
	g.Go(func() (err error) {
		trend, err = s.stats.MonthlyTrend(gctx, userID, trendSince)
		return
	})
	g.Go(func() (err error) {
		recent, err = s.txs.Recent(gctx, userID, 5)
		return
	})
	g.Go(func() (err error) {
		daily, err = s.stats.DailySpending(gctx, userID, weekAgo)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := foldTotals(allTime)
	current := foldTotals(thisMonth)
	previous := foldTotals(prevMonth)

	return &DashboardStats{
		Overview: Overview{
			TotalExpenses:     total.Expense,
			TotalIncome:       total.Income,
			Balance:           total.Income - total.Expense,
			TotalTransactions: total.Count,
		},
		CurrentMonth: MonthSummary{
			Expenses:         current.Expense,
			Income:           current.Income,
			Balance:          current.Income - current.Expense,
			TransactionCount: current.Count,
			ExpenseChange:    expenseChange(previous.Expense, current.Expense),
		},
		CategoryBreakdown:  breakdownItems(breakdown, current.Expense),
		MonthlyTrend:       trend,
		RecentTransactions: recent,
		DailySpending:      daily,
	}, nil
}

// foldTotals collapses grouped-by-type rows into fixed expense/income
// buckets; a type missing from the rows stays at 0.
func foldTotals(rows []repository.TypeTotal) typeSummary {
	var s typeSummary
	for _, row := range rows {
		switch row.Type {
		case string(domain.TypeExpense):
			s.Expense = row.Total
		case string(domain.TypeIncome):
			s.Income = row.Total
		}
		s.Count += row.Count
	}
	return s
}

// expenseChange is the month-over-month change percentage, rounded to two
// decimals. A previous month of zero reports 100% if anything was spent
// this month, otherwise 0%.
func expenseChange(previous, current float64) float64 {
	switch {
	case previous > 0:
		return round2((current - previous) / previous * 100)
	case current > 0:
		return 100
	default:
		return 0
	}
}

// breakdownItems attaches each category's share of the month's expenses.
func breakdownItems(rows []repository.CategoryTotal, monthExpense float64) []BreakdownItem {
	items := make([]BreakdownItem, len(rows))
	for i, row := range rows {
		pct := 0.0
		if monthExpense > 0 {
			pct = round2(row.Total / monthExpense * 100)
		}
		items[i] = BreakdownItem{
			Category:   row.Category,
			Total:      row.Total,
			Count:      row.Count,
			Percentage: pct,
		}
	}
	return items
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
