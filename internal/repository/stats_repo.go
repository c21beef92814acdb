package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TypeTotal is one grouped sum/count row, keyed by transaction type.
type TypeTotal struct {
	Type  string
	Total float64
	Count int64
}

// CategoryTotal is one grouped sum/count row, keyed by category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// TrendPoint is one (year, month, type) bucket of the monthly trend.
type TrendPoint struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Type  string  `json:"type"`
	Total float64 `json:"total"`
}

// DailyTotal is one calendar day of expense spend.
type DailyTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

// StatsRepository runs the grouped aggregations behind the dashboard.
// Every query is scoped to a single user.
type StatsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// TotalsByType sums amount and counts rows grouped by type. from is an
// inclusive lower bound and to an exclusive upper bound; either may be nil
// for an open end.
func (r *StatsRepository) TotalsByType(ctx context.Context, userID int64, from, to *time.Time) ([]TypeTotal, error) {
	query := `SELECT type, COALESCE(SUM(amount), 0), COUNT(*)
	          FROM transactions
	          WHERE user_id = $1`
	args := []any{userID}

	if from != nil {
		args = append(args, *from)
		query += ` AND date >= $2`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			query += ` AND date < $3`
		} else {
			query += ` AND date < $2`
		}
	}
	query += ` GROUP BY type`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TypeTotal
	for rows.Next() {
		var t TypeTotal
		if err := rows.Scan(&t.Type, &t.Total, &t.Count); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// CategoryBreakdown sums expenses since the given instant, grouped by
// category, biggest spender first.
func (r *StatsRepository) CategoryBreakdown(ctx context.Context, userID int64, since time.Time) ([]CategoryTotal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT category, SUM(amount), COUNT(*)
		 FROM transactions
		 WHERE user_id = $1 AND type = 'expense' AND date >= $2
		 GROUP BY category
		 ORDER BY SUM(amount) DESC`,
		userID, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []CategoryTotal{}
	for rows.Next() {
		var c CategoryTotal
		if err := rows.Scan(&c.Category, &c.Total, &c.Count); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// MonthlyTrend sums amounts grouped by (year, month, type) since the given
// instant, oldest bucket first.
func (r *StatsRepository) MonthlyTrend(ctx context.Context, userID int64, since time.Time) ([]TrendPoint, error) {
	rows, err := r.db.Query(ctx,
		`SELECT EXTRACT(YEAR FROM date)::int, EXTRACT(MONTH FROM date)::int, type, SUM(amount)
		 FROM transactions
		 WHERE user_id = $1 AND date >= $2
		 GROUP BY 1, 2, type
		 ORDER BY 1, 2`,
		userID, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []TrendPoint{}
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Year, &p.Month, &p.Type, &p.Total); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// DailySpending sums expenses per calendar day since the given instant,
// oldest day first.
func (r *StatsRepository) DailySpending(ctx context.Context, userID int64, since time.Time) ([]DailyTotal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT to_char(date, 'YYYY-MM-DD'), SUM(amount), COUNT(*)
		 FROM transactions
		 WHERE user_id = $1 AND type = 'expense' AND date >= $2
		 GROUP BY 1
		 ORDER BY 1`,
		userID, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []DailyTotal{}
	for rows.Next() {
		var d DailyTotal
		if err := rows.Scan(&d.Date, &d.Total, &d.Count); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}
