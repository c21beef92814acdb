package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"expense_tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const transactionColumns = `id, user_id, title, amount, type, category, date, notes, is_recurring, tags, created_at, updated_at`

// ListFilter describes one listing request. Pointer fields are optional;
// nil means "do not filter on this field".
type ListFilter struct {
	Search    string
	Category  *string
	Type      *string
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *float64
	MaxAmount *float64
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a new transaction and fills in the store-assigned fields.
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO transactions (user_id, title, amount, type, category, date, notes, is_recurring, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		tx.UserID, tx.Title, tx.Amount, tx.Type, tx.Category, tx.Date, tx.Notes, tx.IsRecurring, tx.Tags,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
}

// GetByID fetches one transaction scoped to its owner. A row owned by a
// different user comes back as ErrNotFound.
func (r *TransactionRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tx, nil
}

// Update replaces every editable field of an owned transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	err := r.db.QueryRow(ctx,
		`UPDATE transactions
		 SET title = $3, amount = $4, type = $5, category = $6, date = $7,
		     notes = $8, is_recurring = $9, tags = $10, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING created_at, updated_at`,
		tx.ID, tx.UserID, tx.Title, tx.Amount, tx.Type, tx.Category, tx.Date, tx.Notes, tx.IsRecurring, tx.Tags,
	).Scan(&tx.CreatedAt, &tx.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes an owned transaction permanently.
func (r *TransactionRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of matching transactions plus the total match
// count. The page fetch and the count run concurrently; a write landing
// between them can skew the count, which is accepted (best effort, no
// snapshot).
func (r *TransactionRepository) List(ctx context.Context, userID int64, f ListFilter) ([]*domain.Transaction, int64, error) {
	where, args := buildListWhere(userID, f)

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	order := sortColumn(f.SortBy) + " " + sortDirection(f.SortOrder)

	var (
		items []*domain.Transaction
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		query := fmt.Sprintf(
			`SELECT %s FROM transactions WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
			transactionColumns, where, order, limit, offset,
		)
		rows, err := r.db.Query(gctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		items, err = scanTransactions(rows)
		return err
	})
	g.Go(func() error {
		return r.db.QueryRow(gctx,
			`SELECT COUNT(*) FROM transactions WHERE `+where, args...,
		).Scan(&total)
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Recent returns the newest transactions for the dashboard, by date then
// creation time.
func (r *TransactionRepository) Recent(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY date DESC, created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// buildListWhere translates a filter into a WHERE clause and its
// positional args. Only column names from the fixed schema appear in the
// clause; every value goes through a placeholder.
func buildListWhere(userID int64, f ListFilter) (string, []any) {
	clauses := []string{"user_id = $1"}
	args := []any{userID}

	add := func(clause string, val any) {
		args = append(args, val)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		args = append(args, pattern)
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR notes ILIKE $%d)", n, n))
	}
	if f.Category != nil {
		add("category = $%d", *f.Category)
	}
	if f.Type != nil {
		add("type = $%d", *f.Type)
	}
	if f.StartDate != nil {
		add("date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("date <= $%d", *f.EndDate)
	}
	if f.MinAmount != nil {
		add("amount >= $%d", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		add("amount <= $%d", *f.MaxAmount)
	}

	return strings.Join(clauses, " AND "), args
}

// sortColumn whitelists the sortable fields; anything unknown falls back
// to the default date sort.
func sortColumn(sortBy string) string {
	switch sortBy {
	case "amount":
		return "amount"
	case "title":
		return "title"
	case "category":
		return "category"
	case "createdAt":
		return "created_at"
	default:
		return "date"
	}
}

func sortDirection(order string) string {
	if order == "asc" {
		return "ASC"
	}
	return "DESC"
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Title,
		&tx.Amount,
		&tx.Type,
		&tx.Category,
		&tx.Date,
		&tx.Notes,
		&tx.IsRecurring,
		&tx.Tags,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tx.Tags == nil {
		tx.Tags = []string{}
	}
	return &tx, nil
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	result := []*domain.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}
