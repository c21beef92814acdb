package repository

import (
	"context"
	"errors"

	"expense_tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A unique violation on email is reported as
// ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, currency, monthly_budget)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		u.Name, u.Email, u.PasswordHash, u.Currency, u.MonthlyBudget,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanOne(r.db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, currency, monthly_budget, created_at
		 FROM users
		 WHERE id = $1`,
		id,
	))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, currency, monthly_budget, created_at
		 FROM users
		 WHERE email = $1`,
		email,
	))
}

// UpdateProfile replaces the editable profile fields and returns the
// updated record.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, name, currency string, monthlyBudget float64) (*domain.User, error) {
	return r.scanOne(r.db.QueryRow(ctx,
		`UPDATE users
		 SET name = $2, currency = $3, monthly_budget = $4
		 WHERE id = $1
		 RETURNING id, name, email, password_hash, currency, monthly_budget, created_at`,
		id, name, currency, monthlyBudget,
	))
}

func (r *UserRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Currency,
		&u.MonthlyBudget,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
