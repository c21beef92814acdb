package domain

import "time"

type User struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	Currency      string    `db:"currency" json:"currency"`
	MonthlyBudget float64   `db:"monthly_budget" json:"monthlyBudget"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}
