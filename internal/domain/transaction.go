package domain

import (
	"strings"
	"time"
)

type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

// Categories is the fixed classification set. The list is part of the API
// contract; changing it invalidates stored records.
var Categories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Education",
	"Travel",
	"Groceries",
	"Rent",
	"Insurance",
	"Savings & Investments",
	"Personal Care",
	"Gifts & Donations",
	"Subscriptions",
	"Other",
}

const (
	MaxTitleLen = 100
	MaxNotesLen = 500
)

// Transaction is a single income or expense record owned by one user.
type Transaction struct {
	ID          int64           `db:"id" json:"id"`
	UserID      int64           `db:"user_id" json:"userId"`
	Title       string          `db:"title" json:"title"`
	Amount      float64         `db:"amount" json:"amount"`
	Type        TransactionType `db:"type" json:"type"`
	Category    string          `db:"category" json:"category"`
	Date        time.Time       `db:"date" json:"date"`
	Notes       string          `db:"notes" json:"notes"`
	IsRecurring bool            `db:"is_recurring" json:"isRecurring"`
	Tags        []string        `db:"tags" json:"tags"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

// FieldError is a single per-field validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// TransactionInput carries the editable fields of a transaction. Update
// replaces all of them wholesale; partial updates are not a thing here.
type TransactionInput struct {
	Title       string   `json:"title"`
	Amount      float64  `json:"amount"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
	Notes       string   `json:"notes"`
	IsRecurring bool     `json:"isRecurring"`
	Tags        []string `json:"tags"`
}

// Validate checks the input against the same constraints for create and
// update. Messages match what the frontend displays.
func (in *TransactionInput) Validate() []FieldError {
	var errs []FieldError

	title := strings.TrimSpace(in.Title)
	if title == "" {
		errs = append(errs, FieldError{"title", "Title is required"})
	} else if len(title) > MaxTitleLen {
		errs = append(errs, FieldError{"title", "Title cannot exceed 100 characters"})
	}

	if in.Amount == 0 {
		errs = append(errs, FieldError{"amount", "Amount is required"})
	} else if in.Amount < 0.01 {
		errs = append(errs, FieldError{"amount", "Amount must be at least 0.01"})
	}

	if in.Category == "" {
		errs = append(errs, FieldError{"category", "Category is required"})
	} else if !ValidCategory(in.Category) {
		errs = append(errs, FieldError{"category", in.Category + " is not a valid category"})
	}

	if in.Type != "" && in.Type != string(TypeExpense) && in.Type != string(TypeIncome) {
		errs = append(errs, FieldError{"type", "Type must be expense or income"})
	}

	if in.Date != "" {
		if _, err := ParseDate(in.Date); err != nil {
			errs = append(errs, FieldError{"date", "Please provide a valid date"})
		}
	}

	if len(in.Notes) > MaxNotesLen {
		errs = append(errs, FieldError{"notes", "Notes cannot exceed 500 characters"})
	}

	return errs
}

// ToTransaction resolves defaults and builds the record to store. Validate
// must have passed first.
func (in *TransactionInput) ToTransaction(userID int64, now time.Time) *Transaction {
	txType := TransactionType(in.Type)
	if txType == "" {
		txType = TypeExpense
	}

	date := now
	if in.Date != "" {
		if parsed, err := ParseDate(in.Date); err == nil {
			date = parsed
		}
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	return &Transaction{
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Amount:      in.Amount,
		Type:        txType,
		Category:    in.Category,
		Date:        date,
		Notes:       strings.TrimSpace(in.Notes),
		IsRecurring: in.IsRecurring,
		Tags:        tags,
	}
}

func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseDate accepts RFC3339 timestamps or bare YYYY-MM-DD dates, which is
// what the date picker submits.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
