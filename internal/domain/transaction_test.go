package domain

import (
	"strings"
	"testing"
	"time"
)

func fieldMessage(errs []FieldError, field string) string {
	for _, e := range errs {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

func validInput() TransactionInput {
	return TransactionInput{
		Title:    "Lunch",
		Amount:   12.50,
		Type:     "expense",
		Category: "Food & Dining",
		Date:     "2026-03-15",
	}
}

func TestValidate_OK(t *testing.T) {
	in := validInput()
	if errs := in.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidate_Title(t *testing.T) {
	in := validInput()
	in.Title = "   "
	if got := fieldMessage(in.Validate(), "title"); got != "Title is required" {
		t.Fatalf("blank title: got %q", got)
	}

	in.Title = strings.Repeat("x", MaxTitleLen+1)
	if got := fieldMessage(in.Validate(), "title"); got != "Title cannot exceed 100 characters" {
		t.Fatalf("long title: got %q", got)
	}
}

func TestValidate_Amount(t *testing.T) {
	in := validInput()
	in.Amount = 0
	if got := fieldMessage(in.Validate(), "amount"); got != "Amount is required" {
		t.Fatalf("zero amount: got %q", got)
	}

	in.Amount = 0.005
	if got := fieldMessage(in.Validate(), "amount"); got != "Amount must be at least 0.01" {
		t.Fatalf("tiny amount: got %q", got)
	}

	in.Amount = 0.01
	if got := fieldMessage(in.Validate(), "amount"); got != "" {
		t.Fatalf("minimum amount should pass, got %q", got)
	}
}

func TestValidate_Category(t *testing.T) {
	in := validInput()
	in.Category = ""
	if got := fieldMessage(in.Validate(), "category"); got != "Category is required" {
		t.Fatalf("empty category: got %q", got)
	}

	in.Category = "Gambling"
	if got := fieldMessage(in.Validate(), "category"); got != "Gambling is not a valid category" {
		t.Fatalf("unknown category: got %q", got)
	}

	for _, c := range Categories {
		in.Category = c
		if got := fieldMessage(in.Validate(), "category"); got != "" {
			t.Fatalf("category %q should be valid, got %q", c, got)
		}
	}
}

func TestValidate_TypeAndDate(t *testing.T) {
	in := validInput()
	in.Type = "transfer"
	if got := fieldMessage(in.Validate(), "type"); got != "Type must be expense or income" {
		t.Fatalf("bad type: got %q", got)
	}

	in = validInput()
	in.Date = "15/03/2026"
	if got := fieldMessage(in.Validate(), "date"); got != "Please provide a valid date" {
		t.Fatalf("bad date: got %q", got)
	}

	// empty type and date are allowed, defaults apply later
	in = validInput()
	in.Type = ""
	in.Date = ""
	if errs := in.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidate_Notes(t *testing.T) {
	in := validInput()
	in.Notes = strings.Repeat("n", MaxNotesLen+1)
	if got := fieldMessage(in.Validate(), "notes"); got != "Notes cannot exceed 500 characters" {
		t.Fatalf("long notes: got %q", got)
	}
}

func TestToTransaction_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)

	in := TransactionInput{
		Title:    "  Lunch  ",
		Amount:   9.99,
		Category: "Food & Dining",
	}
	tx := in.ToTransaction(7, now)

	if tx.UserID != 7 {
		t.Fatalf("user id: got %d", tx.UserID)
	}
	if tx.Title != "Lunch" {
		t.Fatalf("title not trimmed: %q", tx.Title)
	}
	if tx.Type != TypeExpense {
		t.Fatalf("default type: got %q", tx.Type)
	}
	if !tx.Date.Equal(now) {
		t.Fatalf("default date: got %v", tx.Date)
	}
	if tx.Tags == nil || len(tx.Tags) != 0 {
		t.Fatalf("tags should default to empty slice, got %v", tx.Tags)
	}
}

func TestToTransaction_ExplicitDate(t *testing.T) {
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)

	in := validInput()
	tx := in.ToTransaction(1, now)

	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !tx.Date.Equal(want) {
		t.Fatalf("date: got %v, want %v", tx.Date, want)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2026-03-15"); err != nil {
		t.Fatalf("bare date: %v", err)
	}
	if _, err := ParseDate("2026-03-15T08:30:00Z"); err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if _, err := ParseDate("yesterday"); err == nil {
		t.Fatal("expected error for junk input")
	}
}
