package ledger

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Type represents the direction of a ledger entry.
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// PaymentMethod is how the money moved.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

// Transaction is a single ledger entry. The ledger is append-only:
// entries are never updated or deleted, corrections go in as new rows.
type Transaction struct {
	ID            string        `json:"id"`
	Date          string        `json:"date"` // ISO day, e.g. 2024-01-31
	Description   string        `json:"description"`
	Category      string        `json:"category"`
	Amount        float64       `json:"amount"`
	Type          Type          `json:"type"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// NewID generates a random identifier for a transaction.
func NewID() string {
	return uuid.NewString()
}

// Summary aggregates a set of entries.
type Summary struct {
	Income  float64
	Expense float64
}

func (s Summary) Net() float64 { return s.Income - s.Expense }

// Summarize totals income and expense over the given entries.
func Summarize(txs []Transaction) Summary {
	var s Summary

	for _, t := range txs {
		switch t.Type {
		case TypeIncome:
			s.Income += t.Amount
		case TypeExpense:
			s.Expense += t.Amount
		}
	}

	return s
}

// Filter selects ledger entries. Zero values match everything.
type Filter struct {
	Month    string // "2024-01" matches entries dated within that month
	Category string
	Type     Type
}

func (f Filter) matches(t Transaction) bool {
	if f.Month != "" && !strings.HasPrefix(t.Date, f.Month) {
		return false
	}

	if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
		return false
	}

	if f.Type != "" && t.Type != f.Type {
		return false
	}

	return true
}

// Select returns the matching entries, most recent first.
func Select(txs []Transaction, f Filter) []Transaction {
	var out []Transaction

	for _, t := range txs {
		if f.matches(t) {
			out = append(out, t)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})

	return out
}
