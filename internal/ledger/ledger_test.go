package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittipatv/shopdesk/internal/ledger"
)

func sample() []ledger.Transaction {
	return []ledger.Transaction{
		{ID: "1", Date: "2026-07-05", Description: "ซ่อมคอมพิวเตอร์", Category: "Service", Amount: 1500, Type: ledger.TypeIncome, PaymentMethod: ledger.PaymentCash},
		{ID: "2", Date: "2026-07-20", Description: "ซื้อสาย LAN", Category: "Supplies", Amount: 800, Type: ledger.TypeExpense, PaymentMethod: ledger.PaymentTransfer},
		{ID: "3", Date: "2026-08-01", Description: "ติดตั้งกล้อง", Category: "Service", Amount: 4500, Type: ledger.TypeIncome, PaymentMethod: ledger.PaymentTransfer},
		{ID: "4", Date: "2026-08-12", Description: "ค่าน้ำมัน", Category: "Travel", Amount: 600, Type: ledger.TypeExpense, PaymentMethod: ledger.PaymentCash},
	}
}

func TestSummarize(t *testing.T) {
	s := ledger.Summarize(sample())

	assert.Equal(t, 6000.0, s.Income)
	assert.Equal(t, 1400.0, s.Expense)
	assert.Equal(t, 4600.0, s.Net())
}

func TestSummarize_Empty(t *testing.T) {
	s := ledger.Summarize(nil)

	assert.Zero(t, s.Income)
	assert.Zero(t, s.Expense)
	assert.Zero(t, s.Net())
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		filter  ledger.Filter
		wantIDs []string
	}{
		{name: "no filter returns all most recent first", filter: ledger.Filter{}, wantIDs: []string{"4", "3", "2", "1"}},
		{name: "by month", filter: ledger.Filter{Month: "2026-07"}, wantIDs: []string{"2", "1"}},
		{name: "by category case-insensitive", filter: ledger.Filter{Category: "service"}, wantIDs: []string{"3", "1"}},
		{name: "by type", filter: ledger.Filter{Type: ledger.TypeExpense}, wantIDs: []string{"4", "2"}},
		{name: "combined", filter: ledger.Filter{Month: "2026-08", Type: ledger.TypeIncome}, wantIDs: []string{"3"}},
		{name: "no match", filter: ledger.Filter{Month: "2025-01"}, wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.Select(sample(), tt.filter)

			require.Len(t, got, len(tt.wantIDs))

			for i, id := range tt.wantIDs {
				assert.Equal(t, id, got[i].ID)
			}
		})
	}
}

func TestNewID(t *testing.T) {
	assert.NotEqual(t, ledger.NewID(), ledger.NewID())
}
