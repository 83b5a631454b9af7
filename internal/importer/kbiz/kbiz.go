// Package kbiz parses KBiz (Kasikorn business banking) statement CSV
// exports. The file carries account preamble rows before the table, so
// the parser scans for the header row as a landmark instead of assuming
// a fixed layout.
package kbiz

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	appenc "github.com/kittipatv/shopdesk/internal/encoding"
	"github.com/kittipatv/shopdesk/internal/ledger"
)

const (
	colDate       = "Transaction Date"
	colDesc       = "Description"
	colWithdrawal = "Withdrawal"
	colDeposit    = "Deposit"
)

type Importer struct{}

func New() *Importer {
	return &Importer{}
}

func (i *Importer) Parse(r io.Reader) ([]ledger.Transaction, error) {
	decoded, err := appenc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding statement: %w", err)
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1 // preamble rows are ragged
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	var txs []ledger.Transaction

	headerFound := false

	idxDate := -1
	idxDesc := -1
	idxWithdrawal := -1
	idxDeposit := -1

	for _, row := range rows {
		if !headerFound {
			matches := 0

			for i, col := range row {
				switch strings.TrimSpace(col) {
				case colDate:
					idxDate = i
					matches++
				case colDesc:
					idxDesc = i
					matches++
				case colWithdrawal:
					idxWithdrawal = i
					matches++
				case colDeposit:
					idxDeposit = i
					matches++
				}
			}

			// Date plus at least one amount column marks the header.
			if idxDate >= 0 && matches >= 2 {
				headerFound = true
			}

			continue
		}

		maxIdx := max(idxDate, max(idxDesc, max(idxWithdrawal, idxDeposit)))
		if len(row) <= maxIdx {
			continue
		}

		date, err := parseDate(row[idxDate])
		if err != nil {
			// Footer/total rows follow the table; stop at the first
			// row that no longer parses as a date.
			break
		}

		desc := ""
		if idxDesc >= 0 {
			desc = strings.TrimSpace(row[idxDesc])
		}

		withdrawal := parseAmount(row[idxWithdrawal])
		deposit := parseAmount(row[idxDeposit])

		tx := ledger.Transaction{
			Date:          date,
			Description:   desc,
			Category:      "Bank",
			PaymentMethod: ledger.PaymentTransfer,
		}

		switch {
		case deposit > 0:
			tx.Amount = deposit
			tx.Type = ledger.TypeIncome
		case withdrawal > 0:
			tx.Amount = withdrawal
			tx.Type = ledger.TypeExpense
		default:
			continue
		}

		txs = append(txs, tx)
	}

	if !headerFound {
		return nil, fmt.Errorf("no statement header found")
	}

	return txs, nil
}

// parseDate accepts the dd/mm/yyyy used in KBiz exports and ISO days.
func parseDate(s string) (string, error) {
	s = strings.TrimSpace(s)

	if t, err := time.Parse("02/01/2006", s); err == nil {
		return t.Format(time.DateOnly), nil
	}

	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.Format(time.DateOnly), nil
	}

	return "", fmt.Errorf("unrecognized date %q", s)
}

// parseAmount reads "1,234.56" style cells; blanks and dashes are zero.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "-" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return v
}
