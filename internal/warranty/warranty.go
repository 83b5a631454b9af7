// Package warranty tracks purchase receipts and their warranty windows.
package warranty

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Warranty is one purchase receipt with warranty coverage. Durations are
// free text the way vendors print them, e.g. "1 ปี" or "6 เดือน".
type Warranty struct {
	ID           string  `json:"id"`
	PurchaseDate string  `json:"purchaseDate"`
	ProductName  string  `json:"productName"`
	ModelCode    string  `json:"modelCode,omitempty"`
	SerialNumber string  `json:"serialNumber,omitempty"`
	Quantity     float64 `json:"quantity"`
	Vendor       string  `json:"vendor,omitempty"`
	Price        float64 `json:"price"`
	Duration     string  `json:"duration"`
	StartDate    string  `json:"startDate"`
	ExpiryDate   string  `json:"expiryDate"`
	Conditions   string  `json:"conditions,omitempty"`
	HasDocuments bool    `json:"hasDocuments"`
}

// NewID generates a receipt number of the form RC-2024-0831.
func NewID(now time.Time) string {
	return fmt.Sprintf("RC-%d-%04d", now.Year(), rand.Intn(10000))
}

// ExpiryFrom computes the expiry day for a coverage period starting at
// startDate (ISO day). Coverage ends the day before the anniversary.
// Unparseable input returns the start date unchanged.
func ExpiryFrom(startDate, duration string) string {
	start, err := time.Parse(time.DateOnly, startDate)
	if err != nil {
		return startDate
	}

	n := leadingInt(duration)

	var expiry time.Time

	switch {
	case strings.Contains(duration, "ปี") || strings.Contains(strings.ToLower(duration), "year"):
		expiry = start.AddDate(n, 0, 0)
	case strings.Contains(duration, "เดือน") || strings.Contains(strings.ToLower(duration), "month"):
		expiry = start.AddDate(0, n, 0)
	default:
		return startDate
	}

	return expiry.AddDate(0, 0, -1).Format(time.DateOnly)
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}

	return n
}

// CoverageState classifies a warranty relative to a reference day.
type CoverageState string

const (
	CoverageActive   CoverageState = "ACTIVE"
	CoverageExpiring CoverageState = "EXPIRING" // 30 days or less remaining
	CoverageExpired  CoverageState = "EXPIRED"
)

// StateAt reports the coverage state of w on the given day. Both days
// are taken in now's location, so the calendar day boundary matches the
// user's clock.
func (w Warranty) StateAt(now time.Time) CoverageState {
	expiry, err := time.ParseInLocation(time.DateOnly, w.ExpiryDate, now.Location())
	if err != nil {
		return CoverageExpired
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if expiry.Before(today) {
		return CoverageExpired
	}

	if expiry.Sub(today) <= 30*24*time.Hour {
		return CoverageExpiring
	}

	return CoverageActive
}
