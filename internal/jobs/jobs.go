// Package jobs models service job tickets (repairs, installations and
// system work) with an optionally embedded customer record.
package jobs

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"
)

type Type string

const (
	TypeRepair       Type = "REPAIR"
	TypeInstallation Type = "INSTALLATION"
	TypeSystem       Type = "SYSTEM"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCanceled   Status = "CANCELED"
)

// Customer is embedded in a task. On the sheet side it is stored as a
// JSON string inside a single cell, so it may arrive either as an object
// or as that string; UnmarshalJSON accepts both. The tolerance is declared
// here, on the one field that needs it, rather than sniffing every cell
// for a brace prefix.
type Customer struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

func (c *Customer) UnmarshalJSON(data []byte) error {
	// A string cell: unwrap it and parse the embedded document.
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		if raw == "" {
			*c = Customer{}
			return nil
		}

		data = []byte(raw)
	}

	type plain Customer

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parsing customer: %w", err)
	}

	*c = Customer(p)

	return nil
}

// Task is a job ticket.
type Task struct {
	ID            string    `json:"id"`
	Type          Type      `json:"type"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate,omitempty"`
	Location      string    `json:"location,omitempty"`
	Assignee      string    `json:"assignee,omitempty"`
	Status        Status    `json:"status"`
	Customer      *Customer `json:"customer,omitempty"`
	EstimatedCost float64   `json:"estimatedCost,omitempty"`
	Deposit       float64   `json:"deposit,omitempty"`
}

// NewID generates a human-readable job number of the form JOB-2024-0417.
// The random suffix keeps it legible on printed work orders; collisions
// are acceptable at this volume.
func NewID(now time.Time) string {
	return fmt.Sprintf("JOB-%d-%04d", now.Year(), rand.Intn(10000))
}
