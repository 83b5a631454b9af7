package appstate

import (
	"context"
	"log/slog"

	"github.com/kittipatv/shopdesk/internal/company"
	"github.com/kittipatv/shopdesk/internal/inventory"
	"github.com/kittipatv/shopdesk/internal/jobs"
	"github.com/kittipatv/shopdesk/internal/ledger"
	"github.com/kittipatv/shopdesk/internal/sheets"
	"github.com/kittipatv/shopdesk/internal/warranty"
)

// AddTransaction appends a ledger entry. The ledger is append-only;
// there is no update or delete. The new entry goes to the front so
// views render most-recent-first without re-sorting.
func (s *Store) AddTransaction(t ledger.Transaction) ledger.Transaction {
	t.ID = ledger.NewID()

	s.mu.Lock()
	s.transactions = append([]ledger.Transaction{t}, s.transactions...)
	s.mu.Unlock()

	s.enqueue(sheets.ActionAddTransaction, t)

	return t
}

func (s *Store) AddProduct(p inventory.Product) inventory.Product {
	p.ID = inventory.NewID()

	s.mu.Lock()
	s.products = append(s.products, p)
	s.mu.Unlock()

	s.enqueue(sheets.ActionAddProduct, p)

	return p
}

// productUpdate is the partial-update wire payload: the row key plus
// only the changed columns.
type productUpdate struct {
	ID string `json:"id"`
	inventory.Patch
}

// UpdateProduct merges the patch into the identified product. Unknown
// ids are a no-op (the row was deleted under the form).
func (s *Store) UpdateProduct(id string, patch inventory.Patch) bool {
	s.mu.Lock()

	found := false

	for i := range s.products {
		if s.products[i].ID == id {
			patch.Apply(&s.products[i])

			found = true

			break
		}
	}
	s.mu.Unlock()

	if !found {
		return false
	}

	s.enqueue(sheets.ActionUpdateProduct, productUpdate{ID: id, Patch: patch})

	return true
}

// AdjustQuantity applies a quick +/- delta to stock on hand, clamped at
// zero.
func (s *Store) AdjustQuantity(id string, delta float64) bool {
	s.mu.Lock()

	var clamped float64

	found := false

	for i := range s.products {
		if s.products[i].ID == id {
			clamped = inventory.ClampQuantity(s.products[i].Quantity, delta)
			s.products[i].Quantity = clamped

			found = true

			break
		}
	}
	s.mu.Unlock()

	if !found {
		return false
	}

	s.enqueue(sheets.ActionUpdateProduct, productUpdate{ID: id, Patch: inventory.Patch{Quantity: &clamped}})

	return true
}

func (s *Store) DeleteProduct(id string) {
	s.mu.Lock()
	s.products = slicesDeleteByID(s.products, id, func(p inventory.Product) string { return p.ID })
	s.mu.Unlock()

	s.enqueue(sheets.ActionDeleteProduct, idPayload{ID: id})
}

func (s *Store) AddTask(t jobs.Task) jobs.Task {
	t.ID = jobs.NewID(s.now())
	if t.Status == "" {
		t.Status = jobs.StatusPending
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()

	s.enqueue(sheets.ActionAddTask, t)

	return t
}

// UpdateTask replaces the full ticket identified by t.ID.
func (s *Store) UpdateTask(t jobs.Task) bool {
	s.mu.Lock()

	found := false

	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t
			found = true

			break
		}
	}
	s.mu.Unlock()

	if !found {
		return false
	}

	s.enqueue(sheets.ActionUpdateTask, t)

	return true
}

type statusUpdate struct {
	ID     string      `json:"id"`
	Status jobs.Status `json:"status"`
}

func (s *Store) UpdateTaskStatus(id string, status jobs.Status) bool {
	s.mu.Lock()

	found := false

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Status = status
			found = true

			break
		}
	}
	s.mu.Unlock()

	if !found {
		return false
	}

	s.enqueue(sheets.ActionUpdateTaskStatus, statusUpdate{ID: id, Status: status})

	return true
}

func (s *Store) DeleteTask(id string) {
	s.mu.Lock()
	s.tasks = slicesDeleteByID(s.tasks, id, func(t jobs.Task) string { return t.ID })
	s.mu.Unlock()

	s.enqueue(sheets.ActionDeleteTask, idPayload{ID: id})
}

// AddWarranty files a purchase receipt. The expiry date is derived from
// the start date and duration when the caller left it blank.
func (s *Store) AddWarranty(w warranty.Warranty) warranty.Warranty {
	w.ID = warranty.NewID(s.now())
	if w.ExpiryDate == "" {
		w.ExpiryDate = warranty.ExpiryFrom(w.StartDate, w.Duration)
	}

	s.mu.Lock()
	s.warranties = append(s.warranties, w)
	s.mu.Unlock()

	s.enqueue(sheets.ActionAddReceipt, w)

	return w
}

// UpdateWarranty edits a receipt locally. The endpoint only understands
// ADD_RECEIPT, so edits are not mirrored.
func (s *Store) UpdateWarranty(w warranty.Warranty) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.warranties {
		if s.warranties[i].ID == w.ID {
			s.warranties[i] = w
			return true
		}
	}

	return false
}

func (s *Store) DeleteWarranty(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.warranties = slicesDeleteByID(s.warranties, id, func(w warranty.Warranty) string { return w.ID })
}

// UpdateCompanyProfile is the one awaited write: the settings form shows
// the user whether the save reached the sheet. The profile is persisted
// locally before the remote attempt, so it survives even when the send
// fails.
func (s *Store) UpdateCompanyProfile(ctx context.Context, p company.Profile) (sheets.Outcome, error) {
	if err := p.ValidateImages(); err != nil {
		return sheets.OutcomeFailed, err
	}

	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()

	if s.local != nil {
		if err := s.local.SaveProfile(p); err != nil {
			slog.Warn("caching company profile", "error", err)
		}
	}

	return s.remote.Send(ctx, sheets.ActionUpdateCompanyProfile, p), nil
}

type idPayload struct {
	ID string `json:"id"`
}

func slicesDeleteByID[T any](items []T, id string, key func(T) string) []T {
	out := items[:0]

	for _, item := range items {
		if key(item) != id {
			out = append(out, item)
		}
	}

	return out
}
