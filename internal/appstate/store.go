// Package appstate owns the in-memory collections that the UI renders
// from. Local state is the source of truth: every mutation lands in the
// collection synchronously, then a single best-effort write is handed to
// the outbound mailbox. The remote store is a mirror, never read back
// after a write, and a failed send does not roll anything back.
package appstate

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/kittipatv/shopdesk/internal/company"
	"github.com/kittipatv/shopdesk/internal/inventory"
	"github.com/kittipatv/shopdesk/internal/jobs"
	"github.com/kittipatv/shopdesk/internal/ledger"
	"github.com/kittipatv/shopdesk/internal/localstore"
	"github.com/kittipatv/shopdesk/internal/sheets"
	"github.com/kittipatv/shopdesk/internal/warranty"
)

// LoadState tracks collection hydration. All collections are filled by
// the one bulk fetch, so they transition together.
type LoadState int

const (
	StateUnloaded LoadState = iota
	StateLoading
	StateLoaded             // hydrated from the remote store
	StateLoadedFromDefaults // seed data; endpoint unset or unreachable
)

// Remote is the slice of the sheets client the store depends on.
// Satisfied by *sheets.Client.
type Remote interface {
	Configured() bool
	FetchAll(ctx context.Context) (*sheets.Snapshot, error)
	Send(ctx context.Context, action string, payload any) sheets.Outcome
}

// Observer receives the outcome of each outbound write. Optional; meant
// for status badges or a future retry queue, not for flow control.
type Observer func(action string, outcome sheets.Outcome)

type outbound struct {
	action  string
	payload any
}

type Store struct {
	remote   Remote
	local    *localstore.Store
	observer Observer
	now      func() time.Time

	mu           sync.Mutex
	transactions []ledger.Transaction
	products     []inventory.Product
	tasks        []jobs.Task
	warranties   []warranty.Warranty
	profile      company.Profile
	state        LoadState
	connected    bool

	outbox   chan outbound
	quit     chan struct{}
	stopOnce sync.Once
}

type Option func(*Store)

func WithObserver(fn Observer) Option {
	return func(s *Store) { s.observer = fn }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New builds the store with seed collections and the locally cached
// profile, and starts the mailbox worker. Call Close when done.
func New(remote Remote, local *localstore.Store, opts ...Option) *Store {
	s := &Store{
		remote: remote,
		local:  local,
		now:    time.Now,
		outbox: make(chan outbound, 64),
		quit:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.seedDefaults()

	s.profile = company.Default()
	if local != nil {
		if cached, err := local.Profile(); err == nil {
			s.profile = *cached
		}
	}

	go s.deliver()

	return s
}

// Close stops the mailbox worker. Writes already enqueued but not yet
// attempted are dropped, matching the fire-and-forget contract.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.quit) })
}

func (s *Store) deliver() {
	for {
		select {
		case w := <-s.outbox:
			outcome := s.remote.Send(context.Background(), w.action, w.payload)
			if s.observer != nil {
				s.observer(w.action, outcome)
			}
		case <-s.quit:
			return
		}
	}
}

// enqueue hands a write to the mailbox. Each write is attempted exactly
// once; a full mailbox drops the write rather than block the UI.
func (s *Store) enqueue(action string, payload any) {
	select {
	case s.outbox <- outbound{action: action, payload: payload}:
	default:
		slog.Warn("outbox full, write dropped", "action", action)

		if s.observer != nil {
			s.observer(action, sheets.OutcomeFailed)
		}
	}
}

// Load hydrates all collections from the remote store. It never returns
// an error: an unconfigured or unreachable endpoint leaves the seed data
// in place with the connectivity flag down. Returns the flag.
func (s *Store) Load(ctx context.Context) bool {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	if !s.remote.Configured() {
		s.settle(nil)
		return false
	}

	snap, err := s.remote.FetchAll(ctx)
	if err != nil {
		slog.Warn("falling back to local defaults", "error", err)
		s.settle(nil)

		return false
	}

	s.settle(snap)

	return true
}

// settle installs the fetch result, or the defaults when snap is nil.
func (s *Store) settle(snap *sheets.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap == nil {
		s.seedDefaults()
		s.state = StateLoadedFromDefaults
		s.connected = false

		return
	}

	s.transactions = emptyIfNil(snap.Transactions)
	s.products = emptyIfNil(snap.Products)
	s.tasks = emptyIfNil(snap.Tasks)
	s.warranties = emptyIfNil(snap.Warranties)

	if len(snap.Company) > 0 {
		s.profile = snap.Company[0]

		if s.local != nil {
			if err := s.local.SaveProfile(s.profile); err != nil {
				slog.Warn("caching company profile", "error", err)
			}
		}
	}

	s.state = StateLoaded
	s.connected = true
}

func emptyIfNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}

	return v
}

// ConfigureEndpoint persists the endpoint URL and, when non-empty,
// reloads from it. An empty URL switches to offline mode. Returns
// whether the store ended up connected (always true for offline mode,
// which is an expected steady state, not an error).
func (s *Store) ConfigureEndpoint(ctx context.Context, url string) (bool, error) {
	if s.local != nil {
		if err := s.local.SaveEndpointURL(url); err != nil {
			return false, err
		}
	}

	if url == "" {
		s.mu.Lock()
		s.connected = false
		s.mu.Unlock()

		return true, nil
	}

	return s.Load(ctx), nil
}

func (s *Store) State() LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Store) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.connected
}

// seedDefaults installs the demo data shown before any endpoint is
// configured. Caller holds the lock or is the constructor.
func (s *Store) seedDefaults() {
	s.transactions = []ledger.Transaction{
		{
			ID:            "1",
			Date:          "2023-10-25",
			Description:   "ซ่อมคอมพิวเตอร์",
			Category:      "Service",
			Amount:        1500,
			Type:          ledger.TypeIncome,
			PaymentMethod: ledger.PaymentCash,
		},
	}

	s.products = []inventory.Product{
		{
			ID:                "1",
			Code:              "P001",
			Name:              "สาย LAN CAT6",
			Cost:              100,
			Quantity:          50,
			Unit:              "เมตร",
			MinStockThreshold: 20,
		},
	}

	s.tasks = []jobs.Task{
		{
			ID:        "1",
			Type:      jobs.TypeRepair,
			Title:     "ซ่อม Notebook เปิดไม่ติด",
			StartDate: "2023-10-28",
			Status:    jobs.StatusInProgress,
			Assignee:  "ช่างหนึ่ง",
			Customer:  &jobs.Customer{Name: "คุณสมชาย ใจดี", Phone: "081-234-5678"},
		},
	}

	s.warranties = []warranty.Warranty{}
}

// Transactions returns the ledger, most recently added first.
func (s *Store) Transactions() []ledger.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.transactions)
}

func (s *Store) Products() []inventory.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.products)
}

func (s *Store) Tasks() []jobs.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.tasks)
}

func (s *Store) Warranties() []warranty.Warranty {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.warranties)
}

func (s *Store) Profile() company.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.profile
}
