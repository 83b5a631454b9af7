package appstate_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittipatv/shopdesk/internal/appstate"
	"github.com/kittipatv/shopdesk/internal/company"
	"github.com/kittipatv/shopdesk/internal/inventory"
	"github.com/kittipatv/shopdesk/internal/jobs"
	"github.com/kittipatv/shopdesk/internal/ledger"
	"github.com/kittipatv/shopdesk/internal/localstore"
	"github.com/kittipatv/shopdesk/internal/sheets"
	"github.com/kittipatv/shopdesk/internal/warranty"
)

type sentWrite struct {
	action  string
	payload any
}

// fakeRemote stands in for the sheets client. Sends are recorded and
// answered with a fixed outcome.
type fakeRemote struct {
	mu         sync.Mutex
	configured bool
	snap       *sheets.Snapshot
	fetchErr   error
	outcome    sheets.Outcome
	sent       []sentWrite
}

func (f *fakeRemote) Configured() bool { return f.configured }

func (f *fakeRemote) FetchAll(ctx context.Context) (*sheets.Snapshot, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}

	return f.snap, nil
}

func (f *fakeRemote) Send(ctx context.Context, action string, payload any) sheets.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, sentWrite{action: action, payload: payload})

	return f.outcome
}

func (f *fakeRemote) sentWrites() []sentWrite {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]sentWrite, len(f.sent))
	copy(out, f.sent)

	return out
}

// newStore builds a store over a fake remote and a channel that receives
// one observer event per attempted write.
func newStore(t *testing.T, remote *fakeRemote) (*appstate.Store, chan sheets.Outcome) {
	t.Helper()

	delivered := make(chan sheets.Outcome, 16)

	store := appstate.New(remote, nil, appstate.WithObserver(func(action string, outcome sheets.Outcome) {
		delivered <- outcome
	}))
	t.Cleanup(store.Close)

	return store, delivered
}

func awaitOutcome(t *testing.T, ch chan sheets.Outcome) sheets.Outcome {
	t.Helper()

	select {
	case o := <-ch:
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the outbound write")
		return ""
	}
}

func TestStore_AddTransaction_Optimistic(t *testing.T) {
	// The remote fails every write; the local collection must not care.
	remote := &fakeRemote{configured: true, outcome: sheets.OutcomeFailed}
	store, delivered := newStore(t, remote)

	before := len(store.Transactions())

	created := store.AddTransaction(ledger.Transaction{
		Date:          "2026-08-15",
		Description:   "ติดตั้งกล้องวงจรปิด",
		Category:      "Service",
		Amount:        4500,
		Type:          ledger.TypeIncome,
		PaymentMethod: ledger.PaymentTransfer,
	})

	assert.NotEmpty(t, created.ID)

	txs := store.Transactions()
	require.Len(t, txs, before+1)
	assert.Equal(t, created.ID, txs[0].ID, "new entries go to the front")

	assert.Equal(t, sheets.OutcomeFailed, awaitOutcome(t, delivered))
	require.Len(t, remote.sentWrites(), 1)
	assert.Equal(t, sheets.ActionAddTransaction, remote.sentWrites()[0].action)

	// The failed send must not have rolled the entry back.
	assert.Len(t, store.Transactions(), before+1)
}

func TestStore_AddTransaction_UniqueIDs(t *testing.T) {
	store, _ := newStore(t, &fakeRemote{outcome: sheets.OutcomeSkipped})

	seen := map[string]bool{}

	for range 50 {
		tx := store.AddTransaction(ledger.Transaction{Description: "x", Amount: 1, Type: ledger.TypeExpense})
		assert.False(t, seen[tx.ID], "duplicate id %s", tx.ID)
		seen[tx.ID] = true
	}
}

func TestStore_Load(t *testing.T) {
	t.Run("hydrates from snapshot", func(t *testing.T) {
		remote := &fakeRemote{
			configured: true,
			outcome:    sheets.OutcomeConfirmed,
			snap: &sheets.Snapshot{
				Transactions: []ledger.Transaction{{ID: "t1", Amount: 900, Type: ledger.TypeIncome}},
				Products:     []inventory.Product{{ID: "p1", Name: "UPS 1000VA", Quantity: 3}},
				Tasks:        []jobs.Task{{ID: "JOB-2026-0042", Title: "เดินสายแลน", Status: jobs.StatusPending}},
				Company:      []company.Profile{{Name: "ACME"}},
			},
		}
		store, _ := newStore(t, remote)

		ok := store.Load(context.Background())

		assert.True(t, ok)
		assert.True(t, store.Connected())
		assert.Equal(t, appstate.StateLoaded, store.State())

		require.Len(t, store.Transactions(), 1)
		assert.Equal(t, "t1", store.Transactions()[0].ID)
		require.Len(t, store.Products(), 1)
		require.Len(t, store.Tasks(), 1)
		assert.Empty(t, store.Warranties())
		assert.Equal(t, "ACME", store.Profile().Name)
	})

	t.Run("unconfigured endpoint keeps seed data", func(t *testing.T) {
		store, _ := newStore(t, &fakeRemote{configured: false})

		ok := store.Load(context.Background())

		assert.False(t, ok)
		assert.False(t, store.Connected())
		assert.Equal(t, appstate.StateLoadedFromDefaults, store.State())
		assert.NotEmpty(t, store.Transactions())
		assert.NotEmpty(t, store.Products())
	})

	t.Run("fetch failure keeps seed data", func(t *testing.T) {
		remote := &fakeRemote{configured: true, fetchErr: errors.New("connection refused")}
		store, _ := newStore(t, remote)

		ok := store.Load(context.Background())

		assert.False(t, ok)
		assert.Equal(t, appstate.StateLoadedFromDefaults, store.State())
		assert.NotEmpty(t, store.Products())
	})

	t.Run("empty snapshot clears the seed data", func(t *testing.T) {
		remote := &fakeRemote{configured: true, snap: &sheets.Snapshot{}}
		store, _ := newStore(t, remote)

		ok := store.Load(context.Background())

		assert.True(t, ok)
		assert.Empty(t, store.Transactions())
		assert.Empty(t, store.Products())
		assert.Equal(t, appstate.StateLoaded, store.State())
	})
}

func TestStore_AdjustQuantity_ClampsAtZero(t *testing.T) {
	remote := &fakeRemote{configured: true, outcome: sheets.OutcomeConfirmed}
	store, delivered := newStore(t, remote)

	p := store.AddProduct(inventory.Product{Code: "P010", Name: "หัวแลน RJ45", Quantity: 3})
	awaitOutcome(t, delivered)

	require.True(t, store.AdjustQuantity(p.ID, -10))
	awaitOutcome(t, delivered)

	var got *inventory.Product

	for _, prod := range store.Products() {
		if prod.ID == p.ID {
			got = &prod
			break
		}
	}

	require.NotNil(t, got)
	assert.Equal(t, 0.0, got.Quantity)

	writes := remote.sentWrites()
	require.Len(t, writes, 2)
	assert.Equal(t, sheets.ActionUpdateProduct, writes[1].action)
}

func TestStore_UpdateProduct_UnknownID(t *testing.T) {
	remote := &fakeRemote{configured: true, outcome: sheets.OutcomeConfirmed}
	store, _ := newStore(t, remote)

	name := "renamed"
	assert.False(t, store.UpdateProduct("no-such-id", inventory.Patch{Name: &name}))
	assert.Empty(t, remote.sentWrites(), "no wire traffic for a vanished row")
}

func TestStore_DeleteProduct(t *testing.T) {
	remote := &fakeRemote{configured: true, outcome: sheets.OutcomeConfirmed}
	store, delivered := newStore(t, remote)

	p := store.AddProduct(inventory.Product{Code: "P020", Name: "สวิตช์ 8 พอร์ต"})
	awaitOutcome(t, delivered)

	store.DeleteProduct(p.ID)
	awaitOutcome(t, delivered)

	for _, prod := range store.Products() {
		assert.NotEqual(t, p.ID, prod.ID)
	}

	writes := remote.sentWrites()
	require.Len(t, writes, 2)
	assert.Equal(t, sheets.ActionDeleteProduct, writes[1].action)
}

func TestStore_AddTask(t *testing.T) {
	clock := func() time.Time { return time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC) }

	remote := &fakeRemote{configured: true, outcome: sheets.OutcomeConfirmed}
	store := appstate.New(remote, nil, appstate.WithClock(clock))
	t.Cleanup(store.Close)

	created := store.AddTask(jobs.Task{
		Type:  jobs.TypeInstallation,
		Title: "ติดตั้งระบบกล้อง 8 จุด",
	})

	assert.Regexp(t, `^JOB-2026-\d{4}$`, created.ID)
	assert.Equal(t, jobs.StatusPending, created.Status, "new tickets default to pending")
}

func TestStore_UpdateTaskStatus(t *testing.T) {
	remote := &fakeRemote{configured: true, outcome: sheets.OutcomeConfirmed}
	store, delivered := newStore(t, remote)

	task := store.AddTask(jobs.Task{Type: jobs.TypeRepair, Title: "เปลี่ยนฮาร์ดดิสก์"})
	awaitOutcome(t, delivered)

	require.True(t, store.UpdateTaskStatus(task.ID, jobs.StatusCompleted))
	awaitOutcome(t, delivered)

	var got *jobs.Task

	for _, tk := range store.Tasks() {
		if tk.ID == task.ID {
			got = &tk
			break
		}
	}

	require.NotNil(t, got)
	assert.Equal(t, jobs.StatusCompleted, got.Status)

	assert.False(t, store.UpdateTaskStatus("no-such-id", jobs.StatusCanceled))
}

func TestStore_AddWarranty_DerivesExpiry(t *testing.T) {
	clock := func() time.Time { return time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC) }

	remote := &fakeRemote{configured: true, outcome: sheets.OutcomeConfirmed}
	store := appstate.New(remote, nil, appstate.WithClock(clock))
	t.Cleanup(store.Close)

	created := store.AddWarranty(warranty.Warranty{
		ProductName: "UPS 1000VA",
		StartDate:   "2026-08-30",
		Duration:    "1 ปี",
	})

	assert.Regexp(t, `^RC-2026-\d{4}$`, created.ID)
	assert.Equal(t, "2027-08-29", created.ExpiryDate)
}

func TestStore_UpdateCompanyProfile(t *testing.T) {
	t.Run("persists locally even when the remote fails", func(t *testing.T) {
		local, err := localstore.New(t.TempDir())
		require.NoError(t, err)

		remote := &fakeRemote{configured: true, outcome: sheets.OutcomeFailed}
		store := appstate.New(remote, local)
		t.Cleanup(store.Close)

		p := company.Default()
		p.Name = "ร้านช่างดี เซอร์วิส"

		outcome, err := store.UpdateCompanyProfile(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, sheets.OutcomeFailed, outcome)

		assert.Equal(t, "ร้านช่างดี เซอร์วิส", store.Profile().Name)

		cached, err := local.Profile()
		require.NoError(t, err)
		assert.Equal(t, "ร้านช่างดี เซอร์วิส", cached.Name)
	})

	t.Run("rejects oversized images before touching state", func(t *testing.T) {
		remote := &fakeRemote{configured: true, outcome: sheets.OutcomeConfirmed}
		store, _ := newStore(t, remote)

		p := store.Profile()
		p.Logo = "data:image/png;base64," + string(make([]byte, 400*1024))

		outcome, err := store.UpdateCompanyProfile(context.Background(), p)

		assert.ErrorIs(t, err, company.ErrImageTooLarge)
		assert.Equal(t, sheets.OutcomeFailed, outcome)
		assert.Empty(t, remote.sentWrites())
	})
}

func TestStore_ConfigureEndpoint(t *testing.T) {
	t.Run("empty url switches to offline mode", func(t *testing.T) {
		local, err := localstore.New(t.TempDir())
		require.NoError(t, err)

		remote := &fakeRemote{configured: true, snap: &sheets.Snapshot{}}
		store := appstate.New(remote, local)
		t.Cleanup(store.Close)

		ok, err := store.ConfigureEndpoint(context.Background(), "")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.False(t, store.Connected())
		assert.Empty(t, local.EndpointURL())
	})

	t.Run("non-empty url persists and reloads", func(t *testing.T) {
		local, err := localstore.New(t.TempDir())
		require.NoError(t, err)

		remote := &fakeRemote{configured: true, snap: &sheets.Snapshot{}}
		store := appstate.New(remote, local)
		t.Cleanup(store.Close)

		ok, err := store.ConfigureEndpoint(context.Background(), "https://script.example.com/exec")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "https://script.example.com/exec", local.EndpointURL())
	})
}
