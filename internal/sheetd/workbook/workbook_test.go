package workbook_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittipatv/shopdesk/internal/sheetd/workbook"
)

func openStore(t *testing.T) (*workbook.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "shopdesk.xlsx")

	store, err := workbook.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, path
}

func TestOpen_CreatesEmptySheets(t *testing.T) {
	store, path := openStore(t)

	for _, schema := range workbook.Schemas {
		rows, err := store.ReadAll(schema.Sheet)
		require.NoError(t, err)
		assert.Empty(t, rows, "sheet %s should start empty", schema.Sheet)
	}

	// Reopening the same file must not error or duplicate sheets.
	require.NoError(t, store.Close())

	reopened, err := workbook.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	rows, err := reopened.ReadAll("Transactions")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStore_AppendAndReadAll(t *testing.T) {
	store, _ := openStore(t)

	require.NoError(t, store.Append("Transactions", map[string]any{
		"id":            "t1",
		"date":          "2026-08-05",
		"description":   "ซ่อมคอมพิวเตอร์",
		"category":      "Service",
		"amount":        1500.0,
		"type":          "INCOME",
		"paymentMethod": "CASH",
	}))

	rows, err := store.ReadAll("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "t1", rows[0]["id"])
	assert.Equal(t, "ซ่อมคอมพิวเตอร์", rows[0]["description"])
	assert.Equal(t, 1500.0, rows[0]["amount"], "numeric column decodes to float64")
}

func TestStore_StructuredColumn(t *testing.T) {
	store, _ := openStore(t)

	require.NoError(t, store.Append("Tasks", map[string]any{
		"id":     "JOB-2026-0001",
		"type":   "REPAIR",
		"title":  "ซ่อม Notebook",
		"status": "PENDING",
		"customer": map[string]any{
			"name":  "คุณสมชาย ใจดี",
			"phone": "081-234-5678",
		},
	}))

	rows, err := store.ReadAll("Tasks")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	customer, ok := rows[0]["customer"].(map[string]any)
	require.True(t, ok, "customer cell decodes back to a document")
	assert.Equal(t, "คุณสมชาย ใจดี", customer["name"])
	assert.Equal(t, "081-234-5678", customer["phone"])
}

func TestStore_BoolColumn(t *testing.T) {
	store, _ := openStore(t)

	require.NoError(t, store.Append("Warranties", map[string]any{
		"id":           "RC-2026-0001",
		"productName":  "UPS 1000VA",
		"quantity":     1.0,
		"price":        3500.0,
		"duration":     "1 ปี",
		"startDate":    "2026-08-30",
		"expiryDate":   "2027-08-29",
		"hasDocuments": true,
	}))

	rows, err := store.ReadAll("Warranties")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, true, rows[0]["hasDocuments"])
}

func TestStore_Update(t *testing.T) {
	store, _ := openStore(t)

	require.NoError(t, store.Append("Products", map[string]any{
		"id":       "p1",
		"code":     "P001",
		"name":     "สาย LAN CAT6",
		"cost":     100.0,
		"quantity": 50.0,
		"unit":     "เมตร",
	}))

	require.NoError(t, store.Update("Products", "p1", map[string]any{
		"quantity": 42.0,
	}))

	rows, err := store.ReadAll("Products")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, 42.0, rows[0]["quantity"])
	assert.Equal(t, "สาย LAN CAT6", rows[0]["name"], "untouched fields survive")

	err = store.Update("Products", "no-such-id", map[string]any{"quantity": 1.0})
	assert.ErrorIs(t, err, workbook.ErrRowNotFound)
}

func TestStore_Delete(t *testing.T) {
	store, _ := openStore(t)

	require.NoError(t, store.Append("Products", map[string]any{"id": "p1", "name": "a"}))
	require.NoError(t, store.Append("Products", map[string]any{"id": "p2", "name": "b"}))

	require.NoError(t, store.Delete("Products", "p1"))

	rows, err := store.ReadAll("Products")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "p2", rows[0]["id"])

	assert.ErrorIs(t, store.Delete("Products", "p1"), workbook.ErrRowNotFound)
}

func TestStore_Replace(t *testing.T) {
	store, _ := openStore(t)

	require.NoError(t, store.Replace("CompanyProfile", map[string]any{
		"name":  "ACME",
		"phone": "02-000-0000",
	}))

	require.NoError(t, store.Replace("CompanyProfile", map[string]any{
		"name":  "ร้านช่างดี เซอร์วิส",
		"phone": "02-111-2222",
	}))

	rows, err := store.ReadAll("CompanyProfile")
	require.NoError(t, err)
	require.Len(t, rows, 1, "profile stays a singleton across replaces")
	assert.Equal(t, "ร้านช่างดี เซอร์วิส", rows[0]["name"])
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	store, path := openStore(t)

	require.NoError(t, store.Append("Transactions", map[string]any{
		"id": "t1", "description": "x", "amount": 1.0,
	}))
	require.NoError(t, store.Close())

	reopened, err := workbook.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	rows, err := reopened.ReadAll("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "t1", rows[0]["id"])
}
