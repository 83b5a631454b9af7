package sheets_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittipatv/shopdesk/internal/sheets"
)

type fixedSettings struct {
	url string
}

func (s fixedSettings) EndpointURL() string { return s.url }

func newClient(url string) *sheets.Client {
	return sheets.New(fixedSettings{url: url}, "", 5*time.Second)
}

func TestClient_FetchAll(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)

		w.Write([]byte(`{
			"status": "success",
			"data": {
				"transactions": [
					{"id": "t1", "date": "2026-08-01", "description": "ซ่อมคอมพิวเตอร์", "category": "Service", "amount": 1500, "type": "INCOME", "paymentMethod": "CASH"}
				],
				"products": [
					{"id": "p1", "code": "P001", "name": "สาย LAN CAT6", "cost": 250, "quantity": 12, "unit": "เส้น", "minStockThreshold": 5}
				],
				"tasks": [
					{"id": "JOB-2026-0001", "type": "REPAIR", "title": "ซ่อม Notebook", "status": "PENDING", "customer": "{\"name\":\"คุณสมชาย\",\"phone\":\"081-000-0000\"}"}
				],
				"warranties": [],
				"companyprofile": [
					{"name": "ACME", "phone": "02-000-0000"}
				]
			}
		}`))
	}))
	defer ts.Close()

	snap, err := newClient(ts.URL).FetchAll(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, "t1", snap.Transactions[0].ID)
	assert.Equal(t, 1500.0, snap.Transactions[0].Amount)

	require.Len(t, snap.Products, 1)
	assert.Equal(t, "สาย LAN CAT6", snap.Products[0].Name)

	require.Len(t, snap.Tasks, 1)
	require.NotNil(t, snap.Tasks[0].Customer)
	assert.Equal(t, "คุณสมชาย", snap.Tasks[0].Customer.Name)

	assert.Empty(t, snap.Warranties)

	require.Len(t, snap.Company, 1)
	assert.Equal(t, "ACME", snap.Company[0].Name)
}

func TestClient_FetchAll_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "error envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status": "error", "message": "sheet not found"}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>Moved Temporarily</html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			snap, err := newClient(ts.URL).FetchAll(context.Background())
			assert.Error(t, err)
			assert.Nil(t, snap)
		})
	}
}

func TestClient_FetchAll_Unconfigured(t *testing.T) {
	_, err := newClient("").FetchAll(context.Background())
	assert.Error(t, err)
}

func TestClient_Send(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    sheets.Outcome
	}{
		{
			name: "success envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status": "success"}`))
			},
			want: sheets.OutcomeConfirmed,
		},
		{
			name: "error envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status": "error", "message": "bad payload"}`))
			},
			want: sheets.OutcomeFailed,
		},
		{
			name: "opaque redirect page",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>Moved Temporarily</html>`))
			},
			want: sheets.OutcomeAssumed,
		},
		{
			name: "http error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want: sheets.OutcomeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotContentType string

			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotContentType = r.Header.Get("Content-Type")
				tt.handler(w, r)
			}))
			defer ts.Close()

			got := newClient(ts.URL).Send(context.Background(), sheets.ActionAddTransaction, map[string]string{"id": "t1"})

			assert.Equal(t, tt.want, got)
			assert.Equal(t, "text/plain;charset=utf-8", gotContentType)
		})
	}
}

func TestClient_Send_Unconfigured(t *testing.T) {
	var requests atomic.Int64

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer ts.Close()

	// No settings URL and no fallback: nothing may go over the wire.
	client := sheets.New(fixedSettings{}, "", time.Second)

	got := client.Send(context.Background(), sheets.ActionAddProduct, map[string]string{"id": "p1"})

	assert.Equal(t, sheets.OutcomeSkipped, got)
	assert.Equal(t, int64(0), requests.Load())
}

func TestClient_Send_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	got := newClient(ts.URL).Send(context.Background(), sheets.ActionAddTask, nil)
	assert.Equal(t, sheets.OutcomeFailed, got)
}

func TestClient_Configured(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		fallback string
		want     bool
	}{
		{name: "settings url", settings: "https://script.example.com/exec", want: true},
		{name: "fallback url", fallback: "http://localhost:8090/sheets", want: true},
		{name: "settings wins over fallback", settings: "https://a.example.com", fallback: "http://b.example.com", want: true},
		{name: "nothing set", want: false},
		{name: "not a url", settings: "not a url at all", want: false},
		{name: "wrong scheme", settings: "ftp://example.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := sheets.New(fixedSettings{url: tt.settings}, tt.fallback, time.Second)
			assert.Equal(t, tt.want, client.Configured())
		})
	}
}

func TestOutcome_Delivered(t *testing.T) {
	assert.True(t, sheets.OutcomeConfirmed.Delivered())
	assert.True(t, sheets.OutcomeAssumed.Delivered())
	assert.False(t, sheets.OutcomeSkipped.Delivered())
	assert.False(t, sheets.OutcomeFailed.Delivered())
}
