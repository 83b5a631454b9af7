// Package sheets is the HTTP adapter for the spreadsheet-backed store.
// The endpoint is a script-hosted web app that answers GET with a bulk
// JSON snapshot and POST with an {action, data} envelope. Script hosts
// redirect POSTs and serve inconsistent CORS headers, so a write that
// produces no readable confirmation is still counted as probably
// delivered; see Outcome.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/kittipatv/shopdesk/internal/company"
	"github.com/kittipatv/shopdesk/internal/inventory"
	"github.com/kittipatv/shopdesk/internal/jobs"
	"github.com/kittipatv/shopdesk/internal/ledger"
	"github.com/kittipatv/shopdesk/internal/warranty"
)

// Write actions understood by the endpoint.
const (
	ActionAddTransaction       = "ADD_TRANSACTION"
	ActionAddProduct           = "ADD_PRODUCT"
	ActionUpdateProduct        = "UPDATE_PRODUCT"
	ActionDeleteProduct        = "DELETE_PRODUCT"
	ActionAddTask              = "ADD_TASK"
	ActionUpdateTask           = "UPDATE_TASK"
	ActionUpdateTaskStatus     = "UPDATE_TASK_STATUS"
	ActionDeleteTask           = "DELETE_TASK"
	ActionUpdateCompanyProfile = "UPDATE_COMPANY_PROFILE"
	ActionAddReceipt           = "ADD_RECEIPT"
)

// Outcome is the confidence level of a write. The endpoint often cannot
// be read back (opaque redirects), so "it went out and nothing blew up"
// is deliberately reported as Assumed rather than failure: a false
// "save failed" is worse for the user than a rare silent loss. Callers
// needing hard confirmation treat Assumed differently from Confirmed.
type Outcome string

const (
	// OutcomeSkipped means no endpoint is configured; nothing was sent.
	OutcomeSkipped Outcome = "SKIPPED"
	// OutcomeConfirmed means the endpoint reported success.
	OutcomeConfirmed Outcome = "CONFIRMED"
	// OutcomeAssumed means the request was delivered but the response
	// was opaque or unparseable.
	OutcomeAssumed Outcome = "ASSUMED"
	// OutcomeFailed means transport failure or an error envelope.
	OutcomeFailed Outcome = "FAILED"
)

// Delivered reports whether the write probably reached the store.
func (o Outcome) Delivered() bool {
	return o == OutcomeConfirmed || o == OutcomeAssumed
}

// Snapshot is the bulk read payload, keyed by lowercase collection name
// on the wire. companyprofile carries zero or one element.
type Snapshot struct {
	Transactions []ledger.Transaction `json:"transactions"`
	Products     []inventory.Product  `json:"products"`
	Tasks        []jobs.Task          `json:"tasks"`
	Warranties   []warranty.Warranty  `json:"warranties"`
	Company      []company.Profile    `json:"companyprofile"`
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Settings supplies the user-configured endpoint URL ("" when unset).
type Settings interface {
	EndpointURL() string
}

type Client struct {
	settings Settings
	fallback string
	client   *http.Client
}

// New builds a client. fallbackURL is used whenever the settings hold no
// URL, so the app works out of the box.
func New(settings Settings, fallbackURL string, timeout time.Duration) *Client {
	return &Client{
		settings: settings,
		fallback: fallbackURL,
		client:   &http.Client{Timeout: timeout},
	}
}

// URL returns the endpoint in effect.
func (c *Client) URL() string {
	if u := c.settings.EndpointURL(); u != "" {
		return u
	}

	return c.fallback
}

// Configured reports whether the endpoint looks usable: non-empty with an
// http(s) scheme. It says nothing about reachability.
func (c *Client) Configured() bool {
	raw := c.URL()
	if raw == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// FetchAll reads the full snapshot. Any failure (transport, parse, error
// envelope) is logged and returned as an error; it never panics, and
// callers fall back to local defaults.
func (c *Client) FetchAll(ctx context.Context) (*Snapshot, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("sheets: endpoint not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("sheet fetch failed", "error", err)
		return nil, fmt.Errorf("fetching snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("sheet fetch rejected", "status", resp.StatusCode)
		return nil, fmt.Errorf("fetching snapshot: status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		slog.Warn("sheet fetch returned malformed body", "error", err)
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	if env.Status != "success" {
		slog.Warn("sheet fetch reported error", "message", env.Message)
		return nil, fmt.Errorf("fetching snapshot: %s", env.Message)
	}

	var snap Snapshot
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &snap); err != nil {
			slog.Warn("sheet snapshot malformed", "error", err)
			return nil, fmt.Errorf("decoding snapshot data: %w", err)
		}
	}

	return &snap, nil
}

// Send issues one best-effort write. There are no retries and no queue;
// the returned Outcome is informational and an OutcomeFailed is not
// proof of data loss, only of a missing confirmation.
func (c *Client) Send(ctx context.Context, action string, payload any) Outcome {
	if !c.Configured() {
		return OutcomeSkipped
	}

	body, err := json.Marshal(struct {
		Action string `json:"action"`
		Data   any    `json:"data"`
	}{Action: action, Data: payload})
	if err != nil {
		slog.Error("encoding sheet write", "action", action, "error", err)
		return OutcomeFailed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(body))
	if err != nil {
		slog.Error("creating sheet write", "action", action, "error", err)
		return OutcomeFailed
	}

	// text/plain keeps script hosts from demanding a CORS preflight.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("sheet write not delivered", "action", action, "error", err)
		return OutcomeFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		slog.Warn("sheet write rejected", "action", action, "status", resp.StatusCode)
		return OutcomeFailed
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return OutcomeAssumed
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		// Redirect page or otherwise opaque body: delivered, unconfirmed.
		return OutcomeAssumed
	}

	switch env.Status {
	case "success":
		return OutcomeConfirmed
	case "error":
		slog.Warn("sheet write reported error", "action", action, "message", env.Message)
		return OutcomeFailed
	default:
		return OutcomeAssumed
	}
}
