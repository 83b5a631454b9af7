// Package sheetd is a local stand-in for the script-hosted spreadsheet
// endpoint: one GET that returns the bulk snapshot and one POST that
// dispatches {action, data} writes. Errors are reported in the JSON
// envelope with HTTP 200, matching the hosted behavior.
package sheetd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kittipatv/shopdesk/internal/sheetd/workbook"
	"github.com/kittipatv/shopdesk/internal/sheets"
)

type Handler struct {
	store *workbook.Store
}

func NewHandler(store *workbook.Store) *Handler {
	return &Handler{store: store}
}

// NewRouter wires the endpoint contract. CORS is wide open: the hosted
// original is reached cross-origin from the browser app, and the local
// stand-in keeps that property so clients behave identically.
func NewRouter(h *Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	router.Get("/sheets", h.snapshot)
	router.Post("/sheets", h.dispatch)

	return router
}

type envelope struct {
	Status  string         `json:"status"`
	Data    map[string]any `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}

	for _, schema := range workbook.Schemas {
		rows, err := h.store.ReadAll(schema.Sheet)
		if err != nil {
			writeEnvelope(w, envelope{Status: "error", Message: err.Error()})
			return
		}

		// Collection keys are the lowercase sheet names.
		data[strings.ToLower(schema.Sheet)] = rows
	}

	writeEnvelope(w, envelope{Status: "success", Data: data})
}

type actionRequest struct {
	Action string         `json:"action"`
	Data   map[string]any `json:"data"`
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request) {
	// The client posts text/plain to sidestep CORS preflight, so the
	// body is parsed regardless of content type.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 4<<20))
	if err != nil {
		writeEnvelope(w, envelope{Status: "error", Message: "request too large"})
		return
	}

	var req actionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeEnvelope(w, envelope{Status: "error", Message: "malformed request body"})
		return
	}

	if err := h.apply(req); err != nil {
		writeEnvelope(w, envelope{Status: "error", Message: err.Error()})
		return
	}

	writeEnvelope(w, envelope{Status: "success"})
}

func (h *Handler) apply(req actionRequest) error {
	switch req.Action {
	case sheets.ActionAddTransaction:
		return h.store.Append("Transactions", req.Data)
	case sheets.ActionAddProduct:
		return h.store.Append("Products", req.Data)
	case sheets.ActionUpdateProduct:
		return h.store.Update("Products", stringField(req.Data, "id"), req.Data)
	case sheets.ActionDeleteProduct:
		return h.store.Delete("Products", stringField(req.Data, "id"))
	case sheets.ActionAddTask:
		return h.store.Append("Tasks", req.Data)
	case sheets.ActionUpdateTask:
		return h.store.Update("Tasks", stringField(req.Data, "id"), req.Data)
	case sheets.ActionUpdateTaskStatus:
		return h.store.Update("Tasks", stringField(req.Data, "id"), map[string]any{
			"status": req.Data["status"],
		})
	case sheets.ActionDeleteTask:
		return h.store.Delete("Tasks", stringField(req.Data, "id"))
	case sheets.ActionUpdateCompanyProfile:
		return h.store.Replace("CompanyProfile", req.Data)
	case sheets.ActionAddReceipt:
		return h.store.Append("Warranties", req.Data)
	default:
		return fmt.Errorf("unknown action: %s", req.Action)
	}
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

func writeEnvelope(w http.ResponseWriter, env envelope) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
