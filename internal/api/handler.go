package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zzyhdu/tk-tools/internal/freight"
	"github.com/zzyhdu/tk-tools/internal/quote"
	"github.com/zzyhdu/tk-tools/internal/storage"
	"github.com/zzyhdu/tk-tools/internal/warehouse"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// maxBodyBytes bounds request payloads; a full batch of SKUs fits comfortably.
const maxBodyBytes = 1 << 20

// Handler wires the quote calculator, rate storage and warehouse directory
// into HTTP handlers.
type Handler struct {
	calculator quote.Calculator
	storage    storage.Storage
	directory  *warehouse.Directory

	clock func() time.Time
	newID func() string
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithIDGenerator overrides how ids are assigned to SKUs submitted without one.
func WithIDGenerator(gen func() string) HandlerOption {
	return func(h *Handler) {
		h.newID = gen
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(calc quote.Calculator, store storage.Storage, dir *warehouse.Directory, opts ...HandlerOption) *Handler {
	h := &Handler{
		calculator: calc,
		storage:    store,
		directory:  dir,
		clock: func() time.Time {
			return time.Now().UTC()
		},
		newID: newSKUID,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:     "ok",
		Timestamp:  h.clock(),
		Warehouses: h.directory.Len(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetRateTables(w http.ResponseWriter, r *http.Request) {
	_ = r
	tables, err := h.storage.GetRateTables()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := rateTablesResponse{
		RateTables: tables,
		UpdatedAt:  h.storage.UpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutRateTables(w http.ResponseWriter, r *http.Request) {
	var tables freight.RateTables
	if !decodeJSON(w, r, &tables) {
		return
	}

	if err := h.storage.SetRateTables(tables); err != nil {
		if errors.Is(err, storage.ErrInvalidRateTables) {
			writeError(w, http.StatusBadRequest, "Invalid rate tables", err.Error(),
				"Rates must be non-negative numbers and an air express section must price the west, central and east zones")
			return
		}
		writeInternalError(w, err)
		return
	}

	stored, err := h.storage.GetRateTables()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := rateTablesResponse{
		RateTables: stored,
		UpdatedAt:  h.storage.UpdatedAt(),
		Message:    "Rate tables updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type rateTablesResponse struct {
	RateTables freight.RateTables `json:"rateTables"`
	UpdatedAt  time.Time          `json:"updatedAt"`
	Message    string             `json:"message,omitempty"`
}

type healthResponse struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	Warehouses int       `json:"warehouses"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// decodeJSON reads the request body into dst and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "Invalid request",
				fmt.Sprintf("payload exceeds %d bytes", tooLarge.Limit))
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "Invalid request", "request body is empty")
		default:
			writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		}
		return false
	}
	return true
}

// writeJSON encodes payload before committing the status, so an unencodable
// payload becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: "Internal error", Details: "unable to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
