package exception

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mvisser/banknote/internal/exception"
	"github.com/mvisser/banknote/internal/record"
)

type Handler struct {
	svc *exception.Service
}

func NewHandler(svc *exception.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.assign)
	r.Delete("/", h.remove)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Snapshot(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(m); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type assignRequest struct {
	Record   record.Record `json:"record"`
	Category string        `json:"category"`
}

// assign computes the record's hash server-side, so clients never deal with
// hashes directly.
func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Category == "" {
		http.Error(w, "category is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.Assign(r.Context(), req.Record, req.Category); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type removeRequest struct {
	Record record.Record `json:"record"`
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	var req removeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Remove(r.Context(), req.Record); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
