package report

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mvisser/banknote/internal/reporting"
	"github.com/mvisser/banknote/internal/rules"
	"github.com/mvisser/banknote/internal/statement"
)

type Handler struct {
	svc *reporting.Service
}

func NewHandler(svc *reporting.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{batchID}", h.report)
	r.Get("/{batchID}/months", h.months)
	r.Get("/{batchID}/monthly-totals", h.monthlyTotals)
	r.Get("/{batchID}/series/{category}", h.series)
}

type reportResponse struct {
	Report  any `json:"report"`
	Summary any `json:"summary"`
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	batchID, err := uuid.Parse(chi.URLParam(r, "batchID"))
	if err != nil {
		http.Error(w, "invalid batch id", http.StatusBadRequest)
		return
	}

	month := r.URL.Query().Get("month")
	payday := r.URL.Query().Get("payday") == "true"

	rep, err := h.svc.Build(r.Context(), batchID, month, payday)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, reportResponse{Report: rep, Summary: h.svc.Summarize(rep)})
}

func (h *Handler) months(w http.ResponseWriter, r *http.Request) {
	batchID, err := uuid.Parse(chi.URLParam(r, "batchID"))
	if err != nil {
		http.Error(w, "invalid batch id", http.StatusBadRequest)
		return
	}

	months, err := h.svc.Months(r.Context(), batchID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, months)
}

func (h *Handler) monthlyTotals(w http.ResponseWriter, r *http.Request) {
	batchID, err := uuid.Parse(chi.URLParam(r, "batchID"))
	if err != nil {
		http.Error(w, "invalid batch id", http.StatusBadRequest)
		return
	}

	payday := r.URL.Query().Get("payday") == "true"

	totals, err := h.svc.MonthlyTotals(r.Context(), batchID, payday)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, totals)
}

func (h *Handler) series(w http.ResponseWriter, r *http.Request) {
	batchID, err := uuid.Parse(chi.URLParam(r, "batchID"))
	if err != nil {
		http.Error(w, "invalid batch id", http.StatusBadRequest)
		return
	}

	category := chi.URLParam(r, "category")
	incomeIsPositive := r.URL.Query().Get("income") == "true"

	series, err := h.svc.CategorySeries(r.Context(), batchID, category, incomeIsPositive)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, series)
}

// writeError maps domain errors to status codes. An invalid rule pattern is
// a configuration problem the user has to fix, not a server fault.
func writeError(w http.ResponseWriter, err error) {
	var patternErr *rules.InvalidRulePatternError

	switch {
	case errors.Is(err, statement.ErrNotFound):
		http.Error(w, "batch not found", http.StatusNotFound)
	case errors.As(err, &patternErr):
		http.Error(w, patternErr.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
