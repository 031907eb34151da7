package rules

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mvisser/banknote/internal/rules"
)

const maxConfigSize = 1 << 20 // 1 MiB

type Handler struct {
	svc *rules.Service
}

func NewHandler(svc *rules.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.put)
	r.Post("/{category}", h.addRule)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	raw, err := h.svc.Raw(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(raw); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// put replaces the whole configuration with the raw JSON body. A rejected
// edit (malformed JSON, invalid pattern) returns 422 and leaves the stored
// configuration untouched.
func (h *Handler) put(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxConfigSize))
	if err != nil {
		http.Error(w, "reading body", http.StatusBadRequest)
		return
	}

	if err := h.svc.Save(r.Context(), raw); err != nil {
		var (
			malformed  *rules.MalformedConfigError
			badPattern *rules.InvalidRulePatternError
		)

		if errors.As(err, &malformed) || errors.As(err, &badPattern) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type addRuleRequest struct {
	Field   string `json:"field"`
	Pattern string `json:"pattern"`
}

func (h *Handler) addRule(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	var req addRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.AddRule(r.Context(), category, req.Field, req.Pattern); err != nil {
		var badPattern *rules.InvalidRulePatternError
		if errors.As(err, &badPattern) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
