package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mvisser/banknote/internal/importer"
	"github.com/mvisser/banknote/internal/statement"
	"github.com/mvisser/banknote/internal/window"
)

const maxUploadSize = 10 << 20 // 10 MiB

type Handler struct {
	importSvc    *importer.Service
	statementSvc *statement.Service
}

func NewHandler(importSvc *importer.Service, statementSvc *statement.Service) *Handler {
	return &Handler{importSvc: importSvc, statementSvc: statementSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	BatchID     string   `json:"batchId"`
	Filename    string   `json:"filename"`
	RecordCount int      `json:"recordCount"`
	Months      []string `json:"months"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	bank := importer.Bank(r.FormValue("bank"))
	if bank == "" {
		bank = importer.BankING
	}

	records, err := h.importSvc.Import(bank, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	batch, err := h.statementSvc.Create(r.Context(), header.Filename, records)
	if err != nil {
		http.Error(w, "failed to store batch", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := importResponse{
		BatchID:     batch.ID.String(),
		Filename:    batch.Filename,
		RecordCount: len(batch.Records),
		Months:      window.Months(batch.Records),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
