package scan

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/de-tools/sec-atlas/pkg/models/api"
	"github.com/de-tools/sec-atlas/pkg/models/domain"
	"github.com/de-tools/sec-atlas/pkg/services/checks"
	storesql "github.com/de-tools/sec-atlas/pkg/store/sql"
	"github.com/rs/zerolog"
)

type Scanner interface {
	ListCategories() []domain.Category
	Scan(ctx context.Context, categories []domain.Category) (api.ScanResponse, error)
}

type Reports interface {
	Latest(ctx context.Context) (*api.ReportDocument, error)
}

type Handler struct {
	scanner Scanner
	reports Reports
}

func NewHandler(scanner Scanner, reports Reports) *Handler {
	return &Handler{
		scanner: scanner,
		reports: reports,
	}
}

func (h *Handler) ListChecks(w http.ResponseWriter, r *http.Request) {
	categories := h.scanner.ListCategories()
	response := make([]api.Check, 0, len(categories))
	for _, c := range categories {
		response = append(response, api.Check{Category: string(c)})
	}

	writeJSON(r.Context(), w, http.StatusOK, response)
}

func (h *Handler) RunScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid scan request body", http.StatusBadRequest)
		return
	}

	resp, err := h.scanner.Scan(ctx, domain.ParseCategories(req.Checks...))
	if errors.Is(err, checks.ErrUnknownCategory) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("scan failed")
		http.Error(w, "scan failed", http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}

func (h *Handler) GetLatestReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	doc, err := h.reports.Latest(ctx)
	if errors.Is(err, storesql.ErrNoReports) {
		http.Error(w, "no report available", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to load latest report")
		http.Error(w, "failed to load latest report", http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, doc)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}
