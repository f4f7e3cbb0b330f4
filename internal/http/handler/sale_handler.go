package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/indigo-retail/pos-api/internal/domain"
	"github.com/indigo-retail/pos-api/internal/service"
)

type SaleHandler struct {
	saleService *service.SaleService
	logger      *zap.Logger
}

func NewSaleHandler(saleService *service.SaleService, logger *zap.Logger) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
		logger:      logger,
	}
}

func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	sales, err := h.saleService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list sales", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list sales")
		return
	}

	respondJSON(w, http.StatusOK, sales)
}

func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSaleNotFound) {
			respondWithError(w, http.StatusNotFound, "Sale not found")
			return
		}
		h.logger.Error("failed to get sale", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get sale")
		return
	}

	respondJSON(w, http.StatusOK, sale)
}

func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	sale, err := h.saleService.Create(r.Context(), &req)
	if err != nil {
		var stockErr *domain.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			respondWithError(w, http.StatusBadRequest, stockErr.Error())
		case errors.Is(err, domain.ErrProductNotFound):
			respondWithError(w, http.StatusNotFound, "Product not found")
		default:
			h.logger.Error("failed to create sale", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to create sale")
		}
		return
	}

	respondJSON(w, http.StatusCreated, sale)
}

func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid sale ID")
		return
	}

	if err := h.saleService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrSaleNotFound) {
			respondWithError(w, http.StatusNotFound, "Sale not found")
			return
		}
		h.logger.Error("failed to delete sale", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete sale")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Report returns aggregated sales for an inclusive date range. Dates
// are accepted as YYYY-MM-DD or RFC 3339.
func (h *SaleHandler) Report(w http.ResponseWriter, r *http.Request) {
	start, _, err := parseDateParam(r.URL.Query().Get("startDate"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid startDate: use YYYY-MM-DD or RFC 3339")
		return
	}
	end, endDateOnly, err := parseDateParam(r.URL.Query().Get("endDate"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid endDate: use YYYY-MM-DD or RFC 3339")
		return
	}

	// A date-only end bound covers the whole day. An RFC 3339 end bound
	// is taken as given.
	if endDateOnly {
		end = endOfDay(end)
	}

	if start.After(end) {
		respondWithError(w, http.StatusBadRequest, "startDate must not be after endDate")
		return
	}

	report, err := h.saleService.Report(r.Context(), start, end)
	if err != nil {
		h.logger.Error("failed to build sales report", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to build sales report")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// parseDateParam reports whether the value used the date-only layout so
// the caller can widen date-only bounds without touching explicit
// timestamps.
func parseDateParam(value string) (time.Time, bool, error) {
	if value == "" {
		return time.Time{}, false, errors.New("missing date parameter")
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), true, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), false, nil
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}
