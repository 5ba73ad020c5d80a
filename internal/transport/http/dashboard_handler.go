package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "salesdash/internal/errors"
	"salesdash/internal/services"
	"salesdash/pkg/contracts/domain"
)

const dateLayout = "2006-01-02"

// DashboardHandler exposes the dashboard's data, analytics, and export
// endpoints over JSON with RFC 7807 error responses.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// breakdownQuery is validated before a grouped breakdown or export runs.
type breakdownQuery struct {
	Dimension string `validate:"required,oneof=product sub_category region segment customer"`
}

// whatIfQuery bounds the scenario slider.
type whatIfQuery struct {
	PriceChangePct float64 `validate:"gte=-30,lte=30"`
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/filters", h.GetFilterOptions)
	r.Get("/kpis", h.GetKPIs)
	r.Get("/breakdown", h.GetBreakdown)
	r.Get("/trend", h.GetMonthlyTrend)
	r.Get("/segment-mix", h.GetSegmentMix)
	r.Get("/pivot", h.GetPivot)
	r.Get("/correlation", h.GetCorrelation)
	r.Get("/what-if", h.GetWhatIf)
	r.Get("/rows", h.GetRows)

	r.Get("/export/breakdown", h.ExportBreakdown)

	return r
}

// GetFilterOptions handles GET /filters.
func (h *DashboardHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.FilterOptions(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   opts,
	})
}

// GetKPIs handles GET /kpis.
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	kpis, err := h.service.KPIs(r.Context(), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   kpis,
	})
}

// GetBreakdown handles GET /breakdown?dimension=...
func (h *DashboardHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	q := breakdownQuery{Dimension: r.URL.Query().Get("dimension")}
	if err := h.validate.Struct(q); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("dimension",
			fmt.Sprintf("dimension must be one of %v", domain.Dimensions())))
		return
	}

	filter, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rows, err := h.service.Breakdown(r.Context(), q.Dimension, filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   rows,
		"count":  len(rows),
	})
}

// GetMonthlyTrend handles GET /trend.
func (h *DashboardHandler) GetMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	points, err := h.service.MonthlyTrend(r.Context(), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   points,
		"count":  len(points),
	})
}

// GetSegmentMix handles GET /segment-mix.
func (h *DashboardHandler) GetSegmentMix(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	shares, err := h.service.SegmentMix(r.Context(), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   shares,
		"count":  len(shares),
	})
}

// GetPivot handles GET /pivot.
func (h *DashboardHandler) GetPivot(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	pivot, err := h.service.Pivot(r.Context(), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   pivot,
	})
}

// GetCorrelation handles GET /correlation.
func (h *DashboardHandler) GetCorrelation(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	matrix, err := h.service.Correlation(r.Context(), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   matrix,
	})
}

// GetWhatIf handles GET /what-if?price_change=...
func (h *DashboardHandler) GetWhatIf(w http.ResponseWriter, r *http.Request) {
	priceChange := 0.0
	if raw := r.URL.Query().Get("price_change"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("price_change", "must be a number"))
			return
		}
		priceChange = v
	}

	if err := h.validate.Struct(whatIfQuery{PriceChangePct: priceChange}); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("price_change", "must be between -30 and 30"))
		return
	}

	filter, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.WhatIf(r.Context(), filter, priceChange)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// GetRows handles GET /rows with limit/offset paging.
func (h *DashboardHandler) GetRows(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	limit := parseIntDefault(r.URL.Query().Get("limit"), 100)
	offset := parseIntDefault(r.URL.Query().Get("offset"), 0)

	rows, total, err := h.service.Rows(r.Context(), filter, limit, offset)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   rows,
		"count":  len(rows),
		"total":  total,
	})
}

// ExportBreakdown handles GET /export/breakdown?dimension=... and responds
// with an .xlsx attachment.
func (h *DashboardHandler) ExportBreakdown(w http.ResponseWriter, r *http.Request) {
	q := breakdownQuery{Dimension: r.URL.Query().Get("dimension")}
	if err := h.validate.Struct(q); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("dimension",
			fmt.Sprintf("dimension must be one of %v", domain.Dimensions())))
		return
	}

	filter, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	data, filename, err := h.service.ExportBreakdown(r.Context(), q.Dimension, filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// handleServiceError maps known service sentinels to API errors before
// falling back to the generic handler.
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidDimension):
		h.errorHandler.HandleError(w, r, apierrors.New(http.StatusBadRequest, "INVALID_DIMENSION", err.Error()))
	case errors.Is(err, services.ErrInvalidPriceChange):
		h.errorHandler.HandleError(w, r, apierrors.New(http.StatusBadRequest, "INVALID_PRICE_CHANGE", err.Error()))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}

// parseFilter builds a domain.Filter from query parameters. Absent
// membership parameters leave the slice nil (full universe); present but
// empty ones produce an explicit empty selection. The "to" date is expanded
// to the end of its day so a day-granular range stays inclusive.
func (h *DashboardHandler) parseFilter(r *http.Request) (domain.Filter, error) {
	q := r.URL.Query()
	var f domain.Filter

	if raw := q.Get("year"); raw != "" && !strings.EqualFold(raw, "all") {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Filter{}, apierrors.ErrValidation("year", "must be an integer or \"all\"")
		}
		f.Year = &year
	}

	if q.Has("categories") {
		f.Categories = splitList(q.Get("categories"))
	}
	if q.Has("regions") {
		f.Regions = splitList(q.Get("regions"))
	}
	if q.Has("segments") {
		f.Segments = splitList(q.Get("segments"))
	}

	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return domain.Filter{}, apierrors.ErrValidation("from", "must be formatted YYYY-MM-DD")
		}
		f.From = from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return domain.Filter{}, apierrors.ErrValidation("to", "must be formatted YYYY-MM-DD")
		}
		f.To = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return f, nil
}

// splitList parses a comma-separated multi-select value. An empty value is
// an explicit empty selection, not "no filter".
func splitList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseIntDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
