package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
)

const noCache = "no-store"

type APIHandlers struct {
	analytics *services.Analytics
	gallery   *services.Gallery
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, gallery *services.Gallery, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		gallery:   gallery,
		logger:    logger,
	}
}

// trendResponse keeps the "no Date column" case distinct from an empty trend.
type trendResponse struct {
	Available bool                `json:"available"`
	Points    []models.TrendPoint `json:"points"`
}

// correlationResponse uses nil for undefined coefficients; JSON has no NaN.
type correlationResponse struct {
	Labels []string     `json:"labels"`
	Values [][]*float64 `json:"values"`
}

func (h *APIHandlers) HandleProductSales(w http.ResponseWriter, r *http.Request) {
	data := h.analytics.ProductSales()

	errors.WriteSuccessWithHeaders(w, data, map[string]string{"Cache-Control": noCache})
}

func (h *APIHandlers) HandleRegionSales(w http.ResponseWriter, r *http.Request) {
	data := h.analytics.RegionSales()

	errors.WriteSuccessWithHeaders(w, data, map[string]string{"Cache-Control": noCache})
}

func (h *APIHandlers) HandleSalesTrend(w http.ResponseWriter, r *http.Request) {
	points, ok := h.analytics.SalesTrend()
	if points == nil {
		points = []models.TrendPoint{}
	}

	errors.WriteSuccessWithHeaders(w, trendResponse{Available: ok, Points: points},
		map[string]string{"Cache-Control": noCache})
}

func (h *APIHandlers) HandleCorrelation(w http.ResponseWriter, r *http.Request) {
	m := h.analytics.Correlation()

	resp := correlationResponse{
		Labels: m.Labels,
		Values: make([][]*float64, len(m.Values)),
	}
	for i, row := range m.Values {
		resp.Values[i] = make([]*float64, len(row))
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			resp.Values[i][j] = &v
		}
	}

	errors.WriteSuccessWithHeaders(w, resp, map[string]string{"Cache-Control": noCache})
}

// HandleFigure serves a rendered figure as PNG.
func (h *APIHandlers) HandleFigure(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	requestID := observability.GetRequestID(r.Context())
	if h.gallery.BuiltAt().IsZero() {
		errors.WriteError(w, h.logger, errors.ServiceUnavailable("figures are not rendered yet"), requestID)
		return
	}

	fig, ok := h.gallery.Figure(name)
	if !ok {
		err := errors.NotFound("figure not found").WithDetails("name: %q", name)
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(fig.PNG)))
	w.Header().Set("Cache-Control", noCache)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(fig.PNG); err != nil {
		h.logger.Warn("write figure", "figure", name, "error", err)
	}
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {

	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {

	stats := h.analytics.Stats()
	figures := h.gallery.Figures()
	names := make([]string, len(figures))
	for i, f := range figures {
		names[i] = f.Name
	}
	stats["figures"] = names
	stats["figures_built_at"] = h.gallery.BuiltAt()

	errors.WriteSuccess(w, stats)
}
