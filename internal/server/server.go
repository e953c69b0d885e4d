package server

import (
	"log/slog"
	"net/http"

	"sales-dashboard/internal/handlers"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/ui/templates"
)

type Server struct {
	analytics   *services.Analytics
	gallery     *services.Gallery
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(analytics *services.Analytics, gallery *services.Gallery, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		analytics:   analytics,
		gallery:     gallery,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(analytics, gallery, logger),
		sseHandlers: handlers.NewSSEHandlers(gallery, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard routes
	s.mux.HandleFunc("GET /{$}", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /figures/{name}", s.apiHandlers.HandleFigure)
	s.mux.Handle("GET /static/", http.FileServerFS(templates.Static))
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/product-sales", s.apiHandlers.HandleProductSales)
	s.mux.HandleFunc("GET /api/region-sales", s.apiHandlers.HandleRegionSales)
	s.mux.HandleFunc("GET /api/sales-trend", s.apiHandlers.HandleSalesTrend)
	s.mux.HandleFunc("GET /api/correlation", s.apiHandlers.HandleCorrelation)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/figures", s.sseHandlers.HandleFigures)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
