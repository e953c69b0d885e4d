package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"sales-dashboard/internal/services"
	"sales-dashboard/internal/ui/templates"
)

type SSEHandlers struct {
	gallery *services.Gallery
	logger  *slog.Logger
}

func NewSSEHandlers(gallery *services.Gallery, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		gallery: gallery,
		logger:  logger,
	}
}

// HandleFigures replaces every card on the page with the full figure card,
// values table included, one event per figure in display order.
func (h *SSEHandlers) HandleFigures(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	for _, fig := range h.gallery.Figures() {
		if err := r.Context().Err(); err != nil {
			return
		}

		var buf strings.Builder
		if err := templates.FigureCard(fig).Render(r.Context(), &buf); err != nil {
			h.logger.Error("render figure card", "figure", fig.Name, "error", err)
			return
		}

		if err := sse.PatchElements(buf.String()); err != nil {
			h.logger.Warn("patch figure card", "figure", fig.Name, "error", err)
			return
		}
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
