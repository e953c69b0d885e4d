package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewSSEHandlers(t *testing.T) {
	_, gallery := createTestServices(t, testCSV)
	handlers := NewSSEHandlers(gallery, discard)

	if handlers == nil {
		t.Fatal("NewSSEHandlers() returned nil")
	}
	if handlers.gallery != gallery {
		t.Error("NewSSEHandlers() should set gallery field")
	}
	if handlers.logger == nil {
		t.Error("NewSSEHandlers() should set logger field")
	}
}

func TestSSEHandlers_HandleFigures(t *testing.T) {
	_, gallery := createTestServices(t, testCSV)
	handlers := NewSSEHandlers(gallery, discard)

	w := httptest.NewRecorder()
	handlers.HandleFigures(w, httptest.NewRequest(http.MethodGet, "/sse/figures", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("expected event stream, got %q", ct)
	}

	body := w.Body.String()
	if n := strings.Count(body, "event: datastar-patch-elements"); n != 7 {
		t.Errorf("expected 7 patch events, got %d", n)
	}

	// Cards arrive in display order.
	last := -1
	for _, name := range []string{"box", "violin", "heatmap", "pie", "bar", "line", "dashboard"} {
		i := strings.Index(body, `id="figure-`+name+`"`)
		if i < 0 {
			t.Errorf("missing card for %s", name)
			continue
		}
		if i < last {
			t.Errorf("card %s out of order", name)
		}
		last = i
	}

	if !strings.Contains(body, `src="/figures/pie"`) {
		t.Error("pie card should reference its image")
	}
}

func TestSSEHandlers_HandleFigures_NoDates(t *testing.T) {
	_, gallery := createTestServices(t, "Product,Region,Total_Sales\nLaptop,North,10\nMouse,South,5\n")
	handlers := NewSSEHandlers(gallery, discard)

	w := httptest.NewRecorder()
	handlers.HandleFigures(w, httptest.NewRequest(http.MethodGet, "/sse/figures", nil))

	body := w.Body.String()
	if strings.Contains(body, `id="figure-line"`) {
		t.Error("line card should be skipped without dates")
	}
	if !strings.Contains(body, `id="figure-dashboard"`) {
		t.Error("dashboard card should still be sent")
	}
}
