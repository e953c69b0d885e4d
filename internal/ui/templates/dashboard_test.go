package templates

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"sales-dashboard/internal/models"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return sb.String()
}

func TestDashboard(t *testing.T) {
	html := renderString(t, Dashboard([]models.Figure{
		{Name: "box", Title: "Total Sales Distribution by Product", Width: 800, Height: 600},
		{Name: "pie", Title: "Total Sales by Product", Width: 800, Height: 600},
	}))

	for _, want := range []string{
		`<!doctype html>`,
		`data-on-load="@get('/sse/figures')"`,
		`id="figure-box"`,
		`id="figure-pie"`,
		`href="` + StylesheetPath + `"`,
		DatastarScript,
		`<p>2 figures</p>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestDashboard_ShowsImagesWithoutScript(t *testing.T) {
	html := renderString(t, Dashboard([]models.Figure{
		{Name: "box", Title: "Box", Width: 800, Height: 600, Table: &models.Table{Headers: []string{"Product"}}},
		{Name: "dashboard", Title: "Dashboard", Width: 1000, Height: 800},
	}))

	for _, want := range []string{
		`<img src="/figures/box" width="800" height="600"`,
		`<img src="/figures/dashboard" width="1000" height="800"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(html, "<table>") {
		t.Error("value tables arrive with the stream, not the page")
	}
	if strings.Contains(html, "Loading") {
		t.Error("cards should not wait on the stream")
	}
}

func TestStatic_Stylesheet(t *testing.T) {
	data, err := fs.ReadFile(Static, strings.TrimPrefix(StylesheetPath, "/"))
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(data), ".card") {
		t.Error("stylesheet should style the figure cards")
	}
}

func TestFigureSrc_EscapesName(t *testing.T) {
	if got := FigureSrc("a b"); got != "/figures/a%20b" {
		t.Errorf("FigureSrc() = %q", got)
	}
}

func TestDashboard_NoFigures(t *testing.T) {
	html := renderString(t, Dashboard(nil))
	if !strings.Contains(html, "No figures rendered") {
		t.Error("empty page should say there is nothing to show")
	}
}

func TestFigureCard(t *testing.T) {
	html := renderString(t, FigureCard(models.Figure{
		Name:   "bar",
		Title:  "Sales <by> Region",
		Width:  800,
		Height: 600,
		Table: &models.Table{
			Headers: []string{"Region", "Total_Sales"},
			Rows:    [][]string{{"North & East", "1200.00"}},
		},
	}))

	for _, want := range []string{
		`id="figure-bar"`,
		`<img src="/figures/bar" width="800" height="600"`,
		`Sales &lt;by&gt; Region`,
		`<th>Region</th>`,
		`<td>North &amp; East</td>`,
		`<td class="num">1200.00</td>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("card missing %q in %s", want, html)
		}
	}
	if strings.Contains(html, "<by>") {
		t.Error("title must be escaped")
	}
}

func TestFigureCard_WithoutTable(t *testing.T) {
	html := renderString(t, FigureCard(models.Figure{Name: "box", Title: "Box"}))
	if strings.Contains(html, "<table>") {
		t.Error("figure without values should not render a table")
	}
}
