package models

type FigureKind string

const (
	KindBox       FigureKind = "box"
	KindViolin    FigureKind = "violin"
	KindHeatmap   FigureKind = "heatmap"
	KindPie       FigureKind = "pie"
	KindBar       FigureKind = "bar"
	KindLine      FigureKind = "line"
	KindDashboard FigureKind = "dashboard"
)

// Figure is a rendered chart ready to be shown.
type Figure struct {
	Name   string     `json:"name"`
	Title  string     `json:"title"`
	Kind   FigureKind `json:"kind"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	PNG    []byte     `json:"-"`
	Table  *Table     `json:"table,omitempty"`
}

// Table holds the values behind an interactive chart.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}
