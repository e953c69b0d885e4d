package models

import "time"

type CategorySales struct {
	Category   string  `json:"category"`
	TotalSales float64 `json:"total_sales"`
}

type TrendPoint struct {
	Date       time.Time `json:"date"`
	TotalSales float64   `json:"total_sales"`
}

// BoxStats follows the Tukey convention: whiskers reach the furthest
// datum within 1.5 IQR of the quartiles.
type BoxStats struct {
	Min          float64   `json:"min"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	Max          float64   `json:"max"`
	LowerWhisker float64   `json:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers,omitempty"`
}

type Distribution struct {
	Category string    `json:"category"`
	Values   []float64 `json:"values"`
	Box      BoxStats  `json:"box"`
}

// CorrelationMatrix is square; Values[i][j] is NaN when undefined.
type CorrelationMatrix struct {
	Labels []string    `json:"labels"`
	Values [][]float64 `json:"values"`
}
