package charts

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	colorText  = drawing.ColorFromHex("262626")
	colorAxis  = drawing.ColorFromHex("4d4d4d")
	colorGrid  = drawing.ColorFromHex("e5e5e5")
	colorMuted = drawing.ColorFromHex("7f7f7f")
	colorPanel = drawing.ColorFromHex("e5ecf6")
)

// deepPalette colours box plots.
var deepPalette = hexColors(
	"4c72b0", "dd8452", "55a868", "c44e52", "8172b3",
	"937860", "da8bc3", "8c8c8c", "ccb974", "64b5cd",
)

// set2Palette colours violin plots.
var set2Palette = hexColors(
	"66c2a5", "fc8d62", "8da0cb", "e78ac3", "a6d854", "ffd92f", "e5c494", "b3b3b3",
)

// qualitativePalette colours pie slices and dashboard traces.
var qualitativePalette = hexColors(
	"636efa", "ef553b", "00cc96", "ab63fa", "ffa15a",
	"19d3f3", "ff6692", "b6e880", "ff97fa", "fecb52",
)

// plasmaScale colours bars by value.
var plasmaScale = hexColors(
	"0d0887", "46039f", "7201a8", "9c179e", "bd3786",
	"d8576b", "ed7953", "fb9f3a", "fdca26", "f0f921",
)

// coolwarmScale colours the correlation heatmap.
var coolwarmScale = hexColors("3b4cc0", "8db0fe", "dddddd", "f49a7b", "b40426")

func hexColors(values ...string) []drawing.Color {
	out := make([]drawing.Color, len(values))
	for i, v := range values {
		out[i] = drawing.ColorFromHex(v)
	}
	return out
}

func paletteColor(palette []drawing.Color, i int) drawing.Color {
	return palette[i%len(palette)]
}

// scaleColor linearly interpolates along stops; t is clamped to [0, 1].
func scaleColor(stops []drawing.Color, t float64) drawing.Color {
	if len(stops) == 0 {
		return drawing.ColorBlack
	}
	if math.IsNaN(t) || t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := stops[i], stops[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + frac*(float64(y)-float64(x))))
	}
	return drawing.Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

// contrastText picks black or white text for a fill colour.
func contrastText(fill drawing.Color) drawing.Color {
	lum := 0.2126*linear(fill.R) + 0.7152*linear(fill.G) + 0.0722*linear(fill.B)
	if lum > 0.408 {
		return colorText
	}
	return drawing.ColorWhite
}

func linear(c uint8) float64 {
	v := float64(c) / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func darken(c drawing.Color, f float64) drawing.Color {
	return drawing.Color{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
