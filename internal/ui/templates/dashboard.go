// Package templates holds the viewer's HTML components and static assets.
package templates

import (
	"embed"
	"net/url"
)

//go:generate templ generate

// DatastarScript is the client bundle that consumes the SSE figure stream.
// Without it the page still shows every figure, only the value tables are
// missing.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// StylesheetPath is where Static's stylesheet is mounted.
const StylesheetPath = "/static/dashboard.css"

// Static holds the page assets under static/.
//
//go:embed static
var Static embed.FS

// CardID is the element id a figure's card is patched into.
func CardID(name string) string {
	return "figure-" + name
}

// FigureSrc is the image URL of a rendered figure.
func FigureSrc(name string) string {
	return "/figures/" + url.PathEscape(name)
}
