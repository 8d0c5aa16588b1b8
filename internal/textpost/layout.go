// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package textpost

import (
	"fmt"
	"strings"

	"givehub/internal/colorutil"
)

const (
	// CanvasSize is the square edge length of a title card in pixels.
	CanvasSize = 1080

	// canvasPadding insets the title block from the canvas edges.
	canvasPadding = 80

	// darkenAmount is applied to the primary color for the top gradient stop.
	darkenAmount = 0.2

	// DefaultFontURL serves the title typeface as a CSS stylesheet.
	DefaultFontURL = "https://fonts.googleapis.com/css2?family=Nunito:wght@800&display=swap"

	// titleFontFamily must match the family the stylesheet provides.
	titleFontFamily = "'Nunito', sans-serif"
)

// RenderSpec carries everything the HTML template needs for one card.
// Derived deterministically from the title and the resolved theme color.
type RenderSpec struct {
	BackgroundTop    string // darkened primary, 6 hex digits, no "#"
	BackgroundBottom string // resolved primary, with "#"
	TextColor        string // one of the two fixed translucent values
	FontSizePx       int
	Title            string // interpolated verbatim, assumed plain text
}

// FontSizeFor picks the discrete font-size tier for a title. Bands are
// inclusive on their lower bound: a trimmed length of exactly 80 maps to
// 120px, not 150px.
func FontSizeFor(title string) int {
	l := len(strings.TrimSpace(title))
	switch {
	case l < 80:
		return 150
	case l < 120:
		return 120
	case l < 160:
		return 100
	default:
		return 90
	}
}

// Layout builds self-contained HTML documents for title cards. It performs
// no I/O; the font URL is only referenced, never fetched here.
type Layout struct {
	fontURL string
}

// NewLayout creates a layout planner. An empty fontURL selects DefaultFontURL.
func NewLayout(fontURL string) *Layout {
	if fontURL == "" {
		fontURL = DefaultFontURL
	}
	return &Layout{fontURL: fontURL}
}

// Plan derives the render parameters for a title on the given primary color.
func (l *Layout) Plan(title, primaryColor string) RenderSpec {
	return RenderSpec{
		BackgroundTop:    colorutil.Darken(primaryColor, darkenAmount),
		BackgroundBottom: primaryColor,
		TextColor:        colorutil.TextColorFor(primaryColor),
		FontSizePx:       FontSizeFor(title),
		Title:            title,
	}
}

// HTML renders a RenderSpec into a complete document string. The title is
// interpolated without escaping; callers own the trust boundary and must
// not pass markup they do not intend to render.
func (l *Layout) HTML(spec RenderSpec) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<link rel="stylesheet" href="%s">
<style>
  html, body {
    margin: 0;
    padding: 0;
  }
  .canvas {
    width: %dpx;
    height: %dpx;
    box-sizing: border-box;
    padding: %dpx;
    display: flex;
    align-items: center;
    justify-content: center;
    background: linear-gradient(to bottom, #%s, %s);
  }
  .title {
    font-family: %s;
    font-weight: 800;
    font-size: %dpx;
    line-height: 1.2;
    color: %s;
    text-align: center;
    overflow-wrap: break-word;
    max-width: 100%%;
  }
</style>
</head>
<body>
<div class="canvas">
  <div class="title">%s</div>
</div>
</body>
</html>`,
		l.fontURL,
		CanvasSize, CanvasSize, canvasPadding,
		spec.BackgroundTop, spec.BackgroundBottom,
		titleFontFamily, spec.FontSizePx, spec.TextColor,
		spec.Title,
	)
}
