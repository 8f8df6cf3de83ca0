package taskgrid

import (
	"fmt"
	"strings"
	"time"
)

// Chart layout constants. The chart draws continuous task intervals scaled
// by date; buckets only supply the axis tick positions and labels.
const (
	chartWidth      = 1200
	chartMarginL    = 240
	chartMarginR    = 40
	chartMarginTop  = 56
	chartMarginBot  = 28
	chartRowHeight  = 26
	chartBarHeight  = 16
	chartFontFamily = "Arial, sans-serif"
)

var svgEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// RenderChart draws the sorted task list as an SVG timeline: one lane per
// task in the given order, bar color from the active ColorMap, a star
// marker on milestone lanes, and granularity-dependent axis labels. It
// shares the sort output and color map with the export so the two views
// stay consistent.
func RenderChart(sorted []Task, g Granularity, colorBy ColorBy, colors ColorMap) string {
	var svg strings.Builder

	if len(sorted) == 0 {
		svg.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
		svg.WriteString(fmt.Sprintf(`<svg width="%d" height="120" xmlns="http://www.w3.org/2000/svg">`, chartWidth))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="60" font-family="%s" font-size="14" fill="#666666">no data</text>`,
			chartWidth/2-30, chartFontFamily))
		svg.WriteString(`</svg>`)
		return svg.String()
	}

	rangeStart, rangeEnd := sorted[0].Start, sorted[0].End
	for _, t := range sorted[1:] {
		if t.Start.Before(rangeStart) {
			rangeStart = t.Start
		}
		if t.End.After(rangeEnd) {
			rangeEnd = t.End
		}
	}

	plotWidth := float64(chartWidth - chartMarginL - chartMarginR)
	totalDays := daysBetween(rangeStart, rangeEnd) + 1
	dayWidth := plotWidth / float64(totalDays)
	xAt := func(t time.Time) float64 {
		return float64(chartMarginL) + float64(daysBetween(rangeStart, t))*dayWidth
	}

	height := chartMarginTop + len(sorted)*chartRowHeight + chartMarginBot

	svg.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", chartWidth, height))
	svg.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>` + "\n")

	// Axis gridlines and labels at bucket starts. The range is never
	// inverted here, so the bucket generator cannot fail.
	buckets, _ := MakeBuckets(rangeStart, rangeEnd, g)
	gridBottom := chartMarginTop + len(sorted)*chartRowHeight
	for _, b := range buckets {
		x := xAt(b.Start)
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="#e0e0e0" stroke-width="1"/>`+"\n",
			x, chartMarginTop, x, gridBottom))
		svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-family="%s" font-size="10" fill="#666666">%s</text>`+"\n",
			x+2, chartMarginTop-8, chartFontFamily, b.Label(g)))
	}

	for i, t := range sorted {
		rowTop := chartMarginTop + i*chartRowHeight
		barY := rowTop + (chartRowHeight-chartBarHeight)/2
		x0 := xAt(t.Start)
		// End boundary is inclusive: the bar covers the whole last day.
		barW := float64(t.Duration()) * dayWidth
		fill := colors.Lookup(colorKey(t, colorBy))

		label := t.Title
		if t.IsMilestone() {
			label = MilestoneGlyph + " " + label
		}
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-family="%s" font-size="12" fill="#333333" text-anchor="end">%s</text>`+"\n",
			chartMarginL-8, barY+chartBarHeight-4, chartFontFamily, svgEscaper.Replace(clipLabel(label))))
		svg.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%d" width="%.1f" height="%d" rx="3" fill="%s"/>`+"\n",
			x0, barY, barW, chartBarHeight, fill))

		if t.IsMilestone() {
			svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-family="%s" font-size="14" fill="gold" stroke="black" stroke-width="0.4">%s</text>`+"\n",
				x0+barW+2, barY+chartBarHeight-3, chartFontFamily, MilestoneGlyph))
		}
	}

	svg.WriteString(`</svg>`)
	return svg.String()
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// clipLabel keeps row labels inside the fixed label gutter.
func clipLabel(s string) string {
	const maxRunes = 34
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes-1]) + "…"
}
