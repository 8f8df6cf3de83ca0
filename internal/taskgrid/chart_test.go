package taskgrid

import (
	"strings"
	"testing"
)

func TestRenderChartEmpty(t *testing.T) {
	svg := RenderChart(nil, GranularityWeek, ColorByCategory, testColors)
	if !strings.Contains(svg, "no data") {
		t.Fatalf("empty chart missing no-data marker:\n%s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("chart is not a closed SVG document")
	}
}

func TestRenderChartBarsAndColors(t *testing.T) {
	tasks := []Task{
		testTask(1, "build", "Mori", "Platform", date(2026, 1, 5), date(2026, 1, 16)),
		testTask(2, "write", "Sato", "Unmapped", date(2026, 1, 12), date(2026, 1, 23)),
	}
	svg := RenderChart(tasks, GranularityWeek, ColorByCategory, testColors)

	if !strings.Contains(svg, `fill="#3498db"`) {
		t.Fatalf("mapped category color missing from chart")
	}
	if !strings.Contains(svg, `fill="`+FallbackColor+`"`) {
		t.Fatalf("fallback color missing from chart")
	}
	if got := strings.Count(svg, "<rect"); got != 3 { // background + 2 bars
		t.Fatalf("expected 3 rects, got %d", got)
	}
	// Week axis labels are the buckets' Mondays.
	if !strings.Contains(svg, ">01/05<") {
		t.Fatalf("axis label for week of 01/05 missing")
	}
}

func TestRenderChartMilestoneMarker(t *testing.T) {
	m := testTask(1, "ship", "Mori", "Platform", date(2026, 3, 2), date(2026, 3, 6))
	m.Deliverable = "★ shipped"
	svg := RenderChart([]Task{m}, GranularityDay, ColorByCategory, testColors)
	if strings.Count(svg, MilestoneGlyph) < 2 { // label prefix + marker
		t.Fatalf("milestone glyph missing from chart:\n%s", svg)
	}
}

func TestRenderChartEscapesLabels(t *testing.T) {
	task := testTask(1, `a<b>&"c"`, "Mori", "Platform", date(2026, 3, 2), date(2026, 3, 6))
	svg := RenderChart([]Task{task}, GranularityDay, ColorByCategory, testColors)
	if strings.Contains(svg, "a<b>") {
		t.Fatalf("label not escaped")
	}
	if !strings.Contains(svg, "a&lt;b&gt;&amp;&quot;c&quot;") {
		t.Fatalf("escaped label missing:\n%s", svg)
	}
}
