package taskgrid

import "testing"

var testColors = ColorMap{
	"Platform": "#3498db",
	"Content":  "#e74c3c",
}

func TestBuildGridEmptySentinel(t *testing.T) {
	grid, err := BuildGrid(nil, GranularityWeek, GroupByNone, ColorByCategory, testColors)
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	if !grid.Empty() {
		t.Fatalf("expected empty sentinel")
	}
	if len(grid.Buckets) != 0 || len(grid.Rows) != 0 {
		t.Fatalf("sentinel must carry no buckets and no rows: %d/%d", len(grid.Buckets), len(grid.Rows))
	}
}

func TestOverlapBoundaryEquality(t *testing.T) {
	bucketStart, bucketEnd := date(2026, 1, 5), date(2026, 1, 11)

	// A task ending exactly on the bucket's first day is occupied.
	if !overlaps(date(2026, 1, 1), bucketStart, bucketStart, bucketEnd) {
		t.Fatalf("task ending on bucket start must overlap")
	}
	// A task starting exactly on the bucket's last day is occupied.
	if !overlaps(bucketEnd, date(2026, 1, 20), bucketStart, bucketEnd) {
		t.Fatalf("task starting on bucket end must overlap")
	}
	// One day past the bucket end is not.
	if overlaps(bucketEnd.AddDate(0, 0, 1), date(2026, 1, 20), bucketStart, bucketEnd) {
		t.Fatalf("task starting the day after bucket end must not overlap")
	}
	// One day before the bucket start is not.
	if overlaps(date(2026, 1, 1), bucketStart.AddDate(0, 0, -1), bucketStart, bucketEnd) {
		t.Fatalf("task ending the day before bucket start must not overlap")
	}
}

func TestSingleDayTaskOccupiesExactlyOneBucket(t *testing.T) {
	day := date(2026, 7, 8)
	tasks := []Task{
		testTask(1, "spike", "Mori", "Platform", day, day),
		testTask(2, "context", "Sato", "Content", date(2026, 6, 1), date(2026, 8, 20)),
	}
	for _, g := range []Granularity{GranularityDay, GranularityWeek, GranularityMonth} {
		grid, err := BuildGrid(tasks, g, GroupByNone, ColorByCategory, testColors)
		if err != nil {
			t.Fatalf("%s: build grid: %v", g, err)
		}
		occupied := 0
		for _, c := range grid.Rows[0].Cells {
			if c.Occupied {
				occupied++
			}
		}
		if occupied != 1 {
			t.Fatalf("%s: single-day task occupies %d buckets, want 1", g, occupied)
		}
	}
}

func TestBuildGridSharedAxisAndColors(t *testing.T) {
	tasks := []Task{
		testTask(1, "build", "Mori", "Platform", date(2026, 1, 5), date(2026, 1, 16)),
		testTask(2, "write", "Sato", "Unmapped", date(2026, 1, 12), date(2026, 1, 23)),
	}
	grid, err := BuildGrid(tasks, GranularityWeek, GroupByNone, ColorByCategory, testColors)
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	if len(grid.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(grid.Rows))
	}
	for i, row := range grid.Rows {
		if len(row.Cells) != len(grid.Buckets) {
			t.Fatalf("row %d has %d cells for %d buckets", i, len(row.Cells), len(grid.Buckets))
		}
	}

	for _, c := range grid.Rows[0].Cells {
		if c.Occupied && c.Color != "#3498db" {
			t.Fatalf("mapped category color = %q, want #3498db", c.Color)
		}
	}
	for _, c := range grid.Rows[1].Cells {
		if c.Occupied && c.Color != FallbackColor {
			t.Fatalf("unmapped category color = %q, want fallback %q", c.Color, FallbackColor)
		}
	}
}

func TestBuildGridColorByAssignee(t *testing.T) {
	assigneeColors := ColorMap{"Mori": "#111111"}
	tasks := []Task{
		testTask(1, "build", "Mori", "Platform", date(2026, 1, 5), date(2026, 1, 9)),
	}
	grid, err := BuildGrid(tasks, GranularityDay, GroupByNone, ColorByAssignee, assigneeColors)
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	if got := grid.Rows[0].Cells[0].Color; got != "#111111" {
		t.Fatalf("assignee color = %q, want #111111", got)
	}
}

func TestRowLabels(t *testing.T) {
	milestone := testTask(1, "catalog", "Mori", "Content", date(2026, 2, 9), date(2026, 2, 27))
	milestone.Deliverable = "★ Catalog live"
	plain := testTask(2, "design", "Sato", "UX", date(2026, 2, 9), date(2026, 2, 13))

	grid, err := BuildGrid([]Task{milestone, plain}, GranularityWeek, GroupByAssignee, ColorByCategory, testColors)
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	if got := grid.Rows[0].Label; got != "[Mori] ★ catalog" {
		t.Fatalf("milestone label = %q", got)
	}
	if !grid.Rows[0].Milestone {
		t.Fatalf("milestone flag not set")
	}
	if got := grid.Rows[1].Label; got != "[Sato] design" {
		t.Fatalf("plain label = %q", got)
	}

	ungrouped, err := BuildGrid([]Task{plain}, GranularityWeek, GroupByNone, ColorByCategory, testColors)
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	if got := ungrouped.Rows[0].Label; got != "design" {
		t.Fatalf("ungrouped label = %q", got)
	}
}
