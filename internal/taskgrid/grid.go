package taskgrid

import (
	"fmt"
	"time"
)

type GridCell struct {
	Occupied bool
	Color    string
}

type GridRow struct {
	Task      Task
	Label     string
	Milestone bool
	Cells     []GridCell
}

// Grid is the occupancy/coloring matrix: one row per task in sorted order,
// one column per bucket. A grid with no rows and no buckets is the empty
// sentinel produced for an empty task list.
type Grid struct {
	Granularity Granularity
	Buckets     []Bucket
	Rows        []GridRow
}

func (g Grid) Empty() bool {
	return len(g.Rows) == 0
}

// overlaps is the single shared occupancy predicate: inclusive interval
// intersection, identical for every granularity.
func overlaps(start, end, bucketStart, bucketEnd time.Time) bool {
	return !start.After(bucketEnd) && !end.Before(bucketStart)
}

// BuildGrid assembles the grid for an already-sorted task list. The overall
// range is [min start, max end] across the input; all rows share one bucket
// axis. An empty input yields the empty sentinel without touching the
// bucket generator.
func BuildGrid(sorted []Task, g Granularity, groupBy GroupBy, colorBy ColorBy, colors ColorMap) (Grid, error) {
	if len(sorted) == 0 {
		return Grid{Granularity: g}, nil
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

	buckets, err := MakeBuckets(rangeStart, rangeEnd, g)
	if err != nil {
		return Grid{}, err
	}

	rows := make([]GridRow, 0, len(sorted))
	for _, t := range sorted {
		fill := colors.Lookup(colorKey(t, colorBy))
		cells := make([]GridCell, len(buckets))
		for i, b := range buckets {
			if overlaps(t.Start, t.End, b.Start, b.End) {
				cells[i] = GridCell{Occupied: true, Color: fill}
			}
		}
		rows = append(rows, GridRow{
			Task:      t,
			Label:     rowLabel(t, groupBy),
			Milestone: t.IsMilestone(),
			Cells:     cells,
		})
	}

	return Grid{Granularity: g, Buckets: buckets, Rows: rows}, nil
}

func colorKey(t Task, by ColorBy) string {
	if by == ColorByAssignee {
		return t.Assignee
	}
	return t.Category
}

func rowLabel(t Task, groupBy GroupBy) string {
	label := t.Title
	if t.IsMilestone() {
		label = MilestoneGlyph + " " + label
	}
	switch groupBy {
	case GroupByAssignee:
		label = fmt.Sprintf("[%s] %s", t.Assignee, label)
	case GroupByCategory:
		label = fmt.Sprintf("[%s] %s", t.Category, label)
	}
	return label
}
