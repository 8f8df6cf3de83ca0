package taskgrid

import (
	"bytes"
	"fmt"
)

// RenderRequest is the per-call configuration for both the interactive chart
// and the workbook export. Each render/export invocation gets a fresh value;
// nothing here is shared or mutated across calls, so concurrent requests
// with different settings are safe.
//
// Both output paths order tasks through Sorted, so the chart and the export
// can never disagree on row order.
type RenderRequest struct {
	Tasks          []Task
	SortKey        SortKey
	Direction      Direction
	CategoryOrder  []string
	AssigneeOrder  []string
	Granularity    Granularity
	GroupBy        GroupBy
	ColorBy        ColorBy
	CategoryColors ColorMap
	AssigneeColors ColorMap
}

func (r RenderRequest) colors() ColorMap {
	if r.ColorBy == ColorByAssignee {
		return r.AssigneeColors
	}
	return r.CategoryColors
}

func (r RenderRequest) Sorted() []Task {
	return SortTasks(r.Tasks, r.SortKey, r.Direction, r.CategoryOrder, r.AssigneeOrder)
}

func (r RenderRequest) Grid() (Grid, error) {
	return BuildGrid(r.Sorted(), r.Granularity, r.GroupBy, r.ColorBy, r.colors())
}

// Workbook builds the two-sheet export artifact for this request.
func (r RenderRequest) Workbook() (*bytes.Buffer, error) {
	grid, err := r.Grid()
	if err != nil {
		return nil, err
	}
	return BuildWorkbook(grid, Summarize(r.Tasks), r.colors())
}

// ChartSVG renders the continuous-interval timeline for this request.
func (r RenderRequest) ChartSVG() string {
	return RenderChart(r.Sorted(), r.Granularity, r.ColorBy, r.colors())
}

// RequestOptions selects per-call rendering behavior; zero values take the
// documented defaults (start-date ascending, week buckets, no grouping,
// color by category).
type RequestOptions struct {
	SortKey     SortKey
	Direction   Direction
	Granularity Granularity
	GroupBy     GroupBy
	ColorBy     ColorBy
	Filter      Filter
	DataPath    string // overrides the configured task source
}

// NewRequest loads config and the task source and assembles a RenderRequest
// over the filtered snapshot. The second return value is the unfiltered
// snapshot, for callers that present filter choices. Invalid mode values are
// rejected rather than silently defaulted.
func NewRequest(root string, opt RequestOptions) (RenderRequest, []Task, error) {
	cfg, err := loadConfigOrDefault(root)
	if err != nil {
		return RenderRequest{}, nil, err
	}

	if opt.SortKey == "" {
		opt.SortKey = SortByStart
	}
	if opt.Direction == "" {
		opt.Direction = Ascending
	}
	if opt.Granularity == "" {
		opt.Granularity = GranularityWeek
	}
	if opt.GroupBy == "" {
		opt.GroupBy = GroupByNone
	}
	if opt.ColorBy == "" {
		opt.ColorBy = ColorByCategory
	}
	if !opt.SortKey.Valid() || !opt.Direction.Valid() || !opt.Granularity.Valid() ||
		!opt.GroupBy.Valid() || !opt.ColorBy.Valid() {
		return RenderRequest{}, nil, fmt.Errorf("invalid render parameters")
	}

	dataPath := opt.DataPath
	if dataPath == "" {
		dataPath = cfg.dataPath(root)
	}
	all, err := LoadTasks(dataPath)
	if err != nil {
		return RenderRequest{}, nil, err
	}

	req := RenderRequest{
		Tasks:          opt.Filter.Apply(all),
		SortKey:        opt.SortKey,
		Direction:      opt.Direction,
		CategoryOrder:  cfg.CategoryOrder,
		AssigneeOrder:  cfg.AssigneeOrder,
		Granularity:    opt.Granularity,
		GroupBy:        opt.GroupBy,
		ColorBy:        opt.ColorBy,
		CategoryColors: ColorMap(cfg.CategoryColors),
		AssigneeColors: ColorMap(cfg.AssigneeColors),
	}
	return req, all, nil
}
