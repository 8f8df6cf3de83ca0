package taskgrid

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	gridSheet   = "Grid"
	legendSheet = "Legend"

	// Fixed leading columns on the grid sheet: row#, assignee, category,
	// title. Bucket columns start at column 5. This layout is a contract
	// with downstream consumers of the exported file.
	leadingColumns = 4
)

// BuildWorkbook serializes a grid plus its summary into the two-sheet
// workbook. Sheet 1 is the occupancy grid with a frozen header row and
// leading columns; sheet 2 is the color legend followed by the summary
// aggregates. An empty grid still yields a structurally valid artifact with
// a "no data" marker.
func BuildWorkbook(grid Grid, sum Summary, colors ColorMap) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", gridSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(legendSheet); err != nil {
		return nil, err
	}

	if err := writeGridSheet(f, grid); err != nil {
		return nil, err
	}
	if err := writeLegendSheet(f, sum, colors); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

func writeGridSheet(f *excelize.File, grid Grid) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	header := []any{"#", "Assignee", "Category", "Task"}
	for _, b := range grid.Buckets {
		header = append(header, b.Label(grid.Granularity))
	}
	for i, v := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(gridSheet, cell, v); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(gridSheet, "A1", last, headerStyle); err != nil {
		return err
	}

	if grid.Empty() {
		if err := f.SetCellValue(gridSheet, "A2", "no data"); err != nil {
			return err
		}
		return freezeGridPanes(f)
	}

	// One style per distinct fill color.
	fillStyles := map[string]int{}
	fillStyle := func(color string) (int, error) {
		if id, ok := fillStyles[color]; ok {
			return id, nil
		}
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{normalizeHex(color)}},
		})
		if err != nil {
			return 0, err
		}
		fillStyles[color] = id
		return id, nil
	}

	for i, row := range grid.Rows {
		rowNum := i + 2
		values := []any{i + 1, row.Task.Assignee, row.Task.Category, row.Label}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(gridSheet, cell, v); err != nil {
				return err
			}
		}
		for j, c := range row.Cells {
			if !c.Occupied {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(leadingColumns+1+j, rowNum)
			if err != nil {
				return err
			}
			id, err := fillStyle(c.Color)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(gridSheet, cell, cell, id); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(gridSheet, "A", "A", 4); err != nil {
		return err
	}
	if err := f.SetColWidth(gridSheet, "B", "C", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(gridSheet, "D", "D", 40); err != nil {
		return err
	}
	if len(grid.Buckets) > 0 {
		first, err := excelize.ColumnNumberToName(leadingColumns + 1)
		if err != nil {
			return err
		}
		lastCol, err := excelize.ColumnNumberToName(leadingColumns + len(grid.Buckets))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(gridSheet, first, lastCol, 8); err != nil {
			return err
		}
	}

	return freezeGridPanes(f)
}

// freezeGridPanes keeps the header row and the leading columns visible
// under scrolling.
func freezeGridPanes(f *excelize.File) error {
	return f.SetPanes(gridSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      leadingColumns,
		YSplit:      1,
		TopLeftCell: "E2",
		ActivePane:  "bottomRight",
	})
}

func writeLegendSheet(f *excelize.File, sum Summary, colors ColorMap) error {
	row := 1
	set := func(col int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(legendSheet, cell, v)
	}

	for _, key := range colors.Keys() {
		swatch, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{normalizeHex(colors[key])}},
		})
		if err != nil {
			return err
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(legendSheet, cell, cell, swatch); err != nil {
			return err
		}
		if err := set(2, key); err != nil {
			return err
		}
		row++
	}

	row++ // blank separator row between legend and summary

	pairs := [][2]any{
		{"Tasks", sum.Total},
		{"Span", sum.SpanLabel()},
		{"Milestones", sum.Milestones},
	}
	pairs = append(pairs, countPairs("Assignee", sum.ByAssignee)...)
	pairs = append(pairs, countPairs("Category", sum.ByCategory)...)
	pairs = append(pairs, countPairs("Quarter", sum.ByQuarter)...)

	for _, p := range pairs {
		if err := set(1, p[0]); err != nil {
			return err
		}
		if err := set(2, p[1]); err != nil {
			return err
		}
		row++
	}

	return f.SetColWidth(legendSheet, "A", "B", 24)
}

func countPairs(prefix string, counts map[string]int) [][2]any {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([][2]any, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, [2]any{fmt.Sprintf("%s: %s", prefix, k), counts[k]})
	}
	return pairs
}

// normalizeHex strips the leading '#' and any ARGB alpha prefix and
// uppercases, so colors written to and read back from the workbook compare
// equal.
func normalizeHex(c string) string {
	c = strings.ToUpper(strings.TrimPrefix(c, "#"))
	if len(c) == 8 {
		c = c[2:]
	}
	return c
}
