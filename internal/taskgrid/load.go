package taskgrid

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Task source column names, matched case-insensitively against the CSV
// header. quarter/period/deliverable are optional.
const (
	colQuarter     = "quarter"
	colPeriod      = "period"
	colStart       = "start"
	colEnd         = "end"
	colAssignee    = "assignee"
	colCategory    = "category"
	colTitle       = "task"
	colDeliverable = "deliverable"
)

var dateLayouts = []string{
	"2006/01/02",
	"2006-01-02",
	"01/02/2006",
}

// LoadTasks reads the task CSV and returns the records in file order with
// 1-based IDs. Malformed dates or inverted spans fail fast; there is no
// correction pass.
func LoadTasks(path string) ([]Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open task source: %w", err)
	}
	defer f.Close()
	return readTasks(f)
}

func readTasks(r io.Reader) ([]Task, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read task source header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colStart, colEnd, colAssignee, colCategory, colTitle} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("task source missing column %q (have %v)", required, header)
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var tasks []Task
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read task source: %w", err)
		}

		start, err := parseDate(field(record, colStart))
		if err != nil {
			return nil, fmt.Errorf("line %d: start: %w", line, err)
		}
		end, err := parseDate(field(record, colEnd))
		if err != nil {
			return nil, fmt.Errorf("line %d: end: %w", line, err)
		}

		t := Task{
			ID:          len(tasks) + 1,
			Title:       field(record, colTitle),
			Assignee:    field(record, colAssignee),
			Category:    field(record, colCategory),
			Quarter:     field(record, colQuarter),
			PeriodLabel: field(record, colPeriod),
			Deliverable: field(record, colDeliverable),
			Start:       start,
			End:         end,
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date %q", s)
}
