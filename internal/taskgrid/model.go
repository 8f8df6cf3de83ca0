package taskgrid

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MilestoneGlyph is the marker embedded in a task's deliverable text by the
// upstream data source. Its presence is the sole milestone signal.
const MilestoneGlyph = "★"

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	default:
		return false
	}
}

type SortKey string

const (
	SortByStart    SortKey = "start_date"
	SortByAssignee SortKey = "assignee"
	SortByCategory SortKey = "category"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortByStart, SortByAssignee, SortByCategory:
		return true
	default:
		return false
	}
}

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

func (d Direction) Valid() bool {
	return d == Ascending || d == Descending
}

type GroupBy string

const (
	GroupByNone     GroupBy = "none"
	GroupByAssignee GroupBy = "assignee"
	GroupByCategory GroupBy = "category"
)

func (g GroupBy) Valid() bool {
	switch g {
	case GroupByNone, GroupByAssignee, GroupByCategory:
		return true
	default:
		return false
	}
}

type ColorBy string

const (
	ColorByCategory ColorBy = "category"
	ColorByAssignee ColorBy = "assignee"
)

func (c ColorBy) Valid() bool {
	return c == ColorByCategory || c == ColorByAssignee
}

// Task is one scheduled work item. Records are built once at load time and
// treated as read-only afterward.
type Task struct {
	ID          int
	Title       string
	Assignee    string
	Category    string
	Quarter     string
	PeriodLabel string
	Deliverable string
	Start       time.Time
	End         time.Time
}

// Duration is the inclusive day count covered by the task.
func (t Task) Duration() int {
	return int(t.End.Sub(t.Start).Hours()/24) + 1
}

func (t Task) IsMilestone() bool {
	return strings.Contains(t.Deliverable, MilestoneGlyph)
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("task title is required")
	}
	if t.Start.IsZero() || t.End.IsZero() {
		return fmt.Errorf("%s: start and end dates are required", t.Title)
	}
	if t.Start.After(t.End) {
		return fmt.Errorf("%s: start %s is after end %s", t.Title,
			t.Start.Format(dateLayout), t.End.Format(dateLayout))
	}
	return nil
}

// dateLayout is the canonical date format of the task source.
const dateLayout = "2006/01/02"

// date builds a midnight-UTC calendar date; all task and bucket boundaries
// live on this normalized form.
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
