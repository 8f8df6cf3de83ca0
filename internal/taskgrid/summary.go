package taskgrid

import "time"

// Summary carries the aggregates shown on the dashboard card and the
// workbook's legend sheet.
type Summary struct {
	Total      int
	RangeStart time.Time
	RangeEnd   time.Time
	Milestones int
	ByAssignee map[string]int
	ByCategory map[string]int
	ByQuarter  map[string]int
}

func Summarize(tasks []Task) Summary {
	s := Summary{
		Total:      len(tasks),
		ByAssignee: map[string]int{},
		ByCategory: map[string]int{},
		ByQuarter:  map[string]int{},
	}
	for i, t := range tasks {
		if i == 0 || t.Start.Before(s.RangeStart) {
			s.RangeStart = t.Start
		}
		if i == 0 || t.End.After(s.RangeEnd) {
			s.RangeEnd = t.End
		}
		if t.IsMilestone() {
			s.Milestones++
		}
		s.ByAssignee[t.Assignee]++
		s.ByCategory[t.Category]++
		s.ByQuarter[t.Quarter]++
	}
	return s
}

// SpanLabel renders the covered date span, or "-" when there are no tasks.
func (s Summary) SpanLabel() string {
	if s.Total == 0 {
		return "-"
	}
	return s.RangeStart.Format(dateLayout) + " - " + s.RangeEnd.Format(dateLayout)
}
