package taskgrid

import (
	"strings"
	"testing"
)

func TestReadTasks(t *testing.T) {
	src := `Quarter,Period,Start,End,Assignee,Category,Task,Deliverable
Q1,W01,2026/01/05,2026/01/16,Mori,Platform,Storefront skeleton,Deployable shell
Q1,W06,2026/02/09,2026/02/27,Sato,Content,Catalog import,★ Catalog live
`
	tasks, err := readTasks(strings.NewReader(src))
	if err != nil {
		t.Fatalf("read tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}

	first := tasks[0]
	if first.ID != 1 || first.Title != "Storefront skeleton" || first.Assignee != "Mori" {
		t.Fatalf("unexpected first task: %+v", first)
	}
	if !first.Start.Equal(date(2026, 1, 5)) || !first.End.Equal(date(2026, 1, 16)) {
		t.Fatalf("unexpected dates: %v..%v", first.Start, first.End)
	}
	if first.Duration() != 12 {
		t.Fatalf("duration = %d, want 12", first.Duration())
	}
	if first.IsMilestone() {
		t.Fatalf("first task should not be a milestone")
	}

	second := tasks[1]
	if second.ID != 2 || !second.IsMilestone() {
		t.Fatalf("second task should be milestone #2: %+v", second)
	}
	if second.Quarter != "Q1" || second.PeriodLabel != "W06" {
		t.Fatalf("unexpected auxiliary fields: %+v", second)
	}
}

func TestReadTasksAcceptsAlternateDateLayouts(t *testing.T) {
	src := `quarter,period,start,end,assignee,category,task,deliverable
Q1,W01,2026-01-05,2026-01-09,Mori,Platform,a,
`
	tasks, err := readTasks(strings.NewReader(src))
	if err != nil {
		t.Fatalf("read tasks: %v", err)
	}
	if !tasks[0].Start.Equal(date(2026, 1, 5)) {
		t.Fatalf("unexpected start: %v", tasks[0].Start)
	}
}

func TestReadTasksFailsFastOnBadDate(t *testing.T) {
	src := `quarter,period,start,end,assignee,category,task,deliverable
Q1,W01,not-a-date,2026/01/09,Mori,Platform,a,
`
	if _, err := readTasks(strings.NewReader(src)); err == nil {
		t.Fatalf("expected date parse error")
	} else if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("error should name the line: %v", err)
	}
}

func TestReadTasksRejectsInvertedSpan(t *testing.T) {
	src := `quarter,period,start,end,assignee,category,task,deliverable
Q1,W01,2026/01/10,2026/01/09,Mori,Platform,a,
`
	if _, err := readTasks(strings.NewReader(src)); err == nil {
		t.Fatalf("expected validation error for start after end")
	}
}

func TestReadTasksRequiresColumns(t *testing.T) {
	src := `start,end,assignee,task
2026/01/05,2026/01/09,Mori,a
`
	if _, err := readTasks(strings.NewReader(src)); err == nil {
		t.Fatalf("expected missing-column error")
	} else if !strings.Contains(err.Error(), "category") {
		t.Fatalf("error should name the missing column: %v", err)
	}
}
