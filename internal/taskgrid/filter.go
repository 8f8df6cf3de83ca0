package taskgrid

// Filter is the upstream task selection: allow-lists per dimension, where an
// empty list leaves that dimension unconstrained.
type Filter struct {
	Quarters   []string
	Assignees  []string
	Categories []string
}

func (f Filter) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !allow(f.Quarters, t.Quarter) {
			continue
		}
		if !allow(f.Assignees, t.Assignee) {
			continue
		}
		if !allow(f.Categories, t.Category) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func allow(list []string, v string) bool {
	if len(list) == 0 {
		return true
	}
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
