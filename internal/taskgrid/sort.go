package taskgrid

import "sort"

// rankIn returns the sort rank of name under a user-supplied ordering:
// its index when listed, otherwise len(order) so every unlisted name sorts
// after every listed one. Ties among unlisted names fall through to the
// stable sort, preserving first-seen input order.
func rankIn(order []string, name string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return len(order)
}

// SortTasks orders tasks by the chosen primary key with a fixed secondary
// tiebreak and returns a new slice; the input is not mutated.
//
// Direction reverses only the primary-key comparison. For categorical keys
// it additionally never moves unlisted names ahead of listed ones: the
// listed-before-unlisted placement is direction-independent, only the
// relative order within listed names flips.
func SortTasks(tasks []Task, key SortKey, dir Direction, categoryOrder, assigneeOrder []string) []Task {
	out := append([]Task(nil), tasks...)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		var c int
		switch key {
		case SortByAssignee:
			c = compareRanked(rankIn(assigneeOrder, a.Assignee), rankIn(assigneeOrder, b.Assignee), len(assigneeOrder), dir)
		case SortByCategory:
			c = compareRanked(rankIn(categoryOrder, a.Category), rankIn(categoryOrder, b.Category), len(categoryOrder), dir)
		default:
			c = a.Start.Compare(b.Start)
			if dir == Descending {
				c = -c
			}
		}
		if c != 0 {
			return c < 0
		}

		// Fixed tiebreaks, never affected by direction.
		if key == SortByStart {
			return a.Assignee < b.Assignee
		}
		return a.Start.Before(b.Start)
	})

	return out
}

func compareRanked(ra, rb, listed int, dir Direction) int {
	aListed, bListed := ra < listed, rb < listed
	if aListed != bListed {
		if aListed {
			return -1
		}
		return 1
	}
	c := ra - rb
	if dir == Descending {
		c = -c
	}
	return c
}
