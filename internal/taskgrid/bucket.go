package taskgrid

import (
	"errors"
	"time"
)

// ErrInvalidRange reports a collapsed or inverted temporal span. It aborts
// the current render/export call and is surfaced to the caller.
var ErrInvalidRange = errors.New("range start is after range end")

// Bucket is one fixed-width calendar interval with inclusive boundaries.
type Bucket struct {
	Start time.Time
	End   time.Time
}

// Label formats the bucket header per granularity: MM/DD for day and week
// (the week's Monday), YYYY/MM for month.
func (b Bucket) Label(g Granularity) string {
	if g == GranularityMonth {
		return b.Start.Format("2006/01")
	}
	return b.Start.Format("01/02")
}

// MakeBuckets produces the ordered bucket sequence covering
// [rangeStart, rangeEnd] at the given granularity. Buckets are contiguous,
// non-overlapping, and strictly increasing in start date.
//
// Week buckets anchor to the ISO Monday on/before rangeStart even when the
// range begins mid-week; month buckets anchor to the 1st of the containing
// month and advance one calendar month at a time, so variable month lengths
// and year rollover come out of time.AddDate directly.
func MakeBuckets(rangeStart, rangeEnd time.Time, g Granularity) ([]Bucket, error) {
	if rangeStart.After(rangeEnd) {
		return nil, ErrInvalidRange
	}

	var buckets []Bucket
	switch g {
	case GranularityWeek:
		for s := weekStart(rangeStart); !s.After(rangeEnd); s = s.AddDate(0, 0, 7) {
			buckets = append(buckets, Bucket{Start: s, End: s.AddDate(0, 0, 6)})
		}
	case GranularityMonth:
		first := date(rangeStart.Year(), rangeStart.Month(), 1)
		for s := first; !s.After(rangeEnd); s = s.AddDate(0, 1, 0) {
			buckets = append(buckets, Bucket{Start: s, End: s.AddDate(0, 1, -1)})
		}
	default:
		for s := rangeStart; !s.After(rangeEnd); s = s.AddDate(0, 0, 1) {
			buckets = append(buckets, Bucket{Start: s, End: s})
		}
	}
	return buckets, nil
}

// weekStart returns the Monday on/before t, independent of locale.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return t.AddDate(0, 0, -offset)
}
