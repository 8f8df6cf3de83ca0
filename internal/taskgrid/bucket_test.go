package taskgrid

import (
	"errors"
	"testing"
	"time"
)

func TestMakeBucketsInvalidRange(t *testing.T) {
	_, err := MakeBuckets(date(2026, 3, 2), date(2026, 3, 1), GranularityDay)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestMakeBucketsDay(t *testing.T) {
	buckets, err := MakeBuckets(date(2026, 1, 30), date(2026, 2, 2), GranularityDay)
	if err != nil {
		t.Fatalf("make buckets: %v", err)
	}
	if len(buckets) != 4 {
		t.Fatalf("expected 4 day buckets, got %d", len(buckets))
	}
	for _, b := range buckets {
		if !b.Start.Equal(b.End) {
			t.Fatalf("day bucket start != end: %v %v", b.Start, b.End)
		}
	}
	if !buckets[3].Start.Equal(date(2026, 2, 2)) {
		t.Fatalf("unexpected last day bucket: %v", buckets[3].Start)
	}
}

func TestMakeBucketsWeekAnchorsMonday(t *testing.T) {
	// 2026/01/01 is a Thursday; the first week bucket must start on the
	// Monday before it even though no task starts there.
	buckets, err := MakeBuckets(date(2026, 1, 1), date(2026, 1, 14), GranularityWeek)
	if err != nil {
		t.Fatalf("make buckets: %v", err)
	}
	if len(buckets) != 3 {
		t.Fatalf("expected 3 week buckets, got %d", len(buckets))
	}
	if !buckets[0].Start.Equal(date(2025, 12, 29)) {
		t.Fatalf("first bucket start = %v, want 2025/12/29", buckets[0].Start)
	}
	for _, b := range buckets {
		if b.Start.Weekday() != time.Monday {
			t.Fatalf("bucket start %v is not a Monday", b.Start)
		}
		if !b.End.Equal(b.Start.AddDate(0, 0, 6)) {
			t.Fatalf("week bucket is not 7 days: %v..%v", b.Start, b.End)
		}
	}

	// Task 01/05..01/09 intersects exactly the second bucket.
	var hits []int
	for i, b := range buckets {
		if overlaps(date(2026, 1, 5), date(2026, 1, 9), b.Start, b.End) {
			hits = append(hits, i)
		}
	}
	if len(hits) != 1 || hits[0] != 1 {
		t.Fatalf("expected task to hit only bucket 1, got %v", hits)
	}
}

func TestMakeBucketsMonthRolloverAndLengths(t *testing.T) {
	buckets, err := MakeBuckets(date(2025, 11, 15), date(2026, 2, 3), GranularityMonth)
	if err != nil {
		t.Fatalf("make buckets: %v", err)
	}
	want := []Bucket{
		{Start: date(2025, 11, 1), End: date(2025, 11, 30)},
		{Start: date(2025, 12, 1), End: date(2025, 12, 31)},
		{Start: date(2026, 1, 1), End: date(2026, 1, 31)},
		{Start: date(2026, 2, 1), End: date(2026, 2, 28)},
	}
	if len(buckets) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(buckets))
	}
	for i, b := range buckets {
		if !b.Start.Equal(want[i].Start) || !b.End.Equal(want[i].End) {
			t.Fatalf("bucket %d = %v..%v, want %v..%v", i, b.Start, b.End, want[i].Start, want[i].End)
		}
	}
}

func TestMakeBucketsLeapFebruary(t *testing.T) {
	buckets, err := MakeBuckets(date(2024, 2, 10), date(2024, 2, 10), GranularityMonth)
	if err != nil {
		t.Fatalf("make buckets: %v", err)
	}
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if !buckets[0].End.Equal(date(2024, 2, 29)) {
		t.Fatalf("leap February should end on the 29th, got %v", buckets[0].End)
	}
}

func TestMakeBucketsSingleDateRange(t *testing.T) {
	for _, g := range []Granularity{GranularityDay, GranularityWeek, GranularityMonth} {
		buckets, err := MakeBuckets(date(2026, 6, 17), date(2026, 6, 17), g)
		if err != nil {
			t.Fatalf("%s: make buckets: %v", g, err)
		}
		if len(buckets) != 1 {
			t.Fatalf("%s: expected exactly one bucket, got %d", g, len(buckets))
		}
	}
}

func TestBucketSequenceProperties(t *testing.T) {
	rangeStart, rangeEnd := date(2025, 12, 20), date(2026, 3, 7)
	for _, g := range []Granularity{GranularityDay, GranularityWeek, GranularityMonth} {
		buckets, err := MakeBuckets(rangeStart, rangeEnd, g)
		if err != nil {
			t.Fatalf("%s: make buckets: %v", g, err)
		}
		if len(buckets) == 0 {
			t.Fatalf("%s: no buckets", g)
		}
		if buckets[0].Start.After(rangeStart) {
			t.Fatalf("%s: first bucket %v starts after range start", g, buckets[0].Start)
		}
		if buckets[len(buckets)-1].End.Before(rangeEnd) {
			t.Fatalf("%s: last bucket %v ends before range end", g, buckets[len(buckets)-1].End)
		}
		for i := 1; i < len(buckets); i++ {
			if !buckets[i].Start.Equal(buckets[i-1].End.AddDate(0, 0, 1)) {
				t.Fatalf("%s: buckets %d/%d not contiguous: %v then %v",
					g, i-1, i, buckets[i-1].End, buckets[i].Start)
			}
			if !buckets[i].Start.After(buckets[i-1].Start) {
				t.Fatalf("%s: bucket starts not strictly increasing", g)
			}
		}
	}
}

func TestBucketLabels(t *testing.T) {
	b := Bucket{Start: date(2026, 3, 2), End: date(2026, 3, 8)}
	if got := b.Label(GranularityWeek); got != "03/02" {
		t.Fatalf("week label = %q, want 03/02", got)
	}
	if got := b.Label(GranularityDay); got != "03/02" {
		t.Fatalf("day label = %q, want 03/02", got)
	}
	m := Bucket{Start: date(2026, 3, 1), End: date(2026, 3, 31)}
	if got := m.Label(GranularityMonth); got != "2026/03" {
		t.Fatalf("month label = %q, want 2026/03", got)
	}
}
