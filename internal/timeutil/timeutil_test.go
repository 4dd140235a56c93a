package timeutil

import (
	"testing"
	"time"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%s): %v", name, err)
	}
	return loc
}

func TestFormatInZone(t *testing.T) {
	loc := mustZone(t, "America/Edmonton")
	// 2025-06-01T14:00:00Z is 08:00 in Edmonton (MDT, UTC-6).
	instant := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	if got := FormatInZone(instant, loc); got != "08:00" {
		t.Fatalf("FormatInZone() = %s, want 08:00", got)
	}
	if got := HourInZone(instant, loc); got != 8 {
		t.Fatalf("HourInZone() = %d, want 8", got)
	}
}

func TestBucketByPeriodBoundaries(t *testing.T) {
	loc := time.UTC
	times := []time.Time{
		time.Date(2025, 6, 1, 11, 59, 0, 0, time.UTC), // morning
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),  // afternoon, exactly 12
		time.Date(2025, 6, 1, 17, 59, 0, 0, time.UTC), // afternoon
		time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),  // night, exactly 18
	}

	buckets := BucketByPeriod(times, loc)
	if len(buckets) != 3 {
		t.Fatalf("len(buckets) = %d, want 3", len(buckets))
	}
	if buckets[0].Category != PeriodMorning || len(buckets[0].Times) != 1 {
		t.Fatalf("morning bucket = %+v", buckets[0])
	}
	if buckets[1].Category != PeriodAfternoon || len(buckets[1].Times) != 2 {
		t.Fatalf("afternoon bucket = %+v", buckets[1])
	}
	if buckets[2].Category != PeriodNight || buckets[2].Times[0] != "18:00" {
		t.Fatalf("night bucket = %+v", buckets[2])
	}
}

func TestBucketByPeriodOmitsEmptyAndKeepsOrder(t *testing.T) {
	loc := time.UTC
	times := []time.Time{
		time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC),
	}

	buckets := BucketByPeriod(times, loc)
	if len(buckets) != 1 {
		t.Fatalf("len(buckets) = %d, want 1", len(buckets))
	}
	if buckets[0].Category != PeriodNight {
		t.Fatalf("category = %s, want night", buckets[0].Category)
	}
	// Input order preserved, not sorted.
	if buckets[0].Times[0] != "20:00" || buckets[0].Times[1] != "19:00" {
		t.Fatalf("times = %v", buckets[0].Times)
	}
}

func TestBucketByPeriodEmptyInput(t *testing.T) {
	if got := BucketByPeriod(nil, time.UTC); len(got) != 0 {
		t.Fatalf("expected no buckets, got %+v", got)
	}
}

func TestToLocalStrings(t *testing.T) {
	loc := mustZone(t, "America/Edmonton")
	times := []time.Time{
		time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC),
	}

	out := ToLocalStrings(times, loc)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	// One string per slot, input order preserved.
	if out[0] >= out[1] {
		t.Fatalf("expected ascending local strings, got %v", out)
	}
}
