// Package timeutil formats appointment times in a caller-supplied IANA zone
// and groups them into coarse day periods.
package timeutil

import "time"

// Period categories, in presentation order.
const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
	PeriodNight     = "night"
)

// TimeBucket groups formatted times under one period category.
type TimeBucket struct {
	Category string   `json:"category"`
	Times    []string `json:"times"`
}

// FormatInZone renders t as zero-padded 24-hour "HH:MM" wall-clock time in loc.
func FormatInZone(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}

// HourInZone returns the wall-clock hour (0..23) of t in loc.
func HourInZone(t time.Time, loc *time.Location) int {
	return t.In(loc).Hour()
}

// BucketByPeriod partitions times into morning (<12), afternoon (12..17) and
// night (>=18) wall-clock buckets. Empty buckets are omitted; within a bucket
// the input order is preserved.
func BucketByPeriod(times []time.Time, loc *time.Location) []TimeBucket {
	var morning, afternoon, night []string
	for _, t := range times {
		formatted := FormatInZone(t, loc)
		switch hour := HourInZone(t, loc); {
		case hour < 12:
			morning = append(morning, formatted)
		case hour < 18:
			afternoon = append(afternoon, formatted)
		default:
			night = append(night, formatted)
		}
	}

	buckets := make([]TimeBucket, 0, 3)
	if len(morning) > 0 {
		buckets = append(buckets, TimeBucket{Category: PeriodMorning, Times: morning})
	}
	if len(afternoon) > 0 {
		buckets = append(buckets, TimeBucket{Category: PeriodAfternoon, Times: afternoon})
	}
	if len(night) > 0 {
		buckets = append(buckets, TimeBucket{Category: PeriodNight, Times: night})
	}
	return buckets
}

// ToLocalStrings renders each time as a human-readable local date and time in
// loc, preserving input order. The exact layout is a display convenience, not
// a wire contract.
func ToLocalStrings(times []time.Time, loc *time.Location) []string {
	out := make([]string, 0, len(times))
	for _, t := range times {
		out = append(out, t.In(loc).Format("2006-01-02 15:04:05"))
	}
	return out
}
