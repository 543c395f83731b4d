package models

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects the bucketing granularity for a reconciliation run.
type Mode string

const (
	ModeHourly Mode = "hourly"
	ModeDaily  Mode = "daily"
)

// Bucket is one unit of time aggregation: an hour of day in hourly mode, a
// business date in daily mode. Buckets are comparable map keys; dates are
// normalized to midnight UTC so equal dates compare equal.
type Bucket struct {
	Mode Mode
	Hour int       // 0-23, hourly mode only
	Date time.Time // midnight UTC, daily mode only
}

// HourBucket builds an hourly bucket for an hour in [0,23].
func HourBucket(hour int) Bucket {
	return Bucket{Mode: ModeHourly, Hour: hour}
}

// DateBucket builds a daily bucket for the calendar date of t.
func DateBucket(t time.Time) Bucket {
	return Bucket{
		Mode: ModeDaily,
		Date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// Less orders hours ascending 0 through 23 and dates chronologically.
func (b Bucket) Less(other Bucket) bool {
	if b.Mode == ModeHourly {
		return b.Hour < other.Hour
	}
	return b.Date.Before(other.Date)
}

// Label renders the human-readable bucket name: "12 AM" through "11 PM"
// for hours, "02 Jan 2006" for dates.
func (b Bucket) Label() string {
	if b.Mode == ModeDaily {
		return b.Date.Format("02 Jan 2006")
	}
	switch {
	case b.Hour == 0:
		return "12 AM"
	case b.Hour < 12:
		return fmt.Sprintf("%02d AM", b.Hour)
	case b.Hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%02d PM", b.Hour-12)
	}
}

// Series maps buckets to summed values for one source. A nil Series means
// the source was not uploaded; reading any bucket from it yields zero.
type Series map[Bucket]float64

// ProductKey identifies one (bucket, item) aggregate in product mode. Item
// is trimmed and case-preserving; blank items never reach a key.
type ProductKey struct {
	Bucket Bucket
	Item   string
}

// Less orders keys by bucket ascending, then item name case-insensitively.
// Items that tie case-insensitively fall back to a case-sensitive compare
// so the sort order stays deterministic.
func (k ProductKey) Less(other ProductKey) bool {
	if k.Bucket != other.Bucket {
		return k.Bucket.Less(other.Bucket)
	}
	a, b := strings.ToLower(k.Item), strings.ToLower(other.Item)
	if a != b {
		return a < b
	}
	return k.Item < other.Item
}
