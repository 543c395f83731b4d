package reconciliation

import (
	"errors"
	"strconv"
	"strings"

	"sales-reconciliation-backend/internal/models"
	"sales-reconciliation-backend/internal/services/matching"
	"sales-reconciliation-backend/internal/services/timekey"
)

// Offline exports spell true several ways; anything outside this set is
// treated as false.
var truthy = map[string]struct{}{
	"TRUE": {},
	"T":    {},
	"1":    {},
	"YES":  {},
}

func isCancelled(raw string) bool {
	_, ok := truthy[strings.ToUpper(strings.TrimSpace(raw))]
	return ok
}

func (p StatusPolicy) excludedStatuses() map[string]struct{} {
	excluded := map[string]struct{}{
		"cancelled":       {},
		"pending payment": {},
	}
	if p != PolicyPermissive {
		excluded["pending store acceptance"] = struct{}{}
	}
	return excluded
}

// newSeries returns the empty aggregate for a mode. Hourly series are
// dense over all 24 buckets from the start; daily series stay sparse
// because only the aligner knows the cross-source union of dates.
func newSeries(mode models.Mode) models.Series {
	series := models.Series{}
	if mode == models.ModeHourly {
		for h := 0; h < 24; h++ {
			series[models.HourBucket(h)] = 0
		}
	}
	return series
}

// resolveBucket keys a raw timestamp for the online and offline sources.
func resolveBucket(raw string, opts Options) (models.Bucket, bool) {
	if opts.Mode == models.ModeHourly {
		hour, ok := timekey.ResolveHour(raw)
		if !ok {
			return models.Bucket{}, false
		}
		return models.HourBucket(hour), true
	}
	date, ok := timekey.ResolveBusinessDate(raw, opts.CutoffHour)
	if !ok {
		return models.Bucket{}, false
	}
	return models.DateBucket(date), true
}

// resolveReportBucket keys a raw report value. Daily-mode reports carry
// dates already expressed in business-date terms, so the cutoff shift is
// never applied to them.
func resolveReportBucket(raw string, opts Options) (models.Bucket, bool) {
	if opts.Mode == models.ModeHourly {
		hour, ok := timekey.ResolveHour(raw)
		if !ok {
			return models.Bucket{}, false
		}
		return models.HourBucket(hour), true
	}
	date, ok := timekey.ResolveReportDate(raw)
	if !ok {
		return models.Bucket{}, false
	}
	return models.DateBucket(date), true
}

func parseValue(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// normalizeOnline filters online orders by status and sums their totals
// into buckets. Rows whose timestamp or total cannot be parsed are
// dropped; a missing structural column fails the whole source.
func normalizeOnline(t *models.Table, opts Options) (models.Series, error) {
	statusCol := t.ColumnIndex("Status")
	timeCol := t.ColumnIndex("Created Time")
	totalCol := t.ColumnIndex("Total")
	switch {
	case statusCol < 0:
		return nil, missingColumn("online", "Status")
	case timeCol < 0:
		return nil, missingColumn("online", "Created Time")
	case totalCol < 0:
		return nil, missingColumn("online", "Total")
	}

	excluded := opts.StatusPolicy.excludedStatuses()
	series := newSeries(opts.Mode)

	for i := 0; i < t.Len(); i++ {
		status := strings.ToLower(strings.TrimSpace(t.Cell(i, statusCol)))
		if _, skip := excluded[status]; skip {
			continue
		}
		bucket, ok := resolveBucket(t.Cell(i, timeCol), opts)
		if !ok {
			continue
		}
		value, ok := parseValue(t.Cell(i, totalCol))
		if !ok {
			continue
		}
		series[bucket] += value
	}
	return series, nil
}

// normalizeOffline keeps non-cancelled "Sale" rows and sums their totals
// into buckets.
func normalizeOffline(t *models.Table, opts Options) (models.Series, error) {
	typeCol := t.ColumnIndex("Transaction Type")
	cancelledCol := t.ColumnIndex("Is_Cancelled")
	timeCol := t.ColumnIndex("Time")
	totalCol := t.ColumnIndex("Total")
	switch {
	case typeCol < 0:
		return nil, missingColumn("offline", "Transaction Type")
	case cancelledCol < 0:
		return nil, missingColumn("offline", "Is_Cancelled")
	case timeCol < 0:
		return nil, missingColumn("offline", "Time")
	case totalCol < 0:
		return nil, missingColumn("offline", "Total")
	}

	series := newSeries(opts.Mode)

	for i := 0; i < t.Len(); i++ {
		txType := strings.ToLower(strings.TrimSpace(t.Cell(i, typeCol)))
		if txType != "sale" || isCancelled(t.Cell(i, cancelledCol)) {
			continue
		}
		bucket, ok := resolveBucket(t.Cell(i, timeCol), opts)
		if !ok {
			continue
		}
		value, ok := parseValue(t.Cell(i, totalCol))
		if !ok {
			continue
		}
		series[bucket] += value
	}
	return series, nil
}

// normalizeReport locates the report's temporal and value columns
// heuristically, then sums values into buckets. Report exports have no
// fixed schema, so there are no structural column requirements beyond the
// table having columns at all.
func normalizeReport(t *models.Table, opts Options) (models.Series, error) {
	if len(t.Headers) == 0 {
		return nil, &SourceError{Source: "report", Err: errNoColumns}
	}
	timeCol, valueCol := reportColumns(t.Headers)

	series := newSeries(opts.Mode)

	for i := 0; i < t.Len(); i++ {
		bucket, ok := resolveReportBucket(t.Cell(i, timeCol), opts)
		if !ok {
			continue
		}
		value, ok := parseValue(t.Cell(i, valueCol))
		if !ok {
			continue
		}
		series[bucket] += value
	}
	return series, nil
}

// reportColumns resolves the temporal and value columns of a report
// export. Candidates are tried before substring matches; when nothing
// matches, the first column is the temporal one and the second (or first,
// for single-column tables) holds the values.
func reportColumns(headers []string) (timeCol, valueCol int) {
	valueFallback := 0
	if len(headers) > 1 {
		valueFallback = 1
	}
	timeCol = matching.FindColumn(headers, 0,
		matching.Exact("datetime", "date_time", "time", "timestamp", "created_time", "date", "date / time"),
		matching.Contains("time", "date"),
	)
	valueCol = matching.FindColumn(headers, valueFallback,
		matching.Exact("total", "amount", "value", "sum", "revenue", "total sales", "sales"),
		matching.Contains("total", "sales"),
	)
	return timeCol, valueCol
}

var errNoColumns = errors.New("table has no columns")
