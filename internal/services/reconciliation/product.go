package reconciliation

import (
	"sort"
	"strings"

	"sales-reconciliation-backend/internal/models"
	"sales-reconciliation-backend/internal/services/matching"
)

// productAggregate sums signed item quantities per (bucket, item). A nil
// aggregate means the source was not uploaded.
type productAggregate map[models.ProductKey]float64

// normalizeOnlineProducts filters online orders by status and sums item
// quantities into (bucket, item) aggregates. Rows with a blank item name
// or an unparsable timestamp or quantity are dropped.
func normalizeOnlineProducts(t *models.Table, opts Options) (productAggregate, error) {
	statusCol := t.ColumnIndex("Status")
	timeCol := t.ColumnIndex("Created Time")
	orderCol := t.ColumnIndex("OrderId")
	qtyCol := t.ColumnIndex("Quantity")
	itemCol := t.ColumnIndex("Item")
	switch {
	case statusCol < 0:
		return nil, missingColumn("online", "Status")
	case timeCol < 0:
		return nil, missingColumn("online", "Created Time")
	case orderCol < 0:
		return nil, missingColumn("online", "OrderId")
	case qtyCol < 0:
		return nil, missingColumn("online", "Quantity")
	case itemCol < 0:
		return nil, missingColumn("online", "Item")
	}

	excluded := opts.StatusPolicy.excludedStatuses()
	agg := productAggregate{}

	for i := 0; i < t.Len(); i++ {
		status := strings.ToLower(strings.TrimSpace(t.Cell(i, statusCol)))
		if _, skip := excluded[status]; skip {
			continue
		}
		item := strings.TrimSpace(t.Cell(i, itemCol))
		if item == "" {
			continue
		}
		bucket, ok := resolveBucket(t.Cell(i, timeCol), opts)
		if !ok {
			continue
		}
		qty, ok := parseValue(t.Cell(i, qtyCol))
		if !ok {
			continue
		}
		agg[models.ProductKey{Bucket: bucket, Item: item}] += qty
	}
	return agg, nil
}

// normalizeOfflineProducts keeps non-cancelled "Sale" and "Return" rows;
// returns contribute a negated quantity.
func normalizeOfflineProducts(t *models.Table, opts Options) (productAggregate, error) {
	typeCol := t.ColumnIndex("Transaction Type")
	cancelledCol := t.ColumnIndex("Is_Cancelled")
	timeCol := t.ColumnIndex("Time")
	qtyCol := t.ColumnIndex("Quantity")
	itemCol := t.ColumnIndex("Item")
	switch {
	case typeCol < 0:
		return nil, missingColumn("offline", "Transaction Type")
	case cancelledCol < 0:
		return nil, missingColumn("offline", "Is_Cancelled")
	case timeCol < 0:
		return nil, missingColumn("offline", "Time")
	case qtyCol < 0:
		return nil, missingColumn("offline", "Quantity")
	case itemCol < 0:
		return nil, missingColumn("offline", "Item")
	}

	agg := productAggregate{}

	for i := 0; i < t.Len(); i++ {
		txType := strings.ToLower(strings.TrimSpace(t.Cell(i, typeCol)))
		if txType != "sale" && txType != "return" {
			continue
		}
		if isCancelled(t.Cell(i, cancelledCol)) {
			continue
		}
		item := strings.TrimSpace(t.Cell(i, itemCol))
		if item == "" {
			continue
		}
		bucket, ok := resolveBucket(t.Cell(i, timeCol), opts)
		if !ok {
			continue
		}
		qty, ok := parseValue(t.Cell(i, qtyCol))
		if !ok {
			continue
		}
		if txType == "return" {
			qty = -qty
		}
		agg[models.ProductKey{Bucket: bucket, Item: item}] += qty
	}
	return agg, nil
}

// normalizeReportProducts extends the report's heuristic column discovery
// to the item and quantity columns, then sums quantities per (bucket,
// item).
func normalizeReportProducts(t *models.Table, opts Options) (productAggregate, error) {
	if len(t.Headers) == 0 {
		return nil, &SourceError{Source: "report", Err: errNoColumns}
	}
	timeCol, itemCol, qtyCol := reportProductColumns(t.Headers)

	agg := productAggregate{}

	for i := 0; i < t.Len(); i++ {
		item := strings.TrimSpace(t.Cell(i, itemCol))
		if item == "" {
			continue
		}
		bucket, ok := resolveReportBucket(t.Cell(i, timeCol), opts)
		if !ok {
			continue
		}
		qty, ok := parseValue(t.Cell(i, qtyCol))
		if !ok {
			continue
		}
		agg[models.ProductKey{Bucket: bucket, Item: item}] += qty
	}
	return agg, nil
}

// reportProductColumns locates the temporal, item, and quantity columns of
// a product report, falling back positionally (first, second, third) when
// no header matches.
func reportProductColumns(headers []string) (timeCol, itemCol, qtyCol int) {
	itemFallback := 0
	if len(headers) > 1 {
		itemFallback = 1
	}
	qtyFallback := 0
	if len(headers) > 2 {
		qtyFallback = 2
	} else if len(headers) > 1 {
		qtyFallback = 1
	}

	timeCol = matching.FindColumn(headers, 0,
		matching.Exact("datetime", "date_time", "time", "timestamp", "created_time", "date", "date / time"),
		matching.Contains("time", "date"),
	)
	itemCol = matching.FindColumn(headers, itemFallback,
		matching.Exact("item", "product", "product name", "name", "sku"),
		matching.Contains("item", "product"),
	)
	qtyCol = matching.FindColumn(headers, qtyFallback,
		matching.Exact("quantity", "qty", "count", "units"),
		matching.Contains("qty", "quantity"),
	)
	return timeCol, itemCol, qtyCol
}

// reconcileProducts joins the three aggregates on the full set of
// (bucket, item) pairs observed in any source, ordered by bucket then item
// name case-insensitively. Discrepancy uses a strict inequality: quantity
// counts carry no floating-point noise worth tolerating.
func reconcileProducts(online, offline, report productAggregate) ([]models.ProductRow, models.Footer) {
	seen := make(map[models.ProductKey]struct{})
	for _, agg := range []productAggregate{online, offline, report} {
		for k := range agg {
			seen[k] = struct{}{}
		}
	}
	keys := make([]models.ProductKey, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	rows := make([]models.ProductRow, 0, len(keys))
	var footer models.Footer

	for _, k := range keys {
		row := models.ProductRow{
			Label:   k.Bucket.Label(),
			Item:    k.Item,
			Online:  online[k],
			Offline: offline[k],
		}
		row.Total = row.Online + row.Offline

		if report != nil {
			row.Report = report[k]
			row.ShowInReport = row.Report > 0
			row.Difference = row.Total - row.Report
			row.HasDiscrepancy = row.Difference != 0 && row.Report > 0
		}

		footer.OnlineSum += row.Online
		footer.OfflineSum += row.Offline
		footer.TotalSum += row.Total
		footer.ReportSum += row.Report

		rows = append(rows, row)
	}

	if report != nil {
		footer.DifferenceSum = footer.TotalSum - footer.ReportSum
	}
	return rows, footer
}
