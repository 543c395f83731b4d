package reconciliation

import (
	"math"
	"sort"

	"sales-reconciliation-backend/internal/models"
)

// tolerance absorbs floating-point summation noise in monetary mode. A
// difference of exactly 0.01 is not a discrepancy.
const tolerance = 0.01

// alignedDomain is the ordered union of buckets across the sources that
// produced data. Dates are never invented: a daily bucket appears only if
// at least one source reported activity on it. Hourly series are already
// dense over all 24 hours, so the hourly union is always {0..23}.
func alignedDomain(sources ...models.Series) []models.Bucket {
	seen := make(map[models.Bucket]struct{})
	for _, s := range sources {
		for b := range s {
			seen[b] = struct{}{}
		}
	}
	domain := make([]models.Bucket, 0, len(seen))
	for b := range seen {
		domain = append(domain, b)
	}
	sort.Slice(domain, func(i, j int) bool { return domain[i].Less(domain[j]) })
	return domain
}

// reconcile walks the aligned domain computing Total = Online + Offline
// per bucket and, where the report carries a value for that bucket,
// Difference = Total - Report. Absent buckets read as zero from every
// series, including nil series for sources that were not uploaded.
func reconcile(domain []models.Bucket, online, offline, report models.Series) ([]models.ReconciliationRow, models.Footer) {
	rows := make([]models.ReconciliationRow, 0, len(domain))
	var footer models.Footer

	for _, b := range domain {
		row := models.ReconciliationRow{
			Label:   b.Label(),
			Online:  online[b],
			Offline: offline[b],
		}
		row.Total = row.Online + row.Offline

		if report != nil {
			row.Report = report[b]
			row.ShowInReport = row.Report > 0
			if row.ShowInReport {
				row.Difference = row.Total - row.Report
				row.HasDiscrepancy = math.Abs(row.Difference) > tolerance
			}
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
