// Package reconciliation reconciles sales figures reported by up to three
// independent exports (online orders, offline point of sale, third-party
// report) into a single time-bucketed table, flagging buckets where
// Online+Offline disagrees with the report.
package reconciliation

import (
	"fmt"

	"sales-reconciliation-backend/internal/models"
)

// StatusPolicy selects which online order statuses are excluded from the
// totals. Both policies are in active use across deployments, so the
// choice is configuration, never a constant.
type StatusPolicy string

const (
	// PolicyStrict excludes orders pending store acceptance along with
	// cancelled and pending-payment orders.
	PolicyStrict StatusPolicy = "strict"
	// PolicyPermissive counts orders pending store acceptance as sales.
	PolicyPermissive StatusPolicy = "permissive"
)

// Options select the bucketing mode and per-source policies for one run.
// CutoffHour only matters in daily mode.
type Options struct {
	Mode         models.Mode
	CutoffHour   int
	StatusPolicy StatusPolicy
}

// Request carries the already-loaded source tables for one run. A nil
// table means the source was not uploaded.
type Request struct {
	Online  *models.Table
	Offline *models.Table
	Report  *models.Table
	Options Options
}

// Result is the reconciled table plus footer sums.
type Result struct {
	Rows   []models.ReconciliationRow
	Footer models.Footer
}

// ProductResult is the per-product reconciled table plus footer sums.
type ProductResult struct {
	Rows   []models.ProductRow
	Footer models.Footer
}

// SourceError reports a structural failure in one source's table, such as
// a required column being absent. Row-level parse failures never produce
// one; they are silently dropped instead.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("error processing %s data: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func missingColumn(source, column string) *SourceError {
	return &SourceError{Source: source, Err: fmt.Errorf("missing column %s", column)}
}

// Service runs reconciliations over uploaded tables. It holds no state
// between runs; every run is independent and deterministic.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Reconcile normalizes each provided source, aggregates it into time
// buckets, aligns the buckets across sources, and compares Online+Offline
// against the report. All-or-nothing per source: a structural failure in
// any table aborts the run with no partial output.
func (s *Service) Reconcile(req Request) (*Result, error) {
	var online, offline, report models.Series

	if req.Online != nil {
		series, err := normalizeOnline(req.Online, req.Options)
		if err != nil {
			return nil, err
		}
		online = series
	}
	if req.Offline != nil {
		series, err := normalizeOffline(req.Offline, req.Options)
		if err != nil {
			return nil, err
		}
		offline = series
	}
	if req.Report != nil {
		series, err := normalizeReport(req.Report, req.Options)
		if err != nil {
			return nil, err
		}
		report = series
	}

	domain := alignedDomain(online, offline, report)
	rows, footer := reconcile(domain, online, offline, report)

	footer.HasOnline = req.Online != nil
	footer.HasOffline = req.Offline != nil
	footer.HasReport = req.Report != nil

	return &Result{Rows: rows, Footer: footer}, nil
}

// ReconcileProducts performs the same reconciliation at (bucket, item)
// granularity over the quantity variants of the three exports. Quantities
// are compared with a strict inequality rather than the monetary
// tolerance, since item counts are integers.
func (s *Service) ReconcileProducts(req Request) (*ProductResult, error) {
	var online, offline, report productAggregate

	if req.Online != nil {
		agg, err := normalizeOnlineProducts(req.Online, req.Options)
		if err != nil {
			return nil, err
		}
		online = agg
	}
	if req.Offline != nil {
		agg, err := normalizeOfflineProducts(req.Offline, req.Options)
		if err != nil {
			return nil, err
		}
		offline = agg
	}
	if req.Report != nil {
		agg, err := normalizeReportProducts(req.Report, req.Options)
		if err != nil {
			return nil, err
		}
		report = agg
	}

	rows, footer := reconcileProducts(online, offline, report)

	footer.HasOnline = req.Online != nil
	footer.HasOffline = req.Offline != nil
	footer.HasReport = req.Report != nil

	return &ProductResult{Rows: rows, Footer: footer}, nil
}
