package models

// ReconciliationRow is one output row per bucket in monetary mode.
type ReconciliationRow struct {
	Label          string  `json:"label"`
	Online         float64 `json:"online"`
	Offline        float64 `json:"offline"`
	Total          float64 `json:"total"`
	Report         float64 `json:"report"`
	Difference     float64 `json:"difference"`
	ShowInReport   bool    `json:"show_in_report"`
	HasDiscrepancy bool    `json:"has_discrepancy"`
}

// ProductRow is one output row per (bucket, item) in product mode.
type ProductRow struct {
	Label          string  `json:"label"`
	Item           string  `json:"item"`
	Online         float64 `json:"online"`
	Offline        float64 `json:"offline"`
	Total          float64 `json:"total"`
	Report         float64 `json:"report"`
	Difference     float64 `json:"difference"`
	ShowInReport   bool    `json:"show_in_report"`
	HasDiscrepancy bool    `json:"has_discrepancy"`
}

// Footer carries the grand totals and source presence flags for a run.
type Footer struct {
	OnlineSum     float64 `json:"online_sum"`
	OfflineSum    float64 `json:"offline_sum"`
	TotalSum      float64 `json:"total_sum"`
	ReportSum     float64 `json:"report_sum"`
	DifferenceSum float64 `json:"difference_sum"`
	HasOnline     bool    `json:"has_online"`
	HasOffline    bool    `json:"has_offline"`
	HasReport     bool    `json:"has_report"`
}
