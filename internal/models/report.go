package models

// Snapshot is an immutable record of one comment batch pulled for one product
// on one monitor run. Table: snapshots.json; append-only, removed only by the
// cascading product delete. RawJSON holds the serialized batch for audit.
type Snapshot struct {
	ID             int     `json:"id"`
	ProductID      int     `json:"product_id"`
	DateRangeStart string  `json:"date_range_start"`
	DateRangeEnd   string  `json:"date_range_end"`
	CommentCount   int     `json:"comment_count"`
	RawJSON        *string `json:"raw_json"`
	CreatedAt      string  `json:"created_at"`
}

// Report is the persisted analysis output for one product, one monitor run.
// Table: reports.json; append-only. DimensionSummary and Content are stored in
// serialized string form, matching the flat-file row layout.
type Report struct {
	ID               int     `json:"id"`
	ProductID        int     `json:"product_id"`
	SnapshotID       *int    `json:"snapshot_id"`
	ReportDate       string  `json:"report_date"`
	NegativeCount    int     `json:"negative_count"`
	NegativeSummary  *string `json:"negative_summary"`
	DimensionSummary *string `json:"dimension_summary"`
	Content          *string `json:"content"`
	CreatedAt        string  `json:"created_at"`
}

// ReportRow is a Report joined with its product at read time.
type ReportRow struct {
	Report
	ProductURL  string  `json:"product_url"`
	ProductName *string `json:"product_name"`
}

// ReportDetail is a ReportRow with the dimension summary decoded back into the
// canonical four-key map. The outer field shadows the stored string form.
type ReportDetail struct {
	ReportRow
	DimensionSummary DimensionSummary `json:"dimension_summary"`
}

// TrendRow is the per-calendar-date aggregate served by the trends endpoint.
type TrendRow struct {
	ReportDate    string `json:"report_date"`
	NegativeCount int    `json:"negative_count"`
	ReportCount   int    `json:"report_count"`
}
