package storage

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/review-monitor/core/internal/models"
	"github.com/review-monitor/core/internal/pkg/dateutil"
)

// InsertReport appends a report row and returns its id. The dimension summary
// is normalized to the four canonical keys and serialized to a string column.
func (s *Store) InsertReport(productID int, snapshotID *int, reportDate string, negativeCount int, negativeSummary *string, dimensionSummary models.DimensionSummary, content *string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var dimStr *string
	if dimensionSummary != nil {
		raw, err := json.Marshal(dimensionSummary.Normalized())
		if err != nil {
			return 0, err
		}
		str := string(raw)
		dimStr = &str
	}

	t := loadTable[models.Report](s, reportsFile)
	id := t.NextID
	t.NextID++
	t.Items = append(t.Items, models.Report{
		ID:               id,
		ProductID:        productID,
		SnapshotID:       snapshotID,
		ReportDate:       reportDate,
		NegativeCount:    negativeCount,
		NegativeSummary:  negativeSummary,
		DimensionSummary: dimStr,
		Content:          content,
		CreatedAt:        dateutil.Now(),
	})
	if err := saveTable(s, reportsFile, t); err != nil {
		return 0, err
	}
	return id, nil
}

// ListReports returns reports joined with their product's url and name,
// optionally filtered by product, sorted descending by (report_date, id)
// lexicographically and truncated to limit.
func (s *Store) ListReports(productID *int, limit int) ([]models.ReportRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt := loadTable[models.Report](s, reportsFile)
	byID := s.productIndexLocked()

	rows := make([]models.ReportRow, 0, len(rt.Items))
	for _, r := range rt.Items {
		if productID != nil && r.ProductID != *productID {
			continue
		}
		rows = append(rows, joinProduct(r, byID[r.ProductID]))
	}
	sort.Slice(rows, func(i, j int) bool {
		a := rows[i].ReportDate + strconv.Itoa(rows[i].ID)
		b := rows[j].ReportDate + strconv.Itoa(rows[j].ID)
		return a > b
	})
	if limit < 0 {
		limit = 0
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// GetReport returns a single report with its product join and the dimension
// summary decoded to the canonical four-key map, or nil when absent.
func (s *Store) GetReport(id int) (*models.ReportDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt := loadTable[models.Report](s, reportsFile)
	for _, r := range rt.Items {
		if r.ID != id {
			continue
		}
		byID := s.productIndexLocked()
		detail := models.ReportDetail{
			ReportRow:        joinProduct(r, byID[r.ProductID]),
			DimensionSummary: models.DefaultDimensionSummary(),
		}
		if r.DimensionSummary != nil {
			var dims models.DimensionSummary
			if err := json.Unmarshal([]byte(*r.DimensionSummary), &dims); err == nil {
				detail.DimensionSummary = dims.Normalized()
			}
		}
		return &detail, nil
	}
	return nil, nil
}

// GetTrends aggregates reports from the last days days per calendar date,
// summing negative counts and counting reports, ascending by date.
func (s *Store) GetTrends(productID *int, days int) ([]models.TrendRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().AddDate(0, 0, -days).Format(dateutil.DateLayout)

	rt := loadTable[models.Report](s, reportsFile)
	byDate := make(map[string]*models.TrendRow)
	for _, r := range rt.Items {
		if productID != nil && r.ProductID != *productID {
			continue
		}
		key := r.ReportDate
		if len(key) > 10 {
			key = key[:10]
		}
		// Date-only comparison; the YYYY-MM-DD form compares lexicographically.
		if dateutil.ParseDate(key).IsZero() || key < cutoff {
			continue
		}
		row, ok := byDate[key]
		if !ok {
			row = &models.TrendRow{ReportDate: key}
			byDate[key] = row
		}
		row.NegativeCount += r.NegativeCount
		row.ReportCount++
	}

	out := make([]models.TrendRow, 0, len(byDate))
	for _, row := range byDate {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReportDate < out[j].ReportDate })
	return out, nil
}

func (s *Store) productIndexLocked() map[int]models.Product {
	pt := loadTable[models.Product](s, productsFile)
	byID := make(map[int]models.Product, len(pt.Items))
	for _, p := range pt.Items {
		byID[p.ID] = p
	}
	return byID
}

func joinProduct(r models.Report, p models.Product) models.ReportRow {
	return models.ReportRow{
		Report:      r,
		ProductURL:  p.ProductURL,
		ProductName: p.Name,
	}
}
