package storage

import (
	"encoding/json"

	"github.com/review-monitor/core/internal/models"
	"github.com/review-monitor/core/internal/pkg/dateutil"
)

// InsertSnapshot appends a comment-batch snapshot and returns its id. The raw
// batch is serialized to a string column for audit and replay.
func (s *Store) InsertSnapshot(productID int, dateRangeStart, dateRangeEnd string, commentCount int, rawBatch interface{}) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rawJSON *string
	if rawBatch != nil {
		raw, err := json.Marshal(rawBatch)
		if err != nil {
			return 0, err
		}
		str := string(raw)
		rawJSON = &str
	}

	t := loadTable[models.Snapshot](s, snapshotsFile)
	id := t.NextID
	t.NextID++
	t.Items = append(t.Items, models.Snapshot{
		ID:             id,
		ProductID:      productID,
		DateRangeStart: dateRangeStart,
		DateRangeEnd:   dateRangeEnd,
		CommentCount:   commentCount,
		RawJSON:        rawJSON,
		CreatedAt:      dateutil.Now(),
	})
	if err := saveTable(s, snapshotsFile, t); err != nil {
		return 0, err
	}
	return id, nil
}

// GetSnapshot returns the snapshot with the given id, or nil when absent.
func (s *Store) GetSnapshot(id int) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := loadTable[models.Snapshot](s, snapshotsFile)
	for i := range t.Items {
		if t.Items[i].ID == id {
			sn := t.Items[i]
			return &sn, nil
		}
	}
	return nil, nil
}
