package storage

import (
	"sort"

	"github.com/review-monitor/core/internal/models"
	"github.com/review-monitor/core/internal/pkg/dateutil"
)

// ListProducts returns all registered products in ascending id order.
func (s *Store) ListProducts() ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := loadTable[models.Product](s, productsFile)
	items := make([]models.Product, len(t.Items))
	copy(items, t.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// AddProduct registers a product url. The uniqueness check runs before any
// mutation, so a duplicate leaves the file untouched.
func (s *Store) AddProduct(productURL string, name *string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := loadTable[models.Product](s, productsFile)
	for _, p := range t.Items {
		if p.ProductURL == productURL {
			return 0, ErrDuplicateProductURL
		}
	}

	id := t.NextID
	t.NextID++
	t.Items = append(t.Items, models.Product{
		ID:         id,
		ProductURL: productURL,
		Name:       name,
		CreatedAt:  dateutil.Now(),
	})
	if err := saveTable(s, productsFile, t); err != nil {
		return 0, err
	}
	return id, nil
}

// GetProduct returns the product with the given id, or nil when absent.
func (s *Store) GetProduct(id int) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getProductLocked(id), nil
}

func (s *Store) getProductLocked(id int) *models.Product {
	t := loadTable[models.Product](s, productsFile)
	for i := range t.Items {
		if t.Items[i].ID == id {
			p := t.Items[i]
			return &p
		}
	}
	return nil
}

// DeleteProduct removes a product and cascades deletion of its snapshots and
// reports. Deleting an absent id is a no-op.
func (s *Store) DeleteProduct(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pt := loadTable[models.Product](s, productsFile)
	st := loadTable[models.Snapshot](s, snapshotsFile)
	rt := loadTable[models.Report](s, reportsFile)

	rt.Items = filterInPlace(rt.Items, func(r models.Report) bool { return r.ProductID != id })
	st.Items = filterInPlace(st.Items, func(sn models.Snapshot) bool { return sn.ProductID != id })
	pt.Items = filterInPlace(pt.Items, func(p models.Product) bool { return p.ID != id })

	if err := saveTable(s, reportsFile, rt); err != nil {
		return err
	}
	if err := saveTable(s, snapshotsFile, st); err != nil {
		return err
	}
	return saveTable(s, productsFile, pt)
}

func filterInPlace[T any](items []T, keep func(T) bool) []T {
	out := items[:0]
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
