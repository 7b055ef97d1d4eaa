package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/example/plumbops/internal/ports/primary"
	"github.com/example/plumbops/internal/ports/secondary"
)

// ItemServiceImpl implements the ItemService interface. Price-book entries
// are plain CRUD with no derived state; mutations invalidate every cached
// list so no filter combination keeps serving pre-mutation data.
type ItemServiceImpl struct {
	gateway secondary.ItemGateway
	cache   secondary.ReadCache

	mu       sync.Mutex
	listKeys map[string]struct{}
}

// NewItemService creates a new ItemService with injected dependencies.
func NewItemService(gateway secondary.ItemGateway, cache secondary.ReadCache) *ItemServiceImpl {
	return &ItemServiceImpl{
		gateway:  gateway,
		cache:    cache,
		listKeys: make(map[string]struct{}),
	}
}

var _ primary.ItemService = (*ItemServiceImpl)(nil)

func cacheKeyItemList(filters primary.ItemFilters) string {
	return "items:list:" + filters.Search + ":" + filters.Type
}

// ListItems returns price-book entries matching the filters.
func (s *ItemServiceImpl) ListItems(ctx context.Context, filters primary.ItemFilters) ([]*primary.Item, error) {
	key := cacheKeyItemList(filters)
	if v, ok := s.cache.Get(key); ok {
		return v.([]*primary.Item), nil
	}

	seq := s.cache.Begin()
	records, err := s.gateway.List(ctx, secondary.ItemFilters{
		Search: filters.Search,
		Type:   filters.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]*primary.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, recordToItem(rec))
	}
	if s.cache.Put(key, items, seq) {
		s.rememberListKey(key)
	}
	return items, nil
}

// GetItem returns one price-book entry.
func (s *ItemServiceImpl) GetItem(ctx context.Context, id string) (*primary.Item, error) {
	rec, err := s.gateway.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", id, err)
	}
	return recordToItem(rec), nil
}

// CreateItem creates a price-book entry.
func (s *ItemServiceImpl) CreateItem(ctx context.Context, req primary.ItemRequest) (*primary.Item, error) {
	if err := validateItemRequest(req); err != nil {
		return nil, err
	}

	rec, err := s.gateway.Create(ctx, itemRequestToRecord("", req))
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.invalidateLists()
	return recordToItem(rec), nil
}

// UpdateItem updates a price-book entry.
func (s *ItemServiceImpl) UpdateItem(ctx context.Context, id string, req primary.ItemRequest) error {
	if err := validateItemRequest(req); err != nil {
		return err
	}

	if err := s.gateway.Update(ctx, itemRequestToRecord(id, req)); err != nil {
		return fmt.Errorf("failed to update item %s: %w", id, err)
	}

	s.invalidateLists()
	return nil
}

// DeleteItem removes a price-book entry.
func (s *ItemServiceImpl) DeleteItem(ctx context.Context, id string) error {
	if err := s.gateway.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}

	s.invalidateLists()
	return nil
}

func (s *ItemServiceImpl) rememberListKey(key string) {
	s.mu.Lock()
	s.listKeys[key] = struct{}{}
	s.mu.Unlock()
}

// invalidateLists drops every cached item list, filtered variants included.
// Filter combinations fan out into distinct keys and the cache port has no
// prefix invalidation, so the keys are tracked as lists are cached.
func (s *ItemServiceImpl) invalidateLists() {
	unfiltered := cacheKeyItemList(primary.ItemFilters{})

	s.mu.Lock()
	keys := make([]string, 0, len(s.listKeys)+1)
	keys = append(keys, unfiltered)
	for key := range s.listKeys {
		if key != unfiltered {
			keys = append(keys, key)
		}
	}
	s.mu.Unlock()

	s.cache.Invalidate(keys...)
}

func validateItemRequest(req primary.ItemRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("item name is required")
	}
	if req.Type != "Material" && req.Type != "Service" {
		return fmt.Errorf("item type must be Material or Service (got %q)", req.Type)
	}
	if req.UnitPrice < 0 {
		return fmt.Errorf("unit price must not be negative")
	}
	if req.TaxRate < 0 || req.TaxRate > 100 {
		return fmt.Errorf("tax rate must be between 0 and 100")
	}
	return nil
}

func itemRequestToRecord(id string, req primary.ItemRequest) *secondary.ItemRecord {
	return &secondary.ItemRecord{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		SKU:       req.SKU,
		Type:      req.Type,
		Unit:      req.Unit,
		UnitPrice: req.UnitPrice,
		TaxRate:   req.TaxRate,
		Stock:     req.Stock,
	}
}

func recordToItem(rec *secondary.ItemRecord) *primary.Item {
	return &primary.Item{
		ID:        rec.ID,
		Name:      rec.Name,
		SKU:       rec.SKU,
		Type:      rec.Type,
		Unit:      rec.Unit,
		UnitPrice: rec.UnitPrice,
		TaxRate:   rec.TaxRate,
		Stock:     rec.Stock,
	}
}
