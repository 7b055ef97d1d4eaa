package primary

import "context"

// Item is the view of a price-book entry.
type Item struct {
	ID        string
	Name      string
	SKU       string
	Type      string // Material | Service
	Unit      string
	UnitPrice float64
	TaxRate   float64
	Stock     *float64 // nil when not stock-tracked
}

// ItemRequest carries the editable fields for create and update.
type ItemRequest struct {
	Name      string
	SKU       string
	Type      string
	Unit      string
	UnitPrice float64
	TaxRate   float64
	Stock     *float64
}

// ItemFilters contains filter options for listing items.
type ItemFilters struct {
	Search string
	Type   string
}

// ItemService drives the price-book CRUD.
type ItemService interface {
	ListItems(ctx context.Context, filters ItemFilters) ([]*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	CreateItem(ctx context.Context, req ItemRequest) (*Item, error)
	UpdateItem(ctx context.Context, id string, req ItemRequest) error
	DeleteItem(ctx context.Context, id string) error
}
