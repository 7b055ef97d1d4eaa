// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application talks
// to the remote PlumbOps API and to local infrastructure.
package secondary

import "context"

// WorkOrderRecord represents a work order as returned by the API.
type WorkOrderRecord struct {
	ID           string
	Code         string
	Title        string
	Description  string
	Address      string
	Status       string
	CustomerID   string
	TechnicianID string // empty means unassigned
	ScheduledAt  string // RFC3339, empty when unset
	ArrivedAt    string
	CreatedAt    string
	UpdatedAt    string
}

// TimeEntryRecord represents a technician time entry as returned by the API.
type TimeEntryRecord struct {
	ID           string
	WorkOrderID  string
	TechnicianID string
	StartAt      string
	EndAt        string // empty means still open
	Notes        string
}

// WorkOrderCreateRecord carries the fields for POST /WorkOrders.
type WorkOrderCreateRecord struct {
	CustomerID   string
	TechnicianID string
	Title        string
	Description  string
	Address      string
	ScheduledAt  string // RFC3339 UTC, empty when unscheduled
}

// ActionPayloadRecord carries optional bodies for transition endpoints.
// Fields are used per action: Reason for pause-service, Summary for
// finish-service, TechnicianID for start/resume-service, the coordinates
// for start-route and AtUTC for a manual arrive.
type ActionPayloadRecord struct {
	Reason       string
	Summary      string
	TechnicianID string
	TargetLat    *float64
	TargetLng    *float64
	AtUTC        string
}

// WorkOrderGateway defines the secondary port for the work-order endpoints.
type WorkOrderGateway interface {
	// List retrieves all work orders visible to the operator.
	List(ctx context.Context) ([]*WorkOrderRecord, error)

	// GetByID retrieves a single work order.
	GetByID(ctx context.Context, id string) (*WorkOrderRecord, error)

	// TimeEntries retrieves the time entries booked against a work order.
	TimeEntries(ctx context.Context, id string) ([]*TimeEntryRecord, error)

	// Create creates a new work order in Scheduled status.
	Create(ctx context.Context, rec *WorkOrderCreateRecord) (*WorkOrderRecord, error)

	// PerformAction calls the transition endpoint for action. The returned
	// record may be nil when the server responds without a body; callers
	// re-fetch in that case.
	PerformAction(ctx context.Context, id, action string, payload *ActionPayloadRecord) (*WorkOrderRecord, error)
}

// DocumentRecord represents a quote or invoice header as returned by the API.
type DocumentRecord struct {
	ID       string
	Number   string
	Type     string // Quote | Invoice
	Status   string
	Currency string
	Subtotal float64
	TaxTotal float64
	Total    float64
}

// DocumentLineRecord represents a priced line on a document.
type DocumentLineRecord struct {
	ID          int64
	DocumentID  string
	Kind        string // Labor | Material | Other
	Description string
	Qty         float64
	UnitPrice   float64
	TaxRate     float64
	Total       float64
}

// DocumentLineCreateRecord carries the fields for POST /Documents/:id/lines.
type DocumentLineCreateRecord struct {
	Kind        string
	Description string
	Qty         float64
	UnitPrice   float64
	TaxRate     float64
	ItemID      string // optional price-book reference
}

// DocumentCreateRecord carries the fields for POST /Documents.
type DocumentCreateRecord struct {
	Type       string
	CustomerID string
	Currency   string
}

// DocumentGateway defines the secondary port for the document endpoints.
type DocumentGateway interface {
	// List retrieves document headers.
	List(ctx context.Context) ([]*DocumentRecord, error)

	// GetByID retrieves a document header together with its lines.
	GetByID(ctx context.Context, id string) (*DocumentRecord, []*DocumentLineRecord, error)

	// Create creates a new document (normally a Quote).
	Create(ctx context.Context, rec *DocumentCreateRecord) (*DocumentRecord, error)

	// AddLine appends a line to a document.
	AddLine(ctx context.Context, documentID string, rec *DocumentLineCreateRecord) error

	// DeleteLine removes a line from a document.
	DeleteLine(ctx context.Context, documentID string, lineID int64) error

	// PromoteToInvoice converts a quote into a new invoice and returns the
	// invoice's id. Not idempotent: every accepted call creates an invoice.
	PromoteToInvoice(ctx context.Context, documentID string) (string, error)
}

// ItemRecord represents a price-book entry as returned by the API.
type ItemRecord struct {
	ID        string
	Name      string
	SKU       string
	Type      string // Material | Service
	Unit      string
	UnitPrice float64
	TaxRate   float64
	Stock     *float64 // nil when not stock-tracked
}

// ItemFilters contains filter options for listing items.
type ItemFilters struct {
	Search string
	Type   string
}

// ItemGateway defines the secondary port for the price-book endpoints.
type ItemGateway interface {
	List(ctx context.Context, filters ItemFilters) ([]*ItemRecord, error)
	GetByID(ctx context.Context, id string) (*ItemRecord, error)
	Create(ctx context.Context, rec *ItemRecord) (*ItemRecord, error)
	Update(ctx context.Context, rec *ItemRecord) error
	Delete(ctx context.Context, id string) error
}

// PartyRecord is a customer or technician directory result. The server is
// loose about which name field it fills in, so the gateway resolves a
// display label and subtitle up front.
type PartyRecord struct {
	ID       string
	Label    string
	Subtitle string
}

// DirectoryGateway defines the secondary port for the search endpoints.
type DirectoryGateway interface {
	SearchCustomers(ctx context.Context, query string, pageSize int) ([]*PartyRecord, error)
	SearchTechnicians(ctx context.Context, query string, pageSize int) ([]*PartyRecord, error)
}

// LoginRecord is the result of a successful login call.
type LoginRecord struct {
	Token string
	Roles []string
}

// AuthGateway defines the secondary port for authentication.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*LoginRecord, error)
}
