package primary

import "context"

// Suggestion is an autocomplete hit for a customer or technician.
type Suggestion struct {
	ID       string
	Label    string
	Subtitle string
}

// DirectoryService serves the autocomplete lookups. Implementations cap the
// result size; debouncing is the caller's concern (see internal/search).
type DirectoryService interface {
	SearchCustomers(ctx context.Context, query string) ([]Suggestion, error)
	SearchTechnicians(ctx context.Context, query string) ([]Suggestion, error)
}
