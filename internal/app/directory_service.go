package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/plumbops/internal/ports/primary"
	"github.com/example/plumbops/internal/ports/secondary"
)

// directoryPageSize caps autocomplete results, matching the console UI.
const directoryPageSize = 10

// DirectoryServiceImpl implements the DirectoryService interface. It is the
// lookup side of the autocomplete inputs; callers wrap it in a
// search.Debouncer to rate-limit keystrokes.
type DirectoryServiceImpl struct {
	gateway secondary.DirectoryGateway
}

// NewDirectoryService creates a new DirectoryService with injected dependencies.
func NewDirectoryService(gateway secondary.DirectoryGateway) *DirectoryServiceImpl {
	return &DirectoryServiceImpl{gateway: gateway}
}

var _ primary.DirectoryService = (*DirectoryServiceImpl)(nil)

// SearchCustomers looks up customers by free text. An empty query returns
// no results without touching the network.
func (s *DirectoryServiceImpl) SearchCustomers(ctx context.Context, query string) ([]primary.Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	records, err := s.gateway.SearchCustomers(ctx, query, directoryPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	return recordsToSuggestions(records), nil
}

// SearchTechnicians looks up technicians by free text. An empty query
// returns no results without touching the network.
func (s *DirectoryServiceImpl) SearchTechnicians(ctx context.Context, query string) ([]primary.Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	records, err := s.gateway.SearchTechnicians(ctx, query, directoryPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to search technicians: %w", err)
	}
	return recordsToSuggestions(records), nil
}

func recordsToSuggestions(records []*secondary.PartyRecord) []primary.Suggestion {
	suggestions := make([]primary.Suggestion, 0, len(records))
	for _, rec := range records {
		suggestions = append(suggestions, primary.Suggestion{
			ID:       rec.ID,
			Label:    rec.Label,
			Subtitle: rec.Subtitle,
		})
	}
	return suggestions
}
