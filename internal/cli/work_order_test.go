package cli

import (
	"testing"

	"github.com/example/plumbops/internal/core/workorder"
	"github.com/example/plumbops/internal/ports/primary"
)

func TestFilterByStatus(t *testing.T) {
	orders := []*primary.WorkOrder{
		{ID: "wo-1", Status: workorder.StatusScheduled},
		{ID: "wo-2", Status: workorder.StatusInService},
		{ID: "wo-3", Status: workorder.StatusScheduled},
	}

	filtered := filterByStatus(orders, "Scheduled")
	if len(filtered) != 2 || filtered[0].ID != "wo-1" || filtered[1].ID != "wo-3" {
		t.Errorf("unexpected filter result: %+v", filtered)
	}

	// The input slice is shared with the read cache and must survive intact.
	want := []string{"wo-1", "wo-2", "wo-3"}
	for i, wo := range orders {
		if wo.ID != want[i] {
			t.Fatalf("input slice was modified: position %d holds %s, want %s", i, wo.ID, want[i])
		}
	}

	if got := filterByStatus(orders, ""); len(got) != 3 {
		t.Errorf("empty status must not filter, got %d orders", len(got))
	}
	if got := filterByStatus(orders, "Completed"); len(got) != 0 {
		t.Errorf("expected no Completed orders, got %+v", got)
	}
}
