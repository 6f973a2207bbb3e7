package query

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-betriebsanweisung/instruction"
)

func TestListCategoriesHandler_Order(t *testing.T) {
	handler := NewListCategoriesHandler(instruction.DefaultCatalog())
	categories, err := handler.Query(context.Background(), ListCategories{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(categories) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(categories))
	}
	if categories[0].Key != instruction.CategoryMachine || categories[3].Key != instruction.CategoryBiological {
		t.Fatalf("unexpected order %q ... %q", categories[0].Key, categories[3].Key)
	}
}

func TestGetExampleHandler(t *testing.T) {
	handler := NewGetExampleHandler(instruction.DefaultCatalog())
	record, err := handler.Query(context.Background(), GetExample{Category: instruction.CategoryHazardous})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if record.Category != instruction.CategoryHazardous {
		t.Fatalf("expected gefahrstoff example, got %q", record.Category)
	}
	if record.Hazards == "" {
		t.Fatalf("expected example hazards text")
	}

	_, err = handler.Query(context.Background(), GetExample{Category: "nonexistent"})
	if !instruction.IsUnknownCategory(err) {
		t.Fatalf("expected unknown category, got %v", err)
	}
}

func TestGetExample_Validate(t *testing.T) {
	if err := (GetExample{}).Validate(); err == nil {
		t.Fatalf("expected missing category error")
	}
	if err := (ListHistory{Limit: -1}).Validate(); err == nil {
		t.Fatalf("expected negative limit error")
	}
}

func TestListHistoryHandler(t *testing.T) {
	history := instruction.NewMemoryHistory(10)
	base := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b"} {
		if err := history.Record(context.Background(), instruction.HistoryEntry{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	entries, err := NewListHistoryHandler(history).Query(context.Background(), ListHistory{Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "b" {
		t.Fatalf("unexpected entries %#v", entries)
	}

	if _, err := NewListHistoryHandler(nil).Query(context.Background(), ListHistory{}); err == nil {
		t.Fatalf("expected error without history store")
	}
}
