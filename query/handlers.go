package query

import (
	"context"

	"github.com/goliatone/go-betriebsanweisung/instruction"
	"github.com/goliatone/go-errors"
)

// ListCategoriesHandler returns the catalog categories.
type ListCategoriesHandler struct {
	Catalog *instruction.Catalog
}

func NewListCategoriesHandler(catalog *instruction.Catalog) *ListCategoriesHandler {
	return &ListCategoriesHandler{Catalog: catalog}
}

func (h *ListCategoriesHandler) Query(ctx context.Context, msg ListCategories) ([]instruction.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if h == nil || h.Catalog == nil {
		return instruction.DefaultCatalog().Categories(), nil
	}
	return h.Catalog.Categories(), nil
}

// GetExampleHandler returns a category's example record.
type GetExampleHandler struct {
	Catalog *instruction.Catalog
}

func NewGetExampleHandler(catalog *instruction.Catalog) *GetExampleHandler {
	return &GetExampleHandler{Catalog: catalog}
}

func (h *GetExampleHandler) Query(ctx context.Context, msg GetExample) (instruction.Record, error) {
	if err := ctx.Err(); err != nil {
		return instruction.Record{}, err
	}
	catalog := instruction.DefaultCatalog()
	if h != nil && h.Catalog != nil {
		catalog = h.Catalog
	}
	return catalog.ExampleRecord(msg.Category)
}

// ListHistoryHandler returns generation history.
type ListHistoryHandler struct {
	History instruction.History
}

func NewListHistoryHandler(history instruction.History) *ListHistoryHandler {
	return &ListHistoryHandler{History: history}
}

func (h *ListHistoryHandler) Query(ctx context.Context, msg ListHistory) ([]instruction.HistoryEntry, error) {
	if h == nil || h.History == nil {
		return nil, errors.New("history store is required", errors.CategoryInternal).
			WithTextCode("HISTORY_REQUIRED")
	}
	return h.History.List(ctx, msg.Limit)
}
