package query

import (
	"strings"

	"github.com/goliatone/go-betriebsanweisung/instruction"
	"github.com/goliatone/go-errors"
)

// ListCategories requests the catalog in display order.
type ListCategories struct{}

func (ListCategories) Type() string { return "betriebsanweisung:categories" }

func (ListCategories) Validate() error { return nil }

// GetExample requests the canned example record of a category.
type GetExample struct {
	Category instruction.CategoryKey
}

func (GetExample) Type() string { return "betriebsanweisung:example" }

func (msg GetExample) Validate() error {
	if strings.TrimSpace(string(msg.Category)) == "" {
		return errors.New("category is required", errors.CategoryValidation).
			WithTextCode("CATEGORY_REQUIRED")
	}
	return nil
}

// ListHistory requests recent generations, newest first.
type ListHistory struct {
	Limit int
}

func (ListHistory) Type() string { return "betriebsanweisung:history" }

func (msg ListHistory) Validate() error {
	if msg.Limit < 0 {
		return errors.New("limit must not be negative", errors.CategoryValidation).
			WithTextCode("LIMIT_INVALID")
	}
	return nil
}
