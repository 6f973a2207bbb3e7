package instructionapi

import (
	"time"

	"github.com/goliatone/go-betriebsanweisung/instruction"
)

// Response provides a minimal response interface for transport adapters.
type Response interface {
	SetHeader(name, value string)
	WriteHeader(status int)
	Write(data []byte) (int, error)
	WriteJSON(status int, payload any) error
}

// ErrorResponse describes JSON error responses.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains error details.
type ErrorBody struct {
	Message string       `json:"message"`
	Code    string       `json:"code,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError names one offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Template is the public shape of one catalog category.
type Template struct {
	Key       string            `json:"key"`
	Name      string            `json:"name"`
	Icon      string            `json:"icon"`
	Color     string            `json:"farbe"`
	Examples  map[string]string `json:"beispiele"`
	SortOrder int               `json:"sort_order"`
}

// HistoryResponse lists recent generations.
type HistoryResponse struct {
	Items []HistoryItem `json:"items"`
}

// HistoryItem is one generation in a history listing.
type HistoryItem struct {
	ID         string    `json:"id"`
	Category   string    `json:"kategorie"`
	Filename   string    `json:"filename"`
	Bytes      int64     `json:"bytes"`
	Pages      int       `json:"pages"`
	CreatedAt  time.Time `json:"created_at"`
	DurationMS int64     `json:"duration_ms"`
}

// TemplateFromCategory shapes a category for JSON output.
func TemplateFromCategory(category instruction.Category, order int) Template {
	examples := make(map[string]string, len(instruction.SectionFields))
	for _, spec := range instruction.SectionFields {
		value, _ := category.Example.Field(spec.Name)
		examples[spec.Name] = value
	}
	return Template{
		Key:       string(category.Key),
		Name:      category.Name,
		Icon:      category.Icon,
		Color:     category.Color.Hex(),
		Examples:  examples,
		SortOrder: order,
	}
}

// TemplatesFromCatalog shapes the whole catalog keyed by category.
func TemplatesFromCatalog(catalog *instruction.Catalog) map[string]Template {
	out := make(map[string]Template)
	for i, category := range catalog.Categories() {
		out[string(category.Key)] = TemplateFromCategory(category, i)
	}
	return out
}

func historyItem(entry instruction.HistoryEntry) HistoryItem {
	return HistoryItem{
		ID:         entry.ID,
		Category:   string(entry.Category),
		Filename:   entry.Filename,
		Bytes:      entry.Bytes,
		Pages:      entry.Pages,
		CreatedAt:  entry.CreatedAt,
		DurationMS: entry.Duration.Milliseconds(),
	}
}
