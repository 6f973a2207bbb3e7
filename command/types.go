package command

import (
	"strings"

	"github.com/goliatone/go-betriebsanweisung/instruction"
	"github.com/goliatone/go-errors"
)

// RenderInstruction renders one record into a PDF document.
type RenderInstruction struct {
	Record instruction.Record
	Result *instruction.Rendered
}

func (RenderInstruction) Type() string { return "betriebsanweisung:render" }

// Validate rejects an empty record. Field rules belong to the handler's
// Validator, which depends on the category policy.
func (msg RenderInstruction) Validate() error {
	if msg.Record == (instruction.Record{}) {
		return errors.New("record is required", errors.CategoryValidation).
			WithTextCode("RECORD_REQUIRED")
	}
	return nil
}

// RenderExamples renders the canned example of each listed category.
// An empty list renders every category in catalog order.
type RenderExamples struct {
	Categories []instruction.CategoryKey
	Result     *[]instruction.Rendered
}

func (RenderExamples) Type() string { return "betriebsanweisung:render_examples" }

func (msg RenderExamples) Validate() error {
	for _, key := range msg.Categories {
		if strings.TrimSpace(string(key)) == "" {
			return errors.New("category keys must not be blank", errors.CategoryValidation).
				WithTextCode("CATEGORY_REQUIRED")
		}
	}
	return nil
}
