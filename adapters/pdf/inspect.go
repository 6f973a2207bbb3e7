package instructionpdf

import (
	"bytes"
	"context"

	"github.com/goliatone/go-betriebsanweisung/instruction"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Inspector reads rendered PDFs back with pdfcpu.
type Inspector struct {
	Strict bool
}

var _ instruction.PageCounter = Inspector{}

func (i Inspector) configuration() *model.Configuration {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	if i.Strict {
		cfg.ValidationMode = model.ValidationStrict
	}
	return cfg
}

// PageCount returns the number of pages in pdf.
func (i Inspector) PageCount(ctx context.Context, pdf []byte) (int, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
	}
	pages, err := api.PageCount(bytes.NewReader(pdf), i.configuration())
	if err != nil {
		return 0, instruction.NewError(instruction.KindInternal, "read pdf page count", err)
	}
	return pages, nil
}

// Validate checks pdf against the PDF specification.
func (i Inspector) Validate(ctx context.Context, pdf []byte) error {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if err := api.Validate(bytes.NewReader(pdf), i.configuration()); err != nil {
		return instruction.NewError(instruction.KindInternal, "pdf validation failed", err)
	}
	return nil
}
