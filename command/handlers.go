package command

import (
	"context"

	"github.com/goliatone/go-betriebsanweisung/instruction"
	gcmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-errors"
)

// Renderer renders records into documents.
type Renderer interface {
	Catalog() *instruction.Catalog
	Render(ctx context.Context, record instruction.Record) (instruction.Rendered, error)
}

// Validator checks records before they are rendered.
type Validator interface {
	Validate(record instruction.Record) error
}

// RenderInstructionHandler handles render requests.
type RenderInstructionHandler struct {
	Service   Renderer
	Validator Validator
}

func NewRenderInstructionHandler(svc Renderer) *RenderInstructionHandler {
	var validator Validator = instruction.DefaultRequiredFields
	if policy, ok := svc.(interface{ RequiredFields() instruction.RequiredFields }); ok {
		validator = policy.RequiredFields()
	}
	return &RenderInstructionHandler{Service: svc, Validator: validator}
}

func (h *RenderInstructionHandler) Execute(ctx context.Context, msg RenderInstruction) error {
	if h == nil || h.Service == nil {
		return errors.New("instruction service is required", errors.CategoryInternal).
			WithTextCode("SERVICE_REQUIRED")
	}
	if h.Validator != nil {
		if err := h.Validator.Validate(msg.Record); err != nil {
			return err
		}
	}
	rendered, err := h.Service.Render(ctx, msg.Record)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = rendered
	}
	if res := gcmd.ResultFromContext[instruction.Rendered](ctx); res != nil {
		res.Store(rendered)
	}
	return nil
}

// RenderExamplesHandler renders catalog examples, e.g. for smoke checks
// after a deployment.
type RenderExamplesHandler struct {
	Service Renderer
}

func NewRenderExamplesHandler(svc Renderer) *RenderExamplesHandler {
	return &RenderExamplesHandler{Service: svc}
}

func (h *RenderExamplesHandler) Execute(ctx context.Context, msg RenderExamples) error {
	if h == nil || h.Service == nil {
		return errors.New("instruction service is required", errors.CategoryInternal).
			WithTextCode("SERVICE_REQUIRED")
	}
	catalog := h.Service.Catalog()
	keys := msg.Categories
	if len(keys) == 0 {
		keys = catalog.Keys()
	}

	results := make([]instruction.Rendered, 0, len(keys))
	for _, key := range keys {
		example, err := catalog.ExampleRecord(key)
		if err != nil {
			return err
		}
		rendered, err := h.Service.Render(ctx, example)
		if err != nil {
			return err
		}
		results = append(results, rendered)
	}

	if msg.Result != nil {
		*msg.Result = results
	}
	if res := gcmd.ResultFromContext[[]instruction.Rendered](ctx); res != nil {
		res.Store(results)
	}
	return nil
}
