package instructionpdf

import (
	"context"
	"testing"

	"github.com/goliatone/go-betriebsanweisung/instruction"
)

func TestInspector_PageCountAndValidate(t *testing.T) {
	pdf, err := NewFPDFSerializer("test").Serialize(context.Background(), assemble(t, ladderRecord(), fixedNow))
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	inspector := Inspector{}
	pages, err := inspector.PageCount(context.Background(), pdf)
	if err != nil {
		t.Fatalf("page count: %v", err)
	}
	if pages != 1 {
		t.Fatalf("expected 1 page, got %d", pages)
	}
	if err := inspector.Validate(context.Background(), pdf); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestInspector_RejectsGarbage(t *testing.T) {
	_, err := Inspector{}.PageCount(context.Background(), []byte("not a pdf"))
	if instruction.KindFromError(err) != instruction.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}
