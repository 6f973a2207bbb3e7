package instructiontemplate

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-betriebsanweisung/instruction"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer("Betriebsanweisung Generator")
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func assembleExample(t *testing.T, key instruction.CategoryKey) instruction.Document {
	t.Helper()
	record, err := instruction.DefaultCatalog().ExampleRecord(key)
	if err != nil {
		t.Fatalf("example: %v", err)
	}
	record.Title = "Leiter <Typ A>"
	asm := instruction.NewAssembler()
	asm.Now = func() time.Time { return time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC) }
	doc, err := asm.Assemble(record)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return doc
}

func TestRenderDocument(t *testing.T) {
	var buf bytes.Buffer
	doc := assembleExample(t, instruction.CategoryHazardous)
	if err := newTestRenderer(t).RenderDocument(context.Background(), doc, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	if got := strings.Count(out, `class="ba-heading"`); got != 6 {
		t.Fatalf("expected 6 headings, got %d", got)
	}
	if got := strings.Count(out, "background-color:#E63946"); got != 6 {
		t.Fatalf("expected every heading in category color, got %d", got)
	}
	for _, want := range []string{
		"BETRIEBSANWEISUNG",
		"05.03.2024",
		"Leiter &lt;Typ A&gt;",
		"4. VERHALTEN BEI STÖRUNGEN",
		"• Nicht rauchen<br>",
		"Datum, Unterschrift Vorgesetzter",
		"size: A4; margin: 20mm 25mm 20mm 25mm;",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
	if strings.Contains(out, "<Typ A>") {
		t.Fatalf("expected record text to be escaped")
	}
}

func TestRenderDocumentOmitsEmptyParagraph(t *testing.T) {
	doc := assembleExample(t, instruction.CategoryMachine)
	var kept []instruction.Block
	for _, b := range doc.Blocks {
		if p, ok := b.(instruction.Paragraph); ok && p.Section != 1 {
			continue
		}
		kept = append(kept, b)
	}
	doc.Blocks = kept

	var buf bytes.Buffer
	if err := newTestRenderer(t).RenderDocument(context.Background(), doc, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := strings.Count(buf.String(), `class="ba-paragraph"`); got != 1 {
		t.Fatalf("expected 1 paragraph, got %d", got)
	}
}

func TestRenderForm(t *testing.T) {
	var buf bytes.Buffer
	err := newTestRenderer(t).RenderForm(context.Background(), FormData{
		Categories: instruction.DefaultCatalog().Categories(),
		Author:     "A. Mustermann",
	}, &buf)
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`data-key="maschine"`,
		`data-key="biologisch"`,
		`class="category selected" data-key="taetigkeit"`,
		`--accent: #2A9D8F`,
		`name="schutzmassnahmen"`,
		`value="A. Mustermann"`,
		"Beispiel laden",
		"Zurücksetzen",
		"PDF erstellen",
		"'anwendungsbereich', 'gefahren'",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected form to contain %q", want)
		}
	}
}

func TestRenderFormPrefixesAPIURLs(t *testing.T) {
	var buf bytes.Buffer
	err := newTestRenderer(t).RenderForm(context.Background(), FormData{
		Categories: instruction.DefaultCatalog().Categories(),
		BasePath:   "/ba/",
	}, &buf)
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`action="/ba/api/erstellen"`,
		`fetch('/ba/api/vorlagen/'`,
		`fetch('/ba/api/vorschau'`,
		`fetch('/ba/api/erstellen'`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected form to contain %q", want)
		}
	}
	if strings.Contains(out, `'/api/`) || strings.Contains(out, `"/api/`) {
		t.Fatalf("expected no unprefixed api urls")
	}
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	if err := newTestRenderer(t).RenderForm(ctx, FormData{}, &buf); err == nil {
		t.Fatalf("expected canceled error")
	}
}
